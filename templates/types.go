package templates

type RankEntry struct {
	Rank  int     `json:"rank"`
	Name  string  `json:"name"`
	Score float64 `json:"score"`
}

type SideView struct {
	Name      string
	Submitted bool
	Score     float64
	LintErr   string
	Review    string // paid code review, not wired up yet
}

type HomePageData struct {
	DevA        string
	DevB        string
	Leaderboard []RankEntry
}

type BattlePageData struct {
	A           SideView
	B           SideView
	Tie         bool
	Winner      string
	AutoWin     bool
	Warning     string
	Leaderboard []RankEntry
}

type BattleRow struct {
	DevA      string
	DevB      string
	ScoreA    *float64
	ScoreB    *float64
	Outcome   string
	Winner    string
	CreatedAt string
}

type HistoryPageData struct {
	Battles []BattleRow
}
