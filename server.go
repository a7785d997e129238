package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"code-battle/templates"

	"github.com/a-h/templ"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

const (
	defaultNameA = "Developer A"
	defaultNameB = "Developer B"
)

// Server wires the scorer, the ranking store and the optional battle log
// into the HTTP surface.
type Server struct {
	scorer   Scorer
	rankings RankingStore
	history  *BattleLog
}

func NewServer(scorer Scorer, rankings RankingStore, history *BattleLog) *Server {
	return &Server{scorer: scorer, rankings: rankings, history: history}
}

func (s *Server) Routes() http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(60 * time.Second))

	r.Get("/", s.homeHandler)
	r.Post("/battle", s.battleHandler)
	r.Get("/history", s.historyHandler)
	r.Get("/api/rankings", s.rankingsAPIHandler)

	return r
}

func (s *Server) homeHandler(w http.ResponseWriter, r *http.Request) {
	rankings, err := s.rankings.Load()
	if err != nil {
		http.Error(w, "Could not load rankings", 500)
		return
	}

	component := templates.Home(templates.HomePageData{
		DevA:        defaultNameA,
		DevB:        defaultNameB,
		Leaderboard: toTemplateRanks(Leaderboard(rankings)),
	})
	templ.Handler(component).ServeHTTP(w, r)
}

func (s *Server) battleHandler(w http.ResponseWriter, r *http.Request) {
	devA := r.FormValue("dev_a")
	if devA == "" {
		devA = defaultNameA
	}
	devB := r.FormValue("dev_b")
	if devB == "" {
		devB = defaultNameB
	}

	rankings, err := s.rankings.Load()
	if err != nil {
		http.Error(w, "Could not load rankings", 500)
		return
	}

	res, err := RunBattle(r.Context(), s.scorer, rankings,
		Submission{Name: devA, Code: r.FormValue("code_a")},
		Submission{Name: devB, Code: r.FormValue("code_b")},
	)
	if errors.Is(err, ErrNoSubmissions) {
		component := templates.BattleResults(templates.BattlePageData{
			Warning: "Enter code for at least one of the two developers.",
		})
		templ.Handler(component).ServeHTTP(w, r)
		return
	}
	if err != nil {
		http.Error(w, "Battle failed", 500)
		return
	}

	// Persist even when only one side fought; a single win moves the table.
	if err := s.rankings.Save(rankings); err != nil {
		http.Error(w, "Could not save rankings", 500)
		return
	}

	if s.history != nil {
		if err := s.history.Record(res); err != nil {
			fmt.Printf("⚠️ Failed to record battle %s: %v\n", res.ID, err)
		}
	}

	fmt.Printf("🥊 Battle: %s vs %s → %s\n", devA, devB, verdictLine(res))

	component := templates.BattleResults(templates.BattlePageData{
		A:           toSideView(res.A),
		B:           toSideView(res.B),
		Tie:         res.Outcome == OutcomeTie,
		Winner:      res.Winner,
		AutoWin:     res.AutoWin,
		Leaderboard: toTemplateRanks(Leaderboard(rankings)),
	})
	component.Render(r.Context(), w)
}

func (s *Server) historyHandler(w http.ResponseWriter, r *http.Request) {
	var battles []templates.BattleRow
	if s.history != nil {
		records, err := s.history.Recent(20)
		if err != nil {
			http.Error(w, "Could not load history", 500)
			return
		}
		battles = make([]templates.BattleRow, len(records))
		for i, rec := range records {
			battles[i] = templates.BattleRow{
				DevA:      rec.DevA,
				DevB:      rec.DevB,
				ScoreA:    rec.ScoreA,
				ScoreB:    rec.ScoreB,
				Outcome:   rec.Outcome,
				Winner:    rec.Winner,
				CreatedAt: rec.CreatedAt.Format("2006-01-02 15:04"),
			}
		}
	}

	component := templates.History(templates.HistoryPageData{Battles: battles})
	templ.Handler(component).ServeHTTP(w, r)
}

type RankingsResponse struct {
	Rankings []RankEntry `json:"rankings"`
}

func (s *Server) rankingsAPIHandler(w http.ResponseWriter, r *http.Request) {
	rankings, err := s.rankings.Load()
	if err != nil {
		http.Error(w, "Could not load rankings", 500)
		return
	}
	s.writeJSON(w, http.StatusOK, RankingsResponse{Rankings: Leaderboard(rankings)})
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

func verdictLine(res *BattleResult) string {
	if res.Outcome == OutcomeTie {
		return "tie"
	}
	if res.AutoWin {
		return res.Winner + " wins by default"
	}
	return res.Winner + " wins"
}

func toSideView(side SideResult) templates.SideView {
	return templates.SideView{
		Name:      side.Name,
		Submitted: side.Submitted,
		Score:     side.Score,
		LintErr:   side.LintErr,
	}
}

func toTemplateRanks(entries []RankEntry) []templates.RankEntry {
	out := make([]templates.RankEntry, len(entries))
	for i, e := range entries {
		out[i] = templates.RankEntry{Rank: e.Rank, Name: e.Name, Score: e.Score}
	}
	return out
}
