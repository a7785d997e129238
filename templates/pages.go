package templates

import (
	"bytes"
	"context"
	"fmt"
	"html"
	"io"

	"github.com/a-h/templ"
)

// Pages are hand-written templ components. Each one builds its Tailwind
// markup into a buffer and flushes it in a single write.

func page(build func(buf *bytes.Buffer)) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		var buf bytes.Buffer
		build(&buf)
		_, err := w.Write(buf.Bytes())
		return err
	})
}

func esc(s string) string {
	return html.EscapeString(s)
}

func writeHead(buf *bytes.Buffer, title string) {
	buf.WriteString(`<!doctype html><html lang="en"><head><meta charset="UTF-8"><meta name="viewport" content="width=device-width, initial-scale=1.0"><title>`)
	buf.WriteString(esc(title))
	buf.WriteString(`</title><script src="https://cdn.tailwindcss.com"></script></head><body class="bg-[#F7F0E6] font-sans text-stone-800"><div class="min-h-screen flex items-center justify-center py-10"><div class="max-w-4xl w-full bg-white/90 rounded-3xl p-8 shadow-2xl">`)
}

func writeFoot(buf *bytes.Buffer) {
	buf.WriteString(`</div></div></body></html>`)
}

func writeBanner(buf *bytes.Buffer, kind, text string) {
	var class string
	switch kind {
	case "success":
		class = "bg-green-100 border border-green-300 text-green-900"
	case "warning":
		class = "bg-amber-100 border border-amber-300 text-amber-900"
	case "error":
		class = "bg-red-100 border border-red-300 text-red-900"
	default:
		class = "bg-blue-100 border border-blue-300 text-blue-900"
	}
	buf.WriteString(`<div class="` + class + ` rounded-xl px-4 py-3 my-2 font-semibold">`)
	buf.WriteString(esc(text))
	buf.WriteString(`</div>`)
}

func writeLeaderboard(buf *bytes.Buffer, entries []RankEntry) {
	buf.WriteString(`<hr class="my-6 border-stone-300"><h2 class="text-2xl font-black mb-4">Current Rankings 🏆</h2>`)
	if len(entries) == 0 {
		writeBanner(buf, "info", "No ranking data yet.")
		return
	}
	buf.WriteString(`<ol class="space-y-1">`)
	for _, e := range entries {
		buf.WriteString(`<li class="flex justify-between bg-stone-100 rounded-lg px-4 py-2"><span>`)
		buf.WriteString(fmt.Sprintf("%d. <strong>%s</strong>", e.Rank, esc(e.Name)))
		buf.WriteString(`</span><span class="font-mono font-bold">`)
		buf.WriteString(fmt.Sprintf("%.2f/10", e.Score))
		buf.WriteString(`</span></li>`)
	}
	buf.WriteString(`</ol>`)
}

// Home renders the battle form plus the current leaderboard.
func Home(data HomePageData) templ.Component {
	return page(func(buf *bytes.Buffer) {
		writeHead(buf, "Developer Battle Meter")
		buf.WriteString(`<h1 class="text-3xl font-black mb-2">Developer Battle Meter 🥊</h1>`)
		buf.WriteString(`<p class="mb-6 text-stone-600">Paste two developers' Python code, let pylint judge them, and watch the rankings move.</p>`)

		buf.WriteString(`<form method="POST" action="/battle">`)
		buf.WriteString(`<div class="grid grid-cols-2 gap-4 mb-4">`)
		writeNameInput(buf, "dev_a", "Developer A's name", data.DevA)
		writeNameInput(buf, "dev_b", "Developer B's name", data.DevB)
		buf.WriteString(`</div>`)

		buf.WriteString(`<div class="grid grid-cols-2 gap-4 mb-4">`)
		writeCodeInput(buf, "code_a", data.DevA)
		writeCodeInput(buf, "code_b", data.DevB)
		buf.WriteString(`</div>`)

		buf.WriteString(`<button type="submit" class="bg-[#5D4037] text-white font-bold py-3 px-8 rounded-xl">Start Battle! 🥇</button>`)
		buf.WriteString(`</form>`)

		writeLeaderboard(buf, data.Leaderboard)
		buf.WriteString(`<p class="mt-6"><a class="underline text-stone-600" href="/history">Battle history</a></p>`)
		writeFoot(buf)
	})
}

func writeNameInput(buf *bytes.Buffer, key, label, value string) {
	buf.WriteString(`<div><label class="block text-sm font-semibold mb-1">`)
	buf.WriteString(esc(label))
	buf.WriteString(`</label><input type="text" name="` + key + `" value="`)
	buf.WriteString(esc(value))
	buf.WriteString(`" class="w-full p-3 border rounded-md"></div>`)
}

func writeCodeInput(buf *bytes.Buffer, key, owner string) {
	buf.WriteString(`<div><h2 class="text-lg font-bold mb-1">`)
	buf.WriteString(esc(owner) + `'s code`)
	buf.WriteString(`</h2><textarea name="` + key + `" rows="12" placeholder="Paste code here" class="w-full p-3 border rounded-md font-mono text-sm"></textarea></div>`)
}

// BattleResults renders the verdict page. When Warning is set the battle was
// aborted before scoring and only the warning shows.
func BattleResults(data BattlePageData) templ.Component {
	return page(func(buf *bytes.Buffer) {
		writeHead(buf, "Battle Results")
		buf.WriteString(`<h1 class="text-3xl font-black mb-4">Battle Results</h1>`)

		if data.Warning != "" {
			writeBanner(buf, "warning", data.Warning)
			buf.WriteString(`<p class="mt-6"><a class="underline text-stone-600" href="/">Back to the arena</a></p>`)
			writeFoot(buf)
			return
		}

		writeSideResult(buf, data.A)
		writeSideResult(buf, data.B)

		switch {
		case data.Tie:
			writeBanner(buf, "info", "It's a tie!")
		case data.AutoWin:
			writeBanner(buf, "success", fmt.Sprintf("Only %s submitted code, automatic win! 🥇", data.Winner))
		default:
			writeBanner(buf, "success", fmt.Sprintf("🥇 %s wins!", data.Winner))
		}

		buf.WriteString(`<h3 class="text-xl font-bold mt-6 mb-2">Professional Code Review (paid)</h3>`)
		wroteReview := false
		for _, side := range []SideView{data.A, data.B} {
			if side.Review == "" {
				continue
			}
			buf.WriteString(`<div class="mb-2"><strong>` + esc(side.Name) + `'s review:</strong><p>` + esc(side.Review) + `</p></div>`)
			wroteReview = true
		}
		if !wroteReview {
			buf.WriteString(`<p class="text-stone-500 italic">No reviews purchased for this battle.</p>`)
		}

		writeLeaderboard(buf, data.Leaderboard)
		buf.WriteString(`<p class="mt-6"><a class="underline text-stone-600" href="/">Back to the arena</a></p>`)
		writeFoot(buf)
	})
}

func writeSideResult(buf *bytes.Buffer, side SideView) {
	if !side.Submitted {
		buf.WriteString(`<h2 class="text-xl font-bold my-2">` + esc(side.Name) + ` did not submit any code.</h2>`)
		return
	}
	if side.LintErr != "" {
		writeBanner(buf, "error", fmt.Sprintf("Lint run for %s failed: %s", side.Name, side.LintErr))
	}
	buf.WriteString(`<h2 class="text-xl font-bold my-2">` + esc(side.Name) + `'s score: ` + fmt.Sprintf("%.2f/10", side.Score) + `</h2>`)
}

// History renders the recent-battles table.
func History(data HistoryPageData) templ.Component {
	return page(func(buf *bytes.Buffer) {
		writeHead(buf, "Battle History")
		buf.WriteString(`<h1 class="text-3xl font-black mb-4">Battle History</h1>`)

		if len(data.Battles) == 0 {
			writeBanner(buf, "info", "No battles fought yet.")
		} else {
			buf.WriteString(`<table class="w-full text-left"><thead><tr class="border-b border-stone-300"><th class="py-2">When</th><th>Match</th><th>Scores</th><th>Result</th></tr></thead><tbody>`)
			for _, b := range data.Battles {
				buf.WriteString(`<tr class="border-b border-stone-100"><td class="py-2 text-sm text-stone-500">`)
				buf.WriteString(esc(b.CreatedAt))
				buf.WriteString(`</td><td>` + esc(b.DevA) + ` vs ` + esc(b.DevB) + `</td><td class="font-mono">`)
				buf.WriteString(formatScore(b.ScoreA) + ` : ` + formatScore(b.ScoreB))
				buf.WriteString(`</td><td>`)
				if b.Outcome == "tie" {
					buf.WriteString(`Tie`)
				} else {
					buf.WriteString(`🥇 ` + esc(b.Winner))
				}
				buf.WriteString(`</td></tr>`)
			}
			buf.WriteString(`</tbody></table>`)
		}

		buf.WriteString(`<p class="mt-6"><a class="underline text-stone-600" href="/">Back to the arena</a></p>`)
		writeFoot(buf)
	})
}

func formatScore(score *float64) string {
	if score == nil {
		return "—"
	}
	return fmt.Sprintf("%.2f", *score)
}
