package main

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
)

// Submission is one developer's entry for a single battle.
type Submission struct {
	Name string
	Code string
}

// SideResult is the outcome for one side of a battle. A side with
// Submitted=false has no score at all, which is different from scoring 0.0.
type SideResult struct {
	Name      string
	Submitted bool
	Score     float64
	LintErr   string
}

const (
	OutcomeWin = "win"
	OutcomeTie = "tie"
)

// BattleResult is the resolved battle: per-side results plus the verdict.
type BattleResult struct {
	ID      string
	A       SideResult
	B       SideResult
	Outcome string
	Winner  string
	AutoWin bool
}

// ErrNoSubmissions aborts a battle before any scoring happens; the ranking
// table must not be touched in that case.
var ErrNoSubmissions = errors.New("no code submitted for either developer")

// RunBattle scores each non-empty submission, writes the scores into the
// ranking map under the developers' names, and decides the winner. The caller
// owns persisting the map afterwards.
func RunBattle(ctx context.Context, scorer Scorer, rankings map[string]float64, a, b Submission) (*BattleResult, error) {
	if strings.TrimSpace(a.Code) == "" && strings.TrimSpace(b.Code) == "" {
		return nil, ErrNoSubmissions
	}

	res := &BattleResult{
		ID: uuid.NewString(),
		A:  SideResult{Name: a.Name},
		B:  SideResult{Name: b.Name},
	}
	scoreSide(ctx, scorer, rankings, a, &res.A)
	scoreSide(ctx, scorer, rankings, b, &res.B)
	decideWinner(res)
	return res, nil
}

func scoreSide(ctx context.Context, scorer Scorer, rankings map[string]float64, sub Submission, out *SideResult) {
	if strings.TrimSpace(sub.Code) == "" {
		return
	}
	out.Submitted = true

	score, err := scorer.Score(ctx, sub.Code)
	if err != nil {
		// A failed invocation still counts as 0.0; the message surfaces
		// as a banner next to the score line.
		out.LintErr = err.Error()
		score = 0
	}
	out.Score = score
	rankings[sub.Name] = score
}

func decideWinner(res *BattleResult) {
	switch {
	case res.A.Submitted && res.B.Submitted:
		switch {
		case res.A.Score > res.B.Score:
			res.Outcome = OutcomeWin
			res.Winner = res.A.Name
		case res.B.Score > res.A.Score:
			res.Outcome = OutcomeWin
			res.Winner = res.B.Name
		default:
			res.Outcome = OutcomeTie
		}
	case res.A.Submitted:
		res.Outcome = OutcomeWin
		res.Winner = res.A.Name
		res.AutoWin = true
	default:
		res.Outcome = OutcomeWin
		res.Winner = res.B.Name
		res.AutoWin = true
	}
}
