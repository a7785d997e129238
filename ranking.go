package main

import (
	"encoding/json"
	"fmt"
	"os"
	"sort"
)

// RankingStore persists the name→best-score table. Injected into the server
// so tests can swap in an in-memory fake.
type RankingStore interface {
	Load() (map[string]float64, error)
	Save(rankings map[string]float64) error
}

// FileRankingStore keeps the ranking table as one JSON object on disk.
// The whole file is rewritten after every battle; last writer wins.
type FileRankingStore struct {
	Path string
}

func (s *FileRankingStore) Load() (map[string]float64, error) {
	data, err := os.ReadFile(s.Path)
	if err != nil {
		if os.IsNotExist(err) {
			return map[string]float64{}, nil
		}
		return nil, fmt.Errorf("read %s: %w", s.Path, err)
	}

	rankings := make(map[string]float64)
	if err := json.Unmarshal(data, &rankings); err != nil {
		return nil, fmt.Errorf("parse %s: %w", s.Path, err)
	}
	return rankings, nil
}

func (s *FileRankingStore) Save(rankings map[string]float64) error {
	// encoding/json leaves non-ASCII names as UTF-8, which is what the
	// leaderboard file wants.
	data, err := json.MarshalIndent(rankings, "", "    ")
	if err != nil {
		return fmt.Errorf("encode rankings: %w", err)
	}
	if err := os.WriteFile(s.Path, data, 0644); err != nil {
		return fmt.Errorf("write %s: %w", s.Path, err)
	}
	return nil
}

// RankEntry is one leaderboard row. Rank 1 is best.
type RankEntry struct {
	Rank  int     `json:"rank"`
	Name  string  `json:"name"`
	Score float64 `json:"score"`
}

// Leaderboard sorts the ranking table by score descending and assigns
// 1-based ranks. Ties break by name ascending so rendering is deterministic.
func Leaderboard(rankings map[string]float64) []RankEntry {
	entries := make([]RankEntry, 0, len(rankings))
	for name, score := range rankings {
		entries = append(entries, RankEntry{Name: name, Score: score})
	}
	sort.Slice(entries, func(i, j int) bool {
		if entries[i].Score != entries[j].Score {
			return entries[i].Score > entries[j].Score
		}
		return entries[i].Name < entries[j].Name
	})
	for i := range entries {
		entries[i].Rank = i + 1
	}
	return entries
}
