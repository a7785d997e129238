package main

import (
	"database/sql"
	"fmt"
	"time"

	_ "github.com/glebarez/go-sqlite"
)

// BattleLog records finished battles in sqlite so the history page survives
// restarts. The JSON ranking file stays the system of record for scores;
// the log is append-only color commentary.
type BattleLog struct {
	db *sql.DB
}

func OpenBattleLog(path string) (*BattleLog, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open battle db: %w", err)
	}

	_, err = db.Exec(`
    CREATE TABLE IF NOT EXISTS battles (
        id TEXT PRIMARY KEY,
        dev_a TEXT NOT NULL,
        dev_b TEXT NOT NULL,
        score_a REAL,
        score_b REAL,
        outcome TEXT NOT NULL,
        winner TEXT,
        created_at DATETIME DEFAULT CURRENT_TIMESTAMP
    );`)
	if err != nil {
		return nil, fmt.Errorf("migrate battle db: %w", err)
	}

	return &BattleLog{db: db}, nil
}

func (l *BattleLog) Close() error {
	return l.db.Close()
}

// Record stores one resolved battle. Sides that never submitted are stored
// as NULL scores, not zeros.
func (l *BattleLog) Record(res *BattleResult) error {
	_, err := l.db.Exec(
		`INSERT INTO battles (id, dev_a, dev_b, score_a, score_b, outcome, winner)
         VALUES (?, ?, ?, ?, ?, ?, ?)`,
		res.ID, res.A.Name, res.B.Name,
		nullableScore(res.A), nullableScore(res.B),
		res.Outcome, res.Winner,
	)
	if err != nil {
		return fmt.Errorf("record battle: %w", err)
	}
	return nil
}

func nullableScore(side SideResult) interface{} {
	if !side.Submitted {
		return nil
	}
	return side.Score
}

// BattleRecord is one row of the history page.
type BattleRecord struct {
	ID        string
	DevA      string
	DevB      string
	ScoreA    *float64
	ScoreB    *float64
	Outcome   string
	Winner    string
	CreatedAt time.Time
}

// Recent returns the newest battles first.
func (l *BattleLog) Recent(limit int) ([]BattleRecord, error) {
	rows, err := l.db.Query(
		`SELECT id, dev_a, dev_b, score_a, score_b, outcome, winner, created_at
         FROM battles ORDER BY created_at DESC, rowid DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("query battles: %w", err)
	}
	defer rows.Close()

	var records []BattleRecord
	for rows.Next() {
		var rec BattleRecord
		var scoreA, scoreB sql.NullFloat64
		var winner sql.NullString
		if err := rows.Scan(&rec.ID, &rec.DevA, &rec.DevB, &scoreA, &scoreB, &rec.Outcome, &winner, &rec.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan battle: %w", err)
		}
		if scoreA.Valid {
			rec.ScoreA = &scoreA.Float64
		}
		if scoreB.Valid {
			rec.ScoreB = &scoreB.Float64
		}
		rec.Winner = winner.String
		records = append(records, rec)
	}
	return records, rows.Err()
}
