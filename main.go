package main

import (
	"fmt"
	"net/http"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

func main() {
	// .env is optional; deployments can set the environment directly.
	if err := godotenv.Load(); err == nil {
		fmt.Println("📦 Loaded settings from .env")
	}
	cfg := loadConfig()

	history, err := OpenBattleLog(cfg.BattleDB)
	if err != nil {
		fmt.Printf("⚠️ Battle history disabled: %v\n", err)
		history = nil
	}

	scorer := NewCachedScorer(NewPylintScorer(cfg.PylintBin, cfg.LintTimeout), time.Hour)
	rankings := &FileRankingStore{Path: cfg.RankingFile}

	server := NewServer(scorer, rankings, history)

	fmt.Printf("🥊 Code Battle is running on http://localhost:%s\n", cfg.Port)
	http.ListenAndServe(":"+cfg.Port, server.Routes())
}

// Config holds the runtime settings, all overridable via environment.
type Config struct {
	Port        string
	RankingFile string
	BattleDB    string
	PylintBin   string
	LintTimeout time.Duration
}

func loadConfig() Config {
	timeoutSecs := 30
	if v := os.Getenv("LINT_TIMEOUT_SECONDS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			timeoutSecs = n
		}
	}

	return Config{
		Port:        envOr("PORT", "8080"),
		RankingFile: envOr("RANKING_FILE", "ranking.json"),
		BattleDB:    envOr("BATTLE_DB", "battles.db"),
		PylintBin:   envOr("PYLINT_BIN", "pylint"),
		LintTimeout: time.Duration(timeoutSecs) * time.Second,
	}
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
