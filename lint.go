package main

import (
	"bytes"
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"os"
	"os/exec"
	"strconv"
	"strings"
	"sync"
	"time"
)

// ratedPrefix is the line pylint prints when scoring is enabled, e.g.
// "Your code has been rated at 8.50/10 (previous run: 7.50/10, +1.00)".
const ratedPrefix = "Your code has been rated at"

// Scorer rates a code snippet on a 0-10 scale. A nil error with a 0.0 score
// means the linter ran but produced no usable rating; a non-nil error means
// the invocation itself failed and should be shown to the user.
type Scorer interface {
	Score(ctx context.Context, code string) (float64, error)
}

// PylintScorer shells out to pylint for each snippet.
type PylintScorer struct {
	Bin     string
	Timeout time.Duration
}

func NewPylintScorer(bin string, timeout time.Duration) *PylintScorer {
	return &PylintScorer{Bin: bin, Timeout: timeout}
}

func (p *PylintScorer) Score(ctx context.Context, code string) (float64, error) {
	tmp, err := os.CreateTemp("", "battle-*.py")
	if err != nil {
		return 0, fmt.Errorf("create temp file: %w", err)
	}
	path := tmp.Name()
	defer os.Remove(path)

	if _, err := tmp.WriteString(code); err != nil {
		tmp.Close()
		return 0, fmt.Errorf("write temp file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return 0, fmt.Errorf("close temp file: %w", err)
	}

	ctx, cancel := context.WithTimeout(ctx, p.Timeout)
	defer cancel()

	cmd := exec.CommandContext(ctx, p.Bin, path, "--score=y")
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	// Don't let an orphaned child holding the pipes stall Wait past the kill.
	cmd.WaitDelay = time.Second

	err = cmd.Run()
	if ctx.Err() == context.DeadlineExceeded {
		return 0, fmt.Errorf("%s timed out after %s", p.Bin, p.Timeout)
	}
	if err != nil {
		// pylint exits non-zero whenever it finds issues, so an ExitError
		// is normal output, not a failure. Anything else means the linter
		// never ran.
		if _, ok := err.(*exec.ExitError); !ok {
			return 0, fmt.Errorf("run %s: %w", p.Bin, err)
		}
	}

	return parseRatedLine(stdout.String()), nil
}

// parseRatedLine scans linter output for the rated line and pulls the
// numerator out of its "<score>/10" token. Returns 0.0 when no line matches
// or the token is malformed.
func parseRatedLine(out string) float64 {
	for _, line := range strings.Split(out, "\n") {
		if !strings.HasPrefix(line, ratedPrefix) {
			continue
		}
		fields := strings.Fields(line)
		if len(fields) < 7 {
			return 0
		}
		numerator := strings.SplitN(fields[6], "/", 2)[0]
		score, err := strconv.ParseFloat(numerator, 64)
		if err != nil {
			return 0
		}
		return clampScore(score)
	}
	return 0
}

// clampScore keeps scores inside the 0-10 ranking range. pylint happily
// rates terrible code below zero.
func clampScore(s float64) float64 {
	if s < 0 {
		return 0
	}
	if s > 10 {
		return 10
	}
	return s
}

// Simple in-memory cache for lint scores, keyed by code hash. Identical
// snippets always score the same, so resubmissions skip the subprocess.
type scoreCacheEntry struct {
	Score float64
	Time  time.Time
}

type CachedScorer struct {
	inner Scorer
	ttl   time.Duration

	mu   sync.Mutex
	data map[string]scoreCacheEntry
}

func NewCachedScorer(inner Scorer, ttl time.Duration) *CachedScorer {
	return &CachedScorer{
		inner: inner,
		ttl:   ttl,
		data:  make(map[string]scoreCacheEntry),
	}
}

func (c *CachedScorer) Score(ctx context.Context, code string) (float64, error) {
	sum := sha256.Sum256([]byte(code))
	key := hex.EncodeToString(sum[:])

	c.mu.Lock()
	if ent, ok := c.data[key]; ok {
		if time.Since(ent.Time) < c.ttl {
			c.mu.Unlock()
			return ent.Score, nil
		}
		delete(c.data, key)
	}
	c.mu.Unlock()

	score, err := c.inner.Score(ctx, code)
	if err != nil {
		return 0, err
	}

	c.mu.Lock()
	c.data[key] = scoreCacheEntry{Score: score, Time: time.Now()}
	c.mu.Unlock()
	return score, nil
}
