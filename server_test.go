package main

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
)

// memRankingStore is the in-memory stand-in for the JSON file store.
type memRankingStore struct {
	data    map[string]float64
	saves   int
	loadErr error
}

func (m *memRankingStore) Load() (map[string]float64, error) {
	if m.loadErr != nil {
		return nil, m.loadErr
	}
	out := make(map[string]float64, len(m.data))
	for k, v := range m.data {
		out[k] = v
	}
	return out, nil
}

func (m *memRankingStore) Save(rankings map[string]float64) error {
	m.data = rankings
	m.saves++
	return nil
}

func postBattle(t *testing.T, handler http.Handler, form url.Values) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest("POST", "/battle", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, req)
	return w
}

func TestHomePage(t *testing.T) {
	store := &memRankingStore{data: map[string]float64{"Alice": 9.0}}
	server := NewServer(&fakeScorer{}, store, nil)

	req := httptest.NewRequest("GET", "/", nil)
	w := httptest.NewRecorder()
	server.Routes().ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d", w.Code)
	}
	body := w.Body.String()
	for _, want := range []string{`name="dev_a"`, `name="dev_b"`, `name="code_a"`, `name="code_b"`, "Alice", "9.00/10"} {
		if !strings.Contains(body, want) {
			t.Errorf("home page missing %q", want)
		}
	}
}

func TestBattleEndpoint(t *testing.T) {
	store := &memRankingStore{data: map[string]float64{}}
	scorer := &fakeScorer{scores: map[string]float64{"a_code": 7.5, "b_code": 4.0}}
	server := NewServer(scorer, store, nil)

	w := postBattle(t, server.Routes(), url.Values{
		"dev_a":  {"Alice"},
		"dev_b":  {"Bob"},
		"code_a": {"a_code"},
		"code_b": {"b_code"},
	})

	if w.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d", w.Code)
	}
	body := w.Body.String()
	for _, want := range []string{"7.50/10", "4.00/10", "Alice wins"} {
		if !strings.Contains(body, want) {
			t.Errorf("results page missing %q", want)
		}
	}

	if store.saves != 1 {
		t.Errorf("rankings saved %d times, want 1", store.saves)
	}
	if store.data["Alice"] != 7.5 || store.data["Bob"] != 4.0 {
		t.Errorf("persisted rankings wrong: %v", store.data)
	}
}

func TestBattleEndpointBothEmptyWarns(t *testing.T) {
	store := &memRankingStore{data: map[string]float64{"Carry": 9.0}}
	server := NewServer(&fakeScorer{err: errors.New("must not be called")}, store, nil)

	w := postBattle(t, server.Routes(), url.Values{
		"dev_a":  {"Alice"},
		"dev_b":  {"Bob"},
		"code_a": {"   "},
		"code_b": {""},
	})

	if w.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d", w.Code)
	}
	if !strings.Contains(w.Body.String(), "at least one") {
		t.Error("expected warning banner when both sides are empty")
	}
	if store.saves != 0 {
		t.Errorf("ranking file written on aborted battle (%d saves)", store.saves)
	}
}

func TestBattleEndpointSingleSubmission(t *testing.T) {
	store := &memRankingStore{data: map[string]float64{}}
	scorer := &fakeScorer{scores: map[string]float64{"print('x')": 5.0}}
	server := NewServer(scorer, store, nil)

	w := postBattle(t, server.Routes(), url.Values{
		"dev_a":  {"dev_a"},
		"dev_b":  {"dev_b"},
		"code_a": {"print('x')"},
		"code_b": {""},
	})

	if w.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d", w.Code)
	}
	body := w.Body.String()
	if !strings.Contains(body, "automatic win") {
		t.Error("expected auto-win banner")
	}
	if !strings.Contains(body, "did not submit any code") {
		t.Error("expected not-submitted notice for the empty side")
	}
	if store.data["dev_a"] != 5.0 {
		t.Errorf("rankings[dev_a] = %v, want 5.0", store.data["dev_a"])
	}
	if _, ok := store.data["dev_b"]; ok {
		t.Error("no-submission side leaked into rankings")
	}
	if store.saves != 1 {
		t.Errorf("single win must still persist rankings, got %d saves", store.saves)
	}
}

func TestBattleEndpointDefaultNames(t *testing.T) {
	store := &memRankingStore{data: map[string]float64{}}
	scorer := &fakeScorer{scores: map[string]float64{"x": 2.0}}
	server := NewServer(scorer, store, nil)

	w := postBattle(t, server.Routes(), url.Values{"code_a": {"x"}})

	if w.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d", w.Code)
	}
	if _, ok := store.data["Developer A"]; !ok {
		t.Errorf("blank name field should fall back to default, got %v", store.data)
	}
}

func TestBattleEndpointUnreadableRankings(t *testing.T) {
	store := &memRankingStore{loadErr: errors.New("parse ranking.json: bad")}
	server := NewServer(&fakeScorer{}, store, nil)

	w := postBattle(t, server.Routes(), url.Values{"code_a": {"x"}})

	if w.Code != http.StatusInternalServerError {
		t.Errorf("malformed ranking file must be fatal, got status %d", w.Code)
	}
}

func TestRankingsAPI(t *testing.T) {
	store := &memRankingStore{data: map[string]float64{"Alice": 9.0, "Bob": 4.0}}
	server := NewServer(&fakeScorer{}, store, nil)

	req := httptest.NewRequest("GET", "/api/rankings", nil)
	w := httptest.NewRecorder()
	server.Routes().ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d", w.Code)
	}

	var resp RankingsResponse
	if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
		t.Fatalf("Failed to decode response: %v", err)
	}
	if len(resp.Rankings) != 2 {
		t.Fatalf("got %d entries, want 2", len(resp.Rankings))
	}
	if resp.Rankings[0].Name != "Alice" || resp.Rankings[0].Rank != 1 {
		t.Errorf("expected Alice at rank 1, got %+v", resp.Rankings[0])
	}
}

func TestHistoryPageWithoutLog(t *testing.T) {
	server := NewServer(&fakeScorer{}, &memRankingStore{data: map[string]float64{}}, nil)

	req := httptest.NewRequest("GET", "/history", nil)
	w := httptest.NewRecorder()
	server.Routes().ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d", w.Code)
	}
	if !strings.Contains(w.Body.String(), "No battles fought yet") {
		t.Error("expected empty-history notice")
	}
}
