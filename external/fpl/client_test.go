package fpl

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strconv"
	"sync/atomic"
	"testing"
	"time"

	"github.com/riskibarqy/fpl-league-dashboard/internal/platform/logging"
	"github.com/riskibarqy/fpl-league-dashboard/internal/platform/resilience"
	"github.com/riskibarqy/fpl-league-dashboard/internal/usecase"
)

func newTestClient(t *testing.T, handler http.Handler, mutate func(*ClientConfig)) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	cfg := ClientConfig{
		BaseURL:      srv.URL,
		UserAgent:    "dashboard-test/1.0",
		Timeout:      2 * time.Second,
		MaxRetries:   0,
		RetryBackoff: time.Millisecond,
		Logger:       logging.NewNop(),
		CircuitBreaker: resilience.CircuitBreakerConfig{
			Enabled:          true,
			FailureThreshold: 5,
			OpenTimeout:      time.Minute,
			HalfOpenMaxReq:   1,
		},
	}
	if mutate != nil {
		mutate(&cfg)
	}
	return NewClient(cfg)
}

func standingsPage(page int, hasNext bool) string {
	results := ""
	for i := 1; i <= 3; i++ {
		entry := (page-1)*3 + i
		if results != "" {
			results += ","
		}
		results += fmt.Sprintf(`{"entry":%d,"entry_name":"Team %d","player_name":"Player %d","rank":%d,"last_rank":%d,"total":%d,"event_total":10}`,
			entry, entry, entry, entry, entry, 1000-entry)
	}
	return fmt.Sprintf(`{"league":{"id":314,"name":"Office League"},"standings":{"has_next":%t,"page":%d,"results":[%s]}}`, hasNext, page, results)
}

func standingsHandler(calls *atomic.Int32) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/leagues-classic/314/standings/" {
			http.NotFound(w, r)
			return
		}
		calls.Add(1)
		page, _ := strconv.Atoi(r.URL.Query().Get("page_standings"))
		_, _ = w.Write([]byte(standingsPage(page, page < 3)))
	})
}

func TestFetchLeague_PaginatesUntilLastPage(t *testing.T) {
	var calls atomic.Int32
	client := newTestClient(t, standingsHandler(&calls), nil)

	league, err := client.FetchLeague(context.Background(), 314, 0)
	if err != nil {
		t.Fatalf("FetchLeague error: %v", err)
	}
	if league.Name != "Office League" {
		t.Fatalf("unexpected league name: %q", league.Name)
	}
	if len(league.Entries) != 9 || calls.Load() != 3 {
		t.Fatalf("expected 9 entries over 3 pages, got entries=%d pages=%d", len(league.Entries), calls.Load())
	}
	if e := league.Entries[4]; e.Manager != 5 || e.TeamName != "Team 5" || e.TotalPoints != 995 {
		t.Fatalf("unexpected mapped entry: %+v", e)
	}
}

func TestFetchLeague_StopsAtManagerLimit(t *testing.T) {
	var calls atomic.Int32
	client := newTestClient(t, standingsHandler(&calls), nil)

	league, err := client.FetchLeague(context.Background(), 314, 4)
	if err != nil {
		t.Fatalf("FetchLeague error: %v", err)
	}
	if len(league.Entries) != 4 {
		t.Fatalf("expected truncation to 4 entries, got %d", len(league.Entries))
	}
	if calls.Load() != 2 {
		t.Fatalf("expected paging to stop after 2 pages, got %d", calls.Load())
	}
}

func TestFetchLeague_NotFound(t *testing.T) {
	client := newTestClient(t, http.NotFoundHandler(), nil)

	_, err := client.FetchLeague(context.Background(), 999, 0)
	if !errors.Is(err, usecase.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestFetchEntryPicks_MapsPositionsAndHistory(t *testing.T) {
	var userAgent atomic.Value
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		userAgent.Store(r.Header.Get("User-Agent"))
		if r.URL.Path != "/entry/164/event/3/picks/" {
			http.NotFound(w, r)
			return
		}
		picks := ""
		for pos := 1; pos <= 15; pos++ {
			if picks != "" {
				picks += ","
			}
			picks += fmt.Sprintf(`{"element":%d,"position":%d,"multiplier":1,"is_captain":%t,"is_vice_captain":%t}`,
				100+pos, pos, pos == 7, pos == 2)
		}
		_, _ = fmt.Fprintf(w, `{"active_chip":"3xc","entry_history":{"event":3,"points":71,"total_points":210,"rank":5,"overall_rank":12345,"bank":5,"value":1003,"event_transfers":1,"event_transfers_cost":4,"points_on_bench":9},"picks":[%s]}`, picks)
	}), nil)

	record, err := client.FetchEntryPicks(context.Background(), 164, 3)
	if err != nil {
		t.Fatalf("FetchEntryPicks error: %v", err)
	}
	if got, _ := userAgent.Load().(string); got != "dashboard-test/1.0" {
		t.Fatalf("expected configured user agent, got %q", got)
	}
	if record.Starters[0] != 101 || record.Starters[10] != 111 {
		t.Fatalf("unexpected starters: %v", record.Starters)
	}
	if record.Substitutes[0] != 112 || record.Substitutes[3] != 115 {
		t.Fatalf("unexpected substitutes: %v", record.Substitutes)
	}
	if record.Captain != 107 || record.ViceCaptain != 102 {
		t.Fatalf("unexpected captaincy: captain=%d vice=%d", record.Captain, record.ViceCaptain)
	}
	if record.ActiveChip != "3xc" || record.TotalPoints != 210 || record.Points != 71 || record.PointsOnBench != 9 {
		t.Fatalf("unexpected history mapping: %+v", record)
	}
	if record.Manager != 164 || record.Gameweek != 3 {
		t.Fatalf("unexpected key: %+v", record.Key())
	}
}

func TestFetchEntryPicks_RejectsUnknownPosition(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{"active_chip":null,"entry_history":{"event":1},"picks":[{"element":1,"position":16}]}`))
	}), nil)

	if _, err := client.FetchEntryPicks(context.Background(), 1, 1); err == nil {
		t.Fatalf("expected error for out-of-range position")
	}
}

func TestPlayedGameweeks(t *testing.T) {
	gw := func(v int) *int { return &v }
	fixtures := []fixtureItem{
		{ID: 1, Event: gw(1), Finished: true},
		{ID: 2, Event: gw(1), Finished: true},
		{ID: 3, Event: gw(2), Finished: true},
		{ID: 4, Event: gw(2), Finished: false},
		{ID: 5, Event: gw(3), Finished: false},
		{ID: 6, Event: nil, Finished: false},
	}

	if got := playedGameweeks(fixtures, false); len(got) != 1 || got[0] != 1 {
		t.Fatalf("unexpected finished gameweeks: %v", got)
	}
	if got := playedGameweeks(fixtures, true); len(got) != 2 || got[1] != 2 {
		t.Fatalf("unexpected gameweeks including active: %v", got)
	}
}

func TestClient_RetriesTransientStatus(t *testing.T) {
	var calls atomic.Int32
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		if calls.Add(1) == 1 {
			w.WriteHeader(http.StatusBadGateway)
			return
		}
		_, _ = w.Write([]byte(`[{"id":1,"event":1,"finished":true}]`))
	}), func(cfg *ClientConfig) { cfg.MaxRetries = 2 })

	got, err := client.FetchPlayedGameweeks(context.Background(), false)
	if err != nil {
		t.Fatalf("FetchPlayedGameweeks error: %v", err)
	}
	if len(got) != 1 || calls.Load() != 2 {
		t.Fatalf("expected success on second attempt, got gws=%v calls=%d", got, calls.Load())
	}
}

func TestClient_CircuitOpensAfterTransientFailures(t *testing.T) {
	var calls atomic.Int32
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusServiceUnavailable)
	}), func(cfg *ClientConfig) { cfg.CircuitBreaker.FailureThreshold = 1 })

	_, err := client.FetchElements(context.Background())
	if !errors.Is(err, usecase.ErrDependencyUnavailable) {
		t.Fatalf("expected ErrDependencyUnavailable on transient failure, got %v", err)
	}

	_, err = client.FetchElements(context.Background())
	if !errors.Is(err, usecase.ErrDependencyUnavailable) {
		t.Fatalf("expected ErrDependencyUnavailable while open, got %v", err)
	}
	if calls.Load() != 1 {
		t.Fatalf("expected open breaker to short-circuit, got %d calls", calls.Load())
	}
}
