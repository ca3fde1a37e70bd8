package app

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/riskibarqy/fpl-league-dashboard/internal/config"
	"github.com/riskibarqy/fpl-league-dashboard/internal/platform/logging"
)

func TestNew_RequiresHTTPAddr(t *testing.T) {
	if _, err := New(context.Background(), config.Config{}, logging.NewNop()); err == nil {
		t.Fatalf("expected error for empty http addr")
	}
}

func TestNew_MemoryStoreServesHealthz(t *testing.T) {
	cfg := config.Config{
		HTTPAddr:     ":0",
		SessionStore: config.SessionStoreMemory,
		SessionTTL:   time.Minute,
		CacheEnabled: true,
		CacheTTL:     time.Minute,
	}
	a, err := New(context.Background(), cfg, logging.NewNop())
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	rec := httptest.NewRecorder()
	a.Server.Handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/healthz", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("unexpected healthz status: %d", rec.Code)
	}

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	if err := a.Shutdown(ctx); err != nil {
		t.Fatalf("Shutdown: %v", err)
	}
}

func TestPurgeExpiredSessions_StopsWithContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	var calls atomic.Int32
	done := make(chan struct{})
	go func() {
		defer close(done)
		purgeExpiredSessions(ctx, func(context.Context) (int64, error) {
			calls.Add(1)
			return 0, nil
		}, time.Minute, logging.NewNop())
	}()

	cancel()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatalf("purge loop did not stop after cancel")
	}
	if calls.Load() != 0 {
		t.Fatalf("expected no purge before the first tick, got %d", calls.Load())
	}
}
