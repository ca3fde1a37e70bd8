package usecase

import (
	"context"
	"errors"
	"testing"

	"github.com/riskibarqy/fpl-league-dashboard/internal/platform/logging"
)

type fixedIDs struct {
	id  string
	err error
}

func (f fixedIDs) NewID() (string, error) {
	return f.id, f.err
}

func TestSessionService_Create(t *testing.T) {
	t.Parallel()

	service := NewSessionService(nil, logging.NewNop())
	first, err := service.Create(context.Background())
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if _, err := normalizeSessionID(first); err != nil {
		t.Fatalf("expected a valid session id, got %q: %v", first, err)
	}
}

func TestSessionService_CreateRejectsInvalidIDs(t *testing.T) {
	t.Parallel()

	service := NewSessionService(fixedIDs{id: "has space"}, logging.NewNop())
	if _, err := service.Create(context.Background()); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}

	boom := errors.New("entropy exhausted")
	service = NewSessionService(fixedIDs{err: boom}, logging.NewNop())
	if _, err := service.Create(context.Background()); !errors.Is(err, boom) {
		t.Fatalf("expected generator error, got %v", err)
	}
}
