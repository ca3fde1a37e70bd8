package usecase

import (
	"context"
	"fmt"

	"github.com/riskibarqy/fpl-league-dashboard/internal/platform/id"
	"github.com/riskibarqy/fpl-league-dashboard/internal/platform/logging"
)

// SessionService mints identifiers for browser sessions. A session holds no
// state until a league is loaded into it.
type SessionService struct {
	ids    id.Generator
	logger *logging.Logger
}

func NewSessionService(ids id.Generator, logger *logging.Logger) *SessionService {
	if logger == nil {
		logger = logging.Default()
	}
	if ids == nil {
		ids = id.NewRandomGenerator("")
	}
	return &SessionService{ids: ids, logger: logger.Named("session")}
}

func (s *SessionService) Create(ctx context.Context) (string, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.SessionService.Create")
	defer span.End()

	raw, err := s.ids.NewID()
	if err != nil {
		return "", fmt.Errorf("generate session id: %w", err)
	}
	sessionID, err := normalizeSessionID(raw)
	if err != nil {
		return "", fmt.Errorf("generate session id: %w", err)
	}

	s.logger.DebugContext(ctx, "session created", "session_id", sessionID)
	return sessionID, nil
}
