package session

import (
	"context"

	"github.com/riskibarqy/fpl-league-dashboard/internal/domain/leaguetable"
	"github.com/riskibarqy/fpl-league-dashboard/internal/domain/picks"
)

// Repository holds transient per-session state. AppendPicks and SnapshotPicks
// are serialized per session so a snapshot never observes a partial append.
type Repository interface {
	SaveLeague(ctx context.Context, sessionID string, league leaguetable.League) error
	GetLeague(ctx context.Context, sessionID string) (leaguetable.League, bool, error)
	ResetPicks(ctx context.Context, sessionID string) error
	AppendPicks(ctx context.Context, sessionID string, policy picks.DedupPolicy, records []picks.Record) (picks.AppendResult, error)
	SnapshotPicks(ctx context.Context, sessionID string) ([]picks.Record, error)
	SaveProgress(ctx context.Context, sessionID string, progress Progress) error
	UpdateProgress(ctx context.Context, sessionID string, fn func(*Progress)) (Progress, error)
	GetProgress(ctx context.Context, sessionID string) (Progress, bool, error)
}
