package usecase

import (
	"context"

	"github.com/riskibarqy/fpl-league-dashboard/internal/domain/element"
	"github.com/riskibarqy/fpl-league-dashboard/internal/domain/leaguetable"
	"github.com/riskibarqy/fpl-league-dashboard/internal/domain/picks"
)

// FPLSource reads league, fixture, catalog and squad data from the game.
// Implementations return ErrNotFound for unknown leagues or entries and
// ErrDependencyUnavailable when the provider cannot be reached.
type FPLSource interface {
	FetchLeague(ctx context.Context, leagueID, managerLimit int) (leaguetable.League, error)
	FetchPlayedGameweeks(ctx context.Context, includeActive bool) ([]int, error)
	FetchElements(ctx context.Context) ([]element.Element, error)
	FetchEntryPicks(ctx context.Context, manager, gameweek int) (picks.Record, error)
}
