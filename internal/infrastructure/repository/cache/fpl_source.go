package cache

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/riskibarqy/fpl-league-dashboard/internal/domain/element"
	"github.com/riskibarqy/fpl-league-dashboard/internal/domain/leaguetable"
	"github.com/riskibarqy/fpl-league-dashboard/internal/domain/picks"
	basecache "github.com/riskibarqy/fpl-league-dashboard/internal/platform/cache"
	"github.com/riskibarqy/fpl-league-dashboard/internal/usecase"
)

// FPLSource caches provider reads with a shared TTL. Concurrent misses for
// the same key share one upstream call.
type FPLSource struct {
	next      usecase.FPLSource
	leagues   *basecache.Store[leaguetable.League]
	gameweeks *basecache.Store[[]int]
	elements  *basecache.Store[[]element.Element]
	picks     *basecache.Store[picks.Record]
}

func NewFPLSource(next usecase.FPLSource, ttl time.Duration) *FPLSource {
	return &FPLSource{
		next:      next,
		leagues:   basecache.NewStore[leaguetable.League](ttl),
		gameweeks: basecache.NewStore[[]int](ttl),
		elements:  basecache.NewStore[[]element.Element](ttl),
		picks:     basecache.NewStore[picks.Record](ttl),
	}
}

func (s *FPLSource) FetchLeague(ctx context.Context, leagueID, managerLimit int) (leaguetable.League, error) {
	key := fmt.Sprintf("league:%d:limit:%d", leagueID, managerLimit)
	league, err := s.leagues.GetOrLoad(ctx, key, func(ctx context.Context) (leaguetable.League, error) {
		return s.next.FetchLeague(ctx, leagueID, managerLimit)
	})
	if err != nil {
		return leaguetable.League{}, err
	}
	league.Entries = append([]leaguetable.Entry(nil), league.Entries...)
	return league, nil
}

func (s *FPLSource) FetchPlayedGameweeks(ctx context.Context, includeActive bool) ([]int, error) {
	key := "gameweeks:active:" + strconv.FormatBool(includeActive)
	gws, err := s.gameweeks.GetOrLoad(ctx, key, func(ctx context.Context) ([]int, error) {
		return s.next.FetchPlayedGameweeks(ctx, includeActive)
	})
	if err != nil {
		return nil, err
	}
	return append([]int(nil), gws...), nil
}

func (s *FPLSource) FetchElements(ctx context.Context) ([]element.Element, error) {
	items, err := s.elements.GetOrLoad(ctx, "elements", func(ctx context.Context) ([]element.Element, error) {
		return s.next.FetchElements(ctx)
	})
	if err != nil {
		return nil, err
	}
	return append([]element.Element(nil), items...), nil
}

func (s *FPLSource) FetchEntryPicks(ctx context.Context, manager, gameweek int) (picks.Record, error) {
	key := fmt.Sprintf("picks:%d:%d", manager, gameweek)
	return s.picks.GetOrLoad(ctx, key, func(ctx context.Context) (picks.Record, error) {
		return s.next.FetchEntryPicks(ctx, manager, gameweek)
	})
}
