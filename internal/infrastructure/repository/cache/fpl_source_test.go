package cache

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/riskibarqy/fpl-league-dashboard/internal/domain/leaguetable"
	usecasemock "github.com/riskibarqy/fpl-league-dashboard/internal/mocks/usecase"
	"github.com/riskibarqy/fpl-league-dashboard/internal/usecase"
	"github.com/stretchr/testify/mock"
)

func TestFPLSource_CachesLeaguePerLimit(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	next := usecasemock.NewFPLSource(t)
	source := NewFPLSource(next, time.Minute)

	next.
		On("FetchLeague", mock.Anything, 314, 50).
		Return(leaguetable.League{ID: 314, Name: "Office", Entries: []leaguetable.Entry{{Manager: 1}}}, nil).
		Once()
	next.
		On("FetchLeague", mock.Anything, 314, 0).
		Return(leaguetable.League{ID: 314, Name: "Office"}, nil).
		Once()

	for i := 0; i < 3; i++ {
		got, err := source.FetchLeague(ctx, 314, 50)
		if err != nil {
			t.Fatalf("FetchLeague: %v", err)
		}
		if len(got.Entries) != 1 {
			t.Fatalf("unexpected entries: %+v", got.Entries)
		}
		got.Entries[0].Manager = 99
	}
	if _, err := source.FetchLeague(ctx, 314, 0); err != nil {
		t.Fatalf("FetchLeague without limit: %v", err)
	}

	again, _ := source.FetchLeague(ctx, 314, 50)
	if again.Entries[0].Manager != 1 {
		t.Fatalf("cached league was mutated through a returned slice")
	}
}

func TestFPLSource_DoesNotCacheErrors(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	next := usecasemock.NewFPLSource(t)
	source := NewFPLSource(next, time.Minute)

	next.
		On("FetchPlayedGameweeks", mock.Anything, false).
		Return(nil, usecase.ErrDependencyUnavailable).
		Once()
	next.
		On("FetchPlayedGameweeks", mock.Anything, false).
		Return([]int{1, 2, 3}, nil).
		Once()

	if _, err := source.FetchPlayedGameweeks(ctx, false); !errors.Is(err, usecase.ErrDependencyUnavailable) {
		t.Fatalf("expected dependency error, got %v", err)
	}
	got, err := source.FetchPlayedGameweeks(ctx, false)
	if err != nil || len(got) != 3 {
		t.Fatalf("expected reload after error, got %v err=%v", got, err)
	}
	if _, err := source.FetchPlayedGameweeks(ctx, false); err != nil {
		t.Fatalf("expected cached gameweeks, got %v", err)
	}
}
