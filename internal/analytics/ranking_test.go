package analytics

import (
	"errors"
	"math"
	"sort"
	"testing"

	"github.com/riskibarqy/fpl-league-dashboard/internal/domain/picks"
)

func rankingPicks() []picks.Record {
	rec := func(manager int, team string, gw, total, points int) picks.Record {
		r := squad(manager, team, gw, 0, seq(1, 11)...)
		r.TotalPoints = total
		r.Points = points
		return r
	}
	return []picks.Record{
		rec(1, "Alpha", 1, 50, 50),
		rec(2, "Bravo", 1, 60, 60),
		rec(3, "Charlie", 1, 60, 60),
		rec(1, "Alpha", 2, 120, 70),
		rec(2, "Bravo", 2, 100, 40),
	}
}

func TestRanking_RawValues(t *testing.T) {
	table, err := Ranking(rankingPicks(), ColumnTotalPoints, false)
	if err != nil {
		t.Fatalf("Ranking error: %v", err)
	}
	if len(table.Rows) != 3 || table.Rows[0].TeamName != "Alpha" || table.Rows[2].TeamName != "Charlie" {
		t.Fatalf("unexpected row order: %+v", table.Rows)
	}
	if got := table.Rows[0].Values; got[0] != 50 || got[1] != 120 {
		t.Fatalf("unexpected alpha values: %v", got)
	}
	if !math.IsNaN(table.Rows[2].Values[1]) {
		t.Fatalf("expected NaN for missing Charlie gw2, got %v", table.Rows[2].Values[1])
	}
}

func TestRanking_FirstMethodDescending(t *testing.T) {
	table, err := Ranking(rankingPicks(), ColumnTotalPoints, true)
	if err != nil {
		t.Fatalf("Ranking error: %v", err)
	}

	gw1, _ := table.Column(1)
	if gw1[0] != 3 || gw1[1] != 1 || gw1[2] != 2 {
		t.Fatalf("unexpected gw1 ranks (tie must favour earlier row): %v", gw1)
	}
	gw2, _ := table.Column(2)
	if gw2[0] != 1 || gw2[1] != 2 || !math.IsNaN(gw2[2]) {
		t.Fatalf("unexpected gw2 ranks: %v", gw2)
	}
}

func TestRanking_RanksArePermutations(t *testing.T) {
	table, _ := Ranking(rankingPicks(), ColumnPoints, true)
	for _, gw := range table.Gameweeks {
		col, _ := table.Column(gw)
		ranks := make([]int, 0)
		for _, v := range col {
			if !math.IsNaN(v) {
				ranks = append(ranks, int(v))
			}
		}
		sort.Ints(ranks)
		for i, r := range ranks {
			if r != i+1 {
				t.Fatalf("gw=%d ranks are not 1..N: %v", gw, ranks)
			}
		}
	}
}

func TestRanking_UnknownColumn(t *testing.T) {
	if _, err := Ranking(rankingPicks(), ValueColumn("goals"), false); !errors.Is(err, ErrInvalidArgument) {
		t.Fatalf("expected ErrInvalidArgument, got %v", err)
	}
	if _, err := ParseValueColumn("Total_Points"); err != nil {
		t.Fatalf("expected case-insensitive parse, got %v", err)
	}
}

func TestRanking_IsIdempotent(t *testing.T) {
	records := rankingPicks()
	a, _ := Ranking(records, ColumnTotalPoints, true)
	b, _ := Ranking(records, ColumnTotalPoints, true)
	grid := func(tb RankingTable) [][]float64 {
		out := make([][]float64, len(tb.Rows))
		for i, row := range tb.Rows {
			out[i] = row.Values
		}
		return out
	}
	assertSameBits(t, "ranking", grid(a), grid(b))
}
