package analytics

import (
	"errors"
	"math"
	"testing"

	"github.com/riskibarqy/fpl-league-dashboard/internal/domain/picks"
)

func correlationPicks() []picks.Record {
	return []picks.Record{
		squad(1, "Alpha", 1, 0, seq(1, 11)...),
		squad(2, "Bravo", 1, 0, with(seq(1, 10), 12)...),
		squad(3, "Charlie", 1, 0, with(seq(1, 10), 13)...),
		squad(1, "Alpha", 2, 0, seq(40, 50)...),
	}
}

func TestCorrelations_PlayerAndManager(t *testing.T) {
	pivot := IndexByElement(correlationPicks(), false)

	player, manager, err := Correlations(pivot, 1)
	if err != nil {
		t.Fatalf("Correlations error: %v", err)
	}

	if len(player.Elements) != 13 {
		t.Fatalf("expected zero-sum columns dropped, got elements %v", player.Elements)
	}
	i11, i12 := indexOf(player.Elements, 11), indexOf(player.Elements, 12)
	if got := player.Values[i11][i12]; !approxEqual(got, -0.5) {
		t.Fatalf("corr(11,12)=%v want=-0.5", got)
	}
	if player.Values[i11][i12] != player.Values[i12][i11] {
		t.Fatalf("player matrix not symmetric")
	}
	if !math.IsNaN(player.Values[0][0]) {
		t.Fatalf("expected NaN for an element every manager holds, got %v", player.Values[0][0])
	}

	if got := manager.TeamNames; len(got) != 3 || got[0] != "Alpha" || got[2] != "Charlie" {
		t.Fatalf("unexpected manager labels: %v", got)
	}
	if got := manager.Values[0][1]; !approxEqual(got, 9.0/22.0) {
		t.Fatalf("corr(Alpha,Bravo)=%v want=%v", got, 9.0/22.0)
	}
	for i := range manager.Values {
		if !approxEqual(manager.Values[i][i], 1) {
			t.Fatalf("manager diagonal %d = %v", i, manager.Values[i][i])
		}
	}
}

func TestCorrelations_SingleManagerIsDegenerate(t *testing.T) {
	pivot := IndexByElement(correlationPicks(), false)

	player, manager, err := Correlations(pivot, 2)
	if err != nil {
		t.Fatalf("degenerate input must not error: %v", err)
	}
	if !math.IsNaN(player.Values[0][1]) {
		t.Fatalf("expected NaN player cell for one observation, got %v", player.Values[0][1])
	}
	if len(manager.Values) != 1 {
		t.Fatalf("expected 1x1 manager matrix, got %d", len(manager.Values))
	}
}

func TestCorrelations_GameweekLookup(t *testing.T) {
	pivot := IndexByElement(correlationPicks(), false)

	if _, _, err := Correlations(pivot, 9); !errors.Is(err, ErrInvalidArgument) {
		t.Fatalf("expected ErrInvalidArgument for absent gameweek, got %v", err)
	}
	player, manager, err := Correlations(ElementPivot{}, 9)
	if err != nil {
		t.Fatalf("empty pivot should not error: %v", err)
	}
	if len(player.Values) != 0 || len(manager.Values) != 0 {
		t.Fatalf("expected empty matrices for empty pivot")
	}
}

func TestCorrelations_IsIdempotent(t *testing.T) {
	pivot := IndexByElement(correlationPicks(), false)
	p1, m1, _ := Correlations(pivot, 1)
	p2, m2, _ := Correlations(pivot, 1)
	assertSameBits(t, "player", p1.Values, p2.Values)
	assertSameBits(t, "manager", m1.Values, m2.Values)
}
