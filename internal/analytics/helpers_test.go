package analytics

import (
	"math"
	"testing"

	"github.com/riskibarqy/fpl-league-dashboard/internal/domain/picks"
)

// squad builds a record from up to 15 elements: starters first, then subs.
func squad(manager int, team string, gw, captain int, elements ...int) picks.Record {
	r := picks.Record{Manager: manager, TeamName: team, Gameweek: gw, Captain: captain}
	for i, element := range elements {
		_ = r.SetSlot(i+1, element)
	}
	return r
}

func seq(from, to int) []int {
	out := make([]int, 0, to-from+1)
	for i := from; i <= to; i++ {
		out = append(out, i)
	}
	return out
}

func with(base []int, extra ...int) []int {
	out := append([]int(nil), base...)
	return append(out, extra...)
}

func approxEqual(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}

func assertSameBits(t *testing.T, label string, a, b [][]float64) {
	t.Helper()
	if len(a) != len(b) {
		t.Fatalf("%s: row count differs: %d vs %d", label, len(a), len(b))
	}
	for i := range a {
		if len(a[i]) != len(b[i]) {
			t.Fatalf("%s: row %d width differs", label, i)
		}
		for j := range a[i] {
			if math.Float64bits(a[i][j]) != math.Float64bits(b[i][j]) {
				t.Fatalf("%s: cell (%d,%d) differs: %v vs %v", label, i, j, a[i][j], b[i][j])
			}
		}
	}
}

// scenarioPicks is two managers in gameweek 1 sharing ten starters.
func scenarioPicks() []picks.Record {
	subs := seq(201, 204)
	return []picks.Record{
		squad(1, "Alpha", 1, 1, with(seq(1, 11), subs...)...),
		squad(2, "Bravo", 1, 12, with(with(seq(1, 10), 12), subs...)...),
	}
}
