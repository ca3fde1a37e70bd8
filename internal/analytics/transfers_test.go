package analytics

import (
	"errors"
	"reflect"
	"testing"
)

func transferOwnership() OwnershipTable {
	return OwnershipTable{
		Elements:  []int{1, 2, 3, 4},
		Gameweeks: []int{1, 2},
		Values: [][]float64{
			{50, 100},
			{100, 50},
			{0, 50},
			{50, 50},
		},
	}
}

func TestTransfers_InAndOut(t *testing.T) {
	own := transferOwnership()

	in, err := Transfers(own, 2, DirectionIn)
	if err != nil {
		t.Fatalf("Transfers in error: %v", err)
	}
	wantIn := []Delta{{Element: 1, Value: 50}, {Element: 3, Value: 50}}
	if !reflect.DeepEqual(in.Items, wantIn) {
		t.Fatalf("unexpected in: %+v", in.Items)
	}

	out, err := Transfers(own, 2, DirectionOut)
	if err != nil {
		t.Fatalf("Transfers out error: %v", err)
	}
	if !reflect.DeepEqual(out.Items, []Delta{{Element: 2, Value: 50}}) {
		t.Fatalf("unexpected out: %+v", out.Items)
	}
}

func TestTransfers_FirstGameweekHasNoMoves(t *testing.T) {
	for _, d := range []Direction{DirectionIn, DirectionOut} {
		got, err := Transfers(transferOwnership(), 1, d)
		if err != nil {
			t.Fatalf("Transfers error: %v", err)
		}
		if len(got.Items) != 0 {
			t.Fatalf("expected no moves in first gameweek, got %+v", got.Items)
		}
	}
}

func TestTransfers_PartitionNonZeroDiff(t *testing.T) {
	own := Ownership(append(scenarioPicks(),
		squad(1, "Alpha", 2, 1, seq(5, 15)...),
		squad(2, "Bravo", 2, 12, with(seq(1, 9), 30, 31)...),
	), true, false)

	for _, gw := range own.Gameweeks {
		in, _ := Transfers(own, gw, DirectionIn)
		out, _ := Transfers(own, gw, DirectionOut)
		seen := make(map[int]float64)
		for _, d := range in.Items {
			seen[d.Element] = d.Value
		}
		for _, d := range out.Items {
			if _, dup := seen[d.Element]; dup {
				t.Fatalf("element %d in both directions", d.Element)
			}
			seen[d.Element] = -d.Value
		}
		diff, _ := Diff(own).Column(gw)
		for row, element := range own.Elements {
			v, listed := seen[element]
			if diff[row] == 0 && listed {
				t.Fatalf("gw=%d element %d listed with zero diff", gw, element)
			}
			if diff[row] != 0 && (!listed || !approxEqual(v, diff[row])) {
				t.Fatalf("gw=%d element %d diff=%v reconstructed=%v", gw, element, diff[row], v)
			}
		}
	}
}

func TestTransfers_Errors(t *testing.T) {
	if _, err := Transfers(transferOwnership(), 2, Direction("sideways")); !errors.Is(err, ErrInvalidArgument) {
		t.Fatalf("expected ErrInvalidArgument for direction, got %v", err)
	}
	if _, err := Transfers(transferOwnership(), 7, DirectionIn); !errors.Is(err, ErrInvalidArgument) {
		t.Fatalf("expected ErrInvalidArgument for absent gameweek, got %v", err)
	}
	got, err := Transfers(OwnershipTable{}, 7, DirectionIn)
	if err != nil || len(got.Items) != 0 {
		t.Fatalf("expected empty result for empty table, got %+v err=%v", got, err)
	}
	if _, err := ParseDirection("OUT"); err != nil {
		t.Fatalf("ParseDirection: %v", err)
	}
}
