package analytics

import (
	"sort"
	"strings"
)

type Direction string

const (
	DirectionIn  Direction = "in"
	DirectionOut Direction = "out"
)

// ParseDirection accepts "in" or "out", ignoring case and surrounding space.
func ParseDirection(raw string) (Direction, error) {
	d := Direction(strings.ToLower(strings.TrimSpace(raw)))
	switch d {
	case DirectionIn, DirectionOut:
		return d, nil
	default:
		return "", invalidArgument("unknown transfer direction %q", raw)
	}
}

type Delta struct {
	Element int
	Value   float64
}

// DeltaTable lists ownership moves for one gameweek, ascending by Value.
type DeltaTable struct {
	Gameweek  int
	Direction Direction
	Items     []Delta
}

// Diff returns the first difference of own across gameweek columns. The
// first column is all zero.
func Diff(own OwnershipTable) OwnershipTable {
	values := make([][]float64, len(own.Elements))
	for row := range own.Elements {
		values[row] = make([]float64, len(own.Gameweeks))
		for col := 1; col < len(own.Gameweeks); col++ {
			values[row][col] = own.Values[row][col] - own.Values[row][col-1]
		}
	}
	return OwnershipTable{
		Elements:  append([]int(nil), own.Elements...),
		Gameweeks: append([]int(nil), own.Gameweeks...),
		Values:    values,
	}
}

// Transfers lists the elements whose ownership rose (in) or fell (out) going
// into gw. Out deltas are reported as positive magnitudes.
func Transfers(own OwnershipTable, gw int, direction Direction) (DeltaTable, error) {
	if direction != DirectionIn && direction != DirectionOut {
		return DeltaTable{}, invalidArgument("unknown transfer direction %q", string(direction))
	}
	if err := checkGameweek(gw); err != nil {
		return DeltaTable{}, err
	}
	out := DeltaTable{Gameweek: gw, Direction: direction, Items: []Delta{}}
	if own.Empty() {
		return out, nil
	}
	if indexOf(own.Gameweeks, gw) < 0 {
		return DeltaTable{}, invalidArgument("gameweek %d not present in ownership", gw)
	}

	diff, _ := Diff(own).Column(gw)
	for row, element := range own.Elements {
		switch v := diff[row]; {
		case direction == DirectionIn && v > 0:
			out.Items = append(out.Items, Delta{Element: element, Value: v})
		case direction == DirectionOut && v < 0:
			out.Items = append(out.Items, Delta{Element: element, Value: -v})
		}
	}

	// Items are built in ascending element order, so a stable sort keeps
	// element order among equal deltas.
	sort.SliceStable(out.Items, func(i, j int) bool {
		return out.Items[i].Value < out.Items[j].Value
	})
	return out, nil
}
