package analytics

import (
	"sort"

	"github.com/riskibarqy/fpl-league-dashboard/internal/domain/picks"
)

// OwnershipTable holds one row per element and one column per gameweek.
// Elements and Gameweeks are ascending; Values[row][col].
type OwnershipTable struct {
	Elements  []int
	Gameweeks []int
	Values    [][]float64
}

func (t OwnershipTable) Empty() bool {
	return len(t.Elements) == 0 || len(t.Gameweeks) == 0
}

// Column returns a copy of the gameweek column in element order.
func (t OwnershipTable) Column(gw int) ([]float64, bool) {
	col := indexOf(t.Gameweeks, gw)
	if col < 0 {
		return nil, false
	}
	out := make([]float64, len(t.Elements))
	for row := range t.Elements {
		out[row] = t.Values[row][col]
	}
	return out, true
}

// Value returns the cell for (element, gw), 0 when either is absent.
func (t OwnershipTable) Value(element, gw int) float64 {
	row := indexOf(t.Elements, element)
	col := indexOf(t.Gameweeks, gw)
	if row < 0 || col < 0 {
		return 0
	}
	return t.Values[row][col]
}

func (t OwnershipTable) ColumnSum(gw int) float64 {
	col, _ := t.Column(gw)
	var sum float64
	for _, v := range col {
		sum += v
	}
	return sum
}

// Ownership tallies how often each element occupies a selected slot in each
// gameweek. With asPercentage the tally is divided by the number of manager
// rows in that gameweek and scaled to 100, so every column sums to
// slots-per-manager × 100. Elements missing from a gameweek are 0.
func Ownership(records []picks.Record, asPercentage, includeSubs bool) OwnershipTable {
	gameweeks := Gameweeks(records)
	counts := make(map[int]map[int]int, len(gameweeks))
	rowsPerGW := make(map[int]int, len(gameweeks))
	elementSet := make(map[int]struct{})

	for _, r := range records {
		tally, ok := counts[r.Gameweek]
		if !ok {
			tally = make(map[int]int)
			counts[r.Gameweek] = tally
		}
		rowsPerGW[r.Gameweek]++
		for _, element := range r.Slots(includeSubs) {
			if element <= 0 {
				continue
			}
			tally[element]++
			elementSet[element] = struct{}{}
		}
	}

	elements := make([]int, 0, len(elementSet))
	for element := range elementSet {
		elements = append(elements, element)
	}
	sort.Ints(elements)

	values := make([][]float64, len(elements))
	for row, element := range elements {
		values[row] = make([]float64, len(gameweeks))
		for col, gw := range gameweeks {
			count := float64(counts[gw][element])
			if asPercentage {
				managers := rowsPerGW[gw]
				if managers == 0 {
					continue
				}
				count = count / float64(managers) * 100
			}
			values[row][col] = count
		}
	}

	return OwnershipTable{
		Elements:  elements,
		Gameweeks: gameweeks,
		Values:    values,
	}
}
