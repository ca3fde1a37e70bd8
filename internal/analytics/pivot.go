package analytics

import (
	"sort"

	"github.com/riskibarqy/fpl-league-dashboard/internal/domain/picks"
)

// PivotRow is one pick record re-indexed by element. Counts follows the
// parent pivot's Elements order.
type PivotRow struct {
	Manager  int
	TeamName string
	Gameweek int
	Counts   []float64
}

// ElementPivot has one row per pick record and one column per element id
// seen in any selected slot.
type ElementPivot struct {
	Elements []int
	Rows     []PivotRow
}

func (p ElementPivot) Empty() bool {
	return len(p.Rows) == 0
}

// IndexByElement re-indexes each record from slot positions to element ids.
// Row order follows records; element columns are ascending.
func IndexByElement(records []picks.Record, includeSubs bool) ElementPivot {
	elementSet := make(map[int]struct{})
	for _, r := range records {
		for _, element := range r.Slots(includeSubs) {
			if element > 0 {
				elementSet[element] = struct{}{}
			}
		}
	}

	elements := make([]int, 0, len(elementSet))
	for element := range elementSet {
		elements = append(elements, element)
	}
	sort.Ints(elements)

	column := make(map[int]int, len(elements))
	for i, element := range elements {
		column[element] = i
	}

	rows := make([]PivotRow, 0, len(records))
	for _, r := range records {
		counts := make([]float64, len(elements))
		for _, element := range r.Slots(includeSubs) {
			if element <= 0 {
				continue
			}
			counts[column[element]]++
		}
		rows = append(rows, PivotRow{
			Manager:  r.Manager,
			TeamName: r.TeamName,
			Gameweek: r.Gameweek,
			Counts:   counts,
		})
	}

	return ElementPivot{Elements: elements, Rows: rows}
}
