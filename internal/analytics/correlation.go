package analytics

import (
	"math"

	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat"
)

// PlayerCorrelation is a symmetric element × element Pearson matrix.
type PlayerCorrelation struct {
	Elements []int
	Values   [][]float64
}

// ManagerCorrelation is a symmetric manager × manager Pearson matrix
// labelled by team name.
type ManagerCorrelation struct {
	Managers  []int
	TeamNames []string
	Values    [][]float64
}

// Correlations builds the player and manager correlation matrices for one
// gameweek of the pivot. Element columns that nobody picked in gw are
// dropped. Constant series produce NaN cells, which are kept.
func Correlations(pivot ElementPivot, gw int) (PlayerCorrelation, ManagerCorrelation, error) {
	if err := checkGameweek(gw); err != nil {
		return PlayerCorrelation{}, ManagerCorrelation{}, err
	}
	if pivot.Empty() {
		return PlayerCorrelation{Elements: []int{}, Values: [][]float64{}},
			ManagerCorrelation{Managers: []int{}, TeamNames: []string{}, Values: [][]float64{}},
			nil
	}

	rows := make([]PivotRow, 0)
	for _, row := range pivot.Rows {
		if row.Gameweek == gw {
			rows = append(rows, row)
		}
	}
	if len(rows) == 0 {
		return PlayerCorrelation{}, ManagerCorrelation{}, invalidArgument("gameweek %d not present in pivot", gw)
	}

	kept := make([]int, 0, len(pivot.Elements))
	for col := range pivot.Elements {
		var total float64
		for _, row := range rows {
			total += row.Counts[col]
		}
		if total != 0 {
			kept = append(kept, col)
		}
	}

	elements := make([]int, len(kept))
	for i, col := range kept {
		elements[i] = pivot.Elements[col]
	}
	managers := make([]int, len(rows))
	teamNames := make([]string, len(rows))
	for i, row := range rows {
		managers[i] = row.Manager
		teamNames[i] = row.TeamName
	}

	player := PlayerCorrelation{Elements: elements, Values: squareNaN(len(kept))}
	manager := ManagerCorrelation{Managers: managers, TeamNames: teamNames, Values: squareNaN(len(rows))}
	if len(kept) == 0 {
		return player, manager, nil
	}

	observations := mat.NewDense(len(rows), len(kept), nil)
	for i, row := range rows {
		for j, col := range kept {
			observations.Set(i, j, row.Counts[col])
		}
	}

	columns := make([][]float64, len(kept))
	for j := range kept {
		columns[j] = mat.Col(nil, j, observations)
	}
	pairwise(player.Values, columns)

	series := make([][]float64, len(rows))
	for i := range rows {
		series[i] = mat.Row(nil, i, observations)
	}
	pairwise(manager.Values, series)

	return player, manager, nil
}

// pairwise fills dst[i][j] with the Pearson correlation of series i and j.
func pairwise(dst [][]float64, series [][]float64) {
	for i := range series {
		for j := i; j < len(series); j++ {
			r := stat.Correlation(series[i], series[j], nil)
			dst[i][j] = r
			dst[j][i] = r
		}
	}
}

func squareNaN(n int) [][]float64 {
	out := make([][]float64, n)
	for i := range out {
		out[i] = make([]float64, n)
		for j := range out[i] {
			out[i][j] = math.NaN()
		}
	}
	return out
}
