package analytics

import (
	"math"
	"sort"
	"strings"

	"github.com/riskibarqy/fpl-league-dashboard/internal/domain/picks"
)

// ValueColumn names a per-record numeric field that can be pivoted by
// manager and gameweek.
type ValueColumn string

const (
	ColumnTotalPoints        ValueColumn = "total_points"
	ColumnPoints             ValueColumn = "points"
	ColumnValue              ValueColumn = "value"
	ColumnBank               ValueColumn = "bank"
	ColumnOverallRank        ValueColumn = "overall_rank"
	ColumnEventTransfers     ValueColumn = "event_transfers"
	ColumnEventTransfersCost ValueColumn = "event_transfers_cost"
	ColumnPointsOnBench      ValueColumn = "points_on_bench"
)

// ParseValueColumn maps a case-insensitive column name to a ValueColumn.
func ParseValueColumn(raw string) (ValueColumn, error) {
	column := ValueColumn(strings.ToLower(strings.TrimSpace(raw)))
	if _, ok := column.extractor(); !ok {
		return "", invalidArgument("unknown value column %q", raw)
	}
	return column, nil
}

func (c ValueColumn) extractor() (func(picks.Record) float64, bool) {
	switch c {
	case ColumnTotalPoints:
		return func(r picks.Record) float64 { return float64(r.TotalPoints) }, true
	case ColumnPoints:
		return func(r picks.Record) float64 { return float64(r.Points) }, true
	case ColumnValue:
		return func(r picks.Record) float64 { return float64(r.Value) }, true
	case ColumnBank:
		return func(r picks.Record) float64 { return float64(r.Bank) }, true
	case ColumnOverallRank:
		return func(r picks.Record) float64 { return float64(r.OverallRank) }, true
	case ColumnEventTransfers:
		return func(r picks.Record) float64 { return float64(r.EventTransfers) }, true
	case ColumnEventTransfersCost:
		return func(r picks.Record) float64 { return float64(r.EventTransfersCost) }, true
	case ColumnPointsOnBench:
		return func(r picks.Record) float64 { return float64(r.PointsOnBench) }, true
	default:
		return nil, false
	}
}

type RankingRow struct {
	Manager  int
	TeamName string
	// Values follows the parent table's Gameweeks. Missing cells are NaN.
	Values []float64
}

type RankingTable struct {
	Gameweeks []int
	Rows      []RankingRow
}

func (t RankingTable) Empty() bool {
	return len(t.Rows) == 0
}

// Column returns the gameweek column in row order.
func (t RankingTable) Column(gw int) ([]float64, bool) {
	col := indexOf(t.Gameweeks, gw)
	if col < 0 {
		return nil, false
	}
	out := make([]float64, len(t.Rows))
	for i, row := range t.Rows {
		out[i] = row.Values[col]
	}
	return out, true
}

// Ranking pivots column by manager and gameweek. With rank each gameweek is
// replaced by its descending ordinal rank over present cells, ties going to
// the earlier row. Rows keep the order managers first appear in.
// When a manager has several records in one gameweek the last one wins.
func Ranking(records []picks.Record, column ValueColumn, rank bool) (RankingTable, error) {
	extract, ok := column.extractor()
	if !ok {
		return RankingTable{}, invalidArgument("unknown value column %q", string(column))
	}

	gameweeks := Gameweeks(records)
	colIndex := make(map[int]int, len(gameweeks))
	for i, gw := range gameweeks {
		colIndex[gw] = i
	}

	rowIndex := make(map[int]int)
	rows := make([]RankingRow, 0)
	for _, r := range records {
		idx, ok := rowIndex[r.Manager]
		if !ok {
			idx = len(rows)
			rowIndex[r.Manager] = idx
			values := make([]float64, len(gameweeks))
			for i := range values {
				values[i] = math.NaN()
			}
			rows = append(rows, RankingRow{Manager: r.Manager, TeamName: r.TeamName, Values: values})
		}
		rows[idx].Values[colIndex[r.Gameweek]] = extract(r)
	}

	if rank {
		for col := range gameweeks {
			rankColumn(rows, col)
		}
	}

	return RankingTable{Gameweeks: gameweeks, Rows: rows}, nil
}

func rankColumn(rows []RankingRow, col int) {
	present := make([]int, 0, len(rows))
	for i, row := range rows {
		if !math.IsNaN(row.Values[col]) {
			present = append(present, i)
		}
	}
	sort.SliceStable(present, func(a, b int) bool {
		return rows[present[a]].Values[col] > rows[present[b]].Values[col]
	})
	for position, i := range present {
		rows[i].Values[col] = float64(position + 1)
	}
}
