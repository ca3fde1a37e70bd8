// Package presentation turns analytics tables into chart-ready series with
// element ids relabelled to player names.
package presentation

import (
	"math"
	"strings"

	crerr "github.com/cockroachdb/errors"
)

// ErrUnknownChart is returned for chart names outside the dashboard set.
var ErrUnknownChart = crerr.New("unknown chart")

type ChartName string

const (
	ChartRank               ChartName = "rank"
	ChartOwnership          ChartName = "prc-own"
	ChartTransfersIn        ChartName = "trans-in"
	ChartTransfersOut       ChartName = "trans-out"
	ChartCaptains           ChartName = "captains"
	ChartManagerCorrelation ChartName = "man-corr"
	ChartPointsBox          ChartName = "points-box"
	ChartTotalPoints        ChartName = "total_points"
)

var chartNames = []ChartName{
	ChartRank,
	ChartOwnership,
	ChartTransfersIn,
	ChartTransfersOut,
	ChartCaptains,
	ChartManagerCorrelation,
	ChartPointsBox,
	ChartTotalPoints,
}

// ChartNames lists every dashboard chart in display order.
func ChartNames() []ChartName {
	return append([]ChartName(nil), chartNames...)
}

func ParseChartName(raw string) (ChartName, error) {
	name := ChartName(strings.ToLower(strings.TrimSpace(raw)))
	for _, known := range chartNames {
		if name == known {
			return name, nil
		}
	}
	return "", crerr.Wrapf(ErrUnknownChart, "%q", raw)
}

type Kind string

const (
	KindLine          Kind = "line"
	KindBar           Kind = "bar"
	KindHorizontalBar Kind = "horizontal_bar"
	KindPie           Kind = "pie"
	KindHeatmap       Kind = "heatmap"
	KindBox           Kind = "box"
)

type Axis struct {
	Title    string `json:"title,omitempty"`
	Reversed bool   `json:"reversed,omitempty"`
}

// Series is one trace. Y holds nil for gaps.
type Series struct {
	Name string     `json:"name"`
	X    []string   `json:"x,omitempty"`
	Y    []*float64 `json:"y"`
}

type Chart struct {
	Name     ChartName `json:"name"`
	Kind     Kind      `json:"kind"`
	Title    string    `json:"title"`
	Gameweek int       `json:"gameweek,omitempty"`
	XAxis    Axis      `json:"xAxis"`
	YAxis    Axis      `json:"yAxis"`
	Series   []Series  `json:"series"`
}

// gap converts NaN and infinities to nil so they encode as JSON null.
func gap(v float64) *float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return nil
	}
	return &v
}

func gaps(values []float64) []*float64 {
	out := make([]*float64, len(values))
	for i, v := range values {
		out[i] = gap(v)
	}
	return out
}
