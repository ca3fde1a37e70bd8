package presentation

import (
	"sort"
	"strconv"

	crerr "github.com/cockroachdb/errors"

	"github.com/riskibarqy/fpl-league-dashboard/internal/analytics"
	"github.com/riskibarqy/fpl-league-dashboard/internal/domain/element"
	"github.com/riskibarqy/fpl-league-dashboard/internal/domain/picks"
)

const DefaultTopOwnership = 20

type Options struct {
	IncludeSubs bool
	// TopOwnership caps the ownership bar chart; <= 0 uses DefaultTopOwnership.
	TopOwnership int
}

// Input is a stable pick snapshot plus what is needed to label it.
// Gameweek 0 selects the latest gameweek in Picks.
type Input struct {
	Picks    []picks.Record
	Gameweek int
	Catalog  element.Catalog
	Options  Options
}

type Dashboard struct {
	Gameweek  int     `json:"gameweek"`
	Gameweeks []int   `json:"gameweeks"`
	Charts    []Chart `json:"charts"`
}

// Chart returns the named chart from the dashboard.
func (d Dashboard) Chart(name ChartName) (Chart, bool) {
	for _, c := range d.Charts {
		if c.Name == name {
			return c, true
		}
	}
	return Chart{}, false
}

// BuildDashboard renders every chart for one gameweek of the snapshot.
func BuildDashboard(in Input) (Dashboard, error) {
	b, err := newBuilder(in)
	if err != nil {
		return Dashboard{}, err
	}

	charts := make([]Chart, 0, len(chartNames))
	for _, name := range chartNames {
		chart, err := b.build(name)
		if err != nil {
			return Dashboard{}, crerr.Wrapf(err, "build chart %s", name)
		}
		charts = append(charts, chart)
	}

	return Dashboard{
		Gameweek:  b.gw,
		Gameweeks: b.gameweeks,
		Charts:    charts,
	}, nil
}

// BuildChart renders a single named chart.
func BuildChart(in Input, name ChartName) (Chart, error) {
	b, err := newBuilder(in)
	if err != nil {
		return Chart{}, err
	}
	return b.build(name)
}

// builder memoizes tables shared between charts of one render.
type builder struct {
	in        Input
	gw        int
	gameweeks []int

	ownership *analytics.OwnershipTable
}

func newBuilder(in Input) (*builder, error) {
	gameweeks := analytics.Gameweeks(in.Picks)
	gw := in.Gameweek
	if gw == 0 && len(gameweeks) > 0 {
		gw = gameweeks[len(gameweeks)-1]
	}
	if gw < 0 {
		return nil, crerr.Wrapf(analytics.ErrInvalidArgument, "gameweek must be >= 0, got %d", gw)
	}
	if len(gameweeks) > 0 && !containsInt(gameweeks, gw) {
		return nil, crerr.Wrapf(analytics.ErrInvalidArgument, "gameweek %d not present in picks", gw)
	}
	return &builder{in: in, gw: gw, gameweeks: gameweeks}, nil
}

func containsInt(sorted []int, v int) bool {
	i := sort.SearchInts(sorted, v)
	return i < len(sorted) && sorted[i] == v
}

func (b *builder) empty() bool {
	return len(b.in.Picks) == 0
}

func (b *builder) build(name ChartName) (Chart, error) {
	switch name {
	case ChartRank:
		return b.rankingChart(name, analytics.ColumnTotalPoints, true)
	case ChartTotalPoints:
		return b.rankingChart(name, analytics.ColumnTotalPoints, false)
	case ChartPointsBox:
		return b.pointsBox()
	case ChartOwnership:
		return b.ownershipChart(), nil
	case ChartTransfersIn:
		return b.transfersChart(name, analytics.DirectionIn)
	case ChartTransfersOut:
		return b.transfersChart(name, analytics.DirectionOut)
	case ChartCaptains:
		return b.captainsChart()
	case ChartManagerCorrelation:
		return b.managerCorrelation()
	default:
		return Chart{}, crerr.Wrapf(ErrUnknownChart, "%q", string(name))
	}
}

func (b *builder) ownershipTable() analytics.OwnershipTable {
	if b.ownership == nil {
		own := analytics.Ownership(b.in.Picks, true, b.in.Options.IncludeSubs)
		b.ownership = &own
	}
	return *b.ownership
}

func (b *builder) gameweekLabels(gws []int) []string {
	out := make([]string, len(gws))
	for i, gw := range gws {
		out[i] = strconv.Itoa(gw)
	}
	return out
}

func (b *builder) rankingChart(name ChartName, column analytics.ValueColumn, rank bool) (Chart, error) {
	table, err := analytics.Ranking(b.in.Picks, column, rank)
	if err != nil {
		return Chart{}, err
	}

	chart := Chart{
		Name:   name,
		Kind:   KindLine,
		Title:  "Total Points",
		XAxis:  Axis{Title: "GameWeek"},
		YAxis:  Axis{Title: "Total Points"},
		Series: make([]Series, 0, len(table.Rows)),
	}
	if rank {
		chart.Title = "League Rankings"
		chart.YAxis = Axis{Title: "League Rank", Reversed: true}
	}

	x := b.gameweekLabels(table.Gameweeks)
	for _, row := range table.Rows {
		chart.Series = append(chart.Series, Series{Name: row.TeamName, X: x, Y: gaps(row.Values)})
	}
	return chart, nil
}

func (b *builder) pointsBox() (Chart, error) {
	table, err := analytics.Ranking(b.in.Picks, analytics.ColumnPoints, false)
	if err != nil {
		return Chart{}, err
	}

	chart := Chart{
		Name:   ChartPointsBox,
		Kind:   KindBox,
		Title:  "Manager Points",
		YAxis:  Axis{Title: "GameWeek Points"},
		Series: make([]Series, 0, len(table.Rows)),
	}
	for _, row := range table.Rows {
		chart.Series = append(chart.Series, Series{Name: row.TeamName, Y: gaps(row.Values)})
	}
	return chart, nil
}

func (b *builder) ownershipChart() Chart {
	chart := Chart{
		Name:     ChartOwnership,
		Kind:     KindBar,
		Title:    "Ownership",
		Gameweek: b.gw,
		YAxis:    Axis{Title: "Ownership %"},
		Series:   []Series{},
	}
	if b.empty() {
		return chart
	}

	own := b.ownershipTable()
	col, _ := own.Column(b.gw)
	type owned struct {
		element int
		value   float64
	}
	items := make([]owned, 0, len(col))
	for row, v := range col {
		if v > 0 {
			items = append(items, owned{element: own.Elements[row], value: v})
		}
	}
	sort.SliceStable(items, func(i, j int) bool { return items[i].value > items[j].value })

	limit := b.in.Options.TopOwnership
	if limit <= 0 {
		limit = DefaultTopOwnership
	}
	if len(items) > limit {
		items = items[:limit]
	}

	series := Series{Name: "Ownership %", X: make([]string, 0, len(items)), Y: make([]*float64, 0, len(items))}
	for _, it := range items {
		series.X = append(series.X, b.in.Catalog.Name(it.element))
		series.Y = append(series.Y, gap(it.value))
	}
	chart.Series = append(chart.Series, series)
	return chart
}

func (b *builder) transfersChart(name ChartName, direction analytics.Direction) (Chart, error) {
	chart := Chart{
		Name:     name,
		Kind:     KindHorizontalBar,
		Title:    "Transfers In",
		Gameweek: b.gw,
		XAxis:    Axis{Title: "Ownership change %"},
		Series:   []Series{},
	}
	if direction == analytics.DirectionOut {
		chart.Title = "Transfers Out"
	}
	if b.empty() {
		return chart, nil
	}

	deltas, err := analytics.Transfers(b.ownershipTable(), b.gw, direction)
	if err != nil {
		return Chart{}, err
	}
	series := Series{Name: chart.Title, X: make([]string, 0, len(deltas.Items)), Y: make([]*float64, 0, len(deltas.Items))}
	for _, d := range deltas.Items {
		series.X = append(series.X, b.in.Catalog.Name(d.Element))
		series.Y = append(series.Y, gap(d.Value))
	}
	chart.Series = append(chart.Series, series)
	return chart, nil
}

func (b *builder) captainsChart() (Chart, error) {
	chart := Chart{
		Name:     ChartCaptains,
		Kind:     KindPie,
		Title:    "Captains",
		Gameweek: b.gw,
		Series:   []Series{},
	}
	if b.empty() {
		return chart, nil
	}

	shares, err := analytics.Captaincy(b.in.Picks, b.gw)
	if err != nil {
		return Chart{}, err
	}
	series := Series{Name: "Captain %", X: make([]string, 0, len(shares.Items)), Y: make([]*float64, 0, len(shares.Items))}
	for _, s := range shares.Items {
		series.X = append(series.X, b.in.Catalog.Name(s.Element))
		series.Y = append(series.Y, gap(s.Percent))
	}
	chart.Series = append(chart.Series, series)
	return chart, nil
}

func (b *builder) managerCorrelation() (Chart, error) {
	chart := Chart{
		Name:     ChartManagerCorrelation,
		Kind:     KindHeatmap,
		Title:    "Manager Correlation",
		Gameweek: b.gw,
		Series:   []Series{},
	}
	if b.empty() {
		return chart, nil
	}

	pivot := analytics.IndexByElement(b.in.Picks, b.in.Options.IncludeSubs)
	_, managers, err := analytics.Correlations(pivot, b.gw)
	if err != nil {
		return Chart{}, err
	}
	for i, team := range managers.TeamNames {
		chart.Series = append(chart.Series, Series{
			Name: team,
			X:    managers.TeamNames,
			Y:    gaps(managers.Values[i]),
		})
	}
	return chart, nil
}
