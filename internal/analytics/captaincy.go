package analytics

import (
	"sort"

	"github.com/riskibarqy/fpl-league-dashboard/internal/domain/picks"
)

// Share counts the records that picked Element. Percent is Count over the
// table Total.
type Share struct {
	Element int
	Count   int
	Percent float64
}

// ShareTable holds captaincy shares for one gameweek sorted by element id.
// Total is the number of records that named a captain.
type ShareTable struct {
	Gameweek int
	Total    int
	Items    []Share
}

// Captaincy tallies captain choices in gw. Records without a captain do not
// count toward the denominator.
func Captaincy(records []picks.Record, gw int) (ShareTable, error) {
	rows, ok, err := requireGameweek(records, gw)
	if err != nil {
		return ShareTable{}, err
	}
	out := ShareTable{Gameweek: gw, Items: []Share{}}
	if !ok {
		return out, nil
	}

	counts := make(map[int]int)
	for _, r := range rows {
		if !r.HasCaptain() {
			continue
		}
		counts[r.Captain]++
		out.Total++
	}
	if out.Total == 0 {
		return out, nil
	}

	for element, count := range counts {
		out.Items = append(out.Items, Share{
			Element: element,
			Count:   count,
			Percent: float64(count) / float64(out.Total) * 100,
		})
	}
	sort.Slice(out.Items, func(i, j int) bool {
		return out.Items[i].Element < out.Items[j].Element
	})
	return out, nil
}
