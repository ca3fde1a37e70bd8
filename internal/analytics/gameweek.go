package analytics

import (
	"sort"

	"github.com/riskibarqy/fpl-league-dashboard/internal/domain/picks"
)

// Gameweeks returns the distinct gameweeks present in records, ascending.
func Gameweeks(records []picks.Record) []int {
	seen := make(map[int]struct{})
	out := make([]int, 0)
	for _, r := range records {
		if _, ok := seen[r.Gameweek]; ok {
			continue
		}
		seen[r.Gameweek] = struct{}{}
		out = append(out, r.Gameweek)
	}
	sort.Ints(out)
	return out
}

// LatestGameweek returns the highest gameweek present in records.
func LatestGameweek(records []picks.Record) (int, bool) {
	gws := Gameweeks(records)
	if len(gws) == 0 {
		return 0, false
	}
	return gws[len(gws)-1], true
}

// FilterGameweek keeps the records of gameweek gw in their original order.
func FilterGameweek(records []picks.Record, gw int) []picks.Record {
	out := make([]picks.Record, 0)
	for _, r := range records {
		if r.Gameweek == gw {
			out = append(out, r)
		}
	}
	return out
}

// requireGameweek applies the lookup rule shared by the per-gameweek
// operations: an empty input is answered with an empty result, a non-empty
// input must contain gw.
func requireGameweek(records []picks.Record, gw int) ([]picks.Record, bool, error) {
	if err := checkGameweek(gw); err != nil {
		return nil, false, err
	}
	if len(records) == 0 {
		return nil, false, nil
	}
	rows := FilterGameweek(records, gw)
	if len(rows) == 0 {
		return nil, false, invalidArgument("gameweek %d not present in picks", gw)
	}
	return rows, true, nil
}

func indexOf(values []int, want int) int {
	for i, v := range values {
		if v == want {
			return i
		}
	}
	return -1
}
