package session

import (
	"fmt"
	"time"
)

// minLabelPercent hides the progress label while the bar is too narrow to
// render it.
const minLabelPercent = 5.0

// Progress tracks the scrape of a session's managers.
type Progress struct {
	LeagueID   int
	Total      int
	Completed  int
	Failed     int
	Gameweeks  []int
	StartedAt  time.Time
	FinishedAt *time.Time
}

// Processed counts managers that finished, successfully or not.
func (p Progress) Processed() int {
	return p.Completed + p.Failed
}

// Percent is 100 once the scrape is stamped finished, even when some
// managers had nothing to fetch.
func (p Progress) Percent() float64 {
	if p.FinishedAt != nil {
		return 100
	}
	if p.Total <= 0 {
		return 0
	}
	return float64(p.Processed()) / float64(p.Total) * 100
}

func (p Progress) Done() bool {
	return p.FinishedAt != nil || (p.Total > 0 && p.Processed() >= p.Total)
}

// Label renders "processed/total", or an empty string below 5 percent. A
// finished scrape renders "total/total".
func (p Progress) Label() string {
	if p.Percent() < minLabelPercent {
		return ""
	}
	if p.FinishedAt != nil {
		return fmt.Sprintf("%d/%d", p.Total, p.Total)
	}
	return fmt.Sprintf("%d/%d", p.Processed(), p.Total)
}
