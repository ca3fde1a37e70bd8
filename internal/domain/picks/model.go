package picks

import (
	"errors"
	"fmt"
	"strings"
)

const (
	StarterSlots    = 11
	SubstituteSlots = 4
	TotalSlots      = StarterSlots + SubstituteSlots
)

var (
	ErrInvalidRecord      = errors.New("invalid pick record")
	ErrDuplicateElement   = errors.New("duplicate element in record")
	ErrCaptainNotStarting = errors.New("captain is not a starter")
)

// Key identifies a pick record by manager and gameweek.
type Key struct {
	Manager  int
	Gameweek int
}

// Record is a manager's squad for one gameweek. Element ids are positive;
// Captain and ViceCaptain are 0 when the source did not report one.
type Record struct {
	Manager            int
	TeamName           string
	Gameweek           int
	Starters           [StarterSlots]int
	Substitutes        [SubstituteSlots]int
	Captain            int
	ViceCaptain        int
	ActiveChip         string
	TotalPoints        int
	Points             int
	Value              int
	Bank               int
	OverallRank        int
	EventTransfers     int
	EventTransfersCost int
	PointsOnBench      int
}

func (r Record) Key() Key {
	return Key{Manager: r.Manager, Gameweek: r.Gameweek}
}

func (r Record) HasCaptain() bool {
	return r.Captain > 0
}

// Slots returns the starter elements followed by the substitutes when
// includeSubs is set.
func (r Record) Slots(includeSubs bool) []int {
	size := StarterSlots
	if includeSubs {
		size = TotalSlots
	}
	out := make([]int, 0, size)
	out = append(out, r.Starters[:]...)
	if includeSubs {
		out = append(out, r.Substitutes[:]...)
	}
	return out
}

// SetSlot places element at a 1-based squad position (1..11 starters,
// 12..15 substitutes).
func (r *Record) SetSlot(position, element int) error {
	switch {
	case position >= 1 && position <= StarterSlots:
		r.Starters[position-1] = element
	case position > StarterSlots && position <= TotalSlots:
		r.Substitutes[position-StarterSlots-1] = element
	default:
		return fmt.Errorf("%w: position %d out of range", ErrInvalidRecord, position)
	}
	return nil
}

func (r Record) Validate() error {
	if r.Manager <= 0 {
		return fmt.Errorf("%w: manager id is required", ErrInvalidRecord)
	}
	if r.Gameweek < 1 {
		return fmt.Errorf("%w: gameweek must be >= 1, got %d", ErrInvalidRecord, r.Gameweek)
	}
	if strings.TrimSpace(r.TeamName) == "" {
		return fmt.Errorf("%w: team name is required for manager %d", ErrInvalidRecord, r.Manager)
	}

	seen := make(map[int]struct{}, TotalSlots)
	for i, element := range r.Slots(true) {
		if element <= 0 {
			return fmt.Errorf("%w: slot %s is empty", ErrInvalidRecord, SlotName(i))
		}
		if _, ok := seen[element]; ok {
			return fmt.Errorf("%w: element %d", ErrDuplicateElement, element)
		}
		seen[element] = struct{}{}
	}

	if r.HasCaptain() && !r.starts(r.Captain) {
		return fmt.Errorf("%w: element %d", ErrCaptainNotStarting, r.Captain)
	}
	return nil
}

func (r Record) starts(element int) bool {
	for _, id := range r.Starters {
		if id == element {
			return true
		}
	}
	return false
}

// SlotName returns the column label (P1..P11, S1..S4) of a 0-based slot index.
func SlotName(index int) string {
	if index < StarterSlots {
		return fmt.Sprintf("P%d", index+1)
	}
	return fmt.Sprintf("S%d", index-StarterSlots+1)
}
