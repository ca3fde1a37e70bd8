package picks

import (
	"fmt"
	"strings"
)

// DedupPolicy decides what happens when an appended record collides with
// one already in the set.
type DedupPolicy string

const (
	// DedupDropIdentical drops rows equal to an existing row in every field.
	// Rows sharing (manager, gameweek) but differing elsewhere are both kept.
	DedupDropIdentical DedupPolicy = "drop-identical"
	// DedupReplaceKey lets a later row for the same (manager, gameweek)
	// replace the earlier one in place.
	DedupReplaceKey DedupPolicy = "replace-key"
)

func ParseDedupPolicy(raw string) (DedupPolicy, error) {
	switch DedupPolicy(strings.ToLower(strings.TrimSpace(raw))) {
	case "", DedupDropIdentical:
		return DedupDropIdentical, nil
	case DedupReplaceKey:
		return DedupReplaceKey, nil
	default:
		return "", fmt.Errorf("unknown dedup policy %q: valid values are %s, %s", raw, DedupDropIdentical, DedupReplaceKey)
	}
}

// AppendResult reports what an Append did with each incoming row.
type AppendResult struct {
	Added     int
	Identical int
	Replaced  int
}

func (r AppendResult) Merge(other AppendResult) AppendResult {
	return AppendResult{
		Added:     r.Added + other.Added,
		Identical: r.Identical + other.Identical,
		Replaced:  r.Replaced + other.Replaced,
	}
}

// Set is the ordered accumulation of pick records for one session.
// It is not safe for concurrent use; callers serialize access.
type Set struct {
	records []Record
	rows    map[Record]struct{}
	byKey   map[Key]int
}

func NewSet(records ...Record) *Set {
	s := &Set{
		records: make([]Record, 0, len(records)),
		rows:    make(map[Record]struct{}, len(records)),
		byKey:   make(map[Key]int, len(records)),
	}
	s.Append(DedupDropIdentical, records...)
	return s
}

func (s *Set) Append(policy DedupPolicy, incoming ...Record) AppendResult {
	var result AppendResult
	for _, record := range incoming {
		if _, ok := s.rows[record]; ok {
			result.Identical++
			continue
		}

		if idx, ok := s.byKey[record.Key()]; ok && policy == DedupReplaceKey {
			delete(s.rows, s.records[idx])
			s.records[idx] = record
			s.rows[record] = struct{}{}
			result.Replaced++
			continue
		}

		s.rows[record] = struct{}{}
		if _, ok := s.byKey[record.Key()]; !ok {
			s.byKey[record.Key()] = len(s.records)
		}
		s.records = append(s.records, record)
		result.Added++
	}
	return result
}

// Records returns a copy of the records in insertion order.
func (s *Set) Records() []Record {
	out := make([]Record, len(s.records))
	copy(out, s.records)
	return out
}

func (s *Set) Len() int {
	return len(s.records)
}
