package redis

import (
	"testing"
	"time"

	sonic "github.com/bytedance/sonic"

	"github.com/riskibarqy/fpl-league-dashboard/internal/domain/picks"
	"github.com/riskibarqy/fpl-league-dashboard/internal/domain/session"
)

func TestNewSessionRepository_DefaultsTTL(t *testing.T) {
	repo := NewSessionRepository(nil, 0)
	if repo.ttl != defaultTTL {
		t.Fatalf("expected default ttl, got %s", repo.ttl)
	}
}

func TestStoredValuesRoundTrip(t *testing.T) {
	record := picks.Record{Manager: 7, TeamName: "Alpha", Gameweek: 3, Captain: 5, ActiveChip: "bboost"}
	for pos := 1; pos <= picks.TotalSlots; pos++ {
		_ = record.SetSlot(pos, pos)
	}
	raw, err := sonic.Marshal([]picks.Record{record})
	if err != nil {
		t.Fatalf("encode records: %v", err)
	}
	var decoded []picks.Record
	if err := sonic.Unmarshal(raw, &decoded); err != nil {
		t.Fatalf("decode records: %v", err)
	}
	if len(decoded) != 1 || decoded[0] != record {
		t.Fatalf("record changed through encoding: %+v", decoded)
	}

	finished := time.Date(2026, time.August, 30, 18, 0, 0, 0, time.UTC)
	progress := session.Progress{LeagueID: 314, Total: 4, Completed: 3, Failed: 1, Gameweeks: []int{1, 2, 3}, FinishedAt: &finished}
	raw, err = sonic.Marshal(progress)
	if err != nil {
		t.Fatalf("encode progress: %v", err)
	}
	var back session.Progress
	if err := sonic.Unmarshal(raw, &back); err != nil {
		t.Fatalf("decode progress: %v", err)
	}
	if !back.Done() || back.FinishedAt == nil || !back.FinishedAt.Equal(finished) {
		t.Fatalf("progress changed through encoding: %+v", back)
	}
}
