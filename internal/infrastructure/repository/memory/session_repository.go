package memory

import (
	"context"
	"sync"
	"time"

	"github.com/riskibarqy/fpl-league-dashboard/internal/domain/leaguetable"
	"github.com/riskibarqy/fpl-league-dashboard/internal/domain/picks"
	"github.com/riskibarqy/fpl-league-dashboard/internal/domain/session"
	"github.com/riskibarqy/fpl-league-dashboard/internal/platform/cache"
)

type sessionState struct {
	mu       sync.Mutex
	league   *leaguetable.League
	picks    *picks.Set
	progress *session.Progress
}

// SessionRepository keeps session state in process. Sessions expire ttl
// after their last write.
type SessionRepository struct {
	mu       sync.Mutex
	sessions *cache.Store[*sessionState]
}

func NewSessionRepository(ttl time.Duration) *SessionRepository {
	return &SessionRepository{sessions: cache.NewStore[*sessionState](ttl)}
}

// state returns the session's state, creating it when create is set. Every
// create also refreshes the session's expiry.
func (r *SessionRepository) state(ctx context.Context, sessionID string, create bool) (*sessionState, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	st, ok := r.sessions.Get(ctx, sessionID)
	if !ok {
		if !create {
			return nil, false
		}
		st = &sessionState{picks: picks.NewSet()}
	}
	if create {
		r.sessions.Set(ctx, sessionID, st)
	}
	return st, true
}

func (r *SessionRepository) SaveLeague(ctx context.Context, sessionID string, league leaguetable.League) error {
	st, _ := r.state(ctx, sessionID, true)
	copied := copyLeague(league)

	st.mu.Lock()
	st.league = &copied
	st.mu.Unlock()
	return nil
}

func (r *SessionRepository) GetLeague(ctx context.Context, sessionID string) (leaguetable.League, bool, error) {
	st, ok := r.state(ctx, sessionID, false)
	if !ok {
		return leaguetable.League{}, false, nil
	}

	st.mu.Lock()
	defer st.mu.Unlock()
	if st.league == nil {
		return leaguetable.League{}, false, nil
	}
	return copyLeague(*st.league), true, nil
}

func (r *SessionRepository) ResetPicks(ctx context.Context, sessionID string) error {
	st, _ := r.state(ctx, sessionID, true)

	st.mu.Lock()
	st.picks = picks.NewSet()
	st.mu.Unlock()
	return nil
}

func (r *SessionRepository) AppendPicks(ctx context.Context, sessionID string, policy picks.DedupPolicy, records []picks.Record) (picks.AppendResult, error) {
	st, _ := r.state(ctx, sessionID, true)

	st.mu.Lock()
	defer st.mu.Unlock()
	return st.picks.Append(policy, records...), nil
}

func (r *SessionRepository) SnapshotPicks(ctx context.Context, sessionID string) ([]picks.Record, error) {
	st, ok := r.state(ctx, sessionID, false)
	if !ok {
		return []picks.Record{}, nil
	}

	st.mu.Lock()
	defer st.mu.Unlock()
	return st.picks.Records(), nil
}

func (r *SessionRepository) SaveProgress(ctx context.Context, sessionID string, progress session.Progress) error {
	st, _ := r.state(ctx, sessionID, true)
	copied := copyProgress(progress)

	st.mu.Lock()
	st.progress = &copied
	st.mu.Unlock()
	return nil
}

func (r *SessionRepository) UpdateProgress(ctx context.Context, sessionID string, fn func(*session.Progress)) (session.Progress, error) {
	st, _ := r.state(ctx, sessionID, true)

	st.mu.Lock()
	defer st.mu.Unlock()
	if st.progress == nil {
		st.progress = &session.Progress{}
	}
	fn(st.progress)
	return copyProgress(*st.progress), nil
}

func (r *SessionRepository) GetProgress(ctx context.Context, sessionID string) (session.Progress, bool, error) {
	st, ok := r.state(ctx, sessionID, false)
	if !ok {
		return session.Progress{}, false, nil
	}

	st.mu.Lock()
	defer st.mu.Unlock()
	if st.progress == nil {
		return session.Progress{}, false, nil
	}
	return copyProgress(*st.progress), true, nil
}

// PurgeExpired drops expired sessions and reports how many were removed.
func (r *SessionRepository) PurgeExpired() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.sessions.PurgeExpired()
}

func copyLeague(in leaguetable.League) leaguetable.League {
	out := in
	out.Entries = append([]leaguetable.Entry(nil), in.Entries...)
	return out
}

func copyProgress(in session.Progress) session.Progress {
	out := in
	out.Gameweeks = append([]int(nil), in.Gameweeks...)
	if in.FinishedAt != nil {
		finished := *in.FinishedAt
		out.FinishedAt = &finished
	}
	return out
}
