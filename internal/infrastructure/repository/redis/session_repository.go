package redis

import (
	"context"
	"errors"
	"fmt"
	"time"

	sonic "github.com/bytedance/sonic"
	goredis "github.com/redis/go-redis/v9"

	"github.com/riskibarqy/fpl-league-dashboard/internal/domain/leaguetable"
	"github.com/riskibarqy/fpl-league-dashboard/internal/domain/picks"
	"github.com/riskibarqy/fpl-league-dashboard/internal/domain/session"
)

const (
	keyPrefix      = "fpl:session:"
	maxTxRetries   = 16
	defaultTTL     = 2 * time.Hour
	leagueSuffix   = ":league"
	picksSuffix    = ":picks"
	progressSuffix = ":progress"
)

// SessionRepository stores session state as sonic-encoded JSON values that
// expire ttl after their last write. Read-modify-write operations run as
// WATCH transactions and retry on conflict.
type SessionRepository struct {
	client goredis.UniversalClient
	ttl    time.Duration
}

func NewSessionRepository(client goredis.UniversalClient, ttl time.Duration) *SessionRepository {
	if ttl <= 0 {
		ttl = defaultTTL
	}
	return &SessionRepository{client: client, ttl: ttl}
}

func leagueKey(sessionID string) string   { return keyPrefix + sessionID + leagueSuffix }
func picksKey(sessionID string) string    { return keyPrefix + sessionID + picksSuffix }
func progressKey(sessionID string) string { return keyPrefix + sessionID + progressSuffix }

func (r *SessionRepository) SaveLeague(ctx context.Context, sessionID string, league leaguetable.League) error {
	return r.setJSON(ctx, leagueKey(sessionID), league)
}

func (r *SessionRepository) GetLeague(ctx context.Context, sessionID string) (leaguetable.League, bool, error) {
	var league leaguetable.League
	ok, err := r.getJSON(ctx, r.client, leagueKey(sessionID), &league)
	return league, ok, err
}

func (r *SessionRepository) ResetPicks(ctx context.Context, sessionID string) error {
	if err := r.client.Del(ctx, picksKey(sessionID)).Err(); err != nil {
		return fmt.Errorf("reset picks session=%s: %w", sessionID, err)
	}
	return nil
}

func (r *SessionRepository) AppendPicks(ctx context.Context, sessionID string, policy picks.DedupPolicy, records []picks.Record) (picks.AppendResult, error) {
	var result picks.AppendResult
	key := picksKey(sessionID)
	err := r.update(ctx, key, func(tx *goredis.Tx) (any, error) {
		var existing []picks.Record
		if _, err := r.getJSON(ctx, tx, key, &existing); err != nil {
			return nil, err
		}
		set := picks.NewSet(existing...)
		result = set.Append(policy, records...)
		return set.Records(), nil
	})
	if err != nil {
		return picks.AppendResult{}, fmt.Errorf("append picks session=%s: %w", sessionID, err)
	}
	return result, nil
}

func (r *SessionRepository) SnapshotPicks(ctx context.Context, sessionID string) ([]picks.Record, error) {
	records := make([]picks.Record, 0)
	if _, err := r.getJSON(ctx, r.client, picksKey(sessionID), &records); err != nil {
		return nil, err
	}
	return records, nil
}

func (r *SessionRepository) SaveProgress(ctx context.Context, sessionID string, progress session.Progress) error {
	return r.setJSON(ctx, progressKey(sessionID), progress)
}

func (r *SessionRepository) UpdateProgress(ctx context.Context, sessionID string, fn func(*session.Progress)) (session.Progress, error) {
	var progress session.Progress
	key := progressKey(sessionID)
	err := r.update(ctx, key, func(tx *goredis.Tx) (any, error) {
		progress = session.Progress{}
		if _, err := r.getJSON(ctx, tx, key, &progress); err != nil {
			return nil, err
		}
		fn(&progress)
		return progress, nil
	})
	if err != nil {
		return session.Progress{}, fmt.Errorf("update progress session=%s: %w", sessionID, err)
	}
	return progress, nil
}

func (r *SessionRepository) GetProgress(ctx context.Context, sessionID string) (session.Progress, bool, error) {
	var progress session.Progress
	ok, err := r.getJSON(ctx, r.client, progressKey(sessionID), &progress)
	return progress, ok, err
}

// update watches key, computes the next value from the current one and
// writes it back inside MULTI/EXEC, retrying when another writer won.
func (r *SessionRepository) update(ctx context.Context, key string, next func(tx *goredis.Tx) (any, error)) error {
	for attempt := 0; attempt < maxTxRetries; attempt++ {
		err := r.client.Watch(ctx, func(tx *goredis.Tx) error {
			value, err := next(tx)
			if err != nil {
				return err
			}
			raw, err := sonic.Marshal(value)
			if err != nil {
				return fmt.Errorf("encode %s: %w", key, err)
			}
			_, err = tx.TxPipelined(ctx, func(pipe goredis.Pipeliner) error {
				pipe.Set(ctx, key, raw, r.ttl)
				return nil
			})
			return err
		}, key)
		if errors.Is(err, goredis.TxFailedErr) {
			continue
		}
		return err
	}
	return fmt.Errorf("transaction on %s exceeded %d retries", key, maxTxRetries)
}

func (r *SessionRepository) setJSON(ctx context.Context, key string, value any) error {
	raw, err := sonic.Marshal(value)
	if err != nil {
		return fmt.Errorf("encode %s: %w", key, err)
	}
	if err := r.client.Set(ctx, key, raw, r.ttl).Err(); err != nil {
		return fmt.Errorf("set %s: %w", key, err)
	}
	return nil
}

// getter is satisfied by both the client and a WATCH transaction.
type getter interface {
	Get(ctx context.Context, key string) *goredis.StringCmd
}

func (r *SessionRepository) getJSON(ctx context.Context, cmd getter, key string, target any) (bool, error) {
	raw, err := cmd.Get(ctx, key).Bytes()
	if errors.Is(err, goredis.Nil) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("get %s: %w", key, err)
	}
	if err := sonic.Unmarshal(raw, target); err != nil {
		return false, fmt.Errorf("decode %s: %w", key, err)
	}
	return true, nil
}
