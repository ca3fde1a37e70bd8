package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/riskibarqy/fpl-league-dashboard/internal/domain/leaguetable"
	"github.com/riskibarqy/fpl-league-dashboard/internal/domain/picks"
	"github.com/riskibarqy/fpl-league-dashboard/internal/domain/session"
	qb "github.com/riskibarqy/fpl-league-dashboard/internal/platform/querybuilder"
)

const defaultTTL = 2 * time.Hour

// SessionRepository keeps session state in postgres. Every write runs in a
// transaction that upserts the session row first, which refreshes the
// expiry and holds the row lock until commit, so writes to one session are
// serialized and readers only ever see committed appends.
type SessionRepository struct {
	db  *sqlx.DB
	ttl time.Duration
	now func() time.Time
}

func NewSessionRepository(db *sqlx.DB, ttl time.Duration) *SessionRepository {
	if ttl <= 0 {
		ttl = defaultTTL
	}
	return &SessionRepository{db: db, ttl: ttl, now: time.Now}
}

func (r *SessionRepository) SaveLeague(ctx context.Context, sessionID string, league leaguetable.League) error {
	return r.withSession(ctx, sessionID, "save league", func(tx *sqlx.Tx) error {
		query, args, err := qb.Update(sessionsTable).
			Set("league_id", league.ID).
			Set("league_name", league.Name).
			Set("has_league", true).
			SetExpr("updated_at", "NOW()").
			Where(qb.Eq("session_id", sessionID)).
			ToSQL()
		if err != nil {
			return fmt.Errorf("build update league query: %w", err)
		}
		if _, err := tx.ExecContext(ctx, query, args...); err != nil {
			return fmt.Errorf("update league: %w", err)
		}

		clearQuery, clearArgs, err := qb.DeleteFrom(entriesTable).Where(qb.Eq("session_id", sessionID)).ToSQL()
		if err != nil {
			return fmt.Errorf("build clear entries query: %w", err)
		}
		if _, err := tx.ExecContext(ctx, clearQuery, clearArgs...); err != nil {
			return fmt.Errorf("clear entries: %w", err)
		}
		if len(league.Entries) == 0 {
			return nil
		}

		rows := make([]entryTableModel, 0, len(league.Entries))
		for i, e := range league.Entries {
			rows = append(rows, entryTableModel{
				SessionID:   sessionID,
				Position:    i,
				Manager:     e.Manager,
				TeamName:    e.TeamName,
				PlayerName:  e.PlayerName,
				Rank:        e.Rank,
				LastRank:    e.LastRank,
				TotalPoints: e.TotalPoints,
				EventTotal:  e.EventTotal,
			})
		}
		insertQuery, insertArgs, err := qb.InsertModels(entriesTable, rows, "")
		if err != nil {
			return fmt.Errorf("build insert entries query: %w", err)
		}
		if _, err := tx.ExecContext(ctx, insertQuery, insertArgs...); err != nil {
			return fmt.Errorf("insert entries: %w", err)
		}
		return nil
	})
}

func (r *SessionRepository) GetLeague(ctx context.Context, sessionID string) (leaguetable.League, bool, error) {
	row, ok, err := r.getSession(ctx, r.db, sessionID, false)
	if err != nil || !ok || !row.HasLeague {
		return leaguetable.League{}, false, err
	}

	query, args, err := qb.Select(qb.Columns(entryTableModel{})...).
		From(entriesTable).
		Where(qb.Eq("session_id", sessionID)).
		OrderBy("position").
		ToSQL()
	if err != nil {
		return leaguetable.League{}, false, fmt.Errorf("build list entries query: %w", err)
	}

	var entries []entryTableModel
	if err := r.db.SelectContext(ctx, &entries, query, args...); err != nil {
		return leaguetable.League{}, false, fmt.Errorf("list entries session=%s: %w", sessionID, err)
	}

	league := leaguetable.League{
		ID:      row.LeagueID,
		Name:    row.LeagueName,
		Entries: make([]leaguetable.Entry, 0, len(entries)),
	}
	for _, e := range entries {
		league.Entries = append(league.Entries, leaguetable.Entry{
			Manager:     e.Manager,
			TeamName:    e.TeamName,
			PlayerName:  e.PlayerName,
			Rank:        e.Rank,
			LastRank:    e.LastRank,
			TotalPoints: e.TotalPoints,
			EventTotal:  e.EventTotal,
		})
	}
	return league, true, nil
}

func (r *SessionRepository) ResetPicks(ctx context.Context, sessionID string) error {
	return r.withSession(ctx, sessionID, "reset picks", func(tx *sqlx.Tx) error {
		query, args, err := qb.DeleteFrom(picksTable).Where(qb.Eq("session_id", sessionID)).ToSQL()
		if err != nil {
			return fmt.Errorf("build reset picks query: %w", err)
		}
		if _, err := tx.ExecContext(ctx, query, args...); err != nil {
			return fmt.Errorf("delete picks: %w", err)
		}
		return nil
	})
}

// AppendPicks replays the stored rows into a picks.Set under the session
// lock and writes only what the set reports as added or replaced.
func (r *SessionRepository) AppendPicks(ctx context.Context, sessionID string, policy picks.DedupPolicy, records []picks.Record) (picks.AppendResult, error) {
	var result picks.AppendResult
	err := r.withSession(ctx, sessionID, "append picks", func(tx *sqlx.Tx) error {
		existing, err := r.selectPicks(ctx, tx, sessionID, false)
		if err != nil {
			return err
		}

		set := picks.NewSet(existing...)
		for _, record := range records {
			step := set.Append(policy, record)
			switch {
			case step.Added > 0:
				if err := insertPick(ctx, tx, sessionID, record); err != nil {
					return err
				}
			case step.Replaced > 0:
				if err := replacePick(ctx, tx, sessionID, record); err != nil {
					return err
				}
			}
			result = result.Merge(step)
		}
		return nil
	})
	if err != nil {
		return picks.AppendResult{}, err
	}
	return result, nil
}

func (r *SessionRepository) SnapshotPicks(ctx context.Context, sessionID string) ([]picks.Record, error) {
	out, err := r.selectPicks(ctx, r.db, sessionID, true)
	if err != nil {
		return nil, fmt.Errorf("snapshot picks session=%s: %w", sessionID, err)
	}
	return out, nil
}

func (r *SessionRepository) SaveProgress(ctx context.Context, sessionID string, progress session.Progress) error {
	return r.withSession(ctx, sessionID, "save progress", func(tx *sqlx.Tx) error {
		return writeProgress(ctx, tx, sessionID, progress)
	})
}

func (r *SessionRepository) UpdateProgress(ctx context.Context, sessionID string, fn func(*session.Progress)) (session.Progress, error) {
	var out session.Progress
	err := r.withSession(ctx, sessionID, "update progress", func(tx *sqlx.Tx) error {
		row, _, err := r.getSession(ctx, tx, sessionID, true)
		if err != nil {
			return err
		}

		progress := session.Progress{}
		if row.HasProgress {
			progress = toProgress(row)
		}
		fn(&progress)
		if err := writeProgress(ctx, tx, sessionID, progress); err != nil {
			return err
		}
		out = progress
		return nil
	})
	if err != nil {
		return session.Progress{}, err
	}
	return out, nil
}

func (r *SessionRepository) GetProgress(ctx context.Context, sessionID string) (session.Progress, bool, error) {
	row, ok, err := r.getSession(ctx, r.db, sessionID, false)
	if err != nil || !ok || !row.HasProgress {
		return session.Progress{}, false, err
	}
	return toProgress(row), true, nil
}

// PurgeExpired deletes expired sessions with their entries and picks.
func (r *SessionRepository) PurgeExpired(ctx context.Context) (int64, error) {
	query, args, err := qb.DeleteFrom(sessionsTable).Where(qb.Lte("expires_at", r.now())).ToSQL()
	if err != nil {
		return 0, fmt.Errorf("build purge sessions query: %w", err)
	}
	res, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return 0, fmt.Errorf("purge expired sessions: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("purge expired sessions rows affected: %w", err)
	}
	return n, nil
}

func (r *SessionRepository) withSession(ctx context.Context, sessionID, op string, fn func(tx *sqlx.Tx) error) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx %s: %w", op, err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	if err := r.touch(ctx, tx, sessionID); err != nil {
		return fmt.Errorf("%s session=%s: %w", op, sessionID, err)
	}
	if err := fn(tx); err != nil {
		return fmt.Errorf("%s session=%s: %w", op, sessionID, err)
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit tx %s: %w", op, err)
	}
	return nil
}

// touch drops what an expired session left behind, then creates the row or
// pushes its expiry out by ttl.
func (r *SessionRepository) touch(ctx context.Context, tx *sqlx.Tx, sessionID string) error {
	now := r.now().UTC()

	purgeQuery, purgeArgs, err := qb.DeleteFrom(sessionsTable).
		Where(qb.Eq("session_id", sessionID), qb.Lte("expires_at", now)).
		ToSQL()
	if err != nil {
		return fmt.Errorf("build purge session query: %w", err)
	}
	if _, err := tx.ExecContext(ctx, purgeQuery, purgeArgs...); err != nil {
		return fmt.Errorf("purge expired session: %w", err)
	}

	query, args, err := qb.InsertModel(sessionsTable, sessionInsertModel{
		SessionID: sessionID,
		ExpiresAt: now.Add(r.ttl),
	}, `ON CONFLICT (session_id)
DO UPDATE SET
    expires_at = EXCLUDED.expires_at,
    updated_at = NOW()`)
	if err != nil {
		return fmt.Errorf("build upsert session query: %w", err)
	}
	if _, err := tx.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("upsert session: %w", err)
	}
	return nil
}

func (r *SessionRepository) getSession(ctx context.Context, q sqlx.QueryerContext, sessionID string, forUpdate bool) (sessionTableModel, bool, error) {
	builder := qb.Select(qb.Columns(sessionTableModel{})...).
		From(sessionsTable).
		Where(qb.Eq("session_id", sessionID), qb.Gt("expires_at", r.now().UTC())).
		Limit(1)
	if forUpdate {
		builder.ForUpdate()
	}
	query, args, err := builder.ToSQL()
	if err != nil {
		return sessionTableModel{}, false, fmt.Errorf("build get session query: %w", err)
	}

	var row sessionTableModel
	if err := sqlx.GetContext(ctx, q, &row, query, args...); err != nil {
		if isNotFound(err) {
			return sessionTableModel{}, false, nil
		}
		return sessionTableModel{}, false, fmt.Errorf("get session=%s: %w", sessionID, err)
	}
	return row, true, nil
}

// selectPicks lists stored rows in append order. Inside a write transaction
// the session row is already live, so onlyLive only matters for readers.
func (r *SessionRepository) selectPicks(ctx context.Context, q sqlx.QueryerContext, sessionID string, onlyLive bool) ([]picks.Record, error) {
	conditions := []qb.Condition{qb.Eq("p.session_id", sessionID)}
	if onlyLive {
		conditions = append(conditions, qb.Expr(
			"EXISTS (SELECT 1 FROM "+sessionsTable+" s WHERE s.session_id = p.session_id AND s.expires_at > ?)",
			r.now().UTC(),
		))
	}

	columns := qb.Columns(pickTableModel{})
	for i, col := range columns {
		columns[i] = "p." + col
	}
	query, args, err := qb.Select(columns...).
		From(picksTable + " p").
		Where(conditions...).
		OrderBy("p.id").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build list picks query: %w", err)
	}

	var rows []pickTableModel
	if err := sqlx.SelectContext(ctx, q, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("list picks: %w", err)
	}

	out := make([]picks.Record, 0, len(rows))
	for _, row := range rows {
		out = append(out, toRecord(row))
	}
	return out, nil
}

func insertPick(ctx context.Context, tx *sqlx.Tx, sessionID string, record picks.Record) error {
	query, args, err := qb.InsertModel(picksTable, toPickModel(sessionID, record), "")
	if err != nil {
		return fmt.Errorf("build insert pick query: %w", err)
	}
	if _, err := tx.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("insert pick manager=%d gameweek=%d: %w", record.Manager, record.Gameweek, err)
	}
	return nil
}

// replacePick overwrites the earliest row for the record's key, matching
// where picks.Set replaces in place.
func replacePick(ctx context.Context, tx *sqlx.Tx, sessionID string, record picks.Record) error {
	model := toPickModel(sessionID, record)
	query, args, err := qb.Update(picksTable).
		Set("team_name", model.TeamName).
		Set("starters", model.Starters).
		Set("substitutes", model.Substitutes).
		Set("captain", model.Captain).
		Set("vice_captain", model.ViceCaptain).
		Set("active_chip", model.ActiveChip).
		Set("total_points", model.TotalPoints).
		Set("points", model.Points).
		Set("value", model.Value).
		Set("bank", model.Bank).
		Set("overall_rank", model.OverallRank).
		Set("event_transfers", model.EventTransfers).
		Set("event_transfers_cost", model.EventTransfersCost).
		Set("points_on_bench", model.PointsOnBench).
		Where(qb.Expr(
			"id = (SELECT MIN(id) FROM "+picksTable+" WHERE session_id = ? AND manager = ? AND gameweek = ?)",
			sessionID, record.Manager, record.Gameweek,
		)).
		ToSQL()
	if err != nil {
		return fmt.Errorf("build replace pick query: %w", err)
	}
	if _, err := tx.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("replace pick manager=%d gameweek=%d: %w", record.Manager, record.Gameweek, err)
	}
	return nil
}

func writeProgress(ctx context.Context, tx *sqlx.Tx, sessionID string, progress session.Progress) error {
	query, args, err := qb.Update(sessionsTable).
		Set("progress_league_id", progress.LeagueID).
		Set("total", progress.Total).
		Set("completed", progress.Completed).
		Set("failed", progress.Failed).
		Set("gameweeks", toIntArray(progress.Gameweeks)).
		Set("has_progress", true).
		Set("started_at", nullableTime(&progress.StartedAt)).
		Set("finished_at", nullableTime(progress.FinishedAt)).
		SetExpr("updated_at", "NOW()").
		Where(qb.Eq("session_id", sessionID)).
		ToSQL()
	if err != nil {
		return fmt.Errorf("build write progress query: %w", err)
	}
	if _, err := tx.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("write progress: %w", err)
	}
	return nil
}

func toProgress(row sessionTableModel) session.Progress {
	progress := session.Progress{
		LeagueID:   row.ProgressLeagueID,
		Total:      row.Total,
		Completed:  row.Completed,
		Failed:     row.Failed,
		Gameweeks:  fromIntArray(row.Gameweeks),
		FinishedAt: nullTimeToTimePtr(row.FinishedAt),
	}
	if started := nullTimeToTimePtr(row.StartedAt); started != nil {
		progress.StartedAt = *started
	}
	return progress
}

func toPickModel(sessionID string, record picks.Record) pickTableModel {
	return pickTableModel{
		SessionID:          sessionID,
		Manager:            record.Manager,
		Gameweek:           record.Gameweek,
		TeamName:           record.TeamName,
		Starters:           toIntArray(record.Starters[:]),
		Substitutes:        toIntArray(record.Substitutes[:]),
		Captain:            record.Captain,
		ViceCaptain:        record.ViceCaptain,
		ActiveChip:         record.ActiveChip,
		TotalPoints:        record.TotalPoints,
		Points:             record.Points,
		Value:              record.Value,
		Bank:               record.Bank,
		OverallRank:        record.OverallRank,
		EventTransfers:     record.EventTransfers,
		EventTransfersCost: record.EventTransfersCost,
		PointsOnBench:      record.PointsOnBench,
	}
}

func toRecord(row pickTableModel) picks.Record {
	record := picks.Record{
		Manager:            row.Manager,
		TeamName:           row.TeamName,
		Gameweek:           row.Gameweek,
		Captain:            row.Captain,
		ViceCaptain:        row.ViceCaptain,
		ActiveChip:         row.ActiveChip,
		TotalPoints:        row.TotalPoints,
		Points:             row.Points,
		Value:              row.Value,
		Bank:               row.Bank,
		OverallRank:        row.OverallRank,
		EventTransfers:     row.EventTransfers,
		EventTransfersCost: row.EventTransfersCost,
		PointsOnBench:      row.PointsOnBench,
	}
	copy(record.Starters[:], fromIntArray(row.Starters))
	copy(record.Substitutes[:], fromIntArray(row.Substitutes))
	return record
}
