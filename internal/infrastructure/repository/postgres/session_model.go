package postgres

import (
	"database/sql"
	"time"

	"github.com/lib/pq"
)

const (
	sessionsTable = "fpl_sessions"
	entriesTable  = "fpl_session_entries"
	picksTable    = "fpl_session_picks"
)

type sessionInsertModel struct {
	SessionID string    `db:"session_id"`
	ExpiresAt time.Time `db:"expires_at"`
}

type sessionTableModel struct {
	SessionID        string        `db:"session_id"`
	LeagueID         int           `db:"league_id"`
	LeagueName       string        `db:"league_name"`
	HasLeague        bool          `db:"has_league"`
	ProgressLeagueID int           `db:"progress_league_id"`
	Total            int           `db:"total"`
	Completed        int           `db:"completed"`
	Failed           int           `db:"failed"`
	Gameweeks        pq.Int64Array `db:"gameweeks"`
	HasProgress      bool          `db:"has_progress"`
	StartedAt        sql.NullTime  `db:"started_at"`
	FinishedAt       sql.NullTime  `db:"finished_at"`
	ExpiresAt        time.Time     `db:"expires_at"`
}

type entryTableModel struct {
	SessionID   string `db:"session_id"`
	Position    int    `db:"position"`
	Manager     int    `db:"manager"`
	TeamName    string `db:"team_name"`
	PlayerName  string `db:"player_name"`
	Rank        int    `db:"rank"`
	LastRank    int    `db:"last_rank"`
	TotalPoints int    `db:"total_points"`
	EventTotal  int    `db:"event_total"`
}

type pickTableModel struct {
	SessionID          string        `db:"session_id"`
	Manager            int           `db:"manager"`
	Gameweek           int           `db:"gameweek"`
	TeamName           string        `db:"team_name"`
	Starters           pq.Int64Array `db:"starters"`
	Substitutes        pq.Int64Array `db:"substitutes"`
	Captain            int           `db:"captain"`
	ViceCaptain        int           `db:"vice_captain"`
	ActiveChip         string        `db:"active_chip"`
	TotalPoints        int           `db:"total_points"`
	Points             int           `db:"points"`
	Value              int           `db:"value"`
	Bank               int           `db:"bank"`
	OverallRank        int           `db:"overall_rank"`
	EventTransfers     int           `db:"event_transfers"`
	EventTransfersCost int           `db:"event_transfers_cost"`
	PointsOnBench      int           `db:"points_on_bench"`
}
