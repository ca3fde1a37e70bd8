package querybuilder

import (
	"testing"
	"time"
)

func TestSelectBuilder(t *testing.T) {
	now := time.Unix(1700000000, 0)
	query, args, err := Select("session_id", "league_id").
		From("fpl_sessions").
		Where(Eq("session_id", "s1"), Gt("expires_at", now)).
		OrderBy("session_id").
		Limit(1).
		ForUpdate().
		ToSQL()
	if err != nil {
		t.Fatalf("build select query: %v", err)
	}

	wantQuery := "SELECT session_id, league_id FROM fpl_sessions WHERE session_id = $1 AND expires_at > $2 ORDER BY session_id LIMIT 1 FOR UPDATE"
	if query != wantQuery {
		t.Fatalf("unexpected query:\nwant: %s\ngot:  %s", wantQuery, query)
	}
	if len(args) != 2 || args[0] != "s1" || args[1] != now {
		t.Fatalf("unexpected args: %+v", args)
	}
}

func TestSelectBuilder_ExprPlaceholdersContinueNumbering(t *testing.T) {
	query, args, err := Select("*").
		From("fpl_session_picks p").
		Where(
			Eq("p.session_id", "s1"),
			Expr("EXISTS (SELECT 1 FROM fpl_sessions s WHERE s.session_id = p.session_id AND s.expires_at > ?)", 42),
		).
		ToSQL()
	if err != nil {
		t.Fatalf("build select query: %v", err)
	}

	wantQuery := "SELECT * FROM fpl_session_picks p WHERE p.session_id = $1 AND EXISTS (SELECT 1 FROM fpl_sessions s WHERE s.session_id = p.session_id AND s.expires_at > $2)"
	if query != wantQuery {
		t.Fatalf("unexpected query:\nwant: %s\ngot:  %s", wantQuery, query)
	}
	if len(args) != 2 || args[1] != 42 {
		t.Fatalf("unexpected args: %+v", args)
	}
}

func TestInsertBuilder(t *testing.T) {
	query, args, err := InsertInto("fpl_sessions").
		Columns("session_id", "expires_at").
		Values("s1", "later").
		Suffix("ON CONFLICT (session_id) DO NOTHING").
		ToSQL()
	if err != nil {
		t.Fatalf("build insert query: %v", err)
	}

	wantQuery := "INSERT INTO fpl_sessions (session_id, expires_at) VALUES ($1, $2) ON CONFLICT (session_id) DO NOTHING"
	if query != wantQuery {
		t.Fatalf("unexpected query:\nwant: %s\ngot:  %s", wantQuery, query)
	}
	if len(args) != 2 || args[0] != "s1" || args[1] != "later" {
		t.Fatalf("unexpected args: %+v", args)
	}
}

func TestInsertBuilder_RejectsShortRow(t *testing.T) {
	_, _, err := InsertInto("fpl_sessions").
		Columns("session_id", "expires_at").
		Values("s1").
		ToSQL()
	if err == nil {
		t.Fatalf("expected error for row with missing values")
	}
}

func TestUpdateBuilder(t *testing.T) {
	query, args, err := Update("fpl_sessions").
		Set("league_name", "Mini League").
		SetExpr("updated_at", "NOW()").
		Where(Eq("session_id", "s1")).
		ToSQL()
	if err != nil {
		t.Fatalf("build update query: %v", err)
	}

	wantQuery := "UPDATE fpl_sessions SET league_name = $1, updated_at = NOW() WHERE session_id = $2"
	if query != wantQuery {
		t.Fatalf("unexpected query:\nwant: %s\ngot:  %s", wantQuery, query)
	}
	if len(args) != 2 || args[0] != "Mini League" || args[1] != "s1" {
		t.Fatalf("unexpected args: %+v", args)
	}
}

func TestDeleteBuilder(t *testing.T) {
	query, args, err := DeleteFrom("fpl_sessions").
		Where(Eq("session_id", "s1"), Lte("expires_at", 10)).
		ToSQL()
	if err != nil {
		t.Fatalf("build delete query: %v", err)
	}

	wantQuery := "DELETE FROM fpl_sessions WHERE session_id = $1 AND expires_at <= $2"
	if query != wantQuery {
		t.Fatalf("unexpected query:\nwant: %s\ngot:  %s", wantQuery, query)
	}
	if len(args) != 2 {
		t.Fatalf("unexpected args: %+v", args)
	}

	if _, _, err := DeleteFrom("fpl_sessions").ToSQL(); err == nil {
		t.Fatalf("expected error for unconditional delete")
	}
}
