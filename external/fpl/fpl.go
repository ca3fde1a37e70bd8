// Package fpl is a client for the public Fantasy Premier League API.
package fpl

import (
	"context"
	"fmt"
	"net/url"
	"sort"
	"strconv"
	"strings"

	"github.com/riskibarqy/fpl-league-dashboard/internal/domain/element"
	"github.com/riskibarqy/fpl-league-dashboard/internal/domain/leaguetable"
	"github.com/riskibarqy/fpl-league-dashboard/internal/domain/picks"
	"github.com/riskibarqy/fpl-league-dashboard/internal/usecase"
)

// FetchLeague reads a classic league table page by page. A positive
// managerLimit stops paging once more entries than the limit are collected
// and truncates the table to it.
func (c *Client) FetchLeague(ctx context.Context, leagueID, managerLimit int) (leaguetable.League, error) {
	if leagueID <= 0 {
		return leaguetable.League{}, fmt.Errorf("%w: league id must be greater than zero", usecase.ErrInvalidInput)
	}

	league := leaguetable.League{ID: leagueID, Entries: make([]leaguetable.Entry, 0, 64)}
	path := fmt.Sprintf("/leagues-classic/%d/standings/", leagueID)
	for page := 1; ; page++ {
		query := url.Values{}
		query.Set("page_standings", strconv.Itoa(page))

		var payload standingsEnvelope
		if _, err := c.doJSON(ctx, path, query, &payload); err != nil {
			return leaguetable.League{}, fmt.Errorf("fetch league standings league_id=%d page=%d: %w", leagueID, page, err)
		}

		league.Name = strings.TrimSpace(payload.League.Name)
		for _, row := range payload.Standings.Results {
			if row.Entry <= 0 {
				continue
			}
			league.Entries = append(league.Entries, leaguetable.Entry{
				Manager:     row.Entry,
				TeamName:    strings.TrimSpace(row.EntryName),
				PlayerName:  strings.TrimSpace(row.PlayerName),
				Rank:        row.Rank,
				LastRank:    row.LastRank,
				TotalPoints: row.Total,
				EventTotal:  row.EventTotal,
			})
		}

		if !payload.Standings.HasNext {
			break
		}
		if managerLimit > 0 && len(league.Entries) > managerLimit {
			break
		}
	}

	if managerLimit > 0 && len(league.Entries) > managerLimit {
		league.Entries = league.Entries[:managerLimit]
	}
	c.logger.DebugContext(ctx, "fetched league standings", "league_id", leagueID, "entries", len(league.Entries))
	return league, nil
}

// FetchPlayedGameweeks returns gameweeks whose fixtures are all finished,
// or with includeActive those with at least one finished fixture.
func (c *Client) FetchPlayedGameweeks(ctx context.Context, includeActive bool) ([]int, error) {
	var fixtures []fixtureItem
	if _, err := c.doJSON(ctx, "/fixtures/", nil, &fixtures); err != nil {
		return nil, fmt.Errorf("fetch fixtures: %w", err)
	}
	return playedGameweeks(fixtures, includeActive), nil
}

func playedGameweeks(fixtures []fixtureItem, includeActive bool) []int {
	type tally struct {
		total    int
		finished int
	}
	byEvent := make(map[int]*tally)
	for _, f := range fixtures {
		if f.Event == nil || *f.Event <= 0 {
			continue
		}
		t, ok := byEvent[*f.Event]
		if !ok {
			t = &tally{}
			byEvent[*f.Event] = t
		}
		t.total++
		if f.Finished {
			t.finished++
		}
	}

	out := make([]int, 0, len(byEvent))
	for gw, t := range byEvent {
		if t.finished == t.total || (includeActive && t.finished > 0) {
			out = append(out, gw)
		}
	}
	sort.Ints(out)
	return out
}

// FetchElements reads the player catalog from bootstrap-static.
func (c *Client) FetchElements(ctx context.Context) ([]element.Element, error) {
	var payload bootstrapEnvelope
	if _, err := c.doJSON(ctx, "/bootstrap-static/", nil, &payload); err != nil {
		return nil, fmt.Errorf("fetch bootstrap static: %w", err)
	}

	out := make([]element.Element, 0, len(payload.Elements))
	for _, item := range payload.Elements {
		if item.ID <= 0 {
			continue
		}
		out = append(out, element.Element{
			ID:          item.ID,
			WebName:     item.WebName,
			FirstName:   item.FirstName,
			SecondName:  item.SecondName,
			TeamID:      item.Team,
			ElementType: item.ElementType,
		})
	}
	return out, nil
}

// FetchEntryPicks reads one manager's squad for one gameweek. TeamName is
// left empty; the league table owns it.
func (c *Client) FetchEntryPicks(ctx context.Context, manager, gameweek int) (picks.Record, error) {
	if manager <= 0 || gameweek < 1 {
		return picks.Record{}, fmt.Errorf("%w: manager=%d gameweek=%d", usecase.ErrInvalidInput, manager, gameweek)
	}

	var payload entryPicksEnvelope
	path := fmt.Sprintf("/entry/%d/event/%d/picks/", manager, gameweek)
	if _, err := c.doJSON(ctx, path, nil, &payload); err != nil {
		return picks.Record{}, fmt.Errorf("fetch entry picks manager=%d gameweek=%d: %w", manager, gameweek, err)
	}
	return mapEntryPicks(manager, gameweek, payload)
}

func mapEntryPicks(manager, gameweek int, payload entryPicksEnvelope) (picks.Record, error) {
	h := payload.EntryHistory
	record := picks.Record{
		Manager:            manager,
		Gameweek:           gameweek,
		TotalPoints:        h.TotalPoints,
		Points:             h.Points,
		Value:              h.Value,
		Bank:               h.Bank,
		OverallRank:        h.OverallRank,
		EventTransfers:     h.EventTransfers,
		EventTransfersCost: h.EventTransfersCost,
		PointsOnBench:      h.PointsOnBench,
	}
	if h.Event > 0 {
		record.Gameweek = h.Event
	}
	if payload.ActiveChip != nil {
		record.ActiveChip = strings.TrimSpace(*payload.ActiveChip)
	}

	for _, pick := range payload.Picks {
		if err := record.SetSlot(pick.Position, pick.Element); err != nil {
			return picks.Record{}, fmt.Errorf("map pick manager=%d gameweek=%d: %w", manager, gameweek, err)
		}
		if pick.IsCaptain {
			record.Captain = pick.Element
		}
		if pick.IsViceCaptain {
			record.ViceCaptain = pick.Element
		}
	}
	return record, nil
}
