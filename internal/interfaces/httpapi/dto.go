package httpapi

import (
	"time"

	"github.com/riskibarqy/fpl-league-dashboard/internal/domain/leaguetable"
	"github.com/riskibarqy/fpl-league-dashboard/internal/domain/session"
)

type sessionDTO struct {
	SessionID string `json:"sessionId"`
}

type leagueEntryDTO struct {
	Manager     int    `json:"manager"`
	TeamName    string `json:"teamName"`
	PlayerName  string `json:"playerName"`
	Rank        int    `json:"rank"`
	LastRank    int    `json:"lastRank"`
	TotalPoints int    `json:"totalPoints"`
	EventTotal  int    `json:"eventTotal"`
}

type leagueDTO struct {
	ID      int              `json:"id"`
	Name    string           `json:"name"`
	Entries []leagueEntryDTO `json:"entries"`
}

type progressDTO struct {
	LeagueID   int        `json:"leagueId"`
	Total      int        `json:"total"`
	Completed  int        `json:"completed"`
	Failed     int        `json:"failed"`
	Percent    float64    `json:"percent"`
	Label      string     `json:"label"`
	Done       bool       `json:"done"`
	Gameweeks  []int      `json:"gameweeks"`
	StartedAt  time.Time  `json:"startedAt"`
	FinishedAt *time.Time `json:"finishedAt,omitempty"`
}

type loadLeagueDTO struct {
	League   leagueDTO   `json:"league"`
	Progress progressDTO `json:"progress"`
}

type gameweeksDTO struct {
	Gameweeks []int `json:"gameweeks"`
	Latest    int   `json:"latest"`
}

func toLeagueDTO(league leaguetable.League) leagueDTO {
	entries := make([]leagueEntryDTO, 0, len(league.Entries))
	for _, item := range league.Entries {
		entries = append(entries, leagueEntryDTO{
			Manager:     item.Manager,
			TeamName:    item.TeamName,
			PlayerName:  item.PlayerName,
			Rank:        item.Rank,
			LastRank:    item.LastRank,
			TotalPoints: item.TotalPoints,
			EventTotal:  item.EventTotal,
		})
	}
	return leagueDTO{
		ID:      league.ID,
		Name:    league.Name,
		Entries: entries,
	}
}

func toProgressDTO(progress session.Progress) progressDTO {
	return progressDTO{
		LeagueID:   progress.LeagueID,
		Total:      progress.Total,
		Completed:  progress.Completed,
		Failed:     progress.Failed,
		Percent:    progress.Percent(),
		Label:      progress.Label(),
		Done:       progress.Done(),
		Gameweeks:  nonNilInts(progress.Gameweeks),
		StartedAt:  progress.StartedAt,
		FinishedAt: progress.FinishedAt,
	}
}

func nonNilInts(in []int) []int {
	if in == nil {
		return []int{}
	}
	return in
}
