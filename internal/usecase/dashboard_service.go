package usecase

import (
	"context"
	"errors"
	"fmt"

	"go.opentelemetry.io/otel/attribute"

	"github.com/riskibarqy/fpl-league-dashboard/internal/analytics"
	"github.com/riskibarqy/fpl-league-dashboard/internal/domain/element"
	"github.com/riskibarqy/fpl-league-dashboard/internal/domain/picks"
	"github.com/riskibarqy/fpl-league-dashboard/internal/domain/session"
	"github.com/riskibarqy/fpl-league-dashboard/internal/platform/logging"
	"github.com/riskibarqy/fpl-league-dashboard/internal/presentation"
)

// DashboardQuery selects what to render. Gameweek 0 means the latest
// gameweek in the session's picks.
type DashboardQuery struct {
	SessionID   string
	Gameweek    int
	IncludeSubs bool
}

// elementSource is the part of FPLSource the dashboard needs for labels.
type elementSource interface {
	FetchElements(ctx context.Context) ([]element.Element, error)
}

type DashboardService struct {
	repo         session.Repository
	elements     elementSource
	topOwnership int
	logger       *logging.Logger
}

func NewDashboardService(repo session.Repository, elements elementSource, topOwnership int, logger *logging.Logger) *DashboardService {
	if logger == nil {
		logger = logging.Default()
	}
	return &DashboardService{
		repo:         repo,
		elements:     elements,
		topOwnership: topOwnership,
		logger:       logger.Named("dashboard"),
	}
}

// Gameweeks lists the gameweeks scraped so far for the session.
func (s *DashboardService) Gameweeks(ctx context.Context, sessionID string) ([]int, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.DashboardService.Gameweeks")
	defer span.End()

	records, err := s.snapshot(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	return analytics.Gameweeks(records), nil
}

func (s *DashboardService) Dashboard(ctx context.Context, query DashboardQuery) (presentation.Dashboard, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.DashboardService.Dashboard")
	defer span.End()
	span.SetAttributes(attribute.Int("dashboard.gameweek", query.Gameweek))

	in, err := s.input(ctx, query)
	if err != nil {
		return presentation.Dashboard{}, err
	}
	out, err := presentation.BuildDashboard(in)
	if err != nil {
		return presentation.Dashboard{}, mapPresentationError(err)
	}
	return out, nil
}

func (s *DashboardService) Chart(ctx context.Context, query DashboardQuery, chart string) (presentation.Chart, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.DashboardService.Chart")
	defer span.End()
	span.SetAttributes(attribute.String("dashboard.chart", chart))

	name, err := presentation.ParseChartName(chart)
	if err != nil {
		return presentation.Chart{}, mapPresentationError(err)
	}
	in, err := s.input(ctx, query)
	if err != nil {
		return presentation.Chart{}, err
	}
	out, err := presentation.BuildChart(in, name)
	if err != nil {
		return presentation.Chart{}, mapPresentationError(err)
	}
	return out, nil
}

func (s *DashboardService) input(ctx context.Context, query DashboardQuery) (presentation.Input, error) {
	if query.Gameweek < 0 {
		return presentation.Input{}, fmt.Errorf("%w: gameweek must be >= 0", ErrInvalidInput)
	}
	records, err := s.snapshot(ctx, query.SessionID)
	if err != nil {
		return presentation.Input{}, err
	}
	return presentation.Input{
		Picks:    records,
		Gameweek: query.Gameweek,
		Catalog:  s.catalog(ctx),
		Options: presentation.Options{
			IncludeSubs:  query.IncludeSubs,
			TopOwnership: s.topOwnership,
		},
	}, nil
}

func (s *DashboardService) snapshot(ctx context.Context, rawSessionID string) ([]picks.Record, error) {
	sessionID, err := normalizeSessionID(rawSessionID)
	if err != nil {
		return nil, err
	}
	_, ok, err := s.repo.GetLeague(ctx, sessionID)
	if err != nil {
		return nil, fmt.Errorf("get league: %w", err)
	}
	if !ok {
		return nil, fmt.Errorf("%w: no league loaded for session", ErrNotFound)
	}
	records, err := s.repo.SnapshotPicks(ctx, sessionID)
	if err != nil {
		return nil, fmt.Errorf("snapshot picks: %w", err)
	}
	return records, nil
}

// catalog falls back to an empty catalog, which labels elements by id, when
// the provider is unavailable.
func (s *DashboardService) catalog(ctx context.Context) element.Catalog {
	if s.elements == nil {
		return element.Catalog{}
	}
	items, err := s.elements.FetchElements(ctx)
	if err != nil {
		s.logger.WarnContext(ctx, "fetch element catalog failed, labelling by id", "error", err)
		return element.Catalog{}
	}
	return element.NewCatalog(items)
}

func mapPresentationError(err error) error {
	switch {
	case errors.Is(err, analytics.ErrInvalidArgument):
		return fmt.Errorf("%w: %v", ErrInvalidInput, err)
	case errors.Is(err, presentation.ErrUnknownChart):
		return fmt.Errorf("%w: %v", ErrNotFound, err)
	default:
		return fmt.Errorf("build dashboard: %w", err)
	}
}
