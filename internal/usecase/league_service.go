package usecase

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/panjf2000/ants/v2"
	"github.com/sourcegraph/conc/pool"
	"go.opentelemetry.io/otel/attribute"

	"github.com/riskibarqy/fpl-league-dashboard/internal/domain/leaguetable"
	"github.com/riskibarqy/fpl-league-dashboard/internal/domain/picks"
	"github.com/riskibarqy/fpl-league-dashboard/internal/domain/session"
	"github.com/riskibarqy/fpl-league-dashboard/internal/platform/logging"
)

type LeagueServiceConfig struct {
	ManagerLimit          int
	IncludeActiveGameweek bool
	// Workers bounds how many managers are scraped at once.
	Workers int
	// GameweekConcurrency bounds concurrent picks requests for one manager.
	GameweekConcurrency int
	DedupPolicy         picks.DedupPolicy
}

func (c LeagueServiceConfig) normalize() LeagueServiceConfig {
	if c.Workers <= 0 {
		c.Workers = 8
	}
	if c.GameweekConcurrency <= 0 {
		c.GameweekConcurrency = 4
	}
	if c.DedupPolicy == "" {
		c.DedupPolicy = picks.DedupDropIdentical
	}
	return c
}

// LeagueService loads a league into a session and scrapes every manager's
// picks in the background.
type LeagueService struct {
	source FPLSource
	repo   session.Repository
	cfg    LeagueServiceConfig
	logger *logging.Logger
	now    func() time.Time

	baseCtx context.Context
	stop    context.CancelFunc
	mu      sync.Mutex
	running map[string]*scrapeRun
	loads   map[string]*loadLock
	scrapes sync.WaitGroup
}

func NewLeagueService(source FPLSource, repo session.Repository, cfg LeagueServiceConfig, logger *logging.Logger) *LeagueService {
	if logger == nil {
		logger = logging.Default()
	}
	baseCtx, stop := context.WithCancel(context.Background())
	return &LeagueService{
		source:  source,
		repo:    repo,
		cfg:     cfg.normalize(),
		logger:  logger.Named("league"),
		now:     time.Now,
		baseCtx: baseCtx,
		stop:    stop,
		running: make(map[string]*scrapeRun),
		loads:   make(map[string]*loadLock),
	}
}

// LoadLeague replaces the session's league table, resets its picks and
// progress, and starts scraping the played gameweeks of every manager.
// A scrape already running for the session is cancelled and drained first.
func (s *LeagueService) LoadLeague(ctx context.Context, sessionID string, leagueID int) (leaguetable.League, session.Progress, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.LeagueService.LoadLeague")
	defer span.End()

	sessionID, err := normalizeSessionID(sessionID)
	if err != nil {
		return leaguetable.League{}, session.Progress{}, err
	}
	if leagueID <= 0 {
		return leaguetable.League{}, session.Progress{}, fmt.Errorf("%w: league id must be greater than zero", ErrInvalidInput)
	}
	span.SetAttributes(attribute.Int("league.id", leagueID))

	league, err := s.source.FetchLeague(ctx, leagueID, s.cfg.ManagerLimit)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return leaguetable.League{}, session.Progress{}, fmt.Errorf("%w: invalid league id %d", ErrNotFound, leagueID)
		}
		return leaguetable.League{}, session.Progress{}, fmt.Errorf("fetch league: %w", err)
	}

	gameweeks, err := s.source.FetchPlayedGameweeks(ctx, s.cfg.IncludeActiveGameweek)
	if err != nil {
		return leaguetable.League{}, session.Progress{}, fmt.Errorf("fetch played gameweeks: %w", err)
	}

	unlock := s.lockLoad(sessionID)
	defer unlock()

	s.cancelScrape(sessionID)
	if err := s.repo.SaveLeague(ctx, sessionID, league); err != nil {
		return leaguetable.League{}, session.Progress{}, fmt.Errorf("save league: %w", err)
	}
	if err := s.repo.ResetPicks(ctx, sessionID); err != nil {
		return leaguetable.League{}, session.Progress{}, fmt.Errorf("reset picks: %w", err)
	}

	progress := session.Progress{
		LeagueID:  leagueID,
		Total:     len(league.Entries),
		Gameweeks: append([]int(nil), gameweeks...),
		StartedAt: s.now().UTC(),
	}
	if progress.Total == 0 || len(gameweeks) == 0 {
		finished := progress.StartedAt
		progress.FinishedAt = &finished
	}
	if err := s.repo.SaveProgress(ctx, sessionID, progress); err != nil {
		return leaguetable.League{}, session.Progress{}, fmt.Errorf("save progress: %w", err)
	}

	s.logger.InfoContext(ctx, "league loaded",
		"session_id", sessionID,
		"league_id", leagueID,
		"managers", len(league.Entries),
		"gameweeks", len(gameweeks),
	)

	if progress.FinishedAt == nil {
		s.startScrape(sessionID, league, gameweeks)
	}
	return league, progress, nil
}

func (s *LeagueService) GetLeague(ctx context.Context, sessionID string) (leaguetable.League, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.LeagueService.GetLeague")
	defer span.End()

	sessionID, err := normalizeSessionID(sessionID)
	if err != nil {
		return leaguetable.League{}, err
	}
	league, ok, err := s.repo.GetLeague(ctx, sessionID)
	if err != nil {
		return leaguetable.League{}, fmt.Errorf("get league: %w", err)
	}
	if !ok {
		return leaguetable.League{}, fmt.Errorf("%w: no league loaded for session", ErrNotFound)
	}
	return league, nil
}

func (s *LeagueService) Progress(ctx context.Context, sessionID string) (session.Progress, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.LeagueService.Progress")
	defer span.End()

	sessionID, err := normalizeSessionID(sessionID)
	if err != nil {
		return session.Progress{}, err
	}
	progress, ok, err := s.repo.GetProgress(ctx, sessionID)
	if err != nil {
		return session.Progress{}, fmt.Errorf("get progress: %w", err)
	}
	if !ok {
		return session.Progress{}, fmt.Errorf("%w: no league loaded for session", ErrNotFound)
	}
	return progress, nil
}

// Wait blocks until every background scrape has returned.
func (s *LeagueService) Wait() {
	s.scrapes.Wait()
}

// Close cancels running scrapes and waits for them to stop.
func (s *LeagueService) Close() {
	s.stop()
	s.scrapes.Wait()
}

type scrapeRun struct {
	cancel context.CancelFunc
	done   chan struct{}
}

func (s *LeagueService) cancelScrape(sessionID string) {
	s.mu.Lock()
	run, ok := s.running[sessionID]
	delete(s.running, sessionID)
	s.mu.Unlock()
	if ok {
		run.cancel()
		<-run.done
	}
}

// loadLock serializes loads of one session so a reset and the scrape that
// follows it are never interleaved with another load.
type loadLock struct {
	mu   sync.Mutex
	refs int
}

func (s *LeagueService) lockLoad(sessionID string) func() {
	s.mu.Lock()
	l, ok := s.loads[sessionID]
	if !ok {
		l = &loadLock{}
		s.loads[sessionID] = l
	}
	l.refs++
	s.mu.Unlock()

	l.mu.Lock()
	return func() {
		l.mu.Unlock()
		s.mu.Lock()
		l.refs--
		if l.refs == 0 {
			delete(s.loads, sessionID)
		}
		s.mu.Unlock()
	}
}

// startScrape installs a new run for the session. A run it displaces is
// cancelled and drained before the new one begins.
func (s *LeagueService) startScrape(sessionID string, league leaguetable.League, gameweeks []int) {
	ctx, cancel := context.WithCancel(s.baseCtx)
	run := &scrapeRun{cancel: cancel, done: make(chan struct{})}
	s.mu.Lock()
	prev := s.running[sessionID]
	s.running[sessionID] = run
	s.mu.Unlock()
	if prev != nil {
		prev.cancel()
		<-prev.done
	}

	s.scrapes.Add(1)
	go func() {
		defer s.scrapes.Done()
		defer close(run.done)
		defer cancel()
		s.scrape(ctx, sessionID, league, gameweeks)

		s.mu.Lock()
		if s.running[sessionID] == run {
			delete(s.running, sessionID)
		}
		s.mu.Unlock()
	}()
}

func (s *LeagueService) scrape(ctx context.Context, sessionID string, league leaguetable.League, gameweeks []int) {
	start := s.now()
	workerCount := s.cfg.Workers
	if workerCount > len(league.Entries) {
		workerCount = len(league.Entries)
	}

	workers, err := ants.NewPool(workerCount)
	if err != nil {
		s.logger.ErrorContext(ctx, "create scrape worker pool failed", "session_id", sessionID, "error", err)
		s.finishProgress(ctx, sessionID, len(league.Entries))
		return
	}
	defer workers.Release()

	var wg sync.WaitGroup
	for _, entry := range league.Entries {
		entry := entry
		wg.Add(1)
		if err := workers.Submit(func() {
			defer wg.Done()
			s.scrapeManager(ctx, sessionID, entry, gameweeks)
		}); err != nil {
			wg.Done()
			s.logger.WarnContext(ctx, "submit manager scrape failed", "session_id", sessionID, "manager", entry.Manager, "error", err)
			s.recordManager(ctx, sessionID, false)
		}
	}
	wg.Wait()

	if ctx.Err() != nil {
		s.logger.InfoContext(ctx, "league scrape cancelled", "session_id", sessionID, "league_id", league.ID)
		return
	}
	s.finishProgress(ctx, sessionID, 0)
	s.logger.InfoContext(ctx, "league scrape finished",
		"session_id", sessionID,
		"league_id", league.ID,
		"duration_ms", s.now().Sub(start).Milliseconds(),
	)
}

type fetchedPicks struct {
	record picks.Record
	ok     bool
}

// scrapeManager fetches every gameweek for one manager and appends them as a
// single batch. Gameweeks before the manager joined answer 404 and are
// skipped; any other failure drops the whole manager.
func (s *LeagueService) scrapeManager(ctx context.Context, sessionID string, entry leaguetable.Entry, gameweeks []int) {
	p := pool.NewWithResults[fetchedPicks]().
		WithContext(ctx).
		WithCancelOnError().
		WithMaxGoroutines(s.cfg.GameweekConcurrency)
	for _, gw := range gameweeks {
		gw := gw
		p.Go(func(ctx context.Context) (fetchedPicks, error) {
			record, err := s.source.FetchEntryPicks(ctx, entry.Manager, gw)
			if errors.Is(err, ErrNotFound) {
				return fetchedPicks{}, nil
			}
			if err != nil {
				return fetchedPicks{}, fmt.Errorf("gameweek %d: %w", gw, err)
			}
			record.Manager = entry.Manager
			record.TeamName = entry.TeamName
			if err := record.Validate(); err != nil {
				return fetchedPicks{}, fmt.Errorf("gameweek %d: %w", gw, err)
			}
			return fetchedPicks{record: record, ok: true}, nil
		})
	}

	results, err := p.Wait()
	if err != nil {
		if ctx.Err() == nil {
			s.logger.WarnContext(ctx, "manager scrape failed", "session_id", sessionID, "manager", entry.Manager, "error", err)
			s.recordManager(ctx, sessionID, false)
		}
		return
	}

	records := make([]picks.Record, 0, len(results))
	for _, r := range results {
		if r.ok {
			records = append(records, r.record)
		}
	}
	sort.Slice(records, func(i, j int) bool { return records[i].Gameweek < records[j].Gameweek })

	if ctx.Err() != nil {
		return
	}
	result, err := s.repo.AppendPicks(ctx, sessionID, s.cfg.DedupPolicy, records)
	if err != nil {
		s.logger.WarnContext(ctx, "append manager picks failed", "session_id", sessionID, "manager", entry.Manager, "error", err)
		s.recordManager(ctx, sessionID, false)
		return
	}
	s.logger.DebugContext(ctx, "manager scraped",
		"session_id", sessionID,
		"manager", entry.Manager,
		"added", result.Added,
		"identical", result.Identical,
		"replaced", result.Replaced,
	)
	s.recordManager(ctx, sessionID, true)
}

func (s *LeagueService) recordManager(ctx context.Context, sessionID string, ok bool) {
	_, err := s.repo.UpdateProgress(ctx, sessionID, func(p *session.Progress) {
		if ok {
			p.Completed++
		} else {
			p.Failed++
		}
	})
	if err != nil {
		s.logger.WarnContext(ctx, "update progress failed", "session_id", sessionID, "error", err)
	}
}

// finishProgress stamps the end of a scrape; failed counts managers that
// never started.
func (s *LeagueService) finishProgress(ctx context.Context, sessionID string, failed int) {
	now := s.now().UTC()
	_, err := s.repo.UpdateProgress(ctx, sessionID, func(p *session.Progress) {
		p.Failed += failed
		p.FinishedAt = &now
	})
	if err != nil {
		s.logger.WarnContext(ctx, "finish progress failed", "session_id", sessionID, "error", err)
	}
}
