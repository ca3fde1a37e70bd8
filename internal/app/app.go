package app

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/riskibarqy/fpl-league-dashboard/external/fpl"
	"github.com/riskibarqy/fpl-league-dashboard/internal/config"
	"github.com/riskibarqy/fpl-league-dashboard/internal/domain/session"
	cacherepo "github.com/riskibarqy/fpl-league-dashboard/internal/infrastructure/repository/cache"
	"github.com/riskibarqy/fpl-league-dashboard/internal/infrastructure/repository/memory"
	"github.com/riskibarqy/fpl-league-dashboard/internal/infrastructure/repository/postgres"
	redisrepo "github.com/riskibarqy/fpl-league-dashboard/internal/infrastructure/repository/redis"
	"github.com/riskibarqy/fpl-league-dashboard/internal/interfaces/httpapi"
	"github.com/riskibarqy/fpl-league-dashboard/internal/platform/id"
	"github.com/riskibarqy/fpl-league-dashboard/internal/platform/logging"
	"github.com/riskibarqy/fpl-league-dashboard/internal/platform/resilience"
	"github.com/riskibarqy/fpl-league-dashboard/internal/usecase"
)

// App owns the HTTP server and the background workers behind it.
type App struct {
	Server *http.Server

	leagues *usecase.LeagueService
	logger  *logging.Logger
	closers []func() error
	stop    context.CancelFunc
}

func New(ctx context.Context, cfg config.Config, logger *logging.Logger) (*App, error) {
	if logger == nil {
		logger = logging.Default()
	}
	if cfg.HTTPAddr == "" {
		return nil, fmt.Errorf("http server addr cannot be empty")
	}

	bgCtx, stop := context.WithCancel(context.Background())
	a := &App{logger: logger, stop: stop}

	repo, err := a.sessionRepository(ctx, bgCtx, cfg)
	if err != nil {
		stop()
		return nil, err
	}

	var source usecase.FPLSource = fpl.NewClient(fpl.ClientConfig{
		BaseURL:      cfg.FPLBaseURL,
		UserAgent:    cfg.FPLUserAgent,
		Timeout:      cfg.FPLTimeout,
		MaxRetries:   cfg.FPLMaxRetries,
		RetryBackoff: cfg.FPLRetryBackoff,
		Logger:       logger.Named("fpl"),
		CircuitBreaker: resilience.CircuitBreakerConfig{
			Enabled:          cfg.FPLCircuitEnabled,
			FailureThreshold: cfg.FPLCircuitFailureCount,
			OpenTimeout:      cfg.FPLCircuitOpenTimeout,
			HalfOpenMaxReq:   cfg.FPLCircuitHalfOpenMaxReq,
		},
	})
	if cfg.CacheEnabled {
		source = cacherepo.NewFPLSource(source, cfg.CacheTTL)
	}

	a.leagues = usecase.NewLeagueService(source, repo, usecase.LeagueServiceConfig{
		ManagerLimit:          cfg.FPLManagerLimit,
		IncludeActiveGameweek: cfg.FPLIncludeActiveGW,
		Workers:               cfg.ScrapeWorkers,
		GameweekConcurrency:   cfg.ScrapeGameweekWorkers,
		DedupPolicy:           cfg.PicksDedupPolicy,
	}, logger)
	dashboards := usecase.NewDashboardService(repo, source, cfg.DashboardTopOwnership, logger)

	sessions := usecase.NewSessionService(id.NewRandomGenerator(""), logger)

	handler := httpapi.NewHandler(sessions, a.leagues, dashboards, logger)
	a.Server = &http.Server{
		Addr:         cfg.HTTPAddr,
		Handler:      httpapi.NewRouter(handler, logger, cfg.CORSAllowedOrigins),
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
	}

	return a, nil
}

func (a *App) sessionRepository(ctx, bgCtx context.Context, cfg config.Config) (session.Repository, error) {
	switch cfg.SessionStore {
	case config.SessionStoreRedis:
		client, err := redisrepo.NewClient(ctx, redisrepo.ClientConfig{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
		})
		if err != nil {
			return nil, fmt.Errorf("connect redis: %w", err)
		}
		a.closers = append(a.closers, client.Close)
		a.logger.Info("session store ready", "store", config.SessionStoreRedis, "addr", cfg.RedisAddr)
		return redisrepo.NewSessionRepository(client, cfg.SessionTTL), nil
	case config.SessionStorePostgres:
		db, err := postgres.Open(ctx, postgres.DBConfig{
			URL:                   cfg.DBURL,
			DisablePreparedBinary: cfg.DBDisablePreparedBinary,
			MaxOpenConns:          cfg.DBMaxOpenConns,
			MaxIdleConns:          cfg.DBMaxIdleConns,
			ConnMaxLifetime:       cfg.DBConnMaxLifetime,
		})
		if err != nil {
			return nil, fmt.Errorf("connect postgres: %w", err)
		}
		a.closers = append(a.closers, db.Close)
		repo := postgres.NewSessionRepository(db, cfg.SessionTTL)
		go purgeExpiredSessions(bgCtx, repo.PurgeExpired, cfg.SessionTTL, a.logger)
		a.logger.Info("session store ready", "store", config.SessionStorePostgres, "ttl", cfg.SessionTTL)
		return repo, nil
	default:
		repo := memory.NewSessionRepository(cfg.SessionTTL)
		go purgeExpiredSessions(bgCtx, func(context.Context) (int64, error) {
			return int64(repo.PurgeExpired()), nil
		}, cfg.SessionTTL, a.logger)
		a.logger.Info("session store ready", "store", config.SessionStoreMemory, "ttl", cfg.SessionTTL)
		return repo, nil
	}
}

// purgeFunc removes expired sessions and reports how many went.
type purgeFunc func(ctx context.Context) (int64, error)

func purgeExpiredSessions(ctx context.Context, purge purgeFunc, ttl time.Duration, logger *logging.Logger) {
	interval := ttl / 2
	if interval < time.Minute {
		interval = time.Minute
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			purged, err := purge(ctx)
			if err != nil {
				logger.WarnContext(ctx, "purge expired sessions failed", "error", err)
				continue
			}
			if purged > 0 {
				logger.Debug("expired sessions purged", "count", purged)
			}
		}
	}
}

// Shutdown stops accepting requests, cancels running scrapes and releases
// the session store.
func (a *App) Shutdown(ctx context.Context) error {
	var errs []error
	if err := a.Server.Shutdown(ctx); err != nil {
		errs = append(errs, fmt.Errorf("shutdown http server: %w", err))
	}
	a.leagues.Close()
	a.stop()
	for _, closeFn := range a.closers {
		if err := closeFn(); err != nil {
			errs = append(errs, fmt.Errorf("close session store: %w", err))
		}
	}
	return errors.Join(errs...)
}
