package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/riskibarqy/fpl-league-dashboard/internal/domain/picks"
	"github.com/riskibarqy/fpl-league-dashboard/internal/platform/logging"
)

// Config stores runtime configuration for the service.
type Config struct {
	AppEnv                   string
	ServiceName              string
	ServiceVersion           string
	HTTPAddr                 string
	ReadTimeout              time.Duration
	WriteTimeout             time.Duration
	ShutdownTimeout          time.Duration
	CORSAllowedOrigins       []string
	LogLevel                 logging.Level
	PprofEnabled             bool
	PprofAddr                string
	UptraceEnabled           bool
	UptraceDSN               string
	UptraceLogsEnabled       bool
	PyroscopeEnabled         bool
	PyroscopeServerAddress   string
	PyroscopeAppName         string
	PyroscopeAuthToken       string
	PyroscopeBasicAuthUser   string
	PyroscopeBasicAuthPass   string
	PyroscopeUploadRate      time.Duration
	FPLBaseURL               string
	FPLUserAgent             string
	FPLTimeout               time.Duration
	FPLMaxRetries            int
	FPLRetryBackoff          time.Duration
	FPLCircuitEnabled        bool
	FPLCircuitFailureCount   int
	FPLCircuitOpenTimeout    time.Duration
	FPLCircuitHalfOpenMaxReq int
	FPLManagerLimit          int
	FPLIncludeActiveGW       bool
	ScrapeWorkers            int
	ScrapeGameweekWorkers    int
	CacheEnabled             bool
	CacheTTL                 time.Duration
	SessionStore             string
	SessionTTL               time.Duration
	RedisAddr                string
	RedisPassword            string
	RedisDB                  int
	DBURL                    string
	DBDisablePreparedBinary  bool
	DBMaxOpenConns           int
	DBMaxIdleConns           int
	DBConnMaxLifetime        time.Duration
	PicksDedupPolicy         picks.DedupPolicy
	DashboardTopOwnership    int
}

const (
	SessionStoreMemory   = "memory"
	SessionStoreRedis    = "redis"
	SessionStorePostgres = "postgres"
)

func Load() (Config, error) {
	appEnv, err := parseAppEnv(getEnv("APP_ENV", EnvDev))
	if err != nil {
		return Config{}, err
	}

	cfg := Config{
		AppEnv:                 appEnv,
		ServiceName:            getEnv("APP_SERVICE_NAME", "fpl-league-dashboard"),
		ServiceVersion:         getEnv("APP_SERVICE_VERSION", "dev"),
		HTTPAddr:               getEnv("APP_HTTP_ADDR", ":8080"),
		CORSAllowedOrigins:     splitCSV(getEnv("CORS_ALLOWED_ORIGINS", "*")),
		LogLevel:               logging.ParseLevel(getEnv("APP_LOG_LEVEL", "info")),
		PprofAddr:              strings.TrimSpace(getEnv("PPROF_ADDR", ":6060")),
		PyroscopeServerAddress: strings.TrimSpace(getEnv("PYROSCOPE_SERVER_ADDRESS", "")),
		PyroscopeAuthToken:     strings.TrimSpace(getEnv("PYROSCOPE_AUTH_TOKEN", "")),
		PyroscopeBasicAuthUser: strings.TrimSpace(getEnv("PYROSCOPE_BASIC_AUTH_USER", "")),
		PyroscopeBasicAuthPass: strings.TrimSpace(getEnv("PYROSCOPE_BASIC_AUTH_PASSWORD", "")),
		FPLBaseURL:             strings.TrimSpace(getEnv("FPL_BASE_URL", "https://fantasy.premierleague.com/api")),
		FPLUserAgent:           strings.TrimSpace(getEnv("FPL_USER_AGENT", "")),
		RedisAddr:              strings.TrimSpace(getEnv("REDIS_ADDR", "localhost:6379")),
		RedisPassword:          getEnv("REDIS_PASSWORD", ""),
		DBURL:                  strings.TrimSpace(getEnv("DB_URL", "")),
	}
	cfg.PyroscopeAppName = strings.TrimSpace(getEnv("PYROSCOPE_APP_NAME", cfg.ServiceName))

	if err := loadServer(&cfg); err != nil {
		return Config{}, err
	}
	if err := loadObservability(&cfg); err != nil {
		return Config{}, err
	}
	if err := loadFPL(&cfg); err != nil {
		return Config{}, err
	}
	if err := loadSession(&cfg); err != nil {
		return Config{}, err
	}

	return cfg, nil
}

func loadServer(cfg *Config) error {
	var err error
	if cfg.ReadTimeout, err = getEnvAsDuration("APP_READ_TIMEOUT", "10s"); err != nil {
		return err
	}
	if cfg.WriteTimeout, err = getEnvAsDuration("APP_WRITE_TIMEOUT", "15s"); err != nil {
		return err
	}
	if cfg.ShutdownTimeout, err = getEnvAsDuration("APP_SHUTDOWN_TIMEOUT", "10s"); err != nil {
		return err
	}

	if cfg.PprofEnabled, err = strconv.ParseBool(getEnv("PPROF_ENABLED", "false")); err != nil {
		return fmt.Errorf("parse PPROF_ENABLED: %w", err)
	}
	if cfg.PprofEnabled && cfg.PprofAddr == "" {
		return fmt.Errorf("PPROF_ADDR is required when PPROF_ENABLED=true")
	}
	return nil
}

func loadObservability(cfg *Config) error {
	var err error
	if cfg.UptraceEnabled, err = strconv.ParseBool(getEnv("UPTRACE_ENABLED", "false")); err != nil {
		return fmt.Errorf("parse UPTRACE_ENABLED: %w", err)
	}
	cfg.UptraceDSN = strings.TrimSpace(getEnv("UPTRACE_DSN", ""))
	if cfg.UptraceDSN == "" {
		cfg.UptraceDSN = parseUptraceDSNFromOTLPHeaders(getEnv("OTEL_EXPORTER_OTLP_HEADERS", ""))
	}
	if cfg.UptraceEnabled && cfg.UptraceDSN == "" {
		return fmt.Errorf("UPTRACE_DSN is required when UPTRACE_ENABLED=true")
	}
	if cfg.UptraceLogsEnabled, err = strconv.ParseBool(getEnv("UPTRACE_LOGS_ENABLED", "false")); err != nil {
		return fmt.Errorf("parse UPTRACE_LOGS_ENABLED: %w", err)
	}

	if cfg.PyroscopeEnabled, err = strconv.ParseBool(getEnv("PYROSCOPE_ENABLED", "false")); err != nil {
		return fmt.Errorf("parse PYROSCOPE_ENABLED: %w", err)
	}
	if cfg.PyroscopeEnabled && cfg.PyroscopeServerAddress == "" {
		return fmt.Errorf("PYROSCOPE_SERVER_ADDRESS is required when PYROSCOPE_ENABLED=true")
	}
	if cfg.PyroscopeEnabled && cfg.PyroscopeAppName == "" {
		return fmt.Errorf("PYROSCOPE_APP_NAME is required when PYROSCOPE_ENABLED=true")
	}
	if cfg.PyroscopeUploadRate, err = getEnvAsDuration("PYROSCOPE_UPLOAD_RATE", "15s"); err != nil {
		return err
	}
	return nil
}

func loadFPL(cfg *Config) error {
	var err error
	if cfg.FPLBaseURL == "" {
		return fmt.Errorf("FPL_BASE_URL must not be empty")
	}
	if cfg.FPLTimeout, err = getEnvAsDuration("FPL_TIMEOUT", "20s"); err != nil {
		return err
	}
	if cfg.FPLMaxRetries, err = getEnvAsInt("FPL_MAX_RETRIES", 2); err != nil {
		return fmt.Errorf("parse FPL_MAX_RETRIES: %w", err)
	}
	if cfg.FPLMaxRetries < 0 {
		return fmt.Errorf("FPL_MAX_RETRIES must be >= 0")
	}
	if cfg.FPLRetryBackoff, err = getEnvAsDuration("FPL_RETRY_BACKOFF", "300ms"); err != nil {
		return err
	}

	if cfg.FPLCircuitEnabled, err = strconv.ParseBool(getEnv("FPL_CIRCUIT_ENABLED", "true")); err != nil {
		return fmt.Errorf("parse FPL_CIRCUIT_ENABLED: %w", err)
	}
	if cfg.FPLCircuitFailureCount, err = getEnvAsInt("FPL_CIRCUIT_FAILURE_COUNT", 5); err != nil {
		return fmt.Errorf("parse FPL_CIRCUIT_FAILURE_COUNT: %w", err)
	}
	if cfg.FPLCircuitFailureCount < 1 {
		return fmt.Errorf("FPL_CIRCUIT_FAILURE_COUNT must be >= 1")
	}
	if cfg.FPLCircuitOpenTimeout, err = getEnvAsDuration("FPL_CIRCUIT_OPEN_TIMEOUT", "15s"); err != nil {
		return err
	}
	if cfg.FPLCircuitHalfOpenMaxReq, err = getEnvAsInt("FPL_CIRCUIT_HALF_OPEN_MAX_REQ", 2); err != nil {
		return fmt.Errorf("parse FPL_CIRCUIT_HALF_OPEN_MAX_REQ: %w", err)
	}
	if cfg.FPLCircuitHalfOpenMaxReq < 1 {
		return fmt.Errorf("FPL_CIRCUIT_HALF_OPEN_MAX_REQ must be >= 1")
	}

	if cfg.FPLManagerLimit, err = getEnvAsInt("FPL_MANAGER_LIMIT", 50); err != nil {
		return fmt.Errorf("parse FPL_MANAGER_LIMIT: %w", err)
	}
	if cfg.FPLManagerLimit < 0 {
		return fmt.Errorf("FPL_MANAGER_LIMIT must be >= 0")
	}
	if cfg.FPLIncludeActiveGW, err = strconv.ParseBool(getEnv("FPL_INCLUDE_ACTIVE_GAMEWEEK", "false")); err != nil {
		return fmt.Errorf("parse FPL_INCLUDE_ACTIVE_GAMEWEEK: %w", err)
	}

	if cfg.ScrapeWorkers, err = getEnvAsInt("SCRAPE_WORKERS", 8); err != nil {
		return fmt.Errorf("parse SCRAPE_WORKERS: %w", err)
	}
	if cfg.ScrapeWorkers < 1 {
		return fmt.Errorf("SCRAPE_WORKERS must be >= 1")
	}
	if cfg.ScrapeGameweekWorkers, err = getEnvAsInt("SCRAPE_GAMEWEEK_WORKERS", 4); err != nil {
		return fmt.Errorf("parse SCRAPE_GAMEWEEK_WORKERS: %w", err)
	}
	if cfg.ScrapeGameweekWorkers < 1 {
		return fmt.Errorf("SCRAPE_GAMEWEEK_WORKERS must be >= 1")
	}

	if cfg.CacheEnabled, err = strconv.ParseBool(getEnv("CACHE_ENABLED", "true")); err != nil {
		return fmt.Errorf("parse CACHE_ENABLED: %w", err)
	}
	if cfg.CacheTTL, err = getEnvAsDuration("CACHE_TTL", "5m"); err != nil {
		return err
	}
	return nil
}

func loadSession(cfg *Config) error {
	var err error
	store := strings.ToLower(strings.TrimSpace(getEnv("SESSION_STORE", SessionStoreMemory)))
	switch store {
	case SessionStoreMemory, SessionStoreRedis, SessionStorePostgres:
		cfg.SessionStore = store
	default:
		return fmt.Errorf("invalid SESSION_STORE %q: valid values are %s, %s, %s", store, SessionStoreMemory, SessionStoreRedis, SessionStorePostgres)
	}
	if cfg.SessionStore == SessionStoreRedis && cfg.RedisAddr == "" {
		return fmt.Errorf("REDIS_ADDR is required when SESSION_STORE=redis")
	}
	if cfg.SessionStore == SessionStorePostgres && cfg.DBURL == "" {
		return fmt.Errorf("DB_URL is required when SESSION_STORE=postgres")
	}
	if cfg.SessionTTL, err = getEnvAsDuration("SESSION_TTL", "2h"); err != nil {
		return err
	}
	if cfg.RedisDB, err = getEnvAsInt("REDIS_DB", 0); err != nil {
		return fmt.Errorf("parse REDIS_DB: %w", err)
	}
	if cfg.RedisDB < 0 {
		return fmt.Errorf("REDIS_DB must be >= 0")
	}

	if err := loadDB(cfg); err != nil {
		return err
	}

	if cfg.PicksDedupPolicy, err = picks.ParseDedupPolicy(getEnv("PICKS_DEDUP_POLICY", string(picks.DedupDropIdentical))); err != nil {
		return fmt.Errorf("parse PICKS_DEDUP_POLICY: %w", err)
	}
	if cfg.DashboardTopOwnership, err = getEnvAsInt("DASHBOARD_TOP_OWNERSHIP", 20); err != nil {
		return fmt.Errorf("parse DASHBOARD_TOP_OWNERSHIP: %w", err)
	}
	if cfg.DashboardTopOwnership < 1 {
		return fmt.Errorf("DASHBOARD_TOP_OWNERSHIP must be >= 1")
	}
	return nil
}

func loadDB(cfg *Config) error {
	var err error
	if cfg.DBDisablePreparedBinary, err = strconv.ParseBool(getEnv("DB_DISABLE_PREPARED_BINARY_RESULT", "true")); err != nil {
		return fmt.Errorf("parse DB_DISABLE_PREPARED_BINARY_RESULT: %w", err)
	}
	if cfg.DBMaxOpenConns, err = getEnvAsInt("DB_MAX_OPEN_CONNS", 10); err != nil {
		return fmt.Errorf("parse DB_MAX_OPEN_CONNS: %w", err)
	}
	if cfg.DBMaxOpenConns < 1 {
		return fmt.Errorf("DB_MAX_OPEN_CONNS must be >= 1")
	}
	if cfg.DBMaxIdleConns, err = getEnvAsInt("DB_MAX_IDLE_CONNS", 5); err != nil {
		return fmt.Errorf("parse DB_MAX_IDLE_CONNS: %w", err)
	}
	if cfg.DBMaxIdleConns < 0 {
		return fmt.Errorf("DB_MAX_IDLE_CONNS must be >= 0")
	}
	if cfg.DBConnMaxLifetime, err = getEnvAsDuration("DB_CONN_MAX_LIFETIME", "30m"); err != nil {
		return err
	}
	return nil
}

func getEnv(key, fallback string) string {
	value := os.Getenv(key)
	if strings.TrimSpace(value) == "" {
		return fallback
	}

	return value
}

func getEnvAsInt(key string, fallback int) (int, error) {
	value := strings.TrimSpace(os.Getenv(key))
	if value == "" {
		return fallback, nil
	}

	out, err := strconv.Atoi(value)
	if err != nil {
		return 0, err
	}

	return out, nil
}

// getEnvAsDuration parses a positive duration.
func getEnvAsDuration(key, fallback string) (time.Duration, error) {
	out, err := time.ParseDuration(strings.TrimSpace(getEnv(key, fallback)))
	if err != nil {
		return 0, fmt.Errorf("parse %s: %w", key, err)
	}
	if out <= 0 {
		return 0, fmt.Errorf("%s must be > 0", key)
	}
	return out, nil
}

func splitCSV(v string) []string {
	parts := strings.Split(v, ",")
	out := make([]string, 0, len(parts))
	for _, part := range parts {
		item := strings.TrimSpace(part)
		if item == "" {
			continue
		}
		out = append(out, item)
	}

	return out
}

func parseUptraceDSNFromOTLPHeaders(raw string) string {
	if strings.TrimSpace(raw) == "" {
		return ""
	}

	items := strings.Split(raw, ",")
	for _, item := range items {
		parts := strings.SplitN(strings.TrimSpace(item), "=", 2)
		if len(parts) != 2 {
			continue
		}
		if strings.EqualFold(strings.TrimSpace(parts[0]), "uptrace-dsn") {
			value := strings.TrimSpace(parts[1])
			return strings.Trim(value, "\"'")
		}
	}

	return ""
}

const (
	EnvDev   = "dev"
	EnvStage = "stage"
	EnvProd  = "prod"
)

func parseAppEnv(v string) (string, error) {
	value := strings.ToLower(strings.TrimSpace(v))
	switch value {
	case EnvDev, EnvStage, EnvProd:
		return value, nil
	default:
		return "", fmt.Errorf("invalid APP_ENV %q: valid values are %s, %s, %s", v, EnvDev, EnvStage, EnvProd)
	}
}
