package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
)

type Config struct {
	Environment string `toml:"environment"`
	Host        string `toml:"host"`
	Port        int    `toml:"port"`
	// logging
	LogLevel      string `toml:"log_level"`
	LogsPath      string `toml:"logs_path"`
	LogToStdout   bool   `toml:"log_to_stdout"`
	SentryEnabled bool   `toml:"sentry_enabled"`
	// postgres
	PostgresHost   string `toml:"postgres_host"`
	PostgresPort   string `toml:"postgres_port"`
	PostgresDBName string `toml:"postgres_db_name"`
	// redis
	RedisHost string `toml:"redis_host"`
	RedisPort string `toml:"redis_port"`
	// metrics
	PrometheusMetricsHost string `toml:"prometheus_metrics_host"`
	PrometheusMetricsPort string `toml:"prometheus_metrics_port"`
	// http
	AllowedOrigins []string `toml:"allowed_origins"`
	// insights (AI summarization collaborator)
	InsightsEndpoint          string `toml:"insights_endpoint"`
	InsightsTimeoutSeconds    int    `toml:"insights_timeout_seconds"`
	InsightsCacheTTLMinutes   int    `toml:"insights_cache_ttl_minutes"`
	InsightsRateLimitPerMin   int    `toml:"insights_rate_limit_per_min"`
	InsightsLocalCacheSizeMB  int    `toml:"insights_local_cache_size_mb"`
	InsightsUseLocalCacheOnly bool   `toml:"insights_use_local_cache_only"`
	// analytics
	AnalyticsWorkers int `toml:"analytics_workers"`
}

func (c *Config) InsightsTimeout() time.Duration {
	if c.InsightsTimeoutSeconds <= 0 {
		return 30 * time.Second
	}
	return time.Duration(c.InsightsTimeoutSeconds) * time.Second
}

func (c *Config) InsightsCacheTTL() time.Duration {
	if c.InsightsCacheTTLMinutes <= 0 {
		return time.Hour
	}
	return time.Duration(c.InsightsCacheTTLMinutes) * time.Minute
}

type Toml struct {
	Development *Config
	Production  *Config
}

func (t *Toml) Get(env string) (*Config, error) {
	var cfg *Config
	switch strings.ToLower(env) {
	case "dev", "development":
		cfg = t.Development
	case "prod", "production":
		cfg = t.Production
	default:
		return nil, fmt.Errorf("unknown env: %s", env)
	}
	if cfg == nil {
		return nil, fmt.Errorf("config for env [%s] missing", env)
	}
	return cfg, nil
}

// Load reads the TOML config file and returns the config for the given environment.
func Load(env, path string) (*Config, error) {
	var t Toml
	if _, err := toml.DecodeFile(path, &t); err != nil {
		return nil, fmt.Errorf("decode config file [%s]: %w", path, err)
	}

	cfg, err := t.Get(env)
	if err != nil {
		return nil, err
	}

	if cfg.Environment == "" {
		cfg.Environment = strings.ToLower(env)
	}
	if cfg.Port == 0 {
		return nil, fmt.Errorf("port not set for env [%s]", env)
	}

	return cfg, nil
}
