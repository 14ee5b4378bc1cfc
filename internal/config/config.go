package config

import (
	"fmt"
	"strings"

	"github.com/2beens/overload/internal/overload/catalog"
	"github.com/2beens/overload/internal/overload/progression"

	"github.com/BurntSushi/toml"
)

const (
	StoreMemory   = "memory"
	StoreRedis    = "redis"
	StorePostgres = "postgres"
)

type Config struct {
	Environment string
	Host        string
	Port        int
	// logging
	LogLevel      string `toml:"log_level"`
	LogsPath      string `toml:"logs_path"`
	LogToStdout   bool   `toml:"log_to_stdout"`
	LogFormatJSON bool   `toml:"log_format_json"`
	SentryEnabled bool   `toml:"sentry_enabled"`
	// metrics
	PrometheusMetricsHost string `toml:"prometheus_metrics_host"`
	PrometheusMetricsPort string `toml:"prometheus_metrics_port"`
	// storage
	StoreBackend   string `toml:"store_backend"`
	RedisHost      string `toml:"redis_host"`
	RedisPort      string `toml:"redis_port"`
	PostgresHost   string `toml:"postgres_host"`
	PostgresPort   string `toml:"postgres_port"`
	PostgresDBName string `toml:"postgres_db_name"`
	// http
	AllowedOrigins        []string `toml:"allowed_origins"`
	RecordRateLimitPerMin int      `toml:"record_rate_limit_per_min"`
	// engine
	DefaultStrategy  string  `toml:"default_strategy"`
	VolumeWindowDays int     `toml:"volume_window_days"`
	Engine           *Engine `toml:"engine"`
}

// Engine overrides the tuning constants of the progression advisor and the
// catalog tables. Zero values keep the defaults.
type Engine struct {
	PlateauSessions  int                `toml:"plateau_sessions"`
	PlateauThreshold float64            `toml:"plateau_threshold"`
	DeloadCut        float64            `toml:"deload_cut"`
	RPEEasy          float64            `toml:"rpe_easy"`
	RPEHard          float64            `toml:"rpe_hard"`
	RoundingStep     float64            `toml:"rounding_step"`
	WeeklyTargets    map[string][]int   `toml:"weekly_targets"`
	Increments       map[string]float64 `toml:"increments"`
}

type Toml struct {
	Development *Config
	Production  *Config
	Testing     *Config
}

func (t *Toml) Get(env string) (*Config, error) {
	var cfg *Config
	switch strings.ToLower(env) {
	case "dev", "development":
		cfg = t.Development
	case "prod", "production":
		cfg = t.Production
	case "test", "testing":
		cfg = t.Testing
	default:
		return nil, fmt.Errorf("unknown env: %s", env)
	}

	if cfg == nil {
		return nil, fmt.Errorf("no config for env: %s", env)
	}
	return cfg, nil
}

// Load reads the TOML file at path and returns the table for env, with
// defaults filled in.
func Load(env, path string) (*Config, error) {
	var t Toml
	if _, err := toml.DecodeFile(path, &t); err != nil {
		return nil, fmt.Errorf("decode config file %s: %w", path, err)
	}
	return fromToml(&t, env)
}

// Parse is Load for an in-memory TOML document.
func Parse(env, content string) (*Config, error) {
	var t Toml
	if _, err := toml.Decode(content, &t); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}
	return fromToml(&t, env)
}

func fromToml(t *Toml, env string) (*Config, error) {
	cfg, err := t.Get(env)
	if err != nil {
		return nil, err
	}
	if cfg.Environment == "" {
		cfg.Environment = strings.ToLower(env)
	}
	cfg.applyDefaults()
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) applyDefaults() {
	if c.Host == "" {
		c.Host = "localhost"
	}
	if c.Port == 0 {
		c.Port = 9000
	}
	if c.LogLevel == "" {
		c.LogLevel = "info"
	}
	if c.StoreBackend == "" {
		c.StoreBackend = StoreMemory
	}
	if c.Engine == nil {
		c.Engine = &Engine{}
	}
}

func (c *Config) validate() error {
	switch c.StoreBackend {
	case StoreMemory, StoreRedis, StorePostgres:
	default:
		return fmt.Errorf("unknown store backend: %s", c.StoreBackend)
	}
	if c.RecordRateLimitPerMin < 0 {
		return fmt.Errorf("record rate limit must not be negative, got %d", c.RecordRateLimitPerMin)
	}
	if c.VolumeWindowDays < 0 {
		return fmt.Errorf("volume window days must not be negative, got %d", c.VolumeWindowDays)
	}
	for group, target := range c.Engine.WeeklyTargets {
		if len(target) != 2 || target[0] < 0 || target[0] > target[1] {
			return fmt.Errorf("weekly target for %s must be [low, high] with 0 <= low <= high, got %v", group, target)
		}
	}
	for category, inc := range c.Engine.Increments {
		if !catalog.Category(category).Valid() {
			return fmt.Errorf("unknown exercise category in increments: %s", category)
		}
		if inc < 0 {
			return fmt.Errorf("increment for %s must not be negative, got %v", category, inc)
		}
	}
	return c.Engine.Progression().Validate()
}

// Progression returns the advisor tuning with the configured overrides applied.
func (e *Engine) Progression() progression.Config {
	cfg := progression.DefaultConfig()
	if e == nil {
		return cfg
	}
	if e.PlateauSessions != 0 {
		cfg.PlateauSessions = e.PlateauSessions
	}
	if e.PlateauThreshold != 0 {
		cfg.PlateauThreshold = e.PlateauThreshold
	}
	if e.DeloadCut != 0 {
		cfg.DeloadCut = e.DeloadCut
	}
	if e.RPEEasy != 0 {
		cfg.RPEEasy = e.RPEEasy
	}
	if e.RPEHard != 0 {
		cfg.RPEHard = e.RPEHard
	}
	if e.RoundingStep != 0 {
		cfg.RoundingStep = e.RoundingStep
	}
	return cfg
}

func (e *Engine) CatalogOptions() []catalog.Option {
	if e == nil {
		return nil
	}

	var opts []catalog.Option
	if len(e.WeeklyTargets) > 0 {
		targets := make(map[string]catalog.TargetRange, len(e.WeeklyTargets))
		for group, target := range e.WeeklyTargets {
			targets[group] = catalog.TargetRange{Low: target[0], High: target[1]}
		}
		opts = append(opts, catalog.WithTargets(targets))
	}
	if len(e.Increments) > 0 {
		increments := make(map[catalog.Category]float64, len(e.Increments))
		for category, inc := range e.Increments {
			increments[catalog.Category(category)] = inc
		}
		opts = append(opts, catalog.WithIncrements(increments))
	}
	return opts
}
