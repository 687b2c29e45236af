package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/Veraticus/autocat/internal/common"
	"github.com/Veraticus/autocat/internal/engine"
	"github.com/Veraticus/autocat/internal/model"
	"github.com/spf13/viper"
)

// EnvPrefix is prepended to every environment override, e.g. AUTOCAT_DATABASE_PATH.
const EnvPrefix = "AUTOCAT"

// Database drivers.
const (
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
)

// Config is the full application configuration.
type Config struct {
	Database DatabaseConfig `mapstructure:"database"`
	Logging  LoggingConfig  `mapstructure:"logging"`
	Engine   EngineConfig   `mapstructure:"engine"`
}

// DatabaseConfig selects and locates the rule store.
type DatabaseConfig struct {
	Driver string `mapstructure:"driver"`
	Path   string `mapstructure:"path"`
	DSN    string `mapstructure:"dsn"`
	// LogSQL enables statement logging on the postgres store.
	LogSQL bool `mapstructure:"log_sql"`
}

// EngineConfig tunes classification and learning.
type EngineConfig struct {
	PatternGranularity string        `mapstructure:"pattern_granularity"`
	CategoryOrder      []string      `mapstructure:"category_order"`
	RuleCacheTTL       time.Duration `mapstructure:"rule_cache_ttl"`
}

// LoggingConfig configures the slog handler.
type LoggingConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// SetDefaults registers every key with its default so environment
// overrides are picked up by Unmarshal.
func SetDefaults(v *viper.Viper) {
	v.SetDefault("database.driver", DriverSQLite)
	v.SetDefault("database.path", "~/.local/share/autocat/autocat.db")
	v.SetDefault("database.dsn", "")
	v.SetDefault("database.log_sql", false)
	v.SetDefault("engine.rule_cache_ttl", engine.DefaultRuleCacheTTL)
	v.SetDefault("engine.pattern_granularity", engine.GranularityFull)
	v.SetDefault("engine.category_order", model.DefaultCategoryNames)
	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "console")
}

// BindEnv wires AUTOCAT_* environment variables into v.
func BindEnv(v *viper.Viper) {
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
}

// Load decodes and validates the configuration held by v.
func Load(v *viper.Viper) (*Config, error) {
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("%w: %w", common.ErrInvalidConfig, err)
	}
	cfg.Database.Path = ExpandPath(cfg.Database.Path)
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks the configuration for contradictions.
func (c *Config) Validate() error {
	switch c.Database.Driver {
	case DriverSQLite:
		if strings.TrimSpace(c.Database.Path) == "" {
			return fmt.Errorf("%w: database.path is required for the sqlite driver", common.ErrMissingConfig)
		}
	case DriverPostgres:
		if strings.TrimSpace(c.Database.DSN) == "" {
			return fmt.Errorf("%w: database.dsn is required for the postgres driver", common.ErrMissingConfig)
		}
	default:
		return fmt.Errorf("%w: unknown database.driver %q", common.ErrInvalidConfig, c.Database.Driver)
	}

	if _, err := common.ParseLevel(c.Logging.Level); err != nil {
		return fmt.Errorf("%w: %w", common.ErrInvalidConfig, err)
	}
	if c.Logging.Format != "console" && c.Logging.Format != "json" {
		return fmt.Errorf("%w: invalid log format %q", common.ErrInvalidConfig, c.Logging.Format)
	}

	if c.Engine.RuleCacheTTL < 0 {
		return fmt.Errorf("%w: engine.rule_cache_ttl must not be negative", common.ErrInvalidConfig)
	}
	if _, err := engine.ParseGranularity(c.Engine.PatternGranularity); err != nil {
		return err
	}
	if _, err := c.CategoryOrder(); err != nil {
		return err
	}
	return nil
}

// CategoryOrder returns the configured keyword priority order.
func (c *Config) CategoryOrder() (model.CategoryOrder, error) {
	if len(c.Engine.CategoryOrder) == 0 {
		return model.DefaultCategoryOrder(), nil
	}
	order, err := model.NewCategoryOrder(c.Engine.CategoryOrder)
	if err != nil {
		return model.CategoryOrder{}, fmt.Errorf("%w: engine.category_order: %w", common.ErrInvalidConfig, err)
	}
	return order, nil
}

// EngineOptions converts the engine section into an engine.Config.
func (c *Config) EngineOptions() (engine.Config, error) {
	order, err := c.CategoryOrder()
	if err != nil {
		return engine.Config{}, err
	}
	cfg := engine.DefaultConfig()
	cfg.CategoryOrder = order
	cfg.Granularity = c.Engine.PatternGranularity
	cfg.RuleCacheTTL = c.Engine.RuleCacheTTL
	return cfg, nil
}
