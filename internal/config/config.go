package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// RPGCore holds all configuration for the rpgcore host.
type RPGCore struct {
	LogLevel string `yaml:"log_level"` // debug, info, warn, error

	// DataDir with items.yaml, sets.yaml, ...; empty uses the embedded defaults.
	DataDir string `yaml:"data_dir"`

	Stats     StatsConfig     `yaml:"stats"`
	Ticker    TickerConfig    `yaml:"ticker"`
	Database  DatabaseConfig  `yaml:"database"`
	Telemetry TelemetryConfig `yaml:"telemetry"`
	Demo      DemoConfig      `yaml:"demo"`
}

// StatsConfig holds platform baselines of the attribute engine.
type StatsConfig struct {
	MaxHealthBaseline float64 `yaml:"max_health_baseline"`
	MoveSpeedBaseline float64 `yaml:"move_speed_baseline"`
	AccessorySlots    int     `yaml:"accessory_slots"`
}

// TickerConfig holds the host loop intervals.
type TickerConfig struct {
	TickRate        time.Duration `yaml:"tick_rate"`
	BuffSweep       time.Duration `yaml:"buff_sweep"`
	SubclassRefresh time.Duration `yaml:"subclass_refresh"`
}

// DatabaseConfig holds PostgreSQL connection parameters.
type DatabaseConfig struct {
	Enabled  bool   `yaml:"enabled"`
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	User     string `yaml:"user"`
	Password string `yaml:"password"`
	DBName   string `yaml:"dbname"`
	SSLMode  string `yaml:"sslmode"`
}

// DSN returns the PostgreSQL connection string.
func (d DatabaseConfig) DSN() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%d/%s?sslmode=%s",
		d.User, d.Password, d.Host, d.Port, d.DBName, d.SSLMode,
	)
}

// TelemetryConfig toggles OTLP trace export (endpoint comes from OTEL_* env vars).
type TelemetryConfig struct {
	Enabled bool `yaml:"enabled"`
}

// DemoConfig drives the scripted duel of cmd/rpgcore.
type DemoConfig struct {
	Duration time.Duration `yaml:"duration"` // 0 = run until signalled
	Attacks  int           `yaml:"attacks"`
}

// DefaultRPGCore returns RPGCore config with sensible defaults.
func DefaultRPGCore() RPGCore {
	return RPGCore{
		LogLevel: "info",
		Stats: StatsConfig{
			MaxHealthBaseline: 20,
			MoveSpeedBaseline: 0.1,
			AccessorySlots:    4,
		},
		Ticker: TickerConfig{
			TickRate:        50 * time.Millisecond,
			BuffSweep:       time.Second,
			SubclassRefresh: 500 * time.Millisecond,
		},
		Database: DatabaseConfig{
			Host:     "127.0.0.1",
			Port:     5432,
			User:     "rpgcore",
			Password: "rpgcore",
			DBName:   "rpgcore",
			SSLMode:  "disable",
		},
		Demo: DemoConfig{
			Duration: 10 * time.Second,
			Attacks:  20,
		},
	}
}

// LoadRPGCore loads config from a YAML file.
// If the file doesn't exist, returns defaults.
func LoadRPGCore(path string) (RPGCore, error) {
	cfg := DefaultRPGCore()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("reading config %s: %w", path, err)
	}

	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parsing config %s: %w", path, err)
	}

	if err := cfg.validate(); err != nil {
		return cfg, fmt.Errorf("validating config %s: %w", path, err)
	}

	return cfg, nil
}

func (c RPGCore) validate() error {
	if c.Stats.MoveSpeedBaseline < 0 || c.Stats.MoveSpeedBaseline > 1 {
		return fmt.Errorf("stats.move_speed_baseline must be in [0,1], got %v", c.Stats.MoveSpeedBaseline)
	}
	if c.Stats.MaxHealthBaseline < 1 {
		return fmt.Errorf("stats.max_health_baseline must be >= 1, got %v", c.Stats.MaxHealthBaseline)
	}
	if c.Ticker.TickRate <= 0 || c.Ticker.BuffSweep <= 0 || c.Ticker.SubclassRefresh <= 0 {
		return errors.New("ticker intervals must be positive")
	}
	return nil
}
