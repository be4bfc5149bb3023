// Package config provides Viper-based configuration loading for dicequest.
package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// DatabaseConfig holds PostgreSQL connection settings.
type DatabaseConfig struct {
	Host            string        `mapstructure:"host"`
	Port            int           `mapstructure:"port"`
	User            string        `mapstructure:"user"`
	Password        string        `mapstructure:"password"`
	Name            string        `mapstructure:"name"`
	SSLMode         string        `mapstructure:"sslmode"`
	MaxConns        int32         `mapstructure:"max_conns"`
	MinConns        int32         `mapstructure:"min_conns"`
	MaxConnLifetime time.Duration `mapstructure:"max_conn_lifetime"`
}

// DSN returns the PostgreSQL connection string.
//
// Precondition: Host, Port, User, and Name must be non-empty.
// Postcondition: Returns a valid PostgreSQL DSN string.
func (d DatabaseConfig) DSN() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%d/%s?sslmode=%s",
		d.User, d.Password, d.Host, d.Port, d.Name, d.SSLMode,
	)
}

// LoggingConfig holds structured logging settings.
type LoggingConfig struct {
	// Level is the minimum log level: "debug", "info", "warn", "error".
	Level string `mapstructure:"level"`
	// Format is the log output format: "json" or "console".
	Format string `mapstructure:"format"`
	// File optionally mirrors the log, as JSON, to a rotated file.
	File LogFileConfig `mapstructure:"file"`
}

// LogFileConfig holds rotated log file settings. An empty Path disables the file.
type LogFileConfig struct {
	Path       string `mapstructure:"path"`
	MaxSizeMB  int    `mapstructure:"max_size_mb"`
	MaxBackups int    `mapstructure:"max_backups"`
	MaxAgeDays int    `mapstructure:"max_age_days"`
}

// PacingConfig holds the presentation delay of each timed battle phase.
type PacingConfig struct {
	Start         time.Duration `mapstructure:"start"`
	PlayerRolling time.Duration `mapstructure:"player_rolling"`
	PlayerResult  time.Duration `mapstructure:"player_result"`
	BossTurn      time.Duration `mapstructure:"boss_turn"`
	BossResult    time.Duration `mapstructure:"boss_result"`
}

// BattleConfig holds boss battle settings.
type BattleConfig struct {
	// DieFaces is the size of the player's attack die.
	DieFaces int `mapstructure:"die_faces"`
	// CatalogDir holds the boss YAML definitions. Empty selects the built-in catalog.
	CatalogDir string `mapstructure:"catalog_dir"`
	// BoardSize is the number of tiles on the board; push-back never leaves it.
	BoardSize int          `mapstructure:"board_size"`
	Pacing    PacingConfig `mapstructure:"pacing"`
}

// StorageConfig controls persistence of battle reports.
type StorageConfig struct {
	// Enabled persists every battle result to PostgreSQL.
	Enabled bool `mapstructure:"enabled"`
}

// Config is the top-level application configuration.
type Config struct {
	Logging  LoggingConfig  `mapstructure:"logging"`
	Database DatabaseConfig `mapstructure:"database"`
	Battle   BattleConfig   `mapstructure:"battle"`
	Storage  StorageConfig  `mapstructure:"storage"`
}

// Validate checks all configuration invariants. Database settings are only
// checked when storage is enabled.
//
// Postcondition: Returns nil if configuration is valid, or an error describing all violations.
func (c Config) Validate() error {
	var errs []string

	if err := validateLogging(c.Logging); err != nil {
		errs = append(errs, err.Error())
	}
	if err := validateBattle(c.Battle); err != nil {
		errs = append(errs, err.Error())
	}
	if c.Storage.Enabled {
		if err := validateDatabase(c.Database); err != nil {
			errs = append(errs, err.Error())
		}
	}

	if len(errs) > 0 {
		return fmt.Errorf("configuration validation failed: %s", strings.Join(errs, "; "))
	}
	return nil
}

func validateDatabase(d DatabaseConfig) error {
	var errs []string
	if d.Host == "" {
		errs = append(errs, "database.host must not be empty")
	}
	if d.Port < 1 || d.Port > 65535 {
		errs = append(errs, fmt.Sprintf("database.port must be 1-65535, got %d", d.Port))
	}
	if d.User == "" {
		errs = append(errs, "database.user must not be empty")
	}
	if d.Name == "" {
		errs = append(errs, "database.name must not be empty")
	}
	validSSL := map[string]bool{"disable": true, "require": true, "verify-ca": true, "verify-full": true}
	if !validSSL[d.SSLMode] {
		errs = append(errs, fmt.Sprintf("database.sslmode must be one of [disable, require, verify-ca, verify-full], got %q", d.SSLMode))
	}
	if d.MaxConns < 1 {
		errs = append(errs, fmt.Sprintf("database.max_conns must be >= 1, got %d", d.MaxConns))
	}
	if d.MinConns < 0 {
		errs = append(errs, fmt.Sprintf("database.min_conns must be >= 0, got %d", d.MinConns))
	}
	if d.MinConns > d.MaxConns {
		errs = append(errs, "database.min_conns must not exceed database.max_conns")
	}
	if len(errs) > 0 {
		return fmt.Errorf("%s", strings.Join(errs, "; "))
	}
	return nil
}

func validateBattle(b BattleConfig) error {
	var errs []string
	if b.DieFaces < 2 {
		errs = append(errs, fmt.Sprintf("battle.die_faces must be >= 2, got %d", b.DieFaces))
	}
	if b.BoardSize < 1 {
		errs = append(errs, fmt.Sprintf("battle.board_size must be >= 1, got %d", b.BoardSize))
	}
	delays := map[string]time.Duration{
		"start":          b.Pacing.Start,
		"player_rolling": b.Pacing.PlayerRolling,
		"player_result":  b.Pacing.PlayerResult,
		"boss_turn":      b.Pacing.BossTurn,
		"boss_result":    b.Pacing.BossResult,
	}
	for _, name := range []string{"start", "player_rolling", "player_result", "boss_turn", "boss_result"} {
		if delays[name] < 0 {
			errs = append(errs, fmt.Sprintf("battle.pacing.%s must not be negative", name))
		}
	}
	if len(errs) > 0 {
		return fmt.Errorf("%s", strings.Join(errs, "; "))
	}
	return nil
}

func validateLogging(l LoggingConfig) error {
	validLevels := map[string]bool{"debug": true, "info": true, "warn": true, "error": true}
	if !validLevels[l.Level] {
		return fmt.Errorf("logging.level must be one of [debug, info, warn, error], got %q", l.Level)
	}
	validFormats := map[string]bool{"json": true, "console": true}
	if !validFormats[l.Format] {
		return fmt.Errorf("logging.format must be one of [json, console], got %q", l.Format)
	}
	if l.File.Path != "" {
		if l.File.MaxSizeMB < 1 {
			return fmt.Errorf("logging.file.max_size_mb must be >= 1, got %d", l.File.MaxSizeMB)
		}
		if l.File.MaxBackups < 0 || l.File.MaxAgeDays < 0 {
			return errors.New("logging.file.max_backups and logging.file.max_age_days must not be negative")
		}
	}
	return nil
}

// Load reads configuration from the given file path, applies environment variable
// overrides, and validates the result. An empty path uses defaults and the
// environment only.
//
// Postcondition: Returns a valid Config or a non-nil error.
func Load(path string) (Config, error) {
	v := NewViper()

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return Config{}, fmt.Errorf("reading config file: %w", err)
		}
	}

	return LoadFromViper(v)
}

// NewViper returns a Viper instance carrying the defaults and the DICEQUEST_
// environment overrides.
func NewViper() *viper.Viper {
	v := viper.New()

	// Environment variable overrides with DICEQUEST_ prefix
	v.SetEnvPrefix("DICEQUEST")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	setDefaults(v)
	return v
}

// LoadFromViper builds a Config from an already-configured Viper instance.
//
// Precondition: v must be non-nil and have configuration values set.
// Postcondition: Returns a valid Config or a non-nil error.
func LoadFromViper(v *viper.Viper) (Config, error) {
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("unmarshalling config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "console")
	v.SetDefault("logging.file.path", "")
	v.SetDefault("logging.file.max_size_mb", 100)
	v.SetDefault("logging.file.max_backups", 3)
	v.SetDefault("logging.file.max_age_days", 28)

	v.SetDefault("database.host", "localhost")
	v.SetDefault("database.port", 5432)
	v.SetDefault("database.user", "dicequest")
	v.SetDefault("database.password", "dicequest")
	v.SetDefault("database.name", "dicequest")
	v.SetDefault("database.sslmode", "disable")
	v.SetDefault("database.max_conns", 10)
	v.SetDefault("database.min_conns", 2)
	v.SetDefault("database.max_conn_lifetime", "1h")

	v.SetDefault("battle.die_faces", 6)
	v.SetDefault("battle.catalog_dir", "content/bosses")
	v.SetDefault("battle.board_size", 216)
	v.SetDefault("battle.pacing.start", "1500ms")
	v.SetDefault("battle.pacing.player_rolling", "1s")
	v.SetDefault("battle.pacing.player_result", "1500ms")
	v.SetDefault("battle.pacing.boss_turn", "1s")
	v.SetDefault("battle.pacing.boss_result", "1500ms")

	v.SetDefault("storage.enabled", false)
}
