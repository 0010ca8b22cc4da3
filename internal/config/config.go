// Package config provides Viper-based configuration loading for the simulation.
package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// DatabaseConfig holds PostgreSQL connection settings for the floor ledger.
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

// LedgerConfig selects where generated-floor records are kept.
type LedgerConfig struct {
	// Enabled turns floor recording on or off.
	Enabled bool `mapstructure:"enabled"`
	// Backend is "memory" or "postgres".
	Backend string `mapstructure:"backend"`
}

// LoggingConfig holds structured logging settings.
type LoggingConfig struct {
	// Level is the minimum log level: "debug", "info", "warn", "error".
	Level string `mapstructure:"level"`
	// Format is the log output format: "json" or "console".
	Format string `mapstructure:"format"`
	// Output is "stderr", "stdout" or a file path. Empty means stderr.
	Output string `mapstructure:"output"`
}

// GameConfig holds simulation settings.
type GameConfig struct {
	// Seed initialises the shared random source. Zero draws a seed from crypto/rand.
	Seed int64 `mapstructure:"seed"`
	// ContentDir is the root of the YAML rules, catalog and script content.
	ContentDir string `mapstructure:"content_dir"`
	// RulesFile is the rule table path, relative to ContentDir.
	RulesFile string `mapstructure:"rules_file"`
	// CatalogDir is the object catalog directory, relative to ContentDir.
	CatalogDir string `mapstructure:"catalog_dir"`
	// ScriptDir is the Lua hook directory, relative to ContentDir. Empty disables scripting.
	ScriptDir string `mapstructure:"script_dir"`
	// MaxTurns bounds a headless run.
	MaxTurns int `mapstructure:"max_turns"`
	// LogCapacity is the number of message log entries retained.
	LogCapacity int `mapstructure:"log_capacity"`
	// QueueSize is the buffer size of the outbound presentation queue.
	QueueSize int `mapstructure:"queue_size"`
	// ScriptInstructionLimit caps the instructions a single hook call may execute.
	ScriptInstructionLimit int `mapstructure:"script_instruction_limit"`
}

// Config is the top-level application configuration.
type Config struct {
	Database DatabaseConfig `mapstructure:"database"`
	Ledger   LedgerConfig   `mapstructure:"ledger"`
	Logging  LoggingConfig  `mapstructure:"logging"`
	Game     GameConfig     `mapstructure:"game"`
}

// Validate checks all configuration invariants.
//
// Postcondition: Returns nil if configuration is valid, or an error describing all violations.
func (c Config) Validate() error {
	var errs []string

	if c.Ledger.Enabled && c.Ledger.Backend == "postgres" {
		if err := validateDatabase(c.Database); err != nil {
			errs = append(errs, err.Error())
		}
	}
	if err := validateLedger(c.Ledger); err != nil {
		errs = append(errs, err.Error())
	}
	if err := validateLogging(c.Logging); err != nil {
		errs = append(errs, err.Error())
	}
	if err := validateGame(c.Game); err != nil {
		errs = append(errs, err.Error())
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

func validateLedger(l LedgerConfig) error {
	validBackends := map[string]bool{"memory": true, "postgres": true}
	if !validBackends[l.Backend] {
		return fmt.Errorf("ledger.backend must be one of [memory, postgres], got %q", l.Backend)
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
	return nil
}

func validateGame(g GameConfig) error {
	var errs []string
	if g.ContentDir == "" {
		errs = append(errs, "game.content_dir must not be empty")
	}
	if g.RulesFile == "" {
		errs = append(errs, "game.rules_file must not be empty")
	}
	if g.CatalogDir == "" {
		errs = append(errs, "game.catalog_dir must not be empty")
	}
	if g.MaxTurns < 1 {
		errs = append(errs, fmt.Sprintf("game.max_turns must be >= 1, got %d", g.MaxTurns))
	}
	if g.LogCapacity < 1 {
		errs = append(errs, fmt.Sprintf("game.log_capacity must be >= 1, got %d", g.LogCapacity))
	}
	if g.QueueSize < 1 {
		errs = append(errs, fmt.Sprintf("game.queue_size must be >= 1, got %d", g.QueueSize))
	}
	if g.ScriptInstructionLimit < 0 {
		errs = append(errs, "game.script_instruction_limit must not be negative")
	}
	if len(errs) > 0 {
		return errors.New(strings.Join(errs, "; "))
	}
	return nil
}

// Load reads configuration from the given file path, applies environment variable
// overrides, and validates the result.
//
// Precondition: path must be a valid file path to a YAML configuration file.
// Postcondition: Returns a valid Config or a non-nil error.
func Load(path string) (Config, error) {
	v := viper.New()
	v.SetConfigFile(path)

	// Environment variable overrides with RUINS_ prefix
	v.SetEnvPrefix("RUINS")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		return Config{}, fmt.Errorf("reading config file: %w", err)
	}

	return LoadFromViper(v)
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

// Defaults returns a Viper instance holding only the default settings.
//
// Postcondition: LoadFromViper(Defaults()) succeeds.
func Defaults() *viper.Viper {
	v := viper.New()
	setDefaults(v)
	return v
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("database.host", "localhost")
	v.SetDefault("database.port", 5432)
	v.SetDefault("database.user", "ruins")
	v.SetDefault("database.password", "ruins")
	v.SetDefault("database.name", "ruins")
	v.SetDefault("database.sslmode", "disable")
	v.SetDefault("database.max_conns", 4)
	v.SetDefault("database.min_conns", 1)
	v.SetDefault("database.max_conn_lifetime", "1h")

	v.SetDefault("ledger.enabled", true)
	v.SetDefault("ledger.backend", "memory")

	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "json")
	v.SetDefault("logging.output", "stderr")

	v.SetDefault("game.seed", 0)
	v.SetDefault("game.content_dir", "content")
	v.SetDefault("game.rules_file", "rules.yaml")
	v.SetDefault("game.catalog_dir", "catalog")
	v.SetDefault("game.script_dir", "scripts")
	v.SetDefault("game.max_turns", 500)
	v.SetDefault("game.log_capacity", 256)
	v.SetDefault("game.queue_size", 128)
	v.SetDefault("game.script_instruction_limit", 100000)
}
