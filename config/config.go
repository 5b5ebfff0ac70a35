package config

import (
	"encoding/json"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	log "github.com/sirupsen/logrus"
	"gopkg.in/yaml.v3"

	"github.com/cgarciahasapromotion-pixel/calculateur-albion/factory"
	"github.com/cgarciahasapromotion-pixel/calculateur-albion/generic"
	"github.com/cgarciahasapromotion-pixel/calculateur-albion/lease"
)

// Config represents the complete application configuration
type Config struct {
	Server    ServerConfig    `json:"server" yaml:"server"`
	Log       LogConfig       `json:"log" yaml:"log"`
	Scheduler SchedulerConfig `json:"scheduler" yaml:"scheduler"`
	Engine    EngineConfig    `json:"engine" yaml:"engine"`
	Lease     LeaseConfig     `json:"lease" yaml:"lease"`
}

// ServerConfig contains HTTP server parameters
type ServerConfig struct {
	Port           int      `json:"port" yaml:"port"`
	DBPath         string   `json:"db_path" yaml:"db_path"` // ":memory:" or empty for an in-memory store
	AllowedOrigins []string `json:"allowed_origins,omitempty" yaml:"allowed_origins,omitempty"`
	LoadScenarios  bool     `json:"load_scenarios" yaml:"load_scenarios"`
}

// LogConfig contains logging parameters
type LogConfig struct {
	Level  string `json:"level" yaml:"level"`
	Format string `json:"format" yaml:"format"` // "text" or "json"
}

// SchedulerConfig contains the overdue-rent check parameters
type SchedulerConfig struct {
	Enabled  bool   `json:"enabled" yaml:"enabled"`
	Interval string `json:"interval" yaml:"interval"` // e.g. "1h", "24h"
}

// ParseInterval converts the interval string to time.Duration
func (s SchedulerConfig) ParseInterval() (time.Duration, error) {
	if s.Interval == "" {
		return 0, nil
	}
	return time.ParseDuration(s.Interval)
}

// EngineConfig contains interest and allocation defaults
type EngineConfig struct {
	Rates            []factory.RateJSON `json:"rates" yaml:"rates"`
	IndemnityAmount  decimal.Decimal    `json:"indemnity_amount" yaml:"indemnity_amount"`
	ClampOverpayment bool               `json:"clamp_overpayment" yaml:"clamp_overpayment"`
}

// LeaseConfig contains the lease terms applied when a dossier omits them
type LeaseConfig struct {
	JudgmentDate  generic.Date        `json:"judgment_date" yaml:"judgment_date"`
	TaxRate       decimal.Decimal     `json:"tax_rate" yaml:"tax_rate"`
	DueDay        int                 `json:"due_day" yaml:"due_day"`
	Frequency     string              `json:"frequency" yaml:"frequency"`
	Billing       string              `json:"billing" yaml:"billing"`
	FirstRevision generic.Date        `json:"first_revision" yaml:"first_revision"`
	Ratchet       bool                `json:"ratchet" yaml:"ratchet"`
	CloseAtCutoff bool                `json:"close_at_cutoff" yaml:"close_at_cutoff"`
	Indices       factory.IndicesJSON `json:"indices" yaml:"indices"`
}

// Load returns the configuration in path, or the defaults when path is empty.
// Environment overrides are applied in both cases.
func Load(path string) (*Config, error) {
	if path != "" {
		return LoadFromFile(path)
	}
	cfg := Default()
	if err := cfg.ApplyEnv(); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

// LoadFromFile loads configuration from a file (YAML or JSON). Sections the
// file leaves out keep their defaults.
func LoadFromFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config file: %w", err)
	}

	cfg := Default()

	// Try YAML first, fall back to JSON
	if err := yaml.Unmarshal(data, cfg); err != nil {
		cfg = Default()
		if err := json.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config (tried YAML and JSON): %w", err)
		}
	}

	if err := cfg.ApplyEnv(); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

// SaveToFile saves configuration to a file (YAML for .yaml/.yml, JSON otherwise)
func (c *Config) SaveToFile(path string) error {
	var data []byte
	var err error

	if strings.HasSuffix(path, ".yaml") || strings.HasSuffix(path, ".yml") {
		data, err = yaml.Marshal(c)
	} else {
		data, err = json.MarshalIndent(c, "", "  ")
	}
	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("write config file: %w", err)
	}
	return nil
}

// ApplyEnv overrides settings from ALBION_PORT, ALBION_DB and ALBION_LOG_LEVEL.
func (c *Config) ApplyEnv() error {
	if port := os.Getenv("ALBION_PORT"); port != "" {
		p, err := strconv.Atoi(port)
		if err != nil {
			return fmt.Errorf("ALBION_PORT must be a number: %w", err)
		}
		c.Server.Port = p
	}
	if db := os.Getenv("ALBION_DB"); db != "" {
		c.Server.DBPath = db
	}
	if level := os.Getenv("ALBION_LOG_LEVEL"); level != "" {
		c.Log.Level = level
	}
	return nil
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return fmt.Errorf("server.port must be between 1 and 65535")
	}
	if _, err := log.ParseLevel(c.Log.Level); err != nil {
		return fmt.Errorf("log.level: %w", err)
	}
	if c.Log.Format != "text" && c.Log.Format != "json" {
		return fmt.Errorf("log.format must be 'text' or 'json'")
	}
	if c.Scheduler.Enabled {
		d, err := c.Scheduler.ParseInterval()
		if err != nil {
			return fmt.Errorf("scheduler.interval: %w", err)
		}
		if d <= 0 {
			return fmt.Errorf("scheduler.interval must be positive when the scheduler is enabled")
		}
	}
	if c.Engine.IndemnityAmount.IsNegative() {
		return fmt.Errorf("engine.indemnity_amount must not be negative")
	}
	if _, err := c.Defaults(); err != nil {
		return err
	}
	return nil
}

// Defaults builds the dossier defaults described by the engine and lease sections.
func (c *Config) Defaults() (factory.Defaults, error) {
	entries := make([]generic.RateEntry, len(c.Engine.Rates))
	for i, r := range c.Engine.Rates {
		entries[i] = generic.RateEntry{EffectiveDate: r.EffectiveDate, AnnualRatePercent: r.AnnualRatePercent}
	}
	rates, err := generic.NewRateTable(entries)
	if err != nil {
		return factory.Defaults{}, fmt.Errorf("engine.rates: %w", err)
	}

	revisions := make([]lease.IndexEntry, len(c.Lease.Indices.Revisions))
	for i, r := range c.Lease.Indices.Revisions {
		revisions[i] = lease.IndexEntry{PeriodLabel: r.Label, Value: r.Value}
	}
	base := lease.IndexEntry{PeriodLabel: c.Lease.Indices.Base.Label, Value: c.Lease.Indices.Base.Value}
	indices, err := lease.NewIndexTable(base, revisions...)
	if err != nil {
		return factory.Defaults{}, fmt.Errorf("lease.indices: %w", err)
	}

	frequency, billing := lease.Frequency(c.Lease.Frequency), lease.Billing(c.Lease.Billing)
	if !frequency.IsValid() {
		return factory.Defaults{}, fmt.Errorf("lease.frequency: unknown value %q", c.Lease.Frequency)
	}
	if !billing.IsValid() {
		return factory.Defaults{}, fmt.Errorf("lease.billing: unknown value %q", c.Lease.Billing)
	}

	return factory.Defaults{
		JudgmentDate:     c.Lease.JudgmentDate,
		TaxRate:          c.Lease.TaxRate,
		DueDay:           c.Lease.DueDay,
		Frequency:        frequency,
		Billing:          billing,
		FirstRevision:    c.Lease.FirstRevision,
		Ratchet:          c.Lease.Ratchet,
		CloseAtCutoff:    c.Lease.CloseAtCutoff,
		Indices:          indices,
		Rates:            rates,
		IndemnityAmount:  generic.NewAmount(c.Engine.IndemnityAmount),
		ClampOverpayment: c.Engine.ClampOverpayment,
	}, nil
}

// ApplyLogging configures the standard logrus logger.
func (c *Config) ApplyLogging() {
	level, err := log.ParseLevel(c.Log.Level)
	if err != nil {
		level = log.InfoLevel
	}
	log.SetLevel(level)
	if c.Log.Format == "json" {
		log.SetFormatter(&log.JSONFormatter{})
	} else {
		log.SetFormatter(&log.TextFormatter{FullTimestamp: true})
	}
}

// Default returns a configuration with the Albion presets
func Default() *Config {
	def := factory.AlbionDefaults()

	rates := make([]factory.RateJSON, 0, len(def.Rates.Entries()))
	for _, r := range def.Rates.Entries() {
		rates = append(rates, factory.RateJSON{EffectiveDate: r.EffectiveDate, AnnualRatePercent: r.AnnualRatePercent})
	}
	indices := factory.IndicesJSON{
		Base: factory.IndexJSON{Label: def.Indices.Base.PeriodLabel, Value: def.Indices.Base.Value},
	}
	for _, r := range def.Indices.Revisions {
		indices.Revisions = append(indices.Revisions, factory.IndexJSON{Label: r.PeriodLabel, Value: r.Value})
	}

	return &Config{
		Server: ServerConfig{
			Port:           8080,
			DBPath:         "albion.db",
			AllowedOrigins: []string{"http://localhost:*", "http://127.0.0.1:*"},
			LoadScenarios:  false,
		},
		Log: LogConfig{
			Level:  "info",
			Format: "text",
		},
		Scheduler: SchedulerConfig{
			Enabled:  true,
			Interval: "24h",
		},
		Engine: EngineConfig{
			Rates:           rates,
			IndemnityAmount: def.IndemnityAmount.Value,
		},
		Lease: LeaseConfig{
			JudgmentDate:  def.JudgmentDate,
			TaxRate:       def.TaxRate,
			DueDay:        def.DueDay,
			Frequency:     string(def.Frequency),
			Billing:       string(def.Billing),
			FirstRevision: def.FirstRevision,
			Ratchet:       def.Ratchet,
			CloseAtCutoff: def.CloseAtCutoff,
			Indices:       indices,
		},
	}
}
