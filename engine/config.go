// Package engine wires the graph, behavior, pathanalyzer, and metrics
// packages together: configuration, structured logging, and a
// background decay/cleanup scheduler, the "decay/cleanup timer" of
// spec.md §2's architecture diagram.
package engine

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// Config holds the engine's tunable parameters, mirroring the defaults
// scattered across spec.md §4.
type Config struct {
	LogLevel string `yaml:"-"`

	DecayRate       float64       `yaml:"-"`
	DefaultTTLHours float64       `yaml:"-"`
	DecayInterval   time.Duration `yaml:"-"`
	CleanupInterval time.Duration `yaml:"-"`

	MaxPathLength int     `yaml:"-"`
	MaxPaths      int     `yaml:"-"`
	MinConfidence float64 `yaml:"-"`
	DecayFactor   float64 `yaml:"-"`
	MinTrust      float64 `yaml:"-"`

	CacheTTL time.Duration `yaml:"-"`

	DataDir            string `yaml:"-"`
	GraphSnapshotFile  string `yaml:"-"`
	BehaviorModelFile  string `yaml:"-"`
}

// fileConfig mirrors Config but with duration fields as parseable
// strings, a shadow-struct pattern that keeps YAML authoring
// human-friendly ("1h", "30s") without reflecting on time.Duration
// directly.
type fileConfig struct {
	LogLevel string `yaml:"log_level"`

	DecayRate       float64 `yaml:"decay_rate"`
	DefaultTTLHours float64 `yaml:"default_ttl_hours"`
	DecayInterval   string  `yaml:"decay_interval"`
	CleanupInterval string  `yaml:"cleanup_interval"`

	MaxPathLength int     `yaml:"max_path_length"`
	MaxPaths      int     `yaml:"max_paths"`
	MinConfidence float64 `yaml:"min_confidence"`
	DecayFactor   float64 `yaml:"decay_factor"`
	MinTrust      float64 `yaml:"min_trust"`

	CacheTTL string `yaml:"cache_ttl"`

	DataDir           string `yaml:"data_dir"`
	GraphSnapshotFile string `yaml:"graph_snapshot_file"`
	BehaviorModelFile string `yaml:"behavior_model_file"`
}

// Default configuration values, per spec.md's per-component defaults.
const (
	DefaultLogLevel        = "info"
	DefaultDecayInterval   = time.Hour
	DefaultCleanupInterval = 6 * time.Hour
	DefaultDataDir         = "./data"
	DefaultGraphSnapshot   = "trust_graph.json"
	DefaultBehaviorModel   = "behavior_model.json"
)

// DefaultConfig returns a Config populated with every spec.md default.
func DefaultConfig() *Config {
	return &Config{
		LogLevel:          DefaultLogLevel,
		DecayRate:         0.1,
		DefaultTTLHours:   8760.0,
		DecayInterval:     DefaultDecayInterval,
		CleanupInterval:   DefaultCleanupInterval,
		MaxPathLength:     5,
		MaxPaths:          10,
		MinConfidence:     0.1,
		DecayFactor:       0.8,
		MinTrust:          0.5,
		CacheTTL:          time.Hour,
		DataDir:           DefaultDataDir,
		GraphSnapshotFile: DefaultGraphSnapshot,
		BehaviorModelFile: DefaultBehaviorModel,
	}
}

// LoadConfigFromFile reads a YAML config file and overlays it onto the
// defaults. Missing fields keep their default value; unknown fields
// are ignored by yaml.v3's decode.
func LoadConfigFromFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("engine: failed to read config file: %w", err)
	}

	var fc fileConfig
	if err := yaml.Unmarshal(data, &fc); err != nil {
		return nil, fmt.Errorf("engine: failed to parse yaml config: %w", err)
	}

	return mergeFileConfig(DefaultConfig(), &fc)
}

func mergeFileConfig(cfg *Config, fc *fileConfig) (*Config, error) {
	if fc.LogLevel != "" {
		cfg.LogLevel = fc.LogLevel
	}
	if fc.DecayRate > 0 {
		cfg.DecayRate = fc.DecayRate
	}
	if fc.DefaultTTLHours > 0 {
		cfg.DefaultTTLHours = fc.DefaultTTLHours
	}
	if fc.MaxPathLength > 0 {
		cfg.MaxPathLength = fc.MaxPathLength
	}
	if fc.MaxPaths > 0 {
		cfg.MaxPaths = fc.MaxPaths
	}
	if fc.MinConfidence > 0 {
		cfg.MinConfidence = fc.MinConfidence
	}
	if fc.DecayFactor > 0 {
		cfg.DecayFactor = fc.DecayFactor
	}
	if fc.MinTrust > 0 {
		cfg.MinTrust = fc.MinTrust
	}
	if fc.DataDir != "" {
		cfg.DataDir = fc.DataDir
	}
	if fc.GraphSnapshotFile != "" {
		cfg.GraphSnapshotFile = fc.GraphSnapshotFile
	}
	if fc.BehaviorModelFile != "" {
		cfg.BehaviorModelFile = fc.BehaviorModelFile
	}

	durations := []struct {
		raw  string
		name string
		dst  *time.Duration
	}{
		{fc.DecayInterval, "decay_interval", &cfg.DecayInterval},
		{fc.CleanupInterval, "cleanup_interval", &cfg.CleanupInterval},
		{fc.CacheTTL, "cache_ttl", &cfg.CacheTTL},
	}
	for _, d := range durations {
		if d.raw == "" {
			continue
		}
		parsed, err := time.ParseDuration(d.raw)
		if err != nil {
			return nil, fmt.Errorf("engine: invalid %s: %w", d.name, err)
		}
		*d.dst = parsed
	}

	return cfg, nil
}

// GraphSnapshotPath joins DataDir and GraphSnapshotFile.
func (c *Config) GraphSnapshotPath() string {
	return filepath.Join(c.DataDir, c.GraphSnapshotFile)
}

// BehaviorModelPath joins DataDir and BehaviorModelFile.
func (c *Config) BehaviorModelPath() string {
	return filepath.Join(c.DataDir, c.BehaviorModelFile)
}

func normalizeLevel(level string) string {
	return strings.ToLower(strings.TrimSpace(level))
}
