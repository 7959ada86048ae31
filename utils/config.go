package utils

import (
	"encoding/json"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"

	"github.com/sheikhrachel/go-life/model"
)

// ErrInvalidConfig is returned by Validate
var ErrInvalidConfig = errors.New("invalid configuration")

// Duration is a time.Duration that also reads "150ms" style strings
type Duration time.Duration

// UnmarshalJSON accepts either nanoseconds or a duration string
func (d *Duration) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		parsed, err := time.ParseDuration(s)
		if err != nil {
			return errors.Wrapf(err, "[Duration] invalid duration %q", s)
		}
		*d = Duration(parsed)
		return nil
	}
	var n int64
	if err := json.Unmarshal(data, &n); err != nil {
		return errors.Wrapf(err, "[Duration] invalid duration %s", data)
	}
	*d = Duration(n)
	return nil
}

// UnmarshalYAML accepts either nanoseconds or a duration string
func (d *Duration) UnmarshalYAML(value *yaml.Node) error {
	var n int64
	if err := value.Decode(&n); err == nil {
		*d = Duration(n)
		return nil
	}
	parsed, err := time.ParseDuration(value.Value)
	if err != nil {
		return errors.Wrapf(err, "[Duration] invalid duration %q", value.Value)
	}
	*d = Duration(parsed)
	return nil
}

// Config holds the configuration for the game
type Config struct {
	Width               int      `json:"width" yaml:"width"`
	Height              int      `json:"height" yaml:"height"`
	FrameRate           Duration `json:"frame_rate" yaml:"frame_rate"`
	Adjacency           string   `json:"adjacency" yaml:"adjacency"`
	PatternFile         string   `json:"pattern_file" yaml:"pattern_file"`
	WatchPattern        bool     `json:"watch_pattern" yaml:"watch_pattern"`
	AutoRestart         bool     `json:"auto_restart" yaml:"auto_restart"`
	StopWhenStuck       bool     `json:"stop_when_stuck" yaml:"stop_when_stuck"`
	StagnationThreshold int      `json:"stagnation_threshold" yaml:"stagnation_threshold"`
	UseParallel         bool     `json:"use_parallel" yaml:"use_parallel"`
	Workers             int      `json:"workers" yaml:"workers"`
	UseMemoryPool       bool     `json:"use_memory_pool" yaml:"use_memory_pool"`
	MaxGenerations      int      `json:"max_generations" yaml:"max_generations"`
	RandomDensity       float64  `json:"random_density" yaml:"random_density"`
	InjectionCount      int      `json:"injection_count" yaml:"injection_count"`
	Seed                int64    `json:"seed" yaml:"seed"`
	MetricsAddr         string   `json:"metrics_addr" yaml:"metrics_addr"`
	LogLevel            string   `json:"log_level" yaml:"log_level"`
}

// DefaultConfig returns sensible defaults
func DefaultConfig() Config {
	return Config{
		Width:               60,
		Height:              30,
		FrameRate:           Duration(150 * time.Millisecond),
		Adjacency:           model.Cycled.String(),
		AutoRestart:         true,
		StagnationThreshold: 5,
		UseParallel:         true,
		UseMemoryPool:       true,
		MaxGenerations:      1000,
		RandomDensity:       0.15,
		InjectionCount:      3,
		LogLevel:            "info",
	}
}

// LoadConfig loads configuration from a JSON or YAML file, chosen by extension
func LoadConfig(filename string) (Config, error) {
	config := DefaultConfig()

	data, err := os.ReadFile(filename)
	if err != nil {
		return config, errors.Wrapf(err, "[LoadConfig] failed to read file: %+v", filename)
	}

	switch strings.ToLower(filepath.Ext(filename)) {
	case ".yaml", ".yml":
		if err = yaml.Unmarshal(data, &config); err != nil {
			return config, errors.Wrapf(err, "[LoadConfig] failed to unmarshal yaml from file: %+v", filename)
		}
	default:
		if err = json.Unmarshal(data, &config); err != nil {
			return config, errors.Wrapf(err, "[LoadConfig] failed to unmarshal data from file: %+v", filename)
		}
	}

	return config, config.Validate()
}

// Validate checks value ranges
func (c Config) Validate() error {
	if c.Width <= 0 || c.Height <= 0 {
		return errors.Wrapf(ErrInvalidConfig, "grid size %dx%d must be positive", c.Width, c.Height)
	}
	if c.RandomDensity < 0 || c.RandomDensity > 1 {
		return errors.Wrapf(ErrInvalidConfig, "random_density %v outside [0, 1]", c.RandomDensity)
	}
	if c.StagnationThreshold < 1 {
		return errors.Wrapf(ErrInvalidConfig, "stagnation_threshold %d must be at least 1", c.StagnationThreshold)
	}
	if c.FrameRate < 0 {
		return errors.Wrapf(ErrInvalidConfig, "negative frame_rate %v", time.Duration(c.FrameRate))
	}
	if _, err := model.ParseAdjacency(c.Adjacency); err != nil {
		return errors.Wrap(ErrInvalidConfig, err.Error())
	}
	if _, err := ParseLogLevel(c.LogLevel); err != nil {
		return errors.Wrap(ErrInvalidConfig, err.Error())
	}
	return nil
}

// AdjacencyMode returns the parsed adjacency. Call Validate first.
func (c Config) AdjacencyMode() model.Adjacency {
	mode, _ := model.ParseAdjacency(c.Adjacency)
	return mode
}

// Interval returns the frame rate as a time.Duration
func (c Config) Interval() time.Duration {
	return time.Duration(c.FrameRate)
}

// StepWorkers is the worker count for the stepper: 1 when parallel stepping
// is off, otherwise Workers (0 meaning one per CPU).
func (c Config) StepWorkers() int {
	if !c.UseParallel {
		return 1
	}
	return c.Workers
}

// ParseLogLevel maps debug, info, warn and error to slog levels
func ParseLogLevel(s string) (slog.Level, error) {
	var level slog.Level
	if s == "" {
		return slog.LevelInfo, nil
	}
	if err := level.UnmarshalText([]byte(s)); err != nil {
		return slog.LevelInfo, errors.Wrapf(err, "[ParseLogLevel] unknown level %q", s)
	}
	return level, nil
}

// NewLogger builds the text logger used by the command line tools
func NewLogger(level string) *slog.Logger {
	lvl, err := ParseLogLevel(level)
	if err != nil {
		lvl = slog.LevelInfo
	}
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: lvl}))
}
