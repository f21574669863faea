// Package config loads engine settings from an optional TOML file with
// WINEMBED_* environment overrides on top.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/kelseyhightower/envconfig"
)

// EnvPrefix is prepended to every environment override, e.g. WINEMBED_SYNC_TICK_INTERVAL_MS
const EnvPrefix = "WINEMBED"

type Config struct {
	Launch  LaunchConfig  `toml:"launch" envconfig:"LAUNCH"`
	Resolve ResolveConfig `toml:"resolve" envconfig:"RESOLVE"`
	Embed   EmbedConfig   `toml:"embed" envconfig:"EMBED"`
	Sync    SyncConfig    `toml:"sync" envconfig:"SYNC"`
}

type LaunchConfig struct {
	Command string `toml:"command" envconfig:"COMMAND"`
	Show    bool   `toml:"show" envconfig:"SHOW"`
}

type ResolveConfig struct {
	TimeoutMS  int `toml:"timeout_ms" envconfig:"TIMEOUT_MS"`
	IntervalMS int `toml:"interval_ms" envconfig:"INTERVAL_MS"`
}

func (c ResolveConfig) Timeout() time.Duration  { return ms(c.TimeoutMS) }
func (c ResolveConfig) Interval() time.Duration { return ms(c.IntervalMS) }

type EmbedConfig struct {
	ReassertIntervalMS int `toml:"reassert_interval_ms" envconfig:"REASSERT_INTERVAL_MS"`
	ReassertDurationMS int `toml:"reassert_duration_ms" envconfig:"REASSERT_DURATION_MS"`
}

func (c EmbedConfig) ReassertInterval() time.Duration { return ms(c.ReassertIntervalMS) }
func (c EmbedConfig) ReassertDuration() time.Duration { return ms(c.ReassertDurationMS) }

type SyncConfig struct {
	TickIntervalMS int   `toml:"tick_interval_ms" envconfig:"TICK_INTERVAL_MS"`
	CornerRadius   int32 `toml:"corner_radius" envconfig:"CORNER_RADIUS"`
}

func (c SyncConfig) TickInterval() time.Duration { return ms(c.TickIntervalMS) }

func ms(v int) time.Duration {
	return time.Duration(v) * time.Millisecond
}

// LoadResult is the loaded configuration plus anything worth telling the user
// about the file, such as keys that were ignored.
type LoadResult struct {
	Config   Config
	Path     string
	Warnings []string
}

// Default returns the built-in settings
func Default() Config {
	return Config{
		Launch: LaunchConfig{
			Show: true,
		},
		Resolve: ResolveConfig{
			TimeoutMS:  30000,
			IntervalMS: 100,
		},
		Embed: EmbedConfig{
			ReassertIntervalMS: 100,
			ReassertDurationMS: 30000,
		},
		Sync: SyncConfig{
			TickIntervalMS: 10,
			CornerRadius:   12,
		},
	}
}

// DefaultPath returns winembed.toml under the user config directory
func DefaultPath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return ""
	}
	return filepath.Join(dir, "winembed", "winembed.toml")
}

// Load reads the file at DefaultPath
func Load() (*LoadResult, error) {
	return LoadFrom(DefaultPath())
}

// LoadFrom reads path over the defaults, applies environment overrides and
// validates the result. A missing file is not an error. Keys in the file
// that are not understood are reported as warnings.
func LoadFrom(path string) (*LoadResult, error) {
	result := &LoadResult{Config: Default(), Path: path}

	if path != "" {
		if err := decodeFile(path, result); err != nil {
			return nil, err
		}
	}

	if err := envconfig.Process(EnvPrefix, &result.Config); err != nil {
		return nil, fmt.Errorf("reading %s_* environment: %w", EnvPrefix, err)
	}

	if err := result.Config.Validate(); err != nil {
		return nil, err
	}

	return result, nil
}

func decodeFile(path string, result *LoadResult) error {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("reading config file: %w", err)
	}

	// keys absent from the file keep their defaults
	md, err := toml.Decode(string(data), &result.Config)
	if err != nil {
		return fmt.Errorf("parsing config file %s: %w", path, err)
	}

	var unknown []string
	for _, key := range md.Undecoded() {
		unknown = append(unknown, key.String())
	}
	sort.Strings(unknown)
	for _, key := range unknown {
		result.Warnings = append(result.Warnings, fmt.Sprintf("unknown config key: %q", key))
	}

	return nil
}

// Validate checks that every interval is usable
func (c Config) Validate() error {
	var problems []string

	if c.Resolve.TimeoutMS <= 0 {
		problems = append(problems, fmt.Sprintf("resolve.timeout_ms must be positive, got %d", c.Resolve.TimeoutMS))
	}
	if c.Resolve.IntervalMS <= 0 {
		problems = append(problems, fmt.Sprintf("resolve.interval_ms must be positive, got %d", c.Resolve.IntervalMS))
	}
	if c.Resolve.IntervalMS > c.Resolve.TimeoutMS {
		problems = append(problems, fmt.Sprintf("resolve.interval_ms (%d) exceeds resolve.timeout_ms (%d)", c.Resolve.IntervalMS, c.Resolve.TimeoutMS))
	}
	if c.Embed.ReassertIntervalMS <= 0 {
		problems = append(problems, fmt.Sprintf("embed.reassert_interval_ms must be positive, got %d", c.Embed.ReassertIntervalMS))
	}
	if c.Embed.ReassertDurationMS < 0 {
		problems = append(problems, fmt.Sprintf("embed.reassert_duration_ms must not be negative, got %d", c.Embed.ReassertDurationMS))
	}
	if c.Sync.TickIntervalMS <= 0 {
		problems = append(problems, fmt.Sprintf("sync.tick_interval_ms must be positive, got %d", c.Sync.TickIntervalMS))
	}
	if c.Sync.CornerRadius < 0 {
		problems = append(problems, fmt.Sprintf("sync.corner_radius must not be negative, got %d", c.Sync.CornerRadius))
	}

	if len(problems) > 0 {
		return fmt.Errorf("invalid config: %s", strings.Join(problems, "; "))
	}
	return nil
}
