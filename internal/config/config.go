// Package config loads visualization settings from a YAML file.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"
)

// Defaults for every tunable.
const (
	DefaultBinCap       = 256
	DefaultHistoryCap   = 200
	DefaultPeakHold     = 30
	DefaultPeakDecay    = 0.8
	DefaultTickInterval = 50 * time.Millisecond
	DefaultFFTSize      = 1024
)

// Duration wraps time.Duration so YAML can express intervals either as a
// duration string ("50ms") or a bare number of milliseconds.
type Duration time.Duration

// UnmarshalYAML implements yaml.Unmarshaler.
func (d *Duration) UnmarshalYAML(value *yaml.Node) error {
	var s string
	if err := value.Decode(&s); err == nil {
		parsed, err := time.ParseDuration(s)
		if err != nil {
			return fmt.Errorf("invalid duration %q: %w", s, err)
		}
		*d = Duration(parsed)
		return nil
	}
	var ms int64
	if err := value.Decode(&ms); err != nil {
		return fmt.Errorf("invalid duration %q", value.Value)
	}
	*d = Duration(time.Duration(ms) * time.Millisecond)
	return nil
}

// Std returns the plain time.Duration.
func (d Duration) Std() time.Duration { return time.Duration(d) }

// Config holds all tunables for the pipeline and renderers.
type Config struct {
	BinCap       int      `yaml:"bin_cap"`
	HistoryCap   int      `yaml:"history_cap"`
	PeakHold     int      `yaml:"peak_hold"`
	PeakDecay    float64  `yaml:"peak_decay"`
	TickInterval Duration `yaml:"tick_interval"`
	FFTSize      int      `yaml:"fft_size"`

	Mode      string `yaml:"mode"`
	LogScale  bool   `yaml:"log_scale"`
	ShowPeaks bool   `yaml:"show_peaks"`
}

// Default returns a config with all defaults applied.
func Default() Config {
	return Config{
		BinCap:       DefaultBinCap,
		HistoryCap:   DefaultHistoryCap,
		PeakHold:     DefaultPeakHold,
		PeakDecay:    DefaultPeakDecay,
		TickInterval: Duration(DefaultTickInterval),
		FFTSize:      DefaultFFTSize,
		Mode:         "bars",
	}
}

// Load reads a YAML config file over the defaults.
func Load(path string) (Config, error) {
	cfg := Default()
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, err
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parsing %s: %w", path, err)
	}
	return cfg, cfg.validate()
}

// TryLoadDefault loads ~/.config/fourious/config.yaml if it exists;
// otherwise it returns the defaults.
func TryLoadDefault() Config {
	home, err := os.UserHomeDir()
	if err != nil {
		return Default()
	}
	path := filepath.Join(home, ".config", "fourious", "config.yaml")
	if _, err := os.Stat(path); err != nil {
		return Default()
	}
	cfg, err := Load(path)
	if err != nil {
		return Default()
	}
	return cfg
}

func (c Config) validate() error {
	if c.BinCap <= 0 {
		return fmt.Errorf("bin_cap must be positive, got %d", c.BinCap)
	}
	if c.HistoryCap <= 0 {
		return fmt.Errorf("history_cap must be positive, got %d", c.HistoryCap)
	}
	if c.PeakHold < 0 {
		return fmt.Errorf("peak_hold must be non-negative, got %d", c.PeakHold)
	}
	if c.PeakDecay <= 0 || c.PeakDecay >= 1 {
		return fmt.Errorf("peak_decay must be in (0,1), got %v", c.PeakDecay)
	}
	if c.TickInterval <= 0 {
		return fmt.Errorf("tick_interval must be positive, got %v", c.TickInterval.Std())
	}
	if c.FFTSize <= 0 || c.FFTSize&(c.FFTSize-1) != 0 {
		return fmt.Errorf("fft_size must be a power of two, got %d", c.FFTSize)
	}
	return nil
}
