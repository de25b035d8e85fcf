package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestDefaultValues(t *testing.T) {
	cfg := Default()
	if cfg.BinCap != 256 || cfg.HistoryCap != 200 || cfg.PeakHold != 30 {
		t.Fatalf("unexpected defaults: %+v", cfg)
	}
	if cfg.PeakDecay != 0.8 || cfg.TickInterval.Std() != 50*time.Millisecond {
		t.Fatalf("unexpected defaults: %+v", cfg)
	}
}

func TestDurationAcceptsStringsAndMilliseconds(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte("tick_interval: 100ms\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	cfg, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.TickInterval.Std() != 100*time.Millisecond {
		t.Fatalf("expected 100ms, got %v", cfg.TickInterval.Std())
	}

	if err := os.WriteFile(path, []byte("tick_interval: 75\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	cfg, err = Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.TickInterval.Std() != 75*time.Millisecond {
		t.Fatalf("expected bare number as milliseconds, got %v", cfg.TickInterval.Std())
	}
}

func TestLoadOverridesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	data := "history_cap: 64\npeak_hold: 10\nmode: spectrogram\nlog_scale: true\n"
	if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.HistoryCap != 64 || cfg.PeakHold != 10 {
		t.Fatalf("overrides not applied: %+v", cfg)
	}
	if cfg.Mode != "spectrogram" || !cfg.LogScale {
		t.Fatalf("overrides not applied: %+v", cfg)
	}
	// Untouched fields keep their defaults.
	if cfg.BinCap != DefaultBinCap || cfg.PeakDecay != DefaultPeakDecay {
		t.Fatalf("defaults lost: %+v", cfg)
	}
}

func TestLoadRejectsInvalidValues(t *testing.T) {
	tests := []struct {
		name string
		yaml string
	}{
		{"zero history", "history_cap: 0\n"},
		{"decay too large", "peak_decay: 1.5\n"},
		{"fft not power of two", "fft_size: 1000\n"},
		{"negative interval", "tick_interval: -1s\n"},
	}
	for _, tt := range tests {
		path := filepath.Join(t.TempDir(), "config.yaml")
		if err := os.WriteFile(path, []byte(tt.yaml), 0o644); err != nil {
			t.Fatal(err)
		}
		if _, err := Load(path); err == nil {
			t.Errorf("%s: expected validation error", tt.name)
		}
	}
}

func TestLoadMissingFileReturnsError(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "absent.yaml")); err == nil {
		t.Fatal("expected error for missing file")
	}
}
