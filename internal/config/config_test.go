package config

import (
	"errors"
	"testing"
)

func validConfig() *Config {
	return &Config{
		LogLevel:     "info",
		LogDir:       "./logs",
		BatchWorkers: 0,
		MaxBatch:     DefaultMaxBatch,
		Validate:     true,
		Output:       OutputText,
	}
}

func TestCheck_Valid(t *testing.T) {
	for _, output := range []string{OutputText, OutputJSON} {
		cfg := validConfig()
		cfg.Output = output
		if err := cfg.Check(); err != nil {
			t.Fatalf("Check() output=%q error = %v, want nil", output, err)
		}
	}
}

func TestCheck_InvalidOutput(t *testing.T) {
	tests := []struct {
		name   string
		output string
	}{
		{"empty", ""},
		{"yaml", "yaml"},
		{"case sensitive", "JSON"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validConfig()
			cfg.Output = tt.output
			err := cfg.Check()
			if !errors.Is(err, ErrInvalidConfig) {
				t.Fatalf("Check() error = %v, want ErrInvalidConfig", err)
			}
		})
	}
}

func TestCheck_InvalidBatchLimits(t *testing.T) {
	tests := []struct {
		name     string
		workers  int
		maxBatch int
	}{
		{"negative workers", -1, 10},
		{"zero max batch", 4, 0},
		{"negative max batch", 4, -5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validConfig()
			cfg.BatchWorkers = tt.workers
			cfg.MaxBatch = tt.maxBatch
			if err := cfg.Check(); err == nil {
				t.Fatalf("Check() expected error for workers=%d maxBatch=%d", tt.workers, tt.maxBatch)
			}
		})
	}
}

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.LogLevel != "info" {
		t.Errorf("LogLevel = %q, want info", cfg.LogLevel)
	}
	if cfg.Output != OutputText {
		t.Errorf("Output = %q, want %q", cfg.Output, OutputText)
	}
	if cfg.MaxBatch != DefaultMaxBatch {
		t.Errorf("MaxBatch = %d, want %d", cfg.MaxBatch, DefaultMaxBatch)
	}
	if !cfg.Validate {
		t.Error("Validate = false, want true")
	}
}

func TestLoad_EnvOverride(t *testing.T) {
	t.Setenv("HDKEYGEN_OUTPUT", "json")
	t.Setenv("HDKEYGEN_BATCH_WORKERS", "3")
	t.Setenv("HDKEYGEN_VALIDATE", "false")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.Output != OutputJSON || cfg.BatchWorkers != 3 || cfg.Validate {
		t.Errorf("Load() = %+v, want json output, 3 workers, validate off", cfg)
	}
}

func TestLoad_RejectsInvalid(t *testing.T) {
	t.Setenv("HDKEYGEN_OUTPUT", "xml")

	if _, err := Load(); !errors.Is(err, ErrInvalidConfig) {
		t.Fatalf("Load() error = %v, want ErrInvalidConfig", err)
	}
}
