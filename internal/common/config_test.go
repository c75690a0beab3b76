package common

import (
	"errors"
	"log/slog"
	"testing"
	"time"
)

func TestLoadConfig_Env(t *testing.T) {
	t.Setenv("PRICE_WINDOW_DAYS", "3")
	t.Setenv("RECON_VOLUME_TOL_L", "120.5")
	t.Setenv("DOC_TIMEOUT", "5s")
	t.Setenv("OWN_VAT_ID", "it00905811006")
	t.Setenv("LOG_LEVEL", "debug")
	t.Setenv("BENCHMARK_COLUMN", "")

	cfg := LoadConfig()
	if cfg.Pricing.WindowDays != 3 || cfg.Pricing.BenchmarkColumn != "PLATTS" {
		t.Errorf("pricing = %+v", cfg.Pricing)
	}
	if cfg.Reconcile.VolumeToleranceL != 120.5 || cfg.Reconcile.VolumeErrorL != 300 {
		t.Errorf("reconcile = %+v", cfg.Reconcile)
	}
	if cfg.Batch.DocumentTimeout != 5*time.Second || cfg.LLM.Timeout != 45*time.Second {
		t.Errorf("timeouts = %v / %v", cfg.Batch.DocumentTimeout, cfg.LLM.Timeout)
	}
	if cfg.OwnVATID != "IT00905811006" || cfg.LogLevel != slog.LevelDebug {
		t.Errorf("own vat = %q, level = %v", cfg.OwnVATID, cfg.LogLevel)
	}
	if err := cfg.Validate(); err != nil {
		t.Fatalf("Validate: %v", err)
	}
}

func TestLoadConfig_BadValuesFallBack(t *testing.T) {
	t.Setenv("PRICE_WINDOW_DAYS", "seven")
	t.Setenv("DOC_TIMEOUT", "soon")
	cfg := LoadConfig()
	if cfg.Pricing.WindowDays != 7 || cfg.Batch.DocumentTimeout != 30*time.Second {
		t.Errorf("fallbacks = %d / %v", cfg.Pricing.WindowDays, cfg.Batch.DocumentTimeout)
	}
}

func TestConfigValidate(t *testing.T) {
	cases := map[string]func(*Config){
		"negative window":       func(c *Config) { c.Pricing.WindowDays = -1 },
		"no benchmark":          func(c *Config) { c.Pricing.BenchmarkColumn = " " },
		"error below tolerance": func(c *Config) { c.Reconcile.VolumeErrorL = 50 },
		"zero llm timeout":      func(c *Config) { c.LLM.Timeout = 0 },
	}
	for name, mutate := range cases {
		t.Run(name, func(t *testing.T) {
			cfg := LoadConfig()
			mutate(cfg)
			err := cfg.Validate()
			if !errors.Is(err, ErrInvalidInput) {
				t.Fatalf("Validate = %v, want ErrInvalidInput", err)
			}
		})
	}
}
