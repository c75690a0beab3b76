package common

import (
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"
)

// Config holds all application configuration
type Config struct {
	Pricing   PricingConfig
	Reconcile ReconcileConfig
	Batch     BatchConfig
	LLM       LLMConfig
	OwnVATID  string
	LogLevel  slog.Level
}

// PricingConfig holds price-table and catalog configuration
type PricingConfig struct {
	TablePath       string
	Sheet           string
	CatalogPath     string // empty -> embedded default catalog
	BenchmarkColumn string
	WindowDays      int
}

// ReconcileConfig holds the absolute tolerances used by the reconciler
type ReconcileConfig struct {
	WeightToleranceKg float64
	WeightErrorKg     float64
	VolumeToleranceL  float64
	VolumeErrorL      float64
}

// BatchConfig holds bulk ingestion settings
type BatchConfig struct {
	DocumentTimeout time.Duration
}

// LLMConfig points at the structured-extraction service. An empty URL disables it.
type LLMConfig struct {
	URL     string
	APIKey  string
	Timeout time.Duration
}

// LoadConfig loads configuration from environment variables
func LoadConfig() *Config {
	return &Config{
		Pricing: PricingConfig{
			TablePath:       getEnv("PRICE_TABLE_PATH", ""),
			Sheet:           getEnv("PRICE_SHEET", ""),
			CatalogPath:     getEnv("PRICE_CATALOG_PATH", ""),
			BenchmarkColumn: getEnv("BENCHMARK_COLUMN", "PLATTS"),
			WindowDays:      getEnvAsInt("PRICE_WINDOW_DAYS", 7),
		},
		Reconcile: ReconcileConfig{
			WeightToleranceKg: getEnvAsFloat64("RECON_WEIGHT_TOL_KG", 50),
			WeightErrorKg:     getEnvAsFloat64("RECON_WEIGHT_ERR_KG", 150),
			VolumeToleranceL:  getEnvAsFloat64("RECON_VOLUME_TOL_L", 100),
			VolumeErrorL:      getEnvAsFloat64("RECON_VOLUME_ERR_L", 300),
		},
		Batch: BatchConfig{
			DocumentTimeout: getEnvAsDuration("DOC_TIMEOUT", 30*time.Second),
		},
		LLM: LLMConfig{
			URL:     getEnv("LLM_EXTRACT_URL", ""),
			APIKey:  getEnv("LLM_API_KEY", ""),
			Timeout: getEnvAsDuration("LLM_TIMEOUT", 45*time.Second),
		},
		OwnVATID: strings.ToUpper(getEnv("OWN_VAT_ID", "")),
		LogLevel: getEnvAsLevel("LOG_LEVEL", slog.LevelInfo),
	}
}

// Helper functions for environment variable parsing
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return defaultValue
}

func getEnvAsFloat64(key string, defaultValue float64) float64 {
	if value := os.Getenv(key); value != "" {
		if floatVal, err := strconv.ParseFloat(value, 64); err == nil {
			return floatVal
		}
	}
	return defaultValue
}

func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
	}
	return defaultValue
}

func getEnvAsLevel(key string, defaultValue slog.Level) slog.Level {
	if value := os.Getenv(key); value != "" {
		var lvl slog.Level
		if err := lvl.UnmarshalText([]byte(value)); err == nil {
			return lvl
		}
	}
	return defaultValue
}

// Validate validates the loaded configuration
func (c *Config) Validate() error {
	v := NewValidator().
		Field("PRICE_WINDOW_DAYS", c.Pricing.WindowDays, NonNegative).
		Field("BENCHMARK_COLUMN", c.Pricing.BenchmarkColumn, Required).
		Field("RECON_WEIGHT_TOL_KG", c.Reconcile.WeightToleranceKg, NonNegative).
		Field("RECON_VOLUME_TOL_L", c.Reconcile.VolumeToleranceL, NonNegative).
		Field("DOC_TIMEOUT", c.Batch.DocumentTimeout.Seconds(), NonNegative).
		Field("LLM_TIMEOUT", c.LLM.Timeout.Seconds(), Positive)
	if c.Reconcile.WeightErrorKg < c.Reconcile.WeightToleranceKg {
		v.errors = append(v.errors, ValidationError{Field: "RECON_WEIGHT_ERR_KG", Value: c.Reconcile.WeightErrorKg, Message: "must be >= RECON_WEIGHT_TOL_KG"})
	}
	if c.Reconcile.VolumeErrorL < c.Reconcile.VolumeToleranceL {
		v.errors = append(v.errors, ValidationError{Field: "RECON_VOLUME_ERR_L", Value: c.Reconcile.VolumeErrorL, Message: "must be >= RECON_VOLUME_TOL_L"})
	}
	if err := v.Error(); err != nil {
		return NewAppError(CodeConfig, v.ErrorMessage(), ErrInvalidInput)
	}
	return nil
}
