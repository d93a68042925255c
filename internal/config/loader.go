package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// Loader builds a Config from defaults, an optional YAML file and the
// environment.
type Loader struct {
	filePath string
	lookup   func(string) (string, bool)
}

// NewLoader creates a loader. An empty filePath means no file layer.
func NewLoader(filePath string) *Loader {
	return &Loader{filePath: filePath, lookup: os.LookupEnv}
}

// Load applies defaults, then the YAML file, then environment variables, and
// validates the result.
func (l *Loader) Load() (*Config, error) {
	cfg := Default()
	cfg.LoadedFrom = []string{"defaults"}

	if l.filePath != "" {
		if err := l.loadFile(cfg); err != nil {
			return nil, err
		}
		cfg.LoadedFrom = append(cfg.LoadedFrom, l.filePath)
	}

	l.loadEnvironmentVariables(cfg)
	cfg.LoadedFrom = append(cfg.LoadedFrom, "environment")

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}
	return cfg, nil
}

func (l *Loader) loadFile(cfg *Config) error {
	f, err := os.Open(l.filePath)
	if err != nil {
		return fmt.Errorf("open config file: %w", err)
	}
	defer f.Close()

	dec := yaml.NewDecoder(f)
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil {
		return fmt.Errorf("failed to parse %s: %w", l.filePath, err)
	}
	return nil
}

func (l *Loader) loadEnvironmentVariables(cfg *Config) {
	cfg.Environment = Environment(l.getEnv("ENVIRONMENT", string(cfg.Environment)))
	cfg.LogLevel = l.getEnv("LOG_LEVEL", cfg.LogLevel)

	cfg.Server.Host = l.getEnv("SERVER_HOST", cfg.Server.Host)
	cfg.Server.Port = l.getEnvInt("PORT", cfg.Server.Port)
	cfg.Server.ShutdownTimeout = l.getEnvDuration("SHUTDOWN_TIMEOUT", cfg.Server.ShutdownTimeout)
	cfg.Server.RateLimit = l.getEnvInt("RATE_LIMIT_PER_MINUTE", cfg.Server.RateLimit)
	if origins := l.getEnv("ALLOWED_ORIGINS", ""); origins != "" {
		cfg.Server.AllowedOrigins = splitList(origins)
	}

	cfg.Catalog.Path = l.getEnv("CATALOG_PATH", cfg.Catalog.Path)
	cfg.Catalog.Corpus = l.getEnv("CATALOG_CORPUS", cfg.Catalog.Corpus)
	cfg.Catalog.MaxFeatures = l.getEnvInt("CATALOG_MAX_FEATURES", cfg.Catalog.MaxFeatures)
	cfg.Catalog.Watch = l.getEnvBool("CATALOG_WATCH", cfg.Catalog.Watch)

	cfg.Matching.DefaultK = l.getEnvInt("DEFAULT_RESULT_COUNT", cfg.Matching.DefaultK)
	cfg.Matching.MaxK = l.getEnvInt("MAX_RESULT_COUNT", cfg.Matching.MaxK)
	cfg.Matching.BudgetSlack = l.getEnvFloat("BUDGET_SLACK", cfg.Matching.BudgetSlack)

	cfg.ProductSource.Enabled = l.getEnvBool("PRODUCT_SOURCE_ENABLED", cfg.ProductSource.Enabled)
	cfg.ProductSource.Endpoint = l.getEnv("PRODUCT_SOURCE_ENDPOINT", cfg.ProductSource.Endpoint)
	cfg.ProductSource.APIKey = l.getEnv("PRODUCT_SOURCE_API_KEY", cfg.ProductSource.APIKey)
	cfg.ProductSource.PartnerTag = l.getEnv("PRODUCT_SOURCE_PARTNER_TAG", cfg.ProductSource.PartnerTag)
	cfg.ProductSource.Throttle = l.getEnvDuration("PRODUCT_SOURCE_THROTTLE", cfg.ProductSource.Throttle)
	cfg.ProductSource.CacheTTL = l.getEnvDuration("PRODUCT_SOURCE_CACHE_TTL", cfg.ProductSource.CacheTTL)
	cfg.ProductSource.Timeout = l.getEnvDuration("PRODUCT_SOURCE_TIMEOUT", cfg.ProductSource.Timeout)
	cfg.ProductSource.MaxResults = l.getEnvInt("PRODUCT_SOURCE_MAX_RESULTS", cfg.ProductSource.MaxResults)

	cfg.Feedback.Sink = l.getEnv("FEEDBACK_SINK", cfg.Feedback.Sink)
	cfg.Feedback.TableName = l.getEnv("FEEDBACK_TABLE_NAME", cfg.Feedback.TableName)
	cfg.Feedback.EventBus = l.getEnv("FEEDBACK_EVENT_BUS", cfg.Feedback.EventBus)
	cfg.Feedback.Region = l.getEnv("AWS_REGION", cfg.Feedback.Region)

	cfg.Tracing.Enabled = l.getEnvBool("TRACING_ENABLED", cfg.Tracing.Enabled)
	cfg.Tracing.Endpoint = l.getEnv("OTEL_EXPORTER_OTLP_ENDPOINT", cfg.Tracing.Endpoint)
	cfg.Tracing.SampleRatio = l.getEnvFloat("TRACING_SAMPLE_RATIO", cfg.Tracing.SampleRatio)

	cfg.Metrics.Enabled = l.getEnvBool("ENABLE_METRICS", cfg.Metrics.Enabled)
}

func (l *Loader) getEnv(key, defaultValue string) string {
	if value, ok := l.lookup(key); ok && value != "" {
		return value
	}
	return defaultValue
}

func (l *Loader) getEnvInt(key string, defaultValue int) int {
	if value, ok := l.lookup(key); ok && value != "" {
		if n, err := strconv.Atoi(value); err == nil {
			return n
		}
	}
	return defaultValue
}

func (l *Loader) getEnvFloat(key string, defaultValue float64) float64 {
	if value, ok := l.lookup(key); ok && value != "" {
		if f, err := strconv.ParseFloat(value, 64); err == nil {
			return f
		}
	}
	return defaultValue
}

func (l *Loader) getEnvBool(key string, defaultValue bool) bool {
	if value, ok := l.lookup(key); ok && value != "" {
		if b, err := strconv.ParseBool(value); err == nil {
			return b
		}
	}
	return defaultValue
}

func (l *Loader) getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	if value, ok := l.lookup(key); ok && value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return defaultValue
}

func splitList(s string) []string {
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

// Load reads CONFIG_FILE (if set) and the environment.
func Load() (*Config, error) {
	return NewLoader(os.Getenv("CONFIG_FILE")).Load()
}
