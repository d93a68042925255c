// Package config loads service configuration from defaults, an optional YAML
// file and environment variables, in that order of precedence.
package config

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// Environment is the deployment environment.
type Environment string

const (
	Development Environment = "development"
	Staging     Environment = "staging"
	Production  Environment = "production"
)

// Config is the complete service configuration.
type Config struct {
	Environment   Environment   `yaml:"environment"`
	LogLevel      string        `yaml:"log_level"`
	Server        Server        `yaml:"server"`
	Catalog       Catalog       `yaml:"catalog"`
	Matching      Matching      `yaml:"matching"`
	ProductSource ProductSource `yaml:"product_source"`
	Feedback      Feedback      `yaml:"feedback"`
	Tracing       Tracing       `yaml:"tracing"`
	Metrics       Metrics       `yaml:"metrics"`

	// LoadedFrom lists the sources applied, lowest priority first.
	LoadedFrom []string `yaml:"-"`
}

type Server struct {
	Host            string        `yaml:"host"`
	Port            int           `yaml:"port"`
	ReadTimeout     time.Duration `yaml:"read_timeout"`
	WriteTimeout    time.Duration `yaml:"write_timeout"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout"`
	AllowedOrigins  []string      `yaml:"allowed_origins"`
	// RateLimit is requests per minute per client IP on the recommend
	// endpoint; 0 disables it.
	RateLimit int `yaml:"rate_limit"`
}

// Addr returns host:port.
func (s Server) Addr() string {
	return fmt.Sprintf("%s:%d", s.Host, s.Port)
}

type Catalog struct {
	Path        string `yaml:"path"`
	Corpus      string `yaml:"corpus"`
	MaxFeatures int    `yaml:"max_features"`
	MaxNGram    int    `yaml:"max_ngram"`
	Watch       bool   `yaml:"watch"`
}

type Matching struct {
	DefaultK    int     `yaml:"default_k"`
	MaxK        int     `yaml:"max_k"`
	BudgetSlack float64 `yaml:"budget_slack"`
}

type ProductSource struct {
	Enabled     bool          `yaml:"enabled"`
	Endpoint    string        `yaml:"endpoint"`
	APIKey      string        `yaml:"api_key"`
	PartnerTag  string        `yaml:"partner_tag"`
	Marketplace string        `yaml:"marketplace"`
	Throttle    time.Duration `yaml:"throttle"`
	CacheTTL    time.Duration `yaml:"cache_ttl"`
	CacheItems  int           `yaml:"cache_items"`
	Timeout     time.Duration `yaml:"timeout"`
	MaxResults  int           `yaml:"max_results"`
}

// Feedback sink kinds.
const (
	SinkLog         = "log"
	SinkDynamoDB    = "dynamodb"
	SinkEventBridge = "eventbridge"
)

type Feedback struct {
	Sink      string `yaml:"sink"`
	TableName string `yaml:"table_name"`
	EventBus  string `yaml:"event_bus"`
	Source    string `yaml:"source"`
	Region    string `yaml:"region"`
}

type Tracing struct {
	Enabled     bool    `yaml:"enabled"`
	Endpoint    string  `yaml:"endpoint"`
	ServiceName string  `yaml:"service_name"`
	SampleRatio float64 `yaml:"sample_ratio"`
}

type Metrics struct {
	Enabled   bool   `yaml:"enabled"`
	Namespace string `yaml:"namespace"`
}

// Default returns a configuration that runs locally with no external services.
func Default() *Config {
	return &Config{
		Environment: Development,
		LogLevel:    "info",
		Server: Server{
			Host:            "0.0.0.0",
			Port:            8080,
			ReadTimeout:     10 * time.Second,
			WriteTimeout:    15 * time.Second,
			ShutdownTimeout: 10 * time.Second,
			AllowedOrigins:  []string{"*"},
			RateLimit:       60,
		},
		Catalog: Catalog{
			Path:        "data/gift_catalog.csv",
			Corpus:      "combined",
			MaxFeatures: 1000,
			MaxNGram:    2,
		},
		Matching: Matching{
			DefaultK:    5,
			MaxK:        20,
			BudgetSlack: 20,
		},
		ProductSource: ProductSource{
			Throttle:   1500 * time.Millisecond,
			CacheTTL:   time.Hour,
			CacheItems: 500,
			Timeout:    3 * time.Second,
			MaxResults: 10,
		},
		Feedback: Feedback{
			Sink:   SinkLog,
			Source: "giftguru-backend",
		},
		Tracing: Tracing{
			Endpoint:    "localhost:4317",
			ServiceName: "giftguru-backend",
			SampleRatio: 1,
		},
		Metrics: Metrics{
			Enabled:   true,
			Namespace: "giftguru",
		},
	}
}

// Validate checks the configuration for values the service cannot run with.
func (c *Config) Validate() error {
	var errs []error

	switch c.Environment {
	case Development, Staging, Production:
	default:
		errs = append(errs, fmt.Errorf("unknown environment %q", c.Environment))
	}
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		errs = append(errs, fmt.Errorf("server port %d out of range", c.Server.Port))
	}
	if strings.TrimSpace(c.Catalog.Path) == "" {
		errs = append(errs, errors.New("catalog path is required"))
	}
	if c.Catalog.Corpus != "combined" && c.Catalog.Corpus != "tags" {
		errs = append(errs, fmt.Errorf("catalog corpus must be combined or tags, got %q", c.Catalog.Corpus))
	}
	if c.Catalog.MaxFeatures <= 0 {
		errs = append(errs, errors.New("catalog max_features must be positive"))
	}
	if c.Matching.DefaultK <= 0 {
		errs = append(errs, errors.New("matching default_k must be positive"))
	}
	if c.Matching.MaxK < c.Matching.DefaultK {
		errs = append(errs, errors.New("matching max_k must be at least default_k"))
	}
	if c.Matching.BudgetSlack < 0 {
		errs = append(errs, errors.New("matching budget_slack cannot be negative"))
	}
	if c.ProductSource.Enabled && c.ProductSource.Endpoint == "" {
		errs = append(errs, errors.New("product_source endpoint is required when enabled"))
	}
	if c.ProductSource.Timeout <= 0 {
		errs = append(errs, errors.New("product_source timeout must be positive"))
	}

	switch c.Feedback.Sink {
	case SinkLog:
	case SinkDynamoDB:
		if c.Feedback.TableName == "" {
			errs = append(errs, errors.New("feedback table_name is required for the dynamodb sink"))
		}
	case SinkEventBridge:
		if c.Feedback.EventBus == "" {
			errs = append(errs, errors.New("feedback event_bus is required for the eventbridge sink"))
		}
	default:
		errs = append(errs, fmt.Errorf("unknown feedback sink %q", c.Feedback.Sink))
	}

	if c.Tracing.Enabled && c.Tracing.Endpoint == "" {
		errs = append(errs, errors.New("tracing endpoint is required when enabled"))
	}

	return errors.Join(errs...)
}

// IsProduction reports whether the service runs in production.
func (c *Config) IsProduction() bool {
	return c.Environment == Production
}
