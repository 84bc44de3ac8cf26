// Package config loads the process configuration once at startup: a
// required TOML file overlaid with environment variable overrides,
// then validated. There is no runtime mutability — the returned
// *Config is handed to every component as a read-only dependency for
// the life of the process.
//
// Grounded on the teacher's pkg/config.Loader: same
// defaults-then-file-then-env layering and the same reflection-based
// walkStruct env override, with the file layer narrowed from YAML/JSON
// to TOML (github.com/BurntSushi/toml).
package config

import (
	"fmt"
	"os"
	"reflect"
	"strconv"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
)

// ServerConfig controls the gRPC listener.
type ServerConfig struct {
	BindAddress string        `toml:"bind_address" env:"SERVER_BIND_ADDRESS"`
	CallTimeout time.Duration `toml:"call_timeout" env:"SERVER_CALL_TIMEOUT"`
}

// ProxyConfig controls the engine's outbound HTTP proxying (§5).
type ProxyConfig struct {
	URL            string   `toml:"url" env:"PROXY_URL"`
	BypassPatterns []string `toml:"bypass_patterns"`
}

// GatewayEntry is one [connectors.<id>] table in the TOML file.
type GatewayEntry struct {
	BaseURL        string `toml:"base_url"`
	DisputeBaseURL string `toml:"dispute_base_url"`
	BypassProxy    bool   `toml:"bypass_proxy"`
	WebhookSecret  string `toml:"webhook_secret"`
}

// AdminConfig controls the secondary HTTP mux (§10.3).
type AdminConfig struct {
	BindAddress  string   `toml:"bind_address" env:"ADMIN_BIND_ADDRESS"`
	JWTSecret    string   `toml:"jwt_secret" env:"ADMIN_JWT_SECRET"`
	AllowOrigins []string `toml:"allow_origins"`
}

// CacheConfig controls the two-tier token cache (§10.4).
type CacheConfig struct {
	RedisURL       string        `toml:"redis_url" env:"CACHE_REDIS_URL"`
	LocalTTL       time.Duration `toml:"local_ttl"`
	TokenExpiryBuf time.Duration `toml:"token_expiry_buffer"`
}

// WebhookStoreConfig controls the dedup/retry subsystem (§10.5).
type WebhookStoreConfig struct {
	PostgresDSN    string `toml:"postgres_dsn" env:"WEBHOOK_POSTGRES_DSN"`
	MigrationsPath string `toml:"migrations_path"`
	RabbitMQURL    string `toml:"rabbitmq_url" env:"WEBHOOK_RABBITMQ_URL"`
	MaxRetries     int    `toml:"max_retries"`
	NATSURL        string `toml:"nats_url" env:"WEBHOOK_NATS_URL"`
	NATSStreamName string `toml:"nats_stream_name"`
}

// AnalyticsConfig controls the ClickHouse call-log sink (§10.6).
type AnalyticsConfig struct {
	Enabled bool   `toml:"enabled"`
	DSN     string `toml:"dsn" env:"ANALYTICS_CLICKHOUSE_DSN"`
	Queue   int    `toml:"queue_size"`
}

// LoggingConfig controls zap encoder selection (§10.2).
type LoggingConfig struct {
	Mode     string `toml:"mode" env:"APP_MODE"` // "dev" or "production"
	Level    string `toml:"level" env:"LOG_LEVEL"`
	FilePath string `toml:"file_path"`
}

// Config is the process-wide configuration loaded once at startup.
type Config struct {
	Server     ServerConfig
	Proxy      ProxyConfig
	Connectors map[string]GatewayEntry
	Admin      AdminConfig
	Cache      CacheConfig
	Webhook    WebhookStoreConfig
	Analytics  AnalyticsConfig
	Logging    LoggingConfig
}

func defaults() *Config {
	return &Config{
		Server: ServerConfig{
			BindAddress: ":8443",
			CallTimeout: 60 * time.Second,
		},
		Cache: CacheConfig{
			LocalTTL:       10 * time.Minute,
			TokenExpiryBuf: 5 * time.Minute,
		},
		Webhook: WebhookStoreConfig{
			MigrationsPath: "migrations",
			MaxRetries:     6,
			NATSStreamName: "CONNECTOR_WEBHOOKS",
		},
		Analytics: AnalyticsConfig{
			Queue: 1024,
		},
		Logging: LoggingConfig{
			Mode:  "dev",
			Level: "info",
		},
		Admin: AdminConfig{
			BindAddress: ":8080",
		},
	}
}

// Load reads path (a TOML file) into a Config seeded with defaults,
// overlays environment variables tagged with `env:"..."`, and
// validates the result. path must exist; there is no optional-file
// behavior, unlike the teacher's loader, because a connector-dispatch
// process cannot run with an empty Connectors map.
func Load(path string) (*Config, error) {
	cfg := defaults()

	if _, err := toml.DecodeFile(path, cfg); err != nil {
		return nil, fmt.Errorf("loading config file %s: %w", path, err)
	}

	if err := overlayEnv(cfg); err != nil {
		return nil, fmt.Errorf("applying environment overrides: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("validating config: %w", err)
	}

	return cfg, nil
}

// Validate checks the invariants the rest of the system assumes hold
// once Load returns.
func (c *Config) Validate() error {
	var errs []string

	if c.Server.BindAddress == "" {
		errs = append(errs, "server.bind_address is required")
	}
	if len(c.Connectors) == 0 {
		errs = append(errs, "at least one entry under connectors is required")
	}
	for id, entry := range c.Connectors {
		if entry.BaseURL == "" {
			errs = append(errs, fmt.Sprintf("connectors.%s.base_url is required", id))
		}
	}
	if c.Analytics.Enabled && c.Analytics.DSN == "" {
		errs = append(errs, "analytics.dsn is required when analytics.enabled is true")
	}

	if len(errs) > 0 {
		return fmt.Errorf("invalid configuration: %s", strings.Join(errs, "; "))
	}
	return nil
}

// overlayEnv walks cfg's fields and, for every one tagged `env:"NAME"`,
// overrides it with the corresponding environment variable when set.
// Grounded on the teacher's Loader.walkStruct, narrowed to the
// explicit `env` tag form used on the Config structs above instead of
// the teacher's derived-name fallback.
func overlayEnv(cfg *Config) error {
	return walkStruct(reflect.ValueOf(cfg).Elem())
}

func walkStruct(v reflect.Value) error {
	t := v.Type()
	for i := 0; i < t.NumField(); i++ {
		field := t.Field(i)
		fv := v.Field(i)
		if !fv.CanSet() {
			continue
		}

		if fv.Kind() == reflect.Struct && field.Type != reflect.TypeOf(time.Duration(0)) {
			if err := walkStruct(fv); err != nil {
				return err
			}
			continue
		}

		envName := field.Tag.Get("env")
		if envName == "" {
			continue
		}
		raw, ok := os.LookupEnv(envName)
		if !ok || raw == "" {
			continue
		}
		if err := setFieldValue(fv, raw); err != nil {
			return fmt.Errorf("field %s from env %s: %w", field.Name, envName, err)
		}
	}
	return nil
}

func setFieldValue(field reflect.Value, value string) error {
	switch field.Kind() {
	case reflect.String:
		field.SetString(value)
	case reflect.Bool:
		b, err := strconv.ParseBool(value)
		if err != nil {
			return err
		}
		field.SetBool(b)
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		if field.Type() == reflect.TypeOf(time.Duration(0)) {
			d, err := time.ParseDuration(value)
			if err != nil {
				return err
			}
			field.Set(reflect.ValueOf(d))
			return nil
		}
		n, err := strconv.ParseInt(value, 10, 64)
		if err != nil {
			return err
		}
		field.SetInt(n)
	case reflect.Slice:
		if field.Type().Elem().Kind() == reflect.String {
			field.Set(reflect.ValueOf(strings.Split(value, ",")))
		}
	default:
		return fmt.Errorf("unsupported field kind %s", field.Kind())
	}
	return nil
}
