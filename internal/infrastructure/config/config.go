package config

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds all application configuration
type Config struct {
	App        AppConfig
	Database   DatabaseConfig
	Redis      RedisConfig
	CORS       CORSConfig
	JWT        JWTConfig
	Cookie     CookieConfig
	Admin      AdminConfig
	S3         S3Config
	Stripe     StripeConfig
	Resend     ResendConfig
	Storefront StorefrontConfig
	Cache      CacheConfig
	Log        LogConfig
	HTTP       HTTPConfig
	Telemetry  TelemetryConfig
}

// LogConfig holds logging configuration
type LogConfig struct {
	Level  string // debug, info, warn, error
	Format string // json, console
	Output string // stdout, stderr, or file path
}

// AppConfig holds application-specific settings
type AppConfig struct {
	Name string
	Env  string
	Port string
}

// DatabaseConfig holds database connection settings.
// URL takes precedence over the discrete fields when set.
type DatabaseConfig struct {
	URL             string
	Host            string
	Port            int
	User            string
	Password        string
	DBName          string
	SSLMode         string
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime int // in minutes
	ConnMaxIdleTime int // in minutes
	LogLevel        string
	SlowThreshold   time.Duration
}

// RedisConfig holds Redis connection settings
type RedisConfig struct {
	URL             string
	ConnectTimeout  time.Duration
	KeepAlive       time.Duration
	MaxRetries      int
	MinRetryBackoff time.Duration
	MaxRetryBackoff time.Duration
}

// CORSConfig holds the allowed origins of each route group
type CORSConfig struct {
	Store []string
	Admin []string
	Auth  []string
}

// JWTConfig holds JWT settings
type JWTConfig struct {
	Secret                string
	AccessTokenExpiration time.Duration
	Issuer                string
}

// CookieConfig holds cookie signing settings
type CookieConfig struct {
	Secret string
}

// AdminConfig holds admin access settings
type AdminConfig struct {
	APIKey string // exchanged for an admin token at /auth/admin/token
	Email  string // receives order notifications
}

// S3Config holds object storage settings
type S3Config struct {
	FileURL         string
	AccessKeyID     string
	SecretAccessKey string
	Region          string
	Bucket          string
	Endpoint        string
}

// Enabled reports whether uploads can reach a bucket
func (s S3Config) Enabled() bool {
	return s.Bucket != "" && s.AccessKeyID != "" && s.SecretAccessKey != ""
}

// StripeConfig holds payment provider settings
type StripeConfig struct {
	APIKey        string
	WebhookSecret string
}

// ResendConfig holds transactional email settings
type ResendConfig struct {
	APIKey    string
	FromEmail string
}

// StorefrontConfig holds the storefront revalidation target
type StorefrontConfig struct {
	URL                string
	RevalidationSecret string
}

// CacheConfig holds cache TTLs
type CacheConfig struct {
	BrandTTL time.Duration
}

// HTTPConfig holds HTTP server configuration
type HTTPConfig struct {
	ReadTimeout             time.Duration
	WriteTimeout            time.Duration
	IdleTimeout             time.Duration
	MaxHeaderBytes          int
	MaxBodySize             int64
	NewsletterRateLimit     int           // requests per window per client IP
	NewsletterRateWindow    time.Duration // window for NewsletterRateLimit
	TrustedProxies          []string
	ShutdownTimeout         time.Duration
	MaxUploadFiles          int
	MaxUploadFileSizeMBytes int64
}

// TelemetryConfig holds OpenTelemetry configuration
type TelemetryConfig struct {
	Enabled           bool    // Whether to enable OpenTelemetry
	CollectorEndpoint string  // OTEL Collector endpoint (e.g., "localhost:4317")
	SamplingRatio     float64 // Sampling ratio (0.0-1.0, 1.0 = 100%)
	ServiceName       string  // Service name for traces
	Insecure          bool    // Use insecure (non-TLS) connection (development only)
	// Database tracing options
	DBTraceEnabled    bool          // Enable database query tracing (otelgorm)
	DBLogFullSQL      bool          // Log full SQL statements (dev only)
	DBSlowQueryThresh time.Duration // Slow query threshold for span events
}

// envBindings maps config keys whose conventional variable name does not
// follow the key path.
var envBindings = map[string]string{
	"app.env":                        "NODE_ENV",
	"cors.store":                     "STORE_CORS",
	"cors.admin":                     "ADMIN_CORS",
	"cors.auth":                      "AUTH_CORS",
	"admin.api_key":                  "ADMIN_API_KEY",
	"admin.email":                    "ADMIN_EMAIL",
	"storefront.url":                 "STOREFRONT_URL",
	"storefront.revalidation_secret": "REVALIDATION_SECRET",
}

// Load loads configuration from TOML file and environment variables
// Priority (highest to lowest):
// 1. Environment variables named after the key path (e.g., DATABASE_URL, REDIS_MAX_RETRIES)
// 2. config.toml
// 3. Built-in defaults
func Load() (*Config, error) {
	v := viper.New()

	v.SetConfigName("config")
	v.SetConfigType("toml")
	v.AddConfigPath(".")
	v.AddConfigPath("/app")

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	for key, env := range envBindings {
		if err := v.BindEnv(key, strings.ToUpper(strings.ReplaceAll(key, ".", "_")), env); err != nil {
			return nil, fmt.Errorf("error binding %s: %w", env, err)
		}
	}

	cfg := &Config{
		App: AppConfig{
			Name: v.GetString("app.name"),
			Env:  v.GetString("app.env"),
			Port: v.GetString("app.port"),
		},
		Database: DatabaseConfig{
			URL:             v.GetString("database.url"),
			Host:            v.GetString("database.host"),
			Port:            v.GetInt("database.port"),
			User:            v.GetString("database.user"),
			Password:        v.GetString("database.password"),
			DBName:          v.GetString("database.dbname"),
			SSLMode:         v.GetString("database.sslmode"),
			MaxOpenConns:    v.GetInt("database.max_open_conns"),
			MaxIdleConns:    v.GetInt("database.max_idle_conns"),
			ConnMaxLifetime: v.GetInt("database.conn_max_lifetime"),
			ConnMaxIdleTime: v.GetInt("database.conn_max_idle_time"),
			LogLevel:        v.GetString("database.log_level"),
			SlowThreshold:   v.GetDuration("database.slow_threshold"),
		},
		Redis: RedisConfig{
			URL:             v.GetString("redis.url"),
			ConnectTimeout:  v.GetDuration("redis.connect_timeout"),
			KeepAlive:       v.GetDuration("redis.keep_alive"),
			MaxRetries:      v.GetInt("redis.max_retries"),
			MinRetryBackoff: v.GetDuration("redis.min_retry_backoff"),
			MaxRetryBackoff: v.GetDuration("redis.max_retry_backoff"),
		},
		CORS: CORSConfig{
			Store: getList(v, "cors.store"),
			Admin: getList(v, "cors.admin"),
			Auth:  getList(v, "cors.auth"),
		},
		JWT: JWTConfig{
			Secret:                v.GetString("jwt.secret"),
			AccessTokenExpiration: v.GetDuration("jwt.access_token_expiration"),
			Issuer:                v.GetString("jwt.issuer"),
		},
		Cookie: CookieConfig{
			Secret: v.GetString("cookie.secret"),
		},
		Admin: AdminConfig{
			APIKey: v.GetString("admin.api_key"),
			Email:  v.GetString("admin.email"),
		},
		S3: S3Config{
			FileURL:         v.GetString("s3.file_url"),
			AccessKeyID:     v.GetString("s3.access_key_id"),
			SecretAccessKey: v.GetString("s3.secret_access_key"),
			Region:          v.GetString("s3.region"),
			Bucket:          v.GetString("s3.bucket"),
			Endpoint:        v.GetString("s3.endpoint"),
		},
		Stripe: StripeConfig{
			APIKey:        v.GetString("stripe.api_key"),
			WebhookSecret: v.GetString("stripe.webhook_secret"),
		},
		Resend: ResendConfig{
			APIKey:    v.GetString("resend.api_key"),
			FromEmail: v.GetString("resend.from_email"),
		},
		Storefront: StorefrontConfig{
			URL:                v.GetString("storefront.url"),
			RevalidationSecret: v.GetString("storefront.revalidation_secret"),
		},
		Cache: CacheConfig{
			BrandTTL: v.GetDuration("cache.brand_ttl"),
		},
		Log: LogConfig{
			Level:  v.GetString("log.level"),
			Format: v.GetString("log.format"),
			Output: v.GetString("log.output"),
		},
		HTTP: HTTPConfig{
			ReadTimeout:             v.GetDuration("http.read_timeout"),
			WriteTimeout:            v.GetDuration("http.write_timeout"),
			IdleTimeout:             v.GetDuration("http.idle_timeout"),
			MaxHeaderBytes:          v.GetInt("http.max_header_bytes"),
			MaxBodySize:             v.GetInt64("http.max_body_size"),
			NewsletterRateLimit:     v.GetInt("http.newsletter_rate_limit"),
			NewsletterRateWindow:    v.GetDuration("http.newsletter_rate_window"),
			TrustedProxies:          getList(v, "http.trusted_proxies"),
			ShutdownTimeout:         v.GetDuration("http.shutdown_timeout"),
			MaxUploadFiles:          v.GetInt("http.max_upload_files"),
			MaxUploadFileSizeMBytes: v.GetInt64("http.max_upload_file_size_mb"),
		},
		Telemetry: TelemetryConfig{
			Enabled:           v.GetBool("telemetry.enabled"),
			CollectorEndpoint: v.GetString("telemetry.collector_endpoint"),
			SamplingRatio:     v.GetFloat64("telemetry.sampling_ratio"),
			ServiceName:       v.GetString("telemetry.service_name"),
			Insecure:          v.GetBool("telemetry.insecure"),
			DBTraceEnabled:    v.GetBool("telemetry.db_trace_enabled"),
			DBLogFullSQL:      v.GetBool("telemetry.db_log_full_sql"),
			DBSlowQueryThresh: v.GetDuration("telemetry.db_slow_query_threshold"),
		},
	}

	applyDefaults(cfg)

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// getList reads a list from either a TOML array or a comma separated env value
func getList(v *viper.Viper, key string) []string {
	raw, ok := v.Get(key).(string)
	if !ok {
		return v.GetStringSlice(key)
	}
	return SplitList(raw)
}

// SplitList splits a comma separated value, dropping blanks
func SplitList(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}

// applyDefaults sets default values for any empty config fields
func applyDefaults(cfg *Config) {
	if cfg.App.Name == "" {
		cfg.App.Name = "raqueto-backend"
	}
	if cfg.App.Env == "" {
		cfg.App.Env = "development"
	}
	if cfg.App.Port == "" {
		cfg.App.Port = "9000"
	}
	if cfg.Database.Host == "" {
		cfg.Database.Host = "localhost"
	}
	if cfg.Database.Port == 0 {
		cfg.Database.Port = 5432
	}
	if cfg.Database.User == "" {
		cfg.Database.User = "postgres"
	}
	if cfg.Database.DBName == "" {
		cfg.Database.DBName = "raqueto"
	}
	if cfg.Database.SSLMode == "" {
		cfg.Database.SSLMode = "disable"
	}
	if cfg.Database.MaxOpenConns == 0 {
		cfg.Database.MaxOpenConns = 25
	}
	if cfg.Database.MaxIdleConns == 0 {
		cfg.Database.MaxIdleConns = 5
	}
	if cfg.Database.ConnMaxLifetime == 0 {
		cfg.Database.ConnMaxLifetime = 60
	}
	if cfg.Database.ConnMaxIdleTime == 0 {
		cfg.Database.ConnMaxIdleTime = 30
	}
	if cfg.Database.LogLevel == "" {
		cfg.Database.LogLevel = "warn"
	}
	if cfg.Database.SlowThreshold == 0 {
		cfg.Database.SlowThreshold = 200 * time.Millisecond
	}
	if cfg.Redis.ConnectTimeout == 0 {
		cfg.Redis.ConnectTimeout = 10 * time.Second
	}
	if cfg.Redis.KeepAlive == 0 {
		cfg.Redis.KeepAlive = 30 * time.Second
	}
	if cfg.Redis.MaxRetries == 0 {
		cfg.Redis.MaxRetries = 10
	}
	if cfg.Redis.MinRetryBackoff == 0 {
		cfg.Redis.MinRetryBackoff = 100 * time.Millisecond
	}
	if cfg.Redis.MaxRetryBackoff == 0 {
		cfg.Redis.MaxRetryBackoff = 2 * time.Second
	}
	if cfg.JWT.AccessTokenExpiration == 0 {
		cfg.JWT.AccessTokenExpiration = 24 * time.Hour
	}
	if cfg.JWT.Issuer == "" {
		cfg.JWT.Issuer = "raqueto-backend"
	}
	if cfg.Admin.Email == "" {
		cfg.Admin.Email = "hola@raqueto.shop"
	}
	if cfg.Resend.FromEmail == "" {
		cfg.Resend.FromEmail = "Raqueto <noreply@raqueto.shop>"
	}
	if cfg.S3.Region == "" {
		cfg.S3.Region = "us-east-1"
	}
	if cfg.Cache.BrandTTL == 0 {
		cfg.Cache.BrandTTL = 5 * time.Minute
	}
	if cfg.Log.Level == "" {
		cfg.Log.Level = "info"
	}
	if cfg.Log.Format == "" {
		cfg.Log.Format = "console"
	}
	if cfg.Log.Output == "" {
		cfg.Log.Output = "stdout"
	}
	if cfg.HTTP.ReadTimeout == 0 {
		cfg.HTTP.ReadTimeout = 15 * time.Second
	}
	if cfg.HTTP.WriteTimeout == 0 {
		cfg.HTTP.WriteTimeout = 30 * time.Second
	}
	if cfg.HTTP.IdleTimeout == 0 {
		cfg.HTTP.IdleTimeout = 60 * time.Second
	}
	if cfg.HTTP.MaxHeaderBytes == 0 {
		cfg.HTTP.MaxHeaderBytes = 1 << 20 // 1MB
	}
	if cfg.HTTP.MaxBodySize == 0 {
		cfg.HTTP.MaxBodySize = 10 << 20 // 10MB
	}
	if cfg.HTTP.NewsletterRateLimit == 0 {
		cfg.HTTP.NewsletterRateLimit = 5
	}
	if cfg.HTTP.NewsletterRateWindow == 0 {
		cfg.HTTP.NewsletterRateWindow = time.Minute
	}
	if cfg.HTTP.ShutdownTimeout == 0 {
		cfg.HTTP.ShutdownTimeout = 10 * time.Second
	}
	if cfg.HTTP.MaxUploadFiles == 0 {
		cfg.HTTP.MaxUploadFiles = 10
	}
	if cfg.HTTP.MaxUploadFileSizeMBytes == 0 {
		cfg.HTTP.MaxUploadFileSizeMBytes = 5
	}
	// Empty CORS lists mean no cross-origin requests are allowed until configured.

	if cfg.Telemetry.CollectorEndpoint == "" {
		cfg.Telemetry.CollectorEndpoint = "localhost:4317"
	}
	if cfg.Telemetry.SamplingRatio == 0 {
		cfg.Telemetry.SamplingRatio = 1.0
	}
	if cfg.Telemetry.ServiceName == "" {
		cfg.Telemetry.ServiceName = "raqueto-backend"
	}
	if cfg.Telemetry.DBSlowQueryThresh == 0 {
		cfg.Telemetry.DBSlowQueryThresh = 200 * time.Millisecond
	}
}

// validate performs validation on the configuration
func (c *Config) validate() error {
	if c.Database.MaxOpenConns <= 0 {
		return fmt.Errorf("database.max_open_conns must be positive")
	}
	if c.Database.MaxIdleConns < 0 {
		return fmt.Errorf("database.max_idle_conns cannot be negative")
	}
	if c.Database.MaxIdleConns > c.Database.MaxOpenConns {
		return fmt.Errorf("database.max_idle_conns (%d) cannot exceed database.max_open_conns (%d)",
			c.Database.MaxIdleConns, c.Database.MaxOpenConns)
	}
	if c.Redis.MinRetryBackoff > c.Redis.MaxRetryBackoff {
		return fmt.Errorf("redis.min_retry_backoff (%s) cannot exceed redis.max_retry_backoff (%s)",
			c.Redis.MinRetryBackoff, c.Redis.MaxRetryBackoff)
	}

	if c.IsProduction() {
		if len(c.JWT.Secret) < 32 {
			return fmt.Errorf("jwt.secret must be at least 32 characters in production")
		}
		if len(c.Cookie.Secret) < 32 {
			return fmt.Errorf("cookie.secret must be at least 32 characters in production")
		}
		if c.Database.URL == "" && c.Database.Password == "" {
			return fmt.Errorf("database.password is required in production")
		}
		for _, group := range [][]string{c.CORS.Store, c.CORS.Admin, c.CORS.Auth} {
			for _, origin := range group {
				if origin == "*" {
					return fmt.Errorf("cors origins cannot be '*' in production (use specific origins)")
				}
			}
		}
		if c.Telemetry.DBLogFullSQL {
			return fmt.Errorf("telemetry.db_log_full_sql must be false in production to prevent sensitive data exposure in traces")
		}
	}

	if c.Telemetry.SamplingRatio < 0.0 || c.Telemetry.SamplingRatio > 1.0 {
		return fmt.Errorf("telemetry.sampling_ratio must be between 0.0 and 1.0, got %f", c.Telemetry.SamplingRatio)
	}

	return nil
}

// IsProduction reports whether the app runs in production mode
func (c *Config) IsProduction() bool {
	return c.App.Env == "production"
}

// DSN returns the database connection string with properly escaped values
func (d *DatabaseConfig) DSN() string {
	if d.URL != "" {
		return d.URL
	}
	u := url.URL{
		Scheme: "postgres",
		User:   url.UserPassword(d.User, d.Password),
		Host:   fmt.Sprintf("%s:%d", d.Host, d.Port),
		Path:   d.DBName,
	}
	q := u.Query()
	q.Set("sslmode", d.SSLMode)
	u.RawQuery = q.Encode()
	return u.String()
}
