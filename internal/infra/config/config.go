package config

import (
	"fmt"
	"net"
	"strings"
	"time"

	"github.com/spf13/viper"
)

type AppConfig struct {
	App          AppSettings          `mapstructure:"app"`
	Log          LogSettings          `mapstructure:"log"`
	Postgres     PostgresSettings     `mapstructure:"postgres"`
	Redis        RedisSettings        `mapstructure:"redis"`
	Kafka        KafkaSettings        `mapstructure:"kafka"`
	JWT          JWTSettings          `mapstructure:"jwt"`
	Notification NotificationSettings `mapstructure:"notification"`
	GRPC         GRPCSettings         `mapstructure:"grpc"`
	Telemetry    TelemetrySettings    `mapstructure:"telemetry"`
	RateLimit    RateLimitSettings    `mapstructure:"rate_limit"`
	Password     PasswordSettings     `mapstructure:"password"`
	CORS         CORSSettings         `mapstructure:"cors"`
}

type AppSettings struct {
	Name        string `mapstructure:"name"`
	Env         string `mapstructure:"env"`
	Host        string `mapstructure:"host"`
	Port        int    `mapstructure:"port"`
	FrontendURL string `mapstructure:"frontend_url"`
	// TrustedProxies lists the proxy IPs or CIDRs allowed to set X-Forwarded-For.
	// Empty means the socket peer is the client.
	TrustedProxies []string `mapstructure:"trusted_proxies"`
}

type LogSettings struct {
	Level string `mapstructure:"level"`
}

type GRPCSettings struct {
	Enabled bool   `mapstructure:"enabled"`
	Host    string `mapstructure:"host"`
	Port    int    `mapstructure:"port"`
}

type PostgresSettings struct {
	Host              string        `mapstructure:"host"`
	Port              int           `mapstructure:"port"`
	User              string        `mapstructure:"user"`
	Password          string        `mapstructure:"password"`
	Database          string        `mapstructure:"database"`
	Schema            string        `mapstructure:"schema"`
	SSLMode           string        `mapstructure:"ssl_mode"`
	MaxConns          int32         `mapstructure:"max_conns"`
	MinConns          int32         `mapstructure:"min_conns"`
	MaxConnLifetime   time.Duration `mapstructure:"max_conn_lifetime"`
	MaxConnIdleTime   time.Duration `mapstructure:"max_conn_idle_time"`
	HealthCheckPeriod time.Duration `mapstructure:"health_check_period"`
}

// RedisSettings configures Redis connection and TLS
type RedisSettings struct {
	Host           string `mapstructure:"host"`
	Port           int    `mapstructure:"port"`
	DB             int    `mapstructure:"db"`
	Password       string `mapstructure:"password"`
	TLSEnabled     bool   `mapstructure:"tls_enabled"`
	ThrottlePrefix string `mapstructure:"throttle_prefix"`
}

// KafkaSettings configures the event producer. An empty broker list disables publishing.
type KafkaSettings struct {
	Brokers     []string `mapstructure:"brokers"`
	TopicPrefix string   `mapstructure:"topic_prefix"`
	ClientID    string   `mapstructure:"client_id"`
}

// JWTSettings holds the process-wide HMAC secret. It is read once at startup.
type JWTSettings struct {
	Secret         string        `mapstructure:"secret"`
	Issuer         string        `mapstructure:"issuer"`
	AccessTokenTTL time.Duration `mapstructure:"access_token_ttl"`
	ResetTokenTTL  time.Duration `mapstructure:"reset_token_ttl"`
}

type NotificationSettings struct {
	BaseURL string        `mapstructure:"base_url"`
	Timeout time.Duration `mapstructure:"timeout"`
}

type TelemetrySettings struct {
	OTLPEndpoint string  `mapstructure:"otlp_endpoint"`
	ServiceName  string  `mapstructure:"service_name"`
	SamplingRate float64 `mapstructure:"sampling_rate"`
}

// RateLimitSettings configures the per-tier quotas enforced before requests reach handlers.
type RateLimitSettings struct {
	Enabled                   bool          `mapstructure:"enabled"`
	LoginMaxAttempts          int           `mapstructure:"login_max_attempts"`
	LoginWindow               time.Duration `mapstructure:"login_window"`
	ForgotPasswordMaxAttempts int           `mapstructure:"forgot_password_max_attempts"`
	ForgotPasswordWindow      time.Duration `mapstructure:"forgot_password_window"`
	GeneralMaxAttempts        int           `mapstructure:"general_max_attempts"`
	GeneralWindow             time.Duration `mapstructure:"general_window"`
}

type PasswordSettings struct {
	MinLength int `mapstructure:"min_length"`
	MinScore  int `mapstructure:"min_score"`
}

type CORSSettings struct {
	AllowedOrigins []string `mapstructure:"allowed_origins"`
}

// IsProduction reports whether the service runs with production defaults.
func (c AppSettings) IsProduction() bool {
	return strings.EqualFold(c.Env, "production")
}

// Address is the host:port the HTTP server listens on.
func (c AppSettings) Address() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

func (c GRPCSettings) Address() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

func (c RedisSettings) Address() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

var envKeys = []string{
	"app.name",
	"app.env",
	"app.host",
	"app.port",
	"app.frontend_url",
	"app.trusted_proxies",
	"log.level",
	"grpc.enabled",
	"grpc.host",
	"grpc.port",
	"postgres.host",
	"postgres.port",
	"postgres.user",
	"postgres.password",
	"postgres.database",
	"postgres.schema",
	"postgres.ssl_mode",
	"postgres.max_conns",
	"postgres.min_conns",
	"postgres.max_conn_lifetime",
	"postgres.max_conn_idle_time",
	"postgres.health_check_period",
	"redis.host",
	"redis.port",
	"redis.db",
	"redis.password",
	"redis.tls_enabled",
	"redis.throttle_prefix",
	"kafka.brokers",
	"kafka.topic_prefix",
	"kafka.client_id",
	"jwt.secret",
	"jwt.issuer",
	"jwt.access_token_ttl",
	"jwt.reset_token_ttl",
	"notification.base_url",
	"notification.timeout",
	"telemetry.otlp_endpoint",
	"telemetry.service_name",
	"telemetry.sampling_rate",
	"rate_limit.enabled",
	"rate_limit.login_max_attempts",
	"rate_limit.login_window",
	"rate_limit.forgot_password_max_attempts",
	"rate_limit.forgot_password_window",
	"rate_limit.general_max_attempts",
	"rate_limit.general_window",
	"password.min_length",
	"password.min_score",
	"cors.allowed_origins",
}

// legacyEnv lists variable names used by earlier deployments of the service.
var legacyEnv = map[string][]string{
	"app.env":           {"NODE_ENV"},
	"app.frontend_url":  {"FRONTEND_URL"},
	"postgres.port":     {"PORT_DATABASE"},
	"postgres.user":     {"USER_DATABASE"},
	"postgres.password": {"PASSWORD_DATABASE"},
	"postgres.database": {"NAME_DATABASE"},
}

func Load() (*AppConfig, error) {
	v := viper.New()

	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.SetEnvPrefix("PARKIT")

	setDefaults(v)

	if err := bindEnvs(v, envKeys); err != nil {
		return nil, err
	}

	v.AutomaticEnv()

	var cfg AppConfig
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// Validate rejects configurations the service cannot start with.
func (c *AppConfig) Validate() error {
	if c.JWT.Secret == "" {
		return fmt.Errorf("config: jwt.secret is required")
	}
	if c.App.IsProduction() && len(c.JWT.Secret) < 32 {
		return fmt.Errorf("config: jwt.secret must be at least 32 bytes in production")
	}
	if c.Notification.BaseURL == "" {
		return fmt.Errorf("config: notification.base_url is required")
	}
	for _, proxy := range c.App.TrustedProxies {
		if !validProxy(proxy) {
			return fmt.Errorf("config: app.trusted_proxies: %q is not an IP or CIDR", proxy)
		}
	}
	return nil
}

func validProxy(proxy string) bool {
	if strings.Contains(proxy, "/") {
		_, _, err := net.ParseCIDR(proxy)
		return err == nil
	}
	return net.ParseIP(proxy) != nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("app.name", "parkit-auth")
	v.SetDefault("app.env", "development")
	v.SetDefault("app.host", "0.0.0.0")
	v.SetDefault("app.port", 3000)
	v.SetDefault("app.frontend_url", "http://localhost:5173")
	v.SetDefault("app.trusted_proxies", []string{})

	v.SetDefault("log.level", "info")

	v.SetDefault("grpc.enabled", true)
	v.SetDefault("grpc.host", "0.0.0.0")
	v.SetDefault("grpc.port", 50051)

	v.SetDefault("postgres.host", "localhost")
	v.SetDefault("postgres.port", 5432)
	v.SetDefault("postgres.user", "parkit")
	v.SetDefault("postgres.password", "parkit")
	v.SetDefault("postgres.database", "parkit")
	v.SetDefault("postgres.schema", "parkit")
	v.SetDefault("postgres.ssl_mode", "disable")
	v.SetDefault("postgres.max_conns", 10)
	v.SetDefault("postgres.min_conns", 2)
	v.SetDefault("postgres.max_conn_lifetime", "60m")
	v.SetDefault("postgres.max_conn_idle_time", "15m")
	v.SetDefault("postgres.health_check_period", "30s")

	v.SetDefault("redis.host", "localhost")
	v.SetDefault("redis.port", 6379)
	v.SetDefault("redis.db", 0)
	v.SetDefault("redis.password", "")
	v.SetDefault("redis.tls_enabled", false)
	v.SetDefault("redis.throttle_prefix", "parkit:throttle")

	v.SetDefault("kafka.brokers", []string{})
	v.SetDefault("kafka.topic_prefix", "parkit")
	v.SetDefault("kafka.client_id", "parkit-auth")

	v.SetDefault("jwt.issuer", "parkit-auth")
	v.SetDefault("jwt.access_token_ttl", "4h")
	v.SetDefault("jwt.reset_token_ttl", "15m")

	v.SetDefault("notification.base_url", "http://localhost:3001")
	v.SetDefault("notification.timeout", "10s")

	v.SetDefault("telemetry.otlp_endpoint", "")
	v.SetDefault("telemetry.service_name", "parkit-auth")
	v.SetDefault("telemetry.sampling_rate", 1.0)

	v.SetDefault("rate_limit.enabled", true)
	v.SetDefault("rate_limit.login_max_attempts", 5)
	v.SetDefault("rate_limit.login_window", "1m")
	v.SetDefault("rate_limit.forgot_password_max_attempts", 5)
	v.SetDefault("rate_limit.forgot_password_window", "1m")
	v.SetDefault("rate_limit.general_max_attempts", 100)
	v.SetDefault("rate_limit.general_window", "1m")

	v.SetDefault("password.min_length", 8)
	v.SetDefault("password.min_score", 2)

	v.SetDefault("cors.allowed_origins", []string{"http://localhost:5173"})
}

func bindEnvs(v *viper.Viper, keys []string) error {
	for _, key := range keys {
		envKey := strings.ToUpper(strings.ReplaceAll(key, ".", "_"))
		names := append([]string{"PARKIT_" + envKey, envKey}, legacyEnv[key]...)
		if err := v.BindEnv(append([]string{key}, names...)...); err != nil {
			return fmt.Errorf("bind env for %s: %w", key, err)
		}
	}
	return nil
}
