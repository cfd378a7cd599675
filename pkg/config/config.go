package config

import "time"

type Config struct {
	App           AppConfig           `mapstructure:"app"`
	HTTP          HTTPConfig          `mapstructure:"http"`
	Database      DatabaseConfig      `mapstructure:"database"`
	Redis         RedisConfig         `mapstructure:"redis"`
	Queue         QueueConfig         `mapstructure:"queue"`
	JWT           JWTConfig           `mapstructure:"jwt"`
	Routing       RoutingConfig       `mapstructure:"routing"`
	Payment       PaymentConfig       `mapstructure:"payment"`
	Pricing       PricingConfig       `mapstructure:"pricing"`
	Notification  NotificationConfig  `mapstructure:"notification"`
	Vault         VaultConfig         `mapstructure:"vault"`
	OpenTelemetry OpenTelemetryConfig `mapstructure:"opentelemetry"`
	Logging       LoggingConfig       `mapstructure:"logging"`
	CORS          CORSConfig          `mapstructure:"cors"`
}

type AppConfig struct {
	Name        string `mapstructure:"name"`
	Version     string `mapstructure:"version"`
	Environment string `mapstructure:"environment"`
}

type HTTPConfig struct {
	Port           int           `mapstructure:"port"`
	AllowedOrigins []string      `mapstructure:"allowed_origins"`
	ReadTimeout    time.Duration `mapstructure:"read_timeout"`
	WriteTimeout   time.Duration `mapstructure:"write_timeout"`
	IdleTimeout    time.Duration `mapstructure:"idle_timeout"`
}

type DatabaseConfig struct {
	URL          string `mapstructure:"url"`
	MaxOpenConns int    `mapstructure:"max_open_conns"`
	MaxIdleConns int    `mapstructure:"max_idle_conns"`
	AutoMigrate  bool   `mapstructure:"auto_migrate"`
}

type RedisConfig struct {
	URL string `mapstructure:"url"`
}

// QueueConfig selects the message broker. Provider is "nats" or "rabbitmq".
type QueueConfig struct {
	Provider string `mapstructure:"provider"`
	URL      string `mapstructure:"url"`
}

type JWTConfig struct {
	Secret        string        `mapstructure:"secret"`
	TokenDuration time.Duration `mapstructure:"token_duration"`
}

type RoutingConfig struct {
	// OSRMBaseURL points at an OSRM HTTP server, e.g.
	// http://router.project-osrm.org
	OSRMBaseURL string        `mapstructure:"osrm_base_url"`
	Timeout     time.Duration `mapstructure:"timeout"`
}

// PaymentConfig selects the charge gateway. Provider is "fawry" or "stripe".
type PaymentConfig struct {
	Provider string       `mapstructure:"provider"`
	Fawry    FawryConfig  `mapstructure:"fawry"`
	Stripe   StripeConfig `mapstructure:"stripe"`
}

type FawryConfig struct {
	MerchantCode string `mapstructure:"merchant_code"`
	SecurityKey  string `mapstructure:"security_key"`
	BaseURL      string `mapstructure:"base_url"`
}

type StripeConfig struct {
	SecretKey string `mapstructure:"secret_key"`
	Currency  string `mapstructure:"currency"`
}

// PricingConfig drives the time-based fare: base fare plus a per-minute
// rate, minimum one minute charged.
type PricingConfig struct {
	BaseFare      float64 `mapstructure:"base_fare"`
	RatePerMinute float64 `mapstructure:"rate_per_minute"`
	Currency      string  `mapstructure:"currency"`
}

type NotificationConfig struct {
	Email EmailConfig `mapstructure:"email"`
}

type EmailConfig struct {
	Provider     string `mapstructure:"provider"` // "sendgrid" or "smtp"
	APIKey       string `mapstructure:"api_key"`
	From         string `mapstructure:"from"`
	FromName     string `mapstructure:"from_name"`
	SMTPHost     string `mapstructure:"smtp_host"`
	SMTPPort     int    `mapstructure:"smtp_port"`
	SMTPUsername string `mapstructure:"smtp_username"`
	SMTPPassword string `mapstructure:"smtp_password"`
	BaseURL      string `mapstructure:"base_url"`
}

type VaultConfig struct {
	Enabled bool   `mapstructure:"enabled"`
	Address string `mapstructure:"address"`
	Token   string `mapstructure:"token"`
}

type OpenTelemetryConfig struct {
	Enabled        bool   `mapstructure:"enabled"`
	JaegerEndpoint string `mapstructure:"jaeger_endpoint"`
}

type LoggingConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

type CORSConfig struct {
	AllowedOrigins []string `mapstructure:"allowed_origins"`
	AllowedMethods []string `mapstructure:"allowed_methods"`
	AllowedHeaders []string `mapstructure:"allowed_headers"`
	ExposeHeaders  []string `mapstructure:"expose_headers"`
	MaxAge         int      `mapstructure:"max_age"`
	Credentials    bool     `mapstructure:"credentials"`
}
