package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

func Load() (*Config, error) {
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath("./configs")
	viper.AddConfigPath(".")
	viper.AddConfigPath("/app/configs")

	viper.SetEnvPrefix("APP")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	// Common env vars without the APP_ prefix for Docker/VM deploys.
	viper.BindEnv("http.port", "HTTP_PORT", "APP_HTTP_PORT")
	viper.BindEnv("database.url", "DATABASE_URL", "APP_DATABASE_URL")
	viper.BindEnv("redis.url", "REDIS_URL", "APP_REDIS_URL")
	viper.BindEnv("queue.url", "QUEUE_URL", "NATS_URL")
	viper.BindEnv("jwt.secret", "JWT_SECRET", "APP_JWT_SECRET")
	viper.BindEnv("payment.fawry.merchant_code", "FAWRY_MERCHANT_CODE")
	viper.BindEnv("payment.fawry.security_key", "FAWRY_SECURITY_KEY")
	viper.BindEnv("payment.stripe.secret_key", "STRIPE_SECRET_KEY")
	viper.BindEnv("routing.osrm_base_url", "OSRM_BASE_URL")
	viper.BindEnv("notification.email.api_key", "SENDGRID_API_KEY")
	viper.BindEnv("vault.address", "VAULT_ADDR")
	viper.BindEnv("vault.token", "VAULT_TOKEN")
	viper.BindEnv("app.environment", "APP_ENVIRONMENT")
	viper.BindEnv("logging.level", "LOG_LEVEL")

	setDefaults()

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
		// No config file: env vars and defaults carry the day.
	}

	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	return &cfg, nil
}

func setDefaults() {
	viper.SetDefault("app.name", "scootme")
	viper.SetDefault("app.version", "v1.0.0")
	viper.SetDefault("app.environment", "development")

	viper.SetDefault("http.port", 8080)
	viper.SetDefault("http.read_timeout", 10*time.Second)
	viper.SetDefault("http.write_timeout", 15*time.Second)
	viper.SetDefault("http.idle_timeout", 2*time.Minute)

	viper.SetDefault("database.max_open_conns", 100)
	viper.SetDefault("database.max_idle_conns", 10)
	viper.SetDefault("database.auto_migrate", true)

	viper.SetDefault("queue.provider", "nats")

	viper.SetDefault("jwt.token_duration", 24*time.Hour)

	viper.SetDefault("routing.osrm_base_url", "http://router.project-osrm.org")
	viper.SetDefault("routing.timeout", 5*time.Second)

	viper.SetDefault("payment.provider", "fawry")
	viper.SetDefault("payment.fawry.base_url",
		"https://atfawry.fawrystaging.com/ECommerceWeb/Fawry/payments/charge")

	viper.SetDefault("pricing.base_fare", 5.0)
	viper.SetDefault("pricing.rate_per_minute", 0.5)
	viper.SetDefault("pricing.currency", "EGP")

	viper.SetDefault("notification.email.provider", "smtp")
	viper.SetDefault("notification.email.from", "noreply@scoot-me.app")
	viper.SetDefault("notification.email.from_name", "Scoot-Me")
	viper.SetDefault("notification.email.smtp_host", "localhost")
	viper.SetDefault("notification.email.smtp_port", 1025)
	viper.SetDefault("notification.email.base_url", "http://localhost:3000")

	viper.SetDefault("logging.level", "info")
}
