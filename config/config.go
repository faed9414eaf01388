package config

import (
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/shopspring/decimal"
	"github.com/spf13/viper"
)

type Config struct {
	App         AppConfig
	DB          DBConfig
	Redis       RedisConfig
	JWT         JWTConfig
	Marketplace MarketplaceConfig
	Booking     BookingConfig
	Sync        SyncConfig
	CORS        CORSConfig
}

type AppConfig struct {
	Port     string
	Env      string
	LogLevel string
}

type DBConfig struct {
	Host     string
	Port     string
	User     string
	Password string
	Name     string
	SSLMode  string
}

type RedisConfig struct {
	Host     string
	Port     string
	Password string
	DB       int
}

type JWTConfig struct {
	Secret string
}

// MarketplaceConfig points at the remote marketplace REST API.
type MarketplaceConfig struct {
	BaseURL      string
	Timeout      time.Duration
	RateLimit    float64
	RateBurst    int
	ServiceToken string
}

type BookingConfig struct {
	Timezone        string
	DraftTTL        time.Duration
	SlotGranularity time.Duration
	SubmitLockTTL   time.Duration
	DiscountRate    decimal.Decimal
	TaxRate         decimal.Decimal
}

type SyncConfig struct {
	Schedule string
}

type CORSConfig struct {
	AllowedOrigins []string
}

func LoadConfig() (*Config, error) {
	// .env is optional; real environment variables win over it.
	_ = godotenv.Load()
	viper.AutomaticEnv()

	setDefaults()

	discountRate, err := decimal.NewFromString(viper.GetString("BOOKING_DISCOUNT_RATE"))
	if err != nil {
		discountRate = decimal.RequireFromString("0.10")
	}

	taxRate, err := decimal.NewFromString(viper.GetString("BOOKING_TAX_RATE"))
	if err != nil {
		taxRate = decimal.RequireFromString("0.05")
	}

	config := &Config{
		App: AppConfig{
			Port:     viper.GetString("APP_PORT"),
			Env:      viper.GetString("APP_ENV"),
			LogLevel: viper.GetString("LOG_LEVEL"),
		},
		DB: DBConfig{
			Host:     viper.GetString("DB_HOST"),
			Port:     viper.GetString("DB_PORT"),
			User:     viper.GetString("DB_USER"),
			Password: viper.GetString("DB_PASSWORD"),
			Name:     viper.GetString("DB_NAME"),
			SSLMode:  viper.GetString("DB_SSLMODE"),
		},
		Redis: RedisConfig{
			Host:     viper.GetString("REDIS_HOST"),
			Port:     viper.GetString("REDIS_PORT"),
			Password: viper.GetString("REDIS_PASSWORD"),
			DB:       viper.GetInt("REDIS_DB"),
		},
		JWT: JWTConfig{
			Secret: viper.GetString("JWT_SECRET"),
		},
		Marketplace: MarketplaceConfig{
			BaseURL:      strings.TrimRight(viper.GetString("MARKETPLACE_BASE_URL"), "/"),
			Timeout:      viper.GetDuration("MARKETPLACE_TIMEOUT"),
			RateLimit:    viper.GetFloat64("MARKETPLACE_RATE_LIMIT"),
			RateBurst:    viper.GetInt("MARKETPLACE_RATE_BURST"),
			ServiceToken: viper.GetString("MARKETPLACE_SERVICE_TOKEN"),
		},
		Booking: BookingConfig{
			Timezone:        viper.GetString("BOOKING_TIMEZONE"),
			DraftTTL:        viper.GetDuration("BOOKING_DRAFT_TTL"),
			SlotGranularity: viper.GetDuration("BOOKING_SLOT_GRANULARITY"),
			SubmitLockTTL:   viper.GetDuration("BOOKING_SUBMIT_LOCK_TTL"),
			DiscountRate:    discountRate,
			TaxRate:         taxRate,
		},
		Sync: SyncConfig{
			Schedule: viper.GetString("ORDER_SYNC_SCHEDULE"),
		},
		CORS: CORSConfig{
			AllowedOrigins: splitList(viper.GetString("CORS_ALLOWED_ORIGINS")),
		},
	}

	return config, nil
}

func setDefaults() {
	viper.SetDefault("APP_PORT", "8080")
	viper.SetDefault("APP_ENV", "development")
	viper.SetDefault("LOG_LEVEL", "info")
	viper.SetDefault("DB_SSLMODE", "disable")
	viper.SetDefault("REDIS_PORT", "6379")
	viper.SetDefault("MARKETPLACE_TIMEOUT", "10s")
	viper.SetDefault("MARKETPLACE_RATE_LIMIT", 20)
	viper.SetDefault("MARKETPLACE_RATE_BURST", 40)
	viper.SetDefault("BOOKING_TIMEZONE", "UTC")
	viper.SetDefault("BOOKING_DRAFT_TTL", "24h")
	viper.SetDefault("BOOKING_SLOT_GRANULARITY", "10m")
	viper.SetDefault("BOOKING_SUBMIT_LOCK_TTL", "30s")
	viper.SetDefault("ORDER_SYNC_SCHEDULE", "@every 5m")
	viper.SetDefault("CORS_ALLOWED_ORIGINS", "*")
}

func splitList(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
