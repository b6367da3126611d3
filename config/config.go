package config

import (
	"log"

	"github.com/spf13/viper"
)

// Config holds all configuration values.
type Config struct {
	AppPort           string `mapstructure:"APP_PORT"`
	DatabaseURL       string `mapstructure:"DATABASE_URL"`
	DatabaseName      string `mapstructure:"DATABASE_NAME"`
	Env               string `mapstructure:"ENV"`
	JWTSecret         string `mapstructure:"JWT_SECRET"`
	LogLevel          string `mapstructure:"LOG_LEVEL"`
	MaxRequestsPerMin int    `mapstructure:"MAX_REQUESTS_PER_MIN"`

	// Redis configuration.
	RedisAddr      string `mapstructure:"REDIS_ADDR"`
	RedisPassword  string `mapstructure:"REDIS_PASSWORD"`
	RedisSessionDB int    `mapstructure:"REDIS_SESSION_DB"`
	RedisQueueDB   int    `mapstructure:"REDIS_QUEUE_DB"`
	RedisEventsDB  int    `mapstructure:"REDIS_EVENTS_DB"`

	ImpersonationTTLMinutes int `mapstructure:"IMPERSONATION_TTL_MINUTES"`

	// Scheduling.
	OrgTimezone      string `mapstructure:"ORG_TIMEZONE"`
	GridMinutes      int    `mapstructure:"GRID_MINUTES"`
	DisplayStartHour int    `mapstructure:"DISPLAY_START_HOUR"`
	DisplayEndHour   int    `mapstructure:"DISPLAY_END_HOUR"`

	// Triage oracle.
	GeminiAPIKey         string  `mapstructure:"GEMINI_API_KEY"`
	TriageModel          string  `mapstructure:"TRIAGE_MODEL"`
	TriageTimeoutSeconds int     `mapstructure:"TRIAGE_TIMEOUT_SECONDS"`
	UrgencyThreshold     float64 `mapstructure:"URGENCY_THRESHOLD"`
}

var AppConfig Config

func LoadConfig() {
	// Look for a config file named "config.yaml" in the current and "config" directory.
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(".")
	viper.AddConfigPath("./config")
	// Automatically use environment variables where available.
	viper.AutomaticEnv()

	SetDefaults()

	if err := viper.ReadInConfig(); err != nil {
		log.Println("No config file found, using environment variables only")
	}

	if err := viper.Unmarshal(&AppConfig); err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
}

// SetDefaults registers the default value of every key.
func SetDefaults() {
	viper.SetDefault("APP_PORT", "8080")
	viper.SetDefault("ENV", "development")
	viper.SetDefault("LOG_LEVEL", "info")
	viper.SetDefault("MAX_REQUESTS_PER_MIN", 100)
	viper.SetDefault("DATABASE_URL", "mongodb://localhost:27017")
	viper.SetDefault("DATABASE_NAME", "propcare")
	viper.SetDefault("JWT_SECRET", "")
	viper.SetDefault("REDIS_ADDR", "localhost:6379")
	viper.SetDefault("REDIS_PASSWORD", "")
	viper.SetDefault("REDIS_SESSION_DB", 0)
	viper.SetDefault("REDIS_QUEUE_DB", 1)
	viper.SetDefault("REDIS_EVENTS_DB", 2)
	viper.SetDefault("IMPERSONATION_TTL_MINUTES", 120)
	viper.SetDefault("ORG_TIMEZONE", "America/New_York")
	viper.SetDefault("GRID_MINUTES", 30)
	viper.SetDefault("DISPLAY_START_HOUR", 6)
	viper.SetDefault("DISPLAY_END_HOUR", 22)
	viper.SetDefault("GEMINI_API_KEY", "")
	viper.SetDefault("TRIAGE_MODEL", "models/gemini-1.5-flash")
	viper.SetDefault("TRIAGE_TIMEOUT_SECONDS", 8)
	viper.SetDefault("URGENCY_THRESHOLD", 0.75)
}

func GetEnv() string {
	return AppConfig.Env
}

func IsProduction() bool {
	return GetEnv() == "production"
}
