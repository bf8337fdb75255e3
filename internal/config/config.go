package config

import (
	"errors"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// ErrMissingStoreURL is returned when neither MONGO_URL nor MONGODB_URI is set.
var ErrMissingStoreURL = errors.New("MONGO_URL is required")

// Config holds application configuration
type Config struct {
	Server    ServerConfig
	MongoDB   MongoDBConfig
	PhoneAPI  PhoneAPIConfig
	Redis     RedisConfig
	RateLimit RateLimitConfig
}

type ServerConfig struct {
	Port         string
	Host         string
	Environment  string
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
}

type MongoDBConfig struct {
	URI                string
	Database           string
	Timeout            time.Duration
	ContactsCollection string
	TeamsCollection    string
}

// PhoneAPIConfig configures the timezone lookup. APIKey may be empty; the
// lookup fails when first used.
type PhoneAPIConfig struct {
	URL     string
	APIKey  string
	Timeout time.Duration
}

type RedisConfig struct {
	Host     string
	Port     string
	Password string
	DB       int
}

type RateLimitConfig struct {
	Enabled       bool
	UseRedis      bool
	RPS           float64
	Burst         int
	WindowSeconds int
}

// LoadConfig loads configuration from environment variables and an optional .env file
func LoadConfig() (*Config, error) {
	_ = godotenv.Load()

	v := viper.New()
	v.AutomaticEnv()

	v.SetDefault("SERVER_PORT", "3000")
	v.SetDefault("SERVER_HOST", "0.0.0.0")
	v.SetDefault("SERVER_ENVIRONMENT", "development")
	v.SetDefault("MONGODB_DATABASE", "SimulacroApiRest1DB")
	v.SetDefault("MONGODB_TIMEOUT", 10)
	v.SetDefault("CONTACTS_COLLECTION", "contacts")
	v.SetDefault("TEAMS_COLLECTION", "teams")
	v.SetDefault("PHONE_API_URL", "https://api.api-ninjas.com/v1/validatephone")
	v.SetDefault("PHONE_API_TIMEOUT", 10)
	v.SetDefault("REDIS_PORT", "6379")
	v.SetDefault("RATE_LIMIT_ENABLED", false)
	v.SetDefault("RATE_LIMIT_USE_REDIS", false)
	v.SetDefault("RATE_LIMIT_RPS", 10.0)
	v.SetDefault("RATE_LIMIT_BURST", 20)
	v.SetDefault("RATE_LIMIT_WINDOW_SECONDS", 1)

	uri := v.GetString("MONGO_URL")
	if uri == "" {
		uri = v.GetString("MONGODB_URI")
	}
	if uri == "" {
		return nil, ErrMissingStoreURL
	}

	cfg := &Config{
		Server: ServerConfig{
			Port:         v.GetString("SERVER_PORT"),
			Host:         v.GetString("SERVER_HOST"),
			Environment:  v.GetString("SERVER_ENVIRONMENT"),
			ReadTimeout:  30 * time.Second,
			WriteTimeout: 30 * time.Second,
		},
		MongoDB: MongoDBConfig{
			URI:                uri,
			Database:           v.GetString("MONGODB_DATABASE"),
			Timeout:            time.Duration(v.GetInt("MONGODB_TIMEOUT")) * time.Second,
			ContactsCollection: v.GetString("CONTACTS_COLLECTION"),
			TeamsCollection:    v.GetString("TEAMS_COLLECTION"),
		},
		PhoneAPI: PhoneAPIConfig{
			URL:     v.GetString("PHONE_API_URL"),
			APIKey:  v.GetString("API_KEY"),
			Timeout: time.Duration(v.GetInt("PHONE_API_TIMEOUT")) * time.Second,
		},
		Redis: RedisConfig{
			Host:     v.GetString("REDIS_HOST"),
			Port:     v.GetString("REDIS_PORT"),
			Password: v.GetString("REDIS_PASSWORD"),
			DB:       v.GetInt("REDIS_DB"),
		},
		RateLimit: RateLimitConfig{
			Enabled:       v.GetBool("RATE_LIMIT_ENABLED"),
			UseRedis:      v.GetBool("RATE_LIMIT_USE_REDIS"),
			RPS:           v.GetFloat64("RATE_LIMIT_RPS"),
			Burst:         v.GetInt("RATE_LIMIT_BURST"),
			WindowSeconds: v.GetInt("RATE_LIMIT_WINDOW_SECONDS"),
		},
	}
	return cfg, nil
}

// Addr is the listen address of the HTTP server.
func (c *Config) Addr() string {
	return c.Server.Host + ":" + c.Server.Port
}
