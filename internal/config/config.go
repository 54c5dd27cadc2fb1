package config

import (
	"log"
	"strings"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	Server    ServerConfig
	Store     StoreConfig
	Database  DatabaseConfig
	Redis     RedisConfig
	RateLimit RateLimitConfig
	Notify    NotifyConfig
	JWT       JWTConfig
	Auth      AuthConfig
	CORS      CORSConfig
}

type ServerConfig struct {
	Port     string
	Env      string
	LogLevel string
}

// StoreConfig selects the document store backend.
type StoreConfig struct {
	Driver   string // mongo, postgres or memory
	URL      string // DATABASE_URL, used by the mongo driver
	Name     string // DATABASE_NAME
	Timeout  time.Duration
	Migrate  bool
	SeedFile string
}

// DatabaseConfig is used by the postgres document backend.
type DatabaseConfig struct {
	Host     string
	Port     string
	User     string
	Password string
	Database string
	Schema   string
}

type RedisConfig struct {
	Host     string
	Port     string
	Password string
	DB       int
}

type RateLimitConfig struct {
	Enabled  bool
	Requests int
	Window   time.Duration
}

type NotifyConfig struct {
	Broker string // memory or redis
}

type JWTConfig struct {
	Secret       string
	AccessExpiry int // in minutes
}

type AuthConfig struct {
	ProtectCatalog bool
}

type CORSConfig struct {
	AllowedOrigins []string
}

// IsDevelopment reports whether the server runs with development defaults.
func (c *Config) IsDevelopment() bool {
	return c.Server.Env != "production"
}

func Load() *Config {
	viper.SetConfigName(".env")
	viper.SetConfigType("env")
	viper.AddConfigPath(".")
	viper.AutomaticEnv()

	setDefaults()

	if err := viper.ReadInConfig(); err != nil {
		log.Printf("Warning: Could not read config file: %v", err)
	}

	return fromViper()
}

func setDefaults() {
	viper.SetDefault("SERVER_PORT", "8000")
	viper.SetDefault("SERVER_ENV", "development")
	viper.SetDefault("LOG_LEVEL", "info")
	viper.SetDefault("STORE_DRIVER", "mongo")
	viper.SetDefault("DATABASE_NAME", "delicassy")
	viper.SetDefault("STORE_TIMEOUT", "5s")
	viper.SetDefault("STORE_MIGRATE", true)
	viper.SetDefault("DB_HOST", "localhost")
	viper.SetDefault("DB_PORT", "5432")
	viper.SetDefault("DB_SCHEMA", "public")
	viper.SetDefault("REDIS_HOST", "localhost")
	viper.SetDefault("REDIS_PORT", "6379")
	viper.SetDefault("REDIS_DB", 0)
	viper.SetDefault("RATE_LIMIT_ENABLED", false)
	viper.SetDefault("RATE_LIMIT_REQUESTS", 120)
	viper.SetDefault("RATE_LIMIT_WINDOW", "1m")
	viper.SetDefault("NOTIFY_BROKER", "memory")
	viper.SetDefault("JWT_ACCESS_EXPIRY", 60)
	viper.SetDefault("AUTH_PROTECT_CATALOG", false)
	viper.SetDefault("CORS_ALLOWED_ORIGINS", "*")
}

func fromViper() *Config {
	return &Config{
		Server: ServerConfig{
			Port:     viper.GetString("SERVER_PORT"),
			Env:      viper.GetString("SERVER_ENV"),
			LogLevel: viper.GetString("LOG_LEVEL"),
		},
		Store: StoreConfig{
			Driver:   strings.ToLower(viper.GetString("STORE_DRIVER")),
			URL:      viper.GetString("DATABASE_URL"),
			Name:     viper.GetString("DATABASE_NAME"),
			Timeout:  viper.GetDuration("STORE_TIMEOUT"),
			Migrate:  viper.GetBool("STORE_MIGRATE"),
			SeedFile: viper.GetString("STORE_SEED_FILE"),
		},
		Database: DatabaseConfig{
			Host:     viper.GetString("DB_HOST"),
			Port:     viper.GetString("DB_PORT"),
			User:     viper.GetString("DB_USER"),
			Password: viper.GetString("DB_PASSWORD"),
			Database: viper.GetString("DB_DATABASE"),
			Schema:   viper.GetString("DB_SCHEMA"),
		},
		Redis: RedisConfig{
			Host:     viper.GetString("REDIS_HOST"),
			Port:     viper.GetString("REDIS_PORT"),
			Password: viper.GetString("REDIS_PASSWORD"),
			DB:       viper.GetInt("REDIS_DB"),
		},
		RateLimit: RateLimitConfig{
			Enabled:  viper.GetBool("RATE_LIMIT_ENABLED"),
			Requests: viper.GetInt("RATE_LIMIT_REQUESTS"),
			Window:   viper.GetDuration("RATE_LIMIT_WINDOW"),
		},
		Notify: NotifyConfig{
			Broker: strings.ToLower(viper.GetString("NOTIFY_BROKER")),
		},
		JWT: JWTConfig{
			Secret:       viper.GetString("JWT_SECRET"),
			AccessExpiry: viper.GetInt("JWT_ACCESS_EXPIRY"),
		},
		Auth: AuthConfig{
			ProtectCatalog: viper.GetBool("AUTH_PROTECT_CATALOG"),
		},
		CORS: CORSConfig{
			AllowedOrigins: splitList(viper.GetString("CORS_ALLOWED_ORIGINS")),
		},
	}
}

func splitList(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
