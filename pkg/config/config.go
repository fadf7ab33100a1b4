package config

import (
	"errors"
	"io/fs"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const (
	EnvDevelopment = "development"
	EnvProduction  = "production"
)

// Record source drivers.
const (
	SourceHTTP     = "http"
	SourcePostgres = "postgres"
)

// Inquiry store drivers.
const (
	InquiryStoreMemory   = "memory"
	InquiryStorePostgres = "postgres"
)

type Config struct {
	Env       string
	Port      int
	APIPrefix string

	Database DatabaseConfig
	Redis    RedisConfig
	CORS     CORSConfig
	Log      LogConfig
	Source   SourceConfig
	Catalog  CatalogConfig
	Sessions SessionConfig
	Inquiry  InquiryConfig
	Export   ExportConfig
}

type DatabaseConfig struct {
	Host         string
	Port         int
	User         string
	Password     string
	Name         string
	SSLMode      string
	MaxOpenConns int
	MaxIdleConns int
}

type RedisConfig struct {
	Host     string
	Port     int
	Password string
	DB       int
}

type CORSConfig struct {
	AllowedOrigins []string
}

type LogConfig struct {
	Level  string
	Format string
}

// SourceConfig selects where the photographer record set is loaded from.
type SourceConfig struct {
	Driver  string
	BaseURL string
	Timeout time.Duration
}

// CatalogConfig tunes the in-memory catalog snapshot.
type CatalogConfig struct {
	ItemsPerPage    int
	CacheEnabled    bool
	CacheTTL        time.Duration
	RefreshCron     string
	RefreshDebounce time.Duration
}

// SessionConfig governs server-side browse sessions.
type SessionConfig struct {
	TTL time.Duration
}

// InquiryConfig controls inquiry persistence and delivery.
type InquiryConfig struct {
	Store         string
	DeliveryDelay time.Duration
	Workers       int
	MaxRetries    int
}

// ExportConfig controls catalog exports.
type ExportConfig struct {
	Title string
}

func Load() (*Config, error) {
	_ = godotenv.Load()

	v := viper.New()
	v.SetConfigFile(".env")
	v.SetConfigType("env")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) && !errors.Is(err, fs.ErrNotExist) {
			return nil, err
		}
	}

	cfg := &Config{}

	cfg.Env = v.GetString("ENV")
	cfg.Port = v.GetInt("PORT")
	cfg.APIPrefix = v.GetString("API_PREFIX")

	cfg.Database = DatabaseConfig{
		Host:         v.GetString("DB_HOST"),
		Port:         v.GetInt("DB_PORT"),
		User:         v.GetString("DB_USER"),
		Password:     v.GetString("DB_PASSWORD"),
		Name:         v.GetString("DB_NAME"),
		SSLMode:      v.GetString("DB_SSL_MODE"),
		MaxOpenConns: v.GetInt("DB_MAX_OPEN_CONNS"),
		MaxIdleConns: v.GetInt("DB_MAX_IDLE_CONNS"),
	}

	cfg.Redis = RedisConfig{
		Host:     v.GetString("REDIS_HOST"),
		Port:     v.GetInt("REDIS_PORT"),
		Password: v.GetString("REDIS_PASSWORD"),
		DB:       v.GetInt("REDIS_DB"),
	}

	cfg.CORS = CORSConfig{AllowedOrigins: splitAndTrim(v.GetString("ALLOWED_ORIGINS"))}

	cfg.Log = LogConfig{
		Level:  v.GetString("LOG_LEVEL"),
		Format: v.GetString("LOG_FORMAT"),
	}

	cfg.Source = SourceConfig{
		Driver:  strings.ToLower(v.GetString("SOURCE_DRIVER")),
		BaseURL: strings.TrimRight(v.GetString("SOURCE_BASE_URL"), "/"),
		Timeout: parseDuration(v.GetString("SOURCE_TIMEOUT"), 10*time.Second),
	}

	itemsPerPage := v.GetInt("CATALOG_ITEMS_PER_PAGE")
	if itemsPerPage <= 0 {
		itemsPerPage = 12
	}
	cfg.Catalog = CatalogConfig{
		ItemsPerPage:    itemsPerPage,
		CacheEnabled:    v.GetBool("CATALOG_CACHE_ENABLED"),
		CacheTTL:        parseDuration(v.GetString("CATALOG_CACHE_TTL"), 15*time.Minute),
		RefreshCron:     v.GetString("CATALOG_REFRESH_CRON"),
		RefreshDebounce: parseDuration(v.GetString("CATALOG_REFRESH_DEBOUNCE"), 300*time.Millisecond),
	}

	cfg.Sessions = SessionConfig{
		TTL: parseDuration(v.GetString("SESSION_TTL"), 2*time.Hour),
	}

	cfg.Inquiry = InquiryConfig{
		Store:         strings.ToLower(v.GetString("INQUIRY_STORE")),
		DeliveryDelay: parseDuration(v.GetString("INQUIRY_DELIVERY_DELAY"), 2*time.Second),
		Workers:       v.GetInt("INQUIRY_WORKERS"),
		MaxRetries:    v.GetInt("INQUIRY_MAX_RETRIES"),
	}

	cfg.Export = ExportConfig{
		Title: v.GetString("EXPORT_TITLE"),
	}

	return cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("ENV", EnvDevelopment)
	v.SetDefault("PORT", 8080)
	v.SetDefault("API_PREFIX", "/api/v1")

	v.SetDefault("DB_HOST", "localhost")
	v.SetDefault("DB_PORT", 5432)
	v.SetDefault("DB_USER", "postgres")
	v.SetDefault("DB_PASSWORD", "postgres")
	v.SetDefault("DB_NAME", "photographers")
	v.SetDefault("DB_SSL_MODE", "disable")
	v.SetDefault("DB_MAX_OPEN_CONNS", 10)
	v.SetDefault("DB_MAX_IDLE_CONNS", 5)

	v.SetDefault("REDIS_HOST", "localhost")
	v.SetDefault("REDIS_PORT", 6379)
	v.SetDefault("REDIS_PASSWORD", "")
	v.SetDefault("REDIS_DB", 0)

	v.SetDefault("ALLOWED_ORIGINS", "")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("LOG_FORMAT", "json")

	v.SetDefault("SOURCE_DRIVER", SourceHTTP)
	v.SetDefault("SOURCE_BASE_URL", "http://localhost:3001")
	v.SetDefault("SOURCE_TIMEOUT", "10s")

	v.SetDefault("CATALOG_ITEMS_PER_PAGE", 12)
	v.SetDefault("CATALOG_CACHE_ENABLED", false)
	v.SetDefault("CATALOG_CACHE_TTL", "15m")
	v.SetDefault("CATALOG_REFRESH_CRON", "@every 10m")
	v.SetDefault("CATALOG_REFRESH_DEBOUNCE", "300ms")

	v.SetDefault("SESSION_TTL", "2h")

	v.SetDefault("INQUIRY_STORE", InquiryStoreMemory)
	v.SetDefault("INQUIRY_DELIVERY_DELAY", "2s")
	v.SetDefault("INQUIRY_WORKERS", 2)
	v.SetDefault("INQUIRY_MAX_RETRIES", 3)

	v.SetDefault("EXPORT_TITLE", "Photographer Directory")
}

func parseDuration(raw string, fallback time.Duration) time.Duration {
	if raw == "" {
		return fallback
	}

	d, err := time.ParseDuration(raw)
	if err != nil {
		return fallback
	}

	return d
}

func splitAndTrim(raw string) []string {
	if raw == "" {
		return nil
	}

	parts := strings.Split(raw, ",")
	result := make([]string, 0, len(parts))
	for _, part := range parts {
		trimmed := strings.TrimSpace(part)
		if trimmed != "" {
			result = append(result, trimmed)
		}
	}

	return result
}
