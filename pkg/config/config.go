package config

import (
	"errors"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const (
	EnvDevelopment = "development"
	EnvProduction  = "production"
)

type Config struct {
	Env       string
	Port      int
	APIPrefix string

	Database DatabaseConfig
	Redis    RedisConfig
	JWT      JWTConfig
	CORS     CORSConfig
	Log      LogConfig
	Catalog  CatalogConfig
	Ratings  RatingsConfig
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

type JWTConfig struct {
	Secret            string
	Expiration        time.Duration
	RefreshExpiration time.Duration
}

type CORSConfig struct {
	AllowedOrigins []string
}

type LogConfig struct {
	Level  string
	Format string
}

// CatalogConfig tunes catalog search caching.
type CatalogConfig struct {
	CacheEnabled bool
	CacheTTL     time.Duration
}

// RatingsConfig tunes the in-process instructor rating cache.
type RatingsConfig struct {
	CacheTTL time.Duration
}

// TermRange bounds one academic term. Dates use YYYY-MM-DD.
type TermRange struct {
	Start string
	End   string
}

// ExportConfig governs calendar export output.
type ExportConfig struct {
	CalendarName string
	DefaultTerm  string
	TermDates    map[string]TermRange
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
		if !errors.As(err, &notFound) {
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

	cfg.JWT = JWTConfig{
		Secret:            v.GetString("JWT_SECRET"),
		Expiration:        parseDuration(v.GetString("JWT_EXPIRATION"), 24*time.Hour),
		RefreshExpiration: parseDuration(v.GetString("REFRESH_TOKEN_EXPIRATION"), 7*24*time.Hour),
	}

	cfg.CORS = CORSConfig{AllowedOrigins: splitAndTrim(v.GetString("ALLOWED_ORIGINS"))}

	cfg.Log = LogConfig{
		Level:  v.GetString("LOG_LEVEL"),
		Format: v.GetString("LOG_FORMAT"),
	}

	cfg.Catalog = CatalogConfig{
		CacheEnabled: v.GetBool("CATALOG_CACHE_ENABLED"),
		CacheTTL:     parseDuration(v.GetString("CATALOG_CACHE_TTL"), 10*time.Minute),
	}

	cfg.Ratings = RatingsConfig{
		CacheTTL: parseDuration(v.GetString("RATINGS_CACHE_TTL"), time.Hour),
	}

	cfg.Export = ExportConfig{
		CalendarName: v.GetString("EXPORT_CALENDAR_NAME"),
		DefaultTerm:  v.GetString("EXPORT_DEFAULT_TERM"),
		TermDates:    parseTermDates(v.GetString("EXPORT_TERM_DATES")),
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
	v.SetDefault("DB_NAME", "scarlet_planner")
	v.SetDefault("DB_SSL_MODE", "disable")
	v.SetDefault("DB_MAX_OPEN_CONNS", 10)
	v.SetDefault("DB_MAX_IDLE_CONNS", 5)

	v.SetDefault("REDIS_HOST", "localhost")
	v.SetDefault("REDIS_PORT", 6379)
	v.SetDefault("REDIS_PASSWORD", "")
	v.SetDefault("REDIS_DB", 0)

	v.SetDefault("JWT_SECRET", "dev_secret")
	v.SetDefault("JWT_EXPIRATION", "24h")
	v.SetDefault("REFRESH_TOKEN_EXPIRATION", "168h")

	v.SetDefault("ALLOWED_ORIGINS", "")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("LOG_FORMAT", "json")

	v.SetDefault("CATALOG_CACHE_ENABLED", false)
	v.SetDefault("CATALOG_CACHE_TTL", "10m")
	v.SetDefault("RATINGS_CACHE_TTL", "1h")

	v.SetDefault("EXPORT_CALENDAR_NAME", "Course Schedule")
	v.SetDefault("EXPORT_DEFAULT_TERM", "Fall 2025")
	v.SetDefault("EXPORT_TERM_DATES", "Fall 2025=2025-09-02..2025-12-10;Spring 2026=2026-01-20..2026-04-29;Summer 2026=2026-05-19..2026-08-07")
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

// parseTermDates reads entries of the form
// "Fall 2025=2025-09-02..2025-12-10" separated by semicolons.
// Malformed entries are skipped.
func parseTermDates(raw string) map[string]TermRange {
	out := map[string]TermRange{}
	for _, entry := range strings.Split(raw, ";") {
		entry = strings.TrimSpace(entry)
		if entry == "" {
			continue
		}
		name, dates, ok := strings.Cut(entry, "=")
		if !ok {
			continue
		}
		start, end, ok := strings.Cut(dates, "..")
		if !ok {
			continue
		}
		out[strings.TrimSpace(name)] = TermRange{
			Start: strings.TrimSpace(start),
			End:   strings.TrimSpace(end),
		}
	}
	return out
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
