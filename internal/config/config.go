package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"golang.org/x/text/language"
	"gopkg.in/yaml.v3"
)

// Favorites backends.
const (
	BackendFile     = "file"
	BackendMemory   = "memory"
	BackendRedis    = "redis"
	BackendPostgres = "postgres"
	BackendSQLite   = "sqlite"
)

// Config holds all configuration for the movie discovery explorer.
type Config struct {
	TMDB      TMDBConfig      `yaml:"tmdb"`
	Favorites FavoritesConfig `yaml:"favorites"`
	DB        DBConfig        `yaml:"db"`
	SQLite    SQLiteConfig    `yaml:"sqlite"`
	Redis     RedisConfig     `yaml:"redis"`
	UI        UIConfig        `yaml:"ui"`
	RateLimit RateLimitConfig `yaml:"rate_limit"`
	Log       LogConfig       `yaml:"log"`
	Port      string          `yaml:"port"`
}

// TMDBConfig holds TMDB API configuration.
type TMDBConfig struct {
	APIKey       string        `yaml:"api_key"`
	BaseURL      string        `yaml:"base_url"`
	ImageBaseURL string        `yaml:"image_base_url"`
	Language     string        `yaml:"language"`
	Region       string        `yaml:"region"`
	Timeout      time.Duration `yaml:"timeout"`
}

// FavoritesConfig selects where the favorites list is persisted.
type FavoritesConfig struct {
	Backend string `yaml:"backend"`
	Dir     string `yaml:"dir"`
	Key     string `yaml:"key"`
}

// DBConfig holds PostgreSQL configuration.
type DBConfig struct {
	Host        string `yaml:"host"`
	Port        int    `yaml:"port"`
	User        string `yaml:"user"`
	Password    string `yaml:"password"`
	DBName      string `yaml:"name"`
	SSLMode     string `yaml:"sslmode"`
	SSLRootCert string `yaml:"sslrootcert"`
}

// DSN returns the PostgreSQL connection string.
func (d DBConfig) DSN() string {
	dsn := fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		d.Host, d.Port, d.User, d.Password, d.DBName, d.SSLMode,
	)
	if d.SSLRootCert != "" {
		dsn += fmt.Sprintf(" sslrootcert=%s", d.SSLRootCert)
	}
	return dsn
}

// SQLiteConfig holds the SQLite database location.
type SQLiteConfig struct {
	Path string `yaml:"path"`
}

// RedisConfig holds Redis configuration.
type RedisConfig struct {
	Addr     string `yaml:"addr"`
	Password string `yaml:"password"`
	DB       int    `yaml:"db"`
}

// UIConfig holds view-state timings.
type UIConfig struct {
	RotationInterval time.Duration `yaml:"rotation_interval"`
	SearchDebounce   time.Duration `yaml:"search_debounce"`
}

// RateLimitConfig bounds listing requests per client IP.
type RateLimitConfig struct {
	Max           int `yaml:"max"`
	WindowSeconds int `yaml:"window_seconds"`
}

// LogConfig holds logger configuration.
type LogConfig struct {
	Level       string `yaml:"level"`
	Environment string `yaml:"environment"`
	File        string `yaml:"file"`
}

// Development reports whether the console encoder should be used.
func (l LogConfig) Development() bool {
	return l.Environment == "" || l.Environment == "development"
}

// Default returns the configuration used when nothing overrides it.
func Default() *Config {
	return &Config{
		TMDB: TMDBConfig{
			BaseURL:      "https://api.themoviedb.org/3",
			ImageBaseURL: "https://image.tmdb.org/t/p",
			Language:     "ru-RU",
			Timeout:      15 * time.Second,
		},
		Favorites: FavoritesConfig{
			Backend: BackendFile,
			Dir:     "data",
			Key:     "favorites",
		},
		DB: DBConfig{
			Host:     "localhost",
			Port:     5432,
			User:     "postgres",
			Password: "postgres",
			DBName:   "movie_discovery",
			SSLMode:  "disable",
		},
		SQLite: SQLiteConfig{Path: "data/favorites.db"},
		Redis: RedisConfig{
			Addr: "127.0.0.1:6379",
		},
		UI: UIConfig{
			RotationInterval: 5 * time.Second,
		},
		RateLimit: RateLimitConfig{
			Max:           120,
			WindowSeconds: 60,
		},
		Log: LogConfig{
			Level:       "info",
			Environment: "development",
		},
		Port: "8080",
	}
}

// Load builds the configuration from defaults, an optional YAML file and
// the environment, in that order of precedence (environment wins).
func Load(path string) (*Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config file: %w", err)
		}
	}

	// Load .env file if it exists (ignore error if not found)
	_ = godotenv.Load()

	cfg.applyEnv()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) applyEnv() {
	c.TMDB.APIKey = getEnv("TMDB_API_KEY", c.TMDB.APIKey)
	c.TMDB.BaseURL = getEnv("TMDB_BASE_URL", c.TMDB.BaseURL)
	c.TMDB.ImageBaseURL = getEnv("TMDB_IMAGE_BASE_URL", c.TMDB.ImageBaseURL)
	c.TMDB.Language = getEnv("TMDB_LANGUAGE", c.TMDB.Language)
	c.TMDB.Region = getEnv("TMDB_REGION", c.TMDB.Region)
	c.TMDB.Timeout = getEnvDuration("TMDB_TIMEOUT", c.TMDB.Timeout)

	c.Favorites.Backend = getEnv("FAVORITES_BACKEND", c.Favorites.Backend)
	c.Favorites.Dir = getEnv("FAVORITES_DIR", c.Favorites.Dir)
	c.Favorites.Key = getEnv("FAVORITES_KEY", c.Favorites.Key)

	c.DB.Host = getEnv("DB_HOST", c.DB.Host)
	c.DB.Port = getEnvInt("DB_PORT", c.DB.Port)
	c.DB.User = getEnv("DB_USER", c.DB.User)
	c.DB.Password = getEnv("DB_PASSWORD", c.DB.Password)
	c.DB.DBName = getEnv("DB_NAME", c.DB.DBName)
	c.DB.SSLMode = getEnv("DB_SSLMODE", c.DB.SSLMode)
	c.DB.SSLRootCert = getEnv("DB_SSLROOTCERT", c.DB.SSLRootCert)

	c.SQLite.Path = getEnv("SQLITE_PATH", c.SQLite.Path)

	c.Redis.Addr = getEnv("REDIS_ADDR", c.Redis.Addr)
	c.Redis.Password = getEnv("REDIS_PASSWORD", c.Redis.Password)
	c.Redis.DB = getEnvInt("REDIS_DB", c.Redis.DB)

	c.UI.RotationInterval = getEnvDuration("ROTATION_INTERVAL", c.UI.RotationInterval)
	c.UI.SearchDebounce = getEnvDuration("SEARCH_DEBOUNCE", c.UI.SearchDebounce)

	c.RateLimit.Max = getEnvInt("RATE_LIMIT_MAX", c.RateLimit.Max)
	c.RateLimit.WindowSeconds = getEnvInt("RATE_LIMIT_WINDOW_SECONDS", c.RateLimit.WindowSeconds)

	c.Log.Level = getEnv("LOG_LEVEL", c.Log.Level)
	c.Log.Environment = getEnv("ENVIRONMENT", c.Log.Environment)
	c.Log.File = getEnv("LOG_FILE", c.Log.File)

	c.Port = getEnv("SERVER_PORT", c.Port)
}

// Validate checks required values and fills in derived ones.
func (c *Config) Validate() error {
	if c.TMDB.APIKey == "" {
		return fmt.Errorf("TMDB_API_KEY is required")
	}

	tag, err := language.Parse(c.TMDB.Language)
	if err != nil {
		return fmt.Errorf("invalid TMDB language %q: %w", c.TMDB.Language, err)
	}
	c.TMDB.Language = tag.String()

	if c.TMDB.Region == "" {
		if region, conf := tag.Region(); conf != language.No {
			c.TMDB.Region = region.String()
		}
	}
	c.TMDB.Region = strings.ToUpper(c.TMDB.Region)

	switch c.Favorites.Backend {
	case BackendFile, BackendMemory, BackendRedis, BackendPostgres, BackendSQLite:
	default:
		return fmt.Errorf("unknown favorites backend %q", c.Favorites.Backend)
	}
	if c.Favorites.Key == "" {
		return fmt.Errorf("favorites key must not be empty")
	}

	if c.UI.RotationInterval <= 0 {
		return fmt.Errorf("rotation interval must be positive")
	}
	return nil
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	v, err := strconv.Atoi(os.Getenv(key))
	if err != nil {
		return fallback
	}
	return v
}

func getEnvDuration(key string, fallback time.Duration) time.Duration {
	v, err := time.ParseDuration(os.Getenv(key))
	if err != nil {
		return fallback
	}
	return v
}
