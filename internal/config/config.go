package config

import (
	"errors"
	"io/fs"
	"log/slog"
	"net"
	"os"
	"strconv"
	"strings"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/joho/godotenv"
)

type Config struct {
	Host string
	Port string

	// Filesystem layout
	ContentDir  string
	TemplateDir string
	StaticDir   string
	ConfigTOML  string

	// Content loading
	ContentWorkers int
	WatchContent   bool
	WatchDebounce  time.Duration

	// Views
	IndexPageSize int
	ListPageSize  int
	ReadSpeed     int

	// Auth for /refresh/posts/; empty disables the check
	RefreshAPIKey string

	LogLevel slog.Level

	Site Site
}

// Site holds the values shown in templates and feeds.
type Site struct {
	Title       string
	URL         string
	RSSCount    int
	RSSLength   int
	Priority    string
	Keywords    string
	Description string
	Author      string
}

// Addr is the listen address.
func (c Config) Addr() string {
	return net.JoinHostPort(c.Host, c.Port)
}

// LoadDotenv loads .env.local then .env into the environment. Variables that
// are already set win. Missing files are ignored.
func LoadDotenv(files ...string) error {
	if len(files) == 0 {
		files = []string{".env.local", ".env"}
	}
	for _, f := range files {
		if err := godotenv.Load(f); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return err
		}
	}
	return nil
}

func Load() Config {
	cfg := Config{
		Host: envOr("SERVER_HOST", "127.0.0.1"),
		Port: envOr("SERVER_PORT", "4000"),

		ContentDir:  envOr("CONTENT_DIR", "post"),
		TemplateDir: envOr("TEMPLATE_DIR", "templates"),
		StaticDir:   envOr("STATIC_DIR", "static"),
		ConfigTOML:  envOr("CONFIG_TOML", "config.toml"),

		ContentWorkers: envInt("CONTENT_WORKERS", 4),
		WatchContent:   envBool("WATCH_CONTENT", false),
		WatchDebounce:  envDuration("WATCH_DEBOUNCE", 500*time.Millisecond),

		IndexPageSize: envInt("INDEX_PAGE_SIZE", 10),
		ListPageSize:  envInt("LIST_PAGE_SIZE", 20),
		ReadSpeed:     envInt("READ_SPEED", 200),

		RefreshAPIKey: os.Getenv("REFRESH_API_KEY"),

		LogLevel: envLevel("LOG_LEVEL", slog.LevelInfo),

		Site: Site{
			Title:       envOr("SITE_TITLE", "Default Title"),
			URL:         strings.TrimRight(envOr("SITE_URL", "http://localhost:4000"), "/"),
			RSSCount:    envInt("RSS_COUNT", 10),
			RSSLength:   envInt("RSS_LENGTH", 200),
			Priority:    envOr("PRIORITY", "0.5"),
			Keywords:    os.Getenv("KEYWORDS"),
			Description: os.Getenv("DESCRIPTION"),
			Author:      os.Getenv("AUTHOR"),
		},
	}

	if cfg.ContentWorkers <= 0 {
		cfg.ContentWorkers = 4
	}
	if cfg.ReadSpeed <= 0 {
		cfg.ReadSpeed = 200
	}
	if cfg.WatchDebounce <= 0 {
		cfg.WatchDebounce = 500 * time.Millisecond
	}
	if cfg.Site.RSSLength <= 0 {
		cfg.Site.RSSLength = 200
	}

	return cfg
}

func (c Config) Validate() error {
	return validation.ValidateStruct(&c,
		validation.Field(&c.Port, validation.Required),
		validation.Field(&c.ContentDir, validation.Required),
		validation.Field(&c.TemplateDir, validation.Required),
		validation.Field(&c.IndexPageSize,
			validation.Required.Error("INDEX_PAGE_SIZE must be positive"),
			validation.Min(1).Error("INDEX_PAGE_SIZE must be positive")),
		validation.Field(&c.ListPageSize,
			validation.Required.Error("LIST_PAGE_SIZE must be positive"),
			validation.Min(1).Error("LIST_PAGE_SIZE must be positive")),
	)
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}

func envBool(key string, fallback bool) bool {
	if v := os.Getenv(key); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			return b
		}
	}
	return fallback
}

func envDuration(key string, fallback time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return fallback
}

func envLevel(key string, fallback slog.Level) slog.Level {
	if v := os.Getenv(key); v != "" {
		var lvl slog.Level
		if err := lvl.UnmarshalText([]byte(v)); err == nil {
			return lvl
		}
	}
	return fallback
}
