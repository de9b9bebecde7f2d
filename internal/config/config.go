package config

import (
	"context"
	"fmt"
	"net"
	"net/url"
	"strconv"
	"time"

	"github.com/sethvargo/go-envconfig"
)

type Config struct {
	Port         string `env:"PORT, default=3000"`
	TemplatesDir string `env:"TEMPLATES_DIR, default=./web/templates"`
	StaticDir    string `env:"STATIC_DIR, default=./web/static"`
	LogFile      string `env:"LOG_FILE, default=./memberportal.log"`
	LogLevel     string `env:"LOG_LEVEL, default=info"`
	LogPretty    bool   `env:"LOG_PRETTY, default=false"`

	// CORSOrigins is a comma separated allow list for cross-origin requests.
	CORSOrigins string `env:"CORS_ALLOW_ORIGINS, default=*"`

	DB      DBConfig
	Session SessionConfig
	Admin   AdminConfig
}

type DBConfig struct {
	// Driver is "sqlite" (default, file database) or "pgx" (PostgreSQL).
	Driver   string `env:"DB_DRIVER, default=sqlite"`
	URL      string `env:"DB_DSN"`
	Host     string `env:"DB_HOST, default=localhost"`
	Port     int    `env:"DB_PORT, default=5432"`
	User     string `env:"DB_USER"`
	Password string `env:"DB_PASSWORD"`
	Database string `env:"DB_DATABASE"`
	SSLMode  string `env:"DB_SSLMODE, default=disable"`
}

type SessionConfig struct {
	Secret        string        `env:"SESSION_SECRET, default=dev-secret"`
	CookieSecure  bool          `env:"COOKIE_SECURE, default=false"`
	PruneInterval time.Duration `env:"SESSION_PRUNE_INTERVAL, default=15m"`
}

// AdminConfig bootstraps an Admin account on startup when both fields are set.
type AdminConfig struct {
	Email    string `env:"ADMIN_EMAIL"`
	Password string `env:"ADMIN_PASSWORD"`
}

// DSN returns DB_DSN when set. Otherwise PostgreSQL gets a URL assembled from
// the discrete DB_* variables and SQLite falls back to a file in the working dir.
func (c DBConfig) DSN() string {
	if c.URL != "" {
		return c.URL
	}
	if c.Driver != "pgx" {
		return "memberportal.db"
	}
	u := url.URL{
		Scheme:   "postgres",
		User:     url.UserPassword(c.User, c.Password),
		Host:     net.JoinHostPort(c.Host, strconv.Itoa(c.Port)),
		Path:     "/" + c.Database,
		RawQuery: "sslmode=" + url.QueryEscape(c.SSLMode),
	}
	return u.String()
}

func Load(ctx context.Context) (Config, error) {
	return LoadFrom(ctx, envconfig.OsLookuper())
}

func LoadFrom(ctx context.Context, l envconfig.Lookuper) (Config, error) {
	var cfg Config
	if err := envconfig.ProcessWith(ctx, &envconfig.Config{Target: &cfg, Lookuper: l}); err != nil {
		return Config{}, fmt.Errorf("config: %w", err)
	}
	if cfg.DB.Driver != "sqlite" && cfg.DB.Driver != "pgx" {
		return Config{}, fmt.Errorf("config: unsupported DB_DRIVER %q", cfg.DB.Driver)
	}
	return cfg, nil
}
