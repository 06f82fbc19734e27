package config

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/netip"
	"time"

	"github.com/go-sql-driver/mysql"
	"github.com/sethvargo/go-envconfig"
)

const defaultJWTSecret = "dev-secret-change-in-production"

var ErrInsecureSecret = errors.New("JWT_SECRET must be set in production environment")

type Config struct {
	Port           string        `env:"PORT, default=8080"`
	Env            string        `env:"ENV, default=development"`
	LogLevel       string        `env:"LOG_LEVEL, default=info"`
	LogPretty      bool          `env:"LOG_PRETTY, default=false"`
	RequestTimeout time.Duration `env:"REQUEST_TIMEOUT, default=10s"`

	Database  DatabaseConfig
	JWT       JWTConfig
	RateLimit RateLimitConfig
}

type DatabaseConfig struct {
	Host            string        `env:"DB_HOST, default=127.0.0.1"`
	Port            string        `env:"DB_PORT, default=3306"`
	User            string        `env:"DB_USER, default=root"`
	Password        string        `env:"DB_PASSWORD"`
	Name            string        `env:"DB_NAME, default=realtime_feedback"`
	MaxOpenConns    int           `env:"DB_MAX_OPEN_CONNS, default=25"`
	MaxIdleConns    int           `env:"DB_MAX_IDLE_CONNS, default=5"`
	ConnMaxLifetime time.Duration `env:"DB_CONN_MAX_LIFETIME, default=5m"`
	ConnectTimeout  time.Duration `env:"DB_CONNECT_TIMEOUT, default=5s"`
}

type JWTConfig struct {
	Secret    string        `env:"JWT_SECRET, default=dev-secret-change-in-production"`
	Algorithm string        `env:"JWT_ALGORITHM, default=HS256"`
	Expiry    time.Duration `env:"JWT_EXPIRY, default=30m"`
}

// RateLimitConfig applies to the unauthenticated register/login routes.
type RateLimitConfig struct {
	RPS   float64 `env:"AUTH_RATE_LIMIT_RPS, default=5"`
	Burst int     `env:"AUTH_RATE_LIMIT_BURST, default=10"`

	// TrustedProxies lists the CIDRs whose X-Forwarded-For is believed.
	// Empty means forwarding headers are ignored.
	TrustedProxies []string `env:"TRUSTED_PROXY_CIDRS"`
}

// DSN renders the MySQL data source name. Timestamps are parsed into
// time.Time in UTC.
func (d DatabaseConfig) DSN() string {
	cfg := mysql.NewConfig()
	cfg.User = d.User
	cfg.Passwd = d.Password
	cfg.Net = "tcp"
	cfg.Addr = net.JoinHostPort(d.Host, d.Port)
	cfg.DBName = d.Name
	cfg.ParseTime = true
	cfg.Loc = time.UTC
	cfg.Timeout = d.ConnectTimeout
	return cfg.FormatDSN()
}

// Load reads configuration from the process environment.
func Load(ctx context.Context) (*Config, error) {
	return LoadWith(ctx, envconfig.OsLookuper())
}

// LoadWith reads configuration through the given lookuper.
func LoadWith(ctx context.Context, l envconfig.Lookuper) (*Config, error) {
	var cfg Config
	if err := envconfig.ProcessWith(ctx, &envconfig.Config{
		Target:   &cfg,
		Lookuper: l,
	}); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}

	if cfg.Env == "production" && cfg.JWT.Secret == defaultJWTSecret {
		return nil, ErrInsecureSecret
	}

	for _, cidr := range cfg.RateLimit.TrustedProxies {
		if _, err := netip.ParsePrefix(cidr); err != nil {
			return nil, fmt.Errorf("config: TRUSTED_PROXY_CIDRS: %w", err)
		}
	}

	return &cfg, nil
}
