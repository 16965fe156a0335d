package cliparse

import (
	"errors"
	"flag"
	"fmt"
	"net/netip"
	"os"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

type Config struct {
	Port         int    `env:"PORT" envDefault:"3318"`
	DatabaseType string `env:"DATABASE_TYPE" envDefault:"sqlite"`
	DatabaseURL  string `env:"DATABASE_URL" envDefault:"data/voting.db"`

	IPHashSalt      string        `env:"IP_HASH_SALT"`
	AdminPassword   string        `env:"ADMIN_PASSWORD"`
	AdminSessionTTL time.Duration `env:"ADMIN_SESSION_TTL" envDefault:"24h"`
	SecureCookies   bool          `env:"SECURE_COOKIES" envDefault:"false"`

	ImmichURL    string `env:"IMMICH_URL" envDefault:"http://immich:2283"`
	ImmichAPIKey string `env:"IMMICH_API_KEY"`

	LogLevel  string `env:"LOG_LEVEL" envDefault:"info"`
	LogFormat string `env:"LOG_FORMAT" envDefault:"text"`

	// Per client IP, applied to vote submission and admin login
	RateLimitPerSecond float64 `env:"RATE_LIMIT_PER_SECOND" envDefault:"1"`
	RateLimitBurst     int     `env:"RATE_LIMIT_BURST" envDefault:"5"`

	// Reverse proxies (IPs or CIDRs) whose forwarding headers are believed
	TrustedProxies []string `env:"TRUSTED_PROXIES" envSeparator:","`
	// Browser origins allowed to call the API with cookies
	CORSOrigins []string `env:"CORS_ORIGINS" envSeparator:","`
}

// ParseFlags builds the configuration. Values come from, in increasing
// precedence: defaults, a .env file in the working directory, the
// environment, and command-line flags.
func ParseFlags(args []string) (Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return Config{}, fmt.Errorf("failed to load .env: %w", err)
	}

	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("invalid environment: %w", err)
	}

	fs := flag.NewFlagSet("photos-voting", flag.ContinueOnError)

	// Network config (can be CLI args or env)
	fs.IntVar(&cfg.Port, "p", cfg.Port, "Server port")
	fs.StringVar(&cfg.DatabaseURL, "d", cfg.DatabaseURL, "Database URL or SQLite path")
	fs.StringVar(&cfg.DatabaseType, "t", cfg.DatabaseType, "Database type (sqlite or postgres)")
	fs.StringVar(&cfg.ImmichURL, "immich-url", cfg.ImmichURL, "Immich server URL")
	fs.BoolVar(&cfg.SecureCookies, "secure-cookies", cfg.SecureCookies, "Set the Secure flag on cookies")
	fs.StringVar(&cfg.LogLevel, "log-level", cfg.LogLevel, "Log level (debug, info, warn, error)")
	fs.StringVar(&cfg.LogFormat, "log-format", cfg.LogFormat, "Log format (text or json)")
	fs.Func("trusted-proxies", "Comma-separated trusted proxy IPs or CIDRs", func(v string) error {
		cfg.TrustedProxies = splitList(v)
		return nil
	})
	fs.Func("cors-origins", "Comma-separated origins allowed for CORS", func(v string) error {
		cfg.CORSOrigins = splitList(v)
		return nil
	})

	// Secrets (prefer env variables, but allow CLI for dev)
	fs.StringVar(&cfg.IPHashSalt, "ip-salt", cfg.IPHashSalt, "IP hash salt (prefer env)")
	fs.StringVar(&cfg.AdminPassword, "admin-password", cfg.AdminPassword, "Bootstrap admin password (prefer env)")
	fs.StringVar(&cfg.ImmichAPIKey, "immich-api-key", cfg.ImmichAPIKey, "Immich API key (prefer env)")

	if err := fs.Parse(args); err != nil {
		return Config{}, err
	}

	if err := cfg.validate(); err != nil {
		return Config{}, err
	}

	return cfg, nil
}

func (c Config) validate() error {
	if c.Port <= 0 || c.Port > 65535 {
		return fmt.Errorf("invalid port %d", c.Port)
	}
	if c.DatabaseType != "sqlite" && c.DatabaseType != "postgres" {
		return fmt.Errorf("DATABASE_TYPE must be sqlite or postgres, got %q", c.DatabaseType)
	}
	if c.DatabaseURL == "" {
		return errors.New("database URL required (use -d or DATABASE_URL env)")
	}

	// Secrets - MUST be provided
	if c.IPHashSalt == "" {
		return errors.New("IP_HASH_SALT required")
	}
	if c.AdminPassword == "" {
		return errors.New("ADMIN_PASSWORD required")
	}

	if c.AdminSessionTTL <= 0 {
		return errors.New("ADMIN_SESSION_TTL must be positive")
	}
	if c.RateLimitPerSecond <= 0 || c.RateLimitBurst < 1 {
		return errors.New("rate limit must allow at least one request")
	}
	for _, entry := range c.TrustedProxies {
		if _, err := parseProxy(entry); err != nil {
			return fmt.Errorf("invalid TRUSTED_PROXIES entry %q: %w", entry, err)
		}
	}

	return nil
}

// TrustedProxyPrefixes returns TRUSTED_PROXIES as prefixes. A bare address
// becomes a single-host prefix. Blank entries are skipped; ParseFlags has
// already rejected malformed ones.
func (c Config) TrustedProxyPrefixes() []netip.Prefix {
	var prefixes []netip.Prefix
	for _, entry := range c.TrustedProxies {
		if p, err := parseProxy(entry); err == nil && p.IsValid() {
			prefixes = append(prefixes, p)
		}
	}
	return prefixes
}

func parseProxy(entry string) (netip.Prefix, error) {
	entry = strings.TrimSpace(entry)
	if entry == "" {
		return netip.Prefix{}, nil
	}
	if strings.Contains(entry, "/") {
		p, err := netip.ParsePrefix(entry)
		if err != nil {
			return netip.Prefix{}, err
		}
		return p.Masked(), nil
	}
	addr, err := netip.ParseAddr(entry)
	if err != nil {
		return netip.Prefix{}, err
	}
	addr = addr.Unmap()
	return netip.PrefixFrom(addr, addr.BitLen()), nil
}

func splitList(v string) []string {
	var out []string
	for _, item := range strings.Split(v, ",") {
		if item = strings.TrimSpace(item); item != "" {
			out = append(out, item)
		}
	}
	return out
}
