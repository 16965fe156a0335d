// cliparse/cliparse_test.go
package cliparse

import (
	"net/netip"
	"os"
	"path/filepath"
	"reflect"
	"testing"
	"time"
)

// setRequired sets the secrets every test needs.
func setRequired(t *testing.T) {
	t.Helper()
	t.Setenv("IP_HASH_SALT", "test-salt")
	t.Setenv("ADMIN_PASSWORD", "test-password")
}

func TestParseFlags_Defaults(t *testing.T) {
	setRequired(t)

	cfg, err := ParseFlags([]string{})
	if err != nil {
		t.Fatal(err)
	}

	if cfg.Port != 3318 {
		t.Errorf("expected port 3318, got %d", cfg.Port)
	}
	if cfg.DatabaseType != "sqlite" {
		t.Errorf("expected sqlite, got %s", cfg.DatabaseType)
	}
	if cfg.DatabaseURL != "data/voting.db" {
		t.Errorf("expected data/voting.db, got %s", cfg.DatabaseURL)
	}
	if cfg.AdminSessionTTL != 24*time.Hour {
		t.Errorf("expected 24h session TTL, got %s", cfg.AdminSessionTTL)
	}
	if cfg.ImmichURL != "http://immich:2283" {
		t.Errorf("unexpected immich url %s", cfg.ImmichURL)
	}
	if cfg.RateLimitPerSecond != 1 || cfg.RateLimitBurst != 5 {
		t.Errorf("unexpected rate limit %v/%d", cfg.RateLimitPerSecond, cfg.RateLimitBurst)
	}
	if cfg.SecureCookies {
		t.Error("secure cookies should default to false")
	}
}

func TestParseFlags_EnvVars(t *testing.T) {
	setRequired(t)
	t.Setenv("PORT", "9000")
	t.Setenv("DATABASE_TYPE", "postgres")
	t.Setenv("DATABASE_URL", "postgres://test")
	t.Setenv("ADMIN_SESSION_TTL", "2h")
	t.Setenv("SECURE_COOKIES", "true")
	t.Setenv("LOG_FORMAT", "json")

	cfg, err := ParseFlags([]string{})
	if err != nil {
		t.Fatal(err)
	}

	if cfg.Port != 9000 {
		t.Errorf("expected port 9000, got %d", cfg.Port)
	}
	if cfg.DatabaseType != "postgres" || cfg.DatabaseURL != "postgres://test" {
		t.Errorf("unexpected database config %s %s", cfg.DatabaseType, cfg.DatabaseURL)
	}
	if cfg.AdminSessionTTL != 2*time.Hour {
		t.Errorf("expected 2h, got %s", cfg.AdminSessionTTL)
	}
	if !cfg.SecureCookies {
		t.Error("expected secure cookies")
	}
	if cfg.LogFormat != "json" {
		t.Errorf("expected json log format, got %s", cfg.LogFormat)
	}
}

func TestParseFlags_CLIOverridesEnv(t *testing.T) {
	setRequired(t)
	t.Setenv("PORT", "9000")

	cfg, err := ParseFlags([]string{"-p", "8080", "-d", "test.db", "-ip-salt", "s1", "-admin-password", "pw"})
	if err != nil {
		t.Fatal(err)
	}

	// CLI should override env
	if cfg.Port != 8080 {
		t.Errorf("CLI should override env: expected 8080, got %d", cfg.Port)
	}
	if cfg.IPHashSalt != "s1" {
		t.Errorf("CLI should override env: expected s1, got %s", cfg.IPHashSalt)
	}
	if cfg.AdminPassword != "pw" {
		t.Errorf("CLI should override env: expected pw, got %s", cfg.AdminPassword)
	}
}

func TestParseFlags_DotEnv(t *testing.T) {
	dir := t.TempDir()
	content := "IP_HASH_SALT=from-file\nADMIN_PASSWORD=file-pw\nPORT=7000\n"
	if err := os.WriteFile(filepath.Join(dir, ".env"), []byte(content), 0o600); err != nil {
		t.Fatal(err)
	}
	t.Chdir(dir)

	// Real environment wins over the file
	t.Setenv("PORT", "7100")
	// Registered so the values loaded from the file are removed afterwards
	t.Setenv("IP_HASH_SALT", "")
	t.Setenv("ADMIN_PASSWORD", "")
	os.Unsetenv("IP_HASH_SALT")
	os.Unsetenv("ADMIN_PASSWORD")

	cfg, err := ParseFlags([]string{})
	if err != nil {
		t.Fatal(err)
	}

	if cfg.IPHashSalt != "from-file" || cfg.AdminPassword != "file-pw" {
		t.Errorf("expected secrets from .env, got %q %q", cfg.IPHashSalt, cfg.AdminPassword)
	}
	if cfg.Port != 7100 {
		t.Errorf("environment should override .env: expected 7100, got %d", cfg.Port)
	}
}

func TestParseFlags_Validation(t *testing.T) {
	tests := []struct {
		name string
		env  map[string]string
		args []string
	}{
		{"missing salt", map[string]string{"IP_HASH_SALT": ""}, nil},
		{"missing admin password", map[string]string{"ADMIN_PASSWORD": ""}, nil},
		{"bad database type", map[string]string{"DATABASE_TYPE": "mysql"}, nil},
		{"bad port", nil, []string{"-p", "70000"}},
		{"zero burst", map[string]string{"RATE_LIMIT_BURST": "0"}, nil},
		{"unparseable ttl", map[string]string{"ADMIN_SESSION_TTL": "soon"}, nil},
		{"unknown flag", nil, []string{"-nope"}},
		{"bad trusted proxy", map[string]string{"TRUSTED_PROXIES": "10.0.0.1,proxy.local"}, nil},
		{"bad trusted proxy flag", nil, []string{"-trusted-proxies", "10.0.0.0/33"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			setRequired(t)
			for k, v := range tt.env {
				t.Setenv(k, v)
			}

			if _, err := ParseFlags(tt.args); err == nil {
				t.Error("expected an error")
			}
		})
	}
}

func TestParseFlags_ProxiesAndOrigins(t *testing.T) {
	setRequired(t)
	t.Setenv("TRUSTED_PROXIES", "10.0.0.0/8,192.168.1.7")
	t.Setenv("CORS_ORIGINS", "https://photos.example.com")

	cfg, err := ParseFlags([]string{})
	if err != nil {
		t.Fatal(err)
	}

	want := []netip.Prefix{
		netip.MustParsePrefix("10.0.0.0/8"),
		netip.MustParsePrefix("192.168.1.7/32"),
	}
	if got := cfg.TrustedProxyPrefixes(); !reflect.DeepEqual(got, want) {
		t.Errorf("expected prefixes %v, got %v", want, got)
	}
	if !reflect.DeepEqual(cfg.CORSOrigins, []string{"https://photos.example.com"}) {
		t.Errorf("unexpected origins %v", cfg.CORSOrigins)
	}

	// Flags replace the environment lists
	cfg, err = ParseFlags([]string{"-trusted-proxies", " ::1 , 172.16.5.0/12", "-cors-origins", "http://localhost:5173,https://a.example"})
	if err != nil {
		t.Fatal(err)
	}
	want = []netip.Prefix{
		netip.MustParsePrefix("::1/128"),
		netip.MustParsePrefix("172.16.0.0/12"),
	}
	if got := cfg.TrustedProxyPrefixes(); !reflect.DeepEqual(got, want) {
		t.Errorf("expected prefixes %v, got %v", want, got)
	}
	if len(cfg.CORSOrigins) != 2 || cfg.CORSOrigins[1] != "https://a.example" {
		t.Errorf("unexpected origins %v", cfg.CORSOrigins)
	}
}

func TestParseFlags_NoProxiesByDefault(t *testing.T) {
	setRequired(t)

	cfg, err := ParseFlags([]string{})
	if err != nil {
		t.Fatal(err)
	}
	if len(cfg.TrustedProxyPrefixes()) != 0 || len(cfg.CORSOrigins) != 0 {
		t.Errorf("expected no proxies or origins, got %v / %v", cfg.TrustedProxies, cfg.CORSOrigins)
	}
}
