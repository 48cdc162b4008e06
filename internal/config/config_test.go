package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// chdir changes the working directory for the test, restoring it on cleanup.
// Equivalent to t.Chdir, which requires Go 1.24+.
func chdir(t *testing.T, dir string) {
	t.Helper()
	old, err := os.Getwd()
	if err != nil {
		t.Fatal(err)
	}
	if err := os.Chdir(dir); err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() {
		if err := os.Chdir(old); err != nil {
			t.Fatal(err)
		}
	})
}

func TestApplyDefaults(t *testing.T) {
	cfg := Config{}
	cfg.ApplyDefaults()

	if cfg.Database.Driver != "redis" {
		t.Errorf("driver default = %q, want redis", cfg.Database.Driver)
	}
	if cfg.Database.KeyPrefix != "tablescout:" {
		t.Errorf("key prefix default = %q", cfg.Database.KeyPrefix)
	}
	if cfg.Assistant.Model != "gpt-3.5-turbo" {
		t.Errorf("model default = %q", cfg.Assistant.Model)
	}
	if cfg.Search.DefaultLimit != 10 {
		t.Errorf("default limit = %d, want 10", cfg.Search.DefaultLimit)
	}
	if cfg.Search.CacheTTLSec != 300 {
		t.Errorf("cache ttl = %d, want 300", cfg.Search.CacheTTLSec)
	}
	if cfg.Search.CacheCapacity != 100 {
		t.Errorf("cache capacity = %d, want 100", cfg.Search.CacheCapacity)
	}
	if cfg.Search.StoreTimeoutSec != 5 {
		t.Errorf("store timeout = %d, want 5", cfg.Search.StoreTimeoutSec)
	}
}

func TestValidate(t *testing.T) {
	base := func() Config {
		c := Config{}
		c.HTTP.Port = 8080
		c.Database.Driver = "redis"
		c.Database.Addrs = []string{"localhost:6379"}
		return c
	}

	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{"valid redis", func(c *Config) {}, ""},
		{"valid memory", func(c *Config) {
			c.Database.Driver = "memory"
			c.Database.Addrs = nil
			c.Database.SeedFile = "config/catalog.yaml"
		}, ""},
		{"bad port", func(c *Config) { c.HTTP.Port = 0 }, "http.port"},
		{"redis without addrs", func(c *Config) { c.Database.Addrs = nil }, "database.addrs"},
		{"memory without seed", func(c *Config) {
			c.Database.Driver = "memory"
		}, "database.seed_file"},
		{"unknown driver", func(c *Config) { c.Database.Driver = "postgres" }, "database.driver"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := base()
			tt.mutate(&cfg)
			err := cfg.Validate()
			if tt.wantErr == "" {
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
				return
			}
			if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
				t.Fatalf("error = %v, want mention of %s", err, tt.wantErr)
			}
		})
	}
}

func TestExpandEnvVars(t *testing.T) {
	t.Setenv("TEST_REDIS_ADDR", "redis-prod:6379")
	t.Setenv("TEST_UNSET_VAR", "")

	in := []byte("addr: ${TEST_REDIS_ADDR}\nkey: ${TEST_UNSET_VAR:-fallback}\nempty: ${TEST_UNSET_VAR}\n")
	got := string(expandEnvVars(in))
	want := "addr: redis-prod:6379\nkey: fallback\nempty: \n"
	if got != want {
		t.Errorf("expandEnvVars = %q, want %q", got, want)
	}
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	if err := os.Mkdir(filepath.Join(dir, "config"), 0o755); err != nil {
		t.Fatal(err)
	}
	content := `
http:
  port: 9090
database:
  driver: memory
  seed_file: config/catalog.yaml
assistant:
  api_key: ${TEST_API_KEY:-}
`
	if err := os.WriteFile(filepath.Join(dir, "config", "test.yaml"), []byte(content), 0o600); err != nil {
		t.Fatal(err)
	}
	chdir(t, dir)

	cfg, err := Load("test")
	if err != nil {
		t.Fatal(err)
	}
	if cfg.HTTP.Port != 9090 {
		t.Errorf("port = %d, want 9090", cfg.HTTP.Port)
	}
	if cfg.Database.Driver != "memory" {
		t.Errorf("driver = %q", cfg.Database.Driver)
	}
	if cfg.Assistant.APIKey != "" {
		t.Errorf("api key should expand to empty, got %q", cfg.Assistant.APIKey)
	}
	// Defaults fill in around explicit values.
	if cfg.Search.DefaultLimit != 10 {
		t.Errorf("default limit = %d", cfg.Search.DefaultLimit)
	}
}

func TestLoad_MissingFile(t *testing.T) {
	chdir(t, t.TempDir())
	if _, err := Load("nonexistent"); err == nil {
		t.Fatal("expected error for missing config file")
	}
}

func TestGetEnv(t *testing.T) {
	t.Setenv("ENV", "")
	if got := GetEnv(); got != "local" {
		t.Errorf("GetEnv default = %q, want local", got)
	}
	t.Setenv("ENV", "prod")
	if got := GetEnv(); got != "prod" {
		t.Errorf("GetEnv = %q, want prod", got)
	}
}
