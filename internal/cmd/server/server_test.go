package server

import (
	"flag"
	"testing"
)

func TestParseConfigDefaults(t *testing.T) {
	fs := flag.NewFlagSet("server", flag.ContinueOnError)
	cfg, err := ParseConfig(fs, nil)
	if err != nil {
		t.Fatalf("ParseConfig() error = %v", err)
	}
	if cfg.HTTPAddr != "localhost:8080" {
		t.Fatalf("HTTPAddr = %q, want %q", cfg.HTTPAddr, "localhost:8080")
	}
	if cfg.CatalogDB != "insight-hunter.db" {
		t.Fatalf("CatalogDB = %q, want %q", cfg.CatalogDB, "insight-hunter.db")
	}
	if cfg.RedisURL != "" {
		t.Fatalf("RedisURL = %q, want empty", cfg.RedisURL)
	}
	if !cfg.SeedOnStart {
		t.Fatal("SeedOnStart = false, want true")
	}
}

func TestParseConfigOverrideHTTPAddr(t *testing.T) {
	fs := flag.NewFlagSet("server", flag.ContinueOnError)
	cfg, err := ParseConfig(fs, []string{"-http-addr", "127.0.0.1:9002"})
	if err != nil {
		t.Fatalf("ParseConfig() error = %v", err)
	}
	if cfg.HTTPAddr != "127.0.0.1:9002" {
		t.Fatalf("HTTPAddr = %q, want %q", cfg.HTTPAddr, "127.0.0.1:9002")
	}
}

func TestParseConfigOverrideStores(t *testing.T) {
	fs := flag.NewFlagSet("server", flag.ContinueOnError)
	cfg, err := ParseConfig(fs, []string{
		"-redis-url", "redis://localhost:6379/1",
		"-catalog-db", ":memory:",
		"-cache-db", "cache.db",
		"-seed-on-start=false",
	})
	if err != nil {
		t.Fatalf("ParseConfig() error = %v", err)
	}
	if cfg.RedisURL != "redis://localhost:6379/1" {
		t.Fatalf("RedisURL = %q", cfg.RedisURL)
	}
	if cfg.CatalogDB != ":memory:" {
		t.Fatalf("CatalogDB = %q", cfg.CatalogDB)
	}
	if cfg.CacheDB != "cache.db" {
		t.Fatalf("CacheDB = %q", cfg.CacheDB)
	}
	if cfg.SeedOnStart {
		t.Fatal("SeedOnStart = true, want false")
	}
}
