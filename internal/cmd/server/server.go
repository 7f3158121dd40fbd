// Package server boots the Insight Hunter web service.
package server

import (
	"context"
	"flag"
	"fmt"
	"log"

	"github.com/insight-hunter/insight-hunter/internal/auth/token"
	"github.com/insight-hunter/insight-hunter/internal/catalog"
	"github.com/insight-hunter/insight-hunter/internal/catalog/seed"
	catalogsqlite "github.com/insight-hunter/insight-hunter/internal/catalog/sqlite"
	"github.com/insight-hunter/insight-hunter/internal/onboarding"
	"github.com/insight-hunter/insight-hunter/internal/platform/config"
	"github.com/insight-hunter/insight-hunter/internal/platform/otel"
	"github.com/insight-hunter/insight-hunter/internal/rendercache"
	cachesqlite "github.com/insight-hunter/insight-hunter/internal/rendercache/sqlite"
	"github.com/insight-hunter/insight-hunter/internal/session"
	"github.com/insight-hunter/insight-hunter/internal/web"
	module "github.com/insight-hunter/insight-hunter/internal/web/module"
)

// Config holds the server command configuration. Environment variables
// provide the defaults; flags override them.
type Config struct {
	HTTPAddr    string `env:"INSIGHT_HUNTER_HTTP_ADDR" envDefault:"localhost:8080"`
	RedisURL    string `env:"INSIGHT_HUNTER_REDIS_URL"`
	CatalogDB   string `env:"INSIGHT_HUNTER_CATALOG_DB" envDefault:"insight-hunter.db"`
	CacheDB     string `env:"INSIGHT_HUNTER_CACHE_DB"`
	TokenSecret string `env:"INSIGHT_HUNTER_TOKEN_SECRET" envDefault:"insight-hunter-dev-secret"`
	SeedOnStart bool   `env:"INSIGHT_HUNTER_SEED_ON_START" envDefault:"true"`
}

// ParseConfig reads the environment and parses flag overrides into a Config.
func ParseConfig(fs *flag.FlagSet, args []string) (Config, error) {
	var cfg Config
	if err := config.ParseEnv(&cfg); err != nil {
		return Config{}, err
	}

	fs.StringVar(&cfg.HTTPAddr, "http-addr", cfg.HTTPAddr, "HTTP listen address")
	fs.StringVar(&cfg.RedisURL, "redis-url", cfg.RedisURL, "Redis URL for sessions; empty uses the in-memory store")
	fs.StringVar(&cfg.CatalogDB, "catalog-db", cfg.CatalogDB, "SQLite path for the step catalog")
	fs.StringVar(&cfg.CacheDB, "cache-db", cfg.CacheDB, "SQLite path for the render cache; empty uses the in-memory store")
	fs.BoolVar(&cfg.SeedOnStart, "seed-on-start", cfg.SeedOnStart, "seed canonical step content at startup")
	if err := fs.Parse(args); err != nil {
		return Config{}, err
	}

	return cfg, nil
}

// Run wires storage, the sequencer and the web server, then serves until
// ctx is cancelled.
func Run(ctx context.Context, cfg Config) error {
	shutdownTracing, err := otel.Setup(ctx, "insight-hunter-web")
	if err != nil {
		return fmt.Errorf("init tracing: %w", err)
	}
	defer func() {
		if err := shutdownTracing(context.Background()); err != nil {
			log.Printf("shutdown tracing: %v", err)
		}
	}()

	sessions, err := openSessions(ctx, cfg)
	if err != nil {
		return err
	}

	steps, err := catalogsqlite.Open(ctx, cfg.CatalogDB)
	if err != nil {
		return fmt.Errorf("open step catalog: %w", err)
	}
	defer func() { _ = steps.Close() }()

	if cfg.SeedOnStart {
		if err := seedCatalog(ctx, steps); err != nil {
			return err
		}
	}

	seq := onboarding.DefaultSequence()
	chain, err := steps.NextChain(ctx)
	if err != nil {
		return fmt.Errorf("read step chain: %w", err)
	}
	if err := onboarding.VerifyChain(seq, chain); err != nil {
		return fmt.Errorf("step catalog diverges from the canonical sequence: %w", err)
	}

	cacheStore, closeCache, err := openCacheStore(ctx, cfg)
	if err != nil {
		return err
	}
	defer closeCache()

	signer, err := token.NewSigner(cfg.TokenSecret)
	if err != nil {
		return fmt.Errorf("init token signer: %w", err)
	}

	server, err := web.NewServer(ctx, web.Config{
		HTTPAddr: cfg.HTTPAddr,
		Dependencies: module.Dependencies{
			Sessions:  sessions,
			Sequencer: onboarding.NewSequencer(seq, sessions),
			Catalog:   steps,
			Cache:     rendercache.New(cacheStore, rendercache.DefaultFreshness),
			Tokens:    signer,
		},
	})
	if err != nil {
		return fmt.Errorf("init web server: %w", err)
	}
	defer server.Close()

	log.Printf("serving http addr=%s", cfg.HTTPAddr)
	if err := server.ListenAndServe(ctx); err != nil {
		return fmt.Errorf("serve web: %w", err)
	}
	return nil
}

func openSessions(ctx context.Context, cfg Config) (session.Store, error) {
	if cfg.RedisURL == "" {
		log.Printf("sessions: using in-memory store")
		return session.NewMemoryStore(), nil
	}
	store, err := session.NewRedisStore(ctx, cfg.RedisURL)
	if err != nil {
		return nil, fmt.Errorf("connect session redis: %w", err)
	}
	return store, nil
}

func openCacheStore(ctx context.Context, cfg Config) (rendercache.Store, func(), error) {
	if cfg.CacheDB == "" {
		return rendercache.NewMemoryStore(), func() {}, nil
	}
	store, err := cachesqlite.Open(ctx, cfg.CacheDB)
	if err != nil {
		return nil, nil, fmt.Errorf("open render cache: %w", err)
	}
	return store, func() { _ = store.Close() }, nil
}

func seedCatalog(ctx context.Context, steps *catalogsqlite.Store) error {
	canonical, err := seed.Steps()
	if err != nil {
		return fmt.Errorf("load seed steps: %w", err)
	}
	if err := steps.SeedSteps(ctx, canonical); err != nil {
		return fmt.Errorf("seed step catalog: %w", err)
	}
	return nil
}

var _ catalog.Catalog = (*catalogsqlite.Store)(nil)
