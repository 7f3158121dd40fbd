// Package seed loads the canonical onboarding step content into the catalog.
package seed

import (
	"context"
	"flag"
	"fmt"
	"io"

	catalogseed "github.com/insight-hunter/insight-hunter/internal/catalog/seed"
	catalogsqlite "github.com/insight-hunter/insight-hunter/internal/catalog/sqlite"
	"github.com/insight-hunter/insight-hunter/internal/onboarding"
	"github.com/insight-hunter/insight-hunter/internal/platform/config"
)

// Config holds seed command configuration.
type Config struct {
	CatalogDB string `env:"INSIGHT_HUNTER_CATALOG_DB" envDefault:"insight-hunter.db"`
	Verify    bool
}

// ParseConfig reads the environment and parses flag overrides into a Config.
func ParseConfig(fs *flag.FlagSet, args []string) (Config, error) {
	var cfg Config
	if err := config.ParseEnv(&cfg); err != nil {
		return Config{}, err
	}
	cfg.Verify = true

	fs.StringVar(&cfg.CatalogDB, "catalog-db", cfg.CatalogDB, "SQLite path for the step catalog")
	fs.BoolVar(&cfg.Verify, "verify", cfg.Verify, "verify the seeded chain against the canonical sequence")
	if err := fs.Parse(args); err != nil {
		return Config{}, err
	}

	return cfg, nil
}

// Run seeds the step catalog and optionally verifies the chain.
func Run(ctx context.Context, cfg Config, out io.Writer) error {
	if out == nil {
		out = io.Discard
	}

	steps, err := catalogseed.Steps()
	if err != nil {
		return fmt.Errorf("load seed steps: %w", err)
	}

	store, err := catalogsqlite.Open(ctx, cfg.CatalogDB)
	if err != nil {
		return fmt.Errorf("open step catalog: %w", err)
	}
	defer func() { _ = store.Close() }()

	if err := store.SeedSteps(ctx, steps); err != nil {
		return fmt.Errorf("seed step catalog: %w", err)
	}
	fmt.Fprintf(out, "seeded %d steps into %s\n", len(steps), cfg.CatalogDB)

	if cfg.Verify {
		chain, err := store.NextChain(ctx)
		if err != nil {
			return fmt.Errorf("read step chain: %w", err)
		}
		if err := onboarding.VerifyChain(onboarding.DefaultSequence(), chain); err != nil {
			return fmt.Errorf("seeded chain diverges from the canonical sequence: %w", err)
		}
		fmt.Fprintln(out, "chain verified against the canonical sequence")
	}
	return nil
}
