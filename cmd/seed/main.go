// Package main seeds the step catalog with the canonical onboarding content.
package main

import (
	"context"
	"flag"
	"log"
	"os"
	"os/signal"
	"syscall"

	seedcmd "github.com/insight-hunter/insight-hunter/internal/cmd/seed"
	"github.com/insight-hunter/insight-hunter/internal/platform/config"
)

func main() {
	if err := config.LoadDotEnv(""); err != nil {
		log.Fatalf("load .env: %v", err)
	}
	cfg, err := seedcmd.ParseConfig(flag.CommandLine, os.Args[1:])
	if err != nil {
		log.Fatalf("parse flags: %v", err)
	}
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	if err := seedcmd.Run(ctx, cfg, os.Stdout); err != nil {
		log.Fatalf("seed failed: %v", err)
	}
}
