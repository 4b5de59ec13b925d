// Package main implements the entry point for the TKDojang challenge
// server, which generates and grades Taekwondo vocabulary phrase
// challenges over HTTP.
package main

import (
	"context"
	"flag"
	"log"

	"github.com/craigmharris/TKDojang-sub007/internal/config"
	"github.com/craigmharris/TKDojang-sub007/internal/platform/logger"
)

func main() {
	migrate := flag.Bool("migrate", false, "apply database migrations and exit")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	appLogger, err := logger.Setup(cfg.Server)
	if err != nil {
		log.Fatalf("Failed to set up logger: %v", err)
	}

	if *migrate {
		if err := runMigrations(cfg, appLogger); err != nil {
			log.Fatalf("Migrations failed: %v", err)
		}
		return
	}

	app, err := newApplication(cfg, appLogger)
	if err != nil {
		log.Fatalf("Failed to initialize application: %v", err)
	}

	if err := app.startHTTPServer(context.Background(), app.setupRouter()); err != nil {
		log.Fatalf("Server error: %v", err)
	}
}
