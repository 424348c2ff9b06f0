package main

// Run the digest worker:
//   go run ./cmd/digest
//
// Sends the daily follow-up digest and the weekly application summary on a
// schedule. Runs until interrupted.

import (
	"context"
	"log"
	"os/signal"
	"syscall"

	"autojobber-backend/internal/bootstrap"
	"autojobber-backend/internal/scheduler"
	"autojobber-backend/internal/shared/config"
)

func main() {
	cfg := config.Load()
	if !cfg.DigestEnabled {
		log.Printf("digest worker disabled, set DIGEST_ENABLED=true to run")
		return
	}

	app, err := bootstrap.Build(cfg)
	if err != nil {
		log.Fatalf("bootstrap error: %v", err)
	}
	defer app.Close()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	runner := &scheduler.Runner{Digester: app.Digester}
	runner.Start(ctx)
}
