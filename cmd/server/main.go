package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"payout_dashboard/internal/adapters/archive"
	"payout_dashboard/internal/config"
	"payout_dashboard/internal/handlers"
	"payout_dashboard/internal/ingest"
	"payout_dashboard/internal/repository"
	"payout_dashboard/internal/repository/audit"
	"payout_dashboard/internal/repository/database"
	"payout_dashboard/internal/server"
)

func main() {
	runCtx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	setupCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	cfg := config.Init(setupCtx)
	fmt.Println("✅ Connections established")

	if err := cfg.CheckConnections(setupCtx); err != nil {
		log.Fatalf("❌ Connection check failed: %v", err)
	}
	fmt.Println("🟢 Connections OK")

	payoutsRepo := database.NewPayoutsRepo(cfg.Postgres)

	pipeline := ingest.New(payoutsRepo)
	var uploadsRepo *audit.UploadsRepo
	if cfg.Mongo != nil {
		uploadsRepo = audit.NewUploadsRepo(cfg.Mongo)
		pipeline.Audit = uploadsRepo
	}
	if cfg.S3 != nil {
		pipeline.Archive = archive.NewS3Archiver(cfg.S3)
	}

	h := handlers.New(cfg.Postgres, cfg.Mongo, cfg.S3, pipeline, payoutsRepo, uploadsRepo)
	tokenRepo := repository.NewPersonalAccessTokenRepository(cfg.Postgres)
	srv := server.NewServer(cfg.Port, h, tokenRepo)

	if err := srv.Run(runCtx); err != nil {
		log.Fatal(err)
	}
}
