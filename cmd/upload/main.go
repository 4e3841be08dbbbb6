package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"time"

	"payout_dashboard/internal/adapters/archive"
	"payout_dashboard/internal/adapters/opener"
	"payout_dashboard/internal/config"
	"payout_dashboard/internal/ingest"
	"payout_dashboard/internal/ports"
	"payout_dashboard/internal/repository/audit"
	"payout_dashboard/internal/repository/database"
)

// One-shot uploader: upload <csv_path> <month_tag>. The path may be a
// local file, an https URL, or s3://bucket/key. Shares the exact
// ingestion pipeline with the dashboard server.
func main() {
	if len(os.Args) != 3 {
		fmt.Fprintln(os.Stderr, "❌ Usage: upload <csv_path> <month_tag>")
		os.Exit(1)
	}
	filePath, month := os.Args[1], os.Args[2]

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	cfg := config.Init(ctx)

	payoutsRepo := database.NewPayoutsRepo(cfg.Postgres)
	pipeline := ingest.New(payoutsRepo)
	if cfg.Mongo != nil {
		pipeline.Audit = audit.NewUploadsRepo(cfg.Mongo)
	}

	var s3Op *opener.S3Opener
	if cfg.S3 != nil {
		s3Op = opener.NewS3Opener(cfg.S3.Client)
		pipeline.Archive = archive.NewS3Archiver(cfg.S3)
	}
	sources := opener.NewCompoundOpener(opener.NewHTTPOpener(&http.Client{Timeout: time.Minute}), s3Op)

	rc, meta, err := sources.Open(ctx, filePath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "❌ %v\n", err)
		os.Exit(1)
	}
	defer rc.Close()

	actor := os.Getenv("USER")
	if actor == "" {
		actor = "cli"
	}

	res, err := pipeline.Run(ports.WithActor(ctx, actor), ingest.Source{
		Reader:      rc,
		Name:        meta.Name,
		ContentType: meta.ContentType,
	}, month)
	if err != nil {
		fmt.Fprintf(os.Stderr, "❌ Upload failed: %v\n", err)
		os.Exit(1)
	}

	for _, w := range res.Warnings {
		fmt.Fprintf(os.Stderr, "⚠️  %s\n", w)
	}
	fmt.Printf("✅ Uploaded %d records from %s for month %s\n", res.Rows, filePath, month)
}
