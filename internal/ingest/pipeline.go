package ingest

import (
	"context"
	"io"
	"log"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"payout_dashboard/internal/ports"
)

const (
	// DefaultMaxBytes bounds one upload. Monthly payout sheets are a
	// few thousand rows; anything bigger is a mistake, not data.
	DefaultMaxBytes = int64(32 << 20)
	// DefaultWriteTimeout bounds the sink append.
	DefaultWriteTimeout = 30 * time.Second
)

// Source is one file to ingest, wherever it came from (multipart
// upload, local path, https or s3 via the openers).
type Source struct {
	Reader      io.Reader
	Name        string
	ContentType string
}

// Result reports a committed upload.
type Result struct {
	UploadID    string
	Rows        int
	Warnings    []string
	ArchivePath string
}

// Pipeline is the single ingestion path shared by the CLI and the
// dashboard: read whole file, normalize headers, coerce types, tag the
// month, append the batch in one transaction. Archive and Audit are
// optional side channels; when nil (or failing) they never affect the
// upload's outcome.
type Pipeline struct {
	Sink    ports.Sink
	Archive ports.Archiver
	Audit   ports.Auditor

	MaxBytes     int64
	WriteTimeout time.Duration

	mu sync.Mutex // uploads are append-only and serialized
}

func New(sink ports.Sink) *Pipeline {
	return &Pipeline{
		Sink:         sink,
		MaxBytes:     DefaultMaxBytes,
		WriteTimeout: DefaultWriteTimeout,
	}
}

// Run ingests one source under one month tag. The batch either commits
// whole or not at all; partial uploads never reach the table.
func (p *Pipeline) Run(ctx context.Context, src Source, month string) (Result, error) {
	month = strings.TrimSpace(month)
	if month == "" {
		return Result{}, ErrEmptyMonth
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	uploadID := uuid.NewString()
	start := time.Now()
	log.Printf("[INGEST][START] upload_id=%s source=%q month=%q", uploadID, src.Name, month)

	maxBytes := p.MaxBytes
	if maxBytes <= 0 {
		maxBytes = DefaultMaxBytes
	}
	data, err := io.ReadAll(io.LimitReader(src.Reader, maxBytes+1))
	if err != nil {
		return Result{}, p.fail(ctx, uploadID, src, month, 0, nil, err)
	}
	if int64(len(data)) > maxBytes {
		return Result{}, p.fail(ctx, uploadID, src, month, 0, nil, ErrTooLarge)
	}
	if len(data) == 0 {
		return Result{}, p.fail(ctx, uploadID, src, month, 0, nil, ErrEmptyFile)
	}

	table, err := ReadTable(data, src.Name, src.ContentType)
	if err != nil {
		return Result{}, p.fail(ctx, uploadID, src, month, 0, nil, err)
	}
	if len(table.Rows) == 0 {
		return Result{}, p.fail(ctx, uploadID, src, month, 0, nil, ErrEmptyFile)
	}

	records, warnings, err := Transform(table)
	if err != nil {
		return Result{}, p.fail(ctx, uploadID, src, month, 0, warnings, err)
	}
	TagMonth(records, month)

	writeTimeout := p.WriteTimeout
	if writeTimeout <= 0 {
		writeTimeout = DefaultWriteTimeout
	}
	writeCtx, cancel := context.WithTimeout(ctx, writeTimeout)
	defer cancel()

	if err := p.Sink.AppendBatch(writeCtx, records); err != nil {
		return Result{}, p.fail(ctx, uploadID, src, month, len(records), warnings, &SinkError{Err: err})
	}

	archivePath := p.archive(ctx, uploadID, src, data)
	p.audit(ctx, ports.UploadAudit{
		ID:          uploadID,
		Actor:       ports.Actor(ctx),
		Source:      src.Name,
		ArchivePath: archivePath,
		Month:       month,
		Rows:        len(records),
		Status:      "done",
		Warnings:    warnings,
	})

	log.Printf("[INGEST][DONE] upload_id=%s rows=%d warnings=%d duration=%s",
		uploadID, len(records), len(warnings), time.Since(start))

	return Result{
		UploadID:    uploadID,
		Rows:        len(records),
		Warnings:    warnings,
		ArchivePath: archivePath,
	}, nil
}

func (p *Pipeline) fail(ctx context.Context, uploadID string, src Source, month string, rows int, warnings []string, err error) error {
	log.Printf("[INGEST][ERR] upload_id=%s source=%q month=%q err=%v", uploadID, src.Name, month, err)
	p.audit(ctx, ports.UploadAudit{
		ID:       uploadID,
		Actor:    ports.Actor(ctx),
		Source:   src.Name,
		Month:    month,
		Rows:     rows,
		Status:   "failed",
		Error:    err.Error(),
		Warnings: warnings,
	})
	return err
}

func (p *Pipeline) archive(ctx context.Context, uploadID string, src Source, data []byte) string {
	if p.Archive == nil {
		return ""
	}
	path, err := p.Archive.Archive(ctx, uploadID+"-"+src.Name, src.ContentType, data)
	if err != nil {
		log.Printf("[INGEST][WARN] archive failed: %v", err)
		return ""
	}
	return path
}

func (p *Pipeline) audit(ctx context.Context, rec ports.UploadAudit) {
	if p.Audit == nil {
		return
	}
	if err := p.Audit.RecordUpload(ctx, rec); err != nil {
		log.Printf("[INGEST][WARN] audit record failed: %v", err)
	}
}
