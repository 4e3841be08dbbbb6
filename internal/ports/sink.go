package ports

import (
	"context"
	"time"

	"payout_dashboard/internal/models"
)

type ctxKey string

// CtxActor carries the authenticated username through an upload so the
// audit record can say who uploaded the batch.
const CtxActor ctxKey = "actor"

func Actor(ctx context.Context) string {
	if v, ok := ctx.Value(CtxActor).(string); ok {
		return v
	}
	return ""
}

func WithActor(ctx context.Context, actor string) context.Context {
	return context.WithValue(ctx, CtxActor, actor)
}

// Sink appends one whole validated batch. The batch is all-or-nothing:
// implementations must not leave a partial batch behind on error.
type Sink interface {
	AppendBatch(ctx context.Context, records []models.PayoutRecord) error
}

// Lister reads the full stored record set back for filtering.
type Lister interface {
	ListAll(ctx context.Context) ([]models.PayoutRecord, error)
}

// Archiver stores the raw uploaded bytes and returns the storage path.
type Archiver interface {
	Archive(ctx context.Context, name string, contentType string, data []byte) (string, error)
}

// UploadAudit is one line of the durable upload trail: who uploaded
// what, when, and how it went.
type UploadAudit struct {
	ID          string
	Actor       string
	Source      string
	ArchivePath string
	Month       string
	Rows        int
	Status      string
	Error       string
	Warnings    []string
	CreatedAt   time.Time
}

type Auditor interface {
	RecordUpload(ctx context.Context, rec UploadAudit) error
}
