package audit

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	mg "payout_dashboard/internal/config/connections/mongo"
	"payout_dashboard/internal/ports"
)

const UploadsCollection = "payout_uploads"

// Record is the durable upload trail: who uploaded which file for
// which month, how many rows landed, and how it ended. The table
// itself stays clean of bookkeeping; this collection carries it.
type Record struct {
	ID          string    `bson:"_id" json:"id"`
	Actor       string    `bson:"actor,omitempty" json:"actor,omitempty"`
	Source      string    `bson:"source" json:"source"`
	ArchivePath string    `bson:"archive_path,omitempty" json:"archive_path,omitempty"`
	Month       string    `bson:"month" json:"month"`
	Rows        int       `bson:"rows" json:"rows"`
	Status      string    `bson:"status" json:"status"`
	Error       string    `bson:"error,omitempty" json:"error,omitempty"`
	Warnings    []string  `bson:"warnings,omitempty" json:"warnings,omitempty"`
	CreatedAt   time.Time `bson:"created_at" json:"created_at"`
}

type UploadsRepo struct {
	m *mg.Mongo
}

func NewUploadsRepo(m *mg.Mongo) *UploadsRepo { return &UploadsRepo{m: m} }

func (r *UploadsRepo) RecordUpload(ctx context.Context, rec ports.UploadAudit) error {
	if r.m == nil || r.m.Database == nil {
		return mongo.ErrClientDisconnected
	}

	created := rec.CreatedAt
	if created.IsZero() {
		created = time.Now().UTC()
	}

	doc := Record{
		ID:          rec.ID,
		Actor:       rec.Actor,
		Source:      rec.Source,
		ArchivePath: rec.ArchivePath,
		Month:       rec.Month,
		Rows:        rec.Rows,
		Status:      rec.Status,
		Error:       rec.Error,
		Warnings:    rec.Warnings,
		CreatedAt:   created,
	}

	_, err := r.m.Database.Collection(UploadsCollection).InsertOne(ctx, doc, options.InsertOne())
	return err
}

// List returns the most recent uploads, newest first.
func (r *UploadsRepo) List(ctx context.Context, limit int64) ([]Record, error) {
	if r.m == nil || r.m.Database == nil {
		return nil, mongo.ErrClientDisconnected
	}

	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
	if limit > 0 {
		opts.SetLimit(limit)
	}

	cur, err := r.m.Database.Collection(UploadsCollection).Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	recs := make([]Record, 0)
	for cur.Next(ctx) {
		var rec Record
		if err := cur.Decode(&rec); err != nil {
			continue
		}
		recs = append(recs, rec)
	}
	return recs, cur.Err()
}
