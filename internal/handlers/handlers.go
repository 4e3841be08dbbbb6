package handlers

import (
	"encoding/json"
	"log"
	"net/http"

	"payout_dashboard/internal/config/connections/mongo"
	"payout_dashboard/internal/config/connections/postgres"
	"payout_dashboard/internal/config/connections/s3"
	"payout_dashboard/internal/ingest"
	"payout_dashboard/internal/ports"
	"payout_dashboard/internal/repository/audit"
)

type Handlers struct {
	Postgres *postgres.Postgres
	Mongo    *mongo.Mongo
	S3       *s3.S3

	Pipeline *ingest.Pipeline
	Store    ports.Lister
	Uploads  *audit.UploadsRepo

	Logger *log.Logger
}

func New(pg *postgres.Postgres, mg *mongo.Mongo, s3c *s3.S3, pipeline *ingest.Pipeline, store ports.Lister, uploads *audit.UploadsRepo) *Handlers {
	return &Handlers{
		Postgres: pg,
		Mongo:    mg,
		S3:       s3c,
		Pipeline: pipeline,
		Store:    store,
		Uploads:  uploads,
		Logger:   log.Default(),
	}
}

func (h *Handlers) JSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}
