package handlers

import (
	"errors"
	"net/http"
	"path"

	"payout_dashboard/internal/ingest"
)

// Upload is the dashboard's upload form: multipart/form-data with
// `file` and `month` fields, run through the shared ingestion pipeline
// exactly once, synchronously. The whole batch commits or nothing does.
func (h *Handlers) Upload(w http.ResponseWriter, r *http.Request) {
	if r.Method == http.MethodOptions {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "POST, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")
		w.WriteHeader(http.StatusNoContent)
		return
	}
	if r.Method != http.MethodPost {
		h.JSON(w, http.StatusMethodNotAllowed, map[string]any{"error": "use POST"})
		return
	}

	if err := r.ParseMultipartForm(ingest.DefaultMaxBytes); err != nil {
		h.Logger.Printf("[UPLOAD][ERR] parse multipart: %v", err)
		h.JSON(w, http.StatusBadRequest, map[string]any{"error": "bad multipart: " + err.Error()})
		return
	}

	month := r.FormValue("month")
	if month == "" {
		h.JSON(w, http.StatusBadRequest, map[string]any{"error": "month is required (e.g. 2025-04)"})
		return
	}

	f, fh, err := r.FormFile("file")
	if err != nil {
		h.Logger.Printf("[UPLOAD][ERR] missing file: %v", err)
		h.JSON(w, http.StatusBadRequest, map[string]any{"error": "file is required"})
		return
	}
	defer f.Close()

	res, err := h.Pipeline.Run(r.Context(), ingest.Source{
		Reader:      f,
		Name:        path.Base(fh.Filename),
		ContentType: fh.Header.Get("Content-Type"),
	}, month)
	if err != nil {
		h.Logger.Printf("[UPLOAD][ERR] ingest: %v", err)
		h.JSON(w, statusFor(err), map[string]any{"error": err.Error()})
		return
	}

	w.Header().Set("Access-Control-Allow-Origin", "*")
	h.JSON(w, http.StatusCreated, map[string]any{
		"upload_id": res.UploadID,
		"rows":      res.Rows,
		"month":     month,
		"warnings":  res.Warnings,
	})
}

func statusFor(err error) int {
	var parseErr *ingest.ParseError
	var sinkErr *ingest.SinkError
	switch {
	case errors.Is(err, ingest.ErrEmptyMonth),
		errors.Is(err, ingest.ErrEmptyFile),
		errors.Is(err, ingest.ErrTooLarge):
		return http.StatusBadRequest
	case errors.As(err, &parseErr):
		return http.StatusUnprocessableEntity
	case errors.As(err, &sinkErr):
		return http.StatusBadGateway
	}
	return http.StatusInternalServerError
}
