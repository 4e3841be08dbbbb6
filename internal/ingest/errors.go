package ingest

import (
	"errors"
	"fmt"
)

var (
	// ErrEmptyMonth rejects an upload before any data is touched.
	ErrEmptyMonth = errors.New("month tag is required")
	// ErrEmptyFile rejects uploads with no data rows.
	ErrEmptyFile = errors.New("file has no data rows")
	// ErrTooLarge rejects uploads over the configured byte limit.
	ErrTooLarge = errors.New("file exceeds upload size limit")
)

// ParseError is fatal for the whole batch: nothing is persisted when a
// numeric cell fails to parse. Row is 1-based over data rows.
type ParseError struct {
	Field string
	Value string
	Row   int
	Err   error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("row %d: field %q: cannot parse %q: %v", e.Row, e.Field, e.Value, e.Err)
}

func (e *ParseError) Unwrap() error { return e.Err }

// SinkError wraps any store write failure. The caller surfaces it
// verbatim; there is no retry.
type SinkError struct{ Err error }

func (e *SinkError) Error() string { return "sink write failed: " + e.Err.Error() }
func (e *SinkError) Unwrap() error { return e.Err }
