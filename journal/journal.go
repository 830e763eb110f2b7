// Package journal records indicator analysis requests for later
// review: what was asked, over how much history, and how the
// computation went. CSV and SQLite backends share one record shape.
package journal

import (
	"crypto/rand"
	"time"

	"github.com/oklog/ulid/v2"
)

// AnalysisRecord is one journaled analysis request.
type AnalysisRecord struct {
	ID          string
	Time        time.Time
	Instrument  string
	Granularity string
	CandleCount int
	Variant     string
	Duration    time.Duration
	Status      string // "ok" or "error"
	Detail      string // error text when Status is "error"
}

// Journal persists analysis records.
type Journal interface {
	RecordAnalysis(AnalysisRecord) error
	Close() error
}

// NewID returns a time-ordered unique record ID.
func NewID(t time.Time) string {
	return ulid.MustNew(ulid.Timestamp(t), rand.Reader).String()
}

// Nop discards everything. Used when journaling is disabled.
type Nop struct{}

func (Nop) RecordAnalysis(AnalysisRecord) error { return nil }
func (Nop) Close() error                        { return nil }
