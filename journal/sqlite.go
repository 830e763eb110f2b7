package journal

import (
	"database/sql"
	"time"

	_ "github.com/mattn/go-sqlite3"
)

type SQLite struct {
	db *sql.DB
}

func NewSQLite(path string) (*SQLite, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, err
	}

	if _, err := db.Exec(Schema); err != nil {
		return nil, err
	}

	return &SQLite{db: db}, nil
}

func (j *SQLite) RecordAnalysis(r AnalysisRecord) error {
	_, err := j.db.Exec(`
		INSERT INTO analyses
		(id, time, instrument, granularity, candle_count, variant, duration_us, status, detail)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		r.ID, r.Time, r.Instrument, r.Granularity, r.CandleCount,
		r.Variant, r.Duration.Microseconds(), r.Status, r.Detail,
	)
	return err
}

func (j *SQLite) Close() error {
	return j.db.Close()
}

func scanRecord(row interface {
	Scan(dest ...interface{}) error
}) (AnalysisRecord, error) {
	var rec AnalysisRecord
	var durationUS int64
	err := row.Scan(
		&rec.ID,
		&rec.Time,
		&rec.Instrument,
		&rec.Granularity,
		&rec.CandleCount,
		&rec.Variant,
		&durationUS,
		&rec.Status,
		&rec.Detail,
	)
	rec.Duration = time.Duration(durationUS) * time.Microsecond
	return rec, err
}
