package journal

import (
	"database/sql"
	"fmt"
	"time"
)

// GetAnalysis returns a single record by ID.
func (j *SQLite) GetAnalysis(id string) (AnalysisRecord, error) {
	row := j.db.QueryRow(`
		SELECT id, time, instrument, granularity, candle_count, variant, duration_us, status, detail
		FROM analyses
		WHERE id = ?`, id)

	rec, err := scanRecord(row)
	if err != nil {
		if err == sql.ErrNoRows {
			return AnalysisRecord{}, fmt.Errorf("analysis %q not found", id)
		}
		return AnalysisRecord{}, err
	}
	return rec, nil
}

// ListBetween returns records whose time is within [start, end).
func (j *SQLite) ListBetween(start, end time.Time) ([]AnalysisRecord, error) {
	rows, err := j.db.Query(`
		SELECT id, time, instrument, granularity, candle_count, variant, duration_us, status, detail
		FROM analyses
		WHERE time >= ? AND time < ?
		ORDER BY time ASC`, start, end)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []AnalysisRecord
	for rows.Next() {
		rec, err := scanRecord(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}
