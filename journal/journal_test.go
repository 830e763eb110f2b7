package journal

import (
	"encoding/csv"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleRecord(ts time.Time) AnalysisRecord {
	return AnalysisRecord{
		ID:          NewID(ts),
		Time:        ts,
		Instrument:  "EUR_USD",
		Granularity: "H1",
		CandleCount: 60,
		Variant:     "standard",
		Duration:    420 * time.Microsecond,
		Status:      "ok",
	}
}

func TestSQLiteRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "chartd.sqlite")
	j, err := NewSQLite(path)
	require.NoError(t, err)
	defer j.Close()

	ts := time.Date(2026, 2, 3, 10, 0, 0, 0, time.UTC)
	rec := sampleRecord(ts)
	require.NoError(t, j.RecordAnalysis(rec))

	got, err := j.GetAnalysis(rec.ID)
	require.NoError(t, err)
	assert.Equal(t, rec.Instrument, got.Instrument)
	assert.Equal(t, rec.CandleCount, got.CandleCount)
	assert.Equal(t, rec.Duration, got.Duration)
	assert.Equal(t, "ok", got.Status)
}

func TestSQLiteListBetween(t *testing.T) {
	path := filepath.Join(t.TempDir(), "chartd.sqlite")
	j, err := NewSQLite(path)
	require.NoError(t, err)
	defer j.Close()

	day := time.Date(2026, 2, 3, 0, 0, 0, 0, time.UTC)
	inside := sampleRecord(day.Add(9 * time.Hour))
	outside := sampleRecord(day.Add(30 * time.Hour))
	require.NoError(t, j.RecordAnalysis(inside))
	require.NoError(t, j.RecordAnalysis(outside))

	recs, err := j.ListBetween(day, day.Add(24*time.Hour))
	require.NoError(t, err)
	require.Len(t, recs, 1)
	assert.Equal(t, inside.ID, recs[0].ID)
}

func TestSQLiteGetMissing(t *testing.T) {
	path := filepath.Join(t.TempDir(), "chartd.sqlite")
	j, err := NewSQLite(path)
	require.NoError(t, err)
	defer j.Close()

	_, err = j.GetAnalysis("nope")
	assert.ErrorContains(t, err, "not found")
}

func TestCSVWritesHeaderAndRows(t *testing.T) {
	path := filepath.Join(t.TempDir(), "analyses.csv")
	j, err := NewCSV(path)
	require.NoError(t, err)

	rec := sampleRecord(time.Now().UTC())
	rec.Status = "error"
	rec.Detail = "insufficient history"
	require.NoError(t, j.RecordAnalysis(rec))
	require.NoError(t, j.Close())

	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()

	rows, err := csv.NewReader(f).ReadAll()
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, "id", rows[0][0])
	assert.Equal(t, rec.ID, rows[1][0])
	assert.Equal(t, "error", rows[1][7])
	assert.Equal(t, "insufficient history", rows[1][8])
}

func TestNewIDIsSortableByTime(t *testing.T) {
	a := NewID(time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC))
	b := NewID(time.Date(2026, 1, 2, 0, 0, 0, 0, time.UTC))
	assert.Less(t, a, b)
}
