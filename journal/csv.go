package journal

import (
	"encoding/csv"
	"os"
	"strconv"
	"time"
)

type CSV struct {
	w *csv.Writer
	f *os.File
}

func NewCSV(path string) (*CSV, error) {
	f, err := os.Create(path)
	if err != nil {
		return nil, err
	}

	w := csv.NewWriter(f)
	if err := w.Write([]string{
		"id", "time", "instrument", "granularity", "candle_count",
		"variant", "duration_us", "status", "detail",
	}); err != nil {
		return nil, err
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return nil, err
	}

	return &CSV{w: w, f: f}, nil
}

func (j *CSV) RecordAnalysis(r AnalysisRecord) error {
	if err := j.w.Write([]string{
		r.ID,
		r.Time.Format(time.RFC3339),
		r.Instrument,
		r.Granularity,
		strconv.Itoa(r.CandleCount),
		r.Variant,
		strconv.FormatInt(r.Duration.Microseconds(), 10),
		r.Status,
		r.Detail,
	}); err != nil {
		return err
	}
	j.w.Flush()
	return j.w.Error()
}

func (j *CSV) Close() error {
	j.w.Flush()
	if err := j.w.Error(); err != nil {
		return err
	}
	return j.f.Close()
}
