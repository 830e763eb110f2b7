package journal

import (
	"fmt"
	"strings"
	"time"
)

// FormatAnalysisOrg renders one record as an org-mode entry with a
// properties drawer, ready to paste into a research journal.
func FormatAnalysisOrg(r AnalysisRecord) string {
	var b strings.Builder

	fmt.Fprintf(&b, "** Analysis: %s %s (%s)\n", r.Instrument, r.Granularity, shortID(r.ID))
	b.WriteString(":PROPERTIES:\n")
	fmt.Fprintf(&b, ":ID: %s\n", r.ID)
	fmt.Fprintf(&b, ":TIME: %s\n", r.Time.UTC().Format(time.RFC3339))
	fmt.Fprintf(&b, ":INSTRUMENT: %s\n", r.Instrument)
	fmt.Fprintf(&b, ":GRANULARITY: %s\n", r.Granularity)
	fmt.Fprintf(&b, ":CANDLES: %d\n", r.CandleCount)
	fmt.Fprintf(&b, ":VARIANT: %s\n", r.Variant)
	fmt.Fprintf(&b, ":DURATION: %s\n", r.Duration)
	fmt.Fprintf(&b, ":STATUS: %s\n", r.Status)
	if r.Detail != "" {
		fmt.Fprintf(&b, ":DETAIL: %s\n", r.Detail)
	}
	b.WriteString(":END:\n")

	return b.String()
}

// FormatAnalysesOrg renders a day's worth of records under one heading.
func FormatAnalysesOrg(recs []AnalysisRecord) string {
	if len(recs) == 0 {
		return "* Analyses\nNo analyses recorded.\n"
	}

	var b strings.Builder
	fmt.Fprintf(&b, "* Analyses (%d)\n", len(recs))
	for _, r := range recs {
		b.WriteString(FormatAnalysisOrg(r))
	}
	return b.String()
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}
