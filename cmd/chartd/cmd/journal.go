package cmd

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/rustyeddy/chartd/journal"
)

var journalCmd = &cobra.Command{
	Use:   "journal",
	Short: "Query the analysis journal",
	Long: `Query and display analysis records from the SQLite journal.

Subcommands:
  get    - Get one analysis record by ID
  today  - List analyses recorded today
  day    - List analyses recorded on a specific day

Examples:
  chartd journal get 01JABCDEFGH...
  chartd journal today
  chartd journal day 2026-08-21`,
}

var journalGetCmd = &cobra.Command{
	Use:   "get <record-id>",
	Short: "Get one analysis record by ID",
	Args:  cobra.ExactArgs(1),
	RunE:  runJournalGet,
}

var journalTodayCmd = &cobra.Command{
	Use:   "today",
	Short: "List analyses recorded today",
	Args:  cobra.NoArgs,
	RunE:  runJournalToday,
}

var journalDayCmd = &cobra.Command{
	Use:   "day <YYYY-MM-DD>",
	Short: "List analyses recorded on a specific day",
	Args:  cobra.ExactArgs(1),
	RunE:  runJournalDay,
}

var journalDBPath string

func init() {
	rootCmd.AddCommand(journalCmd)
	journalCmd.AddCommand(journalGetCmd)
	journalCmd.AddCommand(journalTodayCmd)
	journalCmd.AddCommand(journalDayCmd)

	journalCmd.PersistentFlags().StringVarP(&journalDBPath, "db", "d", "./chartd.sqlite", "path to SQLite journal DB")
}

func runJournalGet(cmd *cobra.Command, args []string) error {
	j, err := journal.NewSQLite(journalDBPath)
	if err != nil {
		return fmt.Errorf("open db: %w", err)
	}
	defer j.Close()

	rec, err := j.GetAnalysis(args[0])
	if err != nil {
		return fmt.Errorf("get analysis: %w", err)
	}

	fmt.Println(journal.FormatAnalysisOrg(rec))
	return nil
}

func runJournalToday(cmd *cobra.Command, args []string) error {
	loc := time.Local
	return listDay(time.Now().In(loc).Format("2006-01-02"), loc)
}

func runJournalDay(cmd *cobra.Command, args []string) error {
	return listDay(args[0], time.Local)
}

func listDay(day string, loc *time.Location) error {
	j, err := journal.NewSQLite(journalDBPath)
	if err != nil {
		return fmt.Errorf("open db: %w", err)
	}
	defer j.Close()

	start, end, err := dayBounds(loc, day)
	if err != nil {
		return fmt.Errorf("date: %w", err)
	}

	recs, err := j.ListBetween(start, end)
	if err != nil {
		return fmt.Errorf("query analyses: %w", err)
	}

	fmt.Println(journal.FormatAnalysesOrg(recs))
	return nil
}

func dayBounds(loc *time.Location, day string) (time.Time, time.Time, error) {
	t, err := time.ParseInLocation("2006-01-02", day, loc)
	if err != nil {
		return time.Time{}, time.Time{}, err
	}
	start := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, loc)
	end := start.Add(24 * time.Hour)
	return start, end, nil
}
