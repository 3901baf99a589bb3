package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"time"

	"github.com/etnz/schedfa"
	"github.com/etnz/schedfa/renderer"
	"github.com/google/subcommands"
)

// reportCmd holds the flags for the 'report' subcommand.
type reportCmd struct {
	assessmentYear int
	mode           string
	all            bool
	outputDir      string
}

func (*reportCmd) Name() string     { return "report" }
func (*reportCmd) Synopsis() string { return "generate the foreign-asset valuation schedule" }
func (*reportCmd) Usage() string {
	return `sfa report [-ay <year>] [-mode calendar|financial] [-all] [-o <dir>]

  Values every acquisition lot against the reporting window and writes the
  schedule as CSV and JSONL, with a summary on stdout. By default lots
  acquired before the window are aggregated into one record and lots after
  it are left to a later year's run; with -all every lot in the history is
  valued individually, at the exchange rate of its own acquisition date.

Usage Examples:
# Schedule FA for assessment year 2024 (calendar window 2023).
$ sfa report -ay 2024

# Reconcile the whole holding history against FY 2024-25.
$ sfa report -ay 2025 -all
`
}

func (c *reportCmd) SetFlags(f *flag.FlagSet) {
	f.IntVar(&c.assessmentYear, "ay", time.Now().Year(), "Assessment year the schedule is filed for.")
	f.StringVar(&c.mode, "mode", "calendar", "Reporting window mode (calendar, financial).")
	f.BoolVar(&c.all, "all", false, "Value the full lot history individually against the financial-year window.")
	f.StringVar(&c.outputDir, "o", "output", "Directory the CSV and JSONL schedules are written to.")
}

func (c *reportCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	db := OpenPriceDB()

	ref, err := LoadReference()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}
	lots, err := LoadLots()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}
	if len(lots) == 0 {
		fmt.Fprintln(os.Stderr, "Warning: no lots found, nothing to report.")
		return subcommands.ExitSuccess
	}

	var engine *schedfa.Engine
	if c.all {
		// The full-history run reconciles everything against the financial
		// year ending in the assessment year.
		window, err := schedfa.ResolveWindow(schedfa.Financial, c.assessmentYear)
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			return subcommands.ExitUsageError
		}
		engine = schedfa.NewFullHistoryEngine(db, ref, window)
	} else {
		mode, err := schedfa.ParseWindowMode(c.mode)
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			return subcommands.ExitUsageError
		}
		engine, err = schedfa.NewAssessmentEngine(db, ref, mode, c.assessmentYear)
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			return subcommands.ExitUsageError
		}
	}

	// One ticker failing (missing data file, date outside the series) must
	// not take the others down; report it and keep going.
	grouped := schedfa.GroupLots(lots)
	tickers := make([]string, 0, len(grouped))
	for t := range grouped {
		tickers = append(tickers, t)
	}
	sort.Strings(tickers)

	var records []schedfa.Record
	failures := 0
	for _, ticker := range tickers {
		recs, err := engine.ValueTicker(ticker, grouped[ticker])
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error processing ticker %q: %v\n", ticker, err)
			failures++
			continue
		}
		records = append(records, recs...)
	}
	schedfa.SortRecords(records)

	if err := c.write(records); err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}

	printMarkdown(renderer.ScheduleMarkdown(records, engine.Window))

	if failures > 0 {
		fmt.Fprintf(os.Stderr, "%d ticker(s) failed, schedule is incomplete.\n", failures)
		return subcommands.ExitFailure
	}
	return subcommands.ExitSuccess
}

// write encodes the records to the output directory, CSV and JSONL.
func (c *reportCmd) write(records []schedfa.Record) error {
	if err := os.MkdirAll(c.outputDir, 0755); err != nil {
		return fmt.Errorf("cannot create output directory %q: %w", c.outputDir, err)
	}

	csvPath := filepath.Join(c.outputDir, "schedule_fa.csv")
	cf, err := os.Create(csvPath)
	if err != nil {
		return err
	}
	defer cf.Close()
	if err := schedfa.EncodeRecordsCSV(cf, records); err != nil {
		return fmt.Errorf("cannot write %q: %w", csvPath, err)
	}

	jsonPath := filepath.Join(c.outputDir, "records.jsonl")
	jf, err := os.Create(jsonPath)
	if err != nil {
		return err
	}
	defer jf.Close()
	if err := schedfa.EncodeRecordsJSON(jf, records); err != nil {
		return fmt.Errorf("cannot write %q: %w", jsonPath, err)
	}

	fmt.Fprintf(os.Stderr, "Schedule written to %s and %s\n", csvPath, jsonPath)
	return nil
}
