package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/etnz/schedfa"
	"github.com/google/subcommands"
)

// peakCmd holds the flags for the 'peak' subcommand.
type peakCmd struct {
	ticker string
	start  string
	end    string
}

func (*peakCmd) Name() string     { return "peak" }
func (*peakCmd) Synopsis() string { return "query the peak converted price over a date range" }
func (*peakCmd) Usage() string {
	return `sfa peak -t <ticker> -s <date> -d <date>

  Finds the highest per-unit price of the ticker over the inclusive range,
  each quote converted to the target currency at the exchange rate of its
  own day.
`
}

func (c *peakCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.ticker, "t", "", "Ticker to query.")
	f.StringVar(&c.start, "s", "", "Start date of the range.")
	f.StringVar(&c.end, "d", schedfa.Today().String(), "End date of the range.")
}

func (c *peakCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if c.ticker == "" || c.start == "" {
		fmt.Fprintln(os.Stderr, "-t and -s are required")
		return subcommands.ExitUsageError
	}
	from, err := schedfa.ParseDate(c.start)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error parsing start date: %v\n", err)
		return subcommands.ExitUsageError
	}
	to, err := schedfa.ParseDate(c.end)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error parsing end date: %v\n", err)
		return subcommands.ExitUsageError
	}

	db := OpenPriceDB()
	peak, err := db.PeakBetween(c.ticker, from, to)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}
	fmt.Printf("%s peak %s %s on %s (rate %s)\n", c.ticker, peak.Price.StringFixed(2), db.Target(), peak.Day, peak.Rate)
	return subcommands.ExitSuccess
}
