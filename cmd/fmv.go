package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/etnz/schedfa"
	"github.com/google/subcommands"
)

// fmvCmd holds the flags for the 'fmv' subcommand.
type fmvCmd struct {
	ticker string
	date   string
}

func (*fmvCmd) Name() string     { return "fmv" }
func (*fmvCmd) Synopsis() string { return "query the fair market value of a ticker on a date" }
func (*fmvCmd) Usage() string {
	return `sfa fmv -t <ticker> -d <date>

  Looks up the fair market value the valuation would use on that date: the
  exact quote when the market was open, otherwise the next available one
  (with an advisory about the gap).
`
}

func (c *fmvCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.ticker, "t", "", "Ticker to query.")
	f.StringVar(&c.date, "d", schedfa.Today().String(), "Date to query.")
}

func (c *fmvCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if c.ticker == "" {
		fmt.Fprintln(os.Stderr, "-t is required")
		return subcommands.ExitUsageError
	}
	day, err := schedfa.ParseDate(c.date)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error parsing date: %v\n", err)
		return subcommands.ExitUsageError
	}

	fmv, err := OpenPriceDB().FMVOn(c.ticker, day)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}
	fmt.Printf("%s %s %s\n", c.ticker, day, fmv)
	return subcommands.ExitSuccess
}
