package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/etnz/schedfa"
	"github.com/google/subcommands"
)

// rateCmd holds the flags for the 'rate' subcommand.
type rateCmd struct {
	date string
}

func (*rateCmd) Name() string     { return "rate" }
func (*rateCmd) Synopsis() string { return "query the exchange rate on a date" }
func (*rateCmd) Usage() string {
	return `sfa rate -d <date>

  Looks up the exchange rate the valuation would use on that date: the last
  published rate on or before it.
`
}

func (c *rateCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.date, "d", schedfa.Today().String(), "Date to query.")
}

func (c *rateCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	day, err := schedfa.ParseDate(c.date)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error parsing date: %v\n", err)
		return subcommands.ExitUsageError
	}

	db := OpenPriceDB()
	rate, err := db.RateOn(day)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}
	fmt.Printf("%s %s %s\n", db.Pair(), day, rate)
	return subcommands.ExitSuccess
}
