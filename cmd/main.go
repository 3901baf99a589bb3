// Package cmd implements the CLI application to generate foreign-asset
// valuation schedules.
package cmd

import (
	"flag"
	"fmt"
	"os"

	"github.com/etnz/schedfa"
	"github.com/google/subcommands"
)

// Register the subcommands.
// A main package will call Register() to allow subcommands, and Execute() on the user-selected one.
func Register(c *subcommands.Commander) {
	c.Register(&reportCmd{}, "reports")

	c.Register(&fmvCmd{}, "queries")
	c.Register(&rateCmd{}, "queries")
	c.Register(&peakCmd{}, "queries")

	c.Register(&fetchCmd{}, "data")

	c.Register(&topicCmd{}, "documentation")
}

// as a CLI application, it has a very short lived lifecycle, so it is ok to use global variables.

var dataDir = flag.String("data-dir", "historic_data", "Directory holding the historical price and rate CSV files")
var lotsFile = flag.String("lots-file", "lots.jsonl", "Path to the acquisition lots file (JSONL format)")
var referenceFile = flag.String("reference-file", "reference.jsonl", "Path to the ticker reference data file (JSONL format)")
var fxPair = flag.String("pair", "USDINR", "Currency pair of the exchange rate dataset, base then quote")

// OpenPriceDB opens the historical database configured by the shared flags.
func OpenPriceDB() *schedfa.PriceDB {
	return schedfa.OpenPriceDB(*dataDir, *fxPair)
}

// LoadLots reads the acquisition lots from the app lots file.
func LoadLots() ([]schedfa.Lot, error) {
	f, err := os.Open(*lotsFile)
	if err != nil {
		return nil, fmt.Errorf("cannot open lots file %q: %w", *lotsFile, err)
	}
	defer f.Close()
	return schedfa.ImportLots(f)
}

// LoadReference reads the ticker reference data from the app reference file.
func LoadReference() (*schedfa.Directory, error) {
	f, err := os.Open(*referenceFile)
	if err != nil {
		return nil, fmt.Errorf("cannot open reference file %q: %w", *referenceFile, err)
	}
	defer f.Close()
	return schedfa.DecodeDirectory(f)
}
