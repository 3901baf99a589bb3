package schedfa

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"strings"
)

// this file contains functions to handle the lots interchange format.
// It should remain human readable, single file and easy to produce from any
// broker export.

// ImportLots imports acquisition lots from 'r' in the interchange format.
//
// The format is a JSONL file, where each line is a JSON object representing
// one lot: its acquisition date, quantity, per-unit FMV in the native
// currency, and ticker:
//
//	{"date":"2023-05-10","quantity":10,"purchase_fmv":{"amount":50,"currency":"USD"},"ticker":"adbe"}
//
// Broker-specific spreadsheet parsing lives outside this engine; whatever
// produces this file is responsible for filtering malformed entries.
func ImportLots(r io.Reader) ([]Lot, error) {
	var lots []Lot
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		var lot Lot
		if err := json.Unmarshal([]byte(line), &lot); err != nil {
			return nil, fmt.Errorf("cannot parse line for lot import format: %q: %w", line, err)
		}
		if lot.Ticker == "" {
			return nil, fmt.Errorf("lot line %q has no ticker", line)
		}
		if !lot.Quantity.IsPositive() {
			return nil, fmt.Errorf("lot line %q has a non-positive quantity", line)
		}
		lots = append(lots, lot)
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return lots, nil
}

// ExportLots exports lots to 'w' in the interchange format, one JSON object
// per line.
func ExportLots(w io.Writer, lots []Lot) error {
	for _, lot := range lots {
		data, err := json.Marshal(lot)
		if err != nil {
			return fmt.Errorf("cannot marshal lot %q on %s: %w", lot.Ticker, lot.Date, err)
		}
		if _, err := w.Write(append(data, '\n')); err != nil {
			return fmt.Errorf("cannot write lot format: %w", err)
		}
	}
	return nil
}
