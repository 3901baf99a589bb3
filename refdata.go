package schedfa

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"strings"
)

// Organization is the issuer metadata the tax form wants per foreign entity.
type Organization struct {
	Country string `json:"country"`
	Name    string `json:"name"`
	Address string `json:"address"`
	Nature  string `json:"nature"`
	ZipCode string `json:"zip_code"`
}

// Reference resolves the static reference data of a ticker: the issuing
// organization and the currency its quotes are expressed in.
//
// It is injected into the engine so new tickers are a data change, not a
// code change.
type Reference interface {
	Org(ticker string) (Organization, error)
	Currency(ticker string) (string, error)
}

type dirEntry struct {
	org      Organization
	currency string
}

// Directory is an in-memory Reference keyed by lowercased ticker.
type Directory struct {
	entries map[string]dirEntry
}

// NewDirectory returns an empty Directory.
func NewDirectory() *Directory {
	return &Directory{entries: make(map[string]dirEntry)}
}

// Add registers or replaces the reference data of a ticker.
func (d *Directory) Add(ticker string, org Organization, currency string) {
	d.entries[strings.ToLower(ticker)] = dirEntry{org: org, currency: currency}
}

// Tickers returns all registered tickers, lowercased, in no particular order.
func (d *Directory) Tickers() []string {
	tickers := make([]string, 0, len(d.entries))
	for t := range d.entries {
		tickers = append(tickers, t)
	}
	return tickers
}

// Org returns the organization of a ticker.
func (d *Directory) Org(ticker string) (Organization, error) {
	e, ok := d.entries[strings.ToLower(ticker)]
	if !ok {
		return Organization{}, fmt.Errorf("%w: no organization info for %q", ErrUnknownTicker, ticker)
	}
	return e.org, nil
}

// Currency returns the quote currency of a ticker.
func (d *Directory) Currency(ticker string) (string, error) {
	e, ok := d.entries[strings.ToLower(ticker)]
	if !ok {
		return "", fmt.Errorf("%w: no currency info for %q", ErrUnknownTicker, ticker)
	}
	return e.currency, nil
}

var _ Reference = (*Directory)(nil)

// DecodeDirectory reads reference data from 'r' in the import/export format.
//
// The format is a JSONL file, where each line is a JSON object with the
// ticker, its quote currency, and the issuing organization:
//
//	{"ticker":"adbe","currency":"USD","org":{"country":"2 - United States",...}}
func DecodeDirectory(r io.Reader) (*Directory, error) {
	type jentry struct {
		Ticker   string       `json:"ticker"`
		Currency string       `json:"currency"`
		Org      Organization `json:"org"`
	}

	d := NewDirectory()
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		var je jentry
		if err := json.Unmarshal([]byte(line), &je); err != nil {
			return nil, fmt.Errorf("cannot parse reference data line %q: %w", line, err)
		}
		if je.Ticker == "" {
			return nil, fmt.Errorf("reference data line %q has no ticker", line)
		}
		d.Add(je.Ticker, je.Org, je.Currency)
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return d, nil
}
