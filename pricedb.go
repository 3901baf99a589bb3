package schedfa

import (
	"encoding/csv"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"
	"sync"
)

// PriceDB maps tickers and the configured currency pair to their historical
// Series, parsing each source file at most once per process.
//
// The datasets are small finite historical files, so series are retained for
// the whole run with no eviction. The cache is owned by the run that opened
// it, not by a package-level variable, so two runs never share state.
type PriceDB struct {
	dir  string // directory holding the historical CSV files
	pair string // currency pair, base then quote, e.g. "USDINR"

	mu     sync.Mutex
	series map[string]*Series
	loads  map[string]int // parses per cache key, for tests
}

// fxKey is the cache key of the currency pair series; tickers use their
// lowercased symbol so lookups are case-insensitive.
const fxKey = "fx"

// OpenPriceDB returns a PriceDB reading historical files from dir for the
// given currency pair. No file is touched until a series is first needed.
func OpenPriceDB(dir, pair string) *PriceDB {
	return &PriceDB{
		dir:    dir,
		pair:   pair,
		series: make(map[string]*Series),
		loads:  make(map[string]int),
	}
}

// Pair returns the currency pair this database serves, base then quote.
func (db *PriceDB) Pair() string { return db.pair }

// Target returns the quote currency of the pair, the currency every
// valuation is reported in.
func (db *PriceDB) Target() string { return db.pair[3:] }

// TickerPath returns the historical price file of a ticker.
func (db *PriceDB) TickerPath(ticker string) string {
	return filepath.Join(db.dir, strings.ToLower(ticker)+"_price_history.csv")
}

// RatePath returns the historical file of the currency pair.
func (db *PriceDB) RatePath() string {
	base, quote := strings.ToLower(db.pair[:3]), strings.ToLower(db.pair[3:])
	return filepath.Join(db.dir, base+"_"+quote+"_price_history.csv")
}

// Ticker returns the price series of a ticker, loading it on first use.
func (db *PriceDB) Ticker(ticker string) (*Series, error) {
	return db.load(strings.ToLower(ticker), db.TickerPath(ticker))
}

// Rates returns the exchange rate series of the pair, loading it on first use.
func (db *PriceDB) Rates() (*Series, error) {
	return db.load(fxKey, db.RatePath())
}

// load returns the cached series for key, parsing the file exactly once.
// The lock covers the parse so a concurrent first access cannot double-parse.
func (db *PriceDB) load(key, path string) (*Series, error) {
	db.mu.Lock()
	defer db.mu.Unlock()

	if s, ok := db.series[key]; ok {
		return s, nil
	}

	log.Printf("parsing historical data %s", path)
	rows, err := readRows(path)
	if err != nil {
		return nil, err
	}
	s, err := BuildSeries(rows)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	db.series[key] = s
	db.loads[key]++
	return s, nil
}

// readRows reads a historical CSV file into raw (dateText, valueText) rows,
// skipping the header line.
func readRows(path string) ([][2]string, error) {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrMissingSource, path)
		}
		return nil, err
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1 // sources disagree on trailing columns
	records, err := r.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrMalformedData, path, err)
	}
	if len(records) == 0 {
		return nil, nil
	}

	rows := make([][2]string, 0, len(records)-1)
	for _, rec := range records[1:] { // records[0] is the header
		if len(rec) < 2 {
			return nil, fmt.Errorf("%w: %s: want at least 2 columns got %d", ErrMalformedData, path, len(rec))
		}
		rows = append(rows, [2]string{rec[0], rec[1]})
	}
	return rows, nil
}
