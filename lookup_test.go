package schedfa

import (
	"errors"
	"testing"
	"time"
)

// lookupDB wires a PriceDB over fixtures for the lookup tests. The ADBE series
// has a gap on 2020-06-30, the rate series a gap on 2020-07-02.
func lookupDB(t *testing.T) *PriceDB {
	t.Helper()
	dir := t.TempDir()
	writeHistory(t, dir, "adbe_price_history.csv",
		"Date,Close\n2020-06-29,100\n2020-07-01,110\n2020-07-03,120\n")
	writeHistory(t, dir, "usd_inr_price_history.csv",
		"Date,Close\n2020-06-29,75\n2020-07-01,76\n2020-07-03,74\n")
	return OpenPriceDB(dir, "USDINR")
}

func TestFMVOn(t *testing.T) {
	db := lookupDB(t)
	testCases := []struct {
		name string
		day  Date
		want string
	}{
		{"exact quote", NewDate(2020, time.June, 29), "100"},
		{"gap fills forward", NewDate(2020, time.June, 30), "110"},
		{"before the series", NewDate(2020, time.June, 1), "100"},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := db.FMVOn("ADBE", tc.day)
			if err != nil {
				t.Fatalf("FMVOn() error = %v", err)
			}
			if got.String() != tc.want {
				t.Errorf("FMVOn(%v) = %s, want %s", tc.day, got, tc.want)
			}
		})
	}

	if _, err := db.FMVOn("ADBE", NewDate(2020, time.July, 4)); !errors.Is(err, ErrNoPriceData) {
		t.Errorf("FMVOn(past tail) error = %v, want ErrNoPriceData", err)
	}
}

func TestRateOn(t *testing.T) {
	db := lookupDB(t)
	testCases := []struct {
		name string
		day  Date
		want string
	}{
		{"exact rate", NewDate(2020, time.July, 1), "76"},
		{"gap fills backward", NewDate(2020, time.July, 2), "76"},
		{"past tail keeps last", NewDate(2020, time.August, 1), "74"},
		{"before head takes first", NewDate(2020, time.June, 1), "75"},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := db.RateOn(tc.day)
			if err != nil {
				t.Fatalf("RateOn() error = %v", err)
			}
			if got.String() != tc.want {
				t.Errorf("RateOn(%v) = %s, want %s", tc.day, got, tc.want)
			}
		})
	}
}

func TestRateOnEmpty(t *testing.T) {
	dir := t.TempDir()
	writeHistory(t, dir, "usd_inr_price_history.csv", "Date,Close\n")
	db := OpenPriceDB(dir, "USDINR")
	if _, err := db.RateOn(NewDate(2020, time.July, 1)); !errors.Is(err, ErrNoRateData) {
		t.Errorf("RateOn(empty series) error = %v, want ErrNoRateData", err)
	}
}

func TestClosingOn(t *testing.T) {
	db := lookupDB(t)
	got, err := db.ClosingOn("ADBE", NewDate(2020, time.July, 2))
	if err != nil {
		t.Fatalf("ClosingOn() error = %v", err)
	}
	if got.String() != "110" {
		t.Errorf("ClosingOn(2020-07-02) = %s, want 110 (never looks forward)", got)
	}
	if _, err := db.ClosingOn("ADBE", NewDate(2020, time.June, 1)); !errors.Is(err, ErrNoPriceData) {
		t.Errorf("ClosingOn(before head) error = %v, want ErrNoPriceData", err)
	}
}

func TestPeakBetween(t *testing.T) {
	db := lookupDB(t)
	// Converted prices: 100*75=7500, 110*76=8360, 120*74=8880.
	peak, err := db.PeakBetween("ADBE", NewDate(2020, time.June, 29), NewDate(2020, time.July, 3))
	if err != nil {
		t.Fatalf("PeakBetween() error = %v", err)
	}
	if peak.Price.String() != "8880" {
		t.Errorf("Peak.Price = %s, want 8880", peak.Price)
	}
	if peak.Day != NewDate(2020, time.July, 3) {
		t.Errorf("Peak.Day = %v, want 2020-07-03", peak.Day)
	}
	if peak.Rate.String() != "74" {
		t.Errorf("Peak.Rate = %s, want 74", peak.Rate)
	}
}

func TestPeakBetweenEarliestTieWins(t *testing.T) {
	dir := t.TempDir()
	writeHistory(t, dir, "adbe_price_history.csv",
		"Date,Close\n2020-06-29,100\n2020-07-01,100\n")
	writeHistory(t, dir, "usd_inr_price_history.csv", "Date,Close\n2020-06-01,75\n")
	db := OpenPriceDB(dir, "USDINR")

	peak, err := db.PeakBetween("ADBE", NewDate(2020, time.June, 1), NewDate(2020, time.July, 31))
	if err != nil {
		t.Fatalf("PeakBetween() error = %v", err)
	}
	if peak.Day != NewDate(2020, time.June, 29) {
		t.Errorf("Peak.Day = %v, want 2020-06-29 (earliest of the tie)", peak.Day)
	}
}

func TestPeakBetweenEmptyRange(t *testing.T) {
	db := lookupDB(t)
	if _, err := db.PeakBetween("ADBE", NewDate(2020, time.July, 3), NewDate(2020, time.June, 29)); !errors.Is(err, ErrEmptyRange) {
		t.Errorf("PeakBetween(reversed) error = %v, want ErrEmptyRange", err)
	}
	if _, err := db.PeakBetween("ADBE", NewDate(2021, time.January, 1), NewDate(2021, time.December, 31)); !errors.Is(err, ErrEmptyRange) {
		t.Errorf("PeakBetween(no quotes) error = %v, want ErrEmptyRange", err)
	}
}
