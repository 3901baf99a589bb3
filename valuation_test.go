package schedfa

import (
	"testing"
	"time"
)

// engineFixtures writes ADBE quotes and USD/INR rates covering calendar year
// 2023 plus the 2022 reference date, and the matching reference directory.
//
// ADBE has no quote on the 2022-12-31 reference date so the aggregate FMV
// fills forward to 55. The highest converted quote of the window is
// 70 * 80 = 5600 on 2023-06-15; the closing unit value is 60 * 80 = 4800.
func engineFixtures(t *testing.T, rateRows string) (*PriceDB, Reference) {
	t.Helper()
	dir := t.TempDir()
	writeHistory(t, dir, "adbe_price_history.csv",
		"Date,Close\n2022-12-30,45\n2023-01-02,55\n2023-06-15,70\n2023-12-29,60\n")
	writeHistory(t, dir, "usd_inr_price_history.csv", rateRows)

	ref := NewDirectory()
	ref.Add("ADBE", Organization{
		Country: "2 - United States",
		Name:    "Adobe Inc",
		Address: "345 Park Avenue San Jose",
		Nature:  "Listed Company",
		ZipCode: "95110",
	}, "USD")
	return OpenPriceDB(dir, "USDINR"), ref
}

const flatRate = "Date,Close\n2022-01-01,80\n"

func TestAssessmentEngineSingleLot(t *testing.T) {
	db, ref := engineFixtures(t, flatRate)
	engine, err := NewAssessmentEngine(db, ref, Calendar, 2024)
	if err != nil {
		t.Fatalf("NewAssessmentEngine() error = %v", err)
	}

	lot := Lot{
		Date:     NewDate(2023, time.May, 10),
		Quantity: Q(10),
		FMV:      M(50, "USD"),
		Ticker:   "ADBE",
	}
	records, err := engine.ValueTicker("ADBE", []Lot{lot})
	if err != nil {
		t.Fatalf("ValueTicker() error = %v", err)
	}
	if len(records) != 1 {
		t.Fatalf("got %d records, want 1", len(records))
	}
	r := records[0]
	if r.Aggregated {
		t.Errorf("record marked aggregated, want individual")
	}
	if r.Acquired != lot.Date {
		t.Errorf("Acquired = %v, want %v", r.Acquired, lot.Date)
	}
	// 10 shares * 50 USD * rate 80 = 40000 INR.
	if want := M(40000, "INR"); !r.PurchaseValue.Equal(want) {
		t.Errorf("PurchaseValue = %s, want %s", r.PurchaseValue, want)
	}
	// 10 shares * closing 60 USD * rate 80 = 48000 INR.
	if want := M(48000, "INR"); !r.ClosingValue.Equal(want) {
		t.Errorf("ClosingValue = %s, want %s", r.ClosingValue, want)
	}
	// Peak from the lot date: 70 USD on 2023-06-15 * 80 * 10 = 56000 INR.
	if want := M(56000, "INR"); !r.PeakValue.Equal(want) {
		t.Errorf("PeakValue = %s, want %s", r.PeakValue, want)
	}
	if !r.SaleProceeds.IsZero() {
		t.Errorf("SaleProceeds = %s, want zero", r.SaleProceeds)
	}
}

func TestAssessmentEngineAggregatesPreWindowLots(t *testing.T) {
	db, ref := engineFixtures(t, flatRate)
	engine, err := NewAssessmentEngine(db, ref, Calendar, 2024)
	if err != nil {
		t.Fatalf("NewAssessmentEngine() error = %v", err)
	}

	lots := []Lot{
		{Date: NewDate(2021, time.March, 1), Quantity: Q(5), FMV: M(30, "USD"), Ticker: "ADBE"},
		{Date: NewDate(2022, time.September, 15), Quantity: Q(7), FMV: M(40, "USD"), Ticker: "ADBE"},
	}
	records, err := engine.ValueTicker("ADBE", lots)
	if err != nil {
		t.Fatalf("ValueTicker() error = %v", err)
	}
	if len(records) != 1 {
		t.Fatalf("got %d records, want exactly 1 aggregate", len(records))
	}
	r := records[0]
	if !r.Aggregated {
		t.Errorf("record not marked aggregated")
	}
	if want := Q(12); !r.Quantity.Equal(want) {
		t.Errorf("Quantity = %s, want %s", r.Quantity, want)
	}
	if want := ReferenceDate(2024); r.Acquired != want {
		t.Errorf("Acquired = %v, want reference date %v", r.Acquired, want)
	}
	// FMV on 2022-12-31 fills forward to 55; 12 * 55 * 80 = 52800 INR.
	if want := M(52800, "INR"); !r.PurchaseValue.Equal(want) {
		t.Errorf("PurchaseValue = %s, want %s", r.PurchaseValue, want)
	}
	// Peak over the whole window: 12 * 5600 = 67200 INR.
	if want := M(67200, "INR"); !r.PeakValue.Equal(want) {
		t.Errorf("PeakValue = %s, want %s", r.PeakValue, want)
	}
	// 12 * 4800 = 57600 INR.
	if want := M(57600, "INR"); !r.ClosingValue.Equal(want) {
		t.Errorf("ClosingValue = %s, want %s", r.ClosingValue, want)
	}
}

func TestAssessmentEngineSkipsPostWindowLots(t *testing.T) {
	db, ref := engineFixtures(t, flatRate)
	engine, err := NewAssessmentEngine(db, ref, Calendar, 2024)
	if err != nil {
		t.Fatalf("NewAssessmentEngine() error = %v", err)
	}

	lots := []Lot{
		{Date: NewDate(2023, time.May, 10), Quantity: Q(10), FMV: M(50, "USD"), Ticker: "ADBE"},
		{Date: NewDate(2024, time.February, 1), Quantity: Q(3), FMV: M(65, "USD"), Ticker: "ADBE"},
	}
	records, err := engine.ValueTicker("ADBE", lots)
	if err != nil {
		t.Fatalf("ValueTicker() error = %v", err)
	}
	if len(records) != 1 {
		t.Fatalf("got %d records, want 1 (the 2024 lot belongs to a later year)", len(records))
	}
	if records[0].Acquired != NewDate(2023, time.May, 10) {
		t.Errorf("Acquired = %v, want the in-window lot", records[0].Acquired)
	}
}

func TestFullHistoryEngineAnchorsRateAtLotDate(t *testing.T) {
	// The rate moves from 75 to 80 during the window so the two anchors
	// produce different acquisition values.
	db, ref := engineFixtures(t, "Date,Close\n2023-01-01,75\n2023-12-01,80\n")
	window := Range{From: NewDate(2023, time.April, 1), To: NewDate(2024, time.March, 31)}
	engine := NewFullHistoryEngine(db, ref, window)

	lots := []Lot{
		// Pre-window lot stays individual in this mode.
		{Date: NewDate(2022, time.September, 15), Quantity: Q(7), FMV: M(40, "USD"), Ticker: "ADBE"},
		{Date: NewDate(2023, time.May, 10), Quantity: Q(10), FMV: M(50, "USD"), Ticker: "ADBE"},
	}
	records, err := engine.ValueTicker("ADBE", lots)
	if err != nil {
		t.Fatalf("ValueTicker() error = %v", err)
	}
	if len(records) != 2 {
		t.Fatalf("got %d records, want 2 (no aggregation in this mode)", len(records))
	}
	// 7 * 40 USD; no rate exists before 2022-09-15 so the first one (75)
	// stands in: 21000 INR.
	if want := M(21000, "INR"); !records[0].PurchaseValue.Equal(want) {
		t.Errorf("pre-window PurchaseValue = %s, want %s", records[0].PurchaseValue, want)
	}
	// 10 * 50 USD at the 2023-05-10 rate of 75: 37500 INR.
	if want := M(37500, "INR"); !records[1].PurchaseValue.Equal(want) {
		t.Errorf("in-window PurchaseValue = %s, want %s", records[1].PurchaseValue, want)
	}
	// Closing is shared: rate 80 on 2024-03-31, price 60 on 2023-12-29.
	if want := M(33600, "INR"); !records[0].ClosingValue.Equal(want) {
		t.Errorf("pre-window ClosingValue = %s, want %s", records[0].ClosingValue, want)
	}
}

func TestValueTickerUnknownTicker(t *testing.T) {
	db, _ := engineFixtures(t, flatRate)
	engine, err := NewAssessmentEngine(db, NewDirectory(), Calendar, 2024)
	if err != nil {
		t.Fatalf("NewAssessmentEngine() error = %v", err)
	}
	if _, err := engine.ValueTicker("ADBE", nil); err == nil {
		t.Errorf("ValueTicker() error = nil, want ErrUnknownTicker")
	}
}

func TestGroupLots(t *testing.T) {
	lots := []Lot{
		{Ticker: "ADBE", Quantity: Q(1)},
		{Ticker: "goog", Quantity: Q(2)},
		{Ticker: "adbe", Quantity: Q(3)},
	}
	grouped := GroupLots(lots)
	if len(grouped) != 2 {
		t.Fatalf("got %d groups, want 2", len(grouped))
	}
	if got := len(grouped["adbe"]); got != 2 {
		t.Errorf("adbe group has %d lots, want 2 (case-insensitive)", got)
	}
	if !grouped["adbe"][1].Quantity.Equal(Q(3)) {
		t.Errorf("adbe group lost input order")
	}
}

func TestSortRecords(t *testing.T) {
	records := []Record{
		{Ticker: "b", Acquired: NewDate(2023, time.May, 10)},
		{Ticker: "a", Acquired: NewDate(2022, time.December, 31)},
		{Ticker: "c", Acquired: NewDate(2023, time.May, 10)},
	}
	SortRecords(records)
	if records[0].Ticker != "a" {
		t.Errorf("records[0] = %s, want the earliest acquisition first", records[0].Ticker)
	}
	if records[1].Ticker != "b" || records[2].Ticker != "c" {
		t.Errorf("same-day records reordered: got %s, %s", records[1].Ticker, records[2].Ticker)
	}
}
