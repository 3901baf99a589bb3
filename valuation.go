package schedfa

import (
	"log"
	"slices"
	"strings"
)

// Lot is one discrete acquisition of shares: a purchase or a vest event.
// Lots come normalized from the ingestion side; the engine assumes the
// quantity is positive and the date resolved.
type Lot struct {
	Date     Date     `json:"date"`
	Quantity Quantity `json:"quantity"`
	FMV      Money    `json:"purchase_fmv"` // per-unit fair market value at acquisition, native currency
	Ticker   string   `json:"ticker"`
}

// Record is one line of the valuation schedule: a lot (or the synthetic
// aggregate of pre-window holdings) valued at acquisition, at its peak over
// the reporting window, and at window close, in the target currency.
//
// SaleProceeds is always zero: disposals are not modeled.
type Record struct {
	Org           Organization
	Ticker        string
	Acquired      Date
	Quantity      Quantity
	UnitFMV       Money // per-unit FMV at acquisition, native currency
	Aggregated    bool  // true for the synthetic pre-window aggregate
	PurchaseValue Money
	PeakValue     Money
	ClosingValue  Money
	SaleProceeds  Money
}

// FXAnchor selects the date of the exchange rate used for a lot's
// acquisition value.
type FXAnchor int

const (
	// AnchorWindowEnd rates every lot at the close of the reporting window.
	AnchorWindowEnd FXAnchor = iota
	// AnchorOwnDate rates each lot at its own acquisition date.
	AnchorOwnDate
)

// Engine values acquisition lots against a reporting window.
//
// One engine covers both valuation modes of the tool: the assessment-year
// run (pre-window holdings aggregated, FX anchored at window end) and the
// full-history run (every lot valued individually, FX anchored at its own
// date). They differ only in this configuration, never in code path.
//
// The engine is stateless apart from the series cached in its PriceDB; it
// is invoked once per ticker per run and keeps nothing across calls.
type Engine struct {
	DB  *PriceDB
	Ref Reference

	Window Range
	Anchor FXAnchor

	// AggregatePreWindow folds lots acquired before the window into one
	// synthetic record dated RefDate. When false every lot is valued
	// individually, whatever its date.
	AggregatePreWindow bool
	RefDate            Date // acquisition date attributed to the aggregate
}

// NewAssessmentEngine returns the engine for a Schedule FA run over one
// assessment year: pre-window holdings aggregate at the reference date and
// the window-end exchange rate anchors every acquisition value.
func NewAssessmentEngine(db *PriceDB, ref Reference, mode WindowMode, assessmentYear int) (*Engine, error) {
	window, err := ResolveWindow(mode, assessmentYear)
	if err != nil {
		return nil, err
	}
	return &Engine{
		DB:                 db,
		Ref:                ref,
		Window:             window,
		Anchor:             AnchorWindowEnd,
		AggregatePreWindow: true,
		RefDate:            ReferenceDate(assessmentYear),
	}, nil
}

// NewFullHistoryEngine returns the engine for a full-history run: every lot
// ever acquired is valued individually against the given window, at the
// exchange rate of its own acquisition date.
func NewFullHistoryEngine(db *PriceDB, ref Reference, window Range) *Engine {
	return &Engine{
		DB:     db,
		Ref:    ref,
		Window: window,
		Anchor: AnchorOwnDate,
	}
}

// ValueTicker produces the valuation records of one ticker's lots: at most
// one synthetic aggregate, then one record per lot in input order.
//
// Any lookup failure is terminal for this ticker and surfaced immediately;
// a caller iterating tickers may catch it and continue with the rest.
func (e *Engine) ValueTicker(ticker string, lots []Lot) ([]Record, error) {
	org, err := e.Ref.Org(ticker)
	if err != nil {
		return nil, err
	}
	currency, err := e.Ref.Currency(ticker)
	if err != nil {
		return nil, err
	}
	target := e.DB.Target()

	// Partition the lots relative to the window. Without aggregation every
	// lot is valued individually, whatever its date; with it, lots after
	// the window belong to a later period's run and are excluded.
	var before, individual []Lot
	for _, lot := range lots {
		switch {
		case e.AggregatePreWindow && lot.Date.Before(e.Window.From):
			before = append(before, lot)
		case e.AggregatePreWindow && lot.Date.After(e.Window.To):
			// out of this window, a later run will pick it up
		default:
			individual = append(individual, lot)
		}
	}

	// Closing figures are shared by every record of the ticker.
	closingRate, err := e.DB.RateOn(e.Window.To)
	if err != nil {
		return nil, err
	}
	closingPrice, err := e.DB.ClosingOn(ticker, e.Window.To)
	if err != nil {
		return nil, err
	}
	closingUnit := M(closingPrice, currency).MulRate(closingRate, target)
	log.Printf("%s: closing price %s on %s (%s %s at rate %s)",
		ticker, closingUnit, e.Window.To, closingPrice, currency, closingRate)

	var records []Record

	if len(before) > 0 {
		total := Q(0)
		for _, lot := range before {
			total = total.Add(lot.Quantity)
		}
		log.Printf("%s: %d lot(s) before %s aggregate to %s shares acquired %s",
			ticker, len(before), e.Window.From, total, e.RefDate)

		fmvRef, err := e.DB.FMVOn(ticker, e.RefDate)
		if err != nil {
			return nil, err
		}
		peak, err := e.DB.PeakBetween(ticker, e.Window.From, e.Window.To)
		if err != nil {
			return nil, err
		}
		unitFMV := M(fmvRef, currency)
		records = append(records, Record{
			Org:           org,
			Ticker:        ticker,
			Acquired:      e.RefDate,
			Quantity:      total,
			UnitFMV:       unitFMV,
			Aggregated:    true,
			PurchaseValue: unitFMV.Mul(total).MulRate(closingRate, target),
			PeakValue:     M(peak.Price, target).Mul(total),
			ClosingValue:  closingUnit.Mul(total),
			SaleProceeds:  M(0, target),
		})
	}

	for _, lot := range individual {
		rate := closingRate
		if e.Anchor == AnchorOwnDate {
			if rate, err = e.DB.RateOn(lot.Date); err != nil {
				return nil, err
			}
		}

		// Peak over the lot's share of the window. A lot acquired after the
		// window entirely still peaked over the whole window.
		peakFrom := lot.Date
		if peakFrom.Before(e.Window.From) || peakFrom.After(e.Window.To) {
			peakFrom = e.Window.From
		}
		peak, err := e.DB.PeakBetween(ticker, peakFrom, e.Window.To)
		if err != nil {
			return nil, err
		}

		records = append(records, Record{
			Org:           org,
			Ticker:        ticker,
			Acquired:      lot.Date,
			Quantity:      lot.Quantity,
			UnitFMV:       lot.FMV,
			PurchaseValue: lot.FMV.Mul(lot.Quantity).MulRate(rate, target),
			PeakValue:     M(peak.Price, target).Mul(lot.Quantity),
			ClosingValue:  closingUnit.Mul(lot.Quantity),
			SaleProceeds:  M(0, target),
		})
	}

	return records, nil
}

// GroupLots indexes lots by their (lowercased) ticker, preserving order.
func GroupLots(lots []Lot) map[string][]Lot {
	grouped := make(map[string][]Lot)
	for _, lot := range lots {
		key := strings.ToLower(lot.Ticker)
		grouped[key] = append(grouped[key], lot)
	}
	return grouped
}

// SortRecords orders records by acquisition date, the order the final
// schedule is filed in. Records on the same day keep their relative order.
func SortRecords(records []Record) {
	slices.SortStableFunc(records, func(a, b Record) int {
		return compareDate(a.Acquired, b.Acquired)
	})
}

