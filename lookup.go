package schedfa

import (
	"fmt"
	"log"

	"github.com/shopspring/decimal"
)

// This file implements the point-in-time and range lookups on top of the
// historical series. The two price kinds deliberately fall back in opposite
// directions:
//
//   - equity quotes (FMVOn) fill forward: when the market was closed on the
//     requested day, the next trading day's close stands in for it;
//   - exchange rates (RateOn) fill backward: the last published rate stays in
//     effect until a newer one appears.
//
// Keep them as two separate lookups; they must not be unified into a single
// parameterized "nearest" search.

// FMVOn returns the fair market value of a ticker on a given day, in the
// ticker's native currency.
//
// When the exact day has no quote, the next available one is used and an
// advisory is logged against the last business day on or before the request;
// the advisory never changes the returned value. The lookup fails with
// ErrNoPriceData when the series holds nothing on or after 'day'.
func (db *PriceDB) FMVOn(ticker string, day Date) (decimal.Decimal, error) {
	s, err := db.Ticker(ticker)
	if err != nil {
		return decimal.Decimal{}, err
	}

	obs, ok := s.AtOrAfter(day)
	if !ok {
		return decimal.Decimal{}, fmt.Errorf("%w: %s has no quote on or after %s", ErrNoPriceData, ticker, day)
	}
	if obs.Day.After(day) {
		if prev, ok := s.AtOrBefore(day); ok {
			if gap := day.LastBusinessDay().Sub(prev.Day); gap > 0 {
				log.Printf("%s: no quote on %s (public holiday or weekend?), last available data is %d day(s) old (on %s)",
					ticker, day, gap, prev.Day)
				log.Printf("%s: using the next available quote, on %s", ticker, obs.Day)
			}
		}
	}
	return obs.Value, nil
}

// RateOn returns the exchange rate of the configured pair on a given day.
//
// The exact rate is preferred, then the last known rate before the day; only
// when no prior rate exists at all does the next known one stand in. It fails
// with ErrNoRateData only on an empty series.
func (db *PriceDB) RateOn(day Date) (decimal.Decimal, error) {
	s, err := db.Rates()
	if err != nil {
		return decimal.Decimal{}, err
	}

	if obs, ok := s.AtOrBefore(day); ok {
		return obs.Value, nil
	}
	if obs, ok := s.AtOrAfter(day); ok {
		return obs.Value, nil
	}
	return decimal.Decimal{}, fmt.Errorf("%w: %s is empty", ErrNoRateData, db.pair)
}

// ClosingOn returns the last quote of a ticker on or before a given day, in
// the ticker's native currency. Unlike FMVOn it never looks forward.
func (db *PriceDB) ClosingOn(ticker string, day Date) (decimal.Decimal, error) {
	s, err := db.Ticker(ticker)
	if err != nil {
		return decimal.Decimal{}, err
	}
	obs, ok := s.AtOrBefore(day)
	if !ok {
		return decimal.Decimal{}, fmt.Errorf("%w: %s has no quote on or before %s", ErrNoPriceData, ticker, day)
	}
	return obs.Value, nil
}

// Peak is the highest converted per-unit price found in a range, along with
// the quote date and exchange rate that produced it.
type Peak struct {
	Price decimal.Decimal // per-unit price in the target currency
	Day   Date
	Rate  decimal.Decimal
}

// PeakBetween returns the maximum per-unit price of a ticker over the
// inclusive range, each quote converted to the target currency at the
// exchange rate of its own day. The earliest quote wins a tie.
//
// It fails with ErrEmptyRange when from is after to or when the range holds
// no quote at all.
func (db *PriceDB) PeakBetween(ticker string, from, to Date) (Peak, error) {
	if from.After(to) {
		return Peak{}, fmt.Errorf("%w: start %s is after end %s", ErrEmptyRange, from, to)
	}
	s, err := db.Ticker(ticker)
	if err != nil {
		return Peak{}, err
	}

	var best Peak
	found := false
	for obs := range s.Between(from, to) {
		rate, err := db.RateOn(obs.Day)
		if err != nil {
			return Peak{}, err
		}
		converted := obs.Value.Mul(rate)
		if !found || converted.GreaterThan(best.Price) {
			best = Peak{Price: converted, Day: obs.Day, Rate: rate}
			found = true
		}
	}
	if !found {
		return Peak{}, fmt.Errorf("%w: %s has no quote between %s and %s", ErrEmptyRange, ticker, from, to)
	}

	log.Printf("%s: peak price from %s to %s is %s %s (quoted %s at rate %s)",
		ticker, from, to, best.Price.StringFixed(2), db.Target(), best.Day, best.Rate)
	return best, nil
}
