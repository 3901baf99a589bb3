// Package schedfa values equity acquisition lots for foreign-asset tax
// reporting.
//
// Given a normalized list of lots, historical price and exchange rate
// series, and the reference data of each issuer, it produces one valuation
// record per lot: the value at acquisition, the peak value reached during
// the reporting window, and the value at window close, all in a single
// target currency.
//
// The historical series are sparse (markets close on weekends and public
// holidays), so point-in-time lookups follow explicit fallback policies:
// fair market values fill forward to the next trading day, exchange rates
// fill backward to the last published rate. See the docs package topics for
// the full rules.
package schedfa
