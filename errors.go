package schedfa

import "errors"

// Sentinel errors for the valuation engine. Callers discriminate with
// errors.Is; every failure is terminal for the computation that raised it,
// there is no retry anywhere in this package.
var (
	// ErrMalformedData reports a historical data row whose date or value
	// cannot be parsed. It aborts the whole series load.
	ErrMalformedData = errors.New("malformed historical data")

	// ErrMissingSource reports that no historical data file is registered
	// for a requested ticker or currency pair.
	ErrMissingSource = errors.New("no historical data source")

	// ErrUnknownTicker reports a ticker absent from the reference directory.
	ErrUnknownTicker = errors.New("unknown ticker")

	// ErrNoPriceData reports a price lookup date that falls entirely outside
	// the available series.
	ErrNoPriceData = errors.New("no price data")

	// ErrNoRateData reports an exchange rate lookup against an empty series.
	ErrNoRateData = errors.New("no exchange rate data")

	// ErrEmptyRange reports a peak query over a range with no observations,
	// or with its boundaries reversed.
	ErrEmptyRange = errors.New("empty range")

	// ErrUnsupportedMode reports a reporting window mode other than
	// "calendar" or "financial".
	ErrUnsupportedMode = errors.New("unsupported window mode")
)
