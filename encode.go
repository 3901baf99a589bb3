package schedfa

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
)

func init() {
	decimal.MarshalJSONWithoutQuotes = true
}

// this file contains the output encoders for the valuation schedule.
// Rounding to whole units of the target currency happens here and nowhere
// else; the records themselves keep full precision.

// scheduleHeaders are the columns of the Schedule FA (section A3) form.
var scheduleHeaders = []string{
	"Sr No",
	"Country/Region name",
	"Name of entity",
	"Address of entity",
	"ZIP Code",
	"Nature of entity",
	"Date of acquiring the interest",
	"Initial value of the investment",
	"Peak value of investment during the Period",
	"Closing balance",
	"Total gross amount paid/credited with respect to the holding during the period",
	"Total gross proceeds from sale or redemption of investment during the period",
}

// EncodeRecordsCSV writes records to 'w' as the Schedule FA CSV, one row per
// record in the given order. Monetary values are rounded to whole units.
func EncodeRecordsCSV(w io.Writer, records []Record) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(scheduleHeaders); err != nil {
		return err
	}
	for i, rec := range records {
		zip := rec.Org.ZipCode
		if len(zip) > 8 { // the form truncates ZIP codes to 8 characters
			zip = zip[:8]
		}
		row := []string{
			strconv.Itoa(i + 1),
			rec.Org.Country,
			fmt.Sprintf("%s (%s)", rec.Org.Name, strings.ToUpper(rec.Ticker)),
			strings.ReplaceAll(rec.Org.Address, ",", ""),
			zip,
			rec.Org.Nature,
			rec.Acquired.String(),
			rec.PurchaseValue.Rounded().String(),
			rec.PeakValue.Rounded().String(),
			rec.ClosingValue.Rounded().String(),
			rec.SaleProceeds.Rounded().String(),
			rec.SaleProceeds.Rounded().String(),
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// jsonRecord is the on-disk shape of a Record, full precision.
type jsonRecord struct {
	Org           Organization `json:"org"`
	Ticker        string       `json:"ticker"`
	Acquired      Date         `json:"date"`
	Quantity      Quantity     `json:"quantity"`
	UnitFMV       Money        `json:"purchase_fmv"`
	Aggregated    bool         `json:"aggregated,omitempty"`
	PurchaseValue Money        `json:"purchase_value"`
	PeakValue     Money        `json:"peak_value"`
	ClosingValue  Money        `json:"closing_value"`
	SaleProceeds  Money        `json:"sale_proceeds"`
}

// EncodeRecordsJSON writes records to 'w' as JSONL, one record per line,
// keeping the full precision of every monetary value.
func EncodeRecordsJSON(w io.Writer, records []Record) error {
	for _, rec := range records {
		data, err := json.Marshal(jsonRecord{
			Org:           rec.Org,
			Ticker:        rec.Ticker,
			Acquired:      rec.Acquired,
			Quantity:      rec.Quantity,
			UnitFMV:       rec.UnitFMV,
			Aggregated:    rec.Aggregated,
			PurchaseValue: rec.PurchaseValue,
			PeakValue:     rec.PeakValue,
			ClosingValue:  rec.ClosingValue,
			SaleProceeds:  rec.SaleProceeds,
		})
		if err != nil {
			return fmt.Errorf("cannot marshal record %q on %s: %w", rec.Ticker, rec.Acquired, err)
		}
		if _, err := w.Write(append(data, '\n')); err != nil {
			return fmt.Errorf("cannot write record: %w", err)
		}
	}
	return nil
}
