// Package renderer renders valuation reports to markdown.
package renderer

import (
	"fmt"
	"strings"

	"github.com/etnz/schedfa"
)

// ScheduleMarkdown renders the valuation schedule to a markdown string, one
// row per record in the given order, with a total line.
func ScheduleMarkdown(records []schedfa.Record, window schedfa.Range) string {
	var b strings.Builder

	fmt.Fprintf(&b, "# Foreign Assets Valuation from %s to %s\n\n", window.From, window.To)

	fmt.Fprintln(&b, "| Entity | Acquired | Quantity | Initial | Peak | Closing |")
	fmt.Fprintln(&b, "|:---|:---|---:|---:|---:|---:|")

	var initial, peak, closing schedfa.Money
	for _, rec := range records {
		name := fmt.Sprintf("%s (%s)", rec.Org.Name, strings.ToUpper(rec.Ticker))
		acquired := rec.Acquired.String()
		if rec.Aggregated {
			acquired += " (aggregate)"
		}
		fmt.Fprintf(&b, "| %s | %s | %s | %s | %s | %s |\n",
			name,
			acquired,
			rec.Quantity,
			rec.PurchaseValue,
			rec.PeakValue,
			rec.ClosingValue,
		)
		initial = initial.Add(rec.PurchaseValue)
		peak = peak.Add(rec.PeakValue)
		closing = closing.Add(rec.ClosingValue)
	}
	fmt.Fprintf(&b, "| **Total** | | | **%s** | **%s** | **%s** |\n", initial, peak, closing)

	fmt.Fprintf(&b, "\n%d record(s). Sale proceeds are always zero: disposals are not modeled.\n", len(records))
	return b.String()
}
