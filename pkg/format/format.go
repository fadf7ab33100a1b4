// Package format renders catalog values for display.
package format

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

const rupee = "₹"

var indianEnglish = language.MustParse("en-IN")

var dateLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02",
}

// Price formats an amount as whole Indian rupees, e.g. 15000 -> "₹15,000".
func Price(amount float64) string {
	rounded := decimal.NewFromFloat(amount).Round(0)
	sign := ""
	if rounded.IsNegative() {
		sign = "-"
		rounded = rounded.Abs()
	}
	p := message.NewPrinter(indianEnglish)
	return sign + rupee + p.Sprint(number.Decimal(rounded.IntPart()))
}

// Date formats an ISO date as a long day-month-year date, e.g.
// "2024-03-05" -> "5 March 2024". Unparseable input is returned trimmed.
func Date(raw string) string {
	raw = strings.TrimSpace(raw)
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, raw); err == nil {
			return t.Format("2 January 2006")
		}
	}
	return raw
}
