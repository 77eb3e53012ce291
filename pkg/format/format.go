// Package format renders dashboard figures as display strings.
package format

import (
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// Placeholder is returned for values that cannot be displayed.
const Placeholder = "—"

// DisplayZone is the fixed UTC-3 zone used for chart labels.
var DisplayZone = time.FixedZone("BRT", -3*60*60)

var printer = message.NewPrinter(language.English)

// Currency formats a USD amount: "$1.2M" from one million up, grouped whole
// dollars from one thousand up, cents below that. Negative values get a
// leading minus.
func Currency(amount float64) string {
	if math.IsNaN(amount) || math.IsInf(amount, 0) {
		return Placeholder
	}

	sign := ""
	if amount < 0 {
		sign = "-"
	}
	abs := decimal.NewFromFloat(math.Abs(amount))

	switch {
	case abs.GreaterThanOrEqual(decimal.NewFromInt(1_000_000)):
		return sign + "$" + abs.Div(decimal.NewFromInt(1_000_000)).StringFixed(1) + "M"
	case abs.GreaterThanOrEqual(decimal.NewFromInt(1_000)):
		return sign + "$" + printer.Sprintf("%d", abs.Round(0).IntPart())
	default:
		return sign + "$" + abs.StringFixed(2)
	}
}

// Percent formats a 0..1 rate with one decimal place.
func Percent(rate float64) string {
	return PercentWithDecimals(rate, 1)
}

func PercentWithDecimals(rate float64, decimals int) string {
	if math.IsNaN(rate) || math.IsInf(rate, 0) {
		return Placeholder
	}
	return fmt.Sprintf("%.*f%%", decimals, rate*100)
}

// Delta formats a rate difference in percentage points, always signed.
func Delta(delta float64) string {
	if math.IsNaN(delta) || math.IsInf(delta, 0) {
		return Placeholder
	}
	sign := ""
	if delta >= 0 {
		sign = "+"
	}
	return fmt.Sprintf("%s%.1fpp", sign, delta*100)
}

// Duration formats milliseconds as "1h 23m 40s". Minutes are shown whenever
// hours are.
func Duration(ms int64) string {
	if ms <= 0 {
		return "0s"
	}
	total := ms / 1000
	h := total / 3600
	m := (total % 3600) / 60
	s := total % 60

	parts := make([]string, 0, 3)
	if h > 0 {
		parts = append(parts, fmt.Sprintf("%dh", h))
	}
	if m > 0 || h > 0 {
		parts = append(parts, fmt.Sprintf("%dm", m))
	}
	parts = append(parts, fmt.Sprintf("%ds", s))
	return strings.Join(parts, " ")
}

// TimeLabel renders t as 24-hour HH:MM in DisplayZone.
func TimeLabel(t time.Time) string {
	return t.In(DisplayZone).Format("15:04")
}
