// Package format renders money and rates the way Brazilian financing
// statements print them.
package format

import (
	"fmt"
	"math"

	"github.com/iwvelando/loan-simulator/pkg/constants"
	"github.com/iwvelando/loan-simulator/pkg/mathutil"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// NewPrinter returns the printer used for every user-facing number, grouping
// thousands with "." and separating decimals with ",".
func NewPrinter() *message.Printer {
	return message.NewPrinter(language.BrazilianPortuguese)
}

// Currency returns a real-denominated string with thousands separators
// (e.g., "-R$ 1.234,56"). Amounts that round to zero cents print unsigned.
func Currency(p *message.Printer, amount float64) string {
	rounded := mathutil.Round(amount)
	if rounded < 0 {
		return "-R$ " + p.Sprintf("%.2f", -rounded)
	}
	return "R$ " + p.Sprintf("%.2f", math.Abs(rounded))
}

// Percent renders a fraction as a percentage with the given decimals
// (e.g., Percent(p, 0.0338, 2) = "3,38%").
func Percent(p *message.Printer, fraction float64, decimals int) string {
	return p.Sprintf(fmt.Sprintf("%%.%df%%%%", decimals), fraction*constants.PercentageMultiplier)
}
