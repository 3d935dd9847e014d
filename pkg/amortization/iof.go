package amortization

import (
	"github.com/iwvelando/loan-simulator/pkg/constants"
	"github.com/iwvelando/loan-simulator/pkg/mathutil"
)

// IOFRate returns the total IOF rate for a financing of term months: a flat
// 0.38% plus 0.0082% per commercial day, capped at 3.38%.
func IOFRate(term int) float64 {
	days := float64(term) * constants.DaysPerMonth
	return mathutil.Min(constants.IOFAdditionalRate+constants.IOFDailyRate*days, constants.IOFMaxRate)
}

// ApplyIOF inflates the amount being financed by the IOF due for term months
// and returns the financed amount together with the tax charged.
func ApplyIOF(amount float64, term int) (financed float64, iof float64) {
	iof = amount * IOFRate(term)
	return amount + iof, iof
}
