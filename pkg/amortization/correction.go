package amortization

import (
	"fmt"

	"github.com/iwvelando/loan-simulator/pkg/constants"
	"github.com/iwvelando/loan-simulator/pkg/mathutil"
)

// SACWithCorrection builds the housing schedule. Each month the opening
// balance is first corrected by the monthly TR, interest (the monthly CET) is
// charged on the corrected balance, and the amortization is re-derived as
// corrected balance / remaining months. Both rates are monthly.
//
// Once the balance is settled the remaining months are emitted as zero
// records, so the result always has exactly term records.
func SACWithCorrection(principal, rate, correctionRate float64, term int) []Record {
	if term <= 0 {
		return nil
	}

	records := make([]Record, 0, term)
	balance := principal
	for month := 1; month <= term; month++ {
		if balance <= constants.PaidOffTolerance {
			for ; month <= term; month++ {
				records = append(records, Record{Month: month})
			}
			break
		}

		opening := balance
		correction := opening * correctionRate
		corrected := opening + correction
		if corrected < 0 {
			corrected = 0
		}

		var interest float64
		if corrected <= constants.PaidOffTolerance {
			corrected = 0
		} else {
			interest = corrected * rate
		}

		remaining := term - month + 1
		if remaining <= 0 {
			panic(fmt.Sprintf("amortization: month %d beyond term %d", month, term))
		}
		amortization := corrected / float64(remaining)
		closing := mathutil.SnapToZero(corrected-amortization, constants.CurrencyTolerance)
		if month == term && closing != 0 {
			amortization = corrected
			closing = 0
		}

		records = append(records, Record{
			Month:            month,
			OpeningBalance:   opening,
			Correction:       correction,
			CorrectedBalance: corrected,
			Interest:         interest,
			Amortization:     amortization,
			Installment:      amortization + interest,
			ClosingBalance:   closing,
		})
		balance = closing
	}

	accumulate(records)
	return records
}
