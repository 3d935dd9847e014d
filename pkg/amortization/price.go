package amortization

import "math"

// PriceInstallment returns the constant installment of the Price system:
// PV·r / (1 − (1+r)^−n), or PV/n when r is zero.
func PriceInstallment(principal, rate float64, term int) float64 {
	if term <= 0 {
		return 0
	}
	if rate == 0 {
		return principal / float64(term)
	}
	return principal * rate / (1 - math.Pow(1+rate, -float64(term)))
}

// Price builds a constant-installment schedule for principal at the monthly
// rate over term months. The last month amortizes whatever balance is left
// so the schedule closes at exactly zero.
func Price(principal, rate float64, term int) []Record {
	if term <= 0 {
		return nil
	}

	installment := PriceInstallment(principal, rate, term)
	records := make([]Record, term)
	balance := principal
	for i := range records {
		interest := balance * rate
		amortization := installment - interest
		payment := installment
		closing := balance - amortization
		if i == term-1 {
			amortization = balance
			payment = amortization + interest
			closing = 0
		}

		records[i] = Record{
			Month:            i + 1,
			OpeningBalance:   balance,
			CorrectedBalance: balance,
			Interest:         interest,
			Amortization:     amortization,
			Installment:      payment,
			ClosingBalance:   closing,
		}
		balance = closing
	}

	accumulate(records)
	return records
}
