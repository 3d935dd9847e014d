package amortization

// SAC builds a constant-amortization schedule: every month amortizes
// principal/term and pays interest on the balance still open, so installments
// decline over time.
func SAC(principal, rate float64, term int) []Record {
	if term <= 0 {
		return nil
	}

	amortization := principal / float64(term)
	records := make([]Record, term)
	balance := principal
	for i := range records {
		interest := balance * rate
		share := amortization
		closing := balance - share
		if i == term-1 {
			share = balance
			closing = 0
		}

		records[i] = Record{
			Month:            i + 1,
			OpeningBalance:   balance,
			CorrectedBalance: balance,
			Interest:         interest,
			Amortization:     share,
			Installment:      share + interest,
			ClosingBalance:   closing,
		}
		balance = closing
	}

	accumulate(records)
	return records
}
