// Package amortization computes loan amortization schedules for the Price
// (constant installment) and SAC (constant amortization) systems, including
// the housing SAC variant whose balance is corrected monthly by the TR index.
//
// Every recurrence runs at full float64 precision. Rounding to cents happens
// only when a record is exported through Rounded, and the last record of a
// schedule always closes at exactly zero.
package amortization

import (
	"github.com/iwvelando/loan-simulator/pkg/constants"
	"github.com/shopspring/decimal"
)

// Record holds the values of one monthly period.
type Record struct {
	Month   int    `json:"month"`
	DueDate string `json:"dueDate,omitempty"`

	OpeningBalance   float64 `json:"openingBalance"`
	Correction       float64 `json:"correction"`
	CorrectedBalance float64 `json:"correctedBalance"`
	Interest         float64 `json:"interest"`
	Amortization     float64 `json:"amortization"`
	Installment      float64 `json:"installment"`
	ClosingBalance   float64 `json:"closingBalance"`

	CumulativeInterest     float64 `json:"cumulativeInterest"`
	CumulativeAmortization float64 `json:"cumulativeAmortization"`
	CumulativeCorrection   float64 `json:"cumulativeCorrection"`
}

// IsZero reports whether the record carries no money at all, which is how
// months after an early payoff are represented.
func (r Record) IsZero() bool {
	return r.OpeningBalance == 0 && r.Correction == 0 && r.CorrectedBalance == 0 &&
		r.Interest == 0 && r.Amortization == 0 && r.Installment == 0 && r.ClosingBalance == 0
}

// RoundedRecord is a Record with every money field rounded to cents.
type RoundedRecord struct {
	Month   int    `json:"month"`
	DueDate string `json:"dueDate,omitempty"`

	OpeningBalance   decimal.Decimal `json:"openingBalance"`
	Correction       decimal.Decimal `json:"correction"`
	CorrectedBalance decimal.Decimal `json:"correctedBalance"`
	Interest         decimal.Decimal `json:"interest"`
	Amortization     decimal.Decimal `json:"amortization"`
	Installment      decimal.Decimal `json:"installment"`
	ClosingBalance   decimal.Decimal `json:"closingBalance"`

	CumulativeInterest     decimal.Decimal `json:"cumulativeInterest"`
	CumulativeAmortization decimal.Decimal `json:"cumulativeAmortization"`
	CumulativeCorrection   decimal.Decimal `json:"cumulativeCorrection"`
}

// Money rounds a full-precision amount to cents, half away from zero.
func Money(value float64) decimal.Decimal {
	return decimal.NewFromFloat(value).Round(constants.DecimalPlaces)
}

// Rounded rounds each field independently; nothing is fed back into the
// recurrence.
func (r Record) Rounded() RoundedRecord {
	return RoundedRecord{
		Month:                  r.Month,
		DueDate:                r.DueDate,
		OpeningBalance:         Money(r.OpeningBalance),
		Correction:             Money(r.Correction),
		CorrectedBalance:       Money(r.CorrectedBalance),
		Interest:               Money(r.Interest),
		Amortization:           Money(r.Amortization),
		Installment:            Money(r.Installment),
		ClosingBalance:         Money(r.ClosingBalance),
		CumulativeInterest:     Money(r.CumulativeInterest),
		CumulativeAmortization: Money(r.CumulativeAmortization),
		CumulativeCorrection:   Money(r.CumulativeCorrection),
	}
}

// Totals summarizes a schedule.
type Totals struct {
	// Installments is the sum of every installment paid.
	Installments float64 `json:"installments"`
	// TotalPaid adds the down payment to Installments.
	TotalPaid float64 `json:"totalPaid"`
	// PaidToPriceRatio is TotalPaid over the cash price.
	PaidToPriceRatio float64 `json:"paidToPriceRatio"`
	Interest         float64 `json:"interest"`
	Amortization     float64 `json:"amortization"`
	Correction       float64 `json:"correction"`
}

// Schedule is the result of one simulation.
type Schedule struct {
	System System `json:"system"`
	Term   int    `json:"term"`

	Price          float64 `json:"price"`
	DownPayment    float64 `json:"downPayment"`
	FinancedAmount float64 `json:"financedAmount"`
	IOFRate        float64 `json:"iofRate,omitempty"`
	IOFAmount      float64 `json:"iofAmount,omitempty"`
	// MonthlyRate and MonthlyCorrectionRate are the periodic rates the
	// recurrence actually used.
	MonthlyRate           float64 `json:"monthlyRate"`
	MonthlyCorrectionRate float64 `json:"monthlyCorrectionRate,omitempty"`

	Records []Record `json:"records"`
	Totals  Totals   `json:"totals"`
	// PaidOffMonth is the first month closing at zero; 0 for an empty schedule.
	PaidOffMonth int `json:"paidOffMonth"`
}

// Empty reports whether nothing was financed.
func (s Schedule) Empty() bool {
	return len(s.Records) == 0
}

// EarlyPayoff reports whether the balance reached zero before the last month.
func (s Schedule) EarlyPayoff() bool {
	return s.PaidOffMonth > 0 && s.PaidOffMonth < s.Term
}

// FinalBalance returns the closing balance of the last record.
func (s Schedule) FinalBalance() float64 {
	if len(s.Records) == 0 {
		return 0
	}
	return s.Records[len(s.Records)-1].ClosingBalance
}

// accumulate fills the cumulative columns as prefix sums over the finished
// per-period values.
func accumulate(records []Record) {
	var interest, amortization, correction float64
	for i := range records {
		interest += records[i].Interest
		amortization += records[i].Amortization
		correction += records[i].Correction
		records[i].CumulativeInterest = interest
		records[i].CumulativeAmortization = amortization
		records[i].CumulativeCorrection = correction
	}
}

func summarize(records []Record, price, downPayment float64) Totals {
	totals := Totals{}
	for _, record := range records {
		totals.Installments += record.Installment
		totals.Interest += record.Interest
		totals.Amortization += record.Amortization
		totals.Correction += record.Correction
	}
	totals.TotalPaid = totals.Installments + downPayment
	if price > 0 {
		totals.PaidToPriceRatio = totals.TotalPaid / price
	}
	return totals
}

func paidOffMonth(records []Record) int {
	for _, record := range records {
		if record.ClosingBalance == 0 {
			return record.Month
		}
	}
	return 0
}
