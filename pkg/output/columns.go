// Package output renders simulation results as text tables, CSV,
// spreadsheets and charts.
package output

import (
	"strconv"

	"github.com/iwvelando/loan-simulator/pkg/amortization"
	"github.com/shopspring/decimal"
)

// Column is one money column of a schedule table.
type Column struct {
	Header string
	Value  func(amortization.RoundedRecord) decimal.Decimal
}

// Leading headers shared by every table.
const (
	HeaderSimulation = "Simulação"
	HeaderMonth      = "Mês"
	HeaderDueDate    = "Vencimento"
)

var (
	colOpening     = Column{"Saldo inicial", func(r amortization.RoundedRecord) decimal.Decimal { return r.OpeningBalance }}
	colCorrection  = Column{"Correção TR", func(r amortization.RoundedRecord) decimal.Decimal { return r.Correction }}
	colCorrected   = Column{"Saldo corrigido", func(r amortization.RoundedRecord) decimal.Decimal { return r.CorrectedBalance }}
	colInterest    = Column{"Juros", func(r amortization.RoundedRecord) decimal.Decimal { return r.Interest }}
	colAmortized   = Column{"Amortização", func(r amortization.RoundedRecord) decimal.Decimal { return r.Amortization }}
	colInstallment = Column{"Prestação", func(r amortization.RoundedRecord) decimal.Decimal { return r.Installment }}
	colClosing     = Column{"Saldo final", func(r amortization.RoundedRecord) decimal.Decimal { return r.ClosingBalance }}
	colCumInterest = Column{"Juros acumulados", func(r amortization.RoundedRecord) decimal.Decimal { return r.CumulativeInterest }}
	colCumAmort    = Column{"Amortização acumulada", func(r amortization.RoundedRecord) decimal.Decimal { return r.CumulativeAmortization }}
	colCumCorr     = Column{"Correção acumulada", func(r amortization.RoundedRecord) decimal.Decimal { return r.CumulativeCorrection }}
)

// Columns returns the money columns for a system. Correction columns appear
// only for the corrected SAC.
func Columns(system amortization.System) []Column {
	if system == amortization.SystemSACCorrected {
		return []Column{colOpening, colCorrection, colCorrected, colInterest, colAmortized,
			colInstallment, colClosing, colCumInterest, colCumAmort, colCumCorr}
	}
	return []Column{colOpening, colInterest, colAmortized, colInstallment, colClosing,
		colCumInterest, colCumAmort}
}

// Headers returns the full header row for a system.
func Headers(system amortization.System) []string {
	cols := Columns(system)
	headers := make([]string, 0, len(cols)+2)
	headers = append(headers, HeaderMonth, HeaderDueDate)
	for _, col := range cols {
		headers = append(headers, col.Header)
	}
	return headers
}

// Row returns the rounded values of a record as plain decimal strings, in
// Headers order.
func Row(system amortization.System, record amortization.Record) []string {
	rounded := record.Rounded()
	cols := Columns(system)
	row := make([]string, 0, len(cols)+2)
	row = append(row, strconv.Itoa(rounded.Month), rounded.DueDate)
	for _, col := range cols {
		row = append(row, col.Value(rounded).StringFixed(2))
	}
	return row
}
