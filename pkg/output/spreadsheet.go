package output

import (
	"fmt"
	"io"
	"strings"

	"github.com/iwvelando/loan-simulator/internal/simulation"
	"github.com/iwvelando/loan-simulator/pkg/amortization"
	"github.com/xuri/excelize/v2"
)

// SummarySheet is the name of the first sheet of an exported workbook.
const SummarySheet = "Resumo"

const maxSheetNameLength = 31

var summaryHeaders = []interface{}{
	HeaderSimulation, "Sistema", "Prazo", "Preço à vista", "Entrada", "Valor financiado", "IOF",
	"Total das parcelas", "Juros", "Amortização", "Correção TR", "Total pago", "Total pago / preço",
}

// WriteSpreadsheet writes a workbook with a summary sheet followed by one
// sheet per result. Empty schedules still get their header row.
func WriteSpreadsheet(w io.Writer, results []simulation.Result) error {
	f := excelize.NewFile()
	defer func() { _ = f.Close() }()

	if err := f.SetSheetName("Sheet1", SummarySheet); err != nil {
		return err
	}
	if err := f.SetSheetRow(SummarySheet, "A1", &summaryHeaders); err != nil {
		return err
	}

	used := map[string]bool{strings.ToLower(SummarySheet): true}
	for i, result := range results {
		sheet := SheetName(result.Name, used)

		if err := writeSummaryRow(f, i+2, result); err != nil {
			return err
		}
		if _, err := f.NewSheet(sheet); err != nil {
			return fmt.Errorf("creating sheet for %s: %w", result.Name, err)
		}
		if err := writeScheduleSheet(f, sheet, result.Schedule); err != nil {
			return fmt.Errorf("writing sheet for %s: %w", result.Name, err)
		}
	}

	f.SetActiveSheet(0)
	_, err := f.WriteTo(w)
	return err
}

func writeSummaryRow(f *excelize.File, row int, result simulation.Result) error {
	s := result.Schedule
	t := s.Totals
	values := []interface{}{
		result.Name, string(s.System), s.Term,
		money(s.Price), money(s.DownPayment), money(s.FinancedAmount), money(s.IOFAmount),
		money(t.Installments), money(t.Interest), money(t.Amortization), money(t.Correction),
		money(t.TotalPaid), t.PaidToPriceRatio,
	}
	cell, err := excelize.CoordinatesToCellName(1, row)
	if err != nil {
		return err
	}
	return f.SetSheetRow(SummarySheet, cell, &values)
}

func writeScheduleSheet(f *excelize.File, sheet string, schedule amortization.Schedule) error {
	headers := Headers(schedule.System)
	headerRow := make([]interface{}, len(headers))
	for i, h := range headers {
		headerRow[i] = h
	}
	if err := f.SetSheetRow(sheet, "A1", &headerRow); err != nil {
		return err
	}

	cols := Columns(schedule.System)
	for i, record := range schedule.Records {
		rounded := record.Rounded()
		values := make([]interface{}, 0, len(cols)+2)
		values = append(values, rounded.Month, rounded.DueDate)
		for _, col := range cols {
			values = append(values, col.Value(rounded).InexactFloat64())
		}
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(sheet, cell, &values); err != nil {
			return err
		}
	}
	return nil
}

func money(v float64) float64 {
	return amortization.Money(v).InexactFloat64()
}

// SheetName turns a simulation name into a valid worksheet name not yet in
// used, and records it there. Names compare case-insensitively.
func SheetName(name string, used map[string]bool) string {
	cleaned := strings.Map(func(r rune) rune {
		switch r {
		case ':', '\\', '/', '?', '*', '[', ']':
			return '_'
		}
		return r
	}, strings.TrimSpace(name))
	cleaned = strings.Trim(cleaned, "'")
	if cleaned == "" {
		cleaned = "Simulação"
	}
	cleaned = strings.TrimSpace(truncate(cleaned, maxSheetNameLength))

	candidate := cleaned
	for n := 2; used[strings.ToLower(candidate)]; n++ {
		suffix := fmt.Sprintf(" (%d)", n)
		candidate = strings.TrimSpace(truncate(cleaned, maxSheetNameLength-len(suffix))) + suffix
	}
	used[strings.ToLower(candidate)] = true
	return candidate
}

func truncate(value string, limit int) string {
	runes := []rune(value)
	if len(runes) <= limit {
		return value
	}
	return string(runes[:limit])
}
