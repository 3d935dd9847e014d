package output

import (
	"fmt"
	"io"
	"strings"

	"github.com/iwvelando/loan-simulator/internal/simulation"
	"github.com/iwvelando/loan-simulator/pkg/amortization"
	"github.com/iwvelando/loan-simulator/pkg/format"
	"golang.org/x/text/message"
)

// PrettyFormat writes a human-readable table and summary per result.
func PrettyFormat(w io.Writer, results []simulation.Result) error {
	p := format.NewPrinter()
	for i, result := range results {
		if i > 0 {
			if _, err := fmt.Fprintln(w); err != nil {
				return err
			}
		}
		if err := prettySchedule(w, p, result); err != nil {
			return err
		}
	}
	return nil
}

func prettySchedule(w io.Writer, p *message.Printer, result simulation.Result) error {
	schedule := result.Schedule
	cols := Columns(schedule.System)

	widths := make([]int, len(cols))
	for i, col := range cols {
		widths[i] = len([]rune(col.Header))
	}
	cells := make([][]string, len(schedule.Records))
	for r, record := range schedule.Records {
		rounded := record.Rounded()
		cells[r] = make([]string, len(cols))
		for i, col := range cols {
			cells[r][i] = format.Currency(p, col.Value(rounded).InexactFloat64())
			if n := len([]rune(cells[r][i])); n > widths[i] {
				widths[i] = n
			}
		}
	}

	if _, err := p.Fprintf(w, "--- Resultado da simulação %s (%s) ---\n", result.Name, strings.ToUpper(string(schedule.System))); err != nil {
		return err
	}

	header := []string{pad(HeaderMonth, 4), pad(HeaderDueDate, 10)}
	rule := []string{strings.Repeat("_", 4), strings.Repeat("_", 10)}
	for i, col := range cols {
		header = append(header, pad(col.Header, widths[i]))
		rule = append(rule, strings.Repeat("_", widths[i]))
	}
	if _, err := fmt.Fprintln(w, strings.Join(header, " | ")); err != nil {
		return err
	}
	if _, err := fmt.Fprintln(w, strings.Join(rule, " | ")); err != nil {
		return err
	}

	for r, record := range schedule.Records {
		line := []string{pad(fmt.Sprint(record.Month), 4), pad(record.DueDate, 10)}
		for i := range cols {
			line = append(line, pad(cells[r][i], widths[i]))
		}
		if _, err := fmt.Fprintln(w, strings.Join(line, " | ")); err != nil {
			return err
		}
	}

	for _, line := range Summary(p, result) {
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
	}
	return nil
}

// Summary narrates the totals of a result, one sentence per line.
func Summary(p *message.Printer, result simulation.Result) []string {
	schedule := result.Schedule
	totals := schedule.Totals
	var lines []string

	lines = append(lines, p.Sprintf("Preço à vista: %s; entrada: %s; valor financiado: %s.",
		format.Currency(p, schedule.Price), format.Currency(p, schedule.DownPayment), format.Currency(p, schedule.FinancedAmount)))
	if schedule.IOFAmount > 0 {
		lines = append(lines, p.Sprintf("IOF de %s (%s) incluído no valor financiado.",
			format.Currency(p, schedule.IOFAmount), format.Percent(p, schedule.IOFRate, 4)))
	}
	if schedule.Empty() {
		lines = append(lines, "A entrada cobre o preço à vista; não há parcelas.")
	} else {
		lines = append(lines, p.Sprintf("%d parcelas somando %s, com %s de juros.",
			schedule.Term, format.Currency(p, totals.Installments), format.Currency(p, totals.Interest)))
		if schedule.System == amortization.SystemSACCorrected {
			lines = append(lines, p.Sprintf("Correção pela TR acumulada: %s.", format.Currency(p, totals.Correction)))
		}
	}
	lines = append(lines, p.Sprintf("Total pago: %s, %s do preço à vista.",
		format.Currency(p, totals.TotalPaid), format.Percent(p, totals.PaidToPriceRatio, 2)))
	for _, note := range result.Notes {
		lines = append(lines, "Observação: "+note)
	}
	return lines
}

func pad(value string, width int) string {
	n := len([]rune(value))
	if n >= width {
		return value
	}
	return value + strings.Repeat(" ", width-n)
}
