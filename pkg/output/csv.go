package output

import (
	"encoding/csv"
	"io"
	"strings"

	"github.com/iwvelando/loan-simulator/internal/simulation"
	"github.com/iwvelando/loan-simulator/pkg/amortization"
)

// CsvFormat writes every result to one CSV stream. Each result gets its own
// header row, led by the simulation name column.
func CsvFormat(w io.Writer, results []simulation.Result) error {
	writer := csv.NewWriter(w)
	for _, result := range results {
		system := result.Schedule.System
		if err := writer.Write(append([]string{HeaderSimulation}, Headers(system)...)); err != nil {
			return err
		}
		for _, record := range result.Schedule.Records {
			if err := writer.Write(append([]string{result.Name}, Row(system, record)...)); err != nil {
				return err
			}
		}
	}
	writer.Flush()
	return writer.Error()
}

// WriteScheduleCSV writes a single schedule: a header row followed by one
// row per month. An empty schedule still gets its header.
func WriteScheduleCSV(w io.Writer, schedule amortization.Schedule) error {
	writer := csv.NewWriter(w)
	if err := writer.Write(Headers(schedule.System)); err != nil {
		return err
	}
	for _, record := range schedule.Records {
		if err := writer.Write(Row(schedule.System, record)); err != nil {
			return err
		}
	}
	writer.Flush()
	return writer.Error()
}

// CsvString renders a schedule as CSV text.
func CsvString(schedule amortization.Schedule) (string, error) {
	var sb strings.Builder
	if err := WriteScheduleCSV(&sb, schedule); err != nil {
		return "", err
	}
	return sb.String(), nil
}
