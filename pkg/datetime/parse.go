// Package datetime provides the month arithmetic used to label schedule
// records with their due month.
package datetime

import (
	"time"

	"github.com/iwvelando/loan-simulator/pkg/constants"
)

const (
	// DateTimeLayout is the format expected in config files and is also the
	// due-month label format.
	DateTimeLayout = constants.DateTimeLayout
)

// ValidateMonth checks that date is a YYYY-MM month.
func ValidateMonth(date string) error {
	_, err := time.Parse(DateTimeLayout, date)
	return err
}

// OffsetDate returns the string-formatted date offset by the given number of
// months relative to the given date.
func OffsetDate(date, layout string, months int) (string, error) {
	t, err := time.Parse(layout, date)
	if err != nil {
		return date, err
	}
	return t.AddDate(0, months, 0).Format(layout), nil
}

// MonthLabels returns count consecutive month labels starting at start.
func MonthLabels(start string, count int) ([]string, error) {
	if err := ValidateMonth(start); err != nil {
		return nil, err
	}
	labels := make([]string, count)
	for i := range labels {
		label, err := OffsetDate(start, DateTimeLayout, i)
		if err != nil {
			return nil, err
		}
		labels[i] = label
	}
	return labels, nil
}
