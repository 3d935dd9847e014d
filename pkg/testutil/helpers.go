// Package testutil provides common utility functions for testing.
package testutil

import (
	"math"
	"testing"

	"github.com/iwvelando/loan-simulator/internal/simulation"
)

// FindResult finds a simulation result by name in the results slice.
// Returns a pointer to the result if found, nil otherwise.
func FindResult(results []simulation.Result, name string) *simulation.Result {
	for i := range results {
		if results[i].Name == name {
			return &results[i]
		}
	}
	return nil
}

// AssertClose fails the test when got and expected differ by more than tol.
func AssertClose(t testing.TB, label string, got, expected, tol float64) {
	t.Helper()
	if math.Abs(got-expected) > tol {
		t.Errorf("%s = %.6f, expected %.6f (tolerance %g)", label, got, expected, tol)
	}
}
