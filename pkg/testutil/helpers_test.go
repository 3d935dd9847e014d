package testutil

import (
	"testing"

	"github.com/iwvelando/loan-simulator/internal/simulation"
	"github.com/iwvelando/loan-simulator/pkg/amortization"
)

func TestFindResult(t *testing.T) {
	results := []simulation.Result{
		{Name: "Carro", Schedule: amortization.Schedule{Term: 24}},
		{Name: "Apartamento", Schedule: amortization.Schedule{Term: 360}},
		{Name: "Carro usado", Schedule: amortization.Schedule{Term: 36}},
	}

	tests := []struct {
		name         string
		searchName   string
		expectFound  bool
		expectedTerm int
	}{
		{"Find existing result", "Carro", true, 24},
		{"Find result with longer name", "Carro usado", true, 36},
		{"Search for non-existent result", "Moto", false, 0},
		{"Empty search name", "", false, 0},
		{"Case sensitive search", "carro", false, 0},
		{"Partial name match", "Apart", false, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := FindResult(results, tt.searchName)

			if !tt.expectFound {
				if result != nil {
					t.Errorf("FindResult() expected nil for '%s' but got '%s'", tt.searchName, result.Name)
				}
				return
			}
			if result == nil {
				t.Fatalf("FindResult() expected to find '%s' but got nil", tt.searchName)
			}
			if result.Schedule.Term != tt.expectedTerm {
				t.Errorf("FindResult() returned term %d, expected %d", result.Schedule.Term, tt.expectedTerm)
			}
		})
	}
}

func TestFindResultReturnsPointer(t *testing.T) {
	results := []simulation.Result{{Name: "Duplicate"}, {Name: "Duplicate"}}

	found := FindResult(results, "Duplicate")
	if found != &results[0] {
		t.Errorf("FindResult() should return a pointer to the first matching element")
	}
	if FindResult(nil, "Duplicate") != nil {
		t.Errorf("FindResult() with nil results should return nil")
	}
}
