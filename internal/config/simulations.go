package config

import (
	"fmt"
	"math"
	"strings"

	"github.com/iwvelando/loan-simulator/pkg/amortization"
	"github.com/iwvelando/loan-simulator/pkg/constants"
	"github.com/iwvelando/loan-simulator/pkg/mathutil"
)

// Product selects the financing entry point.
type Product string

const (
	// ProductVehicle adds IOF to the financed amount and runs Price or SAC.
	ProductVehicle Product = "vehicle"
	// ProductHousing runs the SAC with TR correction over the CET.
	ProductHousing Product = "housing"
	// ProductLoan runs any system with no tax overlay.
	ProductLoan Product = "loan"
)

// Simulation is one financing scenario read from the configuration file.
type Simulation struct {
	Name           string  `json:"name" yaml:"name"`
	Active         bool    `json:"active" yaml:"active"`
	Product        string  `json:"product,omitempty" yaml:"product,omitempty"`
	System         string  `json:"system,omitempty" yaml:"system,omitempty"`
	Price          float64 `json:"price" yaml:"price"`
	DownPayment    float64 `json:"downPayment,omitempty" yaml:"downPayment,omitempty"` // fraction of price
	Rate           float64 `json:"rate" yaml:"rate"`
	RatePeriod     string  `json:"ratePeriod,omitempty" yaml:"ratePeriod,omitempty"` // annual, monthly
	CorrectionRate float64 `json:"correctionRate,omitempty" yaml:"correctionRate,omitempty"`
	Term           float64 `json:"term" yaml:"term"` // whole months
	StartDate      string  `json:"startDate,omitempty" yaml:"startDate,omitempty"`
}

// ProductKind parses the product, defaulting to a plain loan.
func (sim Simulation) ProductKind() (Product, error) {
	switch Product(strings.ToLower(strings.TrimSpace(sim.Product))) {
	case "", ProductLoan:
		return ProductLoan, nil
	case ProductVehicle:
		return ProductVehicle, nil
	case ProductHousing:
		return ProductHousing, nil
	}
	return "", fmt.Errorf("unknown product %q (expected vehicle, housing or loan)", sim.Product)
}

// SystemKind parses the amortization system. An empty system picks the
// product's default: the corrected SAC for housing, Price otherwise.
func (sim Simulation) SystemKind() (amortization.System, error) {
	product, err := sim.ProductKind()
	if err != nil {
		return "", err
	}
	if strings.TrimSpace(sim.System) == "" {
		if product == ProductHousing {
			return amortization.SystemSACCorrected, nil
		}
		return amortization.SystemPrice, nil
	}

	system, err := amortization.ParseSystem(sim.System)
	if err != nil {
		return "", err
	}
	switch {
	case product == ProductHousing && system != amortization.SystemSACCorrected:
		return "", fmt.Errorf("housing financing only supports the %s system, got %s", amortization.SystemSACCorrected, system)
	case product == ProductVehicle && system == amortization.SystemSACCorrected:
		return "", fmt.Errorf("vehicle financing supports the %s and %s systems, got %s",
			amortization.SystemPrice, amortization.SystemSAC, system)
	}
	return system, nil
}

// FinancingConfig converts the simulation into engine input. A term that is
// not a whole number of months is rejected here, before the conversion to
// int would truncate it.
func (sim Simulation) FinancingConfig() (amortization.FinancingConfig, error) {
	system, err := sim.SystemKind()
	if err != nil {
		return amortization.FinancingConfig{}, err
	}
	if !mathutil.IsFinite(sim.Term) || sim.Term != math.Trunc(sim.Term) || math.Abs(sim.Term) > constants.MaxTermMonths {
		return amortization.FinancingConfig{}, &amortization.ValidationError{
			Field: "term",
			Value: sim.Term,
			Err:   amortization.ErrInvalidTerm,
		}
	}
	return amortization.FinancingConfig{
		Price:               sim.Price,
		DownPaymentFraction: sim.DownPayment,
		Rate:                sim.Rate,
		RatePeriod:          amortization.RatePeriod(strings.ToLower(strings.TrimSpace(sim.RatePeriod))),
		Term:                int(sim.Term),
		CorrectionRate:      sim.CorrectionRate,
		System:              system,
		StartDate:           sim.StartDate,
	}, nil
}

// Warnings lists settings that are accepted but probably unintended.
func (sim Simulation) Warnings() []string {
	var warnings []string
	product, _ := sim.ProductKind()

	if sim.CorrectionRate != 0 && product != ProductHousing {
		system, _ := sim.SystemKind()
		if system != amortization.SystemSACCorrected {
			warnings = append(warnings, fmt.Sprintf("Simulation '%s' sets correctionRate but %s does not apply TR correction",
				sim.Name, system))
		}
	}
	if sim.DownPayment == 1 {
		warnings = append(warnings, fmt.Sprintf("Simulation '%s' is fully paid by the down payment - schedule will be empty",
			sim.Name))
	}
	if sim.DownPayment > 1 && sim.DownPayment <= 100 {
		warnings = append(warnings, fmt.Sprintf("Simulation '%s' downPayment %.2f looks like a percentage - expected a fraction such as 0.1",
			sim.Name, sim.DownPayment))
	}
	if sim.Rate >= 1 {
		warnings = append(warnings, fmt.Sprintf("Simulation '%s' rate %.2f looks like a percentage - expected a fraction such as 0.12",
			sim.Name, sim.Rate))
	}
	return warnings
}
