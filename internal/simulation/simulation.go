// Package simulation runs the configured financing simulations and collects
// their schedules.
package simulation

import (
	"fmt"

	"github.com/iwvelando/loan-simulator/internal/config"
	"github.com/iwvelando/loan-simulator/pkg/amortization"
	"github.com/iwvelando/loan-simulator/pkg/mathutil"
	"go.uber.org/zap"
)

// Result holds the outcome of one simulation.
type Result struct {
	Name     string
	Product  config.Product
	Schedule amortization.Schedule
	Notes    []string
}

// Run processes every active simulation in configuration order. The first
// simulation that fails validation aborts the run and its name is included in
// the returned error.
func Run(logger *zap.Logger, conf config.Configuration) ([]Result, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	engine := amortization.NewEngine(logger)
	var results []Result
	for _, sim := range conf.Simulations {
		if !sim.Active {
			logger.Debug(fmt.Sprintf("skipping simulation %s because it is inactive", sim.Name),
				zap.String("op", "simulation.Run"),
			)
			continue
		}

		result, err := Simulate(engine, sim)
		if err != nil {
			return results, fmt.Errorf("simulation %s: %w", sim.Name, err)
		}
		for _, note := range result.Notes {
			logger.Warn(note,
				zap.String("op", "simulation.Run"),
				zap.String("simulation", sim.Name),
			)
		}
		results = append(results, result)
	}

	return results, nil
}

// Simulate runs a single simulation through the entry point its product
// selects.
func Simulate(engine *amortization.Engine, sim config.Simulation) (Result, error) {
	product, err := sim.ProductKind()
	if err != nil {
		return Result{}, err
	}
	cfg, err := sim.FinancingConfig()
	if err != nil {
		return Result{}, err
	}

	var schedule amortization.Schedule
	switch product {
	case config.ProductVehicle:
		schedule, err = engine.Vehicle(cfg)
	case config.ProductHousing:
		schedule, err = engine.Housing(cfg)
	default:
		schedule, err = engine.Loan(cfg)
	}
	if err != nil {
		return Result{}, err
	}

	return Result{
		Name:     sim.Name,
		Product:  product,
		Schedule: schedule,
		Notes:    notes(schedule),
	}, nil
}

func notes(schedule amortization.Schedule) []string {
	var notes []string
	if schedule.Empty() {
		notes = append(notes, "down payment covers the full price; nothing is financed")
		return notes
	}
	if schedule.EarlyPayoff() {
		notes = append(notes, fmt.Sprintf("balance reaches zero in month %d of %d; remaining installments are zero",
			schedule.PaidOffMonth, schedule.Term))
	}
	if final := schedule.FinalBalance(); !mathutil.IsZero(final) {
		notes = append(notes, fmt.Sprintf("residual balance of %.2f after the last installment", final))
	}
	return notes
}
