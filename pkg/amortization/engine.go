package amortization

import (
	"fmt"

	"github.com/iwvelando/loan-simulator/pkg/datetime"
	"github.com/iwvelando/loan-simulator/pkg/mathutil"
	"go.uber.org/zap"
)

// Engine runs validated simulations and logs what it decides along the way.
type Engine struct {
	logger *zap.Logger
}

// NewEngine creates a new engine instance.
func NewEngine(logger *zap.Logger) *Engine {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Engine{logger: logger}
}

// Vehicle simulates a vehicle financing: the IOF tax is added to the amount
// being financed, then the Price or SAC system runs on the inflated
// principal.
func (e *Engine) Vehicle(cfg FinancingConfig) (Schedule, error) {
	if err := cfg.Validate(); err != nil {
		return Schedule{}, err
	}
	system := cfg.System
	if system == "" {
		system = SystemPrice
	}
	if system != SystemPrice && system != SystemSAC {
		return Schedule{}, invalid("system", cfg.System, ErrUnsupportedSystem)
	}

	downPayment := cfg.DownPayment()
	financed, iof := ApplyIOF(cfg.Price-downPayment, cfg.Term)
	e.logger.Debug(fmt.Sprintf("applying IOF %.4f%% (%.2f) over %d months",
		IOFRate(cfg.Term)*100, iof, cfg.Term),
		zap.String("op", "amortization.Vehicle"),
	)

	schedule := e.build(cfg, system, financed, "amortization.Vehicle")
	schedule.IOFAmount = iof
	if iof > 0 {
		schedule.IOFRate = IOFRate(cfg.Term)
	}
	return schedule, nil
}

// Housing simulates a housing financing under the corrected SAC, reading
// Rate as the annual CET and CorrectionRate as the annual TR.
func (e *Engine) Housing(cfg FinancingConfig) (Schedule, error) {
	if err := cfg.Validate(); err != nil {
		return Schedule{}, err
	}
	if cfg.System != "" && cfg.System != SystemSACCorrected {
		return Schedule{}, invalid("system", cfg.System, ErrUnsupportedSystem)
	}

	financed := cfg.Price - cfg.DownPayment()
	return e.build(cfg, SystemSACCorrected, financed, "amortization.Housing"), nil
}

// Loan simulates a plain loan under any system with no tax overlay.
func (e *Engine) Loan(cfg FinancingConfig) (Schedule, error) {
	if err := cfg.Validate(); err != nil {
		return Schedule{}, err
	}
	system := cfg.System
	switch system {
	case "":
		system = SystemPrice
	case SystemPrice, SystemSAC, SystemSACCorrected:
	default:
		return Schedule{}, invalid("system", cfg.System, ErrUnsupportedSystem)
	}

	financed := cfg.Price - cfg.DownPayment()
	return e.build(cfg, system, financed, "amortization.Loan"), nil
}

func (e *Engine) build(cfg FinancingConfig, system System, financed float64, op string) Schedule {
	downPayment := cfg.DownPayment()
	schedule := Schedule{
		System:         system,
		Term:           cfg.Term,
		Price:          cfg.Price,
		DownPayment:    downPayment,
		FinancedAmount: financed,
		MonthlyRate:    cfg.periodicRate(system),
	}
	if system == SystemSACCorrected {
		schedule.MonthlyCorrectionRate = mathutil.MonthlyRateFromAnnual(cfg.CorrectionRate)
	}

	if financed <= 0 {
		e.logger.Debug("down payment covers the full price, nothing to finance",
			zap.String("op", op),
			zap.Float64("price", cfg.Price),
		)
		schedule.FinancedAmount = 0
		schedule.Totals = summarize(nil, cfg.Price, downPayment)
		return schedule
	}

	switch system {
	case SystemPrice:
		schedule.Records = Price(financed, schedule.MonthlyRate, cfg.Term)
	case SystemSAC:
		schedule.Records = SAC(financed, schedule.MonthlyRate, cfg.Term)
	case SystemSACCorrected:
		schedule.Records = SACWithCorrection(financed, schedule.MonthlyRate, schedule.MonthlyCorrectionRate, cfg.Term)
	}

	if system != SystemSACCorrected {
		e.logger.Debug(fmt.Sprintf("final installment settles the remaining balance, adjusted by %.6f",
			finalAdjustment(system, schedule.Records, financed, schedule.MonthlyRate, cfg.Term)),
			zap.String("op", op),
			zap.Int("month", cfg.Term),
		)
	}

	if cfg.StartDate != "" {
		// StartDate was validated, so labelling cannot fail.
		labels, _ := datetime.MonthLabels(cfg.StartDate, len(schedule.Records))
		for i := range labels {
			schedule.Records[i].DueDate = labels[i]
		}
	}

	schedule.Totals = summarize(schedule.Records, cfg.Price, downPayment)
	schedule.PaidOffMonth = paidOffMonth(schedule.Records)
	if schedule.EarlyPayoff() {
		e.logger.Debug(fmt.Sprintf("financing paid off in month %d of %d", schedule.PaidOffMonth, cfg.Term),
			zap.String("op", op),
		)
	}

	e.logger.Debug("schedule computed",
		zap.String("op", op),
		zap.String("system", string(system)),
		zap.Float64("financed", financed),
		zap.Float64("monthlyRate", schedule.MonthlyRate),
		zap.Int("term", cfg.Term),
		zap.Float64("installments", schedule.Totals.Installments),
	)
	return schedule
}

// finalAdjustment is how far the last month strays from the regular
// installment (Price) or amortization share (SAC) once it absorbs the
// remaining balance. The corrected SAC always amortizes its whole balance in
// the last month, so it has none.
func finalAdjustment(system System, records []Record, financed, rate float64, term int) float64 {
	if len(records) == 0 {
		return 0
	}
	last := records[len(records)-1]
	switch system {
	case SystemPrice:
		return last.Installment - PriceInstallment(financed, rate, term)
	case SystemSAC:
		return last.Amortization - financed/float64(term)
	}
	return 0
}
