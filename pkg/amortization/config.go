package amortization

import (
	"fmt"
	"strings"

	"github.com/iwvelando/loan-simulator/pkg/constants"
	"github.com/iwvelando/loan-simulator/pkg/datetime"
	"github.com/iwvelando/loan-simulator/pkg/mathutil"
)

// System selects the repayment convention.
type System string

const (
	// SystemPrice keeps the installment constant (French system).
	SystemPrice System = "price"
	// SystemSAC keeps the amortized principal constant.
	SystemSAC System = "sac"
	// SystemSACCorrected re-derives the amortization every month against a
	// balance corrected by the TR index.
	SystemSACCorrected System = "sac-tr"
)

// RatePeriod tells how the configured rate is quoted.
type RatePeriod string

const (
	// RatePeriodAnnual is the default. Price and SAC read it as a nominal
	// annual rate (divided by 12); the corrected SAC reads it as an effective
	// annual cost (CET) and compounds it down to a monthly rate.
	RatePeriodAnnual RatePeriod = "annual"
	// RatePeriodMonthly means the rate is already periodic.
	RatePeriodMonthly RatePeriod = "monthly"
)

// ParseSystem normalizes a user-supplied system name.
func ParseSystem(value string) (System, error) {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "price", "french":
		return SystemPrice, nil
	case "sac":
		return SystemSAC, nil
	case "sac-tr", "sac_tr", "sactr":
		return SystemSACCorrected, nil
	}
	return "", fmt.Errorf("unknown amortization system %q", value)
}

// FinancingConfig holds the inputs of one financing simulation.
type FinancingConfig struct {
	// Price is the cash price of the asset; with no down payment it is the
	// principal.
	Price float64 `json:"price" yaml:"price"`
	// DownPaymentFraction is the share of Price paid up front, in [0, 1].
	DownPaymentFraction float64 `json:"downPayment" yaml:"downPayment"`
	// Rate is the interest rate as a fraction, quoted per RatePeriod.
	Rate       float64    `json:"rate" yaml:"rate"`
	RatePeriod RatePeriod `json:"ratePeriod,omitempty" yaml:"ratePeriod,omitempty"`
	// Term is the number of monthly installments.
	Term int `json:"term" yaml:"term"`
	// CorrectionRate is the annual TR used by the corrected SAC.
	CorrectionRate float64 `json:"correctionRate,omitempty" yaml:"correctionRate,omitempty"`
	System         System  `json:"system" yaml:"system"`
	// StartDate optionally labels month 1 (YYYY-MM); later months follow.
	StartDate string `json:"startDate,omitempty" yaml:"startDate,omitempty"`
}

// Validate checks every input before anything is computed and returns the
// first violation as a *ValidationError.
func (c FinancingConfig) Validate() error {
	if !mathutil.IsFinite(c.Price) || c.Price <= 0 {
		return invalid("price", c.Price, ErrInvalidPrice)
	}
	if !mathutil.IsFinite(c.DownPaymentFraction) || c.DownPaymentFraction < 0 || c.DownPaymentFraction > 1 {
		return invalid("downPayment", c.DownPaymentFraction, ErrInvalidDownPaymentFraction)
	}
	if !mathutil.IsFinite(c.Rate) || c.Rate < 0 {
		return invalid("rate", c.Rate, ErrInvalidRate)
	}
	switch c.RatePeriod {
	case "", RatePeriodAnnual, RatePeriodMonthly:
	default:
		return invalid("ratePeriod", c.RatePeriod, ErrInvalidRate)
	}
	if c.Term <= 0 || c.Term > constants.MaxTermMonths {
		return invalid("term", c.Term, ErrInvalidTerm)
	}
	if !mathutil.IsFinite(c.CorrectionRate) || c.CorrectionRate < 0 {
		return invalid("correctionRate", c.CorrectionRate, ErrInvalidCorrectionRate)
	}
	if c.StartDate != "" {
		if err := datetime.ValidateMonth(c.StartDate); err != nil {
			return invalid("startDate", c.StartDate, ErrInvalidStartDate)
		}
	}
	return nil
}

// DownPayment returns the amount paid up front.
func (c FinancingConfig) DownPayment() float64 {
	return c.Price * c.DownPaymentFraction
}

// periodicRate converts the configured rate into the monthly rate used by
// the given system.
func (c FinancingConfig) periodicRate(system System) float64 {
	if c.RatePeriod == RatePeriodMonthly {
		return c.Rate
	}
	if system == SystemSACCorrected {
		return mathutil.MonthlyRateFromAnnual(c.Rate)
	}
	return c.Rate / constants.MonthsPerYear
}
