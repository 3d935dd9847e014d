// Package constants provides shared constants for the loan-simulator application.
package constants

// DateTimeLayout is the format expected in config files for the first due
// month and is also the format of the due-month labels on each record.
const DateTimeLayout = "2006-01"

// Financial constants
const (
	// MonthsPerYear is the number of months in a year
	MonthsPerYear = 12

	// DaysPerMonth is the commercial month used by the IOF daily charge
	DaysPerMonth = 30

	// MaxTermMonths is the longest financing term accepted (100 years)
	MaxTermMonths = 1200

	// DecimalPrecision is the precision for currency rounding (2 decimal places)
	DecimalPrecision = 100

	// DecimalPlaces is the number of decimals kept on exported money fields
	DecimalPlaces = 2
)

// IOF (Imposto sobre Operações Financeiras) overlay for vehicle financing.
const (
	// IOFAdditionalRate is the flat rate charged once on the financed amount
	IOFAdditionalRate = 0.0038

	// IOFDailyRate is charged per day of the financing term
	IOFDailyRate = 0.000082

	// IOFMaxRate caps the total IOF rate
	IOFMaxRate = 0.0338
)

// Tolerances used by the amortization engine.
const (
	// PaidOffTolerance is the opening balance at or below which a loan is
	// considered settled
	PaidOffTolerance = 0.005

	// CurrencyTolerance is the tolerance for currency comparisons (1 cent)
	CurrencyTolerance = 0.01

	// PercentageMultiplier is used for percentage conversions
	PercentageMultiplier = 100.0
)

// Output format constants
const (
	// OutputFormatPretty is the human-readable output format
	OutputFormatPretty = "pretty"

	// OutputFormatCSV is the CSV output format
	OutputFormatCSV = "csv"

	// OutputFormatXLSX writes one spreadsheet with a sheet per simulation
	OutputFormatXLSX = "xlsx"

	// OutputFormatChart writes one HTML line chart per simulation
	OutputFormatChart = "chart"
)

// Configuration file constants
const (
	// DefaultConfigFile is the default configuration file name
	DefaultConfigFile = "config.yaml"

	// ExampleConfigFile is the example configuration file name
	ExampleConfigFile = "config.yaml.example"

	// DefaultServerConfigFile is the default server configuration file name
	DefaultServerConfigFile = "server-config.yaml"

	// DefaultEnvFile is loaded into the environment when present
	DefaultEnvFile = ".env"

	// EnvPrefix prefixes environment overrides, e.g. LOANSIM_LOGGING_LEVEL
	EnvPrefix = "LOANSIM"

	// DefaultSpreadsheetFile is the xlsx export file name
	DefaultSpreadsheetFile = "simulations.xlsx"
)

// Server configuration defaults
const (
	// DefaultServerAddress is the default HTTP listen address for the API
	DefaultServerAddress = ":8080"

	// DefaultMaxBodySizeBytes is the default maximum request body size (64 KB)
	DefaultMaxBodySizeBytes int64 = 64 * 1024
)
