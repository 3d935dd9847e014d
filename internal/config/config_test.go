package config

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/iwvelando/loan-simulator/pkg/amortization"
)

const sampleConfig = `
logging:
  level: info
  format: console
output:
  format: csv
simulations:
  - name: Carro
    active: true
    product: vehicle
    system: price
    price: 60000
    downPayment: 0.2
    rate: 0.015
    ratePeriod: monthly
    term: 24
  - name: Apartamento
    active: true
    product: housing
    price: 300000
    downPayment: 0.2
    rate: 0.12
    correctionRate: 0.01
    term: 360
    startDate: 2025-03
  - name: Rascunho
    active: false
    price: 1000
    rate: 0.1
    term: 10
`

func TestLoadConfiguration(t *testing.T) {
	dir := t.TempDir()
	valid := filepath.Join(dir, "config.yaml")
	if err := os.WriteFile(valid, []byte(sampleConfig), 0o600); err != nil {
		t.Fatal(err)
	}
	duplicate := filepath.Join(dir, "duplicate.yaml")
	if err := os.WriteFile(duplicate, []byte(`
simulations:
  - name: A
    price: 1
    rate: 0
    term: 1
  - name: A
    price: 1
    rate: 0
    term: 1
`), 0o600); err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		name       string
		configPath string
		wantError  bool
	}{
		{
			name:       "Non-existent config file",
			configPath: "nonexistent.yaml",
			wantError:  true,
		},
		{
			name:       "Valid config file",
			configPath: valid,
			wantError:  false,
		},
		{
			name:       "Duplicate simulation names",
			configPath: duplicate,
			wantError:  true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			config, err := LoadConfiguration(tt.configPath)
			if tt.wantError {
				if err == nil {
					t.Errorf("LoadConfiguration() expected error but got none")
				}
				return
			}
			if err != nil {
				t.Errorf("LoadConfiguration() error = %v", err)
				return
			}
			if config == nil {
				t.Errorf("LoadConfiguration() returned nil config")
			}
		})
	}
}

func TestLoadConfigurationFromReader(t *testing.T) {
	conf, err := LoadConfigurationFromReader(strings.NewReader(sampleConfig))
	if err != nil {
		t.Fatalf("LoadConfigurationFromReader() error = %v", err)
	}

	if conf.Logging.Level != "info" {
		t.Errorf("logging level = %s, expected info", conf.Logging.Level)
	}
	if conf.Output.Format != "csv" {
		t.Errorf("output format = %s, expected csv", conf.Output.Format)
	}
	if len(conf.Simulations) != 3 {
		t.Fatalf("expected 3 simulations, got %d", len(conf.Simulations))
	}

	housing := conf.Simulations[1]
	if housing.DownPayment != 0.2 || housing.CorrectionRate != 0.01 || housing.Term != 360 {
		t.Errorf("housing simulation decoded incorrectly: %+v", housing)
	}
	if housing.StartDate != "2025-03" {
		t.Errorf("start date = %q, expected 2025-03", housing.StartDate)
	}
	if conf.Simulations[0].RatePeriod != "monthly" {
		t.Errorf("rate period = %q, expected monthly", conf.Simulations[0].RatePeriod)
	}

	active := conf.ActiveSimulations()
	if len(active) != 2 {
		t.Errorf("expected 2 active simulations, got %d", len(active))
	}
}

func TestLoadConfigurationRejectsFractionalTerm(t *testing.T) {
	_, err := LoadConfigurationFromReader(strings.NewReader(`
simulations:
  - name: Fracionado
    active: true
    price: 1000
    rate: 0.1
    term: 12.7
`))
	if !errors.Is(err, amortization.ErrInvalidTerm) {
		t.Fatalf("expected ErrInvalidTerm, got %v", err)
	}
	var validationErr *amortization.ValidationError
	if !errors.As(err, &validationErr) || validationErr.Field != "term" {
		t.Errorf("expected a term validation error, got %v", err)
	}
	if !strings.Contains(err.Error(), "Fracionado") {
		t.Errorf("error %q does not name the simulation", err.Error())
	}
}

func TestEnvironmentOverridesOutputFormat(t *testing.T) {
	t.Setenv("LOANSIM_OUTPUT_FORMAT", "xlsx")
	t.Setenv("LOANSIM_LOGGING_LEVEL", "debug")

	conf, err := LoadConfigurationFromReader(strings.NewReader(sampleConfig))
	if err != nil {
		t.Fatalf("LoadConfigurationFromReader() error = %v", err)
	}
	if conf.Output.Format != "xlsx" {
		t.Errorf("output format = %s, expected the environment override xlsx", conf.Output.Format)
	}
	if conf.Logging.Level != "debug" {
		t.Errorf("logging level = %s, expected the environment override debug", conf.Logging.Level)
	}
}

func TestLoadEnvironment(t *testing.T) {
	if err := LoadEnvironment(filepath.Join(t.TempDir(), "missing.env")); err != nil {
		t.Errorf("missing env file should be ignored, got %v", err)
	}

	path := filepath.Join(t.TempDir(), "test.env")
	if err := os.WriteFile(path, []byte("LOANSIM_TEST_MARKER=present\n"), 0o600); err != nil {
		t.Fatal(err)
	}
	t.Setenv("LOANSIM_TEST_MARKER", "")
	os.Unsetenv("LOANSIM_TEST_MARKER")

	if err := LoadEnvironment(path); err != nil {
		t.Fatalf("LoadEnvironment() error = %v", err)
	}
	if got := os.Getenv("LOANSIM_TEST_MARKER"); got != "present" {
		t.Errorf("LOANSIM_TEST_MARKER = %q, expected present", got)
	}
}

func TestConfigurationValidate(t *testing.T) {
	tests := []struct {
		name      string
		sims      []Simulation
		wantError string
	}{
		{
			name: "Valid",
			sims: []Simulation{{Name: "a"}, {Name: "b", Product: "housing"}},
		},
		{
			name:      "Missing name",
			sims:      []Simulation{{Name: "  "}},
			wantError: "has no name",
		},
		{
			name:      "Duplicate name",
			sims:      []Simulation{{Name: "a"}, {Name: "a"}},
			wantError: "more than once",
		},
		{
			name:      "Unknown product",
			sims:      []Simulation{{Name: "a", Product: "boat"}},
			wantError: "unknown product",
		},
		{
			name:      "Unknown system",
			sims:      []Simulation{{Name: "a", System: "german"}},
			wantError: "unknown amortization system",
		},
		{
			name:      "Housing with price system",
			sims:      []Simulation{{Name: "a", Product: "housing", System: "price"}},
			wantError: "housing financing",
		},
		{
			name:      "Fractional term",
			sims:      []Simulation{{Name: "a", Term: 12.7}},
			wantError: "invalid term",
		},
		{
			name:      "Term beyond any plausible financing",
			sims:      []Simulation{{Name: "a", Term: 1e300}},
			wantError: "invalid term",
		},
		{
			name:      "Vehicle with corrected SAC",
			sims:      []Simulation{{Name: "a", Product: "vehicle", System: "sac-tr"}},
			wantError: "vehicle financing",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			conf := &Configuration{Simulations: tt.sims}
			err := conf.Validate()
			if tt.wantError == "" {
				if err != nil {
					t.Errorf("Validate() unexpected error = %v", err)
				}
				return
			}
			if err == nil {
				t.Fatalf("Validate() expected error containing %q", tt.wantError)
			}
			if !strings.Contains(strings.ToLower(err.Error()), tt.wantError) {
				t.Errorf("Validate() error = %v, expected it to contain %q", err, tt.wantError)
			}
		})
	}
}

func TestSimulationFinancingConfig(t *testing.T) {
	tests := []struct {
		name         string
		sim          Simulation
		expectSystem amortization.System
	}{
		{"Loan defaults to price", Simulation{Name: "a"}, amortization.SystemPrice},
		{"Vehicle defaults to price", Simulation{Name: "a", Product: "vehicle"}, amortization.SystemPrice},
		{"Vehicle with SAC", Simulation{Name: "a", Product: "Vehicle", System: "SAC"}, amortization.SystemSAC},
		{"Housing defaults to corrected SAC", Simulation{Name: "a", Product: "housing"}, amortization.SystemSACCorrected},
		{"Loan with corrected SAC", Simulation{Name: "a", System: "sac-tr"}, amortization.SystemSACCorrected},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg, err := tt.sim.FinancingConfig()
			if err != nil {
				t.Fatalf("FinancingConfig() error = %v", err)
			}
			if cfg.System != tt.expectSystem {
				t.Errorf("system = %s, expected %s", cfg.System, tt.expectSystem)
			}
		})
	}

	sim := Simulation{
		Name:           "full",
		Price:          1000,
		DownPayment:    0.25,
		Rate:           0.02,
		RatePeriod:     " Monthly ",
		CorrectionRate: 0.01,
		Term:           6,
		StartDate:      "2025-01",
	}
	cfg, err := sim.FinancingConfig()
	if err != nil {
		t.Fatalf("FinancingConfig() error = %v", err)
	}
	if cfg.Price != 1000 || cfg.DownPaymentFraction != 0.25 || cfg.Rate != 0.02 || cfg.Term != 6 ||
		cfg.CorrectionRate != 0.01 || cfg.StartDate != "2025-01" {
		t.Errorf("fields not carried over: %+v", cfg)
	}
	if cfg.RatePeriod != amortization.RatePeriodMonthly {
		t.Errorf("rate period = %q, expected monthly", cfg.RatePeriod)
	}
}

func TestValidateConfiguration(t *testing.T) {
	tests := []struct {
		name          string
		sims          []Simulation
		expectedCount int
		contains      string
	}{
		{
			name:          "No active simulations",
			sims:          []Simulation{{Name: "a", Active: false, Rate: 5}},
			expectedCount: 1,
			contains:      "no active simulations",
		},
		{
			name:          "Clean simulation",
			sims:          []Simulation{{Name: "a", Active: true, Rate: 0.1, DownPayment: 0.2}},
			expectedCount: 0,
		},
		{
			name:          "Percentage rate",
			sims:          []Simulation{{Name: "a", Active: true, Rate: 12}},
			expectedCount: 1,
			contains:      "looks like a percentage",
		},
		{
			name:          "Percentage down payment",
			sims:          []Simulation{{Name: "a", Active: true, Rate: 0.1, DownPayment: 20}},
			expectedCount: 1,
			contains:      "downPayment",
		},
		{
			name:          "Full down payment",
			sims:          []Simulation{{Name: "a", Active: true, DownPayment: 1}},
			expectedCount: 1,
			contains:      "schedule will be empty",
		},
		{
			name:          "Correction rate ignored by price",
			sims:          []Simulation{{Name: "a", Active: true, Product: "vehicle", CorrectionRate: 0.01}},
			expectedCount: 1,
			contains:      "does not apply TR correction",
		},
		{
			name:          "Correction rate used by housing",
			sims:          []Simulation{{Name: "a", Active: true, Product: "housing", CorrectionRate: 0.01}},
			expectedCount: 0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			conf := &Configuration{Simulations: tt.sims}
			warnings := conf.ValidateConfiguration()
			if len(warnings) != tt.expectedCount {
				t.Fatalf("expected %d warnings, got %d: %v", tt.expectedCount, len(warnings), warnings)
			}
			if tt.contains != "" && !strings.Contains(warnings[0], tt.contains) {
				t.Errorf("warning %q does not contain %q", warnings[0], tt.contains)
			}
		})
	}
}
