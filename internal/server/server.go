// Package server exposes the simulations over HTTP.
package server

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/gorilla/mux"
	"github.com/iwvelando/loan-simulator/internal/config"
	"github.com/iwvelando/loan-simulator/internal/simulation"
	"github.com/iwvelando/loan-simulator/pkg/amortization"
	"github.com/iwvelando/loan-simulator/pkg/constants"
	"github.com/iwvelando/loan-simulator/pkg/output"
	"github.com/rs/cors"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

const (
	contentTypeXLSX = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	contentTypeHTML = "text/html; charset=utf-8"
)

type handler struct {
	logger      *zap.Logger
	engine      *amortization.Engine
	maxBodySize int64
	version     string
}

// Options configures NewHandler.
type Options struct {
	MaxBodySize    int64
	AllowedOrigins []string
	Version        string
}

// NewHandler constructs the HTTP handler that serves the simulation API.
func NewHandler(logger *zap.Logger, opts Options) http.Handler {
	if logger == nil {
		logger = zap.NewNop()
	}
	if opts.MaxBodySize <= 0 {
		opts.MaxBodySize = constants.DefaultMaxBodySizeBytes
	}
	version := strings.TrimSpace(opts.Version)
	if version == "" {
		version = "dev"
	}

	h := &handler{
		logger:      logger,
		engine:      amortization.NewEngine(logger),
		maxBodySize: opts.MaxBodySize,
		version:     version,
	}

	r := mux.NewRouter()
	r.HandleFunc("/api/simulate", h.handleSimulate).Methods(http.MethodPost)
	r.HandleFunc("/api/simulate/xlsx", h.handleSpreadsheet).Methods(http.MethodPost)
	r.HandleFunc("/api/simulate/chart", h.handleChart).Methods(http.MethodPost)
	r.HandleFunc("/api/config", h.handleConfig).Methods(http.MethodPost)
	r.HandleFunc("/api/version", h.handleVersion).Methods(http.MethodGet)
	r.HandleFunc("/healthz", handleHealth).Methods(http.MethodGet)

	origins := opts.AllowedOrigins
	if len(origins) == 0 {
		origins = []string{"*"}
	}
	c := cors.New(cors.Options{
		AllowedOrigins: origins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders: []string{"Content-Type"},
	})
	return c.Handler(r)
}

type simulationResponse struct {
	Name                  string                       `json:"name"`
	Product               config.Product               `json:"product"`
	System                amortization.System          `json:"system"`
	Term                  int                          `json:"term"`
	Price                 decimal.Decimal              `json:"price"`
	DownPayment           decimal.Decimal              `json:"downPayment"`
	FinancedAmount        decimal.Decimal              `json:"financedAmount"`
	IOFRate               float64                      `json:"iofRate,omitempty"`
	IOFAmount             decimal.Decimal              `json:"iofAmount"`
	MonthlyRate           float64                      `json:"monthlyRate"`
	MonthlyCorrectionRate float64                      `json:"monthlyCorrectionRate,omitempty"`
	PaidOffMonth          int                          `json:"paidOffMonth"`
	Records               []amortization.RoundedRecord `json:"records"`
	Totals                totalsResponse               `json:"totals"`
	Notes                 []string                     `json:"notes,omitempty"`
	CSV                   string                       `json:"csv"`
}

type totalsResponse struct {
	Installments     decimal.Decimal `json:"installments"`
	TotalPaid        decimal.Decimal `json:"totalPaid"`
	PaidToPriceRatio float64         `json:"paidToPriceRatio"`
	Interest         decimal.Decimal `json:"interest"`
	Amortization     decimal.Decimal `json:"amortization"`
	Correction       decimal.Decimal `json:"correction"`
}

type configResponse struct {
	Results  []simulationResponse `json:"results"`
	Warnings []string             `json:"warnings,omitempty"`
	Duration string               `json:"duration"`
}

type errorResponse struct {
	Error string `json:"error"`
	Field string `json:"field,omitempty"`
}

func (h *handler) handleSimulate(w http.ResponseWriter, r *http.Request) {
	const op = "server.handleSimulate"
	result, ok := h.simulateRequest(w, r, op)
	if !ok {
		return
	}

	resp, err := buildResponse(result)
	if err != nil {
		h.respondError(w, http.StatusInternalServerError, err, op)
		return
	}
	h.logger.Info("simulation computed",
		zap.String("op", op),
		zap.String("simulation", result.Name),
		zap.String("system", string(result.Schedule.System)),
		zap.Int("records", len(result.Schedule.Records)),
	)
	h.writeJSON(w, http.StatusOK, resp)
}

func (h *handler) handleSpreadsheet(w http.ResponseWriter, r *http.Request) {
	const op = "server.handleSpreadsheet"
	result, ok := h.simulateRequest(w, r, op)
	if !ok {
		return
	}

	var buf bytes.Buffer
	if err := output.WriteSpreadsheet(&buf, []simulation.Result{result}); err != nil {
		h.respondError(w, http.StatusInternalServerError, err, op)
		return
	}
	w.Header().Set("Content-Type", contentTypeXLSX)
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", constants.DefaultSpreadsheetFile))
	w.WriteHeader(http.StatusOK)
	if _, err := buf.WriteTo(w); err != nil {
		h.logger.Error("failed to write spreadsheet response", zap.String("op", op), zap.Error(err))
	}
}

func (h *handler) handleChart(w http.ResponseWriter, r *http.Request) {
	const op = "server.handleChart"
	result, ok := h.simulateRequest(w, r, op)
	if !ok {
		return
	}

	var buf bytes.Buffer
	if err := output.RenderChart(&buf, []simulation.Result{result}); err != nil {
		h.respondError(w, http.StatusInternalServerError, err, op)
		return
	}
	w.Header().Set("Content-Type", contentTypeHTML)
	w.WriteHeader(http.StatusOK)
	if _, err := buf.WriteTo(w); err != nil {
		h.logger.Error("failed to write chart response", zap.String("op", op), zap.Error(err))
	}
}

// handleConfig runs every active simulation of an uploaded YAML
// configuration file.
func (h *handler) handleConfig(w http.ResponseWriter, r *http.Request) {
	const op = "server.handleConfig"
	start := time.Now()

	body, err := h.readBody(w, r)
	if err != nil {
		h.respondBodyError(w, err, op)
		return
	}

	cfg, err := config.LoadConfigurationFromReader(bytes.NewReader(body))
	if err != nil {
		h.respondError(w, http.StatusBadRequest, err, op)
		return
	}
	warnings := cfg.ValidateConfiguration()

	results, err := simulation.Run(h.logger, *cfg)
	if err != nil {
		h.respondError(w, http.StatusBadRequest, err, op)
		return
	}

	resp := configResponse{Results: make([]simulationResponse, 0, len(results)), Warnings: warnings}
	for _, result := range results {
		item, err := buildResponse(result)
		if err != nil {
			h.respondError(w, http.StatusInternalServerError, err, op)
			return
		}
		resp.Results = append(resp.Results, item)
	}
	elapsed := time.Since(start)
	resp.Duration = elapsed.String()

	h.logger.Info("configuration simulated",
		zap.String("op", op),
		zap.Int("simulations", len(results)),
		zap.Duration("duration", elapsed),
	)
	h.writeJSON(w, http.StatusOK, resp)
}

func (h *handler) handleVersion(w http.ResponseWriter, r *http.Request) {
	h.writeJSON(w, http.StatusOK, map[string]string{
		"version": h.version,
	})
}

func handleHealth(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}

// simulateRequest decodes a single simulation from the JSON body and runs it.
// On failure the error response has already been written.
func (h *handler) simulateRequest(w http.ResponseWriter, r *http.Request, op string) (simulation.Result, bool) {
	body, err := h.readBody(w, r)
	if err != nil {
		h.respondBodyError(w, err, op)
		return simulation.Result{}, false
	}

	var sim config.Simulation
	decoder := json.NewDecoder(bytes.NewReader(body))
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(&sim); err != nil {
		h.respondError(w, http.StatusBadRequest, fmt.Errorf("failed to decode simulation: %w", err), op)
		return simulation.Result{}, false
	}
	if strings.TrimSpace(sim.Name) == "" {
		sim.Name = "simulação"
	}

	result, err := simulation.Simulate(h.engine, sim)
	if err != nil {
		h.respondError(w, http.StatusBadRequest, err, op)
		return simulation.Result{}, false
	}
	return result, true
}

func (h *handler) readBody(w http.ResponseWriter, r *http.Request) ([]byte, error) {
	r.Body = http.MaxBytesReader(w, r.Body, h.maxBodySize)
	return io.ReadAll(r.Body)
}

func (h *handler) respondBodyError(w http.ResponseWriter, err error, op string) {
	var maxBytesErr *http.MaxBytesError
	if errors.As(err, &maxBytesErr) {
		h.respondError(w, http.StatusRequestEntityTooLarge,
			fmt.Errorf("request body exceeds limit of %d bytes", h.maxBodySize), op)
		return
	}
	h.respondError(w, http.StatusBadRequest, fmt.Errorf("failed to read request body: %w", err), op)
}

func (h *handler) respondError(w http.ResponseWriter, status int, err error, op string) {
	h.logger.Error("simulation request failed",
		zap.String("op", op),
		zap.Int("status", status),
		zap.Error(err),
	)

	resp := errorResponse{Error: err.Error()}
	var validationErr *amortization.ValidationError
	if errors.As(err, &validationErr) {
		resp.Field = validationErr.Field
	}
	h.writeJSON(w, status, resp)
}

func (h *handler) writeJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		h.logger.Error("failed to write JSON response", zap.Error(err))
	}
}

func buildResponse(result simulation.Result) (simulationResponse, error) {
	s := result.Schedule
	csvText, err := output.CsvString(s)
	if err != nil {
		return simulationResponse{}, err
	}

	records := make([]amortization.RoundedRecord, len(s.Records))
	for i, record := range s.Records {
		records[i] = record.Rounded()
	}

	return simulationResponse{
		Name:                  result.Name,
		Product:               result.Product,
		System:                s.System,
		Term:                  s.Term,
		Price:                 amortization.Money(s.Price),
		DownPayment:           amortization.Money(s.DownPayment),
		FinancedAmount:        amortization.Money(s.FinancedAmount),
		IOFRate:               s.IOFRate,
		IOFAmount:             amortization.Money(s.IOFAmount),
		MonthlyRate:           s.MonthlyRate,
		MonthlyCorrectionRate: s.MonthlyCorrectionRate,
		PaidOffMonth:          s.PaidOffMonth,
		Records:               records,
		Totals: totalsResponse{
			Installments:     amortization.Money(s.Totals.Installments),
			TotalPaid:        amortization.Money(s.Totals.TotalPaid),
			PaidToPriceRatio: s.Totals.PaidToPriceRatio,
			Interest:         amortization.Money(s.Totals.Interest),
			Amortization:     amortization.Money(s.Totals.Amortization),
			Correction:       amortization.Money(s.Totals.Correction),
		},
		Notes: result.Notes,
		CSV:   csvText,
	}, nil
}
