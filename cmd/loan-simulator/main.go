package main

import (
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/iwvelando/loan-simulator/internal/config"
	"github.com/iwvelando/loan-simulator/internal/logging"
	"github.com/iwvelando/loan-simulator/internal/simulation"
	"github.com/iwvelando/loan-simulator/pkg/constants"
	"github.com/iwvelando/loan-simulator/pkg/output"
	"github.com/iwvelando/loan-simulator/pkg/validation"
	"go.uber.org/zap"
)

const chartFile = "simulations.html"

func main() {
	configLocation := flag.String("config", constants.DefaultConfigFile, "path to configuration file")
	envFile := flag.String("env-file", constants.DefaultEnvFile, "path to an optional .env file")
	outputFormatFlag := flag.String("output-format", "", "type of output override: pretty, csv, xlsx, chart")
	outputDirFlag := flag.String("output-dir", "", "directory for xlsx and chart files (default: stdout)")
	logLevel := flag.String("log-level", "", "log level override (debug, info, warn, error)")
	flag.Parse()

	if err := config.LoadEnvironment(*envFile); err != nil {
		fmt.Printf("{\"op\": \"main\", \"level\": \"fatal\", \"msg\": \"failed to load environment\", \"error\": \"%v\"}\n", err)
		os.Exit(1)
	}

	conf, err := config.LoadConfiguration(*configLocation)
	if err != nil {
		fmt.Printf("{\"op\": \"main\", \"level\": \"fatal\", \"msg\": \"failed to load configuration at %s\", \"error\": \"%v\"}\n", *configLocation, err)
		os.Exit(1)
	}

	logger, err := logging.New(conf.Logging, *logLevel)
	if err != nil {
		fmt.Printf("{\"op\": \"main\", \"level\": \"fatal\", \"msg\": \"failed to initialize logger\", \"error\": \"%v\"}\n", err)
		os.Exit(1)
	}
	defer func() {
		_ = logger.Sync()
	}()

	outputFormat := conf.Output.Format
	if *outputFormatFlag != "" {
		outputFormat = *outputFormatFlag
	}
	if outputFormat == "" {
		outputFormat = constants.OutputFormatPretty
	}
	if err := validation.ValidateOutputFormat(outputFormat); err != nil {
		logger.Fatal(err.Error(),
			zap.String("op", "main"),
		)
	}

	outputDir := conf.Output.Directory
	if *outputDirFlag != "" {
		outputDir = *outputDirFlag
	}

	for _, warning := range conf.ValidateConfiguration() {
		logger.Warn("Configuration warning: "+warning,
			zap.String("op", "main"),
		)
	}

	results, err := simulation.Run(logger, *conf)
	if err != nil {
		logger.Fatal("failed to run simulations",
			zap.String("op", "main"),
			zap.Error(err),
		)
	}

	if err := writeOutput(logger, outputFormat, outputDir, results); err != nil {
		logger.Fatal("failed to write output",
			zap.String("op", "main"),
			zap.String("format", outputFormat),
			zap.Error(err),
		)
	}
}

// writeOutput sends text formats to stdout. File formats go to stdout too
// unless an output directory is set.
func writeOutput(logger *zap.Logger, format, dir string, results []simulation.Result) error {
	render := map[string]func(io.Writer, []simulation.Result) error{
		constants.OutputFormatPretty: output.PrettyFormat,
		constants.OutputFormatCSV:    output.CsvFormat,
		constants.OutputFormatXLSX:   output.WriteSpreadsheet,
		constants.OutputFormatChart:  output.RenderChart,
	}[format]

	if dir == "" || !validation.IsFileFormat(format) {
		return render(os.Stdout, results)
	}

	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create output directory %s: %w", dir, err)
	}
	name := constants.DefaultSpreadsheetFile
	if format == constants.OutputFormatChart {
		name = chartFile
	}
	path := filepath.Join(dir, name)

	file, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := render(file, results); err != nil {
		_ = file.Close()
		return err
	}
	if err := file.Close(); err != nil {
		return err
	}

	logger.Info("output written",
		zap.String("op", "main"),
		zap.String("path", path),
		zap.Int("simulations", len(results)),
	)
	return nil
}
