package logging

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/iwvelando/loan-simulator/internal/config"
	"go.uber.org/zap/zapcore"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		input     string
		expected  zapcore.Level
		expectErr bool
	}{
		{"", zapcore.InfoLevel, false},
		{"info", zapcore.InfoLevel, false},
		{"DEBUG", zapcore.DebugLevel, false},
		{"warning", zapcore.WarnLevel, false},
		{" error ", zapcore.ErrorLevel, false},
		{"trace", zapcore.InfoLevel, true},
	}

	for _, tt := range tests {
		level, err := ParseLevel(tt.input)
		if (err != nil) != tt.expectErr {
			t.Errorf("ParseLevel(%q) error = %v, expectErr %v", tt.input, err, tt.expectErr)
		}
		if level != tt.expected {
			t.Errorf("ParseLevel(%q) = %v, expected %v", tt.input, level, tt.expected)
		}
	}
}

func TestNew(t *testing.T) {
	tests := []struct {
		name      string
		cfg       config.LoggingConfig
		override  string
		expectErr bool
		enabled   zapcore.Level
		disabled  zapcore.Level
	}{
		{
			name:     "Defaults",
			enabled:  zapcore.InfoLevel,
			disabled: zapcore.DebugLevel,
		},
		{
			name:     "Console debug",
			cfg:      config.LoggingConfig{Level: "debug", Format: "console"},
			enabled:  zapcore.DebugLevel,
			disabled: zapcore.DebugLevel - 1,
		},
		{
			name:     "Override wins",
			cfg:      config.LoggingConfig{Level: "debug"},
			override: "error",
			enabled:  zapcore.ErrorLevel,
			disabled: zapcore.WarnLevel,
		},
		{
			name:      "Invalid level",
			cfg:       config.LoggingConfig{Level: "loud"},
			expectErr: true,
		},
		{
			name:      "Invalid format",
			cfg:       config.LoggingConfig{Format: "xml"},
			expectErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			logger, err := New(tt.cfg, tt.override)
			if tt.expectErr {
				if err == nil {
					t.Errorf("New() expected error but got none")
				}
				return
			}
			if err != nil {
				t.Fatalf("New() error = %v", err)
			}
			if !logger.Core().Enabled(tt.enabled) {
				t.Errorf("level %v should be enabled", tt.enabled)
			}
			if logger.Core().Enabled(tt.disabled) {
				t.Errorf("level %v should be disabled", tt.disabled)
			}
		})
	}
}

func TestNewWritesToFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", "simulator.log")
	logger, err := New(config.LoggingConfig{OutputFile: path}, "")
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	logger.Info("simulation computed")
	_ = logger.Sync()

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("reading log file: %v", err)
	}
	if !strings.Contains(string(data), "simulation computed") {
		t.Errorf("log file missing entry: %s", data)
	}
}
