package validation

import (
	"strings"
	"testing"
)

func TestValidateOutputFormat(t *testing.T) {
	tests := []struct {
		name      string
		format    string
		expectErr bool
	}{
		{
			name:      "Valid pretty format",
			format:    "pretty",
			expectErr: false,
		},
		{
			name:      "Valid csv format",
			format:    "csv",
			expectErr: false,
		},
		{
			name:      "Valid xlsx format",
			format:    "xlsx",
			expectErr: false,
		},
		{
			name:      "Valid chart format",
			format:    "chart",
			expectErr: false,
		},
		{
			name:      "Invalid format",
			format:    "json",
			expectErr: true,
		},
		{
			name:      "Empty format",
			format:    "",
			expectErr: true,
		},
		{
			name:      "Case sensitive - uppercase",
			format:    "PRETTY",
			expectErr: true,
		},
		{
			name:      "Whitespace is not trimmed",
			format:    " csv",
			expectErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateOutputFormat(tt.format)
			if tt.expectErr && err == nil {
				t.Errorf("ValidateOutputFormat(%q) expected error but got none", tt.format)
			}
			if !tt.expectErr && err != nil {
				t.Errorf("ValidateOutputFormat(%q) unexpected error: %v", tt.format, err)
			}
		})
	}
}

func TestValidateOutputFormatErrorMessage(t *testing.T) {
	err := ValidateOutputFormat("json")
	if err == nil {
		t.Fatal("expected error")
	}
	for _, format := range OutputFormats {
		if !strings.Contains(err.Error(), format) {
			t.Errorf("error message %q should list %s", err.Error(), format)
		}
	}
	if !strings.Contains(err.Error(), "json") {
		t.Errorf("error message %q should echo the rejected format", err.Error())
	}
}

func TestIsFileFormat(t *testing.T) {
	tests := map[string]bool{
		"pretty": false,
		"csv":    false,
		"xlsx":   true,
		"chart":  true,
	}
	for format, expected := range tests {
		if got := IsFileFormat(format); got != expected {
			t.Errorf("IsFileFormat(%q) = %v, expected %v", format, got, expected)
		}
	}
}
