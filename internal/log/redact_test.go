package log

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"strings"
	"testing"
)

// logLine logs one Info record with args through a verbose text logger and returns the output.
func logLine(t *testing.T, args ...any) string {
	t.Helper()

	var buf bytes.Buffer
	NewSecureLogger(&buf, true).Info("test message", args...)
	return buf.String()
}

// TestSecureLogger_MasksByKey tests masking of financial columns and credentials by key.
func TestSecureLogger_MasksByKey(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		key      string
		value    string
		wantMask bool
	}{
		{name: "ApplicantIncome column", key: "ApplicantIncome", value: "52000", wantMask: true},
		{name: "CoapplicantIncome column", key: "CoapplicantIncome", value: "18000", wantMask: true},
		{name: "LoanAmount column", key: "LoanAmount", value: "146000", wantMask: true},
		{name: "Credit_History column", key: "Credit_History", value: "history-good", wantMask: true},
		{name: "FICO_Score column", key: "FICO_Score", value: "score-712", wantMask: true},
		{name: "snake case loan amount", key: "loan_amount", value: "99000", wantMask: true},
		{name: "lower case column", key: "fico_score", value: "score-640", wantMask: true},
		{name: "household income", key: "household_income", value: "61000", wantMask: true},
		{name: "password", key: "db_password", value: "hunter2", wantMask: true},
		{name: "database dsn", key: "dsn", value: "file:loans.db?_pragma=key", wantMask: true},
		{name: "Loan_ID stays visible", key: "Loan_ID", value: "LP0042", wantMask: false},
		{name: "column name stays visible", key: "column", value: "Gender", wantMask: false},
		{name: "histogram bins stay visible", key: "credit_history_bins", value: "bins-20", wantMask: false},
		{name: "session stays visible", key: "session", value: "abc", wantMask: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			output := logLine(t, tt.key, tt.value)
			masked := !strings.Contains(output, tt.value) && strings.Contains(output, MaskValue)
			if masked != tt.wantMask {
				t.Errorf("masked = %v, want %v: %s", masked, tt.wantMask, output)
			}
		})
	}
}

// TestSecureLogger_MasksNumbers tests that numeric attributes under financial keys are masked.
func TestSecureLogger_MasksNumbers(t *testing.T) {
	t.Parallel()

	output := logLine(t, "FICO_Score", 7654321, "LoanAmount", 98765.4321, "row", 17)
	if strings.Contains(output, "7654321") || strings.Contains(output, "98765.4321") {
		t.Errorf("expected numeric values to be masked: %s", output)
	}
	if !strings.Contains(output, "row=17") {
		t.Errorf("expected row to be visible: %s", output)
	}
}

// TestSecureLogger_MasksByValue tests masking of identifiers under any key.
func TestSecureLogger_MasksByValue(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		value    string
		wantMask bool
	}{
		{name: "SSN", value: "078-05-1120", wantMask: true},
		{name: "card number", value: "5500000000000004", wantMask: true},
		{name: "grouped card number", value: "4111 1111 1111 1111", wantMask: true},
		{name: "IBAN", value: "GB82WEST12345698765432", wantMask: true},
		{name: "bearer token", value: "Bearer abc.def", wantMask: true},
		{name: "sha3 fingerprint", value: "3a985da74fe225b2045c172d6bd390bd855f086e3e9d525b46bfe24511431532", wantMask: false},
		{name: "run id", value: "0f8fad5b-d9cb-469f-a165-70867728950e", wantMask: false},
		{name: "loan id", value: "LP0001", wantMask: false},
		{name: "dependents bucket", value: "3+", wantMask: false},
	}

	r := NewRedactor()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if got := r.Sensitive("note", slog.StringValue(tt.value)); got != tt.wantMask {
				t.Errorf("Sensitive(note, %q) = %v, want %v", tt.value, got, tt.wantMask)
			}
		})
	}
}

// TestSecureLogger_Levels tests that verbose selects the debug level.
func TestSecureLogger_Levels(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		verbose    bool
		level      slog.Level
		shouldShow bool
	}{
		{name: "debug shown in verbose mode", verbose: true, level: slog.LevelDebug, shouldShow: true},
		{name: "debug hidden by default", verbose: false, level: slog.LevelDebug, shouldShow: false},
		{name: "info hidden by default", verbose: false, level: slog.LevelInfo, shouldShow: false},
		{name: "warn shown by default", verbose: false, level: slog.LevelWarn, shouldShow: true},
		{name: "error shown by default", verbose: false, level: slog.LevelError, shouldShow: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			var buf bytes.Buffer
			NewSecureLogger(&buf, tt.verbose).Log(t.Context(), tt.level, "level_check_message")

			if shown := strings.Contains(buf.String(), "level_check_message"); shown != tt.shouldShow {
				t.Errorf("message shown = %v, want %v: %s", shown, tt.shouldShow, buf.String())
			}
		})
	}
}

// TestSecureLogger_WithAndGroups tests masking of attributes added with With and inside groups.
func TestSecureLogger_WithAndGroups(t *testing.T) {
	t.Parallel()

	t.Run("With", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		NewSecureLogger(&buf, true).With("ApplicantIncome", "98765").Info("test message")
		if strings.Contains(buf.String(), "98765") || !strings.Contains(buf.String(), MaskValue) {
			t.Errorf("expected income to be masked: %s", buf.String())
		}
	})

	t.Run("nested group", func(t *testing.T) {
		t.Parallel()

		output := logLine(t, slog.Group("record",
			slog.String("Loan_ID", "LP0007"),
			slog.Group("amounts", slog.String("LoanAmount", "250000")),
		))
		if !strings.Contains(output, "record.Loan_ID=LP0007") {
			t.Errorf("expected Loan_ID to be visible: %s", output)
		}
		if !strings.Contains(output, "record.amounts.LoanAmount="+MaskValue) {
			t.Errorf("expected LoanAmount to be masked: %s", output)
		}
	})

	t.Run("WithGroup", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		NewSecureLogger(&buf, true).WithGroup("row").Info("test message", "CoapplicantIncome", 4100)
		if strings.Contains(buf.String(), "4100") {
			t.Errorf("expected income to be masked: %s", buf.String())
		}
	})
}

// TestSecureLogger_JSON tests the JSON output format.
func TestSecureLogger_JSON(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	NewSecureLogger(&buf, true, WithJSON(true)).Info("test message", "fico", 64012, "column", "FICO_Score")

	var record map[string]any
	if err := json.Unmarshal(buf.Bytes(), &record); err != nil {
		t.Fatalf("expected one JSON object, got %q: %v", buf.String(), err)
	}
	if record["fico"] != MaskValue {
		t.Errorf("fico = %v, want %s", record["fico"], MaskValue)
	}
	if record["column"] != "FICO_Score" {
		t.Errorf("column = %v, want FICO_Score", record["column"])
	}
}

// TestSnake tests the snake_case spelling of column names.
func TestSnake(t *testing.T) {
	t.Parallel()

	tests := map[string]string{
		"ApplicantIncome":   "applicant_income",
		"CoapplicantIncome": "coapplicant_income",
		"LoanAmount":        "loan_amount",
		"Credit_History":    "credit_history",
		"FICO_Score":        "fico_score",
	}
	for in, want := range tests {
		if got := snake(in); got != want {
			t.Errorf("snake(%q) = %q, want %q", in, got, want)
		}
	}
}
