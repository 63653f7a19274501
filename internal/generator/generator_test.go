package generator

import (
	"bytes"
	"context"
	"errors"
	"slices"
	"strings"
	"testing"

	"github.com/nao1215/loanqa/internal/log"
	"github.com/nao1215/loanqa/internal/model"
)

// TestNew tests Generator construction.
func TestNew(t *testing.T) {
	t.Parallel()

	t.Run("rejects zero records", func(t *testing.T) {
		t.Parallel()

		_, err := New(Options{NumRecords: 0, Seed: 42})
		if !errors.Is(err, ErrInvalidRecordCount) {
			t.Errorf("expected ErrInvalidRecordCount, got %v", err)
		}
	})

	t.Run("rejects negative records", func(t *testing.T) {
		t.Parallel()

		_, err := New(Options{NumRecords: -5})
		if !errors.Is(err, ErrInvalidRecordCount) {
			t.Errorf("expected ErrInvalidRecordCount, got %v", err)
		}
	})
}

// TestRecordsDeterminism tests that the same seed yields the same records.
func TestRecordsDeterminism(t *testing.T) {
	t.Parallel()

	draw := func(seed int64) []model.LoanApplication {
		t.Helper()
		g, err := New(Options{NumRecords: 200, Seed: seed})
		if err != nil {
			t.Fatalf("New() error: %v", err)
		}
		records, err := g.Records(context.Background())
		if err != nil {
			t.Fatalf("Records() error: %v", err)
		}
		return records
	}

	a := draw(42)
	b := draw(42)
	if !slices.Equal(a, b) {
		t.Error("same seed produced different records")
	}

	c := draw(7)
	if slices.Equal(a, c) {
		t.Error("different seeds produced identical records")
	}
}

// TestRecordsIdentifiers tests identifier assignment.
func TestRecordsIdentifiers(t *testing.T) {
	t.Parallel()

	g, err := New(Options{NumRecords: 120, Seed: 1})
	if err != nil {
		t.Fatalf("New() error: %v", err)
	}
	records, err := g.Records(context.Background())
	if err != nil {
		t.Fatalf("Records() error: %v", err)
	}

	if len(records) != 120 {
		t.Fatalf("expected 120 records, got %d", len(records))
	}
	seen := make(map[string]bool, len(records))
	for i, r := range records {
		if want := model.LoanID(i + 1); r.LoanID != want {
			t.Errorf("record %d: LoanID = %q, want %q", i, r.LoanID, want)
		}
		if seen[r.LoanID] {
			t.Errorf("duplicate LoanID %q", r.LoanID)
		}
		seen[r.LoanID] = true
	}
	if records[0].LoanID != "LP0001" || records[119].LoanID != "LP0120" {
		t.Errorf("unexpected boundary identifiers %q, %q", records[0].LoanID, records[119].LoanID)
	}
}

// TestTableDomain tests that every generated value lies in its declared domain.
func TestTableDomain(t *testing.T) {
	t.Parallel()

	tbl, err := Generate(context.Background(), Options{NumRecords: 1000, Seed: 42})
	if err != nil {
		t.Fatalf("Generate() error: %v", err)
	}
	if tbl.NumRows() != 1000 || tbl.NumColumns() != 14 {
		t.Fatalf("got %dx%d, want 1000x14", tbl.NumRows(), tbl.NumColumns())
	}

	schema := model.LoanSchema()
	for _, name := range tbl.Columns() {
		spec, ok := schema.Lookup(name)
		if !ok {
			t.Fatalf("column %s is not declared", name)
		}
		col, _ := tbl.Column(name)
		for i, cell := range col.Cells {
			if !cell.Valid {
				t.Fatalf("%s row %d is missing", name, i)
			}
			if reason := spec.Check(cell.Value); reason != "" {
				t.Fatalf("%s row %d = %q: %s", name, i, cell.Value, reason)
			}
		}
	}
}

// TestTableCoversEnumerations tests that a large draw hits every enumeration member.
func TestTableCoversEnumerations(t *testing.T) {
	t.Parallel()

	tbl, err := Generate(context.Background(), Options{NumRecords: 2000, Seed: 3})
	if err != nil {
		t.Fatalf("Generate() error: %v", err)
	}

	tests := []struct {
		column string
		values []string
	}{
		{model.ColEducation, model.Educations},
		{model.ColDependents, model.DependentsBins},
		{model.ColPropertyArea, model.PropertyAreas},
		{model.ColLoanAmountTerm, []string{"120", "240", "360"}},
		{model.ColCreditHistory, []string{"0", "1"}},
	}

	for _, tt := range tests {
		col, err := tbl.Column(tt.column)
		if err != nil {
			t.Fatalf("Column(%s) error: %v", tt.column, err)
		}
		seen := make(map[string]bool)
		for _, c := range col.Cells {
			seen[c.Value] = true
		}
		for _, v := range tt.values {
			if !seen[v] {
				t.Errorf("%s never produced %q", tt.column, v)
			}
		}
	}
}

// TestRecordsCancelled tests that a cancelled context stops generation.
func TestRecordsCancelled(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	g, err := New(Options{NumRecords: 10})
	if err != nil {
		t.Fatalf("New() error: %v", err)
	}
	if _, err := g.Records(ctx); !errors.Is(err, context.Canceled) {
		t.Errorf("expected context.Canceled, got %v", err)
	}
}

// TestRecordsLogging tests that the first drawn record is logged with its financial fields masked.
func TestRecordsLogging(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	g, err := New(Options{NumRecords: 3, Seed: 42}, WithLogger(log.NewSecureLogger(&buf, true)))
	if err != nil {
		t.Fatalf("New() error: %v", err)
	}
	records, err := g.Records(context.Background())
	if err != nil {
		t.Fatalf("Records() error: %v", err)
	}

	output := buf.String()
	if !strings.Contains(output, "record.Loan_ID="+records[0].LoanID) {
		t.Errorf("expected the first Loan_ID in the log: %s", output)
	}
	if !strings.Contains(output, "record.Gender="+records[0].Gender) {
		t.Errorf("expected the first Gender in the log: %s", output)
	}
	for _, col := range []string{model.ColApplicantIncome, model.ColCoapplicantIncome, model.ColLoanAmount, model.ColCreditHistory, model.ColFICOScore} {
		if !strings.Contains(output, "record."+col+"="+log.MaskValue) {
			t.Errorf("expected %s to be masked: %s", col, output)
		}
	}
}
