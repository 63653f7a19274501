package model

import (
	"encoding/json"
	"errors"
	"slices"
	"testing"
)

// TestCellKind tests runtime kind classification of cells.
func TestCellKind(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		cell Cell
		want Kind
	}{
		{"missing", NullCell(), KindMissing},
		{"integer", NewCell("42"), KindInt},
		{"negative integer", NewCell("-7"), KindInt},
		{"float", NewCell("3.14"), KindFloat},
		{"exponent", NewCell("1e3"), KindFloat},
		{"text", NewCell("abc"), KindString},
		{"empty present string", NewCell(""), KindString},
		{"dependents bucket", NewCell("3+"), KindString},
		{"infinity spelled out", NewCell("inf"), KindString},
		{"negative infinity", NewCell("-Infinity"), KindString},
		{"not a number", NewCell("NAN"), KindString},
		{"overflowing exponent", NewCell("1e400"), KindString},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if got := tt.cell.Kind(); got != tt.want {
				t.Errorf("Kind() = %v, want %v", got, tt.want)
			}
		})
	}
}

// TestCellFloatAndString tests numeric access and display of cells.
func TestCellFloatAndString(t *testing.T) {
	t.Parallel()

	t.Run("numeric cell", func(t *testing.T) {
		t.Parallel()

		f, ok := NewCell("2.5").Float()
		if !ok || f != 2.5 {
			t.Errorf("Float() = %v, %v; want 2.5, true", f, ok)
		}
	})

	t.Run("text cell is not numeric", func(t *testing.T) {
		t.Parallel()

		if _, ok := NewCell("Male").Float(); ok {
			t.Error("expected text cell to be non-numeric")
		}
	})

	t.Run("missing cell prints NaN", func(t *testing.T) {
		t.Parallel()

		if got := NullCell().String(); got != "NaN" {
			t.Errorf("String() = %q, want NaN", got)
		}
		if _, ok := NullCell().Float(); ok {
			t.Error("expected missing cell to be non-numeric")
		}
	})
}

// TestParseKind tests kind name parsing.
func TestParseKind(t *testing.T) {
	t.Parallel()

	for _, k := range []Kind{KindMissing, KindInt, KindFloat, KindString} {
		got, err := parseKind(k.String())
		if err != nil {
			t.Fatalf("parseKind(%q) error: %v", k.String(), err)
		}
		if got != k {
			t.Errorf("parseKind(%q) = %v, want %v", k.String(), got, k)
		}
	}

	if _, err := parseKind("complex"); err == nil {
		t.Error("expected error for unknown kind")
	}

	t.Run("decodes JSON kind names", func(t *testing.T) {
		t.Parallel()

		var stats struct {
			Kind Kind `json:"kind"`
		}
		if err := json.Unmarshal([]byte(`{"kind":"float"}`), &stats); err != nil {
			t.Fatalf("Unmarshal() error: %v", err)
		}
		if stats.Kind != KindFloat {
			t.Errorf("Kind = %v, want %v", stats.Kind, KindFloat)
		}
		if err := json.Unmarshal([]byte(`{"kind":"complex"}`), &stats); err == nil {
			t.Error("expected error for unknown kind")
		}
	})
}

// TestColumnKinds tests kind collection and inference over a column.
func TestColumnKinds(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		cells     []Cell
		wantKinds []Kind
		inferred  Kind
		missing   int
	}{
		{
			name:      "all integers",
			cells:     []Cell{NewCell("1"), NewCell("2")},
			wantKinds: []Kind{KindInt},
			inferred:  KindInt,
		},
		{
			name:      "integers and floats",
			cells:     []Cell{NewCell("1"), NewCell("2.5")},
			wantKinds: []Kind{KindInt, KindFloat},
			inferred:  KindFloat,
		},
		{
			name:      "integers and text",
			cells:     []Cell{NewCell("1"), NewCell("x"), NullCell()},
			wantKinds: []Kind{KindInt, KindString},
			inferred:  KindString,
			missing:   1,
		},
		{
			name:      "only missing",
			cells:     []Cell{NullCell(), NullCell()},
			wantKinds: []Kind{},
			inferred:  KindMissing,
			missing:   2,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			c := &Column{Name: "c", Cells: tt.cells}
			if got := c.Kinds(); !slices.Equal(got, tt.wantKinds) {
				t.Errorf("Kinds() = %v, want %v", got, tt.wantKinds)
			}
			if got := c.InferredKind(); got != tt.inferred {
				t.Errorf("InferredKind() = %v, want %v", got, tt.inferred)
			}
			if got := c.MissingCount(); got != tt.missing {
				t.Errorf("MissingCount() = %d, want %d", got, tt.missing)
			}
		})
	}
}

// TestTable tests table construction and access.
func TestTable(t *testing.T) {
	t.Parallel()

	t.Run("rejects duplicate column names", func(t *testing.T) {
		t.Parallel()

		_, err := NewTable("a", "b", "a")
		if !errors.Is(err, ErrDuplicateColumn) {
			t.Errorf("expected ErrDuplicateColumn, got %v", err)
		}
	})

	t.Run("appends rows and reads them back", func(t *testing.T) {
		t.Parallel()

		tbl, err := NewTable("a", "b")
		if err != nil {
			t.Fatalf("NewTable() error: %v", err)
		}
		if err := tbl.AppendRow([]Cell{NewCell("1"), NewCell("x")}); err != nil {
			t.Fatalf("AppendRow() error: %v", err)
		}
		if err := tbl.AppendRow([]Cell{NewCell("2"), NullCell()}); err != nil {
			t.Fatalf("AppendRow() error: %v", err)
		}

		if tbl.NumRows() != 2 || tbl.NumColumns() != 2 {
			t.Errorf("got %dx%d, want 2x2", tbl.NumRows(), tbl.NumColumns())
		}
		if !slices.Equal(tbl.Columns(), []string{"a", "b"}) {
			t.Errorf("Columns() = %v", tbl.Columns())
		}
		row := tbl.Row(1)
		if row[0] != NewCell("2") || row[1].Valid {
			t.Errorf("Row(1) = %v", row)
		}
		if !tbl.HasColumn("b") || tbl.HasColumn("c") {
			t.Error("HasColumn returned wrong result")
		}
	})

	t.Run("rejects rows of wrong width", func(t *testing.T) {
		t.Parallel()

		tbl, _ := NewTable("a", "b")
		err := tbl.AppendRow([]Cell{NewCell("1")})
		if !errors.Is(err, ErrRowWidth) {
			t.Errorf("expected ErrRowWidth, got %v", err)
		}
	})

	t.Run("unknown column is an error", func(t *testing.T) {
		t.Parallel()

		tbl, _ := NewTable("a")
		_, err := tbl.Column("missing")
		if !errors.Is(err, ErrColumnNotFound) {
			t.Errorf("expected ErrColumnNotFound, got %v", err)
		}
	})

	t.Run("SetCell validates row index", func(t *testing.T) {
		t.Parallel()

		tbl, _ := NewTable("a")
		_ = tbl.AppendRow([]Cell{NewCell("1")})

		if err := tbl.SetCell(0, "a", NullCell()); err != nil {
			t.Fatalf("SetCell() error: %v", err)
		}
		if err := tbl.SetCell(1, "a", NullCell()); !errors.Is(err, ErrRowOutOfRange) {
			t.Errorf("expected ErrRowOutOfRange, got %v", err)
		}
		col, _ := tbl.Column("a")
		if col.MissingCount() != 1 {
			t.Errorf("expected 1 missing cell, got %d", col.MissingCount())
		}
	})
}
