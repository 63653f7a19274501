package database

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"testing"

	"github.com/nao1215/loanqa/internal/model"
)

// setupTestDB creates a temporary database for testing.
func setupTestDB(t *testing.T) *TableDB {
	t.Helper()

	db, err := Open(filepath.Join(t.TempDir(), "loans.db"), DefaultOptions())
	if err != nil {
		t.Fatalf("failed to open database: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	return db
}

// newFixtureTable builds a small table with one missing cell and one malformed value.
func newFixtureTable(t *testing.T) *model.Table {
	t.Helper()

	tbl, err := model.NewTable(model.ColLoanID, model.ColGender, model.ColFICOScore)
	if err != nil {
		t.Fatalf("NewTable() error: %v", err)
	}
	rows := [][]model.Cell{
		{model.NewCell("LP0001"), model.NewCell("Male"), model.NewCell("700")},
		{model.NewCell("LP0002"), model.NullCell(), model.NewCell("655")},
		{model.NewCell("LP0003"), model.NewCell("Female"), model.NewCell("high")},
	}
	for _, r := range rows {
		if err := tbl.AppendRow(r); err != nil {
			t.Fatalf("AppendRow() error: %v", err)
		}
	}
	return tbl
}

// TestOpen tests database opening and creation.
func TestOpen(t *testing.T) {
	t.Parallel()

	t.Run("creates database in new directory", func(t *testing.T) {
		t.Parallel()

		dbPath := filepath.Join(t.TempDir(), "newdir", "subdir", "loans.db")
		db, err := Open(dbPath, DefaultOptions())
		if err != nil {
			t.Fatalf("failed to open database: %v", err)
		}
		defer db.Close()

		if _, err := db.ListTables(context.Background()); err != nil {
			t.Fatalf("ListTables() error: %v", err)
		}
		if _, err := os.Stat(dbPath); os.IsNotExist(err) {
			t.Error("database file was not created")
		}
		if db.Path() != dbPath {
			t.Errorf("Path() = %q, want %q", db.Path(), dbPath)
		}
	})

	t.Run("CreateIfNotExists=false returns error when database does not exist", func(t *testing.T) {
		t.Parallel()

		dbPath := filepath.Join(t.TempDir(), "absent.db")
		_, err := Open(dbPath, Options{CreateIfNotExists: false})
		if err == nil {
			t.Error("expected error for missing database")
		}
	})

	t.Run("EnableWAL works", func(t *testing.T) {
		t.Parallel()

		db, err := Open(filepath.Join(t.TempDir(), "wal.db"), Options{CreateIfNotExists: true, EnableWAL: true})
		if err != nil {
			t.Fatalf("failed to open database with WAL: %v", err)
		}
		_ = db.Close()
	})
}

// TestSaveLoadTable tests the table round trip through SQLite.
func TestSaveLoadTable(t *testing.T) {
	t.Parallel()

	t.Run("round trip keeps values, order and missing cells", func(t *testing.T) {
		t.Parallel()

		db := setupTestDB(t)
		ctx := context.Background()
		want := newFixtureTable(t)

		if err := db.SaveTable(ctx, DefaultTableName, want, model.LoanSchema()); err != nil {
			t.Fatalf("SaveTable() error: %v", err)
		}
		got, err := db.LoadTable(ctx, DefaultTableName)
		if err != nil {
			t.Fatalf("LoadTable() error: %v", err)
		}

		if !slices.Equal(got.Columns(), want.Columns()) {
			t.Fatalf("Columns() = %v, want %v", got.Columns(), want.Columns())
		}
		if got.NumRows() != want.NumRows() {
			t.Fatalf("NumRows() = %d, want %d", got.NumRows(), want.NumRows())
		}
		for r := range want.NumRows() {
			if !slices.Equal(got.Row(r), want.Row(r)) {
				t.Errorf("row %d = %v, want %v", r, got.Row(r), want.Row(r))
			}
		}
	})

	t.Run("save replaces an existing table", func(t *testing.T) {
		t.Parallel()

		db := setupTestDB(t)
		ctx := context.Background()
		tbl := newFixtureTable(t)

		for range 2 {
			if err := db.SaveTable(ctx, DefaultTableName, tbl, model.LoanSchema()); err != nil {
				t.Fatalf("SaveTable() error: %v", err)
			}
		}
		got, err := db.LoadTable(ctx, DefaultTableName)
		if err != nil {
			t.Fatalf("LoadTable() error: %v", err)
		}
		if got.NumRows() != 3 {
			t.Errorf("expected 3 rows after overwrite, got %d", got.NumRows())
		}
	})

	t.Run("loading an unknown table fails", func(t *testing.T) {
		t.Parallel()

		db := setupTestDB(t)
		ctx := context.Background()
		if err := db.SaveTable(ctx, DefaultTableName, newFixtureTable(t), model.LoanSchema()); err != nil {
			t.Fatalf("SaveTable() error: %v", err)
		}
		_, err := db.LoadTable(ctx, "nope")
		if !errors.Is(err, ErrTableNotFound) {
			t.Errorf("expected ErrTableNotFound, got %v", err)
		}
		if err != nil && !strings.Contains(err.Error(), DefaultTableName) {
			t.Errorf("error should list the existing tables: %v", err)
		}
	})

	t.Run("malformed numbers keep their text", func(t *testing.T) {
		t.Parallel()

		db := setupTestDB(t)
		ctx := context.Background()
		tbl, err := model.NewTable(model.ColLoanID, model.ColCreditHistory, model.ColApplicantIncome)
		if err != nil {
			t.Fatalf("NewTable() error: %v", err)
		}
		rows := [][]model.Cell{
			{model.NewCell("LP0001"), model.NewCell("1"), model.NewCell("5000")},
			{model.NewCell("LP0002"), model.NewCell("1.0"), model.NewCell("4200")},
			{model.NewCell("LP0003"), model.NewCell("0"), model.NewCell("3100")},
		}
		for _, r := range rows {
			if err := tbl.AppendRow(r); err != nil {
				t.Fatalf("AppendRow() error: %v", err)
			}
		}

		if err := db.SaveTable(ctx, DefaultTableName, tbl, model.LoanSchema()); err != nil {
			t.Fatalf("SaveTable() error: %v", err)
		}
		got, err := db.LoadTable(ctx, DefaultTableName)
		if err != nil {
			t.Fatalf("LoadTable() error: %v", err)
		}
		col, err := got.Column(model.ColCreditHistory)
		if err != nil {
			t.Fatalf("Column() error: %v", err)
		}
		want := []string{"1", "1.0", "0"}
		for i, cell := range col.Cells {
			if cell.Value != want[i] {
				t.Errorf("row %d = %q, want %q", i, cell.Value, want[i])
			}
		}
		if kinds := col.Kinds(); len(kinds) != 2 {
			t.Errorf("Kinds() = %v, want int and float", kinds)
		}
		if got.Row(0)[2].Value != "5000" {
			t.Errorf("income = %q, want 5000", got.Row(0)[2].Value)
		}
	})
}

// TestListTables tests table enumeration.
func TestListTables(t *testing.T) {
	t.Parallel()

	db := setupTestDB(t)
	ctx := context.Background()
	tbl := newFixtureTable(t)

	for _, name := range []string{"b_table", "a_table"} {
		if err := db.SaveTable(ctx, name, tbl, nil); err != nil {
			t.Fatalf("SaveTable(%s) error: %v", name, err)
		}
	}

	names, err := db.ListTables(ctx)
	if err != nil {
		t.Fatalf("ListTables() error: %v", err)
	}
	if !slices.Equal(names, []string{"a_table", "b_table"}) {
		t.Errorf("ListTables() = %v", names)
	}
}
