package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cast"
	_ "modernc.org/sqlite" // SQLite driver

	"github.com/nao1215/loanqa/internal/model"
)

// DefaultTableName is the SQL table that holds the loan application dataset.
const DefaultTableName = "loan_applications"

// ErrTableNotFound is returned when the requested SQL table does not exist.
var ErrTableNotFound = errors.New("table not found")

// TableDB provides SQLite-based storage for datasets.
//
// Design decision: One database file can hold several named tables, but the
// CLI always uses DefaultTableName. Named tables keep the door open for storing
// a cleaned copy next to the raw draw without a second file.
type TableDB struct {
	// db is the underlying SQL database connection.
	db *sql.DB

	// dbPath is the path to the SQLite database file.
	dbPath string
}

// Options configures TableDB behavior.
type Options struct {
	// CreateIfNotExists creates the database file if it doesn't exist.
	CreateIfNotExists bool

	// EnableWAL enables Write-Ahead Logging.
	EnableWAL bool
}

// DefaultOptions returns the default database options.
func DefaultOptions() Options {
	return Options{
		CreateIfNotExists: true,
		EnableWAL:         false,
	}
}

// Open opens or creates a TableDB at the specified file path.
// If CreateIfNotExists is true, the parent directory and database file are created.
// If CreateIfNotExists is false and the database doesn't exist, an error is returned.
func Open(dbPath string, opts Options) (*TableDB, error) {
	if !opts.CreateIfNotExists {
		if _, err := os.Stat(dbPath); os.IsNotExist(err) {
			return nil, fmt.Errorf("database not found at %s", dbPath)
		} else if err != nil {
			return nil, fmt.Errorf("failed to check database path: %w", err)
		}
	} else if dir := filepath.Dir(dbPath); dir != "." {
		if err := os.MkdirAll(dir, 0750); err != nil {
			return nil, fmt.Errorf("failed to create database directory: %w", err)
		}
	}

	// mode=rw refuses to create a new file, mode=rwc allows it.
	dsn := dbPath + "?mode=rw"
	if opts.CreateIfNotExists {
		dsn = dbPath + "?mode=rwc"
	}

	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	db.SetMaxOpenConns(1) // SQLite only supports one writer
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(time.Hour)

	if opts.EnableWAL {
		if _, err := db.ExecContext(context.Background(), "PRAGMA journal_mode=WAL"); err != nil {
			_ = db.Close()
			return nil, fmt.Errorf("failed to enable WAL mode: %w", err)
		}
	}

	return &TableDB{db: db, dbPath: dbPath}, nil
}

// Close closes the database connection.
func (tdb *TableDB) Close() error {
	return tdb.db.Close()
}

// Path returns the database file path.
func (tdb *TableDB) Path() string {
	return tdb.dbPath
}

// sqlType maps a declared kind to an SQLite column type.
func sqlType(k model.Kind) string {
	switch k {
	case model.KindInt:
		return "INTEGER"
	case model.KindFloat:
		return "REAL"
	default:
		return "TEXT"
	}
}

// quoteIdent quotes an SQL identifier.
func quoteIdent(name string) string {
	return `"` + strings.ReplaceAll(name, `"`, `""`) + `"`
}

// declaredKind returns the kind a column is stored with.
// Columns unknown to the schema are stored as TEXT.
func declaredKind(schema *model.Schema, name string) model.Kind {
	if spec, ok := schema.Lookup(name); ok {
		return spec.Kind
	}
	return model.KindString
}

// SaveTable replaces the named SQL table with the contents of t.
// The whole write happens in one transaction.
func (tdb *TableDB) SaveTable(ctx context.Context, name string, t *model.Table, schema *model.Schema) (err error) {
	tx, err := tdb.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	if _, err = tx.ExecContext(ctx, "DROP TABLE IF EXISTS "+quoteIdent(name)); err != nil {
		return fmt.Errorf("failed to drop table %s: %w", name, err)
	}

	columns := t.Columns()
	kinds := make([]model.Kind, len(columns))
	defs := make([]string, len(columns))
	marks := make([]string, len(columns))
	for i, col := range columns {
		kinds[i] = declaredKind(schema, col)
		if !conforms(t.ColumnAt(i), kinds[i]) {
			kinds[i] = model.KindString
			defs[i] = quoteIdent(col)
		} else {
			defs[i] = quoteIdent(col) + " " + sqlType(kinds[i])
		}
		marks[i] = "?"
	}

	create := fmt.Sprintf("CREATE TABLE %s (%s)", quoteIdent(name), strings.Join(defs, ", "))
	if _, err = tx.ExecContext(ctx, create); err != nil {
		return fmt.Errorf("failed to create table %s: %w", name, err)
	}

	quoted := make([]string, len(columns))
	for i, col := range columns {
		quoted[i] = quoteIdent(col)
	}
	insert := fmt.Sprintf("INSERT INTO %s (%s) VALUES (%s)",
		quoteIdent(name), strings.Join(quoted, ", "), strings.Join(marks, ", "))

	stmt, err := tx.PrepareContext(ctx, insert)
	if err != nil {
		return fmt.Errorf("failed to prepare insert: %w", err)
	}
	defer stmt.Close()

	args := make([]any, len(columns))
	for r := range t.NumRows() {
		for i, cell := range t.Row(r) {
			args[i] = sqlValue(cell, kinds[i])
		}
		if _, err = stmt.ExecContext(ctx, args...); err != nil {
			return fmt.Errorf("failed to insert row %d: %w", r, err)
		}
	}

	if err = tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

// conforms reports whether every present cell of c parses as kind k.
// A numeric column holding malformed values is created without a declared
// type so that SQLite's type affinity cannot rewrite them (text "1.0" would
// otherwise be stored as the integer 1 and hide the bad value).
func conforms(c *model.Column, k model.Kind) bool {
	if !k.IsNumeric() {
		return true
	}
	for _, cell := range c.Cells {
		if _, ok := sqlNumber(cell, k); cell.Valid && !ok {
			return false
		}
	}
	return true
}

// sqlNumber parses a present cell as the declared numeric kind.
func sqlNumber(c model.Cell, k model.Kind) (any, bool) {
	switch k {
	case model.KindInt:
		if n, err := strconv.ParseInt(c.Value, 10, 64); err == nil {
			return n, true
		}
	case model.KindFloat:
		if f, ok := c.Float(); ok {
			return f, true
		}
	}
	return nil, false
}

// sqlValue converts a cell to the value bound for its column.
// Columns created without a type receive the original text.
func sqlValue(c model.Cell, k model.Kind) any {
	if !c.Valid {
		return nil
	}
	if v, ok := sqlNumber(c, k); ok {
		return v
	}
	return c.Value
}

// LoadTable reads the named SQL table in column order.
// NULL becomes a missing cell; every other value is coerced to its text form.
func (tdb *TableDB) LoadTable(ctx context.Context, name string) (*model.Table, error) {
	tables, err := tdb.ListTables(ctx)
	if err != nil {
		return nil, err
	}
	if !slices.Contains(tables, name) {
		return nil, fmt.Errorf("%w: %s in %s (tables: [%s])",
			ErrTableNotFound, name, tdb.Path(), strings.Join(tables, ", "))
	}

	rows, err := tdb.db.QueryContext(ctx, "SELECT * FROM "+quoteIdent(name)+" ORDER BY rowid")
	if err != nil {
		return nil, fmt.Errorf("failed to query table %s: %w", name, err)
	}
	defer rows.Close()

	columns, err := rows.Columns()
	if err != nil {
		return nil, fmt.Errorf("failed to read columns: %w", err)
	}
	t, err := model.NewTable(columns...)
	if err != nil {
		return nil, err
	}

	values := make([]any, len(columns))
	ptrs := make([]any, len(columns))
	for i := range values {
		ptrs[i] = &values[i]
	}

	for rows.Next() {
		if err := rows.Scan(ptrs...); err != nil {
			return nil, fmt.Errorf("failed to scan row: %w", err)
		}
		cells := make([]model.Cell, len(columns))
		for i, v := range values {
			cell, err := toCell(v)
			if err != nil {
				return nil, fmt.Errorf("column %s: %w", columns[i], err)
			}
			cells[i] = cell
		}
		if err := t.AppendRow(cells); err != nil {
			return nil, err
		}
	}
	return t, rows.Err()
}

// toCell converts a scanned SQL value into a cell.
func toCell(v any) (model.Cell, error) {
	switch x := v.(type) {
	case nil:
		return model.NullCell(), nil
	case []byte:
		return model.NewCell(string(x)), nil
	default:
		s, err := cast.ToStringE(x)
		if err != nil {
			return model.Cell{}, err
		}
		return model.NewCell(s), nil
	}
}

// ListTables returns the names of all tables in the database, sorted by name.
func (tdb *TableDB) ListTables(ctx context.Context) ([]string, error) {
	rows, err := tdb.db.QueryContext(ctx,
		"SELECT name FROM sqlite_master WHERE type = 'table' ORDER BY name")
	if err != nil {
		return nil, fmt.Errorf("failed to list tables: %w", err)
	}
	defer rows.Close()

	var names []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, fmt.Errorf("failed to scan table name: %w", err)
		}
		names = append(names, name)
	}
	return names, rows.Err()
}
