package dataset

import (
	"bytes"
	"context"
	"encoding/hex"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/crypto/sha3"

	"github.com/nao1215/loanqa/internal/database"
	"github.com/nao1215/loanqa/internal/model"
)

// Format identifies a dataset file format.
type Format int

const (
	// FormatCSV is a comma-separated text file.
	FormatCSV Format = iota

	// FormatSQLite is a SQLite database file.
	FormatSQLite
)

// String returns the format name.
func (f Format) String() string {
	switch f {
	case FormatCSV:
		return "csv"
	case FormatSQLite:
		return "sqlite"
	default:
		return "unknown"
	}
}

// FormatFromPath selects the format from the file extension.
func FormatFromPath(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".csv":
		return FormatCSV, nil
	case ".db", ".sqlite", ".sqlite3":
		return FormatSQLite, nil
	default:
		return 0, fmt.Errorf("%w: %q", ErrUnsupportedFormat, filepath.Ext(path))
	}
}

// Save writes the table to path in the format chosen by its extension.
// An existing file is replaced.
func Save(ctx context.Context, path string, t *model.Table) error {
	format, err := FormatFromPath(path)
	if err != nil {
		return err
	}

	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0750); err != nil {
			return fmt.Errorf("failed to create directory %s: %w", dir, err)
		}
	}

	switch format {
	case FormatSQLite:
		return saveSQLite(ctx, path, t)
	default:
		return saveCSV(path, t)
	}
}

// Load reads the table at path in the format chosen by its extension.
// Values are kept as text; kinds are inferred by the caller on demand.
func Load(ctx context.Context, path string) (*model.Table, error) {
	format, err := FormatFromPath(path)
	if err != nil {
		return nil, err
	}

	switch format {
	case FormatSQLite:
		return loadSQLite(ctx, path)
	default:
		return loadCSV(path)
	}
}

func saveCSV(path string, t *model.Table) (err error) {
	f, err := os.Create(path) //nolint:gosec // path comes from the user's configuration
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", path, err)
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("failed to close %s: %w", path, cerr)
		}
	}()

	if err := WriteCSV(f, t); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	return nil
}

func loadCSV(path string) (*model.Table, error) {
	f, err := os.Open(path) //nolint:gosec // path comes from the user's configuration
	if err != nil {
		return nil, fmt.Errorf("failed to open %s: %w", path, err)
	}
	defer f.Close()

	t, err := ReadCSV(f, model.LoanSchema())
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}
	return t, nil
}

func saveSQLite(ctx context.Context, path string, t *model.Table) error {
	db, err := database.Open(path, database.DefaultOptions())
	if err != nil {
		return err
	}
	defer db.Close()

	return db.SaveTable(ctx, database.DefaultTableName, t, model.LoanSchema())
}

func loadSQLite(ctx context.Context, path string) (*model.Table, error) {
	db, err := database.Open(path, database.Options{CreateIfNotExists: false})
	if err != nil {
		return nil, err
	}
	defer db.Close()

	return db.LoadTable(ctx, database.DefaultTableName)
}

// Fingerprint returns the hex SHA3-256 digest of the table's CSV encoding.
// Two tables with the same columns and cells have the same fingerprint
// regardless of the file format they were loaded from.
func Fingerprint(t *model.Table) (string, error) {
	var buf bytes.Buffer
	if err := WriteCSV(&buf, t); err != nil {
		return "", err
	}
	sum := sha3.Sum256(buf.Bytes())
	return hex.EncodeToString(sum[:]), nil
}
