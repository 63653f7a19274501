package dataset

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/nao1215/loanqa/internal/model"
)

// naMarkers are the field values read as missing.
var naMarkers = map[string]struct{}{
	"":         {},
	"#N/A":     {},
	"#N/A N/A": {},
	"#NA":      {},
	"-1.#IND":  {},
	"-1.#QNAN": {},
	"-NaN":     {},
	"-nan":     {},
	"1.#IND":   {},
	"1.#QNAN":  {},
	"<NA>":     {},
	"N/A":      {},
	"NA":       {},
	"NULL":     {},
	"NaN":      {},
	"None":     {},
	"n/a":      {},
	"nan":      {},
	"null":     {},
}

// isNAMarker reports whether v is read as missing in a column without an
// enumeration that contains it.
func isNAMarker(v string) bool {
	_, ok := naMarkers[v]
	return ok
}

// WriteCSV writes the table as CSV: one header row, then one line per row.
// Missing cells are written as empty fields.
func WriteCSV(w io.Writer, t *model.Table) error {
	cw := csv.NewWriter(w)

	if err := cw.Write(t.Columns()); err != nil {
		return fmt.Errorf("failed to write header: %w", err)
	}

	record := make([]string, t.NumColumns())
	for r := range t.NumRows() {
		for i, c := range t.Row(r) {
			if c.Valid {
				record[i] = c.Value
			} else {
				record[i] = ""
			}
		}
		if err := cw.Write(record); err != nil {
			return fmt.Errorf("failed to write row %d: %w", r, err)
		}
	}

	cw.Flush()
	return cw.Error()
}

// ReadCSV reads a CSV table. schema decides which NA markers are enumeration
// members and therefore values; a nil schema treats every marker as missing.
func ReadCSV(r io.Reader, schema *model.Schema) (*model.Table, error) {
	cr := csv.NewReader(r)
	cr.ReuseRecord = true

	header, err := cr.Read()
	if errors.Is(err, io.EOF) {
		return nil, ErrEmptyFile
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read header: %w", err)
	}

	names := make([]string, len(header))
	copy(names, header)
	// Excel and some editors prepend a byte order mark.
	if len(names) > 0 {
		names[0] = strings.TrimPrefix(names[0], "\uFEFF")
	}

	t, err := model.NewTable(names...)
	if err != nil {
		return nil, err
	}

	specs := make([]model.ColumnSpec, len(names))
	for i, name := range names {
		specs[i], _ = schema.Lookup(name)
	}

	line := 1
	for {
		record, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read line %d: %w", line+1, err)
		}
		line++

		cells := make([]model.Cell, len(record))
		for i, v := range record {
			if isNAMarker(v) && !specs[i].InEnum(v) {
				cells[i] = model.NullCell()
				continue
			}
			cells[i] = model.NewCell(v)
		}
		if err := t.AppendRow(cells); err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}
	}

	return t, nil
}
