// Package dataset persists and loads loan application tables.
//
// The file format is chosen from the path extension:
//   - .csv: header row plus one line per record, comma-delimited, UTF-8
//   - .db, .sqlite, .sqlite3: a SQLite database holding the loan_applications table
//
// Loading a CSV file follows the usual missing-marker convention of data analysis
// tools: an empty field and markers such as "NA", "NaN" or "null" become missing cells.
// A marker that is a declared member of the column's enumeration is kept as a value,
// so Education=None survives the round trip.
package dataset
