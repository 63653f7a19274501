// Package database provides SQLite-based storage for loanqa datasets.
//
// This package implements the TableDB, which stores a model.Table as one SQL table
// whose columns are typed from the declared schema (INTEGER, REAL or TEXT).
// Missing cells are stored as NULL.
//
// Design decision: We use SQLite (via modernc.org/sqlite) instead of other
// databases because:
// 1. No external dependencies - the database is a single file
// 2. CGO-free implementation allows easy cross-compilation
// 3. A generated dataset fits comfortably in a single file
// 4. Typed columns let other tools query the data without re-parsing CSV
package database
