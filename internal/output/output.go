// Package output writes the flattened history projection to a
// downstream sink: a CSV file (or stream) for tabular dumps, or a SQLite
// database for queryable archives.
package output

import (
	"context"
	"database/sql"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"

	_ "modernc.org/sqlite" // SQLite driver

	"github.com/vk/chembatch/internal/config"
	"github.com/vk/chembatch/internal/ctxlog"
)

// Write dispatches the time-major history table to the configured sink.
// A CSV sink with no file writes to defaultW. The table's length must be
// a multiple of len(names); Write rejects anything else rather than
// truncating silently.
func Write(ctx context.Context, spec config.Output, defaultW io.Writer, names []string, flat []float64) error {
	if len(names) == 0 || len(flat)%len(names) != 0 {
		return fmt.Errorf("output: table length %d is not a multiple of variable count %d", len(flat), len(names))
	}
	switch spec.Type {
	case "csv":
		if spec.File == "" {
			return writeCSV(defaultW, names, flat)
		}
		f, err := os.Create(spec.File)
		if err != nil {
			return fmt.Errorf("output: %w", err)
		}
		defer f.Close()
		if err := writeCSV(f, names, flat); err != nil {
			return err
		}
		ctxlog.FromContext(ctx).Info("History written.", "format", "csv", "file", spec.File)
		return f.Close()
	case "sqlite":
		if spec.File == "" {
			return fmt.Errorf("output: sqlite sink requires an output file")
		}
		if err := writeSQLite(ctx, spec.File, names, flat); err != nil {
			return err
		}
		ctxlog.FromContext(ctx).Info("History written.", "format", "sqlite", "file", spec.File)
		return nil
	default:
		return fmt.Errorf("output: unknown sink type %q", spec.Type)
	}
}

// writeCSV emits one header row of variable names and one row per
// recorded time step.
func writeCSV(w io.Writer, names []string, flat []float64) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(names); err != nil {
		return fmt.Errorf("output: %w", err)
	}
	numVars := len(names)
	row := make([]string, numVars)
	for off := 0; off < len(flat); off += numVars {
		for v := 0; v < numVars; v++ {
			row[v] = strconv.FormatFloat(flat[off+v], 'g', -1, 64)
		}
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("output: %w", err)
		}
	}
	cw.Flush()
	return cw.Error()
}

// writeSQLite stores the table as (step, variable, value) rows so any
// variable's series is one indexed query away.
func writeSQLite(ctx context.Context, path string, names []string, flat []float64) error {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return fmt.Errorf("output: failed to open database: %w", err)
	}
	defer db.Close()
	db.SetMaxOpenConns(1) // SQLite works best with a single writer

	const schema = `
CREATE TABLE IF NOT EXISTS history (
	step     INTEGER NOT NULL,
	variable TEXT    NOT NULL,
	value    REAL    NOT NULL,
	PRIMARY KEY (step, variable)
);`
	if _, err := db.ExecContext(ctx, schema); err != nil {
		return fmt.Errorf("output: failed to initialize schema: %w", err)
	}

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("output: %w", err)
	}
	defer tx.Rollback()

	stmt, err := tx.PrepareContext(ctx, `INSERT OR REPLACE INTO history (step, variable, value) VALUES (?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("output: %w", err)
	}
	defer stmt.Close()

	numVars := len(names)
	for off, step := 0, 0; off < len(flat); off, step = off+numVars, step+1 {
		for v := 0; v < numVars; v++ {
			if _, err := stmt.ExecContext(ctx, step, names[v], flat[off+v]); err != nil {
				return fmt.Errorf("output: insert step %d: %w", step, err)
			}
		}
	}
	return tx.Commit()
}
