package output

import (
	"bytes"
	"context"
	"database/sql"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
	_ "modernc.org/sqlite"

	"github.com/vk/chembatch/internal/config"
)

var (
	testNames = []string{"time", "Tracer", "pH"}
	testFlat  = []float64{
		0, 1.0, 7.0,
		1, 0.5, 7.1,
		2, 0.25, 7.2,
	}
)

func TestWriteCSVToStream(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	err := Write(context.Background(), config.Output{Type: "csv"}, &buf, testNames, testFlat)
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 4, "header plus one row per step")
	require.Equal(t, "time,Tracer,pH", lines[0])
	require.Equal(t, "1,0.5,7.1", lines[2])
}

func TestWriteCSVToFile(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "history.csv")
	err := Write(context.Background(), config.Output{Type: "csv", File: path}, nil, testNames, testFlat)
	require.NoError(t, err)
	require.FileExists(t, path)
}

func TestWriteSQLite(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "history.db")
	err := Write(context.Background(), config.Output{Type: "sqlite", File: path}, nil, testNames, testFlat)
	require.NoError(t, err)

	db, err := sql.Open("sqlite", path)
	require.NoError(t, err)
	defer db.Close()

	var count int
	require.NoError(t, db.QueryRow(`SELECT COUNT(*) FROM history`).Scan(&count))
	require.Equal(t, len(testFlat), count)

	var val float64
	require.NoError(t, db.QueryRow(
		`SELECT value FROM history WHERE step = 1 AND variable = 'Tracer'`).Scan(&val))
	require.Equal(t, 0.5, val)
}

func TestWriteSQLiteRequiresFile(t *testing.T) {
	t.Parallel()

	err := Write(context.Background(), config.Output{Type: "sqlite"}, nil, testNames, testFlat)
	require.ErrorContains(t, err, "requires an output file")
}

func TestWriteRejectsRaggedTable(t *testing.T) {
	t.Parallel()

	err := Write(context.Background(), config.Output{Type: "csv"}, &bytes.Buffer{}, testNames, testFlat[:4])
	require.ErrorContains(t, err, "not a multiple")
}

func TestWriteRejectsUnknownSink(t *testing.T) {
	t.Parallel()

	err := Write(context.Background(), config.Output{Type: "parquet"}, nil, testNames, testFlat)
	require.ErrorContains(t, err, "unknown sink")
}
