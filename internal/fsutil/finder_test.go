package fsutil

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestFindFilesByExtension(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	for _, name := range []string{"b.hcl", "a.hcl", "notes.txt", "run.yaml"} {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), nil, 0o600))
	}
	sub := filepath.Join(dir, "nested")
	require.NoError(t, os.Mkdir(sub, 0o700))
	require.NoError(t, os.WriteFile(filepath.Join(sub, "c.hcl"), nil, 0o600))

	files, err := FindFilesByExtension(dir, ".hcl")
	require.NoError(t, err)
	require.Equal(t, []string{
		filepath.Join(dir, "a.hcl"),
		filepath.Join(dir, "b.hcl"),
		filepath.Join(sub, "c.hcl"),
	}, files)

	both, err := FindFilesByExtension(dir, ".hcl", ".yaml")
	require.NoError(t, err)
	require.Len(t, both, 4)
}

func TestFindFilesByExtensionSingleFile(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	file := filepath.Join(dir, "run.hcl")
	require.NoError(t, os.WriteFile(file, nil, 0o600))

	files, err := FindFilesByExtension(file, ".hcl")
	require.NoError(t, err)
	require.Equal(t, []string{file}, files)

	none, err := FindFilesByExtension(file, ".yaml")
	require.NoError(t, err)
	require.Empty(t, none)
}

func TestFindFilesByExtensionMissingPath(t *testing.T) {
	t.Parallel()

	_, err := FindFilesByExtension(filepath.Join(t.TempDir(), "absent"), ".hcl")
	require.Error(t, err)
}
