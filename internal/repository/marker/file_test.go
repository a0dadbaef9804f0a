package marker

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

// TestMarkerRoundtrip ensures MarkCompleted makes Completed true and that a
// bare directory reports incomplete.
func TestMarkerRoundtrip(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	repo := NewFileRepository()
	dir := filepath.Join(t.TempDir(), "runtime")
	require.NoError(t, os.Mkdir(dir, 0o755))

	done, err := repo.Completed(ctx, dir)
	require.NoError(t, err)
	require.False(t, done)

	require.NoError(t, repo.MarkCompleted(ctx, dir))

	done, err = repo.Completed(ctx, dir)
	require.NoError(t, err)
	require.True(t, done)

	// No temporary file is left behind.
	_, err = os.Stat(Path(dir) + ".tmp")
	require.ErrorIs(t, err, os.ErrNotExist)
}

// TestMarkerOutsideDirectory pins the sentinel location: beside the stage
// directory, never inside it, so stage outputs stay exactly what the
// packaging tool should bundle.
func TestMarkerOutsideDirectory(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	repo := NewFileRepository()
	dir := filepath.Join(t.TempDir(), "jars")
	require.NoError(t, os.Mkdir(dir, 0o755))

	require.NoError(t, repo.MarkCompleted(ctx, dir))

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.Empty(t, entries)

	_, err = os.Stat(dir + Suffix)
	require.NoError(t, err)
}

// TestCompletedWithoutDirectory treats a sentinel whose directory vanished as
// incomplete, forcing the stage to rebuild.
func TestCompletedWithoutDirectory(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	repo := NewFileRepository()
	dir := filepath.Join(t.TempDir(), "runtime")
	require.NoError(t, os.Mkdir(dir, 0o755))

	require.NoError(t, repo.MarkCompleted(ctx, dir))
	require.NoError(t, os.RemoveAll(dir))

	done, err := repo.Completed(ctx, dir)
	require.NoError(t, err)
	require.False(t, done)
}
