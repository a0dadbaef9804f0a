package collector

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/rocky-star/audiveris-packager/internal/config"
	"github.com/rocky-star/audiveris-packager/internal/repository/marker"
)

// writeFile creates a small file at path, creating parent directories as needed.
func writeFile(t *testing.T, path string) {
	t.Helper()

	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte("jar-bytes"), 0o644))
}

// testConfig builds a validated config with a primary jar and one dependency dir.
func testConfig(t *testing.T, dir string) *config.Config {
	t.Helper()

	cfg := &config.Config{
		Name:           "Audiveris",
		ID:             "org.audiveris.audiveris",
		Version:        "5.4",
		PrimaryJar:     filepath.Join(dir, "app", "audiveris.jar"),
		MainClass:      "Audiveris",
		DependencyDirs: []string{filepath.Join(dir, "deps")},
	}
	cfg.Paths.BuildRoot = filepath.Join(dir, "build")

	require.NoError(t, config.Validate(cfg))

	return cfg
}

// TestCollect stages the primary jar plus every dependency jar, skipping
// non-jar entries, and marks the stage complete.
func TestCollect(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	dir := t.TempDir()
	cfg := testConfig(t, dir)
	markers := marker.NewFileRepository()

	writeFile(t, cfg.PrimaryJar)
	writeFile(t, filepath.Join(dir, "deps", "guava.jar"))
	writeFile(t, filepath.Join(dir, "deps", "jaxb.jar"))
	writeFile(t, filepath.Join(dir, "deps", "README.txt"))

	require.NoError(t, Collect(ctx, markers, cfg))

	for _, name := range []string{"audiveris.jar", "guava.jar", "jaxb.jar"} {
		_, err := os.Stat(filepath.Join(cfg.Paths.Staging, name))
		require.NoError(t, err, name)
	}

	// The staging directory is handed verbatim to the packaging tool, so it
	// must hold the jars and nothing else; the completion sentinel lives
	// beside it.
	entries, err := os.ReadDir(cfg.Paths.Staging)
	require.NoError(t, err)

	names := make([]string, 0, len(entries))
	for _, entry := range entries {
		names = append(names, entry.Name())
	}

	require.ElementsMatch(t, []string{"audiveris.jar", "guava.jar", "jaxb.jar"}, names)

	_, err = os.Stat(marker.Path(cfg.Paths.Staging))
	require.NoError(t, err)

	done, err := markers.Completed(ctx, cfg.Paths.Staging)
	require.NoError(t, err)
	require.True(t, done)
}

// TestCollectSkipsCompletedRun ensures a completed staging directory is left alone.
func TestCollectSkipsCompletedRun(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	dir := t.TempDir()
	cfg := testConfig(t, dir)
	markers := marker.NewFileRepository()

	require.NoError(t, os.MkdirAll(cfg.Paths.Staging, 0o755))
	require.NoError(t, markers.MarkCompleted(ctx, cfg.Paths.Staging))

	// The primary jar does not even exist; the skip must happen first.
	require.NoError(t, Collect(ctx, markers, cfg))
}

// TestCollectMissingPrimaryArtifact checks the fatal error when the upstream
// build has not produced the application jar.
func TestCollectMissingPrimaryArtifact(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	dir := t.TempDir()
	cfg := testConfig(t, dir)
	markers := marker.NewFileRepository()

	err := Collect(ctx, markers, cfg)
	require.ErrorIs(t, err, errPrimaryArtifactMissing)
	require.Contains(t, err.Error(), cfg.PrimaryJar)
}
