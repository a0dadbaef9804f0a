package collector

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/rocky-star/audiveris-packager/internal/config"
	"github.com/rocky-star/audiveris-packager/internal/logger"
	"github.com/rocky-star/audiveris-packager/internal/repository/marker"
)

// stagedDirPermissions is applied to the staging directory tree.
const stagedDirPermissions os.FileMode = 0o755

// errPrimaryArtifactMissing indicates the upstream application build has not
// produced the primary jar yet.
var errPrimaryArtifactMissing = errors.New("primary artifact not found, run the application build first")

// Collect gathers the primary application jar and every dependency jar into
// the staging directory consumed by the packaging tool.
//
// Like the runtime assembly stage it is idempotent through a completion
// marker; the remains of an unfinished run are discarded and re-staged.
func Collect(ctx context.Context, markers marker.Repository, cfg *config.Config) error {
	staging := cfg.Paths.Staging

	done, err := markers.Completed(ctx, staging)
	if err != nil {
		return err
	}

	if done {
		logger.InfoKV(ctx, "Application jars already staged, skipping", "path", staging)
		return nil
	}

	if err := os.RemoveAll(staging); err != nil {
		return fmt.Errorf("remove stale staging directory: %w", err)
	}

	if err := os.MkdirAll(staging, stagedDirPermissions); err != nil {
		return fmt.Errorf("create staging directory: %w", err)
	}

	if _, err := os.Stat(cfg.PrimaryJar); errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("%s: %w", cfg.PrimaryJar, errPrimaryArtifactMissing)
	} else if err != nil {
		return fmt.Errorf("stat primary artifact: %w", err)
	}

	logger.InfoKV(ctx, "Staging application jars", "path", staging)

	if err := copyFile(cfg.PrimaryJar, filepath.Join(staging, cfg.MainJarName())); err != nil {
		return fmt.Errorf("stage primary artifact: %w", err)
	}

	staged := 1

	for _, dir := range cfg.DependencyDirs {
		count, err := stageDependencyJars(dir, staging)
		if err != nil {
			return err
		}

		staged += count
	}

	logger.InfoKV(ctx, "Staged application jars", "count", staged)

	return markers.MarkCompleted(ctx, staging)
}

// stageDependencyJars copies every jar found directly in dir into staging.
func stageDependencyJars(dir, staging string) (int, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return 0, fmt.Errorf("read dependency directory %s: %w", dir, err)
	}

	var staged int

	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".jar") {
			continue
		}

		src := filepath.Join(dir, entry.Name())
		if err := copyFile(src, filepath.Join(staging, entry.Name())); err != nil {
			return staged, fmt.Errorf("stage dependency %s: %w", src, err)
		}

		staged++
	}

	return staged, nil
}

// copyFile copies src to dst preserving the source file mode.
func copyFile(src, dst string) error {
	in, err := os.Open(filepath.Clean(src))
	if err != nil {
		return err
	}

	// Best-effort cleanup.
	defer func() {
		_ = in.Close()
	}()

	info, err := in.Stat()
	if err != nil {
		return err
	}

	out, err := os.OpenFile(filepath.Clean(dst), os.O_WRONLY|os.O_CREATE|os.O_TRUNC, info.Mode())
	if err != nil {
		return err
	}

	if _, err := io.Copy(out, in); err != nil {
		_ = out.Close()
		return err
	}

	return out.Close()
}
