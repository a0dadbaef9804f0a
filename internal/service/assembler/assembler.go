package assembler

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/rocky-star/audiveris-packager/internal/config"
	"github.com/rocky-star/audiveris-packager/internal/logger"
	"github.com/rocky-star/audiveris-packager/internal/repository/marker"
	"github.com/rocky-star/audiveris-packager/internal/toolchain"
)

// trimTool is the JDK tool producing the minimized runtime image.
const trimTool = "jlink"

// Assemble produces the trimmed runtime image the installer bundles.
//
// A completed previous run (confirmed by its marker) is skipped entirely, so
// the external tool is invoked at most once per output directory. The remains
// of an unfinished run are removed first, because the trim tool refuses to
// write into an existing directory.
func Assemble(ctx context.Context, runner toolchain.Runner, markers marker.Repository, cfg *config.Config) error {
	outputDir := cfg.Paths.RuntimeImage

	done, err := markers.Completed(ctx, outputDir)
	if err != nil {
		return err
	}

	if done {
		logger.InfoKV(ctx, "Runtime image already assembled, skipping", "path", outputDir)
		return nil
	}

	if err := removeStale(outputDir); err != nil {
		return err
	}

	logger.InfoKV(ctx, "Assembling trimmed runtime image",
		"path", outputDir,
		"modules", strings.Join(cfg.RuntimeModules, ","))

	args := []string{
		"--add-modules", strings.Join(cfg.RuntimeModules, ","),
		"--strip-debug",
		"--no-header-files",
		"--no-man-pages",
		"--output", outputDir,
	}

	if _, err := runner.Run(ctx, cfg.Tool(trimTool), args...); err != nil {
		return fmt.Errorf("assemble runtime image: %w", err)
	}

	return markers.MarkCompleted(ctx, outputDir)
}

// removeStale clears a directory left behind by an unfinished run.
func removeStale(dir string) error {
	_, err := os.Stat(dir)
	if errors.Is(err, os.ErrNotExist) {
		return nil
	}

	if err != nil {
		return fmt.Errorf("inspect runtime image directory: %w", err)
	}

	if err := os.RemoveAll(dir); err != nil {
		return fmt.Errorf("remove stale runtime image: %w", err)
	}

	return nil
}
