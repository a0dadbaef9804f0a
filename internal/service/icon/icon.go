package icon

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/rocky-star/audiveris-packager/internal/logger"
	"github.com/rocky-star/audiveris-packager/internal/toolchain"
)

const (
	// resizeTool produces raster variants of the source icon.
	resizeTool = "sips"
	// compileTool compiles the icon-set directory into a compound icon file.
	compileTool = "iconutil"

	// iconSetPermissions is applied to the intermediate icon-set directory.
	iconSetPermissions os.FileMode = 0o755
)

// iconSizes are the standard-resolution variants required in an icon set,
// ascending. Each also gets a double-resolution ("retina") variant.
var iconSizes = []int{16, 32, 64, 128, 256, 512}

// Prepare converts a single raster source icon into the compound icon file
// the macOS installer embeds.
//
// There is no partial-success mode: every variant conversion and the final
// compilation must succeed, and the compound file must exist afterwards, or
// the run aborts.
func Prepare(ctx context.Context, runner toolchain.Runner, sourcePNG, iconSetDir, icnsPath string) error {
	if _, err := os.Stat(sourcePNG); err != nil {
		return fmt.Errorf("source icon: %w", err)
	}

	if err := os.MkdirAll(iconSetDir, iconSetPermissions); err != nil {
		return fmt.Errorf("create icon set directory: %w", err)
	}

	logger.InfoKV(ctx, "Generating icon set", "source", sourcePNG, "path", iconSetDir)

	for _, size := range iconSizes {
		if err := resize(ctx, runner, sourcePNG, iconSetDir, size, size, ""); err != nil {
			return err
		}

		if err := resize(ctx, runner, sourcePNG, iconSetDir, size, size*2, "@2x"); err != nil {
			return err
		}
	}

	logger.InfoKV(ctx, "Compiling compound icon", "path", icnsPath)

	if _, err := runner.Run(ctx, compileTool, "-c", "icns", "-o", icnsPath, iconSetDir); err != nil {
		return fmt.Errorf("compile compound icon: %w", err)
	}

	if _, err := os.Stat(icnsPath); err != nil {
		return fmt.Errorf("compound icon missing after compilation: %w", err)
	}

	return nil
}

// resize renders one raster variant. The name carries the nominal size while
// pixels is doubled for retina variants.
func resize(ctx context.Context, runner toolchain.Runner, sourcePNG, iconSetDir string, nominal, pixels int, suffix string) error {
	name := fmt.Sprintf("icon_%dx%d%s.png", nominal, nominal, suffix)
	px := strconv.Itoa(pixels)

	args := []string{"-z", px, px, sourcePNG, "--out", filepath.Join(iconSetDir, name)}
	if _, err := runner.Run(ctx, resizeTool, args...); err != nil {
		return fmt.Errorf("render icon variant %s: %w", name, err)
	}

	return nil
}
