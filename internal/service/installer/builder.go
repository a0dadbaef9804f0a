package installer

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/rocky-star/audiveris-packager/internal/config"
	"github.com/rocky-star/audiveris-packager/internal/domain/target"
	"github.com/rocky-star/audiveris-packager/internal/logger"
	"github.com/rocky-star/audiveris-packager/internal/toolchain"
)

const (
	// packagingTool turns a runtime image plus staged jars into a native installer.
	packagingTool = "jpackage"

	// consoleOption is the caller-supplied option literal enabling the
	// console-mode launcher variant on Windows.
	consoleOption = "Console"

	// associationFilePermissions is applied to generated association descriptors.
	associationFilePermissions os.FileMode = 0o644
)

// ConsoleEnabled reports whether the caller-supplied option string selects the
// Windows console-mode launcher. Any other value keeps the windowed default.
func ConsoleEnabled(option string) bool {
	return option == consoleOption
}

// Build invokes the native packaging tool once with OS-specific configuration
// and the validated installer type, then returns the files found in the
// destination directory.
//
// Callers must only pass a type accepted by target.Validate for the host OS;
// the pipeline enforces this before any expensive stage runs.
func Build(ctx context.Context, runner toolchain.Runner, cfg *config.Config, facts *target.HostFacts, installerType target.InstallerType, console bool) ([]string, error) {
	args, err := buildArgs(cfg, facts, installerType, console)
	if err != nil {
		return nil, err
	}

	logger.InfoKV(ctx, "Building installer",
		"type", installerType.String(),
		"os", facts.OS.String(),
		"dest", cfg.Paths.Destination)

	if _, err := runner.Run(ctx, cfg.Tool(packagingTool), args...); err != nil {
		return nil, fmt.Errorf("build installer: %w", err)
	}

	return destinationFiles(cfg.Paths.Destination)
}

// buildArgs assembles the full packaging tool invocation for the host OS.
func buildArgs(cfg *config.Config, facts *target.HostFacts, installerType target.InstallerType, console bool) ([]string, error) {
	var args []string

	if toolArg := installerType.ToolArg(); toolArg != "" {
		args = append(args, "--type", toolArg)
	}

	args = append(args,
		"--name", cfg.Name,
		"--app-version", cfg.Version,
		"--vendor", cfg.Vendor,
		"--input", cfg.Paths.Staging,
		"--main-jar", cfg.MainJarName(),
		"--main-class", cfg.MainClass,
		"--runtime-image", cfg.Paths.RuntimeImage,
		"--dest", cfg.Paths.Destination,
	)

	if cfg.Description != "" {
		args = append(args, "--description", cfg.Description)
	}

	if cfg.LicenseFile != "" {
		args = append(args, "--license-file", cfg.LicenseFile)
	}

	for _, option := range cfg.JavaOptions {
		args = append(args, "--java-options", option)
	}

	associationFiles, err := writeAssociationFiles(cfg)
	if err != nil {
		return nil, err
	}

	for _, file := range associationFiles {
		args = append(args, "--file-associations", file)
	}

	switch facts.OS {
	case target.Windows:
		args = append(args, windowsArgs(cfg, console)...)
	case target.MacOS:
		args = append(args, macArgs(cfg)...)
	case target.Linux:
		args = append(args, linuxArgs(cfg)...)
	}

	return args, nil
}

// windowsArgs adds the Windows installer configuration: an install-directory
// chooser, start-menu and desktop shortcuts, and optionally the console-mode
// launcher.
func windowsArgs(cfg *config.Config, console bool) []string {
	args := []string{"--win-dir-chooser", "--win-menu", "--win-shortcut"}

	if cfg.Icon.WindowsICO != "" {
		args = append(args, "--icon", cfg.Icon.WindowsICO)
	}

	if console {
		args = append(args, "--win-console")
	}

	return args
}

// macArgs adds the macOS package identity and the compiled compound icon.
// The icon preparation stage must have completed first.
func macArgs(cfg *config.Config) []string {
	args := []string{
		"--mac-package-identifier", cfg.ID,
		"--mac-package-name", cfg.Name,
	}

	if cfg.Paths.ICNS != "" {
		args = append(args, "--icon", cfg.Paths.ICNS)
	}

	return args
}

// linuxArgs adds the Linux desktop shortcut and icon.
func linuxArgs(cfg *config.Config) []string {
	args := []string{"--linux-shortcut"}

	if cfg.Icon.LinuxPNG != "" {
		args = append(args, "--icon", cfg.Icon.LinuxPNG)
	}

	return args
}

// writeAssociationFiles renders each file-association descriptor into the
// properties format the packaging tool consumes and returns the file paths.
func writeAssociationFiles(cfg *config.Config) ([]string, error) {
	if len(cfg.FileAssociations) == 0 {
		return nil, nil
	}

	dir := filepath.Join(cfg.Paths.BuildRoot, "associations")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create association directory: %w", err)
	}

	files := make([]string, 0, len(cfg.FileAssociations))

	for _, association := range cfg.FileAssociations {
		var builder strings.Builder

		fmt.Fprintf(&builder, "extension=%s\n", association.Extension)
		fmt.Fprintf(&builder, "mime-type=%s\n", association.MimeType)
		fmt.Fprintf(&builder, "description=%s\n", association.Description)

		if association.Icon != "" {
			fmt.Fprintf(&builder, "icon=%s\n", association.Icon)
		}

		path := filepath.Join(dir, association.Extension+".properties")
		if err := os.WriteFile(path, []byte(builder.String()), associationFilePermissions); err != nil {
			return nil, fmt.Errorf("write association descriptor %s: %w", path, err)
		}

		files = append(files, path)
	}

	return files, nil
}

// destinationFiles lists the regular files the packaging tool left in the
// destination directory, non-recursively.
func destinationFiles(dest string) ([]string, error) {
	entries, err := os.ReadDir(dest)
	if err != nil {
		return nil, fmt.Errorf("read destination directory: %w", err)
	}

	var files []string

	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}

		files = append(files, entry.Name())
	}

	return files, nil
}
