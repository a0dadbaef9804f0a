package cmd

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/rocky-star/audiveris-packager/internal/config"
	"github.com/rocky-star/audiveris-packager/internal/logger"
	"github.com/rocky-star/audiveris-packager/internal/service/pipeline"
	"github.com/rocky-star/audiveris-packager/internal/version"
)

var (
	// configPath to the packaging configuration YAML file.
	configPath string
	// installerType optionally requests a specific installer kind.
	installerType string
	// option selects a launcher variant ("Console" enables the Windows console launcher).
	option string
	// parallel runs the independent preparation stages concurrently.
	parallel bool
	// logLevel sets the minimum logging level.
	logLevel string

	// rootCmd represents the base command building one native installer.
	rootCmd = &cobra.Command{
		Use:   "audiveris-packager",
		Short: "Package the application into a native installer",
		Long:  "Build one validated native installer (MSI/EXE, DMG/PKG or DEB/RPM) for the OS this command runs on, with a deterministic artifact filename encoding program, version, host identity and architecture.",
		Args:  cobra.NoArgs,
		RunE: func(_ *cobra.Command, _ []string) error {
			// Setup graceful shutdown handling.
			ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGTERM, syscall.SIGINT)
			defer stop()

			if level, ok := logger.ParseLogLevel(logLevel); ok {
				logger.SetLevel(level)
			}

			options := &pipeline.Options{
				ConfigPath:    configPath,
				InstallerType: installerType,
				Option:        option,
				Parallel:      parallel,
			}

			return pipeline.Run(ctx, options)
		},
	}
)

// Execute runs the audiveris-packager CLI and exits with non-zero status on error.
func Execute() {
	version.AttachCobraVersionCommand(rootCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

//nolint:gochecknoinits // Required by Cobra CLI framework architecture.
func init() {
	// Setup command flags with consistent naming and descriptions.
	rootCmd.Flags().StringVarP(&configPath, "config", "c", config.DefaultConfigFilename, "path to packaging configuration file")
	rootCmd.Flags().StringVarP(&installerType, "installer-type", "t", "", "installer kind to build (DEFAULT, EXE, MSI, DMG, PKG, DEB, RPM)")
	rootCmd.Flags().StringVarP(&option, "option", "o", "", `launcher variant; "Console" enables the Windows console launcher`)
	rootCmd.Flags().BoolVar(&parallel, "parallel", false, "run independent preparation stages concurrently")
	rootCmd.Flags().StringVar(&logLevel, "log-level", "info", "minimum log level (debug, info, warn, error)")
}
