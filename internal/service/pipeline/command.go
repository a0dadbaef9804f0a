package pipeline

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"

	"github.com/rocky-star/audiveris-packager/internal/config"
	"github.com/rocky-star/audiveris-packager/internal/domain/target"
	"github.com/rocky-star/audiveris-packager/internal/logger"
	"github.com/rocky-star/audiveris-packager/internal/repository/marker"
	"github.com/rocky-star/audiveris-packager/internal/service/assembler"
	"github.com/rocky-star/audiveris-packager/internal/service/collector"
	"github.com/rocky-star/audiveris-packager/internal/service/icon"
	"github.com/rocky-star/audiveris-packager/internal/service/installer"
	"github.com/rocky-star/audiveris-packager/internal/service/probe"
	"github.com/rocky-star/audiveris-packager/internal/service/renamer"
	"github.com/rocky-star/audiveris-packager/internal/toolchain"
)

// Options contains inputs for the packaging pipeline entry point.
type Options struct {
	// ConfigPath is the path to the packaging config YAML (defaults to audiveris-packager.yaml).
	ConfigPath string
	// InstallerType optionally requests a specific installer kind (case-insensitive).
	InstallerType string
	// Option is the optional launcher variant selector; the literal "Console"
	// enables the Windows console-mode launcher and suffixes the artifact name.
	Option string
	// Parallel runs the three independent middle stages concurrently.
	Parallel bool
	// Runner overrides the external tool runner. Tests substitute a fake;
	// nil selects the real process-spawning runner.
	Runner toolchain.Runner
}

// Run executes the whole packaging pipeline: probe, validate, assemble the
// runtime, stage the jars, prepare icons (macOS), build the installer and
// rename the produced artifacts.
func Run(ctx context.Context, opts *Options) error {
	// Set context with logger name for tracking.
	ctx = logger.WithName(ctx, "audiveris-packager")

	if isAnotherPackagerRunning(ctx) {
		return errPackagerRunning
	}

	cfg, err := config.Load(opts.ConfigPath)
	if err != nil {
		return fmt.Errorf("load packaging config: %w", err)
	}

	runner := opts.Runner
	if runner == nil {
		runner = toolchain.NewExecRunner(cfg.ToolTimeout)
	}

	facts, err := probe.Probe(ctx, runner)
	if err != nil {
		return fmt.Errorf("probe host: %w", err)
	}

	// Pre-flight gate: an illegal installer type must abort the run before
	// any expensive stage is started.
	installerType, err := target.Validate(opts.InstallerType, facts.OS)
	if err != nil {
		return err
	}

	markers := marker.NewFileRepository()

	if err := runStages(ctx, runner, markers, cfg, facts, opts.Parallel); err != nil {
		return err
	}

	files, err := installer.Build(ctx, runner, cfg, facts, installerType, installer.ConsoleEnabled(opts.Option))
	if err != nil {
		return err
	}

	outcomes, err := renamer.Rename(ctx, cfg.Paths.Destination, cfg.Name, cfg.Version, facts, opts.Option)
	if err != nil {
		return err
	}

	reportOutcomes(ctx, files, outcomes)

	return nil
}

// runStages executes the three mutually independent preparation stages.
// They write to disjoint paths, so the parallel mode is safe; it is a latency
// optimization only and sequential order remains the default.
func runStages(ctx context.Context, runner toolchain.Runner, markers marker.Repository, cfg *config.Config, facts *target.HostFacts, parallel bool) error {
	stages := []func(context.Context) error{
		func(ctx context.Context) error {
			return assembler.Assemble(ctx, runner, markers, cfg)
		},
		func(ctx context.Context) error {
			return collector.Collect(ctx, markers, cfg)
		},
	}

	if facts.OS == target.MacOS {
		stages = append(stages, func(ctx context.Context) error {
			return icon.Prepare(ctx, runner, cfg.Icon.MacSourcePNG, cfg.Paths.IconSet, cfg.Paths.ICNS)
		})
	}

	if !parallel {
		for _, stage := range stages {
			if err := stage(ctx); err != nil {
				return err
			}
		}

		return nil
	}

	group, groupCtx := errgroup.WithContext(ctx)
	for _, stage := range stages {
		stage := stage
		group.Go(func() error {
			return stage(groupCtx)
		})
	}

	return group.Wait()
}

// reportOutcomes logs the final artifact names and any per-file rename failures.
func reportOutcomes(ctx context.Context, files []string, outcomes []renamer.Outcome) {
	var failures int

	for _, outcome := range outcomes {
		if outcome.Err != nil {
			failures++
		}
	}

	logger.InfoKV(ctx, "Packaging completed",
		"artifacts", len(files),
		"renamed", len(outcomes)-failures,
		"rename_failures", failures)
}
