package probe

import (
	"context"
	"fmt"
	"runtime"
	"strings"

	"github.com/rocky-star/audiveris-packager/internal/domain/target"
	"github.com/rocky-star/audiveris-packager/internal/logger"
	"github.com/rocky-star/audiveris-packager/internal/toolchain"
)

// distroQueryTool is the command answering Linux distribution identity queries.
const distroQueryTool = "lsb_release"

// archNames maps Go architecture tokens onto the conventional names installer
// filenames use.
var archNames = map[string]string{
	"amd64": "x86_64",
	"386":   "x86",
	"arm64": "aarch64",
}

// Probe discovers the host facts the rest of the pipeline depends on.
// On Linux it additionally queries the distribution short name and release
// through external commands; either query failing aborts the run, because a
// correctly named artifact cannot be produced without them.
func Probe(ctx context.Context, runner toolchain.Runner) (*target.HostFacts, error) {
	osFamily, err := target.CurrentOS()
	if err != nil {
		return nil, err
	}

	facts, err := probeFacts(ctx, runner, osFamily, runtime.GOARCH)
	if err != nil {
		return nil, err
	}

	logger.InfoKV(ctx, "Probed host facts",
		"os", facts.OS.String(),
		"distro", facts.DistroName,
		"distro_version", facts.DistroVersion,
		"arch", facts.Architecture)

	return facts, nil
}

// probeFacts assembles the facts for a known OS family and architecture.
func probeFacts(ctx context.Context, runner toolchain.Runner, osFamily target.OSFamily, goarch string) (*target.HostFacts, error) {
	facts := &target.HostFacts{
		OS:           osFamily,
		Architecture: archName(goarch),
	}

	if osFamily != target.Linux {
		return facts, nil
	}

	name, err := runner.Run(ctx, distroQueryTool, "-is")
	if err != nil {
		return nil, fmt.Errorf("query distribution name: %w", err)
	}

	release, err := runner.Run(ctx, distroQueryTool, "-rs")
	if err != nil {
		return nil, fmt.Errorf("query distribution release: %w", err)
	}

	facts.DistroName = normalize(name)
	facts.DistroVersion = normalize(release)

	return facts, nil
}

// normalize lower-cases a query answer and strips the trailing newline.
func normalize(s string) string {
	return strings.ToLower(strings.TrimRight(s, "\r\n"))
}

// archName maps a GOARCH token onto the filename convention, keeping unknown
// tokens as-is.
func archName(goarch string) string {
	if name, ok := archNames[goarch]; ok {
		return name
	}

	return goarch
}
