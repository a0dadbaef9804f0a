package target

import (
	"errors"
	"fmt"
	"runtime"
)

// OSFamily identifies the operating system family the packager runs on.
type OSFamily int

const (
	// Windows covers all supported Windows hosts.
	Windows OSFamily = iota
	// MacOS covers all supported macOS hosts.
	MacOS
	// Linux covers all supported Linux hosts.
	Linux
)

// ErrUnsupportedOS indicates the current OS cannot be packaged for.
var ErrUnsupportedOS = errors.New("unsupported operating system")

// CurrentOS maps runtime.GOOS onto an OSFamily.
// Packaging is host-native only, so anything outside the three families is an error.
func CurrentOS() (OSFamily, error) {
	switch runtime.GOOS {
	case "windows":
		return Windows, nil
	case "darwin":
		return MacOS, nil
	case "linux":
		return Linux, nil
	default:
		return 0, fmt.Errorf("%s: %w", runtime.GOOS, ErrUnsupportedOS)
	}
}

// String returns the canonical lower-case family name.
func (o OSFamily) String() string {
	switch o {
	case Windows:
		return "windows"
	case MacOS:
		return "macos"
	case Linux:
		return "linux"
	default:
		return "unknown"
	}
}

// ShortName returns the token used in installer filenames for non-Linux hosts.
// Linux artifacts are named after the distribution instead, see HostFacts.OSName.
func (o OSFamily) ShortName() string {
	switch o {
	case Windows:
		return "windows"
	case MacOS:
		return "macosx"
	case Linux:
		return "linux"
	default:
		return "unknown"
	}
}

// HostFacts is the runtime-probed identity of the machine executing the pipeline.
// It is created once per run by the probe service and never mutated afterwards.
type HostFacts struct {
	// OS is the detected operating system family.
	OS OSFamily
	// DistroName is the lower-cased Linux distribution short name (empty elsewhere).
	DistroName string
	// DistroVersion is the Linux distribution release number (empty elsewhere).
	DistroVersion string
	// Architecture is the CPU architecture token used in installer filenames.
	Architecture string
}

// Clone returns a copy of the facts to avoid leaking internal references.
func (f *HostFacts) Clone() *HostFacts {
	if f == nil {
		return nil
	}

	cloned := *f

	return &cloned
}

// OSName returns the filename token for the host: the distribution name on
// Linux, the OS family short name everywhere else.
func (f *HostFacts) OSName() string {
	if f.OS == Linux && f.DistroName != "" {
		return f.DistroName
	}

	return f.OS.ShortName()
}
