package target

import (
	"testing"

	"github.com/stretchr/testify/require"
)

// TestHostFactsClone verifies that Clone returns a copy and handles nil safely.
func TestHostFactsClone(t *testing.T) {
	t.Parallel()
	require.Nil(t, (*HostFacts)(nil).Clone())

	f := &HostFacts{
		OS:            Linux,
		DistroName:    "ubuntu",
		DistroVersion: "24.04",
		Architecture:  "x86_64",
	}

	c := f.Clone()
	require.Equal(t, f, c)
	require.NotSame(t, f, c)
}

// TestOSName checks the filename token selection: distro name on Linux,
// family short name everywhere else.
func TestOSName(t *testing.T) {
	t.Parallel()

	linux := &HostFacts{OS: Linux, DistroName: "ubuntu"}
	require.Equal(t, "ubuntu", linux.OSName())

	// A Linux host without a probed distro falls back to the family token.
	bare := &HostFacts{OS: Linux}
	require.Equal(t, "linux", bare.OSName())

	windows := &HostFacts{OS: Windows, Architecture: "x86_64"}
	require.Equal(t, "windows", windows.OSName())

	mac := &HostFacts{OS: MacOS}
	require.Equal(t, "macosx", mac.OSName())
}
