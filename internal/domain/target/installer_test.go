package target

import (
	"testing"

	"github.com/stretchr/testify/require"
)

// TestValidateAcceptsAllowedTypes checks that every OS family accepts exactly
// its closed set of installer kinds and nothing else.
func TestValidateAcceptsAllowedTypes(t *testing.T) {
	t.Parallel()

	everyType := []InstallerType{Default, EXE, MSI, DMG, PKG, DEB, RPM}

	for _, os := range []OSFamily{Windows, MacOS, Linux} {
		allowed := make(map[InstallerType]bool)
		for _, a := range AllowedTypes(os) {
			allowed[a] = true
		}

		for _, requested := range everyType {
			_, err := Validate(requested.String(), os)
			if allowed[requested] {
				require.NoError(t, err, "%s on %s", requested, os)
			} else {
				require.ErrorIs(t, err, ErrInstallerTypeNotAllowed, "%s on %s", requested, os)
			}
		}
	}
}

// TestValidateDefault ensures the absent and explicit DEFAULT inputs validate
// on every OS family and resolve to the concrete per-OS kind.
func TestValidateDefault(t *testing.T) {
	t.Parallel()

	for _, os := range []OSFamily{Windows, MacOS, Linux} {
		fromAbsent, err := Validate("", os)
		require.NoError(t, err)

		fromExplicit, err := Validate("default", os)
		require.NoError(t, err)
		require.Equal(t, fromAbsent, fromExplicit)
	}

	// Windows pins MSI, the other families defer to the packaging tool.
	accepted, err := Validate("", Windows)
	require.NoError(t, err)
	require.Equal(t, MSI, accepted)

	accepted, err = Validate("", MacOS)
	require.NoError(t, err)
	require.Equal(t, Default, accepted)

	accepted, err = Validate("", Linux)
	require.NoError(t, err)
	require.Equal(t, Default, accepted)
}

// TestValidateRejectsCrossOSType verifies that an illegal combination fails
// naming both the offending type and the OS before any work is done.
func TestValidateRejectsCrossOSType(t *testing.T) {
	t.Parallel()

	_, err := Validate("RPM", Windows)
	require.ErrorIs(t, err, ErrInstallerTypeNotAllowed)
	require.Contains(t, err.Error(), "RPM")
	require.Contains(t, err.Error(), "WINDOWS")

	// The rejection message enumerates the allowed set for the OS.
	require.Contains(t, err.Error(), "EXE")
	require.Contains(t, err.Error(), "MSI")
}

// TestParseInstallerType covers case-insensitive parsing and the error
// enumeration of all valid literals.
func TestParseInstallerType(t *testing.T) {
	t.Parallel()

	cases := map[string]InstallerType{
		"exe":     EXE,
		"Msi":     MSI,
		"DMG":     DMG,
		" pkg ":   PKG,
		"deb":     DEB,
		"rpm":     RPM,
		"default": Default,
	}
	for raw, want := range cases {
		got, err := ParseInstallerType(raw)
		require.NoError(t, err, raw)
		require.Equal(t, want, got, raw)
	}

	_, err := ParseInstallerType("tarball")
	require.ErrorIs(t, err, ErrUnknownInstallerType)

	for _, literal := range []string{"DEFAULT", "EXE", "MSI", "DMG", "PKG", "DEB", "RPM"} {
		require.Contains(t, err.Error(), literal)
	}
}

// TestToolArg ensures Default omits the tool flag and concrete kinds lower-case it.
func TestToolArg(t *testing.T) {
	t.Parallel()

	require.Empty(t, Default.ToolArg())
	require.Equal(t, "msi", MSI.ToolArg())
	require.Equal(t, "deb", DEB.ToolArg())
}
