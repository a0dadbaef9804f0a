package target

import (
	"errors"
	"fmt"
	"strings"
)

// InstallerType is a native installer kind produced by the packaging tool.
type InstallerType int

const (
	// Default lets each OS resolve its own concrete installer kind.
	Default InstallerType = iota
	// EXE is a Windows self-extracting executable installer.
	EXE
	// MSI is a Windows Installer package.
	MSI
	// DMG is a macOS disk image.
	DMG
	// PKG is a macOS installer package.
	PKG
	// DEB is a Debian/Ubuntu package.
	DEB
	// RPM is a Red Hat/SUSE package.
	RPM
)

var (
	// ErrUnknownInstallerType is returned when the requested type string cannot be parsed.
	ErrUnknownInstallerType = errors.New("unknown installer type")
	// ErrInstallerTypeNotAllowed is returned when a parsable type is illegal for the host OS.
	ErrInstallerTypeNotAllowed = errors.New("installer type is not allowed on this operating system")
)

// installerTypeNames maps each type to its canonical literal, in declaration order.
var installerTypeNames = map[InstallerType]string{
	Default: "DEFAULT",
	EXE:     "EXE",
	MSI:     "MSI",
	DMG:     "DMG",
	PKG:     "PKG",
	DEB:     "DEB",
	RPM:     "RPM",
}

// allowedTypesPerOS is the closed set of installer kinds per OS family.
// Every family accepts Default plus exactly two OS-specific kinds.
var allowedTypesPerOS = map[OSFamily][]InstallerType{
	Windows: {Default, EXE, MSI},
	MacOS:   {Default, DMG, PKG},
	Linux:   {Default, DEB, RPM},
}

// String returns the canonical upper-case literal for the type.
func (t InstallerType) String() string {
	if name, ok := installerTypeNames[t]; ok {
		return name
	}

	return "UNKNOWN"
}

// ToolArg returns the value passed to the packaging tool's --type flag,
// or an empty string when the tool should pick its own default.
func (t InstallerType) ToolArg() string {
	if t == Default {
		return ""
	}

	return strings.ToLower(t.String())
}

// AllowedTypes returns the closed set of installer kinds legal for the OS family.
func AllowedTypes(os OSFamily) []InstallerType {
	return append([]InstallerType(nil), allowedTypesPerOS[os]...)
}

// ParseInstallerType parses a case-insensitive type literal.
// An unparsable string fails with an error enumerating every valid literal.
func ParseInstallerType(raw string) (InstallerType, error) {
	normalized := strings.ToUpper(strings.TrimSpace(raw))

	for t, name := range installerTypeNames {
		if name == normalized {
			return t, nil
		}
	}

	return 0, fmt.Errorf("%q is not an installer type, valid values are %s: %w",
		raw, allTypeLiterals(), ErrUnknownInstallerType)
}

// Validate is the pre-flight gate deciding which installer kind a run may build.
//
// It walks three states: no input resolves to Default for the OS; given input
// is parsed (unparsable strings fail listing every literal); a parsed type is
// checked for membership in the OS's allowed set (illegal combinations fail
// naming both the type and the OS). The accepted type is returned with any
// OS-specific default already resolved. A rejection is terminal: there is no
// retry, the run must abort before the packaging tool is ever invoked.
func Validate(raw string, os OSFamily) (InstallerType, error) {
	if strings.TrimSpace(raw) == "" {
		return resolveDefault(os), nil
	}

	requested, err := ParseInstallerType(raw)
	if err != nil {
		return 0, err
	}

	for _, allowed := range allowedTypesPerOS[os] {
		if requested == allowed {
			if requested == Default {
				return resolveDefault(os), nil
			}

			return requested, nil
		}
	}

	return 0, fmt.Errorf("installer type %s cannot be built on %s, allowed types are %s: %w",
		requested, strings.ToUpper(os.String()), typeLiterals(allowedTypesPerOS[os]), ErrInstallerTypeNotAllowed)
}

// resolveDefault maps Default onto the concrete per-OS kind.
// Windows pins MSI; macOS and Linux keep Default so the packaging tool
// applies its own platform default.
func resolveDefault(os OSFamily) InstallerType {
	if os == Windows {
		return MSI
	}

	return Default
}

// typeLiterals renders a set of types as a comma-separated literal list.
func typeLiterals(types []InstallerType) string {
	names := make([]string, 0, len(types))
	for _, t := range types {
		names = append(names, t.String())
	}

	return strings.Join(names, ", ")
}

// allTypeLiterals renders every valid literal in declaration order.
func allTypeLiterals() string {
	return typeLiterals([]InstallerType{Default, EXE, MSI, DMG, PKG, DEB, RPM})
}
