package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"
)

// Config aggregates everything the pipeline needs to package the application:
// program identity, source artifact locations, icon sources, launch options
// and the build-tree layout. It is built once before the pipeline starts and
// treated as read-only during the run.
type Config struct {
	// Name is the program name shown by the installer and used in artifact filenames.
	Name string `yaml:"name"`
	// ID is the reverse-DNS package identifier (used as the macOS package identifier).
	ID string `yaml:"id"`
	// Version is the application version encoded into installers and filenames.
	Version string `yaml:"version"`
	// Description is the human-readable summary embedded into the installer.
	Description string `yaml:"description"`
	// Vendor is the publisher name the packaging tool requires.
	Vendor string `yaml:"vendor"`
	// PrimaryJar is the path to the application jar produced by the upstream build.
	PrimaryJar string `yaml:"primary_jar"`
	// MainClass is the fully qualified entry point inside the primary jar.
	MainClass string `yaml:"main_class"`
	// LicenseFile is the path to the license text bundled into the installer.
	LicenseFile string `yaml:"license_file"`
	// JavaOptions are JVM launch options baked into the generated launcher.
	JavaOptions []string `yaml:"java_options"`
	// FileAssociations declares document types the installed app should open.
	FileAssociations []FileAssociation `yaml:"file_associations"`
	// RuntimeModules is the fixed module list fed to the runtime trimmer.
	RuntimeModules []string `yaml:"runtime_modules"`
	// DependencyDirs are directories holding the application's dependency jars.
	DependencyDirs []string `yaml:"dependency_dirs"`
	// JavaHome optionally pins the JDK whose jlink/jpackage binaries are used.
	JavaHome string `yaml:"java_home"`
	// Icon holds per-OS icon sources.
	Icon IconConfig `yaml:"icon"`
	// Paths lays out the build tree; empty fields are derived from BuildRoot.
	Paths PathsConfig `yaml:"paths"`
	// ToolTimeout bounds each external tool invocation.
	ToolTimeout time.Duration `yaml:"tool_timeout"`
}

// IconConfig holds the per-OS icon sources.
// The packaging tool wants a different container format on every OS.
type IconConfig struct {
	// WindowsICO is the .ico file passed through on Windows.
	WindowsICO string `yaml:"windows_ico"`
	// MacSourcePNG is the raster source compiled into an .icns on macOS.
	MacSourcePNG string `yaml:"mac_source_png"`
	// LinuxPNG is the .png file passed through on Linux.
	LinuxPNG string `yaml:"linux_png"`
}

// FileAssociation describes one document type registered by the installer.
type FileAssociation struct {
	// Extension is the file extension without the leading dot.
	Extension string `yaml:"extension"`
	// MimeType is the MIME type registered for the extension.
	MimeType string `yaml:"mime_type"`
	// Description is the human-readable document type name.
	Description string `yaml:"description"`
	// Icon optionally points to an icon for documents of this type.
	Icon string `yaml:"icon,omitempty"`
}

// PathsConfig lays out the working tree the pipeline writes into.
type PathsConfig struct {
	// BuildRoot is the directory all derived paths default under.
	BuildRoot string `yaml:"build_root"`
	// Staging receives the primary jar and all dependency jars.
	Staging string `yaml:"staging"`
	// RuntimeImage receives the trimmed runtime produced by jlink.
	RuntimeImage string `yaml:"runtime_image"`
	// IconSet is the intermediate macOS .iconset directory.
	IconSet string `yaml:"icon_set"`
	// ICNS is the compiled macOS compound icon file.
	ICNS string `yaml:"icns"`
	// Destination receives the installer the packaging tool produces.
	Destination string `yaml:"destination"`
}

const (
	// DefaultConfigFilename is the default filename for the packaging config.
	DefaultConfigFilename = "audiveris-packager.yaml"

	// DefaultBuildRoot anchors all derived working paths.
	DefaultBuildRoot = "build"

	// DefaultVendor is used when the config leaves the publisher empty.
	DefaultVendor = "Audiveris Ltd."

	// DefaultToolTimeout bounds one external tool invocation.
	DefaultToolTimeout = 15 * time.Minute

	// DefaultFilePermissions is the default file permission for config files.
	DefaultFilePermissions = 0o600
)

// defaultRuntimeModules is the module list fed to the runtime trimmer when the
// config does not override it. It matches what the application actually loads.
var defaultRuntimeModules = []string{
	"java.base",
	"java.desktop",
	"java.logging",
	"java.naming",
	"java.prefs",
	"java.sql",
	"java.xml",
	"jdk.unsupported",
}

var (
	// errConfigIsNotSet is returned when a nil configuration is provided.
	errConfigIsNotSet = errors.New("configuration is not set")
	// errNameRequired is returned when the program name is missing.
	errNameRequired = errors.New("program name must be provided")
	// errIDRequired is returned when the package identifier is missing.
	errIDRequired = errors.New("package identifier must be provided")
	// errVersionRequired is returned when the application version is missing.
	errVersionRequired = errors.New("application version must be provided")
	// errPrimaryJarRequired is returned when the primary jar path is missing.
	errPrimaryJarRequired = errors.New("primary jar path must be provided")
	// errMainClassRequired is returned when the entry point is missing.
	errMainClassRequired = errors.New("main class must be provided")
)

// Load reads the packaging config from the provided path and validates it.
func Load(path string) (*Config, error) {
	if path == "" {
		path = DefaultConfigFilename
	}

	contents, err := os.ReadFile(filepath.Clean(path))
	if err != nil {
		return nil, fmt.Errorf("read packaging config: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(contents, &cfg); err != nil {
		return nil, fmt.Errorf("unmarshal packaging config: %w", err)
	}

	if err := Validate(&cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// Save writes the config to the provided path.
func Save(path string, cfg *Config) error {
	if cfg == nil {
		return errConfigIsNotSet
	}

	if path == "" {
		path = DefaultConfigFilename
	}

	if err := Validate(cfg); err != nil {
		return err
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshal packaging config: %w", err)
	}

	// Restrict permissions.
	if err := os.WriteFile(filepath.Clean(path), data, DefaultFilePermissions); err != nil {
		return fmt.Errorf("write packaging config: %w", err)
	}

	return nil
}

// Validate checks required identity fields and fills every derivable default.
func Validate(cfg *Config) error {
	if cfg == nil {
		return errConfigIsNotSet
	}

	if cfg.Name == "" {
		return errNameRequired
	}

	// The identifier feeds --mac-package-identifier; an empty value would
	// silently produce a broken installer there.
	if cfg.ID == "" {
		return errIDRequired
	}

	if cfg.Version == "" {
		return errVersionRequired
	}

	if cfg.PrimaryJar == "" {
		return errPrimaryJarRequired
	}

	if cfg.MainClass == "" {
		return errMainClassRequired
	}

	if cfg.Vendor == "" {
		cfg.Vendor = DefaultVendor
	}

	if cfg.ToolTimeout <= 0 {
		cfg.ToolTimeout = DefaultToolTimeout
	}

	if len(cfg.RuntimeModules) == 0 {
		cfg.RuntimeModules = append([]string(nil), defaultRuntimeModules...)
	}

	applyPathDefaults(cfg)

	return nil
}

// MainJarName returns the primary jar's filename inside the staging directory.
func (c *Config) MainJarName() string {
	return filepath.Base(c.PrimaryJar)
}

// Tool resolves an external JDK tool name against JavaHome when it is set;
// otherwise the bare name is used and resolved via PATH.
func (c *Config) Tool(name string) string {
	if c.JavaHome == "" {
		return name
	}

	return filepath.Join(c.JavaHome, "bin", name)
}

// applyPathDefaults derives every empty working path under the build root.
func applyPathDefaults(cfg *Config) {
	paths := &cfg.Paths

	if paths.BuildRoot == "" {
		paths.BuildRoot = DefaultBuildRoot
	}

	if paths.Staging == "" {
		paths.Staging = filepath.Join(paths.BuildRoot, "jars")
	}

	if paths.RuntimeImage == "" {
		paths.RuntimeImage = filepath.Join(paths.BuildRoot, "runtime")
	}

	if paths.IconSet == "" {
		paths.IconSet = filepath.Join(paths.BuildRoot, cfg.Name+".iconset")
	}

	if paths.ICNS == "" {
		paths.ICNS = filepath.Join(paths.BuildRoot, cfg.Name+".icns")
	}

	if paths.Destination == "" {
		paths.Destination = filepath.Join(paths.BuildRoot, "installers")
	}
}
