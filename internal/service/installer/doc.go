// Package installer drives the native packaging tool.
//
// It assembles the OS-specific tool invocation (identity, icon, shortcuts,
// bundled JVM options, file associations) for a validated installer type and
// returns the artifacts produced in the destination directory.
package installer
