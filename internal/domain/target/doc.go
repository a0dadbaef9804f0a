// Package target contains core domain types for the packaging pipeline.
//
// It defines OSFamily and HostFacts (the probed identity of the machine the
// pipeline runs on), the InstallerType enumeration, and Validate, the
// pre-flight gate deciding which installer kind is legal for the host OS.
package target
