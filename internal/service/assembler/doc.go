// Package assembler invokes the runtime-trimming tool to produce the
// minimized execution environment bundled into the installer.
//
// The stage is idempotent: once a run completed (confirmed by a completion
// marker), re-runs skip the external tool entirely.
package assembler
