// Package pipeline orchestrates the packaging run end to end.
//
// Stage order: host probe, installer-type validation (a pre-flight gate),
// then runtime assembly, jar staging and macOS icon preparation (independent,
// optionally concurrent), then the installer build and the artifact rename.
// Everything upstream of artifact production fails fast; only the final
// rename stage tolerates per-file failure.
package pipeline
