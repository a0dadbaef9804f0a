// Package renamer gives produced installer artifacts their canonical,
// deterministic filenames encoding program identity, version, host identity
// and architecture.
//
// Renaming is best-effort per file: one failure is recorded and logged but
// never blocks the remaining artifacts.
package renamer
