// Package marker implements persistence for stage completion markers.
//
// A directory that merely exists may be the remains of a crashed run, so the
// idempotent stages skip their work only when an atomically-written sentinel
// file confirms the previous run finished. The sentinel lives beside the
// stage directory, keeping the directory's contents exactly what the
// packaging tool should bundle.
package marker
