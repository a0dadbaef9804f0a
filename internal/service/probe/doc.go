// Package probe discovers immutable host facts for the packaging run.
//
// The OS family and architecture come from the execution environment; on
// Linux the distribution name and release are obtained through external query
// commands whose failure aborts the run.
package probe
