// Package icon prepares the macOS compound icon file.
//
// A single raster source is rendered into standard and retina variants for a
// fixed ascending size set, then the resulting icon-set directory is compiled
// into one .icns file. The stage either fully succeeds or aborts the run.
package icon
