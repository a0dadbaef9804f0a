// Package config defines the packaging configuration shared by the pipeline.
//
// It provides YAML persistence helpers (Load/Save) and validation logic with
// default values for the build-tree layout, runtime module list and timeouts.
package config
