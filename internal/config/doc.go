// Package config defines the format-agnostic configuration model for a
// batch run, along with the Loader interface for reading it from various
// sources.
//
// The config.Model is the single source of truth for the app and driver
// packages. Concrete loaders, such as for HCL and YAML, live in separate
// packages.
package config
