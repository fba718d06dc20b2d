// Package registry provides the central "glue" between the batch driver
// and the chemistry engine backends.
//
// The Registry stores mappings between engine names (as they appear in
// run configuration, e.g. "decay") and the capability table of compiled
// Go functions implementing that backend. Resolution is a pure,
// case-insensitive lookup: on a miss the returned table is left unbound
// and the status reports an invalid-engine error, so a bad engine name
// surfaces before any engine-tied allocation happens.
package registry
