package config

import "context"

// Loader is the interface for a format-specific configuration loader.
type Loader interface {
	// Load reads configuration from path (a file, or a directory whose
	// recognized files are merged in sorted order), applies the
	// documented defaults for unset fields, and validates the result.
	Load(ctx context.Context, path string) (*Model, error)
}
