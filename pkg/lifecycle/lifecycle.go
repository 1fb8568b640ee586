// Package lifecycle defines the contracts of the pndb lifecycle
// phases. Implementations live in internal/io* packages.
package lifecycle

import (
	"context"

	"github.com/placenames/pndb/pkg/config"
)

// SchemaManager creates and migrates the destination store schema.
type SchemaManager interface {
	// Create creates the initial schema.
	Create(ctx context.Context, cfg *config.Config) error

	// Migrate updates the schema to the latest version.
	Migrate(ctx context.Context, cfg *config.Config) error
}

// Downloader fetches the remote gazetteer archive to local disk.
// On failure no partial file is left behind.
type Downloader interface {
	Fetch(ctx context.Context, url, dest string) error
}

// Importer runs the full import pipeline: ensure the archive exists
// locally, stream it in chunks and export features to the store.
type Importer interface {
	Run(ctx context.Context) error
}
