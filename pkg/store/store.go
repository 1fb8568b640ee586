// Package store defines the contract of the destination content
// store: a hierarchy of collections, folders and items with metadata
// and geospatial fields. Implementations live in internal/iostore.
package store

import (
	"context"

	"github.com/google/uuid"
	"github.com/twpayne/go-geom"
)

// GeospatialField is the well-known item field holding the GeoJSON
// geometry of a feature.
const GeospatialField = "geo"

// User is the acting account that owns created entities.
type User struct {
	ID    uuid.UUID
	Login string
}

// Collection is a named top-level container.
type Collection struct {
	ID          uuid.UUID
	Name        string
	Description string
	CreatorID   uuid.UUID
}

// Folder is a named container under a collection.
type Folder struct {
	ID           uuid.UUID
	CollectionID uuid.UUID
	Name         string
	Description  string
	CreatorID    uuid.UUID
}

// Item is a single content entry inside a folder.
type Item struct {
	ID          uuid.UUID
	FolderID    uuid.UUID
	Name        string
	Description string
	CreatorID   uuid.UUID
}

// Store is the persistence contract consumed by the import pipeline.
// Ensure-methods look entities up by name and create them on demand.
type Store interface {
	// EnsureUser returns the user with the given login, creating it
	// when absent.
	EnsureUser(ctx context.Context, login string) (*User, error)

	// EnsureCollection returns the named top-level collection,
	// creating it when absent.
	EnsureCollection(
		ctx context.Context,
		name, description string,
		creator *User,
	) (*Collection, error)

	// EnsureFolder returns the named folder under the collection,
	// creating it when absent.
	EnsureFolder(
		ctx context.Context,
		coll *Collection,
		name, description string,
		creator *User,
	) (*Folder, error)

	// CreateItem creates a content item inside the folder.
	CreateItem(
		ctx context.Context,
		folder *Folder,
		name, description string,
		creator *User,
	) (*Item, error)

	// SetItemMetadata attaches the mapping as the item's metadata.
	SetItemMetadata(
		ctx context.Context,
		item *Item,
		meta map[string]any,
	) error

	// SetItemGeometry stores the point geometry under the well-known
	// geospatial field of the item.
	SetItemGeometry(
		ctx context.Context,
		item *Item,
		point *geom.Point,
	) error

	// Close releases the underlying connections.
	Close() error
}
