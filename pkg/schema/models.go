// Package schema provides database schema models for the pndb
// content store.
package schema

import (
	"encoding/json"
	"time"
)

// User is an account that owns collections, folders and items.
type User struct {
	// ID is a UUID v4 assigned on creation.
	ID string `gorm:"type:uuid;primaryKey"`

	// Login is the unique account name.
	Login string `gorm:"type:varchar(255);uniqueIndex;not null"`

	// CreatedAt records when the account appeared.
	CreatedAt time.Time
}

// Collection is a named top-level container for folders.
type Collection struct {
	// ID is a UUID v4 assigned on creation.
	ID string `gorm:"type:uuid;primaryKey"`

	// Name is unique among top-level collections; destinations are
	// looked up by name, not by fixed identifier.
	Name string `gorm:"type:varchar(255);uniqueIndex;not null"`

	// Description is a human-readable summary.
	Description string `gorm:"type:text"`

	// CreatorID references the owning user.
	CreatorID string `gorm:"type:uuid"`

	// Public marks world-readable collections.
	Public bool

	// CreatedAt records when the collection appeared.
	CreatedAt time.Time
}

// Folder is a named container under a collection.
type Folder struct {
	// ID is a UUID v4 assigned on creation.
	ID string `gorm:"type:uuid;primaryKey"`

	// CollectionID references the parent collection.
	CollectionID string `gorm:"type:uuid;index;uniqueIndex:idx_folder_name"`

	// Name is unique within its collection.
	Name string `gorm:"type:varchar(255);uniqueIndex:idx_folder_name;not null"`

	// Description is a human-readable summary.
	Description string `gorm:"type:text"`

	// CreatorID references the owning user.
	CreatorID string `gorm:"type:uuid"`

	// Public marks world-readable folders.
	Public bool

	// CreatedAt records when the folder appeared.
	CreatedAt time.Time
}

// Item is one content entry: a gazetteer place with its metadata and
// geospatial field.
type Item struct {
	// ID is a UUID v4 assigned on creation.
	ID string `gorm:"type:uuid;primaryKey"`

	// FolderID references the parent folder.
	FolderID string `gorm:"type:uuid;index"`

	// Name is the display name of the place.
	Name string `gorm:"type:varchar(255);index;not null"`

	// Description carries the comma-joined alternate names.
	Description string `gorm:"type:text"`

	// CreatorID references the owning user.
	CreatorID string `gorm:"type:uuid"`

	// Meta holds the sanitized record properties as JSON.
	Meta json.RawMessage `gorm:"type:jsonb"`

	// Geo holds the GeoJSON geometry under the well-known
	// geospatial field.
	Geo json.RawMessage `gorm:"type:jsonb"`

	// CreatedAt records when the item was imported.
	CreatedAt time.Time

	// UpdatedAt records the last metadata or geometry write.
	UpdatedAt time.Time
}
