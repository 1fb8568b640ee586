package iostore

import (
	"fmt"

	"github.com/gnames/gn"
	"github.com/placenames/pndb/pkg/errcode"
)

// OpenSQLiteError creates an error for a SQLite store that cannot
// be opened or initialized.
func OpenSQLiteError(path string, err error) error {
	msg := `Cannot open SQLite store <em>%s</em>

<em>Possible causes:</em>
  - Directory does not exist or is not writable
  - File is corrupted or not a SQLite database`

	vars := []any{path}

	return &gn.Error{
		Code: errcode.DBConnectionError,
		Msg:  msg,
		Vars: vars,
		Err:  fmt.Errorf("failed to open sqlite store: %w", err),
	}
}

// UserError creates an error for a failed user lookup or creation.
func UserError(login string, err error) error {
	msg := "Cannot resolve user <em>%s</em>"
	vars := []any{login}

	return &gn.Error{
		Code: errcode.StoreUserError,
		Msg:  msg,
		Vars: vars,
		Err:  fmt.Errorf("failed to resolve user %s: %w", login, err),
	}
}

// CollectionError creates an error for a failed collection lookup
// or creation.
func CollectionError(name string, err error) error {
	msg := "Cannot resolve collection <em>%s</em>"
	vars := []any{name}

	return &gn.Error{
		Code: errcode.StoreCollectionError,
		Msg:  msg,
		Vars: vars,
		Err: fmt.Errorf("failed to resolve collection %s: %w",
			name, err),
	}
}

// FolderError creates an error for a failed folder lookup or
// creation.
func FolderError(name string, err error) error {
	msg := "Cannot resolve folder <em>%s</em>"
	vars := []any{name}

	return &gn.Error{
		Code: errcode.StoreFolderError,
		Msg:  msg,
		Vars: vars,
		Err:  fmt.Errorf("failed to resolve folder %s: %w", name, err),
	}
}

// ItemError creates an error for a failed item creation.
func ItemError(name string, err error) error {
	msg := "Cannot create item <em>%s</em>"
	vars := []any{name}

	return &gn.Error{
		Code: errcode.StoreItemError,
		Msg:  msg,
		Vars: vars,
		Err:  fmt.Errorf("failed to create item %s: %w", name, err),
	}
}

// MetadataError creates an error for a failed metadata write.
func MetadataError(name string, err error) error {
	msg := "Cannot write metadata for item <em>%s</em>"
	vars := []any{name}

	return &gn.Error{
		Code: errcode.StoreMetadataError,
		Msg:  msg,
		Vars: vars,
		Err: fmt.Errorf("failed to write metadata for %s: %w",
			name, err),
	}
}

// GeometryError creates an error for a failed geometry write.
func GeometryError(name string, err error) error {
	msg := "Cannot write geospatial data for item <em>%s</em>"
	vars := []any{name}

	return &gn.Error{
		Code: errcode.StoreGeometryError,
		Msg:  msg,
		Vars: vars,
		Err: fmt.Errorf("failed to write geometry for %s: %w",
			name, err),
	}
}
