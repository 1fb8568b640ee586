package ioimport

import (
	"fmt"

	"github.com/gnames/gn"
	"github.com/placenames/pndb/pkg/errcode"
)

// DestinationError creates an error for an incomplete import
// destination configuration.
func DestinationError(owner, collection, folder string) error {
	msg := `Import destination is not fully configured

<em>How to fix:</em>
  1. Set 'import.owner', 'import.collection' and 'import.folder'
     in <em>config.yaml</em>
  2. Or export PNDB_IMPORT_OWNER etc. in the environment`

	return &gn.Error{
		Code: errcode.ImportDestinationError,
		Msg:  msg,
		Vars: nil,
		Err: fmt.Errorf(
			"incomplete destination: owner=%q collection=%q folder=%q",
			owner, collection, folder),
	}
}

// CancelledError creates an error for an import interrupted by its
// context.
func CancelledError(err error) error {
	msg := "Import was cancelled before the stream was exhausted"

	return &gn.Error{
		Code: errcode.ImportCancelledError,
		Msg:  msg,
		Vars: nil,
		Err:  fmt.Errorf("import cancelled: %w", err),
	}
}
