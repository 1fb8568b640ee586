package ioread

import (
	"fmt"

	"github.com/gnames/gn"
	"github.com/placenames/pndb/pkg/errcode"
)

// OpenError creates an error for a dump file that cannot be opened.
func OpenError(path string, err error) error {
	msg := `Cannot open gazetteer file <em>%s</em>

<em>How to fix:</em>
  1. Run '<em>pndb download</em>' to fetch the archive
  2. Or point '<em>pndb import --file</em>' at an existing dump`

	vars := []any{path}

	return &gn.Error{
		Code: errcode.ImportFileOpenError,
		Msg:  msg,
		Vars: vars,
		Err:  fmt.Errorf("failed to open %s: %w", path, err),
	}
}

// EntryError creates an error for an archive entry that exists but
// cannot be read.
func EntryError(entry string, err error) error {
	msg := "Cannot read entry <em>%s</em> from the archive"
	vars := []any{entry}

	return &gn.Error{
		Code: errcode.ImportFileOpenError,
		Msg:  msg,
		Vars: vars,
		Err:  fmt.Errorf("failed to open archive entry %s: %w", entry, err),
	}
}

// EntryNotFoundError creates an error for an archive that does not
// contain the expected dump entry.
func EntryNotFoundError(entry string) error {
	msg := `Archive does not contain <em>%s</em>

<em>Possible causes:</em>
  - The archive is for a different dataset
  - The 'import.entry' setting does not match the archive`

	vars := []any{entry}

	return &gn.Error{
		Code: errcode.ImportFileOpenError,
		Msg:  msg,
		Vars: vars,
		Err:  fmt.Errorf("entry %s not found in archive", entry),
	}
}

// ScanError creates an error for a read failure mid-stream.
func ScanError(err error) error {
	msg := "Cannot read the gazetteer stream"

	return &gn.Error{
		Code: errcode.ImportReadError,
		Msg:  msg,
		Vars: nil,
		Err:  fmt.Errorf("failed to scan dump: %w", err),
	}
}
