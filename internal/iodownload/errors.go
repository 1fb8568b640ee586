package iodownload

import (
	"fmt"

	"github.com/gnames/gn"
	"github.com/placenames/pndb/pkg/errcode"
)

// RequestError creates an error for a download request that could
// not be built or completed.
func RequestError(url string, err error) error {
	msg := `Cannot download <em>%s</em>

<em>Possible causes:</em>
  - No network connection
  - The mirror is down or the URL changed`

	vars := []any{url}

	return &gn.Error{
		Code: errcode.DownloadRequestError,
		Msg:  msg,
		Vars: vars,
		Err:  fmt.Errorf("download request failed: %w", err),
	}
}

// StatusError creates an error for a non-200 download response.
func StatusError(url string, status int) error {
	msg := "Download of <em>%s</em> failed with HTTP status <em>%d</em>"
	vars := []any{url, status}

	return &gn.Error{
		Code: errcode.DownloadStatusError,
		Msg:  msg,
		Vars: vars,
		Err:  fmt.Errorf("unexpected http status %d", status),
	}
}

// WriteError creates an error for a failed write of the downloaded
// body to disk.
func WriteError(path string, err error) error {
	msg := `Cannot write downloaded data to <em>%s</em>

<em>Possible causes:</em>
  - The disk is full
  - The cache directory is not writable`

	vars := []any{path}

	return &gn.Error{
		Code: errcode.DownloadWriteError,
		Msg:  msg,
		Vars: vars,
		Err:  fmt.Errorf("failed to write download: %w", err),
	}
}

// RenameError creates an error for a temporary file that could not
// be moved to its final destination.
func RenameError(dest string, err error) error {
	msg := "Cannot move downloaded file into place at <em>%s</em>"
	vars := []any{dest}

	return &gn.Error{
		Code: errcode.DownloadRenameError,
		Msg:  msg,
		Vars: vars,
		Err:  fmt.Errorf("failed to rename download: %w", err),
	}
}
