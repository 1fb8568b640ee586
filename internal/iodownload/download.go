// Package iodownload fetches remote archives over HTTP. Downloads
// stream into a temporary file next to the destination and are
// renamed into place only after the body is fully written, so an
// interrupted run never leaves a partial archive behind.
package iodownload

import (
	"context"
	"io"
	"net/http"
	"os"
	"path/filepath"

	"github.com/placenames/pndb/internal/ioprogress"
	"github.com/placenames/pndb/pkg/lifecycle"
)

type downloader struct {
	// no client timeout: the geonames archive is several hundred
	// megabytes and slow mirrors are common. Cancellation comes
	// from the request context instead.
	client   *http.Client
	progress *ioprogress.Reporter
}

// New creates an HTTP downloader reporting progress through the
// given reporter.
func New(progress *ioprogress.Reporter) lifecycle.Downloader {
	return &downloader{
		client:   &http.Client{},
		progress: progress,
	}
}

// Fetch downloads url into dest. The body streams to dest+".part"
// first; the temporary file is removed on any failure.
func (d *downloader) Fetch(ctx context.Context, url, dest string) error {
	req, err := http.NewRequestWithContext(
		ctx, http.MethodGet, url, nil,
	)
	if err != nil {
		return RequestError(url, err)
	}

	resp, err := d.client.Do(req)
	if err != nil {
		return RequestError(url, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return StatusError(url, resp.StatusCode)
	}

	tmp := dest + ".part"
	out, err := os.Create(tmp)
	if err != nil {
		return WriteError(tmp, err)
	}

	if err = d.copyBody(ctx, out, resp, dest); err != nil {
		out.Close()
		os.Remove(tmp)
		return err
	}
	if err = out.Close(); err != nil {
		os.Remove(tmp)
		return WriteError(tmp, err)
	}

	if err = os.Rename(tmp, dest); err != nil {
		os.Remove(tmp)
		return RenameError(dest, err)
	}
	d.progress.Done()
	return nil
}

func (d *downloader) copyBody(
	ctx context.Context,
	out *os.File,
	resp *http.Response,
	dest string,
) error {
	msg := "Downloading " + filepath.Base(dest)
	buf := make([]byte, 32*1024)
	var written int64
	for {
		if err := ctx.Err(); err != nil {
			return RequestError(resp.Request.URL.String(), err)
		}
		n, err := resp.Body.Read(buf)
		if n > 0 {
			if _, werr := out.Write(buf[:n]); werr != nil {
				return WriteError(out.Name(), werr)
			}
			written += int64(n)
			d.progress.Report(written, resp.ContentLength, msg, "b")
		}
		if err == io.EOF {
			return nil
		}
		if err != nil {
			return WriteError(out.Name(), err)
		}
	}
}
