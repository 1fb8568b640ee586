// Package ioread streams gazetteer dump files in fixed-size chunks.
// A source may be a zip archive holding the tab-separated dump or
// the plain text file itself; the reader tries zip first and falls
// back to plain text.
package ioread

import (
	"archive/zip"
	"bufio"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/placenames/pndb/pkg/gazetteer"
)

// lines in allCountries.txt stay well under 1 MiB, but alternate
// name lists can get long, so the scanner buffer is generous.
const maxLineSize = 1024 * 1024

// Reader yields parsed gazetteer records in chunks.
type Reader struct {
	chunkSize int
	scanner   *bufio.Scanner
	closers   []io.Closer
	skipped   int
}

// Open prepares a chunked reader over the dump at path. If path is
// a zip archive, entry names the file inside it to read; otherwise
// path is read directly and entry is ignored.
func Open(path, entry string, chunkSize int) (*Reader, error) {
	r := &Reader{chunkSize: chunkSize}

	zr, err := zip.OpenReader(path)
	if err == nil {
		rc, err := openEntry(zr, entry)
		if err != nil {
			zr.Close()
			return nil, err
		}
		r.closers = []io.Closer{rc, zr}
		r.scanner = newScanner(rc)
		return r, nil
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, OpenError(path, err)
	}
	r.closers = []io.Closer{f}
	r.scanner = newScanner(f)
	return r, nil
}

func openEntry(zr *zip.ReadCloser, entry string) (io.ReadCloser, error) {
	for _, zf := range zr.File {
		if zf.Name == entry {
			rc, err := zf.Open()
			if err != nil {
				return nil, EntryError(entry, err)
			}
			return rc, nil
		}
	}
	return nil, EntryNotFoundError(entry)
}

func newScanner(src io.Reader) *bufio.Scanner {
	sc := bufio.NewScanner(src)
	sc.Buffer(make([]byte, 0, 64*1024), maxLineSize)
	return sc
}

// Next returns the next chunk of records, at most chunkSize long.
// Rows that cannot be parsed are skipped with a debug log and
// counted. When the source is exhausted Next returns io.EOF.
func (r *Reader) Next() ([]gazetteer.Record, error) {
	chunk := make([]gazetteer.Record, 0, r.chunkSize)
	for len(chunk) < r.chunkSize && r.scanner.Scan() {
		line := r.scanner.Text()
		if line == "" {
			continue
		}
		rec, err := gazetteer.ParseRow(strings.Split(line, "\t"))
		if err != nil {
			r.skipped++
			slog.Debug("Skipping malformed row", "error", err)
			continue
		}
		chunk = append(chunk, rec)
	}
	if err := r.scanner.Err(); err != nil {
		return nil, ScanError(err)
	}
	if len(chunk) == 0 {
		return nil, io.EOF
	}
	return chunk, nil
}

// Skipped reports how many malformed rows were dropped so far.
func (r *Reader) Skipped() int {
	return r.skipped
}

// Close releases the underlying file handles.
func (r *Reader) Close() error {
	var first error
	for _, c := range r.closers {
		if err := c.Close(); err != nil && first == nil {
			first = err
		}
	}
	return first
}
