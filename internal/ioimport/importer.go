// Package ioimport drives the gazetteer import pipeline: make sure
// the dump exists locally, stream it in chunks, convert rows to
// point features and hand them to a batch handler for export.
package ioimport

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/gnames/gnfmt"
	"github.com/placenames/pndb/internal/iodownload"
	"github.com/placenames/pndb/internal/ioprogress"
	"github.com/placenames/pndb/internal/ioread"
	"github.com/placenames/pndb/pkg/config"
	"github.com/placenames/pndb/pkg/gazetteer"
	"github.com/placenames/pndb/pkg/lifecycle"
	"github.com/placenames/pndb/pkg/store"
)

// Destination is the resolved target of an import: the owning user,
// the collection and the folder items land in. It is resolved once
// per run and reused for every batch.
type Destination struct {
	User       *store.User
	Collection *store.Collection
	Folder     *store.Folder
}

// BatchHandler exports one batch of features to the destination.
// Handlers decide their own failure policy; returning an error
// aborts the whole import.
type BatchHandler func(
	ctx context.Context,
	feats []gazetteer.Feature,
	dst *Destination,
) error

type importer struct {
	cfg      *config.Config
	st       store.Store
	dl       lifecycle.Downloader
	progress *ioprogress.Reporter
	handle   BatchHandler

	// file overrides the cached archive path when set.
	file string

	// dst caches the resolved destination for the run.
	dst *Destination
}

// Option configures the importer.
type Option func(*importer)

// OptFile makes the importer read from an existing local dump
// instead of the cached archive.
func OptFile(path string) Option {
	return func(imp *importer) {
		imp.file = path
	}
}

// OptBatchHandler replaces the default store-backed export with a
// custom handler.
func OptBatchHandler(h BatchHandler) Option {
	return func(imp *importer) {
		imp.handle = h
	}
}

// New creates an importer writing to the given store. Without
// OptBatchHandler batches go through the default store sink.
func New(
	cfg *config.Config,
	st store.Store,
	progress *ioprogress.Reporter,
	opts ...Option,
) lifecycle.Importer {
	imp := &importer{
		cfg:      cfg,
		st:       st,
		dl:       iodownload.New(progress),
		progress: progress,
	}
	for _, opt := range opts {
		opt(imp)
	}
	if imp.handle == nil {
		snk := &sink{
			st:       st,
			progress: progress,
			total:    int64(cfg.Import.TotalEstimate),
		}
		imp.handle = snk.handle
	}
	return imp
}

func (imp *importer) Run(ctx context.Context) error {
	start := time.Now()

	if err := imp.ensureSource(ctx); err != nil {
		return err
	}
	dst, err := imp.destination(ctx)
	if err != nil {
		return err
	}

	rdr, err := ioread.Open(
		imp.sourcePath(), imp.cfg.Import.Entry, imp.cfg.Import.ChunkSize,
	)
	if err != nil {
		return err
	}
	defer rdr.Close()

	var processed int64
	for {
		select {
		case <-ctx.Done():
			return CancelledError(ctx.Err())
		default:
		}

		chunk, err := rdr.Next()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return err
		}

		feats := gazetteer.BuildFeatures(chunk)
		if err = imp.handle(ctx, feats, dst); err != nil {
			return err
		}
		processed += int64(len(chunk))
	}
	imp.progress.Done()

	duration := gnfmt.TimeString(time.Since(start).Seconds())
	slog.Info("Import finished",
		"records", processed,
		"skippedRows", rdr.Skipped(),
		"duration", duration,
	)
	fmt.Fprintf(os.Stderr, "Imported %s records in %s\n",
		humanize.Comma(processed), duration)
	return nil
}

// sourcePath is the dump the reader opens: an explicit file when
// one was given, the cached archive otherwise.
func (imp *importer) sourcePath() string {
	if imp.file != "" {
		return imp.file
	}
	return imp.cfg.ArchivePath()
}

// ensureSource downloads the archive when neither an explicit file
// nor a cached copy exists.
func (imp *importer) ensureSource(ctx context.Context) error {
	if imp.file != "" {
		return nil
	}
	path := imp.cfg.ArchivePath()
	if _, err := os.Stat(path); err == nil {
		return nil
	}
	slog.Info("Archive not cached, downloading",
		"url", imp.cfg.Import.URL)
	return imp.dl.Fetch(ctx, imp.cfg.Import.URL, path)
}

// destination resolves the owner, collection and folder, creating
// them when missing. The result is cached on the importer so every
// batch of the run shares the same destination.
func (imp *importer) destination(ctx context.Context) (*Destination, error) {
	if imp.dst != nil {
		return imp.dst, nil
	}

	ic := imp.cfg.Import
	if ic.Owner == "" || ic.Collection == "" || ic.Folder == "" {
		return nil, DestinationError(ic.Owner, ic.Collection, ic.Folder)
	}

	user, err := imp.st.EnsureUser(ctx, ic.Owner)
	if err != nil {
		return nil, err
	}
	coll, err := imp.st.EnsureCollection(
		ctx, ic.Collection, "GeoNames gazetteer data", user,
	)
	if err != nil {
		return nil, err
	}
	folder, err := imp.st.EnsureFolder(ctx, coll, ic.Folder, "", user)
	if err != nil {
		return nil, err
	}

	imp.dst = &Destination{User: user, Collection: coll, Folder: folder}
	return imp.dst, nil
}
