package ioimport

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/placenames/pndb/internal/ioprogress"
	"github.com/placenames/pndb/pkg/gazetteer"
	"github.com/placenames/pndb/pkg/store"
)

// sink is the default batch handler: one item per feature, with the
// sanitized properties as metadata and the point as geospatial data.
type sink struct {
	st       store.Store
	progress *ioprogress.Reporter
	total    int64

	// processed counts features across batches for progress output.
	processed int64
}

// handle exports a batch. Failures are diagnostics, not fatal: a
// failed item creation abandons the remainder of the batch and the
// next batch starts clean, while metadata and geometry failures
// leave a partial item behind and move on.
func (s *sink) handle(
	ctx context.Context,
	feats []gazetteer.Feature,
	dst *Destination,
) error {
	for i := range feats {
		f := &feats[i]
		s.processed++
		s.progress.Report(s.processed, s.total,
			fmt.Sprintf("Importing item #%d: %s", s.processed, f.Name()),
			"lines")

		item, err := s.st.CreateItem(
			ctx, dst.Folder, f.Name(), f.Description(), dst.User,
		)
		if err != nil {
			slog.Warn("Item creation failed, abandoning batch",
				"name", f.Name(), "error", err)
			return nil
		}

		if err = s.st.SetItemMetadata(ctx, item, f.Properties); err != nil {
			slog.Warn("Metadata write failed",
				"name", f.Name(), "error", err)
			continue
		}
		if err = s.st.SetItemGeometry(ctx, item, f.Geometry); err != nil {
			slog.Warn("Geometry write failed",
				"name", f.Name(), "error", err)
		}
	}
	return nil
}
