/*
Copyright © 2025 The pndb authors

Permission is hereby granted, free of charge, to any person obtaining a copy
of this software and associated documentation files (the "Software"), to deal
in the Software without restriction, including without limitation the rights
to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
copies of the Software, and to permit persons to whom the Software is
furnished to do so, subject to the following conditions:

The above copyright notice and this permission notice shall be included in
all copies or substantial portions of the Software.

THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN
THE SOFTWARE.
*/
package cmd

import (
	"context"
	"os"
	"os/signal"

	"github.com/gnames/gn"
	"github.com/placenames/pndb/internal/iodb"
	"github.com/placenames/pndb/internal/ioimport"
	"github.com/placenames/pndb/internal/ioprogress"
	"github.com/placenames/pndb/internal/iostore"
	"github.com/placenames/pndb/pkg/config"
	"github.com/placenames/pndb/pkg/store"
	"github.com/spf13/cobra"
)

// getImportCmd returns the import command.
func getImportCmd() *cobra.Command {
	var (
		chunkSize int
		file      string
	)

	importCmd := &cobra.Command{
		Use:   "import",
		Short: "Import the gazetteer into the content store",
		Long: `Import the GeoNames gazetteer dump into the content store.

The dump streams in fixed-size chunks: each chunk's rows are parsed,
sanitized and converted to point features, then exported as items
under the configured collection and folder. Memory use stays bounded
regardless of the dump size.

When the archive is not cached yet it is downloaded first. Use --file
to read an existing dump (zip or plain text) instead.

Examples:
  pndb import
  pndb import --chunk-size 500
  pndb import --file ./allCountries.zip`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runImport(cmd, args, chunkSize, file)
		},
	}

	importCmd.Flags().IntVarP(&chunkSize, "chunk-size", "c",
		0, "rows per batch (default from config)")
	importCmd.Flags().StringVarP(&file, "file", "F",
		"", "import from a local dump instead of the cached archive")

	return importCmd
}

func runImport(
	_ *cobra.Command,
	_ []string,
	chunkSize int,
	file string,
) error {
	ctx, stop := signal.NotifyContext(
		context.Background(), os.Interrupt,
	)
	defer stop()

	if chunkSize > 0 {
		cfg.Update([]config.Option{
			config.OptImportChunkSize(chunkSize),
		})
	}

	st, closeStore, err := openStore(ctx)
	if err != nil {
		gn.PrintErrorMessage(err)
		return err
	}
	defer closeStore()

	var opts []ioimport.Option
	if file != "" {
		opts = append(opts, ioimport.OptFile(file))
	}

	imp := ioimport.New(cfg, st, ioprogress.New(), opts...)
	if err = imp.Run(ctx); err != nil {
		gn.PrintErrorMessage(err)
		return err
	}

	gn.Info("Import complete")
	return nil
}

// openStore creates the store backend selected by the configured
// driver. The returned function releases the store and, for the
// postgres driver, its connection pool.
func openStore(
	ctx context.Context,
) (store.Store, func(), error) {
	if cfg.Database.Driver == "sqlite" {
		st, err := iostore.NewSQLite(cfg.SQLitePath())
		if err != nil {
			return nil, nil, err
		}
		return st, func() { st.Close() }, nil
	}

	op := iodb.NewPgxOperator()
	if err := op.Connect(ctx, &cfg.Database); err != nil {
		return nil, nil, err
	}

	gn.Info("Connected to database: %s@%s:%d/%s",
		cfg.Database.User, cfg.Database.Host,
		cfg.Database.Port, cfg.Database.Database)

	st := iostore.NewPostgres(op.Pool())
	return st, func() {
		st.Close()
		op.Close()
	}, nil
}
