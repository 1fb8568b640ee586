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
	"github.com/placenames/pndb/internal/iodownload"
	"github.com/placenames/pndb/internal/ioprogress"
	"github.com/spf13/cobra"
)

// getDownloadCmd returns the download command.
func getDownloadCmd() *cobra.Command {
	var forceDownload bool

	downloadCmd := &cobra.Command{
		Use:   "download",
		Short: "Download the gazetteer archive",
		Long: `Download the GeoNames gazetteer archive into the cache directory.

The archive streams into a temporary file and is moved into place only
when the download completes, so an interrupted run leaves no partial
archive behind. An already cached archive is kept unless --force is
given.

Examples:
  pndb download
  pndb download --force`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDownload(cmd, args, forceDownload)
		},
	}

	downloadCmd.Flags().BoolVarP(&forceDownload, "force", "f",
		false, "re-download even when the archive is cached")

	return downloadCmd
}

func runDownload(
	_ *cobra.Command,
	_ []string,
	force bool,
) error {
	ctx, stop := signal.NotifyContext(
		context.Background(), os.Interrupt,
	)
	defer stop()

	dest := cfg.ArchivePath()
	if !force {
		if _, err := os.Stat(dest); err == nil {
			gn.Info(
				"Archive already cached at <em>%s</em>, "+
					"use --force to re-download", dest,
			)
			return nil
		}
	}

	gn.Info("Downloading <em>%s</em>", cfg.Import.URL)
	dl := iodownload.New(ioprogress.New())
	if err := dl.Fetch(ctx, cfg.Import.URL, dest); err != nil {
		gn.PrintErrorMessage(err)
		return err
	}

	gn.Info("Archive saved to <em>%s</em>", dest)
	return nil
}
