package cmd

import (
	"fmt"
	"os"

	pndb "github.com/placenames/pndb/pkg"
	"github.com/spf13/cobra"
)

func versionFlag(cmd *cobra.Command) {
	hasVersionFlag, _ := cmd.Flags().GetBool("version")
	if hasVersionFlag {
		fmt.Printf("\nversion: %s\nbuild: %s\n\n", pndb.Version, pndb.Build)
		os.Exit(0)
	}
}
