// Package cmd implements the command-line interface for cinedual.
package cmd

import (
	"fmt"
	"runtime"

	"github.com/simgunz/cinedual/constant"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(versionCmd)
}

// versionCmd displays application version and platform metadata.
var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Display the application version",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("%s %s (%s/%s)\n", constant.Cinedual, constant.Version, runtime.GOOS, runtime.GOARCH)
	},
}
