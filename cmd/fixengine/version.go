package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"fixengine/internal/pkg/version"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "print the fixengine version",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("fixengine %s (%s)\n", version.GetFullVersion(), version.APIVersion)
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
