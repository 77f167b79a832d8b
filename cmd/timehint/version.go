package main

import (
	"fmt"

	"github.com/aretw0/timeoverwrite"
	"github.com/spf13/cobra"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number of timehint",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("timehint version %s\n", timeoverwrite.Version)
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
