// Package main is the entry point for the character API server
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "character-api",
	Short: "Character API Server",
	Long:  `Character API manages player characters, NPCs, and encounters, deriving combat statistics and autosaving in-progress edits.`,
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.AddCommand(serverCmd)
}
