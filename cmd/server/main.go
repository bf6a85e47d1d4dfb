// Package main is the entry point for the HTTP server
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "item-simulator",
	Short: "Item simulator HTTP server",
	Long:  `Item simulator provides an HTTP JSON API for managing characters, item definitions, and equipment.`,
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
