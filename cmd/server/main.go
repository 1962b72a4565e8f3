// Package main is the entry point for the rando CLI and gRPC server
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/KirkDiggler/rpg-rando/cmd/server/client"
)

var rootCmd = &cobra.Command{
	Use:   "rando",
	Short: "Multiworld item and transition randomizer",
	Long: `rando generates item and transition randomizers for one or more players,
serves them over gRPC and routes items between players of a multiworld.`,
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.AddCommand(generateCmd)
	rootCmd.AddCommand(serverCmd)
	rootCmd.AddCommand(client.ClientCmd)
}
