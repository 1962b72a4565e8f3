package client

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/KirkDiggler/rpg-rando/internal/handlers/rando/v1alpha1"
	"github.com/KirkDiggler/rpg-rando/internal/logic"
)

var (
	settingsPath string
	nicknames    []string
)

var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Generate and store a rando on the server",
	Long: `Send a settings file to the server and print the stored run.

  client generate --settings data/settings/multiworld.yaml --nickname alice --nickname bob`,
	RunE: runGenerate,
}

func init() {
	generateCmd.Flags().StringVar(&settingsPath, "settings", "", "Settings file (required)")
	generateCmd.Flags().StringSliceVar(&nicknames, "nickname", nil, "Player nickname, repeat once per player")
	_ = generateCmd.MarkFlagRequired("settings") // nolint:errcheck // safe to ignore in init
}

func runGenerate(_ *cobra.Command, _ []string) error {
	settings, err := logic.LoadSettings(settingsPath)
	if err != nil {
		return err
	}

	client, cleanup, err := createGenerationClient()
	if err != nil {
		return err
	}
	defer cleanup()

	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	resp, err := client.Generate(ctx, &v1alpha1.GenerateRequest{
		Settings:  settings,
		Nicknames: nicknames,
	})
	if err != nil {
		return fmt.Errorf("failed to generate: %w", err)
	}

	fmt.Printf("Rando ID: %s\n", resp.RandoID)
	fmt.Printf("Attempts: %d\n", resp.Attempts)
	fmt.Printf("\nPlayers:\n")
	for _, result := range resp.Results {
		fmt.Printf("  - %d %s: start %s, seed %d, %d placement(s)\n",
			result.PlayerID,
			result.Nickname(result.PlayerID),
			result.StartName,
			result.Seed,
			len(result.ItemPlacements))
	}

	return nil
}
