package client

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/KirkDiggler/rpg-rando/internal/handlers/rando/v1alpha1"
)

var showPlacements bool

var resultCmd = &cobra.Command{
	Use:   "result",
	Short: "Show a player's result",
	RunE:  runResult,
}

func init() {
	addPlayerFlags(resultCmd)
	resultCmd.Flags().BoolVar(&showPlacements, "placements", false, "List every placement owned by the player")
}

func runResult(_ *cobra.Command, _ []string) error {
	client, cleanup, err := createGenerationClient()
	if err != nil {
		return err
	}
	defer cleanup()

	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	resp, err := client.GetResult(ctx, &v1alpha1.GetResultRequest{
		RandoID:  randoID,
		PlayerID: playerID,
	})
	if err != nil {
		return fmt.Errorf("failed to get result: %w", err)
	}

	result := resp.Result
	fmt.Printf("Rando ID: %s\n", result.RandoID)
	fmt.Printf("Player: %d of %d (%s)\n", result.PlayerID, result.Players, result.Nickname(result.PlayerID))
	fmt.Printf("Seed: %d\n", result.Seed)
	fmt.Printf("Start: %s\n", result.StartName)
	if len(result.StartItems) > 0 {
		fmt.Printf("Start Items: %v\n", result.StartItems)
	}
	fmt.Printf("Created: %s\n", result.CreatedAt.Format("2006-01-02 15:04:05"))

	if len(result.TransitionPlacements) > 0 {
		fmt.Printf("Transitions: %d\n", len(result.TransitionPlacements))
	}

	if !showPlacements {
		return nil
	}

	fmt.Printf("\nPlacements:\n")
	for _, p := range result.Placements() {
		if p.Location.Player != result.PlayerID {
			continue
		}
		line := fmt.Sprintf("  - %s: %s", p.Location.Name, p.Item)
		if cost, ok := result.ShopCosts[p.Item]; ok {
			line += fmt.Sprintf(" (%d geo)", cost)
		}
		fmt.Println(line)
	}

	return nil
}
