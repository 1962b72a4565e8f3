package client

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/KirkDiggler/rpg-rando/internal/handlers/rando/v1alpha1"
)

var pendingCmd = &cobra.Command{
	Use:   "pending",
	Short: "List items waiting for a player",
	RunE:  runPending,
}

func init() {
	addPlayerFlags(pendingCmd)
}

func runPending(_ *cobra.Command, _ []string) error {
	client, cleanup, err := createDeliveryClient()
	if err != nil {
		return err
	}
	defer cleanup()

	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	resp, err := client.Pending(ctx, &v1alpha1.PlayerRequest{
		RandoID:  randoID,
		PlayerID: playerID,
	})
	if err != nil {
		return fmt.Errorf("failed to list pending items: %w", err)
	}

	printDeliveries("In flight", resp.InFlight)
	printDeliveries("Queued", resp.Queued)

	return nil
}
