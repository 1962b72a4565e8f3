package client

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/KirkDiggler/rpg-rando/internal/handlers/rando/v1alpha1"
)

var leaveCmd = &cobra.Command{
	Use:   "leave",
	Short: "Mark a player offline",
	RunE:  runLeave,
}

func init() {
	addPlayerFlags(leaveCmd)
}

func runLeave(_ *cobra.Command, _ []string) error {
	client, cleanup, err := createDeliveryClient()
	if err != nil {
		return err
	}
	defer cleanup()

	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	if _, err := client.Leave(ctx, &v1alpha1.PlayerRequest{
		RandoID:  randoID,
		PlayerID: playerID,
	}); err != nil {
		return fmt.Errorf("failed to leave: %w", err)
	}

	fmt.Printf("Player %d left %s\n", playerID, randoID)
	return nil
}
