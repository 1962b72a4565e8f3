package client

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/KirkDiggler/rpg-rando/internal/entities/rando"
	"github.com/KirkDiggler/rpg-rando/internal/handlers/rando/v1alpha1"
)

var joinCmd = &cobra.Command{
	Use:   "join",
	Short: "Mark a player online and collect queued items",
	RunE:  runJoin,
}

func init() {
	addPlayerFlags(joinCmd)
}

func runJoin(_ *cobra.Command, _ []string) error {
	client, cleanup, err := createDeliveryClient()
	if err != nil {
		return err
	}
	defer cleanup()

	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	resp, err := client.Join(ctx, &v1alpha1.PlayerRequest{
		RandoID:  randoID,
		PlayerID: playerID,
	})
	if err != nil {
		return fmt.Errorf("failed to join: %w", err)
	}

	fmt.Printf("Player %d joined %s, %d queued item(s) released\n", playerID, randoID, resp.Moved)
	printDeliveries("In flight", resp.InFlight)

	return nil
}

func printDeliveries(title string, deliveries []rando.Delivery) {
	fmt.Printf("\n%s (%d):\n", title, len(deliveries))
	for _, d := range deliveries {
		fmt.Printf("  - %s from player %d\n", d.Item.Name, d.From)
	}
}
