package client

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/KirkDiggler/rpg-rando/internal/handlers/rando/v1alpha1"
)

var sendItem string

var sendCmd = &cobra.Command{
	Use:   "send [location]",
	Short: "Report a checked location",
	Long: `Report that a player checked a location. Items owned by other players
are routed to them.

  client send --rando-id rando_123 --player 0 Mothwing_Cloak
  client send --rando-id rando_123 --player 0 --item Grubsong Sly`,
	Args: cobra.ExactArgs(1),
	RunE: runSend,
}

func init() {
	addPlayerFlags(sendCmd)
	sendCmd.Flags().StringVar(&sendItem, "item", "", "Only send this item when the location is a shop")
}

func runSend(_ *cobra.Command, args []string) error {
	client, cleanup, err := createDeliveryClient()
	if err != nil {
		return err
	}
	defer cleanup()

	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	resp, err := client.Send(ctx, &v1alpha1.SendRequest{
		RandoID:  randoID,
		PlayerID: playerID,
		Location: args[0],
		Item:     sendItem,
	})
	if err != nil {
		return fmt.Errorf("failed to send: %w", err)
	}

	fmt.Printf("Found at %s:\n", args[0])
	for _, item := range resp.Found {
		fmt.Printf("  - %s\n", item)
	}

	if len(resp.Sent) == 0 {
		return nil
	}

	fmt.Printf("\nSent:\n")
	for _, sent := range resp.Sent {
		state := "queued"
		if sent.InFlight {
			state = "in flight"
		}
		fmt.Printf("  - %s to player %d (%s)\n", sent.Delivery.Item.Name, sent.Owner, state)
	}

	return nil
}
