package client

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/KirkDiggler/rpg-rando/internal/handlers/rando/v1alpha1"
)

var confirmFrom int

var confirmCmd = &cobra.Command{
	Use:   "confirm [item]",
	Short: "Acknowledge a received item",
	Long: `Acknowledge that a player received an item sent by another player.

  client confirm --rando-id rando_123 --player 1 --from 0 Mantis_Claw`,
	Args: cobra.ExactArgs(1),
	RunE: runConfirm,
}

func init() {
	addPlayerFlags(confirmCmd)
	confirmCmd.Flags().IntVar(&confirmFrom, "from", 0, "Player that sent the item")
}

func runConfirm(_ *cobra.Command, args []string) error {
	client, cleanup, err := createDeliveryClient()
	if err != nil {
		return err
	}
	defer cleanup()

	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	resp, err := client.Confirm(ctx, &v1alpha1.ConfirmRequest{
		RandoID:  randoID,
		PlayerID: playerID,
		Item:     args[0],
		From:     confirmFrom,
	})
	if err != nil {
		return fmt.Errorf("failed to confirm: %w", err)
	}

	if resp.Removed == 0 {
		fmt.Printf("%s from player %d was not pending\n", args[0], confirmFrom)
		return nil
	}
	fmt.Printf("Confirmed %s from player %d\n", args[0], confirmFrom)
	return nil
}
