// Package client provides commands that talk to a running rando server
package client

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"
	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"

	"github.com/KirkDiggler/rpg-rando/internal/handlers/rando/v1alpha1"
)

var (
	// Connection flags
	serverAddr string
	timeout    time.Duration

	// Shared by every command addressing one player of a run
	randoID  string
	playerID int
)

// ClientCmd is the root command for all client commands
var ClientCmd = &cobra.Command{
	Use:   "client",
	Short: "Client commands for the rando server",
	Long:  `Client commands generate runs and route items through a running rando server.`,
}

func init() {
	ClientCmd.PersistentFlags().StringVar(&serverAddr, "server", "localhost:50051", "gRPC server address")
	ClientCmd.PersistentFlags().DurationVar(&timeout, "timeout", 5*time.Minute, "Request timeout")

	// Generation commands
	ClientCmd.AddCommand(generateCmd)
	ClientCmd.AddCommand(resultCmd)

	// Delivery commands
	ClientCmd.AddCommand(sendCmd)
	ClientCmd.AddCommand(joinCmd)
	ClientCmd.AddCommand(leaveCmd)
	ClientCmd.AddCommand(pendingCmd)
	ClientCmd.AddCommand(confirmCmd)
}

// addPlayerFlags registers the --rando-id and --player flags on a command
func addPlayerFlags(cmd *cobra.Command) {
	cmd.Flags().StringVar(&randoID, "rando-id", "", "Rando ID (required)")
	cmd.Flags().IntVar(&playerID, "player", 0, "Zero based player ID")
	_ = cmd.MarkFlagRequired("rando-id") // nolint:errcheck // safe to ignore in init
}

// createConnection creates a gRPC connection to the server
func createConnection() (*grpc.ClientConn, error) {
	conn, err := grpc.NewClient(serverAddr,
		grpc.WithTransportCredentials(insecure.NewCredentials()),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to server: %w", err)
	}

	return conn, nil
}

// createGenerationClient creates a generation service client
func createGenerationClient() (*v1alpha1.GenerationServiceClient, func(), error) {
	conn, err := createConnection()
	if err != nil {
		return nil, nil, err
	}

	cleanup := func() {
		_ = conn.Close() // nolint:errcheck // safe to ignore in cleanup
	}

	return v1alpha1.NewGenerationServiceClient(conn), cleanup, nil
}

// createDeliveryClient creates a delivery service client
func createDeliveryClient() (*v1alpha1.DeliveryServiceClient, func(), error) {
	conn, err := createConnection()
	if err != nil {
		return nil, nil, err
	}

	cleanup := func() {
		_ = conn.Close() // nolint:errcheck // safe to ignore in cleanup
	}

	return v1alpha1.NewDeliveryServiceClient(conn), cleanup, nil
}
