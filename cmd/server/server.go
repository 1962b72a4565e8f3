package main

import (
	"context"
	"fmt"
	"log"
	"net"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/KirkDiggler/rpg-toolkit/events"
	"github.com/spf13/cobra"
	"google.golang.org/grpc"
	"google.golang.org/grpc/health"
	"google.golang.org/grpc/health/grpc_health_v1"
	"google.golang.org/grpc/reflection"

	grpc_logging "github.com/grpc-ecosystem/go-grpc-middleware/v2/interceptors/logging"
	grpc_recovery "github.com/grpc-ecosystem/go-grpc-middleware/v2/interceptors/recovery"

	"github.com/KirkDiggler/rpg-rando/internal/handlers/rando/v1alpha1"
	"github.com/KirkDiggler/rpg-rando/internal/logic"
	"github.com/KirkDiggler/rpg-rando/internal/orchestrators/delivery"
	"github.com/KirkDiggler/rpg-rando/internal/orchestrators/generation"
	"github.com/KirkDiggler/rpg-rando/internal/pkg/clock"
	"github.com/KirkDiggler/rpg-rando/internal/pkg/idgen"
	"github.com/KirkDiggler/rpg-rando/internal/redis"
	"github.com/KirkDiggler/rpg-rando/internal/repositories/deliveries"
	"github.com/KirkDiggler/rpg-rando/internal/repositories/results"
)

var (
	grpcPort          int
	serverRedisAddr   string
	serverWorldPath   string
	serverMaxAttempts int
	resultsTTL        time.Duration
)

var serverCmd = &cobra.Command{
	Use:   "server",
	Short: "Start the gRPC server",
	Long:  `Start the rando gRPC server with the generation and delivery services.`,
	RunE:  runServer,
}

func init() {
	serverCmd.Flags().IntVar(&grpcPort, "port", 50051, "gRPC server port")
	serverCmd.Flags().StringVar(&serverRedisAddr, "redis", "localhost:6379", "Redis address")
	serverCmd.Flags().StringVar(&serverWorldPath, "world", "data/worlds/hallownest.yaml", "World definition file")
	serverCmd.Flags().IntVar(&serverMaxAttempts, "max-attempts", generation.DefaultMaxAttempts, "Attempt budget per generation")
	serverCmd.Flags().DurationVar(&resultsTTL, "ttl", 7*24*time.Hour, "How long runs and deliveries are kept")
}

func runServer(_ *cobra.Command, _ []string) error {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	go func() {
		<-sigChan
		log.Println("Received shutdown signal, gracefully stopping...")
		cancel()
	}()

	world, err := logic.LoadWorld(serverWorldPath)
	if err != nil {
		return fmt.Errorf("failed to load world: %w", err)
	}

	redisClient, err := redis.NewClient(serverRedisAddr, nil)
	if err != nil {
		return fmt.Errorf("failed to create redis client: %w", err)
	}
	defer func() { _ = redisClient.Close() }()

	if err := redisClient.Ping(ctx).Err(); err != nil {
		return fmt.Errorf("failed to reach redis at %s: %w", serverRedisAddr, err)
	}

	// Repositories
	resultsRepo, err := results.NewRedisRepository(&results.Config{Client: redisClient, TTL: resultsTTL})
	if err != nil {
		return fmt.Errorf("failed to create results repository: %w", err)
	}
	deliveriesRepo, err := deliveries.NewRedisRepository(&deliveries.Config{Client: redisClient, TTL: resultsTTL})
	if err != nil {
		return fmt.Errorf("failed to create deliveries repository: %w", err)
	}

	// Orchestrators
	eventBus := events.NewBus()
	generationService, err := generation.NewOrchestrator(&generation.Config{
		World:       world,
		EventBus:    eventBus,
		IDGenerator: idgen.NewUUID("rando"),
		Clock:       clock.New(),
		ResultsRepo: resultsRepo,
		MaxAttempts: serverMaxAttempts,
	})
	if err != nil {
		return fmt.Errorf("failed to create generation service: %w", err)
	}
	deliveryService, err := delivery.NewOrchestrator(&delivery.Config{
		ResultsRepo:    resultsRepo,
		DeliveriesRepo: deliveriesRepo,
	})
	if err != nil {
		return fmt.Errorf("failed to create delivery service: %w", err)
	}

	// Handlers
	generationHandler, err := v1alpha1.NewGenerationHandler(&v1alpha1.GenerationHandlerConfig{
		GenerationService: generationService,
	})
	if err != nil {
		return fmt.Errorf("failed to create generation handler: %w", err)
	}
	deliveryHandler, err := v1alpha1.NewDeliveryHandler(&v1alpha1.DeliveryHandlerConfig{
		DeliveryService: deliveryService,
	})
	if err != nil {
		return fmt.Errorf("failed to create delivery handler: %w", err)
	}

	lis, err := net.Listen("tcp", fmt.Sprintf(":%d", grpcPort))
	if err != nil {
		return fmt.Errorf("failed to listen: %w", err)
	}

	srv := grpc.NewServer(
		grpc.ChainUnaryInterceptor(
			grpc_logging.UnaryServerInterceptor(grpc_logging.LoggerFunc(logFunc)),
			grpc_recovery.UnaryServerInterceptor(),
		),
		grpc.ChainStreamInterceptor(
			grpc_logging.StreamServerInterceptor(grpc_logging.LoggerFunc(logFunc)),
			grpc_recovery.StreamServerInterceptor(),
		),
	)

	v1alpha1.RegisterGenerationServiceServer(srv, generationHandler)
	v1alpha1.RegisterDeliveryServiceServer(srv, deliveryHandler)

	healthServer := health.NewServer()
	grpc_health_v1.RegisterHealthServer(srv, healthServer)

	healthServer.SetServingStatus("", grpc_health_v1.HealthCheckResponse_SERVING)
	healthServer.SetServingStatus(v1alpha1.GenerationServiceName, grpc_health_v1.HealthCheckResponse_SERVING)
	healthServer.SetServingStatus(v1alpha1.DeliveryServiceName, grpc_health_v1.HealthCheckResponse_SERVING)

	reflection.Register(srv)

	errChan := make(chan error, 1)
	go func() {
		log.Printf("gRPC server starting on port %d with world %s...", grpcPort, world.Def().Name)
		if err := srv.Serve(lis); err != nil {
			errChan <- fmt.Errorf("failed to serve: %w", err)
		}
	}()

	select {
	case <-ctx.Done():
		log.Println("Shutting down gRPC server...")

		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer shutdownCancel()

		stopped := make(chan struct{})
		go func() {
			srv.GracefulStop()
			close(stopped)
		}()

		select {
		case <-shutdownCtx.Done():
			log.Println("Graceful shutdown timeout exceeded, forcing stop")
			srv.Stop()
		case <-stopped:
			log.Println("Server stopped gracefully")
		}

		return nil
	case err := <-errChan:
		return err
	}
}

func logFunc(_ context.Context, level grpc_logging.Level, msg string, fields ...any) {
	log.Printf("[%v] %s %v", level, msg, fields)
}
