package v1alpha1

import (
	"context"

	"github.com/KirkDiggler/rpg-rando/internal/errors"
	"github.com/KirkDiggler/rpg-rando/internal/orchestrators/delivery"
	"github.com/KirkDiggler/rpg-rando/internal/orchestrators/generation"
)

// GenerationHandlerConfig holds dependencies for the generation handler
type GenerationHandlerConfig struct {
	GenerationService generation.Service
}

// Validate ensures all required dependencies are present
func (c *GenerationHandlerConfig) Validate() error {
	if c.GenerationService == nil {
		return errors.InvalidArgument("generation service is required")
	}
	return nil
}

// GenerationHandler implements GenerationService
type GenerationHandler struct {
	generationService generation.Service
}

// NewGenerationHandler creates a new generation handler with the given configuration
func NewGenerationHandler(cfg *GenerationHandlerConfig) (*GenerationHandler, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &GenerationHandler{
		generationService: cfg.GenerationService,
	}, nil
}

var _ GenerationServiceServer = (*GenerationHandler)(nil)

// Generate runs a generation and returns every player's result
func (h *GenerationHandler) Generate(ctx context.Context, req *GenerateRequest) (*GenerateResponse, error) {
	if len(req.Settings) == 0 {
		return nil, errors.ToGRPCError(errors.InvalidArgument("settings are required"))
	}

	out, err := h.generationService.Generate(ctx, &generation.GenerateInput{
		Settings:  req.Settings,
		Nicknames: req.Nicknames,
	})
	if err != nil {
		return nil, errors.ToGRPCError(err)
	}

	return &GenerateResponse{
		RandoID:  out.RandoID,
		Attempts: out.Attempts,
		Results:  out.Results,
	}, nil
}

// GetResult loads a stored player result
func (h *GenerationHandler) GetResult(ctx context.Context, req *GetResultRequest) (*GetResultResponse, error) {
	if req.RandoID == "" {
		return nil, errors.ToGRPCError(errors.InvalidArgument("rando_id is required"))
	}

	out, err := h.generationService.GetResult(ctx, &generation.GetResultInput{
		RandoID:  req.RandoID,
		PlayerID: req.PlayerID,
	})
	if err != nil {
		return nil, errors.ToGRPCError(err)
	}

	return &GetResultResponse{Result: out.Result}, nil
}

// DeliveryHandlerConfig holds dependencies for the delivery handler
type DeliveryHandlerConfig struct {
	DeliveryService delivery.Service
}

// Validate ensures all required dependencies are present
func (c *DeliveryHandlerConfig) Validate() error {
	if c.DeliveryService == nil {
		return errors.InvalidArgument("delivery service is required")
	}
	return nil
}

// DeliveryHandler implements DeliveryService
type DeliveryHandler struct {
	deliveryService delivery.Service
}

// NewDeliveryHandler creates a new delivery handler with the given configuration
func NewDeliveryHandler(cfg *DeliveryHandlerConfig) (*DeliveryHandler, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &DeliveryHandler{
		deliveryService: cfg.DeliveryService,
	}, nil
}

var _ DeliveryServiceServer = (*DeliveryHandler)(nil)

// Send reports a checked location and routes foreign items to their owners
func (h *DeliveryHandler) Send(ctx context.Context, req *SendRequest) (*SendResponse, error) {
	if err := validatePlayer(req.RandoID, req.PlayerID); err != nil {
		return nil, err
	}
	if req.Location == "" {
		return nil, errors.ToGRPCError(errors.InvalidArgument("location is required"))
	}

	out, err := h.deliveryService.Send(ctx, &delivery.SendInput{
		RandoID:  req.RandoID,
		PlayerID: req.PlayerID,
		Location: req.Location,
		Item:     req.Item,
	})
	if err != nil {
		return nil, errors.ToGRPCError(err)
	}

	resp := &SendResponse{Found: out.Found}
	for _, sent := range out.Sent {
		resp.Sent = append(resp.Sent, SentItem{
			Owner:    sent.Owner,
			Delivery: sent.Delivery,
			InFlight: sent.InFlight,
		})
	}
	return resp, nil
}

// Join marks a player online and returns what is in flight for them
func (h *DeliveryHandler) Join(ctx context.Context, req *PlayerRequest) (*JoinResponse, error) {
	if err := validatePlayer(req.RandoID, req.PlayerID); err != nil {
		return nil, err
	}

	out, err := h.deliveryService.Join(ctx, &delivery.JoinInput{RandoID: req.RandoID, PlayerID: req.PlayerID})
	if err != nil {
		return nil, errors.ToGRPCError(err)
	}

	return &JoinResponse{Moved: out.Moved, InFlight: out.InFlight}, nil
}

// Leave marks a player offline
func (h *DeliveryHandler) Leave(ctx context.Context, req *PlayerRequest) (*LeaveResponse, error) {
	if err := validatePlayer(req.RandoID, req.PlayerID); err != nil {
		return nil, err
	}

	if _, err := h.deliveryService.Leave(ctx, &delivery.LeaveInput{RandoID: req.RandoID, PlayerID: req.PlayerID}); err != nil {
		return nil, errors.ToGRPCError(err)
	}

	return &LeaveResponse{}, nil
}

// Pending lists a player's outstanding deliveries
func (h *DeliveryHandler) Pending(ctx context.Context, req *PlayerRequest) (*PendingResponse, error) {
	if err := validatePlayer(req.RandoID, req.PlayerID); err != nil {
		return nil, err
	}

	out, err := h.deliveryService.Pending(ctx, &delivery.PendingInput{RandoID: req.RandoID, PlayerID: req.PlayerID})
	if err != nil {
		return nil, errors.ToGRPCError(err)
	}

	return &PendingResponse{InFlight: out.InFlight, Queued: out.Queued}, nil
}

// Confirm acknowledges a received item
func (h *DeliveryHandler) Confirm(ctx context.Context, req *ConfirmRequest) (*ConfirmResponse, error) {
	if err := validatePlayer(req.RandoID, req.PlayerID); err != nil {
		return nil, err
	}
	if req.Item == "" {
		return nil, errors.ToGRPCError(errors.InvalidArgument("item is required"))
	}

	out, err := h.deliveryService.Confirm(ctx, &delivery.ConfirmInput{
		RandoID:  req.RandoID,
		PlayerID: req.PlayerID,
		Item:     req.Item,
		From:     req.From,
	})
	if err != nil {
		return nil, errors.ToGRPCError(err)
	}

	return &ConfirmResponse{Removed: out.Removed}, nil
}

func validatePlayer(randoID string, player int) error {
	if randoID == "" {
		return errors.ToGRPCError(errors.InvalidArgument("rando_id is required"))
	}
	if player < 0 {
		return errors.ToGRPCError(errors.InvalidArgumentf("player_id %d is out of range", player))
	}
	return nil
}
