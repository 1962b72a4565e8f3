// Package delivery routes items found in one player's world to the player
// who owns them
package delivery

//go:generate mockgen -destination=mock/mock_service.go -package=deliverymock github.com/KirkDiggler/rpg-rando/internal/orchestrators/delivery Service

import (
	"context"
	"log/slog"

	"github.com/KirkDiggler/rpg-rando/internal/entities/rando"
	"github.com/KirkDiggler/rpg-rando/internal/errors"
	"github.com/KirkDiggler/rpg-rando/internal/repositories/deliveries"
	"github.com/KirkDiggler/rpg-rando/internal/repositories/results"
)

// Service defines the interface for multiworld delivery
type Service interface {
	Send(ctx context.Context, input *SendInput) (*SendOutput, error)
	Join(ctx context.Context, input *JoinInput) (*JoinOutput, error)
	Leave(ctx context.Context, input *LeaveInput) (*LeaveOutput, error)
	Pending(ctx context.Context, input *PendingInput) (*PendingOutput, error)
	Confirm(ctx context.Context, input *ConfirmInput) (*ConfirmOutput, error)
}

// Config holds the dependencies for the delivery orchestrator
type Config struct {
	ResultsRepo    results.Repository
	DeliveriesRepo deliveries.Repository
}

// Validate ensures all required dependencies are provided
func (c *Config) Validate() error {
	vb := errors.NewValidationBuilder()

	if c.ResultsRepo == nil {
		vb.RequiredField("ResultsRepo")
	}
	if c.DeliveriesRepo == nil {
		vb.RequiredField("DeliveriesRepo")
	}

	return vb.Build()
}

type orchestrator struct {
	resultsRepo    results.Repository
	deliveriesRepo deliveries.Repository
}

// NewOrchestrator creates a new delivery orchestrator with the provided dependencies
func NewOrchestrator(cfg *Config) (Service, error) {
	if cfg == nil {
		return nil, errors.InvalidArgument("config is required")
	}
	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid config")
	}

	return &orchestrator{
		resultsRepo:    cfg.ResultsRepo,
		deliveriesRepo: cfg.DeliveriesRepo,
	}, nil
}

// Send resolves the placements at the sender's location and queues every
// item owned by another player for that player. The sender's own items
// are reported but not queued.
func (o *orchestrator) Send(ctx context.Context, input *SendInput) (*SendOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}
	if input.Location == "" {
		return nil, errors.InvalidArgument("location is required")
	}

	result, err := o.result(ctx, input.RandoID, input.PlayerID)
	if err != nil {
		return nil, err
	}

	location := rando.NewSymbol(input.PlayerID, input.Location)
	found := result.ItemsAt(location)
	if input.Item != "" {
		found = filterItem(found, input.Item)
	}
	if len(found) == 0 {
		return nil, errors.NotFoundf("nothing placed at %s", location).
			WithMeta("rando_id", input.RandoID)
	}

	out := &SendOutput{Found: found}
	for _, item := range found {
		if item.Player == input.PlayerID {
			continue
		}
		if item.Player >= result.Players {
			return nil, errors.Internalf("item %s belongs to no player of rando %s", item, input.RandoID)
		}

		d := rando.Delivery{Item: item, From: input.PlayerID}
		queued, err := o.deliveriesRepo.Enqueue(ctx, deliveries.EnqueueInput{
			RandoID:  input.RandoID,
			PlayerID: item.Player,
			Delivery: d,
		})
		if err != nil {
			return nil, errors.Wrapf(err, "failed to send %s", item)
		}

		slog.Info("item sent",
			"rando_id", input.RandoID,
			"item", item.String(),
			"from", input.PlayerID,
			"in_flight", queued.InFlight)
		out.Sent = append(out.Sent, SentItem{Owner: item.Player, Delivery: d, InFlight: queued.InFlight})
	}

	return out, nil
}

func filterItem(items []rando.Symbol, name string) []rando.Symbol {
	var out []rando.Symbol
	for _, item := range items {
		if item.Name == name {
			out = append(out, item)
		}
	}
	return out
}

// Join marks the player online and moves their offline queue into flight
func (o *orchestrator) Join(ctx context.Context, input *JoinInput) (*JoinOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}
	if _, err := o.result(ctx, input.RandoID, input.PlayerID); err != nil {
		return nil, err
	}

	if _, err := o.deliveriesRepo.SetOnline(ctx, deliveries.SetOnlineInput{
		RandoID:  input.RandoID,
		PlayerID: input.PlayerID,
		Online:   true,
	}); err != nil {
		return nil, errors.Wrapf(err, "failed to join player %d", input.PlayerID)
	}

	flushed, err := o.deliveriesRepo.Flush(ctx, deliveries.FlushInput{RandoID: input.RandoID, PlayerID: input.PlayerID})
	if err != nil {
		return nil, errors.Wrapf(err, "failed to flush player %d", input.PlayerID)
	}

	pending, err := o.deliveriesRepo.Pending(ctx, deliveries.PendingInput{RandoID: input.RandoID, PlayerID: input.PlayerID})
	if err != nil {
		return nil, errors.Wrapf(err, "failed to list deliveries for player %d", input.PlayerID)
	}

	slog.Info("player joined",
		"rando_id", input.RandoID,
		"player", input.PlayerID,
		"moved", flushed.Moved,
		"in_flight", len(pending.InFlight))

	return &JoinOutput{Moved: flushed.Moved, InFlight: pending.InFlight}, nil
}

// Leave marks the player offline. In flight entries stay in flight.
func (o *orchestrator) Leave(ctx context.Context, input *LeaveInput) (*LeaveOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}

	if _, err := o.deliveriesRepo.SetOnline(ctx, deliveries.SetOnlineInput{
		RandoID:  input.RandoID,
		PlayerID: input.PlayerID,
		Online:   false,
	}); err != nil {
		return nil, errors.Wrapf(err, "failed to remove player %d", input.PlayerID)
	}

	return &LeaveOutput{}, nil
}

// Pending lists in flight then queued entries
func (o *orchestrator) Pending(ctx context.Context, input *PendingInput) (*PendingOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}

	out, err := o.deliveriesRepo.Pending(ctx, deliveries.PendingInput{RandoID: input.RandoID, PlayerID: input.PlayerID})
	if err != nil {
		return nil, errors.Wrapf(err, "failed to list deliveries for player %d", input.PlayerID)
	}

	return &PendingOutput{InFlight: out.InFlight, Queued: out.Queued}, nil
}

// Confirm clears every in flight entry of the item from the sender
func (o *orchestrator) Confirm(ctx context.Context, input *ConfirmInput) (*ConfirmOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}
	if input.Item == "" {
		return nil, errors.InvalidArgument("item is required")
	}

	out, err := o.deliveriesRepo.Confirm(ctx, deliveries.ConfirmInput{
		RandoID:  input.RandoID,
		PlayerID: input.PlayerID,
		Delivery: rando.Delivery{Item: rando.NewSymbol(input.PlayerID, input.Item), From: input.From},
	})
	if err != nil {
		return nil, errors.Wrapf(err, "failed to confirm %s", input.Item)
	}

	return &ConfirmOutput{Removed: out.Removed}, nil
}

func (o *orchestrator) result(ctx context.Context, randoID string, player int) (*rando.Result, error) {
	out, err := o.resultsRepo.Get(ctx, results.GetInput{RandoID: randoID, PlayerID: player})
	if err != nil {
		return nil, errors.Wrapf(err, "failed to load player %d", player)
	}
	return out.Result, nil
}
