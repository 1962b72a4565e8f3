// Package generation runs whole generation attempts until one validates
// and turns it into per player results
package generation

//go:generate mockgen -destination=mock/mock_service.go -package=generationmock github.com/KirkDiggler/rpg-rando/internal/orchestrators/generation Service

import (
	"context"
	"log/slog"

	"github.com/KirkDiggler/rpg-toolkit/events"

	"github.com/KirkDiggler/rpg-rando/internal/engine/attempt"
	"github.com/KirkDiggler/rpg-rando/internal/engine/items"
	"github.com/KirkDiggler/rpg-rando/internal/engine/prerando"
	"github.com/KirkDiggler/rpg-rando/internal/engine/progression"
	"github.com/KirkDiggler/rpg-rando/internal/engine/spoiler"
	"github.com/KirkDiggler/rpg-rando/internal/engine/transitions"
	"github.com/KirkDiggler/rpg-rando/internal/engine/validation"
	"github.com/KirkDiggler/rpg-rando/internal/engine/vanilla"
	"github.com/KirkDiggler/rpg-rando/internal/entities/rando"
	"github.com/KirkDiggler/rpg-rando/internal/errors"
	"github.com/KirkDiggler/rpg-rando/internal/logic"
	"github.com/KirkDiggler/rpg-rando/internal/pkg/clock"
	"github.com/KirkDiggler/rpg-rando/internal/pkg/idgen"
	"github.com/KirkDiggler/rpg-rando/internal/pkg/rng"
	"github.com/KirkDiggler/rpg-rando/internal/repositories/results"
)

// DefaultMaxAttempts bounds the retry loop when the config leaves it unset
const DefaultMaxAttempts = 100

// Shop prices are minShopCost plus shopCostStep times one less than a roll
// of a shopCostSteps sided die
const (
	minShopCost   = 100
	shopCostStep  = 10
	shopCostSteps = 41
)

// Service defines the interface for generation operations
type Service interface {
	// Generate retries attempts until one validates, stores the results
	// when a repository is configured and returns them
	Generate(ctx context.Context, input *GenerateInput) (*GenerateOutput, error)

	// GetResult loads a stored player result
	GetResult(ctx context.Context, input *GetResultInput) (*GetResultOutput, error)
}

// Config holds the dependencies for the generation orchestrator
type Config struct {
	World       *logic.Database
	EventBus    events.EventBus
	IDGenerator idgen.Generator
	Clock       clock.Clock

	// ResultsRepo is optional. Without it results are returned but not stored.
	ResultsRepo results.Repository

	MaxAttempts int
}

// Validate ensures all required dependencies are provided
func (c *Config) Validate() error {
	vb := errors.NewValidationBuilder()

	if c.World == nil {
		vb.RequiredField("World")
	}
	if c.EventBus == nil {
		vb.RequiredField("EventBus")
	}
	if c.IDGenerator == nil {
		vb.RequiredField("IDGenerator")
	}
	if c.Clock == nil {
		vb.RequiredField("Clock")
	}
	if c.MaxAttempts < 0 {
		vb.Field("MaxAttempts", "cannot be negative")
	}

	return vb.Build()
}

type orchestrator struct {
	world       *logic.Database
	eventBus    events.EventBus
	idGen       idgen.Generator
	clock       clock.Clock
	resultsRepo results.Repository
	maxAttempts int
}

// NewOrchestrator creates a new generation orchestrator with the provided dependencies
func NewOrchestrator(cfg *Config) (Service, error) {
	if cfg == nil {
		return nil, errors.InvalidArgument("config is required")
	}
	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid config")
	}

	maxAttempts := cfg.MaxAttempts
	if maxAttempts == 0 {
		maxAttempts = DefaultMaxAttempts
	}

	return &orchestrator{
		world:       cfg.World,
		eventBus:    cfg.EventBus,
		idGen:       cfg.IDGenerator,
		clock:       cfg.Clock,
		resultsRepo: cfg.ResultsRepo,
		maxAttempts: maxAttempts,
	}, nil
}

// committed is the state of the attempt that validated
type committed struct {
	ctx *attempt.Context
	im  *items.Manager
}

// Generate retries attempts on one random stream until one validates
func (o *orchestrator) Generate(ctx context.Context, input *GenerateInput) (*GenerateOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}
	if len(input.Settings) == 0 {
		return nil, errors.InvalidArgument("at least one player's settings are required")
	}
	if len(input.Nicknames) > len(input.Settings) {
		return nil, errors.InvalidArgumentf("%d nicknames for %d players", len(input.Nicknames), len(input.Settings))
	}

	randoID := o.idGen.Generate()
	src := rng.New(input.Settings[0].Seed)
	source := &generationEntity{id: randoID}

	slog.Info("starting generation",
		"rando_id", randoID,
		"players", len(input.Settings),
		"seed", src.Seed())

	for n := 1; ; n++ {
		if err := ctx.Err(); err != nil {
			return nil, errors.WrapWithCode(err, errors.CodeCanceled, "generation canceled").
				WithMeta("rando_id", randoID).
				WithMeta("attempts", n-1)
		}
		if n > o.maxAttempts {
			return nil, errors.ResourceExhaustedf("no valid rando after %d attempts", o.maxAttempts).
				WithMeta("rando_id", randoID)
		}

		run, err := o.attempt(src, input.Settings)
		if err == nil {
			return o.commit(ctx, source, n, input, run)
		}
		if !errors.IsBacktrack(err) {
			return nil, errors.Wrapf(err, "attempt %d failed", n)
		}

		slog.Warn("attempt failed, retrying",
			"rando_id", randoID,
			"attempt", n,
			"reason", errors.GetMessage(err),
			"rng_position", src.Position())
		o.publish(ctx, EventAttemptFailed, source, map[string]any{
			"attempt": n,
			"reason":  err.Error(),
		})
	}
}

// attempt runs every stage once on a fresh context
func (o *orchestrator) attempt(src *rng.Source, settings []rando.Settings) (*committed, error) {
	ctx, err := attempt.New(&attempt.Config{World: o.world, Rand: src, Settings: settings})
	if err != nil {
		return nil, errors.Wrap(err, "failed to create attempt")
	}

	if err := prerando.Run(ctx); err != nil {
		return nil, err
	}

	for p := range ctx.Players() {
		if !ctx.Settings[p].RandomizeTransitions() {
			continue
		}
		builder, err := transitions.New(&transitions.Config{Attempt: ctx, Player: p})
		if err != nil {
			return nil, errors.Wrapf(err, "player %d", p)
		}
		if err := builder.Run(); err != nil {
			return nil, errors.Wrapf(err, "transitions for player %d", p)
		}
	}

	im, err := items.New(&items.Config{
		Attempt:     ctx,
		Progression: progression.New(ctx),
		Vanilla:     vanilla.New(ctx),
	})
	if err != nil {
		return nil, errors.Wrap(err, "failed to create item manager")
	}

	im.FirstPass()
	im.SecondPass()
	im.PlaceDuplicates()

	if err := validation.Validate(ctx, im); err != nil {
		return nil, err
	}

	return &committed{ctx: ctx, im: im}, nil
}

// commit prices the shops, builds one result per player and stores them
func (o *orchestrator) commit(
	ctx context.Context, source *generationEntity, attempts int, input *GenerateInput, run *committed,
) (*GenerateOutput, error) {
	shopCosts, err := o.priceShops(run)
	if err != nil {
		return nil, err
	}
	variableCosts := make(map[rando.Symbol]int)
	for p, costs := range run.ctx.Costs {
		for loc, cost := range costs {
			variableCosts[rando.NewSymbol(p, loc)] = cost
		}
	}

	placements := run.im.ItemLocations()
	createdAt := o.clock.Now()

	out := make([]*rando.Result, run.ctx.Players())
	for p := range run.ctx.Players() {
		result := &rando.Result{
			RandoID:              source.id,
			PlayerID:             p,
			Players:              run.ctx.Players(),
			Seed:                 run.ctx.Rand.Seed(),
			Attempts:             attempts,
			Settings:             run.ctx.Settings[p],
			StartName:            run.ctx.StartNames[p],
			StartItems:           run.ctx.StartItems[p],
			ItemPlacements:       placements,
			LocationOrder:        run.im.LocationOrder(),
			TransitionPlacements: transitionPlacements(run.ctx, p),
			ShopCosts:            shopCosts,
			VariableCosts:        variableCosts,
			Nicknames:            input.Nicknames,
			CreatedAt:            createdAt,
		}
		if result.Settings.CreateSpoilerLog {
			result.Spoiler = spoiler.Build(o.world, result)
		}
		out[p] = result
	}

	if o.resultsRepo != nil {
		if _, err := o.resultsRepo.Save(ctx, results.SaveInput{Results: out}); err != nil {
			return nil, errors.Wrapf(err, "failed to save rando %s", source.id)
		}
	}

	slog.Info("generation finished",
		"rando_id", source.id,
		"attempts", attempts,
		"placements", len(placements))
	o.publish(ctx, EventGenerated, source, map[string]any{
		"attempts": attempts,
		"players":  len(out),
	})

	return &GenerateOutput{
		RandoID:  source.id,
		Attempts: attempts,
		Results:  out,
	}, nil
}

// priceShops draws a geo price for every item sitting in a shop, walking
// the shops in their stable order so the draws are reproducible
func (o *orchestrator) priceShops(run *committed) (map[rando.Symbol]int, error) {
	costs := make(map[rando.Symbol]int)
	shopItems := run.im.ShopItems()
	for _, shop := range run.im.Shops() {
		for _, item := range shopItems[shop] {
			roll, err := run.ctx.Rand.Roll(shopCostSteps)
			if err != nil {
				return nil, errors.Wrapf(err, "failed to price %s", item)
			}
			costs[item] = minShopCost + shopCostStep*(roll-1)
		}
	}
	return costs, nil
}

func transitionPlacements(ctx *attempt.Context, player int) map[string]string {
	out := make(map[string]string, len(ctx.RandomizedTransitions[player]))
	for _, name := range ctx.RandomizedTransitions[player] {
		if target, ok := ctx.Transitions[player][name]; ok {
			out[name] = target
		}
	}
	return out
}

// GetResult loads a stored player result
func (o *orchestrator) GetResult(ctx context.Context, input *GetResultInput) (*GetResultOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}
	if o.resultsRepo == nil {
		return nil, errors.FailedPrecondition("results are not stored by this orchestrator")
	}

	out, err := o.resultsRepo.Get(ctx, results.GetInput{RandoID: input.RandoID, PlayerID: input.PlayerID})
	if err != nil {
		return nil, errors.Wrapf(err, "failed to get result for player %d", input.PlayerID)
	}

	return &GetResultOutput{Result: out.Result}, nil
}

// publish reports progress on the event bus. Subscribers never fail a run.
func (o *orchestrator) publish(ctx context.Context, eventType string, source *generationEntity, data map[string]any) {
	event := events.NewGameEvent(eventType, source, nil)
	for key, value := range data {
		event.Context().Set(key, value)
	}
	if err := o.eventBus.Publish(ctx, event); err != nil {
		slog.Warn("failed to publish event",
			"type", eventType,
			"rando_id", source.id,
			"error", err)
	}
}
