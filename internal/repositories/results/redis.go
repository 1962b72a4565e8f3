package results

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	redis "github.com/redis/go-redis/v9"

	"github.com/KirkDiggler/rpg-rando/internal/entities/rando"
	"github.com/KirkDiggler/rpg-rando/internal/errors"
	redisclient "github.com/KirkDiggler/rpg-rando/internal/redis"
)

const (
	// Key pattern: rando:{rando_id}:result:{player}
	resultKeyPrefix = "rando:"
	defaultTTL      = 7 * 24 * time.Hour

	errRandoIDEmpty = "rando ID cannot be empty"
)

// Config holds the configuration for the Redis repository
type Config struct {
	Client redisclient.Client
	TTL    time.Duration
}

// Validate ensures all required dependencies are provided
func (c *Config) Validate() error {
	vb := errors.NewValidationBuilder()

	if c.Client == nil {
		vb.RequiredField("Client")
	}
	if c.TTL < 0 {
		vb.Field("TTL", "cannot be negative")
	}

	return vb.Build()
}

type redisRepository struct {
	client redisclient.Client
	ttl    time.Duration
}

// NewRedisRepository creates a new Redis repository for results
func NewRedisRepository(cfg *Config) (Repository, error) {
	if cfg == nil {
		return nil, errors.InvalidArgument("config is required")
	}
	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid config")
	}

	ttl := cfg.TTL
	if ttl == 0 {
		ttl = defaultTTL
	}

	return &redisRepository{
		client: cfg.Client,
		ttl:    ttl,
	}, nil
}

// Ensure redisRepository implements Repository
var _ Repository = (*redisRepository)(nil)

// Save stores every player's result in one transaction
func (r *redisRepository) Save(ctx context.Context, input SaveInput) (*SaveOutput, error) {
	if len(input.Results) == 0 {
		return nil, errors.InvalidArgument("results cannot be empty")
	}

	randoID := input.Results[0].RandoID
	if randoID == "" {
		return nil, errors.InvalidArgument(errRandoIDEmpty)
	}

	pipe := r.client.TxPipeline()
	for _, result := range input.Results {
		if result == nil {
			return nil, errors.InvalidArgument("result cannot be nil")
		}
		if result.RandoID != randoID {
			return nil, errors.InvalidArgumentf("result for player %d belongs to rando %s, not %s",
				result.PlayerID, result.RandoID, randoID)
		}

		data, err := json.Marshal(result)
		if err != nil {
			return nil, errors.Wrapf(err, "failed to marshal result for player %d", result.PlayerID)
		}
		pipe.Set(ctx, buildKey(randoID, result.PlayerID), data, r.ttl)
	}

	if _, err := pipe.Exec(ctx); err != nil {
		return nil, errors.Wrapf(err, "failed to store rando %s", randoID)
	}

	return &SaveOutput{RandoID: randoID}, nil
}

// Get retrieves one player's result
func (r *redisRepository) Get(ctx context.Context, input GetInput) (*GetOutput, error) {
	if input.RandoID == "" {
		return nil, errors.InvalidArgument(errRandoIDEmpty)
	}
	if input.PlayerID < 0 {
		return nil, errors.InvalidArgumentf("player %d is out of range", input.PlayerID)
	}

	data, err := r.client.Get(ctx, buildKey(input.RandoID, input.PlayerID)).Bytes()
	if err != nil {
		if err == redis.Nil {
			return nil, errors.NotFoundf("rando %s has no result for player %d", input.RandoID, input.PlayerID).
				WithMeta("rando_id", input.RandoID)
		}
		return nil, errors.Wrapf(err, "failed to get rando %s", input.RandoID)
	}

	var result rando.Result
	if err := json.Unmarshal(data, &result); err != nil {
		return nil, errors.Wrapf(err, "failed to unmarshal rando %s", input.RandoID)
	}

	return &GetOutput{Result: &result}, nil
}

func buildKey(randoID string, player int) string {
	return fmt.Sprintf("%s%s:result:%d", resultKeyPrefix, randoID, player)
}
