package deliveries

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"time"

	redis "github.com/redis/go-redis/v9"

	"github.com/KirkDiggler/rpg-rando/internal/entities/rando"
	"github.com/KirkDiggler/rpg-rando/internal/errors"
	redisclient "github.com/KirkDiggler/rpg-rando/internal/redis"
)

const (
	// Key patterns:
	//   rando:{rando_id}:online             set of online players
	//   rando:{rando_id}:player:{p}:queued   list of offline deliveries
	//   rando:{rando_id}:player:{p}:inflight list of unconfirmed deliveries
	keyPrefix  = "rando:"
	defaultTTL = 7 * 24 * time.Hour

	errRandoIDEmpty = "rando ID cannot be empty"
)

// enqueueScript pushes onto the in flight list when the owner is online and
// onto the queued list otherwise. Returns 1 for in flight.
var enqueueScript = redis.NewScript(`
local target = KEYS[3]
local inflight = 0
if redis.call("SISMEMBER", KEYS[1], ARGV[1]) == 1 then
	target = KEYS[2]
	inflight = 1
end
redis.call("RPUSH", target, ARGV[2])
redis.call("PEXPIRE", target, ARGV[3])
return inflight
`)

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

// NewRedisRepository creates a new Redis repository for deliveries
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

// Enqueue adds a delivery for the owner
func (r *redisRepository) Enqueue(ctx context.Context, input EnqueueInput) (*EnqueueOutput, error) {
	if err := validatePlayer(input.RandoID, input.PlayerID); err != nil {
		return nil, err
	}

	data, err := json.Marshal(input.Delivery)
	if err != nil {
		return nil, errors.Wrap(err, "failed to marshal delivery")
	}

	keys := []string{
		onlineKey(input.RandoID),
		inFlightKey(input.RandoID, input.PlayerID),
		queuedKey(input.RandoID, input.PlayerID),
	}
	inFlight, err := enqueueScript.Run(ctx, r.client, keys,
		strconv.Itoa(input.PlayerID), string(data), r.ttl.Milliseconds()).Int()
	if err != nil {
		return nil, errors.Wrapf(err, "failed to enqueue delivery for player %d", input.PlayerID)
	}

	return &EnqueueOutput{InFlight: inFlight == 1}, nil
}

// SetOnline marks a player online or offline
func (r *redisRepository) SetOnline(ctx context.Context, input SetOnlineInput) (*SetOnlineOutput, error) {
	if err := validatePlayer(input.RandoID, input.PlayerID); err != nil {
		return nil, err
	}

	key := onlineKey(input.RandoID)
	member := strconv.Itoa(input.PlayerID)

	var err error
	if input.Online {
		pipe := r.client.TxPipeline()
		pipe.SAdd(ctx, key, member)
		pipe.Expire(ctx, key, r.ttl)
		_, err = pipe.Exec(ctx)
	} else {
		err = r.client.SRem(ctx, key, member).Err()
	}
	if err != nil {
		return nil, errors.Wrapf(err, "failed to update presence of player %d", input.PlayerID)
	}

	return &SetOnlineOutput{}, nil
}

// Flush moves queued entries into the in flight list one at a time. Each
// move is atomic so an entry is never in both lists or neither.
func (r *redisRepository) Flush(ctx context.Context, input FlushInput) (*FlushOutput, error) {
	if err := validatePlayer(input.RandoID, input.PlayerID); err != nil {
		return nil, err
	}

	src := queuedKey(input.RandoID, input.PlayerID)
	dst := inFlightKey(input.RandoID, input.PlayerID)

	moved := 0
	for {
		err := r.client.LMove(ctx, src, dst, "LEFT", "RIGHT").Err()
		if err == redis.Nil {
			break
		}
		if err != nil {
			return nil, errors.Wrapf(err, "failed to flush deliveries for player %d", input.PlayerID)
		}
		moved++
	}

	if moved > 0 {
		if err := r.client.Expire(ctx, dst, r.ttl).Err(); err != nil {
			return nil, errors.Wrapf(err, "failed to refresh deliveries for player %d", input.PlayerID)
		}
	}

	return &FlushOutput{Moved: moved}, nil
}

// Pending lists in flight then queued entries
func (r *redisRepository) Pending(ctx context.Context, input PendingInput) (*PendingOutput, error) {
	if err := validatePlayer(input.RandoID, input.PlayerID); err != nil {
		return nil, err
	}

	pipe := r.client.Pipeline()
	inFlightCmd := pipe.LRange(ctx, inFlightKey(input.RandoID, input.PlayerID), 0, -1)
	queuedCmd := pipe.LRange(ctx, queuedKey(input.RandoID, input.PlayerID), 0, -1)
	if _, err := pipe.Exec(ctx); err != nil {
		return nil, errors.Wrapf(err, "failed to list deliveries for player %d", input.PlayerID)
	}

	inFlight, err := decode(inFlightCmd.Val())
	if err != nil {
		return nil, err
	}
	queued, err := decode(queuedCmd.Val())
	if err != nil {
		return nil, err
	}

	return &PendingOutput{InFlight: inFlight, Queued: queued}, nil
}

// Confirm removes every in flight entry equal to the delivery
func (r *redisRepository) Confirm(ctx context.Context, input ConfirmInput) (*ConfirmOutput, error) {
	if err := validatePlayer(input.RandoID, input.PlayerID); err != nil {
		return nil, err
	}

	data, err := json.Marshal(input.Delivery)
	if err != nil {
		return nil, errors.Wrap(err, "failed to marshal delivery")
	}

	removed, err := r.client.LRem(ctx, inFlightKey(input.RandoID, input.PlayerID), 0, string(data)).Result()
	if err != nil {
		return nil, errors.Wrapf(err, "failed to confirm delivery for player %d", input.PlayerID)
	}

	return &ConfirmOutput{Removed: int(removed)}, nil
}

func decode(raw []string) ([]rando.Delivery, error) {
	out := make([]rando.Delivery, 0, len(raw))
	for _, entry := range raw {
		var d rando.Delivery
		if err := json.Unmarshal([]byte(entry), &d); err != nil {
			return nil, errors.Wrap(err, "failed to unmarshal delivery")
		}
		out = append(out, d)
	}
	return out, nil
}

func validatePlayer(randoID string, player int) error {
	if randoID == "" {
		return errors.InvalidArgument(errRandoIDEmpty)
	}
	if player < 0 {
		return errors.InvalidArgumentf("player %d is out of range", player)
	}
	return nil
}

func onlineKey(randoID string) string {
	return fmt.Sprintf("%s%s:online", keyPrefix, randoID)
}

func queuedKey(randoID string, player int) string {
	return fmt.Sprintf("%s%s:player:%d:queued", keyPrefix, randoID, player)
}

func inFlightKey(randoID string, player int) string {
	return fmt.Sprintf("%s%s:player:%d:inflight", keyPrefix, randoID, player)
}
