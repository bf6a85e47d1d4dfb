package item

import (
	"context"
	"encoding/json"
	"strconv"

	redis "github.com/redis/go-redis/v9"

	"github.com/mimihimesama/item-simulator/internal/entities"
	"github.com/mimihimesama/item-simulator/internal/errors"
	"github.com/mimihimesama/item-simulator/internal/pkg/clock"
	redisclient "github.com/mimihimesama/item-simulator/internal/redis"
)

const (
	itemKeyPrefix = "item:"
	codeIndexKey  = "items:codes"

	errItemNil       = "item cannot be nil"
	errItemNameEmpty = "item name cannot be empty"
)

type redisRepository struct {
	client redisclient.Client
	clock  clock.Clock
}

// RedisConfig contains configuration for the Redis item repository.
type RedisConfig struct {
	Client redisclient.Client
	Clock  clock.Clock
}

// Validate validates the RedisConfig.
func (cfg *RedisConfig) Validate() error {
	if cfg == nil {
		return errors.InvalidArgument("config cannot be nil")
	}
	if cfg.Client == nil {
		return errors.InvalidArgument("client cannot be nil")
	}
	return nil
}

// NewRedis creates a new Redis-backed item repository
func NewRedis(cfg *RedisConfig) (Repository, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	c := cfg.Clock
	if c == nil {
		c = clock.New()
	}

	return &redisRepository{
		client: cfg.Client,
		clock:  c,
	}, nil
}

func itemKey(code int64) string {
	return itemKeyPrefix + strconv.FormatInt(code, 10)
}

func (r *redisRepository) Create(ctx context.Context, input CreateInput) (*CreateOutput, error) {
	if input.Item == nil {
		return nil, errors.InvalidArgument(errItemNil)
	}
	if input.Item.Name == "" {
		return nil, errors.InvalidArgument(errItemNameEmpty)
	}

	it := *input.Item
	now := r.clock.Now().Unix()
	it.CreatedAt = now
	it.UpdatedAt = now

	data, err := json.Marshal(&it)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to marshal item data")
	}

	// SETNX is the authoritative code-uniqueness check.
	created, err := r.client.SetNX(ctx, itemKey(it.Code), data, 0).Result()
	if err != nil {
		return nil, errors.Wrapf(err, "failed to create item")
	}
	if !created {
		return nil, errors.AlreadyExistsf("item with code %d already exists", it.Code)
	}

	if err := r.client.ZAdd(ctx, codeIndexKey, redis.Z{
		Score:  float64(it.Code),
		Member: it.Code,
	}).Err(); err != nil {
		return nil, errors.Wrapf(err, "failed to index item code")
	}

	return &CreateOutput{Item: &it}, nil
}

func (r *redisRepository) Get(ctx context.Context, input GetInput) (*GetOutput, error) {
	result, err := r.client.Get(ctx, itemKey(input.Code)).Result()
	if err != nil {
		if err == redis.Nil {
			return nil, errors.NotFoundf("item with code %d not found", input.Code)
		}
		return nil, errors.Wrapf(err, "failed to get item")
	}

	var it entities.Item
	if err := json.Unmarshal([]byte(result), &it); err != nil {
		return nil, errors.Wrapf(err, "failed to unmarshal item data")
	}

	return &GetOutput{Item: &it}, nil
}

func (r *redisRepository) Update(ctx context.Context, input UpdateInput) (*UpdateOutput, error) {
	if input.Item == nil {
		return nil, errors.InvalidArgument(errItemNil)
	}
	if input.Item.Name == "" {
		return nil, errors.InvalidArgument(errItemNameEmpty)
	}

	key := itemKey(input.Item.Code)
	existing, err := r.Get(ctx, GetInput{Code: input.Item.Code})
	if err != nil {
		return nil, err
	}

	it := *input.Item
	it.CreatedAt = existing.Item.CreatedAt
	it.UpdatedAt = r.clock.Now().Unix()

	data, err := json.Marshal(&it)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to marshal item data")
	}

	if err := r.client.Set(ctx, key, data, 0).Err(); err != nil {
		return nil, errors.Wrapf(err, "failed to update item %d", it.Code)
	}

	return &UpdateOutput{Item: &it}, nil
}

func (r *redisRepository) List(ctx context.Context, _ ListInput) (*ListOutput, error) {
	codes, err := r.client.ZRange(ctx, codeIndexKey, 0, -1).Result()
	if err != nil {
		return nil, errors.Wrapf(err, "failed to read item code index")
	}

	items := make([]*entities.Item, 0, len(codes))
	for _, codeStr := range codes {
		code, err := strconv.ParseInt(codeStr, 10, 64)
		if err != nil {
			return nil, errors.Wrapf(err, "corrupt code index entry %q", codeStr)
		}

		getOutput, err := r.Get(ctx, GetInput{Code: code})
		if err != nil {
			return nil, errors.Wrapf(err, "failed to get item %d", code)
		}
		items = append(items, getOutput.Item)
	}

	return &ListOutput{Items: items}, nil
}
