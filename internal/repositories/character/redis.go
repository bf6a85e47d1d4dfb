package character

import (
	"context"
	"encoding/json"
	"log/slog"
	"strconv"

	redis "github.com/redis/go-redis/v9"

	"github.com/mimihimesama/item-simulator/internal/entities"
	"github.com/mimihimesama/item-simulator/internal/errors"
	"github.com/mimihimesama/item-simulator/internal/pkg/clock"
	redisclient "github.com/mimihimesama/item-simulator/internal/redis"
)

const (
	characterKeyPrefix = "character:"
	nameIndexPrefix    = "character:name:"
	idIndexKey         = "characters:ids"

	// Error messages
	errCharacterNil       = "character cannot be nil"
	errCharacterIDInvalid = "character id must be positive"
	errCharacterNameEmpty = "character name cannot be empty"
)

type redisRepository struct {
	client redisclient.Client
	clock  clock.Clock
}

// RedisConfig contains configuration for the Redis character repository.
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

// NewRedis creates a new Redis-backed character repository
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

func characterKey(id int64) string {
	return characterKeyPrefix + strconv.FormatInt(id, 10)
}

func nameKey(name string) string {
	return nameIndexPrefix + name
}

func (r *redisRepository) Create(ctx context.Context, input CreateInput) (*CreateOutput, error) {
	if input.Character == nil {
		return nil, errors.InvalidArgument(errCharacterNil)
	}
	if input.Character.ID <= 0 {
		return nil, errors.InvalidArgument(errCharacterIDInvalid)
	}
	if input.Character.Name == "" {
		return nil, errors.InvalidArgument(errCharacterNameEmpty)
	}

	char := *input.Character
	now := r.clock.Now().Unix()
	char.CreatedAt = now
	char.UpdatedAt = now
	if char.Version == 0 {
		char.Version = 1
	}

	data, err := json.Marshal(&char)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to marshal character data")
	}

	// The name index is the authoritative uniqueness check: SETNX either
	// claims the name or reports it taken.
	claimed, err := r.client.SetNX(ctx, nameKey(char.Name), char.ID, 0).Result()
	if err != nil {
		return nil, errors.Wrapf(err, "failed to claim character name")
	}
	if !claimed {
		return nil, errors.AlreadyExistsf("character name %q is already in use", char.Name)
	}

	created, err := r.client.SetNX(ctx, characterKey(char.ID), data, 0).Result()
	if err != nil {
		r.client.Del(ctx, nameKey(char.Name))
		return nil, errors.Wrapf(err, "failed to create character")
	}
	if !created {
		// A concurrent creation won the advisory id. Release the name and
		// let the caller retry with a fresh allocation.
		r.client.Del(ctx, nameKey(char.Name))
		return nil, errors.AlreadyExistsf("character with id %d already exists", char.ID)
	}

	if err := r.client.ZAdd(ctx, idIndexKey, redis.Z{
		Score:  float64(char.ID),
		Member: char.ID,
	}).Err(); err != nil {
		return nil, errors.Wrapf(err, "failed to index character id")
	}

	return &CreateOutput{Character: &char}, nil
}

func (r *redisRepository) Get(ctx context.Context, input GetInput) (*GetOutput, error) {
	if input.ID <= 0 {
		return nil, errors.InvalidArgument(errCharacterIDInvalid)
	}

	result, err := r.client.Get(ctx, characterKey(input.ID)).Result()
	if err != nil {
		if err == redis.Nil {
			return nil, errors.NotFoundf("character with id %d not found", input.ID)
		}
		return nil, errors.Wrapf(err, "failed to get character")
	}

	var char entities.Character
	if err := json.Unmarshal([]byte(result), &char); err != nil {
		return nil, errors.Wrapf(err, "failed to unmarshal character data")
	}

	return &GetOutput{Character: &char}, nil
}

func (r *redisRepository) GetByName(ctx context.Context, input GetByNameInput) (*GetByNameOutput, error) {
	if input.Name == "" {
		return nil, errors.InvalidArgument(errCharacterNameEmpty)
	}

	idStr, err := r.client.Get(ctx, nameKey(input.Name)).Result()
	if err != nil {
		if err == redis.Nil {
			return nil, errors.NotFoundf("character named %q not found", input.Name)
		}
		return nil, errors.Wrapf(err, "failed to resolve character name")
	}

	id, err := strconv.ParseInt(idStr, 10, 64)
	if err != nil {
		return nil, errors.Wrapf(err, "corrupt name index entry for %q", input.Name)
	}

	out, err := r.Get(ctx, GetInput{ID: id})
	if err != nil {
		return nil, err
	}
	return &GetByNameOutput{Character: out.Character}, nil
}

func (r *redisRepository) Update(ctx context.Context, input UpdateInput) (*UpdateOutput, error) {
	if input.Character == nil {
		return nil, errors.InvalidArgument(errCharacterNil)
	}
	if input.Character.ID <= 0 {
		return nil, errors.InvalidArgument(errCharacterIDInvalid)
	}

	key := characterKey(input.Character.ID)
	updated := *input.Character
	updated.Version = input.Character.Version + 1
	updated.UpdatedAt = r.clock.Now().Unix()

	txErr := r.client.Watch(ctx, func(tx *redis.Tx) error {
		current, err := tx.Get(ctx, key).Result()
		if err != nil {
			if err == redis.Nil {
				return errors.NotFoundf("character with id %d not found", input.Character.ID)
			}
			return errors.Wrapf(err, "failed to get character")
		}

		var stored entities.Character
		if err := json.Unmarshal([]byte(current), &stored); err != nil {
			return errors.Wrapf(err, "failed to unmarshal character data")
		}

		if stored.Version != input.Character.Version {
			return errors.Abortedf(
				"character %d was modified concurrently (stored version %d, expected %d)",
				input.Character.ID, stored.Version, input.Character.Version)
		}

		data, err := json.Marshal(&updated)
		if err != nil {
			return errors.Wrapf(err, "failed to marshal character data")
		}

		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			pipe.Set(ctx, key, data, 0)
			return nil
		})
		return err
	}, key)

	if txErr != nil {
		if txErr == redis.TxFailedErr {
			return nil, errors.Abortedf("character %d was modified concurrently", input.Character.ID)
		}
		return nil, errors.Wrapf(txErr, "failed to update character %d", input.Character.ID)
	}

	return &UpdateOutput{Character: &updated}, nil
}

func (r *redisRepository) Delete(ctx context.Context, input DeleteInput) (*DeleteOutput, error) {
	getOutput, err := r.Get(ctx, GetInput(input))
	if err != nil {
		return nil, err
	}
	char := getOutput.Character

	pipe := r.client.TxPipeline()
	pipe.Del(ctx, characterKey(input.ID))
	pipe.Del(ctx, nameKey(char.Name))
	pipe.ZRem(ctx, idIndexKey, input.ID)

	if _, err := pipe.Exec(ctx); err != nil {
		return nil, errors.Wrapf(err, "failed to delete character %d", input.ID)
	}

	return &DeleteOutput{Character: char}, nil
}

func (r *redisRepository) List(ctx context.Context, _ ListInput) (*ListOutput, error) {
	// The id index is a sorted set scored by id, so the range comes back
	// in ascending id order.
	ids, err := r.client.ZRange(ctx, idIndexKey, 0, -1).Result()
	if err != nil {
		return nil, errors.Wrapf(err, "failed to read character id index")
	}

	characters := make([]*entities.Character, 0, len(ids))
	for _, idStr := range ids {
		id, err := strconv.ParseInt(idStr, 10, 64)
		if err != nil {
			return nil, errors.Wrapf(err, "corrupt id index entry %q", idStr)
		}

		getOutput, err := r.Get(ctx, GetInput{ID: id})
		if err != nil {
			if errors.IsNotFound(err) {
				slog.WarnContext(ctx, "character missing for indexed id, cleaning up index",
					"character_id", id)
				r.client.ZRem(ctx, idIndexKey, id)
				continue
			}
			return nil, err
		}
		characters = append(characters, getOutput.Character)
	}

	return &ListOutput{Characters: characters}, nil
}

func (r *redisRepository) MaxAllocatedID(ctx context.Context) (int64, error) {
	top, err := r.client.ZRevRangeWithScores(ctx, idIndexKey, 0, 0).Result()
	if err != nil {
		return 0, errors.Wrapf(err, "failed to read max character id")
	}
	if len(top) == 0 {
		return 0, nil
	}
	return int64(top[0].Score), nil
}
