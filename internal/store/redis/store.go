package redis

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"

	"github.com/davidbz/chargeflow/internal/config"
	"github.com/davidbz/chargeflow/internal/domain"
	"github.com/davidbz/chargeflow/internal/observability"
)

const (
	fieldData    = "data"
	fieldModel   = "charge_model"
	indexKeyName = "index"
)

// Store implements domain.ChargeStore on Redis. Each charge is a hash under
// <prefix><id>; a sorted set under <prefix>index orders charges by creation.
type Store struct {
	client *redis.Client
	prefix string
}

// NewClient builds a Redis client from store settings.
func NewClient(cfg *config.StoreConfig) *redis.Client {
	return redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
		DB:       cfg.RedisDB,
	})
}

// NewStore creates a new Redis charge store and checks connectivity.
func NewStore(ctx context.Context, client *redis.Client, prefix string) (*Store, error) {
	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to redis: %w", err)
	}

	return &Store{
		client: client,
		prefix: prefix,
	}, nil
}

func (s *Store) key(id string) string {
	return s.prefix + id
}

func (s *Store) indexKey() string {
	return s.prefix + indexKeyName
}

// Save inserts or replaces a charge. Replacing keeps the original position
// in the creation index.
func (s *Store) Save(ctx context.Context, charge *domain.Charge) error {
	if charge == nil || charge.ID == "" {
		return domain.ErrEmptyChargeID
	}

	logger := observability.FromContext(ctx)

	data, err := json.Marshal(charge)
	if err != nil {
		return fmt.Errorf("failed to encode charge: %w", err)
	}

	pipe := s.client.TxPipeline()
	pipe.HSet(ctx, s.key(charge.ID),
		fieldData, string(data),
		fieldModel, charge.Model.String(),
	)
	pipe.ZAddNX(ctx, s.indexKey(), redis.Z{
		Score:  float64(charge.CreatedAt.UnixNano()),
		Member: charge.ID,
	})

	if _, execErr := pipe.Exec(ctx); execErr != nil {
		logger.Error("charge save failed",
			observability.String("charge_id", charge.ID),
			observability.Error(execErr))
		return fmt.Errorf("failed to save charge: %w", execErr)
	}

	logger.Debug("charge saved", observability.String("charge_id", charge.ID))
	return nil
}

// Get retrieves a charge by ID.
func (s *Store) Get(ctx context.Context, id string) (*domain.Charge, error) {
	raw, err := s.client.HGet(ctx, s.key(id), fieldData).Result()
	if errors.Is(err, redis.Nil) {
		return nil, domain.ErrChargeNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load charge: %w", err)
	}

	return decodeCharge(raw)
}

// Delete removes a charge.
func (s *Store) Delete(ctx context.Context, id string) error {
	pipe := s.client.TxPipeline()
	deleted := pipe.Del(ctx, s.key(id))
	pipe.ZRem(ctx, s.indexKey(), id)

	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("failed to delete charge: %w", err)
	}
	if deleted.Val() == 0 {
		return domain.ErrChargeNotFound
	}
	return nil
}

// List returns all charges ordered by creation time.
func (s *Store) List(ctx context.Context) ([]*domain.Charge, error) {
	logger := observability.FromContext(ctx)

	ids, err := s.client.ZRange(ctx, s.indexKey(), 0, -1).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to read charge index: %w", err)
	}
	if len(ids) == 0 {
		return []*domain.Charge{}, nil
	}

	pipe := s.client.Pipeline()
	cmds := make([]*redis.StringCmd, len(ids))
	for i, id := range ids {
		cmds[i] = pipe.HGet(ctx, s.key(id), fieldData)
	}
	// redis.Nil from a stale index entry is reported per command.
	if _, execErr := pipe.Exec(ctx); execErr != nil && !errors.Is(execErr, redis.Nil) {
		return nil, fmt.Errorf("failed to load charges: %w", execErr)
	}

	charges := make([]*domain.Charge, 0, len(ids))
	for i, cmd := range cmds {
		raw, cmdErr := cmd.Result()
		if errors.Is(cmdErr, redis.Nil) {
			logger.Warn("charge index entry without data",
				observability.String("charge_id", ids[i]))
			continue
		}
		if cmdErr != nil {
			return nil, fmt.Errorf("failed to load charge %s: %w", ids[i], cmdErr)
		}

		c, decodeErr := decodeCharge(raw)
		if decodeErr != nil {
			return nil, decodeErr
		}
		charges = append(charges, c)
	}

	return charges, nil
}

// decodeCharge keeps numbers as json.Number so amounts stay exact.
func decodeCharge(raw string) (*domain.Charge, error) {
	dec := json.NewDecoder(bytes.NewReader([]byte(raw)))
	dec.UseNumber()

	var c domain.Charge
	if err := dec.Decode(&c); err != nil {
		return nil, fmt.Errorf("failed to decode charge: %w", err)
	}
	return &c, nil
}
