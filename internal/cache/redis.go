package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"checkout-service/internal/models"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

type RedisClient struct {
	client     *redis.Client
	log        *zap.Logger
	productTTL time.Duration
}

func NewRedisClient(addr, password string, db int, productTTL time.Duration, log *zap.Logger) (*RedisClient, error) {
	rdb := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := rdb.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to redis: %w", err)
	}

	log.Info("Redis connected successfully", zap.String("addr", addr))

	return &RedisClient{
		client:     rdb,
		log:        log,
		productTTL: productTTL,
	}, nil
}

func (r *RedisClient) Close() error {
	return r.client.Close()
}

func (r *RedisClient) Ping(ctx context.Context) error {
	return r.client.Ping(ctx).Err()
}

func productKey(id uuid.UUID) string {
	return fmt.Sprintf("product:%s", id)
}

// Кэш карточек товаров. Ошибки Redis не должны ломать чтение каталога.
func (r *RedisClient) GetProduct(ctx context.Context, id uuid.UUID) (*models.Product, bool) {
	raw, err := r.client.Get(ctx, productKey(id)).Bytes()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			r.log.Warn("product cache read failed", zap.String("product_id", id.String()), zap.Error(err))
		}
		return nil, false
	}
	var p models.Product
	if err := json.Unmarshal(raw, &p); err != nil {
		r.log.Warn("product cache entry corrupted", zap.String("product_id", id.String()), zap.Error(err))
		_ = r.client.Del(ctx, productKey(id)).Err()
		return nil, false
	}
	return &p, true
}

func (r *RedisClient) SetProduct(ctx context.Context, p *models.Product) {
	if r.productTTL <= 0 {
		return
	}
	raw, err := json.Marshal(p)
	if err != nil {
		r.log.Warn("product cache encode failed", zap.String("product_id", p.ID.String()), zap.Error(err))
		return
	}
	if err := r.client.Set(ctx, productKey(p.ID), raw, r.productTTL).Err(); err != nil {
		r.log.Warn("product cache write failed", zap.String("product_id", p.ID.String()), zap.Error(err))
	}
}

func (r *RedisClient) InvalidateProduct(ctx context.Context, ids ...uuid.UUID) {
	if len(ids) == 0 {
		return
	}
	keys := make([]string, 0, len(ids))
	for _, id := range ids {
		keys = append(keys, productKey(id))
	}
	if err := r.client.Del(ctx, keys...).Err(); err != nil {
		r.log.Warn("product cache invalidation failed", zap.Strings("keys", keys), zap.Error(err))
	}
}

// IdempotentResponse is a stored successful response replayed for a repeated Idempotency-Key.
type IdempotentResponse struct {
	Status int             `json:"status"`
	Body   json.RawMessage `json:"body"`
}

func idempotencyKey(userID uuid.UUID, key string) string {
	return fmt.Sprintf("idem:%s:%s", userID, key)
}

func idempotencyClaimKey(userID uuid.UUID, key string) string {
	return fmt.Sprintf("idem:claim:%s:%s", userID, key)
}

// ClaimIdempotent marks the key as in flight. Only one caller gets true until the claim is released
// or expires.
func (r *RedisClient) ClaimIdempotent(ctx context.Context, userID uuid.UUID, key string, ttl time.Duration) (bool, error) {
	return r.client.SetNX(ctx, idempotencyClaimKey(userID, key), "1", ttl).Result()
}

func (r *RedisClient) ReleaseIdempotent(ctx context.Context, userID uuid.UUID, key string) error {
	return r.client.Del(ctx, idempotencyClaimKey(userID, key)).Err()
}

func (r *RedisClient) LookupIdempotent(ctx context.Context, userID uuid.UUID, key string) (*IdempotentResponse, error) {
	raw, err := r.client.Get(ctx, idempotencyKey(userID, key)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	var resp IdempotentResponse
	if err := json.Unmarshal(raw, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// RememberIdempotent stores the response only if no response is stored under the key yet.
func (r *RedisClient) RememberIdempotent(ctx context.Context, userID uuid.UUID, key string, resp IdempotentResponse, ttl time.Duration) error {
	raw, err := json.Marshal(resp)
	if err != nil {
		return err
	}
	return r.client.SetNX(ctx, idempotencyKey(userID, key), raw, ttl).Err()
}
