package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/Domenick1991/hotelbooking/config"
	"github.com/Domenick1991/hotelbooking/internal/domain"
	"github.com/redis/go-redis/v9"
)

type RedisCache struct {
	client    *redis.Client
	hotelsTTL time.Duration
}

func NewRedisCache(cfg config.RedisConfig, hotelsTTL time.Duration) *RedisCache {
	return &RedisCache{
		client:    redis.NewClient(&redis.Options{Addr: cfg.Addr, Password: cfg.Password, DB: cfg.DB}),
		hotelsTTL: hotelsTTL,
	}
}

// GetHotels returns nil, nil on a cache miss.
func (c *RedisCache) GetHotels(ctx context.Context) ([]domain.Hotel, error) {
	data, err := c.client.Get(ctx, hotelsKey()).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		return nil, err
	}

	var hotels []domain.Hotel
	if err := json.Unmarshal(data, &hotels); err != nil {
		return nil, err
	}
	return hotels, nil
}

func (c *RedisCache) SetHotels(ctx context.Context, hotels []domain.Hotel) error {
	payload, err := json.Marshal(hotels)
	if err != nil {
		return err
	}
	return c.client.Set(ctx, hotelsKey(), payload, c.hotelsTTL).Err()
}

func (c *RedisCache) InvalidateHotels(ctx context.Context) error {
	return c.client.Del(ctx, hotelsKey()).Err()
}

// AcquirePaymentLock guards a booking against two payments running at once.
func (c *RedisCache) AcquirePaymentLock(ctx context.Context, bookingID int64, ttl time.Duration) (bool, error) {
	return c.client.SetNX(ctx, paymentLockKey(bookingID), "locked", ttl).Result()
}

func (c *RedisCache) ReleasePaymentLock(ctx context.Context, bookingID int64) error {
	return c.client.Del(ctx, paymentLockKey(bookingID)).Err()
}

func (c *RedisCache) Ping(ctx context.Context) error {
	return c.client.Ping(ctx).Err()
}

func (c *RedisCache) Close() error {
	return c.client.Close()
}

func hotelsKey() string {
	return "cache:hotels"
}

func paymentLockKey(bookingID int64) string {
	return fmt.Sprintf("lock:booking:%d:payment", bookingID)
}
