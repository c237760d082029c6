package cache

import (
	"context"
	"testing"
	"time"

	"github.com/Domenick1991/hotelbooking/config"
	"github.com/stretchr/testify/assert"
)

func TestKeys(t *testing.T) {
	assert.Equal(t, "cache:hotels", hotelsKey())
	assert.Equal(t, "lock:booking:42:payment", paymentLockKey(42))
}

func TestRedisCache_UnreachableServer(t *testing.T) {
	c := NewRedisCache(config.RedisConfig{Addr: "127.0.0.1:1"}, time.Minute)
	defer c.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	hotels, err := c.GetHotels(ctx)
	assert.Error(t, err)
	assert.Nil(t, hotels)
	assert.Error(t, c.Ping(ctx))
}
