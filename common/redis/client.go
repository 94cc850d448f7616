package redis

import (
	"time"

	"sluice-scada/common/config"

	"github.com/go-redis/redis/v8"
)

// Client alias so callers need not import go-redis directly.
type Client = redis.Client

// NewRedisClient builds a client with short timeouts: sessions are read on
// the request path.
func NewRedisClient(cfg *config.RedisConfig) *redis.Client {
	return redis.NewClient(&redis.Options{
		Addr:         cfg.Addr,
		Password:     cfg.Password,
		DB:           cfg.DB,
		DialTimeout:  2 * time.Second,
		ReadTimeout:  time.Second,
		WriteTimeout: time.Second,
	})
}

// Close closes client if it is non-nil.
func Close(client *redis.Client) error {
	if client == nil {
		return nil
	}
	return client.Close()
}
