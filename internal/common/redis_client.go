package common

import (
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"warehouse/loadmap/internal/logging"
)

// RedisOptions are the connection settings read from REDIS_* variables.
type RedisOptions struct {
	Host     string
	Port     string
	Password string
	DB       int
}

func NewRedisClient(opts RedisOptions) *redis.Client {
	if opts.Host == "" {
		opts.Host = "localhost"
	}
	if opts.Port == "" {
		opts.Port = "6379"
	}

	addr := fmt.Sprintf("%s:%s", opts.Host, opts.Port)
	logging.Info("Initializing Redis client", "addr", addr, "db", opts.DB)

	return redis.NewClient(&redis.Options{
		Addr:         addr,
		Password:     opts.Password,
		DB:           opts.DB,
		DialTimeout:  5 * time.Second,
		ReadTimeout:  3 * time.Second,
		WriteTimeout: 3 * time.Second,
		PoolSize:     10,
	})
}
