package redis

import (
	"context"
	"log"

	"github.com/redis/go-redis/v9"

	"social-service/configs"
)

func NewClient(cfg *configs.Config) *redis.Client {
	rdb := redis.NewClient(&redis.Options{
		Addr: cfg.RedisHost + ":" + cfg.RedisPort,
	})
	if err := rdb.Ping(context.Background()).Err(); err != nil {
		log.Fatalf("failed to connect to redis: %v", err)
	}
	return rdb
}
