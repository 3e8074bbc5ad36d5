package realtime

import (
	"log"

	"github.com/redis/go-redis/v9"
)

// NewRedis creates the pub/sub client used for chat and application
// notifications.
func NewRedis(addr, password string) *redis.Client {
	rdb := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       0,
	})

	log.Printf("Redis client created (addr: %s)", addr)
	return rdb
}
