package store

import (
	"context"
	"log"

	"github.com/redis/go-redis/v9"
)

// Client is the shared Redis connection used for schedule persistence.
var Client *redis.Client

// Connect opens the Redis connection. Persistence is best-effort, so a
// failed ping only logs; the caller decides whether to run without it.
func Connect(redisURL string) error {
	opt, err := redis.ParseURL(redisURL)
	if err != nil {
		return err
	}
	Client = redis.NewClient(opt)
	if err := Client.Ping(context.Background()).Err(); err != nil {
		log.Printf("Redis ping failed: %v (schedule persistence degraded)", err)
	} else {
		log.Println("Successfully connected to Redis")
	}
	return nil
}

// Close closes the Redis connection.
func Close() {
	if Client != nil {
		Client.Close()
		log.Println("Redis connection closed")
	}
}
