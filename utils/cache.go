package utils

import (
	"context"
	"log"
	"time"

	"propcare/config"

	"github.com/go-redis/redis/v8"
)

var (
	// SessionClient stores admin impersonation sessions.
	SessionClient *redis.Client
	// EventsClient carries decision events to connected clients via pub/sub.
	EventsClient *redis.Client
)

func newRedisClient(db int, name string) *redis.Client {
	client := redis.NewClient(&redis.Options{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       db,
	})
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if _, err := client.Ping(ctx).Result(); err != nil {
		log.Fatalf("Failed to connect to Redis (%s): %v", name, err)
	}
	return client
}

// GetSessionClient returns the Redis client for session state.
func GetSessionClient() *redis.Client {
	if SessionClient == nil {
		SessionClient = newRedisClient(config.AppConfig.RedisSessionDB, "Session")
	}
	return SessionClient
}

// GetEventsClient returns the Redis client used for pub/sub fan-out.
func GetEventsClient() *redis.Client {
	if EventsClient == nil {
		EventsClient = newRedisClient(config.AppConfig.RedisEventsDB, "Events")
	}
	return EventsClient
}
