package config

import (
	"context"
	"log"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/spf13/viper"
)

// InitRedis connects to Redis when REDIS_URL is configured. Returns nil when
// Redis is not configured or unreachable; callers fall back to the in-process
// cooldown store in that case.
func InitRedis() *redis.Client {
	redisURL := viper.GetString("REDIS_URL")
	if redisURL == "" {
		log.Println("REDIS_URL not configured, contact cooldowns will be tracked in process memory")
		return nil
	}

	opt, err := redis.ParseURL(redisURL)
	if err != nil {
		log.Printf("Warning: failed to parse REDIS_URL: %v - falling back to in-memory cooldowns", err)
		return nil
	}

	client := redis.NewClient(opt)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		log.Printf("Warning: failed to connect to Redis: %v - falling back to in-memory cooldowns", err)
		return nil
	}

	log.Println("Connected to Redis")
	return client
}
