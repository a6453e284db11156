package config

import (
	"context"
	"log"
	"os"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
)

type Config struct {
	ListenAddr    string
	BackendAPIURL string
	PublicBaseURL string
	SessionTTL    time.Duration
}

// Load reads the service configuration from the environment. The backend
// base URL is read exactly once here; nothing else in the codebase may
// hold its own copy.
func Load() Config {
	ttlHours := 24
	if v := os.Getenv("SESSION_TTL_HOURS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			ttlHours = n
		}
	}

	return Config{
		ListenAddr:    getEnv("LISTEN_ADDR", ":8080"),
		BackendAPIURL: getEnv("BACKEND_API_URL", "http://localhost:8000/api"),
		PublicBaseURL: getEnv("PUBLIC_BASE_URL", "http://localhost:8080"),
		SessionTTL:    time.Duration(ttlHours) * time.Hour,
	}
}

func MustInitRedis() *redis.Client {
	client := redis.NewClient(&redis.Options{
		Addr: getEnv("REDIS_HOST", "localhost") + ":" + getEnv("REDIS_PORT", "6379"),
	})

	if err := client.Ping(context.Background()).Err(); err != nil {
		log.Fatal("Failed to connect to Redis:", err)
	}

	return client
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
