package config

import (
	"context"
	"log"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
)

type Config struct {
	Port          string
	DBDSN         string
	LogFile       string
	RedisAddr     string
	KafkaBroker   string
	KafkaTopic    string
	PublicBaseURL string
	CORSOrigins   string
}

// Load reads the environment, after an optional .env in the working
// directory. Real environment variables win over .env values.
func Load() Config {
	_ = godotenv.Load()

	port := env("PORT", "8080")
	cfg := Config{
		Port: port,
		// The menu is mock data; an in-memory store resets on every restart.
		DBDSN:         env("DB_DSN", ":memory:"),
		LogFile:       env("LOG_FILE", "./bistro.log"),
		RedisAddr:     os.Getenv("REDIS_ADDR"),
		KafkaBroker:   os.Getenv("KAFKA_BROKER"),
		KafkaTopic:    env("KAFKA_TOPIC", "menu-events"),
		PublicBaseURL: strings.TrimRight(env("PUBLIC_BASE_URL", "http://localhost:"+port), "/"),
		CORSOrigins:   env("CORS_ORIGINS", "http://localhost:8081"),
	}
	log.Printf("[config] PORT=%s DB_DSN=%s LOG_FILE=%s REDIS_ADDR=%s KAFKA_BROKER=%s KAFKA_TOPIC=%s",
		cfg.Port, cfg.DBDSN, cfg.LogFile, orNone(cfg.RedisAddr), orNone(cfg.KafkaBroker), cfg.KafkaTopic)
	return cfg
}

// Redis connects to RedisAddr, or returns nil when it isn't set or can't be
// reached; callers then fall back to in-process storage.
func (c Config) Redis() *redis.Client {
	if c.RedisAddr == "" {
		return nil
	}
	client := redis.NewClient(&redis.Options{Addr: c.RedisAddr})
	if err := client.Ping(context.Background()).Err(); err != nil {
		log.Printf("[config] redis %s unreachable, using in-memory limiter: %v", c.RedisAddr, err)
		_ = client.Close()
		return nil
	}
	return client
}

func env(key, def string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return def
}

func orNone(s string) string {
	if s == "" {
		return "-"
	}
	return s
}
