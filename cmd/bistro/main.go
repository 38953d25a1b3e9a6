package main

import (
	"io"
	"log"
	"os"
	"time"

	"github.com/gofiber/fiber/v2"

	"bistro/internal/config"
	"bistro/internal/events"
	"bistro/internal/http/handlers"
	"bistro/internal/ratelimit"
	"bistro/internal/repos"
)

func main() {
	cfg := config.Load()

	// Optional file logging
	if cfg.LogFile != "" {
		f, err := os.OpenFile(cfg.LogFile, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
		if err != nil {
			log.Printf("[warn] could not open log file %s: %v", cfg.LogFile, err)
		} else {
			defer f.Close()
			log.SetOutput(io.MultiWriter(os.Stdout, f))
		}
	}

	db, err := repos.OpenDB(cfg.DBDSN)
	if err != nil {
		log.Fatal(err)
	}
	defer db.Close()

	var pub events.Publisher = events.LogPublisher{}
	if cfg.KafkaBroker != "" {
		kp := events.NewKafkaPublisher(events.NewKafkaWriter(cfg.KafkaBroker, cfg.KafkaTopic))
		defer kp.Close()
		pub = kp
		log.Printf("[events] publishing to kafka %s topic %s", cfg.KafkaBroker, cfg.KafkaTopic)
	}

	var store fiber.Storage
	if rdb := cfg.Redis(); rdb != nil {
		rs := ratelimit.NewRedisStorage(rdb, "bistro:rate:")
		defer rs.Close()
		store = rs
		log.Printf("[limiter] counters in redis %s", cfg.RedisAddr)
	}

	deps := handlers.NewDeps(db, cfg, pub)
	app := handlers.NewApp(deps, handlers.AppConfig{
		RateMax:     60,
		RateWindow:  time.Minute,
		RateStorage: store,
		CORSOrigins: cfg.CORSOrigins,
		AccessLog:   true,
	})

	if err := app.Listen(":" + cfg.Port); err != nil {
		log.Print(err)
	}
}
