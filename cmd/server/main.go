package main

import (
	"log"

	"github.com/redis/go-redis/v9"

	"github.com/raindropsacademy/tuition-backend/internal/bootstrap"
	"github.com/raindropsacademy/tuition-backend/internal/config"
	"github.com/raindropsacademy/tuition-backend/internal/server"
	"github.com/raindropsacademy/tuition-backend/pkg/database"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	db := database.GetDB()

	if err := bootstrap.Migrate(db); err != nil {
		log.Fatalf("failed to run migrations: %v", err)
	}

	if err := bootstrap.SeedRoles(db); err != nil {
		log.Fatalf("failed to seed roles: %v", err)
	}

	if err := bootstrap.SeedAdminUser(db); err != nil {
		log.Fatalf("failed to seed admin user: %v", err)
	}

	if err := bootstrap.SeedCourses(db); err != nil {
		log.Fatalf("failed to seed courses: %v", err)
	}

	var redisClient *redis.Client
	if cfg.RedisURL != "" {
		opts, err := redis.ParseURL(cfg.RedisURL)
		if err != nil {
			log.Fatalf("invalid REDIS_URL: %v", err)
		}
		redisClient = redis.NewClient(opts)
	} else {
		log.Println("REDIS_URL not set, payment confirmations will rely on database uniqueness only")
	}

	srv := server.New(cfg, db, redisClient)

	log.Printf("starting server on port %s", cfg.Port)
	if err := srv.Run(); err != nil {
		log.Fatalf("server exited: %v", err)
	}
}
