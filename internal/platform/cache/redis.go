package cache

import (
	"context"
	"fmt"
	"time"

	"stepik_backend/internal/platform/config"
	"stepik_backend/internal/platform/logger"

	"github.com/redis/go-redis/v9"
)

var RDB *redis.Client

func ConnectRedis(log *logger.Logger) error {
	RDB = redis.NewClient(&redis.Options{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       config.AppConfig.RedisDB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := RDB.Ping(ctx).Err(); err != nil {
		return fmt.Errorf("could not connect to Redis: %w", err)
	}
	log.Info("connected to Redis", "addr", config.AppConfig.RedisAddr)
	return nil
}

func CloseRedis(log *logger.Logger) {
	if RDB != nil {
		RDB.Close()
		log.Info("redis connection closed")
	}
}
