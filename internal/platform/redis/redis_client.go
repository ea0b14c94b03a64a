package redis

import (
	"context"
	"log/slog"

	"github.com/redis/go-redis/v9"

	"chart_drawing/internal/config"
)

func NewRedisClient(cfg *config.Config) (*redis.Client, error) {
	addr := cfg.Redis.Host + ":" + cfg.Redis.Port

	rdb := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: cfg.Redis.Password,
		DB:       0,
	})

	// 接続確認
	if err := rdb.Ping(context.Background()).Err(); err != nil {
		slog.Error("Redis connection failed", "address", addr, "error", err)
		return nil, err
	}

	slog.Info("Redis connection successful", "address", addr)
	return rdb, nil
}
