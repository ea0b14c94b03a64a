// Command server exposes the snapshot persistence API over HTTP. Drawing
// interaction itself runs client-side; this service is the durable home for
// each chart's tool snapshot.
package main

import (
	"flag"
	"log"
	"time"

	redisv9 "github.com/redis/go-redis/v9"

	"chart_drawing/internal/app/di"
	"chart_drawing/internal/app/router"
	"chart_drawing/internal/config"
	drawinghandler "chart_drawing/internal/feature/drawing/transport/handler"
	drawingusecase "chart_drawing/internal/feature/drawing/usecase"
	infradb "chart_drawing/internal/platform/db"
	infraredis "chart_drawing/internal/platform/redis"
	"chart_drawing/internal/shared/ratelimiter"
)

func main() {
	configPath := flag.String("config", "config.yaml", "path to the config file")
	addr := flag.String("addr", ":8080", "listen address")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatal("failed to load config:", err)
	}
	if err := cfg.Validate(); err != nil {
		log.Fatal("invalid config:", err)
	}

	// db
	db, err := infradb.Open(cfg)
	if err != nil {
		log.Fatal("failed to open database:", err)
	}

	// Redis
	var rdb *redisv9.Client
	if tmp, err := infraredis.NewRedisClient(cfg); err != nil {
		log.Println("[WARN] Redis unavailable. Running without cache.")
		rdb = nil
	} else {
		rdb = tmp
		defer func() {
			if err := rdb.Close(); err != nil {
				log.Println("[ERROR] Failed to close Redis client:", err)
			}
		}()
	}

	// Repository（Redisがあればキャッシュでラップ）
	repo := di.NewSnapshotRepository(rdb, db, cfg.Redis.TTL)

	// Usecase
	snapshotUC := drawingusecase.NewSnapshotUsecase(repo)

	// Handler
	snapshotH := drawinghandler.NewSnapshotHandler(snapshotUC)

	// 書き込みは毎分120回まで。オートセーブのデバウンス間隔より十分緩い値です。
	writeLimiter := ratelimiter.NewRateLimiter(120, time.Minute)

	ready := func() error {
		sqlDB, err := db.DB()
		if err != nil {
			return err
		}
		return sqlDB.Ping()
	}

	r := router.NewRouter(snapshotH, writeLimiter, ready)

	if err := r.Run(*addr); err != nil {
		log.Fatal(err)
	}
}
