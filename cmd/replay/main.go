// Command replay drives the interaction engine through a scripted gesture
// sequence against a real store, database and (optionally) Redis, then
// prints the resulting snapshot and command statistics. It doubles as a
// smoke test for the full wiring.
package main

import (
	"context"
	"errors"
	"flag"
	"log"
	"time"

	redisv9 "github.com/redis/go-redis/v9"

	"chart_drawing/internal/app/di"
	"chart_drawing/internal/config"
	drawingdomain "chart_drawing/internal/feature/drawing/domain"
	drawingentity "chart_drawing/internal/feature/drawing/domain/entity"
	interactionadapters "chart_drawing/internal/feature/interaction/adapters"
	infradb "chart_drawing/internal/platform/db"
	infraredis "chart_drawing/internal/platform/redis"
	"chart_drawing/internal/shared/geometry"
)

func main() {
	configPath := flag.String("config", "config.yaml", "path to the config file")
	chartID := flag.String("chart", "replay-demo", "chart id to load and save")
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

	// Repository + store + invoker
	repo := di.NewSnapshotRepository(rdb, db, cfg.Redis.TTL)
	store, saver := di.NewAutoSavedStore(repo, *chartID, cfg)
	defer saver.Stop()
	invoker := di.NewInvoker(cfg)

	// 前回のスナップショットがあれば復元します。
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if snap, err := repo.Load(ctx, *chartID); err == nil {
		if err := store.LoadAll(snap.Tools); err != nil {
			log.Fatal("failed to restore snapshot:", err)
		}
		log.Printf("restored %d tools (version %d)", len(snap.Tools), snap.Version)
	} else if !errors.Is(err, drawingdomain.ErrSnapshotNotFound) {
		log.Fatal("failed to load snapshot:", err)
	}

	// 1000x500pxのビューポート: 直近1000分、価格帯0〜100。
	now := time.Now().UnixMilli()
	bridge := &interactionadapters.LinearBridge{
		MinTimestamp: now - 60_000_000,
		MaxTimestamp: now,
		MinPrice:     0,
		MaxPrice:     100,
		Width:        1000,
		Height:       500,
	}

	engine := di.NewEngine(store, invoker, bridge, interactionadapters.ImmediateScheduler{}, cfg)

	// --- scripted gestures ---

	// 1. 水平線: 1クリックで確定。
	engine.SetActiveToolType(drawingentity.ToolHorizontal)
	engine.PointerDown(geometry.Point{X: 300, Y: 250})
	engine.PointerUp(geometry.Point{X: 300, Y: 250})
	log.Printf("drew horizontal line, %d tools", store.Len())

	// 2. トレンドライン: ドラッグで2点を指定。
	engine.SetActiveToolType(drawingentity.ToolTrendline)
	engine.PointerDown(geometry.Point{X: 100, Y: 400})
	engine.PointerMove(geometry.Point{X: 400, Y: 300})
	engine.PointerMove(geometry.Point{X: 700, Y: 150})
	engine.PointerUp(geometry.Point{X: 700, Y: 150})
	log.Printf("drew trendline, %d tools", store.Len())

	// 3. 描いたトレンドラインの終点を掴んで動かします。
	engine.PointerDown(geometry.Point{X: 700, Y: 150})
	engine.PointerMove(geometry.Point{X: 750, Y: 100})
	engine.PointerUp(geometry.Point{X: 750, Y: 100})
	log.Println("dragged trendline endpoint")

	// 4. 選択中のツールを複製します。
	if id := engine.Session().SelectedToolID; id != "" {
		copyTool, err := store.Duplicate(id)
		if err != nil {
			log.Fatal("duplicate failed:", err)
		}
		log.Printf("duplicated %s -> %s, %d tools", id, copyTool.ID, store.Len())
	}

	// 5. undo/redoの往復。
	if invoker.Undo(ctx) {
		log.Printf("undo ok, %d tools", store.Len())
	}
	if invoker.Redo(ctx) {
		log.Printf("redo ok, %d tools", store.Len())
	}

	// 結果を出力して保存します。
	snap := store.Export()
	log.Printf("final snapshot: version=%d tools=%d", snap.Version, len(snap.Tools))
	for _, tool := range snap.Tools {
		log.Printf("  %s %s points=%v", tool.ID, tool.Type, tool.Points)
	}

	stats := invoker.Statistics()
	log.Printf("commands: total=%d succeeded=%d failed=%d history=%d",
		stats.Total, stats.Successful, stats.Failed, stats.HistorySize)

	if err := saver.Flush(ctx); err != nil {
		log.Fatal("failed to persist snapshot:", err)
	}
	log.Println("replay ok")
}
