// Package db opens the gorm connection used for snapshot persistence.
package db

import (
	"fmt"
	"log"
	"time"

	gpostgres "gorm.io/driver/postgres"
	gsqlite "gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"chart_drawing/internal/config"
	drawingadapters "chart_drawing/internal/feature/drawing/adapters"
)

// Opener opens a gorm connection. Injectable for tests.
type Opener func(dial gorm.Dialector) (*gorm.DB, error)

func gormOpen(dial gorm.Dialector) (*gorm.DB, error) {
	return gorm.Open(dial, &gorm.Config{})
}

// Dialector selects the gorm driver from the configured database settings.
func Dialector(cfg *config.Config) (gorm.Dialector, error) {
	switch cfg.Database.Driver {
	case "sqlite":
		return gsqlite.Open(cfg.Database.SQLitePath), nil
	case "postgres":
		return gpostgres.Open(cfg.Database.DSN), nil
	default:
		return nil, fmt.Errorf("unknown database driver %q", cfg.Database.Driver)
	}
}

// ConnectWithRetry keeps trying to open the connection until the timeout so
// a slow-starting database container does not kill the process.
func ConnectWithRetry(dial gorm.Dialector, timeout time.Duration, open Opener) (*gorm.DB, error) {
	deadline := time.Now().Add(timeout)
	for {
		db, err := open(dial)
		if err == nil {
			return db, nil
		}
		if time.Now().After(deadline) {
			return nil, fmt.Errorf("DB connect failed after %v: %w", timeout, err)
		}
		log.Printf("DB connect failed, retrying...: %v", err)
		time.Sleep(3 * time.Second)
	}
}

// Open connects to the configured database and runs the snapshot migration.
func Open(cfg *config.Config) (*gorm.DB, error) {
	dial, err := Dialector(cfg)
	if err != nil {
		return nil, err
	}

	db, err := ConnectWithRetry(dial, 60*time.Second, gormOpen)
	if err != nil {
		return nil, err
	}

	if err := db.AutoMigrate(&drawingadapters.SnapshotModel{}); err != nil {
		return nil, fmt.Errorf("failed to migrate: %w", err)
	}

	return db, nil
}
