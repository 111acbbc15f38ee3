package database

import (
	"fmt"
	"os"
	"path/filepath"

	"jobtrack/internal/config"
)

// NewDatabaseFromConfig opens the store described by cfg for ownerID.
// A "sqlite" store lives at <data_dir>/<ownerID>.db and must be migrated
// separately; a "memory" store is migrated on open.
func NewDatabaseFromConfig(cfg config.DatabaseConfig, ownerID string) (*SQLiteDatabase, error) {
	switch cfg.Type {
	case "sqlite":
		if cfg.DataDir == "" {
			return nil, fmt.Errorf("data_dir required for sqlite database")
		}
		if ownerID == "" {
			return nil, fmt.Errorf("owner_id required for sqlite database")
		}
		if err := os.MkdirAll(cfg.DataDir, 0o700); err != nil {
			return nil, fmt.Errorf("creating data dir: %w", err)
		}
		return NewSQLiteDatabase(StorePath(cfg, ownerID))
	case "memory":
		db, err := NewSQLiteDatabase(MemoryPath)
		if err != nil {
			return nil, err
		}
		if err := db.MigrateUp(); err != nil {
			db.Close()
			return nil, err
		}
		return db, nil
	default:
		return nil, fmt.Errorf("unknown database type: %s", cfg.Type)
	}
}

// StorePath returns the file a sqlite store for ownerID lives in.
func StorePath(cfg config.DatabaseConfig, ownerID string) string {
	return filepath.Join(cfg.DataDir, ownerID+".db")
}
