package storage

import (
	"os"
	"path/filepath"

	"github.com/hexmech/hexmech/internal/game"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// OpenAndMigrate opens the SQLite database at dataSourceName and keeps the
// schema updated via AutoMigrate. Unit template stats are never persisted;
// the configuration file stays the single source of truth and battles store
// only the instantiated units.
func OpenAndMigrate(dataSourceName string) (*gorm.DB, error) {
	if dir := filepath.Dir(dataSourceName); dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, err
		}
	}
	db, err := gorm.Open(sqlite.Open(dataSourceName), &gorm.Config{})
	if err != nil {
		return nil, err
	}

	err = db.AutoMigrate(
		&game.Battle{},
		&game.Commander{},
		&game.Unit{},
		&game.LogEntry{},
		&game.CommanderProfile{},
	)
	if err != nil {
		return nil, err
	}
	return db, nil
}
