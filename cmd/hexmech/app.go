package main

import (
	"github.com/hexmech/hexmech/internal/aiclient"
	"github.com/hexmech/hexmech/internal/config"
	"github.com/hexmech/hexmech/internal/logging"
	"github.com/hexmech/hexmech/internal/storage"
)

func loadConfigOrExit(path string) *config.LoadedConfig {
	cfg, err := config.LoadConfig(path)
	if err != nil {
		logging.Fatal("Missing or invalid hexmech configuration", err, logging.Fields{
			"config_path": path,
			"hint":        "create a hexmech_config.json with 'unit_templates' and 'maps' arrays and optional keys: server.address, action_timeout_seconds, ai_prompt",
		})
	}
	return cfg
}

func applyPromptTemplate(cfg *config.LoadedConfig) {
	if cfg != nil && cfg.AIPromptTemplate != "" {
		aiclient.SetPromptTemplate(cfg.AIPromptTemplate)
	}
}

func createRepositoryOrExit(dbPath string) storage.Repository {
	db, err := storage.OpenAndMigrate(dbPath)
	if err != nil {
		logging.Fatal("Failed to initialize database", err, nil)
	}
	return storage.NewSQLiteRepository(db)
}
