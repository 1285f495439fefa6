package api

import (
	"time"

	"github.com/hexmech/hexmech/internal/config"
	"github.com/hexmech/hexmech/internal/dice"
	"github.com/hexmech/hexmech/internal/storage"
)

// BattleHandler groups all battle-related HTTP handlers.
type BattleHandler struct {
	repo          storage.Repository
	cfg           *config.LoadedConfig
	actionTimeout time.Duration
	roller        dice.Roller
}

// NewBattleHandler creates a BattleHandler backed by the given repository,
// validated configuration and dice source.
func NewBattleHandler(repo storage.Repository, cfg *config.LoadedConfig, roller dice.Roller) *BattleHandler {
	return &BattleHandler{
		repo:          repo,
		cfg:           cfg,
		actionTimeout: cfg.ActionTimeout,
		roller:        roller,
	}
}
