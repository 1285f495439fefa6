package main

import (
	"time"

	"github.com/hexmech/hexmech/internal/constants"
	"github.com/hexmech/hexmech/internal/logging"
	"github.com/hexmech/hexmech/internal/service"
	"github.com/hexmech/hexmech/internal/storage"
)

// startTimeoutScanner periodically expires battles whose action deadline
// lapsed, delegating the forfeit rules to service.HandleTimedOutBattle.
func startTimeoutScanner(repo storage.Repository) {
	go func() {
		ticker := time.NewTicker(5 * time.Second)
		defer ticker.Stop()
		for range ticker.C {
			battles, err := repo.FindTimedOutBattles(time.Now())
			if err != nil {
				logging.Error("timeout scanner failed", err, nil)
				continue
			}
			// Process sequentially; keeps SQLite happy under concurrency.
			for i := range battles {
				b, err := repo.GetBattleByID(battles[i].ID)
				if err != nil || b == nil {
					continue
				}
				if err := service.HandleTimedOutBattle(repo, b); err != nil {
					logging.Error("failed to expire battle", err, logging.Fields{constants.LogFieldBattleID: b.ID})
				}
			}
		}
	}()
}
