package storage

import (
	"time"

	"github.com/hexmech/hexmech/internal/game"
)

type Repository interface {
	CreateBattle(b *game.Battle) error
	GetBattleByID(id uint) (*game.Battle, error)
	FindBattleByJoinCode(code string) (*game.Battle, error)
	GetPublicBattles() ([]game.Battle, error)
	// UpdateBattle persists the battle and flushes any buffered log entries
	// (see Battle.DrainLog) in the same transaction.
	UpdateBattle(b *game.Battle) error
	RemoveCommanderByEmail(battleID uint, email string) error

	// Battle log
	GetBattleLog(battleID uint, limit int) ([]game.LogEntry, error)

	// Commander profiles and aggregate stats
	UpsertProfile(email, name string) error
	GetProfileByEmail(email string) (*game.CommanderProfile, error)
	SaveProfile(p *game.CommanderProfile) error
	UpdateStatsOnBattleEnd(b *game.Battle, resignedEmail string) error
	GetTopCommanders(limit int) ([]game.CommanderProfile, error)

	// FindTimedOutBattles returns battles that are currently in progress
	// and whose action deadline is at or before the provided time. The
	// caller decides how to resolve them (for example, finishing them due
	// to inactivity).
	FindTimedOutBattles(now time.Time) ([]game.Battle, error)
}
