package service

import (
	"errors"
	"time"

	"github.com/hexmech/hexmech/internal/engine"
	"github.com/hexmech/hexmech/internal/game"
)

// BattleRepo is the minimal repository interface required by the battle
// services. Using a small interface simplifies testing.
type BattleRepo interface {
	GetBattleByID(id uint) (*game.Battle, error)
	UpdateBattle(b *game.Battle) error
	UpdateStatsOnBattleEnd(b *game.Battle, resignedEmail string) error
}

// finishIfOver closes out a battle whose units are all destroyed on one or
// both sides, updating commander stats exactly once.
func finishIfOver(repo BattleRepo, b *game.Battle) {
	if over := engine.CheckGameOver(b); over.Over && b.Status != game.StatusFinished {
		b.Status = game.StatusFinished
		b.Winner = game.Side(over.Winner)
		if over.Winner == "" {
			b.Message = "mutual destruction"
		} else {
			b.Message = over.Winner + " wins by elimination"
		}
		b.ActionDeadline = time.Time{}
	}
	if b.Status == game.StatusFinished && !b.StatsCounted {
		_ = repo.UpdateStatsOnBattleEnd(b, "")
		b.StatsCounted = true
	}
}

var (
	ErrBattleNotFound      = errors.New("battle not found")
	ErrBattleNotInProgress = errors.New("battle is not in progress")
	ErrCommanderNotFound   = errors.New("commander not part of battle")
	ErrNotYourTurn         = errors.New("not your side's turn")
	ErrAlreadyDeployed     = errors.New("forces already deployed")
	ErrUnknownTemplate     = errors.New("unknown unit template")
	ErrOutsideDeployZone   = errors.New("position outside the deployment zone")
	ErrDeployOverlap       = errors.New("deployment positions overlap")
	ErrTooManyUnits        = errors.New("too many units in deployment")
	ErrNoUnits             = errors.New("deployment needs at least one unit")
	ErrUnknownCommand      = errors.New("unknown command type")
	ErrNotAISeat           = errors.New("side is not AI controlled")
)

// maxDeployUnits caps one side's force size.
const maxDeployUnits = 8

// deployZoneDepth is how many rows from a side's map edge deployment is
// allowed in: alpha deploys at the low-r edge, bravo at the high-r edge.
const deployZoneDepth = 3
