package service

import (
	"time"

	"github.com/hexmech/hexmech/internal/game"
	"github.com/hexmech/hexmech/internal/logging"
)

// HandleTimedOutBattle resolves a battle whose action deadline lapsed. The
// inactive side forfeits: if the battle never left SETUP it simply ends with
// no winner; an in-progress battle is awarded to the side that was waiting.
// Expired battles never count toward player stats when nobody acted.
func HandleTimedOutBattle(repo BattleRepo, b *game.Battle) error {
	if b.Status != game.StatusInProgress {
		return nil
	}
	if b.ActionDeadline.IsZero() || time.Now().Before(b.ActionDeadline) {
		return nil
	}

	b.Status = game.StatusFinished
	b.ActionDeadline = time.Time{}

	if b.Phase == game.PhaseSetup {
		b.Winner = game.SideNone
		b.Message = "Battle ended due to inactivity before deployment."
		b.StatsCounted = true
		b.AppendLog("battle expired during setup", nil)
		logging.Info("battle expired before deployment", logging.Fields{"battle_id": b.ID})
		return repo.UpdateBattle(b)
	}

	// The side holding the activation went silent; the opponent wins.
	winner := game.Opponent(b.ActiveSide)
	b.Winner = winner
	b.Message = string(b.ActiveSide) + " failed to act in time. " + string(winner) + " wins."
	b.AppendLog("battle expired", map[string]any{"inactive": b.ActiveSide, "winner": winner})
	if !b.StatsCounted {
		if err := repo.UpdateStatsOnBattleEnd(b, ""); err != nil {
			logging.Error("failed to update stats on timeout", err, logging.Fields{"battle_id": b.ID})
		}
		b.StatsCounted = true
	}
	logging.Info("battle expired due to inactivity", logging.Fields{"battle_id": b.ID, "winner": string(winner)})
	return repo.UpdateBattle(b)
}
