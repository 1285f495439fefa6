package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/hexmech/hexmech/internal/aiclient"
	"github.com/hexmech/hexmech/internal/dedupe"
	"github.com/hexmech/hexmech/internal/dice"
	"github.com/hexmech/hexmech/internal/engine"
	"github.com/hexmech/hexmech/internal/game"
	"github.com/hexmech/hexmech/internal/keys"
	"github.com/hexmech/hexmech/internal/logging"
)

// AITurn plays every remaining activation for the AI-controlled side this
// phase. Unit orders come from simple heuristics (close with the nearest
// enemy, shoot when something is in range); when an OpenAI key is
// configured the model is additionally asked for a directive that biases
// the heuristics toward advancing or holding. Concurrent requests for the
// same battle turn are deduplicated through singleflight.
func AITurn(repo BattleRepo, battleID uint, actionTimeout time.Duration, roller dice.Roller) (*game.Battle, error) {
	b, err := repo.GetBattleByID(battleID)
	if err != nil || b == nil {
		return nil, ErrBattleNotFound
	}
	if b.Status != game.StatusInProgress {
		return nil, ErrBattleNotInProgress
	}
	seat := b.CommanderBySide(b.ActiveSide)
	if seat == nil || !seat.IsAI {
		return nil, ErrNotAISeat
	}

	key := keys.BattleTurnKey(b.ID, b.Round, string(b.ActiveSide))
	result, err, _ := dedupe.AITurnGroup.Do(key, func() (interface{}, error) {
		playAISide(b, roller)
		advanceTurn(b, roller)
		b.ActionDeadline = time.Now().Add(actionTimeout)
		finishIfOver(repo, b)
		if err := repo.UpdateBattle(b); err != nil {
			return nil, err
		}
		return b, nil
	})
	if err != nil {
		return nil, err
	}
	return result.(*game.Battle), nil
}

// playAISide issues orders for every actionable unit of the active side.
func playAISide(b *game.Battle, roller dice.Roller) {
	aggressive := true
	if aiclient.Available() {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		directive, err := aiclient.RequestDirective(ctx, summarizeBattle(b))
		cancel()
		if err != nil {
			logging.Error("ai directive failed, using heuristics", err, logging.Fields{"battle_id": b.ID})
		} else if d := strings.ToLower(directive); strings.Contains(d, "hold") || strings.Contains(d, "retreat") {
			aggressive = false
		}
	}

	side := b.ActiveSide
	for _, u := range b.LivingUnits(side) {
		if !canAct(b, u) {
			continue
		}
		switch b.Phase {
		case game.PhaseMovement:
			aiMove(b, u, aggressive)
		case game.PhaseCombat:
			aiAttack(b, u, roller)
		}
	}
}

// aiMove closes with the nearest enemy (or holds position when told to).
func aiMove(b *game.Battle, u *game.Unit, aggressive bool) {
	target := nearestEnemy(b, u)
	if target == nil || !aggressive {
		u.HasMoved = true
		return
	}
	dest := stepToward(b, u, target.Position(), u.Walk)
	if dest == u.Position() {
		u.HasMoved = true
		return
	}
	res := engine.MoveUnit(b, u.ID, dest, game.MoveWalk, u.Facing)
	if !res.Legal {
		u.HasMoved = true
	}
}

// aiAttack shoots the nearest enemy in range, or swings when adjacent.
func aiAttack(b *game.Battle, u *game.Unit, roller dice.Roller) {
	target := nearestEnemy(b, u)
	if target == nil {
		u.HasFired = true
		return
	}
	distance := u.Position().Distance(target.Position())
	var res engine.AttackResult
	switch {
	case distance <= 1 && u.Kind == game.KindMech:
		res = engine.MeleeAttack(b, u.ID, target.ID, engine.MeleeStandard, roller)
	default:
		res = engine.RangedAttack(b, u.ID, target.ID, engine.RangedOptions{}, roller)
	}
	if !res.Legal {
		u.HasFired = true
	}
}

func nearestEnemy(b *game.Battle, u *game.Unit) *game.Unit {
	var best *game.Unit
	bestDist := 0
	for _, e := range b.LivingUnits(game.Opponent(u.Side)) {
		d := u.Position().Distance(e.Position())
		if best == nil || d < bestDist {
			best, bestDist = e, d
		}
	}
	return best
}

// stepToward picks the free in-bounds neighbor chain that closes the most
// distance within the given allowance, greedily one hex at a time.
func stepToward(b *game.Battle, u *game.Unit, goal game.Coord, allowance int) game.Coord {
	cur := u.Position()
	for i := 0; i < allowance; i++ {
		next := cur
		bestDist := cur.Distance(goal)
		for _, n := range cur.Neighbors() {
			if !b.InBounds(n) || b.UnitAt(n) != nil {
				continue
			}
			if d := n.Distance(goal); d < bestDist {
				next, bestDist = n, d
			}
		}
		if next == cur {
			break
		}
		cur = next
		if cur.Distance(goal) <= 1 {
			break
		}
	}
	return cur
}

// summarizeBattle builds the compact situation string fed to the model.
func summarizeBattle(b *game.Battle) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "round %d, phase %s, side %s. ", b.Round, b.Phase, b.ActiveSide)
	for _, side := range []game.Side{game.SideAlpha, game.SideBravo} {
		units := b.LivingUnits(side)
		fmt.Fprintf(&sb, "%s has %d units: ", side, len(units))
		for _, u := range units {
			fmt.Fprintf(&sb, "%s (%s, armor %d/%d) ", u.Name, u.Kind, u.RemainingArmor(), u.Armor)
		}
	}
	return sb.String()
}
