package engine

import (
	"github.com/hexmech/hexmech/internal/ability"
	"github.com/hexmech/hexmech/internal/dice"
	"github.com/hexmech/hexmech/internal/game"
)

// phaseOrder is the fixed cycle a round walks through. SETUP appears only
// once, before the first round.
var phaseOrder = map[game.Phase]game.Phase{
	game.PhaseSetup:      game.PhaseInitiative,
	game.PhaseInitiative: game.PhaseMovement,
	game.PhaseMovement:   game.PhaseCombat,
	game.PhaseCombat:     game.PhaseEnd,
	game.PhaseEnd:        game.PhaseInitiative,
}

// AdvancePhase steps the battle to the next phase. Leaving END runs the
// end-of-round bookkeeping (heat, expiring stances, turn-flag resets) and
// increments the round counter; that is the only place the counter moves,
// so it counts completed rounds from zero. Entering INITIATIVE performs no
// roll; callers invoke RollInitiative as its own operation.
func AdvancePhase(b *game.Battle, roller dice.Roller) {
	prev := b.Phase
	next, ok := phaseOrder[prev]
	if !ok {
		next = game.PhaseInitiative
	}

	if prev == game.PhaseEnd {
		endOfRound(b, roller)
		b.Round++
	}
	if prev == game.PhaseSetup {
		b.Status = game.StatusInProgress
	}

	b.Phase = next
	b.AppendLog("phase advanced", map[string]any{"from": prev, "to": next})
}

// RollInitiative rolls 2d6 per side, adds each side's living-unit initiative
// bonuses, and stores the winner as the active side. Ties are broken by a
// coin flip, never rerolled, so the phase always terminates.
func RollInitiative(b *game.Battle, roller dice.Roller) InitiativeResult {
	a1, a2, alphaRoll := dice.Sum2D6(roller)
	b1, b2, bravoRoll := dice.Sum2D6(roller)

	alpha := alphaRoll + sideInitiativeBonus(b, game.SideAlpha)
	bravo := bravoRoll + sideInitiativeBonus(b, game.SideBravo)

	winner := game.SideAlpha
	flipped := false
	switch {
	case bravo > alpha:
		winner = game.SideBravo
	case bravo == alpha:
		flipped = true
		if !roller.Flip() {
			winner = game.SideBravo
		}
	}

	b.InitiativeAlpha = alpha
	b.InitiativeBravo = bravo
	b.InitiativeWinner = winner
	b.ActiveSide = winner
	b.AppendLog("initiative rolled", map[string]any{
		"alpha": alpha, "bravo": bravo, "winner": winner, "tie": flipped,
	})
	return InitiativeResult{
		Legal:      true,
		Winner:     string(winner),
		AlphaDice:  []int{a1, a2},
		BravoDice:  []int{b1, b2},
		AlphaTotal: alpha,
		BravoTotal: bravo,
		TieBroken:  flipped,
	}
}

func sideInitiativeBonus(b *game.Battle, side game.Side) int {
	total := 0
	for _, u := range b.LivingUnits(side) {
		total += ability.InitiativeBonus(ability.Context{Battle: b, Unit: u})
	}
	return total
}

// SwitchActiveSide hands the current phase's action over to the other side.
func SwitchActiveSide(b *game.Battle) {
	b.ActiveSide = game.Opponent(b.ActiveSide)
}

// endOfRound runs when END gives way to the next round's INITIATIVE: heat
// processing for every living mech, expiry of one-round stances, and the
// per-turn flag reset.
func endOfRound(b *game.Battle, roller dice.Roller) {
	for _, u := range b.LivingUnits(game.SideNone) {
		endPhaseHeat(b, u, roller)
	}
	for _, u := range b.LivingUnits(game.SideNone) {
		u.RemoveEffect(game.StatusGrappled)
		u.RemoveEffect(game.StatusDefensiveStance)
		u.ResetTurnFlags()
	}
	if over := CheckGameOver(b); over.Over {
		finishBattle(b, over)
	}
}

// finishBattle marks the battle finished and records the outcome.
func finishBattle(b *game.Battle, over GameOverResult) {
	if b.Status == game.StatusFinished {
		return
	}
	b.Status = game.StatusFinished
	b.Winner = game.Side(over.Winner)
	if over.Winner == "" {
		b.Message = "mutual destruction"
	} else {
		b.Message = over.Winner + " wins by elimination"
	}
	b.AppendLog("battle finished", map[string]any{"winner": over.Winner, "message": b.Message})
}
