package engine

import (
	"github.com/hexmech/hexmech/internal/dice"
	"github.com/hexmech/hexmech/internal/game"
)

// Heat rule constants.
const (
	heatWalk        = 1
	heatRun         = 2
	heatJumpBase    = 3
	heatOverheat    = 2
	heatPerEngine   = 2
	shutdownAvoidTN = 8
	restartTN       = 4
)

// weaponHeatForBand caps the heat contribution of weapons fire per band.
func weaponHeatForBand(band game.RangeBand) int {
	switch band {
	case game.BandShort:
		return 3
	case game.BandMedium:
		return 2
	default:
		return 1
	}
}

// jumpHeat evaluates the configured jump-heat rule for a jump of the given
// distance. Two formulas exist in the source rules; see game.JumpHeatRule.
func jumpHeat(rule game.JumpHeatRule, hexes int) int {
	if rule == game.JumpHeatByDistance {
		return maxInt(heatJumpBase, hexes)
	}
	return heatJumpBase
}

// addHeat raises a mech's heat, clamped to [0, capacity], and refreshes the
// transient heat flags. Non-mechs never track heat.
func addHeat(u *game.Unit, n int) {
	if u.Kind != game.KindMech || n == 0 {
		return
	}
	u.Heat += n
	if u.Heat < 0 {
		u.Heat = 0
	}
	if u.Heat > u.HeatCapacity {
		u.Heat = u.HeatCapacity
	}
	refreshHeatFlags(u)
}

// refreshHeatFlags rewrites the HEAT_* status flags from the current level.
func refreshHeatFlags(u *game.Unit) {
	u.ClearHeatEffects()
	if u.Kind != game.KindMech || u.HeatCapacity <= 0 {
		return
	}
	if u.Heat*2 >= u.HeatCapacity {
		u.AddEffect(game.StatusHeatAccuracy)
	}
	if u.Heat*4 >= u.HeatCapacity*3 {
		u.AddEffect(game.StatusHeatMobility)
	}
	if u.Heat >= u.HeatCapacity {
		u.AddEffect(game.StatusHeatCritical)
	}
}

// heatToHitPenalty returns the accuracy penalty from accumulated heat:
// +1 at 50% of capacity, +2 at 75%.
func heatToHitPenalty(u *game.Unit) int {
	if u.Kind != game.KindMech || u.HeatCapacity <= 0 {
		return 0
	}
	switch {
	case u.Heat*4 >= u.HeatCapacity*3:
		return 2
	case u.Heat*2 >= u.HeatCapacity:
		return 1
	}
	return 0
}

// heatMovementPenalty returns the hexes of allowance lost at 75% heat.
func heatMovementPenalty(u *game.Unit) int {
	if u.Kind != game.KindMech || u.HeatCapacity <= 0 {
		return 0
	}
	if u.Heat*4 >= u.HeatCapacity*3 {
		return 1
	}
	return 0
}

// ShutdownCheck rolls against reactor shutdown for an overheated mech.
// Two dice at or above 8 avoids the shutdown; failure sets SHUTDOWN.
// Returns true when the unit stays up.
func ShutdownCheck(b *game.Battle, u *game.Unit, roller dice.Roller) bool {
	_, _, roll := dice.Sum2D6(roller)
	if roll >= shutdownAvoidTN {
		b.AppendLog(u.Name+" rides out the heat spike", map[string]any{"unit": u.ID, "roll": roll})
		return true
	}
	u.AddEffect(game.StatusShutdown)
	b.AppendLog(u.Name+" shuts down from overheating", map[string]any{"unit": u.ID, "roll": roll})
	return false
}

// RestartCheck rolls to bring a shut-down mech back online. Two dice at or
// above 4 succeeds and clears SHUTDOWN. Independent from ShutdownCheck;
// the two must never be conflated.
func RestartCheck(b *game.Battle, u *game.Unit, roller dice.Roller) bool {
	_, _, roll := dice.Sum2D6(roller)
	if roll >= restartTN {
		u.RemoveEffect(game.StatusShutdown)
		b.AppendLog(u.Name+" restarts its reactor", map[string]any{"unit": u.ID, "roll": roll})
		return true
	}
	b.AppendLog(u.Name+" fails to restart", map[string]any{"unit": u.ID, "roll": roll})
	return false
}

// endPhaseHeat runs the end-of-round heat sequence for one living mech:
// engine-hit heat, overheat structure damage, shutdown or restart check,
// then dissipation. Dissipation is a flat -1, skipped while shut down.
func endPhaseHeat(b *game.Battle, u *game.Unit, roller dice.Roller) {
	if u.Kind != game.KindMech || !u.Alive() {
		return
	}
	if u.EngineHits > 0 {
		addHeat(u, heatPerEngine*u.EngineHits)
	}

	if u.HeatCapacity > 0 && u.Heat >= u.HeatCapacity {
		// Internal heat bypasses armor and scorches the frame directly.
		u.StructureDamage++
		b.AppendLog(u.Name+" takes 1 structure damage from overheating", map[string]any{"unit": u.ID})
		if u.StructureDamage >= u.Structure {
			u.AddEffect(game.StatusDestroyed)
			b.AppendLog(u.Name+" is destroyed by overheating", map[string]any{"unit": u.ID})
			return
		}
		if !u.HasEffect(game.StatusShutdown) {
			ShutdownCheck(b, u, roller)
		}
	} else if u.HasEffect(game.StatusShutdown) {
		RestartCheck(b, u, roller)
	}

	if !u.HasEffect(game.StatusShutdown) && u.Heat > 0 {
		u.Heat--
	}
	refreshHeatFlags(u)
}
