package engine

import (
	"math"

	"github.com/hexmech/hexmech/internal/game"
)

// damageOutcome summarizes one application of damage to a unit.
type damageOutcome struct {
	armorApplied     int
	structureApplied int
	destroyed        bool
	// structureCritical is set when this hit pushed cumulative structure
	// loss across the 25%-of-max threshold, which triggers a critical roll.
	structureCritical bool
}

// applyDamage depletes armor first, overflows into structure and flags
// destruction. Armor damage never exceeds the armor stat; the overflow
// routes to structure instead. Infantry additionally convert damage into
// proportional troop casualties.
func applyDamage(target *game.Unit, damage int) damageOutcome {
	var out damageOutcome
	if damage <= 0 || target.Destroyed() {
		return out
	}

	structureBefore := target.StructureDamage

	remaining := damage
	armorLeft := target.Armor - target.ArmorDamage
	if armorLeft > 0 {
		absorb := minInt(armorLeft, remaining)
		target.ArmorDamage += absorb
		out.armorApplied = absorb
		remaining -= absorb
	}
	if remaining > 0 {
		target.StructureDamage += remaining
		out.structureApplied = remaining
	}

	if target.Kind == game.KindInfantry && target.Troops > 0 {
		pool := target.Armor + target.Structure
		if pool > 0 {
			lost := int(math.Ceil(float64(damage) * float64(target.Troops) / float64(pool)))
			target.Casualties += lost
			if target.Casualties > target.Troops {
				target.Casualties = target.Troops
			}
		}
	}

	if target.StructureDamage >= target.Structure {
		target.AddEffect(game.StatusDestroyed)
		out.destroyed = true
	}

	if out.structureApplied > 0 && target.Structure > 0 {
		threshold := (target.Structure + 3) / 4 // ceil(25% of max)
		if structureBefore < threshold && target.StructureDamage >= threshold {
			out.structureCritical = true
		}
	}
	return out
}

func minInt(a, b int) int {
	if a < b {
		return a
	}
	return b
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}

func ceilDiv(a, b int) int {
	if b <= 0 {
		return 0
	}
	return (a + b - 1) / b
}

// CheckGameOver reports whether every unit of one side carries DESTROYED.
func CheckGameOver(b *game.Battle) GameOverResult {
	alphaAlive := len(b.LivingUnits(game.SideAlpha)) > 0
	bravoAlive := len(b.LivingUnits(game.SideBravo)) > 0
	// A battle with no units yet is not over.
	if len(b.Units) == 0 {
		return GameOverResult{}
	}
	switch {
	case alphaAlive && !bravoAlive:
		return GameOverResult{Over: true, Winner: string(game.SideAlpha)}
	case bravoAlive && !alphaAlive:
		return GameOverResult{Over: true, Winner: string(game.SideBravo)}
	case !alphaAlive && !bravoAlive:
		return GameOverResult{Over: true}
	}
	return GameOverResult{}
}
