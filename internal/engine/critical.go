package engine

import (
	"github.com/hexmech/hexmech/internal/ability"
	"github.com/hexmech/hexmech/internal/dice"
	"github.com/hexmech/hexmech/internal/game"
)

// Critical severity tables, one per unit kind, indexed by the clamped roll
// (2..12). Infantry have no table of their own: every infantry critical
// degenerates to direct additional damage.
var mechCritTable = map[int]game.CriticalEffect{
	2:  game.CritAmmoExplosion,
	3:  game.CritEngineHit,
	4:  game.CritFireControl,
	5:  game.CritNone,
	6:  game.CritWeaponHit,
	7:  game.CritMovementHit,
	8:  game.CritWeaponHit,
	9:  game.CritNone,
	10: game.CritFireControl,
	11: game.CritEngineHit,
	12: game.CritDestroyed,
}

var vehicleCritTable = map[int]game.CriticalEffect{
	2:  game.CritAmmoExplosion,
	3:  game.CritFireControl,
	4:  game.CritWeaponHit,
	5:  game.CritNone,
	6:  game.CritMovementHit,
	7:  game.CritMovementHit,
	8:  game.CritWeaponHit,
	9:  game.CritNone,
	10: game.CritFireControl,
	11: game.CritImmobilized,
	12: game.CritDestroyed,
}

// CriticalEffectFor is the state-free table lookup: (unit kind, clamped
// roll) to effect.
func CriticalEffectFor(kind game.UnitKind, roll int) game.CriticalEffect {
	if roll < 2 {
		roll = 2
	}
	if roll > 12 {
		roll = 12
	}
	switch kind {
	case game.KindMech:
		return mechCritTable[roll]
	case game.KindVehicle:
		return vehicleCritTable[roll]
	default:
		return game.CritExtraDamage
	}
}

// rollCritical resolves one critical hit against target: roll two dice,
// pass the result through modifyCriticalRoll hooks on both sides, clamp to
// the table range, veto via preventCriticalType and apply. Returns the
// applied effect (CritNone when the table or a veto produced nothing).
func rollCritical(b *game.Battle, attacker, target *game.Unit, roller dice.Roller) game.CriticalEffect {
	_, _, roll := dice.Sum2D6(roller)
	roll = ability.CriticalRoll(ability.Context{Battle: b, Unit: target, Other: attacker, Defending: true}, roll)
	if attacker != nil {
		roll = ability.CriticalRoll(ability.Context{Battle: b, Unit: attacker, Other: target}, roll)
	}
	if roll < 2 {
		roll = 2
	}
	if roll > 12 {
		roll = 12
	}

	eff := CriticalEffectFor(target.Kind, roll)
	if eff == game.CritNone {
		return game.CritNone
	}
	if ability.PreventsCritical(ability.Context{Battle: b, Unit: target, Other: attacker, Defending: true}, eff) {
		b.AppendLog(target.Name+" shrugs off a critical hit", map[string]any{
			"unit": target.ID, "effect": string(eff),
		})
		return game.CritNone
	}
	applyCriticalEffect(b, target, eff)
	return eff
}

// applyCriticalEffect mutates the unit for one table effect. Effects are
// idempotent-additive: counters increment, statuses are set-inserted.
func applyCriticalEffect(b *game.Battle, target *game.Unit, eff game.CriticalEffect) {
	switch eff {
	case game.CritEngineHit:
		target.EngineHits++
	case game.CritFireControl:
		target.FireControlHits++
	case game.CritMovementHit:
		target.MovementHits++
	case game.CritWeaponHit:
		target.WeaponHits++
	case game.CritImmobilized:
		target.AddEffect(game.StatusImmobilized)
	case game.CritDestroyed:
		target.StructureDamage = maxInt(target.StructureDamage, target.Structure)
		target.AddEffect(game.StatusDestroyed)
	case game.CritAmmoExplosion:
		// Direct structure damage, checked against destruction immediately.
		target.StructureDamage += 2
		if target.StructureDamage >= target.Structure {
			target.AddEffect(game.StatusDestroyed)
		}
	case game.CritExtraDamage:
		applyDamage(target, 1)
	}
	b.AppendLog(target.Name+" suffers a critical hit: "+string(eff), map[string]any{
		"unit": target.ID, "effect": string(eff),
	})
}
