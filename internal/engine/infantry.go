package engine

import (
	"math"

	"github.com/hexmech/hexmech/internal/ability"
	"github.com/hexmech/hexmech/internal/dice"
	"github.com/hexmech/hexmech/internal/game"
)

// InfantryAttackKind names one specialist infantry assault.
type InfantryAttackKind string

const (
	InfantryLegAttack  InfantryAttackKind = "leg_attack"
	InfantrySwarm      InfantryAttackKind = "swarm"
	InfantryMineAttack InfantryAttackKind = "mine"
	InfantryDemolition InfantryAttackKind = "demolition"
)

// infantryProfile shapes one assault kind: target number, required ability,
// whether the squad must share the target's hex, and the casualty fractions
// the squad eats for trying.
type infantryProfile struct {
	baseTN      int
	capability  game.AbilityCode
	sameHex     bool
	damage      func(a *game.Unit) int
	hitLossPct  float64
	missLossPct float64
	forceCrit   bool
	rider       game.CriticalEffect
}

var infantryProfiles = map[InfantryAttackKind]infantryProfile{
	InfantryLegAttack: {
		baseTN:     8,
		capability: ability.CodeAntiMech,
		damage:     func(a *game.Unit) int { return ceilDiv(a.TroopsRemaining(), 5) },
		hitLossPct: 0.10, missLossPct: 0.05,
		rider: game.CritMovementHit,
	},
	InfantrySwarm: {
		baseTN:     7,
		capability: ability.CodeAntiMech,
		sameHex:    true,
		damage:     func(a *game.Unit) int { return ceilDiv(a.TroopsRemaining(), 4) },
		hitLossPct: 0.20, missLossPct: 0.05,
		forceCrit: true,
	},
	InfantryMineAttack: {
		baseTN:     7,
		capability: ability.CodeDemolitions,
		damage:     func(_ *game.Unit) int { return 4 },
		hitLossPct: 0.05, missLossPct: 0.05,
		rider: game.CritImmobilized,
	},
	InfantryDemolition: {
		baseTN:     6,
		capability: ability.CodeDemolitions,
		sameHex:    true,
		damage:     func(_ *game.Unit) int { return 8 },
		hitLossPct: 0.15, missLossPct: 0.05,
		forceCrit: true,
	},
}

// squadCasualties removes a fraction of the full squad strength, at least
// one trooper, capped at the troops remaining.
func squadCasualties(b *game.Battle, u *game.Unit, pct float64) int {
	if u.Kind != game.KindInfantry || u.Troops <= 0 {
		return 0
	}
	lost := int(math.Ceil(pct * float64(u.Troops)))
	if lost < 1 {
		lost = 1
	}
	if lost > u.TroopsRemaining() {
		lost = u.TroopsRemaining()
	}
	u.Casualties += lost
	if u.TroopsRemaining() == 0 {
		u.AddEffect(game.StatusDestroyed)
	}
	b.AppendLog(u.Name+" loses troopers in the assault", map[string]any{
		"unit": u.ID, "lost": lost, "remaining": u.TroopsRemaining(),
	})
	return lost
}

// InfantryAttack resolves one specialist infantry assault against a mech or
// vehicle. These attacks trade squad casualties for effects ordinary fire
// cannot produce: movement crits, swarm criticals, immobilization.
func InfantryAttack(b *game.Battle, attackerID, targetID uint, kind InfantryAttackKind, roller dice.Roller) AttackResult {
	profile, ok := infantryProfiles[kind]
	if !ok {
		return illegal(ReasonWrongUnitKind)
	}
	attacker := b.UnitByID(attackerID)
	target := b.UnitByID(targetID)
	if reason := checkAttackPreconditions(b, attacker, target); reason != "" {
		return illegal(reason)
	}
	if attacker.Kind != game.KindInfantry || target.Kind == game.KindInfantry {
		return illegal(ReasonWrongUnitKind)
	}
	if !attacker.HasAbility(profile.capability) {
		return illegal(ReasonMissingCapability)
	}
	distance := attacker.Position().Distance(target.Position())
	if profile.sameHex {
		if distance != 0 {
			return illegal(ReasonNotSameHex)
		}
	} else if distance != 1 {
		return illegal(ReasonNotAdjacent)
	}

	mods := []Modifier{{Source: "base", Value: profile.baseTN}}
	if target.HasEffect(game.StatusProne) {
		mods = append(mods, Modifier{Source: "prone target", Value: -2})
	}
	tn := 0
	for _, m := range mods {
		tn += m.Value
	}

	d1, d2, natural := dice.Sum2D6(roller)
	total := natural + attacker.Skill

	res := AttackResult{
		Legal: true,
		Roll: RollDetail{
			Dice:      []int{d1, d2},
			Natural:   natural,
			Total:     total,
			Target:    tn,
			Modifiers: mods,
		},
	}
	attacker.HasFired = true

	if total < tn {
		squadCasualties(b, attacker, profile.missLossPct)
		b.AppendLog(attacker.Name+" fails a "+string(kind)+" on "+target.Name, map[string]any{
			"attacker": attacker.ID, "target": target.ID, "roll": total, "target_number": tn,
		})
		return res
	}
	res.Hit = true

	damage := profile.damage(attacker)
	damage = ability.IncomingDamage(ability.Context{
		Battle: b, Unit: target, Other: attacker, Defending: true,
	}, damage)
	if damage < 0 {
		damage = 0
	}
	res.Damage = damage

	out := applyDamage(target, damage)
	squadCasualties(b, attacker, profile.hitLossPct)
	b.AppendLog(attacker.Name+" lands a "+string(kind)+" on "+target.Name, map[string]any{
		"attacker": attacker.ID, "target": target.ID, "damage": damage,
	})

	if out.destroyed {
		res.Effects = append(res.Effects, string(game.StatusDestroyed))
		return res
	}

	if profile.rider != game.CritNone && profile.rider != "" {
		if !ability.PreventsCritical(ability.Context{Battle: b, Unit: target, Other: attacker, Defending: true}, profile.rider) {
			applyCriticalEffect(b, target, profile.rider)
			res.Effects = append(res.Effects, string(profile.rider))
		}
	}
	if profile.forceCrit || out.structureCritical {
		res.CriticalTriggered = true
		if eff := rollCritical(b, attacker, target, roller); eff != game.CritNone {
			res.Effects = append(res.Effects, string(eff))
		}
	}
	return res
}
