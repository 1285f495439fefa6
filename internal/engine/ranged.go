package engine

import (
	"github.com/hexmech/hexmech/internal/ability"
	"github.com/hexmech/hexmech/internal/dice"
	"github.com/hexmech/hexmech/internal/game"
)

const baseTargetNumber = 8

// RangedOptions tune one weapons attack.
type RangedOptions struct {
	// Overheat pushes the reactor for +1 damage at +2 heat. Mech only.
	Overheat bool `json:"overheat"`
	// Missile marks the salvo as missile-based, which point-defense
	// abilities on the target can thin out.
	Missile bool `json:"missile"`
}

// bandModifier is the target-number step per range band.
func bandModifier(band game.RangeBand) int {
	switch band {
	case game.BandShort:
		return 0
	case game.BandMedium:
		return 2
	case game.BandLong:
		return 4
	default:
		return 6
	}
}

// checkAttackPreconditions covers the legality gates shared by every attack
// variant. Returns an empty string when the attack may proceed.
func checkAttackPreconditions(b *game.Battle, attacker, target *game.Unit) string {
	switch {
	case b.Phase != game.PhaseCombat:
		return ReasonWrongPhase
	case attacker == nil || target == nil:
		return ReasonUnknownUnit
	case attacker.Side != b.ActiveSide:
		return ReasonNotActiveSide
	case attacker.Destroyed():
		return ReasonUnitDestroyed
	case target.Destroyed():
		return ReasonTargetDestroyed
	case attacker.HasEffect(game.StatusShutdown):
		return ReasonAttackerShutDown
	case attacker.HasFired:
		return ReasonAlreadyFired
	case attacker.ID == target.ID:
		return ReasonSelfTarget
	case attacker.Side == target.Side:
		return ReasonSameSide
	}
	return ""
}

// targetNumberFor assembles the full modifier stack for a ranged shot. Each
// contribution is recorded so the caller can expose the arithmetic.
func targetNumberFor(b *game.Battle, attacker, target *game.Unit, band game.RangeBand) (int, []Modifier) {
	mods := []Modifier{{Source: "base", Value: baseTargetNumber}}
	add := func(source string, v int) {
		if v != 0 {
			mods = append(mods, Modifier{Source: source, Value: v})
		}
	}

	add("range", bandModifier(band))
	add("target movement", target.TMM)
	add("electronic warfare", ability.TargetMovementModifier(b, target))
	add("terrain", game.TerrainCombatModifier(b.TerrainAt(target.Position())))
	add("heat", heatToHitPenalty(attacker))
	add("fire control damage", 2*attacker.FireControlHits)
	if attacker.HasEffect(game.StatusSensorsDamaged) {
		add("sensor damage", 1)
	}
	if attacker.HasEffect(game.StatusProne) {
		add("prone attacker", 2)
	}
	if target.HasEffect(game.StatusProne) && attacker.Position().Distance(target.Position()) <= 1 {
		add("prone target", -2)
	}
	add("targeting systems", ability.AttackRollModifier(ability.Context{Battle: b, Unit: attacker, Other: target}))

	total := 0
	for _, m := range mods {
		total += m.Value
	}
	return total, mods
}

// RangedAttack resolves one weapons attack end to end: legality, range band,
// target number, the 2d6 roll, damage with defensive ability folds, and any
// triggered critical. The result carries the full roll breakdown.
func RangedAttack(b *game.Battle, attackerID, targetID uint, opts RangedOptions, roller dice.Roller) AttackResult {
	attacker := b.UnitByID(attackerID)
	target := b.UnitByID(targetID)
	if reason := checkAttackPreconditions(b, attacker, target); reason != "" {
		return illegal(reason)
	}

	distance := attacker.Position().Distance(target.Position())
	band := game.BandForDistance(distance)
	baseDamage := attacker.DamageForBand(band)
	if baseDamage <= 0 {
		return illegal(ReasonNoEffectiveWeapons)
	}

	overheat := opts.Overheat && attacker.Kind == game.KindMech

	tn, mods := targetNumberFor(b, attacker, target, band)
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

	// Firing is the unit's combat action whether or not it connects.
	attacker.HasFired = true
	heat := weaponHeatForBand(band)
	if overheat {
		heat += heatOverheat
	}
	addHeat(attacker, heat)

	if total < tn {
		b.AppendLog(attacker.Name+" misses "+target.Name, map[string]any{
			"attacker": attacker.ID, "target": target.ID, "roll": total, "target_number": tn,
		})
		return res
	}
	res.Hit = true

	damage := baseDamage
	if overheat {
		damage++
	}
	damage = ability.IncomingDamage(ability.Context{
		Battle: b, Unit: target, Other: attacker, Defending: true, Missile: opts.Missile,
	}, damage)
	if damage < 0 {
		damage = 0
	}
	res.Damage = damage

	out := applyDamage(target, damage)
	b.AppendLog(attacker.Name+" hits "+target.Name, map[string]any{
		"attacker": attacker.ID, "target": target.ID, "damage": damage,
		"armor": out.armorApplied, "structure": out.structureApplied,
	})

	if out.destroyed {
		res.Effects = append(res.Effects, string(game.StatusDestroyed))
		return res
	}

	if shouldRollCritical(attacker, natural, out) {
		res.CriticalTriggered = true
		if eff := rollCritical(b, attacker, target, roller); eff != game.CritNone {
			res.Effects = append(res.Effects, string(eff))
		}
	}
	return res
}

// shouldRollCritical gathers the critical triggers: structure loss crossing
// the quarter threshold, a natural 12, or a natural 10+ from a precision
// attacker.
func shouldRollCritical(attacker *game.Unit, natural int, out damageOutcome) bool {
	if out.structureCritical {
		return true
	}
	if natural >= 12 {
		return true
	}
	if natural >= 10 && ability.ForcesCritCheckOn10(attacker) {
		return true
	}
	return false
}
