package engine

import (
	"github.com/hexmech/hexmech/internal/ability"
	"github.com/hexmech/hexmech/internal/dice"
	"github.com/hexmech/hexmech/internal/game"
)

// MeleeKind names one close-combat attack variant.
type MeleeKind string

const (
	MeleeStandard      MeleeKind = "standard"
	MeleeWeapon        MeleeKind = "weapon"
	MeleePunch         MeleeKind = "punch"
	MeleeKick          MeleeKind = "kick"
	MeleeCharge        MeleeKind = "charge"
	MeleeDeathFromAbov MeleeKind = "death_from_above"
	MeleeShoulderCheck MeleeKind = "shoulder_check"
	MeleeHeadButt      MeleeKind = "head_butt"
	MeleeBodySlam      MeleeKind = "body_slam"
	MeleeTrip          MeleeKind = "trip"
	MeleeGrapple       MeleeKind = "grapple"
	MeleeStomp         MeleeKind = "stomp"
)

const pilotingTN = 8

// Melee hit locations.
const (
	LocationHead  = "head"
	LocationTorso = "torso"
	LocationArm   = "arm"
	LocationLeg   = "leg"
)

// meleeProfile is the static shape of one variant: its base target number,
// heat cost, the weight divisor feeding the damage formula and the
// pip-indexed hit-location table. A nil location table means the variant
// has no meaningful strike point (grapple).
type meleeProfile struct {
	baseTN    int
	heat      int
	mechOnly  bool
	damage    func(attacker, target *game.Unit) int
	self      func(attacker *game.Unit, damage int) int
	locations []string
}

var meleeProfiles = map[MeleeKind]meleeProfile{
	MeleeStandard: {
		baseTN: 7, heat: 1,
		damage:    func(a, _ *game.Unit) int { return ceilDiv(a.Weight, 10) },
		locations: []string{LocationArm, LocationArm, LocationTorso, LocationTorso, LocationTorso, LocationLeg},
	},
	MeleeWeapon: {
		baseTN: 6, heat: 1,
		damage:    func(a, _ *game.Unit) int { return ceilDiv(a.Weight, 10) + 1 },
		locations: []string{LocationArm, LocationTorso, LocationTorso, LocationTorso, LocationLeg, LocationLeg},
	},
	MeleePunch: {
		baseTN: 6, heat: 1, mechOnly: true,
		damage:    func(a, _ *game.Unit) int { return ceilDiv(a.Weight, 15) },
		locations: []string{LocationArm, LocationArm, LocationArm, LocationTorso, LocationTorso, LocationTorso},
	},
	MeleeKick: {
		baseTN: 7, heat: 1, mechOnly: true,
		damage:    func(a, _ *game.Unit) int { return ceilDiv(a.Weight, 7) },
		locations: []string{LocationLeg, LocationLeg, LocationLeg, LocationLeg, LocationLeg, LocationLeg},
	},
	MeleeCharge: {
		baseTN: 8, heat: 2,
		damage:    func(a, _ *game.Unit) int { return ceilDiv(a.Weight, 10) + a.MovedHexes/2 },
		self:      func(_ *game.Unit, dmg int) int { return ceilDiv(dmg, 3) },
		locations: []string{LocationTorso, LocationTorso, LocationTorso, LocationTorso, LocationArm, LocationLeg},
	},
	MeleeDeathFromAbov: {
		baseTN: 9, heat: 3, mechOnly: true,
		damage:    func(a, _ *game.Unit) int { return ceilDiv(a.Weight, 7) + 2 },
		self:      func(a *game.Unit, _ int) int { return ceilDiv(a.Weight, 15) },
		locations: []string{LocationHead, LocationTorso, LocationTorso, LocationTorso, LocationArm, LocationLeg},
	},
	MeleeShoulderCheck: {
		baseTN: 7, heat: 1, mechOnly: true,
		damage:    func(a, _ *game.Unit) int { return ceilDiv(a.Weight, 12) },
		locations: []string{LocationTorso, LocationTorso, LocationTorso, LocationTorso, LocationArm, LocationArm},
	},
	MeleeHeadButt: {
		baseTN: 9, heat: 1, mechOnly: true,
		damage:    func(a, _ *game.Unit) int { return maxInt(1, ceilDiv(a.Weight, 20)) },
		locations: []string{LocationHead, LocationHead, LocationTorso, LocationTorso, LocationTorso, LocationTorso},
	},
	MeleeBodySlam: {
		baseTN: 8, heat: 2, mechOnly: true,
		damage:    func(a, _ *game.Unit) int { return ceilDiv(a.Weight, 8) },
		self:      func(a *game.Unit, _ int) int { return ceilDiv(a.Weight, 16) },
		locations: []string{LocationTorso, LocationTorso, LocationTorso, LocationTorso, LocationArm, LocationLeg},
	},
	MeleeTrip: {
		baseTN: 8, heat: 1, mechOnly: true,
		damage:    func(_, _ *game.Unit) int { return 1 },
		locations: []string{LocationLeg, LocationLeg, LocationLeg, LocationLeg, LocationLeg, LocationLeg},
	},
	MeleeGrapple: {
		baseTN: 8, heat: 1, mechOnly: true,
		damage: func(_, _ *game.Unit) int { return 0 },
	},
	MeleeStomp: {
		baseTN: 5, heat: 1, mechOnly: true,
		damage:    func(a, _ *game.Unit) int { return ceilDiv(a.Weight, 5) },
		locations: []string{LocationLeg, LocationLeg, LocationLeg, LocationTorso, LocationTorso, LocationTorso},
	},
}

// meleeHitLocation picks the struck location from the variant's weighted
// candidate table. Single-candidate variants (kick, trip) never consume a
// die, keeping their resolution deterministic.
func meleeHitLocation(profile meleeProfile, roller dice.Roller) string {
	locs := profile.locations
	if len(locs) == 0 {
		return ""
	}
	uniform := true
	for _, l := range locs[1:] {
		if l != locs[0] {
			uniform = false
			break
		}
	}
	if uniform {
		return locs[0]
	}
	return locs[roller.D6()-1]
}

// weightDeltaModifier makes lighter machines harder to strike in close
// combat: one point per full 25 tons of weight difference, capped at two,
// negative (easier) when the target is the heavier machine.
func weightDeltaModifier(attacker, target *game.Unit) int {
	d := (attacker.Weight - target.Weight) / 25
	if d > 2 {
		d = 2
	}
	if d < -2 {
		d = -2
	}
	return d
}

// meleeTargetNumber stacks the situational modifiers onto a variant's base.
func meleeTargetNumber(b *game.Battle, attacker, target *game.Unit, profile meleeProfile) (int, []Modifier) {
	mods := []Modifier{{Source: "base", Value: profile.baseTN}}
	add := func(source string, v int) {
		if v != 0 {
			mods = append(mods, Modifier{Source: source, Value: v})
		}
	}
	add("heat", heatToHitPenalty(attacker))
	add("terrain", game.TerrainCombatModifier(b.TerrainAt(target.Position())))
	add("weight difference", weightDeltaModifier(attacker, target))
	if target.HasEffect(game.StatusDefensiveStance) {
		add("defensive stance", 2)
	}
	if target.HasEffect(game.StatusProne) {
		add("prone target", -2)
	}
	if attacker.HasEffect(game.StatusProne) {
		add("prone attacker", 2)
	}
	add("targeting systems", ability.AttackRollModifier(ability.Context{Battle: b, Unit: attacker, Other: target}))

	total := 0
	for _, m := range mods {
		total += m.Value
	}
	return total, mods
}

// checkMeleePreconditions covers the variant-specific legality gates on top
// of the shared attack preconditions.
func checkMeleePreconditions(attacker, target *game.Unit, kind MeleeKind, profile meleeProfile) string {
	if profile.mechOnly && attacker.Kind != game.KindMech {
		return ReasonWrongUnitKind
	}
	if !attacker.Position().Adjacent(target.Position()) {
		return ReasonNotAdjacent
	}
	switch kind {
	case MeleeCharge:
		if attacker.MovedHexes < 2 {
			return ReasonInsufficientCharge
		}
	case MeleeDeathFromAbov:
		if attacker.MoveType != game.MoveJump {
			return ReasonDidNotJump
		}
	case MeleeStomp:
		if !target.HasEffect(game.StatusProne) {
			return ReasonTargetNotProne
		}
	case MeleeGrapple:
		// A grappler needs at least two thirds of the target's weight.
		if attacker.Weight*3 < target.Weight*2 {
			return ReasonWeightMismatch
		}
	}
	return ""
}

// pilotingCheck rolls 2d6 against the standard piloting target. Failure
// drops the unit prone. Only mechs fall; other kinds always pass.
func pilotingCheck(b *game.Battle, u *game.Unit, roller dice.Roller, cause string) bool {
	if u.Kind != game.KindMech || u.Destroyed() {
		return true
	}
	_, _, roll := dice.Sum2D6(roller)
	if roll >= pilotingTN {
		return true
	}
	u.AddEffect(game.StatusProne)
	b.AppendLog(u.Name+" falls ("+cause+")", map[string]any{"unit": u.ID, "roll": roll})
	return false
}

// MeleeAttack resolves one close-combat attack of the given variant. Beyond
// the shared hit/damage pipeline each variant carries its own rider:
// knockdowns, pushes, grapples, pilot injury and self damage.
func MeleeAttack(b *game.Battle, attackerID, targetID uint, kind MeleeKind, roller dice.Roller) AttackResult {
	profile, ok := meleeProfiles[kind]
	if !ok {
		return illegal(ReasonWrongUnitKind)
	}
	attacker := b.UnitByID(attackerID)
	target := b.UnitByID(targetID)
	if reason := checkAttackPreconditions(b, attacker, target); reason != "" {
		return illegal(reason)
	}
	if reason := checkMeleePreconditions(attacker, target, kind, profile); reason != "" {
		return illegal(reason)
	}

	tn, mods := meleeTargetNumber(b, attacker, target, profile)
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
	addHeat(attacker, profile.heat)

	if total < tn {
		resolveMeleeMiss(b, attacker, kind, &res, roller)
		b.AppendLog(attacker.Name+" misses "+target.Name+" ("+string(kind)+")", map[string]any{
			"attacker": attacker.ID, "target": target.ID, "roll": total, "target_number": tn,
		})
		return res
	}
	res.Hit = true
	res.Location = meleeHitLocation(profile, roller)

	damage := profile.damage(attacker, target)
	damage = ability.IncomingDamage(ability.Context{
		Battle: b, Unit: target, Other: attacker, Defending: true,
	}, damage)
	if damage < 0 {
		damage = 0
	}
	res.Damage = damage

	out := applyDamage(target, damage)
	b.AppendLog(attacker.Name+" hits "+target.Name+" ("+string(kind)+")", map[string]any{
		"attacker": attacker.ID, "target": target.ID, "damage": damage, "location": res.Location,
	})

	if profile.self != nil {
		res.SelfDamage = profile.self(attacker, damage)
		if res.SelfDamage > 0 {
			applyDamage(attacker, res.SelfDamage)
		}
	}

	resolveMeleeRiders(b, attacker, target, kind, natural, out, &res, roller)
	return res
}

// resolveMeleeMiss applies the variant's failure consequences.
func resolveMeleeMiss(b *game.Battle, attacker *game.Unit, kind MeleeKind, res *AttackResult, roller dice.Roller) {
	switch kind {
	case MeleeKick:
		// A whiffed kick unbalances the attacker.
		pilotingCheck(b, attacker, roller, "missed kick")
	case MeleeDeathFromAbov:
		res.SelfDamage = ceilDiv(attacker.Weight, 10)
		applyDamage(attacker, res.SelfDamage)
		attacker.AddEffect(game.StatusProne)
		res.Effects = append(res.Effects, string(game.StatusProne))
	case MeleeCharge:
		res.SelfDamage = 1
		applyDamage(attacker, res.SelfDamage)
	case MeleeHeadButt:
		res.SelfDamage = 1
		applyDamage(attacker, res.SelfDamage)
	}
}

// resolveMeleeRiders applies the variant's on-hit side effects after damage.
func resolveMeleeRiders(b *game.Battle, attacker, target *game.Unit, kind MeleeKind, natural int, out damageOutcome, res *AttackResult, roller dice.Roller) {
	if out.destroyed {
		res.Effects = append(res.Effects, string(game.StatusDestroyed))
	}

	switch kind {
	case MeleeKick:
		if !out.destroyed && !pilotingCheck(b, target, roller, "kicked") {
			res.Effects = append(res.Effects, string(game.StatusProne))
		}
	case MeleeTrip:
		if !out.destroyed && !pilotingCheck(b, target, roller, "tripped") {
			res.Effects = append(res.Effects, string(game.StatusProne))
		}
	case MeleeCharge, MeleeBodySlam:
		if !out.destroyed && !pilotingCheck(b, target, roller, "slammed") {
			res.Effects = append(res.Effects, string(game.StatusProne))
		}
		if !pilotingCheck(b, attacker, roller, "follow-through") {
			res.Effects = append(res.Effects, "attacker "+string(game.StatusProne))
		}
	case MeleeDeathFromAbov:
		if !out.destroyed {
			target.AddEffect(game.StatusProne)
			res.Effects = append(res.Effects, string(game.StatusProne))
		}
		attacker.AddEffect(game.StatusProne)
		res.Effects = append(res.Effects, "attacker "+string(game.StatusProne))
	case MeleeShoulderCheck:
		if !out.destroyed {
			pushTarget(b, attacker, target, res)
			damageSensors(b, target, natural, res)
		}
	case MeleeHeadButt:
		if !out.destroyed && target.Kind == game.KindMech {
			// Slamming into the reactor housing dumps heat into the target.
			addHeat(target, 1)
			res.Effects = append(res.Effects, "heat transfer")
		}
		if !out.destroyed && natural >= 10 && target.Kind == game.KindMech {
			target.AddEffect(game.StatusPilotInjured)
			res.Effects = append(res.Effects, string(game.StatusPilotInjured))
		}
		if !out.destroyed {
			damageSensors(b, target, natural, res)
		}
	case MeleeGrapple:
		if !out.destroyed {
			attacker.AddEffect(game.StatusGrappled)
			target.AddEffect(game.StatusGrappled)
			res.Effects = append(res.Effects, string(game.StatusGrappled))
		}
	}

	if !out.destroyed && out.structureCritical {
		res.CriticalTriggered = true
		if eff := rollCritical(b, attacker, target, roller); eff != game.CritNone {
			res.Effects = append(res.Effects, string(eff))
		}
	}
}

// damageSensors wrecks the target's sensor suite on a natural 11 or 12.
// Infantry carry no sensors to break.
func damageSensors(b *game.Battle, target *game.Unit, natural int, res *AttackResult) {
	if natural < 11 || target.Kind == game.KindInfantry || target.HasEffect(game.StatusSensorsDamaged) {
		return
	}
	target.AddEffect(game.StatusSensorsDamaged)
	res.Effects = append(res.Effects, string(game.StatusSensorsDamaged))
	b.AppendLog(target.Name+" loses its sensors", map[string]any{"unit": target.ID})
}

// pushTarget shoves the target one hex directly away from the attacker. A
// blocked or off-map push becomes a collision for one extra point instead.
func pushTarget(b *game.Battle, attacker, target *game.Unit, res *AttackResult) {
	from := attacker.Position()
	at := target.Position()
	dest := game.Coord{Q: at.Q + (at.Q - from.Q), R: at.R + (at.R - from.R)}

	if b.InBounds(dest) && b.UnitAt(dest) == nil {
		if _, passable := game.TerrainMovementCost(b.TerrainAt(dest), target.Kind, target.Subtype); passable {
			target.SetPosition(dest)
			b.AppendLog(target.Name+" is shoved back", map[string]any{
				"unit": target.ID, "to_q": dest.Q, "to_r": dest.R,
			})
			res.Effects = append(res.Effects, "pushed")
			return
		}
	}
	applyDamage(target, 1)
	res.Effects = append(res.Effects, "collision")
	b.AppendLog(target.Name+" slams into an obstruction", map[string]any{"unit": target.ID})
}
