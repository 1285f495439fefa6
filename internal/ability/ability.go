// Package ability holds the closed catalog of special-ability codes and the
// hook dispatch that lets abilities modify rolls, damage, initiative,
// criticals and movement without the resolution pipeline knowing about any
// specific ability. Abilities are data: a unit's behavior is determined
// entirely by the codes it carries, looked up here at resolution time.
package ability

import (
	"github.com/hexmech/hexmech/internal/game"
	"github.com/hexmech/hexmech/internal/logging"
)

// Context carries the situation a hook is evaluated in. Fields not relevant
// to a given hook are left zero.
type Context struct {
	Battle *game.Battle
	Unit   *game.Unit // the unit whose ability is being consulted
	Other  *game.Unit // the opposing unit in the exchange, may be nil
	// Defending is set when the carrier is the one being hit. Hooks that
	// only make sense on one side of an exchange check it.
	Defending bool
	Missile   bool // the incoming attack is missile-based
	Terrain   game.TerrainKind
}

// Hooks are the extension points an ability may fill in. Most abilities
// implement one or two. Value-modifying hooks receive the folded value so
// far and return the next value; dispatch feeds each output forward in the
// unit's stored ability order.
type Hooks struct {
	ModifyAttackRoll     func(ctx Context, v int) int
	ModifyTargetMovement func(ctx Context, v int) int
	ModifyIncomingDamage func(ctx Context, v int) int
	ModifyInitiative     func(ctx Context, v int) int
	ModifyCriticalRoll   func(ctx Context, v int) int
	ModifyMovementCost   func(ctx Context, v int) int
	PreventCriticalType  func(ctx Context, eff game.CriticalEffect) bool
}

// Definition is a static registry entry for one ability code.
type Definition struct {
	Code        game.AbilityCode
	Name        string
	Description string
	// Kinds lists the unit kinds the ability may appear on.
	Kinds []game.UnitKind
	// Passive abilities apply without activation; all current abilities are
	// passive, the flag exists for catalog completeness.
	Passive bool
	// Radius is the effect radius in hexes for zonal abilities, 0 otherwise.
	Radius int
	// StructureBonus/ArmorBonus apply once at unit construction, outside
	// the hook dispatch path.
	StructureBonus int
	ArmorBonus     int
	// ForceCritOn10 makes hits with a natural roll of 10+ trigger an
	// additional critical check even without the standard triggers.
	ForceCritOn10 bool

	Hooks Hooks
}

// Lookup returns the definition for code. Unknown codes report ok=false;
// callers treat them as no-ops so one malformed ability never halts a
// combat round.
func Lookup(code game.AbilityCode) (Definition, bool) {
	def, ok := catalog[code]
	return def, ok
}

// Known reports whether code exists in the catalog.
func Known(code game.AbilityCode) bool {
	_, ok := catalog[code]
	return ok
}

// All returns every catalog definition (for config validation and the API).
func All() []Definition {
	out := make([]Definition, 0, len(catalog))
	for _, code := range catalogOrder {
		out = append(out, catalog[code])
	}
	return out
}

// AppliesTo reports whether the definition may appear on kind.
func (d Definition) AppliesTo(kind game.UnitKind) bool {
	for _, k := range d.Kinds {
		if k == kind {
			return true
		}
	}
	return false
}

func warnUnknown(code game.AbilityCode, u *game.Unit) {
	logging.Warn("unknown ability code, treating as no-op", logging.Fields{
		"code": string(code),
		"unit": u.Name,
	})
}

// fold runs pick(def) over the unit's abilities in stored order, feeding
// each hook's output forward. Missing hooks and unknown codes pass the
// value through unchanged.
func fold(u *game.Unit, ctx Context, v int, pick func(Hooks) func(Context, int) int) int {
	for _, code := range u.Abilities() {
		def, ok := catalog[code]
		if !ok {
			warnUnknown(code, u)
			continue
		}
		if fn := pick(def.Hooks); fn != nil {
			v = fn(ctx, v)
		}
	}
	return v
}

// AttackRollModifier folds modifyAttackRoll over the attacker's abilities,
// starting from zero. The result is added to the target number.
func AttackRollModifier(ctx Context) int {
	return fold(ctx.Unit, ctx, 0, func(h Hooks) func(Context, int) int { return h.ModifyAttackRoll })
}

// IncomingDamage folds modifyIncomingDamage over the defender's abilities.
// Order matters: stacked reductions apply sequentially, never re-combined.
func IncomingDamage(ctx Context, damage int) int {
	return fold(ctx.Unit, ctx, damage, func(h Hooks) func(Context, int) int { return h.ModifyIncomingDamage })
}

// InitiativeBonus folds modifyInitiative over one unit's abilities.
func InitiativeBonus(ctx Context) int {
	return fold(ctx.Unit, ctx, 0, func(h Hooks) func(Context, int) int { return h.ModifyInitiative })
}

// CriticalRoll folds modifyCriticalRoll over the defender's abilities.
// Callers clamp the result to the 2..12 table range afterwards.
func CriticalRoll(ctx Context, roll int) int {
	return fold(ctx.Unit, ctx, roll, func(h Hooks) func(Context, int) int { return h.ModifyCriticalRoll })
}

// MovementCost folds modifyMovementCost over the mover's abilities.
func MovementCost(ctx Context, cost int) int {
	return fold(ctx.Unit, ctx, cost, func(h Hooks) func(Context, int) int { return h.ModifyMovementCost })
}

// PreventsCritical reports whether any of the unit's abilities vetoes the
// given critical effect.
func PreventsCritical(ctx Context, eff game.CriticalEffect) bool {
	for _, code := range ctx.Unit.Abilities() {
		def, ok := catalog[code]
		if !ok {
			warnUnknown(code, ctx.Unit)
			continue
		}
		if def.Hooks.PreventCriticalType != nil && def.Hooks.PreventCriticalType(ctx, eff) {
			return true
		}
	}
	return false
}

// ForcesCritCheckOn10 reports whether the attacker carries an ability that
// forces an extra critical check on natural rolls of 10 or more.
func ForcesCritCheckOn10(u *game.Unit) bool {
	for _, code := range u.Abilities() {
		if def, ok := catalog[code]; ok && def.ForceCritOn10 {
			return true
		}
	}
	return false
}

// ConstructionBonus sums the one-time structural modifiers for a template's
// ability set. Applied when the unit is built, never at resolution time.
func ConstructionBonus(codes []game.AbilityCode) game.ConstructionBonus {
	var bonus game.ConstructionBonus
	for _, code := range codes {
		if def, ok := catalog[code]; ok {
			bonus.Structure += def.StructureBonus
			bonus.Armor += def.ArmorBonus
		}
	}
	return bonus
}
