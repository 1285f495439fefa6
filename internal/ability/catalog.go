package ability

import "github.com/hexmech/hexmech/internal/game"

// Ability codes. The set is closed: new abilities are added here, never
// registered dynamically.
const (
	CodeArmored       game.AbilityCode = "ARM"
	CodeAntiMissile   game.AbilityCode = "AMS"
	CodeHardenedArmor game.AbilityCode = "HARD"
	CodePrecision     game.AbilityCode = "PRC"
	CodeECM           game.AbilityCode = "ECM"
	CodeCounterECM    game.AbilityCode = "CECM"
	CodeRecon         game.AbilityCode = "RCN"
	CodeChassis       game.AbilityCode = "CHS"
	CodeReinforced    game.AbilityCode = "RNF"
	CodePathfinder    game.AbilityCode = "PATH"
	CodeAntiMech      game.AbilityCode = "AMT"
	CodeDemolitions   game.AbilityCode = "DEM"
)

var allKinds = []game.UnitKind{game.KindMech, game.KindVehicle, game.KindInfantry}
var mechOnly = []game.UnitKind{game.KindMech}
var mechVehicle = []game.UnitKind{game.KindMech, game.KindVehicle}
var infantryOnly = []game.UnitKind{game.KindInfantry}

// catalogOrder keeps All() output stable.
var catalogOrder = []game.AbilityCode{
	CodeArmored, CodeAntiMissile, CodeHardenedArmor, CodePrecision,
	CodeECM, CodeCounterECM, CodeRecon, CodeChassis, CodeReinforced,
	CodePathfinder, CodeAntiMech, CodeDemolitions,
}

var catalog = map[game.AbilityCode]Definition{
	CodeArmored: {
		Code:        CodeArmored,
		Name:        "Armored Plating",
		Description: "Extra plating absorbs one point from every incoming hit.",
		Kinds:       mechVehicle,
		Passive:     true,
		Hooks: Hooks{
			ModifyIncomingDamage: func(_ Context, v int) int {
				if v > 0 {
					v--
				}
				return v
			},
		},
	},
	CodeAntiMissile: {
		Code:        CodeAntiMissile,
		Name:        "Anti-Missile System",
		Description: "Point defense shoots down part of any missile salvo.",
		Kinds:       mechVehicle,
		Passive:     true,
		Hooks: Hooks{
			ModifyIncomingDamage: func(ctx Context, v int) int {
				if ctx.Missile && v > 0 {
					v--
				}
				return v
			},
		},
	},
	CodeHardenedArmor: {
		Code:        CodeHardenedArmor,
		Name:        "Hardened Armor",
		Description: "Dense armor blunts critical hits (-2 on the critical roll).",
		Kinds:       mechVehicle,
		Passive:     true,
		Hooks: Hooks{
			ModifyCriticalRoll: func(ctx Context, v int) int {
				if !ctx.Defending {
					return v
				}
				return v - 2
			},
		},
	},
	CodePrecision: {
		Code:          CodePrecision,
		Name:          "Precision Targeting",
		Description:   "Fire control tuned for weak points: +1 on critical rolls against the target, and hits on a natural 10+ force an extra critical check.",
		Kinds:         mechVehicle,
		Passive:       true,
		ForceCritOn10: true,
		Hooks: Hooks{
			ModifyCriticalRoll: func(ctx Context, v int) int {
				if ctx.Defending {
					return v
				}
				return v + 1
			},
		},
	},
	CodeECM: {
		Code:        CodeECM,
		Name:        "ECM Suite",
		Description: "Jamming makes the carrier harder to lock: +1 target movement modifier unless suppressed by an enemy counter-ECM in range.",
		Kinds:       mechVehicle,
		Passive:     true,
		Radius:      2,
		// The TMM bonus is resolved zonally (see TargetMovementModifier),
		// not through the per-unit fold, because it depends on other units.
	},
	CodeCounterECM: {
		Code:        CodeCounterECM,
		Name:        "Counter-ECM Suite",
		Description: "Burns through enemy jamming within its radius.",
		Kinds:       mechVehicle,
		Passive:     true,
		Radius:      6,
	},
	CodeRecon: {
		Code:        CodeRecon,
		Name:        "Recon Systems",
		Description: "Forward sensors grant the side +1 on initiative while the carrier lives.",
		Kinds:       allKinds,
		Passive:     true,
		Hooks: Hooks{
			ModifyInitiative: func(_ Context, v int) int { return v + 1 },
		},
	},
	CodeChassis: {
		Code:           CodeChassis,
		Name:           "Reinforced Chassis",
		Description:    "A heavier internal frame: +1 structure, applied when the unit is built.",
		Kinds:          mechVehicle,
		Passive:        true,
		StructureBonus: 1,
	},
	CodeReinforced: {
		Code:        CodeReinforced,
		Name:        "Reinforced Internals",
		Description: "Bracing blocks movement and weapon criticals while the structure is still intact.",
		Kinds:       mechVehicle,
		Passive:     true,
		Hooks: Hooks{
			PreventCriticalType: func(ctx Context, eff game.CriticalEffect) bool {
				if eff != game.CritMovementHit && eff != game.CritWeaponHit {
					return false
				}
				return ctx.Unit.StructureDamage == 0
			},
		},
	},
	CodePathfinder: {
		Code:        CodePathfinder,
		Name:        "Pathfinder",
		Description: "Terrain training: woods and rough cost one less to cross (minimum 1).",
		Kinds:       allKinds,
		Passive:     true,
		Hooks: Hooks{
			ModifyMovementCost: func(ctx Context, v int) int {
				switch ctx.Terrain {
				case game.TerrainWoods, game.TerrainRough, game.TerrainRubble:
					if v > 1 {
						v--
					}
				}
				return v
			},
		},
	},
	CodeAntiMech: {
		Code:        CodeAntiMech,
		Name:        "Anti-Mech Training",
		Description: "The squad is trained and equipped for leg attacks and swarming.",
		Kinds:       infantryOnly,
		Passive:     true,
	},
	CodeDemolitions: {
		Code:        CodeDemolitions,
		Name:        "Demolitions Gear",
		Description: "The squad carries mines and demolition charges.",
		Kinds:       infantryOnly,
		Passive:     true,
	},
}

// ECMSuppressed reports whether an enemy counter-ECM carrier sits close
// enough to burn through the given ECM carrier's jamming.
func ECMSuppressed(b *game.Battle, carrier *game.Unit) bool {
	for _, enemy := range b.LivingUnits(game.Opponent(carrier.Side)) {
		if !enemy.HasAbility(CodeCounterECM) {
			continue
		}
		def := catalog[CodeCounterECM]
		if enemy.Position().Distance(carrier.Position()) <= def.Radius {
			return true
		}
	}
	return false
}

// TargetMovementModifier resolves the defender-side zonal TMM bonus. ECM on
// the target adds +1 unless suppressed; the result feeds the target number
// alongside the target's base TMM. Resolved by scanning all live units
// rather than through the per-unit fold because it compares against units
// other than the receiver.
func TargetMovementModifier(b *game.Battle, target *game.Unit) int {
	mod := 0
	if target.HasAbility(CodeECM) && !ECMSuppressed(b, target) {
		mod++
	}
	return mod
}
