package game

import (
	"strings"

	"gorm.io/gorm"
)

type UnitKind string

const (
	KindMech     UnitKind = "mech"
	KindVehicle  UnitKind = "vehicle"
	KindInfantry UnitKind = "infantry"
)

// VehicleSubtype refines KindVehicle; empty for other kinds.
type VehicleSubtype string

const (
	SubtypeNone    VehicleSubtype = ""
	SubtypeTracked VehicleSubtype = "tracked"
	SubtypeWheeled VehicleSubtype = "wheeled"
	SubtypeHover   VehicleSubtype = "hover"
	SubtypeVTOL    VehicleSubtype = "vtol"
)

// MoveKind is the movement mode used this turn.
type MoveKind string

const (
	MoveNone MoveKind = ""
	MoveWalk MoveKind = "walk"
	MoveRun  MoveKind = "run"
	MoveJump MoveKind = "jump"
)

// RangeBand buckets attacker-to-target distance for damage and to-hit.
type RangeBand string

const (
	BandShort   RangeBand = "short"
	BandMedium  RangeBand = "medium"
	BandLong    RangeBand = "long"
	BandExtreme RangeBand = "extreme"
)

// Range band thresholds (hexes, inclusive).
const (
	ShortRangeMax  = 6
	MediumRangeMax = 12
	LongRangeMax   = 24
)

// BandForDistance maps a hex distance to its range band.
func BandForDistance(d int) RangeBand {
	switch {
	case d <= ShortRangeMax:
		return BandShort
	case d <= MediumRangeMax:
		return BandMedium
	case d <= LongRangeMax:
		return BandLong
	default:
		return BandExtreme
	}
}

// AbilityCode identifies a special ability. The catalog of known codes and
// their hook implementations lives in the ability package; the data model
// only stores which codes a unit carries.
type AbilityCode string

// CriticalEffect is the outcome of a critical-hit table lookup. Defined here
// so ability hooks can veto specific effects without importing the engine.
type CriticalEffect string

const (
	CritNone          CriticalEffect = "NONE"
	CritEngineHit     CriticalEffect = "ENGINE_HIT"
	CritFireControl   CriticalEffect = "FIRE_CONTROL_HIT"
	CritMovementHit   CriticalEffect = "MOVEMENT_HIT"
	CritWeaponHit     CriticalEffect = "WEAPON_HIT"
	CritAmmoExplosion CriticalEffect = "AMMO_EXPLOSION"
	CritImmobilized   CriticalEffect = "IMMOBILIZED"
	CritDestroyed     CriticalEffect = "DESTROYED"
	CritExtraDamage   CriticalEffect = "EXTRA_DAMAGE"
)

const abilitySeparator = ","

// Unit is one combatant on the battlefield. Base stats come from the unit
// template at construction; everything under "mutable status" changes during
// play. Units are never deleted: destruction only flags StatusDestroyed so
// post-battle logs keep the full roster.
type Unit struct {
	gorm.Model
	BattleID uint   `json:"-"`
	Side     Side   `json:"side"`
	Name     string `json:"name"`
	Template string `json:"template"`

	Kind    UnitKind       `json:"kind"`
	Subtype VehicleSubtype `json:"subtype"`

	Q      int    `json:"q"`
	R      int    `json:"r"`
	Facing Facing `json:"facing"`

	// Base stats.
	Weight       int `json:"weight"`
	Walk         int `json:"walk"`
	Run          int `json:"run"`
	Jump         int `json:"jump"`
	Armor        int `json:"armor"`
	Structure    int `json:"structure"`
	Skill        int `json:"skill"`
	TMM          int `json:"tmm"`
	DamageShort  int `json:"damage_short"`
	DamageMedium int `json:"damage_medium"`
	DamageLong   int `json:"damage_long"`
	DamageExt    int `json:"damage_extreme"`
	HeatCapacity int `json:"heat_capacity"`
	Troops       int `json:"troops"`

	// AbilityCodes stores the unit's ability set as a comma-joined list.
	// Order matters: hook folds run in stored order.
	AbilityCodes string `json:"ability_codes"`

	// Mutable status.
	ArmorDamage     int    `json:"armor_damage"`
	StructureDamage int    `json:"structure_damage"`
	Heat            int    `json:"heat"`
	Casualties      int    `json:"casualties"`
	EngineHits      int    `json:"engine_hits"`
	FireControlHits int    `json:"fire_control_hits"`
	MovementHits    int    `json:"movement_hits"`
	WeaponHits      int    `json:"weapon_hits"`
	Effects         string `json:"effects"`

	// Per-turn flags, reset when the round ends.
	HasMoved   bool     `json:"has_moved"`
	HasFired   bool     `json:"has_fired"`
	MoveType   MoveKind `json:"move_type"`
	MovedHexes int      `json:"moved_hexes"`
}

func (Unit) TableName() string { return "battle_units" }

// Position returns the unit's hex coordinate.
func (u *Unit) Position() Coord { return Coord{Q: u.Q, R: u.R} }

// SetPosition moves the unit to c without any legality checks; callers are
// expected to validate first.
func (u *Unit) SetPosition(c Coord) { u.Q, u.R = c.Q, c.R }

// Abilities returns the unit's ability codes in stored order.
func (u *Unit) Abilities() []AbilityCode {
	if u.AbilityCodes == "" {
		return nil
	}
	parts := strings.Split(u.AbilityCodes, abilitySeparator)
	out := make([]AbilityCode, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p != "" {
			out = append(out, AbilityCode(p))
		}
	}
	return out
}

// HasAbility reports whether the unit carries code.
func (u *Unit) HasAbility(code AbilityCode) bool {
	for _, c := range u.Abilities() {
		if c == code {
			return true
		}
	}
	return false
}

// SetAbilities replaces the unit's ability list, preserving order.
func (u *Unit) SetAbilities(codes []AbilityCode) {
	parts := make([]string, 0, len(codes))
	for _, c := range codes {
		parts = append(parts, string(c))
	}
	u.AbilityCodes = strings.Join(parts, abilitySeparator)
}

// Destroyed reports whether the unit carries the DESTROYED effect.
func (u *Unit) Destroyed() bool { return u.HasEffect(StatusDestroyed) }

// Alive is the negation of Destroyed, for readability at call sites.
func (u *Unit) Alive() bool { return !u.Destroyed() }

// RemainingArmor returns undepleted armor points.
func (u *Unit) RemainingArmor() int {
	r := u.Armor - u.ArmorDamage
	if r < 0 {
		return 0
	}
	return r
}

// RemainingStructure returns undepleted structure points.
func (u *Unit) RemainingStructure() int {
	r := u.Structure - u.StructureDamage
	if r < 0 {
		return 0
	}
	return r
}

// StrengthRatio is the infantry squad-strength fraction in [0,1]. Units of
// other kinds always report 1.
func (u *Unit) StrengthRatio() float64 {
	if u.Kind != KindInfantry || u.Troops <= 0 {
		return 1
	}
	remaining := u.Troops - u.Casualties
	if remaining <= 0 {
		return 0
	}
	return float64(remaining) / float64(u.Troops)
}

// DamageForBand returns the unit's current damage value for a range band:
// the base band value less weapon critical penalties, scaled by infantry
// strength, floored at zero. Infantry damage never drops below 1 while the
// squad still has troops.
func (u *Unit) DamageForBand(band RangeBand) int {
	base := 0
	switch band {
	case BandShort:
		base = u.DamageShort
	case BandMedium:
		base = u.DamageMedium
	case BandLong:
		base = u.DamageLong
	case BandExtreme:
		base = u.DamageExt
	}
	base -= u.WeaponHits
	if base < 0 {
		base = 0
	}
	if u.Kind == KindInfantry && base > 0 {
		scaled := int(float64(base) * u.StrengthRatio())
		if scaled < 1 {
			scaled = 1
		}
		base = scaled
	}
	return base
}

// TroopsRemaining returns the live troop-equivalent count for infantry.
func (u *Unit) TroopsRemaining() int {
	r := u.Troops - u.Casualties
	if r < 0 {
		return 0
	}
	return r
}

// ResetTurnFlags clears the per-turn movement/fire bookkeeping.
func (u *Unit) ResetTurnFlags() {
	u.HasMoved = false
	u.HasFired = false
	u.MoveType = MoveNone
	u.MovedHexes = 0
}
