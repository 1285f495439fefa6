package game

import "strings"

// StatusEffect is a named condition carried by a unit. Effects form a set;
// duplicates are never stored.
type StatusEffect string

const (
	StatusDestroyed       StatusEffect = "DESTROYED"
	StatusShutdown        StatusEffect = "SHUTDOWN"
	StatusImmobilized     StatusEffect = "IMMOBILIZED"
	StatusProne           StatusEffect = "PRONE"
	StatusDefensiveStance StatusEffect = "DEFENSIVE_STANCE"
	StatusGrappled        StatusEffect = "GRAPPLED"
	StatusPilotInjured    StatusEffect = "PILOT_INJURED"
	StatusSensorsDamaged  StatusEffect = "SENSORS_DAMAGED"

	// Transient heat flags, cleared at end of round.
	StatusHeatAccuracy StatusEffect = "HEAT_ACCURACY"
	StatusHeatMobility StatusEffect = "HEAT_MOBILITY"
	StatusHeatCritical StatusEffect = "HEAT_CRITICAL"
)

const effectSeparator = "|"

// effectSet manipulates the serialized effect column on Unit. The column
// stores a separator-joined list so GORM persists it as plain text; all
// reads and writes go through the typed helpers below.
func splitEffects(s string) []StatusEffect {
	if s == "" {
		return nil
	}
	parts := strings.Split(s, effectSeparator)
	out := make([]StatusEffect, 0, len(parts))
	for _, p := range parts {
		if p != "" {
			out = append(out, StatusEffect(p))
		}
	}
	return out
}

func joinEffects(effects []StatusEffect) string {
	if len(effects) == 0 {
		return ""
	}
	parts := make([]string, 0, len(effects))
	for _, e := range effects {
		parts = append(parts, string(e))
	}
	return strings.Join(parts, effectSeparator)
}

// HasEffect reports whether the unit currently carries e.
func (u *Unit) HasEffect(e StatusEffect) bool {
	for _, cur := range splitEffects(u.Effects) {
		if cur == e {
			return true
		}
	}
	return false
}

// AddEffect inserts e into the unit's effect set (idempotent).
func (u *Unit) AddEffect(e StatusEffect) {
	if u.HasEffect(e) {
		return
	}
	effects := splitEffects(u.Effects)
	effects = append(effects, e)
	u.Effects = joinEffects(effects)
}

// RemoveEffect drops e from the unit's effect set if present.
func (u *Unit) RemoveEffect(e StatusEffect) {
	effects := splitEffects(u.Effects)
	out := effects[:0]
	for _, cur := range effects {
		if cur != e {
			out = append(out, cur)
		}
	}
	u.Effects = joinEffects(out)
}

// EffectList returns the unit's current effects in stored order.
func (u *Unit) EffectList() []StatusEffect {
	return splitEffects(u.Effects)
}

// ClearHeatEffects removes every transient heat flag. Called when the heat
// thresholds are re-evaluated at end of round.
func (u *Unit) ClearHeatEffects() {
	effects := splitEffects(u.Effects)
	out := effects[:0]
	for _, cur := range effects {
		switch cur {
		case StatusHeatAccuracy, StatusHeatMobility, StatusHeatCritical:
			continue
		}
		out = append(out, cur)
	}
	u.Effects = joinEffects(out)
}
