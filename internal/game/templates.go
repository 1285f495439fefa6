package game

// UnitTemplate is a static catalog entry describing a unit's starting stats
// and ability set. Templates come from the server configuration; the data
// model never edits them.
type UnitTemplate struct {
	Name         string         `json:"name"`
	Kind         UnitKind       `json:"kind"`
	Subtype      VehicleSubtype `json:"subtype"`
	Weight       int            `json:"weight"`
	Walk         int            `json:"walk"`
	Run          int            `json:"run"`
	Jump         int            `json:"jump"`
	Armor        int            `json:"armor"`
	Structure    int            `json:"structure"`
	Skill        int            `json:"skill"`
	TMM          int            `json:"tmm"`
	DamageShort  int            `json:"damage_short"`
	DamageMedium int            `json:"damage_medium"`
	DamageLong   int            `json:"damage_long"`
	DamageExt    int            `json:"damage_extreme"`
	HeatCapacity int            `json:"heat_capacity"`
	Troops       int            `json:"troops"`
	Abilities    []AbilityCode  `json:"abilities"`
}

// ConstructionBonus carries the structural modifiers applied once when a
// unit is built from its template. This is the single ability effect that
// lands outside the hook dispatch path: chassis-type abilities change the
// sheet itself, not individual resolutions.
type ConstructionBonus struct {
	Structure int
	Armor     int
}

// NewUnitFromTemplate builds a fresh unit for side at pos. The caller
// supplies the construction bonus computed from the template's ability set
// (see ability.ConstructionBonus) so this package stays free of the ability
// catalog.
func NewUnitFromTemplate(tpl UnitTemplate, side Side, name string, pos Coord, facing Facing, bonus ConstructionBonus) Unit {
	if name == "" {
		name = tpl.Name
	}
	u := Unit{
		Side:         side,
		Name:         name,
		Template:     tpl.Name,
		Kind:         tpl.Kind,
		Subtype:      tpl.Subtype,
		Q:            pos.Q,
		R:            pos.R,
		Facing:       facing,
		Weight:       tpl.Weight,
		Walk:         tpl.Walk,
		Run:          tpl.Run,
		Jump:         tpl.Jump,
		Armor:        tpl.Armor + bonus.Armor,
		Structure:    tpl.Structure + bonus.Structure,
		Skill:        tpl.Skill,
		TMM:          tpl.TMM,
		DamageShort:  tpl.DamageShort,
		DamageMedium: tpl.DamageMedium,
		DamageLong:   tpl.DamageLong,
		DamageExt:    tpl.DamageExt,
		HeatCapacity: tpl.HeatCapacity,
		Troops:       tpl.Troops,
	}
	u.SetAbilities(tpl.Abilities)
	return u
}
