package game

// TerrainKind identifies the terrain occupying a hex. Hexes without an
// explicit entry are TerrainClear.
type TerrainKind string

const (
	TerrainClear  TerrainKind = "clear"
	TerrainRoad   TerrainKind = "road"
	TerrainRough  TerrainKind = "rough"
	TerrainWoods  TerrainKind = "woods"
	TerrainWater  TerrainKind = "water"
	TerrainRubble TerrainKind = "rubble"
)

// TerrainSpec carries the per-kind movement and combat numbers.
// CombatModifier is added to the target number when firing at a unit
// standing in this terrain.
type TerrainSpec struct {
	MovementCost   int
	CombatModifier int
}

var terrainTable = map[TerrainKind]TerrainSpec{
	TerrainClear:  {MovementCost: 1, CombatModifier: 0},
	TerrainRoad:   {MovementCost: 1, CombatModifier: 0},
	TerrainRough:  {MovementCost: 2, CombatModifier: 1},
	TerrainWoods:  {MovementCost: 2, CombatModifier: 1},
	TerrainWater:  {MovementCost: 3, CombatModifier: 0},
	TerrainRubble: {MovementCost: 2, CombatModifier: 1},
}

// vehicleTerrainOverrides replaces the entry cost for specific vehicle
// subtypes. A cost of 0 means the terrain is impassable for that subtype.
var vehicleTerrainOverrides = map[VehicleSubtype]map[TerrainKind]int{
	SubtypeTracked: {TerrainRough: 1, TerrainWater: 0},
	SubtypeWheeled: {TerrainRough: 3, TerrainWoods: 3, TerrainWater: 0},
	SubtypeHover:   {TerrainWater: 1, TerrainRough: 2},
	SubtypeVTOL:    {TerrainClear: 1, TerrainRoad: 1, TerrainRough: 1, TerrainWoods: 1, TerrainWater: 1, TerrainRubble: 1},
}

// ValidTerrain reports whether k is a known terrain kind.
func ValidTerrain(k TerrainKind) bool {
	_, ok := terrainTable[k]
	return ok
}

// TerrainCombatModifier returns the to-hit modifier for a defender in k.
func TerrainCombatModifier(k TerrainKind) int {
	if spec, ok := terrainTable[k]; ok {
		return spec.CombatModifier
	}
	return 0
}

// TerrainMovementCost returns the entry cost of k for the given unit kind
// and vehicle subtype. The boolean is false when the terrain cannot be
// entered by that unit at all.
func TerrainMovementCost(k TerrainKind, kind UnitKind, sub VehicleSubtype) (int, bool) {
	spec, ok := terrainTable[k]
	if !ok {
		spec = terrainTable[TerrainClear]
	}
	cost := spec.MovementCost
	if kind == KindVehicle {
		if over, ok := vehicleTerrainOverrides[sub]; ok {
			if c, ok := over[k]; ok {
				if c == 0 {
					return 0, false
				}
				cost = c
			}
		}
	}
	// Ground units cannot wade deep water.
	if k == TerrainWater && kind == KindInfantry {
		return 0, false
	}
	return cost, true
}
