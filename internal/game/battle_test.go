package game

import (
	"testing"
)

func TestTerrainRoundTrip(t *testing.T) {
	b := &Battle{Width: 8, Height: 8}
	b.SetTerrain(map[Coord]TerrainKind{
		{Q: 2, R: 2}: TerrainWoods,
		{Q: 3, R: 5}: TerrainWater,
	})
	if b.TerrainJSON == "" {
		t.Fatalf("terrain should serialize for persistence")
	}

	// A freshly loaded battle only has the JSON column.
	loaded := &Battle{Width: 8, Height: 8, TerrainJSON: b.TerrainJSON}
	if got := loaded.TerrainAt(Coord{Q: 2, R: 2}); got != TerrainWoods {
		t.Fatalf("terrain at (2,2) = %s, want woods", got)
	}
	if got := loaded.TerrainAt(Coord{Q: 3, R: 5}); got != TerrainWater {
		t.Fatalf("terrain at (3,5) = %s, want water", got)
	}
	if got := loaded.TerrainAt(Coord{Q: 0, R: 0}); got != TerrainClear {
		t.Fatalf("unlisted hex should default to clear, got %s", got)
	}
}

func TestUnitLookups(t *testing.T) {
	b := &Battle{Width: 8, Height: 8}
	a := Unit{Side: SideAlpha, Name: "A", Q: 1, R: 1}
	a.ID = 1
	v := Unit{Side: SideBravo, Name: "B", Q: 5, R: 5}
	v.ID = 2
	b.AddUnit(a)
	b.AddUnit(v)

	if u := b.UnitByID(2); u == nil || u.Name != "B" {
		t.Fatalf("UnitByID(2) lookup failed")
	}
	if u := b.UnitByID(99); u != nil {
		t.Fatalf("unknown id should return nil")
	}
	if u := b.UnitAt(Coord{Q: 5, R: 5}); u == nil || u.Name != "B" {
		t.Fatalf("UnitAt lookup failed")
	}

	// Destroyed units are invisible to position and living lookups.
	b.UnitByID(2).AddEffect(StatusDestroyed)
	if u := b.UnitAt(Coord{Q: 5, R: 5}); u != nil {
		t.Fatalf("destroyed unit should not occupy its hex")
	}
	if got := len(b.LivingUnits(SideNone)); got != 1 {
		t.Fatalf("living units = %d, want 1", got)
	}
	if got := len(b.LivingUnits(SideBravo)); got != 0 {
		t.Fatalf("living bravo units = %d, want 0", got)
	}
}

func TestInBounds(t *testing.T) {
	b := &Battle{Width: 4, Height: 6}
	for _, c := range []Coord{{0, 0}, {3, 5}} {
		if !b.InBounds(c) {
			t.Errorf("%v should be in bounds", c)
		}
	}
	for _, c := range []Coord{{-1, 0}, {4, 0}, {0, 6}} {
		if b.InBounds(c) {
			t.Errorf("%v should be out of bounds", c)
		}
	}
}

func TestAppendAndDrainLog(t *testing.T) {
	b := &Battle{Round: 2, Phase: PhaseCombat}
	b.AppendLog("first", map[string]any{"k": 1})
	b.AppendLog("second", nil)

	if got := len(b.PendingLog()); got != 2 {
		t.Fatalf("pending log = %d entries, want 2", got)
	}
	entries := b.DrainLog()
	if len(entries) != 2 {
		t.Fatalf("drained %d entries, want 2", len(entries))
	}
	if entries[0].Round != 2 || entries[0].Phase != PhaseCombat {
		t.Fatalf("entry not tagged with round/phase: %+v", entries[0])
	}
	if entries[1].Data != "" {
		t.Fatalf("nil data should log empty payload, got %q", entries[1].Data)
	}
	if len(b.PendingLog()) != 0 {
		t.Fatalf("drain should clear the buffer")
	}
}

func TestCommanderLookups(t *testing.T) {
	b := &Battle{Commanders: []Commander{
		{Side: SideAlpha, Email: "a@x.test"},
		{Side: SideBravo, Email: "b@x.test"},
	}}
	if cm := b.CommanderBySide(SideBravo); cm == nil || cm.Email != "b@x.test" {
		t.Fatalf("CommanderBySide failed")
	}
	if cm := b.CommanderByEmail("a@x.test"); cm == nil || cm.Side != SideAlpha {
		t.Fatalf("CommanderByEmail failed")
	}
	if cm := b.CommanderByEmail("nobody@x.test"); cm != nil {
		t.Fatalf("unknown email should return nil")
	}
}

func TestTerrainMovementCost(t *testing.T) {
	if c, ok := TerrainMovementCost(TerrainWoods, KindMech, SubtypeNone); !ok || c != 2 {
		t.Fatalf("mech woods cost = %d ok=%v, want 2", c, ok)
	}
	if _, ok := TerrainMovementCost(TerrainWater, KindInfantry, SubtypeNone); ok {
		t.Fatalf("infantry should not enter water")
	}
	if _, ok := TerrainMovementCost(TerrainWater, KindVehicle, SubtypeWheeled); ok {
		t.Fatalf("wheeled vehicles should not enter water")
	}
	if c, ok := TerrainMovementCost(TerrainWater, KindVehicle, SubtypeHover); !ok || c != 1 {
		t.Fatalf("hover water cost = %d ok=%v, want 1", c, ok)
	}
	if c, ok := TerrainMovementCost(TerrainWoods, KindVehicle, SubtypeVTOL); !ok || c != 1 {
		t.Fatalf("vtol should fly over woods at cost 1, got %d ok=%v", c, ok)
	}
}
