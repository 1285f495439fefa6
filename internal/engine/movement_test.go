package engine

import (
	"testing"

	"github.com/hexmech/hexmech/internal/game"
)

func TestMoveUnitWalk(t *testing.T) {
	b := newTestBattle(game.PhaseMovement)
	u := addMech(b, 1, game.SideAlpha, 5, 5)

	res := MoveUnit(b, 1, game.Coord{Q: 5, R: 8}, game.MoveWalk, game.FacingSouth)
	if !res.Legal {
		t.Fatalf("walk of 3 with allowance 4 must be legal: %s", res.Reason)
	}
	if res.Cost != 3 || res.Heat != 1 {
		t.Fatalf("expected cost 3 heat 1, got %d/%d", res.Cost, res.Heat)
	}
	if u.Position() != (game.Coord{Q: 5, R: 8}) || u.Facing != game.FacingSouth {
		t.Fatal("move must update position and facing")
	}
	if !u.HasMoved || u.MoveType != game.MoveWalk || u.MovedHexes != 3 {
		t.Fatal("move must record the per-turn flags")
	}
}

func TestMoveUnitAllowanceExceeded(t *testing.T) {
	b := newTestBattle(game.PhaseMovement)
	u := addMech(b, 1, game.SideAlpha, 5, 5)

	res := MoveUnit(b, 1, game.Coord{Q: 5, R: 10}, game.MoveWalk, game.FacingSouth)
	if res.Legal || res.Reason != ReasonInsufficientMove {
		t.Fatalf("walk of 5 with allowance 4 must fail, got %+v", res)
	}
	if u.Position() != (game.Coord{Q: 5, R: 5}) {
		t.Fatal("illegal move must not change position")
	}

	if res := MoveUnit(b, 1, game.Coord{Q: 5, R: 10}, game.MoveRun, game.FacingSouth); !res.Legal {
		t.Fatalf("running covers 5 hexes: %s", res.Reason)
	}
	if u.Heat != 2 {
		t.Fatalf("running generates 2 heat, got %d", u.Heat)
	}
}

func TestMoveUnitTerrainCost(t *testing.T) {
	b := newTestBattle(game.PhaseMovement)
	addMech(b, 1, game.SideAlpha, 5, 5)
	b.SetTerrain(map[game.Coord]game.TerrainKind{{Q: 5, R: 9}: game.TerrainWoods})

	// Distance 4 plus the extra woods entry point exceeds walk 4.
	res := MoveUnit(b, 1, game.Coord{Q: 5, R: 9}, game.MoveWalk, game.FacingSouth)
	if res.Legal || res.Reason != ReasonInsufficientMove {
		t.Fatalf("woods destination must cost 5, got %+v", res)
	}
	if res := MoveUnit(b, 1, game.Coord{Q: 5, R: 9}, game.MoveRun, game.FacingSouth); !res.Legal || res.Cost != 5 {
		t.Fatalf("run should cover the woods entry, got %+v", res)
	}
}

func TestMoveUnitJumpIgnoresTerrain(t *testing.T) {
	b := newTestBattle(game.PhaseMovement)
	u := addMech(b, 1, game.SideAlpha, 5, 5)
	u.Jump = 3
	b.SetTerrain(map[game.Coord]game.TerrainKind{{Q: 5, R: 8}: game.TerrainWater})

	res := MoveUnit(b, 1, game.Coord{Q: 5, R: 8}, game.MoveJump, game.FacingSouth)
	if !res.Legal || res.Cost != 3 {
		t.Fatalf("jumps ignore terrain entry costs, got %+v", res)
	}
	if res.Heat != 3 {
		t.Fatalf("fixed jump-heat rule charges 3, got %d", res.Heat)
	}
}

func TestMoveUnitJumpHeatByDistance(t *testing.T) {
	b := newTestBattle(game.PhaseMovement)
	b.JumpHeat = game.JumpHeatByDistance
	u := addMech(b, 1, game.SideAlpha, 5, 5)
	u.Jump = 5
	u.HeatCapacity = 10

	res := MoveUnit(b, 1, game.Coord{Q: 5, R: 10}, game.MoveJump, game.FacingSouth)
	if !res.Legal || res.Heat != 5 {
		t.Fatalf("distance rule charges the hexes jumped, got %+v", res)
	}
}

func TestMoveUnitOccupiedHex(t *testing.T) {
	b := newTestBattle(game.PhaseMovement)
	addMech(b, 1, game.SideAlpha, 5, 5)
	addMech(b, 2, game.SideBravo, 5, 7)

	res := MoveUnit(b, 1, game.Coord{Q: 5, R: 7}, game.MoveWalk, game.FacingSouth)
	if res.Legal || res.Reason != ReasonOccupied {
		t.Fatalf("mechs cannot stack, got %+v", res)
	}
}

func TestMoveUnitInfantryMayCloseIn(t *testing.T) {
	b := newTestBattle(game.PhaseMovement)
	addInfantry(b, 1, game.SideAlpha, 5, 6, "AMT")
	addMech(b, 2, game.SideBravo, 5, 7)

	res := MoveUnit(b, 1, game.Coord{Q: 5, R: 7}, game.MoveWalk, game.FacingSouth)
	if !res.Legal {
		t.Fatalf("infantry may enter an enemy hex to swarm: %s", res.Reason)
	}
}

func TestMoveUnitStatusGates(t *testing.T) {
	b := newTestBattle(game.PhaseMovement)
	u := addMech(b, 1, game.SideAlpha, 5, 5)

	for _, effect := range []game.StatusEffect{game.StatusShutdown, game.StatusImmobilized, game.StatusGrappled} {
		u.Effects = ""
		u.AddEffect(effect)
		res := MoveUnit(b, 1, game.Coord{Q: 5, R: 6}, game.MoveWalk, game.FacingSouth)
		if res.Legal || res.Reason != ReasonImmobilized {
			t.Fatalf("%s unit must not move, got %+v", effect, res)
		}
	}
}

func TestMoveUnitProneStandCost(t *testing.T) {
	b := newTestBattle(game.PhaseMovement)
	u := addMech(b, 1, game.SideAlpha, 5, 5)
	u.AddEffect(game.StatusProne)

	// Standing costs 2, so walk 4 only covers 2 hexes of ground.
	res := MoveUnit(b, 1, game.Coord{Q: 5, R: 8}, game.MoveWalk, game.FacingSouth)
	if res.Legal || res.Reason != ReasonInsufficientMove {
		t.Fatalf("3 hexes plus standing exceeds walk 4, got %+v", res)
	}
	res = MoveUnit(b, 1, game.Coord{Q: 5, R: 7}, game.MoveWalk, game.FacingSouth)
	if !res.Legal {
		t.Fatalf("2 hexes plus standing fits walk 4: %s", res.Reason)
	}
	if u.HasEffect(game.StatusProne) {
		t.Fatal("moving must stand the unit up")
	}
}

func TestMoveUnitMovementCriticalsReduceAllowance(t *testing.T) {
	b := newTestBattle(game.PhaseMovement)
	u := addMech(b, 1, game.SideAlpha, 5, 5)
	u.MovementHits = 2

	res := MoveUnit(b, 1, game.Coord{Q: 5, R: 8}, game.MoveWalk, game.FacingSouth)
	if res.Legal || res.Reason != ReasonInsufficientMove {
		t.Fatalf("two movement hits cut walk to 2, got %+v", res)
	}
}

func TestMoveUnitInfantryAttrition(t *testing.T) {
	b := newTestBattle(game.PhaseMovement)
	u := addInfantry(b, 1, game.SideAlpha, 5, 5, "AMT")
	u.Casualties = 15 // 5 of 20 troopers left, walk 2 scales to 0 then floors at 1

	res := MoveUnit(b, 1, game.Coord{Q: 5, R: 7}, game.MoveWalk, game.FacingSouth)
	if res.Legal || res.Reason != ReasonInsufficientMove {
		t.Fatalf("a mauled squad covers only 1 hex, got %+v", res)
	}
	if res := MoveUnit(b, 1, game.Coord{Q: 5, R: 6}, game.MoveWalk, game.FacingSouth); !res.Legal {
		t.Fatalf("one hex stays possible while troopers remain: %s", res.Reason)
	}
}

func TestMoveUnitWrongSideAndPhase(t *testing.T) {
	b := newTestBattle(game.PhaseMovement)
	addMech(b, 1, game.SideBravo, 5, 5)

	res := MoveUnit(b, 1, game.Coord{Q: 5, R: 6}, game.MoveWalk, game.FacingSouth)
	if res.Legal || res.Reason != ReasonNotActiveSide {
		t.Fatalf("only the active side moves, got %+v", res)
	}

	b.Phase = game.PhaseCombat
	b.ActiveSide = game.SideBravo
	res = MoveUnit(b, 1, game.Coord{Q: 5, R: 6}, game.MoveWalk, game.FacingSouth)
	if res.Legal || res.Reason != ReasonWrongPhase {
		t.Fatalf("movement outside the movement phase, got %+v", res)
	}
}
