package engine

import (
	"testing"

	"github.com/hexmech/hexmech/internal/dice"
	"github.com/hexmech/hexmech/internal/game"
)

func TestInfantryLegAttack(t *testing.T) {
	b := newTestBattle(game.PhaseCombat)
	squad := addInfantry(b, 1, game.SideAlpha, 5, 5, "AMT")
	target := addMech(b, 2, game.SideBravo, 5, 6)

	res := InfantryAttack(b, 1, 2, InfantryLegAttack, &dice.Script{Rolls: []int{4, 4}})
	if !res.Legal || !res.Hit {
		t.Fatalf("8 vs TN 8 must hit: %+v", res)
	}
	// 20 troopers: ceil(20/5) = 4 damage.
	if res.Damage != 4 || target.ArmorDamage != 4 {
		t.Fatalf("expected 4 damage, got %d", res.Damage)
	}
	if target.MovementHits != 1 {
		t.Fatal("a leg attack that lands cripples the target's movement")
	}
	// The squad pays 10% of full strength for the attempt.
	if squad.Casualties != 2 {
		t.Fatalf("expected 2 casualties, got %d", squad.Casualties)
	}
}

func TestInfantryLegAttackMissCasualties(t *testing.T) {
	b := newTestBattle(game.PhaseCombat)
	squad := addInfantry(b, 1, game.SideAlpha, 5, 5, "AMT")
	target := addMech(b, 2, game.SideBravo, 5, 6)

	res := InfantryAttack(b, 1, 2, InfantryLegAttack, &dice.Script{Rolls: []int{3, 4}})
	if res.Hit {
		t.Fatalf("7 vs TN 8 must miss: %+v", res)
	}
	if target.ArmorDamage != 0 || target.MovementHits != 0 {
		t.Fatal("a miss leaves the target untouched")
	}
	// 5% of 20, rounded up.
	if squad.Casualties != 1 {
		t.Fatalf("a failed assault still costs 1 trooper, got %d", squad.Casualties)
	}
}

func TestInfantrySwarmRequiresSameHex(t *testing.T) {
	b := newTestBattle(game.PhaseCombat)
	addInfantry(b, 1, game.SideAlpha, 5, 5, "AMT")
	addMech(b, 2, game.SideBravo, 5, 6)

	res := InfantryAttack(b, 1, 2, InfantrySwarm, dice.NewSource(1))
	if res.Legal || res.Reason != ReasonNotSameHex {
		t.Fatalf("swarming needs the target's own hex, got %+v", res)
	}
}

func TestInfantrySwarmForcesCritical(t *testing.T) {
	b := newTestBattle(game.PhaseCombat)
	squad := addInfantry(b, 1, game.SideAlpha, 5, 6, "AMT")
	target := addMech(b, 2, game.SideBravo, 5, 6)
	target.Armor = 12

	// To-hit 4+4=8 vs TN 7, then 4+3=7 on the mech table (movement hit).
	res := InfantryAttack(b, 1, 2, InfantrySwarm, &dice.Script{Rolls: []int{4, 4, 4, 3}})
	if !res.Hit {
		t.Fatalf("swarm should hit: %+v", res)
	}
	// ceil(20/4) = 5 damage.
	if res.Damage != 5 {
		t.Fatalf("expected 5 damage, got %d", res.Damage)
	}
	if !res.CriticalTriggered || target.MovementHits != 1 {
		t.Fatal("swarming always forces a critical check")
	}
	// 20% of 20 troopers lost on a successful swarm.
	if squad.Casualties != 4 {
		t.Fatalf("expected 4 casualties, got %d", squad.Casualties)
	}
}

func TestInfantryDemolitionCharge(t *testing.T) {
	b := newTestBattle(game.PhaseCombat)
	addInfantry(b, 1, game.SideAlpha, 5, 6, "DEM")
	target := addMech(b, 2, game.SideBravo, 5, 6)
	target.Armor = 12

	// 3+3=6 meets TN 6; crit roll 5+4=9 comes up empty.
	res := InfantryAttack(b, 1, 2, InfantryDemolition, &dice.Script{Rolls: []int{3, 3, 5, 4}})
	if !res.Hit || res.Damage != 8 {
		t.Fatalf("a demolition charge deals 8, got %+v", res)
	}
}

func TestInfantryMineImmobilizes(t *testing.T) {
	b := newTestBattle(game.PhaseCombat)
	addInfantry(b, 1, game.SideAlpha, 5, 5, "DEM")
	target := addMech(b, 2, game.SideBravo, 5, 6)
	target.Armor = 12

	res := InfantryAttack(b, 1, 2, InfantryMineAttack, &dice.Script{Rolls: []int{4, 4}})
	if !res.Hit || res.Damage != 4 {
		t.Fatalf("a mine deals 4, got %+v", res)
	}
	if !target.HasEffect(game.StatusImmobilized) {
		t.Fatal("a mine hit pins the target in place")
	}
}

func TestInfantryNeedsCapability(t *testing.T) {
	b := newTestBattle(game.PhaseCombat)
	addInfantry(b, 1, game.SideAlpha, 5, 5) // no ability codes
	addMech(b, 2, game.SideBravo, 5, 6)

	res := InfantryAttack(b, 1, 2, InfantryLegAttack, dice.NewSource(1))
	if res.Legal || res.Reason != ReasonMissingCapability {
		t.Fatalf("leg attacks need anti-mech training, got %+v", res)
	}
}

func TestInfantryCannotTargetInfantry(t *testing.T) {
	b := newTestBattle(game.PhaseCombat)
	addInfantry(b, 1, game.SideAlpha, 5, 5, "AMT")
	addInfantry(b, 2, game.SideBravo, 5, 6, "AMT")

	res := InfantryAttack(b, 1, 2, InfantryLegAttack, dice.NewSource(1))
	if res.Legal || res.Reason != ReasonWrongUnitKind {
		t.Fatalf("specialist assaults only work on machines, got %+v", res)
	}
}

func TestInfantryMechCannotUseAssaults(t *testing.T) {
	b := newTestBattle(game.PhaseCombat)
	addMech(b, 1, game.SideAlpha, 5, 5)
	addMech(b, 2, game.SideBravo, 5, 6)

	res := InfantryAttack(b, 1, 2, InfantryLegAttack, dice.NewSource(1))
	if res.Legal || res.Reason != ReasonWrongUnitKind {
		t.Fatalf("only infantry make these attacks, got %+v", res)
	}
}
