package engine

import (
	"testing"

	"github.com/hexmech/hexmech/internal/dice"
	"github.com/hexmech/hexmech/internal/game"
)

func TestRangedAttackHit(t *testing.T) {
	b := newTestBattle(game.PhaseCombat)
	attacker := addMech(b, 1, game.SideAlpha, 5, 5)
	target := addMech(b, 2, game.SideBravo, 5, 8) // distance 3, short band

	res := RangedAttack(b, 1, 2, RangedOptions{}, &dice.Script{Rolls: []int{5, 4}})
	if !res.Legal || !res.Hit {
		t.Fatalf("9 vs TN 8 must hit: %+v", res)
	}
	if res.Damage != 2 || target.ArmorDamage != 2 {
		t.Fatalf("short-band damage 2 expected, got %d", res.Damage)
	}
	if !attacker.HasFired {
		t.Fatal("firing must consume the combat action")
	}
	if attacker.Heat != 3 {
		t.Fatalf("short-band fire generates 3 heat, got %d", attacker.Heat)
	}
}

func TestRangedAttackMiss(t *testing.T) {
	b := newTestBattle(game.PhaseCombat)
	attacker := addMech(b, 1, game.SideAlpha, 5, 5)
	target := addMech(b, 2, game.SideBravo, 5, 8)

	res := RangedAttack(b, 1, 2, RangedOptions{}, &dice.Script{Rolls: []int{1, 2}})
	if !res.Legal || res.Hit {
		t.Fatalf("3 vs TN 8 must miss: %+v", res)
	}
	if target.ArmorDamage != 0 {
		t.Fatal("a miss deals no damage")
	}
	if !attacker.HasFired || attacker.Heat != 3 {
		t.Fatal("a miss still spends the action and builds heat")
	}
}

func TestRangedBandModifiers(t *testing.T) {
	cases := []struct {
		distance int
		tn       int
	}{
		{6, 8},   // short
		{7, 10},  // medium
		{13, 12}, // long
		{25, 14}, // extreme, illegal here for lack of extreme damage
	}
	for _, c := range cases {
		b := newTestBattle(game.PhaseCombat)
		addMech(b, 1, game.SideAlpha, 0, 0)
		addMech(b, 2, game.SideBravo, c.distance, 0)

		res := RangedAttack(b, 1, 2, RangedOptions{}, &dice.Script{Rolls: []int{3, 3}})
		if c.distance > game.LongRangeMax {
			if res.Legal {
				t.Fatal("no extreme-band damage value means no legal shot")
			}
			continue
		}
		if res.Roll.Target != c.tn {
			t.Fatalf("distance %d: target number %d, want %d", c.distance, res.Roll.Target, c.tn)
		}
	}
}

func TestRangedTargetModifiers(t *testing.T) {
	b := newTestBattle(game.PhaseCombat)
	attacker := addMech(b, 1, game.SideAlpha, 5, 5)
	target := addMech(b, 2, game.SideBravo, 5, 8)
	target.TMM = 2
	b.SetTerrain(map[game.Coord]game.TerrainKind{{Q: 5, R: 8}: game.TerrainWoods})
	attacker.FireControlHits = 1

	res := RangedAttack(b, 1, 2, RangedOptions{}, &dice.Script{Rolls: []int{6, 6, 1, 1}})
	// base 8 + TMM 2 + woods 1 + fire control 2.
	if res.Roll.Target != 13 {
		t.Fatalf("expected target number 13, got %d (%+v)", res.Roll.Target, res.Roll.Modifiers)
	}
}

func TestRangedSensorDamagePenalty(t *testing.T) {
	b := newTestBattle(game.PhaseCombat)
	attacker := addMech(b, 1, game.SideAlpha, 5, 5)
	attacker.AddEffect(game.StatusSensorsDamaged)
	addMech(b, 2, game.SideBravo, 5, 8)

	res := RangedAttack(b, 1, 2, RangedOptions{}, &dice.Script{Rolls: []int{4, 4}})
	if res.Roll.Target != 9 {
		t.Fatalf("wrecked sensors add +1 to the target number, got %d", res.Roll.Target)
	}
	if res.Hit {
		t.Fatal("8 vs TN 9 must miss")
	}
}

func TestRangedOverheatPush(t *testing.T) {
	b := newTestBattle(game.PhaseCombat)
	attacker := addMech(b, 1, game.SideAlpha, 5, 5)
	attacker.HeatCapacity = 10
	target := addMech(b, 2, game.SideBravo, 5, 8)

	res := RangedAttack(b, 1, 2, RangedOptions{Overheat: true}, &dice.Script{Rolls: []int{5, 4}})
	if res.Damage != 3 {
		t.Fatalf("overheat adds +1 damage, got %d", res.Damage)
	}
	if attacker.Heat != 5 {
		t.Fatalf("overheat adds +2 heat on top of the band's 3, got %d", attacker.Heat)
	}
	_ = target
}

func TestRangedNaturalTwelveTriggersCritical(t *testing.T) {
	b := newTestBattle(game.PhaseCombat)
	addMech(b, 1, game.SideAlpha, 5, 5)
	target := addMech(b, 2, game.SideBravo, 5, 8)

	// 6+6 to hit, then 4+3 on the critical table (movement hit for mechs).
	res := RangedAttack(b, 1, 2, RangedOptions{}, &dice.Script{Rolls: []int{6, 6, 4, 3}})
	if !res.CriticalTriggered {
		t.Fatal("a natural 12 must trigger a critical check")
	}
	if target.MovementHits != 1 {
		t.Fatalf("critical 7 against a mech is a movement hit, got %d", target.MovementHits)
	}
}

func TestRangedSkillAddsToRoll(t *testing.T) {
	b := newTestBattle(game.PhaseCombat)
	attacker := addMech(b, 1, game.SideAlpha, 5, 5)
	attacker.Skill = 2
	addMech(b, 2, game.SideBravo, 5, 8)

	res := RangedAttack(b, 1, 2, RangedOptions{}, &dice.Script{Rolls: []int{3, 3}})
	if !res.Hit {
		t.Fatalf("6 natural + 2 skill meets TN 8: %+v", res.Roll)
	}
	if res.Roll.Total != 8 || res.Roll.Natural != 6 {
		t.Fatalf("roll detail must separate natural from total: %+v", res.Roll)
	}
}

func TestRangedDoubleFireRejected(t *testing.T) {
	b := newTestBattle(game.PhaseCombat)
	addMech(b, 1, game.SideAlpha, 5, 5)
	addMech(b, 2, game.SideBravo, 5, 8)
	roller := dice.NewSource(9)

	if res := RangedAttack(b, 1, 2, RangedOptions{}, roller); !res.Legal {
		t.Fatalf("first attack should be legal: %s", res.Reason)
	}
	res := RangedAttack(b, 1, 2, RangedOptions{}, roller)
	if res.Legal || res.Reason != ReasonAlreadyFired {
		t.Fatalf("second attack must be rejected, got %+v", res)
	}
}

func TestRangedShutdownAttackerRejected(t *testing.T) {
	b := newTestBattle(game.PhaseCombat)
	attacker := addMech(b, 1, game.SideAlpha, 5, 5)
	attacker.AddEffect(game.StatusShutdown)
	addMech(b, 2, game.SideBravo, 5, 8)

	res := RangedAttack(b, 1, 2, RangedOptions{}, dice.NewSource(9))
	if res.Legal || res.Reason != ReasonAttackerShutDown {
		t.Fatalf("shut-down units cannot fire, got %+v", res)
	}
}

func TestRangedMissileReducedByPointDefense(t *testing.T) {
	b := newTestBattle(game.PhaseCombat)
	addMech(b, 1, game.SideAlpha, 5, 5)
	target := addMech(b, 2, game.SideBravo, 5, 8)
	target.SetAbilities([]game.AbilityCode{"AMS"})

	res := RangedAttack(b, 1, 2, RangedOptions{Missile: true}, &dice.Script{Rolls: []int{5, 4}})
	if res.Damage != 1 {
		t.Fatalf("point defense thins the salvo to 1, got %d", res.Damage)
	}
}
