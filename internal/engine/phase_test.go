package engine

import (
	"testing"

	"github.com/hexmech/hexmech/internal/dice"
	"github.com/hexmech/hexmech/internal/game"
)

func TestAdvancePhaseFullRound(t *testing.T) {
	b := newTestBattle(game.PhaseInitiative)
	addMech(b, 1, game.SideAlpha, 1, 1)
	addMech(b, 2, game.SideBravo, 10, 10)
	roller := dice.NewSource(7)

	want := []game.Phase{game.PhaseMovement, game.PhaseCombat, game.PhaseEnd, game.PhaseInitiative}
	for _, phase := range want {
		AdvancePhase(b, roller)
		if b.Phase != phase {
			t.Fatalf("expected phase %s, got %s", phase, b.Phase)
		}
	}
	if b.Round != 2 {
		t.Fatalf("completing a round must increment the counter, got %d", b.Round)
	}
}

func TestAdvancePhaseLeavesSetup(t *testing.T) {
	b := newTestBattle(game.PhaseSetup)
	b.Round = 0
	b.Status = game.StatusWaitingForPlayers
	addMech(b, 1, game.SideAlpha, 1, 1)
	addMech(b, 2, game.SideBravo, 10, 10)

	AdvancePhase(b, dice.NewSource(1))
	if b.Phase != game.PhaseInitiative {
		t.Fatalf("setup advances to initiative, got %s", b.Phase)
	}
	if b.Round != 0 || b.Status != game.StatusInProgress {
		t.Fatalf("leaving setup starts the battle without moving the counter, round=%d status=%s", b.Round, b.Status)
	}
}

func TestRoundCounterIncrementsOncePerCycle(t *testing.T) {
	b := newTestBattle(game.PhaseSetup)
	b.Round = 0
	b.Status = game.StatusWaitingForPlayers
	addMech(b, 1, game.SideAlpha, 1, 1)
	addMech(b, 2, game.SideBravo, 10, 10)

	roller := dice.NewSource(9)
	for i := 0; i < 5; i++ {
		AdvancePhase(b, roller)
	}
	if b.Phase != game.PhaseInitiative {
		t.Fatalf("five advances from setup land back on initiative, got %s", b.Phase)
	}
	if b.Round != 1 {
		t.Fatalf("completing one round must increment the counter exactly once, got %d", b.Round)
	}
}

func TestAdvancePhaseDoesNotRollInitiative(t *testing.T) {
	b := newTestBattle(game.PhaseSetup)
	b.Status = game.StatusWaitingForPlayers
	b.ActiveSide = game.SideNone
	addMech(b, 1, game.SideAlpha, 1, 1)
	addMech(b, 2, game.SideBravo, 10, 10)

	AdvancePhase(b, &dice.Script{Rolls: []int{6}})
	if b.Phase != game.PhaseInitiative {
		t.Fatalf("setup advances to initiative, got %s", b.Phase)
	}
	if b.InitiativeAlpha != 0 || b.InitiativeBravo != 0 || b.ActiveSide != game.SideNone {
		t.Fatal("the transition into initiative must leave the roll to RollInitiative")
	}
}

func TestRollInitiativeWinner(t *testing.T) {
	b := newTestBattle(game.PhaseInitiative)
	addMech(b, 1, game.SideAlpha, 1, 1)
	addMech(b, 2, game.SideBravo, 10, 10)

	res := RollInitiative(b, &dice.Script{Rolls: []int{6, 6, 1, 1}})
	if res.Winner != string(game.SideAlpha) || b.ActiveSide != game.SideAlpha {
		t.Fatalf("alpha rolled 12 vs 2 and must win, got %+v", res)
	}
	if res.AlphaTotal != 12 || res.BravoTotal != 2 {
		t.Fatalf("unexpected totals: %+v", res)
	}
}

func TestRollInitiativeTieBreak(t *testing.T) {
	b := newTestBattle(game.PhaseInitiative)
	addMech(b, 1, game.SideAlpha, 1, 1)
	addMech(b, 2, game.SideBravo, 10, 10)

	res := RollInitiative(b, &dice.Script{Rolls: []int{3, 4, 3, 4}, Flips: []bool{false}})
	if !res.TieBroken {
		t.Fatal("equal totals must report a tie break")
	}
	if res.Winner != string(game.SideBravo) {
		t.Fatalf("a false flip gives bravo the round, got %s", res.Winner)
	}
}

func TestRollInitiativeReconBonus(t *testing.T) {
	b := newTestBattle(game.PhaseInitiative)
	scout := addMech(b, 1, game.SideAlpha, 1, 1)
	scout.SetAbilities([]game.AbilityCode{"RCN"})
	addMech(b, 2, game.SideBravo, 10, 10)

	res := RollInitiative(b, &dice.Script{Rolls: []int{3, 3, 3, 3}})
	if res.AlphaTotal != 7 || res.BravoTotal != 6 {
		t.Fatalf("recon must add +1 to its side, got %+v", res)
	}
	if res.Winner != string(game.SideAlpha) {
		t.Fatalf("bonus should decide the roll-off, got %s", res.Winner)
	}
}

func TestEndOfRoundResetsTurnFlags(t *testing.T) {
	b := newTestBattle(game.PhaseEnd)
	u := addMech(b, 1, game.SideAlpha, 1, 1)
	addMech(b, 2, game.SideBravo, 10, 10)
	u.HasMoved = true
	u.HasFired = true
	u.MoveType = game.MoveRun
	u.MovedHexes = 3
	u.AddEffect(game.StatusGrappled)
	u.AddEffect(game.StatusDefensiveStance)

	AdvancePhase(b, dice.NewSource(3))
	if u.HasMoved || u.HasFired || u.MoveType != game.MoveNone || u.MovedHexes != 0 {
		t.Fatal("turn flags must reset at end of round")
	}
	if u.HasEffect(game.StatusGrappled) || u.HasEffect(game.StatusDefensiveStance) {
		t.Fatal("one-round stances must expire at end of round")
	}
}

func TestEndOfRoundFinishesWipedBattle(t *testing.T) {
	b := newTestBattle(game.PhaseEnd)
	addMech(b, 1, game.SideAlpha, 1, 1)
	bravo := addMech(b, 2, game.SideBravo, 10, 10)
	bravo.AddEffect(game.StatusDestroyed)

	AdvancePhase(b, dice.NewSource(3))
	if b.Status != game.StatusFinished || b.Winner != game.SideAlpha {
		t.Fatalf("eliminating bravo must finish the battle, status=%s winner=%s", b.Status, b.Winner)
	}
}
