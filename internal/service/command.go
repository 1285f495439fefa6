package service

import (
	"time"

	"github.com/hexmech/hexmech/internal/dice"
	"github.com/hexmech/hexmech/internal/engine"
	"github.com/hexmech/hexmech/internal/game"
)

// Command types accepted by SubmitCommand.
const (
	CommandMove     = "move"
	CommandAttack   = "attack"
	CommandMelee    = "melee"
	CommandInfantry = "infantry"
	CommandStance   = "stance"
	CommandPass     = "pass"
)

// Command is one commander order for a single unit (or a side-wide pass).
type Command struct {
	Type     string `json:"type"`
	UnitID   uint   `json:"unit_id"`
	TargetID uint   `json:"target_id"`
	Q        int    `json:"q"`
	R        int    `json:"r"`
	MoveKind string `json:"move_kind"`
	Facing   string `json:"facing"`
	// Variant selects the melee or infantry attack kind.
	Variant  string `json:"variant"`
	Overheat bool   `json:"overheat"`
	Missile  bool   `json:"missile"`
}

// CommandResult reports one executed command plus the battle state after
// turn alternation and any automatic phase advancement.
type CommandResult struct {
	Move     *engine.MoveResult   `json:"move,omitempty"`
	Attack   *engine.AttackResult `json:"attack,omitempty"`
	Phase    game.Phase           `json:"phase"`
	Round    int                  `json:"round"`
	ActiveSide game.Side          `json:"active_side"`
	Finished bool                 `json:"finished"`
}

// SubmitCommand executes one order for the commander identified by email.
// Sides alternate unit activations inside each phase; when no unit on
// either side can still act, the phase advances automatically (END and
// INITIATIVE resolve in passing, so the battle always rests in MOVEMENT or
// COMBAT between commands).
func SubmitCommand(repo BattleRepo, battleID uint, email string, cmd Command, actionTimeout time.Duration, roller dice.Roller) (*game.Battle, *CommandResult, error) {
	b, err := repo.GetBattleByID(battleID)
	if err != nil || b == nil {
		return nil, nil, ErrBattleNotFound
	}
	if b.Status != game.StatusInProgress {
		return nil, nil, ErrBattleNotInProgress
	}
	commander := b.CommanderByEmail(email)
	if commander == nil {
		return nil, nil, ErrCommanderNotFound
	}
	if commander.Side != b.ActiveSide {
		return nil, nil, ErrNotYourTurn
	}

	res := &CommandResult{}
	switch cmd.Type {
	case CommandMove:
		mv := engine.MoveUnit(b, cmd.UnitID, game.Coord{Q: cmd.Q, R: cmd.R}, game.MoveKind(cmd.MoveKind), game.Facing(cmd.Facing))
		res.Move = &mv
	case CommandAttack:
		atk := engine.RangedAttack(b, cmd.UnitID, cmd.TargetID, engine.RangedOptions{Overheat: cmd.Overheat, Missile: cmd.Missile}, roller)
		res.Attack = &atk
	case CommandMelee:
		atk := engine.MeleeAttack(b, cmd.UnitID, cmd.TargetID, engine.MeleeKind(cmd.Variant), roller)
		res.Attack = &atk
	case CommandInfantry:
		atk := engine.InfantryAttack(b, cmd.UnitID, cmd.TargetID, engine.InfantryAttackKind(cmd.Variant), roller)
		res.Attack = &atk
	case CommandStance:
		atk := engine.SetDefensiveStance(b, cmd.UnitID)
		res.Attack = &atk
	case CommandPass:
		passSide(b, commander.Side)
	default:
		return nil, nil, ErrUnknownCommand
	}

	// Only legal orders consume the activation.
	acted := cmd.Type == CommandPass ||
		(res.Move != nil && res.Move.Legal) ||
		(res.Attack != nil && res.Attack.Legal)
	if acted {
		advanceTurn(b, roller)
		b.ActionDeadline = time.Now().Add(actionTimeout)
	}

	finishIfOver(repo, b)

	res.Phase = b.Phase
	res.Round = b.Round
	res.ActiveSide = b.ActiveSide
	res.Finished = b.Status == game.StatusFinished

	if err := repo.UpdateBattle(b); err != nil {
		return nil, res, err
	}
	return b, res, nil
}

// passSide forfeits the remaining activations of side for this phase.
func passSide(b *game.Battle, side game.Side) {
	for _, u := range b.LivingUnits(side) {
		switch b.Phase {
		case game.PhaseMovement:
			u.HasMoved = true
		case game.PhaseCombat:
			u.HasFired = true
		}
	}
	b.AppendLog(string(side)+" passes", map[string]any{"phase": b.Phase})
}

// canAct reports whether u still has an activation left in the current
// phase. Shut-down units never act; immobilized units may still fire.
func canAct(b *game.Battle, u *game.Unit) bool {
	if u.HasEffect(game.StatusShutdown) {
		return false
	}
	switch b.Phase {
	case game.PhaseMovement:
		if u.HasEffect(game.StatusImmobilized) || u.HasEffect(game.StatusGrappled) {
			return false
		}
		return !u.HasMoved
	case game.PhaseCombat:
		return !u.HasFired
	}
	return false
}

func sideCanAct(b *game.Battle, side game.Side) bool {
	for _, u := range b.LivingUnits(side) {
		if canAct(b, u) {
			return true
		}
	}
	return false
}

// advanceTurn hands the activation to the opponent when they still have
// actionable units, and advances phases once both sides are spent. END and
// INITIATIVE are resolved in passing so the battle always comes to rest in
// an actionable phase (or finished).
func advanceTurn(b *game.Battle, roller dice.Roller) {
	opponent := game.Opponent(b.ActiveSide)
	if sideCanAct(b, opponent) {
		engine.SwitchActiveSide(b)
		return
	}
	if sideCanAct(b, b.ActiveSide) {
		return
	}
	// Bounded so a board where nothing can ever act (every mech shut down
	// and failing restarts) cannot spin forever.
	for steps := 0; steps < 32 && b.Status == game.StatusInProgress; steps++ {
		engine.AdvancePhase(b, roller)
		if b.Phase == game.PhaseInitiative {
			engine.RollInitiative(b, roller)
			continue
		}
		if b.Phase == game.PhaseMovement || b.Phase == game.PhaseCombat {
			if sideCanAct(b, b.ActiveSide) || sideCanAct(b, game.Opponent(b.ActiveSide)) {
				if !sideCanAct(b, b.ActiveSide) {
					engine.SwitchActiveSide(b)
				}
				break
			}
		}
	}
}
