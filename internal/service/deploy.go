package service

import (
	"time"

	"github.com/hexmech/hexmech/internal/ability"
	"github.com/hexmech/hexmech/internal/config"
	"github.com/hexmech/hexmech/internal/dice"
	"github.com/hexmech/hexmech/internal/engine"
	"github.com/hexmech/hexmech/internal/game"
	"github.com/hexmech/hexmech/internal/logging"
)

// DeployUnitSpec is one unit placement in a deployment request.
type DeployUnitSpec struct {
	Template string `json:"template"`
	Name     string `json:"name"`
	Q        int    `json:"q"`
	R        int    `json:"r"`
	Facing   string `json:"facing"`
}

// DeployForces places a commander's starting units on the battlefield. Each
// side deploys once, inside its own map edge zone; when both sides have
// deployed, the battle leaves SETUP and the first initiative is rolled.
func DeployForces(repo BattleRepo, cfg *config.LoadedConfig, battleID uint, email string, specs []DeployUnitSpec, actionTimeout time.Duration, roller dice.Roller) (*game.Battle, error) {
	b, err := repo.GetBattleByID(battleID)
	if err != nil || b == nil {
		return nil, ErrBattleNotFound
	}
	if b.Phase != game.PhaseSetup || b.Status == game.StatusFinished {
		return nil, ErrBattleNotInProgress
	}
	cmd := b.CommanderByEmail(email)
	if cmd == nil {
		return nil, ErrCommanderNotFound
	}
	if cmd.HasDeployed {
		return nil, ErrAlreadyDeployed
	}
	if len(specs) == 0 {
		return nil, ErrNoUnits
	}
	if len(specs) > maxDeployUnits {
		return nil, ErrTooManyUnits
	}

	taken := make(map[game.Coord]bool, len(specs))
	for _, u := range b.Units {
		taken[u.Position()] = true
	}

	for _, spec := range specs {
		tpl, ok := cfg.TemplateByName(spec.Template)
		if !ok {
			return nil, ErrUnknownTemplate
		}
		pos := game.Coord{Q: spec.Q, R: spec.R}
		if !b.InBounds(pos) || !inDeployZone(b, cmd.Side, pos) {
			return nil, ErrOutsideDeployZone
		}
		if taken[pos] {
			return nil, ErrDeployOverlap
		}
		taken[pos] = true

		facing := game.Facing(spec.Facing)
		if !game.ValidFacing(facing) {
			facing = defaultFacing(cmd.Side)
		}
		bonus := ability.ConstructionBonus(tpl.Abilities)
		unit := game.NewUnitFromTemplate(tpl, cmd.Side, spec.Name, pos, facing, bonus)
		b.AddUnit(unit)
	}

	cmd.HasDeployed = true
	b.AppendLog(cmd.Name+" deploys forces", map[string]any{
		"side": cmd.Side, "units": len(specs),
	})

	if bothDeployed(b) {
		engine.AdvancePhase(b, roller) // SETUP -> INITIATIVE
		engine.RollInitiative(b, roller)
		engine.AdvancePhase(b, roller) // INITIATIVE -> MOVEMENT
		b.Message = "Battle started. " + string(b.ActiveSide) + " moves first."
		b.ActionDeadline = time.Now().Add(actionTimeout)
		logging.Info("battle started", logging.Fields{"battle_id": b.ID, "first": string(b.ActiveSide)})
	} else {
		b.Message = "Waiting for the other commander to deploy."
	}

	if err := repo.UpdateBattle(b); err != nil {
		return nil, err
	}
	return b, nil
}

// inDeployZone reports whether pos lies in side's deployment rows: alpha
// owns the low-r edge of the map, bravo the high-r edge.
func inDeployZone(b *game.Battle, side game.Side, pos game.Coord) bool {
	if side == game.SideAlpha {
		return pos.R < deployZoneDepth
	}
	return pos.R >= b.Height-deployZoneDepth
}

func defaultFacing(side game.Side) game.Facing {
	if side == game.SideAlpha {
		return game.FacingSouth
	}
	return game.FacingNorth
}

func bothDeployed(b *game.Battle) bool {
	if len(b.Commanders) < 2 {
		return false
	}
	for i := range b.Commanders {
		if !b.Commanders[i].HasDeployed {
			return false
		}
	}
	return true
}
