package engine

import (
	"math"

	"github.com/hexmech/hexmech/internal/ability"
	"github.com/hexmech/hexmech/internal/game"
)

const proneStandCost = 2

// moveAllowance computes how many hexes the unit may spend this turn with
// the chosen movement kind, after movement criticals, heat and infantry
// attrition. Never negative.
func moveAllowance(u *game.Unit, kind game.MoveKind) int {
	base := 0
	switch kind {
	case game.MoveWalk:
		base = u.Walk
	case game.MoveRun:
		base = u.Run
	case game.MoveJump:
		base = u.Jump
	}
	if u.Kind == game.KindInfantry {
		scaled := int(math.Floor(float64(base) * u.StrengthRatio()))
		if scaled < 1 && base > 0 && u.TroopsRemaining() > 0 {
			scaled = 1
		}
		base = scaled
	}
	base -= u.MovementHits
	base -= heatMovementPenalty(u)
	if base < 0 {
		base = 0
	}
	return base
}

// MoveUnit validates and executes one unit's move for the turn: destination
// legality, allowance against terrain-adjusted cost, then position update,
// movement heat and the per-turn flags. Illegal moves mutate nothing.
func MoveUnit(b *game.Battle, unitID uint, dest game.Coord, kind game.MoveKind, facing game.Facing) MoveResult {
	if b.Phase != game.PhaseMovement {
		return MoveResult{Reason: ReasonWrongPhase}
	}
	u := b.UnitByID(unitID)
	if u == nil {
		return MoveResult{Reason: ReasonUnknownUnit}
	}
	if u.Side != b.ActiveSide {
		return MoveResult{Reason: ReasonNotActiveSide}
	}
	if u.Destroyed() {
		return MoveResult{Reason: ReasonUnitDestroyed}
	}
	if u.HasMoved {
		return MoveResult{Reason: ReasonAlreadyMoved}
	}
	if u.HasEffect(game.StatusShutdown) || u.HasEffect(game.StatusImmobilized) || u.HasEffect(game.StatusGrappled) {
		return MoveResult{Reason: ReasonImmobilized}
	}
	switch kind {
	case game.MoveWalk, game.MoveRun:
	case game.MoveJump:
		if u.Jump <= 0 {
			return MoveResult{Reason: ReasonInvalidMoveKind}
		}
	default:
		return MoveResult{Reason: ReasonInvalidMoveKind}
	}
	if !game.ValidFacing(facing) {
		return MoveResult{Reason: ReasonInvalidFacing}
	}
	if !b.InBounds(dest) {
		return MoveResult{Reason: ReasonOutOfBounds}
	}

	// One unit per hex, except infantry closing in for same-hex attacks.
	if occupant := b.UnitAt(dest); occupant != nil && occupant.ID != u.ID {
		if !(u.Kind == game.KindInfantry && occupant.Side != u.Side) {
			return MoveResult{Reason: ReasonOccupied}
		}
	}

	from := u.Position()
	distance := from.Distance(dest)
	cost := distance

	terrain := b.TerrainAt(dest)
	flying := kind == game.MoveJump || u.Subtype == game.SubtypeVTOL
	if !flying {
		entry, passable := game.TerrainMovementCost(terrain, u.Kind, u.Subtype)
		if !passable {
			return MoveResult{Reason: ReasonImpassable}
		}
		entry = ability.MovementCost(ability.Context{Battle: b, Unit: u, Terrain: terrain}, entry)
		// Path cost approximates as distance with the destination hex charged
		// at its terrain rate instead of 1.
		cost = distance + entry - 1
	}
	if u.HasEffect(game.StatusProne) {
		cost += proneStandCost
	}

	allowance := moveAllowance(u, kind)
	if cost > allowance {
		return MoveResult{Reason: ReasonInsufficientMove}
	}

	heat := movementHeat(b, u, kind, distance)

	u.SetPosition(dest)
	u.Facing = facing
	u.RemoveEffect(game.StatusProne)
	u.HasMoved = true
	u.MoveType = kind
	u.MovedHexes = distance
	addHeat(u, heat)

	b.AppendLog(u.Name+" moves", map[string]any{
		"unit": u.ID, "to_q": dest.Q, "to_r": dest.R, "kind": kind, "cost": cost, "heat": heat,
	})
	return MoveResult{Legal: true, Cost: cost, Heat: heat}
}

// movementHeat returns the heat generated by one move. Only mechs heat up.
func movementHeat(b *game.Battle, u *game.Unit, kind game.MoveKind, hexes int) int {
	if u.Kind != game.KindMech {
		return 0
	}
	switch kind {
	case game.MoveWalk:
		return heatWalk
	case game.MoveRun:
		return heatRun
	case game.MoveJump:
		return jumpHeat(b.JumpHeat, hexes)
	}
	return 0
}

// SetDefensiveStance forgoes the unit's attack for the round in exchange for
// a harder melee profile. Counts as the unit's combat action.
func SetDefensiveStance(b *game.Battle, unitID uint) AttackResult {
	if b.Phase != game.PhaseCombat {
		return illegal(ReasonWrongPhase)
	}
	u := b.UnitByID(unitID)
	if u == nil {
		return illegal(ReasonUnknownUnit)
	}
	if u.Side != b.ActiveSide {
		return illegal(ReasonNotActiveSide)
	}
	if u.Destroyed() {
		return illegal(ReasonUnitDestroyed)
	}
	if u.HasFired {
		return illegal(ReasonAlreadyFired)
	}
	u.AddEffect(game.StatusDefensiveStance)
	u.HasFired = true
	b.AppendLog(u.Name+" braces into a defensive stance", map[string]any{"unit": u.ID})
	return AttackResult{Legal: true, Effects: []string{string(game.StatusDefensiveStance)}}
}
