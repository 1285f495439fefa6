package game

import (
	"encoding/json"
	"time"

	"gorm.io/gorm"
)

// Phase is the current step of the round state machine.
type Phase string

const (
	PhaseSetup      Phase = "setup"
	PhaseInitiative Phase = "initiative"
	PhaseMovement   Phase = "movement"
	PhaseCombat     Phase = "combat"
	PhaseEnd        Phase = "end"
)

// Side identifies one of the two forces in a battle.
type Side string

const (
	SideNone  Side = ""
	SideAlpha Side = "alpha"
	SideBravo Side = "bravo"
)

// Opponent returns the other side.
func Opponent(s Side) Side {
	if s == SideAlpha {
		return SideBravo
	}
	return SideAlpha
}

// Battle status values.
const (
	StatusWaitingForPlayers = "waiting_for_players"
	StatusInProgress        = "in_progress"
	StatusFinished          = "finished"
)

// JumpHeatRule selects which jump-heat formula applies. The tabletop source
// material carries two conflicting formulas; both are implemented and the
// default stays on the fixed rule until the discrepancy is settled.
type JumpHeatRule int

const (
	// JumpHeatFixed charges a flat 3 heat per jump regardless of distance.
	JumpHeatFixed JumpHeatRule = iota
	// JumpHeatByDistance charges max(3, hexes jumped).
	JumpHeatByDistance
)

// DefaultJumpHeatRule is applied to battles that do not override the rule.
const DefaultJumpHeatRule = JumpHeatFixed

// Commander is one player's seat in a battle.
type Commander struct {
	gorm.Model
	BattleID    uint   `json:"-"`
	Side        Side   `json:"side"`
	Name        string `json:"name"`
	Email       string `json:"email"`
	IsAI        bool   `json:"is_ai"`
	HasDeployed bool   `json:"has_deployed"`
}

func (Commander) TableName() string { return "battle_commanders" }

// LogEntry is one append-only battle log record for audit and replay.
type LogEntry struct {
	gorm.Model
	BattleID uint   `json:"-"`
	Round    int    `json:"round"`
	Phase    Phase  `json:"phase"`
	Message  string `json:"message"`
	Data     string `json:"data"`
}

func (LogEntry) TableName() string { return "battle_log" }

// CommanderProfile stores a unique player identity and aggregate stats.
type CommanderProfile struct {
	gorm.Model
	Email         string `gorm:"uniqueIndex"`
	Name          string
	BattlesPlayed int
	Wins          int
	Resignations  int
}

func (CommanderProfile) TableName() string { return "commander_profiles" }

// terrainFeature is a serialized terrain cell, stored in the battle's map
// column so a battle survives a restart without the original config file.
type terrainFeature struct {
	Q       int         `json:"q"`
	R       int         `json:"r"`
	Terrain TerrainKind `json:"terrain"`
}

// Battle is one full game instance: the authoritative unit collection, the
// phase/round state and the append-only log. The battlefield exclusively
// owns unit lifetime; units are added during setup and only ever flagged
// DESTROYED afterwards.
type Battle struct {
	gorm.Model
	Name        string      `json:"name" gorm:"size:32"`
	Description string      `json:"description" gorm:"size:256"`
	Private     bool        `json:"private"`
	JoinCode    string      `json:"join_code" gorm:"unique"`
	Commanders  []Commander `json:"commanders"`
	// Units holds pointers so handles returned by AddUnit and UnitByID stay
	// valid while the roster grows during deployment.
	Units []*Unit `json:"units"`

	MapName string `json:"map_name"`
	Width   int    `json:"width"`
	Height  int    `json:"height"`
	// TerrainJSON holds the serialized terrain features for this battle.
	TerrainJSON string `json:"-"`

	Phase            Phase  `json:"phase"`
	Round            int    `json:"round"`
	ActiveSide       Side   `json:"active_side"`
	InitiativeWinner Side   `json:"initiative_winner"`
	InitiativeAlpha  int    `json:"initiative_alpha"`
	InitiativeBravo  int    `json:"initiative_bravo"`
	Status           string `json:"status"`
	Winner           Side   `json:"winner"`
	Message          string `json:"message"`
	StatsCounted     bool   `json:"-"`

	ActionDeadline time.Time `json:"action_deadline"`

	// JumpHeat picks the active jump-heat formula. Not persisted; battles
	// always start on the default rule and tests override it directly.
	JumpHeat JumpHeatRule `json:"-" gorm:"-"`

	// terrain is the decoded terrain lookup, built lazily from TerrainJSON.
	terrain map[Coord]TerrainKind `gorm:"-"`

	// pendingLog buffers entries appended during resolution until the
	// storage layer flushes them.
	pendingLog []LogEntry `gorm:"-"`
}

func (Battle) TableName() string { return "battles" }

// SetTerrain installs the terrain lookup and serializes it for persistence.
func (b *Battle) SetTerrain(cells map[Coord]TerrainKind) {
	b.terrain = cells
	features := make([]terrainFeature, 0, len(cells))
	for c, k := range cells {
		features = append(features, terrainFeature{Q: c.Q, R: c.R, Terrain: k})
	}
	raw, err := json.Marshal(features)
	if err == nil {
		b.TerrainJSON = string(raw)
	}
}

// TerrainAt returns the terrain kind at c, defaulting to clear.
func (b *Battle) TerrainAt(c Coord) TerrainKind {
	if b.terrain == nil && b.TerrainJSON != "" {
		var features []terrainFeature
		if err := json.Unmarshal([]byte(b.TerrainJSON), &features); err == nil {
			b.terrain = make(map[Coord]TerrainKind, len(features))
			for _, f := range features {
				b.terrain[Coord{Q: f.Q, R: f.R}] = f.Terrain
			}
		}
	}
	if k, ok := b.terrain[c]; ok {
		return k
	}
	return TerrainClear
}

// InBounds reports whether c lies on the battle map. Axial coordinates are
// bounded by the configured rectangle in q and r.
func (b *Battle) InBounds(c Coord) bool {
	return c.Q >= 0 && c.Q < b.Width && c.R >= 0 && c.R < b.Height
}

// AddUnit registers a unit with the battle and returns its stable handle.
// The battle owns the unit from this point on.
func (b *Battle) AddUnit(u Unit) *Unit {
	u.BattleID = b.ID
	b.Units = append(b.Units, &u)
	return &u
}

// UnitByID returns the unit's stable handle, or nil.
func (b *Battle) UnitByID(id uint) *Unit {
	for _, u := range b.Units {
		if u.ID == id {
			return u
		}
	}
	return nil
}

// UnitAt returns the first non-destroyed unit occupying c, or nil.
func (b *Battle) UnitAt(c Coord) *Unit {
	for _, u := range b.Units {
		if u.Alive() && u.Position() == c {
			return u
		}
	}
	return nil
}

// LivingUnits returns every non-destroyed unit, optionally filtered by side
// (SideNone matches all).
func (b *Battle) LivingUnits(side Side) []*Unit {
	out := make([]*Unit, 0, len(b.Units))
	for _, u := range b.Units {
		if !u.Alive() {
			continue
		}
		if side != SideNone && u.Side != side {
			continue
		}
		out = append(out, u)
	}
	return out
}

// CommanderBySide returns the commander seat for side, or nil.
func (b *Battle) CommanderBySide(side Side) *Commander {
	for i := range b.Commanders {
		if b.Commanders[i].Side == side {
			return &b.Commanders[i]
		}
	}
	return nil
}

// CommanderByEmail returns the commander seat for the given identity, or nil.
func (b *Battle) CommanderByEmail(email string) *Commander {
	for i := range b.Commanders {
		if b.Commanders[i].Email == email {
			return &b.Commanders[i]
		}
	}
	return nil
}

// AppendLog records an append-only log entry tagged with the current round
// and phase. data is marshalled to JSON; a nil data logs an empty payload.
func (b *Battle) AppendLog(message string, data map[string]any) {
	payload := ""
	if data != nil {
		if raw, err := json.Marshal(data); err == nil {
			payload = string(raw)
		}
	}
	b.pendingLog = append(b.pendingLog, LogEntry{
		BattleID: b.ID,
		Round:    b.Round,
		Phase:    b.Phase,
		Message:  message,
		Data:     payload,
	})
}

// DrainLog returns and clears the buffered log entries. The storage layer
// calls this when persisting a battle.
func (b *Battle) DrainLog() []LogEntry {
	out := b.pendingLog
	b.pendingLog = nil
	return out
}

// PendingLog exposes the buffered entries without clearing them.
func (b *Battle) PendingLog() []LogEntry { return b.pendingLog }
