package engine

// Modifier is one named contribution to a target number, preserved in the
// result so logs and UIs can show the full calculation.
type Modifier struct {
	Source string `json:"source"`
	Value  int    `json:"value"`
}

// RollDetail records how a to-hit roll was assembled.
type RollDetail struct {
	Dice      []int      `json:"dice"`
	Natural   int        `json:"natural"`
	Total     int        `json:"total"`
	Target    int        `json:"target"`
	Modifiers []Modifier `json:"modifiers"`
}

// AttackResult is the structured outcome shared by every attack variant.
// Illegal attempts carry Legal=false plus a reason and cause no mutation;
// a miss is a legal result, not an error.
type AttackResult struct {
	Legal             bool       `json:"legal"`
	Reason            string     `json:"reason,omitempty"`
	Hit               bool       `json:"hit"`
	Roll              RollDetail `json:"roll"`
	Damage            int        `json:"damage"`
	SelfDamage        int        `json:"self_damage"`
	Location          string     `json:"location,omitempty"`
	CriticalTriggered bool       `json:"critical_triggered"`
	Effects           []string   `json:"effects,omitempty"`
}

func illegal(reason string) AttackResult {
	return AttackResult{Legal: false, Reason: reason}
}

// MoveResult reports a movement attempt.
type MoveResult struct {
	Legal  bool   `json:"legal"`
	Reason string `json:"reason,omitempty"`
	Cost   int    `json:"cost"`
	Heat   int    `json:"heat"`
}

// InitiativeResult reports one initiative roll-off.
type InitiativeResult struct {
	Legal      bool   `json:"legal"`
	Reason     string `json:"reason,omitempty"`
	Winner     string `json:"winner"`
	AlphaDice  []int  `json:"alpha_dice"`
	BravoDice  []int  `json:"bravo_dice"`
	AlphaTotal int    `json:"alpha_total"`
	BravoTotal int    `json:"bravo_total"`
	TieBroken  bool   `json:"tie_broken"`
}

// GameOverResult reports whether one side has been wiped out.
type GameOverResult struct {
	Over   bool   `json:"over"`
	Winner string `json:"winner,omitempty"`
}

// Illegal-action reasons shared across the pipelines.
const (
	ReasonWrongPhase         = "wrong phase"
	ReasonNotActiveSide      = "not the active side"
	ReasonUnknownUnit        = "unknown unit"
	ReasonUnitDestroyed      = "unit destroyed"
	ReasonTargetDestroyed    = "target destroyed"
	ReasonAttackerShutDown   = "attacker is shut down"
	ReasonAlreadyFired       = "unit has already attacked this round"
	ReasonAlreadyMoved       = "unit has already moved this round"
	ReasonSameSide           = "target is friendly"
	ReasonSelfTarget         = "cannot target itself"
	ReasonNoEffectiveWeapons = "no effective weapons at this range"
	ReasonNotAdjacent        = "target is not adjacent"
	ReasonNotSameHex         = "target is not in the same hex"
	ReasonWrongUnitKind      = "unit kind cannot make this attack"
	ReasonMissingCapability  = "unit lacks the required capability"
	ReasonTargetNotProne     = "target is not prone"
	ReasonInsufficientCharge = "insufficient movement for a charge"
	ReasonDidNotJump         = "unit did not jump this turn"
	ReasonWeightMismatch     = "attacker too light for this attack"
	ReasonImmobilized        = "unit cannot move"
	ReasonOutOfBounds        = "destination is off the map"
	ReasonOccupied           = "destination is occupied"
	ReasonImpassable         = "terrain is impassable for this unit"
	ReasonInsufficientMove   = "insufficient movement"
	ReasonInvalidFacing      = "invalid facing"
	ReasonInvalidMoveKind    = "invalid movement kind"
)
