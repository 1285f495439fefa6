package api

import (
	"net/http"
	"unicode/utf8"

	"github.com/hexmech/hexmech/internal/constants"
	"github.com/hexmech/hexmech/internal/game"
	"github.com/hexmech/hexmech/internal/logging"
	"github.com/hexmech/hexmech/internal/service"

	"github.com/gin-gonic/gin"
)

// aiCommanderEmail identifies the built-in opponent seat. It is not a real
// mailbox; the address only has to be unique inside one battle.
const aiCommanderEmail = "ai@hexmech.local"

type CreateBattlePayload struct {
	CommanderName string `json:"commander_name"`
	Name          string `json:"name"`
	Description   string `json:"description"`
	Private       bool   `json:"private"`
	MapName       string `json:"map_name"`
	// VsAI fills the second seat with the built-in opponent immediately.
	VsAI bool `json:"vs_ai"`
}

// CreateBattle creates a new battle and returns its ID and join code.
func (h *BattleHandler) CreateBattle(c *gin.Context) {
	var req CreateBattlePayload
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{constants.JSONKeyError: constants.ErrInvalidRequest})
		return
	}
	email, name := sessionIdentity(c)
	if req.CommanderName != "" {
		name = req.CommanderName
	}

	if utf8.RuneCountInString(req.Name) > 32 {
		c.JSON(http.StatusBadRequest, gin.H{constants.JSONKeyError: constants.ErrBattleNameExceeds})
		return
	}
	if utf8.RuneCountInString(req.Description) > 256 {
		c.JSON(http.StatusBadRequest, gin.H{constants.JSONKeyError: constants.ErrDescriptionExceeds})
		return
	}

	m, ok := h.cfg.MapByName(req.MapName)
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{constants.JSONKeyError: constants.ErrUnknownMap})
		return
	}

	b := game.Battle{
		Name:        req.Name,
		Description: req.Description,
		Private:     req.Private,
		JoinCode:    generateJoinCode(),
		Status:      game.StatusWaitingForPlayers,
		Phase:       game.PhaseSetup,
		MapName:     m.Name,
		Width:       m.Width,
		Height:      m.Height,
		Commanders: []game.Commander{
			{Side: game.SideAlpha, Name: name, Email: email},
		},
		Message: "Battle created. Waiting for an opposing commander.",
	}
	b.SetTerrain(m.Terrain)

	if req.VsAI {
		b.Commanders = append(b.Commanders, game.Commander{
			Side: game.SideBravo, Name: "AI Commander", Email: aiCommanderEmail, IsAI: true,
		})
		b.Message = "Battle created. Deploy your forces."
	}

	_ = h.repo.UpsertProfile(email, name)

	if err := h.repo.CreateBattle(&b); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{constants.JSONKeyError: constants.ErrFailedCreateBattle})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"battle_id": b.ID,
		"join_code": b.JoinCode,
	})
}

type JoinBattlePayload struct {
	JoinCode      string `json:"join_code"`
	CommanderName string `json:"commander_name"`
}

// JoinBattle seats a second commander via join code.
func (h *BattleHandler) JoinBattle(c *gin.Context) {
	var req JoinBattlePayload
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{constants.JSONKeyError: constants.ErrInvalidRequest})
		return
	}
	email, name := sessionIdentity(c)
	if req.CommanderName != "" {
		name = req.CommanderName
	}

	code := normalizeJoinCode(req.JoinCode)
	if code == "" || !joinCodeRegex.MatchString(code) {
		c.JSON(http.StatusBadRequest, gin.H{constants.JSONKeyError: constants.ErrInvalidBattleID})
		return
	}
	b, err := h.repo.FindBattleByJoinCode(code)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{constants.JSONKeyError: constants.ErrBattleNotFound})
		return
	}
	if len(b.Commanders) >= 2 {
		c.JSON(http.StatusConflict, gin.H{constants.JSONKeyError: constants.ErrBattleFull})
		return
	}

	side := game.SideAlpha
	if b.CommanderBySide(game.SideAlpha) != nil {
		side = game.SideBravo
	}
	b.Commanders = append(b.Commanders, game.Commander{Side: side, Name: name, Email: email})
	b.Message = "Both commanders seated. Deploy your forces."

	_ = h.repo.UpsertProfile(email, name)

	if err := h.repo.UpdateBattle(b); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{constants.JSONKeyError: constants.ErrFailedUpdateBattle})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"battle_id": b.ID,
		"join_code": b.JoinCode,
		"side":      side,
	})
}

type DeployPayload struct {
	Units []service.DeployUnitSpec `json:"units"`
}

// Deploy places the caller's starting force. When the opposing seat is the
// built-in AI, its force is placed automatically right after.
func (h *BattleHandler) Deploy(c *gin.Context) {
	id, ok := battleIDParam(c)
	if !ok {
		return
	}
	var req DeployPayload
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{constants.JSONKeyError: constants.ErrInvalidRequest})
		return
	}
	email, _ := sessionIdentity(c)

	b, err := service.DeployForces(h.repo, h.cfg, id, email, req.Units, h.actionTimeout, h.roller)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	// Auto-deploy the AI seat so a solo battle starts without a second call.
	if ai := pendingAISeat(b); ai != nil {
		b, err = service.DeployForces(h.repo, h.cfg, id, ai.Email, h.defaultAIForce(b), h.actionTimeout, h.roller)
		if err != nil {
			logging.Error("failed to auto-deploy ai force", err, logging.Fields{constants.LogFieldBattleID: id})
			c.JSON(http.StatusInternalServerError, gin.H{constants.JSONKeyError: constants.ErrFailedUpdateBattle})
			return
		}
	}

	out, err := MarshalForContext(c, b)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{constants.JSONKeyError: constants.ErrFailedUpdateBattle})
		return
	}
	c.JSON(http.StatusOK, out)
}

// pendingAISeat returns the AI commander still waiting to deploy, or nil.
func pendingAISeat(b *game.Battle) *game.Commander {
	for i := range b.Commanders {
		if b.Commanders[i].IsAI && !b.Commanders[i].HasDeployed {
			return &b.Commanders[i]
		}
	}
	return nil
}

// defaultAIForce builds a small mixed force from the template catalog,
// spread along the AI's deployment edge.
func (h *BattleHandler) defaultAIForce(b *game.Battle) []service.DeployUnitSpec {
	count := 4
	if count > b.Width {
		count = b.Width
	}
	specs := make([]service.DeployUnitSpec, 0, count)
	for i := 0; i < count; i++ {
		tpl := h.cfg.Templates[i%len(h.cfg.Templates)]
		specs = append(specs, service.DeployUnitSpec{
			Template: tpl.Name,
			Q:        i,
			R:        b.Height - 1,
		})
	}
	return specs
}

// EndBattle lets a participant resign. Resigning hands the win to the
// opposing side and counts as a resignation in the quitter's stats.
func (h *BattleHandler) EndBattle(c *gin.Context) {
	id, ok := battleIDParam(c)
	if !ok {
		return
	}
	email, _ := sessionIdentity(c)
	b, err := h.repo.GetBattleByID(id)
	if err != nil || b == nil {
		c.JSON(http.StatusNotFound, gin.H{constants.JSONKeyError: constants.ErrBattleNotFound})
		return
	}
	quitter := b.CommanderByEmail(email)
	if quitter == nil {
		c.JSON(http.StatusForbidden, gin.H{constants.JSONKeyError: constants.ErrCommanderNotInBattle})
		return
	}
	if b.Status == game.StatusFinished {
		c.JSON(http.StatusConflict, gin.H{constants.JSONKeyError: constants.ErrBattleNotInProgress})
		return
	}

	b.Status = game.StatusFinished
	b.Winner = game.Opponent(quitter.Side)
	b.Message = quitter.Name + " resigned. " + string(b.Winner) + " wins."
	b.AppendLog("commander resigned", map[string]any{"side": quitter.Side})
	if !b.StatsCounted {
		_ = h.repo.UpdateStatsOnBattleEnd(b, email)
		b.StatsCounted = true
	}
	if err := h.repo.UpdateBattle(b); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{constants.JSONKeyError: constants.ErrFailedEndBattle})
		return
	}
	c.JSON(http.StatusOK, gin.H{constants.JSONKeyMessage: "Battle ended"})
}

// LeaveBattle removes a commander from a battle that has not started.
func (h *BattleHandler) LeaveBattle(c *gin.Context) {
	id, ok := battleIDParam(c)
	if !ok {
		return
	}
	email, _ := sessionIdentity(c)
	b, err := h.repo.GetBattleByID(id)
	if err != nil || b == nil {
		c.JSON(http.StatusNotFound, gin.H{constants.JSONKeyError: constants.ErrBattleNotFound})
		return
	}
	if b.Status != game.StatusWaitingForPlayers {
		c.JSON(http.StatusConflict, gin.H{constants.JSONKeyError: constants.ErrCannotLeaveInProgress})
		return
	}
	if b.CommanderByEmail(email) == nil {
		c.JSON(http.StatusForbidden, gin.H{constants.JSONKeyError: constants.ErrCommanderNotInBattle})
		return
	}
	if err := h.repo.RemoveCommanderByEmail(b.ID, email); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{constants.JSONKeyError: constants.ErrFailedRemoveCommander})
		return
	}
	// Mirror the removal in memory so the save below does not re-attach the
	// commander via FullSaveAssociations.
	kept := make([]game.Commander, 0, len(b.Commanders))
	for _, cm := range b.Commanders {
		if cm.Email != email {
			kept = append(kept, cm)
		}
	}
	b.Commanders = kept
	b.Message = "A commander left. Waiting for a new opponent."
	if err := h.repo.UpdateBattle(b); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{constants.JSONKeyError: constants.ErrFailedUpdateBattle})
		return
	}
	c.JSON(http.StatusOK, gin.H{constants.JSONKeyMessage: "Commander removed"})
}
