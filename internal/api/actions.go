package api

import (
	"net/http"

	"github.com/hexmech/hexmech/internal/constants"
	"github.com/hexmech/hexmech/internal/service"

	"github.com/gin-gonic/gin"
)

// SubmitCommand executes one order for the session commander's active unit.
func (h *BattleHandler) SubmitCommand(c *gin.Context) {
	id, ok := battleIDParam(c)
	if !ok {
		return
	}
	var cmd service.Command
	if err := c.ShouldBindJSON(&cmd); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{constants.JSONKeyError: constants.ErrInvalidRequest})
		return
	}
	email, _ := sessionIdentity(c)
	if email == "" {
		c.JSON(http.StatusUnauthorized, gin.H{constants.JSONKeyError: constants.ErrAuthRequired})
		return
	}

	b, res, err := service.SubmitCommand(h.repo, id, email, cmd, h.actionTimeout, h.roller)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	battle, mErr := MarshalForContext(c, b)
	if mErr != nil {
		c.JSON(http.StatusInternalServerError, gin.H{constants.JSONKeyError: constants.ErrFailedSubmitCommand})
		return
	}
	c.JSON(http.StatusOK, gin.H{"result": res, "battle": battle})
}

// AITurn asks the built-in opponent to play its remaining activations.
// Concurrent calls for the same turn are collapsed server-side, so clients
// may poll this endpoint safely.
func (h *BattleHandler) AITurn(c *gin.Context) {
	id, ok := battleIDParam(c)
	if !ok {
		return
	}
	b, err := service.AITurn(h.repo, id, h.actionTimeout, h.roller)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	out, mErr := MarshalForContext(c, b)
	if mErr != nil {
		c.JSON(http.StatusInternalServerError, gin.H{constants.JSONKeyError: constants.ErrFailedSubmitCommand})
		return
	}
	c.JSON(http.StatusOK, out)
}

// respondServiceError maps service-layer errors onto HTTP statuses.
func respondServiceError(c *gin.Context, err error) {
	switch err {
	case service.ErrBattleNotFound:
		c.JSON(http.StatusNotFound, gin.H{constants.JSONKeyError: constants.ErrBattleNotFound})
	case service.ErrBattleNotInProgress:
		c.JSON(http.StatusConflict, gin.H{constants.JSONKeyError: constants.ErrBattleNotInProgress})
	case service.ErrCommanderNotFound:
		c.JSON(http.StatusForbidden, gin.H{constants.JSONKeyError: constants.ErrCommanderNotInBattle})
	case service.ErrNotYourTurn:
		c.JSON(http.StatusConflict, gin.H{constants.JSONKeyError: constants.ErrNotYourTurn})
	case service.ErrNotAISeat:
		c.JSON(http.StatusConflict, gin.H{constants.JSONKeyError: constants.ErrNotAISeat})
	case service.ErrAlreadyDeployed, service.ErrUnknownTemplate, service.ErrOutsideDeployZone,
		service.ErrDeployOverlap, service.ErrTooManyUnits, service.ErrNoUnits, service.ErrUnknownCommand:
		c.JSON(http.StatusBadRequest, gin.H{constants.JSONKeyError: err.Error()})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{constants.JSONKeyError: constants.ErrFailedSubmitCommand})
	}
}
