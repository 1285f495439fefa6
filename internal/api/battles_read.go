package api

import (
	"net/http"
	"regexp"
	"strconv"
	"strings"

	"github.com/hexmech/hexmech/internal/ability"
	"github.com/hexmech/hexmech/internal/constants"
	"github.com/hexmech/hexmech/internal/game"
	"github.com/gin-gonic/gin"
)

// ListPublicBattles returns open public battles waiting for an opponent.
func (h *BattleHandler) ListPublicBattles(c *gin.Context) {
	battles, err := h.repo.GetPublicBattles()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{constants.JSONKeyError: constants.ErrFailedFetchBattles})
		return
	}
	out, err := MarshalForContext(c, battles)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{constants.JSONKeyError: constants.ErrFailedFetchBattles})
		return
	}
	c.JSON(http.StatusOK, out)
}

// GetBattle returns one battle with its full roster.
func (h *BattleHandler) GetBattle(c *gin.Context) {
	id, ok := battleIDParam(c)
	if !ok {
		return
	}
	b, err := h.repo.GetBattleByID(id)
	if err != nil || b == nil {
		c.JSON(http.StatusNotFound, gin.H{constants.JSONKeyError: constants.ErrBattleNotFound})
		return
	}
	out, err := MarshalForContext(c, b)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{constants.JSONKeyError: constants.ErrFailedFetchBattles})
		return
	}
	c.JSON(http.StatusOK, out)
}

// GetBattleLog returns the most recent battle log entries, newest first.
func (h *BattleHandler) GetBattleLog(c *gin.Context) {
	id, ok := battleIDParam(c)
	if !ok {
		return
	}
	limit := 100
	if s := c.Query("limit"); s != "" {
		if n, err := strconv.Atoi(s); err == nil && n > 0 && n <= 500 {
			limit = n
		}
	}
	entries, err := h.repo.GetBattleLog(id, limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{constants.JSONKeyError: constants.ErrFailedFetchLog})
		return
	}
	out, err := MarshalIntoSnakeTimestamps(entries)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{constants.JSONKeyError: constants.ErrFailedFetchLog})
		return
	}
	c.JSON(http.StatusOK, out)
}

// ListLeaderboard returns the top commanders by wins, top 10 by default.
func (h *BattleHandler) ListLeaderboard(c *gin.Context) {
	limit := 10
	if s := c.Query("limit"); s != "" {
		if n, err := strconv.Atoi(s); err == nil && n > 0 && n <= 100 {
			limit = n
		}
	}
	profiles, err := h.repo.GetTopCommanders(limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{constants.JSONKeyError: constants.ErrFailedFetchLeaderboard})
		return
	}
	out, err := MarshalForContext(c, profiles)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{constants.JSONKeyError: constants.ErrFailedFetchLeaderboard})
		return
	}
	c.JSON(http.StatusOK, out)
}

// GetCommanderStats returns the aggregate record for the session commander.
func (h *BattleHandler) GetCommanderStats(c *gin.Context) {
	email, _ := sessionIdentity(c)
	if email == "" {
		c.JSON(http.StatusBadRequest, gin.H{constants.JSONKeyError: constants.ErrEmailRequired})
		return
	}
	p, err := h.repo.GetProfileByEmail(email)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{constants.JSONKeyError: constants.ErrFailedFetchStats})
		return
	}
	out, err := MarshalForContext(c, p)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{constants.JSONKeyError: constants.ErrFailedFetchStats})
		return
	}
	c.JSON(http.StatusOK, out)
}

var commanderNameRegex = regexp.MustCompile(`^[\p{L}\p{M}\p{N}.'\- ]{4,40}$`)

// UpdateCommanderProfile updates the session commander's display name.
func (h *BattleHandler) UpdateCommanderProfile(c *gin.Context) {
	var body struct {
		Name string `json:"name"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{constants.JSONKeyError: constants.ErrInvalidRequest})
		return
	}
	email, _ := sessionIdentity(c)
	if email == "" {
		c.JSON(http.StatusBadRequest, gin.H{constants.JSONKeyError: constants.ErrEmailRequired})
		return
	}
	trimmed := strings.TrimSpace(body.Name)
	if !commanderNameRegex.MatchString(trimmed) {
		c.JSON(http.StatusBadRequest, gin.H{constants.JSONKeyError: "Invalid commander name"})
		return
	}
	p, err := h.repo.GetProfileByEmail(email)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{constants.JSONKeyError: constants.ErrFailedFetchStats})
		return
	}
	p.Name = trimmed
	if err := h.repo.SaveProfile(p); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{constants.JSONKeyError: constants.ErrFailedUpdateBattle})
		return
	}
	c.JSON(http.StatusOK, gin.H{constants.JSONKeyStatus: "ok"})
}

// ListTemplates returns the unit template catalog from the configuration.
func (h *BattleHandler) ListTemplates(c *gin.Context) {
	c.JSON(http.StatusOK, h.cfg.Templates)
}

type abilityInfo struct {
	Code        string   `json:"code"`
	Name        string   `json:"name"`
	Description string   `json:"description"`
	Kinds       []string `json:"kinds"`
	Radius      int      `json:"radius,omitempty"`
}

// ListAbilities returns the static ability catalog.
func (h *BattleHandler) ListAbilities(c *gin.Context) {
	defs := ability.All()
	out := make([]abilityInfo, 0, len(defs))
	for _, d := range defs {
		kinds := make([]string, 0, len(d.Kinds))
		for _, k := range d.Kinds {
			kinds = append(kinds, string(k))
		}
		out = append(out, abilityInfo{
			Code:        string(d.Code),
			Name:        d.Name,
			Description: d.Description,
			Kinds:       kinds,
			Radius:      d.Radius,
		})
	}
	c.JSON(http.StatusOK, out)
}

type terrainCell struct {
	Q       int              `json:"q"`
	R       int              `json:"r"`
	Terrain game.TerrainKind `json:"terrain"`
}

type mapInfo struct {
	Name    string        `json:"name"`
	Width   int           `json:"width"`
	Height  int           `json:"height"`
	Terrain []terrainCell `json:"terrain"`
}

// ListMaps returns the configured battlefield maps with their terrain.
func (h *BattleHandler) ListMaps(c *gin.Context) {
	out := make([]mapInfo, 0, len(h.cfg.Maps))
	for _, m := range h.cfg.Maps {
		mi := mapInfo{Name: m.Name, Width: m.Width, Height: m.Height}
		for coord, kind := range m.Terrain {
			mi.Terrain = append(mi.Terrain, terrainCell{Q: coord.Q, R: coord.R, Terrain: kind})
		}
		out = append(out, mi)
	}
	c.JSON(http.StatusOK, out)
}
