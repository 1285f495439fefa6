package config

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/hexmech/hexmech/internal/ability"
	"github.com/hexmech/hexmech/internal/game"
	"github.com/hexmech/hexmech/internal/keys"
)

type templateEntry struct {
	Name         string   `json:"name"`
	Kind         string   `json:"kind"`
	Subtype      string   `json:"subtype"`
	Weight       int      `json:"weight"`
	Walk         int      `json:"walk"`
	Run          int      `json:"run"`
	Jump         int      `json:"jump"`
	Armor        int      `json:"armor"`
	Structure    int      `json:"structure"`
	Skill        int      `json:"skill"`
	TMM          int      `json:"tmm"`
	DamageShort  int      `json:"damage_short"`
	DamageMedium int      `json:"damage_medium"`
	DamageLong   int      `json:"damage_long"`
	DamageExt    int      `json:"damage_extreme"`
	HeatCapacity int      `json:"heat_capacity"`
	Troops       int      `json:"troops"`
	Abilities    []string `json:"abilities"`
}

type terrainEntry struct {
	Q       int    `json:"q"`
	R       int    `json:"r"`
	Terrain string `json:"terrain"`
}

type mapEntry struct {
	Name    string         `json:"name"`
	Width   int            `json:"width"`
	Height  int            `json:"height"`
	Terrain []terrainEntry `json:"terrain"`
}

type rawConfig struct {
	UnitTemplates []templateEntry `json:"unit_templates"`
	Maps          []mapEntry      `json:"maps"`
	Server        *struct {
		Address string `json:"address"`
	} `json:"server"`
	// ActionTimeoutSeconds is the per-phase inactivity deadline. Battles
	// whose deadline lapses are expired by the background scanner.
	ActionTimeoutSeconds int `json:"action_timeout_seconds"`
	// Optional prompt template used when the AI commander asks OpenAI for a
	// battle plan. Use the token {{situation}} where the serialized battle
	// summary will be substituted.
	AIPrompt string `json:"ai_prompt"`
}

// BattleMap is a named battlefield layout from the configuration.
type BattleMap struct {
	Name    string
	Width   int
	Height  int
	Terrain map[game.Coord]game.TerrainKind
}

// LoadedConfig is the validated server configuration: the unit template
// catalog, battlefield maps and server settings. The config file is the
// single source of truth for unit stats; nothing here is persisted.
type LoadedConfig struct {
	Templates     []game.UnitTemplate
	Maps          []BattleMap
	ServerAddress string
	ActionTimeout time.Duration
	// Optional AI prompt template loaded from config
	AIPromptTemplate string
}

// TemplateByName returns the template whose canonical key (see
// keys.TemplateKey) matches name.
func (c *LoadedConfig) TemplateByName(name string) (game.UnitTemplate, bool) {
	want := keys.TemplateKey(name)
	for _, t := range c.Templates {
		if keys.TemplateKey(t.Name) == want {
			return t, true
		}
	}
	return game.UnitTemplate{}, false
}

// MapByName returns the configured map with the given name, or the first
// map when name is empty.
func (c *LoadedConfig) MapByName(name string) (BattleMap, bool) {
	if name == "" && len(c.Maps) > 0 {
		return c.Maps[0], true
	}
	want := keys.TemplateKey(name)
	for _, m := range c.Maps {
		if keys.TemplateKey(m.Name) == want {
			return m, true
		}
	}
	return BattleMap{}, false
}

const defaultActionTimeout = 5 * time.Minute

// LoadConfig reads and validates the configuration file at path. It requires
// a non-empty `unit_templates` array and at least one map.
func LoadConfig(path string) (*LoadedConfig, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}
	var rc rawConfig
	if err := json.Unmarshal(b, &rc); err != nil {
		return nil, fmt.Errorf("failed to parse config file %s: %w", path, err)
	}

	if len(rc.UnitTemplates) == 0 {
		return nil, fmt.Errorf("config file %s: unit_templates is empty (provide a 'unit_templates' array)", path)
	}
	if len(rc.Maps) == 0 {
		return nil, fmt.Errorf("config file %s: maps is empty (provide at least one map)", path)
	}

	templates := make([]game.UnitTemplate, 0, len(rc.UnitTemplates))
	nameSet := make(map[string]struct{}, len(rc.UnitTemplates))
	for _, e := range rc.UnitTemplates {
		tpl, err := buildTemplate(e)
		if err != nil {
			return nil, fmt.Errorf("config file %s: %w", path, err)
		}
		ln := strings.ToLower(strings.TrimSpace(tpl.Name))
		if _, exists := nameSet[ln]; exists {
			return nil, fmt.Errorf("config file %s: duplicate template name '%s'", path, tpl.Name)
		}
		nameSet[ln] = struct{}{}
		templates = append(templates, tpl)
	}

	maps := make([]BattleMap, 0, len(rc.Maps))
	mapSet := make(map[string]struct{}, len(rc.Maps))
	for _, e := range rc.Maps {
		m, err := buildMap(e)
		if err != nil {
			return nil, fmt.Errorf("config file %s: %w", path, err)
		}
		ln := strings.ToLower(m.Name)
		if _, exists := mapSet[ln]; exists {
			return nil, fmt.Errorf("config file %s: duplicate map name '%s'", path, m.Name)
		}
		mapSet[ln] = struct{}{}
		maps = append(maps, m)
	}

	addr := ":8080"
	if rc.Server != nil && rc.Server.Address != "" {
		addr = rc.Server.Address
	}
	timeout := defaultActionTimeout
	if rc.ActionTimeoutSeconds > 0 {
		timeout = time.Duration(rc.ActionTimeoutSeconds) * time.Second
	}

	return &LoadedConfig{
		Templates:        templates,
		Maps:             maps,
		ServerAddress:    addr,
		ActionTimeout:    timeout,
		AIPromptTemplate: strings.TrimSpace(rc.AIPrompt),
	}, nil
}

func buildTemplate(e templateEntry) (game.UnitTemplate, error) {
	if strings.TrimSpace(e.Name) == "" {
		return game.UnitTemplate{}, fmt.Errorf("template entry missing 'name'")
	}
	kind := game.UnitKind(e.Kind)
	switch kind {
	case game.KindMech, game.KindVehicle, game.KindInfantry:
	default:
		return game.UnitTemplate{}, fmt.Errorf("template '%s': unknown kind '%s'", e.Name, e.Kind)
	}
	subtype := game.VehicleSubtype(e.Subtype)
	if kind == game.KindVehicle {
		switch subtype {
		case game.SubtypeTracked, game.SubtypeWheeled, game.SubtypeHover, game.SubtypeVTOL:
		default:
			return game.UnitTemplate{}, fmt.Errorf("template '%s': vehicle needs a subtype (tracked/wheeled/hover/vtol)", e.Name)
		}
	} else if subtype != game.SubtypeNone {
		return game.UnitTemplate{}, fmt.Errorf("template '%s': subtype only applies to vehicles", e.Name)
	}
	if e.Armor < 0 || e.Structure <= 0 {
		return game.UnitTemplate{}, fmt.Errorf("template '%s': structure must be positive", e.Name)
	}
	if kind == game.KindMech && e.HeatCapacity <= 0 {
		return game.UnitTemplate{}, fmt.Errorf("template '%s': mechs need a positive heat_capacity", e.Name)
	}
	if kind == game.KindInfantry && e.Troops <= 0 {
		return game.UnitTemplate{}, fmt.Errorf("template '%s': infantry need a positive troop count", e.Name)
	}

	codes := make([]game.AbilityCode, 0, len(e.Abilities))
	for _, raw := range e.Abilities {
		code := game.AbilityCode(strings.ToUpper(strings.TrimSpace(raw)))
		def, ok := ability.Lookup(code)
		if !ok {
			return game.UnitTemplate{}, fmt.Errorf("template '%s': unknown ability code '%s'", e.Name, raw)
		}
		if !def.AppliesTo(kind) {
			return game.UnitTemplate{}, fmt.Errorf("template '%s': ability '%s' does not apply to kind '%s'", e.Name, code, kind)
		}
		codes = append(codes, code)
	}

	return game.UnitTemplate{
		Name:         strings.TrimSpace(e.Name),
		Kind:         kind,
		Subtype:      subtype,
		Weight:       e.Weight,
		Walk:         e.Walk,
		Run:          e.Run,
		Jump:         e.Jump,
		Armor:        e.Armor,
		Structure:    e.Structure,
		Skill:        e.Skill,
		TMM:          e.TMM,
		DamageShort:  e.DamageShort,
		DamageMedium: e.DamageMedium,
		DamageLong:   e.DamageLong,
		DamageExt:    e.DamageExt,
		HeatCapacity: e.HeatCapacity,
		Troops:       e.Troops,
		Abilities:    codes,
	}, nil
}

func buildMap(e mapEntry) (BattleMap, error) {
	if strings.TrimSpace(e.Name) == "" {
		return BattleMap{}, fmt.Errorf("map entry missing 'name'")
	}
	if e.Width <= 0 || e.Height <= 0 {
		return BattleMap{}, fmt.Errorf("map '%s': width and height must be positive", e.Name)
	}
	terrain := make(map[game.Coord]game.TerrainKind, len(e.Terrain))
	for _, t := range e.Terrain {
		kind := game.TerrainKind(t.Terrain)
		if !game.ValidTerrain(kind) {
			return BattleMap{}, fmt.Errorf("map '%s': unknown terrain '%s' at (%d,%d)", e.Name, t.Terrain, t.Q, t.R)
		}
		if t.Q < 0 || t.Q >= e.Width || t.R < 0 || t.R >= e.Height {
			return BattleMap{}, fmt.Errorf("map '%s': terrain cell (%d,%d) is out of bounds", e.Name, t.Q, t.R)
		}
		terrain[game.Coord{Q: t.Q, R: t.R}] = kind
	}
	return BattleMap{Name: strings.TrimSpace(e.Name), Width: e.Width, Height: e.Height, Terrain: terrain}, nil
}
