package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/hexmech/hexmech/internal/game"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "hexmech_config.json")
	if err := os.WriteFile(path, []byte(body), 0o600); err != nil {
		t.Fatalf("failed to write config: %v", err)
	}
	return path
}

const validConfig = `{
  "unit_templates": [
    {"name": "Scout", "kind": "mech", "weight": 30, "walk": 5, "run": 8, "armor": 4, "structure": 3, "damage_short": 2, "heat_capacity": 4, "abilities": ["arm"]},
    {"name": "Rifle Squad", "kind": "infantry", "walk": 2, "armor": 2, "structure": 2, "damage_short": 1, "troops": 20, "abilities": ["amt"]},
    {"name": "Scorpion", "kind": "vehicle", "subtype": "tracked", "weight": 25, "walk": 4, "run": 6, "armor": 4, "structure": 3, "damage_short": 2}
  ],
  "maps": [
    {"name": "Crossroads", "width": 10, "height": 10, "terrain": [{"q": 4, "r": 4, "terrain": "woods"}]}
  ],
  "server": {"address": ":9090"},
  "action_timeout_seconds": 120
}`

func TestLoadConfigValid(t *testing.T) {
	cfg, err := LoadConfig(writeConfig(t, validConfig))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(cfg.Templates) != 3 {
		t.Fatalf("expected 3 templates, got %d", len(cfg.Templates))
	}
	if cfg.ServerAddress != ":9090" {
		t.Fatalf("server address = %q, want :9090", cfg.ServerAddress)
	}
	if cfg.ActionTimeout.Seconds() != 120 {
		t.Fatalf("action timeout = %v, want 120s", cfg.ActionTimeout)
	}

	tpl, ok := cfg.TemplateByName("scout")
	if !ok {
		t.Fatalf("case-insensitive template lookup failed")
	}
	// Ability codes are uppercased during validation.
	if len(tpl.Abilities) != 1 || tpl.Abilities[0] != game.AbilityCode("ARM") {
		t.Fatalf("ability codes not normalized: %v", tpl.Abilities)
	}

	m, ok := cfg.MapByName("")
	if !ok || m.Name != "Crossroads" {
		t.Fatalf("empty map name should return the first map")
	}
	if m.Terrain[game.Coord{Q: 4, R: 4}] != game.TerrainWoods {
		t.Fatalf("terrain cell not loaded")
	}
}

func TestLoadConfigRejectsBadTemplates(t *testing.T) {
	cases := map[string]string{
		"missing templates": `{"unit_templates": [], "maps": [{"name": "M", "width": 4, "height": 4}]}`,
		"missing maps":      `{"unit_templates": [{"name": "S", "kind": "mech", "structure": 1, "heat_capacity": 1}], "maps": []}`,
		"unknown kind":      `{"unit_templates": [{"name": "S", "kind": "tank", "structure": 1}], "maps": [{"name": "M", "width": 4, "height": 4}]}`,
		"vehicle no subtype": `{"unit_templates": [{"name": "S", "kind": "vehicle", "structure": 1}],
			"maps": [{"name": "M", "width": 4, "height": 4}]}`,
		"mech no heat": `{"unit_templates": [{"name": "S", "kind": "mech", "structure": 1}],
			"maps": [{"name": "M", "width": 4, "height": 4}]}`,
		"infantry no troops": `{"unit_templates": [{"name": "S", "kind": "infantry", "structure": 1}],
			"maps": [{"name": "M", "width": 4, "height": 4}]}`,
		"unknown ability": `{"unit_templates": [{"name": "S", "kind": "mech", "structure": 1, "heat_capacity": 1, "abilities": ["zzz"]}],
			"maps": [{"name": "M", "width": 4, "height": 4}]}`,
		"duplicate template": `{"unit_templates": [
				{"name": "S", "kind": "mech", "structure": 1, "heat_capacity": 1},
				{"name": "s", "kind": "mech", "structure": 1, "heat_capacity": 1}],
			"maps": [{"name": "M", "width": 4, "height": 4}]}`,
		"terrain out of bounds": `{"unit_templates": [{"name": "S", "kind": "mech", "structure": 1, "heat_capacity": 1}],
			"maps": [{"name": "M", "width": 4, "height": 4, "terrain": [{"q": 9, "r": 0, "terrain": "woods"}]}]}`,
		"unknown terrain": `{"unit_templates": [{"name": "S", "kind": "mech", "structure": 1, "heat_capacity": 1}],
			"maps": [{"name": "M", "width": 4, "height": 4, "terrain": [{"q": 1, "r": 1, "terrain": "lava"}]}]}`,
	}
	for name, body := range cases {
		if _, err := LoadConfig(writeConfig(t, body)); err == nil {
			t.Errorf("%s: expected an error", name)
		}
	}
}

func TestLoadConfigDefaults(t *testing.T) {
	body := `{
  "unit_templates": [{"name": "S", "kind": "mech", "structure": 1, "heat_capacity": 1}],
  "maps": [{"name": "M", "width": 4, "height": 4}]
}`
	cfg, err := LoadConfig(writeConfig(t, body))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.ServerAddress != ":8080" {
		t.Fatalf("default address = %q, want :8080", cfg.ServerAddress)
	}
	if cfg.ActionTimeout != defaultActionTimeout {
		t.Fatalf("default timeout = %v", cfg.ActionTimeout)
	}
}
