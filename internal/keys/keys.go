package keys

import (
	"fmt"
	"strings"
)

// TemplateKey produces a canonical key for a unit template name. Behavior:
// trims, lower-cases and replaces spaces with underscores. Suitable for
// stable cache and lookup keys.
func TemplateKey(name string) string {
	s := strings.TrimSpace(name)
	s = strings.ToLower(strings.ReplaceAll(s, " ", "_"))
	return s
}

// BattleTurnKey produces a canonical key for one side's turn in a battle,
// used to deduplicate concurrent AI turn requests.
func BattleTurnKey(battleID uint, round int, side string) string {
	return fmt.Sprintf("battle:%d:round:%d:%s", battleID, round, side)
}
