package dedupe

// Package dedupe provides the shared singleflight group used to deduplicate
// concurrent AI turn requests. Using a centralized singleflight.Group
// ensures that only one AI resolution runs for a given battle turn while
// other callers wait for the result.

import "golang.org/x/sync/singleflight"

// AITurnGroup deduplicates AI turn executions keyed by the canonical battle
// turn key (see keys.BattleTurnKey).
var AITurnGroup singleflight.Group
