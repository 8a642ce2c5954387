package engine

import "github.com/wacky444/Zarka-sub000/internal/game"

// The cooldown ledger is a per-character list of {actionId, availableOnTurn}
// entries. An action is usable once currentTurn+1 >= availableOnTurn.
// Expired entries are pruned lazily whenever cooldowns are recomputed.

// pruneCooldowns drops entries that have no effect on the next turn.
func pruneCooldowns(c *game.Character, currentTurn int) {
	out := c.Cooldowns[:0]
	for _, e := range c.Cooldowns {
		if e.AvailableOnTurn > currentTurn+1 {
			out = append(out, e)
		}
	}
	c.Cooldowns = out
}

// IsActionOnCooldown reports whether the action is still locked for the
// turn after currentTurn.
func IsActionOnCooldown(c *game.Character, id game.ActionID, currentTurn int) bool {
	return ActionCooldownRemaining(c, id, currentTurn) > 0
}

// ActionCooldownRemaining returns how many turns remain before the action
// becomes usable again. Zero means usable now.
func ActionCooldownRemaining(c *game.Character, id game.ActionID, currentTurn int) int {
	pruneCooldowns(c, currentTurn)
	for _, e := range c.Cooldowns {
		if e.ActionID == id {
			rem := e.AvailableOnTurn - (currentTurn + 1)
			if rem > 0 {
				return rem
			}
			return 0
		}
	}
	return 0
}

// ApplyActionCooldown records the action's cooldown as of the turn it
// resolved on. A length of 1 or less is a no-op cooldown and removes any
// existing entry for the action.
func ApplyActionCooldown(c *game.Character, id game.ActionID, length, currentTurn int) {
	out := c.Cooldowns[:0]
	for _, e := range c.Cooldowns {
		if e.ActionID != id {
			out = append(out, e)
		}
	}
	c.Cooldowns = out
	if length <= 1 {
		return
	}
	c.Cooldowns = append(c.Cooldowns, game.CooldownEntry{
		ActionID:        id,
		AvailableOnTurn: currentTurn + length,
	})
}
