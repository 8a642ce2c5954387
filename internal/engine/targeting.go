package engine

import "github.com/wacky444/Zarka-sub000/internal/game"

// targetOptions narrows candidate selection for one resolver.
type targetOptions struct {
	// filter, when set, drops candidates it rejects (e.g. "exclude
	// protected").
	filter func(*game.Character) bool
	// allowMultiple keeps the full resolved list; when false the result
	// collapses to a single candidate.
	allowMultiple bool
}

// collectTargets resolves the target candidates for an actor's action.
// Candidates are every other character within one of the action's allowed
// hex distances. The fallback chain guarantees an action with at least one
// valid target never silently no-ops on a bad client-submitted target
// list: requested ids first, then anyone on the requested location, then
// same-tile candidates, then everyone in range.
func collectTargets(m *game.Match, actor *game.Character, def game.ActionDefinition, plan *game.PlannedAction, opts targetOptions, rng Rand) []*game.Character {
	if actor == nil || actor.Position == nil {
		return nil
	}
	candidates := make([]*game.Character, 0, 4)
	for _, c := range m.Roster() {
		if c.ID == actor.ID || c.Position == nil {
			continue
		}
		if !def.InRange(actor.Position.Coord.DistanceTo(c.Position.Coord)) {
			continue
		}
		if opts.filter != nil && !opts.filter(c) {
			continue
		}
		candidates = append(candidates, c)
	}
	if len(candidates) == 0 {
		return nil
	}

	selected := selectByRequest(candidates, plan, actor, rng)
	if len(selected) == 0 {
		selected = candidates
	}
	if !opts.allowMultiple && len(selected) > 1 {
		selected = selected[:1]
	}
	return selected
}

// selectByRequest applies the priority rules of the fallback chain. It
// returns nil when no rule narrowed the candidate set.
func selectByRequest(candidates []*game.Character, plan *game.PlannedAction, actor *game.Character, rng Rand) []*game.Character {
	byID := make(map[string]*game.Character, len(candidates))
	for _, c := range candidates {
		byID[c.ID] = c
	}

	// Rule 1: the actor's requested target ids, in request order. If the
	// first requested id is not a valid candidate the whole priority list
	// is discarded and a uniformly random candidate is chosen instead.
	if plan != nil && len(plan.TargetPlayerIDs) > 0 {
		if _, ok := byID[plan.TargetPlayerIDs[0]]; !ok {
			return []*game.Character{candidates[rng.Intn(len(candidates))]}
		}
		out := make([]*game.Character, 0, len(plan.TargetPlayerIDs))
		for _, id := range plan.TargetPlayerIDs {
			if c, ok := byID[id]; ok {
				out = append(out, c)
			}
		}
		return out
	}

	// Rule 2: any candidate standing on the requested location.
	if plan != nil && plan.TargetLocationID != "" {
		out := make([]*game.Character, 0, len(candidates))
		for _, c := range candidates {
			if c.Position != nil && c.Position.TileID == plan.TargetLocationID {
				out = append(out, c)
			}
		}
		if len(out) > 0 {
			return out
		}
	}

	// Rule 3: any candidate on the actor's own tile.
	if actor.Position != nil {
		out := make([]*game.Character, 0, len(candidates))
		for _, c := range candidates {
			if c.Position != nil && c.Position.Coord.DistanceTo(actor.Position.Coord) == 0 {
				out = append(out, c)
			}
		}
		if len(out) > 0 {
			return out
		}
	}

	return nil
}
