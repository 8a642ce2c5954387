package engine

import "github.com/wacky444/Zarka-sub000/internal/game"

// Base item counts for the gathering actions; extra effort raises them.
const (
	searchBaseCount = 5
	pickUpBaseCount = 3
)

// effortLimit clamps the per-action item budget at zero so a hostile
// negative extra_effort in a stored plan can never underflow a slice
// bound during resolution.
func effortLimit(base, extra int) int {
	limit := base + extra
	if limit < 0 {
		return 0
	}
	return limit
}

// resolveSearch reveals up to 5+extraEffort previously-undiscovered item
// ids on the actor's tile, sampled uniformly without replacement. The
// discovered ids are permanently added to the actor's personal found-items
// list, which gates what that character alone can later pick up or see.
func resolveSearch(tc *turnContext, def game.ActionDefinition, parts []participant) {
	for _, p := range parts {
		if p.actor.IsIncapacitated() {
			continue
		}
		tile := tc.m.TileOf(p.actor)
		if tile == nil {
			continue
		}
		undiscovered := make([]string, 0, len(tile.ItemIDs))
		for _, id := range tile.ItemIDs {
			if !p.actor.HasFound(id) {
				undiscovered = append(undiscovered, id)
			}
		}
		if len(undiscovered) == 0 {
			continue
		}
		tc.rng.Shuffle(len(undiscovered), func(i, j int) {
			undiscovered[i], undiscovered[j] = undiscovered[j], undiscovered[i]
		})
		limit := effortLimit(searchBaseCount, p.plan.ExtraEffort)
		if limit > len(undiscovered) {
			limit = len(undiscovered)
		}
		found := undiscovered[:limit]
		if len(found) == 0 {
			continue
		}
		p.actor.FoundItems = append(p.actor.FoundItems, found...)

		tc.addPlayerEvent(game.PlayerEvent{
			ActorID: p.actor.ID,
			Action: game.EventAction{
				ActionID:       def.ID,
				OriginLocation: tc.locationOf(p.actor),
				Metadata: map[string]interface{}{
					"items_found": append([]string(nil), found...),
				},
			},
		})
	}
}

// resolvePickUp transfers up to 3+extraEffort discovered items from the
// actor's tile into the inventory: client-requested priority order first,
// then remaining visible items in tile order. Items the actor never
// discovered are not considered at all.
func resolvePickUp(tc *turnContext, def game.ActionDefinition, parts []participant) {
	for _, p := range parts {
		if p.actor.IsIncapacitated() {
			continue
		}
		tile := tc.m.TileOf(p.actor)
		if tile == nil {
			continue
		}

		visible := make(map[string]bool, len(tile.ItemIDs))
		for _, id := range tile.ItemIDs {
			if p.actor.HasFound(id) {
				visible[id] = true
			}
		}
		if len(visible) == 0 {
			continue
		}

		order := make([]string, 0, len(visible))
		taken := make(map[string]bool, len(visible))
		for _, id := range p.plan.TargetItemIDs {
			if visible[id] && !taken[id] {
				order = append(order, id)
				taken[id] = true
			}
		}
		for _, id := range tile.ItemIDs {
			if visible[id] && !taken[id] {
				order = append(order, id)
				taken[id] = true
			}
		}

		limit := effortLimit(pickUpBaseCount, p.plan.ExtraEffort)
		picked := make([]string, 0, limit)
		for _, id := range order {
			if len(picked) >= limit {
				break
			}
			rec := tc.m.ItemByID(id)
			if rec == nil {
				continue
			}
			if p.actor.Load.Max > 0 && p.actor.Load.Current+rec.Weight > p.actor.Load.Max {
				continue
			}
			p.actor.AddItem(rec.ItemType, rec.Weight)
			tc.m.RemoveItem(id)
			picked = append(picked, id)
		}
		if len(picked) == 0 {
			continue
		}

		tc.addPlayerEvent(game.PlayerEvent{
			ActorID: p.actor.ID,
			Action: game.EventAction{
				ActionID:       def.ID,
				OriginLocation: tc.locationOf(p.actor),
				Metadata: map[string]interface{}{
					"items_picked": picked,
				},
			},
		})
	}
}
