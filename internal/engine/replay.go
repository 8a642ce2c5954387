package engine

import "github.com/wacky444/Zarka-sub000/internal/game"

// TailorReplayEvents filters a turn's event list down to what one viewer
// may perceive. A player event is visible when the viewer is the actor,
// when its origin or target lies within the viewer's fog-of-war distance,
// or — special-cased for move — when the viewer could see the origin and
// the destination is at most one hex beyond the view distance, so a move
// out of sight is still partially sensed. Map events are filtered by cell
// distance alone.
func TailorReplayEvents(events []game.ReplayEvent, viewerID string, characters map[string]*game.Character, viewDistance int) []game.ReplayEvent {
	viewer := characters[viewerID]
	out := make([]game.ReplayEvent, 0, len(events))
	for _, ev := range events {
		switch {
		case ev.Player != nil:
			if playerEventVisible(ev.Player, viewerID, viewer, viewDistance) {
				out = append(out, ev)
			}
		case ev.Map != nil:
			if viewer != nil && viewer.Position != nil &&
				viewer.Position.Coord.DistanceTo(ev.Map.Cell) <= viewDistance {
				out = append(out, ev)
			}
		}
	}
	return out
}

func playerEventVisible(ev *game.PlayerEvent, viewerID string, viewer *game.Character, viewDistance int) bool {
	if ev.ActorID == viewerID {
		return true
	}
	if viewer == nil || viewer.Position == nil {
		return false
	}
	pos := viewer.Position.Coord

	originVisible := ev.Action.OriginLocation != nil &&
		pos.DistanceTo(ev.Action.OriginLocation.Coord) <= viewDistance
	targetVisible := ev.Action.TargetLocation != nil &&
		pos.DistanceTo(ev.Action.TargetLocation.Coord) <= viewDistance

	if ev.Action.ActionID == game.ActionMove {
		if originVisible {
			return ev.Action.TargetLocation == nil ||
				pos.DistanceTo(ev.Action.TargetLocation.Coord) <= viewDistance+1
		}
		return targetVisible
	}
	return originVisible || targetVisible
}

// TailorMatchForPlayer returns a copy of the match whose map tiles' item
// lists and item records are restricted to what the viewer personally
// discovered. Undiscovered items never leak to a client, even outside
// replay playback.
func TailorMatchForPlayer(m *game.Match, viewerID string) *game.Match {
	viewer := m.Characters[viewerID]
	out := *m
	out.MapTiles = TailorMapForCharacter(m.MapTiles, viewer)

	items := make([]game.ItemRecord, 0, len(m.Items))
	for _, it := range m.Items {
		if viewer != nil && viewer.HasFound(it.ID) {
			items = append(items, it)
		}
	}
	out.Items = items
	return &out
}

// TailorMapForCharacter filters each tile's item list to the character's
// personal discoveries.
func TailorMapForCharacter(tiles []game.Tile, viewer *game.Character) []game.Tile {
	out := make([]game.Tile, len(tiles))
	copy(out, tiles)
	for i := range out {
		ids := make([]string, 0, len(out[i].ItemIDs))
		for _, id := range out[i].ItemIDs {
			if viewer != nil && viewer.HasFound(id) {
				ids = append(ids, id)
			}
		}
		out[i].ItemIDs = ids
	}
	return out
}
