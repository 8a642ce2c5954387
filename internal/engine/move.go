package engine

import "github.com/wacky444/Zarka-sub000/internal/game"

// resolveMove relocates each participant to its planned destination tile.
// Participants are shuffled first so resolution order does not favor any
// character. A move with a missing origin or destination, a non-walkable
// destination or an out-of-range distance fails silently.
func resolveMove(tc *turnContext, def game.ActionDefinition, parts []participant) {
	tc.shuffleParticipants(parts)
	for _, p := range parts {
		if p.actor.IsIncapacitated() || p.actor.Position == nil {
			continue
		}
		if p.plan.TargetLocationID == "" {
			continue
		}
		dest := tc.m.TileByID(p.plan.TargetLocationID)
		if dest == nil || !tc.walkable(dest) {
			continue
		}
		origin := tc.locationOf(p.actor)
		if !def.InRange(p.actor.Position.Coord.DistanceTo(dest.Coord)) {
			continue
		}

		p.actor.Position = &game.Position{TileID: dest.ID, Coord: dest.Coord}
		tc.addPlayerEvent(game.PlayerEvent{
			ActorID: p.actor.ID,
			Action: game.EventAction{
				ActionID:       def.ID,
				OriginLocation: origin,
				TargetLocation: tc.locationOfTile(dest),
			},
		})
	}
}

// walkable consults the tile flag and the location catalog; the tile flag
// wins when the location type is unknown.
func (tc *turnContext) walkable(t *game.Tile) bool {
	if loc, ok := tc.eng.locations[t.LocationType]; ok {
		return loc.Walkable && t.Walkable
	}
	return t.Walkable
}
