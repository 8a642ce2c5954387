package service

import (
	"fmt"
	"sort"

	"github.com/wacky444/Zarka-sub000/internal/config"
	"github.com/wacky444/Zarka-sub000/internal/engine"
	"github.com/wacky444/Zarka-sub000/internal/game"
)

const joinCodeCharset = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"
const joinCodeLength = 8

func generateJoinCode(rng engine.Rand) string {
	b := make([]byte, joinCodeLength)
	for i := range b {
		b[i] = joinCodeCharset[rng.Intn(len(joinCodeCharset))]
	}
	return string(b)
}

// buildMatchMap lays out a hex disk of the given radius. This is a plain
// default layout, not a map generator: location types rotate through the
// walkable entries of the location catalog so location-gated actions have
// somewhere to happen.
func buildMatchMap(radius int, locations game.LocationCatalog, rng engine.Rand) []game.Tile {
	walkableTypes := make([]string, 0, len(locations))
	blockedTypes := make([]string, 0, len(locations))
	for _, loc := range locations {
		if loc.Walkable {
			walkableTypes = append(walkableTypes, loc.Type)
		} else {
			blockedTypes = append(blockedTypes, loc.Type)
		}
	}
	sort.Strings(walkableTypes)
	sort.Strings(blockedTypes)

	tiles := make([]game.Tile, 0, hexDiskSize(radius))
	i := 0
	for q := -radius; q <= radius; q++ {
		for r := -radius; r <= radius; r++ {
			coord := game.Axial{Q: q, R: r}
			if (game.Axial{}).DistanceTo(coord) > radius {
				continue
			}
			locType := ""
			walkable := true
			if len(blockedTypes) > 0 && coord != (game.Axial{}) && rng.Float64() < 0.1 {
				locType = blockedTypes[rng.Intn(len(blockedTypes))]
				walkable = false
			} else if len(walkableTypes) > 0 {
				locType = walkableTypes[i%len(walkableTypes)]
			}
			tiles = append(tiles, game.Tile{
				ID:           fmt.Sprintf("tile_%d_%d", q, r),
				Coord:        coord,
				Walkable:     walkable,
				LocationType: locType,
				ItemIDs:      []string{},
			})
			i++
		}
	}
	return tiles
}

func hexDiskSize(radius int) int {
	return 1 + 3*radius*(radius+1)
}

// scatterItems distributes the configured item spawns over walkable tiles.
func scatterItems(m *game.Match, spawns []config.ItemSpawn, rng engine.Rand) []game.ItemRecord {
	walkable := make([]*game.Tile, 0, len(m.MapTiles))
	for i := range m.MapTiles {
		if m.MapTiles[i].Walkable {
			walkable = append(walkable, &m.MapTiles[i])
		}
	}
	if len(walkable) == 0 {
		return nil
	}
	items := make([]game.ItemRecord, 0, 16)
	n := 0
	for _, sp := range spawns {
		for k := 0; k < sp.Count; k++ {
			n++
			tile := walkable[rng.Intn(len(walkable))]
			item := game.ItemRecord{
				ID:       fmt.Sprintf("item_%d_%s", n, sp.ItemType),
				ItemType: sp.ItemType,
				Weight:   sp.Weight,
				TileID:   tile.ID,
			}
			tile.ItemIDs = append(tile.ItemIDs, item.ID)
			items = append(items, item)
		}
	}
	return items
}

// placeCharacter spawns the character on a random walkable tile. A match
// without a map is a programmer error and panics per the engine's
// error-handling contract.
func placeCharacter(m *game.Match, c *game.Character, rng engine.Rand) {
	walkable := make([]*game.Tile, 0, len(m.MapTiles))
	for i := range m.MapTiles {
		if m.MapTiles[i].Walkable {
			walkable = append(walkable, &m.MapTiles[i])
		}
	}
	if len(walkable) == 0 {
		panic("match has no walkable tiles to spawn on")
	}
	t := walkable[rng.Intn(len(walkable))]
	c.Position = &game.Position{TileID: t.ID, Coord: t.Coord}
}

// tailoredMatch returns a per-player copy of the match with knowledge the
// player has not earned stripped out.
func tailoredMatch(m *game.Match, playerID string) *game.Match {
	return engine.TailorMatchForPlayer(m, playerID)
}
