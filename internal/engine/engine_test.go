package engine

import (
	"fmt"

	"github.com/wacky444/Zarka-sub000/internal/game"
)

// Shared fixtures for the engine tests. The catalog mirrors the shipped
// configuration closely enough to exercise every dispatch path.

func testCatalog() game.Catalog {
	defs := []game.ActionDefinition{
		{ID: game.ActionProtect, EnergyCost: 2, Range: []int{0, 1}, Category: game.CategorySecondary, Tags: []string{game.TagDefense}, Developed: true, Order: 10},
		{ID: game.ActionScare, EnergyCost: 3, Cooldown: 2, Range: []int{0, 1}, Category: game.CategoryMain, Tags: []string{game.TagControl}, Developed: true, Order: 20},
		{ID: game.ActionMove, EnergyCost: 3, Range: []int{1}, Category: game.CategoryMain, Tags: []string{game.TagMobility}, Developed: true, Order: 30},
		{ID: game.ActionPunch, EnergyCost: 2, Range: []int{0}, Category: game.CategoryMain, Tags: []string{game.TagAggression, game.TagCombat}, Developed: true, Order: 40, SubOrder: 10},
		{ID: game.ActionAxeAttack, EnergyCost: 6, Cooldown: 3, Range: []int{0, 1}, Category: game.CategoryMain, Tags: []string{game.TagAggression, game.TagCombat}, Developed: true, Order: 40, SubOrder: 20},
		{ID: game.ActionKnifeAttack, EnergyCost: 4, Cooldown: 2, Range: []int{0}, Category: game.CategoryMain, Tags: []string{game.TagAggression, game.TagCombat}, Developed: true, Order: 40, SubOrder: 30},
		{ID: game.ActionUseBandage, EnergyCost: 2, Range: []int{0}, Category: game.CategorySecondary, Tags: []string{game.TagHealing}, Developed: true, Order: 50},
		{ID: game.ActionRecover, EnergyCost: 1, Cooldown: 2, Range: []int{0}, Category: game.CategoryMain, Tags: []string{game.TagHealing, game.TagSurvival}, Developed: true, Order: 60},
		{ID: game.ActionFeed, EnergyCost: 1, Range: []int{0}, Category: game.CategorySecondary, Tags: []string{game.TagResource, game.TagSurvival}, Developed: true, Order: 70},
		{ID: game.ActionSleep, EnergyCost: 0, Range: []int{0}, Category: game.CategoryMain, Tags: []string{game.TagSurvival}, Developed: true, Order: 80},
		{ID: game.ActionFocus, EnergyCost: 2, Cooldown: 3, Range: []int{0}, Category: game.CategorySecondary, Tags: []string{game.TagSurvival}, Developed: true, Order: 90},
		{ID: game.ActionSearch, EnergyCost: 4, Cooldown: 2, Range: []int{0}, Category: game.CategoryMain, Tags: []string{game.TagGather}, Developed: true, Order: 100},
		{ID: game.ActionPickUp, EnergyCost: 2, Range: []int{0}, Category: game.CategorySecondary, Tags: []string{game.TagGather, game.TagResource}, Developed: true, Order: 110},
	}
	c := make(game.Catalog, len(defs))
	for _, d := range defs {
		c[d.ID] = d
	}
	return c
}

func testLocations() game.LocationCatalog {
	return game.LocationCatalog{
		"plains":  {Type: "plains", Walkable: true},
		"shelter": {Type: "shelter", Walkable: true, SpecialActionIDs: []game.ActionID{game.ActionRecover}},
		"water":   {Type: "water", Walkable: false},
	}
}

func testEngine() *Engine {
	return New(testCatalog(), testLocations())
}

// testMatch lays out a strip of tiles at (0,0)..(n-1,0); tile ids are
// "t0".."t<n-1>". All tiles are plains unless a test retypes them.
func testMatch(tileCount int) *game.Match {
	m := &game.Match{
		ID:          "m1",
		JoinCode:    "AAAA1111",
		Characters:  map[string]*game.Character{},
		ReadyStates: map[string]bool{},
		CurrentTurn: 1,
		Status:      game.StatusInProgress,
		Settings:    game.Settings{ViewDistance: 2, MinPlayers: 2},
	}
	for i := 0; i < tileCount; i++ {
		m.MapTiles = append(m.MapTiles, game.Tile{
			ID:           fmt.Sprintf("t%d", i),
			Coord:        game.Axial{Q: i, R: 0},
			Walkable:     true,
			LocationType: "plains",
			ItemIDs:      []string{},
		})
	}
	return m
}

func addCharacter(m *game.Match, id string, tileIndex int) *game.Character {
	t := &m.MapTiles[tileIndex]
	c := &game.Character{
		ID:     id,
		Name:   id,
		Health: game.StatPair{Current: 10, Max: 12},
		Energy: game.EnergyPool{Current: 20, Max: 30},
		Load:   game.StatPair{Max: 30},
		Plans:  map[game.PlanKey]*game.PlannedAction{},
		Position: &game.Position{
			TileID: t.ID,
			Coord:  t.Coord,
		},
	}
	m.PlayerIDs = append(m.PlayerIDs, id)
	m.Characters[id] = c
	m.ReadyStates[id] = false
	return c
}

func addMapItem(m *game.Match, id, itemType string, weight, tileIndex int) {
	t := &m.MapTiles[tileIndex]
	m.Items = append(m.Items, game.ItemRecord{ID: id, ItemType: itemType, Weight: weight, TileID: t.ID})
	t.ItemIDs = append(t.ItemIDs, id)
}

func dispatch(eng *Engine, m *game.Match, id game.ActionID, rng Rand) []game.ReplayEvent {
	tc := newTurnContext(eng, m, rng)
	def, ok := eng.actions.Get(id)
	if !ok {
		panic("unknown test action " + string(id))
	}
	tc.dispatchAction(def)
	return tc.events
}
