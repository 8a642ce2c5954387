package engine

import "github.com/wacky444/Zarka-sub000/internal/game"

// Engine binds the immutable action and location catalogs to the turn
// resolution logic. It holds no per-match state; a single Engine serves
// every match.
type Engine struct {
	actions   game.Catalog
	locations game.LocationCatalog
}

// New creates an engine over the loaded catalogs.
func New(actions game.Catalog, locations game.LocationCatalog) *Engine {
	return &Engine{actions: actions, locations: locations}
}

// Actions exposes the action catalog to callers doing submission-time
// validation.
func (e *Engine) Actions() game.Catalog { return e.actions }

// --- Turn context ------------------------------------------------------

// turnContext carries the match, the injected randomness and the event
// stream accumulated while a single turn resolves. The orchestrator owns
// the match for the duration of the pass; resolvers mutate it through the
// context and append only events.
type turnContext struct {
	eng    *Engine
	m      *game.Match
	rng    Rand
	events []game.ReplayEvent
}

func newTurnContext(e *Engine, m *game.Match, rng Rand) *turnContext {
	return &turnContext{eng: e, m: m, rng: rng, events: make([]game.ReplayEvent, 0, 16)}
}

func (tc *turnContext) addPlayerEvent(ev game.PlayerEvent) {
	tc.events = append(tc.events, game.ReplayEvent{Player: &ev})
}

// locationOf returns a coordinate-embedding event location for the
// character's current tile, or nil when unplaced.
func (tc *turnContext) locationOf(c *game.Character) *game.EventLocation {
	if c == nil || c.Position == nil {
		return nil
	}
	return &game.EventLocation{TileID: c.Position.TileID, Coord: c.Position.Coord}
}

func (tc *turnContext) locationOfTile(t *game.Tile) *game.EventLocation {
	if t == nil {
		return nil
	}
	return &game.EventLocation{TileID: t.ID, Coord: t.Coord}
}

// shuffleParticipants randomizes resolution order so simultaneous actions
// do not favor any character.
func (tc *turnContext) shuffleParticipants(parts []participant) {
	tc.rng.Shuffle(len(parts), func(i, j int) { parts[i], parts[j] = parts[j], parts[i] })
}
