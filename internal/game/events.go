package game

// Effect labels attached to replay event entries.
const (
	EffectGuard     = "Guard"
	EffectHeal      = "Heal"
	EffectFocus     = "Focus"
	EffectExhausted = "Exhausted"
)

// Map event kinds.
const (
	MapEventDestroyed = "destroyed"
	MapEventGas       = "gas"
	MapEventFlame     = "flame"
)

// FailedActionID marks the synthetic event emitted when an item-gated
// action could not be attempted.
const FailedActionID ActionID = "failed_action"

// Failure reasons carried in failed_action metadata.
const FailReasonMissingItem = "missing_item"

// EventLocation pins an event to a map position. Coordinates are embedded
// so replay tailoring can compute distances without a map lookup.
type EventLocation struct {
	TileID string `json:"tile_id"`
	Coord  Axial  `json:"coord"`
}

// EventAction describes what the acting character did.
type EventAction struct {
	ActionID       ActionID               `json:"action_id"`
	OriginLocation *EventLocation         `json:"origin_location,omitempty"`
	TargetLocation *EventLocation         `json:"target_location,omitempty"`
	DamageDealt    int                    `json:"damage_dealt,omitempty"`
	Effects        []string               `json:"effects,omitempty"`
	Metadata       map[string]interface{} `json:"metadata,omitempty"`
}

// EventTarget describes what happened to one target of the action.
type EventTarget struct {
	TargetID    string                 `json:"target_id"`
	DamageTaken int                    `json:"damage_taken,omitempty"`
	Effects     []string               `json:"effects,omitempty"`
	Eliminated  bool                   `json:"eliminated,omitempty"`
	Metadata    map[string]interface{} `json:"metadata,omitempty"`
}

// PlayerEvent is one character-initiated entry of a turn's replay.
type PlayerEvent struct {
	ActorID string        `json:"actor_id"`
	Action  EventAction   `json:"action"`
	Targets []EventTarget `json:"targets,omitempty"`
}

// MapEvent is one environment entry of a turn's replay.
type MapEvent struct {
	Cell   Axial  `json:"cell"`
	Action string `json:"action"`
}

// ReplayEvent is the append-only union of the two event kinds. Exactly one
// of Player and Map is set.
type ReplayEvent struct {
	Player *PlayerEvent `json:"player,omitempty"`
	Map    *MapEvent    `json:"map,omitempty"`
}

// ReplayRecord is the persisted per-turn replay document. Its JSON shape
// is stable and must round-trip byte for byte.
type ReplayRecord struct {
	MatchID   string        `json:"match_id"`
	Turn      int           `json:"turn"`
	Events    []ReplayEvent `json:"events"`
	CreatedAt int64         `json:"created_at"`
}
