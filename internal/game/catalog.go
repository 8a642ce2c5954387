package game

import "sort"

// ActionID identifies an action in the catalog. Using a dedicated type
// instead of plain string makes code safer and self-documenting.
type ActionID string

const (
	ActionNone        ActionID = ""
	ActionMove        ActionID = "move"
	ActionPunch       ActionID = "punch"
	ActionAxeAttack   ActionID = "axe_attack"
	ActionKnifeAttack ActionID = "knife_attack"
	ActionProtect     ActionID = "protect"
	ActionScare       ActionID = "scare"
	ActionSleep       ActionID = "sleep"
	ActionRecover     ActionID = "recover"
	ActionFeed        ActionID = "feed"
	ActionFocus       ActionID = "focus"
	ActionUseBandage  ActionID = "use_bandage"
	ActionSearch      ActionID = "search"
	ActionPickUp      ActionID = "pick_up"
)

// Plan slot categories. A plan may only be submitted into a slot whose
// key matches the action's category ("any" fits either slot).
const (
	CategoryMain      = "main"
	CategorySecondary = "secondary"
	CategoryAny       = "any"
)

// Action tag vocabulary used by the bot weighting tables.
const (
	TagMobility   = "mobility"
	TagAggression = "aggression"
	TagCombat     = "combat"
	TagDefense    = "defense"
	TagControl    = "control"
	TagSurvival   = "survival"
	TagHealing    = "healing"
	TagResource   = "resource"
	TagGather     = "gather"
)

// ActionDefinition is one immutable entry of the action catalog.
type ActionDefinition struct {
	ID         ActionID `json:"id"`
	EnergyCost int      `json:"energy_cost"`
	// Cooldown is the number of turns before the action is usable again.
	// Values of 1 or less mean no cooldown.
	Cooldown int `json:"cooldown"`
	// Range is the set of allowed hex distances to a target (0 = same tile).
	Range    []int    `json:"range"`
	Category string   `json:"category"`
	Tags     []string `json:"tags"`
	// Developed marks actions that are fully implemented and therefore
	// selectable by players and bots.
	Developed bool `json:"developed"`
	// Order and SubOrder fix the dispatch sequence within a turn.
	Order    int `json:"order"`
	SubOrder int `json:"sub_order"`
}

// InRange reports whether the given hex distance is allowed for this action.
func (d ActionDefinition) InRange(dist int) bool {
	for _, r := range d.Range {
		if r == dist {
			return true
		}
	}
	return false
}

// Catalog is the read-only action table, loaded once at startup.
type Catalog map[ActionID]ActionDefinition

// Get returns the definition for id.
func (c Catalog) Get(id ActionID) (ActionDefinition, bool) {
	d, ok := c[id]
	return d, ok
}

// Ordered returns all definitions sorted by (Order, SubOrder). This is the
// sequence the turn orchestrator dispatches actions in.
func (c Catalog) Ordered() []ActionDefinition {
	out := make([]ActionDefinition, 0, len(c))
	for _, d := range c {
		out = append(out, d)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Order != out[j].Order {
			return out[i].Order < out[j].Order
		}
		if out[i].SubOrder != out[j].SubOrder {
			return out[i].SubOrder < out[j].SubOrder
		}
		return out[i].ID < out[j].ID
	})
	return out
}

// LocationDefinition describes a tile location type.
type LocationDefinition struct {
	Type     string `json:"type"`
	Walkable bool   `json:"walkable"`
	// SpecialActionIDs allow-lists location-restricted actions (e.g. a
	// shelter tile allowing "recover").
	SpecialActionIDs []ActionID `json:"special_action_ids"`
}

// Allows reports whether the location type allow-lists the given action.
func (d LocationDefinition) Allows(id ActionID) bool {
	for _, a := range d.SpecialActionIDs {
		if a == id {
			return true
		}
	}
	return false
}

// LocationCatalog maps location type to its definition.
type LocationCatalog map[string]LocationDefinition
