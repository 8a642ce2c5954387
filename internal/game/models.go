package game

import (
	"regexp"
	"strconv"
	"time"
)

// Match statuses.
const (
	StatusWaiting    = "waiting"
	StatusInProgress = "in_progress"
	StatusFinished   = "finished"
)

// Character condition flags.
const (
	ConditionProtected   = "protected"
	ConditionDead        = "dead"
	ConditionUnconscious = "unconscious"
)

// Item types referenced by the item-gated and consumable actions.
const (
	ItemFood    = "food"
	ItemDrink   = "drink"
	ItemBandage = "bandage"
	ItemAxe     = "axe"
	ItemKnife   = "knife"
)

// PlanKey selects one of a character's two plan slots.
type PlanKey string

const (
	PlanMain      PlanKey = "main"
	PlanSecondary PlanKey = "secondary"
)

// PlanKeys lists the slots in dispatch scan order.
var PlanKeys = []PlanKey{PlanMain, PlanSecondary}

// StatPair is a bounded stat such as health or load.
type StatPair struct {
	Current int `json:"current"`
	Max     int `json:"max"`
}

// EnergyPool tracks ordinary and temporary energy. Temporary energy is
// consumed before ordinary energy when costs are charged.
type EnergyPool struct {
	Current   int `json:"current"`
	Max       int `json:"max"`
	Temporary int `json:"temporary"`
}

// Total returns all energy available right now.
func (e EnergyPool) Total() int { return e.Current + e.Temporary }

// ItemStack is one stacked inventory entry.
type ItemStack struct {
	ItemType string `json:"item_type"`
	Quantity int    `json:"quantity"`
	Weight   int    `json:"weight"`
}

// CooldownEntry records the turn an action becomes usable again.
type CooldownEntry struct {
	ActionID        ActionID `json:"action_id"`
	AvailableOnTurn int      `json:"available_on_turn"`
}

// Position is a character's place on the map.
type Position struct {
	TileID string `json:"tile_id"`
	Coord  Axial  `json:"coord"`
}

// PlannedAction is one filled plan slot.
type PlannedAction struct {
	ActionID         ActionID `json:"action_id"`
	TargetLocationID string   `json:"target_location_id,omitempty"`
	TargetPlayerIDs  []string `json:"target_player_ids,omitempty"`
	TargetItemIDs    []string `json:"target_item_ids,omitempty"`
	ExtraEffort      int      `json:"extra_effort,omitempty"`
}

// Character is one human or bot participant of a match.
type Character struct {
	ID         string                     `json:"id"`
	Name       string                     `json:"name"`
	Health     StatPair                   `json:"health"`
	Energy     EnergyPool                 `json:"energy"`
	Load       StatPair                   `json:"load"`
	Inventory  []ItemStack                `json:"inventory"`
	Conditions []string                   `json:"conditions"`
	Cooldowns  []CooldownEntry            `json:"cooldowns"`
	Position   *Position                  `json:"position,omitempty"`
	Plans      map[PlanKey]*PlannedAction `json:"plans"`
	// FoundItems is the set of item ids this character personally
	// discovered via searching. It gates what the character can pick up
	// and what the tailored map shows them.
	FoundItems []string `json:"found_items"`
}

var botIDPattern = regexp.MustCompile(`^bot([0-9]+)$`)

// IsBot reports whether the character is server-controlled. Bot ids have
// the form bot<N>.
func (c *Character) IsBot() bool { return botIDPattern.MatchString(c.ID) }

// BotNumber returns the <N> of a bot id, or -1 for human characters.
func (c *Character) BotNumber() int {
	m := botIDPattern.FindStringSubmatch(c.ID)
	if m == nil {
		return -1
	}
	n, err := strconv.Atoi(m[1])
	if err != nil {
		return -1
	}
	return n
}

// HasCondition reports whether the flag is currently set.
func (c *Character) HasCondition(cond string) bool {
	for _, v := range c.Conditions {
		if v == cond {
			return true
		}
	}
	return false
}

// AddCondition sets the flag if not already present.
func (c *Character) AddCondition(cond string) {
	if !c.HasCondition(cond) {
		c.Conditions = append(c.Conditions, cond)
	}
}

// RemoveCondition clears the flag.
func (c *Character) RemoveCondition(cond string) {
	out := c.Conditions[:0]
	for _, v := range c.Conditions {
		if v != cond {
			out = append(out, v)
		}
	}
	c.Conditions = out
}

// IsIncapacitated reports whether the character is dead or unconscious.
func (c *Character) IsIncapacitated() bool {
	return c.HasCondition(ConditionDead) || c.HasCondition(ConditionUnconscious)
}

// Plan returns the slot's plan, or nil.
func (c *Character) Plan(key PlanKey) *PlannedAction {
	if c.Plans == nil {
		return nil
	}
	return c.Plans[key]
}

// SetPlan fills the slot.
func (c *Character) SetPlan(key PlanKey, p *PlannedAction) {
	if c.Plans == nil {
		c.Plans = map[PlanKey]*PlannedAction{}
	}
	c.Plans[key] = p
}

// ClearPlan empties the slot.
func (c *Character) ClearPlan(key PlanKey) {
	if c.Plans != nil {
		delete(c.Plans, key)
	}
}

// InventoryStack returns the stack for an item type, or nil.
func (c *Character) InventoryStack(itemType string) *ItemStack {
	for i := range c.Inventory {
		if c.Inventory[i].ItemType == itemType {
			return &c.Inventory[i]
		}
	}
	return nil
}

// CarriesItem reports whether at least one item of the type is carried.
func (c *Character) CarriesItem(itemType string) bool {
	s := c.InventoryStack(itemType)
	return s != nil && s.Quantity > 0
}

// ConsumeItem removes one item of the type from the inventory and adjusts
// the carried load. Returns false when none is carried.
func (c *Character) ConsumeItem(itemType string) bool {
	s := c.InventoryStack(itemType)
	if s == nil || s.Quantity <= 0 {
		return false
	}
	s.Quantity--
	c.Load.Current -= s.Weight
	if c.Load.Current < 0 {
		c.Load.Current = 0
	}
	if s.Quantity == 0 {
		out := c.Inventory[:0]
		for _, v := range c.Inventory {
			if v.ItemType != itemType || v.Weight != s.Weight {
				out = append(out, v)
			}
		}
		c.Inventory = out
	}
	return true
}

// AddItem stacks one item of the type into the inventory and adds its
// weight to the carried load.
func (c *Character) AddItem(itemType string, weight int) {
	for i := range c.Inventory {
		if c.Inventory[i].ItemType == itemType && c.Inventory[i].Weight == weight {
			c.Inventory[i].Quantity++
			c.Load.Current += weight
			return
		}
	}
	c.Inventory = append(c.Inventory, ItemStack{ItemType: itemType, Quantity: 1, Weight: weight})
	c.Load.Current += weight
}

// HasFound reports whether the character personally discovered the item.
func (c *Character) HasFound(itemID string) bool {
	for _, id := range c.FoundItems {
		if id == itemID {
			return true
		}
	}
	return false
}

// Tile is one cell of the match's map snapshot.
type Tile struct {
	ID           string   `json:"id"`
	Coord        Axial    `json:"coord"`
	Walkable     bool     `json:"walkable"`
	LocationType string   `json:"location_type"`
	ItemIDs      []string `json:"item_ids"`
}

// ItemRecord is one item lying on the map.
type ItemRecord struct {
	ID       string `json:"id"`
	ItemType string `json:"item_type"`
	Weight   int    `json:"weight"`
	TileID   string `json:"tile_id"`
}

// Settings holds per-match tuning.
type Settings struct {
	ViewDistance int `json:"view_distance"`
	MinPlayers   int `json:"min_players"`
}

// Match is the match-scoped aggregate. The engine receives one copy,
// mutates it in place during a resolution pass and returns it; the caller
// persists it under an optimistic version check.
type Match struct {
	ID          string                `json:"id"`
	Name        string                `json:"name"`
	JoinCode    string                `json:"join_code"`
	PlayerIDs   []string              `json:"player_ids"`
	Characters  map[string]*Character `json:"characters"`
	CurrentTurn int                   `json:"current_turn"`
	ReadyStates map[string]bool       `json:"ready_states"`
	MapTiles    []Tile                `json:"map_tiles"`
	Items       []ItemRecord          `json:"items"`
	Settings    Settings              `json:"settings"`
	Status      string                `json:"status"`
	// Deadline is the cutoff after which the pending turn resolves even
	// if not every player is ready.
	Deadline time.Time `json:"deadline"`
	// Removed soft-deletes the match on game end; records are never
	// physically deleted.
	Removed bool `json:"removed"`
}

// TileByID returns the tile, or nil.
func (m *Match) TileByID(id string) *Tile {
	for i := range m.MapTiles {
		if m.MapTiles[i].ID == id {
			return &m.MapTiles[i]
		}
	}
	return nil
}

// TileOf returns the tile the character stands on, or nil.
func (m *Match) TileOf(c *Character) *Tile {
	if c == nil || c.Position == nil {
		return nil
	}
	return m.TileByID(c.Position.TileID)
}

// ItemByID returns the map item record, or nil.
func (m *Match) ItemByID(id string) *ItemRecord {
	for i := range m.Items {
		if m.Items[i].ID == id {
			return &m.Items[i]
		}
	}
	return nil
}

// RemoveItem deletes the item from the match item list and from its tile.
func (m *Match) RemoveItem(id string) {
	out := m.Items[:0]
	for _, it := range m.Items {
		if it.ID != id {
			out = append(out, it)
		}
	}
	m.Items = out
	for i := range m.MapTiles {
		t := &m.MapTiles[i]
		ids := t.ItemIDs[:0]
		for _, tid := range t.ItemIDs {
			if tid != id {
				ids = append(ids, tid)
			}
		}
		t.ItemIDs = ids
	}
}

// Roster returns the characters in stable PlayerIDs order. Iterating the
// Characters map directly would randomize resolution order between runs.
func (m *Match) Roster() []*Character {
	out := make([]*Character, 0, len(m.PlayerIDs))
	for _, id := range m.PlayerIDs {
		if c, ok := m.Characters[id]; ok {
			out = append(out, c)
		}
	}
	return out
}

// LivingCharacters returns the roster minus dead characters.
func (m *Match) LivingCharacters() []*Character {
	out := make([]*Character, 0, len(m.PlayerIDs))
	for _, c := range m.Roster() {
		if !c.HasCondition(ConditionDead) {
			out = append(out, c)
		}
	}
	return out
}
