package config

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/wacky444/Zarka-sub000/internal/game"
)

type actionEntry struct {
	ID         string   `json:"id"`
	EnergyCost int      `json:"energy_cost"`
	Cooldown   int      `json:"cooldown"`
	Range      []int    `json:"range"`
	Category   string   `json:"category"`
	Tags       []string `json:"tags"`
	Developed  bool     `json:"developed"`
	Order      int      `json:"order"`
	SubOrder   int      `json:"sub_order"`
}

type locationEntry struct {
	Type             string   `json:"type"`
	Walkable         bool     `json:"walkable"`
	SpecialActionIDs []string `json:"special_action_ids"`
}

// ItemSpawn declares how many items of a type are scattered over a fresh
// match map.
type ItemSpawn struct {
	ItemType string `json:"item_type"`
	Weight   int    `json:"weight"`
	Count    int    `json:"count"`
}

type rawConfig struct {
	ActionList   []actionEntry   `json:"action_list"`
	LocationList []locationEntry `json:"location_list"`
	Server       *struct {
		Address string `json:"address"`
	} `json:"server"`
	ViewDistance      int         `json:"view_distance"`
	MinPlayers        int         `json:"min_players"`
	MapRadius         int         `json:"map_radius"`
	TurnCutoffMinutes int         `json:"turn_cutoff_minutes"`
	ItemSpawns        []ItemSpawn `json:"item_spawns"`
}

// Loaded contains the catalogs and server tuning read from the config file.
type Loaded struct {
	Actions       game.Catalog
	Locations     game.LocationCatalog
	ServerAddress string
	ViewDistance  int
	MinPlayers    int
	MapRadius     int
	TurnCutoff    time.Duration
	ItemSpawns    []ItemSpawn
}

// LoadConfig reads the configuration file at path. It requires the keys
// `action_list` and `location_list` (snake_case) and validates their
// cross-entry consistency.
func LoadConfig(path string) (*Loaded, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}
	var rc rawConfig
	if err := json.Unmarshal(b, &rc); err != nil {
		return nil, fmt.Errorf("failed to parse config file %s: %w", path, err)
	}

	if len(rc.ActionList) == 0 {
		return nil, fmt.Errorf("config file %s: action_list is empty (provide 'action_list' array)", path)
	}
	if len(rc.LocationList) == 0 {
		return nil, fmt.Errorf("config file %s: location_list is empty (provide 'location_list' array)", path)
	}

	actions := make(game.Catalog, len(rc.ActionList))
	for _, a := range rc.ActionList {
		if a.ID == "" {
			return nil, fmt.Errorf("config file %s: action entry missing 'id'", path)
		}
		id := game.ActionID(a.ID)
		if _, exists := actions[id]; exists {
			return nil, fmt.Errorf("config file %s: duplicate action id '%s'", path, a.ID)
		}
		switch a.Category {
		case game.CategoryMain, game.CategorySecondary, game.CategoryAny:
		default:
			return nil, fmt.Errorf("config file %s: action '%s' has invalid category '%s'", path, a.ID, a.Category)
		}
		if a.Developed && len(a.Range) == 0 {
			return nil, fmt.Errorf("config file %s: developed action '%s' missing 'range'", path, a.ID)
		}
		if a.EnergyCost < 0 {
			return nil, fmt.Errorf("config file %s: action '%s' has negative energy_cost", path, a.ID)
		}
		actions[id] = game.ActionDefinition{
			ID:         id,
			EnergyCost: a.EnergyCost,
			Cooldown:   a.Cooldown,
			Range:      a.Range,
			Category:   a.Category,
			Tags:       a.Tags,
			Developed:  a.Developed,
			Order:      a.Order,
			SubOrder:   a.SubOrder,
		}
	}

	locations := make(game.LocationCatalog, len(rc.LocationList))
	for _, l := range rc.LocationList {
		if l.Type == "" {
			return nil, fmt.Errorf("config file %s: location entry missing 'type'", path)
		}
		if _, exists := locations[l.Type]; exists {
			return nil, fmt.Errorf("config file %s: duplicate location type '%s'", path, l.Type)
		}
		special := make([]game.ActionID, 0, len(l.SpecialActionIDs))
		for _, id := range l.SpecialActionIDs {
			if _, ok := actions[game.ActionID(id)]; !ok {
				return nil, fmt.Errorf("config file %s: location '%s' references unknown action '%s'", path, l.Type, id)
			}
			special = append(special, game.ActionID(id))
		}
		locations[l.Type] = game.LocationDefinition{
			Type:             l.Type,
			Walkable:         l.Walkable,
			SpecialActionIDs: special,
		}
	}

	addr := ":8080"
	if rc.Server != nil && rc.Server.Address != "" {
		addr = rc.Server.Address
	}
	viewDistance := rc.ViewDistance
	if viewDistance <= 0 {
		viewDistance = 3
	}
	minPlayers := rc.MinPlayers
	if minPlayers <= 0 {
		minPlayers = 4
	}
	mapRadius := rc.MapRadius
	if mapRadius <= 0 {
		mapRadius = 4
	}
	cutoff := time.Duration(rc.TurnCutoffMinutes) * time.Minute
	if cutoff <= 0 {
		cutoff = 24 * time.Hour
	}

	return &Loaded{
		Actions:       actions,
		Locations:     locations,
		ServerAddress: addr,
		ViewDistance:  viewDistance,
		MinPlayers:    minPlayers,
		MapRadius:     mapRadius,
		TurnCutoff:    cutoff,
		ItemSpawns:    rc.ItemSpawns,
	}, nil
}
