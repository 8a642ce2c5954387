package engine

import "github.com/wacky444/Zarka-sub000/internal/game"

// Personality shapes a bot's taste for action tags.
type Personality string

const (
	PersonalitySafe       Personality = "safe"
	PersonalityAggressive Personality = "aggressive"
	PersonalityHoarder    Personality = "hoarder"
	PersonalityRandom     Personality = "random"
)

// personalityRotation assigns personalities to bots deterministically from
// the numeric suffix of their id.
var personalityRotation = []Personality{
	PersonalitySafe,
	PersonalityAggressive,
	PersonalityHoarder,
	PersonalityRandom,
}

// PersonalityFor returns the personality derived from a bot number.
func PersonalityFor(botNumber int) Personality {
	if botNumber < 0 {
		botNumber = 0
	}
	return personalityRotation[botNumber%len(personalityRotation)]
}

// defaultTagWeights is the base desirability of each action tag.
var defaultTagWeights = map[string]float64{
	game.TagMobility:   1.0,
	game.TagAggression: 0.8,
	game.TagCombat:     0.8,
	game.TagDefense:    0.7,
	game.TagControl:    0.5,
	game.TagSurvival:   1.0,
	game.TagHealing:    0.9,
	game.TagResource:   0.8,
	game.TagGather:     1.0,
}

// personalityTagMultipliers layer per-personality taste on top of the
// defaults. Missing entries multiply by 1.
var personalityTagMultipliers = map[Personality]map[string]float64{
	PersonalitySafe: {
		game.TagAggression: 0.3,
		game.TagCombat:     0.4,
		game.TagDefense:    1.8,
		game.TagSurvival:   1.5,
		game.TagHealing:    1.5,
	},
	PersonalityAggressive: {
		game.TagAggression: 2.0,
		game.TagCombat:     1.8,
		game.TagControl:    1.4,
		game.TagDefense:    0.4,
		game.TagGather:     0.6,
	},
	PersonalityHoarder: {
		game.TagGather:     2.2,
		game.TagResource:   1.6,
		game.TagAggression: 0.5,
	},
	PersonalityRandom: {},
}

// botCandidate is one feasible weighted plan option.
type botCandidate struct {
	plan   *game.PlannedAction
	weight float64
}

// planBotActions fills the main plan slot of every bot-controlled
// character for the coming turn. Human-submitted slots are never touched.
func (e *Engine) planBotActions(m *game.Match, rng Rand) {
	for _, c := range m.Roster() {
		if !c.IsBot() || c.IsIncapacitated() {
			continue
		}
		personality := PersonalityFor(c.BotNumber())
		candidates := e.botCandidates(m, c, personality, rng)

		// The chosen plan always occupies the main slot; any leftover
		// plans from a previous turn are discarded.
		c.ClearPlan(game.PlanMain)
		c.ClearPlan(game.PlanSecondary)

		chosen := pickWeighted(candidates, rng)
		if chosen != nil {
			c.SetPlan(game.PlanMain, chosen)
		}
	}
}

// pickWeighted draws one candidate with probability proportional to its
// weight. Candidates with non-positive weight are never chosen; when none
// is positive the bot takes no action this turn.
func pickWeighted(candidates []botCandidate, rng Rand) *game.PlannedAction {
	total := 0.0
	for _, c := range candidates {
		if c.weight > 0 {
			total += c.weight
		}
	}
	if total <= 0 {
		return nil
	}
	r := rng.Float64() * total
	for _, c := range candidates {
		if c.weight <= 0 {
			continue
		}
		r -= c.weight
		if r < 0 {
			return c.plan
		}
	}
	// Float drift; fall back to the last positive candidate.
	for i := len(candidates) - 1; i >= 0; i-- {
		if candidates[i].weight > 0 {
			return candidates[i].plan
		}
	}
	return nil
}

// botCandidates synthesizes one weighted candidate per feasible developed
// action: not on cooldown, affordable, and with its action-specific
// precondition satisfied.
func (e *Engine) botCandidates(m *game.Match, c *game.Character, personality Personality, rng Rand) []botCandidate {
	out := make([]botCandidate, 0, 8)
	for _, def := range e.actions.Ordered() {
		if !def.Developed {
			continue
		}
		if IsActionOnCooldown(c, def.ID, m.CurrentTurn) {
			continue
		}
		if c.Energy.Total() < def.EnergyCost {
			continue
		}
		plan, mult := e.botFeasibility(m, c, def, rng)
		if plan == nil {
			continue
		}
		w := tagWeight(def.Tags, personality) * mult
		out = append(out, botCandidate{plan: plan, weight: w})
	}
	return out
}

func tagWeight(tags []string, personality Personality) float64 {
	w := 1.0
	mults := personalityTagMultipliers[personality]
	for _, tag := range tags {
		if base, ok := defaultTagWeights[tag]; ok {
			w *= base
		}
		if m, ok := mults[tag]; ok {
			w *= m
		}
	}
	return w
}

// botFeasibility checks the per-action precondition and returns the
// synthesized plan plus a feasibility multiplier layered on top of the tag
// weight. A nil plan means the action is not feasible this turn.
func (e *Engine) botFeasibility(m *game.Match, c *game.Character, def game.ActionDefinition, rng Rand) (*game.PlannedAction, float64) {
	switch def.ID {
	case game.ActionMove:
		dests := e.walkableNeighborTiles(m, c)
		if len(dests) == 0 {
			return nil, 0
		}
		dest := dests[rng.Intn(len(dests))]
		return &game.PlannedAction{ActionID: def.ID, TargetLocationID: dest.ID}, 1

	case game.ActionPunch, game.ActionAxeAttack, game.ActionKnifeAttack:
		if def.ID == game.ActionAxeAttack && !c.CarriesItem(game.ItemAxe) {
			return nil, 0
		}
		if def.ID == game.ActionKnifeAttack && !c.CarriesItem(game.ItemKnife) {
			return nil, 0
		}
		targets := sameTileLivingTargets(m, c)
		if len(targets) == 0 {
			return nil, 0
		}
		t := targets[rng.Intn(len(targets))]
		return &game.PlannedAction{ActionID: def.ID, TargetPlayerIDs: []string{t.ID}}, float64(len(targets))

	case game.ActionProtect:
		if c.HasCondition(game.ConditionProtected) {
			return nil, 0
		}
		return &game.PlannedAction{ActionID: def.ID}, 1

	case game.ActionScare:
		dests := e.walkableNeighborTiles(m, c)
		if len(dests) == 0 {
			return nil, 0
		}
		var victim *game.Character
		for _, other := range m.LivingCharacters() {
			if other.ID == c.ID || other.Position == nil || c.Position == nil {
				continue
			}
			if other.HasCondition(game.ConditionProtected) {
				continue
			}
			if def.InRange(c.Position.Coord.DistanceTo(other.Position.Coord)) {
				victim = other
				break
			}
		}
		if victim == nil {
			return nil, 0
		}
		dest := dests[rng.Intn(len(dests))]
		return &game.PlannedAction{
			ActionID:         def.ID,
			TargetPlayerIDs:  []string{victim.ID},
			TargetLocationID: dest.ID,
		}, 1

	case game.ActionSleep:
		mult := healthDeficitRatio(c)
		if mult <= 0 {
			return nil, 0
		}
		return &game.PlannedAction{ActionID: def.ID}, mult

	case game.ActionRecover:
		tile := m.TileOf(c)
		if tile == nil {
			return nil, 0
		}
		loc, ok := e.locations[tile.LocationType]
		if !ok || !loc.Allows(game.ActionRecover) {
			return nil, 0
		}
		mult := healthDeficitRatio(c)
		if mult <= 0 {
			return nil, 0
		}
		return &game.PlannedAction{ActionID: def.ID}, mult * 1.5

	case game.ActionUseBandage:
		if !c.CarriesItem(game.ItemBandage) {
			return nil, 0
		}
		mult := healthDeficitRatio(c)
		if mult <= 0 {
			return nil, 0
		}
		return &game.PlannedAction{ActionID: def.ID}, mult * 2

	case game.ActionFeed:
		if !c.CarriesItem(game.ItemFood) && !c.CarriesItem(game.ItemDrink) {
			return nil, 0
		}
		mult := energyDeficitRatio(c)
		if mult <= 0 {
			return nil, 0
		}
		return &game.PlannedAction{ActionID: def.ID}, mult * 2

	case game.ActionFocus:
		return &game.PlannedAction{ActionID: def.ID}, energyDeficitRatio(c) + 0.2

	case game.ActionSearch:
		tile := m.TileOf(c)
		if tile == nil {
			return nil, 0
		}
		undiscovered := 0
		for _, id := range tile.ItemIDs {
			if !c.HasFound(id) {
				undiscovered++
			}
		}
		if undiscovered == 0 {
			return nil, 0
		}
		return &game.PlannedAction{ActionID: def.ID}, 1 + float64(undiscovered)/float64(searchBaseCount)

	case game.ActionPickUp:
		tile := m.TileOf(c)
		if tile == nil {
			return nil, 0
		}
		visible := 0
		for _, id := range tile.ItemIDs {
			if c.HasFound(id) {
				visible++
			}
		}
		if visible == 0 {
			return nil, 0
		}
		return &game.PlannedAction{ActionID: def.ID}, 1 + float64(visible)/float64(pickUpBaseCount)
	}
	return nil, 0
}

func (e *Engine) walkableNeighborTiles(m *game.Match, c *game.Character) []*game.Tile {
	if c.Position == nil {
		return nil
	}
	byCoord := make(map[game.Axial]*game.Tile, len(m.MapTiles))
	for i := range m.MapTiles {
		byCoord[m.MapTiles[i].Coord] = &m.MapTiles[i]
	}
	out := make([]*game.Tile, 0, 6)
	tc := turnContext{eng: e}
	for _, n := range c.Position.Coord.Neighbors() {
		if t, ok := byCoord[n]; ok && tc.walkable(t) {
			out = append(out, t)
		}
	}
	return out
}

func sameTileLivingTargets(m *game.Match, c *game.Character) []*game.Character {
	if c.Position == nil {
		return nil
	}
	out := make([]*game.Character, 0, 4)
	for _, other := range m.LivingCharacters() {
		if other.ID == c.ID || other.Position == nil {
			continue
		}
		if other.Position.Coord.DistanceTo(c.Position.Coord) == 0 {
			out = append(out, other)
		}
	}
	return out
}

func healthDeficitRatio(c *game.Character) float64 {
	if c.Health.Max <= 0 {
		return 0
	}
	return float64(c.Health.Max-c.Health.Current) / float64(c.Health.Max)
}

func energyDeficitRatio(c *game.Character) float64 {
	if c.Energy.Max <= 0 {
		return 0
	}
	return float64(c.Energy.Max-c.Energy.Current) / float64(c.Energy.Max)
}
