package engine

import "github.com/wacky444/Zarka-sub000/internal/game"

// participant is one character whose plan slot names the action currently
// being dispatched, tagged with which slot matched.
type participant struct {
	actor   *game.Character
	planKey game.PlanKey
	plan    *game.PlannedAction
}

// resolverFunc applies one action's effects to its eligible participants.
type resolverFunc func(tc *turnContext, def game.ActionDefinition, parts []participant)

// dispatchEntry configures how one action id is collected and charged.
// The cost/eligibility ordering differs per action and is preserved
// exactly as configured, not generalized.
type dispatchEntry struct {
	resolve resolverFunc
	// requiredItem gates the action on a carried item type. Participants
	// missing it get a failed_action event, but the energy cost is still
	// charged to the full collected list.
	requiredItem string
	// eligibleOnly, when set, filters participants first; only the
	// eligible subset is charged energy. Ineligible plans fail silently.
	eligibleOnly func(tc *turnContext, p participant) bool
}

// dispatchTable maps action id to its resolver and per-entry charge
// configuration.
var dispatchTable = map[game.ActionID]dispatchEntry{
	game.ActionMove:        {resolve: resolveMove},
	game.ActionPunch:       {resolve: resolvePunch},
	game.ActionAxeAttack:   {resolve: resolveAxeAttack, requiredItem: game.ItemAxe},
	game.ActionKnifeAttack: {resolve: resolveKnifeAttack, requiredItem: game.ItemKnife},
	game.ActionUseBandage:  {resolve: resolveUseBandage, requiredItem: game.ItemBandage},
	game.ActionProtect:     {resolve: resolveProtect},
	game.ActionScare:       {resolve: resolveScare},
	game.ActionSleep:       {resolve: resolveSleep},
	game.ActionRecover:     {resolve: resolveRecover, eligibleOnly: onRecoverTile},
	game.ActionFeed:        {resolve: resolveFeed, eligibleOnly: carriesConsumable},
	game.ActionFocus:       {resolve: resolveFocus},
	game.ActionSearch:      {resolve: resolveSearch},
	game.ActionPickUp:      {resolve: resolvePickUp},
}

func onRecoverTile(tc *turnContext, p participant) bool {
	t := tc.m.TileOf(p.actor)
	if t == nil {
		return false
	}
	loc, ok := tc.eng.locations[t.LocationType]
	return ok && loc.Allows(game.ActionRecover)
}

func carriesConsumable(tc *turnContext, p participant) bool {
	return p.actor.CarriesItem(game.ItemFood) || p.actor.CarriesItem(game.ItemDrink)
}

// collectParticipants scans every character's plan slots for the action id
// in stable roster order.
func collectParticipants(m *game.Match, id game.ActionID) []participant {
	out := make([]participant, 0, 4)
	for _, c := range m.Roster() {
		for _, key := range game.PlanKeys {
			if p := c.Plan(key); p != nil && p.ActionID == id {
				out = append(out, participant{actor: c, planKey: key, plan: p})
			}
		}
	}
	return out
}

// dispatchAction runs one action id through collection, eligibility
// splitting, energy charging, effect resolution and cooldown bookkeeping.
func (tc *turnContext) dispatchAction(def game.ActionDefinition) {
	collected := collectParticipants(tc.m, def.ID)
	if len(collected) == 0 {
		return
	}

	entry, ok := dispatchTable[def.ID]
	if !ok {
		// No resolver wired for the id; drop the plans without effect.
		tc.clearPlans(collected)
		return
	}

	eligible := collected
	switch {
	case entry.requiredItem != "":
		// Split before charging, then charge the full collected list.
		eligible = tc.splitMissingItem(collected, def, entry.requiredItem)
		for i := range collected {
			tc.chargeEnergy(collected[i].actor, def)
		}
	case entry.eligibleOnly != nil:
		// Filter first; only the eligible subset pays the cost.
		eligible = eligible[:0:0]
		for _, p := range collected {
			if entry.eligibleOnly(tc, p) {
				eligible = append(eligible, p)
			}
		}
		for i := range eligible {
			tc.chargeEnergy(eligible[i].actor, def)
		}
	default:
		for i := range collected {
			tc.chargeEnergy(collected[i].actor, def)
		}
	}

	if len(eligible) > 0 {
		entry.resolve(tc, def, eligible)
	}

	// Every original participant has its slot cleared and its cooldown
	// advanced, whether or not the action produced an effect.
	tc.clearPlans(collected)
	for _, p := range collected {
		ApplyActionCooldown(p.actor, def.ID, def.Cooldown, tc.m.CurrentTurn)
	}
}

func (tc *turnContext) clearPlans(parts []participant) {
	for _, p := range parts {
		if cur := p.actor.Plan(p.planKey); cur != nil && cur == p.plan {
			p.actor.ClearPlan(p.planKey)
		}
	}
}

// splitMissingItem separates participants lacking the gating item. Missing
// participants receive an explicit failed_action event so players get
// visible feedback that their chosen action could not be attempted.
func (tc *turnContext) splitMissingItem(parts []participant, def game.ActionDefinition, itemType string) []participant {
	eligible := make([]participant, 0, len(parts))
	for _, p := range parts {
		if p.actor.CarriesItem(itemType) {
			eligible = append(eligible, p)
			continue
		}
		tc.addPlayerEvent(game.PlayerEvent{
			ActorID: p.actor.ID,
			Action: game.EventAction{
				ActionID:       game.FailedActionID,
				OriginLocation: tc.locationOf(p.actor),
				Metadata: map[string]interface{}{
					"action_id":       string(def.ID),
					"reason":          game.FailReasonMissingItem,
					"missing_item_id": itemType,
				},
			},
		})
	}
	return eligible
}

// chargeEnergy deducts the action's cost, consuming temporary energy
// first. A participant whose total energy was already short loses 1 health
// from overexertion, which produces its own replay sub-event.
func (tc *turnContext) chargeEnergy(c *game.Character, def game.ActionDefinition) {
	cost := def.EnergyCost
	if cost <= 0 {
		return
	}
	exhausted := c.Energy.Total() < cost

	fromTemp := cost
	if fromTemp > c.Energy.Temporary {
		fromTemp = c.Energy.Temporary
	}
	c.Energy.Temporary -= fromTemp
	c.Energy.Current -= cost - fromTemp
	if c.Energy.Current < 0 {
		c.Energy.Current = 0
	}

	if exhausted {
		if c.Health.Current > 0 {
			c.Health.Current--
		}
		tc.addPlayerEvent(game.PlayerEvent{
			ActorID: c.ID,
			Action: game.EventAction{
				ActionID:       def.ID,
				OriginLocation: tc.locationOf(c),
				Effects:        []string{game.EffectExhausted},
				Metadata:       map[string]interface{}{"health_lost": 1},
			},
		})
	}
}
