package engine

import "github.com/wacky444/Zarka-sub000/internal/game"

// Fixed effect amounts for the support actions.
const (
	sleepHealAmount    = 2
	bandageHealAmount  = 5
	recoverHealAmount  = 5
	foodEnergyAmount   = 20
	drinkEnergyAmount  = 12
	focusEnergyBonus   = 6
	scareEnergyDrain   = 3
)

// resolveProtect flags the targets (defaulting to self) with the
// protected condition. Re-applying while already protected is a no-op but
// still emits a Guard-tagged target entry.
func resolveProtect(tc *turnContext, def game.ActionDefinition, parts []participant) {
	for _, p := range parts {
		if p.actor.IsIncapacitated() {
			continue
		}
		targets := collectTargets(tc.m, p.actor, def, p.plan, targetOptions{
			allowMultiple: true,
			filter:        func(c *game.Character) bool { return !c.HasCondition(game.ConditionDead) },
		}, tc.rng)
		if len(p.plan.TargetPlayerIDs) == 0 || len(targets) == 0 {
			targets = []*game.Character{p.actor}
		}
		entries := make([]game.EventTarget, 0, len(targets))
		for _, t := range targets {
			t.AddCondition(game.ConditionProtected)
			entries = append(entries, game.EventTarget{
				TargetID: t.ID,
				Effects:  []string{game.EffectGuard},
			})
		}
		tc.addPlayerEvent(game.PlayerEvent{
			ActorID: p.actor.ID,
			Action: game.EventAction{
				ActionID:       def.ID,
				OriginLocation: tc.locationOf(p.actor),
			},
			Targets: entries,
		})
	}
}

// resolveScare force-relocates one unprotected target to the actor's
// requested destination and drains up to 3 energy from it.
func resolveScare(tc *turnContext, def game.ActionDefinition, parts []participant) {
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
		targets := collectTargets(tc.m, p.actor, def, p.plan, targetOptions{
			filter: func(c *game.Character) bool {
				return !c.HasCondition(game.ConditionDead) && !c.HasCondition(game.ConditionProtected)
			},
		}, tc.rng)
		if len(targets) == 0 {
			continue
		}
		target := targets[0]

		movedFrom := ""
		if target.Position != nil {
			movedFrom = target.Position.TileID
		}
		target.Position = &game.Position{TileID: dest.ID, Coord: dest.Coord}

		drained := drainEnergy(target, scareEnergyDrain)
		tc.addPlayerEvent(game.PlayerEvent{
			ActorID: p.actor.ID,
			Action: game.EventAction{
				ActionID:       def.ID,
				OriginLocation: tc.locationOf(p.actor),
				TargetLocation: tc.locationOfTile(dest),
			},
			Targets: []game.EventTarget{{
				TargetID: target.ID,
				Metadata: map[string]interface{}{
					"movedFrom":  movedFrom,
					"movedTo":    dest.ID,
					"energyLost": drained,
				},
			}},
		})
	}
}

// drainEnergy removes up to amount, temporary pool first, and returns how
// much was actually lost.
func drainEnergy(c *game.Character, amount int) int {
	drained := 0
	fromTemp := amount
	if fromTemp > c.Energy.Temporary {
		fromTemp = c.Energy.Temporary
	}
	c.Energy.Temporary -= fromTemp
	drained += fromTemp
	rest := amount - fromTemp
	if rest > c.Energy.Current {
		rest = c.Energy.Current
	}
	c.Energy.Current -= rest
	drained += rest
	return drained
}

// resolveSleep restores a small amount of health to the sleeper.
func resolveSleep(tc *turnContext, def game.ActionDefinition, parts []participant) {
	for _, p := range parts {
		if p.actor.IsIncapacitated() {
			continue
		}
		healed := heal(p.actor, sleepHealAmount)
		tc.addHealEvent(def, p.actor, p.actor, healed)
	}
}

// resolveRecover restores health; dispatch only charges and routes
// participants standing on a tile whose location type allow-lists it.
func resolveRecover(tc *turnContext, def game.ActionDefinition, parts []participant) {
	for _, p := range parts {
		if p.actor.IsIncapacitated() {
			continue
		}
		healed := heal(p.actor, recoverHealAmount)
		tc.addHealEvent(def, p.actor, p.actor, healed)
	}
}

// resolveUseBandage consumes one bandage and heals the chosen target,
// which may be an ally in range (default self).
func resolveUseBandage(tc *turnContext, def game.ActionDefinition, parts []participant) {
	for _, p := range parts {
		if p.actor.IsIncapacitated() {
			continue
		}
		target := p.actor
		if len(p.plan.TargetPlayerIDs) > 0 {
			allies := collectTargets(tc.m, p.actor, def, p.plan, targetOptions{
				filter: func(c *game.Character) bool { return !c.HasCondition(game.ConditionDead) },
			}, tc.rng)
			if len(allies) > 0 {
				target = allies[0]
			}
		}
		if !p.actor.ConsumeItem(game.ItemBandage) {
			continue
		}
		healed := heal(target, bandageHealAmount)
		tc.addHealEvent(def, p.actor, target, healed)
	}
}

// resolveFeed consumes one carried consumable, preferring food over
// drink, and restores energy. Dispatch already filtered participants to
// those carrying one.
func resolveFeed(tc *turnContext, def game.ActionDefinition, parts []participant) {
	for _, p := range parts {
		if p.actor.IsIncapacitated() {
			continue
		}
		var restored int
		switch {
		case p.actor.ConsumeItem(game.ItemFood):
			restored = restoreEnergy(p.actor, foodEnergyAmount)
		case p.actor.ConsumeItem(game.ItemDrink):
			restored = restoreEnergy(p.actor, drinkEnergyAmount)
		default:
			continue
		}
		tc.addPlayerEvent(game.PlayerEvent{
			ActorID: p.actor.ID,
			Action: game.EventAction{
				ActionID:       def.ID,
				OriginLocation: tc.locationOf(p.actor),
			},
			Targets: []game.EventTarget{{
				TargetID: p.actor.ID,
				Effects:  []string{game.EffectHeal},
				Metadata: map[string]interface{}{"energy_restored": restored},
			}},
		})
	}
}

// resolveFocus grants a temporary energy bonus consumed before ordinary
// energy by future costs. No precondition.
func resolveFocus(tc *turnContext, def game.ActionDefinition, parts []participant) {
	for _, p := range parts {
		if p.actor.IsIncapacitated() {
			continue
		}
		p.actor.Energy.Temporary += focusEnergyBonus
		tc.addPlayerEvent(game.PlayerEvent{
			ActorID: p.actor.ID,
			Action: game.EventAction{
				ActionID:       def.ID,
				OriginLocation: tc.locationOf(p.actor),
				Effects:        []string{game.EffectFocus},
				Metadata:       map[string]interface{}{"temporary_energy": focusEnergyBonus},
			},
		})
	}
}

func heal(c *game.Character, amount int) int {
	missing := c.Health.Max - c.Health.Current
	if amount > missing {
		amount = missing
	}
	if amount < 0 {
		amount = 0
	}
	c.Health.Current += amount
	return amount
}

func restoreEnergy(c *game.Character, amount int) int {
	missing := c.Energy.Max - c.Energy.Current
	if amount > missing {
		amount = missing
	}
	if amount < 0 {
		amount = 0
	}
	c.Energy.Current += amount
	return amount
}

func (tc *turnContext) addHealEvent(def game.ActionDefinition, actor, target *game.Character, healed int) {
	tc.addPlayerEvent(game.PlayerEvent{
		ActorID: actor.ID,
		Action: game.EventAction{
			ActionID:       def.ID,
			OriginLocation: tc.locationOf(actor),
		},
		Targets: []game.EventTarget{{
			TargetID: target.ID,
			Effects:  []string{game.EffectHeal},
			Metadata: map[string]interface{}{"health_restored": healed},
		}},
	})
}
