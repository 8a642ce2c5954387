package engine

import "github.com/wacky444/Zarka-sub000/internal/game"

// Base damage per weapon action.
const (
	punchBaseDamage = 2
	axeBaseDamage   = 8
	knifeBaseDamage = 5
)

func resolvePunch(tc *turnContext, def game.ActionDefinition, parts []participant) {
	tc.resolveAttack(def, parts, punchBaseDamage)
}

func resolveAxeAttack(tc *turnContext, def game.ActionDefinition, parts []participant) {
	tc.resolveAttack(def, parts, axeBaseDamage)
}

func resolveKnifeAttack(tc *turnContext, def game.ActionDefinition, parts []participant) {
	tc.resolveAttack(def, parts, knifeBaseDamage)
}

// resolveAttack applies simultaneous weapon attacks. Attacker order is
// shuffled first. A protected target takes one third less damage
// (rounded up); damage is floored at the target's remaining health and a
// target reaching 0 health is flagged eliminated.
func (tc *turnContext) resolveAttack(def game.ActionDefinition, parts []participant, base int) {
	tc.shuffleParticipants(parts)
	for _, p := range parts {
		if p.actor.IsIncapacitated() || p.actor.Position == nil {
			continue
		}
		targets := collectTargets(tc.m, p.actor, def, p.plan, targetOptions{
			filter: func(c *game.Character) bool { return !c.HasCondition(game.ConditionDead) },
		}, tc.rng)
		if len(targets) == 0 {
			continue
		}
		target := targets[0]

		dmg := base
		if target.HasCondition(game.ConditionProtected) {
			dmg -= ceilDiv(base, 3)
		}
		if dmg < 0 {
			dmg = 0
		}
		if dmg > target.Health.Current {
			dmg = target.Health.Current
		}
		target.Health.Current -= dmg

		entry := game.EventTarget{TargetID: target.ID, DamageTaken: dmg}
		if target.Health.Current <= 0 && !target.HasCondition(game.ConditionDead) {
			target.AddCondition(game.ConditionDead)
			entry.Eliminated = true
		}
		tc.addPlayerEvent(game.PlayerEvent{
			ActorID: p.actor.ID,
			Action: game.EventAction{
				ActionID:       def.ID,
				OriginLocation: tc.locationOf(p.actor),
				TargetLocation: tc.locationOf(target),
				DamageDealt:    dmg,
			},
			Targets: []game.EventTarget{entry},
		})
	}
}

func ceilDiv(a, b int) int {
	return (a + b - 1) / b
}
