package engine

import "github.com/wacky444/Zarka-sub000/internal/game"

// TurnResult is what one resolution pass hands back to the caller for
// persisting and broadcasting.
type TurnResult struct {
	Advanced     bool
	ResolvedTurn int
	Events       []game.ReplayEvent
}

// ResolveTurn resolves the pending turn of a match: bots fill their plans,
// every catalog action dispatches in fixed order, then end-of-turn
// bookkeeping runs. The match is mutated in place and the caller must
// guarantee at-most-once invocation per logical turn — calling this twice
// double-advances state.
func (e *Engine) ResolveTurn(m *game.Match, rng Rand) TurnResult {
	if len(m.PlayerIDs) == 0 {
		return TurnResult{}
	}

	tc := newTurnContext(e, m, rng)

	e.planBotActions(m, rng)

	for _, def := range e.actions.Ordered() {
		tc.dispatchAction(def)
	}

	resolvedTurn := m.CurrentTurn
	m.CurrentTurn++

	e.endOfTurn(m)

	return TurnResult{
		Advanced:     true,
		ResolvedTurn: resolvedTurn,
		Events:       tc.events,
	}
}

// endOfTurn flags characters who dropped to 0 health, then recomputes the
// ready map. Incapacitated players are pre-marked ready so the match never
// blocks waiting on a downed player.
func (e *Engine) endOfTurn(m *game.Match) {
	for _, c := range m.Roster() {
		if c.Health.Current <= 0 {
			c.AddCondition(game.ConditionDead)
		}
	}
	if m.ReadyStates == nil {
		m.ReadyStates = make(map[string]bool, len(m.PlayerIDs))
	}
	for _, id := range m.PlayerIDs {
		c := m.Characters[id]
		m.ReadyStates[id] = c != nil && c.IsIncapacitated()
	}
}
