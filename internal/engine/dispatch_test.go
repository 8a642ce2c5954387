package engine

import (
	"testing"

	"github.com/wacky444/Zarka-sub000/internal/game"
)

func TestItemGatedActionChargesEveryParticipant(t *testing.T) {
	eng := testEngine()
	m := testMatch(1)
	armed := addCharacter(m, "p1", 0)
	armed.AddItem(game.ItemAxe, 6)
	unarmed := addCharacter(m, "p2", 0)

	armed.SetPlan(game.PlanMain, &game.PlannedAction{ActionID: game.ActionAxeAttack, TargetPlayerIDs: []string{"p2"}})
	unarmed.SetPlan(game.PlanMain, &game.PlannedAction{ActionID: game.ActionAxeAttack, TargetPlayerIDs: []string{"p1"}})

	events := dispatch(eng, m, game.ActionAxeAttack, NewSeededRand(1))

	// Both paid for the attempt even though only one could swing.
	if armed.Energy.Current != 14 {
		t.Fatalf("armed energy = %d, want 14", armed.Energy.Current)
	}
	if unarmed.Energy.Current != 14 {
		t.Fatalf("unarmed energy = %d, want 14", unarmed.Energy.Current)
	}

	var failed *game.PlayerEvent
	for i := range events {
		if p := events[i].Player; p != nil && p.Action.ActionID == game.FailedActionID {
			failed = p
		}
	}
	if failed == nil {
		t.Fatal("expected a failed_action event for the unarmed participant")
	}
	if failed.ActorID != "p2" {
		t.Fatalf("failed_action actor = %s, want p2", failed.ActorID)
	}
	if failed.Action.Metadata["missing_item_id"] != game.ItemAxe {
		t.Fatalf("missing_item_id = %v, want %s", failed.Action.Metadata["missing_item_id"], game.ItemAxe)
	}
	if failed.Action.Metadata["reason"] != game.FailReasonMissingItem {
		t.Fatalf("reason = %v", failed.Action.Metadata["reason"])
	}
}

func TestGatedActionChargesOnlyEligibleParticipants(t *testing.T) {
	eng := testEngine()
	m := testMatch(2)
	m.MapTiles[0].LocationType = "shelter"
	inside := addCharacter(m, "p1", 0)
	inside.Health.Current = 5
	outside := addCharacter(m, "p2", 1)
	outside.Health.Current = 5

	inside.SetPlan(game.PlanMain, &game.PlannedAction{ActionID: game.ActionRecover})
	outside.SetPlan(game.PlanMain, &game.PlannedAction{ActionID: game.ActionRecover})

	dispatch(eng, m, game.ActionRecover, NewSeededRand(1))

	if inside.Energy.Current != 19 {
		t.Fatalf("eligible participant energy = %d, want 19", inside.Energy.Current)
	}
	if outside.Energy.Current != 20 {
		t.Fatalf("ineligible participant should not be charged, energy = %d", outside.Energy.Current)
	}
	if inside.Health.Current != 10 {
		t.Fatalf("eligible participant health = %d, want 10", inside.Health.Current)
	}
	if outside.Health.Current != 5 {
		t.Fatalf("ineligible participant health = %d, want 5", outside.Health.Current)
	}
}

func TestChargeEnergyConsumesTemporaryFirst(t *testing.T) {
	eng := testEngine()
	m := testMatch(1)
	c := addCharacter(m, "p1", 0)
	c.Energy.Temporary = 2
	c.SetPlan(game.PlanMain, &game.PlannedAction{ActionID: game.ActionMove, TargetLocationID: "t0"})

	dispatch(eng, m, game.ActionMove, NewSeededRand(1))

	if c.Energy.Temporary != 0 {
		t.Fatalf("temporary energy = %d, want 0", c.Energy.Temporary)
	}
	if c.Energy.Current != 19 {
		t.Fatalf("current energy = %d, want 19", c.Energy.Current)
	}
}

func TestExhaustionCostsHealth(t *testing.T) {
	eng := testEngine()
	m := testMatch(1)
	weak := addCharacter(m, "p1", 0)
	weak.Energy.Current = 1
	addCharacter(m, "p2", 0)
	weak.SetPlan(game.PlanMain, &game.PlannedAction{ActionID: game.ActionPunch, TargetPlayerIDs: []string{"p2"}})

	events := dispatch(eng, m, game.ActionPunch, NewSeededRand(1))

	if weak.Energy.Current != 0 {
		t.Fatalf("energy = %d, want 0", weak.Energy.Current)
	}
	if weak.Health.Current != 9 {
		t.Fatalf("health = %d, want 9 after overexertion", weak.Health.Current)
	}
	found := false
	for i := range events {
		p := events[i].Player
		if p == nil || p.ActorID != "p1" {
			continue
		}
		for _, eff := range p.Action.Effects {
			if eff == game.EffectExhausted {
				found = true
			}
		}
	}
	if !found {
		t.Fatal("expected an Exhausted event entry")
	}
}

func TestDispatchClearsPlansAndAppliesCooldown(t *testing.T) {
	eng := testEngine()
	m := testMatch(1)
	c := addCharacter(m, "p1", 0)
	addCharacter(m, "p2", 0)
	c.AddItem(game.ItemAxe, 6)
	c.SetPlan(game.PlanMain, &game.PlannedAction{ActionID: game.ActionAxeAttack, TargetPlayerIDs: []string{"p2"}})

	dispatch(eng, m, game.ActionAxeAttack, NewSeededRand(1))

	if c.Plan(game.PlanMain) != nil {
		t.Fatal("plan slot should be cleared after dispatch")
	}
	if !IsActionOnCooldown(c, game.ActionAxeAttack, m.CurrentTurn) {
		t.Fatal("cooldown should be recorded after dispatch")
	}
}
