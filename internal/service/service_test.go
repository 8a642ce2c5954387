package service

import (
	"encoding/json"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/wacky444/Zarka-sub000/internal/config"
	"github.com/wacky444/Zarka-sub000/internal/engine"
	"github.com/wacky444/Zarka-sub000/internal/game"
	"github.com/wacky444/Zarka-sub000/internal/storage"
)

// mockRepo is an in-memory Repository. It deep-copies records on every
// read and write so callers never share state with the "database", and it
// enforces the same version guard the SQLite store does.
type mockRepo struct {
	matches      map[string]*game.Match
	versions     map[string]int64
	replays      map[string]*game.ReplayRecord
	forceUpdates int // number of UpdateMatch calls to reject with a conflict
	updateCalls  int
	savedReplays int
}

func newMockRepo() *mockRepo {
	return &mockRepo{
		matches:  map[string]*game.Match{},
		versions: map[string]int64{},
		replays:  map[string]*game.ReplayRecord{},
	}
}

func deepCopyMatch(m *game.Match) *game.Match {
	b, err := json.Marshal(m)
	if err != nil {
		panic(err)
	}
	var out game.Match
	if err := json.Unmarshal(b, &out); err != nil {
		panic(err)
	}
	return &out
}

func (r *mockRepo) CreateMatch(m *game.Match) error {
	r.matches[m.ID] = deepCopyMatch(m)
	r.versions[m.ID] = 1
	return nil
}

func (r *mockRepo) GetMatch(id string) (*game.Match, int64, error) {
	m, ok := r.matches[id]
	if !ok {
		return nil, 0, storage.ErrNotFound
	}
	return deepCopyMatch(m), r.versions[id], nil
}

func (r *mockRepo) FindMatchByJoinCode(code string) (*game.Match, int64, error) {
	for id, m := range r.matches {
		if m.JoinCode == code {
			return deepCopyMatch(m), r.versions[id], nil
		}
	}
	return nil, 0, storage.ErrNotFound
}

func (r *mockRepo) UpdateMatch(m *game.Match, version int64) error {
	r.updateCalls++
	if r.forceUpdates > 0 {
		r.forceUpdates--
		return storage.ErrVersionConflict
	}
	if _, ok := r.matches[m.ID]; !ok {
		return storage.ErrNotFound
	}
	if r.versions[m.ID] != version {
		return storage.ErrVersionConflict
	}
	r.matches[m.ID] = deepCopyMatch(m)
	r.versions[m.ID] = version + 1
	return nil
}

func (r *mockRepo) ListOpenMatches(limit int) ([]*game.Match, error) {
	out := []*game.Match{}
	for _, m := range r.matches {
		if m.Status != game.StatusWaiting || m.Removed {
			continue
		}
		if len(out) >= limit {
			break
		}
		out = append(out, deepCopyMatch(m))
	}
	return out, nil
}

func (r *mockRepo) FindMatchesPastDeadline(now time.Time) ([]string, error) {
	var ids []string
	for id, m := range r.matches {
		if m.Status == game.StatusInProgress && !m.Removed && !m.Deadline.After(now) {
			ids = append(ids, id)
		}
	}
	return ids, nil
}

func replayKey(matchID string, turn int) string {
	return fmt.Sprintf("%s/%d", matchID, turn)
}

func (r *mockRepo) SaveReplay(rec *game.ReplayRecord) error {
	r.savedReplays++
	cp := *rec
	r.replays[replayKey(rec.MatchID, rec.Turn)] = &cp
	return nil
}

func (r *mockRepo) GetReplay(matchID string, turn int) (*game.ReplayRecord, error) {
	rec, ok := r.replays[replayKey(matchID, turn)]
	if !ok {
		return nil, storage.ErrNotFound
	}
	cp := *rec
	return &cp, nil
}

func testConfig() *config.Loaded {
	actions := game.Catalog{
		game.ActionSleep: {ID: game.ActionSleep, Range: []int{0}, Category: game.CategoryMain, Tags: []string{game.TagSurvival}, Developed: true, Order: 80},
		game.ActionMove:  {ID: game.ActionMove, EnergyCost: 3, Range: []int{1}, Category: game.CategoryMain, Tags: []string{game.TagMobility}, Developed: true, Order: 30},
		game.ActionFocus: {ID: game.ActionFocus, EnergyCost: 2, Cooldown: 3, Range: []int{0}, Category: game.CategorySecondary, Tags: []string{game.TagSurvival}, Developed: true, Order: 90},
		game.ActionScare: {ID: game.ActionScare, EnergyCost: 3, Cooldown: 2, Range: []int{0, 1}, Category: game.CategoryMain, Tags: []string{game.TagControl}, Developed: false, Order: 20},
	}
	locations := game.LocationCatalog{
		"plains": {Type: "plains", Walkable: true},
	}
	return &config.Loaded{
		Actions:       actions,
		Locations:     locations,
		ServerAddress: ":0",
		ViewDistance:  2,
		MinPlayers:    2,
		MapRadius:     2,
		TurnCutoff:    time.Hour,
	}
}

func testService(repo storage.Repository) *Service {
	cfg := testConfig()
	eng := engine.New(cfg.Actions, cfg.Locations)
	return New(repo, eng, cfg, func() engine.Rand { return engine.NewSeededRand(7) })
}

func startedMatch(t *testing.T, svc *Service) (*game.Match, string) {
	t.Helper()
	m, err := svc.CreateMatch("test match")
	if err != nil {
		t.Fatal(err)
	}
	joined, pid, err := svc.JoinMatch(m.JoinCode, "Alice")
	if err != nil {
		t.Fatal(err)
	}
	started, err := svc.StartMatch(joined.JoinCode)
	if err != nil {
		t.Fatal(err)
	}
	return started, pid
}

func TestCreateMatchBuildsWorld(t *testing.T) {
	repo := newMockRepo()
	svc := testService(repo)

	m, err := svc.CreateMatch("first")
	if err != nil {
		t.Fatal(err)
	}
	if m.Status != game.StatusWaiting {
		t.Fatalf("status = %s, want waiting", m.Status)
	}
	if len(m.JoinCode) != 8 {
		t.Fatalf("join code %q, want 8 characters", m.JoinCode)
	}
	// A radius-2 hex disk has 19 tiles.
	if len(m.MapTiles) != 19 {
		t.Fatalf("map has %d tiles, want 19", len(m.MapTiles))
	}
	if _, _, err := repo.GetMatch(m.ID); err != nil {
		t.Fatal("match was not persisted")
	}
}

func TestStartMatchFillsWithBots(t *testing.T) {
	repo := newMockRepo()
	svc := testService(repo)
	m, pid := startedMatch(t, svc)

	if m.Status != game.StatusInProgress {
		t.Fatalf("status = %s, want in_progress", m.Status)
	}
	if len(m.PlayerIDs) != 2 {
		t.Fatalf("roster size = %d, want min players 2", len(m.PlayerIDs))
	}
	bots := 0
	for _, id := range m.PlayerIDs {
		if m.Characters[id].IsBot() {
			bots++
		}
	}
	if bots != 1 {
		t.Fatalf("bot count = %d, want 1", bots)
	}
	if m.Deadline.IsZero() {
		t.Fatal("starting must set the turn cutoff deadline")
	}
	if _, ok := m.Characters[pid]; !ok {
		t.Fatal("the joining human must have a character")
	}
}

func TestSubmitPlanResolvesWhenAllHumansReady(t *testing.T) {
	repo := newMockRepo()
	svc := testService(repo)
	m, pid := startedMatch(t, svc)

	resolved, err := svc.SubmitPlan(m.JoinCode, pid, game.PlanMain, &game.PlannedAction{ActionID: game.ActionSleep})
	if err != nil {
		t.Fatal(err)
	}
	if !resolved {
		t.Fatal("the only human being ready must trigger resolution")
	}

	after, _, err := repo.GetMatch(m.ID)
	if err != nil {
		t.Fatal(err)
	}
	if after.CurrentTurn != 2 {
		t.Fatalf("current turn = %d, want 2", after.CurrentTurn)
	}
	if repo.savedReplays != 1 {
		t.Fatalf("saved %d replays, want 1", repo.savedReplays)
	}
	rec, err := repo.GetReplay(m.ID, 1)
	if err != nil {
		t.Fatal(err)
	}
	if rec.Turn != 1 || rec.MatchID != m.ID {
		t.Fatalf("replay record %+v", rec)
	}
}

func TestSubmitPlanSecondarySlotDoesNotMarkReady(t *testing.T) {
	repo := newMockRepo()
	svc := testService(repo)
	m, pid := startedMatch(t, svc)

	resolved, err := svc.SubmitPlan(m.JoinCode, pid, game.PlanSecondary, &game.PlannedAction{ActionID: game.ActionFocus})
	if err != nil {
		t.Fatal(err)
	}
	if resolved {
		t.Fatal("a secondary plan alone must not resolve the turn")
	}
	after, _, _ := repo.GetMatch(m.ID)
	if after.CurrentTurn != 1 {
		t.Fatalf("current turn = %d, want 1", after.CurrentTurn)
	}
}

func TestSubmitPlanValidation(t *testing.T) {
	repo := newMockRepo()
	svc := testService(repo)
	m, pid := startedMatch(t, svc)

	cases := []struct {
		name string
		key  game.PlanKey
		plan *game.PlannedAction
		want error
	}{
		{"unknown action", game.PlanMain, &game.PlannedAction{ActionID: "juggle"}, ErrUnknownAction},
		{"undeveloped action", game.PlanMain, &game.PlannedAction{ActionID: game.ActionScare}, ErrActionNotDeveloped},
		{"category mismatch", game.PlanSecondary, &game.PlannedAction{ActionID: game.ActionSleep}, ErrWrongSlotCategory},
		{"negative extra effort", game.PlanMain, &game.PlannedAction{ActionID: game.ActionSleep, ExtraEffort: -10}, ErrNegativeEffort},
	}
	for _, tc := range cases {
		if _, err := svc.SubmitPlan(m.JoinCode, pid, tc.key, tc.plan); !errors.Is(err, tc.want) {
			t.Errorf("%s: err = %v, want %v", tc.name, err, tc.want)
		}
	}

	if _, err := svc.SubmitPlan(m.JoinCode, "stranger", game.PlanMain, &game.PlannedAction{ActionID: game.ActionSleep}); !errors.Is(err, ErrPlayerNotInMatch) {
		t.Errorf("stranger: err = %v, want %v", err, ErrPlayerNotInMatch)
	}
	if _, err := svc.SubmitPlan("ZZZZ9999", pid, game.PlanMain, &game.PlannedAction{ActionID: game.ActionSleep}); !errors.Is(err, ErrMatchNotFound) {
		t.Errorf("missing match: err = %v, want %v", err, ErrMatchNotFound)
	}
}

func TestSubmitPlanRejectsActionOnCooldown(t *testing.T) {
	repo := newMockRepo()
	svc := testService(repo)
	m, pid := startedMatch(t, svc)

	stored := repo.matches[m.ID]
	stored.Characters[pid].Cooldowns = []game.CooldownEntry{
		{ActionID: game.ActionFocus, AvailableOnTurn: 50},
	}

	_, err := svc.SubmitPlan(m.JoinCode, pid, game.PlanSecondary, &game.PlannedAction{ActionID: game.ActionFocus})
	if !errors.Is(err, ErrActionOnCooldown) {
		t.Fatalf("err = %v, want %v", err, ErrActionOnCooldown)
	}
}

func TestSubmitPlanRetriesOnVersionConflict(t *testing.T) {
	repo := newMockRepo()
	svc := testService(repo)
	m, pid := startedMatch(t, svc)
	repo.forceUpdates = 2

	resolved, err := svc.SubmitPlan(m.JoinCode, pid, game.PlanMain, &game.PlannedAction{ActionID: game.ActionSleep})
	if err != nil {
		t.Fatalf("two conflicts should be retried away, got %v", err)
	}
	if !resolved {
		t.Fatal("the retried submission should still resolve the turn")
	}
}

func TestResolveMatchTurnSkipsOnStaleVersion(t *testing.T) {
	repo := newMockRepo()
	svc := testService(repo)
	m, _ := startedMatch(t, svc)
	repo.forceUpdates = 1

	if err := svc.ResolveMatchTurn(m.ID); err != nil {
		t.Fatalf("a stale write should be swallowed, got %v", err)
	}
	if repo.savedReplays != 0 {
		t.Fatal("no replay may be saved when the match changed underneath")
	}
	after, _, _ := repo.GetMatch(m.ID)
	if after.CurrentTurn != 1 {
		t.Fatalf("stored turn = %d, want unchanged 1", after.CurrentTurn)
	}
}

func TestResolveMatchTurnSetsNextDeadline(t *testing.T) {
	repo := newMockRepo()
	svc := testService(repo)
	m, _ := startedMatch(t, svc)
	before := time.Now()

	if err := svc.ResolveMatchTurn(m.ID); err != nil {
		t.Fatal(err)
	}
	after, _, _ := repo.GetMatch(m.ID)
	if after.Status != game.StatusInProgress {
		t.Fatalf("status = %s, want in_progress", after.Status)
	}
	if !after.Deadline.After(before) {
		t.Fatal("resolution must push the deadline forward")
	}
}

func TestResolveExpiredMatchesResolvesPastDeadline(t *testing.T) {
	repo := newMockRepo()
	svc := testService(repo)
	m, _ := startedMatch(t, svc)

	stored := repo.matches[m.ID]
	stored.Deadline = time.Now().Add(-time.Minute)

	svc.ResolveExpiredMatches(time.Now())

	after, _, _ := repo.GetMatch(m.ID)
	if after.CurrentTurn != 2 {
		t.Fatalf("current turn = %d, want 2 after cutoff resolution", after.CurrentTurn)
	}
	if repo.savedReplays != 1 {
		t.Fatalf("saved %d replays, want 1", repo.savedReplays)
	}
}

func TestOpenMatchesListsOnlyWaitingMatches(t *testing.T) {
	repo := newMockRepo()
	svc := testService(repo)

	lobby, err := svc.CreateMatch("open lobby")
	if err != nil {
		t.Fatal(err)
	}
	startedMatch(t, svc)

	got, err := svc.OpenMatches(10)
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 1 {
		t.Fatalf("listed %d matches, want 1", len(got))
	}
	s := got[0]
	if s.JoinCode != lobby.JoinCode || s.Name != "open lobby" {
		t.Fatalf("summary = %+v, want the waiting lobby", s)
	}
	if s.Players != 0 || s.Capacity != 2 {
		t.Fatalf("players/capacity = %d/%d, want 0/2", s.Players, s.Capacity)
	}
	if s.Status != game.StatusWaiting {
		t.Fatalf("status = %q", s.Status)
	}
}

func TestJoinMatchRejectsStartedAndFullMatches(t *testing.T) {
	repo := newMockRepo()
	svc := testService(repo)

	m, err := svc.CreateMatch("lobby")
	if err != nil {
		t.Fatal(err)
	}
	if _, _, err := svc.JoinMatch(m.JoinCode, "Alice"); err != nil {
		t.Fatal(err)
	}
	if _, _, err := svc.JoinMatch(m.JoinCode, "Bob"); err != nil {
		t.Fatal(err)
	}
	// MinPlayers is 2, so a third human cannot join.
	if _, _, err := svc.JoinMatch(m.JoinCode, "Carol"); !errors.Is(err, ErrMatchFull) {
		t.Fatalf("err = %v, want %v", err, ErrMatchFull)
	}

	if _, err := svc.StartMatch(m.JoinCode); err != nil {
		t.Fatal(err)
	}
	if _, _, err := svc.JoinMatch(m.JoinCode, "Dave"); !errors.Is(err, ErrMatchAlreadyStarted) {
		t.Fatalf("err = %v, want %v", err, ErrMatchAlreadyStarted)
	}
}

func TestMatchForPlayerTailorsItems(t *testing.T) {
	repo := newMockRepo()
	svc := testService(repo)
	m, pid := startedMatch(t, svc)

	stored := repo.matches[m.ID]
	stored.Items = []game.ItemRecord{
		{ID: "i1", ItemType: game.ItemFood, Weight: 2, TileID: stored.MapTiles[0].ID},
		{ID: "i2", ItemType: game.ItemAxe, Weight: 6, TileID: stored.MapTiles[0].ID},
	}
	stored.MapTiles[0].ItemIDs = []string{"i1", "i2"}
	stored.Characters[pid].FoundItems = []string{"i1"}

	got, err := svc.MatchForPlayer(m.JoinCode, pid)
	if err != nil {
		t.Fatal(err)
	}
	if len(got.Items) != 1 || got.Items[0].ID != "i1" {
		t.Fatalf("tailored items = %v, want only i1", got.Items)
	}
}

func TestReplayForPlayerTailorsEvents(t *testing.T) {
	repo := newMockRepo()
	svc := testService(repo)
	m, pid := startedMatch(t, svc)

	if _, err := svc.SubmitPlan(m.JoinCode, pid, game.PlanMain, &game.PlannedAction{ActionID: game.ActionSleep}); err != nil {
		t.Fatal(err)
	}

	rec, err := svc.ReplayForPlayer(m.JoinCode, 1, pid)
	if err != nil {
		t.Fatal(err)
	}
	if rec.Turn != 1 {
		t.Fatalf("replay turn = %d, want 1", rec.Turn)
	}
	for _, ev := range rec.Events {
		if ev.Player != nil && ev.Player.ActorID == pid {
			return
		}
	}
	t.Fatal("the viewer's own sleep event must be present")
}

func TestReplayForPlayerUnknownTurn(t *testing.T) {
	repo := newMockRepo()
	svc := testService(repo)
	m, pid := startedMatch(t, svc)

	if _, err := svc.ReplayForPlayer(m.JoinCode, 9, pid); !errors.Is(err, ErrReplayNotFound) {
		t.Fatalf("err = %v, want %v", err, ErrReplayNotFound)
	}
}
