package services

import (
	"context"
	"errors"
	"path/filepath"
	"sync"
	"testing"

	"github.com/google/uuid"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/Vedu8767/mindspark-cognito-train-sub000/internal/bandit"
	"github.com/Vedu8767/mindspark-cognito-train-sub000/internal/games"
	"github.com/Vedu8767/mindspark-cognito-train-sub000/internal/logger"
	"github.com/Vedu8767/mindspark-cognito-train-sub000/internal/repos"
	"github.com/Vedu8767/mindspark-cognito-train-sub000/internal/store"
	"github.com/Vedu8767/mindspark-cognito-train-sub000/internal/types"
)

func testServiceDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(filepath.Join(t.TempDir(), "test.db")), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	if err := db.AutoMigrate(&types.User{}, &types.PlayEvent{}); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return db
}

func newTestTrainingService(kv store.KV) TrainingService {
	return NewTrainingService(logger.NewNop(), kv, nil, 42)
}

func winReport() bandit.PerformanceMetrics {
	return bandit.PerformanceMetrics{
		Completed:     true,
		Accuracy:      0.95,
		AvgResponseMS: 900,
		Engagement:    0.8,
	}
}

func TestListGamesMatchesRegistry(t *testing.T) {
	svc := newTestTrainingService(store.NewMemoryKV())
	got := svc.ListGames()
	want := games.Names()
	if len(got) != len(want) {
		t.Fatalf("games: want %d, got %d", len(want), len(got))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("games[%d]: want %q, got %q", i, want[i], got[i])
		}
	}
}

func TestUnknownGameRejected(t *testing.T) {
	svc := newTestTrainingService(store.NewMemoryKV())
	userID := uuid.New()
	ctx := context.Background()

	if _, err := svc.NextAction(ctx, userID, "chess", bandit.Context{}); err == nil {
		t.Fatalf("next action on unknown game must fail")
	}
	if _, err := svc.CompleteLevel(ctx, userID, "chess", bandit.Context{}, bandit.Action{}, winReport()); err == nil {
		t.Fatalf("complete on unknown game must fail")
	}
	if _, err := svc.Stats(ctx, userID, "chess"); err == nil {
		t.Fatalf("stats on unknown game must fail")
	}
	if _, err := svc.History(ctx, userID, "chess", 0); err == nil {
		t.Fatalf("history on unknown game must fail")
	}
	if err := svc.Reset(ctx, userID, "chess"); err == nil {
		t.Fatalf("reset on unknown game must fail")
	}
}

func TestCompleteLevelFeedsBackIntoStats(t *testing.T) {
	svc := newTestTrainingService(store.NewMemoryKV())
	userID := uuid.New()
	ctx := context.Background()
	bctx := bandit.Context{CurrentLevel: 1}

	action, err := svc.NextAction(ctx, userID, games.Reaction, bctx)
	if err != nil {
		t.Fatalf("next action: %v", err)
	}
	if action.Level != 1 {
		t.Fatalf("fresh user: want level 1 action, got %d", action.Level)
	}

	res, err := svc.CompleteLevel(ctx, userID, games.Reaction, bctx, action, winReport())
	if err != nil {
		t.Fatalf("complete: %v", err)
	}
	if res.Reward < 0 || res.Reward > 1 {
		t.Fatalf("reward %v outside [0,1]", res.Reward)
	}
	if res.NextLevel < 1 || res.NextLevel > 2 {
		t.Fatalf("next level %d not within one step of 1", res.NextLevel)
	}
	if res.Insight == "" {
		t.Fatalf("insight missing")
	}

	stats, err := svc.Stats(ctx, userID, games.Reaction)
	if err != nil {
		t.Fatalf("stats: %v", err)
	}
	if stats.TotalPulls != 1 {
		t.Fatalf("total pulls: want 1, got %d", stats.TotalPulls)
	}
	if stats.Game != games.Reaction {
		t.Fatalf("stats game: want %q, got %q", games.Reaction, stats.Game)
	}
}

func TestStatePersistsAcrossServiceInstances(t *testing.T) {
	kv := store.NewMemoryKV()
	userID := uuid.New()
	ctx := context.Background()
	bctx := bandit.Context{CurrentLevel: 1}

	svc1 := newTestTrainingService(kv)
	action, err := svc1.NextAction(ctx, userID, games.MemoryGrid, bctx)
	if err != nil {
		t.Fatalf("next action: %v", err)
	}
	for i := 0; i < 5; i++ {
		if _, err := svc1.CompleteLevel(ctx, userID, games.MemoryGrid, bctx, action, winReport()); err != nil {
			t.Fatalf("complete %d: %v", i, err)
		}
	}
	before, _ := svc1.Stats(ctx, userID, games.MemoryGrid)

	// Same store, new process.
	svc2 := newTestTrainingService(kv)
	after, err := svc2.Stats(ctx, userID, games.MemoryGrid)
	if err != nil {
		t.Fatalf("stats after restart: %v", err)
	}
	if after.TotalPulls != before.TotalPulls {
		t.Fatalf("total pulls lost: want %d, got %d", before.TotalPulls, after.TotalPulls)
	}
	if after.Epsilon != before.Epsilon {
		t.Fatalf("epsilon lost: want %v, got %v", before.Epsilon, after.Epsilon)
	}
	if after.SkillLevel != before.SkillLevel {
		t.Fatalf("skill lost: want %v, got %v", before.SkillLevel, after.SkillLevel)
	}
}

func TestUsersAndGamesAreIsolated(t *testing.T) {
	kv := store.NewMemoryKV()
	svc := newTestTrainingService(kv)
	ctx := context.Background()
	bctx := bandit.Context{CurrentLevel: 1}
	alice, bob := uuid.New(), uuid.New()

	action, _ := svc.NextAction(ctx, alice, games.Reaction, bctx)
	for i := 0; i < 3; i++ {
		svc.CompleteLevel(ctx, alice, games.Reaction, bctx, action, winReport())
	}

	bobStats, err := svc.Stats(ctx, bob, games.Reaction)
	if err != nil {
		t.Fatalf("stats: %v", err)
	}
	if bobStats.TotalPulls != 0 {
		t.Fatalf("another user's plays leaked: %d pulls", bobStats.TotalPulls)
	}

	otherGame, err := svc.Stats(ctx, alice, games.Pattern)
	if err != nil {
		t.Fatalf("stats: %v", err)
	}
	if otherGame.TotalPulls != 0 {
		t.Fatalf("another game's plays leaked: %d pulls", otherGame.TotalPulls)
	}
}

func TestResetClearsStoreAndMemory(t *testing.T) {
	kv := store.NewMemoryKV()
	svc := newTestTrainingService(kv)
	userID := uuid.New()
	ctx := context.Background()
	bctx := bandit.Context{CurrentLevel: 1}

	action, _ := svc.NextAction(ctx, userID, games.Reaction, bctx)
	for i := 0; i < 3; i++ {
		svc.CompleteLevel(ctx, userID, games.Reaction, bctx, action, winReport())
	}
	if err := svc.Reset(ctx, userID, games.Reaction); err != nil {
		t.Fatalf("reset: %v", err)
	}

	stats, _ := svc.Stats(ctx, userID, games.Reaction)
	if stats.TotalPulls != 0 {
		t.Fatalf("in-memory state survived reset: %d pulls", stats.TotalPulls)
	}

	if raw, _ := kv.Get(ctx, blobKey(games.Reaction, userID)); raw != nil {
		t.Fatalf("persisted blob survived reset")
	}

	// A brand-new service must also see a clean slate.
	svc2 := newTestTrainingService(kv)
	stats2, _ := svc2.Stats(ctx, userID, games.Reaction)
	if stats2.TotalPulls != 0 {
		t.Fatalf("reset did not reach the store: %d pulls", stats2.TotalPulls)
	}
}

func TestCorruptBlobFallsBackToFreshState(t *testing.T) {
	kv := store.NewMemoryKV()
	ctx := context.Background()
	userID := uuid.New()
	if err := kv.Set(ctx, blobKey(games.Reaction, userID), []byte("corrupt{")); err != nil {
		t.Fatalf("seed corrupt blob: %v", err)
	}

	svc := newTestTrainingService(kv)
	action, err := svc.NextAction(ctx, userID, games.Reaction, bandit.Context{})
	if err != nil {
		t.Fatalf("next action with corrupt blob: %v", err)
	}
	if action.Level != 1 {
		t.Fatalf("corrupt blob: want fresh level 1, got %d", action.Level)
	}
	stats, _ := svc.Stats(ctx, userID, games.Reaction)
	if stats.TotalPulls != 0 {
		t.Fatalf("corrupt blob: want 0 pulls, got %d", stats.TotalPulls)
	}
}

func TestTrendEndpointDoesNotMutateState(t *testing.T) {
	svc := newTestTrainingService(store.NewMemoryKV())
	userID := uuid.New()
	ctx := context.Background()
	bctx := bandit.Context{CurrentLevel: 1}

	action, _ := svc.NextAction(ctx, userID, games.Reaction, bctx)
	for i := 0; i < 4; i++ {
		svc.CompleteLevel(ctx, userID, games.Reaction, bctx, action, winReport())
	}
	before, _ := svc.Stats(ctx, userID, games.Reaction)

	for i := 0; i < 10; i++ {
		tr, err := svc.Trend(ctx, userID, games.Reaction, bctx)
		if err != nil {
			t.Fatalf("trend: %v", err)
		}
		if tr.Trend == "" || tr.Insight == "" {
			t.Fatalf("trend result incomplete: %+v", tr)
		}
	}

	after, _ := svc.Stats(ctx, userID, games.Reaction)
	if after.TotalPulls != before.TotalPulls || after.Epsilon != before.Epsilon {
		t.Fatalf("trend mutated state: before %+v, after %+v", before, after)
	}
}

// Double-submits and stats polling can land on the same session at the same
// time; run with -race.
func TestConcurrentCompletesOnOneSession(t *testing.T) {
	svc := newTestTrainingService(store.NewMemoryKV())
	userID := uuid.New()
	ctx := context.Background()
	bctx := bandit.Context{CurrentLevel: 1}

	action, err := svc.NextAction(ctx, userID, games.Reaction, bctx)
	if err != nil {
		t.Fatalf("next action: %v", err)
	}

	const workers = 8
	const rounds = 5
	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < rounds; j++ {
				if _, err := svc.CompleteLevel(ctx, userID, games.Reaction, bctx, action, winReport()); err != nil {
					t.Errorf("complete: %v", err)
				}
				if _, err := svc.Stats(ctx, userID, games.Reaction); err != nil {
					t.Errorf("stats: %v", err)
				}
			}
		}()
	}
	wg.Wait()

	stats, err := svc.Stats(ctx, userID, games.Reaction)
	if err != nil {
		t.Fatalf("stats: %v", err)
	}
	if stats.TotalPulls != workers*rounds {
		t.Fatalf("total pulls: want %d, got %d", workers*rounds, stats.TotalPulls)
	}
}

func TestFabricatedActionRejected(t *testing.T) {
	svc := newTestTrainingService(store.NewMemoryKV())
	userID := uuid.New()
	ctx := context.Background()
	bctx := bandit.Context{CurrentLevel: 1}

	fake := bandit.Action{Level: 1, Variation: 99, DifficultyMultiplier: 42}
	if _, err := svc.CompleteLevel(ctx, userID, games.Reaction, bctx, fake, winReport()); !errors.Is(err, ErrUnknownAction) {
		t.Fatalf("want ErrUnknownAction, got %v", err)
	}

	stats, err := svc.Stats(ctx, userID, games.Reaction)
	if err != nil {
		t.Fatalf("stats: %v", err)
	}
	if stats.TotalPulls != 0 {
		t.Fatalf("fabricated action fed the model: %d pulls", stats.TotalPulls)
	}
}

func TestArchiveFeedsHistoryAndStats(t *testing.T) {
	playRepo := repos.NewPlayEventRepo(testServiceDB(t), logger.NewNop())
	svc := NewTrainingService(logger.NewNop(), store.NewMemoryKV(), playRepo, 42)
	userID := uuid.New()
	ctx := context.Background()
	bctx := bandit.Context{CurrentLevel: 1}

	action, err := svc.NextAction(ctx, userID, games.Reaction, bctx)
	if err != nil {
		t.Fatalf("next action: %v", err)
	}
	for i := 0; i < 3; i++ {
		if _, err := svc.CompleteLevel(ctx, userID, games.Reaction, bctx, action, winReport()); err != nil {
			t.Fatalf("complete %d: %v", i, err)
		}
	}

	events, err := svc.History(ctx, userID, games.Reaction, 0)
	if err != nil {
		t.Fatalf("history: %v", err)
	}
	if len(events) != 3 {
		t.Fatalf("history: want 3 events, got %d", len(events))
	}
	if events[0].UserID != userID || events[0].Game != games.Reaction {
		t.Fatalf("history event mismatch: %+v", events[0])
	}
	if events[0].ActionKey != action.Key() {
		t.Fatalf("history action key: want %q, got %q", action.Key(), events[0].ActionKey)
	}

	stats, err := svc.Stats(ctx, userID, games.Reaction)
	if err != nil {
		t.Fatalf("stats: %v", err)
	}
	if stats.ArchivedPlays != 3 {
		t.Fatalf("archived plays: want 3, got %d", stats.ArchivedPlays)
	}

	// Another user sees nothing.
	other := uuid.New()
	events, err = svc.History(ctx, other, games.Reaction, 0)
	if err != nil {
		t.Fatalf("history: %v", err)
	}
	if len(events) != 0 {
		t.Fatalf("history leaked across users: %d events", len(events))
	}
}

func TestArchiveSurvivesReset(t *testing.T) {
	playRepo := repos.NewPlayEventRepo(testServiceDB(t), logger.NewNop())
	svc := NewTrainingService(logger.NewNop(), store.NewMemoryKV(), playRepo, 42)
	userID := uuid.New()
	ctx := context.Background()
	bctx := bandit.Context{CurrentLevel: 1}

	action, _ := svc.NextAction(ctx, userID, games.Reaction, bctx)
	for i := 0; i < 2; i++ {
		if _, err := svc.CompleteLevel(ctx, userID, games.Reaction, bctx, action, winReport()); err != nil {
			t.Fatalf("complete %d: %v", i, err)
		}
	}
	if err := svc.Reset(ctx, userID, games.Reaction); err != nil {
		t.Fatalf("reset: %v", err)
	}

	stats, _ := svc.Stats(ctx, userID, games.Reaction)
	if stats.TotalPulls != 0 {
		t.Fatalf("model state survived reset: %d pulls", stats.TotalPulls)
	}
	if stats.ArchivedPlays != 2 {
		t.Fatalf("archive should survive reset: want 2, got %d", stats.ArchivedPlays)
	}
}
