package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"

	"github.com/Vedu8767/mindspark-cognito-train-sub000/internal/bandit"
	"github.com/Vedu8767/mindspark-cognito-train-sub000/internal/games"
	"github.com/Vedu8767/mindspark-cognito-train-sub000/internal/logger"
	"github.com/Vedu8767/mindspark-cognito-train-sub000/internal/repos"
	"github.com/Vedu8767/mindspark-cognito-train-sub000/internal/store"
	"github.com/Vedu8767/mindspark-cognito-train-sub000/internal/types"
)

var (
	ErrUnknownGame   = errors.New("unknown game")
	ErrUnknownAction = errors.New("unknown action")
)

// CompleteResult is what the UI gets back after reporting a finished level.
type CompleteResult struct {
	Reward    float64      `json:"reward"`
	NextLevel int          `json:"next_level"`
	Trend     bandit.Trend `json:"trend"`
	Insight   string       `json:"insight"`
	Stats     bandit.Stats `json:"stats"`
}

// TrendResult is the display-only difficulty forecast.
type TrendResult struct {
	Trend   bandit.Trend `json:"trend"`
	Insight string       `json:"insight"`
}

// StatsResult pairs the live bandit view with the archived play count for
// the stats display.
type StatsResult struct {
	bandit.Stats
	ArchivedPlays int64 `json:"archived_plays"`
}

type TrainingService interface {
	ListGames() []string
	NextAction(ctx context.Context, userID uuid.UUID, game string, bctx bandit.Context) (bandit.Action, error)
	CompleteLevel(ctx context.Context, userID uuid.UUID, game string, bctx bandit.Context, action bandit.Action, m bandit.PerformanceMetrics) (CompleteResult, error)
	Stats(ctx context.Context, userID uuid.UUID, game string) (StatsResult, error)
	History(ctx context.Context, userID uuid.UUID, game string, limit int) ([]*types.PlayEvent, error)
	Trend(ctx context.Context, userID uuid.UUID, game string, bctx bandit.Context) (TrendResult, error)
	Reset(ctx context.Context, userID uuid.UUID, game string) error
}

// session guards one live bandit. The engine itself is single-owner, so the
// service serializes every call that touches a given (user, game) pair;
// concurrent submits for the same pair queue instead of corrupting state.
type session struct {
	mu sync.Mutex
	b  *bandit.Bandit
}

// trainingService owns one live bandit per (user, game). Bandits are loaded
// from the key-value store on first touch and written back after every
// update, so a process restart loses nothing but in-flight levels.
type trainingService struct {
	log      *logger.Logger
	kv       store.KV
	playRepo repos.PlayEventRepo
	seed     int64
	mu       sync.Mutex
	sessions map[string]*session
}

// NewTrainingService wires the adaptive engine. A zero seed means
// time-seeded exploration; tests pass a fixed seed for reproducibility.
func NewTrainingService(log *logger.Logger, kv store.KV, playRepo repos.PlayEventRepo, seed int64) TrainingService {
	return &trainingService{
		log:      log.With("service", "TrainingService"),
		kv:       kv,
		playRepo: playRepo,
		seed:     seed,
		sessions: make(map[string]*session),
	}
}

func (ts *trainingService) ListGames() []string {
	return games.Names()
}

func blobKey(game string, userID uuid.UUID) string {
	return fmt.Sprintf("bandit:%s:%s", game, userID)
}

// instance returns the session for (user, game), restoring its bandit from
// the store on first access. Restore tolerates a missing or corrupt blob.
func (ts *trainingService) instance(ctx context.Context, userID uuid.UUID, game string) (*session, error) {
	cfg, ok := games.Lookup(game)
	if !ok {
		return nil, fmt.Errorf("%w %q", ErrUnknownGame, game)
	}
	key := blobKey(game, userID)

	ts.mu.Lock()
	defer ts.mu.Unlock()
	if s, ok := ts.sessions[key]; ok {
		return s, nil
	}

	seed := ts.seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	b := bandit.New(cfg, ts.log, seed)

	raw, err := ts.kv.Get(ctx, key)
	if err != nil {
		// Degrade to a fresh bandit; the session continues without history.
		ts.log.Warn("bandit blob load failed, starting fresh", "key", key, "error", err)
	}
	b.RestoreBlob(raw)

	s := &session{b: b}
	ts.sessions[key] = s
	return s, nil
}

func (ts *trainingService) NextAction(ctx context.Context, userID uuid.UUID, game string, bctx bandit.Context) (bandit.Action, error) {
	s, err := ts.instance(ctx, userID, game)
	if err != nil {
		return bandit.Action{}, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.b.Select(bctx), nil
}

func (ts *trainingService) CompleteLevel(ctx context.Context, userID uuid.UUID, game string, bctx bandit.Context, action bandit.Action, m bandit.PerformanceMetrics) (CompleteResult, error) {
	s, err := ts.instance(ctx, userID, game)
	if err != nil {
		return CompleteResult{}, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	// Only catalogue actions feed the model; a fabricated action would mint
	// arbitrary arm keys and skew the profile.
	canonical, ok := s.b.CatalogueAction(action.Key())
	if !ok {
		return CompleteResult{}, fmt.Errorf("%w %q for game %q", ErrUnknownAction, action.Key(), game)
	}

	reward := s.b.Update(bctx, canonical, m)
	next := s.b.NextLevel(bctx)
	trend := s.b.PredictTrend(bctx)
	insight := s.b.Insight()

	ts.persist(ctx, userID, game, s.b)
	ts.archive(ctx, userID, game, bctx, canonical, m, reward)

	return CompleteResult{
		Reward:    reward,
		NextLevel: next,
		Trend:     trend,
		Insight:   insight,
		Stats:     s.b.Stats(),
	}, nil
}

// persist writes the blob back. Failures are logged, not surfaced: a lost
// save costs one round of learning, aborting the session would cost more.
func (ts *trainingService) persist(ctx context.Context, userID uuid.UUID, game string, b *bandit.Bandit) {
	raw, err := b.MarshalBlob()
	if err != nil {
		ts.log.Error("bandit blob marshal failed", "game", game, "error", err)
		return
	}
	if err := ts.kv.Set(ctx, blobKey(game, userID), raw); err != nil {
		ts.log.Error("bandit blob save failed", "game", game, "error", err)
	}
}

func (ts *trainingService) archive(ctx context.Context, userID uuid.UUID, game string, bctx bandit.Context, action bandit.Action, m bandit.PerformanceMetrics, reward float64) {
	if ts.playRepo == nil {
		return
	}
	metricsJSON, _ := json.Marshal(m)
	contextJSON, _ := json.Marshal(bctx)
	_, err := ts.playRepo.Create(ctx, nil, []*types.PlayEvent{{
		UserID:    userID,
		Game:      game,
		Level:     bctx.CurrentLevel,
		ActionKey: action.Key(),
		Reward:    reward,
		Accuracy:  m.Accuracy,
		Completed: m.Completed,
		Metrics:   datatypes.JSON(metricsJSON),
		Context:   datatypes.JSON(contextJSON),
	}})
	if err != nil {
		ts.log.Warn("play event archive failed", "game", game, "error", err)
	}
}

func (ts *trainingService) Stats(ctx context.Context, userID uuid.UUID, game string) (StatsResult, error) {
	s, err := ts.instance(ctx, userID, game)
	if err != nil {
		return StatsResult{}, err
	}
	s.mu.Lock()
	stats := s.b.Stats()
	s.mu.Unlock()

	out := StatsResult{Stats: stats}
	if ts.playRepo != nil {
		n, err := ts.playRepo.CountByUserAndGame(ctx, nil, userID, game)
		if err != nil {
			ts.log.Warn("play event count failed", "game", game, "error", err)
		} else {
			out.ArchivedPlays = n
		}
	}
	return out, nil
}

// History returns the most recent archived plays, newest first. Without a
// play repo the archive is off and history is empty.
func (ts *trainingService) History(ctx context.Context, userID uuid.UUID, game string, limit int) ([]*types.PlayEvent, error) {
	if _, ok := games.Lookup(game); !ok {
		return nil, fmt.Errorf("%w %q", ErrUnknownGame, game)
	}
	if ts.playRepo == nil {
		return []*types.PlayEvent{}, nil
	}
	return ts.playRepo.GetRecent(ctx, nil, userID, game, limit)
}

func (ts *trainingService) Trend(ctx context.Context, userID uuid.UUID, game string, bctx bandit.Context) (TrendResult, error) {
	s, err := ts.instance(ctx, userID, game)
	if err != nil {
		return TrendResult{}, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return TrendResult{
		Trend:   s.b.PredictTrend(bctx),
		Insight: s.b.Insight(),
	}, nil
}

func (ts *trainingService) Reset(ctx context.Context, userID uuid.UUID, game string) error {
	s, err := ts.instance(ctx, userID, game)
	if err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.b.Reset()
	if err := ts.kv.Delete(ctx, blobKey(game, userID)); err != nil {
		ts.log.Warn("bandit blob delete failed", "game", game, "error", err)
	}
	return nil
}
