package bandit

import (
	"math/rand"
	"time"

	"github.com/Vedu8767/mindspark-cognito-train-sub000/internal/logger"
)

// HistoryEntry records one completed level for progression decisions and the
// insight display. The history is bounded; the oldest entry drops first.
type HistoryEntry struct {
	ActionKey string             `json:"action_key"`
	Reward    float64            `json:"reward"`
	Context   Context            `json:"context"`
	Metrics   PerformanceMetrics `json:"metrics"`
	Timestamp time.Time          `json:"timestamp"`
}

// Stats is the display-only view handed to the UI layer.
type Stats struct {
	Game       string      `json:"game"`
	Epsilon    float64     `json:"epsilon"`
	TotalPulls int         `json:"total_pulls"`
	SkillLevel float64     `json:"skill_level"`
	Profile    UserProfile `json:"profile"`
}

// Bandit is one epsilon-greedy contextual bandit serving one player session
// for one game. Instances are explicitly constructed and passed around; there
// is no shared process-wide state. Lifecycle: construct, RestoreBlob,
// (Select/Update)*, MarshalBlob.
//
// All methods are synchronous and non-blocking. A Bandit is not safe for
// concurrent use; one player session owns it.
type Bandit struct {
	cfg   GameConfig
	log   *logger.Logger
	rng   *rand.Rand
	prior Prior

	catalogue  []Action
	byKey      map[string]Action
	arms       map[string]*Arm
	epsilon    float64
	totalPulls int
	history    []HistoryEntry
	profile    UserProfile
}

func New(cfg GameConfig, log *logger.Logger, seed int64) *Bandit {
	cfg = cfg.withDefaults()
	if log == nil {
		log = logger.NewNop()
	}
	b := &Bandit{
		cfg:       cfg,
		log:       log.With("bandit", cfg.Name),
		rng:       rand.New(rand.NewSource(seed)),
		prior:     NewHeuristicPrior(cfg),
		catalogue: GenerateActions(cfg),
	}
	b.byKey = make(map[string]Action, len(b.catalogue))
	for _, a := range b.catalogue {
		b.byKey[a.Key()] = a
	}
	b.resetState()
	return b
}

// UsePrior swaps the cold-start scoring strategy without touching the
// learning path.
func (b *Bandit) UsePrior(p Prior) {
	if p != nil {
		b.prior = p
	}
}

func (b *Bandit) resetState() {
	b.arms = make(map[string]*Arm)
	b.epsilon = b.cfg.EpsilonStart
	b.totalPulls = 0
	b.history = nil
	b.profile = newUserProfile()
}

// Reset clears all learned state. The persisted blob is removed by the
// caller that owns the store key.
func (b *Bandit) Reset() {
	b.resetState()
	b.log.Info("bandit state reset")
}

func (b *Bandit) Config() GameConfig   { return b.cfg }
func (b *Bandit) Catalogue() []Action  { return b.catalogue }

// CatalogueAction resolves a key back to its catalogue action. It reports
// false for keys the generator never produced.
func (b *Bandit) CatalogueAction(key string) (Action, bool) {
	a, ok := b.byKey[key]
	return a, ok
}
func (b *Bandit) Epsilon() float64     { return b.epsilon }
func (b *Bandit) TotalPulls() int      { return b.totalPulls }
func (b *Bandit) Profile() UserProfile { return b.profile }
func (b *Bandit) History() []HistoryEntry {
	out := make([]HistoryEntry, len(b.history))
	copy(out, b.history)
	return out
}

func (b *Bandit) Stats() Stats {
	return Stats{
		Game:       b.cfg.Name,
		Epsilon:    b.epsilon,
		TotalPulls: b.totalPulls,
		SkillLevel: b.profile.SkillLevel,
		Profile:    b.profile,
	}
}

// Update applies one learning step for a finished level and returns the
// reward that was credited. Malformed metrics degrade to neutral values;
// this path never fails the caller.
func (b *Bandit) Update(ctx Context, a Action, m PerformanceMetrics) float64 {
	ctx = ctx.sanitized(b.cfg.MaxLevel)
	m = m.sanitized()
	reward := RewardFor(b.cfg, m)
	now := time.Now().UTC()

	arm := b.arms[a.Key()]
	if arm == nil {
		arm = &Arm{Key: a.Key(), ContextWeights: make([]float64, featureDim(b.cfg))}
		b.arms[arm.Key] = arm
	}
	arm.Pulls++
	arm.TotalReward += reward
	arm.AverageReward = arm.TotalReward / float64(arm.Pulls)
	arm.LastPulled = now

	// One stochastic-gradient step on the linear value estimate, then a mild
	// shrink so weights stay bounded over long play histories.
	f := featureVector(b.cfg, ctx, a)
	if len(arm.ContextWeights) != len(f) {
		arm.ContextWeights = make([]float64, len(f))
	}
	predErr := reward - dot(arm.ContextWeights, f)
	for i := range arm.ContextWeights {
		arm.ContextWeights[i] += b.cfg.LearningRate * predErr * f[i]
		arm.ContextWeights[i] *= b.cfg.WeightDecay
	}

	b.totalPulls++
	b.epsilon *= b.cfg.EpsilonDecay
	if b.epsilon < b.cfg.EpsilonMin {
		b.epsilon = b.cfg.EpsilonMin
	}

	b.updateProfile(a, m, reward)

	b.history = append(b.history, HistoryEntry{
		ActionKey: arm.Key,
		Reward:    reward,
		Context:   ctx,
		Metrics:   m,
		Timestamp: now,
	})
	if len(b.history) > historyCap {
		b.history = b.history[len(b.history)-historyCap:]
	}

	b.log.Debug("bandit updated",
		"action", arm.Key, "reward", reward, "pulls", arm.Pulls,
		"epsilon", b.epsilon, "total_pulls", b.totalPulls)
	return reward
}

func (b *Bandit) updateProfile(a Action, m PerformanceMetrics, reward float64) {
	if m.Completed && m.Accuracy > 0.8 {
		b.profile.SkillLevel = clamp01(b.profile.SkillLevel + skillNudge)
	} else if !m.Completed || m.Accuracy < 0.4 {
		b.profile.SkillLevel = clamp01(b.profile.SkillLevel - skillNudge)
	}

	if reward >= goodRewardThreshold {
		b.profile.PreferredDifficulty = ema(b.profile.PreferredDifficulty, a.DifficultyMultiplier, profileLearningRate)
		if a.GridSize > 0 {
			b.profile.PreferredGridSize = ema(b.profile.PreferredGridSize, float64(a.GridSize), profileLearningRate)
		}
		if a.SequenceLength > 0 {
			b.profile.PreferredSequenceLength = ema(b.profile.PreferredSequenceLength, float64(a.SequenceLength), profileLearningRate)
		}
		if a.TimeLimitMS > 0 {
			b.profile.PreferredTimeLimitMS = ema(b.profile.PreferredTimeLimitMS, float64(a.TimeLimitMS), profileLearningRate)
		}
	}

	for name, acc := range m.SubSkillAccuracy {
		if b.profile.SubSkillStrengths == nil {
			b.profile.SubSkillStrengths = make(map[string]float64)
		}
		cur, ok := b.profile.SubSkillStrengths[name]
		if !ok {
			cur = 0.5
		}
		b.profile.SubSkillStrengths[name] = clamp01(ema(cur, acc, profileLearningRate))
	}

	b.profile.PlayStyle = detectPlayStyle(m, b.profile.PlayStyle)
}

// detectPlayStyle flips the style label only on a clear signal so it stays
// sticky between levels.
func detectPlayStyle(m PerformanceMetrics, current string) string {
	fast := m.AvgResponseMS > 0 && m.AvgResponseMS < 1200
	precise := m.Accuracy > 0.9
	switch {
	case fast && !precise:
		return StyleSpeed
	case precise && !fast:
		return StylePrecision
	case fast && precise:
		return current
	default:
		return StyleBalanced
	}
}
