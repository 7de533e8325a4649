package bandit

import (
	"math"
)

// Prior scores an action with zero pull history. It exists purely to avoid
// random cold-start behavior before any arm has data and is deliberately
// bounded to [0,1] so it can never outscore a well-trained arm by much.
type Prior interface {
	Score(profile UserProfile, ctx Context, a Action) float64
}

// StaticPrior returns a fixed score for every action. Used in tests to take
// the heuristic out of the selection path.
type StaticPrior struct {
	Value float64
}

func (p StaticPrior) Score(UserProfile, Context, Action) float64 { return p.Value }

// heuristicPrior is the hand-tuned default: start neutral, penalize distance
// from the profile's preferred parameters, reward assistive flags that match
// the player's current state.
type heuristicPrior struct {
	cfg GameConfig
}

func NewHeuristicPrior(cfg GameConfig) Prior {
	return &heuristicPrior{cfg: cfg.withDefaults()}
}

func (p *heuristicPrior) Score(profile UserProfile, ctx Context, a Action) float64 {
	score := 0.5

	pref := profile.PreferredDifficulty
	if pref <= 0 {
		pref = 1.0
	}
	score -= math.Abs(a.DifficultyMultiplier-pref) * 0.12

	if profile.PreferredGridSize > 0 && a.GridSize > 0 && p.cfg.GridCap > 0 {
		score -= math.Abs(float64(a.GridSize)-profile.PreferredGridSize) / float64(p.cfg.GridCap) * 0.08
	}
	if profile.PreferredSequenceLength > 0 && a.SequenceLength > 0 && p.cfg.SequenceCap > 0 {
		score -= math.Abs(float64(a.SequenceLength)-profile.PreferredSequenceLength) / float64(p.cfg.SequenceCap) * 0.08
	}
	if profile.PreferredTimeLimitMS > 0 && a.TimeLimitMS > 0 {
		score -= math.Abs(float64(a.TimeLimitMS)-profile.PreferredTimeLimitMS) / float64(p.cfg.TimeLimitCeilingMS) * 0.05
	}

	// A frustrated player gets nudged toward the assisted renderings.
	if ctx.FrustrationLevel > 0.6 {
		if a.HintsEnabled {
			score += 0.08
		}
		if a.CountdownEnabled {
			score += 0.04
		}
		if a.PreviewEnabled {
			score += 0.04
		}
	}

	switch profile.PlayStyle {
	case StyleSpeed:
		if a.TimeLimitMS > 0 && a.TimeLimitMS < p.cfg.TimeLimitCeilingMS {
			score += 0.05
		}
	case StylePrecision:
		if a.HintsEnabled || a.PreviewEnabled {
			score += 0.05
		}
	}

	return clamp01(score)
}
