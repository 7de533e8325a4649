package bandit

import (
	"time"
)

// Arm holds the online-learned statistics for one action. Created lazily the
// first time its action is pulled; removed only by Reset.
type Arm struct {
	Key            string    `json:"key"`
	Pulls          int       `json:"pulls"`
	TotalReward    float64   `json:"total_reward"`
	AverageReward  float64   `json:"average_reward"`
	LastPulled     time.Time `json:"last_pulled"`
	ContextWeights []float64 `json:"context_weights"`
}

// featureVector concatenates the normalized context features with the
// normalized action features. Arm weight vectors have exactly this length;
// the order is fixed by the game config's sub-skill list so vectors stay
// comparable across rounds.
func featureVector(cfg GameConfig, ctx Context, a Action) []float64 {
	f := make([]float64, 0, featureDim(cfg))

	f = append(f,
		float64(ctx.CurrentLevel)/float64(cfg.MaxLevel),
		ctx.PreviousDifficulty/4.0,
		ctx.RecentAccuracy,
		ctx.RecentSpeed,
		ctx.SuccessRate,
		clamp(float64(ctx.StreakCount)/10.0, 0, 1),
		ctx.SessionLength,
	)
	f = append(f, oneHotTimeOfDay(ctx.TimeOfDay)...)
	f = append(f, ctx.FrustrationLevel, ctx.EngagementLevel)
	for _, name := range cfg.SubSkills {
		v, ok := ctx.SubSkills[name]
		if !ok {
			v = 0.5
		}
		f = append(f, v)
	}

	f = append(f,
		normCount(a.Trials, cfg.TrialCap),
		normCount(a.Targets, cfg.TargetCap),
		normCount(a.GridSize, cfg.GridCap),
		normCount(a.SequenceLength, cfg.SequenceCap),
		float64(a.TimeLimitMS)/float64(cfg.TimeLimitCeilingMS),
		boolFeature(a.HintsEnabled),
		boolFeature(a.CountdownEnabled),
		boolFeature(a.PreviewEnabled),
		a.DifficultyMultiplier/4.0,
	)
	return f
}

func featureDim(cfg GameConfig) int {
	return 7 + 4 + 2 + len(cfg.SubSkills) + 9
}

func oneHotTimeOfDay(t TimeOfDay) []float64 {
	out := make([]float64, 4)
	switch t {
	case Morning:
		out[0] = 1
	case Afternoon:
		out[1] = 1
	case Evening:
		out[2] = 1
	default:
		out[3] = 1
	}
	return out
}

func normCount(v, limit int) float64 {
	if v <= 0 {
		return 0
	}
	if limit <= 0 {
		limit = v
	}
	return clamp(float64(v)/float64(limit), 0, 1)
}

func boolFeature(b bool) float64 {
	if b {
		return 1
	}
	return 0
}

func dot(w, f []float64) float64 {
	n := len(w)
	if len(f) < n {
		n = len(f)
	}
	var sum float64
	for i := 0; i < n; i++ {
		sum += w[i] * f[i]
	}
	return sum
}
