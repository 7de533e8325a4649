package bandit

// Trend is the display label for the expected next difficulty move.
type Trend string

const (
	TrendEasier Trend = "easier"
	TrendSame   Trend = "same"
	TrendHarder Trend = "harder"
)

// NextLevel maps recent reward history to the next level. The decision is
// always within one step of the current level and inside [1, MaxLevel]; the
// engine never skips tiers. Promotion additionally requires the profile's
// skill estimate to clear the game's floor, so one lucky streak on a weak
// profile does not escalate difficulty.
func (b *Bandit) NextLevel(ctx Context) int {
	ctx = ctx.sanitized(b.cfg.MaxLevel)
	current := ctx.CurrentLevel

	switch b.direction() {
	case TrendHarder:
		if current < b.cfg.MaxLevel {
			return current + 1
		}
	case TrendEasier:
		if current > 1 {
			return current - 1
		}
	}
	return current
}

// PredictTrend exposes the same decision as NextLevel for UI display without
// mutating any state.
func (b *Bandit) PredictTrend(ctx Context) Trend {
	ctx = ctx.sanitized(b.cfg.MaxLevel)
	d := b.direction()
	switch d {
	case TrendHarder:
		if ctx.CurrentLevel >= b.cfg.MaxLevel {
			return TrendSame
		}
	case TrendEasier:
		if ctx.CurrentLevel <= 1 {
			return TrendSame
		}
	}
	return d
}

func (b *Bandit) direction() Trend {
	window := b.recentWindow()
	if len(window) < 3 {
		return TrendSame
	}
	var sum float64
	for _, h := range window {
		sum += h.Reward
	}
	mean := sum / float64(len(window))

	if mean >= b.cfg.PromoteThreshold && b.profile.SkillLevel >= b.cfg.PromoteSkillMin {
		return TrendHarder
	}
	if mean <= b.cfg.DemoteThreshold {
		return TrendEasier
	}
	return TrendSame
}

func (b *Bandit) recentWindow() []HistoryEntry {
	n := b.cfg.HistoryWindow
	if n > len(b.history) {
		n = len(b.history)
	}
	return b.history[len(b.history)-n:]
}

// Insight is a deterministic free-text summary of recent play for the UI.
// The same history always produces the same string.
func (b *Bandit) Insight() string {
	window := b.recentWindow()
	if len(window) < 3 {
		return "Keep playing a few more levels so the difficulty can calibrate to you."
	}
	var rewardSum, accSum, frusSum float64
	completed := 0
	for _, h := range window {
		rewardSum += h.Reward
		accSum += h.Metrics.Accuracy
		frusSum += h.Metrics.Frustration
		if h.Metrics.Completed {
			completed++
		}
	}
	n := float64(len(window))
	meanReward := rewardSum / n
	meanAcc := accSum / n
	meanFrus := frusSum / n

	switch {
	case meanFrus > 0.7:
		return "Recent levels look stressful. The next rounds will ease off and offer more assists."
	case meanReward >= b.cfg.PromoteThreshold && meanAcc > 0.85:
		return "Strong streak. Expect the difficulty to step up soon."
	case meanReward <= b.cfg.DemoteThreshold:
		return "The last levels were rough. Difficulty is trending down to keep you in a comfortable band."
	case completed == len(window):
		return "Steady progress. You are holding your current difficulty tier well."
	default:
		return "Mixed results lately. Difficulty will hold while the engine learns your sweet spot."
	}
}
