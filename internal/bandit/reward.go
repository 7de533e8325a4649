package bandit

// RewardFor converts a metrics report into a scalar reward in [0,1].
//
// The completion bonus applies only to completed levels, the speed term
// compares the average response time against the game's reference time, and
// frustration always subtracts. A zero average response time means the UI did
// not measure it, so the speed term is skipped rather than maxed out.
func RewardFor(cfg GameConfig, m PerformanceMetrics) float64 {
	cfg = cfg.withDefaults()
	m = m.sanitized()
	w := cfg.Reward

	r := m.Accuracy * w.Accuracy
	if m.Completed {
		r += w.Completion
	}
	if m.AvgResponseMS > 0 {
		speed := 1 - m.AvgResponseMS/cfg.ReferenceResponseMS
		if speed > 0 {
			r += speed * w.Speed
		}
	}
	r += m.Engagement * w.Engagement
	r -= m.Frustration * w.Frustration

	return clamp01(r)
}
