package bandit

// PerformanceMetrics is the UI's report of one finished level. It is the only
// input crossing the boundary from the game screens into the engine, so every
// field is treated as potentially absent or garbage.
type PerformanceMetrics struct {
	Completed        bool               `json:"completed"`
	Accuracy         float64            `json:"accuracy"`
	AvgResponseMS    float64            `json:"avg_response_ms"`
	TimeRemainingMS  float64            `json:"time_remaining_ms"`
	Frustration      float64            `json:"frustration"`
	Engagement       float64            `json:"engagement"`
	EarlyClicks      int                `json:"early_clicks"`
	Moves            int                `json:"moves"`
	ComboStreak      int                `json:"combo_streak"`
	SubSkillAccuracy map[string]float64 `json:"sub_skill_accuracy,omitempty"`
}

// sanitized maps NaN/Inf and out-of-range values to neutral defaults. A
// malformed report degrades the one adaptation step, never the session.
func (m PerformanceMetrics) sanitized() PerformanceMetrics {
	out := m
	out.Accuracy = clamp01(finiteOr(out.Accuracy, 0.5))
	out.AvgResponseMS = finiteOr(out.AvgResponseMS, 0)
	if out.AvgResponseMS < 0 {
		out.AvgResponseMS = 0
	}
	out.TimeRemainingMS = finiteOr(out.TimeRemainingMS, 0)
	if out.TimeRemainingMS < 0 {
		out.TimeRemainingMS = 0
	}
	out.Frustration = clamp01(finiteOr(out.Frustration, 0))
	out.Engagement = clamp01(finiteOr(out.Engagement, 0.5))
	if out.EarlyClicks < 0 {
		out.EarlyClicks = 0
	}
	if out.Moves < 0 {
		out.Moves = 0
	}
	if out.ComboStreak < 0 {
		out.ComboStreak = 0
	}
	if len(m.SubSkillAccuracy) > 0 {
		out.SubSkillAccuracy = make(map[string]float64, len(m.SubSkillAccuracy))
		for k, v := range m.SubSkillAccuracy {
			out.SubSkillAccuracy[k] = clamp01(finiteOr(v, 0.5))
		}
	}
	return out
}
