package bandit

// PlayStyle labels detected from recent telemetry; the cold-start prior uses
// them to bias assistive and pacing parameters.
const (
	StyleBalanced  = "balanced"
	StyleSpeed     = "speed_focused"
	StylePrecision = "precision_focused"
)

// UserProfile is the slow-moving per-player summary. It moves by exponential
// smoothing toward the parameters of actions that earned a good reward, so a
// few bad levels cannot whipsaw the preferences.
type UserProfile struct {
	SkillLevel              float64            `json:"skill_level"`
	PreferredDifficulty     float64            `json:"preferred_difficulty"`
	PreferredGridSize       float64            `json:"preferred_grid_size"`
	PreferredSequenceLength float64            `json:"preferred_sequence_length"`
	PreferredTimeLimitMS    float64            `json:"preferred_time_limit_ms"`
	PlayStyle               string             `json:"play_style"`
	SubSkillStrengths       map[string]float64 `json:"sub_skill_strengths,omitempty"`
}

func newUserProfile() UserProfile {
	return UserProfile{
		SkillLevel:          defaultInitialSkill,
		PreferredDifficulty: 1.0,
		PlayStyle:           StyleBalanced,
	}
}

func (p UserProfile) sanitized() UserProfile {
	out := p
	out.SkillLevel = clamp01(finiteOr(out.SkillLevel, defaultInitialSkill))
	out.PreferredDifficulty = finiteOr(out.PreferredDifficulty, 1.0)
	if out.PreferredDifficulty <= 0 {
		out.PreferredDifficulty = 1.0
	}
	out.PreferredGridSize = finiteOr(out.PreferredGridSize, 0)
	out.PreferredSequenceLength = finiteOr(out.PreferredSequenceLength, 0)
	out.PreferredTimeLimitMS = finiteOr(out.PreferredTimeLimitMS, 0)
	switch out.PlayStyle {
	case StyleBalanced, StyleSpeed, StylePrecision:
	default:
		out.PlayStyle = StyleBalanced
	}
	if len(p.SubSkillStrengths) > 0 {
		out.SubSkillStrengths = make(map[string]float64, len(p.SubSkillStrengths))
		for k, v := range p.SubSkillStrengths {
			out.SubSkillStrengths[k] = clamp01(finiteOr(v, 0.5))
		}
	}
	return out
}

func ema(current, target, alpha float64) float64 {
	return current*(1-alpha) + target*alpha
}
