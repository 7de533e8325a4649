package bandit

import (
	"math"
)

// TimeOfDay buckets the session clock into a coarse categorical signal.
type TimeOfDay string

const (
	Morning   TimeOfDay = "morning"
	Afternoon TimeOfDay = "afternoon"
	Evening   TimeOfDay = "evening"
	Night     TimeOfDay = "night"
)

func TimeOfDayFromHour(hour int) TimeOfDay {
	switch {
	case hour >= 5 && hour < 12:
		return Morning
	case hour >= 12 && hour < 17:
		return Afternoon
	case hour >= 17 && hour < 22:
		return Evening
	default:
		return Night
	}
}

// Context is the player-state snapshot the UI rebuilds before every level from
// its rolling window of recent trials. It is never persisted.
type Context struct {
	CurrentLevel       int                `json:"current_level"`
	PreviousDifficulty float64            `json:"previous_difficulty"`
	RecentAccuracy     float64            `json:"recent_accuracy"`
	RecentSpeed        float64            `json:"recent_speed"`
	SuccessRate        float64            `json:"success_rate"`
	StreakCount        int                `json:"streak_count"`
	SessionLength      float64            `json:"session_length"`
	TimeOfDay          TimeOfDay          `json:"time_of_day"`
	FrustrationLevel   float64            `json:"frustration_level"`
	EngagementLevel    float64            `json:"engagement_level"`
	SubSkills          map[string]float64 `json:"sub_skills,omitempty"`
}

// sanitized clamps every field into its legal range. Degenerate input becomes a
// neutral value instead of an error; a session must never abort on bad telemetry.
func (c Context) sanitized(maxLevel int) Context {
	out := c
	if out.CurrentLevel < 1 {
		out.CurrentLevel = 1
	}
	if out.CurrentLevel > maxLevel {
		out.CurrentLevel = maxLevel
	}
	out.PreviousDifficulty = finiteOr(out.PreviousDifficulty, 1.0)
	if out.PreviousDifficulty <= 0 {
		out.PreviousDifficulty = 1.0
	}
	out.RecentAccuracy = clamp01(finiteOr(out.RecentAccuracy, 0.5))
	out.RecentSpeed = clamp01(finiteOr(out.RecentSpeed, 0.5))
	out.SuccessRate = clamp01(finiteOr(out.SuccessRate, 0.5))
	if out.StreakCount < 0 {
		out.StreakCount = 0
	}
	out.SessionLength = clamp01(finiteOr(out.SessionLength, 0))
	switch out.TimeOfDay {
	case Morning, Afternoon, Evening, Night:
	default:
		out.TimeOfDay = Afternoon
	}
	out.FrustrationLevel = clamp01(finiteOr(out.FrustrationLevel, 0))
	out.EngagementLevel = clamp01(finiteOr(out.EngagementLevel, 0.5))
	if len(c.SubSkills) > 0 {
		out.SubSkills = make(map[string]float64, len(c.SubSkills))
		for k, v := range c.SubSkills {
			out.SubSkills[k] = clamp01(finiteOr(v, 0.5))
		}
	}
	return out
}

func finiteOr(v, fallback float64) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return fallback
	}
	return v
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
