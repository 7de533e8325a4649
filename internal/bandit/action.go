package bandit

import (
	"fmt"
)

// Action is one immutable difficulty configuration the UI can render. The
// catalogue is generated once per bandit from the game config and never
// mutated afterwards.
type Action struct {
	Level                int     `json:"level"`
	Variation            int     `json:"variation"`
	Trials               int     `json:"trials"`
	Targets              int     `json:"targets"`
	GridSize             int     `json:"grid_size"`
	SequenceLength       int     `json:"sequence_length"`
	TimeLimitMS          int     `json:"time_limit_ms"`
	HintsEnabled         bool    `json:"hints_enabled"`
	CountdownEnabled     bool    `json:"countdown_enabled"`
	PreviewEnabled       bool    `json:"preview_enabled"`
	DifficultyMultiplier float64 `json:"difficulty_multiplier"`
}

// Key is the canonical arm identity. Every field that defines the rendered
// difficulty participates, so two actions collide only if they are the same
// configuration.
func (a Action) Key() string {
	return fmt.Sprintf("L%d:v%d:t%d:n%d:g%d:s%d:tl%d:h%t:c%t:p%t:m%.3f",
		a.Level, a.Variation, a.Trials, a.Targets, a.GridSize, a.SequenceLength,
		a.TimeLimitMS, a.HintsEnabled, a.CountdownEnabled, a.PreviewEnabled,
		a.DifficultyMultiplier)
}
