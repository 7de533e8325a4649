package bandit

import (
	"math"
)

// variationAxes spans the stylistic spread within one level, from the most
// generous rendering (extra time, all assists) to the most demanding one
// (tight time, no assists). Index order also fixes the multiplier order.
var variationAxes = []struct {
	timeScale float64
	targetOff int
	hints     bool
	countdown bool
	preview   bool
}{
	{1.30, -1, true, true, true},
	{1.15, 0, true, true, false},
	{1.00, 0, true, false, false},
	{0.90, 0, false, false, false},
	{0.75, 1, false, false, false},
}

// GenerateActions builds the fixed action catalogue for one game: MaxLevel
// difficulty tiers with VariationsPerLevel variations each. Pure and
// deterministic; called once per bandit construction.
//
// The variation multiplier step (0.03) keeps the whole per-level band inside
// the level's selection window [1+(L-1)*0.08, 1+L*0.15], so level filtering
// always finds the level's own variations.
func GenerateActions(cfg GameConfig) []Action {
	cfg = cfg.withDefaults()
	out := make([]Action, 0, cfg.MaxLevel*cfg.VariationsPerLevel)
	for level := 1; level <= cfg.MaxLevel; level++ {
		baseTrials := scaledParam(cfg.TrialBase, cfg.TrialSlope, level, cfg.TrialCap)
		baseTargets := scaledParam(cfg.TargetBase, cfg.TargetSlope, level, cfg.TargetCap)
		baseGrid := scaledParam(cfg.GridBase, cfg.GridSlope, level, cfg.GridCap)
		baseSeq := scaledParam(cfg.SequenceBase, cfg.SequenceSlope, level, cfg.SequenceCap)
		baseTime := cfg.TimeLimitCeilingMS - (level-1)*cfg.TimeLimitSlopeMS
		if baseTime < cfg.TimeLimitFloorMS {
			baseTime = cfg.TimeLimitFloorMS
		}

		for idx := 0; idx < cfg.VariationsPerLevel; idx++ {
			axis := variationAxes[idx%len(variationAxes)]
			targets := baseTargets
			if targets > 0 {
				targets += axis.targetOff
				if targets < 1 {
					targets = 1
				}
				if cfg.TargetCap > 0 && targets > cfg.TargetCap {
					targets = cfg.TargetCap
				}
			}
			timeLimit := int(float64(baseTime) * axis.timeScale)
			if timeLimit < cfg.TimeLimitFloorMS {
				timeLimit = cfg.TimeLimitFloorMS
			}
			out = append(out, Action{
				Level:                level,
				Variation:            idx,
				Trials:               baseTrials,
				Targets:              targets,
				GridSize:             baseGrid,
				SequenceLength:       baseSeq,
				TimeLimitMS:          timeLimit,
				HintsEnabled:         axis.hints,
				CountdownEnabled:     axis.countdown,
				PreviewEnabled:       axis.preview,
				DifficultyMultiplier: 1 + float64(level-1)*levelMultiplierStep + float64(idx)*variationStep,
			})
		}
	}
	return out
}

func scaledParam(base, slope float64, level, limit int) int {
	if base <= 0 {
		return 0
	}
	v := int(math.Floor(base + slope*float64(level-1)))
	if v < 1 {
		v = 1
	}
	if limit > 0 && v > limit {
		v = limit
	}
	return v
}

// levelBand is the multiplier window implied by a level; actions whose
// multiplier falls inside it are candidates for that level.
func levelBand(level int) (lo, hi float64) {
	return 1 + float64(level-1)*levelMultiplierStep, 1 + float64(level)*0.15
}
