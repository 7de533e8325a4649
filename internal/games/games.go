package games

import (
	"sort"

	"github.com/Vedu8767/mindspark-cognito-train-sub000/internal/bandit"
)

// Game names. Each one is a parameterization of the same generic engine;
// there is no per-game bandit code anywhere in the repo.
const (
	Reaction        = "reaction"
	MemoryGrid      = "memory_grid"
	Attention       = "attention"
	Pattern         = "pattern"
	Executive       = "executive"
	SpatialNav      = "spatial_nav"
	ProcessingSpeed = "processing_speed"
	MentalMath      = "mental_math"
	SequenceRecall  = "sequence_recall"
	TaskSwitch      = "task_switch"
)

var registry = map[string]bandit.GameConfig{
	Reaction: {
		Name:      Reaction,
		TrialBase: 5, TrialSlope: 0.5, TrialCap: 20,
		TargetBase: 1, TargetSlope: 0.25, TargetCap: 6,
		TimeLimitCeilingMS: 20000, TimeLimitFloorMS: 4000, TimeLimitSlopeMS: 600,
		ReferenceResponseMS: 900,
		Reward: bandit.RewardWeights{
			Completion: 0.20, Accuracy: 0.35, Speed: 0.25, Engagement: 0.10, Frustration: 0.15,
		},
	},
	MemoryGrid: {
		Name:      MemoryGrid,
		TrialBase: 3, TrialSlope: 0.3, TrialCap: 12,
		GridBase: 3, GridSlope: 0.2, GridCap: 8,
		TargetBase: 2, TargetSlope: 0.4, TargetCap: 12,
		TimeLimitCeilingMS: 45000, TimeLimitFloorMS: 10000, TimeLimitSlopeMS: 1200,
		ReferenceResponseMS: 4000,
	},
	Attention: {
		Name:      Attention,
		TrialBase: 8, TrialSlope: 0.6, TrialCap: 30,
		TargetBase: 2, TargetSlope: 0.3, TargetCap: 8,
		TimeLimitCeilingMS: 30000, TimeLimitFloorMS: 8000, TimeLimitSlopeMS: 800,
		ReferenceResponseMS: 2000,
		SubSkills:           []string{"sustained", "selective"},
	},
	Pattern: {
		Name:      Pattern,
		TrialBase: 4, TrialSlope: 0.4, TrialCap: 15,
		SequenceBase: 3, SequenceSlope: 0.35, SequenceCap: 12,
		TimeLimitCeilingMS: 40000, TimeLimitFloorMS: 10000, TimeLimitSlopeMS: 1000,
		ReferenceResponseMS: 3500,
	},
	Executive: {
		Name:      Executive,
		TrialBase: 6, TrialSlope: 0.5, TrialCap: 24,
		TargetBase: 2, TargetSlope: 0.25, TargetCap: 6,
		TimeLimitCeilingMS: 35000, TimeLimitFloorMS: 9000, TimeLimitSlopeMS: 900,
		ReferenceResponseMS: 2500,
		SubSkills:           []string{"inhibition", "switching", "working_memory"},
	},
	SpatialNav: {
		Name:      SpatialNav,
		TrialBase: 3, TrialSlope: 0.25, TrialCap: 10,
		GridBase: 4, GridSlope: 0.3, GridCap: 10,
		TimeLimitCeilingMS: 60000, TimeLimitFloorMS: 15000, TimeLimitSlopeMS: 1500,
		ReferenceResponseMS: 6000,
	},
	ProcessingSpeed: {
		Name:      ProcessingSpeed,
		TrialBase: 10, TrialSlope: 0.8, TrialCap: 40,
		TargetBase: 1, TargetSlope: 0.2, TargetCap: 4,
		TimeLimitCeilingMS: 25000, TimeLimitFloorMS: 6000, TimeLimitSlopeMS: 700,
		ReferenceResponseMS: 1200,
		Reward: bandit.RewardWeights{
			Completion: 0.20, Accuracy: 0.30, Speed: 0.30, Engagement: 0.10, Frustration: 0.15,
		},
	},
	MentalMath: {
		Name:      MentalMath,
		TrialBase: 5, TrialSlope: 0.5, TrialCap: 20,
		TimeLimitCeilingMS: 40000, TimeLimitFloorMS: 10000, TimeLimitSlopeMS: 1100,
		ReferenceResponseMS: 5000,
		SubSkills:           []string{"addition", "subtraction", "multiplication"},
	},
	SequenceRecall: {
		Name:      SequenceRecall,
		TrialBase: 3, TrialSlope: 0.3, TrialCap: 10,
		SequenceBase: 4, SequenceSlope: 0.4, SequenceCap: 16,
		TimeLimitCeilingMS: 50000, TimeLimitFloorMS: 12000, TimeLimitSlopeMS: 1300,
		ReferenceResponseMS: 3000,
	},
	TaskSwitch: {
		Name:      TaskSwitch,
		TrialBase: 8, TrialSlope: 0.7, TrialCap: 32,
		TargetBase: 2, TargetSlope: 0.2, TargetCap: 5,
		TimeLimitCeilingMS: 30000, TimeLimitFloorMS: 8000, TimeLimitSlopeMS: 850,
		ReferenceResponseMS: 2200,
		SubSkills:           []string{"rule_a", "rule_b"},
	},
}

// Lookup returns the config for a game name.
func Lookup(name string) (bandit.GameConfig, bool) {
	cfg, ok := registry[name]
	return cfg, ok
}

// Names lists all registered games in stable order.
func Names() []string {
	out := make([]string, 0, len(registry))
	for name := range registry {
		out = append(out, name)
	}
	sort.Strings(out)
	return out
}
