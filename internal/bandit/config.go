package bandit

// RewardWeights shapes the scalar reward in [0,1]. Accuracy and completion
// dominate; frustration is always a penalty.
type RewardWeights struct {
	Completion  float64 `yaml:"completion" json:"completion"`
	Accuracy    float64 `yaml:"accuracy" json:"accuracy"`
	Speed       float64 `yaml:"speed" json:"speed"`
	Engagement  float64 `yaml:"engagement" json:"engagement"`
	Frustration float64 `yaml:"frustration" json:"frustration"`
}

// GameConfig is the full per-game parameterization of the generic engine:
// action-space shaping, reward weights, progression thresholds and learning
// constants. Each game supplies one of these; there is no per-game bandit code.
type GameConfig struct {
	Name string

	MaxLevel           int
	VariationsPerLevel int

	// Level-scaled action parameters: value at level L is base + slope*(L-1),
	// clamped to the cap. A zero cap disables the axis for the game.
	TrialBase     float64
	TrialSlope    float64
	TrialCap      int
	TargetBase    float64
	TargetSlope   float64
	TargetCap     int
	GridBase      float64
	GridSlope     float64
	GridCap       int
	SequenceBase  float64
	SequenceSlope float64
	SequenceCap   int

	TimeLimitCeilingMS int
	TimeLimitFloorMS   int
	TimeLimitSlopeMS   int

	Reward              RewardWeights
	ReferenceResponseMS float64

	PromoteThreshold float64
	DemoteThreshold  float64
	PromoteSkillMin  float64
	HistoryWindow    int

	LearningRate float64
	WeightDecay  float64
	EpsilonStart float64
	EpsilonDecay float64
	EpsilonMin   float64
	UCBWeight    float64

	SubSkills []string
}

const (
	levelMultiplierStep = 0.08
	variationStep       = 0.03
	historyCap          = 100
	blendMaturityPulls  = 10
	coldStartBonus      = 1e6
	profileLearningRate = 0.15
	skillNudge          = 0.05
	goodRewardThreshold = 0.6
	defaultInitialSkill = 0.3
)

func (c GameConfig) withDefaults() GameConfig {
	out := c
	if out.MaxLevel <= 0 {
		out.MaxLevel = 25
	}
	if out.VariationsPerLevel <= 0 {
		out.VariationsPerLevel = 5
	}
	if out.TimeLimitCeilingMS <= 0 {
		out.TimeLimitCeilingMS = 30000
	}
	if out.TimeLimitFloorMS <= 0 {
		out.TimeLimitFloorMS = 5000
	}
	if out.TimeLimitSlopeMS <= 0 {
		out.TimeLimitSlopeMS = 800
	}
	if out.Reward == (RewardWeights{}) {
		out.Reward = RewardWeights{
			Completion:  0.25,
			Accuracy:    0.40,
			Speed:       0.15,
			Engagement:  0.10,
			Frustration: 0.15,
		}
	}
	if out.ReferenceResponseMS <= 0 {
		out.ReferenceResponseMS = 3000
	}
	if out.PromoteThreshold <= 0 {
		out.PromoteThreshold = 0.65
	}
	if out.DemoteThreshold <= 0 {
		out.DemoteThreshold = 0.35
	}
	if out.PromoteSkillMin <= 0 {
		out.PromoteSkillMin = 0.35
	}
	if out.HistoryWindow < 3 || out.HistoryWindow > 5 {
		out.HistoryWindow = 4
	}
	if out.LearningRate <= 0 {
		out.LearningRate = 0.1
	}
	if out.WeightDecay <= 0 {
		out.WeightDecay = 0.999
	}
	if out.EpsilonStart <= 0 {
		out.EpsilonStart = 0.3
	}
	if out.EpsilonDecay <= 0 {
		out.EpsilonDecay = 0.995
	}
	if out.EpsilonMin <= 0 {
		out.EpsilonMin = 0.05
	}
	if out.UCBWeight <= 0 {
		out.UCBWeight = 0.1
	}
	return out
}
