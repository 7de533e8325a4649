package games

import (
	"os"

	"gopkg.in/yaml.v3"

	"github.com/Vedu8767/mindspark-cognito-train-sub000/internal/bandit"
	"github.com/Vedu8767/mindspark-cognito-train-sub000/internal/logger"
)

// Tuning is the operator-editable subset of a game config. Everything is
// optional; absent fields keep their compiled-in defaults.
type Tuning struct {
	Reward              *bandit.RewardWeights `yaml:"reward"`
	ReferenceResponseMS float64               `yaml:"reference_response_ms"`
	PromoteThreshold    float64               `yaml:"promote_threshold"`
	DemoteThreshold     float64               `yaml:"demote_threshold"`
	EpsilonStart        float64               `yaml:"epsilon_start"`
	EpsilonDecay        float64               `yaml:"epsilon_decay"`
	EpsilonMin          float64               `yaml:"epsilon_min"`
	LearningRate        float64               `yaml:"learning_rate"`
}

// ApplyTuningFile overlays per-game tuning from a YAML file keyed by game
// name onto the registry. A missing or malformed file logs a warning and
// leaves the defaults untouched; tuning can never take the service down.
func ApplyTuningFile(path string, log *logger.Logger) {
	if path == "" {
		return
	}
	raw, err := os.ReadFile(path)
	if err != nil {
		log.Warn("games tuning file not readable, keeping defaults", "path", path, "error", err)
		return
	}
	var overrides map[string]Tuning
	if err := yaml.Unmarshal(raw, &overrides); err != nil {
		log.Warn("games tuning file malformed, keeping defaults", "path", path, "error", err)
		return
	}
	for name, t := range overrides {
		cfg, ok := registry[name]
		if !ok {
			log.Warn("games tuning references unknown game", "game", name)
			continue
		}
		registry[name] = applyTuning(cfg, t)
		log.Info("games tuning applied", "game", name)
	}
}

func applyTuning(cfg bandit.GameConfig, t Tuning) bandit.GameConfig {
	if t.Reward != nil {
		cfg.Reward = *t.Reward
	}
	if t.ReferenceResponseMS > 0 {
		cfg.ReferenceResponseMS = t.ReferenceResponseMS
	}
	if t.PromoteThreshold > 0 {
		cfg.PromoteThreshold = t.PromoteThreshold
	}
	if t.DemoteThreshold > 0 {
		cfg.DemoteThreshold = t.DemoteThreshold
	}
	if t.EpsilonStart > 0 {
		cfg.EpsilonStart = t.EpsilonStart
	}
	if t.EpsilonDecay > 0 {
		cfg.EpsilonDecay = t.EpsilonDecay
	}
	if t.EpsilonMin > 0 {
		cfg.EpsilonMin = t.EpsilonMin
	}
	if t.LearningRate > 0 {
		cfg.LearningRate = t.LearningRate
	}
	return cfg
}
