package games

import (
	"sort"
	"testing"

	"github.com/Vedu8767/mindspark-cognito-train-sub000/internal/bandit"
)

func TestRegistryCoversAllGames(t *testing.T) {
	want := []string{
		Attention, Executive, MemoryGrid, MentalMath, Pattern,
		ProcessingSpeed, Reaction, SequenceRecall, SpatialNav, TaskSwitch,
	}
	names := Names()
	if len(names) != len(want) {
		t.Fatalf("registry size: want %d, got %d", len(want), len(names))
	}
	if !sort.StringsAreSorted(names) {
		t.Fatalf("Names not sorted: %v", names)
	}
	for _, name := range want {
		cfg, ok := Lookup(name)
		if !ok {
			t.Fatalf("game %q missing from registry", name)
		}
		if cfg.Name != name {
			t.Fatalf("game %q: config name is %q", name, cfg.Name)
		}
	}
}

func TestLookupUnknownGame(t *testing.T) {
	if _, ok := Lookup("chess"); ok {
		t.Fatalf("unknown game must not resolve")
	}
}

func TestEveryConfigDrivesTheEngine(t *testing.T) {
	for _, name := range Names() {
		cfg, _ := Lookup(name)
		b := bandit.New(cfg, nil, 1)
		a := b.Select(bandit.Context{})
		if a.Level != 1 {
			t.Fatalf("game %q: fresh selection at level %d", name, a.Level)
		}
		if a.TimeLimitMS <= 0 {
			t.Fatalf("game %q: action without a time limit", name)
		}
	}
}

func TestSubSkillGamesDeclareTheirSkills(t *testing.T) {
	cases := map[string][]string{
		Attention:  {"sustained", "selective"},
		Executive:  {"inhibition", "switching", "working_memory"},
		MentalMath: {"addition", "subtraction", "multiplication"},
		TaskSwitch: {"rule_a", "rule_b"},
	}
	for name, want := range cases {
		cfg, _ := Lookup(name)
		if len(cfg.SubSkills) != len(want) {
			t.Fatalf("game %q: want %d sub-skills, got %d", name, len(want), len(cfg.SubSkills))
		}
		for i, s := range want {
			if cfg.SubSkills[i] != s {
				t.Fatalf("game %q: sub-skill %d: want %q, got %q", name, i, s, cfg.SubSkills[i])
			}
		}
	}
}

func TestApplyTuningOverridesOnlyGivenFields(t *testing.T) {
	cfg, _ := Lookup(Reaction)
	tuned := applyTuning(cfg, Tuning{
		PromoteThreshold: 0.8,
		EpsilonMin:       0.02,
	})
	if tuned.PromoteThreshold != 0.8 {
		t.Fatalf("promote threshold: want 0.8, got %v", tuned.PromoteThreshold)
	}
	if tuned.EpsilonMin != 0.02 {
		t.Fatalf("epsilon min: want 0.02, got %v", tuned.EpsilonMin)
	}
	if tuned.Reward != cfg.Reward {
		t.Fatalf("reward weights changed without an override")
	}
	if tuned.ReferenceResponseMS != cfg.ReferenceResponseMS {
		t.Fatalf("reference response changed without an override")
	}
}

func TestApplyTuningReplacesRewardWeightsWholesale(t *testing.T) {
	cfg, _ := Lookup(MemoryGrid)
	w := bandit.RewardWeights{Completion: 0.5, Accuracy: 0.5}
	tuned := applyTuning(cfg, Tuning{Reward: &w})
	if tuned.Reward != w {
		t.Fatalf("reward weights: want %+v, got %+v", w, tuned.Reward)
	}
}
