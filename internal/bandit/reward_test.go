package bandit

import (
	"math"
	"testing"
)

func TestRewardPerfectRunNearCeiling(t *testing.T) {
	cfg := testConfig()
	r := RewardFor(cfg, PerformanceMetrics{
		Completed:     true,
		Accuracy:      1.0,
		AvgResponseMS: 1,
		Engagement:    1.0,
	})
	if r < 0.85 || r > 1 {
		t.Fatalf("perfect run: want reward near the ceiling, got %v", r)
	}
}

func TestRewardTotalFailureAtFloor(t *testing.T) {
	cfg := testConfig()
	r := RewardFor(cfg, PerformanceMetrics{
		Accuracy:    0,
		Frustration: 1.0,
	})
	if r != 0 {
		t.Fatalf("total failure: want 0, got %v", r)
	}
}

func TestRewardBoundsUnderHostileInput(t *testing.T) {
	cfg := testConfig()
	hostile := []PerformanceMetrics{
		{Accuracy: math.NaN(), AvgResponseMS: math.NaN(), Frustration: math.NaN(), Engagement: math.NaN()},
		{Accuracy: math.Inf(1), AvgResponseMS: math.Inf(-1), Engagement: math.Inf(1)},
		{Completed: true, Accuracy: 100, Engagement: 100, Frustration: -100},
		{Accuracy: -100, Frustration: 100},
	}
	for i, m := range hostile {
		r := RewardFor(cfg, m)
		if math.IsNaN(r) || r < 0 || r > 1 {
			t.Fatalf("case %d: reward %v outside [0,1]", i, r)
		}
	}
}

func TestRewardSkipsSpeedTermWhenUnmeasured(t *testing.T) {
	cfg := testConfig()
	base := PerformanceMetrics{Completed: true, Accuracy: 0.8, Engagement: 0.5}

	unmeasured := base
	unmeasured.AvgResponseMS = 0
	fast := base
	fast.AvgResponseMS = 200

	if RewardFor(cfg, unmeasured) >= RewardFor(cfg, fast) {
		t.Fatalf("a missing response time must not score as a fast one")
	}
}

func TestRewardSlowResponsesEarnNoSpeedCredit(t *testing.T) {
	cfg := testConfig().withDefaults()
	base := PerformanceMetrics{Completed: true, Accuracy: 0.8, Engagement: 0.5}

	slow := base
	slow.AvgResponseMS = cfg.ReferenceResponseMS * 3
	unmeasured := base
	unmeasured.AvgResponseMS = 0

	if RewardFor(cfg, slow) != RewardFor(cfg, unmeasured) {
		t.Fatalf("responses past the reference time should add nothing")
	}
}

func TestRewardFrustrationAlwaysPenalizes(t *testing.T) {
	cfg := testConfig()
	calm := PerformanceMetrics{Completed: true, Accuracy: 0.9, Engagement: 0.6}
	stressed := calm
	stressed.Frustration = 0.8

	if RewardFor(cfg, stressed) >= RewardFor(cfg, calm) {
		t.Fatalf("frustration must lower the reward")
	}
}

func TestRewardMonotoneInAccuracy(t *testing.T) {
	cfg := testConfig()
	prev := -1.0
	for acc := 0.0; acc <= 1.0; acc += 0.1 {
		r := RewardFor(cfg, PerformanceMetrics{Completed: true, Accuracy: acc})
		if r < prev {
			t.Fatalf("accuracy %v: reward %v dropped below %v", acc, r, prev)
		}
		prev = r
	}
}
