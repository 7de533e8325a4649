package bandit

import (
	"encoding/json"
	"sort"
)

// Snapshot is the serializable union of everything one bandit owns. One blob
// per (user, game); bandits never share state.
type Snapshot struct {
	Game       string         `json:"game"`
	Arms       []Arm          `json:"arms"`
	Epsilon    float64        `json:"epsilon"`
	TotalPulls int            `json:"total_pulls"`
	History    []HistoryEntry `json:"history"`
	Profile    UserProfile    `json:"profile"`
}

// Snapshot captures the current state. Arms are emitted in key order so the
// blob is byte-stable for identical state.
func (b *Bandit) Snapshot() Snapshot {
	arms := make([]Arm, 0, len(b.arms))
	for _, arm := range b.arms {
		cp := *arm
		cp.ContextWeights = append([]float64(nil), arm.ContextWeights...)
		arms = append(arms, cp)
	}
	sort.Slice(arms, func(i, j int) bool { return arms[i].Key < arms[j].Key })

	history := make([]HistoryEntry, len(b.history))
	copy(history, b.history)

	return Snapshot{
		Game:       b.cfg.Name,
		Arms:       arms,
		Epsilon:    b.epsilon,
		TotalPulls: b.totalPulls,
		History:    history,
		Profile:    b.profile,
	}
}

func (b *Bandit) MarshalBlob() ([]byte, error) {
	return json.Marshal(b.Snapshot())
}

// Restore replaces the bandit's state with the snapshot's, repairing any
// field that is out of range. Arms whose weight vector no longer matches the
// feature dimension are kept but their weights restart from zero.
func (b *Bandit) Restore(s Snapshot) {
	b.resetState()

	// A zero-value snapshot (blob present but empty) is the same as no blob.
	if len(s.Arms) == 0 && len(s.History) == 0 && s.TotalPulls == 0 && s.Epsilon == 0 {
		return
	}

	dim := featureDim(b.cfg)
	for _, arm := range s.Arms {
		if arm.Key == "" || arm.Pulls < 0 {
			continue
		}
		cp := arm
		if len(cp.ContextWeights) != dim {
			cp.ContextWeights = make([]float64, dim)
		} else {
			cp.ContextWeights = append([]float64(nil), arm.ContextWeights...)
		}
		cp.TotalReward = finiteOr(cp.TotalReward, 0)
		if cp.Pulls > 0 {
			cp.AverageReward = cp.TotalReward / float64(cp.Pulls)
		}
		b.arms[cp.Key] = &cp
	}

	eps := finiteOr(s.Epsilon, b.cfg.EpsilonStart)
	if eps < b.cfg.EpsilonMin || eps > b.cfg.EpsilonStart {
		eps = b.cfg.EpsilonStart
	}
	b.epsilon = eps
	if s.TotalPulls > 0 {
		b.totalPulls = s.TotalPulls
	}
	if len(s.History) > 0 {
		h := s.History
		if len(h) > historyCap {
			h = h[len(h)-historyCap:]
		}
		b.history = append([]HistoryEntry(nil), h...)
	}
	b.profile = s.Profile.sanitized()
}

// RestoreBlob loads a persisted blob. A missing or corrupt blob falls back to
// freshly initialized state; the caller never sees an error on this path.
func (b *Bandit) RestoreBlob(raw []byte) {
	if len(raw) == 0 {
		b.resetState()
		return
	}
	var s Snapshot
	if err := json.Unmarshal(raw, &s); err != nil {
		b.log.Warn("discarding corrupt bandit blob", "error", err)
		b.resetState()
		return
	}
	b.Restore(s)
}
