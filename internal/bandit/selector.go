package bandit

import (
	"math"
)

const fallbackPrefix = 5

// Select picks the next difficulty configuration for the given context.
//
// Candidates are the current level's own variations when their multipliers sit
// in the level band [1+(L-1)*0.08, 1+L*0.15]; if that exact-level set is empty
// the band alone is used, and as a last resort a small prefix of the full
// catalogue. Select never fails on a degenerate context.
func (b *Bandit) Select(ctx Context) Action {
	ctx = ctx.sanitized(b.cfg.MaxLevel)
	candidates := b.candidatesForLevel(ctx.CurrentLevel)

	if b.epsilon > 0 && b.rng.Float64() < b.epsilon {
		a := candidates[b.rng.Intn(len(candidates))]
		b.log.Debug("explore", "level", ctx.CurrentLevel, "action", a.Key(), "epsilon", b.epsilon)
		return a
	}

	best := candidates[0]
	bestScore := math.Inf(-1)
	for _, a := range candidates {
		score := b.predictReward(ctx, a) + b.ucbBonus(a)*b.cfg.UCBWeight
		// Strict comparison keeps catalogue order as the tie-break: the
		// first-seen candidate wins, which makes selection reproducible.
		if score > bestScore {
			bestScore = score
			best = a
		}
	}
	b.log.Debug("exploit", "level", ctx.CurrentLevel, "action", best.Key(), "score", bestScore)
	return best
}

func (b *Bandit) candidatesForLevel(level int) []Action {
	lo, hi := levelBand(level)
	var exact, band []Action
	for _, a := range b.catalogue {
		if a.DifficultyMultiplier < lo || a.DifficultyMultiplier > hi {
			continue
		}
		band = append(band, a)
		if a.Level == level {
			exact = append(exact, a)
		}
	}
	if len(exact) > 0 {
		return exact
	}
	if len(band) > 0 {
		return band
	}
	// Documented degenerate case: the band missed the whole catalogue, so
	// widen to an arbitrary small prefix rather than fail.
	n := fallbackPrefix
	if n > len(b.catalogue) {
		n = len(b.catalogue)
	}
	return b.catalogue[:n]
}

// predictReward blends the arm's running average with its linear model:
// young arms lean on the average, mature arms on the learned weights.
// Unpulled arms fall through to the cold-start prior.
func (b *Bandit) predictReward(ctx Context, a Action) float64 {
	arm := b.arms[a.Key()]
	if arm == nil || arm.Pulls == 0 {
		return b.prior.Score(b.profile, ctx, a)
	}
	blend := float64(arm.Pulls) / blendMaturityPulls
	if blend > 1 {
		blend = 1
	}
	linear := dot(arm.ContextWeights, featureVector(b.cfg, ctx, a))
	return (1-blend)*arm.AverageReward + blend*linear
}

// ucbBonus favors under-sampled arms; unpulled arms get an effectively
// infinite bonus so every candidate is covered during cold start.
func (b *Bandit) ucbBonus(a Action) float64 {
	arm := b.arms[a.Key()]
	if arm == nil || arm.Pulls == 0 {
		return coldStartBonus
	}
	return math.Sqrt(2 * math.Log(float64(b.totalPulls)+1) / float64(arm.Pulls))
}
