package matchengine

// Classify combines a title's candidate set and scores into a final tiered
// result. An empty set is the only way to produce TierNotFound. Otherwise
// the best candidate is selected by highest VerifyScore across the whole
// set, with ties broken by insertion order, and only then compared against
// the threshold: at or above it the result is TierMatched, below it the
// best candidate is still surfaced as TierLowConfidence. Threshold
// filtering never removes candidates before best-selection.
func Classify(title string, candidates []Candidate, scorer *Scorer, threshold float64) Result {
	if len(candidates) == 0 {
		return Result{SourceTitle: title, Tier: TierNotFound}
	}

	bestIdx := 0
	bestScore := scorer.VerifyScore(title, candidates[0])
	for i := 1; i < len(candidates); i++ {
		if score := scorer.VerifyScore(title, candidates[i]); score > bestScore {
			bestScore = score
			bestIdx = i
		}
	}

	tier := TierLowConfidence
	if bestScore >= threshold {
		tier = TierMatched
	}

	best := candidates[bestIdx]
	return Result{
		SourceTitle: title,
		Candidate:   &best,
		Tier:        tier,
		Score:       bestScore,
	}
}
