package matchengine

import (
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func lexicalScorer() *Scorer {
	return NewScorer(ModeLexical, nil, testLogger())
}

func TestClassifyMatched(t *testing.T) {
	candidates := []Candidate{
		{ID: "1", Name: "Hey Jude", Artists: []string{"The Beatles"}},
	}

	got := Classify("The Beatles - Hey Jude", candidates, lexicalScorer(), 0.6)

	assert.Equal(t, TierMatched, got.Tier)
	require.NotNil(t, got.Candidate)
	assert.Equal(t, "1", got.Candidate.ID)
	assert.GreaterOrEqual(t, got.Score, 0.6)
}

func TestClassifyLowConfidence(t *testing.T) {
	candidates := []Candidate{
		{ID: "1", Name: "Some Other Song", Artists: []string{"Unrelated Artist"}},
	}

	got := Classify("The Beatles - Hey Jude", candidates, lexicalScorer(), 0.6)

	// A non-empty candidate set never classifies as not_found, no matter
	// how weak the best score is.
	assert.Equal(t, TierLowConfidence, got.Tier)
	require.NotNil(t, got.Candidate)
	assert.Equal(t, "1", got.Candidate.ID)
	assert.Less(t, got.Score, 0.6)
}

func TestClassifyNotFoundOnlyWhenEmpty(t *testing.T) {
	got := Classify("Anything", nil, lexicalScorer(), 0.6)
	assert.Equal(t, TierNotFound, got.Tier)
	assert.Nil(t, got.Candidate)
}

func TestClassifyMultiArtist(t *testing.T) {
	candidates := []Candidate{
		{ID: "1", Name: "Song", Artists: []string{"Artist1", "Artist2"}},
	}

	got := Classify("Artist1 & Artist2 - Song", candidates, lexicalScorer(), 0.6)
	assert.Equal(t, TierMatched, got.Tier)
}

func TestClassifyPicksBestBeforeThreshold(t *testing.T) {
	candidates := []Candidate{
		{ID: "bad", Name: "Wrong Song Entirely", Artists: []string{"Nobody"}},
		{ID: "good", Name: "Hey Jude", Artists: []string{"The Beatles"}},
	}

	got := Classify("The Beatles - Hey Jude", candidates, lexicalScorer(), 0.6)
	require.NotNil(t, got.Candidate)
	assert.Equal(t, "good", got.Candidate.ID)
}

func TestClassifyTieBreakInsertionOrder(t *testing.T) {
	// Identical candidates under different IDs score identically; the
	// first inserted must win.
	candidates := []Candidate{
		{ID: "first", Name: "Hey Jude", Artists: []string{"The Beatles"}},
		{ID: "second", Name: "Hey Jude", Artists: []string{"The Beatles"}},
	}

	got := Classify("The Beatles - Hey Jude", candidates, lexicalScorer(), 0.6)
	require.NotNil(t, got.Candidate)
	assert.Equal(t, "first", got.Candidate.ID)
}

func TestClassifyMalformedCandidateScoresZero(t *testing.T) {
	candidates := []Candidate{
		{ID: "broken"}, // no name
		{ID: "ok", Name: "Hey Jude", Artists: []string{"The Beatles"}},
	}

	got := Classify("The Beatles - Hey Jude", candidates, lexicalScorer(), 0.6)
	require.NotNil(t, got.Candidate)
	assert.Equal(t, "ok", got.Candidate.ID)
}

func TestClassifyZeroThresholdMatchesAnyCandidate(t *testing.T) {
	candidates := []Candidate{
		{ID: "1", Name: "Completely Different", Artists: []string{"Nobody"}},
	}

	got := Classify("The Beatles - Hey Jude", candidates, lexicalScorer(), 0.0)
	assert.Equal(t, TierMatched, got.Tier)
}

func TestClassifyThresholdMonotonic(t *testing.T) {
	candidates := []Candidate{
		{ID: "1", Name: "Hey Jude", Artists: []string{"The Beatles"}},
	}

	prev := TierMatched
	for _, threshold := range []float64{0.1, 0.3, 0.5, 0.7, 0.9, 0.99} {
		got := Classify("The Beatles - Hey Jude", candidates, lexicalScorer(), threshold)
		if prev == TierLowConfidence {
			// Raising the threshold can only move matched results to
			// low_confidence, never back.
			assert.Equal(t, TierLowConfidence, got.Tier)
		}
		prev = got.Tier
	}
}

func TestScorerBounds(t *testing.T) {
	scorer := lexicalScorer()
	candidates := []Candidate{
		{ID: "1", Name: "Hey Jude", Artists: []string{"The Beatles"}},
		{ID: "2", Name: "", Artists: nil},
		{ID: "3", Name: "Song", Artists: []string{"A", "B", "C"}},
	}

	for _, title := range []string{"", "The Beatles - Hey Jude", "???", "タイトル"} {
		for _, c := range candidates {
			score := scorer.VerifyScore(title, c)
			assert.GreaterOrEqual(t, score, 0.0)
			assert.LessOrEqual(t, score, 1.0)
		}
	}
}

func TestScorerReflexiveOnLabel(t *testing.T) {
	c := Candidate{ID: "1", Name: "Hey Jude", Artists: []string{"The Beatles"}}
	score := lexicalScorer().VerifyScore("The Beatles Hey Jude", c)
	assert.Equal(t, 1.0, score)
}
