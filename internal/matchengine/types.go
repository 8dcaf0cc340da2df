// Package matchengine matches free-text media titles against structured
// catalog entries, producing per-title classified results with a
// confidence tier.
package matchengine

import (
	"context"
	"strings"
)

// Candidate is one catalog entry returned by the search provider. Read-only
// to the engine; a zero Name marks the record malformed and it scores 0.
type Candidate struct {
	ID      string
	Name    string
	Artists []string
}

// Label formats the candidate for similarity comparison: artist names
// joined by spaces, followed by the track name.
func (c Candidate) Label() string {
	return strings.TrimSpace(strings.Join(c.Artists, " ") + " " + c.Name)
}

// Tier is the three-way classification of a title's best candidate.
type Tier string

const (
	TierMatched       Tier = "matched"
	TierLowConfidence Tier = "low_confidence"
	TierNotFound      Tier = "not_found"
)

// Result is the immutable outcome for one input title. Candidate is nil and
// Score meaningless when Tier is TierNotFound.
type Result struct {
	SourceTitle string
	Candidate   *Candidate
	Tier        Tier
	Score       float64
}

// Report is the outcome of a MatchAll run. Cancelled reports that the run
// was stopped by the caller's cancellation predicate or context; Results
// then holds only the titles finalized before the stop, in input order. No
// partial result is emitted for an in-flight title. Cancellation is not an
// error.
type Report struct {
	Results   []Result
	Cancelled bool
}

// SearchFunc is the catalog search provider seam: given a query it returns
// up to limit ranked candidates. Repeat calls with the same query may
// legitimately differ; the engine does not assume determinism.
type SearchFunc func(ctx context.Context, query string, limit int) ([]Candidate, error)

// Mode selects the scoring strategy.
type Mode string

const (
	ModeLexical  Mode = "lexical"
	ModeSemantic Mode = "semantic"
)

// Config holds externally validated matching parameters. A Threshold of 0
// is valid and accepts every candidate as matched; out-of-range values are
// replaced with the default.
type Config struct {
	Mode          Mode
	Threshold     float64
	PerQueryLimit int
	CandidateCap  int
}

const (
	defaultThreshold     = 0.6
	defaultPerQueryLimit = 10
	defaultCandidateCap  = 50
)

func (c Config) withDefaults() Config {
	if c.Mode == "" {
		c.Mode = ModeLexical
	}
	// Zero is a valid, maximally permissive threshold; only values
	// outside [0, 1] fall back to the default.
	if c.Threshold < 0 || c.Threshold > 1 {
		c.Threshold = defaultThreshold
	}
	if c.PerQueryLimit <= 0 {
		c.PerQueryLimit = defaultPerQueryLimit
	}
	if c.CandidateCap <= 0 {
		c.CandidateCap = defaultCandidateCap
	}
	return c
}
