package matchengine

import (
	"log/slog"
	"strings"

	"github.com/tunebridge/tunebridge/internal/semantic"
	"github.com/tunebridge/tunebridge/internal/titleparse"
)

// EncoderSource produces embedding vectors for semantic scoring. Encode
// reports ok=false when no vector is available (model not configured, load
// failed, or per-call failure); the scorer then falls back to lexical
// scoring for that call. The fallback is a hard requirement, not an
// optimization.
type EncoderSource interface {
	Encode(text string) ([]float32, bool)
}

// Scorer computes 0..1 match strength between title text and candidates
// using the configured mode.
type Scorer struct {
	mode    Mode
	encoder EncoderSource
	log     *slog.Logger
}

func NewScorer(mode Mode, encoder EncoderSource, log *slog.Logger) *Scorer {
	return &Scorer{mode: mode, encoder: encoder, log: log}
}

// compare scores two strings under the configured mode. Semantic scoring
// degrades silently to lexical whenever either side cannot be encoded.
func (s *Scorer) compare(a, b string) float64 {
	if s.mode == ModeSemantic && s.encoder != nil {
		va, okA := s.encoder.Encode(a)
		vb, okB := s.encoder.Encode(b)
		if okA && okB {
			return clampUnit(semantic.Cosine(va, vb))
		}
		s.log.Debug("embedding unavailable, scoring lexically", "a", a, "b", b)
	}
	return LexicalSimilarity(a, b)
}

// VerifyScore returns the maximum score across comparison granularities:
// the normalized title against the candidate's full label and against the
// track name alone, plus, when the title parses into artist and track, the
// parsed fields against their counterparts. The max absorbs titles where
// one field parses cleanly and the other is noisy.
func (s *Scorer) VerifyScore(rawTitle string, c Candidate) float64 {
	if c.Name == "" {
		// Malformed record; never aborts the batch.
		return 0
	}

	cleaned := titleparse.Normalize(rawTitle)
	label := c.Label()

	best := s.compare(cleaned, label)
	if v := s.compare(cleaned, c.Name); v > best {
		best = v
	}

	parsed := titleparse.Parse(rawTitle)
	if parsed.Artist != "" && parsed.Title != "" {
		if v := s.compare(parsed.Title, c.Name); v > best {
			best = v
		}
		if v := s.compare(parsed.Artist, strings.Join(c.Artists, " ")); v > best {
			best = v
		}
	}

	return best
}

// clampUnit clips a cosine value to [0, 1]. Unit-vector cosine lies in
// [-1, 1]; "less similar than orthogonal" carries no meaning for title
// matching, so negative values collapse to 0.
func clampUnit(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
