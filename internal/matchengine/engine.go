package matchengine

import (
	"context"
	"log/slog"

	"github.com/tunebridge/tunebridge/internal/titleparse"
)

// ProgressFunc is invoked after each title is finalized, with the 1-based
// index of the completed title, the total count, and a short display label.
// It must return quickly and must not panic.
type ProgressFunc func(index, total int, label string)

// CancelFunc is polled between titles; returning true stops the run.
type CancelFunc func() bool

const progressLabelMax = 60

// MatchAll matches each title against the catalog in input order and
// returns one Result per completed title. Titles are processed
// sequentially; paced, serialized provider calls are what keep the remote
// side from throttling, so there is no parallel fan-out. When the
// cancellation predicate or ctx fires between titles the report carries the
// already-finalized results with Cancelled set; the in-flight title is
// discarded. No failure inside a single title escapes as an error: provider
// failures and encoder failures degrade to not_found or lexical scoring.
func MatchAll(ctx context.Context, titles []string, search SearchFunc, cfg Config, encoder EncoderSource, progress ProgressFunc, cancelled CancelFunc, log *slog.Logger) Report {
	cfg = cfg.withDefaults()
	scorer := NewScorer(cfg.Mode, encoder, log)

	report := Report{Results: make([]Result, 0, len(titles))}
	for i, title := range titles {
		if ctx.Err() != nil || (cancelled != nil && cancelled()) {
			log.Info("matching cancelled", "completed", len(report.Results), "total", len(titles))
			report.Cancelled = true
			return report
		}

		queries := titleparse.BuildQueries(title)
		// An empty title produces zero queries and resolves to not_found
		// without touching the provider.
		candidates := Collect(ctx, queries, search, cfg.PerQueryLimit, cfg.CandidateCap, log)
		if ctx.Err() != nil {
			// The context died while this title's provider calls were in
			// flight; whatever Collect gathered is not a real answer, so
			// the in-flight title is discarded rather than misreported as
			// not_found.
			log.Info("matching cancelled", "completed", len(report.Results), "total", len(titles))
			report.Cancelled = true
			return report
		}
		result := Classify(title, candidates, scorer, cfg.Threshold)
		report.Results = append(report.Results, result)

		switch result.Tier {
		case TierMatched:
			log.Info("matched", "title", title, "track", result.Candidate.Label(), "score", result.Score)
		case TierLowConfidence:
			log.Warn("low confidence match", "title", title, "track", result.Candidate.Label(), "score", result.Score)
		default:
			log.Warn("no match found", "title", title)
		}

		if progress != nil {
			progress(i+1, len(titles), shortLabel(title))
		}
	}

	return report
}

func shortLabel(title string) string {
	runes := []rune(title)
	if len(runes) <= progressLabelMax {
		return title
	}
	return string(runes[:progressLabelMax-1]) + "…"
}
