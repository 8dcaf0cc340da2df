package matchengine

import (
	"context"
	"log/slog"
)

// Collect drives the search provider with each query in order and merges
// the results into a single candidate set, deduplicated by ID with first
// occurrence winning. The cap is advisory: an in-flight query's results are
// kept in full, and no further queries are issued once the set holds at
// least cap distinct candidates. A failed query contributes zero candidates
// and does not stop the remaining queries.
func Collect(ctx context.Context, queries []string, search SearchFunc, perQueryLimit, totalCap int, log *slog.Logger) []Candidate {
	var out []Candidate
	seen := make(map[string]struct{})

	for _, query := range queries {
		if len(out) >= totalCap {
			break
		}

		candidates, err := search(ctx, query, perQueryLimit)
		if err != nil {
			log.Warn("search query failed", "query", query, "error", err)
			continue
		}

		for _, c := range candidates {
			if c.ID == "" {
				continue
			}
			if _, dup := seen[c.ID]; dup {
				continue
			}
			seen[c.ID] = struct{}{}
			out = append(out, c)
		}
	}

	return out
}
