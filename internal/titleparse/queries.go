package titleparse

import "fmt"

// BuildQueries returns search query variations for a title, ordered by
// decreasing specificity and deduplicated by exact string equality:
//
//	1. "artist title" when both parsed
//	2. field-scoped query using the catalog's artist:/track: syntax
//	3. normalized title
//	4. original title verbatim
//
// The result is empty only when the raw title itself is empty; callers must
// handle zero queries.
func BuildQueries(raw string) []string {
	queries := make([]string, 0, 4)
	seen := make(map[string]struct{}, 4)

	add := func(q string) {
		if q == "" {
			return
		}
		if _, dup := seen[q]; dup {
			return
		}
		seen[q] = struct{}{}
		queries = append(queries, q)
	}

	parsed := Parse(raw)
	if parsed.Artist != "" && parsed.Title != "" {
		add(parsed.Artist + " " + parsed.Title)
		add(fmt.Sprintf("artist:%q track:%q", parsed.Artist, parsed.Title))
	}

	add(Normalize(raw))
	add(raw)

	return queries
}
