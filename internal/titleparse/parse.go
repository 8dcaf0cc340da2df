package titleparse

import (
	"regexp"
	"strings"
)

// Parsed is the best-effort artist/track split of a video title. Artist is
// empty when no recognized separator pattern matched; Title always carries
// a value and falls back to the normalized input.
type Parsed struct {
	Artist string
	Title  string
}

var (
	reByKeyword = regexp.MustCompile(`(?i)^(.+?)\s+by\s+(.+)$`)
	reQuoted    = regexp.MustCompile(`^(.+?)\s+["“”](.+?)["“”]`)
)

// Parse extracts an (artist, track) pair from a raw video title. Patterns
// are tried in fixed priority order against the normalized title, first
// match wins:
//
//	"Artist - Song"  hyphen with surrounding spaces
//	"Artist: Song"   colon with trailing space
//	"Song by Artist" case-insensitive "by" keyword
//	`Artist "Song"`  quoted second segment
func Parse(raw string) Parsed {
	cleaned := Normalize(raw)

	if artist, title, ok := strings.Cut(cleaned, " - "); ok {
		return Parsed{Artist: strings.TrimSpace(artist), Title: strings.TrimSpace(title)}
	}

	if artist, title, ok := strings.Cut(cleaned, ": "); ok {
		return Parsed{Artist: strings.TrimSpace(artist), Title: strings.TrimSpace(title)}
	}

	if m := reByKeyword.FindStringSubmatch(cleaned); m != nil {
		return Parsed{Artist: strings.TrimSpace(m[2]), Title: strings.TrimSpace(m[1])}
	}

	if m := reQuoted.FindStringSubmatch(cleaned); m != nil {
		return Parsed{Artist: strings.TrimSpace(m[1]), Title: strings.TrimSpace(m[2])}
	}

	return Parsed{Title: cleaned}
}
