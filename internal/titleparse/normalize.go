// Package titleparse turns noisy, human-authored video titles into forms
// that are usable as catalog search input: a cleaned display title, a
// best-effort (artist, track) split, and an ordered list of search queries.
package titleparse

import (
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/text/unicode/norm"
)

var (
	reBracketed     = regexp.MustCompile(`\[[^\]]*\]`)
	reParenthesized = regexp.MustCompile(`\([^)]*\)`)
	reMultiSpace    = regexp.MustCompile(`\s+`)

	// Feature credits keep their trailing dot out of any word boundary, so
	// they get their own pattern.
	reFeatureCredit = regexp.MustCompile(`(?i)\b(?:ft|feat)\.`)

	reNoisePhrase = buildNoiseRegexp()

	separatorReplacer = strings.NewReplacer("|", "-", "•", "-", "●", "-")
)

// noisePhrases are uploader clutter removed as whole-word, case-insensitive
// matches. The list is a tuning constant, not a parsing rule.
var noisePhrases = []string{
	"official music video",
	"official video",
	"official audio",
	"music video",
	"lyric video",
	"full album",
	"full song",
	"featuring",
	"lyrics",
	"official",
	"original",
	"explicit",
	"remastered",
	"audio",
	"video",
	"1080p",
	"720p",
	"4k",
	"hd",
	"hq",
}

func buildNoiseRegexp() *regexp.Regexp {
	quoted := make([]string, 0, len(noisePhrases))
	for _, p := range noisePhrases {
		quoted = append(quoted, regexp.QuoteMeta(p))
	}
	return regexp.MustCompile(`(?i)\b(?:` + strings.Join(quoted, "|") + `)\b`)
}

// Normalize strips uploader clutter from a raw video title: bracketed and
// parenthesized spans (with their contents), known noise phrases, and pipe
// or bullet separators, then collapses whitespace. Idempotent and safe on
// any input; empty in, empty out.
func Normalize(raw string) string {
	s := reBracketed.ReplaceAllString(raw, "")
	s = reParenthesized.ReplaceAllString(s, "")
	s = reNoisePhrase.ReplaceAllString(s, "")
	s = reFeatureCredit.ReplaceAllString(s, "")
	s = separatorReplacer.Replace(s)
	s = reMultiSpace.ReplaceAllString(s, " ")
	return strings.TrimSpace(s)
}

// stripDiacritics removes combining marks after NFD decomposition.
func stripDiacritics(s string) string {
	decomp := norm.NFD.String(s)
	var b strings.Builder
	b.Grow(len(decomp))
	for _, r := range decomp {
		if unicode.Is(unicode.Mn, r) {
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}

// CompareKey folds a string for similarity comparison: NFKC to collapse
// width/compatibility forms, diacritics dropped (é -> e, ō -> o), then
// lowercased. Unlike Normalize it does not remove any words.
func CompareKey(s string) string {
	s = norm.NFKC.String(s)
	s = stripDiacritics(s)
	s = strings.ToLower(s)
	s = reMultiSpace.ReplaceAllString(s, " ")
	return strings.TrimSpace(s)
}
