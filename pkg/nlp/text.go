package nlp

import (
	"regexp"
	"strings"
)

const (
	// MaxTextLen bounds, in runes, what we are willing to send to the LLM.
	MaxTextLen = 10000
	// MinTextLen is the block heuristic, in runes: anything shorter after
	// collapsing is an interstitial or a bot wall, not a job posting.
	MinTextLen = 50

	truncationMarker = "... (truncated)"
)

var reSpaces = regexp.MustCompile(`\s+`)

// CollapseText flattens scraped page text for downstream extraction:
// whitespace runs become single spaces, the result is trimmed and capped at
// MaxTextLen (with a marker when cut). Returns ok=false when the collapsed
// text is under MinTextLen.
func CollapseText(raw string) (string, bool) {
	s := strings.ReplaceAll(raw, "\u00a0", " ")
	s = reSpaces.ReplaceAllString(s, " ")
	s = strings.TrimSpace(s)
	// Count and cut in runes: postings are often non-ASCII, and a byte cut
	// can split a rune, leaving invalid UTF-8 the database would reject.
	runes := []rune(s)
	if len(runes) > MaxTextLen {
		s = string(runes[:MaxTextLen]) + truncationMarker
	}
	if len(runes) < MinTextLen {
		return "", false
	}
	return s, true
}
