// package match implements the fuzzy matching and confidence scoring used to
// compare noisy track references against catalog search results.
package match

import (
	"regexp"
	"strings"
)

var (
	// Marketing decorations appended to video/track titles, with or
	// without surrounding brackets: "(Official Video)", "[HD]", "remastered", etc.
	decorationRegex = regexp.MustCompile(`(?i)\s*[(\[]?(official\s*)?(music\s*)?(video|audio|lyrics?|visualizer|hd|4k|remaster(ed)?|remix|live|acoustic|version)[)\]]?\s*`)

	// Bracketed featured-artist clauses: "(feat. X)", "[ft. X]".
	bracketedFeatRegex = regexp.MustCompile(`(?i)\s*[(\[](feat\.?|ft\.?|featuring)\s*[^)\]]+[)\]]`)

	// Unbracketed featured-artist clauses run to the end of the title.
	trailingFeatRegex = regexp.MustCompile(`(?i)\s+(feat\.?|ft\.?|featuring)\s+.*$`)

	punctRegex      = regexp.MustCompile(`[^\p{L}\p{N}\s]`)
	whitespaceRegex = regexp.MustCompile(`\s+`)

	// Lighter vocabulary used when cleaning a title for a search query.
	queryDecorationRegex = regexp.MustCompile(`(?i)\s*[(\[]?(official\s*)?(music\s*)?(video|audio|lyrics?|visualizer|hd|4k)[)\]]?\s*`)
	queryFeatRegex       = regexp.MustCompile(`(?i)\s*(ft\.?|feat\.?)\s*`)
)

// Normalize canonicalizes a string for comparison: lower-cases, strips
// marketing decorations and featured-artist clauses, removes punctuation,
// and collapses whitespace. Idempotent; empty input yields "".
func Normalize(s string) string {
	s = strings.ToLower(s)
	s = decorationRegex.ReplaceAllString(s, " ")
	s = bracketedFeatRegex.ReplaceAllString(s, "")
	s = trailingFeatRegex.ReplaceAllString(s, "")
	s = punctRegex.ReplaceAllString(s, "")
	s = whitespaceRegex.ReplaceAllString(s, " ")
	return strings.TrimSpace(s)
}

// CleanTitle strips decorations and feat. markers from a video title while
// preserving case and separators, producing a human-readable search query:
// "Artist - Song (Official Video)" becomes "Artist - Song".
func CleanTitle(title string) string {
	title = queryDecorationRegex.ReplaceAllString(title, " ")
	title = queryFeatRegex.ReplaceAllString(title, " ")
	title = whitespaceRegex.ReplaceAllString(title, " ")
	return strings.TrimSpace(title)
}

// SplitArtistTitle splits a cleaned "Artist - Title" string into its parts.
// Returns empty artist when no separator is present.
func SplitArtistTitle(s string) (artist, title string) {
	if before, after, found := strings.Cut(s, " - "); found {
		return strings.TrimSpace(before), strings.TrimSpace(after)
	}
	return "", strings.TrimSpace(s)
}
