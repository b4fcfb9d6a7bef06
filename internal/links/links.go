// package links classifies music service URLs and extracts the identifier or
// search phrase needed to look up the referenced track.
package links

import (
	"regexp"
	"strings"
)

// Platform identifies the music or video service a link points at.
type Platform string

const (
	PlatformSpotify    Platform = "spotify"
	PlatformYouTube    Platform = "youtube"
	PlatformSoundCloud Platform = "soundcloud"
	PlatformAppleMusic Platform = "applemusic"
	PlatformTidal      Platform = "tidal"
	PlatformDeezer     Platform = "deezer"
)

// ParsedLink is the result of classifying a URL. Query holds a catalog
// track ID for catalog-direct platforms, a video ID for video platforms,
// and a raw search phrase otherwise.
type ParsedLink struct {
	Platform Platform
	Query    string
}

// IsVideo reports whether the link requires a title lookup before search.
func (p *ParsedLink) IsVideo() bool {
	return p.Platform == PlatformYouTube
}

// IsCatalogDirect reports whether Query is a catalog track ID that can be
// fetched without searching.
func (p *ParsedLink) IsCatalogDirect() bool {
	return p.Platform == PlatformSpotify
}

// pattern couples a platform tag with its matcher and extractor. Patterns
// are evaluated in order; the first match wins.
type pattern struct {
	platform Platform
	re       *regexp.Regexp
	extract  func(m []string) string
}

var patterns = []pattern{
	// Catalog-direct: URL embeds a stable track ID.
	{
		platform: PlatformSpotify,
		re:       regexp.MustCompile(`(?i)^https?://open\.spotify\.com/(?:intl-[a-z]+/)?track/([a-zA-Z0-9]{22})`),
		extract:  func(m []string) string { return m[1] },
	},
	// Video platforms: URL embeds a video ID that must be resolved to a title.
	{
		platform: PlatformYouTube,
		re:       regexp.MustCompile(`(?i)^https?://(?:www\.|m\.|music\.)?youtube\.com/watch\?.*v=([a-zA-Z0-9_-]{11})`),
		extract:  func(m []string) string { return m[1] },
	},
	{
		platform: PlatformYouTube,
		re:       regexp.MustCompile(`(?i)^https?://youtu\.be/([a-zA-Z0-9_-]+)`),
		extract:  func(m []string) string { return m[1] },
	},
	{
		platform: PlatformYouTube,
		re:       regexp.MustCompile(`(?i)^https?://(?:www\.)?youtube\.com/shorts/([a-zA-Z0-9_-]{11})`),
		extract:  func(m []string) string { return m[1] },
	},
	// Phrase platforms: no stable per-track ID reachable from the URL, so
	// the path slugs become the search phrase.
	{
		platform: PlatformSoundCloud,
		re:       regexp.MustCompile(`(?i)^https?://(?:www\.)?soundcloud\.com/([^/?#]+)/([^/?#]+)`),
		extract:  func(m []string) string { return slugPhrase(m[1] + " " + m[2]) },
	},
	{
		platform: PlatformAppleMusic,
		re:       regexp.MustCompile(`(?i)^https?://music\.apple\.com/[a-z]{2}/(?:song|album)/([^/?#]+)`),
		extract:  func(m []string) string { return slugPhrase(m[1]) },
	},
	{
		platform: PlatformTidal,
		re:       regexp.MustCompile(`(?i)^https?://(?:listen\.)?tidal\.com/(?:browse/)?track/(\d+)`),
		extract:  func(m []string) string { return m[1] },
	},
	{
		platform: PlatformDeezer,
		re:       regexp.MustCompile(`(?i)^https?://(?:www\.)?deezer\.com/(?:[a-z]{2}/)?track/(\d+)`),
		extract:  func(m []string) string { return m[1] },
	},
}

// Parse classifies a URL against the known platform patterns. Returns nil
// when the URL matches no supported platform. Pure classification; no I/O.
func Parse(rawURL string) *ParsedLink {
	rawURL = strings.TrimSpace(rawURL)
	if rawURL == "" {
		return nil
	}

	for _, p := range patterns {
		if m := p.re.FindStringSubmatch(rawURL); m != nil {
			return &ParsedLink{Platform: p.platform, Query: p.extract(m)}
		}
	}

	return nil
}

// SupportedPlatforms lists the platforms Parse recognizes, for error messages.
func SupportedPlatforms() []string {
	seen := make(map[Platform]bool, len(patterns))
	var out []string
	for _, p := range patterns {
		if !seen[p.platform] {
			seen[p.platform] = true
			out = append(out, string(p.platform))
		}
	}
	return out
}

// slugPhrase turns URL path slugs into a whitespace-separated search phrase.
func slugPhrase(slug string) string {
	slug = strings.ReplaceAll(slug, "-", " ")
	slug = strings.ReplaceAll(slug, "_", " ")
	return strings.Join(strings.Fields(slug), " ")
}
