// package tasks implements the resolution pipelines that sit between the
// transport layer and the external catalog.
package tasks

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/log"

	"github.com/desertthunder/spillover/internal/links"
	"github.com/desertthunder/spillover/internal/match"
	"github.com/desertthunder/spillover/internal/services"
	"github.com/desertthunder/spillover/internal/shared"
)

// searchLimit caps how many candidates a single resolution returns.
const searchLimit = 10

// ResolvedTrack is a catalog candidate annotated with resolution metadata.
// Confidence is nil for direct-ID lookups, which have nothing to score.
type ResolvedTrack struct {
	services.Track
	Confidence *match.Score `json:"confidence,omitempty"`
	IsLiked    bool         `json:"isLiked"`
}

// ResolutionResult is the outcome of resolving one link or query.
// SearchQuery is nil when the link addressed a catalog record directly.
type ResolutionResult struct {
	Tracks      []ResolvedTrack `json:"tracks"`
	Source      links.Platform  `json:"source"`
	SearchQuery *string         `json:"searchQuery"`
}

// Importer resolves arbitrary music links to ranked catalog candidates.
type Importer struct {
	catalog services.Catalog
	titles  services.TitleLookup
	scorer  *match.Scorer
	logger  *log.Logger
}

// NewImporter builds an Importer. A nil scorer falls back to the default
// weights and thresholds.
func NewImporter(catalog services.Catalog, titles services.TitleLookup, scorer *match.Scorer, logger *log.Logger) *Importer {
	if scorer == nil {
		defaults := match.NewScorer()
		scorer = &defaults
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Importer{catalog: catalog, titles: titles, scorer: scorer, logger: logger}
}

// ResolveImport classifies rawURL, derives a search query, and returns
// scored candidates. Direct catalog links short-circuit to a single
// unscored record.
func (i *Importer) ResolveImport(ctx context.Context, rawURL, token string) (*ResolutionResult, error) {
	parsed := links.Parse(rawURL)
	if parsed == nil {
		return nil, fmt.Errorf("%w: supported platforms are %s",
			shared.ErrUnsupportedLink, strings.Join(links.SupportedPlatforms(), ", "))
	}

	if parsed.IsCatalogDirect() {
		return i.resolveDirect(ctx, parsed, token)
	}

	query := parsed.Query
	if parsed.IsVideo() {
		title, err := i.titles.GetTitle(ctx, parsed.Query)
		if err != nil {
			if errors.Is(err, shared.ErrTitleLookup) {
				return nil, err
			}
			return nil, fmt.Errorf("%w: %v", shared.ErrTitleLookup, err)
		}
		query = match.CleanTitle(title)
	}

	return i.resolveSearch(ctx, parsed.Platform, query, token)
}

// ResolveQuery runs the search half of the pipeline on a typed query,
// skipping link classification. Used by the search entry points.
func (i *Importer) ResolveQuery(ctx context.Context, query, token string) (*ResolutionResult, error) {
	if strings.TrimSpace(query) == "" {
		return nil, fmt.Errorf("%w: search query is required", shared.ErrInvalidInput)
	}
	return i.resolveSearch(ctx, links.PlatformSpotify, query, token)
}

func (i *Importer) resolveDirect(ctx context.Context, parsed *links.ParsedLink, token string) (*ResolutionResult, error) {
	track, err := i.catalog.GetTrack(ctx, parsed.Query, token)
	if err != nil {
		if errors.Is(err, shared.ErrTrackNotFound) || errors.Is(err, shared.ErrUnauthorized) {
			return nil, err
		}
		return nil, fmt.Errorf("%w: %v", shared.ErrUpstreamSearch, err)
	}

	resolved := []ResolvedTrack{{Track: *track}}
	i.annotateSaved(ctx, resolved, token)

	return &ResolutionResult{Tracks: resolved, Source: parsed.Platform, SearchQuery: nil}, nil
}

func (i *Importer) resolveSearch(ctx context.Context, source links.Platform, query, token string) (*ResolutionResult, error) {
	artist, title := match.SplitArtistTitle(query)

	candidates, err := i.catalog.SearchTracks(ctx, query, token, searchLimit)
	if err != nil {
		if errors.Is(err, shared.ErrUnauthorized) {
			return nil, err
		}
		return nil, fmt.Errorf("%w: %v", shared.ErrUpstreamSearch, err)
	}

	resolved := make([]ResolvedTrack, len(candidates))
	for idx := range candidates {
		candidate := candidates[idx]
		score := i.scorer.Calculate(title, artist, candidate.Name, candidate.ArtistNames())
		resolved[idx] = ResolvedTrack{Track: candidate, Confidence: &score}
	}

	i.annotateSaved(ctx, resolved, token)

	return &ResolutionResult{Tracks: resolved, Source: source, SearchQuery: &query}, nil
}

// annotateSaved fills each track's IsLiked flag. Failures leave the flags
// false rather than failing the resolution.
func (i *Importer) annotateSaved(ctx context.Context, tracks []ResolvedTrack, token string) {
	if len(tracks) == 0 {
		return
	}

	ids := make([]string, len(tracks))
	for idx := range tracks {
		ids[idx] = tracks[idx].ID
	}

	saved, err := i.catalog.CheckSavedTracks(ctx, ids, token)
	if err != nil {
		i.logger.Warn("saved-track lookup failed, defaulting to unsaved", "error", err)
		return
	}

	for idx := range tracks {
		if idx < len(saved) {
			tracks[idx].IsLiked = saved[idx]
		}
	}
}
