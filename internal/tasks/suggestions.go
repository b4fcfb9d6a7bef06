package tasks

import (
	"context"
	"errors"
	"fmt"
	"regexp"

	"github.com/desertthunder/spillover/internal/services"
	"github.com/desertthunder/spillover/internal/shared"
)

const (
	// maxSeeds bounds how many seed tracks a suggestion request may carry.
	maxSeeds = 2

	// maxSuggestions caps the suggestion result set.
	maxSuggestions = 10
)

// Strategy names accepted by NewSuggester.
const (
	StrategyArtistTop       = "artist-top"
	StrategyRecommendations = "recommendations"
)

var seedIDRegex = regexp.MustCompile(`^[a-zA-Z0-9]{22}$`)

// SuggestionStrategy produces suggested tracks from validated seed track IDs.
type SuggestionStrategy interface {
	Suggest(ctx context.Context, seedIDs []string, token string) ([]services.Track, error)
}

// Suggester validates seeds, delegates to a strategy, and dedupes the result.
type Suggester struct {
	strategy SuggestionStrategy
}

// NewSuggester selects a strategy by name. Unknown names fall back to the
// artist-top strategy.
func NewSuggester(catalog services.Catalog, strategy string) *Suggester {
	switch strategy {
	case StrategyRecommendations:
		return &Suggester{strategy: &RecommendationsStrategy{catalog: catalog}}
	default:
		return &Suggester{strategy: &ArtistTopStrategy{catalog: catalog}}
	}
}

// Suggest returns up to maxSuggestions tracks derived from the seeds. Seeds
// beyond maxSeeds are ignored; malformed seed IDs fail the request.
func (s *Suggester) Suggest(ctx context.Context, seedIDs []string, token string) ([]services.Track, error) {
	if len(seedIDs) == 0 {
		return nil, fmt.Errorf("%w: at least one seed track ID is required", shared.ErrInvalidInput)
	}

	if len(seedIDs) > maxSeeds {
		seedIDs = seedIDs[:maxSeeds]
	}

	for _, id := range seedIDs {
		if !seedIDRegex.MatchString(id) {
			return nil, fmt.Errorf("%w: malformed seed track ID %q", shared.ErrInvalidInput, id)
		}
	}

	tracks, err := s.strategy.Suggest(ctx, seedIDs, token)
	if err != nil {
		if errors.Is(err, shared.ErrUnauthorized) || errors.Is(err, shared.ErrTrackNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("%w: %v", shared.ErrUpstreamSearch, err)
	}

	return dedupeTracks(tracks, seedIDs, maxSuggestions), nil
}

// dedupeTracks removes duplicate and seed tracks, preserving order, capped
// at limit.
func dedupeTracks(tracks []services.Track, seedIDs []string, limit int) []services.Track {
	seen := make(map[string]bool, len(tracks))
	for _, id := range seedIDs {
		seen[id] = true
	}

	result := make([]services.Track, 0, limit)
	for _, track := range tracks {
		if seen[track.ID] {
			continue
		}
		seen[track.ID] = true

		result = append(result, track)
		if len(result) == limit {
			break
		}
	}

	return result
}

// ArtistTopStrategy suggests the seed artist's top tracks plus the top
// tracks of their closest related artist.
type ArtistTopStrategy struct {
	catalog services.Catalog
}

func (a *ArtistTopStrategy) Suggest(ctx context.Context, seedIDs []string, token string) ([]services.Track, error) {
	seed, err := a.catalog.GetTrack(ctx, seedIDs[0], token)
	if err != nil {
		return nil, err
	}

	if len(seed.Artists) == 0 {
		return []services.Track{}, nil
	}
	artistID := seed.Artists[0].ID

	tracks, err := a.catalog.ArtistTopTracks(ctx, artistID, token)
	if err != nil {
		return nil, err
	}

	related, err := a.catalog.RelatedArtists(ctx, artistID, token)
	if err != nil {
		return nil, err
	}

	if len(related) > 0 {
		more, err := a.catalog.ArtistTopTracks(ctx, related[0].ID, token)
		if err != nil {
			return nil, err
		}
		tracks = append(tracks, more...)
	}

	return tracks, nil
}

// RecommendationsStrategy delegates to the catalog's recommendation engine,
// seeding it with the track IDs directly.
type RecommendationsStrategy struct {
	catalog services.Catalog
}

func (r *RecommendationsStrategy) Suggest(ctx context.Context, seedIDs []string, token string) ([]services.Track, error) {
	return r.catalog.Recommendations(ctx, seedIDs, nil, token, maxSuggestions)
}
