package tasks

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/desertthunder/spillover/internal/services"
	"github.com/desertthunder/spillover/internal/shared"
	tu "github.com/desertthunder/spillover/internal/testing"
)

const (
	seedID    = "4uLU6hMCjMI75M1A2tKUQC"
	secondID  = "0DiWol3AO6WpXZgp0goxAV"
	relatedID = "relArtist"
)

func trackRange(prefix string, n int) []services.Track {
	tracks := make([]services.Track, n)
	for i := range tracks {
		tracks[i] = services.Track{ID: prefix + string(rune('a'+i)), Name: prefix}
	}
	return tracks
}

func TestSuggester(t *testing.T) {
	ctx := context.Background()

	t.Run("Rejects Missing Seeds", func(t *testing.T) {
		suggester := NewSuggester(&tu.MockCatalog{}, StrategyArtistTop)

		_, err := suggester.Suggest(ctx, nil, "token")
		if !errors.Is(err, shared.ErrInvalidInput) {
			t.Errorf("expected ErrInvalidInput, got %v", err)
		}
	})

	t.Run("Rejects Malformed Seed ID", func(t *testing.T) {
		suggester := NewSuggester(&tu.MockCatalog{}, StrategyArtistTop)

		for _, id := range []string{"short", "has spaces in the id!!", "id-with-hyphens-in-it-"} {
			_, err := suggester.Suggest(ctx, []string{id}, "token")
			if !errors.Is(err, shared.ErrInvalidInput) {
				t.Errorf("expected ErrInvalidInput for %q, got %v", id, err)
			}
		}
	})

	t.Run("Artist Top Strategy", func(t *testing.T) {
		catalog := &tu.MockCatalog{
			GetTrackFn: func(ctx context.Context, id, token string) (*services.Track, error) {
				return &services.Track{ID: id, Artists: []services.Artist{{ID: "seedArtist", Name: "Seed Artist"}}}, nil
			},
			ArtistTopTracksFn: func(ctx context.Context, artistID, token string) ([]services.Track, error) {
				switch artistID {
				case "seedArtist":
					return []services.Track{
						{ID: "top1", Name: "Top One"},
						{ID: seedID, Name: "The Seed Itself"},
						{ID: "top2", Name: "Top Two"},
					}, nil
				case relatedID:
					return []services.Track{
						{ID: "top1", Name: "Top One"},
						{ID: "rel1", Name: "Related One"},
					}, nil
				default:
					t.Errorf("unexpected artist %s", artistID)
					return nil, nil
				}
			},
			RelatedArtistsFn: func(ctx context.Context, artistID, token string) ([]services.Artist, error) {
				return []services.Artist{{ID: relatedID, Name: "Related Artist"}}, nil
			},
		}
		suggester := NewSuggester(catalog, StrategyArtistTop)

		tracks, err := suggester.Suggest(ctx, []string{seedID}, "token")
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}

		ids := make([]string, len(tracks))
		for i, track := range tracks {
			ids[i] = track.ID
		}

		got := strings.Join(ids, ",")
		if got != "top1,top2,rel1" {
			t.Errorf("expected deduped suggestions excluding seed, got %s", got)
		}
	})

	t.Run("Caps Suggestions", func(t *testing.T) {
		catalog := &tu.MockCatalog{
			GetTrackFn: func(ctx context.Context, id, token string) (*services.Track, error) {
				return &services.Track{ID: id, Artists: []services.Artist{{ID: "seedArtist"}}}, nil
			},
			ArtistTopTracksFn: func(ctx context.Context, artistID, token string) ([]services.Track, error) {
				return trackRange(artistID, 9), nil
			},
			RelatedArtistsFn: func(ctx context.Context, artistID, token string) ([]services.Artist, error) {
				return []services.Artist{{ID: relatedID}}, nil
			},
		}
		suggester := NewSuggester(catalog, StrategyArtistTop)

		tracks, err := suggester.Suggest(ctx, []string{seedID}, "token")
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}

		if len(tracks) != maxSuggestions {
			t.Errorf("expected %d suggestions, got %d", maxSuggestions, len(tracks))
		}
	})

	t.Run("Extra Seeds Ignored", func(t *testing.T) {
		suggester := NewSuggester(&tu.MockCatalog{}, StrategyRecommendations)

		// third seed is malformed but past the cap, so it never gets validated
		seeds := []string{seedID, secondID, "garbage"}
		if _, err := suggester.Suggest(ctx, seeds, "token"); err != nil {
			t.Errorf("expected seeds past the cap to be dropped, got %v", err)
		}
	})

	t.Run("Recommendations Strategy", func(t *testing.T) {
		catalog := &tu.MockCatalog{
			RecommendationsFn: func(ctx context.Context, seedTracks, seedArtists []string, token string, limit int) ([]services.Track, error) {
				if len(seedTracks) != 2 {
					t.Errorf("expected 2 seed tracks, got %v", seedTracks)
				}
				return []services.Track{{ID: "rec1"}, {ID: "rec1"}, {ID: "rec2"}}, nil
			},
		}
		suggester := NewSuggester(catalog, StrategyRecommendations)

		tracks, err := suggester.Suggest(ctx, []string{seedID, secondID}, "token")
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}

		if len(tracks) != 2 {
			t.Errorf("expected deduped recommendations, got %d", len(tracks))
		}
	})

	t.Run("Upstream Failure", func(t *testing.T) {
		catalog := &tu.MockCatalog{
			GetTrackFn: func(ctx context.Context, id, token string) (*services.Track, error) {
				return nil, errors.New("catalog down")
			},
		}
		suggester := NewSuggester(catalog, StrategyArtistTop)

		_, err := suggester.Suggest(ctx, []string{seedID}, "token")
		if !errors.Is(err, shared.ErrUpstreamSearch) {
			t.Errorf("expected ErrUpstreamSearch, got %v", err)
		}
	})
}
