package testing

import (
	"context"

	"github.com/desertthunder/spillover/internal/services"
)

// MockCatalog is a test double for [services.Catalog]. Each method delegates
// to its func field when set, otherwise returns a zero result.
type MockCatalog struct {
	SearchTracksFn     func(ctx context.Context, query, token string, limit int) ([]services.Track, error)
	GetTrackFn         func(ctx context.Context, id, token string) (*services.Track, error)
	CheckSavedFn       func(ctx context.Context, ids []string, token string) ([]bool, error)
	ArtistTopTracksFn  func(ctx context.Context, artistID, token string) ([]services.Track, error)
	RelatedArtistsFn   func(ctx context.Context, artistID, token string) ([]services.Artist, error)
	RecommendationsFn  func(ctx context.Context, seedTracks, seedArtists []string, token string, limit int) ([]services.Track, error)
	CurrentlyPlayingFn func(ctx context.Context, token string) (*services.NowPlaying, error)
	UserPlaylistsFn    func(ctx context.Context, token string, limit int) ([]services.Playlist, error)
	AddToPlaylistFn    func(ctx context.Context, playlistID, trackURI, token string) error

	// SavedCalls counts CheckSavedTracks invocations so tests can assert
	// the empty-list short circuit.
	SavedCalls int
}

func (m *MockCatalog) SearchTracks(ctx context.Context, query, token string, limit int) ([]services.Track, error) {
	if m.SearchTracksFn != nil {
		return m.SearchTracksFn(ctx, query, token, limit)
	}
	return []services.Track{}, nil
}

func (m *MockCatalog) GetTrack(ctx context.Context, id, token string) (*services.Track, error) {
	if m.GetTrackFn != nil {
		return m.GetTrackFn(ctx, id, token)
	}
	return nil, nil
}

func (m *MockCatalog) CheckSavedTracks(ctx context.Context, ids []string, token string) ([]bool, error) {
	m.SavedCalls++
	if m.CheckSavedFn != nil {
		return m.CheckSavedFn(ctx, ids, token)
	}
	return make([]bool, len(ids)), nil
}

func (m *MockCatalog) ArtistTopTracks(ctx context.Context, artistID, token string) ([]services.Track, error) {
	if m.ArtistTopTracksFn != nil {
		return m.ArtistTopTracksFn(ctx, artistID, token)
	}
	return []services.Track{}, nil
}

func (m *MockCatalog) RelatedArtists(ctx context.Context, artistID, token string) ([]services.Artist, error) {
	if m.RelatedArtistsFn != nil {
		return m.RelatedArtistsFn(ctx, artistID, token)
	}
	return []services.Artist{}, nil
}

func (m *MockCatalog) Recommendations(ctx context.Context, seedTracks, seedArtists []string, token string, limit int) ([]services.Track, error) {
	if m.RecommendationsFn != nil {
		return m.RecommendationsFn(ctx, seedTracks, seedArtists, token, limit)
	}
	return []services.Track{}, nil
}

func (m *MockCatalog) CurrentlyPlaying(ctx context.Context, token string) (*services.NowPlaying, error) {
	if m.CurrentlyPlayingFn != nil {
		return m.CurrentlyPlayingFn(ctx, token)
	}
	return nil, nil
}

func (m *MockCatalog) UserPlaylists(ctx context.Context, token string, limit int) ([]services.Playlist, error) {
	if m.UserPlaylistsFn != nil {
		return m.UserPlaylistsFn(ctx, token, limit)
	}
	return []services.Playlist{}, nil
}

func (m *MockCatalog) AddToPlaylist(ctx context.Context, playlistID, trackURI, token string) error {
	if m.AddToPlaylistFn != nil {
		return m.AddToPlaylistFn(ctx, playlistID, trackURI, token)
	}
	return nil
}

// MockTitleLookup is a test double for [services.TitleLookup].
type MockTitleLookup struct {
	GetTitleFn func(ctx context.Context, videoID string) (string, error)
}

func (m *MockTitleLookup) GetTitle(ctx context.Context, videoID string) (string, error) {
	if m.GetTitleFn != nil {
		return m.GetTitleFn(ctx, videoID)
	}
	return "", nil
}
