// package services defines clients for the external collaborators: the
// Spotify catalog and the YouTube oEmbed title lookup.
package services

import "context"

// Catalog defines the read/write operations spillover needs from the music
// catalog. Implementations receive the caller's bearer token per call; the
// core never owns or refreshes tokens.
type Catalog interface {
	// SearchTracks searches the catalog for tracks matching query, capped at limit.
	SearchTracks(ctx context.Context, query, token string, limit int) ([]Track, error)

	// GetTrack fetches a single track by its catalog ID.
	GetTrack(ctx context.Context, id, token string) (*Track, error)

	// CheckSavedTracks reports, per ID, whether the track is in the user's
	// library. An empty input yields an empty result without an upstream call.
	CheckSavedTracks(ctx context.Context, ids []string, token string) ([]bool, error)

	// ArtistTopTracks fetches an artist's most popular tracks.
	ArtistTopTracks(ctx context.Context, artistID, token string) ([]Track, error)

	// RelatedArtists fetches artists similar to the given artist.
	RelatedArtists(ctx context.Context, artistID, token string) ([]Artist, error)

	// Recommendations fetches recommended tracks for the given seeds.
	Recommendations(ctx context.Context, seedTracks, seedArtists []string, token string, limit int) ([]Track, error)

	// CurrentlyPlaying fetches the user's playback state; nil when nothing is playing.
	CurrentlyPlaying(ctx context.Context, token string) (*NowPlaying, error)

	// UserPlaylists fetches the user's playlists (first page).
	UserPlaylists(ctx context.Context, token string, limit int) ([]Playlist, error)

	// AddToPlaylist appends a track URI to a playlist.
	AddToPlaylist(ctx context.Context, playlistID, trackURI, token string) error
}

// TitleLookup resolves a video ID to its human title.
type TitleLookup interface {
	// GetTitle returns the video's title, bounded by the client's timeout.
	GetTitle(ctx context.Context, videoID string) (string, error)
}

// Image represents an image resource.
type Image struct {
	URL    string `json:"url"`
	Height int    `json:"height"`
	Width  int    `json:"width"`
}

// Artist represents a catalog artist.
type Artist struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	URI  string `json:"uri,omitempty"`
}

// Album represents a catalog album.
type Album struct {
	ID     string  `json:"id"`
	Name   string  `json:"name"`
	Images []Image `json:"images"`
}

// Track represents a catalog track.
type Track struct {
	ID         string   `json:"id"`
	Name       string   `json:"name"`
	Artists    []Artist `json:"artists"`
	Album      Album    `json:"album"`
	DurationMS int      `json:"duration_ms"`
	Explicit   bool     `json:"explicit"`
	Popularity int      `json:"popularity"`
	PreviewURL string   `json:"preview_url,omitempty"`
	URI        string   `json:"uri"`
}

// ArtistNames returns the track's artist names in credit order.
func (t *Track) ArtistNames() []string {
	names := make([]string, len(t.Artists))
	for i, a := range t.Artists {
		names[i] = a.Name
	}
	return names
}

// NowPlaying represents the user's current playback state.
type NowPlaying struct {
	IsPlaying            bool   `json:"is_playing"`
	ProgressMS           int    `json:"progress_ms"`
	CurrentlyPlayingType string `json:"currently_playing_type"`
	Item                 *Track `json:"item"`
}

// Playlist represents a catalog playlist the user can add tracks to.
type Playlist struct {
	ID         string  `json:"id"`
	Name       string  `json:"name"`
	TrackCount int     `json:"track_count"`
	Images     []Image `json:"images,omitempty"`
	Owner      string  `json:"owner,omitempty"`
}
