package services

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"golang.org/x/oauth2"

	"github.com/desertthunder/spillover/internal/shared"
)

const spotifyAPIBase = "https://api.spotify.com/v1"

// Scopes requested during the authorization code flow. Playback read covers
// now-playing, library read covers the saved-track annotation, and the
// playlist scopes cover listing and appending.
var spotifyScopes = []string{
	"user-read-currently-playing",
	"user-read-playback-state",
	"user-library-read",
	"playlist-read-private",
	"playlist-modify-public",
	"playlist-modify-private",
}

// NewSpotifyOAuthConfig builds the oauth2 configuration for the Spotify
// authorization code flow.
func NewSpotifyOAuthConfig(clientID, clientSecret, redirectURI string) *oauth2.Config {
	return &oauth2.Config{
		ClientID:     clientID,
		ClientSecret: clientSecret,
		RedirectURL:  redirectURI,
		Scopes:       spotifyScopes,
		Endpoint: oauth2.Endpoint{
			AuthURL:  "https://accounts.spotify.com/authorize",
			TokenURL: "https://accounts.spotify.com/api/token",
		},
	}
}

// SpotifyClient implements Catalog against the Spotify Web API.
type SpotifyClient struct {
	baseURL string
	client  *http.Client
}

// NewSpotifyClient builds a client. A nil httpClient falls back to
// http.DefaultClient.
func NewSpotifyClient(httpClient *http.Client) *SpotifyClient {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	return &SpotifyClient{baseURL: spotifyAPIBase, client: httpClient}
}

// doRequest performs an authenticated API call and decodes the JSON response
// into result when result is non-nil.
func (s *SpotifyClient) doRequest(ctx context.Context, method, endpoint, token string, body io.Reader, result any) error {
	req, err := http.NewRequestWithContext(ctx, method, s.baseURL+endpoint, body)
	if err != nil {
		return fmt.Errorf("%w: %v", shared.ErrAPIRequest, err)
	}

	req.Header.Set("Authorization", "Bearer "+token)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := s.client.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", shared.ErrAPIRequest, err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden:
		return fmt.Errorf("%w: spotify returned %d", shared.ErrUnauthorized, resp.StatusCode)
	case resp.StatusCode == http.StatusNotFound:
		return fmt.Errorf("%w: %s", shared.ErrTrackNotFound, endpoint)
	case resp.StatusCode < 200 || resp.StatusCode >= 300:
		data, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("%w: spotify returned %d: %s", shared.ErrAPIRequest, resp.StatusCode, strings.TrimSpace(string(data)))
	}

	if result == nil || resp.StatusCode == http.StatusNoContent {
		return nil
	}

	if err := json.NewDecoder(resp.Body).Decode(result); err != nil {
		return fmt.Errorf("%w: decoding response: %v", shared.ErrAPIRequest, err)
	}

	return nil
}

type searchResponse struct {
	Tracks struct {
		Items []Track `json:"items"`
	} `json:"tracks"`
}

// SearchTracks searches the catalog for tracks, capped at limit.
func (s *SpotifyClient) SearchTracks(ctx context.Context, query, token string, limit int) ([]Track, error) {
	params := url.Values{}
	params.Set("q", query)
	params.Set("type", "track")
	params.Set("limit", fmt.Sprintf("%d", limit))

	var result searchResponse
	if err := s.doRequest(ctx, http.MethodGet, "/search?"+params.Encode(), token, nil, &result); err != nil {
		return nil, fmt.Errorf("searching tracks: %w", err)
	}

	return result.Tracks.Items, nil
}

// GetTrack fetches a single track by ID.
func (s *SpotifyClient) GetTrack(ctx context.Context, id, token string) (*Track, error) {
	var track Track
	if err := s.doRequest(ctx, http.MethodGet, "/tracks/"+id, token, nil, &track); err != nil {
		return nil, fmt.Errorf("fetching track %s: %w", id, err)
	}

	return &track, nil
}

// CheckSavedTracks reports library membership per ID. An empty input returns
// an empty slice without touching the API.
func (s *SpotifyClient) CheckSavedTracks(ctx context.Context, ids []string, token string) ([]bool, error) {
	if len(ids) == 0 {
		return []bool{}, nil
	}

	var saved []bool
	endpoint := "/me/tracks/contains?ids=" + url.QueryEscape(strings.Join(ids, ","))
	if err := s.doRequest(ctx, http.MethodGet, endpoint, token, nil, &saved); err != nil {
		return nil, fmt.Errorf("checking saved tracks: %w", err)
	}

	return saved, nil
}

type topTracksResponse struct {
	Tracks []Track `json:"tracks"`
}

// ArtistTopTracks fetches an artist's most popular tracks.
func (s *SpotifyClient) ArtistTopTracks(ctx context.Context, artistID, token string) ([]Track, error) {
	var result topTracksResponse
	if err := s.doRequest(ctx, http.MethodGet, "/artists/"+artistID+"/top-tracks?market=from_token", token, nil, &result); err != nil {
		return nil, fmt.Errorf("fetching top tracks for %s: %w", artistID, err)
	}

	return result.Tracks, nil
}

type relatedArtistsResponse struct {
	Artists []Artist `json:"artists"`
}

// RelatedArtists fetches artists similar to the given artist.
func (s *SpotifyClient) RelatedArtists(ctx context.Context, artistID, token string) ([]Artist, error) {
	var result relatedArtistsResponse
	if err := s.doRequest(ctx, http.MethodGet, "/artists/"+artistID+"/related-artists", token, nil, &result); err != nil {
		return nil, fmt.Errorf("fetching related artists for %s: %w", artistID, err)
	}

	return result.Artists, nil
}

type recommendationsResponse struct {
	Tracks []Track `json:"tracks"`
}

// Recommendations fetches recommended tracks for the given seeds.
func (s *SpotifyClient) Recommendations(ctx context.Context, seedTracks, seedArtists []string, token string, limit int) ([]Track, error) {
	params := url.Values{}
	if len(seedTracks) > 0 {
		params.Set("seed_tracks", strings.Join(seedTracks, ","))
	}
	if len(seedArtists) > 0 {
		params.Set("seed_artists", strings.Join(seedArtists, ","))
	}
	params.Set("limit", fmt.Sprintf("%d", limit))

	var result recommendationsResponse
	if err := s.doRequest(ctx, http.MethodGet, "/recommendations?"+params.Encode(), token, nil, &result); err != nil {
		return nil, fmt.Errorf("fetching recommendations: %w", err)
	}

	return result.Tracks, nil
}

// CurrentlyPlaying fetches the user's playback state. A 204 from the API
// (nothing playing) yields nil.
func (s *SpotifyClient) CurrentlyPlaying(ctx context.Context, token string) (*NowPlaying, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.baseURL+"/me/player/currently-playing", nil)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", shared.ErrAPIRequest, err)
	}
	req.Header.Set("Authorization", "Bearer "+token)

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", shared.ErrAPIRequest, err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusNoContent:
		return nil, nil
	case resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden:
		return nil, fmt.Errorf("%w: spotify returned %d", shared.ErrUnauthorized, resp.StatusCode)
	case resp.StatusCode < 200 || resp.StatusCode >= 300:
		return nil, fmt.Errorf("%w: spotify returned %d", shared.ErrAPIRequest, resp.StatusCode)
	}

	var playing NowPlaying
	if err := json.NewDecoder(resp.Body).Decode(&playing); err != nil {
		return nil, fmt.Errorf("%w: decoding playback state: %v", shared.ErrAPIRequest, err)
	}

	return &playing, nil
}

type playlistsResponse struct {
	Items []struct {
		ID     string  `json:"id"`
		Name   string  `json:"name"`
		Images []Image `json:"images"`
		Owner  struct {
			DisplayName string `json:"display_name"`
		} `json:"owner"`
		Tracks struct {
			Total int `json:"total"`
		} `json:"tracks"`
	} `json:"items"`
}

// UserPlaylists fetches the first page of the user's playlists.
func (s *SpotifyClient) UserPlaylists(ctx context.Context, token string, limit int) ([]Playlist, error) {
	var result playlistsResponse
	endpoint := fmt.Sprintf("/me/playlists?limit=%d", limit)
	if err := s.doRequest(ctx, http.MethodGet, endpoint, token, nil, &result); err != nil {
		return nil, fmt.Errorf("fetching playlists: %w", err)
	}

	playlists := make([]Playlist, len(result.Items))
	for i, item := range result.Items {
		playlists[i] = Playlist{
			ID:         item.ID,
			Name:       item.Name,
			TrackCount: item.Tracks.Total,
			Images:     item.Images,
			Owner:      item.Owner.DisplayName,
		}
	}

	return playlists, nil
}

// AddToPlaylist appends a track URI to a playlist.
func (s *SpotifyClient) AddToPlaylist(ctx context.Context, playlistID, trackURI, token string) error {
	payload, err := json.Marshal(map[string][]string{"uris": {trackURI}})
	if err != nil {
		return fmt.Errorf("%w: encoding payload: %v", shared.ErrAPIRequest, err)
	}

	endpoint := "/playlists/" + playlistID + "/tracks"
	if err := s.doRequest(ctx, http.MethodPost, endpoint, token, strings.NewReader(string(payload)), nil); err != nil {
		return fmt.Errorf("adding track to playlist %s: %w", playlistID, err)
	}

	return nil
}
