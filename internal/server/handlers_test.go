package server

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/desertthunder/spillover/internal/services"
	"github.com/desertthunder/spillover/internal/shared"
	"github.com/desertthunder/spillover/internal/tasks"
	tu "github.com/desertthunder/spillover/internal/testing"
)

func newTestAPI(t *testing.T, catalog *tu.MockCatalog, titles *tu.MockTitleLookup) *API {
	t.Helper()

	if catalog == nil {
		catalog = &tu.MockCatalog{}
	}
	if titles == nil {
		titles = &tu.MockTitleLookup{}
	}

	config := shared.DefaultConfig()
	importer := tasks.NewImporter(catalog, titles, nil, nil)
	suggester := tasks.NewSuggester(catalog, config.Suggestions.Strategy)

	return NewAPI(config, importer, suggester, catalog, nil, nil)
}

func doRequest(t *testing.T, api *API, method, path, body, token string) *httptest.ResponseRecorder {
	t.Helper()

	var reader *strings.Reader
	if body == "" {
		reader = strings.NewReader("")
	} else {
		reader = strings.NewReader(body)
	}

	r := httptest.NewRequest(method, path, reader)
	r.RemoteAddr = "192.0.2.10:4000"
	if token != "" {
		r.Header.Set("Authorization", "Bearer "+token)
	}

	rec := httptest.NewRecorder()
	api.Router().ServeHTTP(rec, r)
	return rec
}

func TestHealthEndpoint(t *testing.T) {
	api := newTestAPI(t, nil, nil)

	rec := doRequest(t, api, http.MethodGet, "/api/health", "", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var payload map[string]string
	if err := json.Unmarshal(rec.Body.Bytes(), &payload); err != nil {
		t.Fatalf("failed to decode payload: %v", err)
	}

	if payload["status"] != "ok" || payload["app"] != "spillover" || payload["version"] != "1.0.0" {
		t.Errorf("unexpected payload %v", payload)
	}

	if payload["timestamp"] == "" {
		t.Error("expected timestamp in payload")
	}

	if got := rec.Header().Get("Access-Control-Allow-Origin"); got != "*" {
		t.Errorf("expected permissive CORS header, got %q", got)
	}
}

func TestImportEndpoint(t *testing.T) {
	t.Run("Resolves Video Link", func(t *testing.T) {
		catalog := &tu.MockCatalog{
			SearchTracksFn: func(ctx context.Context, query, token string, limit int) ([]services.Track, error) {
				if token != "user-token" {
					t.Errorf("expected gated token to reach catalog, got %q", token)
				}
				return []services.Track{{ID: "t1", Name: "Song", Artists: []services.Artist{{Name: "Artist"}}}}, nil
			},
		}
		titles := &tu.MockTitleLookup{
			GetTitleFn: func(ctx context.Context, videoID string) (string, error) {
				return "Artist - Song (Official Video)", nil
			},
		}
		api := newTestAPI(t, catalog, titles)

		rec := doRequest(t, api, http.MethodPost, "/api/import-url",
			`{"url":"https://youtu.be/dQw4w9WgXcQ"}`, "user-token")
		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
		}

		var result tasks.ResolutionResult
		if err := json.Unmarshal(rec.Body.Bytes(), &result); err != nil {
			t.Fatalf("failed to decode result: %v", err)
		}

		if result.SearchQuery == nil || *result.SearchQuery != "Artist - Song" {
			t.Errorf("unexpected search query %v", result.SearchQuery)
		}

		if len(result.Tracks) != 1 || result.Tracks[0].Confidence == nil {
			t.Errorf("expected scored candidate, got %+v", result.Tracks)
		}
	})

	t.Run("Missing Body", func(t *testing.T) {
		api := newTestAPI(t, nil, nil)

		rec := doRequest(t, api, http.MethodPost, "/api/import-url", `{}`, "token")
		if rec.Code != http.StatusBadRequest {
			t.Errorf("expected 400, got %d", rec.Code)
		}
	})

	t.Run("Unsupported Link", func(t *testing.T) {
		api := newTestAPI(t, nil, nil)

		rec := doRequest(t, api, http.MethodPost, "/api/import-url",
			`{"url":"https://example.com/page"}`, "token")
		if rec.Code != http.StatusBadRequest {
			t.Errorf("expected 400, got %d", rec.Code)
		}

		if !strings.Contains(rec.Body.String(), "spotify") {
			t.Errorf("expected supported platform list in error, got %s", rec.Body.String())
		}
	})

	t.Run("Requires Token", func(t *testing.T) {
		api := newTestAPI(t, nil, nil)

		rec := doRequest(t, api, http.MethodPost, "/api/import-url",
			`{"url":"https://youtu.be/abc"}`, "")
		if rec.Code != http.StatusUnauthorized {
			t.Errorf("expected 401, got %d", rec.Code)
		}
	})

	t.Run("Rejects GET", func(t *testing.T) {
		api := newTestAPI(t, nil, nil)

		rec := doRequest(t, api, http.MethodGet, "/api/import-url", "", "token")
		if rec.Code != http.StatusMethodNotAllowed {
			t.Errorf("expected 405, got %d", rec.Code)
		}
	})
}

func TestPreflightRequests(t *testing.T) {
	api := newTestAPI(t, nil, nil)
	router := api.Router()

	paths := []string{"/api/import-url", "/api/playlists/add", "/api/now-playing", "/api/health"}

	for _, path := range paths {
		t.Run(path, func(t *testing.T) {
			r := httptest.NewRequest(http.MethodOptions, path, nil)
			r.Header.Set("Origin", "chrome-extension://abcdefghijklmnop")
			r.Header.Set("Access-Control-Request-Method", http.MethodPost)
			r.Header.Set("Access-Control-Request-Headers", "Authorization")

			rec := httptest.NewRecorder()
			router.ServeHTTP(rec, r)

			if rec.Code != http.StatusNoContent {
				t.Fatalf("expected 204, got %d: %s", rec.Code, rec.Body.String())
			}

			if got := rec.Header().Get("Access-Control-Allow-Origin"); got != "*" {
				t.Errorf("expected permissive origin, got %q", got)
			}

			if got := rec.Header().Get("Access-Control-Allow-Headers"); !strings.Contains(got, "Authorization") {
				t.Errorf("expected Authorization in allowed headers, got %q", got)
			}
		})
	}
}

func TestSuggestionsEndpoint(t *testing.T) {
	t.Run("Missing Seeds", func(t *testing.T) {
		api := newTestAPI(t, nil, nil)

		rec := doRequest(t, api, http.MethodGet, "/api/suggestions", "", "token")
		if rec.Code != http.StatusBadRequest {
			t.Errorf("expected 400, got %d", rec.Code)
		}
	})

	t.Run("Returns Tracks", func(t *testing.T) {
		catalog := &tu.MockCatalog{
			GetTrackFn: func(ctx context.Context, id, token string) (*services.Track, error) {
				return &services.Track{ID: id, Artists: []services.Artist{{ID: "a1"}}}, nil
			},
			ArtistTopTracksFn: func(ctx context.Context, artistID, token string) ([]services.Track, error) {
				return []services.Track{{ID: "top1", Name: "Top"}}, nil
			},
		}
		api := newTestAPI(t, catalog, nil)

		rec := doRequest(t, api, http.MethodGet,
			"/api/suggestions?seeds=4uLU6hMCjMI75M1A2tKUQC", "", "token")
		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
		}

		var payload struct {
			Tracks []services.Track `json:"tracks"`
		}
		if err := json.Unmarshal(rec.Body.Bytes(), &payload); err != nil {
			t.Fatalf("failed to decode payload: %v", err)
		}

		if len(payload.Tracks) != 1 || payload.Tracks[0].ID != "top1" {
			t.Errorf("unexpected tracks %+v", payload.Tracks)
		}
	})
}

func TestNowPlayingEndpoint(t *testing.T) {
	t.Run("Nothing Playing", func(t *testing.T) {
		api := newTestAPI(t, nil, nil)

		rec := doRequest(t, api, http.MethodGet, "/api/now-playing", "", "token")
		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", rec.Code)
		}

		var payload map[string]any
		json.Unmarshal(rec.Body.Bytes(), &payload)
		if playing, _ := payload["is_playing"].(bool); playing {
			t.Error("expected is_playing false")
		}
	})

	t.Run("Active Playback", func(t *testing.T) {
		catalog := &tu.MockCatalog{
			CurrentlyPlayingFn: func(ctx context.Context, token string) (*services.NowPlaying, error) {
				return &services.NowPlaying{IsPlaying: true, Item: &services.Track{ID: "t1", Name: "Playing"}}, nil
			},
			CheckSavedFn: func(ctx context.Context, ids []string, token string) ([]bool, error) {
				return []bool{true}, nil
			},
		}
		api := newTestAPI(t, catalog, nil)

		rec := doRequest(t, api, http.MethodGet, "/api/now-playing", "", "token")
		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", rec.Code)
		}

		var payload map[string]any
		if err := json.Unmarshal(rec.Body.Bytes(), &payload); err != nil {
			t.Fatalf("failed to decode payload: %v", err)
		}

		if playing, _ := payload["is_playing"].(bool); !playing {
			t.Error("expected is_playing true")
		}

		if liked, _ := payload["is_liked"].(bool); !liked {
			t.Error("expected saved flag on playing track")
		}

		if !strings.Contains(rec.Body.String(), "Playing") {
			t.Errorf("expected track in payload, got %s", rec.Body.String())
		}
	})

	t.Run("Non-Track Playback", func(t *testing.T) {
		catalog := &tu.MockCatalog{
			CurrentlyPlayingFn: func(ctx context.Context, token string) (*services.NowPlaying, error) {
				return &services.NowPlaying{IsPlaying: true, CurrentlyPlayingType: "episode"}, nil
			},
		}
		api := newTestAPI(t, catalog, nil)

		rec := doRequest(t, api, http.MethodGet, "/api/now-playing", "", "token")
		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", rec.Code)
		}

		var payload map[string]any
		json.Unmarshal(rec.Body.Bytes(), &payload)
		if playing, _ := payload["is_playing"].(bool); playing {
			t.Error("expected is_playing false for non-track playback")
		}
	})
}

func TestPlaylistEndpoints(t *testing.T) {
	t.Run("List", func(t *testing.T) {
		catalog := &tu.MockCatalog{
			UserPlaylistsFn: func(ctx context.Context, token string, limit int) ([]services.Playlist, error) {
				return []services.Playlist{{ID: "p1", Name: "Mix"}}, nil
			},
		}
		api := newTestAPI(t, catalog, nil)

		rec := doRequest(t, api, http.MethodGet, "/api/playlists", "", "token")
		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", rec.Code)
		}

		if !strings.Contains(rec.Body.String(), "Mix") {
			t.Errorf("expected playlist in payload, got %s", rec.Body.String())
		}
	})

	t.Run("Add Requires Fields", func(t *testing.T) {
		api := newTestAPI(t, nil, nil)

		rec := doRequest(t, api, http.MethodPost, "/api/playlists/add",
			`{"playlistId":"37i9dQZF1DXcBWIGoYBM5M"}`, "token")
		if rec.Code != http.StatusBadRequest {
			t.Errorf("expected 400, got %d", rec.Code)
		}
	})

	t.Run("Add Rejects Malformed IDs", func(t *testing.T) {
		api := newTestAPI(t, nil, nil)

		rec := doRequest(t, api, http.MethodPost, "/api/playlists/add",
			`{"playlistId":"p1","trackUri":"spotify:track:t1"}`, "token")
		if rec.Code != http.StatusBadRequest {
			t.Errorf("expected 400, got %d", rec.Code)
		}
	})

	t.Run("Add Succeeds", func(t *testing.T) {
		var added string
		catalog := &tu.MockCatalog{
			AddToPlaylistFn: func(ctx context.Context, playlistID, trackURI, token string) error {
				added = playlistID + "/" + trackURI
				return nil
			},
		}
		api := newTestAPI(t, catalog, nil)

		rec := doRequest(t, api, http.MethodPost, "/api/playlists/add",
			`{"playlistId":"37i9dQZF1DXcBWIGoYBM5M","trackUri":"spotify:track:4uLU6hMCjMI75M1A2tKUQC"}`, "token")
		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", rec.Code)
		}

		if added != "37i9dQZF1DXcBWIGoYBM5M/spotify:track:4uLU6hMCjMI75M1A2tKUQC" {
			t.Errorf("unexpected add call %q", added)
		}
	})
}

func TestHistoryEndpointWithoutRepository(t *testing.T) {
	api := newTestAPI(t, nil, nil)

	rec := doRequest(t, api, http.MethodGet, "/api/history", "", "")
	if rec.Code != http.StatusServiceUnavailable {
		t.Errorf("expected 503 when history is not configured, got %d", rec.Code)
	}
}
