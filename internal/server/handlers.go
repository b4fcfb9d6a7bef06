package server

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"regexp"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"golang.org/x/oauth2"

	"github.com/desertthunder/spillover/internal/models"
	"github.com/desertthunder/spillover/internal/ratelimit"
	"github.com/desertthunder/spillover/internal/repositories"
	"github.com/desertthunder/spillover/internal/services"
	"github.com/desertthunder/spillover/internal/shared"
	"github.com/desertthunder/spillover/internal/tasks"
)

const (
	appName    = "spillover"
	appVersion = "1.0.0"

	playlistLimit = 50
)

// API wires the resolution pipelines behind the HTTP surface.
type API struct {
	config    *shared.Config
	importer  *tasks.Importer
	suggester *tasks.Suggester
	catalog   services.Catalog
	imports   *repositories.ImportRepository
	gate      *Gate
	oauth     *oauth2.Config
	state     string
	logger    *log.Logger
}

// NewAPI builds the API surface. The imports repository may be nil, in which
// case history recording and the history endpoint are disabled.
func NewAPI(
	config *shared.Config,
	importer *tasks.Importer,
	suggester *tasks.Suggester,
	catalog services.Catalog,
	imports *repositories.ImportRepository,
	logger *log.Logger,
) *API {
	if logger == nil {
		logger = log.Default()
	}

	creds := config.Credentials.Spotify
	return &API{
		config:    config,
		importer:  importer,
		suggester: suggester,
		catalog:   catalog,
		imports:   imports,
		gate:      NewGate(ratelimit.NewLimiter(), config.RateLimits.WindowMS, logger),
		oauth:     services.NewSpotifyOAuthConfig(creds.ClientID, creds.ClientSecret, creds.RedirectURI),
		state:     shared.GenerateID(),
		logger:    logger,
	}
}

// Router assembles the full route table with middleware applied.
func (a *API) Router() *BasicRouter {
	router := NewBasicRouter()
	router.Use(RecoveryMiddleware(a.logger), CORSMiddleware(), LoggingMiddleware(a.logger))

	limits := a.config.RateLimits

	router.Handle(http.MethodGet, "/api/health", http.HandlerFunc(a.handleHealth))
	router.Handle(http.MethodGet, "/api/auth/login", http.HandlerFunc(a.handleLogin))
	router.Handle(http.MethodGet, "/api/auth/callback", http.HandlerFunc(a.handleCallback))

	router.Handle(http.MethodPost, "/api/import-url",
		a.gate.Admit("import-url", limits.ImportMax, true, a.handleImport))
	router.Handle(http.MethodGet, "/api/search",
		a.gate.Admit("search", limits.ImportMax, true, a.handleSearch))
	router.Handle(http.MethodGet, "/api/suggestions",
		a.gate.Admit("suggestions", limits.SuggestMax, true, a.handleSuggestions))
	router.Handle(http.MethodGet, "/api/now-playing",
		a.gate.Admit("now-playing", limits.NowPlayingMax, true, a.handleNowPlaying))
	router.Handle(http.MethodGet, "/api/playlists",
		a.gate.Admit("playlists", limits.PlaylistMax, true, a.handlePlaylists))
	router.Handle(http.MethodPost, "/api/playlists/add",
		a.gate.Admit("playlist-add", limits.PlaylistMax, true, a.handlePlaylistAdd))
	router.Handle(http.MethodGet, "/api/history",
		a.gate.Admit("history", limits.ImportMax, false, a.handleHistory))

	return router
}

// Serve starts the HTTP server and blocks until it exits. Idle rate-limit
// buckets are swept in the background for the lifetime of the server.
func (a *API) Serve() error {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	a.gate.limiter.StartSweep(ctx, 5*time.Minute, 10*time.Minute)

	addr := fmt.Sprintf("%s:%d", a.config.Server.Host, a.config.Server.Port)
	a.logger.Info("starting server", "addr", addr)
	return http.ListenAndServe(addr, a.Router())
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func (a *API) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{
		"status":    "ok",
		"app":       appName,
		"version":   appVersion,
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	})
}

func (a *API) handleLogin(w http.ResponseWriter, r *http.Request) {
	http.Redirect(w, r, a.oauth.AuthCodeURL(a.state), http.StatusFound)
}

func (a *API) handleCallback(w http.ResponseWriter, r *http.Request) {
	if state := r.URL.Query().Get("state"); state != a.state {
		writeError(w, fmt.Errorf("%w: invalid state parameter", shared.ErrUnauthorized))
		return
	}

	code := r.URL.Query().Get("code")
	if code == "" {
		writeError(w, fmt.Errorf("%w: authorization denied: %s", shared.ErrUnauthorized, r.URL.Query().Get("error")))
		return
	}

	token, err := a.oauth.Exchange(r.Context(), code)
	if err != nil {
		a.logger.Error("token exchange failed", "error", err)
		writeError(w, fmt.Errorf("%w: token exchange failed", shared.ErrUnauthorized))
		return
	}

	http.SetCookie(w, &http.Cookie{
		Name:     TokenCookie,
		Value:    token.AccessToken,
		Path:     "/",
		Expires:  token.Expiry,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})

	writeJSON(w, http.StatusOK, map[string]string{"status": "authenticated"})
}

type importRequest struct {
	URL string `json:"url"`
}

func (a *API) handleImport(w http.ResponseWriter, r *http.Request) {
	var req importRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || strings.TrimSpace(req.URL) == "" {
		writeError(w, fmt.Errorf("%w: request body must include a url", shared.ErrInvalidInput))
		return
	}

	result, err := a.importer.ResolveImport(r.Context(), req.URL, TokenFromContext(r.Context()))
	if err != nil {
		writeError(w, err)
		return
	}

	a.recordImport(req.URL, result)

	writeJSON(w, http.StatusOK, result)
}

// recordImport persists import history best-effort; failures only log.
func (a *API) recordImport(url string, result *tasks.ResolutionResult) {
	if a.imports == nil {
		return
	}

	searchQuery := ""
	if result.SearchQuery != nil {
		searchQuery = *result.SearchQuery
	}

	record := models.NewImportRecord(url, string(result.Source), searchQuery, len(result.Tracks))
	if err := a.imports.Create(record); err != nil {
		a.logger.Warn("failed to record import", "error", err)
	}
}

func (a *API) handleSearch(w http.ResponseWriter, r *http.Request) {
	result, err := a.importer.ResolveQuery(r.Context(), r.URL.Query().Get("q"), TokenFromContext(r.Context()))
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, result)
}

func (a *API) handleSuggestions(w http.ResponseWriter, r *http.Request) {
	raw := strings.TrimSpace(r.URL.Query().Get("seeds"))
	if raw == "" {
		writeError(w, fmt.Errorf("%w: seeds query parameter is required", shared.ErrInvalidInput))
		return
	}

	var seeds []string
	for _, seed := range strings.Split(raw, ",") {
		if seed = strings.TrimSpace(seed); seed != "" {
			seeds = append(seeds, seed)
		}
	}

	tracks, err := a.suggester.Suggest(r.Context(), seeds, TokenFromContext(r.Context()))
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{"tracks": tracks})
}

func (a *API) handleNowPlaying(w http.ResponseWriter, r *http.Request) {
	token := TokenFromContext(r.Context())

	playing, err := a.catalog.CurrentlyPlaying(r.Context(), token)
	if err != nil {
		writeError(w, err)
		return
	}

	// Nothing playing, or non-track playback (podcast episodes carry no item).
	if playing == nil || playing.Item == nil {
		writeJSON(w, http.StatusOK, map[string]any{"is_playing": false, "item": nil})
		return
	}

	isLiked := false
	if saved, err := a.catalog.CheckSavedTracks(r.Context(), []string{playing.Item.ID}, token); err == nil && len(saved) > 0 {
		isLiked = saved[0]
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"is_playing":  playing.IsPlaying,
		"progress_ms": playing.ProgressMS,
		"item":        playing.Item,
		"is_liked":    isLiked,
	})
}

func (a *API) handlePlaylists(w http.ResponseWriter, r *http.Request) {
	playlists, err := a.catalog.UserPlaylists(r.Context(), TokenFromContext(r.Context()), playlistLimit)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{"playlists": playlists})
}

type playlistAddRequest struct {
	PlaylistID string `json:"playlistId"`
	TrackURI   string `json:"trackUri"`
}

var (
	playlistIDRegex = regexp.MustCompile(`^[a-zA-Z0-9]{22}$`)
	trackURIRegex   = regexp.MustCompile(`^spotify:track:[a-zA-Z0-9]{22}$`)
)

func (a *API) handlePlaylistAdd(w http.ResponseWriter, r *http.Request) {
	var req playlistAddRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.PlaylistID == "" || req.TrackURI == "" {
		writeError(w, fmt.Errorf("%w: playlistId and trackUri are required", shared.ErrInvalidInput))
		return
	}

	if !playlistIDRegex.MatchString(req.PlaylistID) || !trackURIRegex.MatchString(req.TrackURI) {
		writeError(w, fmt.Errorf("%w: malformed playlist ID or track URI", shared.ErrInvalidInput))
		return
	}

	if err := a.catalog.AddToPlaylist(r.Context(), req.PlaylistID, req.TrackURI, TokenFromContext(r.Context())); err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"status": "added"})
}

type historyEntry struct {
	ID          string `json:"id"`
	URL         string `json:"url"`
	Platform    string `json:"platform"`
	SearchQuery string `json:"searchQuery,omitempty"`
	TrackCount  int    `json:"trackCount"`
	CreatedAt   string `json:"createdAt"`
}

func (a *API) handleHistory(w http.ResponseWriter, r *http.Request) {
	if a.imports == nil {
		writeError(w, fmt.Errorf("%w: import history is not configured", shared.ErrServiceUnavailable))
		return
	}

	records, err := a.imports.List(50)
	if err != nil {
		writeError(w, err)
		return
	}

	entries := make([]historyEntry, len(records))
	for i, record := range records {
		entries[i] = historyEntry{
			ID:          record.ID(),
			URL:         record.URL(),
			Platform:    record.Platform(),
			SearchQuery: record.SearchQuery(),
			TrackCount:  record.TrackCount(),
			CreatedAt:   record.CreatedAt().Format(time.RFC3339),
		}
	}

	writeJSON(w, http.StatusOK, map[string]any{"imports": entries})
}
