package services

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/desertthunder/spillover/internal/shared"
)

const (
	oembedBase = "https://www.youtube.com/oembed"

	// Title lookups are best-effort; a slow oEmbed endpoint must not stall
	// an import request.
	oembedTimeout = 5 * time.Second
)

// OEmbedClient implements TitleLookup against the public YouTube oEmbed
// endpoint. No credentials are required.
type OEmbedClient struct {
	baseURL string
	client  *http.Client
	timeout time.Duration
}

// NewOEmbedClient builds a title lookup client. A nil httpClient falls back
// to http.DefaultClient.
func NewOEmbedClient(httpClient *http.Client) *OEmbedClient {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	return &OEmbedClient{baseURL: oembedBase, client: httpClient, timeout: oembedTimeout}
}

type oembedResponse struct {
	Title      string `json:"title"`
	AuthorName string `json:"author_name"`
}

// GetTitle resolves a video ID to its title. The call is bounded by the
// client's timeout regardless of the parent context.
func (o *OEmbedClient) GetTitle(ctx context.Context, videoID string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, o.timeout)
	defer cancel()

	params := url.Values{}
	params.Set("url", "https://www.youtube.com/watch?v="+videoID)
	params.Set("format", "json")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, o.baseURL+"?"+params.Encode(), nil)
	if err != nil {
		return "", fmt.Errorf("%w: %v", shared.ErrTitleLookup, err)
	}

	resp, err := o.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("%w: %v", shared.ErrTitleLookup, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("%w: oembed returned %d for video %s", shared.ErrTitleLookup, resp.StatusCode, videoID)
	}

	var result oembedResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return "", fmt.Errorf("%w: decoding response: %v", shared.ErrTitleLookup, err)
	}

	if result.Title == "" {
		return "", fmt.Errorf("%w: empty title for video %s", shared.ErrTitleLookup, videoID)
	}

	return result.Title, nil
}
