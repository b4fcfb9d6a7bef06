package services_test

import (
	"context"
	"errors"
	"io"
	"net/http"
	"strings"
	"testing"

	"github.com/desertthunder/spillover/internal/services"
	"github.com/desertthunder/spillover/internal/shared"
	tu "github.com/desertthunder/spillover/internal/testing"
)

func TestSpotifyTransportFailures(t *testing.T) {
	ctx := context.Background()

	t.Run("Connection Failure", func(t *testing.T) {
		client := services.NewSpotifyClient(&http.Client{
			Transport: tu.NewMockRoundTripper(nil, errors.New("connection failed")),
		})

		_, err := client.SearchTracks(ctx, "query", "token", 10)
		if !errors.Is(err, shared.ErrAPIRequest) {
			t.Errorf("expected API request error, got %v", err)
		}
	})

	t.Run("Body Read Failure", func(t *testing.T) {
		client := services.NewSpotifyClient(&http.Client{
			Transport: tu.NewMockRoundTripper(&http.Response{
				StatusCode: http.StatusOK,
				Body:       &tu.FCloser{},
			}, nil),
		})

		_, err := client.GetTrack(ctx, "4uLU6hMCjMI75M1A2tKUQC", "token")
		if !errors.Is(err, shared.ErrAPIRequest) {
			t.Errorf("expected decode error, got %v", err)
		}
	})
}

func TestOEmbedTransportFailures(t *testing.T) {
	ctx := context.Background()

	t.Run("Connection Failure", func(t *testing.T) {
		client := services.NewOEmbedClient(&http.Client{
			Transport: tu.NewMockRoundTripper(nil, errors.New("connection failed")),
		})

		if _, err := client.GetTitle(ctx, "dQw4w9WgXcQ"); !errors.Is(err, shared.ErrTitleLookup) {
			t.Errorf("expected title lookup error, got %v", err)
		}
	})

	t.Run("Body Read Failure", func(t *testing.T) {
		client := services.NewOEmbedClient(&http.Client{
			Transport: tu.NewMockRoundTripper(&http.Response{
				StatusCode: http.StatusOK,
				Body:       &tu.FCloser{},
			}, nil),
		})

		if _, err := client.GetTitle(ctx, "dQw4w9WgXcQ"); !errors.Is(err, shared.ErrTitleLookup) {
			t.Errorf("expected title lookup error, got %v", err)
		}
	})

	t.Run("Requests Video URL", func(t *testing.T) {
		var requested string
		client := services.NewOEmbedClient(&http.Client{
			Transport: tu.RoundTripFunc(func(req *http.Request) (*http.Response, error) {
				requested = req.URL.Query().Get("url")
				return &http.Response{
					StatusCode: http.StatusOK,
					Body:       io.NopCloser(strings.NewReader(`{"title":"Artist - Song","author_name":"Artist"}`)),
					Header:     make(http.Header),
				}, nil
			}),
		})

		title, err := client.GetTitle(ctx, "dQw4w9WgXcQ")
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if title != "Artist - Song" {
			t.Errorf("unexpected title %q", title)
		}
		if requested != "https://www.youtube.com/watch?v=dQw4w9WgXcQ" {
			t.Errorf("unexpected oembed url parameter %q", requested)
		}
	})
}
