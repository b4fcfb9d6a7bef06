package main

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/urfave/cli/v3"
	"golang.org/x/oauth2"

	"github.com/desertthunder/spillover/internal/server"
	"github.com/desertthunder/spillover/internal/services"
	"github.com/desertthunder/spillover/internal/shared"
)

// AuthLogin runs the authorization code flow locally and prints the access
// token for use with --token or SPOTIFY_TOKEN.
func (r *Runner) AuthLogin(ctx context.Context, cmd *cli.Command) error {
	config := r.loadConfig(cmd)

	creds := config.Credentials.Spotify
	if creds.ClientID == "" || creds.ClientSecret == "" {
		return fmt.Errorf("%w: spotify client_id and client_secret must be set in config", shared.ErrMissingCredentials)
	}

	oauthConfig := services.NewSpotifyOAuthConfig(creds.ClientID, creds.ClientSecret, creds.RedirectURI)

	token, err := r.doOAuth(config, oauthConfig)
	if err != nil {
		return err
	}

	r.writePlain("Authenticated. Access token (expires %s):\n%s\n",
		token.Expiry.Format(time.RFC3339), token.AccessToken)
	r.writePlain("\nexport SPOTIFY_TOKEN=%s\n", token.AccessToken)

	return nil
}

// doOAuth serves the one-shot callback, opens the browser, and waits for
// the exchange to finish.
func (r *Runner) doOAuth(config *shared.Config, oauthConfig *oauth2.Config) (*oauth2.Token, error) {
	state := shared.GenerateID()

	authURL := oauthConfig.AuthCodeURL(state)
	oauthHandler := server.NewOAuthHandler(oauthConfig, state)
	router := server.NewBasicRouter()
	router.Handler(oauthHandler)

	serverAddr := fmt.Sprintf("%s:%d", config.Server.Host, config.Server.Port)
	httpServer := &http.Server{
		Addr:    serverAddr,
		Handler: router,
	}

	serverErrors := make(chan error, 1)
	go func() {
		r.logger.Info("starting OAuth callback server", "addr", serverAddr)
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			serverErrors <- err
		}
	}()

	time.Sleep(100 * time.Millisecond)

	r.writePlain("Opening browser for Spotify authorization...\n")
	if err := shared.OpenBrowser(authURL); err != nil {
		r.logger.Warn("failed to open browser automatically", "error", err)
		r.writePlain("Could not open browser automatically.\nPlease open this URL:\n%s\n\n", authURL)
	}

	r.writePlain("Waiting for authorization (2 minute timeout)...\n")

	timeout := time.NewTimer(2 * time.Minute)
	defer timeout.Stop()

	var result server.OAuthResult

	select {
	case result = <-oauthHandler.Result():
	case err := <-serverErrors:
		return nil, fmt.Errorf("server error: %w", err)
	case <-timeout.C:
		return nil, fmt.Errorf("authorization timed out after 2 minutes")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		r.logger.Warn("error shutting down server", "error", err)
	}

	if result.Error() != nil {
		return nil, fmt.Errorf("authorization failed: %w", result.Error())
	}

	if result.Token == nil {
		return nil, fmt.Errorf("no token received")
	}

	return result.Token, nil
}
