package main

import (
	"fmt"
	"io"
	"net/http"
	"os"

	"github.com/charmbracelet/log"
	"github.com/urfave/cli/v3"

	"github.com/desertthunder/spillover/internal/match"
	"github.com/desertthunder/spillover/internal/services"
	"github.com/desertthunder/spillover/internal/shared"
	"github.com/desertthunder/spillover/internal/tasks"
)

// Runner holds all dependencies for CLI commands and provides methods for each command action.
type Runner struct {
	config     *shared.Config
	catalog    services.Catalog
	titles     services.TitleLookup
	importer   *tasks.Importer
	suggester  *tasks.Suggester
	httpClient *http.Client
	logger     *log.Logger
	output     io.Writer
}

// RunnerOpts contains configuration options for creating a Runner.
type RunnerOpts struct {
	Config     *shared.Config
	Catalog    services.Catalog
	Titles     services.TitleLookup
	HTTPClient *http.Client
	Logger     *log.Logger
	Output     io.Writer
}

// NewRunner creates a new Runner with the provided configuration
func NewRunner(opts RunnerOpts) *Runner {
	if opts.Config == nil {
		opts.Config = shared.DefaultConfig()
	}
	if opts.Logger == nil {
		opts.Logger = shared.NewLogger(nil)
	}
	if opts.Output == nil {
		opts.Output = os.Stdout
	}
	if opts.HTTPClient == nil {
		opts.HTTPClient = http.DefaultClient
	}
	if opts.Catalog == nil {
		opts.Catalog = services.NewSpotifyClient(opts.HTTPClient)
	}
	if opts.Titles == nil {
		opts.Titles = services.NewOEmbedClient(opts.HTTPClient)
	}

	scorer := configScorer(opts.Config)

	return &Runner{
		config:     opts.Config,
		catalog:    opts.Catalog,
		titles:     opts.Titles,
		importer:   tasks.NewImporter(opts.Catalog, opts.Titles, scorer, opts.Logger),
		suggester:  tasks.NewSuggester(opts.Catalog, opts.Config.Suggestions.Strategy),
		httpClient: opts.HTTPClient,
		logger:     opts.Logger,
		output:     opts.Output,
	}
}

// configScorer builds a confidence scorer from the config's weights. Zero
// weights mean the section was omitted; the importer then uses defaults.
func configScorer(config *shared.Config) *match.Scorer {
	c := config.Confidence
	if c.TitleWeight == 0 && c.ArtistWeight == 0 {
		return nil
	}

	return &match.Scorer{
		TitleWeight:     c.TitleWeight,
		ArtistWeight:    c.ArtistWeight,
		HighThreshold:   c.HighThreshold,
		MediumThreshold: c.MediumThreshold,
	}
}

func (r *Runner) register() []*cli.Command {
	commands := []*cli.Command{}
	for _, fn := range [](func(*Runner) *cli.Command){
		serveCommand, importCommand, searchCommand, suggestCommand, historyCommand, authCommand, setupCommand,
	} {
		commands = append(commands, fn(r))
	}

	return commands
}

// token resolves the bearer token for a CLI invocation: the --token flag,
// falling back to the SPOTIFY_TOKEN environment variable.
func (r *Runner) token(cmd *cli.Command) (string, error) {
	if token := cmd.String("token"); token != "" {
		return token, nil
	}

	if token := os.Getenv("SPOTIFY_TOKEN"); token != "" {
		return token, nil
	}

	return "", fmt.Errorf("%w: pass --token or set SPOTIFY_TOKEN (run 'spillover auth login' to obtain one)", shared.ErrMissingCredentials)
}

func (r *Runner) writeJSON(data any, pretty bool) error {
	output, err := shared.MarshalJSON(data, pretty)
	if err != nil {
		return fmt.Errorf("failed to marshal JSON: %w", err)
	}

	if _, err := r.output.Write(output); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}

	if _, err := r.output.Write([]byte("\n")); err != nil {
		return fmt.Errorf("failed to write newline: %w", err)
	}

	return nil
}

func (r *Runner) writePlain(format string, args ...any) error {
	text := fmt.Sprintf(format, args...)
	if _, err := r.output.Write([]byte(text)); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	return nil
}

// loadConfig reads the config file named by the command's --config flag,
// falling back to defaults when it's absent or unreadable.
func (r *Runner) loadConfig(cmd *cli.Command) *shared.Config {
	configPath := cmd.String("config")
	if configPath == "" {
		return r.config
	}

	if _, err := os.Stat(configPath); err != nil {
		return r.config
	}

	config, err := shared.LoadConfig(configPath)
	if err != nil {
		r.logger.Warn("failed to load config, using defaults", "error", err)
		return r.config
	}

	return config
}
