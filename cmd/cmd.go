// submodule cmd contains command definitions
package main

import "github.com/urfave/cli/v3"

func configFlag() *cli.StringFlag {
	return &cli.StringFlag{
		Name:    "config",
		Aliases: []string{"c"},
		Usage:   "Path to configuration file",
		Value:   "config.toml",
	}
}

func tokenFlag() *cli.StringFlag {
	return &cli.StringFlag{
		Name:  "token",
		Usage: "Spotify bearer token (falls back to SPOTIFY_TOKEN)",
	}
}

func formatFlag() *cli.StringFlag {
	return &cli.StringFlag{
		Name:    "format",
		Aliases: []string{"f"},
		Usage:   "Output format: text, json, markdown, csv",
		Value:   "text",
	}
}

// serveCommand runs the HTTP API
func serveCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "serve",
		Usage: "Run the resolution HTTP API",
		Flags: []cli.Flag{
			configFlag(),
			&cli.BoolFlag{
				Name:  "no-history",
				Usage: "Disable import history persistence",
			},
		},
		Action: r.Serve,
	}
}

// importCommand resolves a single link or a file of links
func importCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:    "import",
		Aliases: []string{"resolve"},
		Usage:   "Resolve a music link to catalog candidates",
		Arguments: []cli.Argument{
			&cli.StringArg{
				Name: "url",
			},
		},
		Flags: []cli.Flag{
			configFlag(),
			tokenFlag(),
			formatFlag(),
			&cli.BoolFlag{
				Name:  "ui",
				Usage: "Pick a candidate interactively",
			},
			&cli.StringFlag{
				Name:  "file",
				Usage: "Resolve every URL in a file (one per line)",
			},
			&cli.IntFlag{
				Name:  "workers",
				Usage: "Concurrent workers for --file mode",
				Value: 5,
			},
		},
		Action: r.Import,
	}
}

// searchCommand resolves a typed query
func searchCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "search",
		Usage: "Search the catalog with confidence scoring",
		Arguments: []cli.Argument{
			&cli.StringArg{
				Name: "query",
			},
		},
		Flags: []cli.Flag{
			configFlag(),
			tokenFlag(),
			formatFlag(),
		},
		Action: r.Search,
	}
}

// suggestCommand derives suggestions from seed tracks
func suggestCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "suggest",
		Usage: "Suggest tracks from seed track IDs",
		Flags: []cli.Flag{
			configFlag(),
			tokenFlag(),
			&cli.StringSliceFlag{
				Name:     "seed",
				Aliases:  []string{"s"},
				Usage:    "Seed track ID (repeatable, max 2 used)",
				Required: true,
			},
			&cli.BoolFlag{
				Name:  "json",
				Usage: "Output raw JSON",
			},
		},
		Action: r.Suggest,
	}
}

// historyCommand lists recorded imports
func historyCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "history",
		Usage: "List recent imports",
		Flags: []cli.Flag{
			configFlag(),
			&cli.IntFlag{
				Name:  "limit",
				Usage: "Maximum entries to show",
				Value: 20,
			},
			&cli.BoolFlag{
				Name:  "json",
				Usage: "Output raw JSON",
			},
		},
		Action: r.History,
	}
}

// authCommand handles Spotify authentication
func authCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "auth",
		Usage: "Spotify authentication",
		Commands: []*cli.Command{
			{
				Name:   "login",
				Usage:  "Authenticate with Spotify using OAuth2",
				Flags:  []cli.Flag{configFlag()},
				Action: r.AuthLogin,
			},
		},
	}
}

// setupCommand initializes local state
func setupCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "setup",
		Usage: "Initialize configuration and local storage",
		Commands: []*cli.Command{
			{
				Name:   "config",
				Usage:  "Create a config.toml from the template",
				Flags:  []cli.Flag{configFlag()},
				Action: r.SetupConfig,
			},
			{
				Name:   "database",
				Usage:  "Create the import history database and run migrations",
				Flags:  []cli.Flag{configFlag()},
				Action: r.SetupDatabase,
			},
		},
	}
}
