package main

import (
	"context"
	"fmt"

	"github.com/urfave/cli/v3"

	"github.com/desertthunder/spillover/internal/repositories"
	"github.com/desertthunder/spillover/internal/server"
	"github.com/desertthunder/spillover/internal/shared"
	"github.com/desertthunder/spillover/internal/tasks"
)

// Serve starts the HTTP API with the loaded configuration.
func (r *Runner) Serve(ctx context.Context, cmd *cli.Command) error {
	config := r.loadConfig(cmd)

	importer := tasks.NewImporter(r.catalog, r.titles, configScorer(config), r.logger)
	suggester := tasks.NewSuggester(r.catalog, config.Suggestions.Strategy)

	var imports *repositories.ImportRepository
	if !cmd.Bool("no-history") {
		db, err := shared.NewDatabase(config.Database.Path)
		if err != nil {
			return fmt.Errorf("failed to open database: %w", err)
		}
		defer db.Close()

		shared.ConfigureDatabase(db, config.Database.MaxOpenConns, config.Database.MaxIdleConns)

		if err := shared.RunMigrations(db); err != nil {
			return fmt.Errorf("failed to run migrations: %w", err)
		}

		imports = repositories.NewImportRepository(db)
	}

	api := server.NewAPI(config, importer, suggester, r.catalog, imports, r.logger)
	return api.Serve()
}
