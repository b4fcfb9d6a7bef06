package main

import (
	"context"
	"fmt"

	"github.com/urfave/cli/v3"

	"github.com/desertthunder/spillover/internal/formatter"
	"github.com/desertthunder/spillover/internal/repositories"
	"github.com/desertthunder/spillover/internal/shared"
)

// Suggest derives track suggestions from seed track IDs.
func (r *Runner) Suggest(ctx context.Context, cmd *cli.Command) error {
	token, err := r.token(cmd)
	if err != nil {
		return err
	}

	tracks, err := r.suggester.Suggest(ctx, cmd.StringSlice("seed"), token)
	if err != nil {
		return err
	}

	if cmd.Bool("json") {
		return r.writeJSON(map[string]any{"tracks": tracks}, true)
	}

	if len(tracks) == 0 {
		return r.writePlain("No suggestions found\n")
	}

	return r.writePlain("%s", formatter.TracksToText(tracks))
}

// History lists recent imports from the local database.
func (r *Runner) History(ctx context.Context, cmd *cli.Command) error {
	config := r.loadConfig(cmd)

	db, err := shared.NewDatabase(config.Database.Path)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer db.Close()

	records, err := repositories.NewImportRepository(db).List(int(cmd.Int("limit")))
	if err != nil {
		return err
	}

	if cmd.Bool("json") {
		entries := make([]map[string]any, len(records))
		for i, record := range records {
			entries[i] = map[string]any{
				"id":          record.ID(),
				"url":         record.URL(),
				"platform":    record.Platform(),
				"searchQuery": record.SearchQuery(),
				"trackCount":  record.TrackCount(),
				"createdAt":   record.CreatedAt(),
			}
		}
		return r.writeJSON(map[string]any{"imports": entries}, true)
	}

	if len(records) == 0 {
		return r.writePlain("No imports recorded\n")
	}

	for _, record := range records {
		query := record.SearchQuery()
		if query == "" {
			query = "(direct)"
		}
		r.writePlain("%s  %-10s  %2d tracks  %s\n",
			record.CreatedAt().Format("2006-01-02 15:04"), record.Platform(), record.TrackCount(), query)
	}

	return nil
}
