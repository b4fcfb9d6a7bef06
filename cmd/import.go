package main

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/urfave/cli/v3"

	"github.com/desertthunder/spillover/internal/formatter"
	"github.com/desertthunder/spillover/internal/shared"
	"github.com/desertthunder/spillover/internal/tasks"
	"github.com/desertthunder/spillover/internal/ui"
)

// Import resolves a single link (optionally interactively) or, with --file,
// a batch of links.
func (r *Runner) Import(ctx context.Context, cmd *cli.Command) error {
	token, err := r.token(cmd)
	if err != nil {
		return err
	}

	if file := cmd.String("file"); file != "" {
		return r.bulkImport(ctx, file, token, cmd)
	}

	url := cmd.StringArg("url")
	if url == "" {
		return fmt.Errorf("%w: a URL argument is required", shared.ErrMissingArgument)
	}

	if cmd.Bool("ui") {
		return r.importInteractive(ctx, url, token)
	}

	result, err := r.importer.ResolveImport(ctx, url, token)
	if err != nil {
		return err
	}

	return formatter.WriteResolution(r.output, result, cmd.String("format"))
}

func (r *Runner) importInteractive(ctx context.Context, url, token string) error {
	model := ui.NewModel(ctx, r.importer, r.catalog, url, token)

	final, err := tea.NewProgram(model).Run()
	if err != nil {
		return fmt.Errorf("picker failed: %w", err)
	}

	if picker, ok := final.(*ui.Model); ok {
		if selected := picker.Selected(); selected != nil {
			return r.writePlain("%s\n", selected.URI)
		}
	}

	return nil
}

func (r *Runner) bulkImport(ctx context.Context, path, token string, cmd *cli.Command) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("failed to open url file: %w", err)
	}
	defer f.Close()

	var urls []string
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		if line := strings.TrimSpace(scanner.Text()); line != "" && !strings.HasPrefix(line, "#") {
			urls = append(urls, line)
		}
	}
	if err := scanner.Err(); err != nil {
		return fmt.Errorf("failed to read url file: %w", err)
	}

	if len(urls) == 0 {
		return fmt.Errorf("%w: %s contains no URLs", shared.ErrInvalidInput, path)
	}

	report, err := r.importer.BulkResolve(ctx, urls, token, tasks.BulkResolveOpts{
		NumWorkers: int(cmd.Int("workers")),
	})
	if err != nil {
		return err
	}

	r.writePlain("Resolved %d/%d URLs (%d failed)\n\n", report.Succeeded, report.Total, report.Failed)

	for _, res := range report.Results {
		if res.Err != nil {
			r.writePlain("FAIL %s: %v\n", res.URL, res.Err)
			continue
		}

		best := "no candidates"
		if len(res.Result.Tracks) > 0 {
			top := res.Result.Tracks[0]
			best = top.Name
			if top.Confidence != nil {
				best = fmt.Sprintf("%s (%d%%)", best, top.Confidence.Score)
			}
		}
		r.writePlain("OK   %s -> %s\n", res.URL, best)
	}

	return nil
}

// Search resolves a typed query against the catalog.
func (r *Runner) Search(ctx context.Context, cmd *cli.Command) error {
	token, err := r.token(cmd)
	if err != nil {
		return err
	}

	query := cmd.StringArg("query")
	if query == "" {
		return fmt.Errorf("%w: a query argument is required", shared.ErrMissingArgument)
	}

	result, err := r.importer.ResolveQuery(ctx, query, token)
	if err != nil {
		return err
	}

	return formatter.WriteResolution(r.output, result, cmd.String("format"))
}
