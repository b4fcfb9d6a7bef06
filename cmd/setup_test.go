package main

import (
	"bytes"
	"context"
	"errors"
	"os"
	"strings"
	"testing"

	"github.com/desertthunder/spillover/internal/shared"
	tu "github.com/desertthunder/spillover/internal/testing"
)

func TestSetupConfig(t *testing.T) {
	t.Run("Creates Template", func(t *testing.T) {
		originalDir := tu.MustGetwd(t)
		tu.MustChdir(t, t.TempDir())
		defer tu.MustChdir(t, originalDir)

		output := &bytes.Buffer{}
		runner := NewRunner(RunnerOpts{Output: output})

		cmd := setupCommand(runner)
		if err := cmd.Run(context.Background(), []string{"setup", "config", "--config", "config.toml"}); err != nil {
			t.Fatalf("expected no error, got %v", err)
		}

		tu.AssertFileExists(t, "config.toml")
		if !strings.Contains(output.String(), "Created config.toml") {
			t.Errorf("unexpected output %s", output.String())
		}
	})

	t.Run("Refuses To Overwrite", func(t *testing.T) {
		originalDir := tu.MustGetwd(t)
		tu.MustChdir(t, t.TempDir())
		defer tu.MustChdir(t, originalDir)

		if err := os.WriteFile("config.toml", []byte("# existing"), 0o644); err != nil {
			t.Fatalf("failed to seed config file: %v", err)
		}

		runner := NewRunner(RunnerOpts{Output: &bytes.Buffer{}})

		cmd := setupCommand(runner)
		err := cmd.Run(context.Background(), []string{"setup", "config", "--config", "config.toml"})
		if !errors.Is(err, shared.ErrInvalidConfig) {
			t.Errorf("expected existing-file error, got %v", err)
		}
	})
}
