package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/dmose/bpblog/internal/devloop"
	"github.com/dmose/bpblog/internal/preview"
	"github.com/dmose/bpblog/internal/site"
)

var devCmd = &cobra.Command{
	Use:   "dev",
	Short: "Watches sources and serves the site locally",
	Long: `The dev command performs an initial build of the site, starts a
local preview server over the output directory, and watches the
posts, templates, and tool source trees. Edits are debounced into a
single rebuild; source changes recompile the tool first.`,
	RunE: runDev,
}

func runDev(cmd *cobra.Command, args []string) error {
	builder := site.NewBuilder(appConfig, logger)

	// Nothing to serve if the site won't build.
	if err := builder.Build(cmd.Context()); err != nil {
		return fmt.Errorf("initial build failed: %w", err)
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	server := preview.New(appConfig.OutputDir, appConfig.Port, logger)
	go func() {
		if err := server.Start(); err != nil {
			logger.Error("preview server failed", "error", err)
			stop()
		}
	}()

	loop := devloop.New(appConfig, logger, builder.Build, recompile)
	go func() {
		if err := loop.Watch(ctx); err != nil && !errors.Is(err, context.Canceled) {
			logger.Error("watcher stopped", "error", err)
			stop()
		}
	}()

	runErr := loop.Run(ctx)

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Warn("preview server shutdown", "error", err)
	}

	if runErr != nil && !errors.Is(runErr, context.Canceled) {
		return runErr
	}
	logger.Info("dev loop stopped")
	return nil
}

// recompile runs the configured compile command against the source
// tree. Used by the dev loop when a Go source file changes.
func recompile(ctx context.Context) error {
	parts := strings.Fields(appConfig.CompileCmd)
	if len(parts) == 0 {
		return nil
	}
	c := exec.CommandContext(ctx, parts[0], parts[1:]...)
	c.Dir = appConfig.SourceDir
	c.Stdout = os.Stderr
	c.Stderr = os.Stderr
	if err := c.Run(); err != nil {
		return fmt.Errorf("running %q: %w", appConfig.CompileCmd, err)
	}
	return nil
}

func init() {
	rootCmd.AddCommand(devCmd)
}
