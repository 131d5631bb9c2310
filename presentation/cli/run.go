package cli

import (
	"fmt"
	"strings"

	"pos_snapshots/application/scenarios"
	"pos_snapshots/application/walker"
	"pos_snapshots/infrastructure/browser"
	"pos_snapshots/infrastructure/security"
	"pos_snapshots/infrastructure/storage"

	"github.com/spf13/cobra"
)

func runCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "run [scenario...]",
		Short: "Run scenarios one after another (all when none are named)",
		Long: "Run scenarios one after another, each in its own browser session.\n" +
			"The first failing scenario stops the run.\n\n" +
			"Available scenarios: " + strings.Join(scenarios.Names(), ", "),
		ValidArgs: scenarios.Names(),
		RunE: func(cmd *cobra.Command, args []string) error {
			selected, err := scenarios.Lookup(args...)
			if err != nil {
				return err
			}

			launcher, err := browser.NewLauncher(a.cfg.Driver, a.logger)
			if err != nil {
				return err
			}

			w := walker.NewWalker(walker.Options{
				Launcher: launcher,
				Store:    storage.NewScreenshotStore(a.cfg.ScreenshotDir),
				Guard:    security.NewSecurityLayer(a.logger, a.cfg.AllowRemote),
				Logger:   a.logger,
				Out:      cmd.OutOrStdout(),
				BaseURL:  a.cfg.BaseURL,
				Session:  a.cfg.SessionOptions(),
			})

			results, err := w.RunAll(cmd.Context(), selected)
			if err != nil {
				return err
			}

			total := 0
			for _, result := range results {
				total += len(result.Screenshots)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%d scenario(s) done, %d screenshot(s) in %s\n", len(results), total, a.cfg.ScreenshotDir)
			return nil
		},
	}
}
