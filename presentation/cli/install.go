package cli

import (
	"fmt"

	"pos_snapshots/infrastructure/browser"

	"github.com/spf13/cobra"
)

func installCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "install",
		Short: "Download the playwright driver and the configured browser engine",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if a.cfg.Driver != browser.DriverPlaywright {
				return fmt.Errorf("install only applies to the %s driver", browser.DriverPlaywright)
			}
			a.logger.Infof("Installing playwright with %s", a.cfg.Engine)
			if err := browser.Install(a.cfg.Engine); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "playwright %s installed\n", a.cfg.Engine)
			return nil
		},
	}
}
