package cli

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"
)

func newAssetsCommand(current func() (*App, error)) *cobra.Command {
	return &cobra.Command{
		Use:   "assets",
		Short: "List the asset catalog",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			app, err := current()
			if err != nil {
				return err
			}

			assets, err := app.api.ListAssets(cmd.Context())
			if err != nil {
				return fmt.Errorf("list assets: %w", err)
			}

			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
			fmt.Fprintln(w, "CODE\tNAME\tTYPE\tPRICE")
			for _, asset := range assets {
				fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", asset.Code, asset.Name, asset.Type, asset.Price.StringFixed(2))
			}
			return w.Flush()
		},
	}
}

func newVersionCommand(current func() (*App, error)) *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show the server version",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			app, err := current()
			if err != nil {
				return err
			}

			version, err := app.api.ServerVersion(cmd.Context())
			if err != nil {
				return fmt.Errorf("server version: %w", err)
			}

			fmt.Fprintf(cmd.OutOrStdout(), "server version: %s\n", version)
			return nil
		},
	}
}
