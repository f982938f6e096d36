package cli

import (
	"errors"
	"fmt"
	"io"
	"strconv"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

var (
	headerColor  = color.New(color.FgCyan, color.Bold)
	successColor = color.New(color.FgGreen)
	failureColor = color.New(color.FgRed)
)

var errAppNotInitialized = errors.New("application is not initialized")

// NewRootCommand assembles the command tree. The App is created by factory
// before any subcommand runs.
func NewRootCommand(factory Factory) *cobra.Command {
	var (
		serverURL string
		app       *App
	)

	root := &cobra.Command{
		Use:   "ledger",
		Short: "Command-line client of the allocation ledger",
		Long: `ledger lists clients and manages their asset allocations.

Allocation counts travel encrypted; the client decrypts them with the shared
secret from APP_ENCRYPTION_KEY.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			var err error
			app, err = factory(serverURL)
			return err
		},
	}
	root.PersistentFlags().StringVar(&serverURL, "server", "", "ledger API base URL (overrides ADAPTER_ADDRESS)")

	current := func() (*App, error) {
		if app == nil {
			return nil, errAppNotInitialized
		}
		return app, nil
	}

	root.AddCommand(
		newClientsCommand(current),
		newCountCommand(current),
		newAllocationsCommand(current),
		newAssetsCommand(current),
		newVersionCommand(current),
	)

	return root
}

// Execute runs the command tree and prints a failure in red.
func Execute(root *cobra.Command, errOut io.Writer) int {
	if err := root.Execute(); err != nil {
		failureColor.Fprintf(errOut, "error: %v\n", err)
		return 1
	}
	return 0
}

func parseID(raw, what string) (int64, error) {
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid %s %q", what, raw)
	}
	return id, nil
}
