package cli

import (
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/MKhiriev/allocation-ledger/models"
	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"
)

func newAllocationsCommand(current func() (*App, error)) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "allocations",
		Aliases: []string{"alloc"},
		Short:   "Manage the asset allocations of clients",
	}

	cmd.AddCommand(
		newAllocationsListCommand(current),
		newAllocationsRecordCommand(current),
		newAllocationsEditCommand(current),
		newAllocationsDeleteCommand(current),
	)

	return cmd
}

func newAllocationsListCommand(current func() (*App, error)) *cobra.Command {
	return &cobra.Command{
		Use:   "list <client-id>",
		Short: "List the allocations of a client",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := current()
			if err != nil {
				return err
			}

			clientID, err := parseID(args[0], "client id")
			if err != nil {
				return err
			}

			allocations, err := app.api.ListAllocations(cmd.Context(), clientID)
			if err != nil {
				return fmt.Errorf("list allocations: %w", err)
			}

			out := cmd.OutOrStdout()
			if len(allocations) == 0 {
				fmt.Fprintln(out, "no allocations")
				return nil
			}

			return printAllocations(out, allocations...)
		},
	}
}

func newAllocationsRecordCommand(current func() (*App, error)) *cobra.Command {
	return &cobra.Command{
		Use:   "record <client-id> <asset> <amount>",
		Short: "Add an amount to a client's allocation in an asset",
		Long: `record adds <amount> to the client's allocation in <asset>. The
allocation is created when the client does not hold the asset yet.`,
		Args: cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := current()
			if err != nil {
				return err
			}

			clientID, err := parseID(args[0], "client id")
			if err != nil {
				return err
			}
			amount, err := decimal.NewFromString(args[2])
			if err != nil {
				return fmt.Errorf("invalid amount %q", args[2])
			}

			allocation, merged, err := app.api.RecordAllocation(cmd.Context(), clientID, args[1], amount)
			if err != nil {
				return fmt.Errorf("record allocation: %w", err)
			}

			out := cmd.OutOrStdout()
			if merged {
				successColor.Fprintln(out, "allocation updated")
			} else {
				successColor.Fprintln(out, "allocation created")
			}

			return printAllocations(out, allocation)
		},
	}
}

func newAllocationsEditCommand(current func() (*App, error)) *cobra.Command {
	var (
		asset  string
		amount string
	)

	cmd := &cobra.Command{
		Use:   "edit <allocation-id>",
		Short: "Replace the asset and/or amount of an allocation",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := current()
			if err != nil {
				return err
			}

			id, err := parseID(args[0], "allocation id")
			if err != nil {
				return err
			}

			update := models.AllocationUpdate{ID: id}
			if cmd.Flags().Changed("asset") {
				update.AssetCode = &asset
			}
			if cmd.Flags().Changed("amount") {
				value, parseErr := decimal.NewFromString(amount)
				if parseErr != nil {
					return fmt.Errorf("invalid amount %q", amount)
				}
				update.Amount = &value
			}
			if update.AssetCode == nil && update.Amount == nil {
				return fmt.Errorf("nothing to edit: pass --asset and/or --amount")
			}

			allocation, err := app.api.EditAllocation(cmd.Context(), update)
			if err != nil {
				return fmt.Errorf("edit allocation: %w", err)
			}

			return printAllocations(cmd.OutOrStdout(), allocation)
		},
	}

	cmd.Flags().StringVar(&asset, "asset", "", "new asset code")
	cmd.Flags().StringVar(&amount, "amount", "", "new amount, replaces the current one")

	return cmd
}

func newAllocationsDeleteCommand(current func() (*App, error)) *cobra.Command {
	return &cobra.Command{
		Use:   "delete <allocation-id>",
		Short: "Delete an allocation",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := current()
			if err != nil {
				return err
			}

			id, err := parseID(args[0], "allocation id")
			if err != nil {
				return err
			}

			if err = app.api.DeleteAllocation(cmd.Context(), id); err != nil {
				return fmt.Errorf("delete allocation: %w", err)
			}

			successColor.Fprintf(cmd.OutOrStdout(), "allocation %d deleted\n", id)
			return nil
		},
	}
}

func printAllocations(out io.Writer, allocations ...models.Allocation) error {
	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tCLIENT\tASSET\tAMOUNT")
	for _, a := range allocations {
		fmt.Fprintf(w, "%d\t%d\t%s\t%s\n", a.ID, a.ClientID, a.AssetCode, a.Amount.String())
	}
	return w.Flush()
}
