package cli

import (
	"fmt"
	"text/tabwriter"

	"github.com/MKhiriev/allocation-ledger/models"
	"github.com/spf13/cobra"
)

func newClientsCommand(current func() (*App, error)) *cobra.Command {
	var (
		page, limit  uint64
		name, email  string
		onlyActive   bool
		onlyInactive bool
	)

	cmd := &cobra.Command{
		Use:   "clients",
		Short: "List clients with their decrypted allocation counts",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			app, err := current()
			if err != nil {
				return err
			}
			if onlyActive && onlyInactive {
				return fmt.Errorf("--active and --inactive are mutually exclusive")
			}

			filter := models.ClientFilter{Page: page, Limit: limit}
			if cmd.Flags().Changed("name") {
				filter.Name = &name
			}
			if cmd.Flags().Changed("email") {
				filter.Email = &email
			}
			if onlyActive || onlyInactive {
				status := onlyActive
				filter.Status = &status
			}

			list, err := app.api.ListClients(cmd.Context(), filter)
			if err != nil {
				return fmt.Errorf("list clients: %w", err)
			}

			out := cmd.OutOrStdout()
			headerColor.Fprintf(out, "Clients (%d total)\n", list.Total)

			w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
			fmt.Fprintln(w, "ID\tNAME\tEMAIL\tPHONE\tSTATUS\tALLOCATIONS")
			for _, client := range list.Clients {
				count, revealErr := app.revealCount(client.AllocationCount)
				if revealErr != nil {
					count = "?"
				}

				phone := "-"
				if client.Phone != nil {
					phone = *client.Phone
				}

				status := "inactive"
				if client.Status {
					status = "active"
				}

				fmt.Fprintf(w, "%d\t%s\t%s\t%s\t%s\t%s\n", client.ID, client.Name, client.Email, phone, status, count)
			}

			return w.Flush()
		},
	}

	cmd.Flags().Uint64Var(&page, "page", 0, "page number, starting at 1")
	cmd.Flags().Uint64Var(&limit, "limit", 0, "page size")
	cmd.Flags().StringVar(&name, "name", "", "filter by name substring")
	cmd.Flags().StringVar(&email, "email", "", "filter by email substring")
	cmd.Flags().BoolVar(&onlyActive, "active", false, "only active clients")
	cmd.Flags().BoolVar(&onlyInactive, "inactive", false, "only inactive clients")

	return cmd
}

func newCountCommand(current func() (*App, error)) *cobra.Command {
	return &cobra.Command{
		Use:   "count <client-id>",
		Short: "Show how many allocations a client holds",
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

			count, err := app.api.GetAllocationCount(cmd.Context(), clientID)
			if err != nil {
				return fmt.Errorf("get allocation count: %w", err)
			}

			value, err := app.revealCount(count.Count)
			if err != nil {
				return fmt.Errorf("decrypt allocation count: %w", err)
			}

			fmt.Fprintln(cmd.OutOrStdout(), value)
			return nil
		},
	}
}
