package cli

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/polkiloo/salesorder/internal/domain/ledger"
)

func newCatalogCmd(opts *rootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "catalog",
		Short: "List back office customers or items",
	}
	cmd.AddCommand(newCatalogCustomersCmd(opts))
	cmd.AddCommand(newCatalogItemsCmd(opts))
	return cmd
}

func newCatalogCustomersCmd(opts *rootOptions) *cobra.Command {
	var jsonOut bool
	cmd := &cobra.Command{
		Use:   "customers",
		Short: "List customers",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := opts.client(cmd)
			if err != nil {
				return err
			}
			customers, err := client.Customers(cmd.Context())
			if err != nil {
				return fmt.Errorf("load customers: %w", err)
			}
			if jsonOut {
				out := make([]customerView, 0, len(customers))
				for _, c := range customers {
					out = append(out, customerView{Code: c.Code, Name: c.Name, Email: c.Email})
				}
				return writeJSON(cmd, out)
			}
			fmt.Fprintln(cmd.OutOrStdout(), renderCustomers(customers))
			return nil
		},
	}
	cmd.Flags().BoolVar(&jsonOut, "json", false, "output as JSON")
	return cmd
}

func newCatalogItemsCmd(opts *rootOptions) *cobra.Command {
	var jsonOut bool
	cmd := &cobra.Command{
		Use:   "items",
		Short: "List items with the price a new line would take",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := opts.client(cmd)
			if err != nil {
				return err
			}
			items, err := client.Items(cmd.Context())
			if err != nil {
				return fmt.Errorf("load items: %w", err)
			}
			if jsonOut {
				out := make([]itemView, 0, len(items))
				for _, it := range items {
					out = append(out, itemView{Code: it.Code, Name: it.Name, Type: it.Type, Price: json.Number(ledger.ResolvePrice(it).String())})
				}
				return writeJSON(cmd, out)
			}
			fmt.Fprintln(cmd.OutOrStdout(), renderItems(items))
			return nil
		},
	}
	cmd.Flags().BoolVar(&jsonOut, "json", false, "output as JSON")
	return cmd
}

type customerView struct {
	Code  string `json:"code"`
	Name  string `json:"name"`
	Email string `json:"email,omitempty"`
}

type itemView struct {
	Code  string      `json:"code"`
	Name  string      `json:"name"`
	Type  string      `json:"type,omitempty"`
	Price json.Number `json:"price"`
}

func writeJSON(cmd *cobra.Command, v any) error {
	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
