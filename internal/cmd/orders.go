package cmd

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"
)

var ordersCmd = &cobra.Command{
	Use:   "orders",
	Short: "View and place orders",
}

var ordersListCmd = &cobra.Command{
	Use:   "list",
	Short: "List your orders",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp()
		if err != nil {
			return err
		}
		if err := a.bootstrap(cmd.Context()); err != nil {
			return err
		}

		orders, err := a.client.ListOrders(cmd.Context())
		if err != nil {
			return err
		}

		if len(orders) == 0 {
			fmt.Println("No orders yet.")
			return nil
		}

		w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
		fmt.Fprintln(w, "ID\tSTATUS\tTOTAL\tPLACED")
		for _, o := range orders {
			fmt.Fprintf(w, "%d\t%s\t$%s\t%s\n",
				o.ID, o.Status, o.TotalPrice, o.CreatedAt.Format("2006-01-02 15:04"))
		}
		w.Flush()
		return nil
	},
}

var ordersGetCmd = &cobra.Command{
	Use:   "get <id>",
	Short: "Show one order",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp()
		if err != nil {
			return err
		}
		if err := a.bootstrap(cmd.Context()); err != nil {
			return err
		}

		id, err := parseID(args[0])
		if err != nil {
			return err
		}

		o, err := a.client.GetOrder(cmd.Context(), id)
		if err != nil {
			return err
		}

		fmt.Printf("Order #%d\n", o.ID)
		fmt.Printf("Status: %s\n", o.Status)
		fmt.Printf("Placed: %s\n", o.CreatedAt.Format("2006-01-02 15:04"))
		fmt.Println()

		w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
		fmt.Fprintln(w, "PRODUCT\tQTY\tUNIT PRICE")
		for _, item := range o.Items {
			name := fmt.Sprintf("product %d", item.ProductID)
			if item.Product != nil {
				name = item.Product.Name
			}
			fmt.Fprintf(w, "%s\t%d\t$%s\n", name, item.Quantity, item.UnitPrice)
		}
		w.Flush()
		fmt.Printf("\nTotal: $%s\n", o.TotalPrice)
		return nil
	},
}

var ordersPlaceCmd = &cobra.Command{
	Use:   "place",
	Short: "Place an order for the whole cart",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp()
		if err != nil {
			return err
		}
		if err := a.bootstrap(cmd.Context()); err != nil {
			return err
		}

		items, err := a.client.ListCart(cmd.Context())
		if err != nil {
			return err
		}
		if len(items) == 0 {
			fmt.Println("Your cart is empty, nothing to order.")
			return nil
		}

		yes, _ := cmd.Flags().GetBool("yes")
		if !yes {
			confirmed, err := promptConfirm(
				fmt.Sprintf("Place an order for %d item(s)?", len(items)), true)
			if err != nil {
				return err
			}
			if !confirmed {
				fmt.Println("Aborted.")
				return nil
			}
		}

		order, err := a.client.PlaceOrder(cmd.Context())
		if err != nil {
			return err
		}

		fmt.Printf("Order placed #%d, total $%s\n", order.ID, order.TotalPrice)
		return nil
	},
}

func init() {
	ordersPlaceCmd.Flags().Bool("yes", false, "skip the confirmation prompt")

	ordersCmd.AddCommand(ordersListCmd)
	ordersCmd.AddCommand(ordersGetCmd)
	ordersCmd.AddCommand(ordersPlaceCmd)
	rootCmd.AddCommand(ordersCmd)
}
