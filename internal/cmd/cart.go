package cmd

import (
	"fmt"
	"strconv"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/commercehq/shopctl/internal/api"
	"github.com/commercehq/shopctl/internal/errors"
)

var cartCmd = &cobra.Command{
	Use:   "cart",
	Short: "Manage the shopping cart",
}

var cartShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show the cart with its subtotal",
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
			fmt.Println("Your cart is empty.")
			return nil
		}

		w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
		fmt.Fprintln(w, "ID\tPRODUCT\tQTY\tPRICE\tTOTAL")
		for _, item := range items {
			fmt.Fprintf(w, "%d\t%s\t%d\t$%s\t$%s\n",
				item.ID, item.Product.Name, item.Quantity,
				item.Product.Price, api.FormatPrice(item.LineTotal()))
		}
		w.Flush()
		fmt.Printf("\nSubtotal: $%s\n", api.FormatPrice(api.Subtotal(items)))
		return nil
	},
}

var cartAddCmd = &cobra.Command{
	Use:   "add <product-id>",
	Short: "Add a product to the cart",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp()
		if err != nil {
			return err
		}
		if err := a.bootstrap(cmd.Context()); err != nil {
			return err
		}

		productID, err := parseID(args[0])
		if err != nil {
			return err
		}

		quantity, _ := cmd.Flags().GetInt("quantity")
		if quantity < 1 {
			return errors.NewQuantityError("must be at least 1")
		}

		product, err := a.client.GetProduct(cmd.Context(), productID)
		if err != nil {
			return err
		}
		if product.Stock <= 0 {
			return errors.NewQuantityError(fmt.Sprintf("%s is out of stock", product.Name))
		}
		if quantity > product.Stock {
			return errors.NewQuantityError(
				fmt.Sprintf("only %d of %s in stock", product.Stock, product.Name))
		}

		if err := a.client.AddCartItem(cmd.Context(), productID, quantity); err != nil {
			return err
		}

		fmt.Printf("Added %d x %s to cart\n", quantity, product.Name)
		return nil
	},
}

var cartUpdateCmd = &cobra.Command{
	Use:   "update <item-id> <quantity>",
	Short: "Change a cart line's quantity",
	Args:  cobra.ExactArgs(2),
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

		quantity, err := strconv.Atoi(args[1])
		if err != nil || quantity < 1 {
			return errors.NewQuantityError("must be a positive integer")
		}

		if err := a.client.UpdateCartItem(cmd.Context(), id, quantity); err != nil {
			return err
		}

		fmt.Printf("Updated cart item %d to quantity %d\n", id, quantity)
		return nil
	},
}

var cartRemoveCmd = &cobra.Command{
	Use:   "remove <item-id>",
	Short: "Remove a line from the cart",
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

		if err := a.client.RemoveCartItem(cmd.Context(), id); err != nil {
			return err
		}

		fmt.Printf("Removed cart item %d\n", id)
		return nil
	},
}

func init() {
	cartAddCmd.Flags().Int("quantity", 1, "quantity to add")

	cartCmd.AddCommand(cartShowCmd)
	cartCmd.AddCommand(cartAddCmd)
	cartCmd.AddCommand(cartUpdateCmd)
	cartCmd.AddCommand(cartRemoveCmd)
	rootCmd.AddCommand(cartCmd)
}
