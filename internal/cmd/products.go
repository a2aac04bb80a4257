package cmd

import (
	"fmt"
	"strconv"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/commercehq/shopctl/internal/api"
	"github.com/commercehq/shopctl/internal/errors"
	"github.com/commercehq/shopctl/internal/guard"
)

var productsCmd = &cobra.Command{
	Use:   "products",
	Short: "Browse and manage the product catalog",
}

var productsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List products",
	Long: `List the product catalog, optionally filtered by search text.

Examples:
  shopctl products list
  shopctl products list --query shirt --page 2`,
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp()
		if err != nil {
			return err
		}
		if err := a.bootstrap(cmd.Context()); err != nil {
			return err
		}

		page, _ := cmd.Flags().GetInt("page")
		limit, _ := cmd.Flags().GetInt("limit")
		query, _ := cmd.Flags().GetString("query")

		result, err := a.client.ListProducts(cmd.Context(), api.ListParams{
			Page:  page,
			Limit: limit,
			Query: query,
		})
		if err != nil {
			return err
		}

		if len(result.Items) == 0 {
			fmt.Println("No products found.")
			return nil
		}

		w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
		fmt.Fprintln(w, "ID\tNAME\tPRICE\tSTOCK")
		for _, p := range result.Items {
			fmt.Fprintf(w, "%d\t%s\t$%s\t%d\n", p.ID, p.Name, p.Price, p.Stock)
		}
		w.Flush()
		fmt.Printf("\n%d products, page %d\n", result.Total, result.Page)
		return nil
	},
}

var productsGetCmd = &cobra.Command{
	Use:   "get <id>",
	Short: "Show one product",
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

		p, err := a.client.GetProduct(cmd.Context(), id)
		if err != nil {
			return err
		}

		fmt.Printf("Name:  %s\n", p.Name)
		if p.Description != nil && *p.Description != "" {
			fmt.Printf("About: %s\n", *p.Description)
		}
		fmt.Printf("Price: $%s\n", p.Price)
		fmt.Printf("Stock: %d\n", p.Stock)
		for _, img := range p.Images {
			fmt.Printf("Image: %s\n", img.URL)
		}
		return nil
	},
}

var productsCreateCmd = &cobra.Command{
	Use:   "create",
	Short: "Create a product (admin)",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp()
		if err != nil {
			return err
		}
		if err := a.bootstrap(cmd.Context()); err != nil {
			return err
		}
		if err := guard.RequireAdmin(a.session.CurrentUser()); err != nil {
			return err
		}

		input, err := productInputFromFlags(cmd)
		if err != nil {
			return err
		}

		p, err := a.client.CreateProduct(cmd.Context(), input)
		if err != nil {
			return err
		}

		if err := uploadImagesFromFlags(cmd, a, p.ID); err != nil {
			return err
		}

		fmt.Printf("Created product %d: %s\n", p.ID, p.Name)
		return nil
	},
}

var productsUpdateCmd = &cobra.Command{
	Use:   "update <id>",
	Short: "Update a product (admin)",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp()
		if err != nil {
			return err
		}
		if err := a.bootstrap(cmd.Context()); err != nil {
			return err
		}
		if err := guard.RequireAdmin(a.session.CurrentUser()); err != nil {
			return err
		}

		id, err := parseID(args[0])
		if err != nil {
			return err
		}

		input, err := productInputFromFlags(cmd)
		if err != nil {
			return err
		}

		if err := a.client.UpdateProduct(cmd.Context(), id, input); err != nil {
			return err
		}

		if err := uploadImagesFromFlags(cmd, a, id); err != nil {
			return err
		}

		fmt.Printf("Updated product %d\n", id)
		return nil
	},
}

var productsDeleteCmd = &cobra.Command{
	Use:   "delete <id>",
	Short: "Delete a product (admin)",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp()
		if err != nil {
			return err
		}
		if err := a.bootstrap(cmd.Context()); err != nil {
			return err
		}
		if err := guard.RequireAdmin(a.session.CurrentUser()); err != nil {
			return err
		}

		id, err := parseID(args[0])
		if err != nil {
			return err
		}

		yes, _ := cmd.Flags().GetBool("yes")
		if !yes {
			confirmed, err := promptConfirm(fmt.Sprintf("Delete product %d?", id), false)
			if err != nil {
				return err
			}
			if !confirmed {
				fmt.Println("Aborted.")
				return nil
			}
		}

		if err := a.client.DeleteProduct(cmd.Context(), id); err != nil {
			return err
		}

		fmt.Printf("Deleted product %d\n", id)
		return nil
	},
}

var productsUploadCmd = &cobra.Command{
	Use:   "upload <id> <file>...",
	Short: "Upload product images (admin)",
	Args:  cobra.MinimumNArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp()
		if err != nil {
			return err
		}
		if err := a.bootstrap(cmd.Context()); err != nil {
			return err
		}
		if err := guard.RequireAdmin(a.session.CurrentUser()); err != nil {
			return err
		}

		id, err := parseID(args[0])
		if err != nil {
			return err
		}

		if err := a.client.UploadProductImages(cmd.Context(), id, args[1:]); err != nil {
			return err
		}

		fmt.Printf("Uploaded %d image(s) to product %d\n", len(args)-1, id)
		return nil
	},
}

// productInputFromFlags builds the payload, prompting for missing
// required fields and validating the numeric ones.
func productInputFromFlags(cmd *cobra.Command) (api.ProductInput, error) {
	name, _ := cmd.Flags().GetString("name")
	description, _ := cmd.Flags().GetString("description")
	priceStr, _ := cmd.Flags().GetString("price")
	stockStr, _ := cmd.Flags().GetString("stock")

	var err error
	if name, err = promptString("Name", name, true); err != nil {
		return api.ProductInput{}, err
	}
	if priceStr, err = promptString("Price", priceStr, true); err != nil {
		return api.ProductInput{}, err
	}
	if stockStr, err = promptString("Stock", stockStr, true); err != nil {
		return api.ProductInput{}, err
	}

	price, err := strconv.ParseFloat(strings.TrimSpace(priceStr), 64)
	if err != nil || price <= 0 {
		return api.ProductInput{}, errors.New(errors.ErrCodeValidateNumber, "price must be a positive number")
	}

	stock, err := strconv.Atoi(strings.TrimSpace(stockStr))
	if err != nil || stock < 0 {
		return api.ProductInput{}, errors.New(errors.ErrCodeValidateNumber, "stock must be a non-negative integer")
	}

	return api.ProductInput{
		Name:        name,
		Description: description,
		Price:       price,
		Stock:       stock,
	}, nil
}

func uploadImagesFromFlags(cmd *cobra.Command, a *app, id int64) error {
	images, _ := cmd.Flags().GetStringSlice("image")
	if len(images) == 0 {
		return nil
	}
	return a.client.UploadProductImages(cmd.Context(), id, images)
}

// parseID parses a positional numeric id argument
func parseID(arg string) (int64, error) {
	id, err := strconv.ParseInt(arg, 10, 64)
	if err != nil || id <= 0 {
		return 0, errors.New(errors.ErrCodeValidateNumber, fmt.Sprintf("invalid id: %q", arg))
	}
	return id, nil
}

func init() {
	productsListCmd.Flags().Int("page", 1, "page number")
	productsListCmd.Flags().Int("limit", 20, "items per page")
	productsListCmd.Flags().String("query", "", "search text")

	for _, c := range []*cobra.Command{productsCreateCmd, productsUpdateCmd} {
		c.Flags().String("name", "", "product name")
		c.Flags().String("description", "", "product description")
		c.Flags().String("price", "", "price, e.g. 19.99")
		c.Flags().String("stock", "", "stock count")
		c.Flags().StringSlice("image", nil, "image file to upload, repeatable")
	}

	productsDeleteCmd.Flags().Bool("yes", false, "skip the confirmation prompt")

	productsCmd.AddCommand(productsListCmd)
	productsCmd.AddCommand(productsGetCmd)
	productsCmd.AddCommand(productsCreateCmd)
	productsCmd.AddCommand(productsUpdateCmd)
	productsCmd.AddCommand(productsDeleteCmd)
	productsCmd.AddCommand(productsUploadCmd)
	rootCmd.AddCommand(productsCmd)
}
