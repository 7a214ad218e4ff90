package cmd

import (
	"context"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	shopify "github.com/storekit/shopify-go"
)

func productsCmd() *cobra.Command {
	productsRoot := &cobra.Command{
		Use:   "products",
		Short: "Browse the product catalog",
	}

	productsRoot.AddCommand(
		productsListCmd(),
		productsGetCmd(),
		productsCountCmd(),
		productsDeleteCmd(),
	)

	return productsRoot
}

func productsListCmd() *cobra.Command {
	var (
		limit int
		all   bool
	)

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List products",
		Example: `  shopctl products list
  shopctl products list --limit 10 --output json
  shopctl products list --all`,
		RunE: func(_ *cobra.Command, _ []string) error {
			c, err := newClient()
			if err != nil {
				return err
			}

			opt := &shopify.ListOptions{Limit: limit}
			var products []shopify.Product
			if all {
				err = c.Products.ListAll(context.Background(), opt, func(page []shopify.Product) error {
					products = append(products, page...)
					return nil
				})
			} else {
				products, err = c.Products.List(context.Background(), opt)
			}
			if err != nil {
				return err
			}

			if jsonOutput() {
				return outputJSON(products)
			}
			if len(products) == 0 {
				fmt.Println("No products found.")
				return nil
			}
			return printProductTable(products)
		},
	}

	cmd.Flags().IntVar(&limit, "limit", 0, "page size")
	cmd.Flags().BoolVar(&all, "all", false, "follow pagination to fetch every page")

	return cmd
}

func productsGetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "get <id>",
		Short: "Show product details",
		Args:  cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			id, err := strconv.ParseInt(args[0], 10, 64)
			if err != nil {
				return fmt.Errorf("invalid product id %q", args[0])
			}

			c, err := newClient()
			if err != nil {
				return err
			}
			p, err := c.Products.Get(context.Background(), id)
			if err != nil {
				return err
			}
			if jsonOutput() {
				return outputJSON(p)
			}
			return printProductDetail(p)
		},
	}
}

func productsCountCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "count",
		Short: "Count products",
		RunE: func(_ *cobra.Command, _ []string) error {
			c, err := newClient()
			if err != nil {
				return err
			}
			n, err := c.Products.Count(context.Background(), nil)
			if err != nil {
				return err
			}
			fmt.Println(n)
			return nil
		},
	}
}

func productsDeleteCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a product",
		Args:  cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			id, err := strconv.ParseInt(args[0], 10, 64)
			if err != nil {
				return fmt.Errorf("invalid product id %q", args[0])
			}

			c, err := newClient()
			if err != nil {
				return err
			}
			if err := c.Products.Delete(context.Background(), id); err != nil {
				return err
			}
			fmt.Println("Deleted product", id)
			return nil
		},
	}
}
