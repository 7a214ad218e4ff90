package cmd

import (
	"context"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	shopify "github.com/storekit/shopify-go"
)

func ordersCmd() *cobra.Command {
	ordersRoot := &cobra.Command{
		Use:   "orders",
		Short: "Browse and manage orders",
	}

	ordersRoot.AddCommand(
		ordersListCmd(),
		ordersGetCmd(),
		ordersCancelCmd(),
		ordersCloseCmd(),
	)

	return ordersRoot
}

func ordersListCmd() *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List orders",
		Example: `  shopctl orders list
  shopctl orders list --limit 25 --output json`,
		RunE: func(_ *cobra.Command, _ []string) error {
			c, err := newClient()
			if err != nil {
				return err
			}
			orders, err := c.Orders.List(context.Background(), &shopify.ListOptions{Limit: limit})
			if err != nil {
				return err
			}
			if jsonOutput() {
				return outputJSON(orders)
			}
			if len(orders) == 0 {
				fmt.Println("No orders found.")
				return nil
			}
			return printOrderTable(orders)
		},
	}

	cmd.Flags().IntVar(&limit, "limit", 0, "page size")

	return cmd
}

func ordersGetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "get <id>",
		Short: "Show order details",
		Args:  cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			id, err := strconv.ParseInt(args[0], 10, 64)
			if err != nil {
				return fmt.Errorf("invalid order id %q", args[0])
			}

			c, err := newClient()
			if err != nil {
				return err
			}
			o, err := c.Orders.Get(context.Background(), id)
			if err != nil {
				return err
			}
			if jsonOutput() {
				return outputJSON(o)
			}
			return printOrderDetail(o)
		},
	}
}

func ordersCancelCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "cancel <id>",
		Short: "Cancel an order",
		Args:  cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			id, err := strconv.ParseInt(args[0], 10, 64)
			if err != nil {
				return fmt.Errorf("invalid order id %q", args[0])
			}

			c, err := newClient()
			if err != nil {
				return err
			}
			o, err := c.Orders.Cancel(context.Background(), id)
			if err != nil {
				return err
			}
			fmt.Printf("Cancelled order %s\n", o.Name)
			return nil
		},
	}
}

func ordersCloseCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "close <id>",
		Short: "Close an order",
		Args:  cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			id, err := strconv.ParseInt(args[0], 10, 64)
			if err != nil {
				return fmt.Errorf("invalid order id %q", args[0])
			}

			c, err := newClient()
			if err != nil {
				return err
			}
			o, err := c.Orders.Close(context.Background(), id)
			if err != nil {
				return err
			}
			fmt.Printf("Closed order %s\n", o.Name)
			return nil
		},
	}
}
