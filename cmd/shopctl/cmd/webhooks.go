package cmd

import (
	"context"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	shopify "github.com/storekit/shopify-go"
)

func webhooksCmd() *cobra.Command {
	webhooksRoot := &cobra.Command{
		Use:   "webhooks",
		Short: "Manage webhook subscriptions",
	}

	webhooksRoot.AddCommand(
		webhooksListCmd(),
		webhooksCreateCmd(),
		webhooksDeleteCmd(),
	)

	return webhooksRoot
}

func webhooksListCmd() *cobra.Command {
	var topic string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List webhook subscriptions",
		Example: `  shopctl webhooks list
  shopctl webhooks list --topic orders/create`,
		RunE: func(_ *cobra.Command, _ []string) error {
			c, err := newClient()
			if err != nil {
				return err
			}
			hooks, err := c.Webhooks.List(context.Background(), topic)
			if err != nil {
				return err
			}
			if jsonOutput() {
				return outputJSON(hooks)
			}
			if len(hooks) == 0 {
				fmt.Println("No webhooks found.")
				return nil
			}
			return printWebhookTable(hooks)
		},
	}

	cmd.Flags().StringVar(&topic, "topic", "", "filter by topic")

	return cmd
}

func webhooksCreateCmd() *cobra.Command {
	var (
		topic   string
		address string
	)

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Subscribe to a topic",
		Example: `  shopctl webhooks create --topic orders/create \
    --address https://app.example.com/hooks/orders`,
		RunE: func(_ *cobra.Command, _ []string) error {
			if topic == "" || address == "" {
				return fmt.Errorf("--topic and --address are required")
			}

			c, err := newClient()
			if err != nil {
				return err
			}
			created, err := c.Webhooks.Create(context.Background(), shopify.Webhook{
				Topic:   topic,
				Address: address,
			})
			if err != nil {
				return err
			}
			if jsonOutput() {
				return outputJSON(created)
			}
			fmt.Printf("Created webhook %d for %s\n", created.ID, created.Topic)
			return nil
		},
	}

	cmd.Flags().StringVar(&topic, "topic", "", "event topic (e.g. orders/create)")
	cmd.Flags().StringVar(&address, "address", "", "delivery URL")

	return cmd
}

func webhooksDeleteCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a webhook subscription",
		Args:  cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			id, err := strconv.ParseInt(args[0], 10, 64)
			if err != nil {
				return fmt.Errorf("invalid webhook id %q", args[0])
			}

			c, err := newClient()
			if err != nil {
				return err
			}
			if err := c.Webhooks.Delete(context.Background(), id); err != nil {
				return err
			}
			fmt.Println("Deleted webhook", id)
			return nil
		},
	}
}
