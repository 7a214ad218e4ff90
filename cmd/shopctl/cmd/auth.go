package cmd

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func authCmd() *cobra.Command {
	authRoot := &cobra.Command{
		Use:   "auth",
		Short: "Drive the OAuth install flow",
	}

	authRoot.AddCommand(
		authURLCmd(),
		authExchangeCmd(),
	)

	return authRoot
}

func authURLCmd() *cobra.Command {
	var scopes string

	cmd := &cobra.Command{
		Use:   "url",
		Short: "Print the authorization URL for a shop",
		Long: "Build the URL a merchant visits to grant this app access.\n" +
			"After they approve, the platform redirects to the configured\n" +
			"redirect_uri with a signed callback.",
		Example: `  shopctl auth url --store demo-shop.myshopify.com
  shopctl auth url --store demo-shop.myshopify.com --scopes read_products,read_orders`,
		RunE: func(_ *cobra.Command, _ []string) error {
			c, err := newClient()
			if err != nil {
				return err
			}

			var requested []string
			if scopes != "" {
				requested = strings.Split(scopes, ",")
			}

			u, err := c.AuthorizeURL(viper.GetString("store"), requested)
			if err != nil {
				return err
			}
			fmt.Println(u)
			return nil
		},
	}

	cmd.Flags().StringVar(&scopes, "scopes", "", "comma-separated access scopes")

	return cmd
}

func authExchangeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "exchange <callback-url>",
		Short: "Exchange an OAuth callback for an access token",
		Long: "Verify the signed callback URL the platform redirected the\n" +
			"merchant to and exchange its code for a permanent access token.\n" +
			"Paste the full callback URL, including its query string.",
		Example: `  shopctl auth exchange \
    'https://app.example.com/callback?code=...&hmac=...&shop=...&state=...&timestamp=...'`,
		Args: cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			c, err := newClient()
			if err != nil {
				return err
			}

			token, err := c.CompleteOAuth(context.Background(), viper.GetString("store"), args[0])
			if err != nil {
				return err
			}
			fmt.Println(token)
			return nil
		},
	}
}
