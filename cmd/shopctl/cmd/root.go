// Package cmd implements the shopctl CLI commands.
package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	shopify "github.com/storekit/shopify-go"
	"github.com/storekit/shopify-go/internal/config"
)

var (
	cfgFile string
	rootCmd = &cobra.Command{
		Use:   "shopctl",
		Short: "CLI client for the Admin API",
		Long: "shopctl is a command-line client for a shop's Admin API.\n" +
			"It lets you browse products and orders, manage webhook\n" +
			"subscriptions, and drive the OAuth install flow from the terminal.",
	}
)

// Root returns the root cobra command for documentation generation.
func Root() *cobra.Command {
	return rootCmd
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().
		StringVar(&cfgFile, "config", "", "config file (default $HOME/.shopctl.yaml)")
	rootCmd.PersistentFlags().
		String("store", "", "shop domain (e.g. demo-shop.myshopify.com)")
	rootCmd.PersistentFlags().
		String("output", "table", "output format (table, json)")

	cobra.CheckErr(viper.BindPFlag("store", rootCmd.PersistentFlags().Lookup("store")))
	cobra.CheckErr(viper.BindPFlag("output", rootCmd.PersistentFlags().Lookup("output")))

	rootCmd.AddCommand(productsCmd())
	rootCmd.AddCommand(ordersCmd())
	rootCmd.AddCommand(webhooksCmd())
	rootCmd.AddCommand(limitsCmd())
	rootCmd.AddCommand(authCmd())
}

func initConfig() {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		home, err := os.UserHomeDir()
		cobra.CheckErr(err)

		viper.AddConfigPath(home)
		viper.SetConfigType("yaml")
		viper.SetConfigName(".shopctl")
	}

	viper.SetEnvPrefix("SHOPIFY")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}

func newClient() (*shopify.Client, error) {
	sc := config.ShopifyConfig{
		AuthType:    viper.GetString("auth_type"),
		APIKey:      viper.GetString("api_key"),
		APISecret:   viper.GetString("api_secret"),
		Store:       viper.GetString("store"),
		RedirectURI: viper.GetString("redirect_uri"),
		Scopes:      viper.GetStringSlice("scopes"),
		APIVersion:  viper.GetString("api_version"),
		Timeout:     viper.GetDuration("timeout"),
		RateLimit: config.RateLimitConfig{
			LeakRate: viper.GetFloat64("rate_limit.leak_rate"),
			Capacity: viper.GetInt("rate_limit.capacity"),
		},
	}
	if sc.AuthType == "" {
		sc.AuthType = string(shopify.AuthPrivate)
	}

	c, err := sc.Client()
	if err != nil {
		return nil, err
	}
	if tok := viper.GetString("access_token"); tok != "" {
		c.SetAccessToken(tok)
	}
	return c, nil
}

func jsonOutput() bool {
	return viper.GetString("output") == "json"
}
