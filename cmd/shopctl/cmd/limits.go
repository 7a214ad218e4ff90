package cmd

import (
	"context"
	"encoding/json"

	"github.com/spf13/cobra"
)

func limitsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "limits",
		Short: "Show the current API call limit",
		Long: "Perform one lightweight API call and print the call-limit bucket\n" +
			"state the platform reported for it.",
		RunE: func(_ *cobra.Command, _ []string) error {
			c, err := newClient()
			if err != nil {
				return err
			}

			// Any authenticated call refreshes the bucket snapshot.
			var shop map[string]json.RawMessage
			if err := c.Get(context.Background(), "shop.json", nil, &shop); err != nil {
				return err
			}

			state := c.RateLimits()
			if jsonOutput() {
				return outputJSON(state)
			}
			return printRateLimits(state)
		},
	}
}
