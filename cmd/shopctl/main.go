// Package main is the entry point for the shopctl CLI client.
package main

import (
	"github.com/storekit/shopify-go/cmd/shopctl/cmd"
)

func main() {
	cmd.Execute()
}
