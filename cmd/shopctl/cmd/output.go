package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"text/tabwriter"

	shopify "github.com/storekit/shopify-go"
)

// tabWriter wraps tabwriter with error tracking.
type tabWriter struct {
	*tabwriter.Writer
	err error
}

func newTabWriter(w io.Writer) *tabWriter {
	return &tabWriter{Writer: tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)}
}

func (tw *tabWriter) writef(format string, args ...any) {
	if tw.err != nil {
		return
	}
	_, tw.err = fmt.Fprintf(tw.Writer, format, args...)
}

func (tw *tabWriter) finish() error {
	if tw.err != nil {
		return tw.err
	}
	return tw.Flush()
}

func printProductTable(products []shopify.Product) error {
	tw := newTabWriter(os.Stdout)
	tw.writef("ID\tTITLE\tVENDOR\tTYPE\tSTATUS\tVARIANTS\n")
	for i := range products {
		tw.writef("%d\t%s\t%s\t%s\t%s\t%d\n",
			products[i].ID,
			truncate(products[i].Title, 40),
			products[i].Vendor,
			products[i].ProductType,
			products[i].Status,
			len(products[i].Variants),
		)
	}
	return tw.finish()
}

func printProductDetail(p *shopify.Product) error {
	tw := newTabWriter(os.Stdout)
	tw.writef("ID:\t%d\n", p.ID)
	tw.writef("Title:\t%s\n", p.Title)
	tw.writef("Handle:\t%s\n", p.Handle)
	tw.writef("Vendor:\t%s\n", p.Vendor)
	tw.writef("Type:\t%s\n", p.ProductType)
	tw.writef("Status:\t%s\n", p.Status)
	tw.writef("Tags:\t%s\n", p.Tags)
	for i := range p.Variants {
		v := &p.Variants[i]
		tw.writef("Variant:\t%d %s $%s (sku %s)\n", v.ID, v.Title, v.Price, v.SKU)
	}
	return tw.finish()
}

func printOrderTable(orders []shopify.Order) error {
	tw := newTabWriter(os.Stdout)
	tw.writef("ID\tNAME\tTOTAL\tFINANCIAL\tFULFILLMENT\tITEMS\n")
	for i := range orders {
		tw.writef("%d\t%s\t%s %s\t%s\t%s\t%d\n",
			orders[i].ID,
			orders[i].Name,
			orders[i].TotalPrice,
			orders[i].Currency,
			orders[i].FinancialStatus,
			orders[i].FulfillmentStatus,
			len(orders[i].LineItems),
		)
	}
	return tw.finish()
}

func printOrderDetail(o *shopify.Order) error {
	tw := newTabWriter(os.Stdout)
	tw.writef("ID:\t%d\n", o.ID)
	tw.writef("Name:\t%s\n", o.Name)
	tw.writef("Email:\t%s\n", o.Email)
	tw.writef("Total:\t%s %s\n", o.TotalPrice, o.Currency)
	tw.writef("Financial:\t%s\n", o.FinancialStatus)
	tw.writef("Fulfillment:\t%s\n", o.FulfillmentStatus)
	tw.writef("Created:\t%s\n", o.CreatedAt)
	for i := range o.LineItems {
		li := &o.LineItems[i]
		tw.writef("Item:\t%dx %s $%s\n", li.Quantity, truncate(li.Title, 40), li.Price)
	}
	return tw.finish()
}

func printWebhookTable(hooks []shopify.Webhook) error {
	tw := newTabWriter(os.Stdout)
	tw.writef("ID\tTOPIC\tADDRESS\tFORMAT\n")
	for i := range hooks {
		tw.writef("%d\t%s\t%s\t%s\n",
			hooks[i].ID,
			hooks[i].Topic,
			hooks[i].Address,
			hooks[i].Format,
		)
	}
	return tw.finish()
}

func printRateLimits(s shopify.RateLimitState) error {
	tw := newTabWriter(os.Stdout)
	tw.writef("Used:\t%d\n", s.Used)
	tw.writef("Capacity:\t%d\n", s.Capacity)
	tw.writef("Remaining:\t%d\n", s.Remaining)
	if !s.ObservedAt.IsZero() {
		tw.writef("Observed:\t%s\n", s.ObservedAt.Format("2006-01-02 15:04:05"))
	}
	return tw.finish()
}

func outputJSON(v any) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func truncate(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen-3] + "..."
}
