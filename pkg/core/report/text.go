package report

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"
)

// WriteText prints the report for a terminal.
func WriteText(w io.Writer, r *Report) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', tabwriter.AlignRight)

	fmt.Fprintf(w, "%s (%s)\n%s\n", r.Title(), r.Currency.Code(), strings.Repeat("=", len(r.Title())+6))
	for _, kv := range summaryRows(r) {
		fmt.Fprintf(tw, "%s\t%s\t\n", kv.Label, kv.Value)
	}
	if err := tw.Flush(); err != nil {
		return err
	}

	fmt.Fprintln(w, "\nChain cash flows")
	fmt.Fprintln(tw, "Year\tAdoption\tNet\tDiscounted\tCost\tCumulative\t")
	for _, cf := range cashFlowRows(r) {
		fmt.Fprintf(tw, "%d\t%s\t%s\t%s\t%s\t%s\t\n", cf.Year, cf.Adoption, cf.Net, cf.Discounted, cf.Cost, cf.Cumulative)
	}
	if err := tw.Flush(); err != nil {
		return err
	}

	fmt.Fprintln(w, "\nValue per store (annual)")
	for _, kv := range breakdownRows(r) {
		fmt.Fprintf(tw, "%s\t%s\t\n", kv.Label, kv.Value)
	}
	if err := tw.Flush(); err != nil {
		return err
	}

	for _, v := range r.Warnings {
		fmt.Fprintf(w, "warning: %s\n", v)
	}
	if r.Commentary != "" {
		fmt.Fprintf(w, "\n%s\n", strings.TrimSpace(r.Commentary))
	}
	return nil
}

// Text returns WriteText output as a string.
func Text(r *Report) string {
	var b strings.Builder
	_ = WriteText(&b, r)
	return b.String()
}
