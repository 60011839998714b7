package report

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
)

// Markdown renders the report as a GitHub-flavoured markdown document.
func Markdown(r *Report) string {
	var b strings.Builder

	fmt.Fprintf(&b, "# %s\n\n", r.Title())
	fmt.Fprintf(&b, "_Report %s, generated %s, amounts in %s._\n\n",
		r.ID, r.CreatedAt.Format("2006-01-02 15:04 MST"), r.Currency.Code())

	b.WriteString("## Key figures\n\n")
	b.WriteString("| KPI | Value |\n|---|---:|\n")
	for _, row := range summaryRows(r) {
		fmt.Fprintf(&b, "| %s | %s |\n", row.Label, row.Value)
	}

	b.WriteString("\n## Chain cash flows\n\n")
	b.WriteString("| Year | Adoption | Net cash flow | Discounted | Subscription cost | Cumulative |\n")
	b.WriteString("|---:|---:|---:|---:|---:|---:|\n")
	for _, cf := range cashFlowRows(r) {
		fmt.Fprintf(&b, "| %d | %s | %s | %s | %s | %s |\n",
			cf.Year, cf.Adoption, cf.Net, cf.Discounted, cf.Cost, cf.Cumulative)
	}

	b.WriteString("\n## Value per store (annual)\n\n")
	b.WriteString("| Driver | Value |\n|---|---:|\n")
	for _, row := range breakdownRows(r) {
		fmt.Fprintf(&b, "| %s | %s |\n", row.Label, row.Value)
	}

	if len(r.Warnings) > 0 {
		b.WriteString("\n## Adjusted inputs\n\n")
		for _, w := range r.Warnings {
			fmt.Fprintf(&b, "- %s\n", w.String())
		}
	}

	if r.Commentary != "" {
		b.WriteString("\n## Commentary\n\n")
		b.WriteString(strings.TrimSpace(r.Commentary))
		b.WriteString("\n")
	}

	b.WriteString("\n## How it is calculated\n\n")
	for _, note := range formulaNotes {
		fmt.Fprintf(&b, "- %s\n", note)
	}

	return b.String()
}

var markdownRenderer = goldmark.New(goldmark.WithExtensions(extension.GFM))

// HTML renders the markdown report to an HTML fragment.
func HTML(r *Report) ([]byte, error) {
	var buf bytes.Buffer
	if err := markdownRenderer.Convert([]byte(Markdown(r)), &buf); err != nil {
		return nil, fmt.Errorf("render html: %w", err)
	}
	return buf.Bytes(), nil
}
