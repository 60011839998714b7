package report

import (
	"fmt"
	"strings"

	"github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/consts/pagesize"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"
)

var (
	pdfMuted    = &props.Color{Red: 100, Green: 100, Blue: 100}
	pdfHeaderBg = &props.Color{Red: 33, Green: 37, Blue: 41}
	pdfWhite    = &props.Color{Red: 255, Green: 255, Blue: 255}
)

// PDF renders a one-page A4 summary of the report.
func PDF(r *Report) ([]byte, error) {
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(15).
		WithTopMargin(15).
		WithRightMargin(15).
		Build()

	m := maroto.New(cfg)

	m.AddRows(
		row.New(12).Add(
			col.New(12).Add(text.New(r.Title(), props.Text{Size: 16, Style: fontstyle.Bold})),
		),
		row.New(6).Add(
			col.New(12).Add(text.New(
				fmt.Sprintf("Report %s, %s, amounts in %s", r.ID, r.CreatedAt.Format("2006-01-02"), r.Currency.Code()),
				props.Text{Size: 8, Color: pdfMuted},
			)),
		),
		row.New(4),
	)

	addPDFSection(m, "Key figures")
	for _, kv := range summaryRows(r) {
		addPDFPair(m, kv)
	}

	addPDFSection(m, "Chain cash flows")
	addPDFCashFlowHeader(m)
	for _, cf := range cashFlowRows(r) {
		cells := []string{fmt.Sprintf("%d", cf.Year), cf.Adoption, cf.Net, cf.Discounted, cf.Cost, cf.Cumulative}
		addPDFCashFlowRow(m, cells, props.Text{Size: 8, Align: align.Right})
	}

	addPDFSection(m, "Value per store (annual)")
	for _, kv := range breakdownRows(r) {
		addPDFPair(m, kv)
	}

	if r.Commentary != "" {
		addPDFSection(m, "Commentary")
		for _, para := range strings.Split(strings.TrimSpace(r.Commentary), "\n\n") {
			m.AddRows(row.New(18).Add(
				col.New(12).Add(text.New(para, props.Text{Size: 9})),
			))
		}
	}

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("failed to generate PDF: %w", err)
	}
	return doc.GetBytes(), nil
}

func addPDFSection(m core.Maroto, title string) {
	m.AddRows(
		row.New(4),
		row.New(8).Add(
			col.New(12).Add(text.New(title, props.Text{Size: 11, Style: fontstyle.Bold})),
		),
	)
}

func addPDFPair(m core.Maroto, kv pair) {
	m.AddRows(row.New(6).Add(
		col.New(8).Add(text.New(kv.Label, props.Text{Size: 9})),
		col.New(4).Add(text.New(kv.Value, props.Text{Size: 9, Align: align.Right})),
	))
}

func addPDFCashFlowHeader(m core.Maroto) {
	headers := []string{"Year", "Adoption", "Net", "Discounted", "Cost", "Cumulative"}
	addPDFCashFlowRow(m, headers, props.Text{Size: 8, Style: fontstyle.Bold, Align: align.Right, Color: pdfWhite})
}

func addPDFCashFlowRow(m core.Maroto, cells []string, style props.Text) {
	widths := []int{1, 2, 2, 2, 2, 3}
	cols := make([]core.Col, 0, len(cells))
	for i, c := range cells {
		column := col.New(widths[i]).Add(text.New(c, style))
		if style.Style == fontstyle.Bold {
			column.WithStyle(&props.Cell{BackgroundColor: pdfHeaderBg})
		}
		cols = append(cols, column)
	}
	m.AddRows(row.New(6).Add(cols...))
}
