package report

import (
	"bytes"
	"fmt"

	"github.com/finnegil-spec/orbital-roi/pkg/core/roi"
	"github.com/xuri/excelize/v2"
)

// Sheet names in the generated workbook.
const (
	SheetSummary   = "Summary"
	SheetCashFlows = "Cash Flows"
	SheetBreakdown = "Breakdown"
)

// Excel builds a workbook with the summary, the yearly flows as numbers
// and the per-store breakdown.
func Excel(r *Report) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName(f.GetSheetName(0), SheetSummary); err != nil {
		return nil, fmt.Errorf("set sheet name: %w", err)
	}
	for _, name := range []string{SheetCashFlows, SheetBreakdown} {
		if _, err := f.NewSheet(name); err != nil {
			return nil, fmt.Errorf("create sheet %s: %w", name, err)
		}
	}

	titleStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true, Size: 14},
	})
	if err != nil {
		return nil, fmt.Errorf("create title style: %w", err)
	}
	headerStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true, Color: "#FFFFFF"},
		Fill: excelize.Fill{Type: "pattern", Color: []string{"#333333"}, Pattern: 1},
	})
	if err != nil {
		return nil, fmt.Errorf("create header style: %w", err)
	}
	amountStyle, err := f.NewStyle(&excelize.Style{NumFmt: 3}) // #,##0
	if err != nil {
		return nil, fmt.Errorf("create amount style: %w", err)
	}

	// 1. Summary
	if err := f.SetColWidth(SheetSummary, "A", "B", 30); err != nil {
		return nil, fmt.Errorf("set col width: %w", err)
	}
	f.SetCellValue(SheetSummary, "A1", r.Title())
	f.SetCellStyle(SheetSummary, "A1", "A1", titleStyle)
	f.SetCellValue(SheetSummary, "A2", "Currency")
	f.SetCellValue(SheetSummary, "B2", r.Currency.Code())
	f.SetCellValue(SheetSummary, "A3", "Report ID")
	f.SetCellValue(SheetSummary, "B3", r.ID)
	for i, row := range summaryRows(r) {
		n := i + 5
		f.SetCellValue(SheetSummary, fmt.Sprintf("A%d", n), row.Label)
		f.SetCellValue(SheetSummary, fmt.Sprintf("B%d", n), row.Value)
	}

	// 2. Cash flows as raw numbers so the sheet can be reused in models
	if err := f.SetColWidth(SheetCashFlows, "A", "F", 20); err != nil {
		return nil, fmt.Errorf("set col width: %w", err)
	}
	headers := []string{"Year", "Adoption", "Net cash flow", "Discounted", "Subscription cost", "Cumulative"}
	if err := f.SetSheetRow(SheetCashFlows, "A1", &headers); err != nil {
		return nil, fmt.Errorf("write cash flow header: %w", err)
	}
	f.SetCellStyle(SheetCashFlows, "A1", "F1", headerStyle)

	res := r.Result
	for n := 1; n <= roi.Horizon; n++ {
		values := []interface{}{
			n,
			float64(r.Input.Adoption.Year(n)),
			res.CashFlows.Year(n),
			res.DiscountedCashFlows.Year(n),
			res.CostFlows.Year(n),
			res.CumulativeCashFlows.Year(n),
		}
		if err := f.SetSheetRow(SheetCashFlows, fmt.Sprintf("A%d", n+1), &values); err != nil {
			return nil, fmt.Errorf("write cash flow year %d: %w", n, err)
		}
	}
	f.SetCellStyle(SheetCashFlows, "C2", fmt.Sprintf("F%d", roi.Horizon+1), amountStyle)

	totalRow := roi.Horizon + 2
	f.SetCellValue(SheetCashFlows, fmt.Sprintf("A%d", totalRow), "NPV")
	f.SetCellValue(SheetCashFlows, fmt.Sprintf("D%d", totalRow), res.NPV)
	f.SetCellValue(SheetCashFlows, fmt.Sprintf("E%d", totalRow), res.CostNPV)
	f.SetCellStyle(SheetCashFlows, fmt.Sprintf("D%d", totalRow), fmt.Sprintf("E%d", totalRow), amountStyle)

	// 3. Breakdown
	if err := f.SetColWidth(SheetBreakdown, "A", "B", 30); err != nil {
		return nil, fmt.Errorf("set col width: %w", err)
	}
	f.SetCellValue(SheetBreakdown, "A1", "Driver")
	f.SetCellValue(SheetBreakdown, "B1", "Value per store")
	f.SetCellStyle(SheetBreakdown, "A1", "B1", headerStyle)
	for i, row := range breakdownRows(r) {
		f.SetCellValue(SheetBreakdown, fmt.Sprintf("A%d", i+2), row.Label)
		f.SetCellValue(SheetBreakdown, fmt.Sprintf("B%d", i+2), row.Value)
	}

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, fmt.Errorf("write excel: %w", err)
	}
	return buf.Bytes(), nil
}
