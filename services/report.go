package services

import (
	"bytes"
	"fmt"
	"html"
	"sort"
	"strings"
	"time"

	"caseboard/models"

	"github.com/xuri/excelize/v2"
)

var reportColumns = []string{"Client", "Case", "Case #", "Type", "County", "Current Focus"}

// reportRows orders cases by client name and flattens them into report cells.
func reportRows(cases []models.Case) [][]string {
	sorted := make([]models.Case, len(cases))
	copy(sorted, cases)
	sort.SliceStable(sorted, func(i, j int) bool {
		return strings.ToLower(sorted[i].ClientName) < strings.ToLower(sorted[j].ClientName)
	})

	dash := func(s string) string {
		if s == "" {
			return "—"
		}
		return s
	}

	rows := make([][]string, 0, len(sorted))
	for _, c := range sorted {
		rows = append(rows, []string{
			dash(c.ClientName),
			dash(c.CaseName),
			c.CaseNumber,
			dash(c.CaseType),
			dash(c.County),
			c.CurrentFocus,
		})
	}
	return rows
}

// ClientSummaryHTML builds the printable client case summary document.
func ClientSummaryHTML(cases []models.Case) string {
	var b strings.Builder
	b.WriteString(`<!DOCTYPE html><html><head><meta charset="utf-8"><style>
body { font-family: Helvetica, Arial, sans-serif; color: #111; }
h1 { font-size: 22px; margin-bottom: 2px; }
.printed { font-size: 11px; color: #444; margin-bottom: 12px; }
table { width: 100%; border-collapse: collapse; font-size: 9px; }
th { background: #0F1520; color: #F2EBE3; text-align: left; padding: 6px 4px; font-size: 10px; }
td { border: 0.25px solid #CCCCCC; padding: 4px; vertical-align: top; }
tr:nth-child(even) td { background: #F5F5F5; }
</style></head><body>`)
	b.WriteString("<h1>Client Case Summary</h1>")
	stamp := time.Now().Format("January 2, 2006 3:04 PM")
	b.WriteString(`<div class="printed">Printed ` + stamp + `</div>`)

	b.WriteString("<table><thead><tr>")
	for _, col := range reportColumns {
		b.WriteString("<th>" + html.EscapeString(col) + "</th>")
	}
	b.WriteString("</tr></thead><tbody>")
	for _, row := range reportRows(cases) {
		b.WriteString("<tr>")
		for _, cellValue := range row {
			b.WriteString("<td>" + strings.ReplaceAll(html.EscapeString(cellValue), "\n", "<br/>") + "</td>")
		}
		b.WriteString("</tr>")
	}
	b.WriteString("</tbody></table></body></html>")
	return b.String()
}

// ClientSummaryPDF renders the client case summary as a PDF.
func ClientSummaryPDF(cases []models.Case) ([]byte, error) {
	return GeneratePDF(ClientSummaryHTML(cases), DefaultPDFOptions())
}

// CaseListWorkbook exports the case list as a spreadsheet with the same
// columns as the PDF report.
func CaseListWorkbook(cases []models.Case) (*bytes.Buffer, error) {
	f := excelize.NewFile()
	defer f.Close()

	sheet := "Cases"
	f.SetSheetName("Sheet1", sheet)

	for i, col := range reportColumns {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		f.SetCellValue(sheet, cell, col)
	}
	headerStyle, _ := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	f.SetCellStyle(sheet, "A1", "F1", headerStyle)
	f.SetColWidth(sheet, "A", "B", 28)
	f.SetColWidth(sheet, "C", "E", 16)
	f.SetColWidth(sheet, "F", "F", 50)

	for rowIdx, row := range reportRows(cases) {
		for colIdx, value := range row {
			cell, _ := excelize.CoordinatesToCellName(colIdx+1, rowIdx+2)
			f.SetCellValue(sheet, cell, value)
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("failed to write excel buffer: %w", err)
	}
	return buf, nil
}
