package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"caseboard/models"
)

func reportFixture() []models.Case {
	a := models.NewCase("Walker", "Walker v. Acme", "Premises")
	a.CaseNumber = "2026-CA-002"
	a.County = "Lee"
	a.CurrentFocus = "Review & respond to discovery"

	b := models.NewCase("Adams", "Adams v. Zenith", "Auto")
	return []models.Case{a, b}
}

func TestReportRowsSortedByClient(t *testing.T) {
	rows := reportRows(reportFixture())
	require.Len(t, rows, 2)
	assert.Equal(t, "Adams", rows[0][0])
	assert.Equal(t, "Walker", rows[1][0])

	// blanks render as a dash except case number and focus
	assert.Equal(t, "—", rows[0][4])
	assert.Equal(t, "", rows[0][2])
}

func TestClientSummaryHTML(t *testing.T) {
	doc := ClientSummaryHTML(reportFixture())

	assert.Contains(t, doc, "Client Case Summary")
	assert.Contains(t, doc, "Printed ")
	// cell content is escaped
	assert.Contains(t, doc, "Review &amp; respond to discovery")
	assert.Contains(t, doc, "Walker v. Acme")
	for _, col := range reportColumns {
		assert.Contains(t, doc, "<th>"+col+"</th>")
	}
}

func TestCaseListWorkbook(t *testing.T) {
	buf, err := CaseListWorkbook(reportFixture())
	require.NoError(t, err)

	f, err := excelize.OpenReader(buf)
	require.NoError(t, err)
	defer f.Close()

	header, err := f.GetCellValue("Cases", "A1")
	require.NoError(t, err)
	assert.Equal(t, "Client", header)

	first, err := f.GetCellValue("Cases", "A2")
	require.NoError(t, err)
	assert.Equal(t, "Adams", first)

	caseNumber, err := f.GetCellValue("Cases", "C3")
	require.NoError(t, err)
	assert.Equal(t, "2026-CA-002", caseNumber)
}
