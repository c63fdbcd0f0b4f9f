package handlers

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"caseboard/models"
	"caseboard/services"
	"caseboard/storage"
)

func reportCases(includeArchived bool) ([]models.Case, error) {
	file, err := services.ListCases(storage.Store)
	if err != nil {
		return nil, err
	}
	cases := make([]models.Case, 0, len(file.Cases))
	for _, c := range file.Cases {
		if includeArchived || !c.Archived {
			cases = append(cases, c)
		}
	}
	return cases, nil
}

// ClientReportPDFHandler renders the one-page client summary as a PDF
func ClientReportPDFHandler(c echo.Context) error {
	includeArchived, _ := strconv.ParseBool(c.QueryParam("include_archived"))

	cases, err := reportCases(includeArchived)
	if err != nil {
		return serviceError(c, err)
	}

	pdf, err := services.ClientSummaryPDF(cases)
	if err != nil {
		return serviceError(c, err)
	}

	c.Response().Header().Set(echo.HeaderContentDisposition, `inline; filename="client_summary.pdf"`)
	return c.Blob(http.StatusOK, "application/pdf", pdf)
}

// CaseListXLSXHandler exports the case list as a spreadsheet
func CaseListXLSXHandler(c echo.Context) error {
	includeArchived, _ := strconv.ParseBool(c.QueryParam("include_archived"))

	cases, err := reportCases(includeArchived)
	if err != nil {
		return serviceError(c, err)
	}

	buf, err := services.CaseListWorkbook(cases)
	if err != nil {
		return serviceError(c, err)
	}

	c.Response().Header().Set(echo.HeaderContentDisposition, `attachment; filename="cases.xlsx"`)
	return c.Blob(http.StatusOK,
		"application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", buf.Bytes())
}
