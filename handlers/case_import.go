package handlers

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"caseboard/services"
	"caseboard/storage"
)

// ImportPayload carries the raw CSV text to reconcile into the case file.
type ImportPayload struct {
	CSV string `json:"csv"`
}

// ImportCasesHandler ingests spreadsheet rows and merges them into the
// existing cases, returning the added/updated/errors summary
func ImportCasesHandler(c echo.Context) error {
	var payload ImportPayload
	if err := c.Bind(&payload); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Invalid request body"})
	}

	summary, err := services.ImportCasesFromCSV(storage.Store, payload.CSV)
	if err != nil {
		return serviceError(c, err)
	}
	return c.JSON(http.StatusOK, summary)
}
