package handlers

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"caseboard/services"
)

// ICD10LookupHandler resolves an ICD-10 code to its description, returning
// an empty description for unknown codes
func ICD10LookupHandler(c echo.Context) error {
	code, description := services.LookupICD10(c.Param("code"))
	return c.JSON(http.StatusOK, echo.Map{"code": code, "description": description})
}
