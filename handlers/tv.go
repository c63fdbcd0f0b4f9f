package handlers

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"caseboard/services"
	"caseboard/services/scoreboard"
	"caseboard/storage"
)

// TVCasesHandler returns the urgency-sorted board feed for the office TV
func TVCasesHandler(c echo.Context) error {
	payload, err := services.TVCases(storage.Store)
	if err != nil {
		return serviceError(c, err)
	}
	return c.JSON(http.StatusOK, payload)
}

// TVTickerHandler returns the cached football ticker payload
func TVTickerHandler(c echo.Context) error {
	return c.JSON(http.StatusOK, scoreboard.Default.GetCachedPayload())
}
