package handlers

import (
	"errors"
	"log"
	"net/http"

	"github.com/labstack/echo/v4"

	"caseboard/models"
	"caseboard/services"
	"caseboard/storage"
)

// serviceError maps service-layer failures onto HTTP responses.
func serviceError(c echo.Context, err error) error {
	switch {
	case errors.Is(err, services.ErrCaseNotFound):
		return c.JSON(http.StatusNotFound, echo.Map{"error": "Case not found"})
	case errors.Is(err, services.ErrTaskNotFound):
		return c.JSON(http.StatusNotFound, echo.Map{"error": "Task not found"})
	case services.IsValidationError(err):
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	default:
		log.Printf("[ERROR] %s %s: %v", c.Request().Method, c.Request().URL.Path, err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Internal server error"})
	}
}

// GetCasesHandler returns the whole case file with derived fields refreshed
func GetCasesHandler(c echo.Context) error {
	file, err := services.ListCases(storage.Store)
	if err != nil {
		return serviceError(c, err)
	}
	return c.JSON(http.StatusOK, file)
}

// CreateCaseHandler adds a new case
func CreateCaseHandler(c echo.Context) error {
	var payload models.Case
	if err := c.Bind(&payload); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Invalid request body"})
	}

	created, err := services.CreateCase(storage.Store, payload)
	if err != nil {
		return serviceError(c, err)
	}
	return c.JSON(http.StatusCreated, created)
}

// GetCaseHandler returns a single case by id
func GetCaseHandler(c echo.Context) error {
	found, err := services.GetCase(storage.Store, c.Param("id"))
	if err != nil {
		return serviceError(c, err)
	}
	return c.JSON(http.StatusOK, found)
}

// UpdateCaseHandler replaces a case wholesale, keeping its id
func UpdateCaseHandler(c echo.Context) error {
	var payload models.Case
	if err := c.Bind(&payload); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Invalid request body"})
	}

	updated, err := services.UpdateCase(storage.Store, c.Param("id"), payload)
	if err != nil {
		return serviceError(c, err)
	}
	return c.JSON(http.StatusOK, updated)
}

// DeleteCaseHandler removes a case
func DeleteCaseHandler(c echo.Context) error {
	if err := services.DeleteCase(storage.Store, c.Param("id")); err != nil {
		return serviceError(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}

// AddFocusHandler appends a focus entry to a case
func AddFocusHandler(c echo.Context) error {
	var entry models.FocusEntry
	if err := c.Bind(&entry); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Invalid request body"})
	}

	updated, err := services.AddFocus(storage.Store, c.Param("id"), entry)
	if err != nil {
		return serviceError(c, err)
	}
	return c.JSON(http.StatusOK, updated)
}

// SetDeadlinesHandler replaces a case's deadline list
func SetDeadlinesHandler(c echo.Context) error {
	var deadlines []models.Deadline
	if err := c.Bind(&deadlines); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Invalid request body"})
	}

	updated, err := services.SetDeadlines(storage.Store, c.Param("id"), deadlines)
	if err != nil {
		return serviceError(c, err)
	}
	return c.JSON(http.StatusOK, updated)
}

// SetAttentionHandler sets the attention flag to one of its three states
func SetAttentionHandler(c echo.Context) error {
	updated, err := services.SetAttention(storage.Store, c.Param("id"), c.Param("state"))
	if err != nil {
		return serviceError(c, err)
	}
	return c.JSON(http.StatusOK, updated)
}

// SetPriorityHandler switches top priority on, off, or toggles it
func SetPriorityHandler(c echo.Context) error {
	updated, err := services.SetPriority(storage.Store, c.Param("id"), c.Param("state"))
	if err != nil {
		return serviceError(c, err)
	}
	return c.JSON(http.StatusOK, updated)
}

// SetArchiveHandler switches the archived flag on, off, or toggles it
func SetArchiveHandler(c echo.Context) error {
	updated, err := services.SetArchive(storage.Store, c.Param("id"), c.Param("state"))
	if err != nil {
		return serviceError(c, err)
	}
	return c.JSON(http.StatusOK, updated)
}

// GetCaseDetailsHandler returns the full case record, focus history and
// colleague tasks included
func GetCaseDetailsHandler(c echo.Context) error {
	found, err := services.GetCase(storage.Store, c.Param("id"))
	if err != nil {
		return serviceError(c, err)
	}
	return c.JSON(http.StatusOK, found)
}

// ColleagueTaskRequest is the body for adding a colleague task.
type ColleagueTaskRequest struct {
	Task   string `json:"task"`
	Author string `json:"author"`
}

// AddColleagueTaskHandler records a task left for a colleague on a case
func AddColleagueTaskHandler(c echo.Context) error {
	var req ColleagueTaskRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Invalid request body"})
	}

	task, err := services.AddColleagueTask(storage.Store, c.Param("id"), req.Author, req.Task)
	if err != nil {
		return serviceError(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"success": true, "task": task})
}

// ReviewColleagueTaskHandler marks a colleague task as reviewed
func ReviewColleagueTaskHandler(c echo.Context) error {
	if err := services.ReviewColleagueTask(storage.Store, c.Param("id"), c.Param("task_id")); err != nil {
		return serviceError(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"success": true})
}
