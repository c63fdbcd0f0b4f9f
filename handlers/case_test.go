package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"caseboard/models"
	"caseboard/services"
	"caseboard/storage"
)

// useTestStore points the package-global store at a temp directory for the
// duration of one test.
func useTestStore(t *testing.T) {
	t.Helper()
	dir := t.TempDir()
	store, err := storage.NewFileStore(filepath.Join(dir, "cases.json"), filepath.Join(dir, "backups"))
	require.NoError(t, err)
	prev := storage.Store
	storage.Store = store
	t.Cleanup(func() { storage.Store = prev })
}

func setupEcho(method, path, body string) (echo.Context, *httptest.ResponseRecorder) {
	e := echo.New()
	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	} else {
		req = httptest.NewRequest(method, path, nil)
	}
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

func seedCase(t *testing.T) models.Case {
	t.Helper()
	created, err := services.CreateCase(storage.Store, models.Case{
		ClientName: "Smith", CaseName: "Smith v. Jones", CaseType: "Auto",
	})
	require.NoError(t, err)
	return created
}

func TestGetCasesHandler(t *testing.T) {
	useTestStore(t)
	seedCase(t)

	c, rec := setupEcho(http.MethodGet, "/api/cases", "")
	require.NoError(t, GetCasesHandler(c))
	assert.Equal(t, http.StatusOK, rec.Code)

	var file models.CaseFile
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &file))
	assert.Len(t, file.Cases, 1)
	assert.Equal(t, "Smith", file.Cases[0].ClientName)
}

func TestCreateCaseHandler(t *testing.T) {
	useTestStore(t)

	t.Run("Success", func(t *testing.T) {
		body := `{"client_name": "Brown", "case_name": "Brown v. Acme", "case_type": "Premises"}`
		c, rec := setupEcho(http.MethodPost, "/api/cases", body)
		require.NoError(t, CreateCaseHandler(c))
		assert.Equal(t, http.StatusCreated, rec.Code)

		var created models.Case
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &created))
		assert.NotEmpty(t, created.ID)
		assert.Equal(t, models.StatusPreFiling, created.Status)
	})

	t.Run("MissingRequiredField", func(t *testing.T) {
		body := `{"case_name": "Nameless v. Unknown", "case_type": "Auto"}`
		c, rec := setupEcho(http.MethodPost, "/api/cases", body)
		require.NoError(t, CreateCaseHandler(c))
		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Contains(t, rec.Body.String(), "client_name")
	})
}

func TestGetCaseHandlerNotFound(t *testing.T) {
	useTestStore(t)

	c, rec := setupEcho(http.MethodGet, "/api/cases/missing", "")
	c.SetParamNames("id")
	c.SetParamValues("missing")
	require.NoError(t, GetCaseHandler(c))
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestSetAttentionHandler(t *testing.T) {
	useTestStore(t)
	created := seedCase(t)

	c, rec := setupEcho(http.MethodPost, "/api/cases/x/attention/needs_attention", "")
	c.SetParamNames("id", "state")
	c.SetParamValues(created.ID, "needs_attention")
	require.NoError(t, SetAttentionHandler(c))
	assert.Equal(t, http.StatusOK, rec.Code)

	var updated models.Case
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &updated))
	assert.Equal(t, models.AttentionNeeds, updated.Attention)

	// invalid state maps to a 400
	c, rec = setupEcho(http.MethodPost, "/api/cases/x/attention/panic", "")
	c.SetParamNames("id", "state")
	c.SetParamValues(created.ID, "panic")
	require.NoError(t, SetAttentionHandler(c))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestSetDeadlinesHandler(t *testing.T) {
	useTestStore(t)
	created := seedCase(t)

	body := `[{"due_date": "2026-09-10", "description": "Answer due", "resolved": false}]`
	c, rec := setupEcho(http.MethodPost, "/api/cases/x/deadlines", body)
	c.SetParamNames("id")
	c.SetParamValues(created.ID)
	require.NoError(t, SetDeadlinesHandler(c))
	assert.Equal(t, http.StatusOK, rec.Code)

	var updated models.Case
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &updated))
	require.NotNil(t, updated.NextDue)
	assert.Equal(t, "2026-09-10", updated.NextDue.String())

	// an empty date string, as an empty HTML date input submits, is a 400
	// and must not leave a year-1 next_due behind
	body = `[{"due_date": "", "description": "Blank date", "resolved": false}]`
	c, rec = setupEcho(http.MethodPost, "/api/cases/x/deadlines", body)
	c.SetParamNames("id")
	c.SetParamValues(created.ID)
	require.NoError(t, SetDeadlinesHandler(c))
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	stored, err := services.GetCase(storage.Store, created.ID)
	require.NoError(t, err)
	require.NotNil(t, stored.NextDue)
	assert.Equal(t, "2026-09-10", stored.NextDue.String())
}

func TestDeleteCaseHandler(t *testing.T) {
	useTestStore(t)
	created := seedCase(t)

	c, rec := setupEcho(http.MethodDelete, "/api/cases/x", "")
	c.SetParamNames("id")
	c.SetParamValues(created.ID)
	require.NoError(t, DeleteCaseHandler(c))
	assert.Equal(t, http.StatusNoContent, rec.Code)

	c, rec = setupEcho(http.MethodDelete, "/api/cases/x", "")
	c.SetParamNames("id")
	c.SetParamValues(created.ID)
	require.NoError(t, DeleteCaseHandler(c))
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestColleagueTaskHandlers(t *testing.T) {
	useTestStore(t)
	created := seedCase(t)

	c, rec := setupEcho(http.MethodPost, "/api/cases/x/colleague-tasks", `{"task": "call adjuster", "author": "WB"}`)
	c.SetParamNames("id")
	c.SetParamValues(created.ID)
	require.NoError(t, AddColleagueTaskHandler(c))
	assert.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		Success bool                 `json:"success"`
		Task    models.ColleagueTask `json:"task"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.True(t, resp.Success)
	require.NotEmpty(t, resp.Task.ID)

	c, rec = setupEcho(http.MethodPost, "/api/cases/x/colleague-tasks/y/review", "")
	c.SetParamNames("id", "task_id")
	c.SetParamValues(created.ID, resp.Task.ID)
	require.NoError(t, ReviewColleagueTaskHandler(c))
	assert.Equal(t, http.StatusOK, rec.Code)

	// unknown author rejected
	c, rec = setupEcho(http.MethodPost, "/api/cases/x/colleague-tasks", `{"task": "x", "author": "ZZ"}`)
	c.SetParamNames("id")
	c.SetParamValues(created.ID)
	require.NoError(t, AddColleagueTaskHandler(c))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestImportCasesHandler(t *testing.T) {
	useTestStore(t)

	body := `{"csv": "client_name,case_name,case_type\nSmith,Smith v. Jones,Auto\n"}`
	c, rec := setupEcho(http.MethodPost, "/api/cases/import", body)
	require.NoError(t, ImportCasesHandler(c))
	assert.Equal(t, http.StatusOK, rec.Code)

	var summary services.ImportResult
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &summary))
	assert.Equal(t, 1, summary.Added)
	assert.Empty(t, summary.Errors)
}

func TestICD10LookupHandler(t *testing.T) {
	c, rec := setupEcho(http.MethodGet, "/api/icd10/s13.4xxa", "")
	c.SetParamNames("code")
	c.SetParamValues("s13.4xxa")
	require.NoError(t, ICD10LookupHandler(c))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "S13.4XXA")
	assert.Contains(t, rec.Body.String(), "cervical")
}
