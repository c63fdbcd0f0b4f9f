package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"caseboard/models"
)

func TestImportRejectsMissingHeader(t *testing.T) {
	st := newTestStore(t)

	_, err := ImportCasesFromCSV(st, "")
	assert.True(t, IsValidationError(err))
}

func TestImportRejectsMissingColumns(t *testing.T) {
	st := newTestStore(t)

	_, err := ImportCasesFromCSV(st, "client_name,paralegal\nSmith,KB\n")
	assert.True(t, IsValidationError(err))
	assert.Contains(t, err.Error(), "case_name")
	assert.Contains(t, err.Error(), "case_type")

	// nothing was committed
	file, loadErr := st.Load()
	require.NoError(t, loadErr)
	assert.Empty(t, file.Cases)
}

func TestImportAddsAndReportsRowErrors(t *testing.T) {
	st := newTestStore(t)

	csv := "client_name,case_name,case_type\n" +
		"Smith,Smith v. Jones,Auto\n" +
		",Orphan v. Nobody,Auto\n"

	summary, err := ImportCasesFromCSV(st, csv)
	require.NoError(t, err)
	assert.Equal(t, 1, summary.Added)
	assert.Equal(t, 0, summary.Updated)
	assert.Equal(t, []string{"Row 3: missing client_name or case_name"}, summary.Errors)

	file, err := st.Load()
	require.NoError(t, err)
	require.Len(t, file.Cases, 1)
	assert.Equal(t, "Smith", file.Cases[0].ClientName)
	assert.Equal(t, models.StatusPreFiling, file.Cases[0].Status)
}

func TestImportDefaultsCaseType(t *testing.T) {
	st := newTestStore(t)

	summary, err := ImportCasesFromCSV(st, "client_name,case_name,case_type\nSmith,Smith v. Jones,\n")
	require.NoError(t, err)
	assert.Equal(t, 1, summary.Added)

	file, err := st.Load()
	require.NoError(t, err)
	require.Len(t, file.Cases, 1)
	assert.Equal(t, "Other", file.Cases[0].CaseType)
}

func TestImportMatchesByCaseNumber(t *testing.T) {
	st := newTestStore(t)

	created, err := CreateCase(st, models.Case{
		ClientName: "Smith", CaseName: "Smith v. Jones", CaseType: "Auto",
		CaseNumber: "2026-CA-001", Paralegal: "KB",
	})
	require.NoError(t, err)

	// case number matches despite different capitalization and renamed case
	csv := "client_name,case_name,case_type,case_number,paralegal\n" +
		"Smith,Smith v. Jones and Acme,Auto,2026-ca-001,\n"

	summary, err := ImportCasesFromCSV(st, csv)
	require.NoError(t, err)
	assert.Equal(t, 0, summary.Added)
	assert.Equal(t, 1, summary.Updated)

	file, err := st.Load()
	require.NoError(t, err)
	require.Len(t, file.Cases, 1)
	assert.Equal(t, created.ID, file.Cases[0].ID)
	assert.Equal(t, "Smith v. Jones and Acme", file.Cases[0].CaseName)
	// blank incoming paralegal did not erase the stored one
	assert.Equal(t, "KB", file.Cases[0].Paralegal)
	// non-empty incoming case number overrides the stored one
	assert.Equal(t, "2026-ca-001", file.Cases[0].CaseNumber)
}

func TestImportMatchesByClientAndCaseName(t *testing.T) {
	st := newTestStore(t)

	created, err := CreateCase(st, models.Case{
		ClientName: "Smith", CaseName: "Smith v. Jones", CaseType: "Auto",
	})
	require.NoError(t, err)

	csv := "client_name,case_name,case_type,case_number\n" +
		"SMITH,smith V. jones,Auto,2026-CA-009\n"

	summary, err := ImportCasesFromCSV(st, csv)
	require.NoError(t, err)
	assert.Equal(t, 1, summary.Updated)

	file, err := st.Load()
	require.NoError(t, err)
	require.Len(t, file.Cases, 1)
	assert.Equal(t, created.ID, file.Cases[0].ID)
	assert.Equal(t, "2026-CA-009", file.Cases[0].CaseNumber)
	// gaining a case number flips the derived status
	assert.Equal(t, models.StatusActive, file.Cases[0].Status)
}

func TestImportOnlySpecialStatusOverrides(t *testing.T) {
	st := newTestStore(t)

	_, err := CreateCase(st, models.Case{
		ClientName: "Smith", CaseName: "Smith v. Jones", CaseType: "Auto",
		CaseNumber: "2026-CA-001",
	})
	require.NoError(t, err)

	// "Active" in a spreadsheet never overrides; "Settlement" does
	csv := "client_name,case_name,case_type,status\n" +
		"Smith,Smith v. Jones,Auto,Settlement\n"
	_, err = ImportCasesFromCSV(st, csv)
	require.NoError(t, err)

	file, err := st.Load()
	require.NoError(t, err)
	assert.Equal(t, models.StatusSettlement, file.Cases[0].Status)

	csv = "client_name,case_name,case_type,status\n" +
		"Smith,Smith v. Jones,Auto,Active\n"
	_, err = ImportCasesFromCSV(st, csv)
	require.NoError(t, err)

	file, err = st.Load()
	require.NoError(t, err)
	// prior Settlement is locked, a plain Active does not displace it
	assert.Equal(t, models.StatusSettlement, file.Cases[0].Status)
}
