package services

import (
	"encoding/csv"
	"fmt"
	"io"
	"strings"

	"caseboard/models"
	"caseboard/storage"
)

// ImportResult contains the summary of the import process.
type ImportResult struct {
	Added   int      `json:"added"`
	Updated int      `json:"updated"`
	Errors  []string `json:"errors"`
}

var requiredImportColumns = []string{"client_name", "case_name", "case_type"}

// ImportCasesFromCSV reconciles incoming CSV rows against the existing case
// list: rows matching a known case merge into it, the rest create new cases.
// Row-level problems are collected, not fatal; a missing header or missing
// required columns aborts the whole import before any row is processed.
// Everything is committed in one batch save at the end.
func ImportCasesFromCSV(st *storage.FileStore, content string) (*ImportResult, error) {
	reader := csv.NewReader(strings.NewReader(content))
	reader.FieldsPerRecord = -1 // tolerate ragged rows
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if err != nil {
		return nil, validationErrorf("CSV file is missing a header row")
	}

	// column names matched case-insensitively
	columns := make(map[string]int, len(header))
	for i, name := range header {
		name = strings.ToLower(strings.TrimSpace(name))
		if name != "" {
			columns[name] = i
		}
	}
	var missing []string
	for _, col := range requiredImportColumns {
		if _, ok := columns[col]; !ok {
			missing = append(missing, col)
		}
	}
	if len(missing) > 0 {
		return nil, validationErrorf("CSV is missing required columns: %s", strings.Join(missing, ", "))
	}

	cell := func(row []string, key string) string {
		idx, ok := columns[key]
		if !ok || idx >= len(row) {
			return ""
		}
		return strings.TrimSpace(row[idx])
	}

	file, err := st.Load()
	if err != nil {
		return nil, err
	}

	result := &ImportResult{Errors: []string{}}

	// First data row is row 2 (the header is row 1).
	for rowIndex := 2; ; rowIndex++ {
		row, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			result.Errors = append(result.Errors, fmt.Sprintf("Row %d: %v", rowIndex, err))
			continue
		}

		clientName := cell(row, "client_name")
		caseName := cell(row, "case_name")
		caseType := cell(row, "case_type")
		if caseType == "" {
			caseType = "Other"
		}
		if clientName == "" || caseName == "" {
			result.Errors = append(result.Errors, fmt.Sprintf("Row %d: missing client_name or case_name", rowIndex))
			continue
		}

		stageValue := models.NormalizeStage(cell(row, "stage"))
		statusValue := models.NormalizeStatus(cell(row, "status"))
		paralegal := cell(row, "paralegal")
		currentFocus := cell(row, "current_focus")
		caseNumber := cell(row, "case_number")

		if idx := findExisting(file, caseNumber, clientName, caseName); idx >= 0 {
			existing := &file.Cases[idx]
			existing.ClientName = clientName
			existing.CaseName = caseName
			existing.CaseType = caseType
			// empty incoming values never erase existing data
			if paralegal != "" {
				existing.Paralegal = paralegal
			}
			if currentFocus != "" {
				existing.CurrentFocus = currentFocus
			}
			if caseNumber != "" {
				existing.CaseNumber = caseNumber
			}
			if stageValue != "" {
				existing.Stage = stageValue
			}
			// only an explicit locked status overrides; otherwise the
			// derived Active/Pre-Filing logic in Recompute governs
			if statusValue != "" && models.IsSpecialStatus(statusValue) {
				existing.Status = statusValue
			}
			existing.Recompute()
			result.Updated++
			continue
		}

		newCase := models.NewCase(clientName, caseName, caseType)
		if stageValue != "" {
			newCase.Stage = stageValue
		}
		if statusValue != "" && models.IsSpecialStatus(statusValue) {
			newCase.Status = statusValue
		}
		newCase.Paralegal = paralegal
		newCase.CurrentFocus = currentFocus
		newCase.CaseNumber = caseNumber
		newCase.Recompute()
		file.Cases = append(file.Cases, newCase)
		result.Added++
	}

	if result.Added > 0 || result.Updated > 0 {
		if err := st.Save(file); err != nil {
			return nil, err
		}
	}
	return result, nil
}

// findExisting locates a case by case_number first, then by the
// (client_name, case_name) pair, both case-insensitively. First match wins.
func findExisting(file *models.CaseFile, caseNumber, clientName, caseName string) int {
	if number := strings.ToLower(caseNumber); number != "" {
		for i := range file.Cases {
			if strings.ToLower(file.Cases[i].CaseNumber) == number {
				return i
			}
		}
	}
	client := strings.ToLower(clientName)
	name := strings.ToLower(caseName)
	for i := range file.Cases {
		if strings.ToLower(file.Cases[i].ClientName) == client && strings.ToLower(file.Cases[i].CaseName) == name {
			return i
		}
	}
	return -1
}
