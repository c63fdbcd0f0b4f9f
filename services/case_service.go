package services

import (
	"strings"
	"time"

	"caseboard/models"
	"caseboard/storage"

	"github.com/google/uuid"
)

// AllowedTaskAuthors is the set of office initials accepted on colleague
// tasks.
var AllowedTaskAuthors = []string{"WB", "NC", "TG", "CS", "SJ"}

// mutateCase is the single post-mutation hook every write path funnels
// through: load, locate, apply the mutation, recompute derived fields, save.
// Omitting the recompute at any call site would reintroduce stale derived
// fields, so no write path may bypass this function.
func mutateCase(st *storage.FileStore, caseID string, mutate func(c *models.Case) error) (models.Case, error) {
	file, err := st.Load()
	if err != nil {
		return models.Case{}, err
	}
	idx := file.FindCase(caseID)
	if idx < 0 {
		return models.Case{}, ErrCaseNotFound
	}
	if err := mutate(&file.Cases[idx]); err != nil {
		return models.Case{}, err
	}
	file.Cases[idx].Recompute()
	if err := st.Save(file); err != nil {
		return models.Case{}, err
	}
	return file.Cases[idx], nil
}

// normalizeCaseInput scrubs free text and coerces workflow enums on an
// inbound record. Rejects before any mutation is committed.
func normalizeCaseInput(c *models.Case) error {
	c.ClientName = CleanText(c.ClientName)
	c.CaseName = CleanText(c.CaseName)
	c.CaseType = CleanText(c.CaseType)
	c.Paralegal = CleanText(c.Paralegal)
	c.CurrentFocus = CleanText(c.CurrentFocus)
	c.ClaimSummary = CleanText(c.ClaimSummary)
	c.CaseNumber = strings.TrimSpace(c.CaseNumber)

	if c.ClientName == "" {
		return validationErrorf("client_name is required")
	}
	if c.CaseName == "" {
		return validationErrorf("case_name is required")
	}
	if c.CaseType == "" {
		return validationErrorf("case_type is required")
	}

	stage := models.NormalizeStage(c.Stage)
	if stage == "" {
		if strings.TrimSpace(c.Stage) != "" {
			return validationErrorf("unknown stage %q", c.Stage)
		}
		stage = models.StagePreFiling
	}
	c.Stage = stage

	// Unrecognized status falls back to the derived default; Recompute
	// settles Active vs Pre-Filing afterwards.
	if status := models.NormalizeStatus(c.Status); status != "" {
		c.Status = status
	} else {
		c.Status = models.StatusPreFiling
	}

	c.Attention = models.NormalizeAttention(c.Attention)
	return nil
}

// ListCases returns the whole file with derived fields freshly recomputed.
func ListCases(st *storage.FileStore) (*models.CaseFile, error) {
	file, err := st.Load()
	if err != nil {
		return nil, err
	}
	for i := range file.Cases {
		file.Cases[i].Recompute()
	}
	return file, nil
}

// GetCase returns one case with derived fields recomputed.
func GetCase(st *storage.FileStore, caseID string) (models.Case, error) {
	file, err := st.Load()
	if err != nil {
		return models.Case{}, err
	}
	idx := file.FindCase(caseID)
	if idx < 0 {
		return models.Case{}, ErrCaseNotFound
	}
	c := file.Cases[idx]
	c.Recompute()
	return c, nil
}

// CreateCase validates, normalizes and appends a new case.
func CreateCase(st *storage.FileStore, c models.Case) (models.Case, error) {
	if err := normalizeCaseInput(&c); err != nil {
		return models.Case{}, err
	}
	if c.ID == "" {
		c.ID = uuid.New().String()
	}
	c.Recompute()

	file, err := st.Load()
	if err != nil {
		return models.Case{}, err
	}
	file.Cases = append(file.Cases, c)
	if err := st.Save(file); err != nil {
		return models.Case{}, err
	}
	return c, nil
}

// UpdateCase replaces a case wholesale, keeping its immutable id.
func UpdateCase(st *storage.FileStore, caseID string, patch models.Case) (models.Case, error) {
	if err := normalizeCaseInput(&patch); err != nil {
		return models.Case{}, err
	}
	return mutateCase(st, caseID, func(c *models.Case) error {
		patch.ID = c.ID // keep id
		*c = patch
		return nil
	})
}

// DeleteCase removes a case permanently.
func DeleteCase(st *storage.FileStore, caseID string) error {
	file, err := st.Load()
	if err != nil {
		return err
	}
	idx := file.FindCase(caseID)
	if idx < 0 {
		return ErrCaseNotFound
	}
	file.Cases = append(file.Cases[:idx], file.Cases[idx+1:]...)
	return st.Save(file)
}

// AddFocus appends a focus entry; current_focus follows via recompute.
func AddFocus(st *storage.FileStore, caseID string, entry models.FocusEntry) (models.Case, error) {
	entry.Author = CleanText(entry.Author)
	entry.Text = CleanText(entry.Text)
	if entry.Text == "" {
		return models.Case{}, validationErrorf("focus text is required")
	}
	if entry.At.IsZero() {
		entry.At = time.Now().UTC()
	}
	return mutateCase(st, caseID, func(c *models.Case) error {
		c.FocusLog = append(c.FocusLog, entry)
		return nil
	})
}

// SetDeadlines replaces the deadline list; next_due follows via recompute.
func SetDeadlines(st *storage.FileStore, caseID string, deadlines []models.Deadline) (models.Case, error) {
	for i := range deadlines {
		deadlines[i].Description = CleanText(deadlines[i].Description)
	}
	return mutateCase(st, caseID, func(c *models.Case) error {
		c.Deadlines = deadlines
		return nil
	})
}

// SetAttention sets the attention flag to one of the three legal values.
func SetAttention(st *storage.FileStore, caseID string, state string) (models.Case, error) {
	if !models.IsValidAttention(state) {
		return models.Case{}, validationErrorf("invalid attention state %q", state)
	}
	return mutateCase(st, caseID, func(c *models.Case) error {
		c.Attention = state
		return nil
	})
}

// SetPriority switches the top-priority flag: on, off or toggle.
func SetPriority(st *storage.FileStore, caseID string, state string) (models.Case, error) {
	if state != "on" && state != "off" && state != "toggle" {
		return models.Case{}, validationErrorf("invalid priority state %q", state)
	}
	return mutateCase(st, caseID, func(c *models.Case) error {
		if state == "toggle" {
			c.TopPriority = !c.TopPriority
		} else {
			c.TopPriority = state == "on"
		}
		return nil
	})
}

// SetArchive switches the archived flag: on, off or toggle.
func SetArchive(st *storage.FileStore, caseID string, state string) (models.Case, error) {
	if state != "on" && state != "off" && state != "toggle" {
		return models.Case{}, validationErrorf("invalid archive state %q", state)
	}
	return mutateCase(st, caseID, func(c *models.Case) error {
		if state == "toggle" {
			c.Archived = !c.Archived
		} else {
			c.Archived = state == "on"
		}
		return nil
	})
}

// AddColleagueTask appends a task from one of the allowed office authors.
func AddColleagueTask(st *storage.FileStore, caseID, author, task string) (models.ColleagueTask, error) {
	author = strings.ToUpper(strings.TrimSpace(author))
	allowed := false
	for _, a := range AllowedTaskAuthors {
		if a == author {
			allowed = true
			break
		}
	}
	if !allowed {
		return models.ColleagueTask{}, validationErrorf("invalid author, must be one of: %s", strings.Join(AllowedTaskAuthors, ", "))
	}
	task = CleanText(task)
	if task == "" {
		return models.ColleagueTask{}, validationErrorf("task text is required")
	}

	newTask := models.ColleagueTask{
		ID:     uuid.New().String(),
		At:     time.Now().UTC(),
		Author: author,
		Task:   task,
	}
	_, err := mutateCase(st, caseID, func(c *models.Case) error {
		c.ColleagueTasks = append(c.ColleagueTasks, newTask)
		return nil
	})
	if err != nil {
		return models.ColleagueTask{}, err
	}
	return newTask, nil
}

// ReviewColleagueTask marks one task reviewed, in place.
func ReviewColleagueTask(st *storage.FileStore, caseID, taskID string) error {
	_, err := mutateCase(st, caseID, func(c *models.Case) error {
		for i := range c.ColleagueTasks {
			if c.ColleagueTasks[i].ID == taskID {
				now := time.Now().UTC()
				c.ColleagueTasks[i].Reviewed = true
				c.ColleagueTasks[i].ReviewedAt = &now
				return nil
			}
		}
		return ErrTaskNotFound
	})
	return err
}
