package jobs

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"caseboard/config"
	"caseboard/models"
	"caseboard/storage"
)

func deadlineOn(year int, month time.Month, day int, desc string, resolved bool) models.Deadline {
	d := models.NewDate(year, month, day)
	return models.Deadline{DueDate: &d, Description: desc, Resolved: resolved}
}

func TestCollectDueDeadlines(t *testing.T) {
	today := time.Date(2026, time.September, 1, 0, 0, 0, 0, time.UTC)

	file := models.NewCaseFile()

	smith := models.NewCase("Smith", "Smith v. Jones", "Auto")
	smith.Deadlines = []models.Deadline{
		deadlineOn(2026, time.September, 3, "Mediation brief", false),
		deadlineOn(2026, time.August, 28, "Past due filing", false),
		deadlineOn(2026, time.September, 2, "Already handled", true),
		deadlineOn(2026, time.October, 1, "Too far out", false),
		{DueDate: nil, Description: "Undated"},
	}

	archived := models.NewCase("Gone", "Gone v. Away", "Premises")
	archived.Archived = true
	archived.Deadlines = []models.Deadline{
		deadlineOn(2026, time.September, 2, "Should be invisible", false),
	}

	file.Cases = append(file.Cases, smith, archived)

	due := CollectDueDeadlines(file, today, 7)
	require.Len(t, due, 2)

	// soonest first, overdue items flagged
	assert.Equal(t, "Past due filing", due[0].Description)
	assert.True(t, due[0].Overdue)
	assert.Equal(t, "Mediation brief", due[1].Description)
	assert.False(t, due[1].Overdue)
}

func TestCollectDueDeadlinesEmpty(t *testing.T) {
	today := time.Date(2026, time.September, 1, 0, 0, 0, 0, time.UTC)
	assert.Empty(t, CollectDueDeadlines(models.NewCaseFile(), today, 7))
}

func TestSendDeadlineReminders(t *testing.T) {
	dir := t.TempDir()
	store, err := storage.NewFileStore(filepath.Join(dir, "cases.json"), filepath.Join(dir, "backups"))
	require.NoError(t, err)

	file := models.NewCaseFile()
	c := models.NewCase("Smith", "Smith v. Jones", "Auto")
	soon := models.NewDate(time.Now().UTC().Year()+1, time.January, 2)
	c.Deadlines = []models.Deadline{{DueDate: &soon, Description: "Far future"}}
	file.Cases = append(file.Cases, c)
	require.NoError(t, store.Save(file))

	cfg := &config.Config{
		EmailTestMode:   true, // SendEmail logs to console instead of sending
		ReminderEmailTo: "office@example.com",
	}

	// nothing due within the horizon: must be a quiet no-op
	SendDeadlineReminders(store, cfg)

	// no recipient configured: also a no-op, never an error
	SendDeadlineReminders(store, &config.Config{EmailTestMode: true})
}

func TestReminderBodies(t *testing.T) {
	due := []DueDeadline{
		{
			ClientName:  "Smith & Sons",
			CaseName:    "Smith v. Jones",
			Description: "File <motion>",
			DueDate:     models.NewDate(2026, time.September, 3),
			Overdue:     true,
		},
	}

	text := reminderText(due)
	assert.Contains(t, text, "Smith & Sons")
	assert.Contains(t, text, "(OVERDUE)")

	html := reminderHTML(due)
	assert.Contains(t, html, "Smith &amp; Sons")
	assert.Contains(t, html, "File &lt;motion&gt;")
	assert.Contains(t, html, "overdue")
}
