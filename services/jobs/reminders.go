package jobs

import (
	"fmt"
	"html"
	"log"
	"sort"
	"strings"
	"time"

	"caseboard/config"
	"caseboard/models"
	"caseboard/services"
	"caseboard/storage"
)

// reminderHorizonDays is how far ahead the daily digest looks.
const reminderHorizonDays = 7

// DueDeadline is one unresolved deadline inside the reminder window.
type DueDeadline struct {
	ClientName  string
	CaseName    string
	Description string
	DueDate     models.Date
	Overdue     bool
}

// CollectDueDeadlines gathers unresolved, dated deadlines on non-archived
// cases that are overdue or due within the horizon, ordered soonest first.
func CollectDueDeadlines(file *models.CaseFile, today time.Time, horizonDays int) []DueDeadline {
	cutoff := today.AddDate(0, 0, horizonDays)
	var due []DueDeadline
	for _, c := range file.Cases {
		if c.Archived {
			continue
		}
		for _, dl := range c.Deadlines {
			if dl.Resolved || dl.DueDate == nil {
				continue
			}
			if dl.DueDate.Time.After(cutoff) {
				continue
			}
			due = append(due, DueDeadline{
				ClientName:  c.ClientName,
				CaseName:    c.CaseName,
				Description: dl.Description,
				DueDate:     *dl.DueDate,
				Overdue:     dl.DueDate.Time.Before(today),
			})
		}
	}
	sort.SliceStable(due, func(i, j int) bool {
		if !due[i].DueDate.Time.Equal(due[j].DueDate.Time) {
			return due[i].DueDate.Time.Before(due[j].DueDate.Time)
		}
		return strings.ToLower(due[i].ClientName) < strings.ToLower(due[j].ClientName)
	})
	return due
}

// SendDeadlineReminders emails a digest of upcoming and overdue deadlines.
func SendDeadlineReminders(store *storage.FileStore, cfg *config.Config) {
	log.Println("[JOB] Starting deadline reminder job...")

	if cfg.ReminderEmailTo == "" {
		log.Println("[JOB] No reminder recipient configured, skipping")
		return
	}

	file, err := store.Load()
	if err != nil {
		log.Printf("[JOB] Error loading cases for reminders: %v", err)
		return
	}

	today := time.Now().UTC().Truncate(24 * time.Hour)
	due := CollectDueDeadlines(file, today, reminderHorizonDays)
	if len(due) == 0 {
		log.Println("[JOB] No deadlines due soon, nothing to send")
		return
	}

	log.Printf("[JOB] Found %d deadlines due within %d days", len(due), reminderHorizonDays)

	email := &services.Email{
		To:       []string{cfg.ReminderEmailTo},
		Subject:  fmt.Sprintf("Deadline digest: %d item(s) due soon", len(due)),
		HTMLBody: reminderHTML(due),
		TextBody: reminderText(due),
	}
	if err := services.SendEmail(cfg, email); err != nil {
		log.Printf("[JOB] Failed to send deadline digest: %v", err)
		return
	}

	log.Println("[JOB] Deadline reminder job completed")
}

func reminderText(due []DueDeadline) string {
	var b strings.Builder
	b.WriteString("Deadlines due within the next week:\n\n")
	for _, d := range due {
		marker := ""
		if d.Overdue {
			marker = " (OVERDUE)"
		}
		fmt.Fprintf(&b, "- %s | %s / %s | %s%s\n",
			d.DueDate.Format("Mon Jan 2, 2006"), d.ClientName, d.CaseName, d.Description, marker)
	}
	return b.String()
}

func reminderHTML(due []DueDeadline) string {
	var b strings.Builder
	b.WriteString("<h2>Deadlines due within the next week</h2>")
	b.WriteString("<table border=\"1\" cellpadding=\"6\" cellspacing=\"0\">")
	b.WriteString("<tr><th>Due</th><th>Client</th><th>Case</th><th>Deadline</th></tr>")
	for _, d := range due {
		dateCell := d.DueDate.Format("Mon Jan 2, 2006")
		if d.Overdue {
			dateCell = "<strong>" + dateCell + " (overdue)</strong>"
		}
		fmt.Fprintf(&b, "<tr><td>%s</td><td>%s</td><td>%s</td><td>%s</td></tr>",
			dateCell,
			html.EscapeString(d.ClientName),
			html.EscapeString(d.CaseName),
			html.EscapeString(d.Description))
	}
	b.WriteString("</table>")
	return b.String()
}
