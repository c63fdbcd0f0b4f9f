package models

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// CurrentSchemaVersion is the schema_version every persisted file is forced to.
const CurrentSchemaVersion = 1

// Stage constants (ordered litigation phases)
const (
	StagePreFiling = "Pre-filing"
	StageFiled     = "Filed"
	StageDiscovery = "Discovery"
	StagePretrial  = "Pretrial"
	StageTrial     = "Trial"
	StageClosed    = "Closed"
)

// Status constants
const (
	StatusProspect   = "Prospect"
	StatusPreFiling  = "Pre-Filing"
	StatusActive     = "Active"
	StatusSettlement = "Settlement"
	StatusPostTrial  = "Post-Trial"
	StatusAppeal     = "Appeal"
)

// Attention constants
const (
	AttentionNeeds   = "needs_attention"
	AttentionWaiting = "waiting"
	AttentionNone    = ""
)

// Stages lists the litigation phases in workflow order.
var Stages = []string{StagePreFiling, StageFiled, StageDiscovery, StagePretrial, StageTrial, StageClosed}

// Statuses lists the administrative status values.
var Statuses = []string{StatusProspect, StatusPreFiling, StatusActive, StatusSettlement, StatusPostTrial, StatusAppeal}

// specialStatuses are set only by explicit user action; the recompute pass
// never overwrites them.
var specialStatuses = map[string]bool{
	StatusProspect:   true,
	StatusSettlement: true,
	StatusPostTrial:  true,
	StatusAppeal:     true,
}

// IsSpecialStatus reports whether status is one of the locked, manually-set
// values.
func IsSpecialStatus(status string) bool {
	return specialStatuses[status]
}

// IsValidStage checks if the stage is one of the canonical values.
func IsValidStage(stage string) bool {
	for _, s := range Stages {
		if s == stage {
			return true
		}
	}
	return false
}

// IsValidStatus checks if the status is one of the canonical values.
func IsValidStatus(status string) bool {
	for _, s := range Statuses {
		if s == status {
			return true
		}
	}
	return false
}

// IsValidAttention checks if the attention flag is one of the three legal values.
func IsValidAttention(attention string) bool {
	return attention == AttentionNeeds || attention == AttentionWaiting || attention == AttentionNone
}

// FocusEntry is one timestamped line in a case's focus history.
type FocusEntry struct {
	At     time.Time `json:"at"`
	Author string    `json:"author"`
	Text   string    `json:"text"`
}

// Deadline is a dated (or undated) obligation on a case.
type Deadline struct {
	DueDate     *Date  `json:"due_date"`
	Description string `json:"description"`
	Resolved    bool   `json:"resolved"`
}

// ColleagueTask is a note left by a colleague, independently markable reviewed.
type ColleagueTask struct {
	ID         string     `json:"id"`
	At         time.Time  `json:"at"`
	Author     string     `json:"author"` // Initials: WB, NC, TG, CS, SJ
	Task       string     `json:"task"`
	Reviewed   bool       `json:"reviewed"`
	ReviewedAt *time.Time `json:"reviewed_at"`
}

// ICDCode is a medical diagnosis code attached to a case.
type ICDCode struct {
	Code        string `json:"code"`
	Description string `json:"description,omitempty"`
}

// Provider is an insurance, medical or other related contact.
type Provider struct {
	Name         string `json:"name"`
	Role         string `json:"role,omitempty"`       // e.g., Insurance, Medical Provider, Adjuster, Other
	Represents   string `json:"represents,omitempty"` // e.g., Plaintiff, Defendant, Client, Insured
	Company      string `json:"company,omitempty"`    // Carrier or facility name
	Phone        string `json:"phone,omitempty"`
	ClaimNumber  string `json:"claim_number,omitempty"`
	PolicyNumber string `json:"policy_number,omitempty"`
	Notes        string `json:"notes,omitempty"`
}

// ExternalRef is reserved for a future Filevine integration; never populated
// by this system's own logic.
type ExternalRef struct {
	FilevineID     string     `json:"filevine_id,omitempty"`
	FilevineNumber string     `json:"filevine_number,omitempty"`
	LinkedAt       *time.Time `json:"linked_at,omitempty"`
}

// Case represents one tracked legal matter.
type Case struct {
	ID         string `json:"id"`
	ClientName string `json:"client_name"`
	CaseName   string `json:"case_name"` // e.g., "Smith v. Jones"
	CaseType   string `json:"case_type"` // free text

	Stage     string `json:"stage"`
	Status    string `json:"status"`
	Attention string `json:"attention"`
	Paralegal string `json:"paralegal"`

	CurrentFocus   string          `json:"current_focus"` // one-liner, last focus
	FocusLog       []FocusEntry    `json:"focus_log"`
	Deadlines      []Deadline      `json:"deadlines"`
	ColleagueTasks []ColleagueTask `json:"colleague_tasks"`

	// Court fields (optional in pre-filing)
	CaseNumber      string `json:"case_number,omitempty"`
	County          string `json:"county,omitempty"`
	Division        string `json:"division,omitempty"`
	Judge           string `json:"judge,omitempty"`
	PrimaryAttorney string `json:"primary_attorney,omitempty"`
	OpposingCounsel string `json:"opposing_counsel,omitempty"`
	OpposingFirm    string `json:"opposing_firm,omitempty"`

	// Client details
	ClientAddress string `json:"client_address,omitempty"`
	ClientPhone   string `json:"client_phone,omitempty"`
	ClientDOB     *Date  `json:"client_dob,omitempty"`

	// Narrative summary of claim
	ClaimSummary string `json:"claim_summary"`

	// Medical coding (ICD-10 codes)
	ICD10 []ICDCode `json:"icd10"`

	// Providers and related contacts (insurance, facilities, adjusters, etc.)
	Providers []Provider `json:"providers"`

	// Manual priority flag for TV and list emphasis
	TopPriority bool `json:"top_priority"`
	// Archive flag to hide finished cases from active views
	Archived bool `json:"archived"`

	// Derivatives
	NextDue  *Date       `json:"next_due"`
	External ExternalRef `json:"external"`
}

// NewCase builds a case with generated id and default workflow fields.
func NewCase(clientName, caseName, caseType string) Case {
	return Case{
		ID:         uuid.New().String(),
		ClientName: clientName,
		CaseName:   caseName,
		CaseType:   caseType,
		Stage:      StagePreFiling,
		Status:     StatusPreFiling,
		Attention:  AttentionNone,
	}
}

// HasCaseNumber reports whether the case carries a non-blank court case number.
func (c *Case) HasCaseNumber() bool {
	return strings.TrimSpace(c.CaseNumber) != ""
}

// UnreviewedTaskCount counts colleague tasks not yet marked reviewed.
func (c *Case) UnreviewedTaskCount() int {
	n := 0
	for _, t := range c.ColleagueTasks {
		if !t.Reviewed {
			n++
		}
	}
	return n
}

// Recompute re-derives next_due, current_focus and (conditionally) status.
// It is pure with respect to all other cases and must run after every
// mutation, never only at load time.
func (c *Case) Recompute() {
	// next_due from unresolved deadlines (ignore nil dates)
	var next *Date
	for _, d := range c.Deadlines {
		if d.Resolved || d.DueDate == nil {
			continue
		}
		if next == nil || d.DueDate.Before(*next) {
			due := *d.DueDate
			next = &due
		}
	}
	c.NextDue = next

	// current_focus from latest focus entry
	if len(c.FocusLog) > 0 {
		c.CurrentFocus = c.FocusLog[len(c.FocusLog)-1].Text
	}

	// Do not override user-specified special statuses; if archived, leave
	// status as-is.
	if !c.Archived && !IsSpecialStatus(c.Status) {
		if c.HasCaseNumber() {
			c.Status = StatusActive
		} else {
			c.Status = StatusPreFiling
		}
	}
}

// CaseFile is the whole persisted collection. Case order is insertion order
// and survives load/save.
type CaseFile struct {
	SchemaVersion int       `json:"schema_version"`
	SavedAt       time.Time `json:"saved_at"`
	Cases         []Case    `json:"cases"`
}

// NewCaseFile returns an empty, current-schema file stamped now.
func NewCaseFile() *CaseFile {
	return &CaseFile{
		SchemaVersion: CurrentSchemaVersion,
		SavedAt:       time.Now().UTC(),
		Cases:         []Case{},
	}
}

// FindCase returns the index of the case with the given id, or -1.
func (f *CaseFile) FindCase(id string) int {
	for i := range f.Cases {
		if f.Cases[i].ID == id {
			return i
		}
	}
	return -1
}
