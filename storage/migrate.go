package storage

import (
	"strings"
	"time"

	"caseboard/models"

	"github.com/google/uuid"
)

// MigrateFile repairs arbitrary decoded JSON into the current schema shape.
// It never fails: whatever the input, the result is a well-formed raw file.
// The returned flag reports whether a rewrite is needed. Running MigrateFile
// on its own output reports no further changes.
func MigrateFile(raw interface{}) (map[string]interface{}, bool) {
	file, ok := raw.(map[string]interface{})
	if !ok {
		return emptyRawFile(), true
	}

	changed := false

	cases, ok := file["cases"].([]interface{})
	if !ok {
		cases = []interface{}{}
		changed = true
	}

	newCases := make([]interface{}, 0, len(cases))
	for _, entry := range cases {
		caseMap, ok := entry.(map[string]interface{})
		if !ok {
			// Non-record entries are dropped, reported only via the
			// aggregate changed flag.
			changed = true
			continue
		}
		migrated, caseChanged := MigrateCase(caseMap)
		newCases = append(newCases, migrated)
		changed = changed || caseChanged
	}
	file["cases"] = newCases

	if version, ok := file["schema_version"].(float64); !ok || int(version) != models.CurrentSchemaVersion {
		file["schema_version"] = models.CurrentSchemaVersion
		changed = true
	}
	if _, ok := file["saved_at"].(string); !ok {
		file["saved_at"] = time.Now().UTC().Format(time.RFC3339)
		changed = true
	}

	return file, changed
}

// MigrateCase applies the per-case recovery rules.
func MigrateCase(raw map[string]interface{}) (map[string]interface{}, bool) {
	changed := false
	c := make(map[string]interface{}, len(raw))
	for k, v := range raw {
		c[k] = v
	}

	// identity is generated once; repair records that lost theirs
	if id, ok := c["id"].(string); !ok || id == "" {
		c["id"] = uuid.New().String()
		changed = true
	}

	// normalize stage, defaulting to Pre-filing when unrecognized
	stageNorm := models.NormalizeStage(stringField(c, "stage"))
	if stageNorm == "" {
		stageNorm = models.StagePreFiling
	}
	if c["stage"] != stageNorm {
		c["stage"] = stageNorm
		changed = true
	}

	// normalize status with tolerance; default based on case_number unless
	// the stored value is one of the locked special statuses
	statusNorm := models.NormalizeStatus(stringField(c, "status"))
	if statusNorm == "" || !models.IsSpecialStatus(statusNorm) {
		if hasCaseNumber(c) {
			statusNorm = models.StatusActive
		} else {
			statusNorm = models.StatusPreFiling
		}
	}
	if c["status"] != statusNorm {
		c["status"] = statusNorm
		changed = true
	}

	// attention is restricted to exactly three values
	if att, ok := c["attention"].(string); !ok || !models.IsValidAttention(att) {
		norm := models.NormalizeAttention(stringField(c, "attention"))
		if !models.IsValidAttention(norm) {
			norm = models.AttentionNone
		}
		if c["attention"] != norm {
			c["attention"] = norm
			changed = true
		}
	}

	// coerce deadlines into a well-formed list
	deadlines, deadlinesChanged := migrateDeadlines(c["deadlines"])
	c["deadlines"] = deadlines
	changed = changed || deadlinesChanged

	// ensure focus_log is a list
	if _, ok := c["focus_log"].([]interface{}); !ok {
		c["focus_log"] = []interface{}{}
		changed = true
	}

	return c, changed
}

func migrateDeadlines(raw interface{}) ([]interface{}, bool) {
	changed := false
	list, ok := raw.([]interface{})
	if !ok {
		return []interface{}{}, true
	}

	out := make([]interface{}, 0, len(list))
	for _, entry := range list {
		item, ok := entry.(map[string]interface{})
		if !ok {
			changed = true
			continue
		}

		var due interface{}
		if s, ok := item["due_date"].(string); ok && s != "" {
			if _, err := models.ParseDate(s); err == nil {
				due = s
			}
		}
		desc, _ := item["description"].(string)
		resolved := truthy(item["resolved"])

		out = append(out, map[string]interface{}{
			"due_date":    due,
			"description": desc,
			"resolved":    resolved,
		})
		if item["due_date"] != due || item["description"] != desc || truthy(item["resolved"]) != resolved || len(item) != 3 {
			changed = true
		}
	}
	return out, changed
}

func emptyRawFile() map[string]interface{} {
	return map[string]interface{}{
		"schema_version": models.CurrentSchemaVersion,
		"saved_at":       time.Now().UTC().Format(time.RFC3339),
		"cases":          []interface{}{},
	}
}

func stringField(m map[string]interface{}, key string) string {
	s, _ := m[key].(string)
	return s
}

func hasCaseNumber(m map[string]interface{}) bool {
	s, _ := m["case_number"].(string)
	return strings.TrimSpace(s) != ""
}

func truthy(v interface{}) bool {
	switch value := v.(type) {
	case bool:
		return value
	case string:
		return value == "true" || value == "1"
	case float64:
		return value != 0
	default:
		return false
	}
}
