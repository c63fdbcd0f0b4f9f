package models

import "strings"

// Accept common variations and typos for robustness.
var stageSynonyms = map[string]string{
	"pre filing": StagePreFiling,
	"prefiling":  StagePreFiling,
	"pre-filed":  StagePreFiling,
}

var statusSynonyms = map[string]string{
	// Various ways users may enter Pre-Filing
	"pre-filing":  StatusPreFiling,
	"pre filing":  StatusPreFiling,
	"prefiling":   StatusPreFiling,
	"pre-filling": StatusPreFiling, // common typo
	// Prospect
	"prospect": StatusProspect,
	// Normal forms map to themselves for completeness
	"active":     StatusActive,
	"settlement": StatusSettlement,
	"post-trial": StatusPostTrial,
	"post trial": StatusPostTrial,
	"appeal":     StatusAppeal,
}

// NormalizeStage maps free-text stage input to a canonical Stage value.
// Returns "" when the input is blank or unrecognized; the caller supplies a
// context-appropriate default.
func NormalizeStage(raw string) string {
	value := strings.TrimSpace(raw)
	if value == "" {
		return ""
	}
	key := strings.ToLower(value)
	for _, s := range Stages {
		if strings.ToLower(s) == key {
			return s
		}
	}
	return stageSynonyms[key]
}

// NormalizeStatus maps free-text status input to a canonical Status value.
// Returns "" when the input is blank or unrecognized.
func NormalizeStatus(raw string) string {
	value := strings.TrimSpace(raw)
	if value == "" {
		return ""
	}
	key := strings.ToLower(value)
	// direct exact match wins first
	for _, s := range Statuses {
		if strings.ToLower(s) == key {
			return s
		}
	}
	// tolerant mapping
	return statusSynonyms[key]
}

// NormalizeAttention coerces arbitrary input to one of the three legal
// attention values. Total function: anything unrecognized becomes the empty
// (none) value.
func NormalizeAttention(raw string) string {
	switch raw {
	case AttentionNeeds, AttentionWaiting, AttentionNone:
		return raw
	}
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "needs", "need", "needs-attention", "needs_attention":
		return AttentionNeeds
	case "wait", "waiting":
		return AttentionWaiting
	}
	return AttentionNone
}
