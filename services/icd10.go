package services

import "strings"

// icd10Map is a lightweight ICD-10 description map (expandable). Lookups
// outside the map return an empty description.
var icd10Map = map[string]string{
	"A00":      "Cholera",
	"S06.0X0A": "Concussion without loss of consciousness, initial encounter",
	"S06.0X1A": "Concussion with loss of consciousness of 30 minutes or less, initial encounter",
	"M54.5":    "Low back pain",
	"S16.1XXA": "Strain of muscle, fascia and tendon at neck level, initial encounter",
	"S13.4XXA": "Sprain of ligaments of cervical spine, initial encounter",
	"S80.01XA": "Contusion of knee, initial encounter",
}

// LookupICD10 returns the canonical code form and its description, if known.
func LookupICD10(code string) (string, string) {
	c := strings.ToUpper(strings.TrimSpace(code))
	return c, icd10Map[c]
}
