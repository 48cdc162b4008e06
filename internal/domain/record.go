package domain

import (
	"fmt"
	"time"
)

// DeadlineYear is the SAP ECC end-of-life year. Every urgency computation
// in the service is anchored to it.
const DeadlineYear = 2027

// MigrationClass is the migration classification of a catalog record with
// respect to the ECC to S/4HANA transition.
type MigrationClass string

const (
	ClassECCOnly    MigrationClass = "ECC_ONLY"
	ClassS4HanaOnly MigrationClass = "S4HANA_ONLY"
	ClassDeprecated MigrationClass = "DEPRECATED"
	ClassBoth       MigrationClass = "BOTH"
	ClassUnknown    MigrationClass = "UNKNOWN"
)

// ParseMigrationClass maps stored classification text to a MigrationClass,
// defaulting to UNKNOWN for anything unrecognized.
func ParseMigrationClass(s string) MigrationClass {
	switch MigrationClass(s) {
	case ClassECCOnly, ClassS4HanaOnly, ClassDeprecated, ClassBoth:
		return MigrationClass(s)
	default:
		return ClassUnknown
	}
}

// CatalogRecord is one ERP metadata record as owned by the catalog store.
// The search core only reads it and attaches derived fields.
type CatalogRecord struct {
	ID                string
	Name              string
	Description       string
	BusinessPurpose   string
	Module            string
	MigrationClass    MigrationClass
	MigrationPriority int
}

// MergedRecord is a CatalogRecord plus the fields the ranking pipeline
// derives per request. PriorityScore determines the final ordering but is
// not part of the API payload; RelevanceScore is what clients see.
type MergedRecord struct {
	TableName        string         `json:"tableName"`
	Description      string         `json:"description"`
	Module           string         `json:"module"`
	BusinessPurpose  string         `json:"businessPurpose"`
	RelevanceScore   int            `json:"relevanceScore"`
	MigrationStatus  MigrationClass `json:"migrationStatus"`
	MigrationUrgency int            `json:"migrationUrgency"`
	MigrationMessage string         `json:"migrationMessage"`
	UrgencyFlag      string         `json:"urgencyFlag,omitempty"`

	ID            string `json:"-"`
	PriorityScore int    `json:"-"`
}

// YearsToDeadline returns the whole years remaining until DeadlineYear,
// floored at zero.
func YearsToDeadline(now time.Time) int {
	years := DeadlineYear - now.Year()
	if years < 0 {
		return 0
	}
	return years
}

// MigrationUrgency maps a classification to its fixed 0-100 urgency score.
func MigrationUrgency(class MigrationClass) int {
	switch class {
	case ClassDeprecated:
		return 100
	case ClassECCOnly:
		return 80
	case ClassBoth:
		return 60
	case ClassS4HanaOnly:
		return 20
	default:
		return 0
	}
}

// MigrationMessage renders the advisory sentence for a classification,
// parameterized by the years remaining until the deadline.
func MigrationMessage(class MigrationClass, now time.Time) string {
	years := YearsToDeadline(now)
	switch class {
	case ClassDeprecated:
		return fmt.Sprintf(
			"Table is deprecated in S/4HANA. Find a replacement immediately (%d years until ECC end-of-life).", years)
	case ClassECCOnly:
		return fmt.Sprintf(
			"ECC-only table. Plan the S/4HANA migration strategy (%d years remaining).", years)
	case ClassBoth:
		return "Available in both ECC and S/4HANA. Review field changes for S/4HANA compatibility."
	case ClassS4HanaOnly:
		return "New S/4HANA functionality. Consider for future implementations."
	default:
		return ""
	}
}

// DeprecatedUrgencyFlag is attached to deprecated records surfaced under a
// migration-typed query.
const DeprecatedUrgencyFlag = "URGENT: find S/4HANA replacement"
