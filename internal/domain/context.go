package domain

import "strings"

// ContextType is the classified intent of a search query.
type ContextType string

const (
	ContextMigration  ContextType = "migration"
	ContextConsultant ContextType = "consultant"
	ContextDeveloper  ContextType = "developer"
	ContextGeneral    ContextType = "general"
)

// Urgency is the classified urgency of a search query.
type Urgency string

const (
	UrgencyHigh   Urgency = "high"
	UrgencyMedium Urgency = "medium"
	UrgencyLow    Urgency = "low"
)

// QueryContext is the intent/urgency tag derived from the query text.
// It is recomputed on every request, including cache hits, because alert
// text depends on the current query even when results are cached.
type QueryContext struct {
	Type    ContextType
	Urgency Urgency
}

// MigrationTerms is the fixed dictionary of migration-related terms used by
// the classifier, the keyword fallback, and the migration-priority strategy.
var MigrationTerms = []string{
	"migration", "ecc", "s4hana", "s/4hana", "convert", "upgrade",
	"2027", "end of life", "deprecated", "acdoca", "new gl",
}

var consultantTerms = []string{
	"business", "process", "client", "requirement", "workflow",
	"implementation", "configuration", "functional",
}

var developerTerms = []string{
	"abap", "custom", "code", "development", "api", "integration",
	"enhancement", "badi", "user exit", "function module",
}

// Modules is the enumerated set of recognized SAP module codes.
var Modules = map[string]bool{
	"FI": true, "MM": true, "SD": true, "HR": true,
	"PP": true, "QM": true, "PM": true,
}

// IsMigrationTerm reports whether the (already lower-cased) token is in the
// migration dictionary.
func IsMigrationTerm(token string) bool {
	for _, term := range MigrationTerms {
		if token == term {
			return true
		}
	}
	return false
}

// IsModule reports whether the token names a known SAP module code,
// case-insensitively.
func IsModule(token string) bool {
	return Modules[strings.ToUpper(token)]
}

// Classify derives the QueryContext from the raw query text. Pure and
// total: substring membership against three disjoint dictionaries, with
// migration winning over consultant over developer when several match.
func Classify(query string) QueryContext {
	q := strings.ToLower(query)

	ctxType := ContextGeneral
	switch {
	case containsAny(q, MigrationTerms):
		ctxType = ContextMigration
	case containsAny(q, consultantTerms):
		ctxType = ContextConsultant
	case containsAny(q, developerTerms):
		ctxType = ContextDeveloper
	}

	urgency := UrgencyLow
	switch {
	case ctxType == ContextMigration ||
		strings.Contains(q, "urgent") || strings.Contains(q, "critical"):
		urgency = UrgencyHigh
	case strings.Contains(q, "planning") || strings.Contains(q, "prepare"):
		urgency = UrgencyMedium
	}

	return QueryContext{Type: ctxType, Urgency: urgency}
}

func containsAny(s string, terms []string) bool {
	for _, term := range terms {
		if strings.Contains(s, term) {
			return true
		}
	}
	return false
}
