package explain

import (
	"fmt"
	"strings"

	"github.com/erpworks/tablescout/internal/domain"
)

// BuildPrompt renders the system prompt for an explanation request. One of
// four fixed templates is chosen by context type; each grounds the
// assistant in the supplied record list and bounds the length.
func BuildPrompt(query string, qc domain.QueryContext, records []domain.MergedRecord) string {
	tables := make([]string, len(records))
	for i, r := range records {
		tables[i] = fmt.Sprintf("%s (%s) - %s", r.TableName, r.Module, r.Description)
	}

	base := fmt.Sprintf(`You are an expert SAP consultant assistant helping users find the right SAP tables.

CRITICAL CONTEXT: SAP ECC end of life is January %d. All ECC customers must migrate to S/4HANA.

User query: %q
Found tables: %s

Base your explanation only on the tables listed above. Keep it under 150 words.`,
		domain.DeadlineYear, query, strings.Join(tables, ", "))

	switch qc.Type {
	case domain.ContextMigration:
		return base + `

MIGRATION EXPERT MODE. For each table give its migration status (ECC_ONLY
must migrate, S4HANA_ONLY is new, DEPRECATED needs a replacement, BOTH needs
review), the business impact, and the immediate action required for ` +
			fmt.Sprintf("%d", domain.DeadlineYear) + ` compliance. Be specific about deadline implications.`
	case domain.ContextConsultant:
		return base + `

CONSULTANT MODE. For each table explain its business purpose, the client
value, integration points with other SAP modules, and typical implementation
scenarios. Use business language, not technical jargon.`
	case domain.ContextDeveloper:
		return base + `

DEVELOPER MODE. For each table cover key fields, performance notes,
standard BAPIs or function modules, and technical differences in S/4HANA.
Balance depth with practical implementation guidance.`
	default:
		return base + `

GENERAL GUIDANCE. Explain what each table stores, when it is used, and any
migration notes if relevant. Keep it accessible to both technical and
functional users.`
	}
}
