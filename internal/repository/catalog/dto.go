package catalog

import (
	"strconv"

	"github.com/erpworks/tablescout/internal/domain"
)

// Hash field names for catalog records stored in Redis.
const (
	fieldName            = "name"
	fieldDescription     = "description"
	fieldBusinessPurpose = "business_purpose"
	fieldModule          = "module"
	fieldMigrationClass  = "migration_class"
	fieldPriority        = "migration_priority"
)

// recordFromHash converts a Redis hash into a CatalogRecord. Unknown
// classifications become UNKNOWN; a malformed priority becomes zero.
func recordFromHash(id string, fields map[string]string) domain.CatalogRecord {
	priority, _ := strconv.Atoi(fields[fieldPriority])
	return domain.CatalogRecord{
		ID:                id,
		Name:              fields[fieldName],
		Description:       fields[fieldDescription],
		BusinessPurpose:   fields[fieldBusinessPurpose],
		Module:            fields[fieldModule],
		MigrationClass:    domain.ParseMigrationClass(fields[fieldMigrationClass]),
		MigrationPriority: priority,
	}
}
