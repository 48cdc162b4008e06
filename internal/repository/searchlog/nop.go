package searchlog

import (
	"context"

	"github.com/erpworks/tablescout/internal/domain"
)

// NopSink discards search events. Used by the memory database driver.
type NopSink struct{}

// Record does nothing.
func (NopSink) Record(ctx context.Context, event domain.SearchEvent) error {
	return nil
}
