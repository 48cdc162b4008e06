package health

import "context"

// CatalogPinger checks catalog store connectivity.
type CatalogPinger interface {
	Ping(ctx context.Context) error
}
