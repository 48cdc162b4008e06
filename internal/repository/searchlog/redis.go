// Package searchlog records search events for later analysis. The sink is
// write-only and fire-and-forget: callers ignore its outcome.
package searchlog

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/redis/rueidis"

	"github.com/erpworks/tablescout/internal/domain"
)

// RedisSink appends search events to a Redis stream (<prefix>search-log).
type RedisSink struct {
	client rueidis.Client
	stream string
}

// NewRedis creates a stream-backed search-log sink on an existing client.
func NewRedis(client rueidis.Client, keyPrefix string) *RedisSink {
	return &RedisSink{client: client, stream: keyPrefix + "search-log"}
}

// Record appends one search event to the stream.
func (s *RedisSink) Record(ctx context.Context, event domain.SearchEvent) error {
	if event.ID == "" {
		event.ID = uuid.NewString()
	}
	if event.Timestamp.IsZero() {
		event.Timestamp = time.Now()
	}

	cmd := s.client.B().Xadd().Key(s.stream).Id("*").FieldValue().
		FieldValue("event_id", event.ID).
		FieldValue("user_id", event.UserID).
		FieldValue("query", event.Query).
		FieldValue("results_count", strconv.Itoa(event.ResultCount)).
		FieldValue("response_time_ms", strconv.FormatInt(event.ResponseTimeMs, 10)).
		FieldValue("context", string(event.Context)).
		FieldValue("conversion_opportunity", strconv.FormatBool(event.ConversionOpportunity)).
		FieldValue("timestamp", event.Timestamp.UTC().Format(time.RFC3339)).
		Build()

	if err := s.client.Do(ctx, cmd).Error(); err != nil {
		return fmt.Errorf("xadd search log: %w", err)
	}
	return nil
}
