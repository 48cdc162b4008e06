package domain

import "time"

// SearchEvent is one search-log record handed to the log sink. The sink is
// fire-and-forget: the core never inspects the outcome of recording it.
type SearchEvent struct {
	ID                    string
	UserID                string
	Query                 string
	ResultCount           int
	ResponseTimeMs        int64
	Context               ContextType
	ConversionOpportunity bool
	Timestamp             time.Time
}
