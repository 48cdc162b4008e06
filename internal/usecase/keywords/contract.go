package keywords

import "context"

// Assistant is the AI collaborator used for primary keyword extraction.
// The returned text is expected to contain a JSON array of keywords.
type Assistant interface {
	ExtractKeywords(ctx context.Context, query string) (string, error)
}
