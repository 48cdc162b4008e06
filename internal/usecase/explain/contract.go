package explain

import "context"

// Assistant is the AI collaborator used for primary explanation generation.
type Assistant interface {
	Explain(ctx context.Context, systemPrompt, query string) (string, error)
}
