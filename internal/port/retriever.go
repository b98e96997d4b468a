package port

import (
	"context"

	"staffq/internal/domain"
)

// Retriever defines the interface for shortlisting employees for a query.
type Retriever interface {
	// Retrieve embeds the query and returns the ranked shortlist.
	Retrieve(ctx context.Context, query string) ([]domain.ShortlistEntry, error)
}
