package driven

import (
	"context"

	"github.com/custodia-labs/sercha-tmx/internal/core/domain"
)

// SearchBackend is the index and query engine behind the execution boundary.
// Units handed to Load are copied; the backend never shares caller memory.
type SearchBackend interface {
	// Load discards any prior index and indexes units.
	// Returns the number of indexed units.
	Load(ctx context.Context, units []domain.TranslationUnit) (int, error)

	// Search evaluates q against the current index.
	Search(ctx context.Context, q domain.SearchQuery) (domain.SearchResponse, error)
}
