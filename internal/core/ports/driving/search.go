package driving

import (
	"context"

	"github.com/custodia-labs/sercha-tmx/internal/core/domain"
)

// SearchService provides search capabilities to external actors.
type SearchService interface {
	// Search runs req against the loaded document and returns one page.
	Search(ctx context.Context, req domain.SearchRequest) (*domain.SearchPage, error)
}
