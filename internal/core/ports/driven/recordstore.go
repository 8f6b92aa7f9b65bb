package driven

import (
	"context"

	"github.com/custodia-labs/sercha-tmx/internal/core/domain"
)

// RecordStore holds the document loaded for the session.
// It is the caller-side copy used for rendering, never for matching.
type RecordStore interface {
	// Replace discards any current document and stores doc.
	Replace(ctx context.Context, doc *domain.Document) error

	// Clear discards the current document.
	Clear(ctx context.Context) error

	// Current returns the loaded document, or domain.ErrNoDocument.
	Current(ctx context.Context) (*domain.Document, error)

	// Unit returns the unit at position, or domain.ErrNotFound.
	Unit(ctx context.Context, position int) (*domain.TranslationUnit, error)

	// Len returns the number of stored units.
	Len(ctx context.Context) int
}
