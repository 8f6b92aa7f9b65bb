package driving

import (
	"context"

	"github.com/custodia-labs/sercha-tmx/internal/core/domain"
)

// DocumentService loads translation-memory documents and exposes their records.
type DocumentService interface {
	// Load reads, normalises and indexes the document at path,
	// replacing any document loaded before.
	Load(ctx context.Context, path string) (*domain.DocumentSummary, error)

	// LoadBytes is Load for an in-memory document. name is informational.
	LoadBytes(ctx context.Context, name string, data []byte) (*domain.DocumentSummary, error)

	// Summary returns the loaded document's summary.
	Summary(ctx context.Context) (*domain.DocumentSummary, error)

	// Current returns the loaded document, including its units.
	Current(ctx context.Context) (*domain.Document, error)

	// Unit returns the unit at position.
	Unit(ctx context.Context, position int) (*domain.TranslationUnit, error)
}
