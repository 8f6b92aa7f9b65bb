package driven

import (
	"github.com/custodia-labs/sercha-tmx/internal/core/domain"
)

// UnitNormaliser converts the decoded tree into canonical records.
// It is the only component that sees the loosely-typed tree shape.
type UnitNormaliser interface {
	// Summary extracts header facts from the root node. fallbackLang is
	// used when the header declares no source language.
	Summary(root domain.RawNode, fallbackLang string) domain.DocumentSummary

	// Units returns the raw translation unit nodes in document order.
	Units(root domain.RawNode) []domain.RawNode

	// Normalise converts one raw unit at position into a TranslationUnit.
	// Returns an error wrapping domain.ErrMalformedUnit for units without variants.
	Normalise(raw domain.RawNode, position int, sourceLang string) (*domain.TranslationUnit, error)
}
