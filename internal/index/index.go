// Package index builds and queries the search index over translation units.
//
// An Index is built once per document load and is immutable afterwards.
// Matching is literal: substring, prefix and set membership on case-folded
// text, with results in ascending document order and bounded by a cap.
package index

import (
	"strings"

	"golang.org/x/text/cases"

	"github.com/custodia-labs/sercha-tmx/internal/core/domain"
	"github.com/custodia-labs/sercha-tmx/internal/logger"
)

// entry holds the search projections of one unit.
type entry struct {
	position       int
	searchableText string
	normalizedKey  string
}

// Index is the parallel sequence of search projections for a document.
type Index struct {
	entries     []entry
	keyProperty string
}

// Option configures Build.
type Option func(*Index)

// WithKeyProperty sets the property whose value becomes the normalised key.
func WithKeyProperty(name string) Option {
	return func(ix *Index) {
		if name != "" {
			ix.keyProperty = name
		}
	}
}

// Build derives one entry per unit in a single pass. It is a pure function
// of its input.
func Build(units []domain.TranslationUnit, opts ...Option) *Index {
	ix := &Index{keyProperty: domain.KeyPropertyDefault}
	for _, opt := range opts {
		opt(ix)
	}

	fold := cases.Fold()
	ix.entries = make([]entry, len(units))
	parts := make([]string, 0, 8)

	for i := range units {
		u := &units[i]
		key := fold.String(strings.TrimSpace(u.Properties[ix.keyProperty]))

		parts = parts[:0]
		parts = appendNonEmpty(parts, u.ID)
		if src, ok := u.SourceVariant(); ok {
			parts = appendNonEmpty(parts, src.Text)
		}
		for _, v := range u.TargetVariants() {
			parts = appendNonEmpty(parts, v.Text)
		}
		parts = appendNonEmpty(parts, key)

		ix.entries[i] = entry{
			position:       i,
			searchableText: fold.String(strings.Join(parts, " ")),
			normalizedKey:  key,
		}
	}

	logger.Debug("Built index: %d entries, key property %q", len(ix.entries), ix.keyProperty)
	return ix
}

// Len returns the number of indexed units.
func (ix *Index) Len() int {
	return len(ix.entries)
}

// KeyProperty returns the property the normalised keys were taken from.
func (ix *Index) KeyProperty() string {
	return ix.keyProperty
}

func appendNonEmpty(parts []string, s string) []string {
	if s == "" {
		return parts
	}
	return append(parts, s)
}
