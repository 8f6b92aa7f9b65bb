package memory

import (
	"context"
	"fmt"
	"sync"

	"github.com/custodia-labs/sercha-tmx/internal/core/domain"
	"github.com/custodia-labs/sercha-tmx/internal/core/ports/driven"
)

// Ensure RecordStore implements the interface.
var _ driven.RecordStore = (*RecordStore)(nil)

// RecordStore is an in-memory implementation of driven.RecordStore.
// It holds at most one document.
type RecordStore struct {
	mu  sync.RWMutex
	doc *domain.Document
}

// NewRecordStore creates an empty record store.
func NewRecordStore() *RecordStore {
	return &RecordStore{}
}

// Replace discards any current document and stores doc.
func (s *RecordStore) Replace(_ context.Context, doc *domain.Document) error {
	if doc == nil {
		return fmt.Errorf("%w: nil document", domain.ErrInvalidInput)
	}
	stored := *doc
	s.mu.Lock()
	defer s.mu.Unlock()
	s.doc = &stored
	return nil
}

// Clear discards the current document.
func (s *RecordStore) Clear(_ context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.doc = nil
	return nil
}

// Current returns the loaded document.
func (s *RecordStore) Current(_ context.Context) (*domain.Document, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.doc == nil {
		return nil, domain.ErrNoDocument
	}
	doc := *s.doc
	return &doc, nil
}

// Unit returns the unit at position.
func (s *RecordStore) Unit(_ context.Context, position int) (*domain.TranslationUnit, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.doc == nil {
		return nil, domain.ErrNoDocument
	}
	if position < 0 || position >= len(s.doc.Units) {
		return nil, fmt.Errorf("%w: no unit at position %d", domain.ErrNotFound, position)
	}
	unit := s.doc.Units[position]
	return &unit, nil
}

// Len returns the number of stored units.
func (s *RecordStore) Len(_ context.Context) int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.doc == nil {
		return 0
	}
	return len(s.doc.Units)
}
