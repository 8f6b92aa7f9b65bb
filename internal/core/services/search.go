package services

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/custodia-labs/sercha-tmx/internal/core/domain"
	"github.com/custodia-labs/sercha-tmx/internal/core/ports/driven"
	"github.com/custodia-labs/sercha-tmx/internal/core/ports/driving"
	"github.com/custodia-labs/sercha-tmx/internal/logger"
)

// Ensure SearchService implements the interface.
var _ driving.SearchService = (*SearchService)(nil)

// SearchService queries the backend and pages the results over the stored
// units.
type SearchService struct {
	store    driven.RecordStore
	backend  driven.SearchBackend
	pageSize int

	// swap is the loading service's lock, when there is one.
	swap *sync.RWMutex
}

// SearchOption configures a SearchService.
type SearchOption func(*SearchService)

// WithDocumentService makes searches wait for docs to finish swapping in a
// new document, so positions from the index always refer to the stored
// units. docs must share the store and backend.
func WithDocumentService(docs *DocumentService) SearchOption {
	return func(s *SearchService) {
		s.swap = &docs.swapMu
	}
}

// NewSearchService creates a new search service.
func NewSearchService(
	store driven.RecordStore,
	backend driven.SearchBackend,
	settings domain.Settings,
	opts ...SearchOption,
) *SearchService {
	pageSize := settings.PageSize
	if pageSize <= 0 {
		pageSize = domain.DefaultPageSize
	}
	s := &SearchService{
		store:    store,
		backend:  backend,
		pageSize: pageSize,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Search runs req and returns the requested page.
func (s *SearchService) Search(ctx context.Context, req domain.SearchRequest) (*domain.SearchPage, error) {
	mode := req.Mode
	if mode == "" {
		mode = domain.SearchModeFullText
	}
	if !mode.IsValid() {
		return nil, fmt.Errorf("%w: unknown search mode %q", domain.ErrInvalidInput, mode)
	}

	if s.swap != nil {
		s.swap.RLock()
		defer s.swap.RUnlock()
	}

	doc, err := s.store.Current(ctx)
	if err != nil {
		return nil, err
	}

	query := domain.SearchQuery{Mode: mode, Text: req.Query}
	if mode == domain.SearchModeBatchID {
		batch := req.Batch
		if strings.TrimSpace(batch) == "" {
			batch = req.Query
		}
		query.BatchIDs = SplitBatch(batch)
	}

	logger.Section("Search")
	logger.Debug("Mode: %s, query: %q, batch size: %d", mode, query.Text, len(query.BatchIDs))

	resp, err := s.backend.Search(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("search: %w", err)
	}

	total := len(resp.Positions)
	if resp.Unfiltered {
		total = len(doc.Units)
	}

	pageSize := req.PageSize
	if pageSize <= 0 {
		pageSize = s.pageSize
	}
	page := req.Page
	if page < 1 {
		page = 1
	}

	result := &domain.SearchPage{
		Hits:      []domain.UnitHit{},
		Total:     total,
		Filtered:  !resp.Unfiltered,
		Truncated: resp.Truncated,
		Page:      page,
		PageCount: (total + pageSize - 1) / pageSize,
	}

	start := (page - 1) * pageSize
	if start >= total {
		return result, nil
	}
	end := min(start+pageSize, total)

	for i := start; i < end; i++ {
		pos := i
		if !resp.Unfiltered {
			pos = resp.Positions[i]
		}
		if pos < 0 || pos >= len(doc.Units) {
			logger.Warn("Backend returned position %d outside document of %d units", pos, len(doc.Units))
			continue
		}
		result.Hits = append(result.Hits, domain.UnitHit{Position: pos, Unit: doc.Units[pos]})
	}

	logger.Debug("Page %d/%d: %d hits of %d (truncated=%t)",
		result.Page, result.PageCount, len(result.Hits), total, result.Truncated)
	return result, nil
}

// SplitBatch splits pasted identifier text on newlines and commas, trimming
// each entry and dropping empties. Order and duplicates are kept.
func SplitBatch(text string) []string {
	fields := strings.FieldsFunc(text, func(r rune) bool {
		return r == '\n' || r == '\r' || r == ','
	})
	ids := make([]string, 0, len(fields))
	for _, f := range fields {
		if f = strings.TrimSpace(f); f != "" {
			ids = append(ids, f)
		}
	}
	return ids
}
