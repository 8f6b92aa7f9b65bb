package mcp

import (
	"context"

	"github.com/custodia-labs/sercha-tmx/internal/core/domain"
)

// mockSearchService is a mock implementation of driving.SearchService.
type mockSearchService struct {
	page    *domain.SearchPage
	err     error
	lastReq domain.SearchRequest
}

func (m *mockSearchService) Search(_ context.Context, req domain.SearchRequest) (*domain.SearchPage, error) {
	m.lastReq = req
	if m.err != nil {
		return nil, m.err
	}
	if m.page == nil {
		return &domain.SearchPage{Hits: []domain.UnitHit{}, Page: 1}, nil
	}
	return m.page, nil
}

// mockDocumentService is a mock implementation of driving.DocumentService.
type mockDocumentService struct {
	summary *domain.DocumentSummary
	units   []domain.TranslationUnit
	err     error
}

func (m *mockDocumentService) Load(_ context.Context, _ string) (*domain.DocumentSummary, error) {
	return m.summary, m.err
}

func (m *mockDocumentService) LoadBytes(_ context.Context, _ string, _ []byte) (*domain.DocumentSummary, error) {
	return m.summary, m.err
}

func (m *mockDocumentService) Summary(_ context.Context) (*domain.DocumentSummary, error) {
	if m.err != nil {
		return nil, m.err
	}
	return m.summary, nil
}

func (m *mockDocumentService) Current(_ context.Context) (*domain.Document, error) {
	if m.err != nil {
		return nil, m.err
	}
	return &domain.Document{Summary: *m.summary, Units: m.units}, nil
}

func (m *mockDocumentService) Unit(_ context.Context, position int) (*domain.TranslationUnit, error) {
	if m.err != nil {
		return nil, m.err
	}
	if position < 0 || position >= len(m.units) {
		return nil, domain.ErrNotFound
	}
	unit := m.units[position]
	return &unit, nil
}

func sampleUnit() domain.TranslationUnit {
	return domain.TranslationUnit{
		ID:             "u1",
		SourceLanguage: "en-US",
		Variants: []domain.Variant{
			{Language: "en-US", Text: "Hello"},
			{Language: "fr-FR", Text: "Bonjour"},
			{Language: "de-DE", Text: "Hallo"},
		},
		Properties: map[string]string{"x-segment-id": "ABC123"},
		Notes:      []string{"greeting"},
	}
}

func newTestServer(search *mockSearchService, docs *mockDocumentService) (*Server, error) {
	return NewServer(&Ports{Search: search, Document: docs})
}
