// Package tui provides an interactive terminal user interface for browsing
// a translation memory. It implements a driving adapter following hexagonal
// architecture principles.
package tui

import (
	"github.com/custodia-labs/sercha-tmx/internal/core/ports/driving"
)

// Ports aggregates all driving port interfaces required by the TUI.
type Ports struct {
	// Search pages query results over the loaded document.
	Search driving.SearchService

	// Document loads and reloads the translation memory.
	Document driving.DocumentService
}

// NewPorts creates a new Ports aggregate with the given services.
func NewPorts(search driving.SearchService, document driving.DocumentService) *Ports {
	return &Ports{
		Search:   search,
		Document: document,
	}
}

// Validate ensures all required ports are set.
func (p *Ports) Validate() error {
	if p.Search == nil {
		return ErrMissingSearchService
	}
	if p.Document == nil {
		return ErrMissingDocumentService
	}
	return nil
}
