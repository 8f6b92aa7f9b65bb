package mcp

import (
	"github.com/custodia-labs/sercha-tmx/internal/core/ports/driving"
)

// Ports aggregates the driving port interfaces required by the MCP server.
type Ports struct {
	// Search runs queries against the loaded document.
	Search driving.SearchService

	// Document exposes the loaded document's summary and units.
	Document driving.DocumentService
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
