package mcp

import (
	"context"
	"fmt"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/custodia-labs/sercha-tmx/internal/core/domain"
)

// SearchInput is the input schema for the search tool.
type SearchInput struct {
	Query    string `json:"query,omitempty" jsonschema:"text to match; empty returns every unit"`
	Mode     string `json:"mode,omitempty" jsonschema:"full_text (default), id_prefix, id_partial or batch_id"`
	Batch    string `json:"batch,omitempty" jsonschema:"for batch_id: identifiers separated by newlines or commas"`
	Page     int    `json:"page,omitempty" jsonschema:"1-based page number (default 1)"`
	PageSize int    `json:"page_size,omitempty" jsonschema:"units per page (default from settings)"`
}

// SearchOutput is the output schema for the search tool.
type SearchOutput struct {
	Units     []UnitOutput `json:"units"`
	Total     int          `json:"total"`
	Filtered  bool         `json:"filtered"`
	Truncated bool         `json:"truncated"`
	Page      int          `json:"page"`
	PageCount int          `json:"page_count"`
}

// UnitOutput is a flattened translation unit.
type UnitOutput struct {
	Position   int               `json:"position"`
	ID         string            `json:"id"`
	Source     string            `json:"source"`
	Targets    map[string]string `json:"targets,omitempty"`
	Properties map[string]string `json:"properties,omitempty"`
	Notes      []string          `json:"notes,omitempty"`
}

// SummaryInput is the (empty) input schema for the document_summary tool.
type SummaryInput struct{}

// UnitInput is the input schema for the get_unit tool.
type UnitInput struct {
	Position int `json:"position" jsonschema:"0-based unit position as returned by search"`
}

// UnitDetailOutput is the output schema for the get_unit tool.
type UnitDetailOutput struct {
	Position int                    `json:"position"`
	Unit     domain.TranslationUnit `json:"unit"`
}

// registerTools registers all tool handlers with the MCP server.
func (s *Server) registerTools() {
	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "search",
		Description: "Search the loaded translation memory by text, segment id prefix, id substring, or a batch of ids",
	}, s.handleSearch)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "document_summary",
		Description: "Describe the loaded translation memory: tool, languages, unit counts",
	}, s.handleSummary)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "get_unit",
		Description: "Fetch one translation unit with all variants, properties and metadata",
	}, s.handleGetUnit)
}

// handleSearch handles the search tool invocation.
func (s *Server) handleSearch(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input SearchInput,
) (*mcp.CallToolResult, SearchOutput, error) {
	mode, err := domain.ParseSearchMode(input.Mode)
	if err != nil {
		return nil, SearchOutput{}, err
	}

	page, err := s.ports.Search.Search(ctx, domain.SearchRequest{
		Mode:     mode,
		Query:    input.Query,
		Batch:    input.Batch,
		Page:     input.Page,
		PageSize: input.PageSize,
	})
	if err != nil {
		return nil, SearchOutput{}, err
	}

	output := SearchOutput{
		Units:     make([]UnitOutput, len(page.Hits)),
		Total:     page.Total,
		Filtered:  page.Filtered,
		Truncated: page.Truncated,
		Page:      page.Page,
		PageCount: page.PageCount,
	}
	for i := range page.Hits {
		output.Units[i] = toUnitOutput(page.Hits[i].Position, &page.Hits[i].Unit)
	}

	return nil, output, nil
}

// handleSummary handles the document_summary tool invocation.
func (s *Server) handleSummary(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	_ SummaryInput,
) (*mcp.CallToolResult, domain.DocumentSummary, error) {
	summary, err := s.ports.Document.Summary(ctx)
	if err != nil {
		return nil, domain.DocumentSummary{}, err
	}
	return nil, *summary, nil
}

// handleGetUnit handles the get_unit tool invocation.
func (s *Server) handleGetUnit(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input UnitInput,
) (*mcp.CallToolResult, UnitDetailOutput, error) {
	unit, err := s.ports.Document.Unit(ctx, input.Position)
	if err != nil {
		return nil, UnitDetailOutput{}, fmt.Errorf("unit %d: %w", input.Position, err)
	}
	return nil, UnitDetailOutput{Position: input.Position, Unit: *unit}, nil
}

// toUnitOutput flattens a unit for result listings. Targets are keyed by
// language; a repeated language keeps its first variant.
func toUnitOutput(position int, unit *domain.TranslationUnit) UnitOutput {
	out := UnitOutput{
		Position:   position,
		ID:         unit.ID,
		Properties: unit.Properties,
		Notes:      unit.Notes,
	}
	if src, ok := unit.SourceVariant(); ok {
		out.Source = src.Text
	}
	targets := unit.TargetVariants()
	if len(targets) > 0 {
		out.Targets = make(map[string]string, len(targets))
		for _, v := range targets {
			if _, seen := out.Targets[v.Language]; !seen {
				out.Targets[v.Language] = v.Text
			}
		}
	}
	return out
}
