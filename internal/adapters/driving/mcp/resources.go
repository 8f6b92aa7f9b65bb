package mcp

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/custodia-labs/sercha-tmx/internal/core/domain"
)

// uriScheme is the custom URI scheme for sercha-tmx resources.
const uriScheme = "tmx://"

// registerResources registers all resource handlers with the MCP server.
func (s *Server) registerResources() {
	s.server.AddResource(&mcp.Resource{
		URI:         uriScheme + "summary",
		Name:        "summary",
		Description: "Header facts and unit counts of the loaded translation memory",
		MIMEType:    "application/json",
	}, s.handleSummaryResource)

	s.server.AddResourceTemplate(&mcp.ResourceTemplate{
		URITemplate: uriScheme + "units/{position}",
		Name:        "unit",
		Description: "A single translation unit by position",
		MIMEType:    "application/json",
	}, s.handleUnitResource)
}

func (s *Server) handleSummaryResource(
	ctx context.Context,
	req *mcp.ReadResourceRequest,
) (*mcp.ReadResourceResult, error) {
	summary, err := s.ports.Document.Summary(ctx)
	if err != nil {
		return nil, fmt.Errorf("reading summary: %w", err)
	}
	return jsonResource(req.Params.URI, summary)
}

func (s *Server) handleUnitResource(
	ctx context.Context,
	req *mcp.ReadResourceRequest,
) (*mcp.ReadResourceResult, error) {
	position, ok := extractPosition(req.Params.URI)
	if !ok {
		return nil, mcp.ResourceNotFoundError(req.Params.URI)
	}

	unit, err := s.ports.Document.Unit(ctx, position)
	if errors.Is(err, domain.ErrNotFound) {
		return nil, mcp.ResourceNotFoundError(req.Params.URI)
	}
	if err != nil {
		return nil, fmt.Errorf("reading unit: %w", err)
	}
	return jsonResource(req.Params.URI, unit)
}

func jsonResource(uri string, v any) (*mcp.ReadResourceResult, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshalling %s: %w", uri, err)
	}
	return &mcp.ReadResourceResult{
		Contents: []*mcp.ResourceContents{{
			URI:      uri,
			MIMEType: "application/json",
			Text:     string(data),
		}},
	}, nil
}

// extractPosition parses the position from a URI like tmx://units/{position}.
func extractPosition(uri string) (int, bool) {
	const prefix = uriScheme + "units/"

	if !strings.HasPrefix(uri, prefix) {
		return 0, false
	}
	n, err := strconv.Atoi(strings.TrimPrefix(uri, prefix))
	if err != nil || n < 0 {
		return 0, false
	}
	return n, true
}
