package domain

import (
	"fmt"
	"strings"
)

// DefaultResultCap bounds the number of positions a single query returns.
const DefaultResultCap = 2000

// SearchMode selects how a query is matched against the index.
type SearchMode string

// Available search modes. Exactly one applies per query.
const (
	// SearchModeFullText matches a substring of the unit's searchable text.
	SearchModeFullText SearchMode = "full_text"

	// SearchModeIDPrefix matches units whose normalised key starts with the query.
	SearchModeIDPrefix SearchMode = "id_prefix"

	// SearchModeIDPartial matches units whose normalised key contains the query.
	SearchModeIDPartial SearchMode = "id_partial"

	// SearchModeBatchID matches units whose normalised key is in a given set.
	SearchModeBatchID SearchMode = "batch_id"
)

// IsValid returns true if the search mode is recognised.
func (m SearchMode) IsValid() bool {
	switch m {
	case SearchModeFullText, SearchModeIDPrefix, SearchModeIDPartial, SearchModeBatchID:
		return true
	default:
		return false
	}
}

// String returns the string representation.
func (m SearchMode) String() string {
	return string(m)
}

// Description returns a human-readable description of the mode.
func (m SearchMode) Description() string {
	switch m {
	case SearchModeFullText:
		return "Full text"
	case SearchModeIDPrefix:
		return "ID starts with"
	case SearchModeIDPartial:
		return "ID contains"
	case SearchModeBatchID:
		return "ID list"
	default:
		return "Unknown"
	}
}

// AllSearchModes returns every mode in display order.
func AllSearchModes() []SearchMode {
	return []SearchMode{
		SearchModeFullText,
		SearchModeIDPrefix,
		SearchModeIDPartial,
		SearchModeBatchID,
	}
}

// ParseSearchMode converts user input into a SearchMode.
// Hyphens are accepted in place of underscores.
func ParseSearchMode(s string) (SearchMode, error) {
	m := SearchMode(strings.ReplaceAll(strings.ToLower(strings.TrimSpace(s)), "-", "_"))
	if m == "" {
		return SearchModeFullText, nil
	}
	if !m.IsValid() {
		return "", fmt.Errorf("%w: unknown search mode %q", ErrInvalidInput, s)
	}
	return m, nil
}

// SearchQuery is what crosses the engine boundary for one search.
type SearchQuery struct {
	// Mode selects the match rule.
	Mode SearchMode

	// Text is the raw query for full_text, id_prefix and id_partial.
	Text string

	// BatchIDs is the already-split identifier list for batch_id.
	BatchIDs []string
}

// SearchResponse is the engine's answer to a SearchQuery.
type SearchResponse struct {
	// Unfiltered reports that the query imposes no filter and the whole
	// ordered document applies. Positions is nil when set.
	Unfiltered bool

	// Positions holds matching unit positions in ascending order.
	Positions []int

	// Truncated reports that the result cap was reached.
	Truncated bool
}

// SearchRequest is a search as issued by a user-facing adapter.
type SearchRequest struct {
	// Mode selects the match rule.
	Mode SearchMode

	// Query is the query text. For batch_id it is split as the batch when
	// Batch is empty.
	Query string

	// Batch is raw identifier text separated by newlines or commas.
	Batch string

	// Page is 1-based. Zero means the first page.
	Page int

	// PageSize is the number of units per page. Zero means the configured default.
	PageSize int
}

// UnitHit is one unit on a result page.
type UnitHit struct {
	// Position is the unit's position in the document.
	Position int `json:"position"`

	// Unit is the matched unit.
	Unit TranslationUnit `json:"unit"`
}

// SearchPage is one page of a search result.
type SearchPage struct {
	// Hits holds the units on this page.
	Hits []UnitHit `json:"hits"`

	// Total is the number of matching units (capped).
	Total int `json:"total"`

	// Filtered is false when the query imposed no filter.
	Filtered bool `json:"filtered"`

	// Truncated reports that not all matches are included.
	Truncated bool `json:"truncated"`

	// Page is the 1-based page number.
	Page int `json:"page"`

	// PageCount is the number of pages available.
	PageCount int `json:"page_count"`
}
