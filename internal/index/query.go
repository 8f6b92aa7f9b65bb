package index

import (
	"strings"

	"golang.org/x/text/cases"

	"github.com/custodia-labs/sercha-tmx/internal/core/domain"
	"github.com/custodia-labs/sercha-tmx/internal/logger"
)

// unfiltered is the response for queries that impose no filter.
var unfiltered = domain.SearchResponse{Unfiltered: true}

// Query evaluates q and returns at most limit positions in ascending order.
// A non-positive limit means domain.DefaultResultCap. Degenerate input never
// fails: empty queries and empty batch lists return an unfiltered response.
func (ix *Index) Query(q domain.SearchQuery, limit int) domain.SearchResponse {
	if limit <= 0 {
		limit = domain.DefaultResultCap
	}
	fold := cases.Fold()

	var match func(e *entry) bool

	switch q.Mode {
	case domain.SearchModeFullText, domain.SearchModeIDPrefix, domain.SearchModeIDPartial:
		needle := fold.String(strings.TrimSpace(q.Text))
		if needle == "" {
			return unfiltered
		}
		switch q.Mode {
		case domain.SearchModeFullText:
			match = func(e *entry) bool { return strings.Contains(e.searchableText, needle) }
		case domain.SearchModeIDPrefix:
			match = func(e *entry) bool { return strings.HasPrefix(e.normalizedKey, needle) }
		default:
			match = func(e *entry) bool { return strings.Contains(e.normalizedKey, needle) }
		}

	case domain.SearchModeBatchID:
		ids := make(map[string]struct{}, len(q.BatchIDs))
		for _, id := range q.BatchIDs {
			if k := fold.String(strings.TrimSpace(id)); k != "" {
				ids[k] = struct{}{}
			}
		}
		if len(ids) == 0 {
			return unfiltered
		}
		match = func(e *entry) bool {
			_, ok := ids[e.normalizedKey]
			return ok
		}

	default:
		logger.Warn("Unknown search mode %q, returning unfiltered", q.Mode)
		return unfiltered
	}

	return ix.scan(match, limit)
}

// scan walks entries in position order and stops at limit, so a smaller
// limit always yields a prefix of a larger one.
func (ix *Index) scan(match func(e *entry) bool, limit int) domain.SearchResponse {
	positions := make([]int, 0, min(limit, 64))
	for i := range ix.entries {
		e := &ix.entries[i]
		if !match(e) {
			continue
		}
		positions = append(positions, e.position)
		if len(positions) == limit {
			return domain.SearchResponse{Positions: positions, Truncated: true}
		}
	}
	return domain.SearchResponse{Positions: positions}
}
