package engine

import (
	"slices"

	"github.com/custodia-labs/sercha-tmx/internal/core/domain"
)

// Request is a message to the engine.
type Request interface {
	isRequest()
}

// Reply is a message from the engine. Seq echoes the request's sequence.
type Reply interface {
	isReply()
	Sequence() uint64
}

// LoadData replaces the engine's index with one built from Units.
type LoadData struct {
	Seq   uint64
	Units []domain.TranslationUnit
}

// NewLoadData returns a LoadData carrying a deep copy of units, so the
// caller keeps sole ownership of its slice.
func NewLoadData(seq uint64, units []domain.TranslationUnit) (LoadData, error) {
	cloned, err := cloneUnits(units)
	if err != nil {
		return LoadData{}, err
	}
	return LoadData{Seq: seq, Units: cloned}, nil
}

// Search evaluates a query against the current index.
type Search struct {
	Seq       uint64
	Mode      domain.SearchMode
	Query     string
	BatchList []string
}

// NewSearch returns a Search for q with its batch list copied.
func NewSearch(seq uint64, q domain.SearchQuery) Search {
	return Search{
		Seq:       seq,
		Mode:      q.Mode,
		Query:     q.Text,
		BatchList: slices.Clone(q.BatchIDs),
	}
}

// DataLoaded acknowledges a LoadData with the number of indexed units.
type DataLoaded struct {
	Seq   uint64
	Count int
}

// SearchResults answers a Search. Positions is nil when Unfiltered is set.
type SearchResults struct {
	Seq        uint64
	Positions  []int
	Unfiltered bool
	Truncated  bool
}

// Response converts the reply into the domain form.
func (r SearchResults) Response() domain.SearchResponse {
	return domain.SearchResponse{
		Unfiltered: r.Unfiltered,
		Positions:  r.Positions,
		Truncated:  r.Truncated,
	}
}

func (LoadData) isRequest() {}
func (Search) isRequest()   {}

func (DataLoaded) isReply()    {}
func (SearchResults) isReply() {}

// Sequence returns the echoed request sequence.
func (r DataLoaded) Sequence() uint64 { return r.Seq }

// Sequence returns the echoed request sequence.
func (r SearchResults) Sequence() uint64 { return r.Seq }
