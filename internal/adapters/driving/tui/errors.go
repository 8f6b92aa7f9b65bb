package tui

import "errors"

// Construction errors reported by NewApp.
var (
	ErrMissingSearchService   = errors.New("tui: no search service to query units")
	ErrMissingDocumentService = errors.New("tui: no document service to reload the file")
)
