package search

import "errors"

// ErrNoSearchService is reported when a search is requested from a view
// built without a search service.
var ErrNoSearchService = errors.New("search view has no search service")
