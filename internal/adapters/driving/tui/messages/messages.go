// Package messages defines Bubbletea message types for the TUI.
// Messages represent events and commands that flow through the Elm architecture.
package messages

import (
	"github.com/custodia-labs/sercha-tmx/internal/core/domain"
)

// SearchTick fires when the query input has been idle for the debounce
// interval. Seq identifies the edit that armed it; a tick whose Seq is no
// longer current is ignored.
type SearchTick struct {
	Seq uint64
}

// SearchCompleted carries one page of results back to the model.
// Seq echoes the search that produced it; only the latest is rendered.
type SearchCompleted struct {
	Seq  uint64
	Page *domain.SearchPage
	Err  error
}

// ModeChanged is sent when the search mode is cycled.
type ModeChanged struct {
	Mode domain.SearchMode
}

// DocumentChanged is sent by the file watcher when the open file changed.
type DocumentChanged struct {
	Path string
}

// DocumentLoaded reports the outcome of a (re)load.
type DocumentLoaded struct {
	Summary *domain.DocumentSummary
	Err     error
}

// ErrorOccurred signals that an error happened.
type ErrorOccurred struct {
	Err error
}

// Quit signals the application should exit.
type Quit struct{}
