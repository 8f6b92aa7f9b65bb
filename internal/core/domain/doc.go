// Package domain defines the core business entities for sercha-tmx.
//
// This package is part of the hexagonal architecture's innermost layer.
// It has NO external dependencies and defines the fundamental types:
//
//   - RawNode: One element of the decoded translation-memory tree
//   - TranslationUnit: A canonical translation unit and its variants
//   - DocumentSummary: Header-level facts about a loaded document
//   - Document: The loaded session document
//   - SearchQuery / SearchResponse: The index query contract
//
// # Architectural Position
//
// Domain is at the centre of the hexagon. It may only import
// the Go standard library. All other packages depend on domain,
// never the reverse.
//
// # Import Rules
//
//   - Can Import: Standard library only
//   - Cannot Import: Any internal/ package, any external dependency
package domain
