package domain

import "time"

// DefaultSourceLanguage is used when a document header declares no srclang
// and no fallback is configured.
const DefaultSourceLanguage = "en-US"

// DocumentSummary holds header-level facts about a loaded document.
// It is derived once per load and read-only afterwards.
type DocumentSummary struct {
	// CreationTool is the name of the tool that produced the document.
	CreationTool string `json:"creation_tool,omitempty"`

	// CreationToolVersion is the producing tool's version.
	CreationToolVersion string `json:"creation_tool_version,omitempty"`

	// Version is the schema version declared on the root element.
	Version string `json:"version,omitempty"`

	// SourceLanguage is the default source language for every unit.
	SourceLanguage string `json:"source_language"`

	// AdminLanguage is the language of administrative text such as notes.
	AdminLanguage string `json:"admin_language,omitempty"`

	// SegmentType is the segmentation level (block, paragraph, sentence, phrase).
	SegmentType string `json:"segment_type,omitempty"`

	// DataType describes the original data (plaintext, html, ...).
	DataType string `json:"data_type,omitempty"`

	// OriginalFormat is the format of the memory the document was exported from.
	OriginalFormat string `json:"original_format,omitempty"`

	// CreationDate is the header creation date in document encoding.
	CreationDate string `json:"creation_date,omitempty"`

	// UnitCount counts successfully normalised units only.
	UnitCount int `json:"unit_count"`

	// SkippedCount counts malformed units dropped during normalisation.
	SkippedCount int `json:"skipped_count"`
}

// Document is the translation memory loaded for the current session.
// A new load replaces it entirely.
type Document struct {
	// ID identifies this load. Reloading the same file yields a new ID.
	ID string

	// Path is the file the document was read from, if any.
	Path string

	// Fingerprint is a hash of the raw bytes, used to skip no-op reloads.
	Fingerprint uint64

	// Summary holds header facts and counts.
	Summary DocumentSummary

	// Units is the ordered unit sequence. Positions index into it.
	Units []TranslationUnit

	// LoadedAt is when the load completed.
	LoadedAt time.Time
}
