package domain

import (
	"strconv"
	"strings"
)

// UnknownLanguage is assigned to variants that carry no language tag.
const UnknownLanguage = "unknown"

// GeneratedIDPrefix prefixes identifiers synthesised for units without a tuid.
const GeneratedIDPrefix = "generated-"

// GeneratedID returns the fallback identifier for the unit at position.
func GeneratedID(position int) string {
	return GeneratedIDPrefix + strconv.Itoa(position)
}

// TranslationUnit is the canonical form of one translation unit.
// It is created once per document load and never mutated afterwards.
type TranslationUnit struct {
	// ID is unique within a loaded document.
	ID string `json:"id" cbor:"1,keyasint"`

	// SourceLanguage is the document-level source language.
	SourceLanguage string `json:"source_language" cbor:"2,keyasint"`

	// Variants holds one entry per language, in document order. Never empty.
	Variants []Variant `json:"variants" cbor:"3,keyasint"`

	// Properties maps prop type to value.
	Properties map[string]string `json:"properties,omitempty" cbor:"4,keyasint,omitempty"`

	// Metadata holds the raw usage and authoring attributes.
	Metadata UnitMetadata `json:"metadata" cbor:"5,keyasint"`

	// Notes holds free-text annotations attached to the unit.
	Notes []string `json:"notes,omitempty" cbor:"6,keyasint,omitempty"`
}

// Variant is one language's rendering of a translation unit.
type Variant struct {
	Language string `json:"language" cbor:"1,keyasint"`
	Text     string `json:"text" cbor:"2,keyasint"`
}

// UnitMetadata carries attribute values in their native document encoding.
// An empty field means the attribute was absent.
type UnitMetadata struct {
	CreationDate  string `json:"creation_date,omitempty" cbor:"1,keyasint,omitempty"`
	ChangeDate    string `json:"change_date,omitempty" cbor:"2,keyasint,omitempty"`
	UsageCount    string `json:"usage_count,omitempty" cbor:"3,keyasint,omitempty"`
	CreatedBy     string `json:"created_by,omitempty" cbor:"4,keyasint,omitempty"`
	ChangedBy     string `json:"changed_by,omitempty" cbor:"5,keyasint,omitempty"`
	LastUsageDate string `json:"last_usage_date,omitempty" cbor:"6,keyasint,omitempty"`
}

// SourceIndex returns the index of the first variant in the unit's source
// language, or -1. Language tags compare case-insensitively.
func (u *TranslationUnit) SourceIndex() int {
	for i, v := range u.Variants {
		if strings.EqualFold(v.Language, u.SourceLanguage) {
			return i
		}
	}
	return -1
}

// SourceVariant returns the variant in the unit's source language.
func (u *TranslationUnit) SourceVariant() (Variant, bool) {
	i := u.SourceIndex()
	if i < 0 {
		return Variant{}, false
	}
	return u.Variants[i], true
}

// TargetVariants returns every variant other than the source variant.
func (u *TranslationUnit) TargetVariants() []Variant {
	src := u.SourceIndex()
	out := make([]Variant, 0, len(u.Variants))
	for i, v := range u.Variants {
		if i != src {
			out = append(out, v)
		}
	}
	return out
}
