// Package tmx normalises decoded TMX trees into translation units.
package tmx

import (
	"fmt"
	"sort"
	"strings"

	"github.com/custodia-labs/sercha-tmx/internal/core/domain"
	"github.com/custodia-labs/sercha-tmx/internal/core/ports/driven"
)

// Ensure Normaliser implements the interface.
var _ driven.UnitNormaliser = (*Normaliser)(nil)

// Inline elements whose content is native markup rather than segment text.
var nativeCodeElements = map[string]struct{}{
	"bpt": {},
	"ept": {},
	"it":  {},
	"ph":  {},
	"ut":  {},
}

// Normaliser handles TMX 1.1 through 1.4b documents.
type Normaliser struct{}

// New creates a new TMX normaliser.
func New() *Normaliser {
	return &Normaliser{}
}

// Summary extracts header facts from the root <tmx> node.
func (n *Normaliser) Summary(root domain.RawNode, fallbackLang string) domain.DocumentSummary {
	var header domain.RawNode
	if headers := asNodes(root["header"]); len(headers) > 0 {
		header = headers[0]
	}

	srcLang := strings.TrimSpace(header.Attr("srclang"))
	if srcLang == "" {
		srcLang = fallbackLang
	}
	if srcLang == "" {
		srcLang = domain.DefaultSourceLanguage
	}

	return domain.DocumentSummary{
		CreationTool:        header.Attr("creationtool"),
		CreationToolVersion: header.Attr("creationtoolversion"),
		Version:             root.Attr("version"),
		SourceLanguage:      srcLang,
		AdminLanguage:       header.Attr("adminlang"),
		SegmentType:         header.Attr("segtype"),
		DataType:            header.Attr("datatype"),
		OriginalFormat:      header.Attr("o-tmf"),
		CreationDate:        header.Attr("creationdate"),
	}
}

// Units returns the raw <tu> nodes of the body in document order.
// Every instance is returned, including empty ones, so positions match the
// document.
func (n *Normaliser) Units(root domain.RawNode) []domain.RawNode {
	bodies := asNodes(root["body"])
	if len(bodies) == 0 {
		return nil
	}
	return asNodes(bodies[0]["tu"])
}

// Normalise converts one raw <tu> node into a TranslationUnit.
func (n *Normaliser) Normalise(
	raw domain.RawNode, position int, sourceLang string,
) (*domain.TranslationUnit, error) {
	tuvs := asNodes(raw["tuv"])
	if len(tuvs) == 0 {
		return nil, fmt.Errorf("%w: unit at position %d has no variants", domain.ErrMalformedUnit, position)
	}

	variants := make([]domain.Variant, 0, len(tuvs))
	for _, tuv := range tuvs {
		variants = append(variants, domain.Variant{
			Language: variantLanguage(tuv),
			Text:     textOf(tuv["seg"]),
		})
	}

	id := raw.Attr("tuid")
	if strings.TrimSpace(id) == "" {
		id = domain.GeneratedID(position)
	}

	return &domain.TranslationUnit{
		ID:             id,
		SourceLanguage: sourceLang,
		Variants:       variants,
		Properties:     extractProperties(raw["prop"]),
		Metadata: domain.UnitMetadata{
			CreationDate:  raw.Attr("creationdate"),
			ChangeDate:    raw.Attr("changedate"),
			UsageCount:    raw.Attr("usagecount"),
			CreatedBy:     raw.Attr("creationid"),
			ChangedBy:     raw.Attr("changeid"),
			LastUsageDate: raw.Attr("lastusagedate"),
		},
		Notes: extractNotes(raw["note"]),
	}, nil
}

// variantLanguage reads xml:lang, falling back to the TMX 1.1 lang attribute.
func variantLanguage(tuv domain.RawNode) string {
	if lang := strings.TrimSpace(tuv.Attr("xml:lang")); lang != "" {
		return lang
	}
	if lang := strings.TrimSpace(tuv.Attr("lang")); lang != "" {
		return lang
	}
	return domain.UnknownLanguage
}

// extractProperties keys <prop> text by its type attribute. Untyped props
// are skipped; for duplicate types the last one wins.
func extractProperties(v any) map[string]string {
	props := asNodes(v)
	if len(props) == 0 {
		return nil
	}
	out := make(map[string]string, len(props))
	for _, p := range props {
		typ := p.Attr("type")
		if typ == "" {
			continue
		}
		out[typ] = textOf(p)
	}
	if len(out) == 0 {
		return nil
	}
	return out
}

func extractNotes(v any) []string {
	var notes []string
	for _, note := range asNodes(v) {
		if text := textOf(note); text != "" {
			notes = append(notes, text)
		}
	}
	return notes
}

// asNodes coerces a possibly-singular, possibly-sequence child value into a
// sequence of nodes.
func asNodes(v any) []domain.RawNode {
	switch t := v.(type) {
	case nil:
		return nil
	case []any:
		out := make([]domain.RawNode, 0, len(t))
		for _, item := range t {
			out = append(out, toNode(item))
		}
		return out
	case []domain.RawNode:
		return t
	default:
		return []domain.RawNode{toNode(t)}
	}
}

// toNode wraps bare text in a node so every element has the same shape.
func toNode(v any) domain.RawNode {
	switch t := v.(type) {
	case domain.RawNode:
		return t
	case map[string]any:
		return domain.RawNode(t)
	case nil:
		return domain.RawNode{}
	case string:
		if t == "" {
			return domain.RawNode{}
		}
		return domain.RawNode{domain.TextKey: t}
	default:
		return domain.RawNode{domain.TextKey: fmt.Sprint(t)}
	}
}

// textOf coerces element content to plain text. Bare strings and text
// wrappers are used verbatim; richer content is flattened best-effort.
func textOf(v any) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return t
	case []any:
		parts := make([]string, 0, len(t))
		for _, item := range t {
			if s := textOf(item); s != "" {
				parts = append(parts, s)
			}
		}
		return strings.Join(parts, " ")
	case domain.RawNode:
		return nodeText(t)
	case map[string]any:
		return nodeText(domain.RawNode(t))
	default:
		return fmt.Sprint(t)
	}
}

// nodeText renders a node's text. Inline elements carrying native codes are
// dropped; other children contribute their text in name order.
func nodeText(node domain.RawNode) string {
	children := make([]string, 0, len(node))
	for k := range node {
		if k == domain.TextKey || strings.HasPrefix(k, domain.AttrPrefix) {
			continue
		}
		children = append(children, k)
	}

	text, _ := node[domain.TextKey].(string)
	if len(children) == 0 {
		return text
	}

	sort.Strings(children)
	parts := make([]string, 0, len(children)+1)
	if text != "" {
		parts = append(parts, text)
	}
	for _, k := range children {
		if _, native := nativeCodeElements[k]; native {
			continue
		}
		if s := textOf(node[k]); s != "" {
			parts = append(parts, s)
		}
	}
	return strings.Join(parts, " ")
}
