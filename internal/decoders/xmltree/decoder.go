// Package xmltree decodes XML documents into domain.RawNode trees.
//
// Attributes are stored under domain.AttrPrefix keys, text of elements that
// also carry attributes or children under domain.TextKey, and elements named
// as sequences are always stored as []any.
package xmltree

import (
	"bytes"
	"context"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"strings"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/htmlindex"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"

	"github.com/custodia-labs/sercha-tmx/internal/core/domain"
	"github.com/custodia-labs/sercha-tmx/internal/core/ports/driven"
	"github.com/custodia-labs/sercha-tmx/internal/logger"
)

// Ensure Decoder implements the interface.
var _ driven.TreeDecoder = (*Decoder)(nil)

// xmlNamespace is the namespace bound to the reserved xml: prefix.
const xmlNamespace = "http://www.w3.org/XML/1998/namespace"

// ctxCheckInterval is how many tokens are read between context checks.
const ctxCheckInterval = 4096

// Decoder converts XML bytes into a RawNode tree.
type Decoder struct {
	root      string
	sequences map[string]struct{}
}

// Option configures a Decoder.
type Option func(*Decoder)

// WithRoot sets the required root element name.
func WithRoot(name string) Option {
	return func(d *Decoder) {
		d.root = name
	}
}

// WithSequences sets the element names always materialised as sequences.
func WithSequences(names ...string) Option {
	return func(d *Decoder) {
		d.sequences = make(map[string]struct{}, len(names))
		for _, n := range names {
			d.sequences[n] = struct{}{}
		}
	}
}

// New creates a decoder for TMX documents: root "tmx", with tu, tuv, prop
// and note always decoded as sequences.
func New(opts ...Option) *Decoder {
	d := &Decoder{}
	WithRoot("tmx")(d)
	WithSequences("tu", "tuv", "prop", "note")(d)
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// frame is an element under construction.
type frame struct {
	name string
	node domain.RawNode
	text strings.Builder
}

// Decode parses data and returns the root element's node.
func (d *Decoder) Decode(ctx context.Context, data []byte) (domain.RawNode, error) {
	if len(bytes.TrimSpace(data)) == 0 {
		return nil, fmt.Errorf("%w: empty document", domain.ErrDecodeFailure)
	}

	// A BOM selects UTF-8 or UTF-16; without one the bytes pass through and
	// the XML declaration decides.
	r := transform.NewReader(bytes.NewReader(data), unicode.BOMOverride(encoding.Nop.NewDecoder()))

	dec := xml.NewDecoder(r)
	dec.CharsetReader = charsetReader

	var (
		stack  []*frame
		result domain.RawNode
		rootNm string
		tokens int
	)

	for {
		tokens++
		if tokens%ctxCheckInterval == 0 {
			if err := ctx.Err(); err != nil {
				return nil, err
			}
		}

		tok, err := dec.Token()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("%w: %w", domain.ErrDecodeFailure, err)
		}

		switch t := tok.(type) {
		case xml.StartElement:
			if len(stack) == 0 && result != nil {
				return nil, fmt.Errorf("%w: multiple root elements", domain.ErrDecodeFailure)
			}
			f := &frame{name: t.Name.Local, node: make(domain.RawNode, len(t.Attr))}
			for _, a := range t.Attr {
				f.node[domain.AttrPrefix+attrName(a.Name)] = a.Value
			}
			stack = append(stack, f)

		case xml.CharData:
			if len(stack) > 0 {
				stack[len(stack)-1].text.Write(t)
			}

		case xml.EndElement:
			f := stack[len(stack)-1]
			stack = stack[:len(stack)-1]
			value := f.value()
			if len(stack) == 0 {
				rootNm = f.name
				if node, ok := value.(domain.RawNode); ok {
					result = node
				} else {
					result = domain.RawNode{}
				}
				continue
			}
			d.attach(stack[len(stack)-1].node, f.name, value)
		}
	}

	if result == nil {
		return nil, fmt.Errorf("%w: no root element", domain.ErrDecodeFailure)
	}
	if d.root != "" && rootNm != d.root {
		return nil, fmt.Errorf("%w: root element is %q, want %q", domain.ErrDecodeFailure, rootNm, d.root)
	}

	logger.Debug("Decoded <%s> tree with %d tokens", rootNm, tokens)
	return result, nil
}

// value returns the finished element: a bare string when it has neither
// attributes nor children, otherwise its node.
func (f *frame) value() any {
	text := strings.TrimSpace(f.text.String())
	if len(f.node) == 0 {
		return text
	}
	if text != "" {
		f.node[domain.TextKey] = text
	}
	return f.node
}

// attach stores a finished child under its element name.
func (d *Decoder) attach(parent domain.RawNode, name string, value any) {
	existing, ok := parent[name]
	if _, seq := d.sequences[name]; seq {
		list, _ := existing.([]any)
		parent[name] = append(list, value)
		return
	}
	if !ok {
		parent[name] = value
		return
	}
	// A repeated element not declared as a sequence still keeps every instance.
	if list, isList := existing.([]any); isList {
		parent[name] = append(list, value)
		return
	}
	parent[name] = []any{existing, value}
}

// attrName renders an attribute name, keeping the reserved xml: prefix.
func attrName(n xml.Name) string {
	switch n.Space {
	case "":
		return n.Local
	case xmlNamespace, "xml":
		return "xml:" + n.Local
	default:
		return n.Local
	}
}

// charsetReader honours non-UTF-8 encoding declarations. UTF-16 input has
// already been converted by the BOM sniffing reader.
func charsetReader(label string, input io.Reader) (io.Reader, error) {
	l := strings.ToLower(strings.TrimSpace(label))
	if strings.HasPrefix(l, "utf-16") || l == "utf8" || l == "unicode" {
		return input, nil
	}
	enc, err := htmlindex.Get(l)
	if err != nil {
		return nil, fmt.Errorf("unsupported encoding %q: %w", label, err)
	}
	return enc.NewDecoder().Reader(input), nil
}
