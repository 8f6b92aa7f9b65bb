package domain

// RawNode is one element of the decoded translation-memory tree.
//
// Attribute values are stored under keys carrying AttrPrefix, element text
// under TextKey when the element also has attributes or children. Children
// are stored under their element name, either as a nested RawNode, a bare
// string, or a []any for repeatable elements.
type RawNode map[string]any

const (
	// AttrPrefix marks attribute keys, e.g. "@_tuid".
	AttrPrefix = "@_"

	// TextKey holds character data of an element with attributes or children.
	TextKey = "#text"
)

// Attr returns the string value of the named attribute, or "" if absent.
func (n RawNode) Attr(name string) string {
	if n == nil {
		return ""
	}
	s, _ := n[AttrPrefix+name].(string)
	return s
}

// Child returns the raw value stored for the named child element.
func (n RawNode) Child(name string) (any, bool) {
	if n == nil {
		return nil, false
	}
	v, ok := n[name]
	return v, ok
}
