package element

import (
	"strings"

	"gopkg.in/yaml.v3"
)

// Kind selects the emission shape for a Description.
type Kind uint8

const (
	// KindNone renders nothing.
	KindNone Kind = iota
	// KindOpen renders a start tag.
	KindOpen
	// KindClose renders an end tag.
	KindClose
	// KindStandalone renders a self-closing tag.
	KindStandalone
	// KindText renders escaped InnerHTML without a tag.
	KindText
	// KindComplete renders start tag, escaped InnerHTML and end tag.
	KindComplete
	// KindHidden renders a hidden input.
	KindHidden
)

var kindNames = map[Kind]string{
	KindOpen:       "open",
	KindClose:      "close",
	KindStandalone: "standalone",
	KindText:       "text",
	KindComplete:   "complete",
	KindHidden:     "hidden",
}

func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return ""
}

// ParseKind maps a kind name to a Kind. Besides the canonical names it accepts
// the tag_* and hidden_input aliases older layouts use. Unknown names return
// KindNone.
func ParseKind(raw string) Kind {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "open", "tag_open":
		return KindOpen
	case "close", "tag_close":
		return KindClose
	case "standalone", "tag_standalone":
		return KindStandalone
	case "text":
		return KindText
	case "complete", "tag_complete":
		return KindComplete
	case "hidden", "hidden_input":
		return KindHidden
	default:
		return KindNone
	}
}

// MarshalText implements encoding.TextMarshaler.
func (k Kind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler. Unknown kinds decode to
// KindNone rather than failing, so a stray entry renders nothing.
func (k *Kind) UnmarshalText(text []byte) error {
	*k = ParseKind(string(text))
	return nil
}

// UnmarshalYAML decodes a kind name from a scalar node.
func (k *Kind) UnmarshalYAML(node *yaml.Node) error {
	*k = ParseKind(node.Value)
	return nil
}
