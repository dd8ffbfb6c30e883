// Package attrs turns attribute names and values into the ` name="value"`
// fragments appended to an HTML start tag.
package attrs

import (
	"html"
	"strings"
)

// Serializer composes attribute fragments. The zero value escapes attribute
// values; Raw disables escaping for callers that already hand in safe markup.
type Serializer struct {
	Raw bool
	// Allow, when set, drops any attribute whose trimmed name it rejects.
	Allow func(name string) bool
}

var defaultSerializer Serializer

// Serialize renders name/value with the default escaping serializer.
func Serialize(name string, value Value, asMap bool) string {
	return defaultSerializer.Serialize(name, value, asMap)
}

// Serialize returns ` name="value"`, or "" when the name or the value is empty.
//
// With asMap set and a mapping value, each entry is serialized as its own
// attribute (the outer name is only checked for emptiness) and the fragments
// are concatenated in entry order. Entries are not expanded further: a nested
// mapping collapses to the joined text of its values. Any other shape is
// coerced to a single string first; lists join with one space.
func (s Serializer) Serialize(name string, value Value, asMap bool) string {
	key := strings.TrimSpace(name)
	if key == "" {
		return ""
	}

	if asMap && value.IsMap() {
		var builder strings.Builder
		for _, entry := range value.entries {
			builder.WriteString(s.Serialize(entry.Name, entry.Value, false))
		}
		return builder.String()
	}

	var text string
	if value.IsScalar() {
		text = strings.TrimSpace(value.scalar)
	} else {
		text = value.Text()
	}
	if text == "" {
		return ""
	}
	if s.Allow != nil && !s.Allow(key) {
		return ""
	}
	if !s.Raw {
		text = html.EscapeString(text)
	}
	return " " + key + `="` + text + `"`
}

// Join serializes each attribute as a scalar and concatenates the fragments.
func (s Serializer) Join(list ...Attr) string {
	var builder strings.Builder
	for _, attr := range list {
		builder.WriteString(s.Serialize(attr.Name, attr.Value, false))
	}
	return builder.String()
}
