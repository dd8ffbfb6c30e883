package fielderrors

import (
	"sort"
	"strconv"
	"strings"
)

// FormKey is the identifier form-level messages are stored under.
const FormKey = "__form__"

// FromPayload builds a registry from a server validation payload keyed by
// field path. JSON pointer and dotted paths are both accepted and request
// wrappers are dropped, so "/body/email", "$.payload.email" and "email" all
// land on "email". Keys that do not name a field are collected under FormKey.
// Messages that map to the same identifier are merged in key order.
func FromPayload(payload map[string][]string) *Registry {
	registry := New()
	if len(payload) == 0 {
		return registry
	}

	keys := make([]string, 0, len(payload))
	for key := range payload {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	grouped := make(map[string][]string, len(keys))
	order := make([]string, 0, len(keys))
	for _, raw := range keys {
		id := FieldID(raw)
		if _, seen := grouped[id]; !seen {
			order = append(order, id)
		}
		grouped[id] = append(grouped[id], payload[raw]...)
	}

	for _, id := range order {
		registry.AddMessages(id, grouped[id], StatusError)
	}
	return registry
}

// FieldID normalises a payload path into the dotted identifier used as a
// registry key. Form-level and empty paths return FormKey.
func FieldID(raw string) string {
	trimmed := strings.TrimSpace(raw)
	if isFormLevelKey(trimmed) {
		return FormKey
	}
	segments := pathSegments(trimmed)
	if len(segments) == 0 {
		return FormKey
	}
	return strings.Join(segments, ".")
}

var (
	indexBrackets  = strings.NewReplacer("[", ".", "]", "")
	pointerEscapes = strings.NewReplacer("~1", "/", "~0", "~")
)

// wrapperSegments are request envelope names dropped from the front of a path.
var wrapperSegments = map[string]struct{}{
	"body":       {},
	"request":    {},
	"payload":    {},
	"data":       {},
	"attributes": {},
}

// pathSegments splits a JSON pointer, JSONPath or dotted path into field
// names. Array indexes are dropped, as are leading envelope segments.
func pathSegments(path string) []string {
	body := strings.TrimLeft(indexBrackets.Replace(path), "#$/.")
	parts := strings.FieldsFunc(body, func(r rune) bool {
		return r == '.' || r == '/'
	})

	var segments []string
	for _, part := range parts {
		part = pointerEscapes.Replace(strings.TrimSpace(part))
		if part == "" {
			continue
		}
		if _, err := strconv.Atoi(part); err == nil {
			continue
		}
		if len(segments) == 0 {
			if _, wrapper := wrapperSegments[strings.ToLower(part)]; wrapper {
				continue
			}
		}
		segments = append(segments, part)
	}
	return segments
}

func isFormLevelKey(key string) bool {
	switch strings.ToLower(strings.TrimSpace(key)) {
	case "", ".", "/", "#", "$", "form", "base", "__all__", "__form__", "non_field_errors", "non-field-errors":
		return true
	default:
		return false
	}
}
