package attrs

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
)

type valueKind uint8

const (
	kindScalar valueKind = iota
	kindList
	kindMap
)

// Value is an attribute value: a scalar string, an ordered list of strings that
// serializes space-joined, or an ordered name/value mapping that serializes as
// one attribute per entry. The zero Value is the empty scalar.
type Value struct {
	kind    valueKind
	scalar  string
	list    []string
	entries []Attr
}

// Attr is a single name/value pair inside a mapping Value.
type Attr struct {
	Name  string
	Value Value
}

// String returns a scalar Value.
func String(s string) Value {
	return Value{kind: kindScalar, scalar: s}
}

// List returns a list Value. Items are joined with a single space on output.
func List(items ...string) Value {
	return Value{kind: kindList, list: append([]string(nil), items...)}
}

// Map returns a mapping Value that keeps entries in the order given.
func Map(entries ...Attr) Value {
	return Value{kind: kindMap, entries: append([]Attr(nil), entries...)}
}

// IsScalar reports whether v holds a scalar.
func (v Value) IsScalar() bool { return v.kind == kindScalar }

// IsList reports whether v holds a list.
func (v Value) IsList() bool { return v.kind == kindList }

// IsMap reports whether v holds a mapping.
func (v Value) IsMap() bool { return v.kind == kindMap }

// Entries returns a copy of the mapping entries, or nil for non-map values.
func (v Value) Entries() []Attr {
	if v.kind != kindMap || len(v.entries) == 0 {
		return nil
	}
	return append([]Attr(nil), v.entries...)
}

// Items returns a copy of the list items, or nil for non-list values.
func (v Value) Items() []string {
	if v.kind != kindList || len(v.list) == 0 {
		return nil
	}
	return append([]string(nil), v.list...)
}

// Len is the number of list items or map entries; 1 for a non-empty scalar.
func (v Value) Len() int {
	switch v.kind {
	case kindList:
		return len(v.list)
	case kindMap:
		return len(v.entries)
	default:
		if v.scalar == "" {
			return 0
		}
		return 1
	}
}

// Text coerces the value to the string it would carry as a single attribute:
// scalars as-is, lists space-joined, maps as the space-joined text of their
// entry values.
func (v Value) Text() string {
	switch v.kind {
	case kindList:
		return strings.Join(v.list, " ")
	case kindMap:
		parts := make([]string, 0, len(v.entries))
		for _, entry := range v.entries {
			parts = append(parts, entry.Value.Text())
		}
		return strings.Join(parts, " ")
	default:
		return v.scalar
	}
}

// Set returns a copy of a mapping Value with name set to value. An existing
// entry keeps its position; a new one is appended. Non-map values are replaced
// by a single-entry mapping.
func (v Value) Set(name string, value Value) Value {
	if v.kind != kindMap {
		return Map(Attr{Name: name, Value: value})
	}
	out := Map(v.entries...)
	for idx := range out.entries {
		if out.entries[idx].Name == name {
			out.entries[idx].Value = value
			return out
		}
	}
	out.entries = append(out.entries, Attr{Name: name, Value: value})
	return out
}

// Get looks up a mapping entry by name.
func (v Value) Get(name string) (Value, bool) {
	for _, entry := range v.entries {
		if entry.Name == name {
			return entry.Value, true
		}
	}
	return Value{}, false
}

// From coerces a loose Go value into a Value. Unsupported types fall back to
// fmt formatting. Plain Go maps have no order, so their keys are sorted.
// A panic raised while formatting (for example by a broken fmt.Stringer) is
// recovered and yields the empty Value.
func From(raw any) (out Value) {
	defer func() {
		if recover() != nil {
			out = Value{}
		}
	}()
	return from(raw)
}

func from(raw any) Value {
	switch v := raw.(type) {
	case nil:
		return Value{}
	case Value:
		return v
	case *Value:
		if v == nil {
			return Value{}
		}
		return *v
	case string:
		return String(v)
	case []string:
		return List(v...)
	case []any:
		items := make([]string, 0, len(v))
		for _, item := range v {
			items = append(items, from(item).Text())
		}
		return List(items...)
	case []Attr:
		return Map(v...)
	case map[string]string:
		keys := sortedKeys(v)
		entries := make([]Attr, 0, len(keys))
		for _, key := range keys {
			entries = append(entries, Attr{Name: key, Value: String(v[key])})
		}
		return Map(entries...)
	case map[string]any:
		keys := sortedKeys(v)
		entries := make([]Attr, 0, len(keys))
		for _, key := range keys {
			entries = append(entries, Attr{Name: key, Value: from(v[key])})
		}
		return Map(entries...)
	case bool:
		return String(strconv.FormatBool(v))
	case int:
		return String(strconv.Itoa(v))
	case int64:
		return String(strconv.FormatInt(v, 10))
	case uint64:
		return String(strconv.FormatUint(v, 10))
	case float64:
		return String(strconv.FormatFloat(v, 'f', -1, 64))
	case fmt.Stringer:
		return String(v.String())
	default:
		return String(fmt.Sprint(v))
	}
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for key := range m {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}
