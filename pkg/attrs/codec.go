package attrs

import (
	"bytes"
	"encoding/json"
	"fmt"

	"gopkg.in/yaml.v3"
)

// UnmarshalYAML decodes scalars, sequences and mappings, keeping mapping order.
func (v *Value) UnmarshalYAML(node *yaml.Node) error {
	decoded, err := valueFromNode(node)
	if err != nil {
		return err
	}
	*v = decoded
	return nil
}

func valueFromNode(node *yaml.Node) (Value, error) {
	switch node.Kind {
	case yaml.DocumentNode:
		if len(node.Content) == 0 {
			return Value{}, nil
		}
		return valueFromNode(node.Content[0])
	case yaml.AliasNode:
		if node.Alias == nil {
			return Value{}, nil
		}
		return valueFromNode(node.Alias)
	case yaml.ScalarNode:
		if node.Tag == "!!null" {
			return Value{}, nil
		}
		return String(node.Value), nil
	case yaml.SequenceNode:
		items := make([]string, 0, len(node.Content))
		for _, child := range node.Content {
			item, err := valueFromNode(child)
			if err != nil {
				return Value{}, err
			}
			items = append(items, item.Text())
		}
		return List(items...), nil
	case yaml.MappingNode:
		entries := make([]Attr, 0, len(node.Content)/2)
		for idx := 0; idx+1 < len(node.Content); idx += 2 {
			key := node.Content[idx]
			if key.Kind != yaml.ScalarNode {
				return Value{}, fmt.Errorf("attrs: line %d: attribute name must be a scalar", key.Line)
			}
			val, err := valueFromNode(node.Content[idx+1])
			if err != nil {
				return Value{}, err
			}
			entries = append(entries, Attr{Name: key.Value, Value: val})
		}
		return Map(entries...), nil
	default:
		return Value{}, fmt.Errorf("attrs: line %d: unsupported yaml node", node.Line)
	}
}

// UnmarshalJSON decodes strings, numbers, booleans, arrays and objects.
// Object members keep the order they appear in the input.
func (v *Value) UnmarshalJSON(data []byte) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	decoded, err := decodeJSONValue(dec)
	if err != nil {
		return fmt.Errorf("attrs: decode json: %w", err)
	}
	*v = decoded
	return nil
}

func decodeJSONValue(dec *json.Decoder) (Value, error) {
	tok, err := dec.Token()
	if err != nil {
		return Value{}, err
	}
	switch t := tok.(type) {
	case nil:
		return Value{}, nil
	case json.Delim:
		switch t {
		case '[':
			var items []string
			for dec.More() {
				item, err := decodeJSONValue(dec)
				if err != nil {
					return Value{}, err
				}
				items = append(items, item.Text())
			}
			if _, err := dec.Token(); err != nil {
				return Value{}, err
			}
			return List(items...), nil
		case '{':
			var entries []Attr
			for dec.More() {
				keyTok, err := dec.Token()
				if err != nil {
					return Value{}, err
				}
				key, ok := keyTok.(string)
				if !ok {
					return Value{}, fmt.Errorf("unexpected object key %v", keyTok)
				}
				val, err := decodeJSONValue(dec)
				if err != nil {
					return Value{}, err
				}
				entries = append(entries, Attr{Name: key, Value: val})
			}
			if _, err := dec.Token(); err != nil {
				return Value{}, err
			}
			return Map(entries...), nil
		default:
			return Value{}, fmt.Errorf("unexpected delimiter %q", t)
		}
	default:
		return From(t), nil
	}
}
