package element

import (
	"strings"

	"github.com/goliatone/go-formtags/pkg/attrs"
)

// Description declares one element to render. The zero value is valid and
// renders nothing for every tag shape except Hidden.
type Description struct {
	Kind       Kind        `json:"kind" yaml:"kind"`
	Tag        string      `json:"tag,omitempty" yaml:"tag,omitempty"`
	ID         string      `json:"id,omitempty" yaml:"id,omitempty"`
	Class      attrs.Value `json:"class,omitempty" yaml:"class,omitempty"`
	Href       string      `json:"href,omitempty" yaml:"href,omitempty"`
	Default    string      `json:"default,omitempty" yaml:"default,omitempty"`
	InnerHTML  string      `json:"innerhtml,omitempty" yaml:"innerhtml,omitempty"`
	Attributes attrs.Value `json:"attributes,omitempty" yaml:"attributes,omitempty"`
}

// Normalize completes desc against the defaults: the tag name is trimmed and
// an attribute bag that is not a mapping is replaced by an empty one.
func Normalize(desc Description) Description {
	out := desc
	out.Tag = strings.TrimSpace(desc.Tag)
	if !desc.Attributes.IsMap() {
		out.Attributes = attrs.Map()
	}
	return out
}

// DescriptionFromMap builds a Description from a loose record such as a
// decoded host payload. Missing keys take their zero value and values of the
// wrong type are coerced to text; the kind may be given as "kind" or "type".
func DescriptionFromMap(record map[string]any) Description {
	if len(record) == 0 {
		return Normalize(Description{})
	}

	kindKey := "kind"
	if _, ok := record[kindKey]; !ok {
		kindKey = "type"
	}

	desc := Description{
		Kind:      ParseKind(textFromMap(record, kindKey)),
		Tag:       textFromMap(record, "tag"),
		ID:        textFromMap(record, "id"),
		Class:     attrs.From(record["class"]),
		Href:      textFromMap(record, "href"),
		Default:   textFromMap(record, "default"),
		InnerHTML: textFromMap(record, "innerhtml"),
	}
	if raw, ok := record["attributes"]; ok {
		desc.Attributes = attrs.From(raw)
	}
	return Normalize(desc)
}

func textFromMap(record map[string]any, key string) string {
	raw, ok := record[key]
	if !ok {
		return ""
	}
	return attrs.From(raw).Text()
}
