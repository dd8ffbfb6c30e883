// Package layout loads form layouts: ordered element descriptions grouped
// into tabs, stored as JSON or YAML documents.
package layout

import (
	"encoding/json"
	"fmt"
	"io/fs"
	"path/filepath"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/goliatone/go-formtags/pkg/element"
)

// Tab is one named group of elements.
type Tab struct {
	ID     string                `json:"id" yaml:"id"`
	Title  string                `json:"title,omitempty" yaml:"title,omitempty"`
	Fields []element.Description `json:"fields" yaml:"fields"`
	Source string                `json:"-" yaml:"-"`
}

// Document is a set of tabs in declaration order.
type Document struct {
	Tabs []Tab `json:"tabs" yaml:"tabs"`
}

// Tab returns the tab with the given id.
func (d Document) Tab(id string) (Tab, bool) {
	id = strings.TrimSpace(id)
	for _, tab := range d.Tabs {
		if tab.ID == id {
			return tab, true
		}
	}
	return Tab{}, false
}

// TabIDs lists tab ids in declaration order.
func (d Document) TabIDs() []string {
	if len(d.Tabs) == 0 {
		return nil
	}
	ids := make([]string, 0, len(d.Tabs))
	for _, tab := range d.Tabs {
		ids = append(ids, tab.ID)
	}
	return ids
}

// Parse decodes a layout document, trying JSON before YAML. Tab ids are
// trimmed and must be non-empty and unique.
func Parse(data []byte, source string) (Document, error) {
	if len(strings.TrimSpace(string(data))) == 0 {
		return Document{}, fmt.Errorf("layout: file %s is empty", source)
	}

	var doc Document
	if err := json.Unmarshal(data, &doc); err != nil {
		doc = Document{}
		if yamlErr := yaml.Unmarshal(data, &doc); yamlErr != nil {
			return Document{}, fmt.Errorf("layout: parse %s: invalid JSON or YAML: %w", source, yamlErr)
		}
	}

	seen := make(map[string]struct{}, len(doc.Tabs))
	for idx := range doc.Tabs {
		tab := &doc.Tabs[idx]
		tab.ID = strings.TrimSpace(tab.ID)
		tab.Source = source
		if tab.ID == "" {
			return Document{}, fmt.Errorf("layout: file %s defines a tab without id at index %d", source, idx)
		}
		if _, exists := seen[tab.ID]; exists {
			return Document{}, fmt.Errorf("layout: file %s defines duplicate tab %q", source, tab.ID)
		}
		seen[tab.ID] = struct{}{}
		for fieldIdx := range tab.Fields {
			tab.Fields[fieldIdx] = element.Normalize(tab.Fields[fieldIdx])
		}
	}
	return doc, nil
}

// LoadFS walks fsys and merges every .json, .yaml and .yml layout file into
// one document. Files are visited in lexical order; a tab id defined by two
// files is an error. A nil fsys yields an empty document.
func LoadFS(fsys fs.FS) (Document, error) {
	var merged Document
	if fsys == nil {
		return merged, nil
	}

	var paths []string
	err := fs.WalkDir(fsys, ".", func(path string, entry fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			return walkErr
		}
		if entry.IsDir() || !isLayoutFile(path) {
			return nil
		}
		paths = append(paths, path)
		return nil
	})
	if err != nil {
		return Document{}, fmt.Errorf("layout: walk: %w", err)
	}
	sort.Strings(paths)

	owners := make(map[string]string)
	for _, path := range paths {
		data, err := fs.ReadFile(fsys, path)
		if err != nil {
			return Document{}, fmt.Errorf("layout: read %s: %w", path, err)
		}
		doc, err := Parse(data, path)
		if err != nil {
			return Document{}, err
		}
		for _, tab := range doc.Tabs {
			if owner, exists := owners[tab.ID]; exists {
				return Document{}, fmt.Errorf("layout: duplicate tab %q (files %s and %s)", tab.ID, owner, path)
			}
			owners[tab.ID] = path
			merged.Tabs = append(merged.Tabs, tab)
		}
	}
	return merged, nil
}

func isLayoutFile(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json", ".yaml", ".yml":
		return true
	default:
		return false
	}
}
