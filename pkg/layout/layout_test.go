package layout_test

import (
	"strings"
	"testing"
	"testing/fstest"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-formtags/pkg/element"
	"github.com/goliatone/go-formtags/pkg/layout"
)

const feesYAML = `
tabs:
  - id: fees
    title: Fees
    fields:
      - kind: tag_open
        tag: table
        class: [form-table, fees]
        attributes:
          data-tab: fees
          aria-label: Fees
      - kind: tag_complete
        tag: caption
        innerhtml: "Fees & charges"
      - kind: hidden_input
        id: active_tab
        default: fees
      - kind: close
        tag: table
`

const generalJSON = `{
  "tabs": [
    {
      "id": "general",
      "fields": [
        {"kind": "standalone", "tag": "hr", "attributes": {"z-last": "1", "a-first": "2"}},
        {"kind": "text", "innerhtml": "<intro>"}
      ]
    }
  ]
}`

func TestParseYAMLRendersInOrder(t *testing.T) {
	doc, err := layout.Parse([]byte(feesYAML), "fees.yaml")
	if err != nil {
		t.Fatalf("parse: %v", err)
	}

	tab, ok := doc.Tab("fees")
	if !ok {
		t.Fatalf("expected fees tab")
	}

	var out strings.Builder
	r := element.New()
	for _, field := range tab.Fields {
		if err := r.Dispatch(&out, field); err != nil {
			t.Fatalf("dispatch: %v", err)
		}
	}

	want := `<table class="form-table fees" data-tab="fees" aria-label="Fees">` +
		`<caption>Fees &amp; charges</caption>` +
		`<input type="hidden" name="active_tab" value="fees">` +
		`</table>`
	if diff := cmp.Diff(want, out.String()); diff != "" {
		t.Fatalf("markup mismatch (-want +got):\n%s", diff)
	}
}

func TestParseJSONKeepsAttributeOrder(t *testing.T) {
	doc, err := layout.Parse([]byte(generalJSON), "general.json")
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	tab, ok := doc.Tab("general")
	if !ok {
		t.Fatalf("expected general tab")
	}
	if tab.Source != "general.json" {
		t.Fatalf("expected source to be recorded, got %q", tab.Source)
	}

	r := element.New()
	got := r.String(tab.Fields[0]) + r.String(tab.Fields[1])
	if want := `<hr z-last="1" a-first="2" />&lt;intro&gt;`; got != want {
		t.Fatalf("expected %q, got %q", want, got)
	}
}

func TestParseRejectsInvalidDocuments(t *testing.T) {
	cases := map[string]string{
		"empty":        "   ",
		"missing id":   "tabs:\n  - title: x\n",
		"duplicate id": "tabs:\n  - id: a\n  - id: ' a '\n",
		"garbage":      "tabs: [\n",
	}
	for name, src := range cases {
		t.Run(name, func(t *testing.T) {
			if _, err := layout.Parse([]byte(src), name); err == nil {
				t.Fatalf("expected error")
			}
		})
	}
}

func TestLoadFSMergesFiles(t *testing.T) {
	fsys := fstest.MapFS{
		"layouts/b-fees.yaml":    {Data: []byte(feesYAML)},
		"layouts/a-general.json": {Data: []byte(generalJSON)},
		"layouts/readme.txt":     {Data: []byte("ignored")},
	}

	doc, err := layout.LoadFS(fsys)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if diff := cmp.Diff([]string{"general", "fees"}, doc.TabIDs()); diff != "" {
		t.Fatalf("tab ids mismatch (-want +got):\n%s", diff)
	}
}

func TestLoadFSRejectsDuplicateTabs(t *testing.T) {
	fsys := fstest.MapFS{
		"one.yaml": {Data: []byte(feesYAML)},
		"two.yaml": {Data: []byte(feesYAML)},
	}
	if _, err := layout.LoadFS(fsys); err == nil || !strings.Contains(err.Error(), `duplicate tab "fees"`) {
		t.Fatalf("expected duplicate tab error, got %v", err)
	}
}

func TestLoadFSNil(t *testing.T) {
	doc, err := layout.LoadFS(nil)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if len(doc.Tabs) != 0 {
		t.Fatalf("expected empty document")
	}
}
