package fielderrors_test

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-formtags/pkg/fielderrors"
)

func TestRegistryAddGetCount(t *testing.T) {
	registry := fielderrors.New()

	registry.Add("email", "Required")
	entry, ok := registry.Get("email")
	if !ok {
		t.Fatalf("expected entry for email")
	}
	if diff := cmp.Diff(fielderrors.Entry{Message: "Required", Status: fielderrors.StatusError}, entry); diff != "" {
		t.Fatalf("entry mismatch (-want +got):\n%s", diff)
	}
	if got := registry.Count(); got != 1 {
		t.Fatalf("expected 1 entry, got %d", got)
	}

	registry.AddStatus("email", "Looks unusual", fielderrors.StatusInfo)
	entry, _ = registry.Get("email")
	if diff := cmp.Diff(fielderrors.Entry{Message: "Looks unusual", Status: fielderrors.StatusInfo}, entry); diff != "" {
		t.Fatalf("overwritten entry mismatch (-want +got):\n%s", diff)
	}
	if got := registry.Count(); got != 1 {
		t.Fatalf("expected overwrite to keep count at 1, got %d", got)
	}
}

func TestRegistryMissingEntry(t *testing.T) {
	registry := fielderrors.New()
	if _, ok := registry.Get("missing"); ok {
		t.Fatalf("expected no entry for unknown id")
	}

	var nilRegistry *fielderrors.Registry
	if _, ok := nilRegistry.Get("missing"); ok {
		t.Fatalf("expected nil registry lookups to miss")
	}
	if nilRegistry.Count() != 0 {
		t.Fatalf("expected nil registry to be empty")
	}
}

func TestRegistryCoercesUnknownStatus(t *testing.T) {
	registry := fielderrors.New()
	registry.AddStatus("zip", "Bad zip", fielderrors.Status("warning"))

	entry, ok := registry.Get("zip")
	if !ok {
		t.Fatalf("expected entry for zip")
	}
	if entry.Status != fielderrors.StatusError {
		t.Fatalf("expected unknown status to become error, got %q", entry.Status)
	}
}

func TestRegistryZeroValueIsUsable(t *testing.T) {
	var registry fielderrors.Registry
	registry.Add("name", "Required")
	if registry.Count() != 1 {
		t.Fatalf("expected zero-value registry to accept writes")
	}
}

func TestRegistryAddMessages(t *testing.T) {
	registry := fielderrors.New()
	registry.AddMessages("title", []string{" Too short ", "", "Too short", "Must start with a letter"}, fielderrors.StatusError)
	registry.AddMessages("blank", []string{" ", ""}, fielderrors.StatusInfo)

	entry, ok := registry.Get("title")
	if !ok {
		t.Fatalf("expected title entry")
	}
	if want := "Too short Must start with a letter"; entry.Message != want {
		t.Fatalf("expected %q, got %q", want, entry.Message)
	}
	if _, ok := registry.Get("blank"); ok {
		t.Fatalf("expected blank messages to be skipped")
	}
}

func TestRegistryQueries(t *testing.T) {
	registry := fielderrors.New()
	registry.AddStatus("b", "note", fielderrors.StatusInfo)
	registry.AddStatus("a", "note", fielderrors.StatusInfo)

	if registry.HasErrors() {
		t.Fatalf("expected info-only registry to report no errors")
	}
	if diff := cmp.Diff([]string{"a", "b"}, registry.IDs()); diff != "" {
		t.Fatalf("ids mismatch (-want +got):\n%s", diff)
	}

	registry.Add("c", "broken")
	if !registry.HasErrors() {
		t.Fatalf("expected HasErrors after adding an error")
	}

	snapshot := registry.Entries()
	registry.Reset()
	if registry.Count() != 0 {
		t.Fatalf("expected reset to clear entries")
	}
	if len(snapshot) != 3 {
		t.Fatalf("expected snapshot to survive reset, got %d entries", len(snapshot))
	}
}

func TestParseStatus(t *testing.T) {
	cases := map[string]fielderrors.Status{
		"error":   fielderrors.StatusError,
		" INFO ":  fielderrors.StatusInfo,
		"warning": fielderrors.StatusError,
		"":        fielderrors.StatusError,
	}
	for raw, want := range cases {
		if got := fielderrors.ParseStatus(raw); got != want {
			t.Errorf("ParseStatus(%q) = %q, want %q", raw, got, want)
		}
	}
}
