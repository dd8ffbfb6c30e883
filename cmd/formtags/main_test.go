package main

import (
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

const testLayout = `
tabs:
  - id: general
    fields:
      - kind: open
        tag: div
        id: general
      - kind: complete
        tag: h2
        innerhtml: General
      - kind: close
        tag: div
  - id: fees
    fields:
      - kind: standalone
        tag: input
        attributes:
          type: number
          name: fee
`

func writeLayout(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "layout.yaml")
	if err := os.WriteFile(path, []byte(testLayout), 0o644); err != nil {
		t.Fatalf("write layout: %v", err)
	}
	return path
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestRunRendersAllTabs(t *testing.T) {
	out, err := run(runConfig{layoutPath: writeLayout(t)}, discardLogger())
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	want := `<div id="general"><h2>General</h2></div><input type="number" name="fee" />`
	if diff := cmp.Diff(want, string(out)); diff != "" {
		t.Fatalf("output mismatch (-want +got):\n%s", diff)
	}
}

func TestRunSingleTabWithState(t *testing.T) {
	out, err := run(runConfig{layoutPath: writeLayout(t), tabID: "fees", secret: "s3cret"}, discardLogger())
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	got := string(out)
	if !strings.HasPrefix(got, `<input type="number" name="fee" /><input type="hidden" name="_formtags_state" value="`) {
		t.Fatalf("unexpected output %q", got)
	}
}

func TestRunErrors(t *testing.T) {
	if _, err := run(runConfig{}, discardLogger()); err == nil {
		t.Fatalf("expected missing layout error")
	}
	if _, err := run(runConfig{layoutPath: writeLayout(t), tabID: "nope"}, discardLogger()); err == nil {
		t.Fatalf("expected unknown tab error")
	}
}

func TestRunSanitizedKeepsStateField(t *testing.T) {
	cfg := runConfig{layoutPath: writeLayout(t), tabID: "general", sanitize: true, secret: "k"}
	out, err := run(cfg, discardLogger())
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	got := string(out)
	if !strings.Contains(got, `<input type="hidden" name="_formtags_state" value="`) {
		t.Fatalf("expected signed state field, got %q", got)
	}
	if !strings.HasPrefix(got, `<div id="general"><h2>General</h2></div>`) {
		t.Fatalf("unexpected sanitized markup %q", got)
	}
}

func TestRunRendersValidationPayload(t *testing.T) {
	errorsPath := filepath.Join(t.TempDir(), "errors.json")
	payload := `{"/body/general": ["Required", " Required "], "__all__": ["Fix the form"], "fee": ["  "]}`
	if err := os.WriteFile(errorsPath, []byte(payload), 0o644); err != nil {
		t.Fatalf("write errors: %v", err)
	}

	out, err := run(runConfig{layoutPath: writeLayout(t), errorsPath: errorsPath}, discardLogger())
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	want := `<span id="__form__-message" class="formtags-message formtags-message--error" role="alert">Fix the form</span>` +
		`<div id="general">` +
		`<span id="general-message" class="formtags-message formtags-message--error" role="alert">Required</span>` +
		`<h2>General</h2></div>` +
		`<input type="number" name="fee" />`
	if diff := cmp.Diff(want, string(out)); diff != "" {
		t.Fatalf("output mismatch (-want +got):\n%s", diff)
	}
}

func TestRunRejectsMalformedPayload(t *testing.T) {
	errorsPath := filepath.Join(t.TempDir(), "errors.json")
	if err := os.WriteFile(errorsPath, []byte(`["not", "a", "map"]`), 0o644); err != nil {
		t.Fatalf("write errors: %v", err)
	}
	if _, err := run(runConfig{layoutPath: writeLayout(t), errorsPath: errorsPath}, discardLogger()); err == nil {
		t.Fatalf("expected payload parse error")
	}
	if _, err := run(runConfig{layoutPath: writeLayout(t), errorsPath: errorsPath + ".missing"}, discardLogger()); err == nil {
		t.Fatalf("expected missing payload error")
	}
}
