// Package element emits HTML fragments for declarative element descriptions:
// start tags, end tags, self-closing tags, escaped text, complete elements and
// hidden inputs.
//
// Rendering never fails on malformed input. Missing or empty fields either
// suppress the whole fragment (no tag name) or drop the single attribute; the
// only error a Renderer returns is the one reported by the destination writer.
package element

import (
	"bytes"
	"fmt"
	"html"
	"io"
	"log/slog"
	"strings"

	"github.com/goliatone/go-formtags/pkg/attrs"
)

// Renderer writes element fragments. It holds no per-render state and may be
// shared; callers that need per-request state use a session.
type Renderer struct {
	cfg        config
	serializer attrs.Serializer
}

// New constructs a Renderer applying any provided options.
func New(options ...Option) *Renderer {
	cfg := defaultConfig()
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(&cfg)
	}
	return &Renderer{
		cfg:        cfg,
		serializer: attrs.Serializer{Raw: cfg.raw, Allow: cfg.allow},
	}
}

// Dispatch renders desc using the shape selected by desc.Kind. KindNone and
// unknown kinds write nothing.
func (r *Renderer) Dispatch(w io.Writer, desc Description) error {
	e := Normalize(desc)
	if e.Kind == KindHidden {
		return r.writeTrusted(w, r.hidden(e))
	}
	return r.write(w, r.fragment(e))
}

// Open writes `<tag id class href attributes...>`.
func (r *Renderer) Open(w io.Writer, desc Description) error {
	return r.write(w, r.open(Normalize(desc)))
}

// Close writes `</tag>`.
func (r *Renderer) Close(w io.Writer, desc Description) error {
	return r.write(w, r.close(Normalize(desc)))
}

// Standalone writes a self-closing tag such as `<br />`.
func (r *Renderer) Standalone(w io.Writer, desc Description) error {
	return r.write(w, r.standalone(Normalize(desc)))
}

// Text writes the escaped InnerHTML. The tag is ignored.
func (r *Renderer) Text(w io.Writer, desc Description) error {
	return r.write(w, r.text(Normalize(desc)))
}

// Complete writes the start tag, the escaped InnerHTML and the end tag.
func (r *Renderer) Complete(w io.Writer, desc Description) error {
	return r.write(w, r.complete(Normalize(desc)))
}

// Hidden writes `<input type="hidden" name="{id}" value="{default}">`. It is
// emitted even when both attributes are empty, in which case the exact output
// is `<input type="hidden" >`. The sanitizer does not apply: the fragment
// only carries the escaped name and value.
func (r *Renderer) Hidden(w io.Writer, desc Description) error {
	return r.writeTrusted(w, r.hidden(Normalize(desc)))
}

// String renders desc through Dispatch into a string.
func (r *Renderer) String(desc Description) string {
	var buf bytes.Buffer
	_ = r.Dispatch(&buf, desc)
	return buf.String()
}

func (r *Renderer) fragment(e Description) string {
	switch e.Kind {
	case KindOpen:
		return r.open(e)
	case KindClose:
		return r.close(e)
	case KindStandalone:
		return r.standalone(e)
	case KindText:
		return r.text(e)
	case KindComplete:
		return r.complete(e)
	case KindHidden:
		return r.hidden(e)
	default:
		return ""
	}
}

func (r *Renderer) open(e Description) string {
	if e.Tag == "" {
		return ""
	}
	return "<" + e.Tag + r.attributes(e) + ">"
}

func (r *Renderer) close(e Description) string {
	if e.Tag == "" {
		return ""
	}
	return "</" + e.Tag + ">"
}

func (r *Renderer) standalone(e Description) string {
	if e.Tag == "" {
		return ""
	}
	return "<" + e.Tag + r.attributes(e) + " />"
}

func (r *Renderer) text(e Description) string {
	if len(e.InnerHTML) == 0 {
		return ""
	}
	return html.EscapeString(e.InnerHTML)
}

func (r *Renderer) complete(e Description) string {
	if e.Tag == "" {
		return ""
	}
	var builder strings.Builder
	builder.WriteString(r.open(e))
	builder.WriteString(html.EscapeString(e.InnerHTML))
	builder.WriteString(r.close(e))
	return builder.String()
}

func (r *Renderer) hidden(e Description) string {
	fragments := r.guard("hidden", func() string {
		return r.serializer.Serialize("name", attrs.String(e.ID), false) +
			r.serializer.Serialize("value", attrs.String(e.Default), false)
	})
	if fragments == "" {
		return `<input type="hidden" >`
	}
	return `<input type="hidden"` + fragments + ">"
}

func (r *Renderer) attributes(e Description) string {
	return r.guard(e.Tag, func() string {
		var builder strings.Builder
		builder.WriteString(r.serializer.Serialize("id", attrs.String(e.ID), false))
		builder.WriteString(r.serializer.Serialize("class", e.Class, false))
		builder.WriteString(r.serializer.Serialize("href", attrs.String(e.Href), false))
		builder.WriteString(r.serializer.Serialize("attributes", e.Attributes, true))
		return builder.String()
	})
}

// guard runs build and turns a panic (from a caller supplied filter, say)
// into an empty attribute string.
func (r *Renderer) guard(tag string, build func() string) (out string) {
	defer func() {
		if rec := recover(); rec != nil {
			r.cfg.logger.Warn("element: attribute composition failed",
				slog.String("tag", tag),
				slog.String("panic", fmt.Sprint(rec)),
			)
			out = ""
		}
	}()
	return build()
}

func (r *Renderer) write(w io.Writer, fragment string) error {
	if fragment == "" || r.cfg.sanitizer == nil {
		return r.writeTrusted(w, fragment)
	}
	cleaned := r.cfg.sanitizer.Sanitize(fragment)
	if cleaned != fragment {
		r.cfg.logger.Debug("element: sanitizer rewrote fragment",
			slog.String("before", fragment),
			slog.String("after", cleaned),
		)
	}
	return r.writeTrusted(w, cleaned)
}

func (r *Renderer) writeTrusted(w io.Writer, fragment string) error {
	if fragment == "" {
		return nil
	}
	if _, err := io.WriteString(w, fragment); err != nil {
		return fmt.Errorf("element: write fragment: %w", err)
	}
	return nil
}
