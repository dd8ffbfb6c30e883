// Package session ties one element renderer to the field messages and UI
// state of a single form render. Create one Session per request.
package session

import (
	"fmt"
	"io"
	"log/slog"

	"github.com/goliatone/go-formtags/pkg/attrs"
	"github.com/goliatone/go-formtags/pkg/element"
	"github.com/goliatone/go-formtags/pkg/fielderrors"
)

// DefaultStateField is the hidden input name used by StateField when no name
// is given.
const DefaultStateField = "_formtags_state"

// Option configures a Session.
type Option func(*Session)

// WithRenderer replaces the default element renderer.
func WithRenderer(renderer *element.Renderer) Option {
	return func(s *Session) {
		if renderer != nil {
			s.renderer = renderer
		}
	}
}

// WithRegistry seeds the session with an existing registry, for example one
// built by fielderrors.FromPayload.
func WithRegistry(registry *fielderrors.Registry) Option {
	return func(s *Session) {
		if registry != nil {
			s.errors = registry
		}
	}
}

// WithSecret enables EncodeState/DecodeState using secret as HMAC key.
func WithSecret(secret []byte) Option {
	return func(s *Session) {
		s.signer = newSigner(secret)
	}
}

// WithLogger sets the session logger.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Session) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// Session renders form elements for one request and records the messages
// and active tab that must survive a failed submission.
type Session struct {
	// LastActiveTab is the id of the tab the user had open. It is not
	// interpreted, only carried so the caller can reopen the same tab.
	LastActiveTab string

	renderer *element.Renderer
	errors   *fielderrors.Registry
	signer   *signer
	logger   *slog.Logger
}

// New creates a session with an empty registry.
func New(options ...Option) *Session {
	s := &Session{
		renderer: element.New(),
		errors:   fielderrors.New(),
		logger:   slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(s)
	}
	return s
}

// Renderer returns the element renderer used by the session.
func (s *Session) Renderer() *element.Renderer { return s.renderer }

// Errors returns the session's field message registry.
func (s *Session) Errors() *fielderrors.Registry { return s.errors }

// AddError records an error message for field id.
func (s *Session) AddError(id, message string) {
	s.errors.Add(id, message)
}

// AddMessage records a message with the given severity for field id.
func (s *Session) AddMessage(id, message string, status fielderrors.Status) {
	if !status.Valid() {
		s.logger.Debug("session: unknown message status, storing as error",
			slog.String("field", id),
			slog.String("status", string(status)),
		)
	}
	s.errors.AddStatus(id, message, status)
}

// Error returns the entry stored for field id.
func (s *Session) Error(id string) (fielderrors.Entry, bool) {
	return s.errors.Get(id)
}

// CountErrors is the number of fields with a stored message.
func (s *Session) CountErrors() int {
	return s.errors.Count()
}

// Render writes desc using the shape selected by its Kind.
func (s *Session) Render(w io.Writer, desc element.Description) error {
	return s.renderer.Dispatch(w, desc)
}

// RenderAll writes descs in order, stopping at the first write error.
func (s *Session) RenderAll(w io.Writer, descs []element.Description) error {
	for idx, desc := range descs {
		if err := s.renderer.Dispatch(w, desc); err != nil {
			return fmt.Errorf("session: render element %d: %w", idx, err)
		}
	}
	return nil
}

// MessageDescription returns the element describing the message stored for
// field id, or false when the field has none.
func (s *Session) MessageDescription(id string) (element.Description, bool) {
	entry, ok := s.errors.Get(id)
	if !ok {
		return element.Description{}, false
	}
	return element.Description{
		Kind:      element.KindComplete,
		Tag:       "span",
		ID:        id + "-message",
		Class:     attrs.List("formtags-message", "formtags-message--"+string(entry.Status)),
		InnerHTML: entry.Message,
		Attributes: attrs.Map(
			attrs.Attr{Name: "role", Value: attrs.String(roleFor(entry.Status))},
		),
	}, true
}

// RenderFieldError writes the message stored for field id as a span. Nothing
// is written when the field has no message.
func (s *Session) RenderFieldError(w io.Writer, id string) error {
	desc, ok := s.MessageDescription(id)
	if !ok {
		return nil
	}
	return s.renderer.Complete(w, desc)
}

// State returns the carried state snapshot.
func (s *Session) State() State {
	return State{
		Tab:    s.LastActiveTab,
		Errors: s.errors.Entries(),
	}
}

// Restore replaces the active tab and messages with state.
func (s *Session) Restore(state State) {
	s.LastActiveTab = state.Tab
	s.errors.Reset()
	for id, entry := range state.Errors {
		s.errors.AddStatus(id, entry.Message, entry.Status)
	}
}

// EncodeState returns a signed token carrying State.
func (s *Session) EncodeState() (string, error) {
	if s.signer == nil {
		return "", ErrNoSecret
	}
	return s.signer.encode(s.State())
}

// DecodeState verifies token and restores the session from it. On failure
// the session is left unchanged.
func (s *Session) DecodeState(token string) error {
	if s.signer == nil {
		return ErrNoSecret
	}
	state, err := s.signer.decode(token)
	if err != nil {
		s.logger.Warn("session: rejected state token", slog.String("error", err.Error()))
		return err
	}
	s.Restore(state)
	return nil
}

// StateField returns a hidden input description carrying the encoded state
// under name (DefaultStateField when empty).
func (s *Session) StateField(name string) (element.Description, error) {
	token, err := s.EncodeState()
	if err != nil {
		return element.Description{}, err
	}
	if name == "" {
		name = DefaultStateField
	}
	return element.Description{Kind: element.KindHidden, ID: name, Default: token}, nil
}

// Close clears the registry at the end of the request.
func (s *Session) Close() {
	s.errors.Reset()
	s.LastActiveTab = ""
}

func roleFor(status fielderrors.Status) string {
	if status == fielderrors.StatusInfo {
		return "status"
	}
	return "alert"
}
