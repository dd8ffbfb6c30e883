// Package fielderrors keeps the validation message attached to each form
// field between a failed submission and the re-render of the form.
//
// A Registry belongs to a single request. It has no internal locking.
package fielderrors

import (
	"slices"
	"sort"
	"strings"
)

// Status is the severity of a field message.
type Status string

const (
	StatusError Status = "error"
	StatusInfo  Status = "info"
)

// ParseStatus maps raw onto a known Status. Anything unrecognised, including
// the empty string, is treated as StatusError.
func ParseStatus(raw string) Status {
	switch Status(strings.ToLower(strings.TrimSpace(raw))) {
	case StatusInfo:
		return StatusInfo
	default:
		return StatusError
	}
}

// Valid reports whether s is one of the known severities.
func (s Status) Valid() bool {
	return s == StatusError || s == StatusInfo
}

// Entry is the message stored for one field.
type Entry struct {
	Message string `json:"message" msgpack:"message"`
	Status  Status `json:"status" msgpack:"status"`
}

// Registry maps field identifiers to at most one Entry. Writes to an existing
// identifier replace the previous entry.
type Registry struct {
	entries map[string]Entry
}

// New returns an empty registry.
func New() *Registry {
	return &Registry{entries: make(map[string]Entry)}
}

// Add stores message for id with StatusError.
func (r *Registry) Add(id, message string) {
	r.AddStatus(id, message, StatusError)
}

// AddStatus stores message for id. A status other than StatusError or
// StatusInfo is stored as StatusError.
func (r *Registry) AddStatus(id, message string, status Status) {
	if !status.Valid() {
		status = StatusError
	}
	if r.entries == nil {
		r.entries = make(map[string]Entry)
	}
	r.entries[id] = Entry{Message: message, Status: status}
}

// AddMessages trims, de-duplicates and joins messages before storing them for
// id. When nothing is left after trimming the registry is left untouched.
func (r *Registry) AddMessages(id string, messages []string, status Status) {
	normalized := cleanMessages(messages)
	if len(normalized) == 0 {
		return
	}
	r.AddStatus(id, strings.Join(normalized, " "), status)
}

// Get returns the entry stored for id.
func (r *Registry) Get(id string) (Entry, bool) {
	if r == nil {
		return Entry{}, false
	}
	entry, ok := r.entries[id]
	return entry, ok
}

// Count is the number of distinct identifiers with an entry.
func (r *Registry) Count() int {
	if r == nil {
		return 0
	}
	return len(r.entries)
}

// HasErrors reports whether any entry carries StatusError.
func (r *Registry) HasErrors() bool {
	if r == nil {
		return false
	}
	for _, entry := range r.entries {
		if entry.Status == StatusError {
			return true
		}
	}
	return false
}

// IDs returns the identifiers with an entry, sorted.
func (r *Registry) IDs() []string {
	if r == nil || len(r.entries) == 0 {
		return nil
	}
	ids := make([]string, 0, len(r.entries))
	for id := range r.entries {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// Entries returns a copy of the stored entries.
func (r *Registry) Entries() map[string]Entry {
	if r == nil || len(r.entries) == 0 {
		return nil
	}
	out := make(map[string]Entry, len(r.entries))
	for id, entry := range r.entries {
		out[id] = entry
	}
	return out
}

// Reset drops every entry.
func (r *Registry) Reset() {
	if r == nil {
		return
	}
	r.entries = make(map[string]Entry)
}

// cleanMessages trims messages and drops blanks and repeats, keeping the
// first occurrence order.
func cleanMessages(messages []string) []string {
	var out []string
	for _, message := range messages {
		message = strings.TrimSpace(message)
		if message != "" && !slices.Contains(out, message) {
			out = append(out, message)
		}
	}
	return out
}
