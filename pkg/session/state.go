package session

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"errors"
	"fmt"
	"strings"

	"github.com/vmihailenco/msgpack/v5"

	"github.com/goliatone/go-formtags/pkg/fielderrors"
)

// ErrInvalidState is returned when a state token is malformed or its
// signature does not match.
var ErrInvalidState = errors.New("session: invalid state token")

// ErrNoSecret is returned when state encoding is requested without a key.
var ErrNoSecret = errors.New("session: state secret is not configured")

// State is the part of a session carried across a form round trip.
type State struct {
	Tab    string                       `msgpack:"tab"`
	Errors map[string]fielderrors.Entry `msgpack:"errors,omitempty"`
}

type signer struct {
	key []byte
}

func newSigner(secret []byte) *signer {
	if len(secret) == 0 {
		return nil
	}
	key := secret
	if len(key) < 32 {
		sum := sha256.Sum256(secret)
		key = sum[:]
	}
	return &signer{key: append([]byte(nil), key...)}
}

// encode packs state and returns base64(payload) + "." + base64(mac).
func (s *signer) encode(state State) (string, error) {
	packed, err := msgpack.Marshal(state)
	if err != nil {
		return "", fmt.Errorf("session: encode state: %w", err)
	}
	payload := base64.RawURLEncoding.EncodeToString(packed)
	sig := base64.RawURLEncoding.EncodeToString(s.mac(packed))
	return payload + "." + sig, nil
}

func (s *signer) decode(token string) (State, error) {
	parts := strings.SplitN(strings.TrimSpace(token), ".", 2)
	if len(parts) != 2 {
		return State{}, fmt.Errorf("%w: missing signature", ErrInvalidState)
	}

	packed, err := base64.RawURLEncoding.DecodeString(parts[0])
	if err != nil {
		return State{}, fmt.Errorf("%w: payload: %v", ErrInvalidState, err)
	}
	sig, err := base64.RawURLEncoding.DecodeString(parts[1])
	if err != nil {
		return State{}, fmt.Errorf("%w: signature: %v", ErrInvalidState, err)
	}
	if !hmac.Equal(sig, s.mac(packed)) {
		return State{}, fmt.Errorf("%w: signature mismatch", ErrInvalidState)
	}

	var state State
	if err := msgpack.Unmarshal(packed, &state); err != nil {
		return State{}, fmt.Errorf("%w: %v", ErrInvalidState, err)
	}
	return state, nil
}

// mac is HMAC-SHA256 truncated to 128 bits.
func (s *signer) mac(data []byte) []byte {
	h := hmac.New(sha256.New, s.key)
	h.Write(data)
	return h.Sum(nil)[:16]
}
