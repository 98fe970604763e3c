// Package store implements the encoded local store: the client's persistent
// storage slots for the current user record and the access token.
//
// Values are serialized to text (JSON for non-strings), base64-encoded, and
// written to a key/value table. Corrupted entries are detected on read,
// removed, and reported as absent; the store never panics or returns an error
// to its callers.
package store

import (
	"context"
	"encoding/base64"
	"encoding/json"

	"github.com/akimovd/wastepoint/internal/client/repositories/metadata"
	"github.com/akimovd/wastepoint/internal/logging"
)

// Fixed slot names. The session layer is the only writer of these slots.
const (
	SlotUser        = "user"
	SlotAccessToken = "accessToken"
)

type Store struct {
	repo metadata.Repository
	log  logging.Logger
}

func New(repo metadata.Repository, log logging.Logger) *Store {
	return &Store{repo: repo, log: log}
}

// SetItem serializes value (a string is written as-is, anything else is JSON
// marshalled), encodes it, and upserts the slot. Failures are logged and
// swallowed; the caller's flow is never interrupted by storage problems.
func (s *Store) SetItem(ctx context.Context, key string, value any) {
	var text string
	switch v := value.(type) {
	case string:
		text = v
	default:
		b, err := json.Marshal(value)
		if err != nil {
			s.log.Error(ctx, "cannot serialize storage item", "key", key, "error", err)
			return
		}
		text = string(b)
	}

	encoded := base64.URLEncoding.EncodeToString([]byte(text))
	if err := s.repo.Set(ctx, key, []byte(encoded)); err != nil {
		s.log.Error(ctx, "cannot write storage item", "key", key, "error", err)
	}
}

// GetItem returns the decoded slot value. ok is false when the slot is absent
// or unreadable. A slot that fails to decode is treated as corrupted: it is
// removed and reported as absent.
func (s *Store) GetItem(ctx context.Context, key string) (value string, ok bool) {
	raw, err := s.repo.Get(ctx, key)
	if err != nil {
		s.log.Error(ctx, "cannot read storage item", "key", key, "error", err)
		return "", false
	}
	if raw == nil {
		return "", false
	}

	decoded, err := base64.URLEncoding.DecodeString(string(raw))
	if err != nil {
		s.log.Warn(ctx, "removing corrupted storage item", "key", key)
		s.RemoveItem(ctx, key)
		return "", false
	}
	return string(decoded), true
}

// GetItemJSON decodes the slot and unmarshals it into v. It reports false
// when the slot is absent, corrupted, or does not hold the requested shape.
// A well-encoded value that is not valid JSON for v is left in place and is
// still retrievable as a plain string via GetItem.
func (s *Store) GetItemJSON(ctx context.Context, key string, v any) bool {
	text, ok := s.GetItem(ctx, key)
	if !ok {
		return false
	}
	if err := json.Unmarshal([]byte(text), v); err != nil {
		s.log.Warn(ctx, "storage item is not the requested shape", "key", key, "error", err)
		return false
	}
	return true
}

// RemoveItem deletes the slot unconditionally. Idempotent.
func (s *Store) RemoveItem(ctx context.Context, key string) {
	if err := s.repo.Delete(ctx, key); err != nil {
		s.log.Error(ctx, "cannot remove storage item", "key", key, "error", err)
	}
}
