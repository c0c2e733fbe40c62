// Copyright 2026 The Chatwright Authors
// SPDX-License-Identifier: Apache-2.0

package draft

import (
	"errors"
	"fmt"
	"io/fs"
	"net/url"
	"os"
	"path/filepath"
	"reflect"
	"time"

	"github.com/fxamacker/cbor/v2"
)

// encMode is the CBOR encoder configured with Core Deterministic
// Encoding. Same logical data always produces identical bytes.
var encMode cbor.EncMode

// decMode is the CBOR decoder configured to accept standard CBOR.
// Unknown fields are silently ignored for forward compatibility.
var decMode cbor.DecMode

func init() {
	var err error

	encMode, err = cbor.CoreDetEncOptions().EncMode()
	if err != nil {
		panic("draft: CBOR encoder initialization failed: " + err.Error())
	}

	decMode, err = cbor.DecOptions{
		// Document values decode into any-typed targets. The CBOR
		// default map type for those is map[interface{}]interface{},
		// which is incompatible with encoding/json and with the rest
		// of the form engine, so force map[string]any. Struct field
		// decoding is unaffected.
		DefaultMapType: reflect.TypeOf(map[string]any(nil)),
	}.DecMode()
	if err != nil {
		panic("draft: CBOR decoder initialization failed: " + err.Error())
	}
}

// Draft is one autosaved editing session for a record.
type Draft struct {
	// RecordID identifies the bot configuration record being edited.
	RecordID string `cbor:"record_id"`

	// Document is the canonical document value at autosave time.
	Document any `cbor:"document"`

	// RawText is the raw pane's text at autosave time. Kept
	// separately from Document because the raw pane may hold invalid
	// text the user was still fixing.
	RawText string `cbor:"raw_text"`

	// SavedAt is when the draft was written, for staleness judgement
	// against the server document.
	SavedAt time.Time `cbor:"saved_at"`
}

// ErrNoDraft is returned by Load when no draft exists for a record.
var ErrNoDraft = errors.New("draft: no draft for record")

// Store reads and writes drafts under a single directory, one file
// per record.
type Store struct {
	dir string
}

// NewStore creates a Store rooted at dir. The directory is created on
// first save, not here.
func NewStore(dir string) *Store {
	return &Store{dir: dir}
}

// Save writes the draft for its record, replacing any previous one.
// The write goes through a temp file and rename so a crash mid-write
// never corrupts an existing draft.
func (store *Store) Save(d Draft) error {
	if d.RecordID == "" {
		return errors.New("draft: empty record ID")
	}
	if err := os.MkdirAll(store.dir, 0o700); err != nil {
		return fmt.Errorf("draft: creating %s: %w", store.dir, err)
	}

	data, err := encMode.Marshal(d)
	if err != nil {
		return fmt.Errorf("draft: encoding: %w", err)
	}

	path := store.path(d.RecordID)
	temp := path + ".tmp"
	if err := os.WriteFile(temp, data, 0o600); err != nil {
		return fmt.Errorf("draft: writing %s: %w", temp, err)
	}
	if err := os.Rename(temp, path); err != nil {
		return fmt.Errorf("draft: replacing %s: %w", path, err)
	}
	return nil
}

// Load reads the draft for a record. Returns ErrNoDraft when none
// exists.
func (store *Store) Load(recordID string) (Draft, error) {
	data, err := os.ReadFile(store.path(recordID))
	if errors.Is(err, fs.ErrNotExist) {
		return Draft{}, ErrNoDraft
	}
	if err != nil {
		return Draft{}, fmt.Errorf("draft: reading: %w", err)
	}

	var d Draft
	if err := decMode.Unmarshal(data, &d); err != nil {
		return Draft{}, fmt.Errorf("draft: decoding: %w", err)
	}
	return d, nil
}

// Discard removes the draft for a record. Discarding a record with no
// draft is a no-op.
func (store *Store) Discard(recordID string) error {
	err := os.Remove(store.path(recordID))
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("draft: discarding: %w", err)
	}
	return nil
}

// path returns the draft file path for a record. Record IDs are
// escaped so they cannot traverse out of the store directory.
func (store *Store) path(recordID string) string {
	return filepath.Join(store.dir, url.PathEscape(recordID)+".draft")
}
