// Copyright 2026 The Chatwright Authors
// SPDX-License-Identifier: Apache-2.0

package draft

import (
	"errors"
	"testing"
	"time"

	"github.com/chatwright/chatwright/lib/document"
)

func TestSaveLoadRoundTrip(t *testing.T) {
	store := NewStore(t.TempDir())

	saved := Draft{
		RecordID: "bot-7",
		Document: map[string]any{
			"name":    "support-bot",
			"enabled": true,
			"groups":  []any{"ops", "dev"},
		},
		RawText: "{\n  \"name\": \"support-bot\"\n",
		SavedAt: time.Date(2026, 8, 30, 12, 0, 0, 0, time.UTC),
	}
	if err := store.Save(saved); err != nil {
		t.Fatalf("Save: %v", err)
	}

	loaded, err := store.Load("bot-7")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if loaded.RecordID != "bot-7" {
		t.Errorf("record = %q", loaded.RecordID)
	}
	if !document.Equal(loaded.Document, saved.Document) {
		t.Errorf("document diverged:\nsaved:  %v\nloaded: %v", saved.Document, loaded.Document)
	}
	if loaded.RawText != saved.RawText {
		t.Errorf("raw text = %q", loaded.RawText)
	}
	if !loaded.SavedAt.Equal(saved.SavedAt) {
		t.Errorf("saved at = %v", loaded.SavedAt)
	}
}

func TestLoadMissing(t *testing.T) {
	store := NewStore(t.TempDir())
	if _, err := store.Load("bot-7"); !errors.Is(err, ErrNoDraft) {
		t.Errorf("Load = %v, want ErrNoDraft", err)
	}
}

func TestSaveReplacesPrevious(t *testing.T) {
	store := NewStore(t.TempDir())

	first := Draft{RecordID: "bot-7", Document: map[string]any{"name": "a"}}
	second := Draft{RecordID: "bot-7", Document: map[string]any{"name": "b"}}
	if err := store.Save(first); err != nil {
		t.Fatalf("Save: %v", err)
	}
	if err := store.Save(second); err != nil {
		t.Fatalf("Save: %v", err)
	}

	loaded, err := store.Load("bot-7")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if loaded.Document.(map[string]any)["name"] != "b" {
		t.Errorf("document = %v, want the replacement", loaded.Document)
	}
}

func TestDiscard(t *testing.T) {
	store := NewStore(t.TempDir())

	if err := store.Save(Draft{RecordID: "bot-7", Document: map[string]any{}}); err != nil {
		t.Fatalf("Save: %v", err)
	}
	if err := store.Discard("bot-7"); err != nil {
		t.Fatalf("Discard: %v", err)
	}
	if _, err := store.Load("bot-7"); !errors.Is(err, ErrNoDraft) {
		t.Errorf("Load after discard = %v, want ErrNoDraft", err)
	}

	// Discarding again is a no-op.
	if err := store.Discard("bot-7"); err != nil {
		t.Errorf("second Discard = %v, want nil", err)
	}
}

func TestRecordIDEscaping(t *testing.T) {
	store := NewStore(t.TempDir())

	// A hostile record ID must not escape the store directory.
	d := Draft{RecordID: "../outside", Document: map[string]any{}}
	if err := store.Save(d); err != nil {
		t.Fatalf("Save: %v", err)
	}
	loaded, err := store.Load("../outside")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if loaded.RecordID != "../outside" {
		t.Errorf("record = %q", loaded.RecordID)
	}
}

func TestSaveRequiresRecordID(t *testing.T) {
	store := NewStore(t.TempDir())
	if err := store.Save(Draft{}); err == nil {
		t.Fatal("Save with empty record ID = nil, want error")
	}
}
