// Copyright 2026 The Chatwright Authors
// SPDX-License-Identifier: Apache-2.0

package consoleapi

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/chatwright/chatwright/lib/schema"
)

func TestFetchSchema(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/config/schema" {
			t.Errorf("path = %s", r.URL.Path)
		}
		if got := r.Header.Get("Authorization"); got != "Bearer tok123" {
			t.Errorf("authorization = %q", got)
		}
		w.Write([]byte(`{
			"type": "object",
			"properties": {"name": {"type": "string"}},
			"$defs": {"credential": {"type": "object"}}
		}`))
	}))
	defer server.Close()

	client := NewClient(server.URL, "tok123", nil)
	root, err := client.FetchSchema(context.Background())
	if err != nil {
		t.Fatalf("FetchSchema: %v", err)
	}
	if schema.Classify(root.Node) != schema.KindObject {
		t.Errorf("root kind = %s, want object", schema.Classify(root.Node))
	}
	if _, ok := root.Defs["credential"]; !ok {
		t.Error("definitions table not decoded")
	}
}

func TestFetchDocument(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/config/bot-7" {
			t.Errorf("path = %s", r.URL.Path)
		}
		w.Write([]byte(`{"name": "support-bot", "enabled": true}`))
	}))
	defer server.Close()

	client := NewClient(server.URL, "", nil)
	doc, err := client.FetchDocument(context.Background(), "bot-7")
	if err != nil {
		t.Fatalf("FetchDocument: %v", err)
	}
	object := doc.(map[string]any)
	if object["name"] != "support-bot" || object["enabled"] != true {
		t.Errorf("document = %v", object)
	}
}

func TestSaveDocumentClean(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPut {
			t.Errorf("method = %s, want PUT", r.Method)
		}
		var body map[string]any
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			t.Errorf("body: %v", err)
		}
		if body["name"] != "support-bot" {
			t.Errorf("body = %v, want the full document", body)
		}
		w.WriteHeader(http.StatusNoContent)
	}))
	defer server.Close()

	client := NewClient(server.URL, "", nil)
	errors, err := client.SaveDocument(context.Background(), "bot-7", map[string]any{"name": "support-bot"})
	if err != nil {
		t.Fatalf("SaveDocument: %v", err)
	}
	if errors != nil {
		t.Errorf("errors = %v, want none", errors)
	}
}

func TestSaveDocumentValidationFailure(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnprocessableEntity)
		w.Write([]byte(`{"errors": [
			{"instancePath": "/features", "message": "must have required property 'chat_system_prompt'",
			 "keyword": "required", "params": {"missingProperty": "chat_system_prompt"}}
		]}`))
	}))
	defer server.Close()

	client := NewClient(server.URL, "", nil)
	errors, err := client.SaveDocument(context.Background(), "bot-7", map[string]any{})
	if err != nil {
		t.Fatalf("a 422 is a validation outcome, not a transport error: %v", err)
	}
	if len(errors) != 1 {
		t.Fatalf("errors = %v, want 1 entry", errors)
	}
	if errors[0].InstancePath != "/features" || errors[0].Keyword != "required" {
		t.Errorf("errors[0] = %+v", errors[0])
	}
	if errors[0].Params["missingProperty"] != "chat_system_prompt" {
		t.Errorf("params = %v", errors[0].Params)
	}
}

func TestServerFailureIsSessionError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		w.Write([]byte(`{"error": "database unavailable"}`))
	}))
	defer server.Close()

	client := NewClient(server.URL, "", nil)
	_, err := client.SaveDocument(context.Background(), "bot-7", map[string]any{})
	if err == nil {
		t.Fatal("SaveDocument = nil, want session-level error")
	}
	if !strings.Contains(err.Error(), "database unavailable") {
		t.Errorf("error = %v, want server message included", err)
	}

	_, err = client.FetchDocument(context.Background(), "bot-7")
	if err == nil {
		t.Fatal("FetchDocument = nil, want error")
	}
}

func TestCheckDocumentPath(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/config/bot-7/check" {
			t.Errorf("path = %s", r.URL.Path)
		}
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	client := NewClient(server.URL, "", nil)
	if _, err := client.CheckDocument(context.Background(), "bot-7", map[string]any{}); err != nil {
		t.Fatalf("CheckDocument: %v", err)
	}
}
