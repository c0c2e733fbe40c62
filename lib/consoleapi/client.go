// Copyright 2026 The Chatwright Authors
// SPDX-License-Identifier: Apache-2.0

package consoleapi

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/chatwright/chatwright/lib/schema"
	"github.com/chatwright/chatwright/lib/validation"
)

// Client talks to the console API. Create one with NewClient and
// share it across the session; it is safe for the single-threaded
// bubbletea command goroutines that use it.
type Client struct {
	baseURL    string
	token      string
	httpClient *http.Client
}

// NewClient creates a Client for the console API at baseURL. The
// token is sent as a bearer credential on every request. A nil
// httpClient uses http.DefaultClient.
func NewClient(baseURL, token string, httpClient *http.Client) *Client {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		token:      token,
		httpClient: httpClient,
	}
}

// FetchSchema retrieves the root schema node and its definitions
// table. Called once per edit session; the schema is immutable for
// the session's lifetime.
func (client *Client) FetchSchema(ctx context.Context) (*schema.Root, error) {
	body, err := client.get(ctx, "/api/config/schema")
	if err != nil {
		return nil, err
	}
	root := &schema.Root{}
	if err := json.Unmarshal(body, root); err != nil {
		return nil, fmt.Errorf("consoleapi: decoding schema: %w", err)
	}
	return root, nil
}

// FetchDocument retrieves the current configuration document for a
// bot record. For a record the server has no document for yet, the
// server responds with its defaults for a new record.
func (client *Client) FetchDocument(ctx context.Context, recordID string) (any, error) {
	body, err := client.get(ctx, "/api/config/"+url.PathEscape(recordID))
	if err != nil {
		return nil, err
	}
	var value any
	if err := json.Unmarshal(body, &value); err != nil {
		return nil, fmt.Errorf("consoleapi: decoding document: %w", err)
	}
	return value, nil
}

// SaveDocument persists the full document for a record. A clean save
// returns (nil, nil). A server-side validation failure returns the
// structured error list with a nil error; the caller keeps the
// in-progress document either way.
func (client *Client) SaveDocument(ctx context.Context, recordID string, doc any) ([]validation.Error, error) {
	return client.put(ctx, "/api/config/"+url.PathEscape(recordID), doc)
}

// CheckDocument runs server-side validation without persisting. The
// debounced checker calls this once an edit settles.
func (client *Client) CheckDocument(ctx context.Context, recordID string, doc any) ([]validation.Error, error) {
	return client.put(ctx, "/api/config/"+url.PathEscape(recordID)+"/check", doc)
}

// errorList is the wire shape of a 422 response body.
type errorList struct {
	Errors []validation.Error `json:"errors"`
}

// get performs an authenticated GET and returns the response body.
func (client *Client) get(ctx context.Context, path string) ([]byte, error) {
	request, err := http.NewRequestWithContext(ctx, http.MethodGet, client.baseURL+path, nil)
	if err != nil {
		return nil, fmt.Errorf("consoleapi: creating request: %w", err)
	}
	client.authorize(request)

	response, err := client.httpClient.Do(request)
	if err != nil {
		return nil, fmt.Errorf("consoleapi: sending request: %w", err)
	}
	defer response.Body.Close()

	if response.StatusCode != http.StatusOK {
		return nil, readAPIError(response)
	}
	body, err := io.ReadAll(response.Body)
	if err != nil {
		return nil, fmt.Errorf("consoleapi: reading response: %w", err)
	}
	return body, nil
}

// put sends a document as the full request body and decodes the
// validation outcome: 2xx means clean, 422 carries the structured
// error list, anything else is a transport-level failure.
func (client *Client) put(ctx context.Context, path string, doc any) ([]validation.Error, error) {
	body, err := json.Marshal(doc)
	if err != nil {
		return nil, fmt.Errorf("consoleapi: marshaling document: %w", err)
	}

	request, err := http.NewRequestWithContext(ctx, http.MethodPut, client.baseURL+path, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("consoleapi: creating request: %w", err)
	}
	request.Header.Set("Content-Type", "application/json")
	client.authorize(request)

	response, err := client.httpClient.Do(request)
	if err != nil {
		return nil, fmt.Errorf("consoleapi: sending request: %w", err)
	}
	defer response.Body.Close()

	switch {
	case response.StatusCode >= 200 && response.StatusCode < 300:
		return nil, nil
	case response.StatusCode == http.StatusUnprocessableEntity:
		var list errorList
		if err := json.NewDecoder(response.Body).Decode(&list); err != nil {
			return nil, fmt.Errorf("consoleapi: decoding validation errors: %w", err)
		}
		return list.Errors, nil
	default:
		return nil, readAPIError(response)
	}
}

// authorize attaches the bearer token when one is configured.
func (client *Client) authorize(request *http.Request) {
	if client.token != "" {
		request.Header.Set("Authorization", "Bearer "+client.token)
	}
}

// readAPIError turns a non-2xx response into a single session-level
// error. The body is included when it looks like a short message;
// {"error": "..."} bodies are unwrapped.
func readAPIError(response *http.Response) error {
	body, _ := io.ReadAll(io.LimitReader(response.Body, 4096))

	var wire struct {
		Error string `json:"error"`
	}
	if err := json.Unmarshal(body, &wire); err == nil && wire.Error != "" {
		return fmt.Errorf("consoleapi: %s: %s", response.Status, wire.Error)
	}
	trimmed := strings.TrimSpace(string(body))
	if trimmed != "" && len(trimmed) < 200 {
		return fmt.Errorf("consoleapi: %s: %s", response.Status, trimmed)
	}
	return fmt.Errorf("consoleapi: %s", response.Status)
}
