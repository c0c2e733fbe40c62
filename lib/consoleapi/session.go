// Copyright 2026 The Chatwright Authors
// SPDX-License-Identifier: Apache-2.0

package consoleapi

import (
	"context"

	"github.com/chatwright/chatwright/lib/validation"
)

// Session binds a client to one record, giving the form a two-method
// surface (check and save) without carrying the record ID around.
type Session struct {
	client   *Client
	recordID string
}

// Session returns the per-record view of the API.
func (client *Client) Session(recordID string) *Session {
	return &Session{client: client, recordID: recordID}
}

// Check validates a document server-side without persisting it.
func (session *Session) Check(ctx context.Context, doc any) ([]validation.Error, error) {
	return session.client.CheckDocument(ctx, session.recordID, doc)
}

// Save persists a document. A non-empty error list is a validation
// rejection, not a transport failure.
func (session *Session) Save(ctx context.Context, doc any) ([]validation.Error, error) {
	return session.client.SaveDocument(ctx, session.recordID, doc)
}
