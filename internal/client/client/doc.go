// Package client talks to the caet HTTP API.
//
// # Overview
//
// Client is the transport-agnostic contract used by the CLI; HTTPClient is
// its implementation over net/http. HTTPClient keeps the session token
// handed out in the auth_token cookie in memory and attaches it to every
// later request itself, so sessions work against plain-HTTP servers even
// though the cookie is marked Secure. Mutating requests carry the configured
// anti-forgery value.
//
// # Error Handling
//
// Transport failures wrap ErrUnavailable. A {success:false} answer becomes an
// *APIError carrying the HTTP status and server message; 401 answers also
// match ErrUnauthorized via errors.Is.
package client
