// Package cli provides the interactive caet command-line client.
//
// It wires configuration and the HTTP API client into a REPL that mirrors
// what the caet web pages offer: sign up, sign in (password or Google),
// password recovery, viewing and editing the profile, and uploading and
// listing files. Form fields are checked locally before any request is sent.
//
// A background watcher pings the server and shows online/offline in the
// prompt. The REPL is started via App.Root(ctx), which blocks until the user
// exits. See App, StartOnlineStatusWatcher, and runREPL for details.
package cli
