// Package models defines the client-side view of caet data and the form
// checks the client runs before talking to the server.
package models

// Profile is the signed-in user's account data as returned by GET /profile.
type Profile struct {
	Name  string `json:"name"`
	Email string `json:"email"`
	DOB   string `json:"dob"`
	Phone string `json:"phone"`
}

// FileInfo is one uploaded file as listed by GET /files.
type FileInfo struct {
	Name string `json:"name"`
	Type string `json:"type"`
}
