// Package models defines the server-side data models.
package models

import (
	"path"
	"strings"
)

// MIME hints reported for uploaded files.
const (
	MimeImage   = "image/jpeg"
	MimeGeneric = "application/octet-stream"
)

var imageExtensions = map[string]struct{}{
	".jpg":  {},
	".jpeg": {},
	".png":  {},
	".gif":  {},
}

// FileInfo is one entry of the upload listing.
type FileInfo struct {
	Name string `json:"name"`
	Type string `json:"type"`
}

// NewFileInfo builds a listing entry with the MIME hint derived from name.
func NewFileInfo(name string) FileInfo {
	return FileInfo{Name: name, Type: MimeHint(name)}
}

// MimeHint classifies a file by extension only: the image extensions map to
// MimeImage regardless of case, everything else to MimeGeneric.
func MimeHint(name string) string {
	if _, ok := imageExtensions[strings.ToLower(path.Ext(name))]; ok {
		return MimeImage
	}
	return MimeGeneric
}
