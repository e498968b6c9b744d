// Package netx holds small HTTP helpers shared by the client.
package netx

import (
	"bytes"
	"fmt"
	"io"
	"mime/multipart"
	"sort"
)

// FilePart is one file to be sent in a multipart form.
type FilePart struct {
	Name string
	Body io.Reader
}

// MultipartBody encodes fields and files into a multipart/form-data body.
// Every file goes under fileField. Fields are written first, in key order.
func MultipartBody(fields map[string]string, fileField string, files []FilePart) (*bytes.Buffer, string, error) {
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)

	keys := make([]string, 0, len(fields))
	for k := range fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		if err := mw.WriteField(k, fields[k]); err != nil {
			return nil, "", err
		}
	}

	for _, f := range files {
		w, err := mw.CreateFormFile(fileField, f.Name)
		if err != nil {
			return nil, "", err
		}
		if _, err := io.Copy(w, f.Body); err != nil {
			return nil, "", fmt.Errorf("read %s: %w", f.Name, err)
		}
	}

	if err := mw.Close(); err != nil {
		return nil, "", err
	}
	return &buf, mw.FormDataContentType(), nil
}
