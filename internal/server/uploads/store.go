// Package uploads persists uploaded files in one flat namespace. Two
// backends are provided: a local directory and an S3-compatible bucket.
package uploads

import (
	"context"
	"fmt"
	"io"
	"path"
	"path/filepath"
	"strings"

	"github.com/dmitrijs2005/caet/internal/common"
	"github.com/dmitrijs2005/caet/internal/server/models"
)

// Store saves and lists uploaded files. Saving an existing name replaces its
// content.
type Store interface {
	Save(ctx context.Context, name string, r io.Reader) error
	List(ctx context.Context) ([]models.FileInfo, error)
}

// CleanName reduces a submitted filename to its last path element. Names
// that reduce to nothing usable are a validation error.
func CleanName(name string) (string, error) {
	name = strings.ReplaceAll(name, `\`, "/")
	base := path.Base(filepath.ToSlash(name))
	switch base {
	case "", ".", "..", "/":
		return "", fmt.Errorf("%w: bad file name %q", common.ErrValidation, name)
	}
	return base, nil
}
