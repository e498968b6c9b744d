package uploads

import (
	"context"
	"fmt"
	"io"
	"os"
	"sort"

	"github.com/dmitrijs2005/caet/internal/common"
	"github.com/dmitrijs2005/caet/internal/filex"
	"github.com/dmitrijs2005/caet/internal/server/models"
)

// DirStore keeps uploads as regular files directly inside one directory.
type DirStore struct {
	dir string
}

// NewDirStore creates dir when missing.
func NewDirStore(dir string) (*DirStore, error) {
	abs, err := filex.EnsureDir(dir)
	if err != nil {
		return nil, err
	}
	return &DirStore{dir: abs}, nil
}

func (s *DirStore) Dir() string {
	return s.dir
}

func (s *DirStore) Save(ctx context.Context, name string, r io.Reader) error {
	name, err := CleanName(name)
	if err != nil {
		return err
	}
	if filex.IsTemp(name) {
		return fmt.Errorf("%w: reserved file name %q", common.ErrValidation, name)
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := filex.ReplaceFile(s.dir, name, r); err != nil {
		return fmt.Errorf("upload store error: %w", err)
	}
	return nil
}

func (s *DirStore) List(ctx context.Context) ([]models.FileInfo, error) {
	entries, err := os.ReadDir(s.dir)
	if err != nil {
		return nil, fmt.Errorf("upload store error: %w", err)
	}

	files := make([]models.FileInfo, 0, len(entries))
	for _, e := range entries {
		if !e.Type().IsRegular() || filex.IsTemp(e.Name()) {
			continue
		}
		files = append(files, models.NewFileInfo(e.Name()))
	}

	sort.Slice(files, func(i, j int) bool { return files[i].Name < files[j].Name })
	return files, nil
}
