package services

import (
	"context"
	"fmt"
	"io"

	"github.com/dmitrijs2005/caet/internal/logging"
	"github.com/dmitrijs2005/caet/internal/server/models"
	"github.com/dmitrijs2005/caet/internal/server/uploads"
)

// FileService stores uploads in the shared flat namespace and lists them.
type FileService struct {
	store  uploads.Store
	logger logging.Logger
}

func NewFileService(store uploads.Store, logger logging.Logger) *FileService {
	return &FileService{store: store, logger: logger}
}

// Upload saves one file, replacing any file of the same name.
func (s *FileService) Upload(ctx context.Context, name string, r io.Reader) error {
	if err := s.store.Save(ctx, name, r); err != nil {
		return fmt.Errorf("error saving %q: %w", name, err)
	}
	s.logger.Debug(ctx, "file stored", "name", name)
	return nil
}

func (s *FileService) List(ctx context.Context) ([]models.FileInfo, error) {
	files, err := s.store.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("error listing files: %w", err)
	}
	return files, nil
}
