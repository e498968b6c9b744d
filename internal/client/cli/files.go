package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/dmitrijs2005/caet/internal/client/client"
)

func (a *App) Files(ctx context.Context) error {
	files, err := a.api.Files(ctx)
	if err != nil {
		return err
	}

	if len(files) == 0 {
		printlnFn("No files uploaded yet.")
		return nil
	}
	for _, f := range files {
		printlnFn(fmt.Sprintf("%-40s %s", f.Name, f.Type))
	}
	return nil
}

// Upload sends the local files at paths in one request, each under its base
// name.
func (a *App) Upload(ctx context.Context, paths []string) error {
	uploads := make([]client.Upload, 0, len(paths))
	for _, p := range paths {
		f, err := os.Open(p)
		if err != nil {
			return fmt.Errorf("error opening %s: %w", p, err)
		}
		defer f.Close()

		st, err := f.Stat()
		if err != nil {
			return err
		}
		if st.IsDir() {
			return fmt.Errorf("%s is a directory", p)
		}

		uploads = append(uploads, client.Upload{Name: filepath.Base(p), Body: f})
	}

	if err := a.api.Upload(ctx, uploads); err != nil {
		return err
	}

	printlnFn(fmt.Sprintf("Uploaded %d file(s).", len(uploads)))
	return nil
}
