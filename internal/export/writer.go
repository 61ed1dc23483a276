package export

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"go.uber.org/zap"
)

// Writer writes export files into one output directory.
type Writer struct {
	dir    string
	logger *zap.Logger
}

// NewWriter creates a Writer for dir. A nil logger discards output.
func NewWriter(dir string, logger *zap.Logger) *Writer {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Writer{dir: dir, logger: logger.Named("export")}
}

// Path resolves name inside the output directory.
func (w *Writer) Path(name string) string {
	if filepath.IsAbs(name) {
		return name
	}
	return filepath.Join(w.dir, name)
}

// create opens name for writing, creating the output directory if needed.
func (w *Writer) create(name string) (*os.File, string, error) {
	path := w.Path(name)
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, path, fmt.Errorf("failed to create directory: %w", err)
	}
	f, err := os.Create(path)
	if err != nil {
		return nil, path, fmt.Errorf("failed to create file: %w", err)
	}
	return f, path, nil
}

// write creates name and fills it with fn. A failed close is reported like
// any other write error.
func (w *Writer) write(name string, fn func(io.Writer) error) (path string, err error) {
	f, path, err := w.create(name)
	if err != nil {
		return path, err
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("failed to close %s: %w", path, cerr)
		}
	}()
	return path, fn(f)
}
