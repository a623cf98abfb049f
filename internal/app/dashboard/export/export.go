// Package export mirrors every drawn chart to a PNG file on disk.
package export

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/Hobrus/netpulse/internal/pkg/retry"
)

type DirExporter struct {
	Dir string
}

// NewDirExporter creates dir if needed.
func NewDirExporter(dir string) (*DirExporter, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create export dir: %w", err)
	}
	return &DirExporter{Dir: dir}, nil
}

// Export replaces <dir>/<name>.png with img.
func (e *DirExporter) Export(name string, img []byte) error {
	if name == "" || strings.ContainsAny(name, `/\`) || name == "." || name == ".." {
		return fmt.Errorf("invalid export name %q", name)
	}
	path := filepath.Join(e.Dir, name+".png")
	return retry.DoWithRetry(func() error {
		return writeFileAtomic(path, img)
	})
}

// writeFileAtomic writes through a temp file so readers never see a
// partial image.
func writeFileAtomic(path string, data []byte) error {
	tmp, err := os.CreateTemp(filepath.Dir(path), ".chart-*.png")
	if err != nil {
		return err
	}
	tmpName := tmp.Name()
	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmpName)
		return err
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmpName)
		return err
	}
	if err := os.Rename(tmpName, path); err != nil {
		_ = os.Remove(tmpName)
		return err
	}
	return nil
}
