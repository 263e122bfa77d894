//go:build !windows

package corpus

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/google/renameio/v2"
)

// WriteFileAtomic writes a corpus file through a temp file that is synced
// and renamed over path, so readers never see a partial document.
func WriteFileAtomic(path string, write func(io.Writer) error) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("create corpus directory: %w", err)
	}

	pendingFile, err := renameio.NewPendingFile(path, renameio.WithPermissions(0644))
	if err != nil {
		return fmt.Errorf("create pending file: %w", err)
	}
	// No-op once the file has been committed
	defer func() { _ = pendingFile.Cleanup() }()

	if err := write(pendingFile); err != nil {
		return fmt.Errorf("write %s: %w", filepath.Base(path), err)
	}

	if err := pendingFile.CloseAtomicallyReplace(); err != nil {
		return fmt.Errorf("atomically replace %s: %w", filepath.Base(path), err)
	}
	return nil
}
