package marker

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/rocky-star/audiveris-packager/internal/config"
)

// Suffix is appended to a stage's output directory path to form its
// completion sentinel. The sentinel lives beside the directory, never inside
// it: stage outputs are handed verbatim to the packaging tool, which would
// otherwise bundle the sentinel into the installed application.
const Suffix = ".complete"

// Repository defines persistence operations for stage completion markers.
type Repository interface {
	Completed(ctx context.Context, dir string) (bool, error)
	MarkCompleted(ctx context.Context, dir string) error
}

// FileRepository stores completion markers as sentinel files on disk.
// The marker is written to a temporary name first and renamed into place so a
// crash mid-write can never leave a marker for an unfinished stage.
type FileRepository struct {
	// mu protects concurrent marker writes within one run.
	mu sync.Mutex
}

// NewFileRepository creates a marker repository.
func NewFileRepository() *FileRepository {
	return &FileRepository{}
}

// Path returns the sentinel location for a stage output directory.
func Path(dir string) string {
	return filepath.Clean(dir) + Suffix
}

// Completed reports whether the directory completed a previous run: its
// sentinel exists and the directory itself is still there.
func (r *FileRepository) Completed(_ context.Context, dir string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, err := os.Stat(Path(dir)); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return false, nil
		}

		return false, fmt.Errorf("read completion marker: %w", err)
	}

	// A sentinel without its directory is debris from a manual cleanup.
	if _, err := os.Stat(filepath.Clean(dir)); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return false, nil
		}

		return false, fmt.Errorf("inspect completed directory: %w", err)
	}

	return true, nil
}

// MarkCompleted atomically writes the completion marker for the directory.
func (r *FileRepository) MarkCompleted(_ context.Context, dir string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	contents := []byte(time.Now().UTC().Format(time.RFC3339) + "\n")

	path := Path(dir)
	tmp := path + ".tmp"

	if err := os.WriteFile(tmp, contents, config.DefaultFilePermissions); err != nil {
		return fmt.Errorf("write completion marker: %w", err)
	}

	if err := os.Rename(tmp, path); err != nil {
		return fmt.Errorf("commit completion marker: %w", err)
	}

	return nil
}
