package renamer

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/rocky-star/audiveris-packager/internal/domain/target"
	"github.com/rocky-star/audiveris-packager/internal/logger"
)

// Outcome records the result of renaming a single artifact.
type Outcome struct {
	// OldName is the filename the packaging tool produced.
	OldName string
	// NewName is the canonical filename the artifact was renamed to.
	NewName string
	// Err is set when this artifact's rename failed; the others still proceed.
	Err error
}

// NewName computes the canonical artifact filename:
// {name}-{version}-{osname}{option}-{architecture}{extension}.
// The osname token is the distribution name on Linux and the OS family short
// form elsewhere; option is the optional caller-supplied suffix.
func NewName(name, version string, facts *target.HostFacts, option, extension string) string {
	return fmt.Sprintf("%s-%s-%s%s-%s%s", name, version, facts.OSName(), option, facts.Architecture, extension)
}

// Rename gives every artifact in the destination directory its canonical
// name. The walk is non-recursive and best-effort: a failed rename is logged
// and recorded in its Outcome but never blocks the remaining files. Only a
// failure to read the directory itself is fatal.
func Rename(ctx context.Context, destDir, name, version string, facts *target.HostFacts, option string) ([]Outcome, error) {
	entries, err := os.ReadDir(destDir)
	if err != nil {
		return nil, fmt.Errorf("read destination directory: %w", err)
	}

	var outcomes []Outcome

	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}

		oldName := entry.Name()
		newName := NewName(name, version, facts, option, filepath.Ext(oldName))
		outcome := Outcome{OldName: oldName, NewName: newName}

		if renameErr := renameFile(destDir, oldName, newName); renameErr != nil {
			outcome.Err = renameErr

			logger.WarnKV(ctx, "Failed to rename artifact",
				"from", oldName,
				"to", newName,
				"error", renameErr)
		} else {
			logger.InfoKV(ctx, "Renamed artifact", "from", oldName, "to", newName)
		}

		outcomes = append(outcomes, outcome)
	}

	return outcomes, nil
}

// renameFile renames one artifact, refusing to overwrite an existing target.
// os.Rename silently replaces the target on POSIX systems, which would make a
// collision between two artifacts with the same extension unobservable.
func renameFile(dir, oldName, newName string) error {
	if oldName == newName {
		return nil
	}

	target := filepath.Join(dir, newName)
	if _, err := os.Lstat(target); err == nil {
		return fmt.Errorf("%s: %w", newName, os.ErrExist)
	}

	return os.Rename(filepath.Join(dir, oldName), target)
}
