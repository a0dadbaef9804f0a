package pipeline

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"

	"github.com/mitchellh/go-ps"

	"github.com/rocky-star/audiveris-packager/internal/logger"
)

// errPackagerRunning indicates another packaging run is already in progress.
// The destination tree is single-writer: concurrent runs would race on file
// creation and the rename step.
var errPackagerRunning = errors.New("another packager run is already in progress")

// commNameLimit is the length the Linux kernel truncates process names to in
// the comm field, which is what the process table reports for each process.
const commNameLimit = 15

// isAnotherPackagerRunning scans the process table for a second live instance
// of this executable. Scan failures are logged and treated as "not running"
// rather than blocking the pipeline.
func isAnotherPackagerRunning(ctx context.Context) bool {
	executable, err := os.Executable()
	if err != nil {
		logger.Infof(ctx, "Unable to resolve own executable: %v", err)
		return false
	}

	processes, err := ps.Processes()
	if err != nil {
		logger.Infof(ctx, "Unable to list processes: %v", err)
		return false
	}

	selfName := filepath.Base(executable)
	selfPID := os.Getpid()

	for _, process := range processes {
		if process.Pid() == selfPID {
			continue
		}

		if matchesExecutable(selfName, process.Executable()) {
			logger.WarnKV(ctx, "Found another live packager process", "pid", process.Pid())
			return true
		}
	}

	return false
}

// matchesExecutable reports whether a process-table name refers to our
// executable. On Linux the table carries the kernel comm field, which
// truncates names to 15 characters, so a reported name of exactly that
// length is matched as a prefix of the full name.
func matchesExecutable(selfName, reported string) bool {
	if reported == selfName {
		return true
	}

	return len(reported) == commNameLimit && strings.HasPrefix(selfName, reported)
}
