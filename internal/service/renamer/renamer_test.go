package renamer

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/rocky-star/audiveris-packager/internal/domain/target"
)

// TestNewNameDeterminism pins the exact canonical filename for fixed inputs.
func TestNewNameDeterminism(t *testing.T) {
	t.Parallel()

	facts := &target.HostFacts{
		OS:           target.Linux,
		DistroName:   "ubuntu",
		Architecture: "x86_64",
	}

	got := NewName("Audiveris", "5.4", facts, "", ".deb")
	require.Equal(t, "Audiveris-5.4-ubuntu-x86_64.deb", got)
}

// TestNewNameWithOption checks the option suffix lands between the OS token
// and the architecture.
func TestNewNameWithOption(t *testing.T) {
	t.Parallel()

	facts := &target.HostFacts{OS: target.Windows, Architecture: "x86_64"}

	got := NewName("Audiveris", "5.4", facts, "Console", ".msi")
	require.Equal(t, "Audiveris-5.4-windowsConsole-x86_64.msi", got)
}

// TestRename verifies every artifact in the destination is renamed and
// directories are left untouched.
func TestRename(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	facts := &target.HostFacts{OS: target.Linux, DistroName: "ubuntu", Architecture: "x86_64"}

	require.NoError(t, os.WriteFile(filepath.Join(dir, "installer.deb"), []byte("deb"), 0o644))
	require.NoError(t, os.Mkdir(filepath.Join(dir, "scratch"), 0o755))

	outcomes, err := Rename(context.Background(), dir, "Audiveris", "5.4", facts, "")
	require.NoError(t, err)
	require.Len(t, outcomes, 1)
	require.NoError(t, outcomes[0].Err)
	require.Equal(t, "installer.deb", outcomes[0].OldName)
	require.Equal(t, "Audiveris-5.4-ubuntu-x86_64.deb", outcomes[0].NewName)

	_, err = os.Stat(filepath.Join(dir, "Audiveris-5.4-ubuntu-x86_64.deb"))
	require.NoError(t, err)

	_, err = os.Stat(filepath.Join(dir, "scratch"))
	require.NoError(t, err)
}

// TestRenameBestEffort ensures a collision on one artifact is recorded in its
// outcome while the remaining artifacts are still renamed.
func TestRenameBestEffort(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	facts := &target.HostFacts{OS: target.Linux, DistroName: "ubuntu", Architecture: "x86_64"}

	// Two .deb artifacts collide on the same canonical name; the .rpm is fine.
	require.NoError(t, os.WriteFile(filepath.Join(dir, "a.deb"), []byte("a"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "b.deb"), []byte("b"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "c.rpm"), []byte("c"), 0o644))

	outcomes, err := Rename(context.Background(), dir, "Audiveris", "5.4", facts, "")
	require.NoError(t, err)
	require.Len(t, outcomes, 3)

	var failed, renamed int

	for _, outcome := range outcomes {
		if outcome.Err != nil {
			failed++
			require.ErrorIs(t, outcome.Err, os.ErrExist)
		} else {
			renamed++
		}
	}

	require.Equal(t, 1, failed)
	require.Equal(t, 2, renamed)

	_, err = os.Stat(filepath.Join(dir, "Audiveris-5.4-ubuntu-x86_64.deb"))
	require.NoError(t, err)

	_, err = os.Stat(filepath.Join(dir, "Audiveris-5.4-ubuntu-x86_64.rpm"))
	require.NoError(t, err)
}
