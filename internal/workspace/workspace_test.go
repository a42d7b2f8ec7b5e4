package workspace

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"git.home.luguber.info/inful/avtag/internal/foundation/errors"
)

func TestManager_Lifecycle(t *testing.T) {
	base := t.TempDir()
	mgr := NewManager(base)

	require.Empty(t, mgr.GetPath())
	require.NoError(t, mgr.Create())

	wsPath := mgr.GetPath()
	require.NotEmpty(t, wsPath)
	require.True(t, strings.HasPrefix(filepath.Base(wsPath), "avtag-"), wsPath)
	require.DirExists(t, wsPath)

	// second Create keeps the same directory
	require.NoError(t, mgr.Create())
	require.Equal(t, wsPath, mgr.GetPath())

	file, err := mgr.File("bin_list")
	require.NoError(t, err)
	require.Equal(t, filepath.Join(wsPath, "bin_list"), file)
	require.NoError(t, os.WriteFile(file, []byte("x"), 0o600))

	require.NoError(t, mgr.Cleanup())
	require.NoDirExists(t, wsPath)
	require.Empty(t, mgr.GetPath())
	require.NoError(t, mgr.Cleanup())
}

func TestManager_SeparateRunsDoNotShare(t *testing.T) {
	base := t.TempDir()
	a := NewManager(base)
	b := NewManager(base)
	require.NoError(t, a.Create())
	require.NoError(t, b.Create())
	t.Cleanup(func() {
		_ = a.Cleanup()
		_ = b.Cleanup()
	})
	require.NotEqual(t, a.GetPath(), b.GetPath())
}

func TestManager_NotCreated(t *testing.T) {
	mgr := NewManager(t.TempDir())

	_, err := mgr.File("bin_list")
	require.Error(t, err)
}

func TestManager_CreateFailsUnderFile(t *testing.T) {
	base := filepath.Join(t.TempDir(), "not-a-dir")
	require.NoError(t, os.WriteFile(base, []byte("x"), 0o600))

	err := NewManager(base).Create()
	require.Error(t, err)
	require.True(t, errors.HasCategory(err, errors.CategoryFileSystem))
	require.Equal(t, 11, errors.NewCLIErrorAdapter(false, nil).ExitCodeFor(err))
}

func TestManager_DefaultBase(t *testing.T) {
	mgr := NewManager("")
	require.Equal(t, os.TempDir(), mgr.baseDir)
}
