package splat

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/arthur-debert/sdksplat/pkg/errors"
	"github.com/arthur-debert/sdksplat/pkg/filesystem"
	"github.com/arthur-debert/sdksplat/pkg/filetree"
	"github.com/arthur-debert/sdksplat/pkg/testutil"
	"github.com/arthur-debert/sdksplat/pkg/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPrepare(t *testing.T) {
	out := t.TempDir()
	testutil.StageFiles(t, out, map[string]string{
		"crt/include/old.h": "old",
		"sdk/lib/old.lib":   "old",
		"keep.txt":          "keep",
	})

	roots, err := Prepare(filesystem.NewOS(), Config{Output: out}, "/staging")
	require.NoError(t, err)

	assert.Equal(t, Roots{
		Crt: filepath.Join(out, "crt"),
		Sdk: filepath.Join(out, "sdk"),
		Src: "/staging",
	}, roots)
	assert.Equal(t, []string{"crt/", "keep.txt", "sdk/"}, testutil.ListTree(t, out))
}

func TestPrepareCreatesOutput(t *testing.T) {
	out := filepath.Join(t.TempDir(), "nested", "out")

	_, err := Prepare(filesystem.NewOS(), Config{Output: out}, "/staging")
	require.NoError(t, err)
	assert.Equal(t, []string{"crt/", "sdk/"}, testutil.ListTree(t, out))
}

func TestPrepareReplacesFileRoot(t *testing.T) {
	out := t.TempDir()
	testutil.StageFiles(t, out, map[string]string{"sdk": "not a directory"})

	_, err := Prepare(filesystem.NewOS(), Config{Output: out}, "/staging")
	require.NoError(t, err)

	info, err := os.Stat(filepath.Join(out, "sdk"))
	require.NoError(t, err)
	assert.True(t, info.IsDir())
}

func TestPrepareFailsOnFileOutput(t *testing.T) {
	out := filepath.Join(t.TempDir(), "out")
	require.NoError(t, os.WriteFile(out, []byte("file"), 0644))

	_, err := Prepare(filesystem.NewOS(), Config{Output: out}, "/staging")
	require.Error(t, err)
	assert.True(t, errors.IsErrorCode(err, errors.ErrSetup))
}

func TestInvalidateStaging(t *testing.T) {
	staging := t.TempDir()
	testutil.StagePayload(t, staging, "crt-headers", map[string]string{"include/a.h": "a"})
	roots := Roots{Src: staging}
	payload := types.PayloadDescriptor{Filename: "crt-headers", Kind: types.KindCrtHeaders}
	fs := filesystem.NewOS()

	InvalidateStaging(fs, roots, payload)
	testutil.AssertNotExists(t, filepath.Join(staging, "crt-headers", filetree.MarkerFile))
	testutil.AssertRegularFile(t, filepath.Join(staging, "crt-headers", "include", "a.h"), "a")

	// A second call finds nothing to remove.
	InvalidateStaging(fs, roots, payload)
}
