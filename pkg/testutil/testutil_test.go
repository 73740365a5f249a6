package testutil

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arthur-debert/sdksplat/pkg/filetree"
)

func TestStagePayload(t *testing.T) {
	staging := t.TempDir()

	tree := StagePayload(t, staging, "crt.headers", map[string]string{
		"include/vcruntime.h": "vcruntime",
		"include/sub/x.h":     "",
	})
	require.NotNil(t, tree)

	dir := filepath.Join(staging, "crt.headers")
	AssertRegularFile(t, filepath.Join(dir, "include", "vcruntime.h"), "vcruntime")
	AssertRegularFile(t, filepath.Join(dir, filetree.MarkerFile), "")
}

func TestListTree(t *testing.T) {
	root := t.TempDir()
	StageFiles(t, root, map[string]string{
		"a/b.txt": "b",
		"c.txt":   "c",
	})
	require.NoError(t, os.Symlink("c.txt", filepath.Join(root, "C.txt")))

	assert.Equal(t, []string{
		"C.txt -> c.txt",
		"a/",
		"a/b.txt",
		"c.txt",
	}, ListTree(t, root))

	AssertSymlink(t, filepath.Join(root, "C.txt"), "c.txt")
	AssertNotExists(t, filepath.Join(root, "missing"))
}
