package testutil

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/arthur-debert/sdksplat/pkg/filetree"
	"github.com/spf13/afero"
)

// StageFiles writes files (slash-separated relative path to content) below root.
func StageFiles(t *testing.T, root string, files map[string]string) {
	t.Helper()

	for rel, content := range files {
		path := filepath.Join(root, filepath.FromSlash(rel))
		if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
			t.Fatalf("failed to create directory for %s: %v", rel, err)
		}
		if err := os.WriteFile(path, []byte(content), 0644); err != nil {
			t.Fatalf("failed to write %s: %v", rel, err)
		}
	}
}

// StagePayload writes files into <staging>/<payload>, adds the unpack
// marker and returns the snapshot of the payload directory.
func StagePayload(t *testing.T, staging, payload string, files map[string]string) *filetree.Tree {
	t.Helper()

	dir := filepath.Join(staging, payload)
	StageFiles(t, dir, files)
	StageFiles(t, dir, map[string]string{filetree.MarkerFile: ""})
	return SnapshotDir(t, dir)
}

// SnapshotDir scans dir on the OS filesystem.
func SnapshotDir(t *testing.T, dir string) *filetree.Tree {
	t.Helper()

	tree, err := filetree.Scan(afero.NewOsFs(), dir)
	if err != nil {
		t.Fatalf("failed to scan %s: %v", dir, err)
	}
	return tree
}
