package testutil

import (
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"testing"
)

// AssertSymlink checks that link is a symlink whose target is exactly target.
func AssertSymlink(t *testing.T, link, target string) {
	t.Helper()

	info, err := os.Lstat(link)
	if err != nil {
		t.Errorf("expected symlink at %s: %v", link, err)
		return
	}
	if info.Mode()&os.ModeSymlink == 0 {
		t.Errorf("expected %s to be a symlink, got mode %v", link, info.Mode())
		return
	}
	got, err := os.Readlink(link)
	if err != nil {
		t.Errorf("failed to read symlink %s: %v", link, err)
		return
	}
	if got != target {
		t.Errorf("symlink %s points to %q, want %q", link, got, target)
	}
}

// AssertRegularFile checks that path is a regular file with the given content.
func AssertRegularFile(t *testing.T, path, content string) {
	t.Helper()

	info, err := os.Lstat(path)
	if err != nil {
		t.Errorf("expected file at %s: %v", path, err)
		return
	}
	if !info.Mode().IsRegular() {
		t.Errorf("expected %s to be a regular file, got mode %v", path, info.Mode())
		return
	}
	got, err := os.ReadFile(path)
	if err != nil {
		t.Errorf("failed to read %s: %v", path, err)
		return
	}
	if string(got) != content {
		t.Errorf("%s content = %q, want %q", path, string(got), content)
	}
}

// AssertNotExists checks that nothing, not even a dangling symlink, is at path.
func AssertNotExists(t *testing.T, path string) {
	t.Helper()

	if _, err := os.Lstat(path); err == nil {
		t.Errorf("expected %s to not exist", path)
	} else if !os.IsNotExist(err) {
		t.Errorf("unexpected error checking %s: %v", path, err)
	}
}

// ListTree returns every entry below root as a slash-separated relative
// path, with "/" appended to directories and " -> target" to symlinks.
func ListTree(t *testing.T, root string) []string {
	t.Helper()

	var out []string
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if path == root {
			return nil
		}
		rel, err := filepath.Rel(root, path)
		if err != nil {
			return err
		}
		rel = filepath.ToSlash(rel)

		switch {
		case d.Type()&fs.ModeSymlink != 0:
			target, err := os.Readlink(path)
			if err != nil {
				return err
			}
			out = append(out, rel+" -> "+target)
		case d.IsDir():
			out = append(out, rel+"/")
		default:
			out = append(out, rel)
		}
		return nil
	})
	if err != nil {
		t.Fatalf("failed to list %s: %v", root, err)
	}

	sort.Strings(out)
	return out
}
