package filetree

import (
	"path/filepath"

	"github.com/arthur-debert/sdksplat/pkg/errors"
	"github.com/spf13/afero"
)

// MarkerFile is written by the unpack stage next to a staged payload's
// contents and is never part of the snapshot.
const MarkerFile = ".unpack"

// Scan snapshots the directory tree rooted at root. Symlinks and other
// non-regular entries are ignored, as is the top-level unpack marker.
func Scan(fsys afero.Fs, root string) (*Tree, error) {
	type frame struct {
		path string
		node int
	}

	info, err := fsys.Stat(root)
	if err != nil {
		return nil, errors.Wrapf(err, errors.ErrNotFound, "unable to stat staging directory %s", root)
	}
	if !info.IsDir() {
		return nil, errors.Newf(errors.ErrInvalidInput, "%s is not a directory", root)
	}

	b := NewBuilder()
	stack := []frame{{path: root, node: b.Root()}}

	for len(stack) > 0 {
		f := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		entries, err := afero.ReadDir(fsys, f.path)
		if err != nil {
			return nil, errors.Wrapf(err, errors.ErrIO, "unable to read directory %s", f.path)
		}

		for _, entry := range entries {
			switch {
			case entry.IsDir():
				stack = append(stack, frame{
					path: filepath.Join(f.path, entry.Name()),
					node: b.AddDir(f.node, entry.Name()),
				})
			case entry.Mode().IsRegular():
				if f.node == b.Root() && entry.Name() == MarkerFile {
					continue
				}
				b.AddFile(f.node, entry.Name(), uint64(entry.Size()))
			}
		}
	}

	return b.Build(), nil
}
