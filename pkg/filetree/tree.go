package filetree

import (
	"path/filepath"
	"sort"
	"strings"
)

// File is a single file entry within a directory.
type File struct {
	Name string
	Size uint64
}

type child struct {
	name string
	node int
}

type node struct {
	files []File
	dirs  []child
	index map[string]int
}

// Tree is an immutable directory snapshot. Node 0 is the root.
type Tree struct {
	nodes []node
}

// Root returns a handle to the root directory.
func (t *Tree) Root() Dir {
	return Dir{tree: t, node: 0}
}

// Len returns the number of directories in the tree.
func (t *Tree) Len() int {
	return len(t.nodes)
}

// Dir is a handle to one directory of a Tree.
type Dir struct {
	tree *Tree
	node int
}

// Entry pairs a subdirectory name with its handle.
type Entry struct {
	Name string
	Dir  Dir
}

// Valid reports whether d refers to a directory.
func (d Dir) Valid() bool {
	return d.tree != nil && d.node >= 0 && d.node < len(d.tree.nodes)
}

// Files returns the file entries of d. The slice must not be modified.
func (d Dir) Files() []File {
	return d.tree.nodes[d.node].files
}

// Dirs returns the subdirectories of d in name order.
func (d Dir) Dirs() []Entry {
	n := d.tree.nodes[d.node]
	out := make([]Entry, len(n.dirs))
	for i, c := range n.dirs {
		out[i] = Entry{Name: c.name, Dir: Dir{tree: d.tree, node: c.node}}
	}
	return out
}

// Child returns the named immediate subdirectory.
func (d Dir) Child(name string) (Dir, bool) {
	idx, ok := d.tree.nodes[d.node].index[name]
	if !ok {
		return Dir{}, false
	}
	return Dir{tree: d.tree, node: idx}, true
}

// Subtree navigates a relative slash- or OS-separated path below d. An empty
// path or "." returns d itself.
func (d Dir) Subtree(rel string) (Dir, bool) {
	rel = filepath.ToSlash(filepath.Clean(rel))
	if rel == "." || rel == "" {
		return d, true
	}

	current := d
	for _, part := range strings.Split(rel, "/") {
		if part == "" {
			continue
		}
		next, ok := current.Child(part)
		if !ok {
			return Dir{}, false
		}
		current = next
	}
	return current, true
}

// Stats returns the number of files and total bytes at or below d.
func (d Dir) Stats() (count int, bytes uint64) {
	stack := []int{d.node}
	for len(stack) > 0 {
		idx := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		n := d.tree.nodes[idx]
		count += len(n.files)
		for _, f := range n.files {
			bytes += f.Size
		}
		for _, c := range n.dirs {
			stack = append(stack, c.node)
		}
	}
	return count, bytes
}

// Builder assembles a Tree. It is not safe for concurrent use.
type Builder struct {
	nodes []node
}

// NewBuilder returns a builder holding an empty root directory.
func NewBuilder() *Builder {
	return &Builder{nodes: []node{{index: map[string]int{}}}}
}

// Root is the index of the root directory.
func (b *Builder) Root() int {
	return 0
}

// AddFile appends a file entry to directory dir.
func (b *Builder) AddFile(dir int, name string, size uint64) {
	b.nodes[dir].files = append(b.nodes[dir].files, File{Name: name, Size: size})
}

// AddDir returns the index of the named child of parent, creating it if needed.
func (b *Builder) AddDir(parent int, name string) int {
	if idx, ok := b.nodes[parent].index[name]; ok {
		return idx
	}
	idx := len(b.nodes)
	b.nodes = append(b.nodes, node{index: map[string]int{}})
	b.nodes[parent].index[name] = idx
	b.nodes[parent].dirs = append(b.nodes[parent].dirs, child{name: name, node: idx})
	return idx
}

// AddPath adds a file at a slash-separated relative path, creating the
// intermediate directories.
func (b *Builder) AddPath(rel string, size uint64) {
	parts := strings.Split(filepath.ToSlash(rel), "/")
	dir := b.Root()
	for _, part := range parts[:len(parts)-1] {
		if part == "" || part == "." {
			continue
		}
		dir = b.AddDir(dir, part)
	}
	b.AddFile(dir, parts[len(parts)-1], size)
}

// Build freezes the builder into a Tree. The builder must not be used afterwards.
func (b *Builder) Build() *Tree {
	for i := range b.nodes {
		n := &b.nodes[i]
		sort.Slice(n.files, func(x, y int) bool { return n.files[x].Name < n.files[y].Name })
		sort.Slice(n.dirs, func(x, y int) bool { return n.dirs[x].name < n.dirs[y].name })
	}
	t := &Tree{nodes: b.nodes}
	b.nodes = nil
	return t
}
