package registry

import (
	"sort"
	"sync"

	"github.com/cespare/xxhash/v2"
)

type record struct {
	folded    string
	path      string
	confirmed bool
	done      chan struct{}
}

// Registry maps case-folded file names to the destination path of the
// file that was actually written for that name.
type Registry struct {
	mu      sync.Mutex
	hash    func(string) uint64
	buckets map[uint64][]*record
	count   int
	frozen  bool
}

// New creates an empty Registry.
func New() *Registry {
	return newWithHasher(xxhash.Sum64String)
}

func newWithHasher(hash func(string) uint64) *Registry {
	return &Registry{
		hash:    hash,
		buckets: make(map[uint64][]*record),
	}
}

// FoldName lowercases ASCII letters only, matching how vendor trees
// disagree on casing.
func FoldName(name string) string {
	for i := 0; i < len(name); i++ {
		if c := name[i]; c >= 'A' && c <= 'Z' {
			return foldFrom(name, i)
		}
	}
	return name
}

func foldFrom(name string, start int) string {
	b := []byte(name)
	for i := start; i < len(b); i++ {
		if c := b[i]; c >= 'A' && c <= 'Z' {
			b[i] = c + ('a' - 'A')
		}
	}
	return string(b)
}

// Key returns the registry key of name.
func Key(name string) uint64 {
	return xxhash.Sum64String(FoldName(name))
}

// Ticket is a pending claim. Its holder must call exactly one of
// Confirm, once the file is written, or Release, if writing failed.
type Ticket struct {
	r   *Registry
	key uint64
	rec *record
}

// Claim reserves path as the canonical destination for name unless a file
// with the same case-folded name was already written. It reports whether
// the caller won and must write the file. The check and the insert happen
// under one lock acquisition. While another caller holds a pending ticket
// for the name, Claim waits for it to be confirmed or released.
func (r *Registry) Claim(name, path string) (*Ticket, bool) {
	folded := FoldName(name)
	key := r.hash(folded)

	for {
		r.mu.Lock()
		if r.frozen {
			r.mu.Unlock()
			panic("registry: Claim called after Freeze")
		}

		var existing *record
		for _, rec := range r.buckets[key] {
			if rec.folded == folded {
				existing = rec
				break
			}
		}
		if existing == nil {
			rec := &record{folded: folded, path: path, done: make(chan struct{})}
			r.buckets[key] = append(r.buckets[key], rec)
			r.mu.Unlock()
			return &Ticket{r: r, key: key, rec: rec}, true
		}
		if existing.confirmed {
			r.mu.Unlock()
			return nil, false
		}

		done := existing.done
		r.mu.Unlock()
		<-done
	}
}

// Confirm marks the claimed file as written.
func (t *Ticket) Confirm() {
	r := t.r
	r.mu.Lock()
	defer r.mu.Unlock()

	if t.rec.confirmed {
		return
	}
	t.rec.confirmed = true
	r.count++
	close(t.rec.done)
}

// Release drops the claim so the next claimant of the name can win.
func (t *Ticket) Release() {
	r := t.r
	r.mu.Lock()
	defer r.mu.Unlock()

	if t.rec.confirmed {
		return
	}
	bucket := r.buckets[t.key]
	for i, rec := range bucket {
		if rec == t.rec {
			r.buckets[t.key] = append(bucket[:i:i], bucket[i+1:]...)
			close(rec.done)
			break
		}
	}
	if len(r.buckets[t.key]) == 0 {
		delete(r.buckets, t.key)
	}
}

// Count returns the number of confirmed names.
func (r *Registry) Count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.count
}

// Freeze ends the claiming phase and returns a read-only view holding the
// confirmed entries only. Claim panics afterwards. Freeze may be called
// more than once.
func (r *Registry) Freeze() *Snapshot {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.frozen = true
	buckets := make(map[uint64][]record, len(r.buckets))
	for key, bucket := range r.buckets {
		for _, rec := range bucket {
			if rec.confirmed {
				buckets[key] = append(buckets[key], record{folded: rec.folded, path: rec.path})
			}
		}
	}
	return &Snapshot{hash: r.hash, buckets: buckets, count: r.count}
}

// Snapshot is the frozen content of a Registry. It is safe for concurrent
// readers.
type Snapshot struct {
	hash    func(string) uint64
	buckets map[uint64][]record
	count   int
}

// Lookup returns the canonical path registered for the case-folded name.
func (s *Snapshot) Lookup(name string) (string, bool) {
	folded := FoldName(name)
	for _, rec := range s.buckets[s.hash(folded)] {
		if rec.folded == folded {
			return rec.path, true
		}
	}
	return "", false
}

// Paths returns every registered path in lexical order.
func (s *Snapshot) Paths() []string {
	paths := make([]string, 0, s.count)
	for _, bucket := range s.buckets {
		for _, rec := range bucket {
			paths = append(paths, rec.path)
		}
	}
	sort.Strings(paths)
	return paths
}

// Len returns the number of registered names.
func (s *Snapshot) Len() int {
	return s.count
}
