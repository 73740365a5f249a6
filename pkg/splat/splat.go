package splat

import (
	"path/filepath"
	"strings"
	"sync/atomic"

	"github.com/arthur-debert/sdksplat/pkg/errors"
	"github.com/arthur-debert/sdksplat/pkg/filetree"
	"github.com/arthur-debert/sdksplat/pkg/logging"
	"github.com/arthur-debert/sdksplat/pkg/registry"
	"github.com/arthur-debert/sdksplat/pkg/types"
	"github.com/rs/zerolog"
	"github.com/sourcegraph/conc/pool"
)

// Item is one staged payload ready to be placed.
type Item struct {
	Payload  types.PayloadDescriptor
	Tree     *filetree.Tree
	Progress types.Progress
}

// Stats summarizes what a Splatter did.
type Stats struct {
	Files    uint64 `json:"files"`
	Skipped  uint64 `json:"skipped"`
	Symlinks uint64 `json:"symlinks"`
	Bytes    uint64 `json:"bytes"`
}

type counters struct {
	files    atomic.Uint64
	skipped  atomic.Uint64
	symlinks atomic.Uint64
	bytes    atomic.Uint64
}

// Splatter places payloads for one run. Splat may be called concurrently
// for different payloads; Finalize must be called after every Splat call
// has returned.
type Splatter struct {
	fs       types.FS
	cfg      Config
	roots    Roots
	req      Request
	sdkFiles *registry.Registry
	stats    counters
	logger   zerolog.Logger
}

// New creates a Splatter writing into roots.
func New(fs types.FS, cfg Config, roots Roots, arches types.ArchSet, variants types.VariantSet) *Splatter {
	return &Splatter{
		fs:    fs,
		cfg:   cfg,
		roots: roots,
		req: Request{
			Arches:                 arches,
			Variants:               variants,
			PreserveMSArchNotation: cfg.PreserveMSArchNotation,
		},
		sdkFiles: registry.New(),
		logger:   logging.GetLogger("splat"),
	}
}

// Stats returns the counters accumulated so far.
func (s *Splatter) Stats() Stats {
	return Stats{
		Files:    s.stats.files.Load(),
		Skipped:  s.stats.skipped.Load(),
		Symlinks: s.stats.symlinks.Load(),
		Bytes:    s.stats.bytes.Load(),
	}
}

// Splat places a single payload. Mappings are placed in parallel; a failed
// mapping does not stop the others and all failures are returned joined.
func (s *Splatter) Splat(item Item) error {
	if !s.cfg.Copy {
		InvalidateStaging(s.fs, s.roots, item.Payload)
	}

	progress := item.Progress
	mappings, err := Resolve(s.roots, item.Payload, item.Tree, s.req)
	if err != nil {
		progress.Reset()
		progress.Finish("failed")
		return err
	}

	var total uint64
	for _, m := range mappings {
		_, bytes := m.Tree.Stats()
		total += bytes
	}
	progress.Reset()
	progress.SetLength(total)
	progress.SetMessage("splatting")

	p := pool.New()
	if s.cfg.Concurrency > 0 {
		p = p.WithMaxGoroutines(s.cfg.Concurrency)
	}
	ep := p.WithErrors()
	for _, m := range mappings {
		m := m
		ep.Go(func() error {
			return s.place(m, progress)
		})
	}
	if err = ep.Wait(); err != nil {
		progress.Finish("failed")
		return err
	}

	progress.Finish("splatted")
	return nil
}

type frame struct {
	src string
	dst string
	dir filetree.Dir
}

// place walks one mapping depth-first with an explicit stack.
func (s *Splatter) place(m Mapping, progress types.Progress) error {
	policy := policyFor(m.Kind)
	logger := s.logger.With().
		Str("kind", m.Kind.String()).
		Str("target", m.Target).
		Logger()

	stack := []frame{{src: m.Src, dst: m.Target, dir: m.Tree}}

	for len(stack) > 0 {
		f := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		if err := s.fs.MkdirAll(f.dst, 0755); err != nil {
			return errors.IOf(err, f.src, f.dst, "unable to create %s", f.dst)
		}

		for _, file := range f.dir.Files() {
			// Skipped files still count so progress reflects what was surveyed.
			progress.Inc(file.Size)
			s.stats.bytes.Add(file.Size)

			if err := s.placeFile(f, file.Name, policy, logger); err != nil {
				return err
			}
		}

		if prunesSubdirs(m, s.req.Variants) {
			var pruned uint64
			for _, e := range f.dir.Dirs() {
				_, bytes := e.Dir.Stats()
				pruned += bytes
			}
			logger.Debug().Str("dir", f.src).Msg("skipping CRT store subdirs")
			progress.Inc(pruned)
			s.stats.bytes.Add(pruned)
			continue
		}

		for _, e := range f.dir.Dirs() {
			stack = append(stack, frame{
				src: filepath.Join(f.src, e.Name),
				dst: filepath.Join(f.dst, e.Name),
				dir: e.Dir,
			})
		}
	}

	return nil
}

func (s *Splatter) placeFile(f frame, fname string, policy kindPolicy, logger zerolog.Logger) error {
	if s.cfg.skipFile(policy, fname) {
		logger.Debug().Str("file", fname).Msg("skipping debug artifact")
		s.stats.skipped.Add(1)
		return nil
	}

	dst := filepath.Join(f.dst, fname)

	// There is a massive amount of duplication between the desktop and
	// store headers; the first writer of a name wins.
	var ticket *registry.Ticket
	if policy.dedup {
		t, won := s.sdkFiles.Claim(fname, dst)
		if !won {
			logger.Trace().Str("file", fname).Msg("skipping duplicate header")
			s.stats.skipped.Add(1)
			return nil
		}
		ticket = t
	}

	repair := policy.repair
	if s.cfg.DisableSymlinks {
		repair = repairNone
	}

	written := dst
	lowered := repair == repairLowercase && hasUpperASCII(fname)
	if lowered {
		written = filepath.Join(f.dst, strings.ToLower(fname))
	}

	if err := s.transfer(filepath.Join(f.src, fname), written); err != nil {
		if ticket != nil {
			ticket.Release()
		}
		return err
	}
	if ticket != nil {
		ticket.Confirm()
	}
	s.stats.files.Add(1)

	switch repair {
	case repairAngryLib:
		if angry, ok := angryLibName(fname); ok {
			return s.symlink(fname, filepath.Join(f.dst, angry))
		}
	case repairLowercase:
		if lowered {
			return s.symlink(filepath.Base(written), dst)
		}
	}
	return nil
}

func (s *Splatter) transfer(src, dst string) error {
	if s.cfg.Copy {
		if err := s.fs.CopyFile(src, dst); err != nil {
			return errors.IOf(err, src, dst, "failed to copy %s to %s", src, dst)
		}
		return nil
	}
	if err := s.fs.Rename(src, dst); err != nil {
		return errors.IOf(err, src, dst, "failed to move %s to %s", src, dst)
	}
	return nil
}

// symlink creates link pointing at the relative target.
func (s *Splatter) symlink(target, link string) error {
	if err := s.fs.Symlink(target, link); err != nil {
		return errors.IOf(err, target, link, "unable to symlink from %s to %s", link, target)
	}
	s.stats.symlinks.Add(1)
	return nil
}
