package core

import (
	"path/filepath"
	"time"

	"github.com/sourcegraph/conc/pool"
	"github.com/spf13/afero"

	"github.com/arthur-debert/sdksplat/pkg/errors"
	"github.com/arthur-debert/sdksplat/pkg/filesystem"
	"github.com/arthur-debert/sdksplat/pkg/filetree"
	"github.com/arthur-debert/sdksplat/pkg/logging"
	"github.com/arthur-debert/sdksplat/pkg/progress"
	"github.com/arthur-debert/sdksplat/pkg/splat"
	"github.com/arthur-debert/sdksplat/pkg/types"
)

// FinalizeName is the progress name used for the include repair pass.
const FinalizeName = "sdk headers"

// RunOptions contains everything a run needs.
type RunOptions struct {
	Config   splat.Config
	Staging  string
	Payloads []types.PayloadDescriptor
	Arches   types.ArchSet
	Variants types.VariantSet

	// Progress hands out one sink per payload and one for Finalize.
	Progress progress.Factory
	// FileSystem receives every mutation. Defaults to the OS.
	FileSystem types.FS
	// StagingFs is scanned to snapshot payloads. Defaults to the OS.
	StagingFs afero.Fs
}

// PayloadResult is the outcome for one payload.
type PayloadResult struct {
	Payload types.PayloadDescriptor
	Err     error
}

// Result summarizes a run.
type Result struct {
	Roots     splat.Roots
	Payloads  []PayloadResult
	Finalized bool
	Stats     splat.Stats
	Duration  time.Duration
}

// Failed counts payloads that did not place cleanly.
func (r *Result) Failed() int {
	n := 0
	for _, p := range r.Payloads {
		if p.Err != nil {
			n++
		}
	}
	return n
}

// Run places every payload. The returned Result is nil only when the
// output roots could not be prepared; otherwise it is returned alongside
// the joined payload and finalize errors.
func Run(opts RunOptions) (*Result, error) {
	logger := logging.GetLogger("core.run")
	start := time.Now()

	fs := opts.FileSystem
	if fs == nil {
		fs = filesystem.NewOS()
	}
	stagingFs := opts.StagingFs
	if stagingFs == nil {
		stagingFs = afero.NewOsFs()
	}
	factory := opts.Progress
	if factory == nil {
		factory = progress.NopFactory
	}

	logger.Info().
		Str("output", opts.Config.Output).
		Str("staging", opts.Staging).
		Int("payloads", len(opts.Payloads)).
		Bool("copy", opts.Config.Copy).
		Msg("Starting splat")

	roots, err := splat.Prepare(fs, opts.Config, opts.Staging)
	if err != nil {
		logger.Error().Err(err).Msg("Failed to prepare output roots")
		return nil, err
	}

	splatter := splat.New(fs, opts.Config, roots, opts.Arches, opts.Variants)
	result := &Result{
		Roots:    roots,
		Payloads: make([]PayloadResult, len(opts.Payloads)),
	}

	p := pool.New()
	if opts.Config.Concurrency > 0 {
		p = p.WithMaxGoroutines(opts.Config.Concurrency)
	}
	ep := p.WithErrors()
	for i, payload := range opts.Payloads {
		i, payload := i, payload
		result.Payloads[i].Payload = payload
		ep.Go(func() error {
			err := splatPayload(splatter, stagingFs, roots, payload, factory.New(payload.Filename))
			result.Payloads[i].Err = err
			if err != nil {
				logger.Error().
					Err(err).
					Str("payload", payload.Filename).
					Str("kind", payload.Kind.String()).
					Msg("Failed to splat payload")
			}
			return err
		})
	}
	runErr := ep.Wait()

	if shouldFinalize(opts.Config, result.Payloads) {
		if err := splatter.Finalize(factory.New(FinalizeName)); err != nil {
			logger.Error().Err(err).Msg("Failed to repair SDK includes")
			runErr = errors.Join(runErr, err)
		} else {
			result.Finalized = true
		}
	}

	result.Stats = splatter.Stats()
	result.Duration = time.Since(start)

	logger.Info().
		Uint64("files", result.Stats.Files).
		Uint64("skipped", result.Stats.Skipped).
		Uint64("symlinks", result.Stats.Symlinks).
		Int("failed", result.Failed()).
		Dur("duration", result.Duration).
		Msg("Splat completed")

	return result, runErr
}

func splatPayload(s *splat.Splatter, stagingFs afero.Fs, roots splat.Roots, payload types.PayloadDescriptor, prog types.Progress) error {
	tree, err := filetree.Scan(stagingFs, filepath.Join(roots.Src, payload.Filename))
	if err != nil {
		return err
	}
	return s.Splat(splat.Item{Payload: payload, Tree: tree, Progress: prog})
}

// shouldFinalize reports whether any SDK header payload was placed.
func shouldFinalize(cfg splat.Config, payloads []PayloadResult) bool {
	if cfg.DisableSymlinks {
		return false
	}
	for _, p := range payloads {
		if p.Payload.Kind == types.KindSdkHeaders && p.Err == nil {
			return true
		}
	}
	return false
}
