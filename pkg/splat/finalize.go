package splat

import (
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strings"
	"unicode/utf8"

	"github.com/arthur-debert/sdksplat/pkg/errors"
	"github.com/arthur-debert/sdksplat/pkg/logging"
	"github.com/arthur-debert/sdksplat/pkg/registry"
	"github.com/arthur-debert/sdksplat/pkg/types"
)

var includeRe = regexp.MustCompile(`#include\s+(?:"|<)([^">]+)(?:"|>)?`)

// Finalize makes the placed SDK headers internally consistent on
// case-sensitive filesystems. It freezes the header registry, so no Splat
// call may run concurrently with or after it.
func (s *Splatter) Finalize(progress types.Progress) error {
	files := s.sdkFiles.Freeze()
	if s.cfg.DisableSymlinks {
		s.logger.Debug().Msg("symlinks disabled, skipping include repair")
		return nil
	}

	links, err := finalize(s.fs, s.roots, files, progress)
	s.stats.symlinks.Add(links)
	return err
}

func finalize(fs types.FS, roots Roots, files *registry.Snapshot, progress types.Progress) (uint64, error) {
	logger := logging.GetLogger("splat.finalize")
	done := logging.LogOperationStart(logger, "finalize")
	defer done()

	paths := files.Paths()

	// Headers such as windows.h or psapi.h are included in lowercase from
	// outside the SDK even where the SDK itself never does so.
	includes := make(map[string]struct{})
	for _, p := range paths {
		if fname := filepath.Base(p); hasUpperASCII(fname) {
			includes[strings.ToLower(fname)] = struct{}{}
		}
	}

	progress.Reset()
	progress.SetLength(uint64(len(paths)))
	progress.SetMessage("scanning includes")

	for _, p := range paths {
		// Some headers are not UTF-8; only the captured names must be.
		contents, err := fs.ReadFile(p)
		if err != nil {
			return 0, errors.IOf(err, p, p, "unable to read %s", p)
		}

		for _, caps := range includeRe.FindAllSubmatch(contents, -1) {
			if !utf8.Valid(caps[1]) {
				return 0, errors.Newf(errors.ErrEncoding, "%s contained an include with non-utf8 characters", p).
					WithDetail("path", p)
			}

			name := string(caps[1])
			if i := strings.LastIndexByte(name, '/'); i >= 0 {
				name = name[i+1:]
			}
			includes[name] = struct{}{}
		}

		progress.Inc(1)
	}

	progress.Finish("scanned includes")

	names := make([]string, 0, len(includes))
	for name := range includes {
		names = append(names, name)
	}
	sort.Strings(names)

	var links uint64
	for _, include := range names {
		diskPath, ok := files.Lookup(include)
		if !ok {
			logger.Debug().Str("include", include).Msg("SDK include was not found in the SDK headers")
			continue
		}

		fname := filepath.Base(diskPath)
		if fname == include {
			continue
		}

		link := filepath.Join(filepath.Dir(diskPath), include)
		if err := fs.Symlink(fname, link); err != nil {
			return links, errors.IOf(err, fname, link, "unable to symlink from %s to %s", link, fname)
		}
		links++
	}

	// There is a um/gl directory, but the headers include GL/ instead.
	umDir := filepath.Join(roots.Sdk, "include", "um")
	if err := fs.MkdirAll(umDir, 0755); err != nil {
		return links, errors.IOf(err, umDir, umDir, "unable to create %s", umDir)
	}
	glLink := filepath.Join(umDir, "GL")
	if _, err := fs.Lstat(glLink); err == nil {
		logger.Debug().Str("path", glLink).Msg("GL already present")
		return links, nil
	} else if !os.IsNotExist(err) {
		return links, errors.IOf(err, "gl", glLink, "unable to inspect %s", glLink)
	}
	if err := fs.Symlink("gl", glLink); err != nil {
		return links, errors.IOf(err, "gl", glLink, "unable to symlink from %s to %s", glLink, "gl")
	}
	links++

	return links, nil
}
