package splat

import (
	"os"
	"path/filepath"

	"github.com/arthur-debert/sdksplat/pkg/errors"
	"github.com/arthur-debert/sdksplat/pkg/types"
)

// Roots are the directories a run reads from and writes into. They are
// computed once by Prepare.
type Roots struct {
	Crt string
	Sdk string
	Src string
}

// Prepare deletes and recreates <output>/crt and <output>/sdk so placement
// always starts from empty roots. staging is the directory holding one
// unpacked subdirectory per payload.
func Prepare(fs types.FS, cfg Config, staging string) (Roots, error) {
	crtRoot := filepath.Join(cfg.Output, "crt")
	sdkRoot := filepath.Join(cfg.Output, "sdk")

	for _, root := range []struct{ name, path string }{
		{"CRT", crtRoot},
		{"SDK", sdkRoot},
	} {
		if _, err := fs.Lstat(root.path); err == nil {
			if err := fs.RemoveAll(root.path); err != nil {
				return Roots{}, errors.Wrapf(err, errors.ErrSetup,
					"unable to delete existing %s directory %s", root.name, root.path).
					WithDetail("path", root.path)
			}
		} else if !os.IsNotExist(err) {
			return Roots{}, errors.Wrapf(err, errors.ErrSetup,
				"unable to inspect %s directory %s", root.name, root.path).
				WithDetail("path", root.path)
		}
	}

	for _, root := range []struct{ name, path string }{
		{"CRT", crtRoot},
		{"SDK", sdkRoot},
	} {
		if err := fs.MkdirAll(root.path, 0755); err != nil {
			return Roots{}, errors.Wrapf(err, errors.ErrSetup,
				"unable to create %s directory %s", root.name, root.path).
				WithDetail("path", root.path)
		}
	}

	return Roots{
		Crt: crtRoot,
		Sdk: sdkRoot,
		Src: staging,
	}, nil
}
