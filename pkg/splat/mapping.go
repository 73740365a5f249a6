package splat

import (
	"path/filepath"
	"strings"

	"github.com/arthur-debert/sdksplat/pkg/errors"
	"github.com/arthur-debert/sdksplat/pkg/filetree"
	"github.com/arthur-debert/sdksplat/pkg/types"
)

// Mapping places one staged subtree at one destination directory.
type Mapping struct {
	Src     string
	Target  string
	Tree    filetree.Dir
	Kind    types.ArtifactKind
	Variant *types.Variant
}

// Request is the part of a run's configuration the resolver depends on.
type Request struct {
	Arches                 types.ArchSet
	Variants               types.VariantSet
	PreserveMSArchNotation bool
}

// Resolve turns a payload into the mappings that place it. tree must be the
// snapshot of <roots.Src>/<payload.Filename>.
func Resolve(roots Roots, payload types.PayloadDescriptor, tree *filetree.Tree, req Request) ([]Mapping, error) {
	r := resolver{roots: roots, payload: payload, tree: tree, req: req}
	src := filepath.Join(roots.Src, payload.Filename)

	switch payload.Kind {
	case types.KindCrtHeaders:
		m, err := r.mapping(filepath.Join(src, "include"), filepath.Join(roots.Crt, "include"))
		if err != nil {
			return nil, err
		}
		return []Mapping{m}, nil

	case types.KindCrtLibs:
		if payload.Variant == nil {
			return nil, missingField(payload, "variant", "CRT libs didn't specify a variant")
		}
		if payload.TargetArch == nil {
			return nil, missingField(payload, "arch", "CRT libs didn't specify an architecture")
		}

		src = filepath.Join(src, "lib")
		target := filepath.Join(roots.Crt, "lib")
		spectre := req.Variants.Has(types.VariantSpectre)

		switch *payload.Variant {
		case types.VariantDesktop:
			if spectre {
				src = filepath.Join(src, "spectre")
				target = filepath.Join(target, "spectre")
			}
		case types.VariantOneCore:
			if spectre {
				src = filepath.Join(src, "spectre")
				target = filepath.Join(target, "spectre")
			}
			src = filepath.Join(src, "onecore")
			target = filepath.Join(target, "onecore")
		case types.VariantStore:
		default:
			return nil, errors.Newf(errors.ErrInternal,
				"payload %s has variant %s, which is only a modifier", payload.Filename, *payload.Variant)
		}

		arch := *payload.TargetArch
		m, err := r.mapping(
			filepath.Join(src, arch.MSString()),
			filepath.Join(target, arch.PathToken(req.PreserveMSArchNotation)),
		)
		if err != nil {
			return nil, err
		}
		return []Mapping{m}, nil

	case types.KindSdkHeaders:
		m, err := r.mapping(filepath.Join(src, "include"), filepath.Join(roots.Sdk, "include"))
		if err != nil {
			return nil, err
		}
		return []Mapping{m}, nil

	case types.KindSdkLibs:
		if payload.TargetArch == nil {
			return nil, missingField(payload, "arch", "SDK libs didn't specify an architecture")
		}

		arch := *payload.TargetArch
		m, err := r.mapping(
			filepath.Join(src, "lib", "um", arch.MSString()),
			filepath.Join(roots.Sdk, "lib", "um", arch.PathToken(req.PreserveMSArchNotation)),
		)
		if err != nil {
			return nil, err
		}
		return []Mapping{m}, nil

	case types.KindSdkStoreLibs:
		return r.perArch(filepath.Join(src, "lib", "um"), filepath.Join(roots.Sdk, "lib", "um"), nil)

	case types.KindUcrt:
		inc, err := r.mapping(filepath.Join(src, "include", "ucrt"), filepath.Join(roots.Sdk, "include", "ucrt"))
		if err != nil {
			return nil, err
		}
		return r.perArch(filepath.Join(src, "lib", "ucrt"), filepath.Join(roots.Sdk, "lib", "ucrt"), []Mapping{inc})

	default:
		return nil, errors.Newf(errors.ErrInternal, "payload %s has unknown kind %s", payload.Filename, payload.Kind)
	}
}

type resolver struct {
	roots   Roots
	payload types.PayloadDescriptor
	tree    *filetree.Tree
	req     Request
}

func (r resolver) mapping(src, target string) (Mapping, error) {
	dir, err := r.subtree(src)
	if err != nil {
		return Mapping{}, err
	}
	return Mapping{
		Src:     src,
		Target:  target,
		Tree:    dir,
		Kind:    r.payload.Kind,
		Variant: r.payload.Variant,
	}, nil
}

// perArch appends one mapping per requested architecture.
func (r resolver) perArch(src, target string, mappings []Mapping) ([]Mapping, error) {
	for _, arch := range r.req.Arches.Arches() {
		m, err := r.mapping(
			filepath.Join(src, arch.MSString()),
			filepath.Join(target, arch.PathToken(r.req.PreserveMSArchNotation)),
		)
		if err != nil {
			return nil, err
		}
		mappings = append(mappings, m)
	}
	return mappings, nil
}

// subtree locates the snapshot directory for an absolute source path by
// stripping the staging root, then the payload directory.
func (r resolver) subtree(src string) (filetree.Dir, error) {
	rel, ok := cutPathPrefix(src, r.roots.Src)
	if !ok {
		return filetree.Dir{}, errors.Newf(errors.ErrInternal, "incorrect src root for %s", src)
	}
	rel, ok = cutPathPrefix(rel, r.payload.Filename)
	if !ok {
		return filetree.Dir{}, errors.Newf(errors.ErrInternal, "incorrect src subdir for %s", src)
	}

	dir, ok := r.tree.Root().Subtree(rel)
	if !ok {
		return filetree.Dir{}, errors.Newf(errors.ErrMissingSubtree, "missing expected subtree '%s'", filepath.ToSlash(rel)).
			WithDetail("path", filepath.ToSlash(rel)).
			WithDetail("payload", r.payload.Filename)
	}
	return dir, nil
}

func cutPathPrefix(path, prefix string) (string, bool) {
	rel, err := filepath.Rel(prefix, path)
	if err != nil || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return "", false
	}
	return rel, true
}

func missingField(payload types.PayloadDescriptor, field, msg string) error {
	return errors.New(errors.ErrMissingField, msg).
		WithDetail("field", field).
		WithDetail("payload", payload.Filename).
		WithDetail("kind", payload.Kind.String())
}
