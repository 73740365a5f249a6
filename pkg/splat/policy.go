package splat

import (
	"strings"

	"github.com/arthur-debert/sdksplat/pkg/types"
)

// repairStrategy is the casing fix applied to a file right after it has
// been placed.
type repairStrategy int

const (
	// The CRT and UCRT trees are internally consistent and lowercase; an
	// include with different casing is the including library's problem.
	repairNone repairStrategy = iota
	// Linkers are often handed the CRT import libraries in uppercase.
	repairAngryLib
	// SDK libraries are linked by lowercase name in practice, while the
	// vendor tree mixes cases in both stem and extension (.Lib, .TLB).
	repairLowercase
	// SDK headers are repaired by Finalize once every header is placed.
	repairDeferred
)

func (r repairStrategy) String() string {
	switch r {
	case repairAngryLib:
		return "angry-lib"
	case repairLowercase:
		return "lowercase"
	case repairDeferred:
		return "deferred"
	default:
		return "none"
	}
}

// kindPolicy describes how files of one artifact kind are treated.
type kindPolicy struct {
	// filterDebug drops .pdb files and debug libraries unless configured
	// otherwise.
	filterDebug bool
	// dedup gates every file through the shared registry.
	dedup  bool
	repair repairStrategy
}

var kindPolicies = map[types.ArtifactKind]kindPolicy{
	types.KindCrtHeaders:   {repair: repairNone},
	types.KindCrtLibs:      {filterDebug: true, repair: repairAngryLib},
	types.KindSdkHeaders:   {dedup: true, repair: repairDeferred},
	types.KindSdkLibs:      {repair: repairLowercase},
	types.KindSdkStoreLibs: {repair: repairLowercase},
	types.KindUcrt:         {filterDebug: true, repair: repairNone},
}

func policyFor(kind types.ArtifactKind) kindPolicy {
	return kindPolicies[kind]
}

// angryLibs maps the lowercase stem of CRT import libraries to the name
// linkers ask for.
var angryLibs = map[string]string{
	"libcmt":   "LIBCMT.lib",
	"msvcrt":   "MSVCRT.lib",
	"oldnames": "OLDNAMES.lib",
}

func angryLibName(fname string) (string, bool) {
	stem, ok := strings.CutSuffix(fname, ".lib")
	if !ok {
		return "", false
	}
	name, ok := angryLibs[strings.ToLower(stem)]
	if !ok || name == fname {
		return "", false
	}
	return name, true
}

func isDebugSymbols(fname string) bool {
	return strings.HasSuffix(fname, ".pdb")
}

// isDebugLib matches debug import libraries: a stem ending in "d", in
// "d_netcore", or in "d" followed by a single digit.
func isDebugLib(fname string) bool {
	stem, ok := strings.CutSuffix(fname, ".lib")
	if !ok {
		return false
	}

	if strings.HasSuffix(stem, "d") || strings.HasSuffix(stem, "d_netcore") {
		return true
	}

	if n := len(stem); n > 0 && stem[n-1] >= '0' && stem[n-1] <= '9' {
		return strings.HasSuffix(stem[:n-1], "d")
	}
	return false
}

// skipFile applies the debug filter of kinds that have one.
func (c Config) skipFile(p kindPolicy, fname string) bool {
	if !p.filterDebug {
		return false
	}
	if !c.IncludeDebugSymbols && isDebugSymbols(fname) {
		return true
	}
	if !c.IncludeDebugLibs && isDebugLib(fname) {
		return true
	}
	return false
}

func hasUpperASCII(s string) bool {
	for i := 0; i < len(s); i++ {
		if c := s[i]; c >= 'A' && c <= 'Z' {
			return true
		}
	}
	return false
}

// prunesSubdirs reports whether the subdirectories of a CRT store lib
// mapping are skipped. The store libs payload is only needed for a few
// libraries the desktop variant depends on, so its uwp/store
// subdirectories are left out unless the store variant was requested.
func prunesSubdirs(m Mapping, variants types.VariantSet) bool {
	return m.Kind == types.KindCrtLibs &&
		m.Variant != nil && *m.Variant == types.VariantStore &&
		!variants.Has(types.VariantStore)
}
