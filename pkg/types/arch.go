package types

import (
	"fmt"
	"strings"
)

// Arch is a target CPU architecture. Values are single bits so a set of
// requested architectures can be carried as an ArchSet.
type Arch uint32

const (
	ArchX86     Arch = 0x1
	ArchX86_64  Arch = 0x2
	ArchAarch   Arch = 0x4
	ArchAarch64 Arch = 0x8
)

// AllArches lists every known architecture in bit order.
var AllArches = []Arch{ArchX86, ArchX86_64, ArchAarch, ArchAarch64}

// String returns the normalized architecture token used in output paths
// unless the vendor notation is preserved.
func (a Arch) String() string {
	switch a {
	case ArchX86:
		return "x86"
	case ArchX86_64:
		return "x86_64"
	case ArchAarch:
		return "aarch"
	case ArchAarch64:
		return "aarch64"
	default:
		return fmt.Sprintf("arch(%d)", uint32(a))
	}
}

// MSString returns the vendor-native token. Staging trees always use it.
func (a Arch) MSString() string {
	switch a {
	case ArchX86:
		return "x86"
	case ArchX86_64:
		return "x64"
	case ArchAarch:
		return "arm"
	case ArchAarch64:
		return "arm64"
	default:
		return fmt.Sprintf("arch(%d)", uint32(a))
	}
}

// PathToken picks the destination path token for a.
func (a Arch) PathToken(preserveMSNotation bool) string {
	if preserveMSNotation {
		return a.MSString()
	}
	return a.String()
}

// ParseArch accepts either notation, case-insensitively.
func ParseArch(s string) (Arch, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "x86", "i686", "i386":
		return ArchX86, nil
	case "x86_64", "x64", "amd64":
		return ArchX86_64, nil
	case "aarch", "arm", "thumbv7a":
		return ArchAarch, nil
	case "aarch64", "arm64":
		return ArchAarch64, nil
	default:
		return 0, fmt.Errorf("unknown architecture: %q", s)
	}
}

// ArchSet is a bit set of Arch values.
type ArchSet uint32

// NewArchSet builds a set from individual architectures.
func NewArchSet(arches ...Arch) ArchSet {
	var s ArchSet
	for _, a := range arches {
		s |= ArchSet(a)
	}
	return s
}

// ParseArchSet parses a list of architecture names.
func ParseArchSet(names []string) (ArchSet, error) {
	var s ArchSet
	for _, n := range names {
		if strings.TrimSpace(n) == "" {
			continue
		}
		a, err := ParseArch(n)
		if err != nil {
			return 0, err
		}
		s |= ArchSet(a)
	}
	return s, nil
}

// Has reports whether a is in the set.
func (s ArchSet) Has(a Arch) bool {
	return uint32(s)&uint32(a) != 0
}

// Arches returns the members of the set in bit order.
func (s ArchSet) Arches() []Arch {
	var out []Arch
	for _, a := range AllArches {
		if s.Has(a) {
			out = append(out, a)
		}
	}
	return out
}
