package types

import (
	"fmt"
	"strings"
)

// Variant is a product variant of the CRT/SDK. Spectre is a modifier bit
// and never the variant of an individual payload.
type Variant uint32

const (
	VariantDesktop Variant = 0x1
	VariantOneCore Variant = 0x2
	VariantStore   Variant = 0x4
	VariantSpectre Variant = 0x8
)

// AllVariants lists every known variant in bit order.
var AllVariants = []Variant{VariantDesktop, VariantOneCore, VariantStore, VariantSpectre}

func (v Variant) String() string {
	switch v {
	case VariantDesktop:
		return "desktop"
	case VariantOneCore:
		return "onecore"
	case VariantStore:
		return "store"
	case VariantSpectre:
		return "spectre"
	default:
		return fmt.Sprintf("variant(%d)", uint32(v))
	}
}

// ParseVariant parses a variant name case-insensitively.
func ParseVariant(s string) (Variant, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "desktop":
		return VariantDesktop, nil
	case "onecore":
		return VariantOneCore, nil
	case "store":
		return VariantStore, nil
	case "spectre":
		return VariantSpectre, nil
	default:
		return 0, fmt.Errorf("unknown variant: %q", s)
	}
}

// VariantSet is a bit set of Variant values.
type VariantSet uint32

// NewVariantSet builds a set from individual variants.
func NewVariantSet(variants ...Variant) VariantSet {
	var s VariantSet
	for _, v := range variants {
		s |= VariantSet(v)
	}
	return s
}

// ParseVariantSet parses a list of variant names.
func ParseVariantSet(names []string) (VariantSet, error) {
	var s VariantSet
	for _, n := range names {
		if strings.TrimSpace(n) == "" {
			continue
		}
		v, err := ParseVariant(n)
		if err != nil {
			return 0, err
		}
		s |= VariantSet(v)
	}
	return s, nil
}

// Has reports whether v is in the set.
func (s VariantSet) Has(v Variant) bool {
	return uint32(s)&uint32(v) != 0
}

// Variants returns the members of the set in bit order.
func (s VariantSet) Variants() []Variant {
	var out []Variant
	for _, v := range AllVariants {
		if s.Has(v) {
			out = append(out, v)
		}
	}
	return out
}
