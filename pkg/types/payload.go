package types

// PayloadDescriptor describes one staged vendor archive.
type PayloadDescriptor struct {
	// Filename names the payload's directory under the staging root.
	Filename string
	Kind     ArtifactKind
	// Variant is required for CRT libs.
	Variant *Variant
	// TargetArch is required for CRT libs and SDK libs.
	TargetArch *Arch
}

// VariantPtr and ArchPtr are small helpers for building descriptors.
func VariantPtr(v Variant) *Variant { return &v }

func ArchPtr(a Arch) *Arch { return &a }
