package types

import (
	"fmt"
	"strings"
)

// ArtifactKind classifies a payload. It selects both the path construction
// and the file filtering/repair policy applied while splatting.
type ArtifactKind int

const (
	KindCrtHeaders ArtifactKind = iota
	KindCrtLibs
	KindSdkHeaders
	KindSdkLibs
	KindSdkStoreLibs
	KindUcrt
)

var kindNames = map[ArtifactKind]string{
	KindCrtHeaders:   "crt-headers",
	KindCrtLibs:      "crt-libs",
	KindSdkHeaders:   "sdk-headers",
	KindSdkLibs:      "sdk-libs",
	KindSdkStoreLibs: "sdk-store-libs",
	KindUcrt:         "ucrt",
}

func (k ArtifactKind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return fmt.Sprintf("kind(%d)", int(k))
}

// ParseArtifactKind accepts kebab-case, snake_case or the bare concatenated form.
func ParseArtifactKind(s string) (ArtifactKind, error) {
	norm := strings.ToLower(strings.TrimSpace(s))
	norm = strings.NewReplacer("_", "-", " ", "-").Replace(norm)
	for kind, name := range kindNames {
		if norm == name || norm == strings.ReplaceAll(name, "-", "") {
			return kind, nil
		}
	}
	return 0, fmt.Errorf("unknown artifact kind: %q", s)
}

// MarshalText implements encoding.TextMarshaler.
func (k ArtifactKind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (k *ArtifactKind) UnmarshalText(text []byte) error {
	parsed, err := ParseArtifactKind(string(text))
	if err != nil {
		return err
	}
	*k = parsed
	return nil
}
