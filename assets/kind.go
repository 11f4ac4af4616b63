package assets

import (
	"path"
	"strings"
)

// Kind is the closed set of asset types a level can reference.
type Kind int

const (
	KindFont Kind = iota
	KindImage
	KindScene
	KindMaterial
	KindAudio
)

type KindInfo struct {
	Kind       Kind
	Name       string
	Extensions []string
}

// Kinds lists every asset kind. Lookups by name or extension go through it.
var Kinds = []KindInfo{
	{Kind: KindFont, Name: "font", Extensions: []string{".ttf", ".otf"}},
	{Kind: KindImage, Name: "image", Extensions: []string{".png", ".jpg", ".jpeg", ".bmp", ".webp"}},
	{Kind: KindScene, Name: "scene", Extensions: []string{".glb", ".gltf", ".scn.yaml"}},
	{Kind: KindMaterial, Name: "material", Extensions: []string{".mat.yaml"}},
	{Kind: KindAudio, Name: "audio", Extensions: []string{".ogg", ".wav", ".mp3"}},
}

func (k Kind) String() string {
	for _, info := range Kinds {
		if info.Kind == k {
			return info.Name
		}
	}
	return "unknown"
}

func ParseKind(name string) (Kind, bool) {
	for _, info := range Kinds {
		if info.Name == name {
			return info.Kind, true
		}
	}
	return 0, false
}

// KindNames returns the names of all kinds in declaration order.
func KindNames() []string {
	names := make([]string, len(Kinds))
	for i, info := range Kinds {
		names[i] = info.Name
	}
	return names
}

// KindForPath guesses the kind from a file name. Longer extensions win so
// that "x.mat.yaml" is a material.
func KindForPath(p string) (Kind, bool) {
	base := strings.ToLower(path.Base(p))
	best, bestLen := Kind(0), 0
	for _, info := range Kinds {
		for _, ext := range info.Extensions {
			if strings.HasSuffix(base, ext) && len(ext) > bestLen {
				best, bestLen = info.Kind, len(ext)
			}
		}
	}
	return best, bestLen > 0
}
