package assets

import (
	"fmt"
	"io/fs"
	"sort"
	"strings"

	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/gomono"
	"golang.org/x/image/font/gofont/goregular"
)

const (
	DefaultTextFont      = "text"
	DefaultPlaneMaterial = "default-plane"
	DefaultTextMaterial  = "glow-text"
)

// Builtins is the static table of assets shipped with the binary.
type Builtins struct {
	handles   map[Kind]map[string]Handle
	fonts     map[string][]byte
	materials map[string]Material
}

func NewBuiltins() (*Builtins, error) {
	b := &Builtins{
		handles:   make(map[Kind]map[string]Handle),
		fonts:     make(map[string][]byte),
		materials: make(map[string]Material),
	}

	b.addFont(DefaultTextFont, goregular.TTF)
	b.addFont("mono", gomono.TTF)
	b.addFont("bold", gobold.TTF)

	entries, err := fs.ReadDir(builtinFS, "builtin")
	if err != nil {
		return nil, fmt.Errorf("assets: read builtins: %w", err)
	}
	for _, entry := range entries {
		name := strings.TrimSuffix(entry.Name(), ".mat.yaml")
		data, err := LoadBuiltinFile(entry.Name())
		if err != nil {
			return nil, fmt.Errorf("assets: load builtin %s: %w", entry.Name(), err)
		}
		m, err := ParseMaterial(data)
		if err != nil {
			return nil, fmt.Errorf("assets: builtin %s: %w", entry.Name(), err)
		}
		m.Name = name
		b.materials[name] = m
		b.add(KindMaterial, name)
	}

	return b, nil
}

// MustBuiltins panics if the embedded builtin table is broken.
func MustBuiltins() *Builtins {
	b, err := NewBuiltins()
	if err != nil {
		panic(err)
	}
	return b
}

func (b *Builtins) add(kind Kind, name string) {
	if b.handles[kind] == nil {
		b.handles[kind] = make(map[string]Handle)
	}
	b.handles[kind][name] = BuiltinHandle(kind, name)
}

func (b *Builtins) addFont(name string, data []byte) {
	b.fonts[name] = data
	b.add(KindFont, name)
}

func (b *Builtins) Handle(kind Kind, name string) (Handle, error) {
	h, ok := b.handles[kind][name]
	if !ok {
		return Handle{}, &LookupError{Origin: OriginBuiltin, Kind: kind, Name: name}
	}
	return h, nil
}

// MustHandle is for defaults that are known to exist.
func (b *Builtins) MustHandle(kind Kind, name string) Handle {
	h, err := b.Handle(kind, name)
	if err != nil {
		panic(fmt.Sprintf("assets: default builtin (internal error): %v", err))
	}
	return h
}

func (b *Builtins) Font(name string) ([]byte, bool) {
	data, ok := b.fonts[name]
	return data, ok
}

func (b *Builtins) Material(name string) (Material, bool) {
	m, ok := b.materials[name]
	return m, ok
}

// Names returns the builtin names registered for kind, sorted.
func (b *Builtins) Names(kind Kind) []string {
	names := make([]string, 0, len(b.handles[kind]))
	for name := range b.handles[kind] {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// RegisterFonts records the family name of every builtin font.
func (b *Builtins) RegisterFonts(names *FontNames) error {
	for _, name := range b.Names(KindFont) {
		if _, err := names.Register(b.handles[KindFont][name], b.fonts[name]); err != nil {
			return fmt.Errorf("assets: builtin font %s: %w", name, err)
		}
	}
	return nil
}
