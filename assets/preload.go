package assets

import (
	"fmt"
	"path"
	"sort"
	"strings"
	"sync"

	"github.com/go-git/go-billy/v5"
	"github.com/go-git/go-billy/v5/util"
	"gopkg.in/yaml.v3"
)

const PreloadIndexPath = "preload/index.yaml"

// RequiredPreloads names the preloads every installation must provide and
// the kind each must have.
var RequiredPreloads = map[string]Kind{
	"level-end": KindScene,
}

type Preload struct {
	Kind   Kind
	Handle Handle
}

// Preloads is the table of named assets loaded at startup. While the index
// itself is loading, entries live in a partial table so that assets loaded
// as part of the preload set can already refer to each other.
type Preloads struct {
	mu      sync.Mutex
	done    map[string]Preload
	partial map[string]Preload
}

func NewPreloads() *Preloads {
	return &Preloads{
		done:    make(map[string]Preload),
		partial: make(map[string]Preload),
	}
}

// TryHandle returns a completed preload of the given kind.
func (p *Preloads) TryHandle(kind Kind, name string) (Handle, bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	pl, ok := p.done[name]
	if !ok || pl.Kind != kind {
		return Handle{}, false
	}
	return pl.Handle, true
}

// Lookup resolves a preload name, falling back to the partial table.
func (p *Preloads) Lookup(kind Kind, name string) (Handle, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if pl, ok := p.done[name]; ok && pl.Kind == kind {
		return pl.Handle, nil
	}
	if pl, ok := p.partial[name]; ok && pl.Kind == kind {
		return pl.Handle, nil
	}
	return Handle{}, &LookupError{Origin: OriginPreload, Kind: kind, Name: name}
}

func (p *Preloads) InstallPartial(name string, pl Preload) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.partial[name] = pl
}

// Commit promotes every partial entry to the completed table.
func (p *Preloads) Commit() {
	p.mu.Lock()
	defer p.mu.Unlock()
	for name, pl := range p.partial {
		p.done[name] = pl
	}
	p.partial = make(map[string]Preload)
}

func (p *Preloads) Names() []string {
	p.mu.Lock()
	defer p.mu.Unlock()
	names := make([]string, 0, len(p.done))
	for name := range p.done {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

type PreloadEntry struct {
	Type string `yaml:"type"`
	Path string `yaml:"path"`
}

type UnknownAssetTypeError struct {
	Type string
}

func (e *UnknownAssetTypeError) Error() string {
	return fmt.Sprintf("Unknown asset type '%s', known asset types are %s", e.Type, strings.Join(KindNames(), ", "))
}

func (e *UnknownAssetTypeError) Unwrap() error { return ErrUnknownAssetType }

type MissingPreloadsError struct {
	Names []string
}

func (e *MissingPreloadsError) Error() string {
	return fmt.Sprintf("Missing required preloads %s", strings.Join(e.Names, ", "))
}

func (e *MissingPreloadsError) Unwrap() error { return ErrMissingPreloads }

type WrongPreloadTypeError struct {
	Name string
	Got  string
	Want string
}

func (e *WrongPreloadTypeError) Error() string {
	return fmt.Sprintf("Preload '%s' has wrong type '%s', expected '%s'", e.Name, e.Got, e.Want)
}

func (e *WrongPreloadTypeError) Unwrap() error { return ErrWrongPreloadType }

// ParsePreloadIndex decodes and validates a preload index. Paths in the
// result are relative to the asset root.
func ParsePreloadIndex(indexPath string, data []byte) (map[string]Preload, error) {
	var index map[string]PreloadEntry
	if err := yaml.Unmarshal(data, &index); err != nil {
		return nil, fmt.Errorf("assets: unmarshal %s: %w", indexPath, err)
	}

	names := make([]string, 0, len(index))
	for name := range index {
		names = append(names, name)
	}
	sort.Strings(names)

	kinds := make(map[string]Kind, len(index))
	for _, name := range names {
		entry := index[name]
		kind, ok := ParseKind(entry.Type)
		if !ok {
			return nil, &UnknownAssetTypeError{Type: entry.Type}
		}
		if want, required := RequiredPreloads[name]; required && want != kind {
			return nil, &WrongPreloadTypeError{Name: name, Got: entry.Type, Want: want.String()}
		}
		kinds[name] = kind
	}

	dir := path.Dir(cleanAssetPath(indexPath))
	out := make(map[string]Preload, len(index))
	for _, name := range names {
		kind := kinds[name]
		p, err := joinAssetPath(dir, index[name].Path)
		if err != nil {
			return nil, fmt.Errorf("assets: preload %s: %w", name, err)
		}
		out[name] = Preload{Kind: kind, Handle: Handle{Kind: kind, Origin: OriginPath, Path: p}}
	}

	var missing []string
	for name := range RequiredPreloads {
		if _, ok := out[name]; !ok {
			missing = append(missing, name)
		}
	}
	if len(missing) > 0 {
		sort.Strings(missing)
		return nil, &MissingPreloadsError{Names: missing}
	}
	return out, nil
}

// LoadPreloads reads the preload index from fsys, installs every entry as a
// partial preload, loads each one through deps, then commits the table.
func LoadPreloads(fsys billy.Filesystem, indexPath string, table *Preloads, deps *DependencyLoader) error {
	data, err := util.ReadFile(fsys, indexPath)
	if err != nil {
		return fmt.Errorf("assets: read %s: %w", indexPath, err)
	}
	entries, err := ParsePreloadIndex(indexPath, data)
	if err != nil {
		return err
	}
	for name, pl := range entries {
		table.InstallPartial(name, pl)
	}
	if deps != nil {
		handles := make([]Handle, 0, len(entries))
		for _, pl := range entries {
			handles = append(handles, pl.Handle)
		}
		sort.Slice(handles, func(i, j int) bool { return handles[i].Path < handles[j].Path })
		if err := deps.LoadAll(handles); err != nil {
			return err
		}
	}
	table.Commit()
	return nil
}
