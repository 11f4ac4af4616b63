package assets

import (
	"errors"
	"fmt"
	"path"
	"strings"
)

// Resolver turns asset reference strings found in one document into handles.
// Relative paths are resolved against the document's directory and queued
// as dependencies of that document.
type Resolver struct {
	builtins *Builtins
	preloads *Preloads
	dir      string
	deps     []Handle
	seen     map[Handle]bool
}

func NewResolver(builtins *Builtins, preloads *Preloads, documentPath string) *Resolver {
	return &Resolver{
		builtins: builtins,
		preloads: preloads,
		dir:      path.Dir(cleanAssetPath(documentPath)),
		seen:     make(map[Handle]bool),
	}
}

func (r *Resolver) Builtins() *Builtins { return r.builtins }

// Resolve checks the builtin prefix, then the preload prefix, and finally
// treats ref as a path relative to the current document.
func (r *Resolver) Resolve(kind Kind, ref string) (Handle, error) {
	switch {
	case strings.HasPrefix(ref, BuiltinPrefix):
		name := strings.TrimPrefix(ref, BuiltinPrefix)
		if r.builtins == nil {
			return Handle{}, &LookupError{Origin: OriginBuiltin, Kind: kind, Name: name}
		}
		return r.builtins.Handle(kind, name)
	case strings.HasPrefix(ref, PreloadPrefix):
		name := strings.TrimPrefix(ref, PreloadPrefix)
		if r.preloads == nil {
			return Handle{}, &LookupError{Origin: OriginPreload, Kind: kind, Name: name}
		}
		h, err := r.preloads.Lookup(kind, name)
		if err != nil {
			return Handle{}, err
		}
		return h, nil
	}

	p, err := joinAssetPath(r.dir, ref)
	if err != nil {
		return Handle{}, err
	}
	h := PathHandle(kind, p)
	if !r.seen[h] {
		r.seen[h] = true
		r.deps = append(r.deps, h)
	}
	return h, nil
}

// Dependencies returns the file assets queued so far, in first-seen order.
func (r *Resolver) Dependencies() []Handle {
	out := make([]Handle, len(r.deps))
	copy(out, r.deps)
	return out
}

var errEmptyPath = errors.New("empty asset path")

// joinAssetPath resolves ref against dir. A leading slash anchors ref at the
// asset root.
func joinAssetPath(dir, ref string) (string, error) {
	if strings.TrimSpace(ref) == "" {
		return "", errEmptyPath
	}
	var p string
	if strings.HasPrefix(ref, "/") {
		p = path.Clean(strings.TrimPrefix(ref, "/"))
	} else {
		p = path.Join(dir, ref)
	}
	if p == ".." || strings.HasPrefix(p, "../") {
		return "", fmt.Errorf("%w: %s", ErrPathEscapesRoot, ref)
	}
	return p, nil
}
