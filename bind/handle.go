package bind

import (
	"github.com/milk9111/levelkit/assets"
	"github.com/milk9111/levelkit/diag"
	"github.com/milk9111/levelkit/kdl"
)

// MustHandle reads an asset reference and resolves it to a handle of kind.
func MustHandle(n *kdl.Node, key kdl.Key, kind assets.Kind, r *assets.Resolver, src *diag.Source) (assets.Handle, error) {
	e, err := MustEntry(n, key, src)
	if err != nil {
		return assets.Handle{}, err
	}
	return entryHandle(e, kind, r, src)
}

func Handle(n *kdl.Node, key kdl.Key, kind assets.Kind, r *assets.Resolver, src *diag.Source) (assets.Handle, bool, error) {
	e, ok := n.Entry(key)
	if !ok {
		return assets.Handle{}, false, nil
	}
	h, err := entryHandle(e, kind, r, src)
	if err != nil {
		return assets.Handle{}, false, err
	}
	return h, true, nil
}

// HandleOr falls back to def when the entry is absent.
func HandleOr(n *kdl.Node, key kdl.Key, kind assets.Kind, r *assets.Resolver, src *diag.Source, def assets.Handle) (assets.Handle, error) {
	h, ok, err := Handle(n, key, kind, r, src)
	if err != nil {
		return assets.Handle{}, err
	}
	if !ok {
		return def, nil
	}
	return h, nil
}

func entryHandle(e kdl.Entry, kind assets.Kind, r *assets.Resolver, src *diag.Source) (assets.Handle, error) {
	ref, err := entryString(e, src)
	if err != nil {
		return assets.Handle{}, err
	}
	h, err := r.Resolve(kind, ref)
	if err != nil {
		return assets.Handle{}, src.Resolution(err, e.Span)
	}
	return h, nil
}
