package bind

import (
	"fmt"

	"github.com/milk9111/levelkit/diag"
	"github.com/milk9111/levelkit/kdl"
)

// MustVariant matches a string entry against the display names of a closed
// set of values. Matching is exact.
func MustVariant[T fmt.Stringer](n *kdl.Node, key kdl.Key, src *diag.Source, variants []T) (T, error) {
	var zero T
	e, err := MustEntry(n, key, src)
	if err != nil {
		return zero, err
	}
	return entryVariant(e, src, variants)
}

func Variant[T fmt.Stringer](n *kdl.Node, key kdl.Key, src *diag.Source, variants []T) (T, bool, error) {
	var zero T
	e, ok := n.Entry(key)
	if !ok {
		return zero, false, nil
	}
	v, err := entryVariant(e, src, variants)
	if err != nil {
		return zero, false, err
	}
	return v, true, nil
}

func VariantOr[T fmt.Stringer](n *kdl.Node, key kdl.Key, src *diag.Source, variants []T, def T) (T, error) {
	v, ok, err := Variant(n, key, src, variants)
	if err != nil {
		return def, err
	}
	if !ok {
		return def, nil
	}
	return v, nil
}

func entryVariant[T fmt.Stringer](e kdl.Entry, src *diag.Source, variants []T) (T, error) {
	var zero T
	s, err := entryString(e, src)
	if err != nil {
		return zero, err
	}
	names := make([]string, len(variants))
	for i, v := range variants {
		if v.String() == s {
			return v, nil
		}
		names[i] = v.String()
	}
	return zero, src.NotAVariant(s, names, e.Span)
}
