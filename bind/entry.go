// Package bind extracts typed values from KDL nodes. Every accessor reports
// problems as positioned diagnostics against the document source.
//
// Must* accessors fail when the value is absent. The others return ok=false
// for an absent value and only fail when a present value is malformed.
package bind

import (
	"github.com/milk9111/levelkit/diag"
	"github.com/milk9111/levelkit/kdl"
)

var numberKinds = []kdl.Kind{kdl.Integer, kdl.Float}

func MustEntry(n *kdl.Node, key kdl.Key, src *diag.Source) (kdl.Entry, error) {
	e, ok := n.Entry(key)
	if !ok {
		return kdl.Entry{}, src.NoEntry(key, n.Span)
	}
	return e, nil
}

func MustValue(n *kdl.Node, key kdl.Key, src *diag.Source) (kdl.Value, error) {
	e, err := MustEntry(n, key, src)
	if err != nil {
		return kdl.Value{}, err
	}
	return e.Value, nil
}

func MustNumber(n *kdl.Node, key kdl.Key, src *diag.Source) (float64, error) {
	e, err := MustEntry(n, key, src)
	if err != nil {
		return 0, err
	}
	return entryNumber(e, src)
}

func Number(n *kdl.Node, key kdl.Key, src *diag.Source) (float64, bool, error) {
	e, ok := n.Entry(key)
	if !ok {
		return 0, false, nil
	}
	f, err := entryNumber(e, src)
	if err != nil {
		return 0, false, err
	}
	return f, true, nil
}

// NumberOr returns def when the entry is absent.
func NumberOr(n *kdl.Node, key kdl.Key, src *diag.Source, def float64) (float64, error) {
	f, ok, err := Number(n, key, src)
	if err != nil {
		return 0, err
	}
	if !ok {
		return def, nil
	}
	return f, nil
}

func entryNumber(e kdl.Entry, src *diag.Source) (float64, error) {
	f, ok := e.Value.Number()
	if !ok {
		return 0, src.WrongValueType(e.Value.Kind, numberKinds, e.Span)
	}
	return f, nil
}

func MustString(n *kdl.Node, key kdl.Key, src *diag.Source) (string, error) {
	e, err := MustEntry(n, key, src)
	if err != nil {
		return "", err
	}
	return entryString(e, src)
}

func String(n *kdl.Node, key kdl.Key, src *diag.Source) (string, bool, error) {
	e, ok := n.Entry(key)
	if !ok {
		return "", false, nil
	}
	s, err := entryString(e, src)
	if err != nil {
		return "", false, err
	}
	return s, true, nil
}

func StringOr(n *kdl.Node, key kdl.Key, src *diag.Source, def string) (string, error) {
	s, ok, err := String(n, key, src)
	if err != nil {
		return "", err
	}
	if !ok {
		return def, nil
	}
	return s, nil
}

func entryString(e kdl.Entry, src *diag.Source) (string, error) {
	s, ok := e.Value.AsString()
	if !ok {
		return "", src.WrongValueType(e.Value.Kind, []kdl.Kind{kdl.String}, e.Span)
	}
	return s, nil
}

// MustParse reads a string entry and converts it with parse. Conversion
// failures are reported as parsing errors on the entry.
func MustParse[T any](n *kdl.Node, key kdl.Key, src *diag.Source, parse func(string) (T, error)) (T, error) {
	var zero T
	e, err := MustEntry(n, key, src)
	if err != nil {
		return zero, err
	}
	return entryParse(e, src, parse)
}

func Parse[T any](n *kdl.Node, key kdl.Key, src *diag.Source, parse func(string) (T, error)) (T, bool, error) {
	var zero T
	e, ok := n.Entry(key)
	if !ok {
		return zero, false, nil
	}
	v, err := entryParse(e, src, parse)
	if err != nil {
		return zero, false, err
	}
	return v, true, nil
}

func entryParse[T any](e kdl.Entry, src *diag.Source, parse func(string) (T, error)) (T, error) {
	var zero T
	s, err := entryString(e, src)
	if err != nil {
		return zero, err
	}
	v, err := parse(s)
	if err != nil {
		return zero, src.ParseError(err.Error(), e.Span)
	}
	return v, nil
}

// Optional holds a value that may have been absent from the document.
type Optional[T any] struct {
	Value T
	OK    bool
}

// Opt packs the (value, ok, error) return of an optional accessor so it
// can be merged with other results.
func Opt[T any](v T, ok bool, err error) (Optional[T], error) {
	return Optional[T]{Value: v, OK: ok}, err
}

func (o Optional[T]) Or(def T) T {
	if !o.OK {
		return def
	}
	return o.Value
}
