package assets

import (
	"errors"
	"fmt"
)

const (
	BuiltinPrefix = "builtin:"
	PreloadPrefix = "preload:"
)

var (
	ErrMissingBuiltin   = errors.New("assets: missing builtin")
	ErrMissingPreload   = errors.New("assets: missing preload")
	ErrPathEscapesRoot  = errors.New("assets: path escapes asset root")
	ErrUnknownAssetType = errors.New("assets: unknown asset type")
	ErrMissingPreloads  = errors.New("assets: missing required preloads")
	ErrWrongPreloadType = errors.New("assets: wrong preload type")
)

type Origin int

const (
	OriginPath Origin = iota
	OriginBuiltin
	OriginPreload
)

func (o Origin) String() string {
	switch o {
	case OriginBuiltin:
		return "builtin"
	case OriginPreload:
		return "preload"
	default:
		return "path"
	}
}

// Handle identifies an asset. Builtins and preloads are keyed by Name,
// file assets by their cleaned Path relative to the asset root.
type Handle struct {
	Kind   Kind
	Origin Origin
	Name   string
	Path   string
}

func BuiltinHandle(kind Kind, name string) Handle {
	return Handle{Kind: kind, Origin: OriginBuiltin, Name: name}
}

func PathHandle(kind Kind, p string) Handle {
	return Handle{Kind: kind, Origin: OriginPath, Path: p}
}

func (h Handle) IsZero() bool { return h == Handle{} }

// String returns the reference syntax that resolves to this handle.
func (h Handle) String() string {
	switch h.Origin {
	case OriginBuiltin:
		return BuiltinPrefix + h.Name
	case OriginPreload:
		return PreloadPrefix + h.Name
	default:
		return h.Path
	}
}

// LookupError is returned when a builtin or preload name is unknown for a kind.
type LookupError struct {
	Origin Origin
	Kind   Kind
	Name   string
}

func (e *LookupError) Error() string {
	return fmt.Sprintf("No %s with type '%s' and name '%s'", e.Origin, e.Kind, e.Name)
}

func (e *LookupError) Unwrap() error {
	if e.Origin == OriginPreload {
		return ErrMissingPreload
	}
	return ErrMissingBuiltin
}
