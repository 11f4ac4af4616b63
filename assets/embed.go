package assets

import (
	"embed"
	"path"
	"path/filepath"
	"strings"
)

//go:embed builtin/*.mat.yaml
var builtinFS embed.FS

// LoadBuiltinFile reads an embedded builtin asset by builtin-relative path.
func LoadBuiltinFile(name string) ([]byte, error) {
	return builtinFS.ReadFile(path.Join("builtin", cleanAssetPath(name)))
}

func cleanAssetPath(p string) string {
	if p == "" {
		return ""
	}
	clean := filepath.ToSlash(p)
	clean = strings.TrimPrefix(clean, "./")
	clean = strings.TrimPrefix(clean, "assets/")
	clean = strings.TrimPrefix(clean, "/")
	return path.Clean(clean)
}
