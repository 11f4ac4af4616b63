package levels

import (
	"embed"
	"fmt"
	"io/fs"

	"github.com/go-git/go-billy/v5"
	"github.com/go-git/go-billy/v5/memfs"
	"github.com/go-git/go-billy/v5/util"
)

//go:embed demo
var demoFS embed.FS

// DemoFS returns an in-memory asset tree holding the bundled demo levels,
// their preload index and the assets they reference.
func DemoFS() (billy.Filesystem, error) {
	root, err := fs.Sub(demoFS, "demo")
	if err != nil {
		return nil, fmt.Errorf("levels: demo assets: %w", err)
	}
	out := memfs.New()
	err = fs.WalkDir(root, ".", func(p string, d fs.DirEntry, err error) error {
		if err != nil || d.IsDir() {
			return err
		}
		data, err := fs.ReadFile(root, p)
		if err != nil {
			return err
		}
		return util.WriteFile(out, p, data, 0o644)
	})
	if err != nil {
		return nil, fmt.Errorf("levels: copy demo assets: %w", err)
	}
	return out, nil
}
