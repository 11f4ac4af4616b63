package levels

import (
	"errors"
	"fmt"

	"github.com/go-git/go-billy/v5"
	"github.com/go-git/go-billy/v5/util"
	"github.com/ohler55/ojg/jp"
	"github.com/ohler55/ojg/oj"
)

const IndexPath = "levels/index.json"

var (
	ErrUnknownLevel   = errors.New("unknown level")
	ErrDuplicateLevel = errors.New("duplicate level")
)

var levelsExpr = jp.MustParseString("$.levels[*]")

// IndexEntry describes one selectable level.
type IndexEntry struct {
	Name    string
	Display string
	Path    string
}

// Index is the ordered list of levels shown in the level list.
type Index struct {
	Order  []string
	Levels map[string]IndexEntry
}

// ParseIndex reads `{"levels": [{"name", "display", "path"}]}`. Declaration
// order is kept and a display name defaults to the level name.
func ParseIndex(data []byte) (*Index, error) {
	root, err := oj.Parse(data)
	if err != nil {
		return nil, fmt.Errorf("levels: parse index: %w", err)
	}
	obj, ok := root.(map[string]any)
	if !ok {
		return nil, errors.New("levels: parse index: expected an object")
	}
	if _, ok := obj["levels"].([]any); !ok {
		return nil, errors.New("levels: parse index: expected a \"levels\" array")
	}

	idx := &Index{Levels: make(map[string]IndexEntry)}
	for i, raw := range levelsExpr.Get(root) {
		obj, ok := raw.(map[string]any)
		if !ok {
			return nil, fmt.Errorf("levels: index entry %d: expected an object", i)
		}
		entry := IndexEntry{
			Name:    stringField(obj, "name"),
			Display: stringField(obj, "display"),
			Path:    stringField(obj, "path"),
		}
		if entry.Name == "" || entry.Path == "" {
			return nil, fmt.Errorf("levels: index entry %d: name and path are required", i)
		}
		if entry.Display == "" {
			entry.Display = entry.Name
		}
		if _, dup := idx.Levels[entry.Name]; dup {
			return nil, fmt.Errorf("levels: index: %w: %s", ErrDuplicateLevel, entry.Name)
		}
		idx.Order = append(idx.Order, entry.Name)
		idx.Levels[entry.Name] = entry
	}
	return idx, nil
}

func LoadIndex(fsys billy.Filesystem, path string) (*Index, error) {
	data, err := util.ReadFile(fsys, path)
	if err != nil {
		return nil, fmt.Errorf("levels: read index: %w", err)
	}
	return ParseIndex(data)
}

func (idx *Index) Lookup(name string) (IndexEntry, error) {
	e, ok := idx.Levels[name]
	if !ok {
		return IndexEntry{}, fmt.Errorf("levels: %w: %s", ErrUnknownLevel, name)
	}
	return e, nil
}

// Entries returns the levels in index order.
func (idx *Index) Entries() []IndexEntry {
	out := make([]IndexEntry, 0, len(idx.Order))
	for _, name := range idx.Order {
		out = append(out, idx.Levels[name])
	}
	return out
}

func stringField(obj map[string]any, key string) string {
	s, _ := obj[key].(string)
	return s
}
