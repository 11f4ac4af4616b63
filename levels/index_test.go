package levels

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/ohler55/ojg/oj"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseIndex(t *testing.T) {
	idx, err := ParseIndex([]byte(`{"levels": [
		{"name": "b", "display": "Second", "path": "levels/b.level.kdl"},
		{"name": "a", "path": "levels/a.level.kdl"}
	]}`))
	require.NoError(t, err)
	assert.Equal(t, []string{"b", "a"}, idx.Order)

	entries := idx.Entries()
	require.Len(t, entries, 2)
	assert.Equal(t, "Second", entries[0].Display)
	assert.Equal(t, "a", entries[1].Display)

	e, err := idx.Lookup("a")
	require.NoError(t, err)
	assert.Equal(t, "levels/a.level.kdl", e.Path)

	_, err = idx.Lookup("zzz")
	assert.ErrorIs(t, err, ErrUnknownLevel)
}

func TestParseIndexErrors(t *testing.T) {
	cases := []struct {
		name string
		data string
		is   error
	}{
		{"not_json", `{levels`, nil},
		{"not_object", `[1, 2]`, nil},
		{"no_levels", `{"stages": []}`, nil},
		{"levels_not_array", `{"levels": {"name": "a"}}`, nil},
		{"entry_not_object", `{"levels": [3]}`, nil},
		{"missing_path", `{"levels": [{"name": "a"}]}`, nil},
		{"duplicate", `{"levels": [{"name": "a", "path": "x"}, {"name": "a", "path": "y"}]}`, ErrDuplicateLevel},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			_, err := ParseIndex([]byte(c.data))
			require.Error(t, err)
			if c.is != nil {
				assert.ErrorIs(t, err, c.is)
			}
		})
	}
}

func TestDump(t *testing.T) {
	lvl := mustBindLevel(t, points+`
plane 4 type="death"
text "hello" align="right"
`)
	out, err := Dump(lvl, "")
	require.NoError(t, err)
	parsed, err := oj.ParseString(out)
	require.NoError(t, err)
	obj, ok := parsed.(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "test", obj["name"])

	spawn, ok := Describe(lvl)["spawn"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, []any{0.0, 1.0, 0.0}, spawn["translation"])

	out, err = Dump(lvl, "$.texts[*].align")
	require.NoError(t, err)
	parsed, err = oj.ParseString(out)
	require.NoError(t, err)
	assert.Equal(t, []any{"right"}, parsed)

	out, err = Dump(lvl, "$.planes[0].material")
	require.NoError(t, err)
	parsed, err = oj.ParseString(out)
	require.NoError(t, err)
	assert.Equal(t, []any{"builtin:default-plane"}, parsed)

	_, err = Dump(lvl, "$.planes[")
	assert.Error(t, err)
}

func TestIsWatched(t *testing.T) {
	cases := map[string]bool{
		"levels/intro.level.kdl":   true,
		"levels/INTRO.LEVEL.KDL":   true,
		"materials/stone.mat.yaml": true,
		"levels/index.json":        true,
		"preload/index.yaml":       true,
		"notes.kdl":                false,
		"scenes/end.scn.yaml":      false,
		"readme.md":                false,
	}
	for path, want := range cases {
		assert.Equal(t, want, IsWatched(path), path)
	}
}

func TestWatcher(t *testing.T) {
	dir := t.TempDir()
	w, err := NewWatcher(10*time.Millisecond, dir)
	require.NoError(t, err)
	defer w.Close()

	require.NoError(t, os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("x"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "a.level.kdl"), []byte("spawn {}"), 0o644))

	select {
	case name := <-w.Events:
		assert.Equal(t, filepath.Join(dir, "a.level.kdl"), name)
	case err := <-w.Errors:
		t.Fatalf("watch error: %v", err)
	case <-time.After(5 * time.Second):
		t.Fatal("no event for level file")
	}

	require.NoError(t, w.Close())
	require.NoError(t, w.Close())
}
