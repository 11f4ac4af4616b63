package levels

import (
	"fmt"
	"path"
	"strings"

	"github.com/milk9111/levelkit/bind"
	"github.com/milk9111/levelkit/diag"
	"github.com/milk9111/levelkit/kdl"
)

// Level is the bound form of a .level.kdl document. It holds plain values
// only; nothing is spawned until Spawn is called.
type Level struct {
	Name           string
	SpawnPoint     bind.Transform
	Finish         bind.Transform
	DefaultMusic   *Music
	TriggeredMusic []TriggeredMusic
	Planes         []Plane
	Cuboids        []Cuboid
	Texts          []Text
	Buttons        []Button
	ButtonDoors    []ButtonDoor
	DynamicObjects []DynamicObject
}

// knownNodes lists every top-level node name a level document may use.
var knownNodes = map[string]bool{
	"spawn":           true,
	"finish":          true,
	"music":           true,
	"triggered_music": true,
	"plane":           true,
	"cuboid":          true,
	"text":            true,
	"button":          true,
	"button_door":     true,
	"dyn":             true,
}

// Bind converts a parsed level document. Every category is bound even when
// an earlier one fails, so the returned error carries all diagnostics found
// in the document. When only warnings were produced the level is returned
// together with a non-failure *diag.Error.
func Bind(doc *kdl.Document, ctx *BindContext) (*Level, error) {
	src := ctx.Source
	var c diag.Collector

	spawn, err := bindPoint(doc, "spawn", src)
	c.Add(err)
	finish, err := bindPoint(doc, "finish", src)
	c.Add(err)
	music, err := bindDefaultMusic(doc, ctx)
	c.Add(err)
	triggered, err := bindAll(doc, "triggered_music", ctx, BindTriggeredMusic)
	c.Add(err)
	planes, err := bindAll(doc, "plane", ctx, BindPlane)
	c.Add(err)
	cuboids, err := bindAll(doc, "cuboid", ctx, BindCuboid)
	c.Add(err)
	texts, err := bindAll(doc, "text", ctx, BindText)
	c.Add(err)
	buttons, err := bindAll(doc, "button", ctx, BindButton)
	c.Add(err)
	doors, err := bindAll(doc, "button_door", ctx, BindButtonDoor)
	c.Add(err)
	dynamic, err := bindAll(doc, "dyn", ctx, BindDynamicObject)
	c.Add(err)
	c.Add(unknownNodes(doc, src))

	if c.Failed() {
		return nil, c.Err()
	}
	return &Level{
		Name:           levelName(src.Name),
		SpawnPoint:     spawn,
		Finish:         finish,
		DefaultMusic:   music,
		TriggeredMusic: triggered,
		Planes:         planes,
		Cuboids:        cuboids,
		Texts:          texts,
		Buttons:        buttons,
		ButtonDoors:    doors,
		DynamicObjects: dynamic,
	}, c.Err()
}

func bindPoint(doc *kdl.Document, name string, src *diag.Source) (bind.Transform, error) {
	n, err := bind.MustOne(doc, name, src)
	if err != nil {
		return bind.Transform{}, err
	}
	return bind.MustNodeTransform(n, src)
}

// bindDefaultMusic binds the first music node. Later ones are ignored with
// a warning.
func bindDefaultMusic(doc *kdl.Document, ctx *BindContext) (*Music, error) {
	nodes := doc.All("music")
	if len(nodes) == 0 {
		return nil, nil
	}
	m, err := BindMusic(nodes[0], ctx)
	errs := []error{err}
	for _, n := range nodes[1:] {
		errs = append(errs, ctx.Source.Warn("Only the first 'music' element is used", n.NameSpan))
	}
	err = diag.Join(errs...)
	if diag.IsFailure(err) {
		return nil, err
	}
	return &m, err
}

func bindAll[T any](doc *kdl.Document, name string, ctx *BindContext, fn func(*kdl.Node, *BindContext) (T, error)) ([]T, error) {
	nodes := doc.All(name)
	results := make([]diag.Result[T], 0, len(nodes))
	for _, n := range nodes {
		results = append(results, diag.R(fn(n, ctx)))
	}
	return diag.MergeAll(results)
}

func unknownNodes(doc *kdl.Document, src *diag.Source) error {
	var errs []error
	for _, n := range doc.Nodes {
		if !knownNodes[n.Name] {
			errs = append(errs, src.Warn(fmt.Sprintf("Unknown element '%s'", n.Name), n.NameSpan))
		}
	}
	return diag.Join(errs...)
}

// LevelExt is the file extension of level documents.
const LevelExt = ".level.kdl"

func IsLevelFile(p string) bool {
	return strings.HasSuffix(strings.ToLower(p), LevelExt)
}

// levelName derives a level name from its document path.
func levelName(p string) string {
	base := path.Base(p)
	if IsLevelFile(base) {
		return base[:len(base)-len(LevelExt)]
	}
	return strings.TrimSuffix(base, path.Ext(base))
}
