package levels

import (
	"strings"
	"testing"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/milk9111/levelkit/assets"
	"github.com/milk9111/levelkit/bind"
	"github.com/milk9111/levelkit/diag"
	"github.com/milk9111/levelkit/kdl"
	"github.com/milk9111/levelkit/scene"
)

const points = "spawn { pos 0 1 0 }\nfinish { pos 1 2 3 }\n"

func testContext(t *testing.T, text string) (*kdl.Document, *BindContext) {
	t.Helper()
	doc, err := kdl.Parse(text)
	require.NoError(t, err)
	src := diag.NewSource("levels/test.level.kdl", text)
	r := assets.NewResolver(assets.MustBuiltins(), assets.NewPreloads(), src.Name)
	return doc, NewBindContext(src, r)
}

func bindLevel(t *testing.T, text string) (*Level, error) {
	t.Helper()
	doc, ctx := testContext(t, text)
	return Bind(doc, ctx)
}

func mustBindLevel(t *testing.T, text string) *Level {
	t.Helper()
	lvl, err := bindLevel(t, text)
	require.NoError(t, err)
	require.NotNil(t, lvl)
	return lvl
}

func failures(t *testing.T, err error) []diag.Diagnostic {
	t.Helper()
	require.True(t, diag.IsFailure(err), "expected failure, got %v", err)
	de, ok := diag.As(err)
	require.True(t, ok)
	return de.Diagnostics
}

func builtin(kind assets.Kind, name string) assets.Handle {
	return assets.BuiltinHandle(kind, name)
}

func TestBindMinimalLevel(t *testing.T) {
	lvl := mustBindLevel(t, points)

	assert.Equal(t, "test", lvl.Name)
	assert.Equal(t, mgl64.Vec3{0, 1, 0}, lvl.SpawnPoint.Translation)
	assert.Equal(t, mgl64.Vec3{1, 2, 3}, lvl.Finish.Translation)
	assert.Nil(t, lvl.DefaultMusic)
	assert.Empty(t, lvl.Planes)
	assert.Empty(t, lvl.Texts)
	assert.Empty(t, lvl.DynamicObjects)
}

func TestBindDefaults(t *testing.T) {
	lvl := mustBindLevel(t, points+`
plane 4
cuboid { size 2; }
text "hi"
button "b"
dyn {}
`)

	require.Len(t, lvl.Planes, 1)
	plane := lvl.Planes[0]
	assert.Equal(t, 4.0, plane.Width)
	assert.Equal(t, 4.0, plane.Length)
	assert.Equal(t, PlaneStatic, plane.Type)
	assert.Equal(t, builtin(assets.KindMaterial, assets.DefaultPlaneMaterial), plane.Material)
	assert.Equal(t, bind.Identity(), plane.Transform)

	require.Len(t, lvl.Cuboids, 1)
	assert.Equal(t, mgl64.Vec3{2, 2, 2}, lvl.Cuboids[0].Size)
	assert.Equal(t, builtin(assets.KindMaterial, assets.DefaultPlaneMaterial), lvl.Cuboids[0].Material)

	require.Len(t, lvl.Texts, 1)
	text := lvl.Texts[0]
	assert.Equal(t, "hi", text.Text)
	assert.Equal(t, float64(DefaultTextPt), text.Pt)
	assert.Equal(t, builtin(assets.KindFont, assets.DefaultTextFont), text.Font)
	assert.Equal(t, scene.AlignCenter, text.Align)
	assert.Equal(t, builtin(assets.KindMaterial, assets.DefaultTextMaterial), text.Material)

	require.Len(t, lvl.Buttons, 1)
	assert.Equal(t, bind.Identity(), lvl.Buttons[0].Transform)

	require.Len(t, lvl.DynamicObjects, 1)
	dyn := lvl.DynamicObjects[0]
	assert.Equal(t, DynamicSphere, dyn.Type)
	assert.Equal(t, mgl64.Vec3{DefaultDynamicSize, DefaultDynamicSize, DefaultDynamicSize}, dyn.Size)
	assert.Equal(t, builtin(assets.KindMaterial, assets.DefaultPlaneMaterial), dyn.Material)
}

func TestBindExplicitValues(t *testing.T) {
	lvl := mustBindLevel(t, points+`
plane 4 8 type="death" material="builtin:door" { pos 0 -3 0; }
text "go" pt=32 font="builtin:mono" align="right" material="../mats/t.mat.yaml"
dyn type="cube" { size 1 2 3; }
`)
	plane := lvl.Planes[0]
	assert.Equal(t, 8.0, plane.Length)
	assert.Equal(t, PlaneDeath, plane.Type)
	assert.Equal(t, builtin(assets.KindMaterial, "door"), plane.Material)
	assert.Equal(t, mgl64.Vec3{0, -3, 0}, plane.Transform.Translation)

	text := lvl.Texts[0]
	assert.Equal(t, 32.0, text.Pt)
	assert.Equal(t, builtin(assets.KindFont, "mono"), text.Font)
	assert.Equal(t, scene.AlignRight, text.Align)
	assert.Equal(t, assets.PathHandle(assets.KindMaterial, "mats/t.mat.yaml"), text.Material)

	dyn := lvl.DynamicObjects[0]
	assert.Equal(t, DynamicCube, dyn.Type)
	assert.Equal(t, mgl64.Vec3{1, 2, 3}, dyn.Size)
}

func TestBindUnknownPreloadFails(t *testing.T) {
	_, err := bindLevel(t, points+`dyn material="preload:none"`)
	ds := failures(t, err)
	require.Len(t, ds, 1)
	assert.Equal(t, diag.KindResolution, ds[0].Kind)
	assert.Contains(t, ds[0].Message, "No preload with type 'material' and name 'none'")
}

func TestBindCollectsSiblingErrors(t *testing.T) {
	_, err := bindLevel(t, points+`
plane "wide"
cuboid { pos 0 0 0; }
text 5
`)
	ds := failures(t, err)
	require.Len(t, ds, 3)
	assert.Equal(t, diag.KindTypeMismatch, ds[0].Kind)
	assert.Equal(t, "Element value has type string but should have been either integer or float", ds[0].Message)
	assert.Equal(t, diag.KindStructural, ds[1].Kind)
	assert.Equal(t, "Missing element 'size'", ds[1].Message)
	assert.Equal(t, diag.KindTypeMismatch, ds[2].Kind)
	assert.Equal(t, "Element value has type integer but should have been string", ds[2].Message)
}

func TestBindCollectsAllFieldsOfOneNode(t *testing.T) {
	_, err := bindLevel(t, points+`text 1 pt="big" align="middle" { pos 1; }`)
	ds := failures(t, err)
	require.Len(t, ds, 5)
	assert.Equal(t, diag.KindTypeMismatch, ds[0].Kind)
	assert.Equal(t, diag.KindTypeMismatch, ds[1].Kind)
	assert.Equal(t, diag.KindVariant, ds[2].Kind)
	assert.Equal(t, "Invalid variant provided: 'middle', the allowed variants are 'left', 'center', and 'right'", ds[2].Message)
	assert.Equal(t, "Element missing argument 1", ds[3].Message)
	assert.Equal(t, "Element missing argument 2", ds[4].Message)
}

func TestBindPoints(t *testing.T) {
	_, err := bindLevel(t, "finish { pos 0 0 0; }\n")
	ds := failures(t, err)
	require.Len(t, ds, 1)
	assert.Equal(t, "Missing element 'spawn'", ds[0].Message)
	assert.Equal(t, diag.KindStructural, ds[0].Kind)

	text := points + "finish { pos 9 9 9; }\n"
	_, err = bindLevel(t, text)
	ds = failures(t, err)
	require.Len(t, ds, 1)
	assert.Equal(t, "Duplicate element 'finish'", ds[0].Message)
	require.NotNil(t, ds[0].Span)
	assert.Equal(t, strings.LastIndex(text, "finish"), ds[0].Span.Offset)

	_, err = bindLevel(t, "spawn\nfinish {}\n")
	ds = failures(t, err)
	require.Len(t, ds, 1)
	assert.Equal(t, "Element has no children", ds[0].Message)
}

func TestBindWarningsOnly(t *testing.T) {
	lvl, err := bindLevel(t, points+`
bogus 1
music "a.ogg"
music "b.ogg"
`)
	require.NotNil(t, lvl)
	require.Error(t, err)
	assert.False(t, diag.IsFailure(err))

	de, ok := diag.As(err)
	require.True(t, ok)
	require.Len(t, de.Diagnostics, 2)
	assert.Equal(t, "Only the first 'music' element is used", de.Diagnostics[0].Message)
	assert.Equal(t, "Unknown element 'bogus'", de.Diagnostics[1].Message)
	assert.Equal(t, diag.SeverityWarning, de.Diagnostics[1].Severity)

	require.NotNil(t, lvl.DefaultMusic)
	assert.Equal(t, assets.PathHandle(assets.KindAudio, "levels/a.ogg"), lvl.DefaultMusic.Audio)
}

func TestBindWarningsWithFailure(t *testing.T) {
	lvl, err := bindLevel(t, points+"bogus\nplane\n")
	assert.Nil(t, lvl)
	ds := failures(t, err)
	require.Len(t, ds, 2)
	assert.Equal(t, "Element missing argument 0", ds[0].Message)
	assert.Equal(t, "Unknown element 'bogus'", ds[1].Message)
}

func TestBindTriggeredMusic(t *testing.T) {
	cases := []struct {
		name string
		node string
		want mgl64.Vec3
		errs int
	}{
		{"args", `triggered_music "m.ogg" 4 2 4 { pos 0 1 0; }`, mgl64.Vec3{4, 2, 4}, 0},
		{"uniform", `triggered_music "m.ogg" 3 { pos 0 1 0; }`, mgl64.Vec3{3, 3, 3}, 0},
		{"size_child", `triggered_music "m.ogg" { size 1 2; pos 0 0 0; }`, mgl64.Vec3{1, 2, 1}, 0},
		{"no_children", `triggered_music "m.ogg" 2`, mgl64.Vec3{}, 1},
		{"nothing", `triggered_music "m.ogg"`, mgl64.Vec3{}, 2},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			doc, ctx := testContext(t, c.node)
			m, err := BindTriggeredMusic(doc.Nodes[0], ctx)
			if c.errs > 0 {
				assert.Len(t, failures(t, err), c.errs)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, c.want, m.Size)
			assert.Equal(t, assets.PathHandle(assets.KindAudio, "levels/m.ogg"), m.Audio)
		})
	}
}

func TestBindButtonDoor(t *testing.T) {
	doc, ctx := testContext(t, `button_door "gate" {
    default { pos 0 1 0; }
    open { pos 0 4 0; rot "x" 90; }
    size 6 3 0.5
}
button_door "broken" material=3 {
    default { pos 0 1 0; }
    size 1
}
`)
	door, err := BindButtonDoor(doc.Nodes[0], ctx)
	require.NoError(t, err)
	assert.Equal(t, "gate", door.Name)
	assert.Equal(t, mgl64.Vec3{0, 1, 0}, door.Default.Translation)
	assert.Equal(t, mgl64.Vec3{0, 4, 0}, door.Open.Translation)
	assert.Equal(t, mgl64.Vec3{6, 3, 0.5}, door.Size)
	assert.Equal(t, builtin(assets.KindMaterial, assets.DefaultPlaneMaterial), door.Material)

	_, err = BindButtonDoor(doc.Nodes[1], ctx)
	ds := failures(t, err)
	require.Len(t, ds, 2)
	assert.Equal(t, "Missing element 'open'", ds[0].Message)
	assert.Equal(t, diag.KindTypeMismatch, ds[1].Kind)
}

func TestBindIsDeterministic(t *testing.T) {
	text := points + `
plane 10 20 { pos 0 0 -5; rot "y" 45; }
text "a" align="left"
button "b" { pos 1 0 0; }
button_door "b" { default {}; open { pos 0 3 0; }; size 1 2 3; }
dyn type="cube"
`
	first := mustBindLevel(t, text)
	second := mustBindLevel(t, text)
	assert.Equal(t, first, second)
}
