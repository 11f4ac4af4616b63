package levels

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/ohler55/ojg/jp"
	"github.com/ohler55/ojg/oj"

	"github.com/milk9111/levelkit/bind"
)

// Describe converts a level into plain maps and slices for JSON output.
// Rotations are written as quaternions [w, x, y, z].
func Describe(l *Level) map[string]any {
	out := map[string]any{
		"name":   l.Name,
		"spawn":  describeTransform(l.SpawnPoint),
		"finish": describeTransform(l.Finish),
	}
	if l.DefaultMusic != nil {
		out["music"] = l.DefaultMusic.Audio.String()
	}

	out["triggered_music"] = describeAll(l.TriggeredMusic, func(m TriggeredMusic) map[string]any {
		return map[string]any{
			"audio":     m.Audio.String(),
			"size":      vec(m.Size),
			"transform": describeTransform(m.Transform),
		}
	})
	out["planes"] = describeAll(l.Planes, func(p Plane) map[string]any {
		return map[string]any{
			"width":     p.Width,
			"length":    p.Length,
			"type":      p.Type.String(),
			"material":  p.Material.String(),
			"transform": describeTransform(p.Transform),
		}
	})
	out["cuboids"] = describeAll(l.Cuboids, func(c Cuboid) map[string]any {
		return map[string]any{
			"size":      vec(c.Size),
			"material":  c.Material.String(),
			"transform": describeTransform(c.Transform),
		}
	})
	out["texts"] = describeAll(l.Texts, func(t Text) map[string]any {
		return map[string]any{
			"text":      t.Text,
			"pt":        t.Pt,
			"font":      t.Font.String(),
			"align":     t.Align.String(),
			"material":  t.Material.String(),
			"transform": describeTransform(t.Transform),
		}
	})
	out["buttons"] = describeAll(l.Buttons, func(b Button) map[string]any {
		return map[string]any{
			"name":      b.Name,
			"transform": describeTransform(b.Transform),
		}
	})
	out["button_doors"] = describeAll(l.ButtonDoors, func(d ButtonDoor) map[string]any {
		return map[string]any{
			"name":     d.Name,
			"default":  describeTransform(d.Default),
			"open":     describeTransform(d.Open),
			"size":     vec(d.Size),
			"material": d.Material.String(),
		}
	})
	out["dynamic"] = describeAll(l.DynamicObjects, func(d DynamicObject) map[string]any {
		return map[string]any{
			"type":      d.Type.String(),
			"size":      vec(d.Size),
			"material":  d.Material.String(),
			"transform": describeTransform(d.Transform),
		}
	})
	return out
}

// Dump renders the level as indented JSON with sorted keys. A non-empty
// query is a JSONPath expression; only its matches are written.
func Dump(l *Level, query string) (string, error) {
	var data any = Describe(l)
	if query != "" {
		x, err := jp.ParseString(query)
		if err != nil {
			return "", fmt.Errorf("levels: invalid jsonpath '%s': %w", query, err)
		}
		data = x.Get(data)
	}
	return oj.JSON(data, &oj.Options{Indent: 2, Sort: true}), nil
}

func describeAll[T any](items []T, fn func(T) map[string]any) []any {
	out := make([]any, len(items))
	for i, item := range items {
		out[i] = fn(item)
	}
	return out
}

func describeTransform(t bind.Transform) map[string]any {
	return map[string]any{
		"translation": vec(t.Translation),
		"rotation":    []any{t.Rotation.W, t.Rotation.V.X(), t.Rotation.V.Y(), t.Rotation.V.Z()},
		"scale":       vec(t.Scale),
	}
}

func vec(v mgl64.Vec3) []any {
	return []any{v.X(), v.Y(), v.Z()}
}
