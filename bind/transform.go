package bind

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/milk9111/levelkit/diag"
	"github.com/milk9111/levelkit/kdl"
)

type Axis int

const (
	AxisX Axis = iota
	AxisY
	AxisZ
)

var Axes = []Axis{AxisX, AxisY, AxisZ}

func (a Axis) String() string {
	switch a {
	case AxisY:
		return "y"
	case AxisZ:
		return "z"
	default:
		return "x"
	}
}

func (a Axis) Vec3() mgl64.Vec3 {
	switch a {
	case AxisY:
		return mgl64.Vec3{0, 1, 0}
	case AxisZ:
		return mgl64.Vec3{0, 0, 1}
	default:
		return mgl64.Vec3{1, 0, 0}
	}
}

type Transform struct {
	Translation mgl64.Vec3
	Rotation    mgl64.Quat
	Scale       mgl64.Vec3
}

func Identity() Transform {
	return Transform{Rotation: mgl64.QuatIdent(), Scale: mgl64.Vec3{1, 1, 1}}
}

// Translated returns a copy moved by offset.
func (t Transform) Translated(offset mgl64.Vec3) Transform {
	t.Translation = t.Translation.Add(offset)
	return t
}

// GetTransform reads an optional pos child, an optional scale child and
// any number of rot children from doc. Rotations are folded in declaration
// order as accum = rot * accum, so the last declared rotation is outermost.
// Problems in all three parts are reported together.
func GetTransform(doc *kdl.Document, src *diag.Source) (Transform, error) {
	t := Identity()

	translation := diag.Ok[*mgl64.Vec3](nil)
	if n, ok := doc.Get("pos"); ok {
		v, err := MustVec3(n, 0, src)
		translation = diag.R(&v, err)
	}

	scale := diag.Ok[*mgl64.Vec3](nil)
	if n, ok := doc.Get("scale"); ok {
		v, err := MustScale(n, 0, src)
		scale = diag.R(&v, err)
	}

	rotNodes := doc.All("rot")
	rots := make([]diag.Result[mgl64.Quat], 0, len(rotNodes))
	for _, n := range rotNodes {
		rots = append(rots, diag.R(MustRotation(n, 0, src)))
	}
	quats, rotErr := diag.MergeAll(rots)

	pos, size, rotations, err := diag.Merge3(translation, scale, diag.R(quats, rotErr))
	if diag.IsFailure(err) {
		return Transform{}, err
	}

	if pos != nil {
		t.Translation = *pos
	}
	if size != nil {
		t.Scale = *size
	}
	for _, q := range rotations {
		t.Rotation = q.Mul(t.Rotation)
	}
	return t, err
}

// NodeTransform reads the transform from n's children, or returns the
// identity transform when n has none.
func NodeTransform(n *kdl.Node, src *diag.Source) (Transform, error) {
	if n.Children == nil {
		return Identity(), nil
	}
	return GetTransform(n.Children, src)
}

// MustNodeTransform is NodeTransform for nodes that must have children.
func MustNodeTransform(n *kdl.Node, src *diag.Source) (Transform, error) {
	children, err := MustChildren(n, src)
	if err != nil {
		return Transform{}, err
	}
	return GetTransform(children, src)
}

// MustVec3 reads exactly three numbers starting at argument offset.
func MustVec3(n *kdl.Node, offset int, src *diag.Source) (mgl64.Vec3, error) {
	x, y, z, _, err := diag.Merge4(
		diag.R(MustNumber(n, kdl.Arg(offset), src)),
		diag.R(MustNumber(n, kdl.Arg(offset+1), src)),
		diag.R(MustNumber(n, kdl.Arg(offset+2), src)),
		diag.R(struct{}{}, extraArgs(n, offset, 3, src)),
	)
	return mgl64.Vec3{x, y, z}, err
}

// MustScale reads one to three numbers starting at offset. Missing y and z
// components take the value of x.
func MustScale(n *kdl.Node, offset int, src *diag.Source) (mgl64.Vec3, error) {
	extra := extraArgs(n, offset, 3, src)
	x, err := MustNumber(n, kdl.Arg(offset), src)
	if err != nil {
		return mgl64.Vec3{}, diag.Join(err, extra)
	}
	y, z, _, err := diag.Merge3(
		diag.R(NumberOr(n, kdl.Arg(offset+1), src, x)),
		diag.R(NumberOr(n, kdl.Arg(offset+2), src, x)),
		diag.R(struct{}{}, extra),
	)
	return mgl64.Vec3{x, y, z}, err
}

// MustRotation reads an axis name and an angle in degrees.
func MustRotation(n *kdl.Node, offset int, src *diag.Source) (mgl64.Quat, error) {
	axis, degrees, err := diag.Merge2(
		diag.R(MustVariant(n, kdl.Arg(offset), src, Axes)),
		diag.R(MustNumber(n, kdl.Arg(offset+1), src)),
	)
	if diag.IsFailure(err) {
		return mgl64.Quat{}, err
	}
	return mgl64.QuatRotate(mgl64.DegToRad(degrees), axis.Vec3()), err
}

func extraArgs(n *kdl.Node, offset, limit int, src *diag.Source) error {
	args := n.Args()
	if len(args) <= offset+limit {
		return nil
	}
	span := args[offset+limit].Span.Cover(args[len(args)-1].Span)
	return src.ParseError(fmt.Sprintf("expected at most %d numbers, found %d", limit, len(args)-offset), span)
}
