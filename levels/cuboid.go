package levels

import (
	"github.com/go-gl/mathgl/mgl64"

	"github.com/milk9111/levelkit/assets"
	"github.com/milk9111/levelkit/bind"
	"github.com/milk9111/levelkit/diag"
	"github.com/milk9111/levelkit/kdl"
)

type Cuboid struct {
	Size      mgl64.Vec3
	Material  assets.Handle
	Transform bind.Transform
}

// BindCuboid binds `cuboid material=ref { size x [y z]; transform }`.
func BindCuboid(n *kdl.Node, ctx *BindContext) (Cuboid, error) {
	src := ctx.Source

	material := diag.R(bind.HandleOr(n, kdl.Prop("material"), assets.KindMaterial, ctx.Resolver, src, defaultPlaneMaterial()))
	size := diag.R(childScale(n, "size", src))
	trans := diag.R(bind.NodeTransform(n, src))

	mat, dims, tr, err := diag.Merge3(material, size, trans)
	if diag.IsFailure(err) {
		return Cuboid{}, err
	}
	return Cuboid{Size: dims, Material: mat, Transform: tr}, err
}

// childScale reads the scale stored on the required child called name.
func childScale(n *kdl.Node, name string, src *diag.Source) (mgl64.Vec3, error) {
	child, err := bind.MustChild(n, name, src)
	if err != nil {
		return mgl64.Vec3{}, err
	}
	return bind.MustScale(child, 0, src)
}
