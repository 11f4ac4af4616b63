package levels

import (
	"github.com/go-gl/mathgl/mgl64"

	"github.com/milk9111/levelkit/assets"
	"github.com/milk9111/levelkit/bind"
	"github.com/milk9111/levelkit/diag"
	"github.com/milk9111/levelkit/kdl"
	"github.com/milk9111/levelkit/scene"
)

const DefaultDynamicSize = 0.25

type DynamicType int

const (
	DynamicSphere DynamicType = iota
	DynamicCube
)

var DynamicTypes = []DynamicType{DynamicSphere, DynamicCube}

func (t DynamicType) String() string {
	if t == DynamicCube {
		return "cube"
	}
	return "sphere"
}

func (t DynamicType) Mesh(size mgl64.Vec3) scene.Mesh {
	if t == DynamicCube {
		return scene.Mesh{Shape: scene.MeshCuboid, Size: size}
	}
	return scene.Mesh{Shape: scene.MeshSphere, Size: mgl64.Vec3{size.X(), size.X(), size.X()}}
}

func (t DynamicType) Collider(size mgl64.Vec3) scene.Collider {
	if t == DynamicCube {
		return scene.BoxCollider(size.X(), size.Y(), size.Z())
	}
	return scene.SphereCollider(size.X())
}

// DynamicObject is a physics prop that can press buttons. It is runtime
// state and is not respawned on a checkpoint restart.
type DynamicObject struct {
	Type      DynamicType
	Material  assets.Handle
	Transform bind.Transform
	Size      mgl64.Vec3
}

// BindDynamicObject binds `dyn type=sphere|cube material=ref { size x [y z]; transform }`.
func BindDynamicObject(n *kdl.Node, ctx *BindContext) (DynamicObject, error) {
	src := ctx.Source

	size := diag.Ok(mgl64.Vec3{DefaultDynamicSize, DefaultDynamicSize, DefaultDynamicSize})
	if child, ok := n.Child("size"); ok {
		size = diag.R(bind.MustScale(child, 0, src))
	}

	typ, material, tr, dims, err := diag.Merge4(
		diag.R(bind.VariantOr(n, kdl.Prop("type"), src, DynamicTypes, DynamicSphere)),
		diag.R(bind.HandleOr(n, kdl.Prop("material"), assets.KindMaterial, ctx.Resolver, src, defaultPlaneMaterial())),
		diag.R(bind.NodeTransform(n, src)),
		size,
	)
	if diag.IsFailure(err) {
		return DynamicObject{}, err
	}
	return DynamicObject{Type: typ, Material: material, Transform: tr, Size: dims}, err
}
