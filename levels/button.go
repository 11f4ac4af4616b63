package levels

import (
	"github.com/go-gl/mathgl/mgl64"

	"github.com/milk9111/levelkit/assets"
	"github.com/milk9111/levelkit/bind"
	"github.com/milk9111/levelkit/diag"
	"github.com/milk9111/levelkit/kdl"
)

type Button struct {
	Name      string
	Transform bind.Transform
}

// BindButton binds `button "name" { transform }`.
func BindButton(n *kdl.Node, ctx *BindContext) (Button, error) {
	src := ctx.Source
	name, tr, err := diag.Merge2(
		diag.R(bind.MustString(n, kdl.Arg(0), src)),
		diag.R(bind.NodeTransform(n, src)),
	)
	if diag.IsFailure(err) {
		return Button{}, err
	}
	return Button{Name: name, Transform: tr}, err
}

// ButtonDoor is a door opened by the button whose name matches Name.
type ButtonDoor struct {
	Name     string
	Default  bind.Transform
	Open     bind.Transform
	Size     mgl64.Vec3
	Material assets.Handle
}

// BindButtonDoor binds
// `button_door "name" material=ref { default { transform }; open { transform }; size x [y z] }`.
func BindButtonDoor(n *kdl.Node, ctx *BindContext) (ButtonDoor, error) {
	src := ctx.Source

	name, def, open, size, material, err := diag.Merge5(
		diag.R(bind.MustString(n, kdl.Arg(0), src)),
		diag.R(childTransform(n, "default", src)),
		diag.R(childTransform(n, "open", src)),
		diag.R(childScale(n, "size", src)),
		diag.R(bind.HandleOr(n, kdl.Prop("material"), assets.KindMaterial, ctx.Resolver, src, defaultPlaneMaterial())),
	)
	if diag.IsFailure(err) {
		return ButtonDoor{}, err
	}
	return ButtonDoor{
		Name:     name,
		Default:  def,
		Open:     open,
		Size:     size,
		Material: material,
	}, err
}

// childTransform reads the transform inside the required child called name.
func childTransform(n *kdl.Node, name string, src *diag.Source) (bind.Transform, error) {
	child, err := bind.MustChild(n, name, src)
	if err != nil {
		return bind.Transform{}, err
	}
	return bind.MustNodeTransform(child, src)
}
