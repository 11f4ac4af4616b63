package levels

import (
	"github.com/milk9111/levelkit/assets"
	"github.com/milk9111/levelkit/bind"
	"github.com/milk9111/levelkit/diag"
	"github.com/milk9111/levelkit/kdl"
)

type PlaneType int

const (
	PlaneStatic PlaneType = iota
	PlaneDeath
)

var PlaneTypes = []PlaneType{PlaneStatic, PlaneDeath}

func (t PlaneType) String() string {
	if t == PlaneDeath {
		return "death"
	}
	return "static"
}

type Plane struct {
	Width     float64
	Length    float64
	Type      PlaneType
	Material  assets.Handle
	Transform bind.Transform
}

// BindPlane binds `plane size [size2] type=static|death material=ref { transform }`.
func BindPlane(n *kdl.Node, ctx *BindContext) (Plane, error) {
	src := ctx.Source

	size := diag.R(bind.MustNumber(n, kdl.Arg(0), src))
	size2 := diag.R(bind.Opt(bind.Number(n, kdl.Arg(1), src)))
	typ := diag.R(bind.VariantOr(n, kdl.Prop("type"), src, PlaneTypes, PlaneStatic))
	material := diag.R(bind.HandleOr(n, kdl.Prop("material"), assets.KindMaterial, ctx.Resolver, src, defaultPlaneMaterial()))
	trans := diag.R(bind.NodeTransform(n, src))

	width, length, planeType, mat, tr, err := diag.Merge5(size, size2, typ, material, trans)
	if diag.IsFailure(err) {
		return Plane{}, err
	}

	return Plane{
		Width:     width,
		Length:    length.Or(width),
		Type:      planeType,
		Material:  mat,
		Transform: tr,
	}, err
}
