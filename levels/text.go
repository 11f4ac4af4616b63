package levels

import (
	"github.com/milk9111/levelkit/assets"
	"github.com/milk9111/levelkit/bind"
	"github.com/milk9111/levelkit/diag"
	"github.com/milk9111/levelkit/kdl"
	"github.com/milk9111/levelkit/scene"
)

const DefaultTextPt = 64

type Text struct {
	Text      string
	Pt        float64
	Font      assets.Handle
	Align     scene.TextAlign
	Material  assets.Handle
	Transform bind.Transform
}

// BindText binds `text "content" pt=64 font=ref align=left|center|right material=ref { transform }`.
func BindText(n *kdl.Node, ctx *BindContext) (Text, error) {
	src := ctx.Source
	var c diag.Collector

	text, err := bind.MustString(n, kdl.Arg(0), src)
	c.Add(err)
	pt, err := bind.NumberOr(n, kdl.Prop("pt"), src, DefaultTextPt)
	c.Add(err)
	font, err := bind.HandleOr(n, kdl.Prop("font"), assets.KindFont, ctx.Resolver, src, defaultTextFont())
	c.Add(err)
	align, err := bind.VariantOr(n, kdl.Prop("align"), src, scene.TextAligns, scene.AlignCenter)
	c.Add(err)
	material, err := bind.HandleOr(n, kdl.Prop("material"), assets.KindMaterial, ctx.Resolver, src, defaultTextMaterial())
	c.Add(err)
	tr, err := bind.NodeTransform(n, src)
	c.Add(err)

	if c.Failed() {
		return Text{}, c.Err()
	}
	return Text{
		Text:      text,
		Pt:        pt,
		Font:      font,
		Align:     align,
		Material:  material,
		Transform: tr,
	}, c.Err()
}
