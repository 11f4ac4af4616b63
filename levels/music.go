package levels

import (
	"github.com/go-gl/mathgl/mgl64"

	"github.com/milk9111/levelkit/assets"
	"github.com/milk9111/levelkit/bind"
	"github.com/milk9111/levelkit/diag"
	"github.com/milk9111/levelkit/kdl"
)

type Music struct {
	Audio assets.Handle
}

// BindMusic binds `music "ref"`.
func BindMusic(n *kdl.Node, ctx *BindContext) (Music, error) {
	h, err := bind.MustHandle(n, kdl.Arg(0), assets.KindAudio, ctx.Resolver, ctx.Source)
	if err != nil {
		return Music{}, err
	}
	return Music{Audio: h}, nil
}

// TriggeredMusic switches the background music when the player enters a
// box of dimensions Size.
type TriggeredMusic struct {
	Audio     assets.Handle
	Size      mgl64.Vec3
	Transform bind.Transform
}

// BindTriggeredMusic binds `triggered_music "ref" x [y z] { transform }`.
// When no scale arguments follow the reference, a `size` child is used.
func BindTriggeredMusic(n *kdl.Node, ctx *BindContext) (TriggeredMusic, error) {
	src := ctx.Source

	var size diag.Result[mgl64.Vec3]
	if _, ok := n.Entry(kdl.Arg(1)); !ok && n.Children != nil {
		size = diag.R(childScale(n, "size", src))
	} else {
		size = diag.R(bind.MustScale(n, 1, src))
	}

	audio, dims, tr, err := diag.Merge3(
		diag.R(bind.MustHandle(n, kdl.Arg(0), assets.KindAudio, ctx.Resolver, src)),
		size,
		diag.R(bind.MustNodeTransform(n, src)),
	)
	if diag.IsFailure(err) {
		return TriggeredMusic{}, err
	}
	return TriggeredMusic{Audio: audio, Size: dims, Transform: tr}, err
}
