package levels

import (
	"github.com/milk9111/levelkit/assets"
	"github.com/milk9111/levelkit/diag"
)

// BindContext carries what every binder needs for one document.
type BindContext struct {
	Source   *diag.Source
	Resolver *assets.Resolver
}

func NewBindContext(src *diag.Source, r *assets.Resolver) *BindContext {
	return &BindContext{Source: src, Resolver: r}
}

func defaultPlaneMaterial() assets.Handle {
	return assets.BuiltinHandle(assets.KindMaterial, assets.DefaultPlaneMaterial)
}

func defaultTextMaterial() assets.Handle {
	return assets.BuiltinHandle(assets.KindMaterial, assets.DefaultTextMaterial)
}

func defaultTextFont() assets.Handle {
	return assets.BuiltinHandle(assets.KindFont, assets.DefaultTextFont)
}
