package outline

import (
	"github.com/npillmayer/letterspace/geom"
	"github.com/npillmayer/letterspace/glyph"
	"golang.org/x/image/math/f64"
)

// MaxComponentDepth limits the nesting of components. Deeper references are
// cut and reported to the trace.
const MaxComponentDepth = 64

// lineage is the chain of base glyphs leading to a component, innermost first.
type lineage struct {
	name   string
	parent *lineage
	depth  int
}

func (l *lineage) contains(name string) bool {
	for ; l != nil; l = l.parent {
		if l.name == name {
			return true
		}
	}
	return false
}

type pendingComponent struct {
	component glyph.Component
	transform f64.Aff3 // accumulated transform, applies to the base's points
	lineage   *lineage
}

// DecomposeComponents returns the contours contributed by the components of g,
// resolved to absolute coordinates. Nested components are resolved as well,
// composing transforms such that a component's own transform is applied before
// the transforms of the components it is nested in.
//
// Components referencing glyphs missing from layer, or glyphs without an
// outline, are skipped. Cyclic references are cut. Point names survive, point
// and contour identifiers are dropped. The order of the returned contours is
// unspecified.
func DecomposeComponents(g *glyph.Glyph, layer *glyph.Layer) []glyph.Contour {
	if g == nil || !g.Outline.IsComposite() {
		return nil
	}
	var contours []glyph.Contour
	root := &lineage{name: g.Name}
	stack := make([]pendingComponent, 0, len(g.Outline.Components))
	for _, c := range g.Outline.Components {
		stack = append(stack, pendingComponent{component: c, transform: c.Transform, lineage: root})
		for len(stack) > 0 {
			top := stack[len(stack)-1]
			stack = stack[:len(stack)-1]
			baseName := top.component.Base
			if top.lineage.contains(baseName) {
				tracer().Errorf("glyph %s: cyclic component reference to %s, skipped", g.Name, baseName)
				continue
			}
			if top.lineage.depth >= MaxComponentDepth {
				tracer().Errorf("glyph %s: components nested deeper than %d, %s skipped",
					g.Name, MaxComponentDepth, baseName)
				continue
			}
			base := layer.Glyph(baseName)
			if base == nil || base.Outline == nil {
				tracer().Debugf("glyph %s: dangling component %s", g.Name, baseName)
				continue
			}
			for _, contour := range base.Outline.Contours {
				contours = append(contours, transformContour(contour, top.transform))
			}
			sub := base.Outline.Components
			if len(sub) == 0 {
				continue
			}
			lin := &lineage{name: baseName, parent: top.lineage, depth: top.lineage.depth + 1}
			for i := len(sub) - 1; i >= 0; i-- {
				stack = append(stack, pendingComponent{
					component: sub[i],
					transform: geom.Concat(top.transform, sub[i].Transform),
					lineage:   lin,
				})
			}
		}
	}
	return contours
}

func transformContour(c glyph.Contour, m f64.Aff3) glyph.Contour {
	out := glyph.Contour{Points: make([]glyph.ContourPoint, len(c.Points))}
	for i, p := range c.Points {
		q := geom.Transform(m, geom.Pt(p.X, p.Y))
		out.Points[i] = glyph.ContourPoint{
			X:      q.X,
			Y:      q.Y,
			Type:   p.Type,
			Smooth: p.Smooth,
			Name:   p.Name,
		}
	}
	return out
}
