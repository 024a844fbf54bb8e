package category

import (
	"github.com/npillmayer/letterspace/glyph"
	"github.com/npillmayer/letterspace/spacing"
)

// Override wraps a policy and replaces its choices for individual glyphs.
type Override struct {
	Policy     spacing.Policy     // wrapped policy, Default if nil
	Factors    map[string]float64 // glyph name → area factor
	References map[string]string  // glyph name → reference glyph name
}

// ConfigFor implements spacing.Policy.
func (o Override) ConfigFor(g *glyph.Glyph, layer *glyph.Layer) (float64, *glyph.Glyph) {
	p := o.Policy
	if p == nil {
		p = Default
	}
	factor, ref := p.ConfigFor(g, layer)
	if f, ok := o.Factors[g.Name]; ok {
		factor = f
	}
	if name, ok := o.References[g.Name]; ok {
		if r := layer.Glyph(name); r != nil {
			ref = r
		} else {
			tracer().Infof("glyph %s: reference glyph %s not found", g.Name, name)
		}
	}
	return factor, ref
}
