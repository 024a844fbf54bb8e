package outline

import (
	"github.com/npillmayer/letterspace/geom"
	"github.com/npillmayer/letterspace/glyph"
)

// PathForGlyph assembles the complete path of a glyph: its own contours,
// followed by the contours of its (recursively) decomposed components.
//
// ok is false for a glyph without an outline, which is not an error. An error
// is of type *GlyphError and wraps the error of the failing contour.
func PathForGlyph(g *glyph.Glyph, layer *glyph.Layer, opts ...Option) (path geom.Path, ok bool, err error) {
	if g == nil || g.Outline == nil {
		return nil, false, nil
	}
	for i, c := range g.Outline.Contours {
		elements, err := DecodeContour(c, opts...)
		if err != nil {
			return nil, false, &GlyphError{Glyph: g.Name, Contour: i, Err: err}
		}
		path.Append(elements...)
	}
	for i, c := range DecomposeComponents(g, layer) {
		elements, err := DecodeContour(c, opts...)
		if err != nil {
			return nil, false, &GlyphError{Glyph: g.Name, Contour: i, Component: true, Err: err}
		}
		path.Append(elements...)
	}
	tracer().Debugf("glyph %s: path with %d elements", g.Name, len(path))
	return path, true, nil
}

// Bounds returns the bounding box of a glyph's path, including curve extrema.
// ok is false for glyphs without an outline.
func Bounds(g *glyph.Glyph, layer *glyph.Layer, opts ...Option) (box geom.Rect, ok bool, err error) {
	path, ok, err := PathForGlyph(g, layer, opts...)
	if !ok || err != nil {
		return geom.EmptyRect(), ok, err
	}
	return path.BoundingBox(), true, nil
}
