/*
Package outline turns glyph outlines into paths.

Font sources store a contour as a list of typed points, mixing on-curve and
off-curve points. DecodeContour reconstructs the explicit path elements
(MoveTo, LineTo, QuadTo, CubeTo, Close) from such a list. Composite glyphs
reference other glyphs through transformed components; DecomposeComponents
resolves them into flat contours in absolute coordinates. PathForGlyph puts
both together and yields the complete path of a glyph.

Malformed contours are reported as errors wrapping one of the sentinel errors
of this package, never by panicking:

	_, err := outline.DecodeContour(c)
	if errors.Is(err, outline.ErrIllegalPointCount) {
		...
	}

Dangling component references are tolerated and skipped silently.

______________________________________________________________________

# License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © Norbert Pillmayer <norbert@pillmayer.com>
*/
package outline

import "github.com/npillmayer/schuko/tracing"

// tracer writes to trace with key 'letterspace'
func tracer() tracing.Trace {
	return tracing.Select("letterspace")
}
