/*
Package spacing computes sidebearings from the outline geometry of glyphs.

A glyph's path is scanned with horizontal lines to find the outermost ink on
either side. From these hits two spacing polygons are built, one per side:

	▪︎ hits of slanted glyphs are deskewed first,
	▪︎ deep counterforms are cut at a maximum depth relative to the x-height,
	▪︎ counterforms opening to the side are closed at about 45°.

The area of a polygon is the white space the glyph's shape already brings
along. Sidebearings fill up the difference to a target white area, which is
the same for all glyphs of a category. Categories scale the target area by a
factor and define a reference glyph, whose vertical extent is the measurement
zone. Choosing factors and reference glyphs is left to a Policy; package
category holds one based on Unicode general categories.

A Spacer bundles a layer, the font metrics, the tunables and a policy:

	spacer := spacing.NewSpacer(layer, metrics, category.Default)
	res, err := spacer.Compute(layer.Glyph("H"))

Spacing a whole layer is done concurrently by SpaceLayer.

______________________________________________________________________

# License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © Norbert Pillmayer <norbert@pillmayer.com>
*/
package spacing

import "github.com/npillmayer/schuko/tracing"

// tracer writes to trace with key 'letterspace'
func tracer() tracing.Trace {
	return tracing.Select("letterspace")
}
