/*
Package glyph holds the data model of glyph outlines as font sources store
them: contours as lists of typed points, components referencing other glyphs
through affine transforms, and layers mapping glyph names to glyphs.

A Layer is the lookup context for component references. Layers are read-only
once loaded, which makes them safe for concurrent use by the spacing code.

Point types follow the UFO GLIF conventions:

	move      first point of an open contour
	line      on-curve point, straight segment
	curve     on-curve point, cubic segment (preceded by 0–2 off-curves)
	qcurve    on-curve point, quadratic segment (preceded by any number of off-curves)
	offcurve  control point

______________________________________________________________________

# License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © Norbert Pillmayer <norbert@pillmayer.com>
*/
package glyph
