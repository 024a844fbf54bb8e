/*
Package letterspace computes sidebearings for the glyphs of a font from their
outline geometry.

The model follows the observation that optically even spacing keeps the white
area next to a glyph roughly constant. For every glyph, the outline is scanned
with horizontal lines within a vertical zone taken from a reference glyph. The
resulting left and right polygons describe the white area a glyph already
"owns". The sidebearings make up the difference to a target area, weighted by
a factor depending on the kind of glyph.

The work is split into packages:

▪︎ glyph holds the data model: contours with typed points, components, layers.

▪︎ outline turns contours and components into paths.

▪︎ spacing builds the spacing polygons and calculates sidebearings.

▪︎ category selects factors and reference glyphs by Unicode category.

▪︎ ufo reads and writes font sources in UFO format.

This package ties them together: LoadFont opens a UFO directory or a compiled
font file, and a Font creates Spacers for its glyphs.

	font, err := letterspace.LoadFont("MyFont-Regular.ufo")
	if err != nil {
		...
	}
	batch := font.Spacer(spacing.DefaultParams()).SpaceLayer()
	for _, r := range batch.Results {
		fmt.Println(r)
	}

# Links

The spacing model was popularized by HT Letterspacer:
https://github.com/huertatipografica/HTLetterspacer

______________________________________________________________________

# License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © Norbert Pillmayer <norbert@pillmayer.com>
*/
package letterspace

import "github.com/npillmayer/schuko/tracing"

// tracer writes to trace with key 'letterspace'
func tracer() tracing.Trace {
	return tracing.Select("letterspace")
}
