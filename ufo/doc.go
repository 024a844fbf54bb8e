/*
Package ufo reads and writes font sources in Unified Font Object format.

A UFO is a directory holding property lists (metainfo.plist, fontinfo.plist,
layercontents.plist) and one directory per glyph layer. Every layer directory
lists its glyphs in contents.plist and stores each glyph as a GLIF XML file.

This package supports what the spacing tools need: font metrics, glyph
outlines with components and anchors, and writing additional layers, e.g. a
background layer with visualized spacing polygons. Kerning, features, groups
and lib data are left untouched when writing into an existing UFO.

	font, err := ufo.Open("MyFont-Regular.ufo")
	if err != nil {
		...
	}
	H := font.Default.Glyph("H")

______________________________________________________________________

# License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © Norbert Pillmayer <norbert@pillmayer.com>
*/
package ufo

import "github.com/npillmayer/schuko/tracing"

// tracer writes to trace with key 'letterspace'
func tracer() tracing.Trace {
	return tracing.Select("letterspace")
}
