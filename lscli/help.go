package main

import (
	"strings"

	"github.com/pterm/pterm"
)

func helpOp(intp *Intp, op *Op) (error, bool) {
	help(op.arg)
	return nil, false
}

func help(topic string) {
	tracer().Infof("help %v", topic)
	t := strings.ToLower(topic)
	switch t {
	case "set", "params", "parameters":
		pterm.Info.Println("Spacing parameters")
		pterm.Println(`
	set:<name>:<value> changes a parameter, params lists them.
	+-------------+---------------------------------------------------+
	| area        | target white area per side, for 1000 units per em |
	| depth       | counterform depth cut, percent of x-height        |
	| overshoot   | widening of the reference zone, percent of x-height |
	| frequency   | distance between scanlines in font units          |
	| workers     | concurrent glyphs when spacing all glyphs         |
	| superbezier | true: accept curves with more than two off-curves |
	+-------------+---------------------------------------------------+
	`)
	case "space", "write":
		pterm.Info.Println("Spacing")
		pterm.Println(`
	space:<glyph> computes the sidebearings of one glyph.
	space         computes the sidebearings of all glyphs.
	write         writes the spacing polygons of the last "space" run into
	              the layer public.background of the UFO.
	write:<path>  does the same for a copy of the UFO at <path>.
	`)
	default:
		pterm.Info.Println("Commands")
		pterm.Println(`
	load:<path>       load a UFO directory or a TTF/OTF font
	info              print font metrics
	glyphs[:prefix]   list glyph names
	glyph:<name>      print outline information of a glyph
	space[:<name>]    compute sidebearings (help:space)
	set:<name>:<val>  change a spacing parameter (help:set)
	params            print spacing parameters
	write[:<path>]    write the background layer (help:write)
	quit              leave (or <ctrl>D)
	`)
	}
}
