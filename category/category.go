/*
Package category selects area factors and reference glyphs for spacing, based
on the Unicode general category of a glyph.

The table follows the default configuration of HTLetterspacer, reduced to what
bare Unicode data can tell:

	Lu            1.25  reference "H"
	Ll            1.0   reference "x"   (".sc": 1.1 "h.sc", ".sups": 0.7 "m.sups")
	Nd            1.2   reference "one" (".osf": "zero.osf")
	No            1.0                   (numerators, denominators, inferiors, superiors: 0.8)
	Ps Pe Pi Pf   1.2
	Po            1.4                   ("/": 1.0)
	Sc            1.6
	Sm So         1.5
	other         1.0

Glyphs without a codepoint inherit the codepoint of the glyph named by the part
of their name before the first '.', e.g. "a.sc" is treated like "a". Where no
reference glyph is given, or the reference glyph is missing from the layer, a
glyph is measured against itself.

______________________________________________________________________

# License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © Norbert Pillmayer <norbert@pillmayer.com>
*/
package category

import (
	"fmt"
	"strings"
	"unicode"

	"github.com/npillmayer/letterspace/glyph"
	"github.com/npillmayer/letterspace/spacing"
	"golang.org/x/text/unicode/runenames"
)

// Default is the policy based on Unicode general categories.
var Default spacing.Policy = spacing.PolicyFunc(ConfigFor)

// ConfigFor returns the area factor and the reference glyph for g.
func ConfigFor(g *glyph.Glyph, layer *glyph.Layer) (float64, *glyph.Glyph) {
	refOrSelf := func(name string) *glyph.Glyph {
		if ref := layer.Glyph(name); ref != nil {
			return ref
		}
		return g
	}
	name := g.Name
	r, ok := Codepoint(g, layer)
	if !ok {
		if name == "IJ" {
			return 1.25, refOrSelf("H")
		}
		return 1.0, g
	}
	switch Of(r) {
	case "Lu":
		return 1.25, refOrSelf("H")
	case "Ll":
		switch {
		case strings.Contains(name, ".sc"):
			return 1.1, refOrSelf("h.sc")
		case strings.Contains(name, ".sups"):
			return 0.7, refOrSelf("m.sups")
		}
		return 1.0, refOrSelf("x")
	case "Nd":
		if strings.Contains(name, ".osf") {
			return 1.2, refOrSelf("zero.osf")
		}
		return 1.2, refOrSelf("one")
	case "No":
		for _, s := range []string{".dnom", ".numr", ".inferior", "superior"} {
			if strings.Contains(name, s) {
				return 0.8, g
			}
		}
		return 1.0, g
	case "Ps", "Pe", "Pi", "Pf":
		return 1.2, g
	case "Po":
		if r == '/' {
			return 1.0, g
		}
		return 1.4, g
	case "Sc":
		return 1.6, g
	case "Sm", "So":
		return 1.5, g
	}
	return 1.0, g
}

// Codepoint determines the codepoint a glyph stands for: its own first
// codepoint or, failing that, the first codepoint of its base glyph, i.e. the
// glyph named by the part of g's name before the first '.'.
func Codepoint(g *glyph.Glyph, layer *glyph.Layer) (rune, bool) {
	if r, ok := g.Codepoint(); ok {
		return r, true
	}
	base, _, _ := strings.Cut(g.Name, ".")
	return layer.Glyph(base).Codepoint()
}

// categories lists the general categories this package distinguishes,
// letters first.
var categories = []struct {
	name  string
	table *unicode.RangeTable
}{
	{"Lu", unicode.Lu}, {"Ll", unicode.Ll},
	{"Nd", unicode.Nd}, {"No", unicode.No},
	{"Ps", unicode.Ps}, {"Pe", unicode.Pe}, {"Pi", unicode.Pi}, {"Pf", unicode.Pf}, {"Po", unicode.Po},
	{"Sc", unicode.Sc}, {"Sm", unicode.Sm}, {"So", unicode.So},
}

// Of returns the two-letter general category of r, as far as it is relevant
// for spacing, or "" for other categories.
func Of(r rune) string {
	for _, c := range categories {
		if unicode.Is(c.table, r) {
			return c.name
		}
	}
	return ""
}

// Describe returns a human readable description of r, including its Unicode
// name and general category.
func Describe(r rune) string {
	name := runenames.Name(r)
	if cat := Of(r); cat != "" {
		return fmt.Sprintf("U+%04X %s (%s)", r, name, cat)
	}
	return fmt.Sprintf("U+%04X %s", r, name)
}
