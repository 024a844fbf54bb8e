/*
Package fontload loads compiled fonts (TTF or OTF) and converts them into
glyph layers.

Compiled fonts have already resolved any components into plain contours, so
the glyphs of a converted layer never carry components. Codepoints are
recovered by a reverse lookup over the Basic Multilingual Plane.

______________________________________________________________________

# License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © Norbert Pillmayer <norbert@pillmayer.com>
*/
package fontload

import (
	"errors"
	"fmt"
	"os"

	"github.com/npillmayer/letterspace/glyph"
	"github.com/npillmayer/schuko/tracing"
	"golang.org/x/image/font"
	"golang.org/x/image/font/sfnt"
	"golang.org/x/image/math/fixed"
)

// tracer writes to trace with key 'letterspace'
func tracer() tracing.Trace {
	return tracing.Select("letterspace")
}

// ScalableFont is a parsed scalable font with original bytes and SFNT view.
type ScalableFont struct {
	Fontname string
	Binary   []byte
	SFNT     *sfnt.Font
}

// LoadOpenTypeFont loads an OpenType font (TTF or OTF) from a file.
func LoadOpenTypeFont(fontfile string) (*ScalableFont, error) {
	bytez, err := os.ReadFile(fontfile)
	if err != nil {
		return nil, err
	}
	f, err := ParseOpenTypeFont(bytez)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", fontfile, err)
	}
	if f.Fontname == "" {
		f.Fontname = fontfile
	}
	return f, nil
}

// ParseOpenTypeFont loads an OpenType font (TTF or OTF) from memory.
func ParseOpenTypeFont(fbytes []byte) (f *ScalableFont, err error) {
	f = &ScalableFont{Binary: fbytes}
	f.SFNT, err = sfnt.Parse(f.Binary)
	if err != nil {
		return nil, err
	}
	if f.Fontname, err = f.SFNT.Name(nil, sfnt.NameIDFull); err != nil {
		tracer().Debugf("font has no full name: %v", err)
		f.Fontname = ""
	}
	return f, nil
}

// ppem requests glyph data in font units, still in 26.6 fixed point format.
func (sf *ScalableFont) ppem() fixed.Int26_6 {
	return fixed.I(int(sf.SFNT.UnitsPerEm()))
}

// Metrics extracts the font-wide metrics relevant for spacing. A font without
// an x-height yields XHeight == 0.
func (sf *ScalableFont) Metrics() (glyph.FontMetrics, error) {
	var buf sfnt.Buffer
	m := glyph.FontMetrics{UnitsPerEm: float64(sf.SFNT.UnitsPerEm())}
	fm, err := sf.SFNT.Metrics(&buf, sf.ppem(), font.HintingNone)
	if err != nil {
		return m, err
	}
	m.XHeight = fromFixed(fm.XHeight)
	if post := sf.SFNT.PostTable(); post != nil {
		m.ItalicAngle = post.ItalicAngle
	}
	return m, nil
}

// Layer converts all glyphs of the font into a layer named name.
// Glyphs which cannot be loaded, e.g. bitmap glyphs, are skipped.
func (sf *ScalableFont) Layer(name string) (*glyph.Layer, error) {
	var buf sfnt.Buffer
	codepoints := sf.reverseCMap(&buf)
	layer := glyph.NewLayer(name)
	n := sf.SFNT.NumGlyphs()
	for i := 0; i < n; i++ {
		gi := sfnt.GlyphIndex(i)
		g, err := sf.Glyph(&buf, gi)
		if errors.Is(err, sfnt.ErrColoredGlyph) {
			tracer().Debugf("skipping colored glyph %d", i)
			continue
		} else if err != nil {
			return nil, fmt.Errorf("glyph %d: %w", i, err)
		}
		if layer.Has(g.Name) {
			g.Name = fmt.Sprintf("%s.gid%d", g.Name, i)
		}
		g.Codepoints = codepoints[gi]
		layer.Insert(g)
	}
	tracer().Infof("converted %d glyphs of font %s", layer.Len(), sf.Fontname)
	return layer, nil
}

// Glyph converts a single glyph of the font. Codepoints are not set.
func (sf *ScalableFont) Glyph(buf *sfnt.Buffer, gi sfnt.GlyphIndex) (*glyph.Glyph, error) {
	name, err := sf.SFNT.GlyphName(buf, gi)
	if err != nil || name == "" {
		name = fmt.Sprintf("gid%d", gi)
	}
	g := &glyph.Glyph{Name: name}
	adv, err := sf.SFNT.GlyphAdvance(buf, gi, sf.ppem(), font.HintingNone)
	if err != nil {
		return nil, err
	}
	g.Advance = fromFixed(adv)
	segs, err := sf.SFNT.LoadGlyph(buf, gi, sf.ppem(), nil)
	if err != nil {
		return nil, err
	}
	if contours := ContoursFromSegments(segs); len(contours) > 0 {
		g.Outline = &glyph.Outline{Contours: contours}
	}
	return g, nil
}

// reverseCMap maps glyph indices to the codepoints of the BMP referencing
// them.
func (sf *ScalableFont) reverseCMap(buf *sfnt.Buffer) map[sfnt.GlyphIndex][]rune {
	m := make(map[sfnt.GlyphIndex][]rune)
	for r := rune(0x20); r <= 0xFFFF; r++ {
		if r >= 0xD800 && r <= 0xDFFF {
			continue
		}
		gi, err := sf.SFNT.GlyphIndex(buf, r)
		if err != nil || gi == 0 {
			continue
		}
		m[gi] = append(m[gi], r)
	}
	return m
}

// ContoursFromSegments converts SFNT segments into closed contours in font
// coordinates. Segments are expected in 26.6 units with the y-axis pointing
// down, as sfnt.LoadGlyph delivers them for a ppem equal to units per em.
//
// Every contour is implicitly closed. If a contour does not end at its
// starting point, a closing line segment is added.
func ContoursFromSegments(segs []sfnt.Segment) []glyph.Contour {
	var contours []glyph.Contour
	var current glyph.Contour
	var start glyph.ContourPoint
	flush := func() {
		if len(current.Points) == 0 {
			return
		}
		last := current.Points[len(current.Points)-1]
		if last.X != start.X || last.Y != start.Y {
			current.Points = append(current.Points, start)
		}
		contours = append(contours, current)
		current = glyph.Contour{}
	}
	for _, seg := range segs {
		switch seg.Op {
		case sfnt.SegmentOpMoveTo:
			flush()
			start = point(seg.Args[0], glyph.Line)
		case sfnt.SegmentOpLineTo:
			current.Points = append(current.Points, point(seg.Args[0], glyph.Line))
		case sfnt.SegmentOpQuadTo:
			current.Points = append(current.Points,
				point(seg.Args[0], glyph.OffCurve),
				point(seg.Args[1], glyph.QCurve))
		case sfnt.SegmentOpCubeTo:
			current.Points = append(current.Points,
				point(seg.Args[0], glyph.OffCurve),
				point(seg.Args[1], glyph.OffCurve),
				point(seg.Args[2], glyph.Curve))
		}
	}
	flush()
	return contours
}

func point(p fixed.Point26_6, typ glyph.PointType) glyph.ContourPoint {
	return glyph.ContourPoint{X: fromFixed(p.X), Y: -fromFixed(p.Y), Type: typ}
}

func fromFixed(x fixed.Int26_6) float64 {
	return float64(x) / 64
}
