package ufo

import (
	"bytes"
	"encoding/xml"
	"fmt"
	"strconv"

	"github.com/npillmayer/letterspace/glyph"
	"golang.org/x/image/math/f64"
)

// --- GLIF document structure -----------------------------------------------

type glifGlyph struct {
	XMLName  xml.Name      `xml:"glyph"`
	Name     string        `xml:"name,attr"`
	Format   string        `xml:"format,attr"`
	Advance  *glifAdvance  `xml:"advance"`
	Unicodes []glifUnicode `xml:"unicode"`
	Anchors  []glifAnchor  `xml:"anchor"`
	Outline  *glifOutline  `xml:"outline"`
}

type glifAdvance struct {
	Width  string `xml:"width,attr,omitempty"`
	Height string `xml:"height,attr,omitempty"`
}

type glifUnicode struct {
	Hex string `xml:"hex,attr"`
}

type glifAnchor struct {
	X          string `xml:"x,attr"`
	Y          string `xml:"y,attr"`
	Name       string `xml:"name,attr,omitempty"`
	Identifier string `xml:"identifier,attr,omitempty"`
}

type glifOutline struct {
	Contours   []glifContour   `xml:"contour"`
	Components []glifComponent `xml:"component"`
}

type glifContour struct {
	Identifier string      `xml:"identifier,attr,omitempty"`
	Points     []glifPoint `xml:"point"`
}

type glifPoint struct {
	X          string `xml:"x,attr"`
	Y          string `xml:"y,attr"`
	Type       string `xml:"type,attr,omitempty"`
	Smooth     string `xml:"smooth,attr,omitempty"`
	Name       string `xml:"name,attr,omitempty"`
	Identifier string `xml:"identifier,attr,omitempty"`
}

type glifComponent struct {
	Base       string `xml:"base,attr"`
	XScale     string `xml:"xScale,attr,omitempty"`
	XYScale    string `xml:"xyScale,attr,omitempty"`
	YXScale    string `xml:"yxScale,attr,omitempty"`
	YScale     string `xml:"yScale,attr,omitempty"`
	XOffset    string `xml:"xOffset,attr,omitempty"`
	YOffset    string `xml:"yOffset,attr,omitempty"`
	Identifier string `xml:"identifier,attr,omitempty"`
}

// --- Decoding --------------------------------------------------------------

// numberParser parses numeric attributes, remembering the first error.
type numberParser struct {
	err error
}

func (np *numberParser) parse(s string, def float64, attr string) float64 {
	if s == "" || np.err != nil {
		return def
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		np.err = fmt.Errorf("attribute %s: %w", attr, err)
		return def
	}
	return v
}

// parseGLIF decodes a GLIF document (format 1 or 2) into a glyph.
func parseGLIF(data []byte) (*glyph.Glyph, error) {
	var doc glifGlyph
	if err := xml.Unmarshal(data, &doc); err != nil {
		return nil, err
	}
	if doc.Name == "" {
		return nil, fmt.Errorf("glyph without name")
	}
	g := &glyph.Glyph{Name: doc.Name}
	np := &numberParser{}
	if doc.Advance != nil {
		g.Advance = np.parse(doc.Advance.Width, 0, "width")
	}
	for _, u := range doc.Unicodes {
		r, err := strconv.ParseUint(u.Hex, 16, 32)
		if err != nil {
			return nil, fmt.Errorf("glyph %s: unicode %q: %w", doc.Name, u.Hex, err)
		}
		g.Codepoints = append(g.Codepoints, rune(r))
	}
	var anchors []glyph.Anchor
	for _, a := range doc.Anchors {
		anchors = append(anchors, glyph.Anchor{
			Name: a.Name,
			X:    np.parse(a.X, 0, "x"),
			Y:    np.parse(a.Y, 0, "y"),
		})
	}
	if doc.Outline != nil {
		o := &glyph.Outline{}
		for _, c := range doc.Outline.Contours {
			contour := glyph.Contour{Identifier: c.Identifier}
			for _, p := range c.Points {
				typ, err := glyph.ParsePointType(p.Type)
				if err != nil {
					return nil, fmt.Errorf("glyph %s: %w", doc.Name, err)
				}
				contour.Points = append(contour.Points, glyph.ContourPoint{
					X:          np.parse(p.X, 0, "x"),
					Y:          np.parse(p.Y, 0, "y"),
					Type:       typ,
					Smooth:     p.Smooth == "yes",
					Name:       p.Name,
					Identifier: p.Identifier,
				})
			}
			if isFormat1Anchor(doc.Format, contour) {
				p := contour.Points[0]
				anchors = append(anchors, glyph.Anchor{Name: p.Name, X: p.X, Y: p.Y})
				continue
			}
			o.Contours = append(o.Contours, contour)
		}
		for _, c := range doc.Outline.Components {
			o.Components = append(o.Components, glyph.Component{
				Base: c.Base,
				Transform: f64.Aff3{
					np.parse(c.XScale, 1, "xScale"),
					np.parse(c.YXScale, 0, "yxScale"),
					np.parse(c.XOffset, 0, "xOffset"),
					np.parse(c.XYScale, 0, "xyScale"),
					np.parse(c.YScale, 1, "yScale"),
					np.parse(c.YOffset, 0, "yOffset"),
				},
				Identifier: c.Identifier,
			})
		}
		o.Anchors = anchors
		g.Outline = o
	}
	if np.err != nil {
		return nil, fmt.Errorf("glyph %s: %w", doc.Name, np.err)
	}
	return g, nil
}

// isFormat1Anchor recognizes anchors of GLIF format 1, which are stored as
// contours consisting of a single, named move point.
func isFormat1Anchor(format string, c glyph.Contour) bool {
	return format == "1" && len(c.Points) == 1 && c.Points[0].Type == glyph.Move &&
		c.Points[0].Name != ""
}

// --- Encoding --------------------------------------------------------------

func formatNumber(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

func formatOptional(v, def float64) string {
	if v == def {
		return ""
	}
	return formatNumber(v)
}

// formatGLIF encodes a glyph as a GLIF document of format 2.
func formatGLIF(g *glyph.Glyph) ([]byte, error) {
	doc := glifGlyph{Name: g.Name, Format: "2"}
	if g.Advance != 0 {
		doc.Advance = &glifAdvance{Width: formatNumber(g.Advance)}
	}
	for _, r := range g.Codepoints {
		doc.Unicodes = append(doc.Unicodes, glifUnicode{Hex: fmt.Sprintf("%04X", r)})
	}
	if g.Outline != nil {
		for _, a := range g.Outline.Anchors {
			doc.Anchors = append(doc.Anchors, glifAnchor{
				X: formatNumber(a.X), Y: formatNumber(a.Y), Name: a.Name,
			})
		}
		o := &glifOutline{}
		for _, c := range g.Outline.Contours {
			contour := glifContour{Identifier: c.Identifier}
			for _, p := range c.Points {
				gp := glifPoint{
					X:          formatNumber(p.X),
					Y:          formatNumber(p.Y),
					Name:       p.Name,
					Identifier: p.Identifier,
				}
				if p.Type != glyph.OffCurve {
					gp.Type = p.Type.String()
				}
				if p.Smooth {
					gp.Smooth = "yes"
				}
				contour.Points = append(contour.Points, gp)
			}
			o.Contours = append(o.Contours, contour)
		}
		for _, c := range g.Outline.Components {
			m := c.Transform
			o.Components = append(o.Components, glifComponent{
				Base:       c.Base,
				XScale:     formatOptional(m[0], 1),
				YXScale:    formatOptional(m[1], 0),
				XOffset:    formatOptional(m[2], 0),
				XYScale:    formatOptional(m[3], 0),
				YScale:     formatOptional(m[4], 1),
				YOffset:    formatOptional(m[5], 0),
				Identifier: c.Identifier,
			})
		}
		doc.Outline = o
	}
	var buf bytes.Buffer
	buf.WriteString(xml.Header)
	enc := xml.NewEncoder(&buf)
	enc.Indent("", "  ")
	if err := enc.Encode(doc); err != nil {
		return nil, err
	}
	buf.WriteByte('\n')
	return buf.Bytes(), nil
}
