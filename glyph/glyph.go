package glyph

import (
	"fmt"

	"golang.org/x/image/math/f64"
)

// PointType is the type tag of a contour point.
type PointType uint8

const (
	OffCurve PointType = iota // control point
	Move                      // start of an open contour
	Line                      // on-curve, straight segment
	Curve                     // on-curve, cubic segment
	QCurve                    // on-curve, quadratic segment
)

var pointTypeNames = [...]string{"offcurve", "move", "line", "curve", "qcurve"}

func (t PointType) String() string {
	if int(t) < len(pointTypeNames) {
		return pointTypeNames[t]
	}
	return fmt.Sprintf("PointType(%d)", t)
}

// IsOnCurve is true for all point types except OffCurve.
func (t PointType) IsOnCurve() bool {
	return t != OffCurve
}

// ParsePointType parses the GLIF spelling of a point type. An empty string
// denotes an off-curve point.
func ParsePointType(s string) (PointType, error) {
	if s == "" {
		return OffCurve, nil
	}
	for i, name := range pointTypeNames {
		if s == name {
			return PointType(i), nil
		}
	}
	return OffCurve, fmt.Errorf("glyph: unknown point type %q", s)
}

// ContourPoint is a single typed point of a contour.
type ContourPoint struct {
	X, Y       float64
	Type       PointType
	Smooth     bool
	Name       string // optional
	Identifier string // optional
}

// Contour is an ordered list of points. The order is significant.
type Contour struct {
	Points     []ContourPoint
	Identifier string
}

// IsOpen reports whether c is an open contour, i.e. starts with a Move point.
func (c Contour) IsOpen() bool {
	return len(c.Points) > 0 && c.Points[0].Type == Move
}

// Component references another glyph of the same layer, placed with an
// affine transform.
type Component struct {
	Base       string
	Transform  f64.Aff3 // {xx, yx, dx, xy, yy, dy}
	Identifier string
}

// Anchor is a named point of a glyph.
type Anchor struct {
	Name string
	X, Y float64
}

// Outline is the drawing of a glyph: its own contours plus components.
type Outline struct {
	Contours   []Contour
	Components []Component
	Anchors    []Anchor
}

// IsEmpty reports whether the outline neither has contours nor components.
func (o *Outline) IsEmpty() bool {
	return o == nil || (len(o.Contours) == 0 && len(o.Components) == 0)
}

// IsComposite reports whether the outline references other glyphs.
func (o *Outline) IsComposite() bool {
	return o != nil && len(o.Components) > 0
}

// Glyph is a named glyph. A nil Outline means the glyph has no drawing at all,
// as is the case for a space.
type Glyph struct {
	Name       string
	Codepoints []rune
	Advance    float64
	Outline    *Outline
}

// Codepoint returns the first codepoint assigned to g, if any.
func (g *Glyph) Codepoint() (rune, bool) {
	if g == nil || len(g.Codepoints) == 0 {
		return 0, false
	}
	return g.Codepoints[0], true
}

func (g *Glyph) String() string {
	if g == nil {
		return "<nil glyph>"
	}
	if r, ok := g.Codepoint(); ok {
		return fmt.Sprintf("%s (U+%04X)", g.Name, r)
	}
	return g.Name
}

// --- Font metrics ----------------------------------------------------------

// FontMetrics holds the font-wide values the spacing calculation depends on.
// ItalicAngle is in degrees, using the font convention: negative values lean
// to the right.
type FontMetrics struct {
	UnitsPerEm  float64
	ItalicAngle float64
	XHeight     float64
}

// DefaultMetrics returns the metrics assumed for fonts not declaring any.
func DefaultMetrics() FontMetrics {
	return FontMetrics{UnitsPerEm: 1000}
}

// Normalized replaces a missing units-per-em value by 1000.
func (m FontMetrics) Normalized() FontMetrics {
	if m.UnitsPerEm <= 0 {
		m.UnitsPerEm = 1000
	}
	return m
}
