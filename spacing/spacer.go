package spacing

import (
	"errors"
	"fmt"
	"math"

	"github.com/npillmayer/letterspace/geom"
	"github.com/npillmayer/letterspace/glyph"
	"github.com/npillmayer/letterspace/outline"
)

// Errors for glyphs which cannot be spaced.
var (
	ErrMissingXHeight = errors.New("font has no x-height")
	ErrDegenerateZone = errors.New("reference zone has no height")
	ErrGlyphNotFound  = errors.New("glyph not found")
)

// Policy selects the area factor and the reference glyph for a glyph. The
// reference glyph's vertical extent defines the measurement zone.
type Policy interface {
	ConfigFor(g *glyph.Glyph, layer *glyph.Layer) (factor float64, ref *glyph.Glyph)
}

// PolicyFunc adapts a function to the Policy interface.
type PolicyFunc func(g *glyph.Glyph, layer *glyph.Layer) (float64, *glyph.Glyph)

// ConfigFor calls f(g, layer).
func (f PolicyFunc) ConfigFor(g *glyph.Glyph, layer *glyph.Layer) (float64, *glyph.Glyph) {
	return f(g, layer)
}

// SelfReference is the policy used if a Spacer has none: every glyph is
// measured against its own extent with a factor of 1.
var SelfReference = PolicyFunc(func(g *glyph.Glyph, _ *glyph.Layer) (float64, *glyph.Glyph) {
	return 1, g
})

// Spacer computes sidebearings for the glyphs of a layer. The layer and the
// metrics must not be changed while a Spacer is using them.
type Spacer struct {
	Layer   *glyph.Layer
	Metrics glyph.FontMetrics
	Params  Params
	Policy  Policy
}

// NewSpacer creates a Spacer with default parameters.
func NewSpacer(layer *glyph.Layer, metrics glyph.FontMetrics, policy Policy) *Spacer {
	return &Spacer{
		Layer:   layer,
		Metrics: metrics,
		Params:  DefaultParams(),
		Policy:  policy,
	}
}

// Result holds the spacing of a single glyph.
type Result struct {
	Glyph string
	// Left and Right are the computed sidebearings, rounded up to whole units.
	// They are measured from the extreme points of the glyph's ink.
	Left, Right float64
	// Defined is false for glyphs without ink, e.g. a space. Left and Right
	// are meaningless then.
	Defined   bool
	Factor    float64 // area factor the policy selected
	Reference string  // name of the reference glyph
	Polygons  *Polygons
	Debug     *glyph.Glyph // polygons drawn as open contours, for visual inspection
}

func (r Result) String() string {
	if !r.Defined {
		return fmt.Sprintf("%s: undefined", r.Glyph)
	}
	return fmt.Sprintf("%s: left %g, right %g (factor %g, reference %s)",
		r.Glyph, r.Left, r.Right, r.Factor, r.Reference)
}

// Compute calculates the sidebearings of g.
//
// A glyph without ink yields a Result with Defined == false and no error.
// Errors report malformed outlines of g or of its reference glyph, as well as
// fonts lacking the metrics the model depends on.
func (s *Spacer) Compute(g *glyph.Glyph) (Result, error) {
	if g == nil {
		return Result{}, ErrGlyphNotFound
	}
	res := Result{Glyph: g.Name}
	if err := s.Params.Validate(); err != nil {
		return res, err
	}
	opts := []outline.Option{outline.DecomposeSuperBeziers(s.Params.DecomposeSuperBeziers)}
	path, ok, err := outline.PathForGlyph(g, s.Layer, opts...)
	if err != nil {
		return res, err
	}
	if !ok || path.IsEmpty() {
		tracer().Debugf("glyph %s has no outline", g.Name)
		return res, nil
	}
	m := s.Metrics.Normalized()
	if m.XHeight <= 0 {
		return res, ErrMissingXHeight
	}
	bounds := path.BoundingBox()
	factor, ref := s.policy().ConfigFor(g, s.Layer)
	if ref == nil {
		ref = g
	}
	res.Factor, res.Reference = factor, ref.Name
	refBounds := bounds
	if ref != g {
		refPath, ok, err := outline.PathForGlyph(ref, s.Layer, opts...)
		if err != nil {
			return res, fmt.Errorf("reference glyph %s: %w", ref.Name, err)
		}
		if !ok || refPath.IsEmpty() {
			tracer().Infof("glyph %s: reference glyph %s has no outline", g.Name, ref.Name)
			return res, nil
		}
		refBounds = refPath.BoundingBox()
	}
	overshoot := m.XHeight * s.Params.Overshoot / 100
	zone := Zone{
		Lower: math.Round(refBounds.Min.Y - overshoot),
		Upper: math.Round(refBounds.Max.Y + overshoot),
	}
	if zone.Height() <= 0 {
		return res, fmt.Errorf("reference glyph %s, zone %v: %w", ref.Name, zone, ErrDegenerateZone)
	}
	// deskewing expects positive angles for glyphs leaning to the right
	polys, ok := BuildPolygons(path, bounds, zone, -m.ItalicAngle, m.XHeight,
		s.Params.Frequency, s.Params.Depth)
	if !ok {
		tracer().Infof("glyph %s has no ink within zone %v", g.Name, zone)
		return res, nil
	}
	distLeft := math.Ceil(polys.ExtremeLeft.X - polys.ExtremeLeftFull.X)
	distRight := math.Ceil(polys.ExtremeRightFull.X - polys.ExtremeRight.X)
	left := SidebearingValue(factor, zone, s.Params.Area, polys.Left, m.UnitsPerEm, m.XHeight)
	right := SidebearingValue(factor, zone, s.Params.Area, polys.Right, m.UnitsPerEm, m.XHeight)
	res.Left = math.Ceil(left - distLeft)
	res.Right = math.Ceil(right - distRight)
	res.Defined = true
	res.Polygons = polys
	res.Debug = polys.DebugGlyph(g.Name)
	tracer().Debugf("%v", res)
	return res, nil
}

// Current measures the sidebearings a glyph with the given advance width has
// now, relative to the same extreme points Left and Right are measured from.
// For italic fonts these are deskewed positions. ok is false for undefined
// results.
func (r Result) Current(advance float64) (left, right float64, ok bool) {
	if !r.Defined || r.Polygons == nil {
		return 0, 0, false
	}
	return r.Polygons.ExtremeLeft.X, advance - r.Polygons.ExtremeRight.X, true
}

// Edges returns the x-positions of the glyph's origin and advance implied by
// the computed sidebearings, in the deskewed coordinates of the polygons.
func (r Result) Edges() (origin, advance float64, ok bool) {
	if !r.Defined || r.Polygons == nil {
		return 0, 0, false
	}
	return r.Polygons.ExtremeLeft.X - r.Left, r.Polygons.ExtremeRight.X + r.Right, true
}

func (s *Spacer) policy() Policy {
	if s.Policy == nil {
		return SelfReference
	}
	return s.Policy
}

// DebugGlyph draws the polygons as two open contours into a glyph named name.
// Coordinates are rounded to whole units.
func (p *Polygons) DebugGlyph(name string) *glyph.Glyph {
	o := &glyph.Outline{
		Contours: []glyph.Contour{polyline(p.Left), polyline(p.Right)},
	}
	return &glyph.Glyph{Name: name, Outline: o}
}

func polyline(pts []geom.Point) glyph.Contour {
	c := glyph.Contour{Points: make([]glyph.ContourPoint, len(pts))}
	for i, p := range pts {
		p = p.Round()
		typ := glyph.Line
		if i == 0 {
			typ = glyph.Move
		}
		c.Points[i] = glyph.ContourPoint{X: p.X, Y: p.Y, Type: typ}
	}
	return c
}

// Margins returns the current sidebearings of a glyph, as given by the
// bounding box of its ink and its advance width. ok is false for glyphs
// without ink.
func Margins(g *glyph.Glyph, layer *glyph.Layer) (left, right float64, ok bool, err error) {
	box, ok, err := outline.Bounds(g, layer, outline.DecomposeSuperBeziers(true))
	if err != nil || !ok || box.IsEmpty() {
		return 0, 0, false, err
	}
	return box.Min.X, g.Advance - box.Max.X, true, nil
}
