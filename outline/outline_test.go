package outline

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/npillmayer/letterspace/geom"
	"github.com/npillmayer/letterspace/glyph"
	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"github.com/stretchr/testify/suite"
)

// --- Test Suite Preparation ------------------------------------------------

type OutlineTestEnviron struct {
	suite.Suite
	layer *glyph.Layer
}

// listen for 'go test' command --> run test methods
func TestOutlineFunctions(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "letterspace")
	defer teardown()
	suite.Run(t, new(OutlineTestEnviron))
}

// run once, before test suite methods
func (env *OutlineTestEnviron) SetupSuite() {
	env.layer = glyph.NewLayer("public.default")
	env.layer.Insert(&glyph.Glyph{Name: "square", Outline: &glyph.Outline{
		Contours: []glyph.Contour{square(0, 0, 100)},
	}})
	env.layer.Insert(&glyph.Glyph{Name: "shifted", Outline: &glyph.Outline{
		Components: []glyph.Component{{Base: "square", Transform: geom.Translate(100, 0)}},
	}})
	env.layer.Insert(&glyph.Glyph{Name: "scaled", Outline: &glyph.Outline{
		Components: []glyph.Component{{Base: "shifted", Transform: geom.Scale(2, 2)}},
	}})
	env.layer.Insert(&glyph.Glyph{Name: "space"})
	env.layer.Insert(&glyph.Glyph{Name: "dangling", Outline: &glyph.Outline{
		Contours: []glyph.Contour{square(0, 0, 10)},
		Components: []glyph.Component{
			{Base: "missing", Transform: geom.Identity},
			{Base: "space", Transform: geom.Identity},
		},
	}})
	env.layer.Insert(&glyph.Glyph{Name: "ping", Outline: &glyph.Outline{
		Components: []glyph.Component{{Base: "pong", Transform: geom.Translate(10, 0)}},
	}})
	env.layer.Insert(&glyph.Glyph{Name: "pong", Outline: &glyph.Outline{
		Contours:   []glyph.Contour{square(0, 0, 10)},
		Components: []glyph.Component{{Base: "ping", Transform: geom.Translate(10, 0)}},
	}})
	env.layer.Insert(&glyph.Glyph{Name: "broken", Outline: &glyph.Outline{
		Contours: []glyph.Contour{square(0, 0, 10), {Points: []glyph.ContourPoint{
			on(0, 0, glyph.Line), on(10, 0, glyph.Move), on(10, 10, glyph.Line),
		}}},
	}})
}

// --- Helpers ---------------------------------------------------------------

func on(x, y float64, t glyph.PointType) glyph.ContourPoint {
	return glyph.ContourPoint{X: x, Y: y, Type: t}
}

func off(x, y float64) glyph.ContourPoint {
	return glyph.ContourPoint{X: x, Y: y, Type: glyph.OffCurve}
}

func square(x, y, size float64) glyph.Contour {
	return glyph.Contour{Points: []glyph.ContourPoint{
		on(x, y, glyph.Line),
		on(x+size, y, glyph.Line),
		on(x+size, y+size, glyph.Line),
		on(x, y+size, glyph.Line),
	}}
}

// roundO is a closed quadratic contour with 4 on-curve points at the extremes
// and 4 off-curve points at the corners of the box [0,0]–[100,100].
func roundO() glyph.Contour {
	return glyph.Contour{Points: []glyph.ContourPoint{
		on(100, 50, glyph.QCurve), off(100, 100),
		on(50, 100, glyph.QCurve), off(0, 100),
		on(0, 50, glyph.QCurve), off(0, 0),
		on(50, 0, glyph.QCurve), off(100, 0),
	}}
}

func segmentSet(elements []geom.Element) map[geom.Segment]int {
	set := make(map[geom.Segment]int)
	for seg := range geom.Path(elements).Segments() {
		set[seg]++
	}
	return set
}

// --- Tests: decoder --------------------------------------------------------

func (env *OutlineTestEnviron) TestDegenerateContours() {
	els, err := DecodeContour(glyph.Contour{})
	env.NoError(err)
	env.Empty(els, "empty contour should yield no elements")
	els, err = DecodeContour(glyph.Contour{Points: []glyph.ContourPoint{on(5, 7, glyph.Line)}})
	env.NoError(err)
	env.Equal([]geom.Element{geom.MoveTo(geom.Pt(5, 7))}, els)
}

func (env *OutlineTestEnviron) TestClosedLineContour() {
	els, err := DecodeContour(square(0, 0, 100))
	env.Require().NoError(err)
	expected := []geom.Element{
		geom.MoveTo(geom.Pt(0, 0)),
		geom.LineTo(geom.Pt(100, 0)),
		geom.LineTo(geom.Pt(100, 100)),
		geom.LineTo(geom.Pt(0, 100)),
		geom.LineTo(geom.Pt(0, 0)),
		geom.Close(),
	}
	if diff := cmp.Diff(expected, els); diff != "" {
		env.Failf("unexpected elements", "diff (-want +got):\n%s", diff)
	}
}

func (env *OutlineTestEnviron) TestOpenContour() {
	c := glyph.Contour{Points: []glyph.ContourPoint{
		on(0, 0, glyph.Move),
		on(100, 0, glyph.Line),
		off(130, 20), off(130, 80),
		on(100, 100, glyph.Curve),
		off(50, 150),
		on(0, 100, glyph.Curve),
	}}
	env.True(c.IsOpen())
	els, err := DecodeContour(c)
	env.Require().NoError(err)
	expected := []geom.Element{
		geom.MoveTo(geom.Pt(0, 0)),
		geom.LineTo(geom.Pt(100, 0)),
		geom.CubeTo(geom.Pt(130, 20), geom.Pt(130, 80), geom.Pt(100, 100)),
		geom.QuadTo(geom.Pt(50, 150), geom.Pt(0, 100)),
	}
	if diff := cmp.Diff(expected, els); diff != "" {
		env.Failf("unexpected elements", "diff (-want +got):\n%s", diff)
	}
}

func (env *OutlineTestEnviron) TestClosedCurveStartingWithOffCurves() {
	// off-curves of the first segment stored at the start of the list
	c := glyph.Contour{Points: []glyph.ContourPoint{
		off(0, 50), off(50, 100),
		on(100, 100, glyph.Curve),
		on(100, 0, glyph.Line),
		on(0, 0, glyph.Line),
	}}
	els, err := DecodeContour(c)
	env.Require().NoError(err)
	expected := []geom.Element{
		geom.MoveTo(geom.Pt(100, 100)),
		geom.LineTo(geom.Pt(100, 0)),
		geom.LineTo(geom.Pt(0, 0)),
		geom.CubeTo(geom.Pt(0, 50), geom.Pt(50, 100), geom.Pt(100, 100)),
		geom.Close(),
	}
	if diff := cmp.Diff(expected, els); diff != "" {
		env.Failf("unexpected elements", "diff (-want +got):\n%s", diff)
	}
}

func (env *OutlineTestEnviron) TestIdempotence() {
	for _, c := range []glyph.Contour{square(10, 20, 30), roundO()} {
		first, err1 := DecodeContour(c)
		second, err2 := DecodeContour(c)
		env.NoError(err1)
		env.NoError(err2)
		env.Empty(cmp.Diff(first, second), "decoding twice should yield identical elements")
	}
}

func (env *OutlineTestEnviron) TestRotationInvariance() {
	base := roundO()
	baseEls, err := DecodeContour(base)
	env.Require().NoError(err)
	want := segmentSet(baseEls)
	n := len(base.Points)
	for k := 1; k < n; k++ {
		rotated := glyph.Contour{Points: append(append([]glyph.ContourPoint{},
			base.Points[k:]...), base.Points[:k]...)}
		els, err := DecodeContour(rotated)
		env.Require().NoError(err)
		env.Equal(len(baseEls), len(els), "rotation by %d changed element count", k)
		env.Equal(want, segmentSet(els), "rotation by %d changed segments", k)
	}
}

func (env *OutlineTestEnviron) TestRoundO() {
	els, err := DecodeContour(roundO())
	env.Require().NoError(err)
	env.Require().Len(els, 6, "expected MoveTo, 4 curve segments and Close")
	env.Equal(geom.OpMoveTo, els[0].Op)
	for _, e := range els[1:5] {
		env.Equal(geom.OpQuadTo, e.Op)
	}
	env.Equal(geom.OpClose, els[5].Op)
	box := geom.Path(els).BoundingBox()
	env.Equal(geom.Rect{Min: geom.Pt(0, 0), Max: geom.Pt(100, 100)}, box)
}

func (env *OutlineTestEnviron) TestImpliedOnCurve() {
	c0, c1, c2 := geom.Pt(0, 0), geom.Pt(100, 0), geom.Pt(50, 100)
	blob := glyph.Contour{Points: []glyph.ContourPoint{off(0, 0), off(100, 0), off(50, 100)}}
	els, err := DecodeContour(blob)
	env.Require().NoError(err)
	anchor := c2.Mid(c0)
	expected := []geom.Element{
		geom.MoveTo(anchor),
		geom.QuadTo(c0, c0.Mid(c1)),
		geom.QuadTo(c1, c1.Mid(c2)),
		geom.QuadTo(c2, anchor),
		geom.Close(),
	}
	if diff := cmp.Diff(expected, els); diff != "" {
		env.Failf("unexpected elements", "diff (-want +got):\n%s", diff)
	}
	// two controls: two quadratic segments between the implied on-curves
	els, err = DecodeContour(glyph.Contour{Points: []glyph.ContourPoint{off(0, 0), off(100, 100)}})
	env.Require().NoError(err)
	mid := geom.Pt(50, 50)
	expected = []geom.Element{
		geom.MoveTo(mid),
		geom.QuadTo(geom.Pt(0, 0), mid),
		geom.QuadTo(geom.Pt(100, 100), mid),
		geom.Close(),
	}
	if diff := cmp.Diff(expected, els); diff != "" {
		env.Failf("unexpected elements", "diff (-want +got):\n%s", diff)
	}
}

func (env *OutlineTestEnviron) TestQuadraticChain() {
	c := glyph.Contour{Points: []glyph.ContourPoint{
		on(0, 0, glyph.Move), off(0, 100), off(100, 100), on(100, 0, glyph.QCurve),
		on(50, -50, glyph.QCurve),
	}}
	els, err := DecodeContour(c)
	env.Require().NoError(err)
	expected := []geom.Element{
		geom.MoveTo(geom.Pt(0, 0)),
		geom.QuadTo(geom.Pt(0, 100), geom.Pt(50, 100)),
		geom.QuadTo(geom.Pt(100, 100), geom.Pt(100, 0)),
		geom.LineTo(geom.Pt(50, -50)),
	}
	if diff := cmp.Diff(expected, els); diff != "" {
		env.Failf("unexpected elements", "diff (-want +got):\n%s", diff)
	}
}

func (env *OutlineTestEnviron) TestMalformedContours() {
	tests := []struct {
		name   string
		points []glyph.ContourPoint
		err    error
		typ    glyph.PointType
		count  int
	}{
		{"line after off-curve", []glyph.ContourPoint{
			on(0, 0, glyph.Line), off(50, 50), on(100, 0, glyph.Line),
		}, ErrIllegalPointCount, glyph.Line, 1},
		{"move mid-contour", []glyph.ContourPoint{
			on(0, 0, glyph.Line), on(50, 50, glyph.Move), on(100, 0, glyph.Line),
		}, ErrIllegalMove, glyph.Move, 0},
		{"trailing off-curves", []glyph.ContourPoint{
			on(0, 0, glyph.Move), on(100, 0, glyph.Line), off(100, 100),
		}, ErrTrailingOffCurves, glyph.OffCurve, 1},
		{"super-bézier", []glyph.ContourPoint{
			on(0, 0, glyph.Move), off(0, 100), off(50, 150), off(100, 100), on(100, 0, glyph.Curve),
		}, ErrUnsupportedSegmentDegree, glyph.Curve, 3},
	}
	for _, tt := range tests {
		var els []geom.Element
		var err error
		env.NotPanics(func() {
			els, err = DecodeContour(glyph.Contour{Points: tt.points})
		}, tt.name)
		env.Nil(els, tt.name)
		env.Require().Error(err, tt.name)
		env.True(errors.Is(err, tt.err), "%s: expected %v, got %v", tt.name, tt.err, err)
		var cerr *ContourError
		env.Require().True(errors.As(err, &cerr), tt.name)
		env.Equal(tt.typ, cerr.Type, tt.name)
		env.Equal(tt.count, cerr.Count, tt.name)
	}
}

func (env *OutlineTestEnviron) TestSuperBezierDecomposition() {
	c := glyph.Contour{Points: []glyph.ContourPoint{
		on(0, 0, glyph.Move), off(0, 100), off(50, 150), off(100, 100), on(100, 0, glyph.Curve),
	}}
	els, err := DecodeContour(c, DecomposeSuperBeziers(true))
	env.Require().NoError(err)
	expected := []geom.Element{
		geom.MoveTo(geom.Pt(0, 0)),
		geom.CubeTo(geom.Pt(0, 100), geom.Pt(25, 125), geom.Pt(50, 125)),
		geom.CubeTo(geom.Pt(75, 125), geom.Pt(100, 100), geom.Pt(100, 0)),
	}
	if diff := cmp.Diff(expected, els); diff != "" {
		env.Failf("unexpected elements", "diff (-want +got):\n%s", diff)
	}
	_, err = DecodeContour(c, DecomposeSuperBeziers(false))
	env.True(errors.Is(err, ErrUnsupportedSegmentDegree))
}

// --- Tests: components and paths ------------------------------------------

func (env *OutlineTestEnviron) TestNestedComponents() {
	contours := DecomposeComponents(env.layer.Glyph("scaled"), env.layer)
	env.Require().Len(contours, 1)
	pts := contours[0].Points
	env.Require().Len(pts, 4)
	env.Equal(200.0, pts[0].X, "component transform has to be applied before the outer one")
	env.Equal(0.0, pts[0].Y)
	env.Equal(400.0, pts[2].X)
	env.Equal(200.0, pts[2].Y)
	env.Equal(glyph.Line, pts[1].Type)
}

func (env *OutlineTestEnviron) TestDanglingComponents() {
	g := env.layer.Glyph("dangling")
	env.Empty(DecomposeComponents(g, env.layer))
	path, ok, err := PathForGlyph(g, env.layer)
	env.NoError(err)
	env.True(ok)
	env.Len(path, 6, "own contour only")
	env.Nil(DecomposeComponents(env.layer.Glyph("square"), env.layer))
}

func (env *OutlineTestEnviron) TestCyclicComponents() {
	var contours []glyph.Contour
	env.NotPanics(func() {
		contours = DecomposeComponents(env.layer.Glyph("ping"), env.layer)
	})
	env.Len(contours, 1, "pong's own contour, the cyclic reference back to ping is cut")
	env.Equal(10.0, contours[0].Points[0].X)
}

func (env *OutlineTestEnviron) TestPathForGlyph() {
	_, ok, err := PathForGlyph(env.layer.Glyph("space"), env.layer)
	env.NoError(err)
	env.False(ok, "glyph without outline has no path")
	//
	path, ok, err := PathForGlyph(env.layer.Glyph("shifted"), env.layer)
	env.Require().NoError(err)
	env.True(ok)
	env.Equal(geom.Rect{Min: geom.Pt(100, 0), Max: geom.Pt(200, 100)}, path.BoundingBox())
	//
	box, ok, err := Bounds(env.layer.Glyph("scaled"), env.layer)
	env.Require().NoError(err)
	env.True(ok)
	env.Equal(geom.Rect{Min: geom.Pt(200, 0), Max: geom.Pt(400, 200)}, box)
}

func (env *OutlineTestEnviron) TestBrokenGlyph() {
	_, ok, err := PathForGlyph(env.layer.Glyph("broken"), env.layer)
	env.False(ok)
	env.Require().Error(err)
	env.True(errors.Is(err, ErrIllegalMove))
	var gerr *GlyphError
	env.Require().True(errors.As(err, &gerr))
	env.Equal("broken", gerr.Glyph)
	env.Equal(1, gerr.Contour)
	env.False(gerr.Component)
}
