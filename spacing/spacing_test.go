package spacing

import (
	"errors"
	"math"
	"testing"

	"github.com/npillmayer/letterspace/geom"
	"github.com/npillmayer/letterspace/glyph"
	"github.com/npillmayer/letterspace/outline"
	"github.com/npillmayer/schuko/schukonf/testconfig"
	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"github.com/stretchr/testify/suite"
)

// --- Test Suite Preparation ------------------------------------------------

type SpacingTestEnviron struct {
	suite.Suite
	layer   *glyph.Layer
	metrics glyph.FontMetrics
	policy  Policy
}

// listen for 'go test' command --> run test methods
func TestSpacingFunctions(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "letterspace")
	defer teardown()
	suite.Run(t, new(SpacingTestEnviron))
}

// run once, before test suite methods
func (env *SpacingTestEnviron) SetupSuite() {
	env.metrics = glyph.FontMetrics{UnitsPerEm: 1000, XHeight: 500}
	env.layer = glyph.NewLayer("public.default")
	env.layer.Insert(&glyph.Glyph{Name: "H", Codepoints: []rune{'H'}, Advance: 800, Outline: &glyph.Outline{
		Contours: []glyph.Contour{polygon(
			0, 0, 80, 0, 80, 330, 520, 330, 520, 0, 600, 0,
			600, 700, 520, 700, 520, 400, 80, 400, 80, 700, 0, 700,
		)},
	}})
	env.layer.Insert(&glyph.Glyph{Name: "O", Codepoints: []rune{'O'}, Advance: 800, Outline: &glyph.Outline{
		Contours: []glyph.Contour{circle(350, 350, 350)},
	}})
	env.layer.Insert(&glyph.Glyph{Name: "C", Codepoints: []rune{'C'}, Outline: &glyph.Outline{
		Contours: []glyph.Contour{polygon(
			0, 0, 600, 0, 600, 150, 150, 150, 150, 550, 600, 550, 600, 700, 0, 700,
		)},
	}})
	env.layer.Insert(&glyph.Glyph{Name: "underscore", Codepoints: []rune{'_'}, Outline: &glyph.Outline{
		Contours: []glyph.Contour{polygon(0, -100, 500, -100, 500, -50, 0, -50)},
	}})
	env.layer.Insert(&glyph.Glyph{Name: "Hcomposite", Outline: &glyph.Outline{
		Components: []glyph.Component{{Base: "H", Transform: geom.Translate(50, 0)}},
	}})
	env.layer.Insert(&glyph.Glyph{Name: "space", Codepoints: []rune{' '}, Advance: 250})
	env.layer.Insert(&glyph.Glyph{Name: "broken", Outline: &glyph.Outline{
		Contours: []glyph.Contour{{Points: []glyph.ContourPoint{
			{X: 0, Y: 0, Type: glyph.Line},
			{X: 50, Y: 50, Type: glyph.OffCurve},
			{X: 100, Y: 0, Type: glyph.Line},
		}}},
	}})
	env.policy = PolicyFunc(func(g *glyph.Glyph, layer *glyph.Layer) (float64, *glyph.Glyph) {
		if g.Name == "underscore" {
			return 1, layer.Glyph("H")
		}
		return 1.25, layer.Glyph("H")
	})
}

// --- Helpers ---------------------------------------------------------------

// polygon creates a closed contour of line points from x/y pairs.
func polygon(coords ...float64) glyph.Contour {
	c := glyph.Contour{}
	for i := 0; i+1 < len(coords); i += 2 {
		c.Points = append(c.Points, glyph.ContourPoint{X: coords[i], Y: coords[i+1], Type: glyph.Line})
	}
	return c
}

// circle creates a closed contour of four cubic arcs.
func circle(cx, cy, r float64) glyph.Contour {
	k := 0.5522847498 * r
	pt := func(x, y float64, t glyph.PointType) glyph.ContourPoint {
		return glyph.ContourPoint{X: cx + x, Y: cy + y, Type: t}
	}
	return glyph.Contour{Points: []glyph.ContourPoint{
		pt(r, 0, glyph.Curve), pt(r, k, glyph.OffCurve), pt(k, r, glyph.OffCurve),
		pt(0, r, glyph.Curve), pt(-k, r, glyph.OffCurve), pt(-r, k, glyph.OffCurve),
		pt(-r, 0, glyph.Curve), pt(-r, -k, glyph.OffCurve), pt(-k, -r, glyph.OffCurve),
		pt(0, -r, glyph.Curve), pt(k, -r, glyph.OffCurve), pt(r, -k, glyph.OffCurve),
	}}
}

func (env *SpacingTestEnviron) spacer() *Spacer {
	return NewSpacer(env.layer, env.metrics, env.policy)
}

func (env *SpacingTestEnviron) polygonsFor(name string) *Polygons {
	g := env.layer.Glyph(name)
	path, ok, err := outline.PathForGlyph(g, env.layer)
	env.Require().NoError(err)
	env.Require().True(ok)
	polys, ok := BuildPolygons(path, path.BoundingBox(), Zone{0, 700}, 0, 500, 5, 15)
	env.Require().True(ok)
	return polys
}

// --- Tests -----------------------------------------------------------------

func (env *SpacingTestEnviron) TestPolygonArea() {
	ccw := []geom.Point{geom.Pt(0, 0), geom.Pt(100, 0), geom.Pt(100, 100), geom.Pt(0, 100)}
	cw := []geom.Point{geom.Pt(0, 0), geom.Pt(0, 100), geom.Pt(100, 100), geom.Pt(100, 0)}
	env.Equal(10000.0, PolygonArea(ccw))
	env.Equal(10000.0, PolygonArea(cw), "area must not depend on winding direction")
	env.Equal(0.0, PolygonArea(nil))
	for _, name := range []string{"H", "O", "C"} {
		polys := env.polygonsFor(name)
		env.GreaterOrEqual(PolygonArea(polys.Left), 0.0)
		env.GreaterOrEqual(PolygonArea(polys.Right), 0.0)
	}
}

func (env *SpacingTestEnviron) TestSidebearingValue() {
	// empty polygon: the whole target area goes into the sidebearing
	v := SidebearingValue(1.25, Zone{0, 700}, 400, nil, 1000, 500)
	env.InDelta(100.0, v, 1e-9)
	// doubling units per em quadruples the area
	v = SidebearingValue(1, Zone{0, 1000}, 400, nil, 2000, 1000)
	env.InDelta(160.0, v, 1e-9)
	// area already present reduces the sidebearing
	square := []geom.Point{geom.Pt(0, 0), geom.Pt(10, 0), geom.Pt(10, 700), geom.Pt(0, 700)}
	v = SidebearingValue(1.25, Zone{0, 700}, 400, square, 1000, 500)
	env.InDelta(90.0, v, 1e-9)
}

func (env *SpacingTestEnviron) TestSymmetricH() {
	res, err := env.spacer().Compute(env.layer.Glyph("H"))
	env.Require().NoError(err)
	env.Require().True(res.Defined)
	env.Equal("H", res.Reference)
	env.Equal(1.25, res.Factor)
	env.InDelta(res.Left, res.Right, 1, "symmetric glyph should get symmetric sidebearings")
	env.Equal(100.0, res.Left)
	env.Equal(100.0, res.Right)
}

func (env *SpacingTestEnviron) TestComposite() {
	res, err := env.spacer().Compute(env.layer.Glyph("Hcomposite"))
	env.Require().NoError(err)
	env.Require().True(res.Defined)
	env.Equal(100.0, res.Left, "translation must not change sidebearings")
	env.Equal(100.0, res.Right)
	env.Equal(50.0, res.Polygons.ExtremeLeft.X)
}

func (env *SpacingTestEnviron) TestRoundO() {
	res, err := env.spacer().Compute(env.layer.Glyph("O"))
	env.Require().NoError(err)
	env.Require().True(res.Defined)
	env.InDelta(res.Left, res.Right, 2)
	env.InDelta(57.0, res.Left, 3, "round glyphs get less space than straight ones")
	env.Less(res.Left, 100.0)
}

func (env *SpacingTestEnviron) TestEmptyOutline() {
	res, err := env.spacer().Compute(env.layer.Glyph("space"))
	env.NoError(err)
	env.False(res.Defined, "glyph without outline has undefined sidebearings")
	env.Nil(res.Debug)
	env.Nil(res.Polygons)
	//
	path := geom.Path{}
	_, ok := BuildPolygons(path, path.BoundingBox(), Zone{0, 700}, 0, 500, 5, 15)
	env.False(ok, "empty path must not produce polygons")
}

func (env *SpacingTestEnviron) TestNoInkInZone() {
	res, err := env.spacer().Compute(env.layer.Glyph("underscore"))
	env.NoError(err)
	env.False(res.Defined)
}

func (env *SpacingTestEnviron) TestMalformedGlyph() {
	_, err := env.spacer().Compute(env.layer.Glyph("broken"))
	env.Require().Error(err)
	env.True(errors.Is(err, outline.ErrIllegalPointCount))
}

func (env *SpacingTestEnviron) TestMissingXHeight() {
	s := NewSpacer(env.layer, glyph.DefaultMetrics(), env.policy)
	_, err := s.Compute(env.layer.Glyph("H"))
	env.True(errors.Is(err, ErrMissingXHeight))
	res, err := s.Compute(env.layer.Glyph("space"))
	env.NoError(err, "glyphs without outline do not need metrics")
	env.False(res.Defined)
}

func (env *SpacingTestEnviron) TestDepthCap() {
	polys := env.polygonsFor("C")
	depth := 500 * 15 / 100.0
	for _, p := range polys.Left {
		env.LessOrEqual(p.X, polys.ExtremeLeft.X+depth)
	}
	for _, p := range polys.Right {
		env.GreaterOrEqual(p.X, polys.ExtremeRight.X-depth)
	}
	env.Equal(600.0, polys.ExtremeRight.X)
	// the mouth of the C is cut at the maximum depth
	mid := polys.Right[len(polys.Right)/2]
	env.Equal(600.0-depth, mid.X)
}

func (env *SpacingTestEnviron) TestSmoothingBound() {
	for _, name := range []string{"H", "O", "C"} {
		polys := env.polygonsFor(name)
		for _, side := range [][]geom.Point{polys.Left, polys.Right} {
			samples := side[1 : len(side)-1]
			for i := 0; i+1 < len(samples); i++ {
				env.LessOrEqual(math.Abs(samples[i+1].X-samples[i].X), 5.0,
					"%s: adjacent samples %v and %v too far apart", name, samples[i], samples[i+1])
			}
		}
	}
	smoothed := smoothOverhangs([]geom.Point{{X: 0}, {X: 40}, {X: 40}, {X: 0}}, 5, 1)
	env.Equal([]geom.Point{{X: 0}, {X: 5}, {X: 5}, {X: 0}}, smoothed)
	smoothed = smoothOverhangs([]geom.Point{{X: 100}, {X: 50}, {X: 100}}, 10, -1)
	env.Equal([]geom.Point{{X: 100}, {X: 90}, {X: 100}}, smoothed)
}

func (env *SpacingTestEnviron) TestClosingVertices() {
	polys := env.polygonsFor("O")
	first, last := polys.Left[0], polys.Left[len(polys.Left)-1]
	env.Equal(geom.Pt(polys.ExtremeLeft.X, 0), first)
	env.Equal(geom.Pt(polys.ExtremeLeft.X, 700), last)
	for i := 0; i+1 < len(polys.Left); i++ {
		env.LessOrEqual(polys.Left[i].Y, polys.Left[i+1].Y, "polygon has to run bottom to top")
	}
}

func (env *SpacingTestEnviron) TestDeskew() {
	// parallelogram leaning right by 10°
	tan := math.Tan(10 * math.Pi / 180)
	g := &glyph.Glyph{Name: "slanted", Outline: &glyph.Outline{
		Contours: []glyph.Contour{polygon(0, 0, 100, 0, 100+700*tan, 700, 700*tan, 700)},
	}}
	path, _, err := outline.PathForGlyph(g, nil)
	env.Require().NoError(err)
	polys, ok := BuildPolygons(path, path.BoundingBox(), Zone{0, 700}, 10, 500, 5, 15)
	env.Require().True(ok)
	minX, maxX := math.Inf(1), math.Inf(-1)
	for _, p := range polys.Left {
		minX, maxX = math.Min(minX, p.X), math.Max(maxX, p.X)
	}
	env.LessOrEqual(maxX-minX, 1.0, "deskewed left edge should be upright")
	env.InDelta(250*tan, polys.ExtremeLeft.X, 1)
}

func (env *SpacingTestEnviron) TestItalicCompute() {
	// a stem leaning right by 10°, sheared around half the x-height
	tan := math.Tan(10 * math.Pi / 180)
	shear := func(x, y float64) (float64, float64) { return x + (y-250)*tan, y }
	upright := glyph.NewLayer("public.default")
	upright.Insert(&glyph.Glyph{Name: "I", Advance: 400, Outline: &glyph.Outline{
		Contours: []glyph.Contour{polygon(100, 0, 180, 0, 180, 700, 100, 700)},
	}})
	slanted := glyph.NewLayer("public.default")
	c := glyph.Contour{}
	for _, p := range upright.Glyph("I").Outline.Contours[0].Points {
		p.X, p.Y = shear(p.X, p.Y)
		c.Points = append(c.Points, p)
	}
	slanted.Insert(&glyph.Glyph{Name: "I", Advance: 400, Outline: &glyph.Outline{
		Contours: []glyph.Contour{c},
	}})
	//
	up, err := NewSpacer(upright, env.metrics, nil).Compute(upright.Glyph("I"))
	env.Require().NoError(err)
	env.Require().True(up.Defined)
	// fonts state the italic angle counter-clockwise, i.e. negative for right-leaning glyphs
	italic := glyph.FontMetrics{UnitsPerEm: 1000, XHeight: 500, ItalicAngle: -10}
	it, err := NewSpacer(slanted, italic, nil).Compute(slanted.Glyph("I"))
	env.Require().NoError(err)
	env.Require().True(it.Defined)
	env.InDelta(up.Left, it.Left, 1, "italic stem should be spaced like the upright one")
	env.InDelta(up.Right, it.Right, 1)
	env.InDelta(100.0, it.Polygons.ExtremeLeft.X, 1)
	//
	wrong := glyph.FontMetrics{UnitsPerEm: 1000, XHeight: 500, ItalicAngle: 10}
	skewed, err := NewSpacer(slanted, wrong, nil).Compute(slanted.Glyph("I"))
	env.Require().NoError(err)
	env.Require().True(skewed.Defined)
	env.Greater(math.Abs(up.Left-skewed.Left), 10.0, "opposite angle must not deskew the stem")
}

func (env *SpacingTestEnviron) TestInkOutsideZone() {
	// a stem with a wide foot below the baseline of the reference glyph
	layer := glyph.NewLayer("public.default")
	layer.Insert(env.layer.Glyph("H"))
	layer.Insert(&glyph.Glyph{Name: "stem", Advance: 600, Outline: &glyph.Outline{
		Contours: []glyph.Contour{polygon(100, 0, 500, 0, 500, 700, 100, 700)},
	}})
	layer.Insert(&glyph.Glyph{Name: "footed", Advance: 600, Outline: &glyph.Outline{
		Contours: []glyph.Contour{
			polygon(100, 0, 500, 0, 500, 700, 100, 700),
			polygon(0, -50, 600, -50, 600, -20, 0, -20),
		},
	}})
	s := NewSpacer(layer, env.metrics, env.policy)
	stem, err := s.Compute(layer.Glyph("stem"))
	env.Require().NoError(err)
	env.Require().True(stem.Defined)
	res, err := s.Compute(layer.Glyph("footed"))
	env.Require().NoError(err)
	env.Require().True(res.Defined)
	polys := res.Polygons
	env.Equal(Zone{0, 700}, polys.Zone)
	env.Equal(100.0, polys.ExtremeLeft.X)
	env.Equal(500.0, polys.ExtremeRight.X)
	env.Equal(0.0, polys.ExtremeLeftFull.X)
	env.Less(polys.ExtremeLeftFull.Y, 0.0)
	env.Equal(600.0, polys.ExtremeRightFull.X)
	// the distance to the full extremes is taken off the sidebearings
	left := SidebearingValue(res.Factor, polys.Zone, s.Params.Area, polys.Left, 1000, 500)
	right := SidebearingValue(res.Factor, polys.Zone, s.Params.Area, polys.Right, 1000, 500)
	env.Equal(math.Ceil(left-100), res.Left)
	env.Equal(math.Ceil(right-100), res.Right)
	env.Equal(stem.Left-100, res.Left)
	env.Equal(stem.Right-100, res.Right)
	//
	// overshoot widens the zone by a percentage of the x-height
	s.Params.Overshoot = 10
	res, err = s.Compute(layer.Glyph("footed"))
	env.Require().NoError(err)
	env.Require().True(res.Defined)
	polys = res.Polygons
	env.Equal(Zone{-50, 750}, polys.Zone)
	env.Equal(0.0, polys.ExtremeLeft.X, "foot is within the widened zone")
	env.Equal(polys.ExtremeLeftFull, polys.ExtremeLeft)
	env.Equal(polys.ExtremeRightFull, polys.ExtremeRight)
	left = SidebearingValue(res.Factor, polys.Zone, s.Params.Area, polys.Left, 1000, 500)
	env.Equal(math.Ceil(left), res.Left)
}

func (env *SpacingTestEnviron) TestCurrentAndEdges() {
	res, err := env.spacer().Compute(env.layer.Glyph("Hcomposite"))
	env.Require().NoError(err)
	l, r, ok := res.Current(800)
	env.Require().True(ok)
	env.Equal(50.0, l)
	env.Equal(150.0, r)
	origin, advance, ok := res.Edges()
	env.Require().True(ok)
	env.Equal(50-res.Left, origin)
	env.Equal(650+res.Right, advance)
	//
	undef, err := env.spacer().Compute(env.layer.Glyph("space"))
	env.Require().NoError(err)
	_, _, ok = undef.Current(250)
	env.False(ok)
	_, _, ok = undef.Edges()
	env.False(ok)
}

func (env *SpacingTestEnviron) TestSkew() {
	tan := math.Tan(10 * math.Pi / 180)
	pts := []geom.Point{geom.Pt(100, 0), geom.Pt(100, 250), geom.Pt(100, 700)}
	skewed := Skew(pts, 10, 500)
	env.InDelta(100-250*tan, skewed[0].X, 1e-9)
	env.Equal(geom.Pt(100, 250), skewed[1], "pivot at half the x-height stays put")
	env.InDelta(100+450*tan, skewed[2].X, 1e-9)
	env.Equal(100.0, pts[2].X, "input must not be modified")
	env.Equal(pts, Skew(pts, 0, 500))
}

func (env *SpacingTestEnviron) TestDebugGlyph() {
	res, err := env.spacer().Compute(env.layer.Glyph("O"))
	env.Require().NoError(err)
	env.Require().NotNil(res.Debug)
	env.Equal("O", res.Debug.Name)
	env.Require().Len(res.Debug.Outline.Contours, 2)
	for _, c := range res.Debug.Outline.Contours {
		env.True(c.IsOpen())
		for _, p := range c.Points[1:] {
			env.Equal(glyph.Line, p.Type)
			env.Equal(math.Round(p.X), p.X)
		}
	}
	env.Len(res.Debug.Outline.Contours[0].Points, len(res.Polygons.Left))
}

func (env *SpacingTestEnviron) TestSpaceLayer() {
	s := env.spacer()
	s.Params.Workers = 2
	batch := s.SpaceLayer("H", "O", "space", "broken", "nothere")
	env.Len(batch.Results, 3)
	env.Len(batch.Failures, 2)
	env.Equal("H", batch.Results[0].Glyph)
	env.Equal("broken", batch.Failures[0].Glyph)
	env.True(errors.Is(batch.Failures[1], ErrGlyphNotFound))
	h, ok := batch.Result("H")
	env.True(ok)
	env.Equal(100.0, h.Left)
	bg := batch.Background()
	env.Equal(BackgroundLayer, bg.Name)
	env.Equal([]string{"H", "O"}, bg.Names())
	//
	all := s.SpaceLayer()
	env.Len(all.Results, env.layer.Len()-1, "all glyphs but the broken one")
}

func (env *SpacingTestEnviron) TestMargins() {
	left, right, ok, err := Margins(env.layer.Glyph("H"), env.layer)
	env.Require().NoError(err)
	env.True(ok)
	env.Equal(0.0, left)
	env.Equal(200.0, right)
	_, _, ok, err = Margins(env.layer.Glyph("space"), env.layer)
	env.NoError(err)
	env.False(ok)
}

func (env *SpacingTestEnviron) TestParamsFromConfig() {
	p, err := ParamsFromConfig(nil)
	env.NoError(err)
	env.Equal(DefaultParams(), p)
	conf := testconfig.Conf{
		KeyDepth:       "20",
		KeyOvershoot:   "1.5",
		KeyFrequency:   10,
		KeySuperBezier: true,
	}
	p, err = ParamsFromConfig(conf)
	env.Require().NoError(err)
	env.Equal(400.0, p.Area)
	env.Equal(20.0, p.Depth)
	env.Equal(1.5, p.Overshoot)
	env.Equal(10, p.Frequency)
	env.True(p.DecomposeSuperBeziers)
	_, err = ParamsFromConfig(testconfig.Conf{KeyArea: "plenty"})
	env.Error(err)
	_, err = ParamsFromConfig(testconfig.Conf{KeyFrequency: "0"})
	env.Error(err)
	_, err = ParamsFromConfig(testconfig.Conf{KeyWorkers: "abc"})
	env.Error(err, "non-numeric worker count must not fall back to a default")
	_, err = ParamsFromConfig(testconfig.Conf{KeyFrequency: "5x"})
	env.Error(err)
	_, err = ParamsFromConfig(testconfig.Conf{KeySuperBezier: "maybe"})
	env.Error(err)
	p, err = ParamsFromConfig(testconfig.Conf{KeyWorkers: "3", KeySuperBezier: "false"})
	env.Require().NoError(err)
	env.Equal(3, p.Workers)
	env.False(p.DecomposeSuperBeziers)
}
