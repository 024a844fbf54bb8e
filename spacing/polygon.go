package spacing

import (
	"fmt"
	"math"
	"slices"

	"github.com/npillmayer/letterspace/geom"
)

// Zone is the vertical measurement window of the spacing polygons, usually
// derived from the bounding box of a reference glyph.
type Zone struct {
	Lower, Upper float64
}

// Height returns the vertical extent of z.
func (z Zone) Height() float64 {
	return z.Upper - z.Lower
}

// Contains reports whether y lies inside z, borders included.
func (z Zone) Contains(y float64) bool {
	return z.Lower <= y && y <= z.Upper
}

func (z Zone) String() string {
	return fmt.Sprintf("[%g…%g]", z.Lower, z.Upper)
}

// Polygons are the spacing polygons of a glyph, one per side. Both polygons
// run bottom to top and are closed by vertices at the in-zone extreme, at the
// lower and upper border of the zone.
type Polygons struct {
	Left, Right []geom.Point
	// Extremes of the ink within the zone.
	ExtremeLeft, ExtremeRight geom.Point
	// Extremes of the ink over the full scan range, i.e. including over- and
	// undershoots of the zone.
	ExtremeLeftFull, ExtremeRightFull geom.Point
	Zone Zone
}

// BuildPolygons scans a glyph's path with horizontal lines, step units apart,
// and builds the left and right spacing polygons.
//
// The scan covers the union of the glyph's vertical extent (bounds) and the
// measurement zone. For an angle ≠ 0 (degrees, positive for glyphs leaning to
// the right), scanline hits are deskewed around half the x-height. Polygon
// points are then capped to a maximum depth of depthCut percent of the
// x-height, measured from the extreme point of the respective side, and finally
// smoothed such that adjacent points never move inwards by more than step.
//
// ok is false if the path has no ink within the zone, in which case the
// sidebearings of the glyph are undefined.
func BuildPolygons(path geom.Path, bounds geom.Rect, zone Zone, angle, xheight float64,
	step int, depthCut float64) (*Polygons, bool) {
	//
	if path.IsEmpty() || bounds.IsEmpty() || step <= 0 {
		return nil, false
	}
	s, ok := scan(path, bounds, zone, angle, xheight, step)
	if !ok {
		return nil, false
	}
	depth := xheight * depthCut / 100
	left := capDepth(s.left, s.extremeLeft.X+depth, math.Min)
	right := capDepth(s.right, s.extremeRight.X-depth, math.Max)
	left = smoothOverhangs(left, float64(step), 1)
	right = smoothOverhangs(right, float64(step), -1)
	return &Polygons{
		Left:             closePolygon(left, s.extremeLeft.X, zone),
		Right:            closePolygon(right, s.extremeRight.X, zone),
		ExtremeLeft:      s.extremeLeft,
		ExtremeRight:     s.extremeRight,
		ExtremeLeftFull:  s.extremeLeftFull,
		ExtremeRightFull: s.extremeRightFull,
		Zone:             zone,
	}, true
}

// Skew reverses the deskewing BuildPolygons applies for an italic angle in
// degrees, mapping polygon points back onto the slanted outline. The pivot of
// the shear is at half the x-height. pts is not modified.
func Skew(pts []geom.Point, angle, xheight float64) []geom.Point {
	skewed := make([]geom.Point, len(pts))
	tan := math.Tan(angle * math.Pi / 180)
	for i, p := range pts {
		skewed[i] = geom.Pt(p.X+(p.Y-xheight/2)*tan, p.Y)
	}
	return skewed
}

// scanResult is the outcome of the intersection pass.
type scanResult struct {
	left, right                       []geom.Point // in-zone samples, bottom to top
	extremeLeft, extremeRight         geom.Point
	extremeLeftFull, extremeRightFull geom.Point
}

// scan is the intersection pass. For every scanline it records the outermost
// hits on both sides. In-zone scanlines without any ink are recorded as lying
// at infinity on the far side, i.e. as maximally open.
func scan(path geom.Path, bounds geom.Rect, zone Zone, angle, xheight float64,
	step int) (s scanResult, ok bool) {
	//
	lower := int(math.Min(math.Round(bounds.Min.Y), zone.Lower))
	upper := int(math.Max(math.Round(bounds.Max.Y), zone.Upper))
	pivot := xheight / 2
	tan := math.Tan(angle * math.Pi / 180)
	segments := slices.Collect(path.Segments())
	haveZone, haveFull := false, false
	for iy := lower; iy <= upper; iy += step {
		y := float64(iy)
		inZone := zone.Contains(y)
		first, last, hit := outermostHits(segments, y)
		if !hit {
			if inZone {
				s.left = append(s.left, geom.Pt(math.Inf(1), y))
				s.right = append(s.right, geom.Pt(math.Inf(-1), y))
			}
			continue
		}
		if angle != 0 {
			first.X -= (y - pivot) * tan
			last.X -= (y - pivot) * tan
		}
		if inZone {
			s.left = append(s.left, first)
			s.right = append(s.right, last)
			if !haveZone || first.X < s.extremeLeft.X {
				s.extremeLeft = first
			}
			if !haveZone || last.X > s.extremeRight.X {
				s.extremeRight = last
			}
			haveZone = true
		}
		if !haveFull || first.X < s.extremeLeftFull.X {
			s.extremeLeftFull = first
		}
		if !haveFull || last.X > s.extremeRightFull.X {
			s.extremeRightFull = last
		}
		haveFull = true
	}
	return s, haveZone
}

// outermostHits intersects a scanline with all segments and returns the
// leftmost and rightmost hit, rounded to integer coordinates.
func outermostHits(segments []geom.Segment, y float64) (first, last geom.Point, ok bool) {
	for _, seg := range segments {
		for _, p := range seg.IntersectionPoints(y) {
			p = p.Round()
			if !ok || p.X < first.X {
				first = p
			}
			if !ok || p.X > last.X {
				last = p
			}
			ok = true
		}
	}
	return
}

// capDepth is the depth-cut pass: it limits every x-coordinate to the given
// cut, using math.Min for the left side and math.Max for the right side.
func capDepth(pts []geom.Point, cut float64, limit func(x, y float64) float64) []geom.Point {
	capped := make([]geom.Point, len(pts))
	for i, p := range pts {
		capped[i] = geom.Pt(limit(p.X, cut), p.Y)
	}
	return capped
}

// smoothOverhangs is the overhang-smoothing pass. It sweeps forward, then
// backward, and keeps each point from lying more than step further inwards
// than its predecessor in sweep direction. Inwards is towards +x for
// inward = 1 (left side) and towards -x for inward = -1 (right side).
// Counterforms opening to the side are thereby closed at about 45°.
func smoothOverhangs(pts []geom.Point, step float64, inward float64) []geom.Point {
	smoothed := slices.Clone(pts)
	for i := 0; i+1 < len(smoothed); i++ {
		if inward*(smoothed[i+1].X-smoothed[i].X) > step {
			smoothed[i+1].X = smoothed[i].X + inward*step
		}
	}
	for i := len(smoothed) - 2; i >= 0; i-- {
		if inward*(smoothed[i].X-smoothed[i+1].X) > step {
			smoothed[i].X = smoothed[i+1].X + inward*step
		}
	}
	return smoothed
}

// closePolygon adds the closing vertices at the extreme x-coordinate of a
// side, at the lower and upper border of the zone.
func closePolygon(pts []geom.Point, x float64, zone Zone) []geom.Point {
	closed := make([]geom.Point, 0, len(pts)+2)
	closed = append(closed, geom.Pt(x, zone.Lower))
	closed = append(closed, pts...)
	return append(closed, geom.Pt(x, zone.Upper))
}
